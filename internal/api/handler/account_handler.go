package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/shmakov/account-service/internal/core/ports"
)

// binder reads each request from a single source: the body for create, the
// path for get.
var binder = &echo.DefaultBinder{}

// AccountHandler handles HTTP requests for account operations.
// Domain errors are returned to echo and rendered by the central error handler.
type AccountHandler struct {
	service ports.AccountService
}

func NewAccountHandler(service ports.AccountService) *AccountHandler {
	return &AccountHandler{service: service}
}

// Create handles POST /accounts.
//
// @Summary      Create an account
// @Tags         accounts
// @Accept       json
// @Produce      json
// @Param        body  body      createAccountRequest  true  "Account details"
// @Success      200   {object}  accountResponse
// @Failure      400   {object}  errorResponse
// @Failure      415   {object}  errorResponse
// @Failure      500   {object}  errorResponse
// @Router       /accounts [post]
func (h *AccountHandler) Create(c echo.Context) error {
	// Decoding into a pointer leaves it nil for an empty body or a JSON null.
	var req *createAccountRequest
	if err := binder.BindBody(c, &req); err != nil {
		return bindError(err)
	}
	if req == nil {
		return echo.NewHTTPError(http.StatusBadRequest, "request body is required")
	}

	account, err := h.service.CreateAccount(c.Request().Context(), toCreateInput(*req))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, toAccountResponse(account))
}

// Get handles GET /accounts/:id.
//
// @Summary      Get an account by id
// @Tags         accounts
// @Produce      json
// @Param        id   path      int  true  "Account id"
// @Success      200  {object}  accountResponse
// @Failure      400  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Failure      500  {object}  errorResponse
// @Router       /accounts/{id} [get]
func (h *AccountHandler) Get(c echo.Context) error {
	var req getAccountRequest
	if err := binder.BindPathParams(c, &req); err != nil {
		return bindError(err)
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	account, err := h.service.GetAccount(c.Request().Context(), req.ID)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, toAccountResponse(account))
}

// bindError keeps echo's own binding errors (400 with the decoder message,
// 415 for an unsupported content type) and turns anything else into a 400.
func bindError(err error) error {
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he
	}
	return echo.NewHTTPError(http.StatusBadRequest, "invalid payload").SetInternal(err)
}
