package ports

import (
	"context"

	"github.com/shmakov/account-service/internal/core/domain"
)

// CreateAccountInput is the DTO passed from the transport layer to AccountService.
// Password is plaintext here and never leaves the service unhashed.
type CreateAccountInput struct {
	Username string
	Password string
	Email    string
}

type AccountService interface {
	CreateAccount(ctx context.Context, input CreateAccountInput) (*domain.Account, error)
	GetAccount(ctx context.Context, id int64) (*domain.Account, error)
}
