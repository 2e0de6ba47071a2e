package api

import (
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
)

const (
	insertQuery = `(?s)^INSERT\s+INTO\s+accounts.*RETURNING\s+id,\s*created_at\s*$`
	selectQuery = `(?s)^SELECT\s+id,\s*username,\s*password_hash,\s*email,\s*created_at\s+FROM\s+accounts\s+WHERE\s+id\s*=\s*\$1\s*$`
)

func newTestRouter(t *testing.T) (*echo.Echo, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	reg := prometheus.NewRegistry()
	e := NewRouter(Dependencies{
		DB:         db,
		Logger:     zerolog.Nop(),
		Registerer: reg,
		Gatherer:   reg,
	})
	return e, mock
}

func do(e *echo.Echo, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var resp errorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid error envelope %q: %v", rec.Body.String(), err)
	}
	if resp.Error == "" {
		t.Fatalf("expected non-empty error message")
	}
	return resp.Error
}

func TestRouter_CreateThenFetch(t *testing.T) {
	e, mock := newTestRouter(t)
	createdAt := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery(insertQuery).
		WithArgs("alice", sqlmock.AnyArg(), "a@x.com").
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow(int64(1), createdAt))
	mock.ExpectQuery(selectQuery).
		WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "username", "password_hash", "email", "created_at"}).
			AddRow(int64(1), "alice", "$2a$10$hash", "a@x.com", createdAt))

	rec := do(e, http.MethodPost, "/accounts", `{"username":"alice","password":"p1","email":"a@x.com"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("create: expected 200, got %d (%s)", rec.Code, rec.Body.String())
	}
	var created map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &created); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if created["id"] != float64(1) || created["username"] != "alice" {
		t.Fatalf("unexpected create payload: %+v", created)
	}
	if _, ok := created["password"]; ok {
		t.Fatalf("password must not be returned")
	}

	rec = do(e, http.MethodGet, "/accounts/1", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("fetch: expected 200, got %d (%s)", rec.Code, rec.Body.String())
	}
	var fetched map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &fetched); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if fetched["username"] != created["username"] || fetched["email"] != created["email"] {
		t.Fatalf("round trip mismatch: created %+v fetched %+v", created, fetched)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestRouter_FetchMissingAccount(t *testing.T) {
	e, mock := newTestRouter(t)
	mock.ExpectQuery(selectQuery).WithArgs(int64(404)).WillReturnError(sql.ErrNoRows)

	rec := do(e, http.MethodGet, "/accounts/404", "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
	if msg := decodeError(t, rec); msg != "account not found" {
		t.Fatalf("unexpected message: %q", msg)
	}
}

func TestRouter_FetchNonIntegerID(t *testing.T) {
	e, mock := newTestRouter(t)

	rec := do(e, http.MethodGet, "/accounts/abc", "")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	decodeError(t, rec)
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("no query expected: %v", err)
	}
}

func TestRouter_CreateMalformedJSONWritesNothing(t *testing.T) {
	e, mock := newTestRouter(t)

	rec := do(e, http.MethodPost, "/accounts", `{"username":`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	decodeError(t, rec)
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("no query expected: %v", err)
	}
}

func TestRouter_CreateWithoutBodyWritesNothing(t *testing.T) {
	for name, body := range map[string]string{"empty": "", "null": "null"} {
		t.Run(name, func(t *testing.T) {
			e, mock := newTestRouter(t)

			req := httptest.NewRequest(http.MethodPost, "/accounts", strings.NewReader(body))
			req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
			rec := httptest.NewRecorder()
			e.ServeHTTP(rec, req)

			if rec.Code != http.StatusBadRequest {
				t.Fatalf("expected 400, got %d (%s)", rec.Code, rec.Body.String())
			}
			decodeError(t, rec)
			if err := mock.ExpectationsWereMet(); err != nil {
				t.Fatalf("no query expected: %v", err)
			}
		})
	}
}

func TestRouter_FetchUsesPathIDOnly(t *testing.T) {
	e, mock := newTestRouter(t)
	createdAt := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	mock.ExpectQuery(selectQuery).
		WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "username", "password_hash", "email", "created_at"}).
			AddRow(int64(1), "alice", "$2a$10$hash", "a@x.com", createdAt))

	rec := do(e, http.MethodGet, "/accounts/1", `{"id":2}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d (%s)", rec.Code, rec.Body.String())
	}
	var fetched map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &fetched); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if fetched["id"] != float64(1) || fetched["username"] != "alice" {
		t.Fatalf("expected account 1, got %+v", fetched)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestRouter_StorageErrorIsGeneric(t *testing.T) {
	e, mock := newTestRouter(t)
	mock.ExpectQuery(insertQuery).
		WithArgs("bob", sqlmock.AnyArg(), "").
		WillReturnError(errors.New("connection reset by peer"))

	rec := do(e, http.MethodPost, "/accounts", `{"username":"bob","password":"pw"}`)
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
	if msg := decodeError(t, rec); msg != "internal server error" {
		t.Fatalf("storage details leaked: %q", msg)
	}
}

func TestRouter_PasswordTooLong(t *testing.T) {
	e, _ := newTestRouter(t)

	rec := do(e, http.MethodPost, "/accounts", `{"username":"bob","password":"`+strings.Repeat("x", 80)+`"}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestRouter_UnknownRoute(t *testing.T) {
	e, _ := newTestRouter(t)

	rec := do(e, http.MethodDelete, "/accounts/1", "")
	if rec.Code != http.StatusMethodNotAllowed {
		t.Fatalf("expected 405, got %d", rec.Code)
	}
	decodeError(t, rec)
}

func TestRouter_HealthAndMetrics(t *testing.T) {
	e, _ := newTestRouter(t)

	if rec := do(e, http.MethodGet, "/health", ""); rec.Code != http.StatusOK {
		t.Fatalf("liveness: expected 200, got %d", rec.Code)
	}
	if rec := do(e, http.MethodGet, "/health/ready", ""); rec.Code != http.StatusOK {
		t.Fatalf("readiness: expected 200, got %d (%s)", rec.Code, rec.Body.String())
	}

	rec := do(e, http.MethodGet, "/metrics", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("metrics: expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "accounts_http_requests_total") {
		t.Fatalf("expected http request metrics, got:\n%s", rec.Body.String())
	}
}
