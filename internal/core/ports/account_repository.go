package ports

import (
	"context"

	"github.com/shmakov/account-service/internal/core/domain"
)

// AccountRepository defines persistence operations for accounts.
type AccountRepository interface {
	// Insert stores a new row and returns the account with the generated ID.
	// Any ID already set on the input is ignored.
	Insert(ctx context.Context, account *domain.Account) (*domain.Account, error)
	// Update overwrites the mutable columns of an existing row.
	// Returns domain.ErrAccountNotFound when no row has account.ID.
	Update(ctx context.Context, account *domain.Account) (*domain.Account, error)
	// FindByID returns domain.ErrAccountNotFound when no row matches.
	FindByID(ctx context.Context, id int64) (*domain.Account, error)
}
