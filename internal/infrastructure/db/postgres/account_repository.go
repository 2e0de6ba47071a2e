package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/shmakov/account-service/internal/core/domain"
)

// AccountRepository implements ports.AccountRepository on the accounts table.
type AccountRepository struct {
	db DBTX
}

func NewAccountRepository(db DBTX) *AccountRepository {
	return &AccountRepository{db: db}
}

func (r *AccountRepository) Insert(ctx context.Context, account *domain.Account) (*domain.Account, error) {
	query :=
		`INSERT INTO accounts (username, password_hash, email)
		 VALUES ($1, $2, $3)
		 RETURNING id, created_at`

	created := *account
	err := r.db.QueryRowContext(ctx, query,
		account.Username, account.PasswordHash, account.Email).Scan(&created.ID, &created.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return &created, nil
}

func (r *AccountRepository) Update(ctx context.Context, account *domain.Account) (*domain.Account, error) {
	if !account.Persisted() {
		return nil, domain.ErrAccountNotPersisted
	}

	query :=
		`UPDATE accounts SET username = $2, password_hash = $3, email = $4
		 WHERE id = $1
		 RETURNING created_at`

	updated := *account
	err := r.db.QueryRowContext(ctx, query,
		account.ID, account.Username, account.PasswordHash, account.Email).Scan(&updated.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrAccountNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return &updated, nil
}

func (r *AccountRepository) FindByID(ctx context.Context, id int64) (*domain.Account, error) {
	query :=
		`SELECT id, username, password_hash, email, created_at FROM accounts
		 WHERE id = $1`

	var (
		account               domain.Account
		username, hash, email sql.NullString
	)
	err := r.db.QueryRowContext(ctx, query, id).
		Scan(&account.ID, &username, &hash, &email, &account.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrAccountNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	account.Username = username.String
	account.PasswordHash = hash.String
	account.Email = email.String

	return &account, nil
}
