package domain

import (
	"errors"
	"time"
)

var ErrAccountNotFound = errors.New("account not found")
var ErrAccountNotPersisted = errors.New("account has no identifier")
var ErrPasswordTooLong = errors.New("password exceeds 72 bytes")

// Account models a single row of the accounts table.
// ID is zero until the account has been inserted.
type Account struct {
	ID           int64
	Username     string
	PasswordHash string
	Email        string
	CreatedAt    time.Time
}

// Persisted reports whether the account has been assigned an identifier.
func (a *Account) Persisted() bool {
	return a != nil && a.ID > 0
}
