package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/shmakov/account-service/internal/core/domain"
)

const defaultCacheTTL = 10 * time.Minute

// AccountCache stores accounts as JSON documents in Redis.
// Key format: account:<id>
type AccountCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewAccountCache wraps the given Redis client. Entries expire after ttl,
// or after defaultCacheTTL when ttl is not positive.
func NewAccountCache(client *redis.Client, ttl time.Duration) *AccountCache {
	if ttl <= 0 {
		ttl = defaultCacheTTL
	}
	return &AccountCache{client: client, ttl: ttl}
}

type cachedAccount struct {
	ID           int64     `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"password_hash"`
	Email        string    `json:"email"`
	CreatedAt    time.Time `json:"created_at"`
}

func (c *AccountCache) Get(ctx context.Context, id int64) (*domain.Account, bool, error) {
	raw, err := c.client.Get(ctx, c.key(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("cache get: %w", err)
	}

	var ca cachedAccount
	if err := json.Unmarshal(raw, &ca); err != nil {
		return nil, false, fmt.Errorf("cache decode: %w", err)
	}

	return &domain.Account{
		ID:           ca.ID,
		Username:     ca.Username,
		PasswordHash: ca.PasswordHash,
		Email:        ca.Email,
		CreatedAt:    ca.CreatedAt,
	}, true, nil
}

func (c *AccountCache) Set(ctx context.Context, account *domain.Account) error {
	if !account.Persisted() {
		return domain.ErrAccountNotPersisted
	}

	raw, err := json.Marshal(cachedAccount{
		ID:           account.ID,
		Username:     account.Username,
		PasswordHash: account.PasswordHash,
		Email:        account.Email,
		CreatedAt:    account.CreatedAt,
	})
	if err != nil {
		return fmt.Errorf("cache encode: %w", err)
	}

	if err := c.client.Set(ctx, c.key(account.ID), raw, c.ttl).Err(); err != nil {
		return fmt.Errorf("cache set: %w", err)
	}
	return nil
}

func (c *AccountCache) key(id int64) string {
	return fmt.Sprintf("account:%d", id)
}
