package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/shmakov/account-service/internal/core/domain"
	"github.com/shmakov/account-service/internal/core/ports"
	"github.com/shmakov/account-service/internal/pkg/metrics"
)

// AccountService implements account creation and lookup.
// cache and audit are optional; a nil value disables them.
type AccountService struct {
	repo   ports.AccountRepository
	cache  ports.AccountCache
	audit  ports.AuditLog
	logger zerolog.Logger
	now    func() time.Time
}

func NewAccountService(repo ports.AccountRepository, cache ports.AccountCache, audit ports.AuditLog, logger zerolog.Logger) *AccountService {
	return &AccountService{
		repo:   repo,
		cache:  cache,
		audit:  audit,
		logger: logger,
		now:    time.Now,
	}
}

// CreateAccount hashes the password and inserts a new account. Cache and
// audit writes happen after the insert and never fail the call.
func (s *AccountService) CreateAccount(ctx context.Context, input ports.CreateAccountInput) (*domain.Account, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return nil, domain.ErrPasswordTooLong
		}
		return nil, fmt.Errorf("hash password: %w", err)
	}

	account := &domain.Account{
		Username:     input.Username,
		PasswordHash: string(hash),
		Email:        input.Email,
	}

	timer := prometheus.NewTimer(metrics.StoreOperationDuration.WithLabelValues("insert"))
	created, err := s.repo.Insert(ctx, account)
	timer.ObserveDuration()
	if err != nil {
		s.logger.Error().Err(err).Str("username", input.Username).Msg("failed to create account")
		return nil, err
	}

	metrics.AccountsCreatedTotal.Inc()
	s.logger.Info().Int64("account_id", created.ID).Msg("account created")

	s.cacheAccount(ctx, created)

	if s.audit != nil {
		entry := domain.AuditEntry{
			Action:     domain.AuditAccountCreated,
			AccountID:  created.ID,
			Username:   created.Username,
			OccurredAt: s.now().UTC(),
		}
		if err := s.audit.Record(ctx, entry); err != nil {
			metrics.SideEffectErrorsTotal.WithLabelValues("audit").Inc()
			s.logger.Warn().Err(err).Int64("account_id", created.ID).Msg("failed to record audit entry")
		}
	}

	return created, nil
}

// GetAccount returns the account with the given id, consulting the cache
// first. A missing account is reported as domain.ErrAccountNotFound.
func (s *AccountService) GetAccount(ctx context.Context, id int64) (*domain.Account, error) {
	if s.cache != nil {
		cached, ok, err := s.cache.Get(ctx, id)
		switch {
		case err != nil:
			s.logger.Warn().Err(err).Int64("account_id", id).Msg("cache lookup failed, falling back to store")
		case ok:
			metrics.AccountLookupsTotal.WithLabelValues(metrics.LookupHit).Inc()
			return cached, nil
		}
	}

	timer := prometheus.NewTimer(metrics.StoreOperationDuration.WithLabelValues("find_by_id"))
	account, err := s.repo.FindByID(ctx, id)
	timer.ObserveDuration()
	if err != nil {
		if errors.Is(err, domain.ErrAccountNotFound) {
			metrics.AccountLookupsTotal.WithLabelValues(metrics.LookupNotFound).Inc()
			return nil, err
		}
		metrics.AccountLookupsTotal.WithLabelValues(metrics.LookupError).Inc()
		return nil, fmt.Errorf("get account %d: %w", id, err)
	}

	metrics.AccountLookupsTotal.WithLabelValues(metrics.LookupMiss).Inc()
	s.cacheAccount(ctx, account)

	return account, nil
}

func (s *AccountService) cacheAccount(ctx context.Context, account *domain.Account) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Set(ctx, account); err != nil {
		metrics.SideEffectErrorsTotal.WithLabelValues("cache").Inc()
		s.logger.Warn().Err(err).Int64("account_id", account.ID).Msg("failed to cache account")
	}
}
