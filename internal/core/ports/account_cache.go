package ports

import (
	"context"

	"github.com/shmakov/account-service/internal/core/domain"
)

// AccountCache is a read-through cache in front of AccountRepository.
// A miss is reported as (nil, false, nil).
type AccountCache interface {
	Get(ctx context.Context, id int64) (*domain.Account, bool, error)
	Set(ctx context.Context, account *domain.Account) error
}
