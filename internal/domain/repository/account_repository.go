package repository

import (
	"context"

	"github.com/oksasatya/civic-reports/internal/domain/entity"
)

// AccountRepository persists accounts under the user: namespace.
type AccountRepository interface {
	Create(ctx context.Context, a *entity.Account) error
	GetByEmail(ctx context.Context, email string) (*entity.Account, error)
}
