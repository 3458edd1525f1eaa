package kvrepo

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/oksasatya/civic-reports/internal/domain/entity"
	"github.com/oksasatya/civic-reports/internal/domain/repository"
)

type AccountRepository struct {
	kv repository.KVStore
}

func NewAccountRepository(kv repository.KVStore) *AccountRepository {
	return &AccountRepository{kv: kv}
}

// Create stores a. The existence check lives in the service; this is a
// plain write.
func (r *AccountRepository) Create(ctx context.Context, a *entity.Account) error {
	b, err := json.Marshal(a)
	if err != nil {
		return err
	}
	return r.kv.Set(ctx, accountKey(a.Email), b)
}

func (r *AccountRepository) GetByEmail(ctx context.Context, email string) (*entity.Account, error) {
	doc, ok, err := r.kv.Get(ctx, accountKey(email))
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, repository.ErrNotFound
	}
	a := &entity.Account{}
	if err := json.Unmarshal(doc, a); err != nil {
		return nil, fmt.Errorf("decode account: %w", err)
	}
	return a, nil
}

var _ repository.AccountRepository = (*AccountRepository)(nil)
