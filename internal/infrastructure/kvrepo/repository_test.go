package kvrepo

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/civic-reports/internal/domain/entity"
	"github.com/oksasatya/civic-reports/internal/domain/repository"
	"github.com/oksasatya/civic-reports/internal/infrastructure/memory"
)

func TestReportRepositoryNamespace(t *testing.T) {
	ctx := context.Background()
	kv := memory.NewKVStore()
	repo := NewReportRepository(kv)

	rep := &entity.Report{ID: "42", Title: "Pothole", Category: entity.CategoryRoadways, Timestamp: time.Now().UTC()}
	require.NoError(t, repo.Save(ctx, rep))

	_, ok, err := kv.Get(ctx, "problem:42")
	require.NoError(t, err)
	assert.True(t, ok)

	// foreign namespaces are ignored by List
	require.NoError(t, kv.Set(ctx, "user:ann@example.com", json.RawMessage(`{"name":"Ann"}`)))

	list, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Pothole", list[0].Title)

	require.NoError(t, repo.Delete(ctx, "42"))
	list, err = repo.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestReportRepositoryListRejectsCorruptDocuments(t *testing.T) {
	ctx := context.Background()
	kv := memory.NewKVStore()
	require.NoError(t, kv.Set(ctx, "problem:1", json.RawMessage(`"not an object"`)))

	_, err := NewReportRepository(kv).List(ctx)
	assert.ErrorContains(t, err, "decode report")
}

func TestAccountRepository(t *testing.T) {
	ctx := context.Background()
	kv := memory.NewKVStore()
	repo := NewAccountRepository(kv)

	_, err := repo.GetByEmail(ctx, "ann@example.com")
	assert.ErrorIs(t, err, repository.ErrNotFound)

	require.NoError(t, repo.Create(ctx, &entity.Account{Name: "Ann", Email: "ann@example.com", Password: "pw"}))

	got, err := repo.GetByEmail(ctx, "ann@example.com")
	require.NoError(t, err)
	assert.Equal(t, "Ann", got.Name)
	assert.Equal(t, "pw", got.Password)

	_, ok, err := kv.Get(ctx, "user:ann@example.com")
	require.NoError(t, err)
	assert.True(t, ok)
}
