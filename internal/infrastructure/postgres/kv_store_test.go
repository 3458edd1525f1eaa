package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"testing"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockStore(t *testing.T) (*KVStore, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return NewKVStore(db), mock
}

func TestKVStoreGet(t *testing.T) {
	s, mock := newMockStore(t)

	mock.ExpectQuery(`SELECT value FROM kv_store WHERE key = \$1`).
		WithArgs("user:ann@example.com").
		WillReturnRows(sqlmock.NewRows([]string{"value"}).AddRow([]byte(`{"name":"Ann"}`)))
	mock.ExpectQuery(`SELECT value FROM kv_store WHERE key = \$1`).
		WithArgs("user:missing").
		WillReturnError(sql.ErrNoRows)

	v, ok, err := s.Get(context.Background(), "user:ann@example.com")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.JSONEq(t, `{"name":"Ann"}`, string(v))

	_, ok, err = s.Get(context.Background(), "user:missing")
	require.NoError(t, err)
	assert.False(t, ok)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestKVStoreSetUpserts(t *testing.T) {
	s, mock := newMockStore(t)

	mock.ExpectExec(`INSERT INTO kv_store \(key, value\)\s+VALUES \(\$1, \$2\)\s+ON CONFLICT \(key\) DO UPDATE SET value = EXCLUDED.value`).
		WithArgs("problem:1", `{"id":"1"}`).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, s.Set(context.Background(), "problem:1", json.RawMessage(`{"id":"1"}`)))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestKVStoreDeleteIgnoresMissingRows(t *testing.T) {
	s, mock := newMockStore(t)

	mock.ExpectExec(`DELETE FROM kv_store WHERE key = \$1`).
		WithArgs("problem:404").
		WillReturnResult(sqlmock.NewResult(0, 0))

	require.NoError(t, s.Delete(context.Background(), "problem:404"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestKVStoreScanPrefix(t *testing.T) {
	s, mock := newMockStore(t)

	mock.ExpectQuery(`SELECT value FROM kv_store\s+WHERE key LIKE \$1 ESCAPE '\\'\s+ORDER BY key`).
		WithArgs("problem:%").
		WillReturnRows(sqlmock.NewRows([]string{"value"}).
			AddRow([]byte(`{"id":"1"}`)).
			AddRow([]byte(`{"id":"2"}`)))

	got, err := s.ScanPrefix(context.Background(), "problem:")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.JSONEq(t, `{"id":"2"}`, string(got[1]))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestKVStoreScanPrefixError(t *testing.T) {
	s, mock := newMockStore(t)

	mock.ExpectQuery(`SELECT value FROM kv_store`).WillReturnError(errors.New("connection reset"))

	_, err := s.ScanPrefix(context.Background(), "problem:")
	assert.EqualError(t, err, "connection reset")
}

func TestLikePrefixEscapesWildcards(t *testing.T) {
	assert.Equal(t, `user:a\_b\%c%`, likePrefix("user:a_b%c"))
	assert.Equal(t, `x\\%`, likePrefix(`x\`))
}
