package store

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pezkuwi/internal/transfer/models"
	id "pezkuwi/pkg/domain"
	"pezkuwi/pkg/platform/sentinel"
)

const wallet = id.WalletAddress("0x00112233445566778899aabbccddeeff00112233")

func newMockStore(t *testing.T) (*PostgresStore, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return NewPostgres(sqlx.NewDb(db, "pgx")), mock
}

func TestPostgresInsert(t *testing.T) {
	store, mock := newMockStore(t)
	now := time.Date(2026, 2, 1, 8, 0, 0, 0, time.UTC)
	txn := models.NewTransaction(wallet, "0xdead", id.Units(12), id.TokenPEZ, now)

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO transactions")).
		WithArgs(txn.ID.String(), wallet.String(), "0xdead", int64(1200), "PEZ", "completed", now).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, store.Insert(context.Background(), txn))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresInsertDuplicate(t *testing.T) {
	store, mock := newMockStore(t)
	txn := models.NewTransaction(wallet, "0xdead", id.Units(1), id.TokenHEZ, time.Now())

	mock.ExpectExec("INSERT INTO transactions").WillReturnError(&pgconn.PgError{Code: "23505"})

	require.ErrorIs(t, store.Insert(context.Background(), txn), sentinel.ErrAlreadyUsed)
}

func TestPostgresListByWallet(t *testing.T) {
	store, mock := newMockStore(t)
	now := time.Date(2026, 2, 1, 8, 0, 0, 0, time.UTC)
	cols := []string{"transaction_id", "from_address", "to_address", "amount", "token_type", "status", "timestamp"}

	mock.ExpectQuery(regexp.QuoteMeta("WHERE from_address = $1 OR to_address = $1")).
		WithArgs(wallet.String(), 50).
		WillReturnRows(sqlmock.NewRows(cols).
			AddRow("01J0000000000000000000000B", wallet.String(), "0xdead", int64(150), "HEZ", "completed", now).
			AddRow("01J0000000000000000000000A", "0xbeef", wallet.String(), int64(5), "PEZ", "completed", now))

	got, err := store.ListByWallet(context.Background(), wallet, 0)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, id.Amount(150), got[0].Amount)
	assert.Equal(t, id.TokenPEZ, got[1].TokenType)
	assert.Equal(t, wallet.String(), got[1].ToAddress)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresListByWalletError(t *testing.T) {
	store, mock := newMockStore(t)
	mock.ExpectQuery("FROM transactions").WillReturnError(errors.New("connection refused"))

	_, err := store.ListByWallet(context.Background(), wallet, 10)
	require.Error(t, err)
}
