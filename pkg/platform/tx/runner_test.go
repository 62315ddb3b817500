package tx

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dErrors "pezkuwi/pkg/domain-errors"
)

func newMockDB(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return sqlx.NewDb(db, "pgx"), mock
}

func TestPostgresRunnerCommits(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectBegin()
	mock.ExpectExec("UPDATE accounts").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	runner := NewPostgresRunner(db, 0)
	err := runner.RunInTx(context.Background(), func(ctx context.Context) error {
		_, ok := From(ctx)
		require.True(t, ok, "transaction should be visible to stores")
		_, err := Conn(ctx, db).ExecContext(ctx, "UPDATE accounts SET hez_balance = 0")
		return err
	})

	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresRunnerRollsBackOnError(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectBegin()
	mock.ExpectRollback()

	boom := errors.New("boom")
	err := NewPostgresRunner(db, 0).RunInTx(context.Background(), func(ctx context.Context) error {
		return boom
	})

	require.ErrorIs(t, err, boom)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresRunnerNestedJoinsOuter(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectBegin()
	mock.ExpectCommit()

	runner := NewPostgresRunner(db, 0)
	err := runner.RunInTx(context.Background(), func(ctx context.Context) error {
		return runner.RunInTx(ctx, func(context.Context) error { return nil })
	})

	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRunnersRejectCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	db, _ := newMockDB(t)
	for name, runner := range map[string]Runner{
		"postgres": NewPostgresRunner(db, 0),
		"memory":   NewMemoryRunner(),
	} {
		t.Run(name, func(t *testing.T) {
			err := runner.RunInTx(ctx, func(context.Context) error {
				t.Fatal("body must not run")
				return nil
			})
			assert.True(t, dErrors.HasCode(err, dErrors.CodeTimeout))
		})
	}
}

func TestMemoryRunnerAllowsNesting(t *testing.T) {
	runner := NewMemoryRunner()
	calls := 0
	err := runner.RunInTx(context.Background(), func(ctx context.Context) error {
		calls++
		return runner.RunInTx(ctx, func(context.Context) error {
			calls++
			return nil
		})
	})
	require.NoError(t, err)
	assert.Equal(t, 2, calls)
}
