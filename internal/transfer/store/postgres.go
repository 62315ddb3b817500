package store

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"pezkuwi/internal/platform/postgres"
	"pezkuwi/internal/transfer/models"
	id "pezkuwi/pkg/domain"
	"pezkuwi/pkg/platform/sentinel"
	txcontext "pezkuwi/pkg/platform/tx"
)

// PostgresStore persists transactions in PostgreSQL.
type PostgresStore struct {
	db *sqlx.DB
}

func NewPostgres(db *sqlx.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

type transactionRow struct {
	TransactionID string    `db:"transaction_id"`
	FromAddress   string    `db:"from_address"`
	ToAddress     string    `db:"to_address"`
	Amount        int64     `db:"amount"`
	TokenType     string    `db:"token_type"`
	Status        string    `db:"status"`
	Timestamp     time.Time `db:"timestamp"`
}

func (r transactionRow) toModel() models.Transaction {
	return models.Transaction{
		ID:          id.TransactionID(r.TransactionID),
		FromAddress: id.WalletAddress(r.FromAddress),
		ToAddress:   r.ToAddress,
		Amount:      id.Amount(r.Amount),
		TokenType:   id.TokenType(r.TokenType),
		Status:      r.Status,
		Timestamp:   r.Timestamp,
	}
}

func (s *PostgresStore) Insert(ctx context.Context, txn *models.Transaction) error {
	_, err := txcontext.Conn(ctx, s.db).ExecContext(ctx, `
		INSERT INTO transactions (transaction_id, from_address, to_address, amount, token_type, status, timestamp)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		txn.ID.String(),
		txn.FromAddress.String(),
		txn.ToAddress,
		int64(txn.Amount),
		string(txn.TokenType),
		txn.Status,
		txn.Timestamp,
	)
	if err != nil {
		if postgres.IsUniqueViolation(err) {
			return sentinel.ErrAlreadyUsed
		}
		return fmt.Errorf("insert transaction: %w", err)
	}
	return nil
}

// ListByWallet orders by transaction id; ULIDs sort by creation time.
func (s *PostgresStore) ListByWallet(ctx context.Context, wallet id.WalletAddress, limit int) ([]models.Transaction, error) {
	if limit <= 0 {
		limit = models.HistoryLimit
	}
	var rows []transactionRow
	err := txcontext.Conn(ctx, s.db).SelectContext(ctx, &rows, `
		SELECT transaction_id, from_address, to_address, amount, token_type, status, timestamp
		FROM transactions
		WHERE from_address = $1 OR to_address = $1
		ORDER BY transaction_id DESC
		LIMIT $2`, wallet.String(), limit)
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	out := make([]models.Transaction, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.toModel())
	}
	return out, nil
}
