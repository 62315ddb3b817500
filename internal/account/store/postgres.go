package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"pezkuwi/internal/account/models"
	"pezkuwi/internal/platform/postgres"
	id "pezkuwi/pkg/domain"
	"pezkuwi/pkg/platform/sentinel"
	txcontext "pezkuwi/pkg/platform/tx"
)

// PostgresStore persists accounts in PostgreSQL.
type PostgresStore struct {
	db *sqlx.DB
}

func NewPostgres(db *sqlx.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

const userColumns = `user_id, email, preferred_language, wallet_address, hez_balance, pez_balance,
	trust_score, is_citizen, kyc_status, kyc_hash, created_at, updated_at`

type userRow struct {
	UserID            uuid.UUID      `db:"user_id"`
	Email             sql.NullString `db:"email"`
	PreferredLanguage string         `db:"preferred_language"`
	WalletAddress     string         `db:"wallet_address"`
	HEZBalance        int64          `db:"hez_balance"`
	PEZBalance        int64          `db:"pez_balance"`
	TrustScore        int            `db:"trust_score"`
	IsCitizen         bool           `db:"is_citizen"`
	KYCStatus         string         `db:"kyc_status"`
	KYCHash           sql.NullString `db:"kyc_hash"`
	CreatedAt         time.Time      `db:"created_at"`
	UpdatedAt         time.Time      `db:"updated_at"`
}

func (r userRow) toModel() *models.User {
	u := &models.User{
		ID:                id.UserID(r.UserID),
		PreferredLanguage: r.PreferredLanguage,
		WalletAddress:     id.WalletAddress(r.WalletAddress),
		HEZBalance:        id.Amount(r.HEZBalance),
		PEZBalance:        id.Amount(r.PEZBalance),
		TrustScore:        r.TrustScore,
		IsCitizen:         r.IsCitizen,
		KYCStatus:         models.KYCStatus(r.KYCStatus),
		CreatedAt:         r.CreatedAt,
		UpdatedAt:         r.UpdatedAt,
	}
	if r.Email.Valid {
		u.Email = &r.Email.String
	}
	if r.KYCHash.Valid {
		u.KYCHash = &r.KYCHash.String
	}
	return u
}

func nullable(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

func (s *PostgresStore) Create(ctx context.Context, user *models.User) error {
	query := `INSERT INTO accounts (` + userColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := txcontext.Conn(ctx, s.db).ExecContext(ctx, query,
		uuid.UUID(user.ID),
		nullable(user.Email),
		user.PreferredLanguage,
		string(user.WalletAddress),
		int64(user.HEZBalance),
		int64(user.PEZBalance),
		user.TrustScore,
		user.IsCitizen,
		string(user.KYCStatus),
		nullable(user.KYCHash),
		user.CreatedAt,
		user.UpdatedAt,
	)
	if err != nil {
		if postgres.IsUniqueViolation(err) {
			return sentinel.ErrAlreadyUsed
		}
		return fmt.Errorf("insert account: %w", err)
	}
	return nil
}

func (s *PostgresStore) FindByID(ctx context.Context, userID id.UserID) (*models.User, error) {
	return s.findOne(ctx, `SELECT `+userColumns+` FROM accounts WHERE user_id = $1`, uuid.UUID(userID))
}

func (s *PostgresStore) FindByWallet(ctx context.Context, wallet id.WalletAddress) (*models.User, error) {
	return s.findOne(ctx, `SELECT `+userColumns+` FROM accounts WHERE wallet_address = $1`, string(wallet))
}

func (s *PostgresStore) findOne(ctx context.Context, query string, arg any) (*models.User, error) {
	var row userRow
	if err := txcontext.Conn(ctx, s.db).GetContext(ctx, &row, query, arg); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("find account: %w", err)
	}
	return row.toModel(), nil
}

// balanceColumn maps a token to its column. Only the two known tokens reach SQL.
func balanceColumn(token id.TokenType) (string, error) {
	switch token {
	case id.TokenHEZ:
		return "hez_balance", nil
	case id.TokenPEZ:
		return "pez_balance", nil
	}
	return "", fmt.Errorf("unknown token type %q", token)
}

// Debit is a conditional atomic decrement: the row changes only if the
// balance covers amount. A miss is disambiguated into not-found or
// insufficient funds.
func (s *PostgresStore) Debit(ctx context.Context, userID id.UserID, token id.TokenType, amount id.Amount, now time.Time) (*models.User, error) {
	column, err := balanceColumn(token)
	if err != nil {
		return nil, err
	}
	query := fmt.Sprintf(`
		UPDATE accounts
		SET %[1]s = %[1]s - $2, updated_at = $3
		WHERE user_id = $1 AND %[1]s >= $2
		RETURNING %[2]s`, column, userColumns)

	var row userRow
	err = txcontext.Conn(ctx, s.db).GetContext(ctx, &row, query, uuid.UUID(userID), int64(amount), now)
	if err == nil {
		return row.toModel(), nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("debit account: %w", err)
	}
	if _, findErr := s.FindByID(ctx, userID); findErr != nil {
		return nil, findErr
	}
	return nil, sentinel.ErrInsufficientFunds
}

// Execute loads the row FOR UPDATE, applies mutate and writes the mutable
// columns back. It joins the transaction in ctx or opens its own.
func (s *PostgresStore) Execute(ctx context.Context, userID id.UserID, mutate func(*models.User) error) (*models.User, error) {
	if tx, ok := txcontext.From(ctx); ok {
		return s.execute(ctx, tx, userID, mutate)
	}

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin account update: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()
	user, err := s.execute(ctx, tx, userID, mutate)
	if err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit account update: %w", err)
	}
	return user, nil
}

func (s *PostgresStore) execute(ctx context.Context, tx *sqlx.Tx, userID id.UserID, mutate func(*models.User) error) (*models.User, error) {
	var row userRow
	err := tx.GetContext(ctx, &row, `SELECT `+userColumns+` FROM accounts WHERE user_id = $1 FOR UPDATE`, uuid.UUID(userID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("lock account: %w", err)
	}

	user := row.toModel()
	if err := mutate(user); err != nil {
		return nil, err
	}

	_, err = tx.ExecContext(ctx, `
		UPDATE accounts
		SET email = $2, preferred_language = $3, trust_score = $4, is_citizen = $5,
			kyc_status = $6, kyc_hash = $7, updated_at = $8
		WHERE user_id = $1`,
		uuid.UUID(user.ID),
		nullable(user.Email),
		user.PreferredLanguage,
		user.TrustScore,
		user.IsCitizen,
		string(user.KYCStatus),
		nullable(user.KYCHash),
		user.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("update account: %w", err)
	}
	return user, nil
}
