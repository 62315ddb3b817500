package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"pezkuwi/internal/governance/models"
	"pezkuwi/internal/platform/postgres"
	id "pezkuwi/pkg/domain"
	"pezkuwi/pkg/platform/sentinel"
	txcontext "pezkuwi/pkg/platform/tx"
)

// PostgresStore persists proposals and votes in PostgreSQL.
type PostgresStore struct {
	db *sqlx.DB
}

func NewPostgres(db *sqlx.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

const proposalColumns = `proposal_id, title, description, category, votes_for, votes_against, status, created_at, ends_at`

type proposalRow struct {
	ProposalID   uuid.UUID `db:"proposal_id"`
	Title        string    `db:"title"`
	Description  string    `db:"description"`
	Category     string    `db:"category"`
	VotesFor     int64     `db:"votes_for"`
	VotesAgainst int64     `db:"votes_against"`
	Status       string    `db:"status"`
	CreatedAt    time.Time `db:"created_at"`
	EndsAt       time.Time `db:"ends_at"`
}

func (r proposalRow) toModel() models.Proposal {
	return models.Proposal{
		ID:           id.ProposalID(r.ProposalID),
		Title:        r.Title,
		Description:  r.Description,
		Category:     models.Category(r.Category),
		VotesFor:     r.VotesFor,
		VotesAgainst: r.VotesAgainst,
		Status:       models.Status(r.Status),
		CreatedAt:    r.CreatedAt,
		EndsAt:       r.EndsAt,
	}
}

func toModels(rows []proposalRow) []models.Proposal {
	out := make([]models.Proposal, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.toModel())
	}
	return out
}

func (s *PostgresStore) EnsureProposal(ctx context.Context, p *models.Proposal) error {
	_, err := txcontext.Conn(ctx, s.db).ExecContext(ctx, `
		INSERT INTO proposals (`+proposalColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (proposal_id) DO NOTHING`,
		uuid.UUID(p.ID), p.Title, p.Description, string(p.Category),
		p.VotesFor, p.VotesAgainst, string(p.Status), p.CreatedAt, p.EndsAt,
	)
	if err != nil {
		return fmt.Errorf("seed proposal: %w", err)
	}
	return nil
}

func (s *PostgresStore) ListActive(ctx context.Context, limit int) ([]models.Proposal, error) {
	if limit <= 0 {
		limit = models.ListLimit
	}
	var rows []proposalRow
	err := txcontext.Conn(ctx, s.db).SelectContext(ctx, &rows, `
		SELECT `+proposalColumns+`
		FROM proposals
		WHERE status = 'active'
		ORDER BY ends_at
		LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("list proposals: %w", err)
	}
	return toModels(rows), nil
}

func (s *PostgresStore) FindProposal(ctx context.Context, proposalID id.ProposalID) (*models.Proposal, error) {
	var row proposalRow
	err := txcontext.Conn(ctx, s.db).GetContext(ctx, &row,
		`SELECT `+proposalColumns+` FROM proposals WHERE proposal_id = $1`, uuid.UUID(proposalID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("find proposal: %w", err)
	}
	p := row.toModel()
	return &p, nil
}

func (s *PostgresStore) InsertVote(ctx context.Context, vote *models.Vote) error {
	_, err := txcontext.Conn(ctx, s.db).ExecContext(ctx, `
		INSERT INTO votes (vote_id, proposal_id, user_id, vote_type, voting_power, timestamp)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		uuid.UUID(vote.ID), uuid.UUID(vote.ProposalID), uuid.UUID(vote.UserID),
		string(vote.VoteType), vote.VotingPower, vote.Timestamp,
	)
	switch {
	case err == nil:
		return nil
	case postgres.IsUniqueViolation(err):
		return sentinel.ErrAlreadyUsed
	case postgres.IsForeignKeyViolation(err):
		return sentinel.ErrNotFound
	}
	return fmt.Errorf("insert vote: %w", err)
}

// AddVotes increments one tally column of an active proposal. A miss means
// the proposal is unknown or already closed.
func (s *PostgresStore) AddVotes(ctx context.Context, proposalID id.ProposalID, vote models.VoteType, power int) (*models.Proposal, error) {
	column := "votes_against"
	if vote == models.VoteFor {
		column = "votes_for"
	}
	query := fmt.Sprintf(`
		UPDATE proposals
		SET %[1]s = %[1]s + $2
		WHERE proposal_id = $1 AND status = 'active'
		RETURNING %[2]s`, column, proposalColumns)

	var row proposalRow
	err := txcontext.Conn(ctx, s.db).GetContext(ctx, &row, query, uuid.UUID(proposalID), power)
	if err == nil {
		p := row.toModel()
		return &p, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("tally vote: %w", err)
	}
	if _, findErr := s.FindProposal(ctx, proposalID); findErr != nil {
		return nil, findErr
	}
	return nil, sentinel.ErrInvalidState
}

func (s *PostgresStore) CountVotesByUser(ctx context.Context, userID id.UserID) (int, error) {
	var n int
	err := txcontext.Conn(ctx, s.db).GetContext(ctx, &n,
		`SELECT COUNT(*) FROM votes WHERE user_id = $1`, uuid.UUID(userID))
	if err != nil {
		return 0, fmt.Errorf("count votes: %w", err)
	}
	return n, nil
}

// ResolveExpired locks a batch of expired active proposals and closes them
// in a single update. Rows locked by a concurrent sweep are skipped.
func (s *PostgresStore) ResolveExpired(ctx context.Context, now time.Time, limit int) ([]models.Proposal, error) {
	if limit <= 0 {
		limit = models.ListLimit
	}
	conn := txcontext.Conn(ctx, s.db)

	var ids []string
	err := conn.SelectContext(ctx, &ids, `
		SELECT proposal_id::text
		FROM proposals
		WHERE status = 'active' AND ends_at <= $1
		ORDER BY ends_at
		LIMIT $2
		FOR UPDATE SKIP LOCKED`, now, limit)
	if err != nil {
		return nil, fmt.Errorf("select expired proposals: %w", err)
	}
	if len(ids) == 0 {
		return nil, nil
	}

	var rows []proposalRow
	err = conn.SelectContext(ctx, &rows, `
		UPDATE proposals
		SET status = CASE WHEN votes_for > votes_against THEN 'passed' ELSE 'rejected' END
		WHERE proposal_id = ANY($1::uuid[]) AND status = 'active'
		RETURNING `+proposalColumns, pq.Array(ids))
	if err != nil {
		return nil, fmt.Errorf("resolve proposals: %w", err)
	}
	return toModels(rows), nil
}
