package service

import (
	"context"
	"errors"
	"log/slog"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"golang.org/x/sync/errgroup"

	accountmodels "pezkuwi/internal/account/models"
	"pezkuwi/internal/trustscore"
	"pezkuwi/internal/trustscore/metrics"
	id "pezkuwi/pkg/domain"
	dErrors "pezkuwi/pkg/domain-errors"
	"pezkuwi/pkg/platform/sentinel"
	txcontext "pezkuwi/pkg/platform/tx"
	"pezkuwi/pkg/requestcontext"
)

//go:generate mockgen -source=service.go -destination=mocks/mocks.go -package=mocks

var tracer = otel.Tracer("trustscore")

type Accounts interface {
	FindByID(ctx context.Context, userID id.UserID) (*accountmodels.User, error)
	Execute(ctx context.Context, userID id.UserID, mutate func(*accountmodels.User) error) (*accountmodels.User, error)
}

// VoteCounter counts ballots a user has cast.
type VoteCounter interface {
	CountVotesByUser(ctx context.Context, userID id.UserID) (int, error)
}

// CompletionCounter counts courses a user has finished.
type CompletionCounter interface {
	CountCompleted(ctx context.Context, userID id.UserID) (int, error)
}

// Service derives trust scores from live activity and keeps the stored
// score in step with them.
type Service struct {
	accounts Accounts
	votes    VoteCounter
	courses  CompletionCounter
	logger   *slog.Logger
	metrics  *metrics.Metrics
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

func New(accounts Accounts, votes VoteCounter, courses CompletionCounter, opts ...Option) *Service {
	s := &Service{accounts: accounts, votes: votes, courses: courses}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Breakdown itemizes the user's current score. When the stored score has
// drifted from the computed total it is rewritten.
func (s *Service) Breakdown(ctx context.Context, userID id.UserID) (*trustscore.Breakdown, error) {
	ctx, span := tracer.Start(ctx, "TrustScore.Service.Breakdown")
	defer span.End()
	span.SetAttributes(attribute.String("user_id", userID.String()))

	user, err := s.accounts.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "User not found")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load account")
	}

	completed, votes, err := s.countActivity(ctx, userID)
	if err != nil {
		span.RecordError(err)
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to count activity")
	}

	b := trustscore.Compute(trustscore.Inputs{
		IsCitizen:        user.IsCitizen,
		CompletedCourses: completed,
		VotesCast:        votes,
	})
	s.metrics.ObserveScore(b.TotalScore)

	if user.TrustScore != b.TotalScore {
		if err := s.store(ctx, userID, b.TotalScore); err != nil {
			span.RecordError(err)
			return nil, err
		}
	}
	return &b, nil
}

// countActivity runs both counts concurrently unless a transaction is open
// in ctx. A transaction holds a single connection, which cannot serve two
// queries at once.
func (s *Service) countActivity(ctx context.Context, userID id.UserID) (completed, votes int, err error) {
	if _, inTx := txcontext.From(ctx); inTx {
		if completed, err = s.courses.CountCompleted(ctx, userID); err != nil {
			return 0, 0, err
		}
		if votes, err = s.votes.CountVotesByUser(ctx, userID); err != nil {
			return 0, 0, err
		}
		return completed, votes, nil
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		n, err := s.courses.CountCompleted(gctx, userID)
		completed = n
		return err
	})
	g.Go(func() error {
		n, err := s.votes.CountVotesByUser(gctx, userID)
		votes = n
		return err
	})
	if err := g.Wait(); err != nil {
		return 0, 0, err
	}
	return completed, votes, nil
}

// Refresh recomputes and stores the user's score, returning the new total.
func (s *Service) Refresh(ctx context.Context, userID id.UserID) (int, error) {
	b, err := s.Breakdown(ctx, userID)
	if err != nil {
		return 0, err
	}
	return b.TotalScore, nil
}

func (s *Service) store(ctx context.Context, userID id.UserID, score int) error {
	now := requestcontext.Now(ctx)
	_, err := s.accounts.Execute(ctx, userID, func(u *accountmodels.User) error {
		u.TrustScore = score
		u.UpdatedAt = now
		return nil
	})
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return dErrors.New(dErrors.CodeNotFound, "User not found")
		}
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to store trust score")
	}
	s.metrics.IncrementScoreUpdates()
	if s.logger != nil {
		s.logger.InfoContext(ctx, "trust score updated",
			"user_id", userID.String(),
			"trust_score", score,
		)
	}
	return nil
}
