package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	accountmodels "pezkuwi/internal/account/models"
	"pezkuwi/internal/audit"
	"pezkuwi/internal/governance/metrics"
	"pezkuwi/internal/governance/models"
	id "pezkuwi/pkg/domain"
	dErrors "pezkuwi/pkg/domain-errors"
	"pezkuwi/pkg/platform/sentinel"
	txcontext "pezkuwi/pkg/platform/tx"
	"pezkuwi/pkg/requestcontext"
)

//go:generate mockgen -source=service.go -destination=mocks/mocks.go -package=mocks

var tracer = otel.Tracer("governance")

// resolveBatch bounds how many proposals one sweep closes.
const resolveBatch = 100

type Accounts interface {
	FindByID(ctx context.Context, userID id.UserID) (*accountmodels.User, error)
}

type Store interface {
	EnsureProposal(ctx context.Context, p *models.Proposal) error
	ListActive(ctx context.Context, limit int) ([]models.Proposal, error)
	FindProposal(ctx context.Context, proposalID id.ProposalID) (*models.Proposal, error)
	InsertVote(ctx context.Context, vote *models.Vote) error
	AddVotes(ctx context.Context, proposalID id.ProposalID, vote models.VoteType, power int) (*models.Proposal, error)
	ResolveExpired(ctx context.Context, now time.Time, limit int) ([]models.Proposal, error)
}

// TrustRefresher recomputes a user's stored trust score.
type TrustRefresher interface {
	Refresh(ctx context.Context, userID id.UserID) (int, error)
}

type AuditPublisher interface {
	Emit(ctx context.Context, event audit.Event) error
}

// Service runs proposal voting. Only citizens vote, once per proposal, with
// their trust score as weight.
type Service struct {
	accounts       Accounts
	proposals      Store
	tx             txcontext.Runner
	trust          TrustRefresher
	logger         *slog.Logger
	auditPublisher AuditPublisher
	metrics        *metrics.Metrics
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithAuditPublisher(publisher AuditPublisher) Option {
	return func(s *Service) {
		s.auditPublisher = publisher
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

// WithTrustRefresher recomputes the voter's trust score after each vote.
func WithTrustRefresher(trust TrustRefresher) Option {
	return func(s *Service) {
		s.trust = trust
	}
}

func New(accounts Accounts, proposals Store, runner txcontext.Runner, opts ...Option) *Service {
	s := &Service{accounts: accounts, proposals: proposals, tx: runner}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Seed stores proposals that do not exist yet.
func (s *Service) Seed(ctx context.Context, proposals []models.Proposal) error {
	for i := range proposals {
		if err := s.proposals.EnsureProposal(ctx, &proposals[i]); err != nil {
			return fmt.Errorf("seed proposal %s: %w", proposals[i].ID, err)
		}
	}
	return nil
}

func (s *Service) ListActiveProposals(ctx context.Context) ([]models.Proposal, error) {
	ctx, span := tracer.Start(ctx, "Governance.Service.ListActiveProposals")
	defer span.End()

	proposals, err := s.proposals.ListActive(ctx, models.ListLimit)
	if err != nil {
		span.RecordError(err)
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list proposals")
	}
	if proposals == nil {
		proposals = []models.Proposal{}
	}
	return proposals, nil
}

// CastVote records a ballot and adds the voter's trust score to the chosen
// side. Checks run in a fixed order: voter, citizenship, proposal, proposal
// state, direction, duplicate ballot.
func (s *Service) CastVote(ctx context.Context, userID id.UserID, proposalID id.ProposalID, direction string) (*models.Vote, error) {
	ctx, span := tracer.Start(ctx, "Governance.Service.CastVote",
		trace.WithAttributes(
			attribute.String("user_id", userID.String()),
			attribute.String("proposal_id", proposalID.String()),
		))
	defer span.End()

	user, err := s.accounts.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "User not found")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load account")
	}
	if !user.IsCitizen {
		return nil, dErrors.New(dErrors.CodeForbidden, "Only citizens can vote")
	}

	now := requestcontext.Now(ctx)
	proposal, err := s.proposals.FindProposal(ctx, proposalID)
	if err != nil {
		return nil, wrapProposalErr(err)
	}
	if !proposal.OpenAt(now) {
		return nil, dErrors.New(dErrors.CodeConflict, "Proposal is not active")
	}
	voteType, err := models.ParseVoteType(direction)
	if err != nil {
		return nil, err
	}

	vote := &models.Vote{
		ID:          id.NewVoteID(),
		ProposalID:  proposalID,
		UserID:      userID,
		VoteType:    voteType,
		VotingPower: user.TrustScore,
		Timestamp:   now,
	}
	err = s.tx.RunInTx(ctx, func(ctx context.Context) error {
		// The sweep may have closed the proposal since the check above.
		current, err := s.proposals.FindProposal(ctx, proposalID)
		if err != nil {
			return err
		}
		if !current.OpenAt(now) {
			return sentinel.ErrInvalidState
		}
		if err := s.proposals.InsertVote(ctx, vote); err != nil {
			return err
		}
		_, err = s.proposals.AddVotes(ctx, proposalID, voteType, vote.VotingPower)
		return err
	})
	if err != nil {
		span.RecordError(err)
		if errors.Is(err, sentinel.ErrAlreadyUsed) {
			return nil, dErrors.New(dErrors.CodeConflict, "Already voted on this proposal")
		}
		return nil, wrapProposalErr(err)
	}

	s.metrics.IncrementVotes(string(voteType))
	s.refreshTrust(ctx, userID)
	s.emit(ctx, audit.Event{
		Action:  audit.ActionVoteCast,
		UserID:  userID,
		Subject: proposalID.String(),
		Detail:  fmt.Sprintf("%s with power %d", voteType, vote.VotingPower),
	})
	return vote, nil
}

// ResolveExpired closes every active proposal whose window ended at or
// before now: passed when votes for exceed votes against, else rejected.
func (s *Service) ResolveExpired(ctx context.Context, now time.Time) ([]models.Proposal, error) {
	ctx, span := tracer.Start(ctx, "Governance.Service.ResolveExpired")
	defer span.End()
	start := time.Now()
	defer func() { s.metrics.ObserveResolveDuration(time.Since(start).Seconds()) }()

	var resolved []models.Proposal
	err := s.tx.RunInTx(ctx, func(ctx context.Context) error {
		var err error
		resolved, err = s.proposals.ResolveExpired(ctx, now, resolveBatch)
		return err
	})
	if err != nil {
		span.RecordError(err)
		if _, ok := dErrors.As(err); ok {
			return nil, err
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to resolve proposals")
	}

	for _, p := range resolved {
		s.metrics.IncrementResolved(string(p.Status))
		if s.logger != nil {
			s.logger.InfoContext(ctx, "proposal resolved",
				"proposal_id", p.ID.String(),
				"status", string(p.Status),
				"votes_for", p.VotesFor,
				"votes_against", p.VotesAgainst,
			)
		}
		s.emit(ctx, audit.Event{
			Action:  audit.ActionProposalResolved,
			Subject: p.ID.String(),
			Detail:  string(p.Status),
		})
	}
	return resolved, nil
}

func (s *Service) refreshTrust(ctx context.Context, userID id.UserID) {
	if s.trust == nil {
		return
	}
	if _, err := s.trust.Refresh(ctx, userID); err != nil && s.logger != nil {
		s.logger.WarnContext(ctx, "failed to refresh trust score after vote",
			"user_id", userID.String(),
			"error", err,
		)
	}
}

func (s *Service) emit(ctx context.Context, event audit.Event) {
	if s.auditPublisher == nil {
		return
	}
	if err := s.auditPublisher.Emit(ctx, event); err != nil && s.logger != nil {
		s.logger.ErrorContext(ctx, "failed to emit audit event",
			"action", string(event.Action),
			"error", err,
		)
	}
}

func wrapProposalErr(err error) error {
	switch {
	case errors.Is(err, sentinel.ErrNotFound):
		return dErrors.New(dErrors.CodeNotFound, "Proposal not found")
	case errors.Is(err, sentinel.ErrInvalidState):
		return dErrors.New(dErrors.CodeConflict, "Proposal is not active")
	}
	if _, ok := dErrors.As(err); ok {
		return err
	}
	return dErrors.Wrap(err, dErrors.CodeInternal, "failed to record vote")
}
