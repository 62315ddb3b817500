package service

import (
	"context"
	"errors"
	"log/slog"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	accountmodels "pezkuwi/internal/account/models"
	"pezkuwi/internal/audit"
	"pezkuwi/internal/verification/metrics"
	"pezkuwi/internal/verification/models"
	id "pezkuwi/pkg/domain"
	dErrors "pezkuwi/pkg/domain-errors"
	"pezkuwi/pkg/platform/sentinel"
	txcontext "pezkuwi/pkg/platform/tx"
	"pezkuwi/pkg/requestcontext"
)

var tracer = otel.Tracer("verification")

type Accounts interface {
	Execute(ctx context.Context, userID id.UserID, mutate func(*accountmodels.User) error) (*accountmodels.User, error)
}

// TrustRefresher recomputes and stores a user's trust score.
type TrustRefresher interface {
	Refresh(ctx context.Context, userID id.UserID) (int, error)
}

type AuditPublisher interface {
	Emit(ctx context.Context, event audit.Event) error
}

// Result is the outcome of an approved claim.
type Result struct {
	Fingerprint   string
	NewTrustScore int
}

// Service approves citizenship claims. Every well-formed claim is approved;
// there is no review step.
type Service struct {
	accounts       Accounts
	trust          TrustRefresher
	tx             txcontext.Runner
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

func New(accounts Accounts, trust TrustRefresher, runner txcontext.Runner, opts ...Option) *Service {
	s := &Service{accounts: accounts, trust: trust, tx: runner}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// SubmitVerification marks the user a citizen, stores the claim fingerprint
// and recomputes the trust score, all in one transaction. A repeat
// submission overwrites the fingerprint.
func (s *Service) SubmitVerification(ctx context.Context, userID id.UserID, claim models.Claim) (*Result, error) {
	ctx, span := tracer.Start(ctx, "Verification.Service.SubmitVerification")
	defer span.End()
	span.SetAttributes(attribute.String("user_id", userID.String()))

	claim.Normalize()
	if err := claim.Validate(); err != nil {
		return nil, err
	}
	fingerprint := claim.Fingerprint()
	now := requestcontext.Now(ctx)

	var score int
	err := s.tx.RunInTx(ctx, func(ctx context.Context) error {
		_, err := s.accounts.Execute(ctx, userID, func(u *accountmodels.User) error {
			u.ApproveCitizenship(fingerprint, now)
			return nil
		})
		if err != nil {
			return err
		}
		score, err = s.trust.Refresh(ctx, userID)
		return err
	})
	if err != nil {
		span.RecordError(err)
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "User not found")
		}
		if _, ok := dErrors.As(err); ok {
			return nil, err
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to approve citizenship")
	}

	s.metrics.IncrementApprovals()
	s.emit(ctx, audit.Event{
		Action:  audit.ActionCitizenshipApproved,
		UserID:  userID,
		Subject: fingerprint,
	})
	return &Result{Fingerprint: fingerprint, NewTrustScore: score}, nil
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
