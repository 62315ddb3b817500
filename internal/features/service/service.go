package service

import (
	"context"
	"errors"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	accountmodels "pezkuwi/internal/account/models"
	"pezkuwi/internal/features"
	"pezkuwi/internal/features/metrics"
	id "pezkuwi/pkg/domain"
	dErrors "pezkuwi/pkg/domain-errors"
	"pezkuwi/pkg/platform/sentinel"
)

//go:generate mockgen -source=service.go -destination=mocks/mocks.go -package=mocks

var tracer = otel.Tracer("features")

type Accounts interface {
	FindByID(ctx context.Context, userID id.UserID) (*accountmodels.User, error)
}

type Service struct {
	accounts Accounts
	metrics  *metrics.Metrics
}

type Option func(*Service)

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

func New(accounts Accounts, opts ...Option) *Service {
	s := &Service{accounts: accounts}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// CheckAccess reports whether the user may open feature.
func (s *Service) CheckAccess(ctx context.Context, userID id.UserID, feature string) (*features.Decision, error) {
	ctx, span := tracer.Start(ctx, "Features.Service.CheckAccess",
		trace.WithAttributes(attribute.String("feature", feature)))
	defer span.End()

	user, err := s.accounts.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "User not found")
		}
		span.RecordError(err)
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load account")
	}

	decision := features.Decide(feature, user.IsCitizen)
	s.metrics.IncrementChecks(string(features.TierOf(feature)), decision.HasAccess)
	return &decision, nil
}
