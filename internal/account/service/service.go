package service

import (
	"context"
	"errors"
	"log/slog"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"pezkuwi/internal/account/metrics"
	"pezkuwi/internal/account/models"
	"pezkuwi/internal/audit"
	id "pezkuwi/pkg/domain"
	dErrors "pezkuwi/pkg/domain-errors"
	"pezkuwi/pkg/email"
	"pezkuwi/pkg/platform/sentinel"
	"pezkuwi/pkg/requestcontext"
)

var tracer = otel.Tracer("account")

// walletAttempts bounds retries on a wallet address collision.
const walletAttempts = 3

type Store interface {
	Create(ctx context.Context, user *models.User) error
	FindByID(ctx context.Context, userID id.UserID) (*models.User, error)
	FindByWallet(ctx context.Context, wallet id.WalletAddress) (*models.User, error)
}

type AuditPublisher interface {
	Emit(ctx context.Context, event audit.Event) error
}

// Service owns account creation and lookups.
type Service struct {
	users          Store
	logger         *slog.Logger
	auditPublisher AuditPublisher
	metrics        *metrics.Metrics
	newWallet      func() (id.WalletAddress, error)
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

// WithWalletGenerator replaces the random address source; tests use it to
// force collisions.
func WithWalletGenerator(fn func() (id.WalletAddress, error)) Option {
	return func(s *Service) {
		s.newWallet = fn
	}
}

func New(users Store, opts ...Option) *Service {
	s := &Service{users: users, newWallet: id.NewWalletAddress}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// CreateAccount opens an account with a fresh wallet address and the seed grant.
func (s *Service) CreateAccount(ctx context.Context, emailAddr *string, language string) (*models.User, error) {
	ctx, span := tracer.Start(ctx, "Account.Service.CreateAccount")
	defer span.End()

	if emailAddr != nil {
		normalized := email.Normalize(*emailAddr)
		if !email.IsValid(normalized) {
			return nil, dErrors.New(dErrors.CodeInvalidInput, "invalid email address")
		}
		emailAddr = &normalized
	}

	now := requestcontext.Now(ctx)
	var lastErr error
	for attempt := 0; attempt < walletAttempts; attempt++ {
		wallet, err := s.newWallet()
		if err != nil {
			span.RecordError(err)
			return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to generate wallet address")
		}

		user := models.NewUser(id.NewUserID(), wallet, emailAddr, language, now)
		err = s.users.Create(ctx, user)
		if err == nil {
			span.SetAttributes(attribute.String("user_id", user.ID.String()))
			s.emit(ctx, audit.Event{Action: audit.ActionAccountCreated, UserID: user.ID, Subject: wallet.String()})
			s.metrics.IncrementAccountsCreated()
			return user, nil
		}
		if !errors.Is(err, sentinel.ErrAlreadyUsed) {
			span.RecordError(err)
			return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to create account")
		}
		lastErr = err
	}
	span.RecordError(lastErr)
	return nil, dErrors.Wrap(lastErr, dErrors.CodeInternal, "failed to allocate a unique wallet address")
}

// Login resolves a wallet address to its account. No credential is checked.
func (s *Service) Login(ctx context.Context, wallet id.WalletAddress) (*models.User, error) {
	ctx, span := tracer.Start(ctx, "Account.Service.Login", trace.WithAttributes(attribute.String("wallet_address", wallet.String())))
	defer span.End()

	user, err := s.users.FindByWallet(ctx, wallet)
	if err != nil {
		s.metrics.IncrementLogin("not_found")
		return nil, wrapUserErr(err)
	}
	s.metrics.IncrementLogin("ok")
	return user, nil
}

func (s *Service) GetAccount(ctx context.Context, userID id.UserID) (*models.User, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, wrapUserErr(err)
	}
	return user, nil
}

// Wallet is the balance view of an account.
type Wallet struct {
	WalletAddress id.WalletAddress
	HEZBalance    id.Amount
	PEZBalance    id.Amount
}

func (s *Service) GetBalances(ctx context.Context, userID id.UserID) (*Wallet, error) {
	user, err := s.GetAccount(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &Wallet{
		WalletAddress: user.WalletAddress,
		HEZBalance:    user.HEZBalance,
		PEZBalance:    user.PEZBalance,
	}, nil
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

func wrapUserErr(err error) error {
	if errors.Is(err, sentinel.ErrNotFound) {
		return dErrors.New(dErrors.CodeNotFound, "User not found")
	}
	return dErrors.Wrap(err, dErrors.CodeInternal, "failed to load account")
}
