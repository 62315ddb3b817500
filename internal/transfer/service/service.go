package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	accountmodels "pezkuwi/internal/account/models"
	"pezkuwi/internal/audit"
	"pezkuwi/internal/transfer/metrics"
	"pezkuwi/internal/transfer/models"
	id "pezkuwi/pkg/domain"
	dErrors "pezkuwi/pkg/domain-errors"
	"pezkuwi/pkg/platform/keylock"
	"pezkuwi/pkg/platform/sentinel"
	txcontext "pezkuwi/pkg/platform/tx"
	"pezkuwi/pkg/requestcontext"
)

//go:generate mockgen -source=service.go -destination=mocks/mocks.go -package=mocks

var tracer = otel.Tracer("transfer")

// Accounts is the slice of the account store a transfer needs.
type Accounts interface {
	FindByID(ctx context.Context, userID id.UserID) (*accountmodels.User, error)
	Debit(ctx context.Context, userID id.UserID, token id.TokenType, amount id.Amount, now time.Time) (*accountmodels.User, error)
}

type Store interface {
	Insert(ctx context.Context, txn *models.Transaction) error
	ListByWallet(ctx context.Context, wallet id.WalletAddress, limit int) ([]models.Transaction, error)
}

type AuditPublisher interface {
	Emit(ctx context.Context, event audit.Event) error
}

// Service moves tokens out of a sender's wallet. The ledger is debit-only:
// recipients are recorded but never credited.
type Service struct {
	accounts       Accounts
	transactions   Store
	tx             txcontext.Runner
	locker         keylock.Locker
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

// WithLocker replaces the in-process wallet locker, e.g. with a Redis one
// when several replicas share a database.
func WithLocker(locker keylock.Locker) Option {
	return func(s *Service) {
		s.locker = locker
	}
}

func New(accounts Accounts, transactions Store, runner txcontext.Runner, opts ...Option) *Service {
	s := &Service{
		accounts:     accounts,
		transactions: transactions,
		tx:           runner,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.locker == nil {
		s.locker = keylock.NewSharded(0)
	}
	return s
}

// Transfer debits amount of token from the sender and records a completed
// transaction. The debit and the record commit together.
func (s *Service) Transfer(ctx context.Context, fromUserID id.UserID, toAddress string, amount id.Amount, token id.TokenType) (*models.Transaction, error) {
	ctx, span := tracer.Start(ctx, "Transfer.Service.Transfer",
		trace.WithAttributes(
			attribute.String("user_id", fromUserID.String()),
			attribute.String("token_type", string(token)),
		))
	defer span.End()

	sender, err := s.accounts.FindByID(ctx, fromUserID)
	if err != nil {
		return nil, wrapUserErr(err)
	}
	if err := validateTransfer(toAddress, amount, token); err != nil {
		s.metrics.ObserveTransfer(string(token), metrics.OutcomeFailed)
		return nil, err
	}

	waitStart := time.Now()
	release, err := s.locker.Lock(ctx, sender.WalletAddress.String())
	if err != nil {
		span.RecordError(err)
		s.metrics.ObserveTransfer(string(token), metrics.OutcomeFailed)
		return nil, err
	}
	defer release()
	s.metrics.ObserveLockWait(time.Since(waitStart).Seconds())

	now := requestcontext.Now(ctx)
	txn := models.NewTransaction(sender.WalletAddress, strings.TrimSpace(toAddress), amount, token, now)
	err = s.tx.RunInTx(ctx, func(ctx context.Context) error {
		if _, err := s.accounts.Debit(ctx, fromUserID, token, amount, now); err != nil {
			return err
		}
		return s.transactions.Insert(ctx, txn)
	})
	if err != nil {
		span.RecordError(err)
		return nil, s.transferFailed(token, err)
	}

	s.metrics.ObserveTransfer(string(token), metrics.OutcomeCompleted)
	s.metrics.AddVolume(string(token), int64(amount))
	s.emit(ctx, audit.Event{
		Action:  audit.ActionTransferCompleted,
		UserID:  fromUserID,
		Subject: txn.ID.String(),
		Detail:  amount.String() + " " + string(token) + " to " + txn.ToAddress,
	})
	return txn, nil
}

// ListTransactions returns the user's wallet history, newest first.
func (s *Service) ListTransactions(ctx context.Context, userID id.UserID) ([]models.Transaction, error) {
	ctx, span := tracer.Start(ctx, "Transfer.Service.ListTransactions")
	defer span.End()

	user, err := s.accounts.FindByID(ctx, userID)
	if err != nil {
		return nil, wrapUserErr(err)
	}
	txns, err := s.transactions.ListByWallet(ctx, user.WalletAddress, models.HistoryLimit)
	if err != nil {
		span.RecordError(err)
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list transactions")
	}
	if txns == nil {
		txns = []models.Transaction{}
	}
	return txns, nil
}

func validateTransfer(toAddress string, amount id.Amount, token id.TokenType) error {
	if token != id.TokenHEZ && token != id.TokenPEZ {
		return dErrors.New(dErrors.CodeInvalidInput, "Invalid token type")
	}
	if amount <= 0 {
		return dErrors.New(dErrors.CodeInvalidInput, "Amount must be positive")
	}
	if strings.TrimSpace(toAddress) == "" {
		return dErrors.New(dErrors.CodeInvalidInput, "Recipient address is required")
	}
	return nil
}

func (s *Service) transferFailed(token id.TokenType, err error) error {
	switch {
	case errors.Is(err, sentinel.ErrInsufficientFunds):
		s.metrics.ObserveTransfer(string(token), metrics.OutcomeInsufficient)
		return dErrors.New(dErrors.CodeInsufficientBalance, "Insufficient balance")
	case errors.Is(err, sentinel.ErrNotFound):
		s.metrics.ObserveTransfer(string(token), metrics.OutcomeFailed)
		return dErrors.New(dErrors.CodeNotFound, "User not found")
	}
	s.metrics.ObserveTransfer(string(token), metrics.OutcomeFailed)
	if _, ok := dErrors.As(err); ok {
		return err
	}
	return dErrors.Wrap(err, dErrors.CodeInternal, "failed to record transfer")
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
