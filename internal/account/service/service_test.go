package service

import (
	"context"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/suite"

	"pezkuwi/internal/account/metrics"
	"pezkuwi/internal/account/models"
	accountstore "pezkuwi/internal/account/store"
	"pezkuwi/internal/audit"
	auditstore "pezkuwi/internal/audit/store"
	id "pezkuwi/pkg/domain"
	dErrors "pezkuwi/pkg/domain-errors"
	"pezkuwi/pkg/requestcontext"
)

type ServiceSuite struct {
	suite.Suite
	store   *accountstore.InMemory
	audit   *auditstore.InMemory
	metrics *metrics.Metrics
	service *Service
	ctx     context.Context
	now     time.Time
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	s.store = accountstore.NewInMemory()
	s.audit = auditstore.NewInMemory()
	s.metrics = metrics.New(prometheus.NewRegistry())
	s.service = New(s.store,
		WithAuditPublisher(audit.NewPublisher(s.audit)),
		WithMetrics(s.metrics),
	)
	s.now = time.Date(2026, 3, 21, 10, 0, 0, 0, time.UTC)
	s.ctx = requestcontext.WithTime(context.Background(), s.now)
}

func (s *ServiceSuite) TestCreateAccount() {
	s.Run("grants seed balances and a fresh wallet", func() {
		user, err := s.service.CreateAccount(s.ctx, nil, "")
		s.Require().NoError(err)

		s.Regexp(`^0x[0-9a-f]{40}$`, user.WalletAddress.String())
		s.Equal(models.SeedHEZ, user.HEZBalance)
		s.Equal(models.SeedPEZ, user.PEZBalance)
		s.Equal(100, user.TrustScore)
		s.False(user.IsCitizen)
		s.Equal(models.KYCNotStarted, user.KYCStatus)
		s.Equal(s.now, user.CreatedAt)
		s.Equal("en", user.PreferredLanguage)

		stored, err := s.store.FindByID(s.ctx, user.ID)
		s.Require().NoError(err)
		s.Equal(user.WalletAddress, stored.WalletAddress)

		events, err := s.audit.ListByUser(s.ctx, user.ID, 0)
		s.Require().NoError(err)
		s.Require().Len(events, 1)
		s.Equal(audit.ActionAccountCreated, events[0].Action)
	})

	s.Run("two signups never share an address", func() {
		a, err := s.service.CreateAccount(s.ctx, nil, "")
		s.Require().NoError(err)
		b, err := s.service.CreateAccount(s.ctx, nil, "")
		s.Require().NoError(err)
		s.NotEqual(a.WalletAddress, b.WalletAddress)
		s.NotEqual(a.ID, b.ID)
	})

	s.Run("normalizes email and keeps language", func() {
		addr := " Rojin@PEZKUWI.io "
		user, err := s.service.CreateAccount(s.ctx, &addr, "ku")
		s.Require().NoError(err)
		s.Require().NotNil(user.Email)
		s.Equal("Rojin@pezkuwi.io", *user.Email)
		s.Equal("ku", user.PreferredLanguage)
	})

	s.Run("malformed email is invalid input", func() {
		addr := "not-an-email"
		_, err := s.service.CreateAccount(s.ctx, &addr, "")
		s.True(dErrors.HasCode(err, dErrors.CodeInvalidInput))
	})

	s.Equal(float64(4), testutil.ToFloat64(s.metrics.AccountsCreated))
}

func (s *ServiceSuite) TestCreateAccountRetriesWalletCollision() {
	taken, err := s.service.CreateAccount(s.ctx, nil, "")
	s.Require().NoError(err)

	calls := 0
	svc := New(s.store, WithWalletGenerator(func() (id.WalletAddress, error) {
		calls++
		if calls == 1 {
			return taken.WalletAddress, nil
		}
		return id.NewWalletAddress()
	}))

	user, err := svc.CreateAccount(s.ctx, nil, "")
	s.Require().NoError(err)
	s.Equal(2, calls)
	s.NotEqual(taken.WalletAddress, user.WalletAddress)
}

func (s *ServiceSuite) TestCreateAccountGivesUpAfterThreeCollisions() {
	taken, err := s.service.CreateAccount(s.ctx, nil, "")
	s.Require().NoError(err)

	svc := New(s.store, WithWalletGenerator(func() (id.WalletAddress, error) {
		return taken.WalletAddress, nil
	}))
	_, err = svc.CreateAccount(s.ctx, nil, "")
	s.True(dErrors.HasCode(err, dErrors.CodeInternal))
}

func (s *ServiceSuite) TestLogin() {
	user, err := s.service.CreateAccount(s.ctx, nil, "")
	s.Require().NoError(err)

	s.Run("known wallet returns the user", func() {
		found, err := s.service.Login(s.ctx, user.WalletAddress)
		s.Require().NoError(err)
		s.Equal(user.ID, found.ID)
	})

	s.Run("unknown wallet is not found", func() {
		_, err := s.service.Login(s.ctx, "0x0000000000000000000000000000000000000000")
		s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
	})

	s.Equal(float64(1), testutil.ToFloat64(s.metrics.Logins.WithLabelValues("ok")))
	s.Equal(float64(1), testutil.ToFloat64(s.metrics.Logins.WithLabelValues("not_found")))
}

func (s *ServiceSuite) TestGetBalances() {
	user, err := s.service.CreateAccount(s.ctx, nil, "")
	s.Require().NoError(err)

	wallet, err := s.service.GetBalances(s.ctx, user.ID)
	s.Require().NoError(err)
	s.Equal(user.WalletAddress, wallet.WalletAddress)
	s.Equal(id.Units(1000), wallet.HEZBalance)
	s.Equal(id.Units(100), wallet.PEZBalance)

	_, err = s.service.GetBalances(s.ctx, id.NewUserID())
	s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
}
