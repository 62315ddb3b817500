package service

import (
	"context"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/suite"

	accountmodels "pezkuwi/internal/account/models"
	accountstore "pezkuwi/internal/account/store"
	"pezkuwi/internal/audit"
	auditstore "pezkuwi/internal/audit/store"
	trustservice "pezkuwi/internal/trustscore/service"
	"pezkuwi/internal/verification/metrics"
	"pezkuwi/internal/verification/models"
	id "pezkuwi/pkg/domain"
	dErrors "pezkuwi/pkg/domain-errors"
	txcontext "pezkuwi/pkg/platform/tx"
	"pezkuwi/pkg/requestcontext"
)

// activity stands in for the governance and education stores.
type activity struct {
	votes, completed int
}

func (a activity) CountVotesByUser(context.Context, id.UserID) (int, error) { return a.votes, nil }
func (a activity) CountCompleted(context.Context, id.UserID) (int, error)   { return a.completed, nil }

type ServiceSuite struct {
	suite.Suite
	accounts *accountstore.InMemory
	audit    *auditstore.InMemory
	metrics  *metrics.Metrics
	ctx      context.Context
	now      time.Time
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	s.accounts = accountstore.NewInMemory()
	s.audit = auditstore.NewInMemory()
	s.metrics = metrics.New(prometheus.NewRegistry())
	s.now = time.Date(2026, 3, 21, 8, 0, 0, 0, time.UTC)
	s.ctx = requestcontext.WithTime(context.Background(), s.now)
}

func (s *ServiceSuite) newService(a activity) *Service {
	trust := trustservice.New(s.accounts, a, a)
	return New(s.accounts, trust, txcontext.NewMemoryRunner(),
		WithAuditPublisher(audit.NewPublisher(s.audit)),
		WithMetrics(s.metrics),
	)
}

func (s *ServiceSuite) newUser() *accountmodels.User {
	wallet, err := id.NewWalletAddress()
	s.Require().NoError(err)
	u := accountmodels.NewUser(id.NewUserID(), wallet, nil, "", s.now.Add(-24*time.Hour))
	s.Require().NoError(s.accounts.Create(s.ctx, u))
	return u
}

func claim() models.Claim {
	return models.Claim{
		FullName:     "Azad Kurdistani",
		DateOfBirth:  "1990-03-21",
		Nationality:  "Kurdish",
		DocumentType: "passport",
	}
}

func (s *ServiceSuite) TestSubmitApprovesCitizenship() {
	user := s.newUser()

	res, err := s.newService(activity{}).SubmitVerification(s.ctx, user.ID, claim())
	s.Require().NoError(err)
	s.Equal(claim().Fingerprint(), res.Fingerprint)
	s.Equal(500, res.NewTrustScore)

	stored, err := s.accounts.FindByID(s.ctx, user.ID)
	s.Require().NoError(err)
	s.True(stored.IsCitizen)
	s.Equal(accountmodels.KYCApproved, stored.KYCStatus)
	s.Require().NotNil(stored.KYCHash)
	s.Equal(res.Fingerprint, *stored.KYCHash)
	s.Equal(500, stored.TrustScore)
	s.Equal(s.now, stored.UpdatedAt)

	events, err := s.audit.ListByUser(s.ctx, user.ID, 0)
	s.Require().NoError(err)
	s.Require().Len(events, 1)
	s.Equal(audit.ActionCitizenshipApproved, events[0].Action)
	s.Equal(float64(1), testutil.ToFloat64(s.metrics.Approvals))
}

func (s *ServiceSuite) TestSubmitCountsPriorActivity() {
	user := s.newUser()

	res, err := s.newService(activity{votes: 2, completed: 1}).SubmitVerification(s.ctx, user.ID, claim())
	s.Require().NoError(err)
	s.Equal(570, res.NewTrustScore)
}

func (s *ServiceSuite) TestResubmissionOverwritesFingerprint() {
	user := s.newUser()
	svc := s.newService(activity{})

	_, err := svc.SubmitVerification(s.ctx, user.ID, claim())
	s.Require().NoError(err)

	second := claim()
	second.DocumentType = "national_id"
	res, err := svc.SubmitVerification(s.ctx, user.ID, second)
	s.Require().NoError(err)

	stored, err := s.accounts.FindByID(s.ctx, user.ID)
	s.Require().NoError(err)
	s.Equal(res.Fingerprint, *stored.KYCHash)
	s.NotEqual(claim().Fingerprint(), *stored.KYCHash)
}

func (s *ServiceSuite) TestSameClaimAcrossUsersIsAllowed() {
	a, b := s.newUser(), s.newUser()
	svc := s.newService(activity{})

	resA, err := svc.SubmitVerification(s.ctx, a.ID, claim())
	s.Require().NoError(err)
	resB, err := svc.SubmitVerification(s.ctx, b.ID, claim())
	s.Require().NoError(err)
	s.Equal(resA.Fingerprint, resB.Fingerprint)
}

func (s *ServiceSuite) TestRejections() {
	s.Run("unknown user", func() {
		_, err := s.newService(activity{}).SubmitVerification(s.ctx, id.NewUserID(), claim())
		s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
	})

	s.Run("blank field", func() {
		user := s.newUser()
		c := claim()
		c.FullName = "   "
		_, err := s.newService(activity{}).SubmitVerification(s.ctx, user.ID, c)
		s.True(dErrors.HasCode(err, dErrors.CodeInvalidInput))

		stored, err := s.accounts.FindByID(s.ctx, user.ID)
		s.Require().NoError(err)
		s.False(stored.IsCitizen)
	})
}
