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
	"pezkuwi/internal/governance/metrics"
	"pezkuwi/internal/governance/models"
	"pezkuwi/internal/governance/store"
	trustservice "pezkuwi/internal/trustscore/service"
	id "pezkuwi/pkg/domain"
	dErrors "pezkuwi/pkg/domain-errors"
	txcontext "pezkuwi/pkg/platform/tx"
	"pezkuwi/pkg/requestcontext"
)

type noCourses struct{}

func (noCourses) CountCompleted(context.Context, id.UserID) (int, error) { return 0, nil }

type ServiceSuite struct {
	suite.Suite
	accounts  *accountstore.InMemory
	proposals *store.InMemory
	audit     *auditstore.InMemory
	metrics   *metrics.Metrics
	service   *Service
	ctx       context.Context
	now       time.Time
	open      models.Proposal
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	s.accounts = accountstore.NewInMemory()
	s.proposals = store.NewInMemory()
	s.audit = auditstore.NewInMemory()
	s.metrics = metrics.New(prometheus.NewRegistry())
	trust := trustservice.New(s.accounts, s.proposals, noCourses{})
	s.service = New(s.accounts, s.proposals, txcontext.NewMemoryRunner(),
		WithTrustRefresher(trust),
		WithAuditPublisher(audit.NewPublisher(s.audit)),
		WithMetrics(s.metrics),
	)
	s.now = time.Date(2026, 5, 10, 12, 0, 0, 0, time.UTC)
	s.ctx = requestcontext.WithTime(context.Background(), s.now)

	demo := store.DemoProposals(s.now)
	s.Require().NoError(s.service.Seed(s.ctx, demo))
	s.open = demo[0]
}

func (s *ServiceSuite) newUser(citizen bool) *accountmodels.User {
	wallet, err := id.NewWalletAddress()
	s.Require().NoError(err)
	u := accountmodels.NewUser(id.NewUserID(), wallet, nil, "", s.now)
	if citizen {
		u.ApproveCitizenship("fingerprint", s.now)
		u.TrustScore = 500
	}
	s.Require().NoError(s.accounts.Create(s.ctx, u))
	return u
}

func (s *ServiceSuite) TestListActiveProposals() {
	proposals, err := s.service.ListActiveProposals(s.ctx)
	s.Require().NoError(err)
	s.Len(proposals, 3)
	for _, p := range proposals {
		s.Equal(models.StatusActive, p.Status)
	}
}

func (s *ServiceSuite) TestCastVote() {
	voter := s.newUser(true)

	vote, err := s.service.CastVote(s.ctx, voter.ID, s.open.ID, "for")
	s.Require().NoError(err)
	s.Equal(500, vote.VotingPower)
	s.Equal(models.VoteFor, vote.VoteType)
	s.Equal(s.now, vote.Timestamp)

	p, err := s.proposals.FindProposal(s.ctx, s.open.ID)
	s.Require().NoError(err)
	s.Equal(int64(500), p.VotesFor)
	s.Zero(p.VotesAgainst)

	s.Run("voting raises the stored trust score", func() {
		stored, err := s.accounts.FindByID(s.ctx, voter.ID)
		s.Require().NoError(err)
		s.Equal(510, stored.TrustScore)
	})

	s.Run("next vote carries the raised power", func() {
		second := store.DemoProposals(s.now)[1]
		vote, err := s.service.CastVote(s.ctx, voter.ID, second.ID, "against")
		s.Require().NoError(err)
		s.Equal(510, vote.VotingPower)
	})

	events, err := s.audit.ListByUser(s.ctx, voter.ID, 0)
	s.Require().NoError(err)
	s.Len(events, 2)
	s.Equal(audit.ActionVoteCast, events[0].Action)
	s.Equal(float64(1), testutil.ToFloat64(s.metrics.Votes.WithLabelValues("for")))
}

func (s *ServiceSuite) TestCastVoteErrorOrder() {
	citizen := s.newUser(true)
	resident := s.newUser(false)

	closed := models.Proposal{
		ID:        id.NewProposalID(),
		Title:     "closed",
		Category:  models.CategoryTreasury,
		Status:    models.StatusRejected,
		CreatedAt: s.now.Add(-48 * time.Hour),
		EndsAt:    s.now.Add(-time.Hour),
	}
	s.Require().NoError(s.service.Seed(s.ctx, []models.Proposal{closed}))

	cases := []struct {
		name      string
		userID    id.UserID
		proposal  id.ProposalID
		direction string
		code      dErrors.Code
		message   string
	}{
		{"unknown user beats everything", id.NewUserID(), id.NewProposalID(), "sideways", dErrors.CodeNotFound, "User not found"},
		{"non-citizen beats unknown proposal", resident.ID, id.NewProposalID(), "sideways", dErrors.CodeForbidden, "Only citizens can vote"},
		{"unknown proposal beats bad direction", citizen.ID, id.NewProposalID(), "sideways", dErrors.CodeNotFound, "Proposal not found"},
		{"closed proposal beats bad direction", citizen.ID, closed.ID, "sideways", dErrors.CodeConflict, "Proposal is not active"},
		{"bad direction", citizen.ID, s.open.ID, "sideways", dErrors.CodeInvalidInput, "Invalid vote type"},
	}
	for _, tc := range cases {
		s.Run(tc.name, func() {
			_, err := s.service.CastVote(s.ctx, tc.userID, tc.proposal, tc.direction)
			de, ok := dErrors.As(err)
			s.Require().True(ok, "got %v", err)
			s.Equal(tc.code, de.Code)
			s.Equal(tc.message, de.Message)
		})
	}
}

func (s *ServiceSuite) TestDuplicateVoteLeavesTotalsUnchanged() {
	voter := s.newUser(true)
	_, err := s.service.CastVote(s.ctx, voter.ID, s.open.ID, "for")
	s.Require().NoError(err)

	_, err = s.service.CastVote(s.ctx, voter.ID, s.open.ID, "against")
	de, ok := dErrors.As(err)
	s.Require().True(ok)
	s.Equal(dErrors.CodeConflict, de.Code)
	s.Equal("Already voted on this proposal", de.Message)

	p, err := s.proposals.FindProposal(s.ctx, s.open.ID)
	s.Require().NoError(err)
	s.Equal(int64(500), p.VotesFor)
	s.Zero(p.VotesAgainst)
}

func (s *ServiceSuite) TestVotingAfterEndsAtIsRejected() {
	voter := s.newUser(true)
	late := requestcontext.WithTime(context.Background(), s.open.EndsAt)

	_, err := s.service.CastVote(late, voter.ID, s.open.ID, "for")
	s.True(dErrors.HasCode(err, dErrors.CodeConflict))
}

func (s *ServiceSuite) TestResolveExpired() {
	yes, no := s.newUser(true), s.newUser(true)
	_, err := s.service.CastVote(s.ctx, yes.ID, s.open.ID, "for")
	s.Require().NoError(err)
	_, err = s.service.CastVote(s.ctx, no.ID, s.open.ID, "against")
	s.Require().NoError(err)
	_, err = s.service.CastVote(s.ctx, no.ID, store.DemoProposals(s.now)[1].ID, "for")
	s.Require().NoError(err)

	s.Run("nothing is due before ends_at", func() {
		resolved, err := s.service.ResolveExpired(s.ctx, s.open.EndsAt.Add(-time.Second))
		s.Require().NoError(err)
		s.Empty(resolved)
	})

	s.Run("tie is rejected and a majority passes", func() {
		resolved, err := s.service.ResolveExpired(s.ctx, s.now.AddDate(0, 0, 14))
		s.Require().NoError(err)
		s.Require().Len(resolved, 2)
		s.Equal(models.StatusRejected, resolved[0].Status)
		s.Equal(models.StatusPassed, resolved[1].Status)
	})

	active, err := s.service.ListActiveProposals(s.ctx)
	s.Require().NoError(err)
	s.Len(active, 1)
	s.Equal(float64(1), testutil.ToFloat64(s.metrics.ProposalsResolved.WithLabelValues("passed")))
	s.Equal(float64(1), testutil.ToFloat64(s.metrics.ProposalsResolved.WithLabelValues("rejected")))
}
