package handler

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"pezkuwi/internal/governance/handler/mocks"
	"pezkuwi/internal/governance/models"
	id "pezkuwi/pkg/domain"
	dErrors "pezkuwi/pkg/domain-errors"
	"pezkuwi/pkg/testutil"
)

type HandlerSuite struct {
	suite.Suite
	service    *mocks.MockService
	router     http.Handler
	userID     id.UserID
	proposalID id.ProposalID
}

func TestHandlerSuite(t *testing.T) {
	suite.Run(t, new(HandlerSuite))
}

func (s *HandlerSuite) SetupTest() {
	s.service = mocks.NewMockService(gomock.NewController(s.T()))
	r := chi.NewRouter()
	New(s.service, slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))).Register(r)
	s.router = r
	s.userID = id.NewUserID()
	s.proposalID = id.NewProposalID()
}

func (s *HandlerSuite) vote(direction models.VoteType) *models.Vote {
	return &models.Vote{
		ID:          id.NewVoteID(),
		ProposalID:  s.proposalID,
		UserID:      s.userID,
		VoteType:    direction,
		VotingPower: 500,
		Timestamp:   time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC),
	}
}

func (s *HandlerSuite) TestListProposals() {
	s.service.EXPECT().ListActiveProposals(gomock.Any()).Return([]models.Proposal{{
		ID:       s.proposalID,
		Title:    "Fund schools",
		Category: models.CategoryTreasury,
		Status:   models.StatusActive,
	}}, nil)

	rr := testutil.DoRequest(s.router, httptest.NewRequest(http.MethodGet, "/governance/proposals", nil))

	testutil.AssertStatusOK(s.T(), rr)
	resp := testutil.UnmarshalResponse[[]map[string]any](s.T(), rr)
	s.Require().Len(*resp, 1)
	assert.Equal(s.T(), s.proposalID.String(), (*resp)[0]["proposal_id"])
	assert.Equal(s.T(), "treasury", (*resp)[0]["category"])
}

func (s *HandlerSuite) TestVoteFromQuery() {
	s.service.EXPECT().CastVote(gomock.Any(), s.userID, s.proposalID, "for").Return(s.vote(models.VoteFor), nil)

	path := "/governance/vote/" + s.userID.String() + "?proposal_id=" + s.proposalID.String() + "&vote_type=for"
	rr := testutil.DoRequest(s.router, httptest.NewRequest(http.MethodPost, path, nil))

	testutil.AssertStatusOK(s.T(), rr)
	body := string(testutil.ReadBody(s.T(), rr))
	assert.Contains(s.T(), body, `"success":true`)
	assert.Contains(s.T(), body, `"voting_power":500`)
}

func (s *HandlerSuite) TestVoteFromBody() {
	s.service.EXPECT().CastVote(gomock.Any(), s.userID, s.proposalID, "against").Return(s.vote(models.VoteAgainst), nil)

	rr := testutil.DoJSON(s.T(), s.router, http.MethodPost, "/governance/vote/"+s.userID.String(), map[string]string{
		"proposal_id": s.proposalID.String(),
		"vote_type":   "against",
	})
	testutil.AssertStatusOK(s.T(), rr)
}

func (s *HandlerSuite) TestVoteErrors() {
	s.Run("missing proposal id", func() {
		req := httptest.NewRequest(http.MethodPost, "/governance/vote/"+s.userID.String(), strings.NewReader(`{"vote_type":"for"}`))
		rr := testutil.DoRequest(s.router, req)
		testutil.AssertStatusAndError(s.T(), rr, http.StatusBadRequest, string(dErrors.CodeInvalidInput))
	})

	s.Run("malformed proposal id reaches the service as nil", func() {
		s.service.EXPECT().CastVote(gomock.Any(), s.userID, id.ProposalID{}, "for").
			Return(nil, dErrors.New(dErrors.CodeNotFound, "Proposal not found"))

		path := "/governance/vote/" + s.userID.String() + "?proposal_id=nope&vote_type=for"
		rr := testutil.DoRequest(s.router, httptest.NewRequest(http.MethodPost, path, nil))
		testutil.AssertStatus(s.T(), rr, http.StatusNotFound)
	})

	s.Run("non-citizen is 403", func() {
		s.service.EXPECT().CastVote(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil, dErrors.New(dErrors.CodeForbidden, "Only citizens can vote"))

		path := "/governance/vote/" + s.userID.String() + "?proposal_id=" + s.proposalID.String() + "&vote_type=for"
		rr := testutil.DoRequest(s.router, httptest.NewRequest(http.MethodPost, path, nil))
		testutil.AssertStatusAndError(s.T(), rr, http.StatusForbidden, string(dErrors.CodeForbidden))
		assert.Equal(s.T(), "Only citizens can vote", testutil.UnmarshalErrorResponse(s.T(), rr)["error_description"])
	})

	s.Run("duplicate vote is 400", func() {
		s.service.EXPECT().CastVote(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil, dErrors.New(dErrors.CodeConflict, "Already voted on this proposal"))

		path := "/governance/vote/" + s.userID.String() + "?proposal_id=" + s.proposalID.String() + "&vote_type=for"
		rr := testutil.DoRequest(s.router, httptest.NewRequest(http.MethodPost, path, nil))
		testutil.AssertStatusAndError(s.T(), rr, http.StatusBadRequest, string(dErrors.CodeConflict))
	})
}
