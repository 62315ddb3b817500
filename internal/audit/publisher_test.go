package audit_test

import (
	"bytes"
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"pezkuwi/internal/audit"
	auditstore "pezkuwi/internal/audit/store"
	id "pezkuwi/pkg/domain"
	"pezkuwi/pkg/requestcontext"
)

type PublisherSuite struct {
	suite.Suite
	store   *auditstore.InMemory
	logs    *bytes.Buffer
	forward chan audit.Event
	pub     *audit.Publisher
}

func TestPublisherSuite(t *testing.T) {
	suite.Run(t, new(PublisherSuite))
}

func (s *PublisherSuite) SetupTest() {
	s.store = auditstore.NewInMemory()
	s.logs = &bytes.Buffer{}
	s.forward = make(chan audit.Event, 1)
	s.pub = audit.NewPublisher(s.store,
		audit.WithLogger(slog.New(slog.NewJSONHandler(s.logs, nil))),
		audit.WithForwarding(s.forward),
	)
}

func (s *PublisherSuite) TestEmitFillsRequestScopedFields() {
	now := time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC)
	ctx := requestcontext.WithTime(context.Background(), now)
	ctx = requestcontext.WithRequestID(ctx, "req-7")
	userID := id.NewUserID()

	err := s.pub.Emit(ctx, audit.Event{Action: audit.ActionAccountCreated, UserID: userID, Subject: "0xabc"})
	s.Require().NoError(err)

	events, err := s.pub.List(ctx, userID, 10)
	s.Require().NoError(err)
	s.Require().Len(events, 1)
	s.NotEmpty(events[0].ID)
	s.Equal(now, events[0].Timestamp)
	s.Equal("req-7", events[0].RequestID)
	s.Contains(s.logs.String(), `"log_type":"audit"`)

	forwarded := <-s.forward
	s.Equal(events[0].ID, forwarded.ID)
}

func (s *PublisherSuite) TestFullForwardQueueDoesNotBlock() {
	ctx := context.Background()
	userID := id.NewUserID()

	s.Require().NoError(s.pub.Emit(ctx, audit.Event{Action: audit.ActionVoteCast, UserID: userID}))
	s.Require().NoError(s.pub.Emit(ctx, audit.Event{Action: audit.ActionVoteCast, UserID: userID}))

	events, err := s.pub.List(ctx, userID, 0)
	s.Require().NoError(err)
	s.Len(events, 2, "both events are stored even though only one fits the queue")
	s.Contains(s.logs.String(), "dropping event")
}

func (s *PublisherSuite) TestListNewestFirstWithLimit() {
	ctx := context.Background()
	userID := id.NewUserID()
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		err := s.store.Append(ctx, audit.Event{
			ID:        string(rune('a' + i)),
			UserID:    userID,
			Timestamp: base.Add(time.Duration(i) * time.Minute),
		})
		s.Require().NoError(err)
	}

	events, err := s.store.ListByUser(ctx, userID, 2)
	s.Require().NoError(err)
	s.Require().Len(events, 2)
	s.Equal("c", events[0].ID)
	s.Equal("b", events[1].ID)
}
