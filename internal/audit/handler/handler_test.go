package handler

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pezkuwi/internal/audit"
	auditstore "pezkuwi/internal/audit/store"
	id "pezkuwi/pkg/domain"
	dErrors "pezkuwi/pkg/domain-errors"
	"pezkuwi/pkg/testutil"
)

type failingHistory struct{}

func (failingHistory) List(context.Context, id.UserID, int) ([]audit.Event, error) {
	return nil, errors.New("connection reset")
}

func newRouter(history History) http.Handler {
	r := chi.NewRouter()
	New(history, slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))).Register(r)
	return r
}

func TestHandleHistory(t *testing.T) {
	userID := id.NewUserID()

	t.Run("newest event first", func(t *testing.T) {
		pub := audit.NewPublisher(auditstore.NewInMemory())
		start := time.Date(2026, 6, 1, 9, 0, 0, 0, time.UTC)
		require.NoError(t, pub.Emit(context.Background(), audit.Event{
			Action: audit.ActionAccountCreated, UserID: userID, Timestamp: start,
		}))
		require.NoError(t, pub.Emit(context.Background(), audit.Event{
			Action: audit.ActionCitizenshipApproved, UserID: userID, Subject: "abc", Timestamp: start.Add(time.Minute),
		}))

		rr := testutil.DoRequest(newRouter(pub), httptest.NewRequest(http.MethodGet, "/audit/"+userID.String(), nil))

		testutil.AssertStatusOK(t, rr)
		resp := testutil.UnmarshalResponse[HistoryResponse](t, rr)
		require.Len(t, resp.Events, 2)
		assert.Equal(t, audit.ActionCitizenshipApproved, resp.Events[0].Action)
		assert.Equal(t, audit.ActionAccountCreated, resp.Events[1].Action)
	})

	t.Run("no events is an empty list", func(t *testing.T) {
		pub := audit.NewPublisher(auditstore.NewInMemory())
		rr := testutil.DoRequest(newRouter(pub), httptest.NewRequest(http.MethodGet, "/audit/"+userID.String(), nil))

		testutil.AssertStatusOK(t, rr)
		assert.JSONEq(t, `{"events":[]}`, string(testutil.ReadBody(t, rr)))
	})

	t.Run("history is capped", func(t *testing.T) {
		pub := audit.NewPublisher(auditstore.NewInMemory())
		for i := 0; i < HistoryLimit+5; i++ {
			require.NoError(t, pub.Emit(context.Background(), audit.Event{Action: audit.ActionVoteCast, UserID: userID}))
		}
		rr := testutil.DoRequest(newRouter(pub), httptest.NewRequest(http.MethodGet, "/audit/"+userID.String(), nil))

		resp := testutil.UnmarshalResponse[HistoryResponse](t, rr)
		assert.Len(t, resp.Events, HistoryLimit)
	})

	t.Run("malformed id is 404", func(t *testing.T) {
		rr := testutil.DoRequest(newRouter(failingHistory{}), httptest.NewRequest(http.MethodGet, "/audit/not-a-uuid", nil))
		testutil.AssertStatusAndError(t, rr, http.StatusNotFound, string(dErrors.CodeNotFound))
	})

	t.Run("store failure is 500", func(t *testing.T) {
		rr := testutil.DoRequest(newRouter(failingHistory{}), httptest.NewRequest(http.MethodGet, "/audit/"+userID.String(), nil))
		testutil.AssertStatusAndError(t, rr, http.StatusInternalServerError, string(dErrors.CodeInternal))
	})
}
