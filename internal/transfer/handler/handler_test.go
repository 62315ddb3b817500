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

	"pezkuwi/internal/transfer/handler/mocks"
	"pezkuwi/internal/transfer/models"
	id "pezkuwi/pkg/domain"
	dErrors "pezkuwi/pkg/domain-errors"
	"pezkuwi/pkg/testutil"
)

const sender = id.WalletAddress("0x00112233445566778899aabbccddeeff00112233")

type HandlerSuite struct {
	suite.Suite
	service *mocks.MockService
	router  http.Handler
	userID  id.UserID
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
}

func (s *HandlerSuite) path() string {
	return "/transactions/" + s.userID.String()
}

func (s *HandlerSuite) TestTransfer() {
	s.Run("parses decimal amount and token", func() {
		now := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)
		txn := models.NewTransaction(sender, "0xabc", id.Amount(1250), id.TokenPEZ, now)
		s.service.EXPECT().
			Transfer(gomock.Any(), s.userID, "0xabc", id.Amount(1250), id.TokenPEZ).
			Return(txn, nil)

		req := httptest.NewRequest(http.MethodPost, s.path(),
			strings.NewReader(`{"to_address":" 0xabc ","amount":12.5,"token_type":"pez"}`))
		rr := testutil.DoRequest(s.router, req)

		testutil.AssertStatusOK(s.T(), rr)
		body := string(testutil.ReadBody(s.T(), rr))
		assert.Contains(s.T(), body, `"success":true`)
		assert.Contains(s.T(), body, `"amount":12.50`)
		assert.Contains(s.T(), body, `"status":"completed"`)
		assert.Contains(s.T(), body, `"transaction_id":"`+txn.ID.String()+`"`)
	})

	s.Run("insufficient balance is 400", func() {
		s.service.EXPECT().Transfer(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil, dErrors.New(dErrors.CodeInsufficientBalance, "Insufficient balance"))

		rr := testutil.DoJSON(s.T(), s.router, http.MethodPost, s.path(), map[string]any{
			"to_address": "0xabc", "amount": 5000, "token_type": "HEZ",
		})
		testutil.AssertStatusAndError(s.T(), rr, http.StatusBadRequest, string(dErrors.CodeInsufficientBalance))
	})

	s.Run("unknown user is 404", func() {
		s.service.EXPECT().Transfer(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil, dErrors.New(dErrors.CodeNotFound, "User not found"))

		rr := testutil.DoJSON(s.T(), s.router, http.MethodPost, s.path(), map[string]any{
			"to_address": "0xabc", "amount": 1, "token_type": "HEZ",
		})
		testutil.AssertStatus(s.T(), rr, http.StatusNotFound)
	})
}

func (s *HandlerSuite) TestTransferValidation() {
	cases := map[string]string{
		"three decimals":    `{"to_address":"0xabc","amount":1.005,"token_type":"HEZ"}`,
		"negative amount":   `{"to_address":"0xabc","amount":-1,"token_type":"HEZ"}`,
		"zero amount":       `{"to_address":"0xabc","amount":0,"token_type":"HEZ"}`,
		"exponent notation": `{"to_address":"0xabc","amount":1e3,"token_type":"HEZ"}`,
		"missing amount":    `{"to_address":"0xabc","token_type":"HEZ"}`,
		"unknown token":     `{"to_address":"0xabc","amount":1,"token_type":"BTC"}`,
		"blank recipient":   `{"to_address":"  ","amount":1,"token_type":"HEZ"}`,
	}
	for name, body := range cases {
		s.Run(name, func() {
			req := httptest.NewRequest(http.MethodPost, s.path(), strings.NewReader(body))
			rr := testutil.DoRequest(s.router, req)
			testutil.AssertStatusAndError(s.T(), rr, http.StatusBadRequest, string(dErrors.CodeInvalidInput))
		})
	}

	s.Run("malformed user id is 404", func() {
		rr := testutil.DoJSON(s.T(), s.router, http.MethodPost, "/transactions/xyz", map[string]any{
			"to_address": "0xabc", "amount": 1, "token_type": "HEZ",
		})
		testutil.AssertStatus(s.T(), rr, http.StatusNotFound)
	})
}

func (s *HandlerSuite) TestListTransactions() {
	s.Run("returns a bare array", func() {
		s.service.EXPECT().ListTransactions(gomock.Any(), s.userID).Return([]models.Transaction{}, nil)

		rr := testutil.DoRequest(s.router, httptest.NewRequest(http.MethodGet, s.path(), nil))
		testutil.AssertStatusOK(s.T(), rr)
		assert.JSONEq(s.T(), `[]`, string(testutil.ReadBody(s.T(), rr)))
	})

	s.Run("unknown user is 404", func() {
		s.service.EXPECT().ListTransactions(gomock.Any(), s.userID).
			Return(nil, dErrors.New(dErrors.CodeNotFound, "User not found"))

		rr := testutil.DoRequest(s.router, httptest.NewRequest(http.MethodGet, s.path(), nil))
		testutil.AssertStatusAndError(s.T(), rr, http.StatusNotFound, string(dErrors.CodeNotFound))
	})
}
