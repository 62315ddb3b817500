package handler

import (
	"encoding/json"
	"strings"

	"pezkuwi/internal/transfer/models"
	id "pezkuwi/pkg/domain"
	dErrors "pezkuwi/pkg/domain-errors"
)

// TransferRequest is the body of POST /transactions/{user_id}. Amount is
// decoded as a number literal so that precision is checked before any
// float rounding happens.
type TransferRequest struct {
	ToAddress string      `json:"to_address"`
	Amount    json.Number `json:"amount"`
	TokenType string      `json:"token_type"`

	amount id.Amount
	token  id.TokenType
}

func (r *TransferRequest) Validate() error {
	r.ToAddress = strings.TrimSpace(r.ToAddress)
	if r.ToAddress == "" {
		return dErrors.New(dErrors.CodeInvalidInput, "Recipient address is required")
	}
	token, err := id.ParseTokenType(r.TokenType)
	if err != nil {
		return err
	}
	amount, err := id.ParseAmount(r.Amount.String())
	if err != nil {
		return err
	}
	if amount <= 0 {
		return dErrors.New(dErrors.CodeInvalidInput, "Amount must be positive")
	}
	r.token = token
	r.amount = amount
	return nil
}

type TransferResponse struct {
	Success     bool                `json:"success"`
	Transaction *models.Transaction `json:"transaction"`
}
