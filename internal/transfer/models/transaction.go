package models

import (
	"time"

	id "pezkuwi/pkg/domain"
)

// StatusCompleted is the only status a recorded transaction can have.
const StatusCompleted = "completed"

// HistoryLimit caps a wallet's transaction history listing.
const HistoryLimit = 50

// Transaction is an immutable record of a debit from FromAddress.
// ToAddress is free text: it is not required to name an existing wallet.
type Transaction struct {
	ID          id.TransactionID `json:"transaction_id"`
	FromAddress id.WalletAddress `json:"from_address"`
	ToAddress   string           `json:"to_address"`
	Amount      id.Amount        `json:"amount"`
	TokenType   id.TokenType     `json:"token_type"`
	Status      string           `json:"status"`
	Timestamp   time.Time        `json:"timestamp"`
}

func NewTransaction(from id.WalletAddress, to string, amount id.Amount, token id.TokenType, now time.Time) *Transaction {
	return &Transaction{
		ID:          id.NewTransactionID(now),
		FromAddress: from,
		ToAddress:   to,
		Amount:      amount,
		TokenType:   token,
		Status:      StatusCompleted,
		Timestamp:   now,
	}
}
