package models

import (
	"time"

	id "pezkuwi/pkg/domain"
)

// KYCStatus tracks identity verification progress.
type KYCStatus string

const (
	KYCNotStarted KYCStatus = "not_started"
	KYCPending    KYCStatus = "pending"
	KYCApproved   KYCStatus = "approved"
)

const (
	DefaultLanguage   = "en"
	InitialTrustScore = 100
)

// Seed grant credited to every new account.
var (
	SeedHEZ = id.Units(1000)
	SeedPEZ = id.Units(100)
)

// User is an account holder.
//
// Invariants:
//   - WalletAddress is unique and never changes
//   - balances never go negative
//   - IsCitizen implies KYCStatus == approved
type User struct {
	ID                id.UserID        `json:"user_id"`
	Email             *string          `json:"email"`
	PreferredLanguage string           `json:"preferred_language"`
	WalletAddress     id.WalletAddress `json:"wallet_address"`
	HEZBalance        id.Amount        `json:"hez_balance"`
	PEZBalance        id.Amount        `json:"pez_balance"`
	TrustScore        int              `json:"trust_score"`
	IsCitizen         bool             `json:"is_citizen"`
	KYCStatus         KYCStatus        `json:"kyc_status"`
	KYCHash           *string          `json:"kyc_hash"`
	CreatedAt         time.Time        `json:"created_at"`
	UpdatedAt         time.Time        `json:"updated_at"`
}

// NewUser builds an account holding the seed grant.
func NewUser(userID id.UserID, wallet id.WalletAddress, email *string, language string, now time.Time) *User {
	if language == "" {
		language = DefaultLanguage
	}
	return &User{
		ID:                userID,
		Email:             email,
		PreferredLanguage: language,
		WalletAddress:     wallet,
		HEZBalance:        SeedHEZ,
		PEZBalance:        SeedPEZ,
		TrustScore:        InitialTrustScore,
		KYCStatus:         KYCNotStarted,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
}

// Balance returns the holding for token.
func (u *User) Balance(token id.TokenType) id.Amount {
	if token == id.TokenPEZ {
		return u.PEZBalance
	}
	return u.HEZBalance
}

// Debit subtracts amount from the token balance. It reports false and leaves
// the user untouched when the balance is short.
func (u *User) Debit(token id.TokenType, amount id.Amount, now time.Time) bool {
	if amount <= 0 || u.Balance(token) < amount {
		return false
	}
	if token == id.TokenPEZ {
		u.PEZBalance -= amount
	} else {
		u.HEZBalance -= amount
	}
	u.UpdatedAt = now
	return true
}

// ApproveCitizenship records the claim fingerprint. There is no rejection
// path; a repeat submission overwrites the fingerprint.
func (u *User) ApproveCitizenship(fingerprint string, now time.Time) {
	u.IsCitizen = true
	u.KYCStatus = KYCApproved
	u.KYCHash = &fingerprint
	u.UpdatedAt = now
}
