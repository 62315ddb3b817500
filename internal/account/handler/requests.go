package handler

import (
	"strings"

	id "pezkuwi/pkg/domain"
	dErrors "pezkuwi/pkg/domain-errors"
)

const maxLanguageLength = 16

// SignupRequest is the body of POST /auth/signup. Both fields are optional.
type SignupRequest struct {
	Email             *string `json:"email"`
	PreferredLanguage string  `json:"preferred_language"`
}

func (r *SignupRequest) Validate() error {
	if r.Email != nil {
		trimmed := strings.TrimSpace(*r.Email)
		if trimmed == "" {
			r.Email = nil
		} else {
			r.Email = &trimmed
		}
	}
	r.PreferredLanguage = strings.ToLower(strings.TrimSpace(r.PreferredLanguage))
	if len(r.PreferredLanguage) > maxLanguageLength {
		return dErrors.New(dErrors.CodeInvalidInput, "preferred_language is too long")
	}
	return nil
}

// LoginRequest is the body of POST /auth/login.
type LoginRequest struct {
	WalletAddress string `json:"wallet_address"`

	parsed id.WalletAddress
}

// Validate requires a wallet address. Like a malformed user id, an address
// of the wrong shape cannot name an account and is reported as not found.
func (r *LoginRequest) Validate() error {
	if strings.TrimSpace(r.WalletAddress) == "" {
		return dErrors.New(dErrors.CodeInvalidInput, "wallet_address is required")
	}
	wallet, err := id.ParseWalletAddress(r.WalletAddress)
	if err != nil {
		return dErrors.New(dErrors.CodeNotFound, "User not found")
	}
	r.parsed = wallet
	return nil
}

func (r *LoginRequest) Wallet() id.WalletAddress {
	return r.parsed
}
