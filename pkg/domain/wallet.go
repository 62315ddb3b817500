package domain

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"strings"

	dErrors "pezkuwi/pkg/domain-errors"
)

const walletAddressBytes = 20

// WalletAddress is "0x" followed by 40 lowercase hex characters. Addresses
// are random and not derived from any key.
type WalletAddress string

// NewWalletAddress draws 20 bytes from crypto/rand.
func NewWalletAddress() (WalletAddress, error) {
	buf := make([]byte, walletAddressBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("read random bytes: %w", err)
	}
	return WalletAddress("0x" + hex.EncodeToString(buf)), nil
}

// ParseWalletAddress trims and lowercases s and checks the 0x+40 hex shape.
func ParseWalletAddress(s string) (WalletAddress, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return "", dErrors.New(dErrors.CodeInvalidInput, "wallet_address is required")
	}
	if !strings.HasPrefix(s, "0x") || len(s) != 2+2*walletAddressBytes {
		return "", dErrors.New(dErrors.CodeInvalidInput, "wallet_address must be 0x followed by 40 hex characters")
	}
	if _, err := hex.DecodeString(s[2:]); err != nil {
		return "", dErrors.Wrap(err, dErrors.CodeInvalidInput, "wallet_address must be hex encoded")
	}
	return WalletAddress(s), nil
}

func (a WalletAddress) String() string { return string(a) }
