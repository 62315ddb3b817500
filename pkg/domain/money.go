package domain

import (
	"strconv"
	"strings"

	dErrors "pezkuwi/pkg/domain-errors"
)

// TokenType is one of the two ledger currencies.
type TokenType string

const (
	TokenHEZ TokenType = "HEZ"
	TokenPEZ TokenType = "PEZ"
)

// ParseTokenType accepts HEZ or PEZ in any case.
func ParseTokenType(s string) (TokenType, error) {
	switch TokenType(strings.ToUpper(strings.TrimSpace(s))) {
	case TokenHEZ:
		return TokenHEZ, nil
	case TokenPEZ:
		return TokenPEZ, nil
	}
	return "", dErrors.New(dErrors.CodeInvalidInput, "Invalid token type")
}

// Amount is a token quantity in minor units (hundredths). It renders as a
// JSON number with two decimals.
type Amount int64

const minorPerUnit = 100

// Units builds an Amount from whole tokens.
func Units(n int64) Amount { return Amount(n * minorPerUnit) }

// maxAmountDigits keeps the integer part well inside int64 range.
const maxAmountDigits = 15

// ParseAmount parses a plain decimal literal ("12", "12.5", "12.50") into
// minor units. Exponents, signs and more than two fractional digits are rejected.
func ParseAmount(s string) (Amount, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, dErrors.New(dErrors.CodeInvalidInput, "Amount is required")
	}
	whole, frac, hasDot := strings.Cut(s, ".")
	if whole == "" || (hasDot && frac == "") || !allDigits(whole) || !allDigits(frac) {
		return 0, dErrors.New(dErrors.CodeInvalidInput, "Amount must be a positive decimal number")
	}
	if len(frac) > 2 {
		return 0, dErrors.New(dErrors.CodeInvalidInput, "Amount supports at most 2 decimal places")
	}
	if len(strings.TrimLeft(whole, "0")) > maxAmountDigits {
		return 0, dErrors.New(dErrors.CodeInvalidInput, "Amount is too large")
	}
	for len(frac) < 2 {
		frac += "0"
	}
	units, err := strconv.ParseInt(whole, 10, 64)
	if err != nil {
		return 0, dErrors.Wrap(err, dErrors.CodeInvalidInput, "Amount is too large")
	}
	cents, _ := strconv.ParseInt(frac, 10, 64)
	return Amount(units*minorPerUnit + cents), nil
}

func allDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// String formats the amount with exactly two decimals.
func (a Amount) String() string {
	sign := ""
	v := int64(a)
	if v < 0 {
		sign = "-"
		v = -v
	}
	cents := strconv.FormatInt(v%minorPerUnit, 10)
	if len(cents) == 1 {
		cents = "0" + cents
	}
	return sign + strconv.FormatInt(v/minorPerUnit, 10) + "." + cents
}

func (a Amount) MarshalJSON() ([]byte, error) {
	return []byte(a.String()), nil
}

func (a *Amount) UnmarshalJSON(data []byte) error {
	v, err := ParseAmount(string(data))
	if err != nil {
		return err
	}
	*a = v
	return nil
}
