// Package email normalizes and validates user supplied addresses.
package email

import (
	"strings"

	"github.com/asaskevich/govalidator"
)

// maxLength follows the RFC 5321 path limit.
const maxLength = 254

// Normalize trims surrounding space and lowercases the domain part.
func Normalize(addr string) string {
	addr = strings.TrimSpace(addr)
	at := strings.LastIndexByte(addr, '@')
	if at < 0 {
		return addr
	}
	return addr[:at] + strings.ToLower(addr[at:])
}

// IsValid reports whether addr is a syntactically valid email address.
func IsValid(addr string) bool {
	if addr == "" || !govalidator.StringLength(addr, "3", "254") || len(addr) > maxLength {
		return false
	}
	return govalidator.IsEmail(addr)
}
