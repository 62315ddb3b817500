package models

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"sort"
	"strings"

	dErrors "pezkuwi/pkg/domain-errors"
)

// Claim is the identity data a user submits for citizenship. Only its
// fingerprint is retained.
type Claim struct {
	FullName     string `json:"full_name"`
	DateOfBirth  string `json:"date_of_birth"`
	Nationality  string `json:"nationality"`
	DocumentType string `json:"document_type"`
}

// Normalize trims every field in place.
func (c *Claim) Normalize() {
	c.FullName = strings.TrimSpace(c.FullName)
	c.DateOfBirth = strings.TrimSpace(c.DateOfBirth)
	c.Nationality = strings.TrimSpace(c.Nationality)
	c.DocumentType = strings.TrimSpace(c.DocumentType)
}

func (c Claim) fields() map[string]string {
	return map[string]string{
		"full_name":     c.FullName,
		"date_of_birth": c.DateOfBirth,
		"nationality":   c.Nationality,
		"document_type": c.DocumentType,
	}
}

// Validate reports the first missing field in key order.
func (c Claim) Validate() error {
	fields := c.fields()
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if fields[k] == "" {
			return dErrors.New(dErrors.CodeInvalidInput, k+" is required")
		}
	}
	return nil
}

// Fingerprint is the hex SHA-256 of the claim's (key, value) pairs, sorted
// by key and encoded as a JSON array of two-element arrays.
func (c Claim) Fingerprint() string {
	fields := c.fields()
	pairs := make([][2]string, 0, len(fields))
	for k, v := range fields {
		pairs = append(pairs, [2]string{k, v})
	}
	sort.Slice(pairs, func(i, j int) bool { return pairs[i][0] < pairs[j][0] })

	// Marshalling string arrays cannot fail.
	canonical, _ := json.Marshal(pairs)
	sum := sha256.Sum256(canonical)
	return hex.EncodeToString(sum[:])
}
