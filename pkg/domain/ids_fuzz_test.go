//go:build go1.18

package domain

import (
	"testing"
	"unicode/utf8"
)

// FuzzParseUserID tests that parsing never panics on arbitrary input
// and always returns either a valid ID or an error.
func FuzzParseUserID(f *testing.F) {
	f.Add("")
	f.Add("550e8400-e29b-41d4-a716-446655440000")
	f.Add("00000000-0000-0000-0000-000000000000")
	f.Add("not-a-uuid")
	f.Add("'; DROP TABLE users;--")
	f.Add(string([]byte{0x00, 0x01, 0x02}))
	f.Add("550e8400-e29b-41d4-a716-446655440000\x00suffix")

	f.Fuzz(func(t *testing.T, input string) {
		id, err := ParseUserID(input)
		if err == nil {
			roundTrip, err2 := ParseUserID(id.String())
			if err2 != nil {
				t.Errorf("valid ID failed round-trip: %v", err2)
			}
			if roundTrip != id {
				t.Error("round-trip changed ID value")
			}
			if id.IsNil() {
				t.Error("nil UUID was accepted")
			}
		}

		if !utf8.ValidString(input) && err == nil {
			t.Error("non-UTF8 input was accepted")
		}
	})
}

// FuzzParseAllIDs ensures the typed UUID parsers agree.
func FuzzParseAllIDs(f *testing.F) {
	f.Add("550e8400-e29b-41d4-a716-446655440000")
	f.Add("")
	f.Add("invalid")

	f.Fuzz(func(t *testing.T, input string) {
		_, errUser := ParseUserID(input)
		_, errProposal := ParseProposalID(input)
		_, errCourse := ParseCourseID(input)

		if (errUser == nil) != (errProposal == nil) || (errUser == nil) != (errCourse == nil) {
			t.Errorf("inconsistent parsing of %q", input)
		}
	})
}

// FuzzParseAmount checks that accepted amounts are non-negative and
// survive a format/parse round trip.
func FuzzParseAmount(f *testing.F) {
	f.Add("0")
	f.Add("12.5")
	f.Add("12.50")
	f.Add("1e3")
	f.Add("-1")
	f.Add("999999999999999.99")
	f.Add("0.001")

	f.Fuzz(func(t *testing.T, input string) {
		amount, err := ParseAmount(input)
		if err != nil {
			return
		}
		if amount < 0 {
			t.Errorf("negative amount %d from %q", amount, input)
		}
		again, err := ParseAmount(amount.String())
		if err != nil {
			t.Fatalf("formatted amount %q failed to parse: %v", amount.String(), err)
		}
		if again != amount {
			t.Errorf("round trip changed %q: %d != %d", input, again, amount)
		}
	})
}
