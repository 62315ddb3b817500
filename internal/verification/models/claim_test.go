package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dErrors "pezkuwi/pkg/domain-errors"
)

func sampleClaim() Claim {
	return Claim{
		FullName:     "Azad Kurdistani",
		DateOfBirth:  "1990-03-21",
		Nationality:  "Kurdish",
		DocumentType: "passport",
	}
}

func TestFingerprint(t *testing.T) {
	t.Run("matches the canonical encoding", func(t *testing.T) {
		// sha256(`[["date_of_birth","1990-03-21"],["document_type","passport"],["full_name","Azad Kurdistani"],["nationality","Kurdish"]]`)
		assert.Equal(t,
			"dd7fca44874b5ad47d7740b01d1793eeb295ce1dfb0f898acc6881d85104b797",
			sampleClaim().Fingerprint())
	})

	t.Run("is stable and sensitive to every field", func(t *testing.T) {
		base := sampleClaim().Fingerprint()
		assert.Len(t, base, 64)
		assert.Equal(t, base, sampleClaim().Fingerprint())

		changed := sampleClaim()
		changed.Nationality = "kurdish"
		assert.NotEqual(t, base, changed.Fingerprint())
	})

	t.Run("trimming happens before hashing", func(t *testing.T) {
		padded := sampleClaim()
		padded.FullName = "  Azad Kurdistani "
		padded.Normalize()
		assert.Equal(t, sampleClaim().Fingerprint(), padded.Fingerprint())
	})
}

func TestValidate(t *testing.T) {
	require.NoError(t, sampleClaim().Validate())

	missing := sampleClaim()
	missing.DocumentType = ""
	err := missing.Validate()
	require.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))
	assert.Contains(t, err.Error(), "document_type is required")
}
