package store

import (
	"time"

	"github.com/google/uuid"

	"pezkuwi/internal/governance/models"
	id "pezkuwi/pkg/domain"
)

// DemoProposals is the catalog seeded when SEED_DEMO_DATA is set. Ids are
// fixed so reseeding a database is a no-op.
func DemoProposals(now time.Time) []models.Proposal {
	mk := func(rawID, title, description string, category models.Category, days int) models.Proposal {
		return models.Proposal{
			ID:          id.ProposalID(uuid.MustParse(rawID)),
			Title:       title,
			Description: description,
			Category:    category,
			Status:      models.StatusActive,
			CreatedAt:   now,
			EndsAt:      now.AddDate(0, 0, days),
		}
	}
	return []models.Proposal{
		mk("5b0f3c8e-1a4d-4e63-9c3b-2f6f0c1d7a01",
			"Adopt Kurmanji and Sorani as official interface languages",
			"Ship every citizen-facing screen in both Kurmanji and Sorani before the next release.",
			models.CategoryGovernance, 7),
		mk("5b0f3c8e-1a4d-4e63-9c3b-2f6f0c1d7a02",
			"Fund the diaspora education grant",
			"Allocate 50,000 HEZ from the treasury to scholarships for diaspora students.",
			models.CategoryTreasury, 14),
		mk("5b0f3c8e-1a4d-4e63-9c3b-2f6f0c1d7a03",
			"Raise the validator set to 101 nodes",
			"Increase the active validator count to improve decentralization.",
			models.CategoryTechnical, 30),
	}
}
