package store

import (
	"github.com/google/uuid"

	"pezkuwi/internal/education/models"
	id "pezkuwi/pkg/domain"
)

// DemoCourses is the catalog seeded when SEED_DEMO_DATA is set.
func DemoCourses() []models.Course {
	mk := func(rawID, title, description string, difficulty models.Difficulty, hours, reward int) models.Course {
		return models.Course{
			ID:               id.CourseID(uuid.MustParse(rawID)),
			Title:            title,
			Description:      description,
			Difficulty:       difficulty,
			DurationHours:    hours,
			TrustScoreReward: reward,
		}
	}
	return []models.Course{
		mk("8c2e6d14-3b7a-4f0e-a5d9-61c4e2b8f001",
			"Kurdish History and Culture",
			"From the Medes to the present day: the history, music and literature of the Kurdish people.",
			models.DifficultyBeginner, 10, 50),
		mk("8c2e6d14-3b7a-4f0e-a5d9-61c4e2b8f002",
			"Blockchain Fundamentals",
			"Wallets, transactions and consensus explained with PezkuwiChain examples.",
			models.DifficultyBeginner, 8, 50),
		mk("8c2e6d14-3b7a-4f0e-a5d9-61c4e2b8f003",
			"Running a Validator Node",
			"Hardware, staking and operational practice for PezkuwiChain validators.",
			models.DifficultyAdvanced, 20, 50),
		mk("8c2e6d14-3b7a-4f0e-a5d9-61c4e2b8f004",
			"Civic Participation and Governance",
			"How proposals are written, debated and decided by citizens.",
			models.DifficultyIntermediate, 6, 50),
	}
}
