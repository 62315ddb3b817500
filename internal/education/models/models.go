package models

import (
	"time"

	id "pezkuwi/pkg/domain"
	dErrors "pezkuwi/pkg/domain-errors"
)

type Difficulty string

const (
	DifficultyBeginner     Difficulty = "beginner"
	DifficultyIntermediate Difficulty = "intermediate"
	DifficultyAdvanced     Difficulty = "advanced"
)

const (
	// ListLimit caps course and enrollment listings.
	ListLimit = 100

	// ProgressComplete is the progress at which an enrollment completes.
	ProgressComplete = 100
)

type Course struct {
	ID               id.CourseID `json:"course_id"`
	Title            string      `json:"title"`
	Description      string      `json:"description"`
	Difficulty       Difficulty  `json:"difficulty"`
	DurationHours    int         `json:"duration_hours"`
	TrustScoreReward int         `json:"trust_score_reward"`
	EnrolledCount    int         `json:"enrolled_count"`
}

// Enrollment tracks one user's progress through one course. Progress only
// moves forward and Completed never reverts.
type Enrollment struct {
	ID         id.EnrollmentID `json:"enrollment_id"`
	UserID     id.UserID       `json:"user_id"`
	CourseID   id.CourseID     `json:"course_id"`
	Progress   int             `json:"progress"`
	Completed  bool            `json:"completed"`
	EnrolledAt time.Time       `json:"enrolled_at"`
}

func NewEnrollment(userID id.UserID, courseID id.CourseID, now time.Time) *Enrollment {
	return &Enrollment{
		ID:         id.NewEnrollmentID(),
		UserID:     userID,
		CourseID:   courseID,
		EnrolledAt: now,
	}
}

// Advance raises progress to p. Lower values are ignored.
func (e *Enrollment) Advance(p int) {
	if p > e.Progress {
		e.Progress = p
	}
}

// Completable reports whether the enrollment reached full progress but is not
// yet marked completed.
func (e *Enrollment) Completable() bool {
	return e.Progress >= ProgressComplete && !e.Completed
}

func ValidateProgress(p int) error {
	if p < 0 || p > ProgressComplete {
		return dErrors.New(dErrors.CodeInvalidInput, "Progress must be between 0 and 100")
	}
	return nil
}
