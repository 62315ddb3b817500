package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"pezkuwi/internal/education/models"
	"pezkuwi/internal/platform/postgres"
	id "pezkuwi/pkg/domain"
	"pezkuwi/pkg/platform/sentinel"
	txcontext "pezkuwi/pkg/platform/tx"
)

// PostgresStore persists courses and enrollments in PostgreSQL.
type PostgresStore struct {
	db *sqlx.DB
}

func NewPostgres(db *sqlx.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

const (
	courseColumns     = `course_id, title, description, difficulty, duration_hours, trust_score_reward, enrolled_count`
	enrollmentColumns = `enrollment_id, user_id, course_id, progress, completed, enrolled_at`
)

type courseRow struct {
	CourseID         uuid.UUID `db:"course_id"`
	Title            string    `db:"title"`
	Description      string    `db:"description"`
	Difficulty       string    `db:"difficulty"`
	DurationHours    int       `db:"duration_hours"`
	TrustScoreReward int       `db:"trust_score_reward"`
	EnrolledCount    int       `db:"enrolled_count"`
}

func (r courseRow) toModel() models.Course {
	return models.Course{
		ID:               id.CourseID(r.CourseID),
		Title:            r.Title,
		Description:      r.Description,
		Difficulty:       models.Difficulty(r.Difficulty),
		DurationHours:    r.DurationHours,
		TrustScoreReward: r.TrustScoreReward,
		EnrolledCount:    r.EnrolledCount,
	}
}

type enrollmentRow struct {
	EnrollmentID uuid.UUID `db:"enrollment_id"`
	UserID       uuid.UUID `db:"user_id"`
	CourseID     uuid.UUID `db:"course_id"`
	Progress     int       `db:"progress"`
	Completed    bool      `db:"completed"`
	EnrolledAt   time.Time `db:"enrolled_at"`
}

func (r enrollmentRow) toModel() *models.Enrollment {
	return &models.Enrollment{
		ID:         id.EnrollmentID(r.EnrollmentID),
		UserID:     id.UserID(r.UserID),
		CourseID:   id.CourseID(r.CourseID),
		Progress:   r.Progress,
		Completed:  r.Completed,
		EnrolledAt: r.EnrolledAt,
	}
}

func (s *PostgresStore) EnsureCourse(ctx context.Context, c *models.Course) error {
	_, err := txcontext.Conn(ctx, s.db).ExecContext(ctx, `
		INSERT INTO courses (`+courseColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (course_id) DO NOTHING`,
		uuid.UUID(c.ID), c.Title, c.Description, string(c.Difficulty),
		c.DurationHours, c.TrustScoreReward, c.EnrolledCount,
	)
	if err != nil {
		return fmt.Errorf("seed course: %w", err)
	}
	return nil
}

func (s *PostgresStore) ListCourses(ctx context.Context, limit int) ([]models.Course, error) {
	if limit <= 0 {
		limit = models.ListLimit
	}
	var rows []courseRow
	err := txcontext.Conn(ctx, s.db).SelectContext(ctx, &rows,
		`SELECT `+courseColumns+` FROM courses ORDER BY title LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("list courses: %w", err)
	}
	out := make([]models.Course, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.toModel())
	}
	return out, nil
}

func (s *PostgresStore) FindCourse(ctx context.Context, courseID id.CourseID) (*models.Course, error) {
	var row courseRow
	err := txcontext.Conn(ctx, s.db).GetContext(ctx, &row,
		`SELECT `+courseColumns+` FROM courses WHERE course_id = $1`, uuid.UUID(courseID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("find course: %w", err)
	}
	c := row.toModel()
	return &c, nil
}

func (s *PostgresStore) InsertEnrollment(ctx context.Context, e *models.Enrollment) error {
	_, err := txcontext.Conn(ctx, s.db).ExecContext(ctx, `
		INSERT INTO enrollments (`+enrollmentColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		uuid.UUID(e.ID), uuid.UUID(e.UserID), uuid.UUID(e.CourseID),
		e.Progress, e.Completed, e.EnrolledAt,
	)
	switch {
	case err == nil:
		return nil
	case postgres.IsUniqueViolation(err):
		return sentinel.ErrAlreadyUsed
	case postgres.IsForeignKeyViolation(err):
		return sentinel.ErrNotFound
	}
	return fmt.Errorf("insert enrollment: %w", err)
}

func (s *PostgresStore) IncrementEnrolled(ctx context.Context, courseID id.CourseID) error {
	res, err := txcontext.Conn(ctx, s.db).ExecContext(ctx,
		`UPDATE courses SET enrolled_count = enrolled_count + 1 WHERE course_id = $1`, uuid.UUID(courseID))
	if err != nil {
		return fmt.Errorf("increment enrolled count: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("increment enrolled count: %w", err)
	}
	if n == 0 {
		return sentinel.ErrNotFound
	}
	return nil
}

func (s *PostgresStore) ListByUser(ctx context.Context, userID id.UserID, limit int) ([]models.Enrollment, error) {
	if limit <= 0 {
		limit = models.ListLimit
	}
	var rows []enrollmentRow
	err := txcontext.Conn(ctx, s.db).SelectContext(ctx, &rows, `
		SELECT `+enrollmentColumns+`
		FROM enrollments
		WHERE user_id = $1
		ORDER BY enrolled_at
		LIMIT $2`, uuid.UUID(userID), limit)
	if err != nil {
		return nil, fmt.Errorf("list enrollments: %w", err)
	}
	out := make([]models.Enrollment, 0, len(rows))
	for _, r := range rows {
		out = append(out, *r.toModel())
	}
	return out, nil
}

// AdvanceProgress raises progress with GREATEST so a stale lower value never
// moves an enrollment backwards.
func (s *PostgresStore) AdvanceProgress(ctx context.Context, userID id.UserID, courseID id.CourseID, progress int) (*models.Enrollment, error) {
	var row enrollmentRow
	err := txcontext.Conn(ctx, s.db).GetContext(ctx, &row, `
		UPDATE enrollments
		SET progress = GREATEST(progress, $3)
		WHERE user_id = $1 AND course_id = $2
		RETURNING `+enrollmentColumns,
		uuid.UUID(userID), uuid.UUID(courseID), progress)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("advance progress: %w", err)
	}
	return row.toModel(), nil
}

// MarkCompleted flips completed on a fully progressed enrollment. Exactly one
// caller observes the transition; the rest get ErrInvalidState.
func (s *PostgresStore) MarkCompleted(ctx context.Context, userID id.UserID, courseID id.CourseID) (*models.Enrollment, error) {
	var row enrollmentRow
	err := txcontext.Conn(ctx, s.db).GetContext(ctx, &row, `
		UPDATE enrollments
		SET completed = TRUE
		WHERE user_id = $1 AND course_id = $2 AND NOT completed AND progress >= $3
		RETURNING `+enrollmentColumns,
		uuid.UUID(userID), uuid.UUID(courseID), models.ProgressComplete)
	if err == nil {
		return row.toModel(), nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("complete enrollment: %w", err)
	}
	var exists bool
	if err := txcontext.Conn(ctx, s.db).GetContext(ctx, &exists,
		`SELECT EXISTS (SELECT 1 FROM enrollments WHERE user_id = $1 AND course_id = $2)`,
		uuid.UUID(userID), uuid.UUID(courseID)); err != nil {
		return nil, fmt.Errorf("complete enrollment: %w", err)
	}
	if !exists {
		return nil, sentinel.ErrNotFound
	}
	return nil, sentinel.ErrInvalidState
}

func (s *PostgresStore) CountCompleted(ctx context.Context, userID id.UserID) (int, error) {
	var n int
	err := txcontext.Conn(ctx, s.db).GetContext(ctx, &n,
		`SELECT COUNT(*) FROM enrollments WHERE user_id = $1 AND completed`, uuid.UUID(userID))
	if err != nil {
		return 0, fmt.Errorf("count completed courses: %w", err)
	}
	return n, nil
}
