package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	accountmodels "pezkuwi/internal/account/models"
	"pezkuwi/internal/audit"
	"pezkuwi/internal/education/metrics"
	"pezkuwi/internal/education/models"
	id "pezkuwi/pkg/domain"
	dErrors "pezkuwi/pkg/domain-errors"
	"pezkuwi/pkg/platform/sentinel"
	txcontext "pezkuwi/pkg/platform/tx"
	"pezkuwi/pkg/requestcontext"
)

//go:generate mockgen -source=service.go -destination=mocks/mocks.go -package=mocks

var tracer = otel.Tracer("education")

type Accounts interface {
	FindByID(ctx context.Context, userID id.UserID) (*accountmodels.User, error)
}

type Store interface {
	EnsureCourse(ctx context.Context, c *models.Course) error
	ListCourses(ctx context.Context, limit int) ([]models.Course, error)
	FindCourse(ctx context.Context, courseID id.CourseID) (*models.Course, error)
	InsertEnrollment(ctx context.Context, e *models.Enrollment) error
	IncrementEnrolled(ctx context.Context, courseID id.CourseID) error
	ListByUser(ctx context.Context, userID id.UserID, limit int) ([]models.Enrollment, error)
	AdvanceProgress(ctx context.Context, userID id.UserID, courseID id.CourseID, progress int) (*models.Enrollment, error)
	MarkCompleted(ctx context.Context, userID id.UserID, courseID id.CourseID) (*models.Enrollment, error)
}

// TrustRefresher recomputes a user's stored trust score.
type TrustRefresher interface {
	Refresh(ctx context.Context, userID id.UserID) (int, error)
}

type AuditPublisher interface {
	Emit(ctx context.Context, event audit.Event) error
}

// Service runs the course catalog and citizen enrollments.
type Service struct {
	accounts       Accounts
	courses        Store
	tx             txcontext.Runner
	trust          TrustRefresher
	logger         *slog.Logger
	auditPublisher AuditPublisher
	metrics        *metrics.Metrics
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithAuditPublisher(publisher AuditPublisher) Option {
	return func(s *Service) {
		s.auditPublisher = publisher
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

// WithTrustRefresher recomputes the learner's trust score when a course completes.
func WithTrustRefresher(trust TrustRefresher) Option {
	return func(s *Service) {
		s.trust = trust
	}
}

func New(accounts Accounts, courses Store, runner txcontext.Runner, opts ...Option) *Service {
	s := &Service{accounts: accounts, courses: courses, tx: runner}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Seed stores courses that do not exist yet.
func (s *Service) Seed(ctx context.Context, courses []models.Course) error {
	for i := range courses {
		if err := s.courses.EnsureCourse(ctx, &courses[i]); err != nil {
			return fmt.Errorf("seed course %s: %w", courses[i].ID, err)
		}
	}
	return nil
}

func (s *Service) ListCourses(ctx context.Context) ([]models.Course, error) {
	ctx, span := tracer.Start(ctx, "Education.Service.ListCourses")
	defer span.End()

	courses, err := s.courses.ListCourses(ctx, models.ListLimit)
	if err != nil {
		span.RecordError(err)
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list courses")
	}
	if courses == nil {
		courses = []models.Course{}
	}
	return courses, nil
}

// Enroll signs a citizen up for a course. The course's enrolled count moves
// in the same transaction as the enrollment insert.
func (s *Service) Enroll(ctx context.Context, userID id.UserID, courseID id.CourseID) (*models.Enrollment, error) {
	ctx, span := tracer.Start(ctx, "Education.Service.Enroll",
		trace.WithAttributes(
			attribute.String("user_id", userID.String()),
			attribute.String("course_id", courseID.String()),
		))
	defer span.End()

	user, err := s.accounts.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "User not found")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load account")
	}
	if !user.IsCitizen {
		return nil, dErrors.New(dErrors.CodeForbidden, "Only citizens can access education")
	}
	course, err := s.courses.FindCourse(ctx, courseID)
	if err != nil {
		return nil, wrapCourseErr(err)
	}

	enrollment := models.NewEnrollment(userID, courseID, requestcontext.Now(ctx))
	err = s.tx.RunInTx(ctx, func(ctx context.Context) error {
		if err := s.courses.InsertEnrollment(ctx, enrollment); err != nil {
			return err
		}
		return s.courses.IncrementEnrolled(ctx, courseID)
	})
	if err != nil {
		span.RecordError(err)
		if errors.Is(err, sentinel.ErrAlreadyUsed) {
			return nil, dErrors.New(dErrors.CodeConflict, "Already enrolled")
		}
		return nil, wrapCourseErr(err)
	}

	s.metrics.IncrementEnrollments(string(course.Difficulty))
	s.emit(ctx, audit.Event{
		Action:  audit.ActionCourseEnrolled,
		UserID:  userID,
		Subject: courseID.String(),
		Detail:  course.Title,
	})
	return enrollment, nil
}

// ListMyCourses returns the user's enrollments. Unknown users get an empty list.
func (s *Service) ListMyCourses(ctx context.Context, userID id.UserID) ([]models.Enrollment, error) {
	ctx, span := tracer.Start(ctx, "Education.Service.ListMyCourses")
	defer span.End()

	enrollments, err := s.courses.ListByUser(ctx, userID, models.ListLimit)
	if err != nil {
		span.RecordError(err)
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list enrollments")
	}
	if enrollments == nil {
		enrollments = []models.Enrollment{}
	}
	return enrollments, nil
}

// UpdateProgress raises an enrollment's progress. Reaching 100 completes the
// course once, which feeds the learner's trust score.
func (s *Service) UpdateProgress(ctx context.Context, userID id.UserID, courseID id.CourseID, progress int) (*models.Enrollment, error) {
	ctx, span := tracer.Start(ctx, "Education.Service.UpdateProgress",
		trace.WithAttributes(
			attribute.String("user_id", userID.String()),
			attribute.String("course_id", courseID.String()),
			attribute.Int("progress", progress),
		))
	defer span.End()

	if err := models.ValidateProgress(progress); err != nil {
		return nil, err
	}

	var (
		enrollment *models.Enrollment
		completed  bool
	)
	err := s.tx.RunInTx(ctx, func(ctx context.Context) error {
		var err error
		enrollment, err = s.courses.AdvanceProgress(ctx, userID, courseID, progress)
		if err != nil || !enrollment.Completable() {
			return err
		}
		done, err := s.courses.MarkCompleted(ctx, userID, courseID)
		switch {
		case err == nil:
			enrollment, completed = done, true
		case errors.Is(err, sentinel.ErrInvalidState):
			// a concurrent update completed it first
			enrollment.Completed = true
		default:
			return err
		}
		return nil
	})
	if err != nil {
		span.RecordError(err)
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "Enrollment not found")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to update progress")
	}

	if completed {
		s.metrics.IncrementCompletions(courseID.String())
		s.refreshTrust(ctx, userID)
		s.emit(ctx, audit.Event{
			Action:  audit.ActionCourseCompleted,
			UserID:  userID,
			Subject: courseID.String(),
		})
	}
	return enrollment, nil
}

func (s *Service) refreshTrust(ctx context.Context, userID id.UserID) {
	if s.trust == nil {
		return
	}
	if _, err := s.trust.Refresh(ctx, userID); err != nil && s.logger != nil {
		s.logger.WarnContext(ctx, "failed to refresh trust score after course completion",
			"user_id", userID.String(),
			"error", err,
		)
	}
}

func (s *Service) emit(ctx context.Context, event audit.Event) {
	if s.auditPublisher == nil {
		return
	}
	if err := s.auditPublisher.Emit(ctx, event); err != nil && s.logger != nil {
		s.logger.ErrorContext(ctx, "failed to emit audit event",
			"action", string(event.Action),
			"error", err,
		)
	}
}

func wrapCourseErr(err error) error {
	if errors.Is(err, sentinel.ErrNotFound) {
		return dErrors.New(dErrors.CodeNotFound, "Course not found")
	}
	if _, ok := dErrors.As(err); ok {
		return err
	}
	return dErrors.Wrap(err, dErrors.CodeInternal, "failed to enroll")
}
