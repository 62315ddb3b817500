package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	accountmodels "pezkuwi/internal/account/models"
	accountstore "pezkuwi/internal/account/store"
	"pezkuwi/internal/audit"
	auditstore "pezkuwi/internal/audit/store"
	"pezkuwi/internal/education/metrics"
	"pezkuwi/internal/education/models"
	"pezkuwi/internal/education/service/mocks"
	"pezkuwi/internal/education/store"
	trustservice "pezkuwi/internal/trustscore/service"
	id "pezkuwi/pkg/domain"
	dErrors "pezkuwi/pkg/domain-errors"
	"pezkuwi/pkg/platform/sentinel"
	txcontext "pezkuwi/pkg/platform/tx"
	"pezkuwi/pkg/requestcontext"
)

type noVotes struct{}

func (noVotes) CountVotesByUser(context.Context, id.UserID) (int, error) { return 0, nil }

type ServiceSuite struct {
	suite.Suite
	accounts *accountstore.InMemory
	courses  *store.InMemory
	audit    *auditstore.InMemory
	metrics  *metrics.Metrics
	trust    *trustservice.Service
	service  *Service
	ctx      context.Context
	now      time.Time
	course   models.Course
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	s.accounts = accountstore.NewInMemory()
	s.courses = store.NewInMemory()
	s.audit = auditstore.NewInMemory()
	s.metrics = metrics.New(prometheus.NewRegistry())
	s.trust = trustservice.New(s.accounts, noVotes{}, s.courses)
	s.service = New(s.accounts, s.courses, txcontext.NewMemoryRunner(),
		WithTrustRefresher(s.trust),
		WithAuditPublisher(audit.NewPublisher(s.audit)),
		WithMetrics(s.metrics),
	)
	s.now = time.Date(2026, 6, 1, 9, 0, 0, 0, time.UTC)
	s.ctx = requestcontext.WithTime(context.Background(), s.now)

	demo := store.DemoCourses()
	s.Require().NoError(s.service.Seed(s.ctx, demo))
	s.course = demo[0]
}

func (s *ServiceSuite) newUser(citizen bool) *accountmodels.User {
	wallet, err := id.NewWalletAddress()
	s.Require().NoError(err)
	u := accountmodels.NewUser(id.NewUserID(), wallet, nil, "", s.now)
	if citizen {
		u.ApproveCitizenship("fingerprint", s.now)
		u.TrustScore = 500
	}
	s.Require().NoError(s.accounts.Create(s.ctx, u))
	return u
}

func (s *ServiceSuite) TestListCourses() {
	courses, err := s.service.ListCourses(s.ctx)
	s.Require().NoError(err)
	s.Len(courses, 4)
	s.Equal("Blockchain Fundamentals", courses[0].Title)

	s.Run("seeding again adds nothing", func() {
		s.Require().NoError(s.service.Seed(s.ctx, store.DemoCourses()))
		courses, err := s.service.ListCourses(s.ctx)
		s.Require().NoError(err)
		s.Len(courses, 4)
	})
}

func (s *ServiceSuite) TestEnroll() {
	learner := s.newUser(true)

	enrollment, err := s.service.Enroll(s.ctx, learner.ID, s.course.ID)
	s.Require().NoError(err)
	s.Equal(0, enrollment.Progress)
	s.False(enrollment.Completed)
	s.Equal(s.now, enrollment.EnrolledAt)

	course, err := s.courses.FindCourse(s.ctx, s.course.ID)
	s.Require().NoError(err)
	s.Equal(1, course.EnrolledCount)

	s.Run("second enrollment is a conflict and the count holds", func() {
		_, err := s.service.Enroll(s.ctx, learner.ID, s.course.ID)
		de, ok := dErrors.As(err)
		s.Require().True(ok)
		s.Equal(dErrors.CodeConflict, de.Code)
		s.Equal("Already enrolled", de.Message)

		course, err := s.courses.FindCourse(s.ctx, s.course.ID)
		s.Require().NoError(err)
		s.Equal(1, course.EnrolledCount)
	})

	mine, err := s.service.ListMyCourses(s.ctx, learner.ID)
	s.Require().NoError(err)
	s.Require().Len(mine, 1)
	s.Equal(enrollment.ID, mine[0].ID)

	events, err := s.audit.ListByUser(s.ctx, learner.ID, 0)
	s.Require().NoError(err)
	s.Require().Len(events, 1)
	s.Equal(audit.ActionCourseEnrolled, events[0].Action)
	s.Equal(float64(1), testutil.ToFloat64(s.metrics.Enrollments.WithLabelValues("beginner")))
}

func (s *ServiceSuite) TestEnrollErrorOrder() {
	citizen := s.newUser(true)
	resident := s.newUser(false)

	cases := []struct {
		name    string
		userID  id.UserID
		course  id.CourseID
		code    dErrors.Code
		message string
	}{
		{"unknown user", id.NewUserID(), id.NewCourseID(), dErrors.CodeNotFound, "User not found"},
		{"non-citizen beats unknown course", resident.ID, id.NewCourseID(), dErrors.CodeForbidden, "Only citizens can access education"},
		{"unknown course", citizen.ID, id.NewCourseID(), dErrors.CodeNotFound, "Course not found"},
	}
	for _, tc := range cases {
		s.Run(tc.name, func() {
			_, err := s.service.Enroll(s.ctx, tc.userID, tc.course)
			de, ok := dErrors.As(err)
			s.Require().True(ok, "got %v", err)
			s.Equal(tc.code, de.Code)
			s.Equal(tc.message, de.Message)
		})
	}
}

func (s *ServiceSuite) TestConcurrentEnrollCountsOnce() {
	learner := s.newUser(true)

	var wg sync.WaitGroup
	results := make(chan error, 10)
	for range 10 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := s.service.Enroll(s.ctx, learner.ID, s.course.ID)
			results <- err
		}()
	}
	wg.Wait()
	close(results)

	succeeded := 0
	for err := range results {
		if err == nil {
			succeeded++
			continue
		}
		s.True(dErrors.HasCode(err, dErrors.CodeConflict))
	}
	s.Equal(1, succeeded)

	course, err := s.courses.FindCourse(s.ctx, s.course.ID)
	s.Require().NoError(err)
	s.Equal(1, course.EnrolledCount)
}

func (s *ServiceSuite) TestListMyCoursesForUnknownUserIsEmpty() {
	mine, err := s.service.ListMyCourses(s.ctx, id.NewUserID())
	s.Require().NoError(err)
	s.NotNil(mine)
	s.Empty(mine)
}

func (s *ServiceSuite) TestUpdateProgress() {
	learner := s.newUser(true)
	_, err := s.service.Enroll(s.ctx, learner.ID, s.course.ID)
	s.Require().NoError(err)

	before, err := s.trust.Breakdown(s.ctx, learner.ID)
	s.Require().NoError(err)
	s.Equal(0, before.EducationBonus)

	e, err := s.service.UpdateProgress(s.ctx, learner.ID, s.course.ID, 60)
	s.Require().NoError(err)
	s.Equal(60, e.Progress)
	s.False(e.Completed)

	s.Run("lower progress is ignored", func() {
		e, err := s.service.UpdateProgress(s.ctx, learner.ID, s.course.ID, 20)
		s.Require().NoError(err)
		s.Equal(60, e.Progress)
	})

	s.Run("reaching 100 completes the course and raises trust by 50", func() {
		e, err := s.service.UpdateProgress(s.ctx, learner.ID, s.course.ID, 100)
		s.Require().NoError(err)
		s.True(e.Completed)

		after, err := s.trust.Breakdown(s.ctx, learner.ID)
		s.Require().NoError(err)
		s.Equal(before.TotalScore+50, after.TotalScore)

		stored, err := s.accounts.FindByID(s.ctx, learner.ID)
		s.Require().NoError(err)
		s.Equal(550, stored.TrustScore)
	})

	s.Run("completing again is idempotent", func() {
		e, err := s.service.UpdateProgress(s.ctx, learner.ID, s.course.ID, 100)
		s.Require().NoError(err)
		s.True(e.Completed)
		s.Equal(float64(1), testutil.ToFloat64(s.metrics.Completions.WithLabelValues(s.course.ID.String())))
	})

	events, err := s.audit.ListByUser(s.ctx, learner.ID, 0)
	s.Require().NoError(err)
	s.Require().Len(events, 2)
	s.Equal(audit.ActionCourseCompleted, events[0].Action)
}

func (s *ServiceSuite) TestUpdateProgressRejections() {
	learner := s.newUser(true)

	s.Run("out of range", func() {
		for _, p := range []int{-1, 101} {
			_, err := s.service.UpdateProgress(s.ctx, learner.ID, s.course.ID, p)
			s.True(dErrors.HasCode(err, dErrors.CodeInvalidInput), "progress %d", p)
		}
	})

	s.Run("no enrollment", func() {
		_, err := s.service.UpdateProgress(s.ctx, learner.ID, s.course.ID, 10)
		de, ok := dErrors.As(err)
		s.Require().True(ok)
		s.Equal(dErrors.CodeNotFound, de.Code)
		s.Equal("Enrollment not found", de.Message)
	})
}

func TestEnrollStoreFailures(t *testing.T) {
	ctx := context.Background()
	citizen := &accountmodels.User{ID: id.NewUserID(), IsCitizen: true}
	course := &models.Course{ID: id.NewCourseID(), Title: "Kurdish History and Culture", Difficulty: models.DifficultyBeginner}

	t.Run("increment failure is internal", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		accounts := mocks.NewMockAccounts(ctrl)
		courses := mocks.NewMockStore(ctrl)
		svc := New(accounts, courses, txcontext.NewMemoryRunner())

		accounts.EXPECT().FindByID(gomock.Any(), citizen.ID).Return(citizen, nil)
		courses.EXPECT().FindCourse(gomock.Any(), course.ID).Return(course, nil)
		courses.EXPECT().InsertEnrollment(gomock.Any(), gomock.Any()).Return(nil)
		courses.EXPECT().IncrementEnrolled(gomock.Any(), course.ID).Return(errors.New("disk full"))

		_, err := svc.Enroll(ctx, citizen.ID, course.ID)
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeInternal))
	})

	t.Run("audit failure does not fail enrollment", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		accounts := mocks.NewMockAccounts(ctrl)
		courses := mocks.NewMockStore(ctrl)
		publisher := mocks.NewMockAuditPublisher(ctrl)
		svc := New(accounts, courses, txcontext.NewMemoryRunner(), WithAuditPublisher(publisher))

		accounts.EXPECT().FindByID(gomock.Any(), citizen.ID).Return(citizen, nil)
		courses.EXPECT().FindCourse(gomock.Any(), course.ID).Return(course, nil)
		courses.EXPECT().InsertEnrollment(gomock.Any(), gomock.Any()).Return(nil)
		courses.EXPECT().IncrementEnrolled(gomock.Any(), course.ID).Return(nil)
		publisher.EXPECT().Emit(gomock.Any(), gomock.Any()).Return(errors.New("sink down"))

		e, err := svc.Enroll(ctx, citizen.ID, course.ID)
		require.NoError(t, err)
		assert.Equal(t, course.ID, e.CourseID)
	})
}

func TestUpdateProgressLostCompletionRace(t *testing.T) {
	ctrl := gomock.NewController(t)
	courses := mocks.NewMockStore(ctrl)
	trust := mocks.NewMockTrustRefresher(ctrl)
	svc := New(mocks.NewMockAccounts(ctrl), courses, txcontext.NewMemoryRunner(), WithTrustRefresher(trust))

	userID, courseID := id.NewUserID(), id.NewCourseID()
	courses.EXPECT().AdvanceProgress(gomock.Any(), userID, courseID, 100).
		Return(&models.Enrollment{UserID: userID, CourseID: courseID, Progress: 100}, nil)
	courses.EXPECT().MarkCompleted(gomock.Any(), userID, courseID).Return(nil, sentinel.ErrInvalidState)

	e, err := svc.UpdateProgress(context.Background(), userID, courseID, 100)
	require.NoError(t, err)
	assert.True(t, e.Completed)
}
