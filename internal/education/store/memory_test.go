package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"pezkuwi/internal/education/models"
	id "pezkuwi/pkg/domain"
	"pezkuwi/pkg/platform/sentinel"
)

type InMemorySuite struct {
	suite.Suite
	store  *InMemory
	ctx    context.Context
	now    time.Time
	course models.Course
}

func TestInMemorySuite(t *testing.T) {
	suite.Run(t, new(InMemorySuite))
}

func (s *InMemorySuite) SetupTest() {
	s.store = NewInMemory()
	s.ctx = context.Background()
	s.now = time.Date(2026, 6, 1, 9, 0, 0, 0, time.UTC)
	for _, c := range DemoCourses() {
		s.Require().NoError(s.store.EnsureCourse(s.ctx, &c))
	}
	s.course = DemoCourses()[0]
}

func (s *InMemorySuite) TestListCoursesSortedAndLimited() {
	courses, err := s.store.ListCourses(s.ctx, 2)
	s.Require().NoError(err)
	s.Require().Len(courses, 2)
	s.Equal("Blockchain Fundamentals", courses[0].Title)
	s.Equal("Civic Participation and Governance", courses[1].Title)
}

func (s *InMemorySuite) TestInsertEnrollment() {
	userID := id.NewUserID()
	e := models.NewEnrollment(userID, s.course.ID, s.now)
	s.Require().NoError(s.store.InsertEnrollment(s.ctx, e))

	s.ErrorIs(s.store.InsertEnrollment(s.ctx, models.NewEnrollment(userID, s.course.ID, s.now)), sentinel.ErrAlreadyUsed)
	s.ErrorIs(s.store.InsertEnrollment(s.ctx, models.NewEnrollment(userID, id.NewCourseID(), s.now)), sentinel.ErrNotFound)
	s.ErrorIs(s.store.IncrementEnrolled(s.ctx, id.NewCourseID()), sentinel.ErrNotFound)
}

func (s *InMemorySuite) TestListByUserOldestFirst() {
	userID := id.NewUserID()
	courses := DemoCourses()
	for i, c := range courses[:3] {
		s.Require().NoError(s.store.InsertEnrollment(s.ctx, models.NewEnrollment(userID, c.ID, s.now.Add(-time.Duration(i)*time.Hour))))
	}
	s.Require().NoError(s.store.InsertEnrollment(s.ctx, models.NewEnrollment(id.NewUserID(), courses[0].ID, s.now)))

	got, err := s.store.ListByUser(s.ctx, userID, 0)
	s.Require().NoError(err)
	s.Require().Len(got, 3)
	s.Equal(courses[2].ID, got[0].CourseID)
	s.Equal(courses[0].ID, got[2].CourseID)
}

func (s *InMemorySuite) TestProgressAndCompletion() {
	userID := id.NewUserID()
	s.Require().NoError(s.store.InsertEnrollment(s.ctx, models.NewEnrollment(userID, s.course.ID, s.now)))

	_, err := s.store.MarkCompleted(s.ctx, userID, s.course.ID)
	s.ErrorIs(err, sentinel.ErrInvalidState, "not at 100 yet")

	e, err := s.store.AdvanceProgress(s.ctx, userID, s.course.ID, 100)
	s.Require().NoError(err)
	s.True(e.Completable())

	e, err = s.store.MarkCompleted(s.ctx, userID, s.course.ID)
	s.Require().NoError(err)
	s.True(e.Completed)

	_, err = s.store.MarkCompleted(s.ctx, userID, s.course.ID)
	s.ErrorIs(err, sentinel.ErrInvalidState, "only one caller sees the transition")

	n, err := s.store.CountCompleted(s.ctx, userID)
	s.Require().NoError(err)
	s.Equal(1, n)

	_, err = s.store.AdvanceProgress(s.ctx, id.NewUserID(), s.course.ID, 10)
	s.ErrorIs(err, sentinel.ErrNotFound)
}
