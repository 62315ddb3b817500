package store

import (
	"context"
	"sort"
	"sync"

	"pezkuwi/internal/education/models"
	id "pezkuwi/pkg/domain"
	"pezkuwi/pkg/platform/sentinel"
)

type enrollmentKey struct {
	user   id.UserID
	course id.CourseID
}

// InMemory holds the catalog and enrollments for development and tests.
type InMemory struct {
	mu          sync.RWMutex
	courses     map[id.CourseID]*models.Course
	enrollments map[enrollmentKey]*models.Enrollment
}

func NewInMemory() *InMemory {
	return &InMemory{
		courses:     make(map[id.CourseID]*models.Course),
		enrollments: make(map[enrollmentKey]*models.Enrollment),
	}
}

// EnsureCourse inserts c unless a course with its id exists.
func (s *InMemory) EnsureCourse(_ context.Context, c *models.Course) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.courses[c.ID]; !ok {
		cp := *c
		s.courses[c.ID] = &cp
	}
	return nil
}

// ListCourses returns the catalog ordered by title.
func (s *InMemory) ListCourses(_ context.Context, limit int) ([]models.Course, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Course, 0, len(s.courses))
	for _, c := range s.courses {
		out = append(out, *c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Title < out[j].Title })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (s *InMemory) FindCourse(_ context.Context, courseID id.CourseID) (*models.Course, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.courses[courseID]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	cp := *c
	return &cp, nil
}

func (s *InMemory) InsertEnrollment(_ context.Context, e *models.Enrollment) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.courses[e.CourseID]; !ok {
		return sentinel.ErrNotFound
	}
	key := enrollmentKey{user: e.UserID, course: e.CourseID}
	if _, ok := s.enrollments[key]; ok {
		return sentinel.ErrAlreadyUsed
	}
	cp := *e
	s.enrollments[key] = &cp
	return nil
}

func (s *InMemory) IncrementEnrolled(_ context.Context, courseID id.CourseID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.courses[courseID]
	if !ok {
		return sentinel.ErrNotFound
	}
	c.EnrolledCount++
	return nil
}

// ListByUser returns a user's enrollments, oldest first.
func (s *InMemory) ListByUser(_ context.Context, userID id.UserID, limit int) ([]models.Enrollment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []models.Enrollment
	for key, e := range s.enrollments {
		if key.user == userID {
			out = append(out, *e)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].EnrolledAt.Before(out[j].EnrolledAt) })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (s *InMemory) AdvanceProgress(_ context.Context, userID id.UserID, courseID id.CourseID, progress int) (*models.Enrollment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.enrollments[enrollmentKey{user: userID, course: courseID}]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	e.Advance(progress)
	cp := *e
	return &cp, nil
}

// MarkCompleted flips a fully progressed enrollment to completed. It returns
// ErrInvalidState when the enrollment is already completed or not at 100.
func (s *InMemory) MarkCompleted(_ context.Context, userID id.UserID, courseID id.CourseID) (*models.Enrollment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.enrollments[enrollmentKey{user: userID, course: courseID}]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	if !e.Completable() {
		return nil, sentinel.ErrInvalidState
	}
	e.Completed = true
	cp := *e
	return &cp, nil
}

func (s *InMemory) CountCompleted(_ context.Context, userID id.UserID) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	n := 0
	for key, e := range s.enrollments {
		if key.user == userID && e.Completed {
			n++
		}
	}
	return n, nil
}
