package handler

import (
	"strings"

	"pezkuwi/internal/education/models"
	id "pezkuwi/pkg/domain"
	dErrors "pezkuwi/pkg/domain-errors"
)

type EnrollRequest struct {
	CourseID string `json:"course_id"`

	courseID id.CourseID
}

// Validate requires a course id. Malformed ids become the nil id, which the
// service reports as an unknown course after the user checks.
func (r *EnrollRequest) Validate() error {
	var err error
	r.courseID, err = parseCourseID(r.CourseID)
	return err
}

type ProgressRequest struct {
	CourseID string `json:"course_id"`
	Progress *int   `json:"progress"`

	courseID id.CourseID
}

func (r *ProgressRequest) Validate() error {
	var err error
	if r.courseID, err = parseCourseID(r.CourseID); err != nil {
		return err
	}
	if r.Progress == nil {
		return dErrors.New(dErrors.CodeInvalidInput, "progress is required")
	}
	return models.ValidateProgress(*r.Progress)
}

func parseCourseID(raw string) (id.CourseID, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return id.CourseID{}, dErrors.New(dErrors.CodeInvalidInput, "course_id is required")
	}
	parsed, err := id.ParseCourseID(raw)
	if err != nil {
		return id.CourseID{}, nil
	}
	return parsed, nil
}

type EnrollmentResponse struct {
	Success    bool               `json:"success"`
	Enrollment *models.Enrollment `json:"enrollment"`
}
