package handler

//go:generate mockgen -source=handler.go -destination=mocks/mocks.go -package=mocks

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"pezkuwi/internal/education/models"
	id "pezkuwi/pkg/domain"
	"pezkuwi/pkg/platform/httputil"
	"pezkuwi/pkg/requestcontext"
)

type Service interface {
	ListCourses(ctx context.Context) ([]models.Course, error)
	Enroll(ctx context.Context, userID id.UserID, courseID id.CourseID) (*models.Enrollment, error)
	ListMyCourses(ctx context.Context, userID id.UserID) ([]models.Enrollment, error)
	UpdateProgress(ctx context.Context, userID id.UserID, courseID id.CourseID, progress int) (*models.Enrollment, error)
}

type Handler struct {
	service Service
	logger  *slog.Logger
}

func New(service Service, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

func (h *Handler) Register(r chi.Router) {
	r.Get("/education/courses", h.HandleListCourses)
	r.Post("/education/enroll/{user_id}", h.HandleEnroll)
	r.Get("/education/my-courses/{user_id}", h.HandleListMyCourses)
	r.Post("/education/progress/{user_id}", h.HandleProgress)
}

func (h *Handler) HandleListCourses(w http.ResponseWriter, r *http.Request) {
	courses, err := h.service.ListCourses(r.Context())
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, courses)
}

// HandleEnroll handles POST /education/enroll/{user_id}. course_id comes from
// the query string or, failing that, a JSON body.
func (h *Handler) HandleEnroll(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	userID, err := httputil.UserIDParam(r, "user_id")
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	var req *EnrollRequest
	if q := r.URL.Query(); q.Has("course_id") {
		req = &EnrollRequest{CourseID: q.Get("course_id")}
		if err := req.Validate(); err != nil {
			httputil.WriteError(w, err)
			return
		}
	} else {
		var ok bool
		req, ok = httputil.DecodeOptionalAndPrepare[EnrollRequest](w, r, h.logger, ctx, requestID)
		if !ok {
			return
		}
	}

	enrollment, err := h.service.Enroll(ctx, userID, req.courseID)
	if err != nil {
		h.logger.WarnContext(ctx, "enrollment rejected",
			"request_id", requestID,
			"user_id", userID.String(),
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, EnrollmentResponse{Success: true, Enrollment: enrollment})
}

func (h *Handler) HandleListMyCourses(w http.ResponseWriter, r *http.Request) {
	userID, err := httputil.UserIDParam(r, "user_id")
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	enrollments, err := h.service.ListMyCourses(r.Context(), userID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, enrollments)
}

// HandleProgress handles POST /education/progress/{user_id}.
func (h *Handler) HandleProgress(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	userID, err := httputil.UserIDParam(r, "user_id")
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	req, ok := httputil.DecodeAndPrepare[ProgressRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	enrollment, err := h.service.UpdateProgress(ctx, userID, req.courseID, *req.Progress)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	if enrollment.Completed {
		h.logger.InfoContext(ctx, "course completed",
			"request_id", requestID,
			"user_id", userID.String(),
			"course_id", enrollment.CourseID.String(),
		)
	}
	httputil.WriteJSON(w, http.StatusOK, EnrollmentResponse{Success: true, Enrollment: enrollment})
}
