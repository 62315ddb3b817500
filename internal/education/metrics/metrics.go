package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Metrics struct {
	Enrollments *prometheus.CounterVec
	Completions *prometheus.CounterVec
}

func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		Enrollments: f.NewCounterVec(prometheus.CounterOpts{
			Name: "pezkuwi_course_enrollments_total",
			Help: "Course enrollments by difficulty",
		}, []string{"difficulty"}),
		Completions: f.NewCounterVec(prometheus.CounterOpts{
			Name: "pezkuwi_course_completions_total",
			Help: "Enrollments that reached full progress",
		}, []string{"course_id"}),
	}
}

func (m *Metrics) IncrementEnrollments(difficulty string) {
	if m != nil {
		m.Enrollments.WithLabelValues(difficulty).Inc()
	}
}

func (m *Metrics) IncrementCompletions(courseID string) {
	if m != nil {
		m.Completions.WithLabelValues(courseID).Inc()
	}
}
