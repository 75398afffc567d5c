package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the Prometheus collectors for the interview endpoints.
type Metrics struct {
	QuestionGenerations *prometheus.CounterVec
	QuestionsGenerated  prometheus.Counter
	FeedbackRequests    *prometheus.CounterVec
	FeedbackScores      prometheus.Histogram
	LLMLatency          *prometheus.HistogramVec
	JobStatusChanges    *prometheus.CounterVec
}

// NewMetrics registers all collectors with registry.
func NewMetrics(registry prometheus.Registerer) *Metrics {
	factory := promauto.With(registry)

	return &Metrics{
		QuestionGenerations: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "jobtracker_question_generations_total",
				Help: "Question generation requests by result",
			},
			[]string{"result"},
		),
		QuestionsGenerated: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "jobtracker_questions_generated_total",
				Help: "Interview questions returned to clients",
			},
		),
		FeedbackRequests: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "jobtracker_feedback_requests_total",
				Help: "Answer scoring requests by question category and result",
			},
			[]string{"category", "result"},
		),
		FeedbackScores: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "jobtracker_feedback_score",
				Help:    "Distribution of answer scores",
				Buckets: prometheus.LinearBuckets(0, 1, 11),
			},
		),
		LLMLatency: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "jobtracker_llm_duration_seconds",
				Help:    "LLM call latency by operation",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation"},
		),
		JobStatusChanges: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "jobtracker_job_status_changes_total",
				Help: "Job status transitions by target status",
			},
			[]string{"status"},
		),
	}
}

// NewNop returns metrics registered on a throwaway registry.
func NewNop() *Metrics {
	return NewMetrics(prometheus.NewRegistry())
}

func result(err error) string {
	if err != nil {
		return "error"
	}
	return "success"
}

func (m *Metrics) RecordGeneration(count int, err error) {
	m.QuestionGenerations.WithLabelValues(result(err)).Inc()
	if err == nil {
		m.QuestionsGenerated.Add(float64(count))
	}
}

func (m *Metrics) RecordFeedback(category string, score int, err error) {
	m.FeedbackRequests.WithLabelValues(category, result(err)).Inc()
	if err == nil {
		m.FeedbackScores.Observe(float64(score))
	}
}

func (m *Metrics) ObserveLLM(operation string, start time.Time) {
	m.LLMLatency.WithLabelValues(operation).Observe(time.Since(start).Seconds())
}
