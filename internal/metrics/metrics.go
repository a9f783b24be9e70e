// Package metrics holds the Prometheus collectors of the quiz service.
// A nil *QuizMetrics is valid and records nothing.
package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "birdquiz"

// Fetch outcomes.
const (
	OutcomeHit   = "hit"
	OutcomeEmpty = "empty"
	OutcomeError = "error"
)

// QuizMetrics tracks question generation, grading and upstream fetches.
type QuizMetrics struct {
	QuestionsIssued    prometheus.Counter
	QuestionsExhausted prometheus.Counter
	AnswersGraded      *prometheus.CounterVec
	RecordingFetches   *prometheus.CounterVec
	FetchAttempts      prometheus.Histogram
	LimiterWait        prometheus.Histogram
}

// NewQuizMetrics creates the collectors and registers them with registry.
func NewQuizMetrics(registry prometheus.Registerer) (*QuizMetrics, error) {
	m := &QuizMetrics{
		QuestionsIssued: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "questions_issued_total",
			Help:      "Total number of quiz questions issued.",
		}),
		QuestionsExhausted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "questions_exhausted_total",
			Help:      "Question requests that ended without a recording.",
		}),
		AnswersGraded: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "answers_graded_total",
			Help:      "Graded answers by result.",
		}, []string{"result"}),
		RecordingFetches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "recording_fetches_total",
			Help:      "Recording source lookups by source and outcome.",
		}, []string{"source", "outcome"}),
		FetchAttempts: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "question_fetch_attempts",
			Help:      "Species tried per question request.",
			Buckets:   prometheus.LinearBuckets(1, 1, 10),
		}),
		LimiterWait: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "rate_limiter_wait_seconds",
			Help:      "Time spent waiting for the upstream rate limiter.",
			Buckets:   []float64{0.01, 0.1, 0.5, 1, 2.5, 5, 10, 20, 30, 60},
		}),
	}

	for _, c := range []prometheus.Collector{
		m.QuestionsIssued, m.QuestionsExhausted, m.AnswersGraded,
		m.RecordingFetches, m.FetchAttempts, m.LimiterWait,
	} {
		if err := registry.Register(c); err != nil {
			return nil, fmt.Errorf("failed to register quiz metrics: %w", err)
		}
	}
	return m, nil
}

func (m *QuizMetrics) IncQuestionsIssued(attempts int) {
	if m == nil {
		return
	}
	m.QuestionsIssued.Inc()
	m.FetchAttempts.Observe(float64(attempts))
}

func (m *QuizMetrics) IncQuestionsExhausted(attempts int) {
	if m == nil {
		return
	}
	m.QuestionsExhausted.Inc()
	m.FetchAttempts.Observe(float64(attempts))
}

func (m *QuizMetrics) IncAnswersGraded(correct bool) {
	if m == nil {
		return
	}
	result := "incorrect"
	if correct {
		result = "correct"
	}
	m.AnswersGraded.WithLabelValues(result).Inc()
}

func (m *QuizMetrics) IncRecordingFetch(source, outcome string) {
	if m == nil {
		return
	}
	m.RecordingFetches.WithLabelValues(source, outcome).Inc()
}

func (m *QuizMetrics) ObserveLimiterWait(d time.Duration) {
	if m == nil {
		return
	}
	m.LimiterWait.Observe(d.Seconds())
}
