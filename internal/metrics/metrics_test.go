package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestRecordGeneration(t *testing.T) {
	m := NewMetrics(prometheus.NewRegistry())

	m.RecordGeneration(5, nil)
	m.RecordGeneration(0, errors.New("llm down"))

	assert.Equal(t, 1.0, testutil.ToFloat64(m.QuestionGenerations.WithLabelValues("success")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.QuestionGenerations.WithLabelValues("error")))
	assert.Equal(t, 5.0, testutil.ToFloat64(m.QuestionsGenerated))
}

func TestRecordFeedback(t *testing.T) {
	m := NewMetrics(prometheus.NewRegistry())

	m.RecordFeedback("technical", 8, nil)
	m.RecordFeedback("technical", 0, errors.New("timeout"))

	assert.Equal(t, 1.0, testutil.ToFloat64(m.FeedbackRequests.WithLabelValues("technical", "success")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.FeedbackRequests.WithLabelValues("technical", "error")))
	assert.Equal(t, 1, testutil.CollectAndCount(m.FeedbackScores))
}

func TestObserveLLM(t *testing.T) {
	m := NewNop()
	m.ObserveLLM("generate_questions", time.Now())
	assert.Equal(t, 1, testutil.CollectAndCount(m.LLMLatency))
}
