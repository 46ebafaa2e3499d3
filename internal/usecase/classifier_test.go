package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/user/phishblock-service/internal/entity"
	"github.com/user/phishblock-service/internal/features"
)

// stubPredictor returns a fixed probability and counts invocations.
type stubPredictor struct {
	probability float64
	calls       int
}

func (s *stubPredictor) Predict(vector []float64) (float64, error) {
	s.calls++
	return s.probability, nil
}

func TestClassifyPopularDomainRaisesThreshold(t *testing.T) {
	// 0.70 clears the default 0.50 threshold, but google.com is in the
	// reputation set, so the bar is 0.80: high bucket, not flagged.
	uc := NewClassifier(&stubPredictor{probability: 0.70}, 0.50)

	result, err := uc.Classify(context.Background(), "https://google.com")
	require.NoError(t, err)

	assert.False(t, result.IsPhishing)
	assert.Equal(t, entity.RiskHigh, result.RiskLevel)
	assert.True(t, result.IsPopularDomain)
	assert.Equal(t, recommendPopular, result.Recommendation)
}

func TestClassifyUnknownDomainDefaultThreshold(t *testing.T) {
	uc := NewClassifier(&stubPredictor{probability: 0.70}, 0.50)

	result, err := uc.Classify(context.Background(), "http://secure-login.example-bank.com")
	require.NoError(t, err)

	assert.True(t, result.IsPhishing)
	assert.Equal(t, entity.RiskHigh, result.RiskLevel)
	assert.False(t, result.IsPopularDomain)
	assert.Equal(t, recommendPhishing, result.Recommendation)
}

func TestClassifyRiskBuckets(t *testing.T) {
	tests := []struct {
		probability float64
		expected    entity.RiskLevel
	}{
		{0.0, entity.RiskSafe},
		{0.19, entity.RiskSafe},
		{0.20, entity.RiskLow}, // lower bound is inclusive
		{0.39, entity.RiskLow},
		{0.40, entity.RiskMedium},
		{0.59, entity.RiskMedium},
		{0.60, entity.RiskHigh},
		{0.79, entity.RiskHigh},
		{0.80, entity.RiskCritical},
		{1.0, entity.RiskCritical},
	}
	for _, tt := range tests {
		uc := NewClassifier(&stubPredictor{probability: tt.probability}, 0.50)
		result, err := uc.Classify(context.Background(), "http://example.com")
		require.NoError(t, err)
		assert.Equal(t, tt.expected, result.RiskLevel, "probability %v", tt.probability)
	}
}

func TestClassifyMediumBucketCaution(t *testing.T) {
	uc := NewClassifier(&stubPredictor{probability: 0.45}, 0.50)

	result, err := uc.Classify(context.Background(), "http://example.com")
	require.NoError(t, err)

	assert.False(t, result.IsPhishing)
	assert.Equal(t, entity.RiskMedium, result.RiskLevel)
	assert.Equal(t, recommendCaution, result.Recommendation)
}

func TestClassifyConfidenceRounding(t *testing.T) {
	uc := NewClassifier(&stubPredictor{probability: 0.123456}, 0.50)

	result, err := uc.Classify(context.Background(), "http://example.com")
	require.NoError(t, err)
	assert.Equal(t, 0.1235, result.Confidence)
}

func TestClassifyUnparsableURL(t *testing.T) {
	uc := NewClassifier(&stubPredictor{probability: 0.9}, 0.50)

	_, err := uc.Classify(context.Background(), "http://a b.com")
	assert.ErrorIs(t, err, features.ErrUnparsable)
}

func TestClassifyNoModel(t *testing.T) {
	uc := NewClassifier(nil, 0.50)

	_, err := uc.Classify(context.Background(), "http://example.com")
	assert.ErrorIs(t, err, ErrModelUnavailable)
}

func TestClassifyBatchTooLarge(t *testing.T) {
	stub := &stubPredictor{probability: 0.9}
	uc := NewClassifier(stub, 0.50)

	urls := make([]string, MaxBatchSize+1)
	for i := range urls {
		urls[i] = "http://example.com"
	}

	_, err := uc.ClassifyBatch(context.Background(), urls)
	assert.ErrorIs(t, err, ErrBatchTooLarge)
	assert.Zero(t, stub.calls, "oversized batches must be rejected before any extraction")
}

func TestClassifyBatchIsolatesFailures(t *testing.T) {
	uc := NewClassifier(&stubPredictor{probability: 0.9}, 0.50)

	urls := []string{
		"http://phish-one.example.com",
		"http://phish-two.example.com",
		"http://a b.com", // unparseable
		"http://phish-four.example.com",
		"http://phish-five.example.com",
	}

	batch, err := uc.ClassifyBatch(context.Background(), urls)
	require.NoError(t, err)

	require.Len(t, batch.Results, 5)
	assert.Equal(t, 5, batch.TotalAnalyzed)
	assert.Equal(t, 4, batch.PhishingDetected)

	for i, result := range batch.Results {
		assert.Equal(t, urls[i], result.URL, "input order must be preserved")
	}

	placeholder := batch.Results[2]
	assert.False(t, placeholder.IsPhishing)
	assert.Equal(t, entity.RiskUnknown, placeholder.RiskLevel)
	assert.Zero(t, placeholder.Confidence)
	assert.Equal(t, recommendUnknown, placeholder.Recommendation)
	assert.Nil(t, placeholder.Features)
}

func TestClassifyBatchEmpty(t *testing.T) {
	uc := NewClassifier(&stubPredictor{probability: 0.9}, 0.50)

	batch, err := uc.ClassifyBatch(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, batch.Results)
	assert.Zero(t, batch.TotalAnalyzed)
	assert.Zero(t, batch.PhishingDetected)
}
