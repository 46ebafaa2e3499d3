package usecase

import (
	"context"
	"errors"
	"math"
	"strings"

	"github.com/user/phishblock-service/internal/entity"
	"github.com/user/phishblock-service/internal/features"
	"github.com/user/phishblock-service/internal/reputation"
	"github.com/user/phishblock-service/pkg/metrics"
)

var (
	ErrModelUnavailable = errors.New("classification model is not loaded")
	ErrBatchTooLarge    = errors.New("batch exceeds the maximum number of URLs")
)

// MaxBatchSize caps /predict/batch requests; it bounds worst-case latency
// for a single call.
const MaxBatchSize = 100

// popularThreshold is the raised decision threshold for domains in the
// reputation set: well-known sites must clear a higher bar before being
// flagged, without ever bypassing classification.
const popularThreshold = 0.80

const (
	recommendPopular  = "This appears to be a legitimate popular website."
	recommendPhishing = "WARNING: This URL shows strong phishing indicators. Do not enter any personal information."
	recommendCaution  = "Exercise caution. Verify the website's authenticity before proceeding."
	recommendNeutral  = "No significant phishing indicators detected."
	recommendUnknown  = "Could not analyze this URL"
)

// Predictor scores a canonical feature vector into a probability.
// *model.Booster satisfies it; tests substitute stubs.
type Predictor interface {
	Predict(vector []float64) (float64, error)
}

// Classifier defines the interface for URL risk classification.
type Classifier interface {
	Classify(ctx context.Context, url string) (*entity.ClassificationResult, error)
	ClassifyBatch(ctx context.Context, urls []string) (*entity.BatchResult, error)
}

type classifierUseCase struct {
	predictor     Predictor
	baseThreshold float64
}

// NewClassifier creates a Classifier bound to an immutable predictor.
// baseThreshold is the decision threshold for unrecognized domains;
// values outside (0,1) fall back to 0.50.
func NewClassifier(predictor Predictor, baseThreshold float64) Classifier {
	if baseThreshold <= 0 || baseThreshold >= 1 {
		baseThreshold = 0.50
	}
	return &classifierUseCase{
		predictor:     predictor,
		baseThreshold: baseThreshold,
	}
}

func (uc *classifierUseCase) Classify(ctx context.Context, rawURL string) (*entity.ClassificationResult, error) {
	if uc.predictor == nil {
		return nil, ErrModelUnavailable
	}
	rawURL = strings.TrimSpace(rawURL)

	popular := reputation.IsPopular(rawURL)

	vector, err := features.Extract(rawURL)
	if err != nil {
		return nil, err
	}

	probability, err := uc.predictor.Predict(vector)
	if err != nil {
		return nil, err
	}

	result := uc.decide(probability, popular)
	result.URL = rawURL
	result.Features = vector

	metrics.ClassificationsTotal.WithLabelValues(string(result.RiskLevel)).Inc()
	if result.IsPhishing {
		metrics.PhishingDetectedTotal.Inc()
	}
	return result, nil
}

// ClassifyBatch applies the single-URL pipeline to each entry in order.
// One URL failing never aborts the rest: failed items get a placeholder
// verdict so the output always matches the input length and order.
func (uc *classifierUseCase) ClassifyBatch(ctx context.Context, urls []string) (*entity.BatchResult, error) {
	if uc.predictor == nil {
		return nil, ErrModelUnavailable
	}
	if len(urls) > MaxBatchSize {
		return nil, ErrBatchTooLarge
	}

	metrics.BatchSize.Observe(float64(len(urls)))

	batch := &entity.BatchResult{
		Results: make([]*entity.ClassificationResult, 0, len(urls)),
	}
	for _, u := range urls {
		result, err := uc.Classify(ctx, u)
		if err != nil {
			result = placeholderResult(u)
		}
		batch.Results = append(batch.Results, result)
		if result.IsPhishing {
			batch.PhishingDetected++
		}
	}
	batch.TotalAnalyzed = len(batch.Results)
	return batch, nil
}

// decide turns a probability and the reputation gate outcome into a
// verdict. The risk bucket is derived from fixed cut-points independent
// of the phishing flag: a popular domain can sit in the "high" bucket
// with is_phishing=false because its threshold is raised to 0.80.
func (uc *classifierUseCase) decide(probability float64, popular bool) *entity.ClassificationResult {
	threshold := uc.baseThreshold
	if popular {
		threshold = popularThreshold
	}
	isPhishing := probability >= threshold

	level := riskLevel(probability)

	var recommendation string
	switch {
	case popular && !isPhishing:
		recommendation = recommendPopular
	case isPhishing:
		recommendation = recommendPhishing
	case level == entity.RiskMedium:
		recommendation = recommendCaution
	default:
		recommendation = recommendNeutral
	}

	return &entity.ClassificationResult{
		IsPhishing:      isPhishing,
		Confidence:      roundConfidence(probability),
		RiskLevel:       level,
		IsPopularDomain: popular,
		Recommendation:  recommendation,
	}
}

// riskLevel maps a probability onto the fixed, lower-inclusive buckets.
func riskLevel(probability float64) entity.RiskLevel {
	switch {
	case probability < 0.20:
		return entity.RiskSafe
	case probability < 0.40:
		return entity.RiskLow
	case probability < 0.60:
		return entity.RiskMedium
	case probability < 0.80:
		return entity.RiskHigh
	default:
		return entity.RiskCritical
	}
}

// roundConfidence keeps reported probabilities at 4 decimal places.
func roundConfidence(p float64) float64 {
	return math.Round(p*10000) / 10000
}

func placeholderResult(rawURL string) *entity.ClassificationResult {
	return &entity.ClassificationResult{
		URL:            rawURL,
		IsPhishing:     false,
		Confidence:     0,
		RiskLevel:      entity.RiskUnknown,
		Recommendation: recommendUnknown,
	}
}
