package entity

// RiskLevel is a qualitative bucket derived from the model probability.
type RiskLevel string

const (
	RiskSafe     RiskLevel = "safe"
	RiskLow      RiskLevel = "low"
	RiskMedium   RiskLevel = "medium"
	RiskHigh     RiskLevel = "high"
	RiskCritical RiskLevel = "critical"
	RiskUnknown  RiskLevel = "unknown" // placeholder for URLs that could not be analyzed
)

// ClassificationResult is the verdict for a single URL.
type ClassificationResult struct {
	URL             string
	IsPhishing      bool
	Confidence      float64
	RiskLevel       RiskLevel
	IsPopularDomain bool
	Features        FeatureVector // nil when extraction failed
	Recommendation  string
}

// BatchResult holds per-item verdicts for a batch request. Results is
// always the same length and order as the input URL list.
type BatchResult struct {
	Results          []*ClassificationResult
	TotalAnalyzed    int
	PhishingDetected int
}
