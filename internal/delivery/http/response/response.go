package response

import "encoding/json"

// PredictionResponse is a DTO for a single verdict, mirroring
// entity.ClassificationResult.
type PredictionResponse struct {
	URL             string             `json:"url"`
	IsPhishing      bool               `json:"is_phishing"`
	Confidence      float64            `json:"confidence"`
	RiskLevel       string             `json:"risk_level"` // "safe", "low", "medium", "high", "critical", "unknown"
	IsPopularDomain bool               `json:"is_popular_domain"`
	Features        map[string]float64 `json:"features,omitempty"`
	Recommendation  string             `json:"recommendation"`
}

type BatchPredictionResponse struct {
	Results          []PredictionResponse `json:"results"`
	TotalAnalyzed    int                  `json:"total_analyzed"`
	PhishingDetected int                  `json:"phishing_detected"`
}

type HealthResponse struct {
	Status        string `json:"status"` // "healthy" or "unhealthy"
	ModelLoaded   bool   `json:"model_loaded"`
	ModelVersion  string `json:"model_version,omitempty"`
	FeaturesCount int    `json:"features_count"`
}

type FeaturesResponse struct {
	FeatureNames       []string `json:"feature_names"`
	FeatureCount       int      `json:"feature_count"`
	SuspiciousKeywords []string `json:"suspicious_keywords"`
	SuspiciousTLDs     []string `json:"suspicious_tlds"`
}

type StatsResponse struct {
	Model               json.RawMessage `json:"model"`
	PopularDomainsCount int             `json:"popular_domains_count"`
	APIVersion          string          `json:"api_version"`
}

type FeedbackResponse struct {
	Status   string `json:"status"`
	ReportID string `json:"report_id"`
}
