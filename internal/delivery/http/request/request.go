package request

type PredictRequest struct {
	URL string `json:"url"`
}

type BatchPredictRequest struct {
	URLs []string `json:"urls"`
}

type FeedbackRequest struct {
	URL           string `json:"url"`
	ReportedLabel string `json:"reported_label"` // "phishing" or "benign"
	Comment       string `json:"comment,omitempty"`
}
