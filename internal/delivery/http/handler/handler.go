package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/user/phishblock-service/internal/delivery/http/request"
	"github.com/user/phishblock-service/internal/delivery/http/response"
	"github.com/user/phishblock-service/internal/entity"
	"github.com/user/phishblock-service/internal/features"
	"github.com/user/phishblock-service/internal/model"
	"github.com/user/phishblock-service/internal/reputation"
	"github.com/user/phishblock-service/internal/usecase"
)

const apiVersion = "1.0.0"

type Handler struct {
	classifier usecase.Classifier
	reports    usecase.ReportManager // nil when no report store is configured
	bundle     *model.Bundle
}

func NewHandler(classifier usecase.Classifier, reports usecase.ReportManager, bundle *model.Bundle) *Handler {
	return &Handler{
		classifier: classifier,
		reports:    reports,
		bundle:     bundle,
	}
}

func (h *Handler) HandleRoot(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]any{
		"name":        "PhishBlock API",
		"version":     apiVersion,
		"description": "Real-time phishing URL detection",
		"endpoints": map[string]string{
			"predict":  "/predict",
			"batch":    "/predict/batch",
			"health":   "/health",
			"features": "/features",
		},
	})
}

func (h *Handler) HandlePredict(w http.ResponseWriter, r *http.Request) {
	var req request.PredictRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeJSONError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	result, err := h.classifier.Classify(r.Context(), req.URL)
	if err != nil {
		h.writeClassifyError(w, req.URL, err)
		return
	}

	h.writeJSON(w, http.StatusOK, toPrediction(result))
}

func (h *Handler) HandlePredictBatch(w http.ResponseWriter, r *http.Request) {
	var req request.BatchPredictRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeJSONError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	batch, err := h.classifier.ClassifyBatch(r.Context(), req.URLs)
	if err != nil {
		if errors.Is(err, usecase.ErrBatchTooLarge) {
			h.writeJSONError(w, "Maximum 100 URLs per batch", http.StatusBadRequest)
			return
		}
		h.writeClassifyError(w, "", err)
		return
	}

	resp := response.BatchPredictionResponse{
		Results:          make([]response.PredictionResponse, 0, len(batch.Results)),
		TotalAnalyzed:    batch.TotalAnalyzed,
		PhishingDetected: batch.PhishingDetected,
	}
	for _, result := range batch.Results {
		resp.Results = append(resp.Results, toPrediction(result))
	}
	h.writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) HandleHealthCheck(w http.ResponseWriter, r *http.Request) {
	status := "healthy"
	if !h.bundle.Loaded() {
		status = "unhealthy"
	}
	h.writeJSON(w, http.StatusOK, response.HealthResponse{
		Status:        status,
		ModelLoaded:   h.bundle.Loaded(),
		ModelVersion:  h.bundle.Version(),
		FeaturesCount: len(entity.FeatureNames),
	})
}

func (h *Handler) HandleFeatures(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, response.FeaturesResponse{
		FeatureNames:       entity.FeatureNames,
		FeatureCount:       len(entity.FeatureNames),
		SuspiciousKeywords: features.SuspiciousKeywords,
		SuspiciousTLDs:     features.SuspiciousTLDs,
	})
}

func (h *Handler) HandleStats(w http.ResponseWriter, r *http.Request) {
	if h.bundle == nil || h.bundle.Metadata == nil {
		h.writeJSONError(w, "Model metadata not loaded", http.StatusServiceUnavailable)
		return
	}
	h.writeJSON(w, http.StatusOK, response.StatsResponse{
		Model:               h.bundle.Metadata.Raw,
		PopularDomainsCount: reputation.Count(),
		APIVersion:          apiVersion,
	})
}

func (h *Handler) HandleFeedback(w http.ResponseWriter, r *http.Request) {
	if h.reports == nil {
		h.writeJSONError(w, "Feedback storage is not configured", http.StatusServiceUnavailable)
		return
	}

	var req request.FeedbackRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeJSONError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	report, err := h.reports.Submit(r.Context(), req.URL, req.ReportedLabel, req.Comment)
	if err != nil {
		if errors.Is(err, usecase.ErrInvalidReportLabel) || errors.Is(err, usecase.ErrEmptyReportURL) {
			h.writeJSONError(w, err.Error(), http.StatusBadRequest)
			return
		}
		slog.Error("Failed to store phishing report", "error", err)
		h.writeJSONError(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	h.writeJSON(w, http.StatusAccepted, response.FeedbackResponse{
		Status:   "accepted",
		ReportID: report.ID,
	})
}

func (h *Handler) writeClassifyError(w http.ResponseWriter, url string, err error) {
	switch {
	case errors.Is(err, features.ErrUnparsable):
		h.writeJSONError(w, "Could not parse URL", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrModelUnavailable):
		h.writeJSONError(w, "Model not loaded", http.StatusServiceUnavailable)
	default:
		slog.Error("Classification failed", "url", url, "error", err)
		h.writeJSONError(w, "Internal server error", http.StatusInternalServerError)
	}
}

func toPrediction(result *entity.ClassificationResult) response.PredictionResponse {
	return response.PredictionResponse{
		URL:             result.URL,
		IsPhishing:      result.IsPhishing,
		Confidence:      result.Confidence,
		RiskLevel:       string(result.RiskLevel),
		IsPopularDomain: result.IsPopularDomain,
		Features:        result.Features.Map(),
		Recommendation:  result.Recommendation,
	}
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Error("Failed to write JSON response", "error", err)
	}
}

func (h *Handler) writeJSONError(w http.ResponseWriter, message string, status int) {
	h.writeJSON(w, status, map[string]string{"error": message})
}
