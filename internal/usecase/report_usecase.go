package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/user/phishblock-service/internal/entity"
	"github.com/user/phishblock-service/internal/repository"
	"github.com/user/phishblock-service/pkg/utils"
)

var (
	ErrInvalidReportLabel = errors.New(`reported label must be "phishing" or "benign"`)
	ErrEmptyReportURL     = errors.New("report URL must not be empty")
)

// ReportManager accepts user-submitted phishing reports. Reports feed
// retraining triage only; they never influence live classification.
type ReportManager interface {
	Submit(ctx context.Context, rawURL, label, comment string) (*entity.PhishingReport, error)
}

type reportManagerUseCase struct {
	reports repository.ReportRepository
}

// NewReportManager creates a ReportManager backed by the given store.
func NewReportManager(reports repository.ReportRepository) ReportManager {
	return &reportManagerUseCase{reports: reports}
}

func (uc *reportManagerUseCase) Submit(ctx context.Context, rawURL, label, comment string) (*entity.PhishingReport, error) {
	rawURL = strings.TrimSpace(rawURL)
	if rawURL == "" {
		return nil, ErrEmptyReportURL
	}
	label = strings.ToLower(strings.TrimSpace(label))
	if label != "phishing" && label != "benign" {
		return nil, ErrInvalidReportLabel
	}

	report := &entity.PhishingReport{
		ID:            uuid.NewString(),
		URL:           rawURL,
		URLHash:       utils.HashURL(rawURL),
		ReportedLabel: label,
		Comment:       comment,
		CreatedAt:     time.Now().UTC(),
	}
	if err := uc.reports.Save(ctx, report); err != nil {
		return nil, err
	}
	return report, nil
}
