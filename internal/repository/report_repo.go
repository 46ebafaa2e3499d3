package repository

import (
	"context"

	"github.com/user/phishblock-service/internal/entity"
)

// ReportRepository defines the interface for persisting user-submitted
// phishing reports.
type ReportRepository interface {
	// Save stores a report. Duplicate submissions for the same URL are
	// kept as separate rows; triage deduplicates by url_hash offline.
	Save(ctx context.Context, report *entity.PhishingReport) error
}
