package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/user/phishblock-service/internal/entity"
)

// ReportRepoImpl provides a concrete implementation for the
// ReportRepository interface using PostgreSQL.
type ReportRepoImpl struct {
	db *pgxpool.Pool
}

// NewReportRepo creates a new instance of ReportRepoImpl.
func NewReportRepo(db *pgxpool.Pool) *ReportRepoImpl {
	return &ReportRepoImpl{db: db}
}

// Save inserts a phishing report row.
func (r *ReportRepoImpl) Save(ctx context.Context, report *entity.PhishingReport) error {
	query := `
		INSERT INTO phishing_reports (id, url, url_hash, reported_label, comment, created_at)
		VALUES ($1, $2, $3, $4, $5, $6);
	`
	_, err := r.db.Exec(ctx, query,
		report.ID,
		report.URL,
		report.URLHash,
		report.ReportedLabel,
		report.Comment,
		report.CreatedAt,
	)
	return err
}
