package entity

import "time"

// PhishingReport mirrors the `phishing_reports` PostgreSQL table schema.
// Reports are user-submitted corrections collected for retraining triage;
// they are never consulted during classification.
type PhishingReport struct {
	ID            string
	URL           string
	URLHash       string
	ReportedLabel string // "phishing" or "benign"
	Comment       string
	CreatedAt     time.Time
}
