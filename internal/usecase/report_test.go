package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/user/phishblock-service/internal/entity"
	"github.com/user/phishblock-service/pkg/utils"
)

type memReportRepo struct {
	saved []*entity.PhishingReport
}

func (m *memReportRepo) Save(ctx context.Context, report *entity.PhishingReport) error {
	m.saved = append(m.saved, report)
	return nil
}

func TestReportSubmit(t *testing.T) {
	repo := &memReportRepo{}
	uc := NewReportManager(repo)

	report, err := uc.Submit(context.Background(), "http://fake-bank.xyz/login", "Phishing", "asked for my card PIN")
	require.NoError(t, err)

	require.Len(t, repo.saved, 1)
	assert.NotEmpty(t, report.ID)
	assert.Equal(t, "http://fake-bank.xyz/login", report.URL)
	assert.Equal(t, utils.HashURL("http://fake-bank.xyz/login"), report.URLHash)
	assert.Equal(t, "phishing", report.ReportedLabel)
	assert.False(t, report.CreatedAt.IsZero())
}

func TestReportSubmitValidation(t *testing.T) {
	uc := NewReportManager(&memReportRepo{})

	_, err := uc.Submit(context.Background(), "", "phishing", "")
	assert.ErrorIs(t, err, ErrEmptyReportURL)

	_, err = uc.Submit(context.Background(), "http://example.com", "dangerous", "")
	assert.ErrorIs(t, err, ErrInvalidReportLabel)
}
