package service

import (
	"context"
	"io"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/noah-isme/coaching-center-api/internal/models"
	appErrors "github.com/noah-isme/coaching-center-api/pkg/errors"
	"github.com/noah-isme/coaching-center-api/pkg/storage"
)

type subscriberSourceStub []models.NewsletterSubscription

func (s subscriberSourceStub) List(ctx context.Context) ([]models.NewsletterSubscription, error) {
	return s, nil
}

func newTestExportService(t *testing.T) *ExportService {
	t.Helper()
	store, err := storage.NewLocalStorage(t.TempDir())
	require.NoError(t, err)
	signer := storage.NewSignedURLSigner("export-secret", time.Hour)
	subs := subscriberSourceStub{
		{ID: validID, Email: "ortu@example.com", IsActive: true, SubscribedAt: time.Date(2024, 5, 1, 8, 0, 0, 0, time.UTC)},
	}
	return NewExportService(subs, store, signer, nil, zap.NewNop(), ExportConfig{APIPrefix: "/api/"})
}

func TestExportSubscribersCSVRoundTrip(t *testing.T) {
	svc := newTestExportService(t)

	result, err := svc.ExportSubscribers(context.Background(), "CSV")
	require.NoError(t, err)
	assert.Equal(t, models.ExportFormatCSV, result.Format)
	assert.Equal(t, 1, result.Rows)
	require.True(t, strings.HasPrefix(result.URL, "/api/newsletter/exports/download?token="))

	parsed, err := url.Parse(result.URL)
	require.NoError(t, err)
	file, err := svc.Open(parsed.Query().Get("token"))
	require.NoError(t, err)
	defer file.File.Close()

	assert.Equal(t, "text/csv", file.ContentType)
	assert.True(t, strings.HasSuffix(file.Name, ".csv"))
	body, err := io.ReadAll(file.File)
	require.NoError(t, err)
	assert.Contains(t, string(body), "ortu@example.com")
	assert.Contains(t, string(body), "2024-05-01T08:00:00Z")
}

func TestExportSubscribersRejectsUnknownFormat(t *testing.T) {
	svc := newTestExportService(t)

	_, err := svc.ExportSubscribers(context.Background(), "xlsx")
	var appErr *appErrors.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, appErrors.ErrBadRequest.Code, appErr.Code)
}

func TestExportOpenRejectsBadToken(t *testing.T) {
	svc := newTestExportService(t)

	_, err := svc.Open("garbage")
	var appErr *appErrors.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, appErrors.ErrUnauthorized.Code, appErr.Code)
}
