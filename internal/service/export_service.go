package service

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/noah-isme/coaching-center-api/internal/models"
	appErrors "github.com/noah-isme/coaching-center-api/pkg/errors"
	"github.com/noah-isme/coaching-center-api/pkg/export"
	"github.com/noah-isme/coaching-center-api/pkg/storage"
)

type subscriberSource interface {
	List(ctx context.Context) ([]models.NewsletterSubscription, error)
}

type fileStorage interface {
	Save(name string, data []byte) error
	Open(name string) (*os.File, error)
	CleanupOlderThan(ttl time.Duration) ([]string, error)
}

type urlSigner interface {
	Generate(id, relPath string) (string, time.Time, error)
	Verify(token string) (id, relPath string, err error)
}

// ExportConfig tunes export behaviour.
type ExportConfig struct {
	APIPrefix string
	Retention time.Duration
}

// ExportFile is an opened export ready to stream.
type ExportFile struct {
	File        *os.File
	Name        string
	ContentType string
}

// ExportService renders subscriber lists and hands out signed download links.
type ExportService struct {
	subscribers subscriberSource
	storage     fileStorage
	signer      urlSigner
	renderers   map[models.ExportFormat]export.Renderer
	metrics     *MetricsService
	logger      *zap.Logger
	cfg         ExportConfig
}

// NewExportService constructs an ExportService.
func NewExportService(subscribers subscriberSource, store fileStorage, signer urlSigner, metrics *MetricsService, logger *zap.Logger, cfg ExportConfig) *ExportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.Retention <= 0 {
		cfg.Retention = 24 * time.Hour
	}
	return &ExportService{
		subscribers: subscribers,
		storage:     store,
		signer:      signer,
		renderers: map[models.ExportFormat]export.Renderer{
			models.ExportFormatCSV: export.NewCSVExporter(),
			models.ExportFormatPDF: export.NewPDFExporter(),
		},
		metrics: metrics,
		logger:  logger,
		cfg:     cfg,
	}
}

// ExportSubscribers renders every subscription in the requested format and
// returns a signed link to the stored file.
func (s *ExportService) ExportSubscribers(ctx context.Context, format string) (*models.ExportResult, error) {
	f := models.ExportFormat(strings.ToLower(strings.TrimSpace(format)))
	if f == "" {
		f = models.ExportFormatCSV
	}
	renderer, ok := s.renderers[f]
	if !ok {
		return nil, appErrors.Clone(appErrors.ErrBadRequest, "format must be one of: csv, pdf")
	}

	subs, err := s.subscribers.List(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load subscriptions")
	}

	payload, err := renderer.Render(subscriberTable(subs))
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render export")
	}

	id := uuid.NewString()
	relPath := fmt.Sprintf("subscribers/%s_%s.%s", time.Now().UTC().Format("20060102_150405"), id[:8], renderer.Extension())
	if err := s.storage.Save(relPath, payload); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to store export")
	}

	token, expiresAt, err := s.signer.Generate(id, relPath)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to sign export link")
	}

	if removed, err := s.storage.CleanupOlderThan(s.cfg.Retention); err != nil {
		s.logger.Warn("export cleanup failed", zap.Error(err))
	} else if len(removed) > 0 {
		s.logger.Info("removed stale exports", zap.Int("count", len(removed)))
	}

	s.metrics.RecordExport(string(f))
	prefix := strings.TrimRight(s.cfg.APIPrefix, "/")
	return &models.ExportResult{
		Format:    f,
		Rows:      len(subs),
		URL:       prefix + "/newsletter/exports/download?token=" + url.QueryEscape(token),
		ExpiresAt: expiresAt,
	}, nil
}

// Open verifies a download token and opens the referenced file.
func (s *ExportService) Open(token string) (*ExportFile, error) {
	_, relPath, err := s.signer.Verify(token)
	if err != nil {
		if errors.Is(err, storage.ErrTokenExpired) {
			return nil, appErrors.Clone(appErrors.ErrUnauthorized, "download link expired")
		}
		return nil, appErrors.Clone(appErrors.ErrUnauthorized, "invalid download link")
	}
	file, err := s.storage.Open(relPath)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrNotFound.Code, appErrors.ErrNotFound.Status, "export not found")
	}

	contentType := "application/octet-stream"
	for _, r := range s.renderers {
		if strings.HasSuffix(relPath, "."+r.Extension()) {
			contentType = r.ContentType()
		}
	}
	name := relPath[strings.LastIndex(relPath, "/")+1:]
	return &ExportFile{File: file, Name: name, ContentType: contentType}, nil
}

func subscriberTable(subs []models.NewsletterSubscription) export.Table {
	rows := make([][]string, 0, len(subs))
	for _, sub := range subs {
		active := "no"
		if sub.IsActive {
			active = "yes"
		}
		rows = append(rows, []string{sub.Email, sub.SubscribedAt.UTC().Format(time.RFC3339), active})
	}
	return export.Table{
		Title:   "Newsletter Subscribers",
		Headers: []string{"Email", "Subscribed At", "Active"},
		Rows:    rows,
	}
}
