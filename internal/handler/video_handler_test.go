package handler

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/coaching-center-api/internal/models"
	"github.com/noah-isme/coaching-center-api/internal/service"
	appErrors "github.com/noah-isme/coaching-center-api/pkg/errors"
)

type videoServiceStub struct {
	filter models.VideoFilter
	admin  bool
}

func (s *videoServiceStub) List(ctx context.Context, filter models.VideoFilter, admin bool) ([]models.Video, *models.Pagination, error) {
	s.filter, s.admin = filter, admin
	return []models.Video{{ID: "v1", YoutubeID: "yt"}}, models.NewPagination(2, 1, 3), nil
}

func (s *videoServiceStub) Get(ctx context.Context, id string, admin bool) (*models.Video, error) {
	if !admin {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "video not found")
	}
	return &models.Video{ID: id}, nil
}

func (s *videoServiceStub) Create(ctx context.Context, req service.VideoRequest) (*models.Video, error) {
	return &models.Video{ID: "new", Title: req.Title}, nil
}

func (s *videoServiceStub) Update(ctx context.Context, id string, req service.VideoRequest) (*models.Video, error) {
	return &models.Video{ID: id}, nil
}

func (s *videoServiceStub) Delete(ctx context.Context, id string) error { return nil }

func TestVideoHandlerListParsesFilters(t *testing.T) {
	svc := &videoServiceStub{}
	h := NewVideoHandler(svc)
	r := newTestRouter()
	r.GET("/videos", h.List)

	rec := performRequest(r, http.MethodGet, "/videos?featured=true&limit=1&page=2&sort=-createdAt&category=%20physics%20", "")
	require.Equal(t, http.StatusOK, rec.Code)
	env := decodeEnvelope(t, rec)
	assert.True(t, env.Success)
	require.NotNil(t, env.Count)
	assert.Equal(t, 1, *env.Count)
	assert.Equal(t, true, env.Pagination["hasMore"])

	require.NotNil(t, svc.filter.Featured)
	assert.True(t, *svc.filter.Featured)
	assert.Nil(t, svc.filter.IsActive)
	assert.Equal(t, "physics", svc.filter.Category)
	assert.Equal(t, models.ListOptions{Page: 2, Limit: 1, Sort: "-createdAt"}, svc.filter.ListOptions)
	assert.False(t, svc.admin)
}

func TestVideoHandlerRejectsBadQuery(t *testing.T) {
	r := newTestRouter()
	r.GET("/videos", NewVideoHandler(&videoServiceStub{}).List)

	for _, q := range []string{"featured=maybe", "limit=ten", "page=-1", "limit=101", "page=9223372036854775807&limit=10"} {
		rec := performRequest(r, http.MethodGet, "/videos?"+q, "")
		assert.Equal(t, http.StatusBadRequest, rec.Code, q)
	}
}

func TestVideoHandlerAcceptsListBounds(t *testing.T) {
	svc := &videoServiceStub{}
	r := newTestRouter()
	r.GET("/videos", NewVideoHandler(svc).List)

	rec := performRequest(r, http.MethodGet, "/videos?page=100000&limit=100", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, models.MaxPage, svc.filter.Page)
	assert.Equal(t, models.MaxLimit, svc.filter.Limit)
}

func TestVideoHandlerGetUsesAdminContext(t *testing.T) {
	h := NewVideoHandler(&videoServiceStub{})
	r := newTestRouter()
	r.GET("/public/:id", h.Get)
	r.GET("/admin/:id", asAdmin, h.Get)

	assert.Equal(t, http.StatusNotFound, performRequest(r, http.MethodGet, "/public/x", "").Code)
	assert.Equal(t, http.StatusOK, performRequest(r, http.MethodGet, "/admin/x", "").Code)
}

func TestVideoHandlerCreateAndDelete(t *testing.T) {
	h := NewVideoHandler(&videoServiceStub{})
	r := newTestRouter()
	r.POST("/videos", h.Create)
	r.DELETE("/videos/:id", h.Delete)

	rec := performRequest(r, http.MethodPost, "/videos", `{"title":"Intro","youtubeId":"yt"}`)
	assert.Equal(t, http.StatusCreated, rec.Code)

	rec = performRequest(r, http.MethodPost, "/videos", `{"title":`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = performRequest(r, http.MethodDelete, "/videos/x", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "video deleted", decodeEnvelope(t, rec).Message)
}
