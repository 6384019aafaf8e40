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

type courseServiceMock struct {
	filter  models.CourseFilter
	created service.CourseRequest
	err     error
}

func (m *courseServiceMock) List(ctx context.Context, filter models.CourseFilter) ([]models.Course, *models.Pagination, error) {
	m.filter = filter
	return []models.Course{{ID: "c1", Title: "Matematika", Class: 10}}, models.NewPagination(filter.Page, filter.Limit, 3), m.err
}

func (m *courseServiceMock) Get(ctx context.Context, id string) (*models.Course, error) {
	if m.err != nil {
		return nil, m.err
	}
	return &models.Course{ID: id}, nil
}

func (m *courseServiceMock) Create(ctx context.Context, req service.CourseRequest) (*models.Course, error) {
	m.created = req
	if m.err != nil {
		return nil, m.err
	}
	return &models.Course{ID: "new", Title: req.Title, Class: req.Class}, nil
}

func (m *courseServiceMock) Update(ctx context.Context, id string, req service.CourseRequest) (*models.Course, error) {
	return &models.Course{ID: id, Title: req.Title}, m.err
}

func (m *courseServiceMock) Delete(ctx context.Context, id string) error { return m.err }

func courseRouter(svc *courseServiceMock) http.Handler {
	h := NewCourseHandler(svc)
	r := newTestRouter()
	r.GET("/courses", h.List)
	r.GET("/courses/:id", h.Get)
	r.POST("/courses", h.Create)
	r.DELETE("/courses/:id", h.Delete)
	return r
}

func TestCourseListParsesQuery(t *testing.T) {
	svc := &courseServiceMock{}
	rec := performRequest(courseRouter(svc), http.MethodGet, "/courses?class=10&subject=Fisika&page=2&limit=1&sort=-title", "")

	require.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, svc.filter.Class)
	assert.Equal(t, 10, *svc.filter.Class)
	assert.Equal(t, "Fisika", svc.filter.Subject)
	assert.Equal(t, models.ListOptions{Page: 2, Limit: 1, Sort: "-title"}, svc.filter.ListOptions)

	env := decodeEnvelope(t, rec)
	assert.True(t, env.Success)
	require.NotNil(t, env.Count)
	assert.Equal(t, 1, *env.Count)
	assert.Equal(t, true, env.Pagination["hasMore"])
}

func TestCourseListRejectsNonNumericClass(t *testing.T) {
	rec := performRequest(courseRouter(&courseServiceMock{}), http.MethodGet, "/courses?class=ten", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "class must be a number", decodeEnvelope(t, rec).Error.Message)
}

func TestCourseCreate(t *testing.T) {
	svc := &courseServiceMock{}
	rec := performRequest(courseRouter(svc), http.MethodPost, "/courses", `{"title":"Kimia","class":11}`)

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "Kimia", svc.created.Title)
	assert.Equal(t, 11, svc.created.Class)
}

func TestCourseCreateMalformedJSON(t *testing.T) {
	rec := performRequest(courseRouter(&courseServiceMock{}), http.MethodPost, "/courses", `{"title":`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	env := decodeEnvelope(t, rec)
	assert.False(t, env.Success)
	assert.Equal(t, appErrors.ErrValidation.Code, env.Error.Code)
}

func TestCourseErrorsPassThrough(t *testing.T) {
	validation := appErrors.Clone(appErrors.ErrValidation, "")
	validation.Details = []string{"title is required", "image is required"}

	rec := performRequest(courseRouter(&courseServiceMock{err: validation}), http.MethodPost, "/courses", `{}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, []string{"title is required", "image is required"}, decodeEnvelope(t, rec).Error.Details)

	rec = performRequest(courseRouter(&courseServiceMock{err: appErrors.Clone(appErrors.ErrNotFound, "course not found")}), http.MethodDelete, "/courses/x", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = performRequest(courseRouter(&courseServiceMock{}), http.MethodDelete, "/courses/x", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "course deleted", decodeEnvelope(t, rec).Message)
}
