package service

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/noah-isme/coaching-center-api/internal/models"
	appErrors "github.com/noah-isme/coaching-center-api/pkg/errors"
)

const validID = "2f7c3f9a-8a3e-4a8e-9a45-1d9c1f0a6b11"

type courseRepoStub struct {
	courses   map[string]models.Course
	listCalls int
	created   []models.Course
	err       error
}

func newCourseRepoStub(courses ...models.Course) *courseRepoStub {
	repo := &courseRepoStub{courses: map[string]models.Course{}}
	for _, c := range courses {
		repo.courses[c.ID] = c
	}
	return repo
}

func (r *courseRepoStub) List(ctx context.Context, filter models.CourseFilter) ([]models.Course, int, error) {
	r.listCalls++
	if r.err != nil {
		return nil, 0, r.err
	}
	out := make([]models.Course, 0, len(r.courses))
	for _, c := range r.courses {
		out = append(out, c)
	}
	return out, len(out), nil
}

func (r *courseRepoStub) FindByID(ctx context.Context, id string) (*models.Course, error) {
	c, ok := r.courses[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return &c, nil
}

func (r *courseRepoStub) Create(ctx context.Context, course *models.Course) error {
	course.ID = validID
	r.created = append(r.created, *course)
	r.courses[course.ID] = *course
	return nil
}

func (r *courseRepoStub) Update(ctx context.Context, course *models.Course) error {
	if _, ok := r.courses[course.ID]; !ok {
		return sql.ErrNoRows
	}
	r.courses[course.ID] = *course
	return nil
}

func (r *courseRepoStub) Delete(ctx context.Context, id string) error {
	if _, ok := r.courses[id]; !ok {
		return sql.ErrNoRows
	}
	delete(r.courses, id)
	return nil
}

// memoryCache is an in-process CacheRepository.
type memoryCache struct {
	entries     map[string][]byte
	invalidated []string
}

func newMemoryCache() *memoryCache {
	return &memoryCache{entries: map[string][]byte{}}
}

func (m *memoryCache) Get(ctx context.Context, key string, dest interface{}) error {
	raw, ok := m.entries[key]
	if !ok {
		return appErrors.ErrCacheMiss
	}
	return jsonUnmarshal(raw, dest)
}

func (m *memoryCache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	raw, err := jsonMarshal(value)
	if err != nil {
		return err
	}
	m.entries[key] = raw
	return nil
}

func (m *memoryCache) DeleteByPattern(ctx context.Context, pattern string) error {
	m.invalidated = append(m.invalidated, pattern)
	m.entries = map[string][]byte{}
	return nil
}

func validCourseRequest() CourseRequest {
	return CourseRequest{
		Title:       "Matematika Intensif",
		Class:       12,
		Subject:     "Matematika",
		Description: "Persiapan ujian",
		Duration:    "3 bulan",
		Schedule:    "Senin & Rabu",
		Image:       "/images/math.png",
	}
}

func TestCourseServiceCreateReportsEveryInvalidField(t *testing.T) {
	repo := newCourseRepoStub()
	svc := NewCourseService(repo, nil, nil, zap.NewNop())

	_, err := svc.Create(context.Background(), CourseRequest{Class: 13})
	require.Error(t, err)

	var appErr *appErrors.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, http.StatusBadRequest, appErr.Status)
	assert.Contains(t, appErr.Details, "title is required")
	assert.Contains(t, appErr.Details, "class must be at most 12")
	assert.Contains(t, appErr.Details, "image is required")
	assert.Empty(t, repo.created)
}

func TestCourseServiceCreateTrimsAndInvalidatesCache(t *testing.T) {
	repo := newCourseRepoStub()
	cacheRepo := newMemoryCache()
	cache := NewCacheService(cacheRepo, nil, time.Minute, zap.NewNop(), true)
	svc := NewCourseService(repo, cache, nil, zap.NewNop())

	req := validCourseRequest()
	req.Title = "  Fisika  "
	course, err := svc.Create(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, "Fisika", course.Title)
	assert.Equal(t, []string{"cache:courses:*"}, cacheRepo.invalidated)
}

func TestCourseServiceListServesFromCache(t *testing.T) {
	repo := newCourseRepoStub(models.Course{ID: validID, Title: "Kimia", Class: 11})
	cache := NewCacheService(newMemoryCache(), nil, time.Minute, zap.NewNop(), true)
	svc := NewCourseService(repo, cache, nil, zap.NewNop())

	first, pagination, err := svc.List(context.Background(), models.CourseFilter{})
	require.NoError(t, err)
	assert.Nil(t, pagination)
	second, _, err := svc.List(context.Background(), models.CourseFilter{})
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 1, repo.listCalls)
}

func TestCourseServiceListPaginates(t *testing.T) {
	repo := newCourseRepoStub(models.Course{ID: validID, Title: "Kimia", Class: 11})
	svc := NewCourseService(repo, nil, nil, zap.NewNop())

	_, pagination, err := svc.List(context.Background(), models.CourseFilter{ListOptions: models.ListOptions{Page: 1, Limit: 10}})
	require.NoError(t, err)
	require.NotNil(t, pagination)
	assert.Equal(t, 1, pagination.Total)
}

func TestCourseServiceIDErrors(t *testing.T) {
	svc := NewCourseService(newCourseRepoStub(), nil, nil, zap.NewNop())

	err := svc.Delete(context.Background(), "not-a-uuid")
	assert.True(t, errors.Is(err, appErrors.ErrBadRequest))

	err = svc.Delete(context.Background(), validID)
	assert.True(t, errors.Is(err, appErrors.ErrNotFound))

	_, err = svc.Update(context.Background(), validID, validCourseRequest())
	assert.True(t, errors.Is(err, appErrors.ErrNotFound))
}

func TestCourseServiceListWrapsStoreFailure(t *testing.T) {
	repo := newCourseRepoStub()
	repo.err = errors.New("connection refused")
	svc := NewCourseService(repo, nil, nil, zap.NewNop())

	_, _, err := svc.List(context.Background(), models.CourseFilter{})
	assert.True(t, errors.Is(err, appErrors.ErrInternal))
}
