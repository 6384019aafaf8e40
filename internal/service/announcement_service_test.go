package service

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/noah-isme/coaching-center-api/internal/models"
	appErrors "github.com/noah-isme/coaching-center-api/pkg/errors"
)

type announcementRepoStub struct {
	items   map[string]models.Announcement
	filters []models.AnnouncementFilter
}

func (r *announcementRepoStub) List(ctx context.Context, filter models.AnnouncementFilter) ([]models.Announcement, int, error) {
	r.filters = append(r.filters, filter)
	out := []models.Announcement{}
	for _, a := range r.items {
		if filter.Category == "" || string(a.Category) == filter.Category {
			out = append(out, a)
		}
	}
	return out, len(out), nil
}

func (r *announcementRepoStub) FindByID(ctx context.Context, id string) (*models.Announcement, error) {
	a, ok := r.items[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return &a, nil
}

func (r *announcementRepoStub) Create(ctx context.Context, ann *models.Announcement) error {
	ann.ID = validID
	r.items[ann.ID] = *ann
	return nil
}

func (r *announcementRepoStub) Update(ctx context.Context, ann *models.Announcement) error {
	r.items[ann.ID] = *ann
	return nil
}

func (r *announcementRepoStub) Delete(ctx context.Context, id string) error {
	if _, ok := r.items[id]; !ok {
		return sql.ErrNoRows
	}
	delete(r.items, id)
	return nil
}

func TestAnnouncementServiceRejectsUnknownCategory(t *testing.T) {
	repo := &announcementRepoStub{items: map[string]models.Announcement{}}
	svc := NewAnnouncementService(repo, nil, nil, zap.NewNop())

	_, err := svc.Create(context.Background(), AnnouncementRequest{Title: "Exam week", Content: "Schedule inside", Category: "Sports"})
	var appErr *appErrors.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, appErrors.ErrValidation.Code, appErr.Code)
	assert.Len(t, appErr.Details, 1)
	assert.Empty(t, repo.items)
}

func TestAnnouncementServiceUpdateKeepsDateWhenOmitted(t *testing.T) {
	published := time.Date(2024, 1, 15, 8, 0, 0, 0, time.UTC)
	repo := &announcementRepoStub{items: map[string]models.Announcement{
		validID: {ID: validID, Title: "Old", Content: "c", Category: models.AnnouncementCategoryEvents, Date: published},
	}}
	svc := NewAnnouncementService(repo, nil, nil, zap.NewNop())

	ann, err := svc.Update(context.Background(), validID, AnnouncementRequest{Title: "New", Content: "c", Category: "Holidays"})
	require.NoError(t, err)
	assert.Equal(t, published, ann.Date)
	assert.Equal(t, models.AnnouncementCategoryHolidays, ann.Category)

	moved := time.Date(2024, 2, 1, 15, 0, 0, 0, time.FixedZone("WIB", 7*3600))
	ann, err = svc.Update(context.Background(), validID, AnnouncementRequest{Title: "New", Content: "c", Category: "Holidays", Date: &moved})
	require.NoError(t, err)
	assert.Equal(t, moved.UTC(), ann.Date)
}

func TestAnnouncementServiceListByCategory(t *testing.T) {
	repo := &announcementRepoStub{items: map[string]models.Announcement{
		"a": {ID: "a", Category: models.AnnouncementCategoryCourses},
		"b": {ID: "b", Category: models.AnnouncementCategoryGeneral},
	}}
	svc := NewAnnouncementService(repo, nil, nil, zap.NewNop())

	items, pagination, err := svc.List(context.Background(), models.AnnouncementFilter{Category: "General"})
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "b", items[0].ID)
	assert.Nil(t, pagination)
}

func TestAnnouncementServiceDeleteMissing(t *testing.T) {
	svc := NewAnnouncementService(&announcementRepoStub{items: map[string]models.Announcement{}}, nil, nil, zap.NewNop())
	assert.True(t, errors.Is(svc.Delete(context.Background(), validID), appErrors.ErrNotFound))
}
