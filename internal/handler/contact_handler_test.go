package handler

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/noah-isme/coaching-center-api/internal/models"
	"github.com/noah-isme/coaching-center-api/internal/service"
)

type contactServiceMock struct {
	filter models.ContactFilter
	status service.ContactStatusRequest
}

func (m *contactServiceMock) List(ctx context.Context, filter models.ContactFilter) ([]models.Contact, *models.Pagination, error) {
	m.filter = filter
	return nil, nil, nil
}

func (m *contactServiceMock) Get(ctx context.Context, id string) (*models.Contact, error) {
	return &models.Contact{ID: id}, nil
}

func (m *contactServiceMock) Submit(ctx context.Context, req service.ContactRequest) (*models.Contact, error) {
	return &models.Contact{Name: req.Name, Status: models.ContactStatusNew}, nil
}

func (m *contactServiceMock) Update(ctx context.Context, id string, req service.ContactRequest) (*models.Contact, error) {
	return &models.Contact{ID: id}, nil
}

func (m *contactServiceMock) UpdateStatus(ctx context.Context, id string, req service.ContactStatusRequest) (*models.Contact, error) {
	m.status = req
	return &models.Contact{ID: id, Status: models.ContactStatusRead}, nil
}

func (m *contactServiceMock) Delete(ctx context.Context, id string) error { return nil }

func TestContactListStatusFilter(t *testing.T) {
	svc := &contactServiceMock{}
	h := NewContactHandler(svc)
	r := newTestRouter()
	r.GET("/contacts", h.List)

	rec := performRequest(r, http.MethodGet, "/contacts?status=Replied", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, models.ContactStatusResponded, svc.filter.Status)

	rec = performRequest(r, http.MethodGet, "/contacts?status=archived", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestContactPatchStatus(t *testing.T) {
	svc := &contactServiceMock{}
	h := NewContactHandler(svc)
	r := newTestRouter()
	r.PATCH("/contacts/:id/status", h.UpdateStatus)

	rec := performRequest(r, http.MethodPatch, "/contacts/abc/status", `{"status":"read"}`)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "read", svc.status.Status)
}
