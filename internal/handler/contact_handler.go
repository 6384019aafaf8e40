package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/coaching-center-api/internal/models"
	"github.com/noah-isme/coaching-center-api/internal/service"
	appErrors "github.com/noah-isme/coaching-center-api/pkg/errors"
	"github.com/noah-isme/coaching-center-api/pkg/response"
)

type contactService interface {
	List(ctx context.Context, filter models.ContactFilter) ([]models.Contact, *models.Pagination, error)
	Get(ctx context.Context, id string) (*models.Contact, error)
	Submit(ctx context.Context, req service.ContactRequest) (*models.Contact, error)
	Update(ctx context.Context, id string, req service.ContactRequest) (*models.Contact, error)
	UpdateStatus(ctx context.Context, id string, req service.ContactStatusRequest) (*models.Contact, error)
	Delete(ctx context.Context, id string) error
}

// ContactHandler exposes the contact form and its admin inbox.
type ContactHandler struct {
	service contactService
}

// NewContactHandler constructs a ContactHandler.
func NewContactHandler(svc contactService) *ContactHandler {
	return &ContactHandler{service: svc}
}

// List godoc
// @Summary List contact enquiries
// @Tags Contacts
// @Produce json
// @Security BearerAuth
// @Param status query string false "new, read or responded"
// @Param page query int false "Page"
// @Param limit query int false "Page size"
// @Success 200 {object} response.Envelope
// @Router /contacts [get]
func (h *ContactHandler) List(c *gin.Context) {
	opts, err := listOptions(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	filter := models.ContactFilter{ListOptions: opts}
	if raw := c.Query("status"); raw != "" {
		status, ok := models.ParseContactStatus(raw)
		if !ok {
			response.Error(c, appErrors.Clone(appErrors.ErrBadRequest, "status must be one of: new, read, responded"))
			return
		}
		filter.Status = status
	}
	items, pagination, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.List(c, items, len(items), pagination)
}

// Get godoc
// @Summary Get contact enquiry
// @Tags Contacts
// @Produce json
// @Security BearerAuth
// @Param id path string true "Contact ID"
// @Success 200 {object} response.Envelope
// @Router /contacts/{id} [get]
func (h *ContactHandler) Get(c *gin.Context) {
	item, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, item)
}

// Submit godoc
// @Summary Submit the contact form
// @Tags Contacts
// @Accept json
// @Produce json
// @Param payload body service.ContactRequest true "Contact payload"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /contacts [post]
func (h *ContactHandler) Submit(c *gin.Context) {
	var req service.ContactRequest
	if !bindJSON(c, &req) {
		return
	}
	item, err := h.service.Submit(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, item)
}

// Update godoc
// @Summary Replace contact enquiry or change its status
// @Tags Contacts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Contact ID"
// @Param payload body service.ContactRequest true "Contact payload"
// @Success 200 {object} response.Envelope
// @Router /contacts/{id} [put]
func (h *ContactHandler) Update(c *gin.Context) {
	var req service.ContactRequest
	if !bindJSON(c, &req) {
		return
	}
	item, err := h.service.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, item)
}

// UpdateStatus godoc
// @Summary Change contact status
// @Tags Contacts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Contact ID"
// @Param payload body service.ContactStatusRequest true "Status payload"
// @Success 200 {object} response.Envelope
// @Router /contacts/{id}/status [patch]
func (h *ContactHandler) UpdateStatus(c *gin.Context) {
	var req service.ContactStatusRequest
	if !bindJSON(c, &req) {
		return
	}
	item, err := h.service.UpdateStatus(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, item)
}

// Delete godoc
// @Summary Delete contact enquiry
// @Tags Contacts
// @Security BearerAuth
// @Param id path string true "Contact ID"
// @Success 200 {object} response.Envelope
// @Router /contacts/{id} [delete]
func (h *ContactHandler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	deleted(c, "contact")
}
