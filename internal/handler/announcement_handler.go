package handler

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/coaching-center-api/internal/models"
	"github.com/noah-isme/coaching-center-api/internal/service"
	"github.com/noah-isme/coaching-center-api/pkg/response"
)

type announcementService interface {
	List(ctx context.Context, filter models.AnnouncementFilter) ([]models.Announcement, *models.Pagination, error)
	Get(ctx context.Context, id string) (*models.Announcement, error)
	Create(ctx context.Context, req service.AnnouncementRequest) (*models.Announcement, error)
	Update(ctx context.Context, id string, req service.AnnouncementRequest) (*models.Announcement, error)
	Delete(ctx context.Context, id string) error
}

// AnnouncementHandler exposes announcement endpoints.
type AnnouncementHandler struct {
	service announcementService
}

// NewAnnouncementHandler constructs an AnnouncementHandler.
func NewAnnouncementHandler(svc announcementService) *AnnouncementHandler {
	return &AnnouncementHandler{service: svc}
}

// List godoc
// @Summary List announcements
// @Tags Announcements
// @Produce json
// @Param category query string false "Courses, Events, Holidays or General"
// @Param page query int false "Page"
// @Param limit query int false "Page size"
// @Param sort query string false "Sort fields"
// @Success 200 {object} response.Envelope
// @Router /announcements [get]
func (h *AnnouncementHandler) List(c *gin.Context) {
	opts, err := listOptions(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	filter := models.AnnouncementFilter{ListOptions: opts, Category: strings.TrimSpace(c.Query("category"))}
	items, pagination, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.List(c, items, len(items), pagination)
}

// Get godoc
// @Summary Get announcement
// @Tags Announcements
// @Produce json
// @Param id path string true "Announcement ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /announcements/{id} [get]
func (h *AnnouncementHandler) Get(c *gin.Context) {
	item, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, item)
}

// Create godoc
// @Summary Create announcement
// @Tags Announcements
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body service.AnnouncementRequest true "Announcement payload"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /announcements [post]
func (h *AnnouncementHandler) Create(c *gin.Context) {
	var req service.AnnouncementRequest
	if !bindJSON(c, &req) {
		return
	}
	item, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, item)
}

// Update godoc
// @Summary Replace announcement
// @Tags Announcements
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Announcement ID"
// @Param payload body service.AnnouncementRequest true "Announcement payload"
// @Success 200 {object} response.Envelope
// @Router /announcements/{id} [put]
func (h *AnnouncementHandler) Update(c *gin.Context) {
	var req service.AnnouncementRequest
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

// Delete godoc
// @Summary Delete announcement
// @Tags Announcements
// @Security BearerAuth
// @Param id path string true "Announcement ID"
// @Success 200 {object} response.Envelope
// @Router /announcements/{id} [delete]
func (h *AnnouncementHandler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	deleted(c, "announcement")
}
