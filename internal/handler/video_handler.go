package handler

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/coaching-center-api/internal/middleware"
	"github.com/noah-isme/coaching-center-api/internal/models"
	"github.com/noah-isme/coaching-center-api/internal/service"
	"github.com/noah-isme/coaching-center-api/pkg/response"
)

type videoService interface {
	List(ctx context.Context, filter models.VideoFilter, admin bool) ([]models.Video, *models.Pagination, error)
	Get(ctx context.Context, id string, admin bool) (*models.Video, error)
	Create(ctx context.Context, req service.VideoRequest) (*models.Video, error)
	Update(ctx context.Context, id string, req service.VideoRequest) (*models.Video, error)
	Delete(ctx context.Context, id string) error
}

// VideoHandler exposes video endpoints.
type VideoHandler struct {
	service videoService
}

// NewVideoHandler constructs a VideoHandler.
func NewVideoHandler(svc videoService) *VideoHandler {
	return &VideoHandler{service: svc}
}

// List godoc
// @Summary List videos
// @Tags Videos
// @Produce json
// @Param featured query bool false "Featured only"
// @Param category query string false "Category"
// @Param isActive query bool false "Admin only"
// @Param page query int false "Page"
// @Param limit query int false "Page size (default 10)"
// @Param sort query string false "Sort fields"
// @Success 200 {object} response.Envelope
// @Router /videos [get]
func (h *VideoHandler) List(c *gin.Context) {
	opts, err := listOptions(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	filter := models.VideoFilter{ListOptions: opts, Category: strings.TrimSpace(c.Query("category"))}
	if filter.Featured, err = queryBool(c, "featured"); err != nil {
		response.Error(c, err)
		return
	}
	if filter.IsActive, err = queryBool(c, "isActive"); err != nil {
		response.Error(c, err)
		return
	}

	videos, pagination, err := h.service.List(c.Request.Context(), filter, middleware.IsAdmin(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.List(c, videos, len(videos), pagination)
}

// Get godoc
// @Summary Get video
// @Tags Videos
// @Produce json
// @Param id path string true "Video ID"
// @Success 200 {object} response.Envelope
// @Router /videos/{id} [get]
func (h *VideoHandler) Get(c *gin.Context) {
	video, err := h.service.Get(c.Request.Context(), c.Param("id"), middleware.IsAdmin(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, video)
}

// Create godoc
// @Summary Create video
// @Tags Videos
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body service.VideoRequest true "Video payload"
// @Success 201 {object} response.Envelope
// @Router /videos [post]
func (h *VideoHandler) Create(c *gin.Context) {
	var req service.VideoRequest
	if !bindJSON(c, &req) {
		return
	}
	video, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, video)
}

// Update godoc
// @Summary Replace video
// @Tags Videos
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Video ID"
// @Param payload body service.VideoRequest true "Video payload"
// @Success 200 {object} response.Envelope
// @Router /videos/{id} [put]
func (h *VideoHandler) Update(c *gin.Context) {
	var req service.VideoRequest
	if !bindJSON(c, &req) {
		return
	}
	video, err := h.service.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, video)
}

// Delete godoc
// @Summary Delete video
// @Tags Videos
// @Security BearerAuth
// @Param id path string true "Video ID"
// @Success 200 {object} response.Envelope
// @Router /videos/{id} [delete]
func (h *VideoHandler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	deleted(c, "video")
}
