package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/coaching-center-api/internal/middleware"
	"github.com/noah-isme/coaching-center-api/internal/models"
	"github.com/noah-isme/coaching-center-api/internal/service"
	"github.com/noah-isme/coaching-center-api/pkg/response"
)

type testimonialService interface {
	List(ctx context.Context, filter models.TestimonialFilter, admin bool) ([]models.Testimonial, *models.Pagination, error)
	Pending(ctx context.Context) ([]models.Testimonial, error)
	Get(ctx context.Context, id string, admin bool) (*models.Testimonial, error)
	Create(ctx context.Context, req service.TestimonialRequest) (*models.Testimonial, error)
	Submit(ctx context.Context, req service.TestimonialRequest) (*models.Testimonial, error)
	Update(ctx context.Context, id string, req service.TestimonialRequest) (*models.Testimonial, error)
	Approve(ctx context.Context, id string) (*models.Testimonial, error)
	Delete(ctx context.Context, id string) error
}

// TestimonialHandler exposes testimonial endpoints. Read routes run behind
// OptionalAuth so admins see unapproved entries.
type TestimonialHandler struct {
	service testimonialService
}

// NewTestimonialHandler constructs a TestimonialHandler.
func NewTestimonialHandler(svc testimonialService) *TestimonialHandler {
	return &TestimonialHandler{service: svc}
}

// List godoc
// @Summary List testimonials
// @Tags Testimonials
// @Produce json
// @Param isActive query bool false "Admin only"
// @Param isApproved query bool false "Admin only"
// @Param rating query int false "Exact rating"
// @Param page query int false "Page"
// @Param limit query int false "Page size (default 10)"
// @Param sort query string false "e.g. -rating,-createdAt"
// @Success 200 {object} response.Envelope
// @Router /testimonials [get]
func (h *TestimonialHandler) List(c *gin.Context) {
	opts, err := listOptions(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	filter := models.TestimonialFilter{ListOptions: opts}
	if filter.IsActive, err = queryBool(c, "isActive"); err != nil {
		response.Error(c, err)
		return
	}
	if filter.IsApproved, err = queryBool(c, "isApproved"); err != nil {
		response.Error(c, err)
		return
	}
	if filter.Rating, err = queryInt(c, "rating"); err != nil {
		response.Error(c, err)
		return
	}

	items, pagination, err := h.service.List(c.Request.Context(), filter, middleware.IsAdmin(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.List(c, items, len(items), pagination)
}

// Pending godoc
// @Summary List testimonials awaiting approval
// @Tags Testimonials
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Envelope
// @Router /testimonials/pending [get]
func (h *TestimonialHandler) Pending(c *gin.Context) {
	items, err := h.service.Pending(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.List(c, items, len(items), nil)
}

// Get godoc
// @Summary Get testimonial
// @Tags Testimonials
// @Produce json
// @Param id path string true "Testimonial ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /testimonials/{id} [get]
func (h *TestimonialHandler) Get(c *gin.Context) {
	item, err := h.service.Get(c.Request.Context(), c.Param("id"), middleware.IsAdmin(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, item)
}

// Create godoc
// @Summary Create testimonial
// @Tags Testimonials
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body service.TestimonialRequest true "Testimonial payload"
// @Success 201 {object} response.Envelope
// @Router /testimonials [post]
func (h *TestimonialHandler) Create(c *gin.Context) {
	var req service.TestimonialRequest
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

// Submit godoc
// @Summary Submit a testimonial for review
// @Tags Testimonials
// @Accept json
// @Produce json
// @Param payload body service.TestimonialRequest true "Testimonial payload"
// @Success 201 {object} response.Envelope
// @Router /testimonials/submit [post]
func (h *TestimonialHandler) Submit(c *gin.Context) {
	var req service.TestimonialRequest
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
// @Summary Replace testimonial
// @Tags Testimonials
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Testimonial ID"
// @Param payload body service.TestimonialRequest true "Testimonial payload"
// @Success 200 {object} response.Envelope
// @Router /testimonials/{id} [put]
func (h *TestimonialHandler) Update(c *gin.Context) {
	var req service.TestimonialRequest
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

// Approve godoc
// @Summary Approve testimonial
// @Tags Testimonials
// @Produce json
// @Security BearerAuth
// @Param id path string true "Testimonial ID"
// @Success 200 {object} response.Envelope
// @Router /testimonials/{id}/approve [put]
func (h *TestimonialHandler) Approve(c *gin.Context) {
	item, err := h.service.Approve(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, item)
}

// Delete godoc
// @Summary Delete testimonial
// @Tags Testimonials
// @Security BearerAuth
// @Param id path string true "Testimonial ID"
// @Success 200 {object} response.Envelope
// @Router /testimonials/{id} [delete]
func (h *TestimonialHandler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	deleted(c, "testimonial")
}
