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

type courseService interface {
	List(ctx context.Context, filter models.CourseFilter) ([]models.Course, *models.Pagination, error)
	Get(ctx context.Context, id string) (*models.Course, error)
	Create(ctx context.Context, req service.CourseRequest) (*models.Course, error)
	Update(ctx context.Context, id string, req service.CourseRequest) (*models.Course, error)
	Delete(ctx context.Context, id string) error
}

// CourseHandler exposes course endpoints.
type CourseHandler struct {
	service courseService
}

// NewCourseHandler constructs a CourseHandler.
func NewCourseHandler(svc courseService) *CourseHandler {
	return &CourseHandler{service: svc}
}

// List godoc
// @Summary List courses
// @Tags Courses
// @Produce json
// @Param class query int false "Class level (1-12)"
// @Param subject query string false "Subject"
// @Param page query int false "Page"
// @Param limit query int false "Page size"
// @Param sort query string false "Sort fields, '-' prefix for descending"
// @Success 200 {object} response.Envelope
// @Router /courses [get]
func (h *CourseHandler) List(c *gin.Context) {
	opts, err := listOptions(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	class, err := queryInt(c, "class")
	if err != nil {
		response.Error(c, err)
		return
	}
	filter := models.CourseFilter{ListOptions: opts, Class: class, Subject: strings.TrimSpace(c.Query("subject"))}

	courses, pagination, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.List(c, courses, len(courses), pagination)
}

// Get godoc
// @Summary Get course
// @Tags Courses
// @Produce json
// @Param id path string true "Course ID"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /courses/{id} [get]
func (h *CourseHandler) Get(c *gin.Context) {
	course, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, course)
}

// Create godoc
// @Summary Create course
// @Tags Courses
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body service.CourseRequest true "Course payload"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /courses [post]
func (h *CourseHandler) Create(c *gin.Context) {
	var req service.CourseRequest
	if !bindJSON(c, &req) {
		return
	}
	course, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, course)
}

// Update godoc
// @Summary Replace course
// @Tags Courses
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Course ID"
// @Param payload body service.CourseRequest true "Course payload"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /courses/{id} [put]
func (h *CourseHandler) Update(c *gin.Context) {
	var req service.CourseRequest
	if !bindJSON(c, &req) {
		return
	}
	course, err := h.service.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, course)
}

// Delete godoc
// @Summary Delete course
// @Tags Courses
// @Produce json
// @Security BearerAuth
// @Param id path string true "Course ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /courses/{id} [delete]
func (h *CourseHandler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	deleted(c, "course")
}
