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

type teamService interface {
	ListPublic(ctx context.Context, memberType string) ([]models.TeamMember, error)
	ListAll(ctx context.Context) ([]models.TeamMember, error)
	Get(ctx context.Context, id string) (*models.TeamMember, error)
	Create(ctx context.Context, req service.TeamMemberRequest) (*models.TeamMember, error)
	Update(ctx context.Context, id string, req service.TeamMemberRequest) (*models.TeamMember, error)
	Delete(ctx context.Context, id string) error
}

// TeamHandler exposes team member endpoints.
type TeamHandler struct {
	service teamService
}

// NewTeamHandler constructs a TeamHandler.
func NewTeamHandler(svc teamService) *TeamHandler {
	return &TeamHandler{service: svc}
}

// List godoc
// @Summary List active team members
// @Tags Team
// @Produce json
// @Param type query string false "team or developer"
// @Success 200 {object} response.Envelope
// @Router /team [get]
func (h *TeamHandler) List(c *gin.Context) {
	members, err := h.service.ListPublic(c.Request.Context(), strings.TrimSpace(c.Query("type")))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.List(c, members, len(members), nil)
}

// ListAll godoc
// @Summary List every team member
// @Tags Team
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Envelope
// @Router /team/admin [get]
func (h *TeamHandler) ListAll(c *gin.Context) {
	members, err := h.service.ListAll(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.List(c, members, len(members), nil)
}

// Get godoc
// @Summary Get team member
// @Tags Team
// @Produce json
// @Param id path string true "Member ID"
// @Success 200 {object} response.Envelope
// @Router /team/{id} [get]
func (h *TeamHandler) Get(c *gin.Context) {
	member, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, member)
}

// Create godoc
// @Summary Create team member
// @Tags Team
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body service.TeamMemberRequest true "Member payload"
// @Success 201 {object} response.Envelope
// @Router /team [post]
func (h *TeamHandler) Create(c *gin.Context) {
	var req service.TeamMemberRequest
	if !bindJSON(c, &req) {
		return
	}
	member, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, member)
}

// Update godoc
// @Summary Replace team member
// @Tags Team
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Member ID"
// @Param payload body service.TeamMemberRequest true "Member payload"
// @Success 200 {object} response.Envelope
// @Router /team/{id} [put]
func (h *TeamHandler) Update(c *gin.Context) {
	var req service.TeamMemberRequest
	if !bindJSON(c, &req) {
		return
	}
	member, err := h.service.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, member)
}

// Delete godoc
// @Summary Delete team member
// @Tags Team
// @Security BearerAuth
// @Param id path string true "Member ID"
// @Success 200 {object} response.Envelope
// @Router /team/{id} [delete]
func (h *TeamHandler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	deleted(c, "team member")
}
