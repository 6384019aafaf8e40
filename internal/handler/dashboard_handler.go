package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/coaching-center-api/internal/models"
	"github.com/noah-isme/coaching-center-api/pkg/response"
)

type dashboardService interface {
	Stats(ctx context.Context) (*models.DashboardStats, error)
}

// DashboardHandler serves the admin overview.
type DashboardHandler struct {
	service dashboardService
}

// NewDashboardHandler constructs a DashboardHandler.
func NewDashboardHandler(svc dashboardService) *DashboardHandler {
	return &DashboardHandler{service: svc}
}

// Stats godoc
// @Summary Admin dashboard counters
// @Tags Dashboard
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Envelope
// @Router /dashboard/stats [get]
func (h *DashboardHandler) Stats(c *gin.Context) {
	stats, err := h.service.Stats(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, stats)
}
