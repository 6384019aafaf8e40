package handler

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/coaching-center-api/internal/models"
	"github.com/noah-isme/coaching-center-api/internal/service"
	appErrors "github.com/noah-isme/coaching-center-api/pkg/errors"
	"github.com/noah-isme/coaching-center-api/pkg/response"
)

type newsletterService interface {
	Subscribe(ctx context.Context, req service.NewsletterRequest) (*models.NewsletterSubscription, error)
	Unsubscribe(ctx context.Context, req service.NewsletterRequest) error
	List(ctx context.Context) ([]models.NewsletterSubscription, error)
	Delete(ctx context.Context, id string) error
}

type subscriberExporter interface {
	ExportSubscribers(ctx context.Context, format string) (*models.ExportResult, error)
	Open(token string) (*service.ExportFile, error)
}

// NewsletterHandler exposes the mailing list endpoints.
type NewsletterHandler struct {
	service  newsletterService
	exporter subscriberExporter
}

// NewNewsletterHandler constructs a NewsletterHandler.
func NewNewsletterHandler(svc newsletterService, exporter subscriberExporter) *NewsletterHandler {
	return &NewsletterHandler{service: svc, exporter: exporter}
}

// Subscribe godoc
// @Summary Subscribe to the newsletter
// @Tags Newsletter
// @Accept json
// @Produce json
// @Param payload body service.NewsletterRequest true "Email"
// @Success 201 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /newsletter/subscribe [post]
func (h *NewsletterHandler) Subscribe(c *gin.Context) {
	var req service.NewsletterRequest
	if !bindJSON(c, &req) {
		return
	}
	sub, err := h.service.Subscribe(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, sub)
}

// Unsubscribe godoc
// @Summary Unsubscribe from the newsletter
// @Tags Newsletter
// @Accept json
// @Produce json
// @Param payload body service.NewsletterRequest true "Email"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /newsletter/unsubscribe [put]
func (h *NewsletterHandler) Unsubscribe(c *gin.Context) {
	var req service.NewsletterRequest
	if !bindJSON(c, &req) {
		return
	}
	if err := h.service.Unsubscribe(c.Request.Context(), req); err != nil {
		response.Error(c, err)
		return
	}
	response.Message(c, http.StatusOK, "successfully unsubscribed from newsletter")
}

// Subscriptions godoc
// @Summary List subscriptions
// @Tags Newsletter
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Envelope
// @Router /newsletter/subscriptions [get]
func (h *NewsletterHandler) Subscriptions(c *gin.Context) {
	subs, err := h.service.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.List(c, subs, len(subs), nil)
}

// DeleteSubscription godoc
// @Summary Delete subscription
// @Tags Newsletter
// @Security BearerAuth
// @Param id path string true "Subscription ID"
// @Success 200 {object} response.Envelope
// @Router /newsletter/subscription/{id} [delete]
func (h *NewsletterHandler) DeleteSubscription(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	deleted(c, "subscription")
}

// Export godoc
// @Summary Export subscribers
// @Description Renders the subscriber list and returns a signed download link
// @Tags Newsletter
// @Produce json
// @Security BearerAuth
// @Param format query string false "csv (default) or pdf"
// @Success 200 {object} response.Envelope
// @Router /newsletter/subscriptions/export [post]
func (h *NewsletterHandler) Export(c *gin.Context) {
	result, err := h.exporter.ExportSubscribers(c.Request.Context(), c.DefaultQuery("format", string(models.ExportFormatCSV)))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result)
}

// Download godoc
// @Summary Download a subscriber export
// @Tags Newsletter
// @Produce octet-stream
// @Param token query string true "Signed token"
// @Success 200 {file} file
// @Failure 401 {object} response.Envelope
// @Router /newsletter/exports/download [get]
func (h *NewsletterHandler) Download(c *gin.Context) {
	token := c.Query("token")
	if token == "" {
		response.Error(c, appErrors.Clone(appErrors.ErrBadRequest, "token is required"))
		return
	}
	file, err := h.exporter.Open(token)
	if err != nil {
		response.Error(c, err)
		return
	}
	defer file.File.Close()

	info, err := file.File.Stat()
	if err != nil {
		response.Error(c, err)
		return
	}
	c.DataFromReader(http.StatusOK, info.Size(), file.ContentType, file.File, map[string]string{
		"Content-Disposition": fmt.Sprintf("attachment; filename=%q", file.Name),
	})
}
