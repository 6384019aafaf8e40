package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/coaching-center-api/internal/service"
)

type pinger interface {
	PingContext(ctx context.Context) error
}

type cachePinger interface {
	Ping(ctx context.Context) error
}

// MetricsHandler exposes observability endpoints.
type MetricsHandler struct {
	metrics *service.MetricsService
	db      pinger
	cache   cachePinger
}

// NewMetricsHandler constructs a metrics handler. db may be nil.
func NewMetricsHandler(metrics *service.MetricsService, db pinger) *MetricsHandler {
	return &MetricsHandler{metrics: metrics, db: db}
}

// WithCache adds the response cache to readiness output. A failing cache
// degrades the report but never fails readiness since reads fall back to
// the database.
func (h *MetricsHandler) WithCache(cache cachePinger) *MetricsHandler {
	h.cache = cache
	return h
}

// Prometheus serves the Prometheus metrics endpoint.
func (h *MetricsHandler) Prometheus(c *gin.Context) {
	if h.metrics == nil {
		c.Status(http.StatusServiceUnavailable)
		return
	}
	h.metrics.Handler().ServeHTTP(c.Writer, c.Request)
}

func (h *MetricsHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Ready reports whether the database answers, plus the cache state when one
// is configured.
func (h *MetricsHandler) Ready(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	body := gin.H{"status": "ok", "database": "up"}
	status := http.StatusOK
	switch {
	case h.db == nil:
		body["database"] = "not configured"
	case h.db.PingContext(ctx) != nil:
		body["database"] = "down"
	}
	if body["database"] != "up" {
		body["status"] = "unavailable"
		status = http.StatusServiceUnavailable
	}

	if h.cache != nil {
		body["cache"] = "up"
		if err := h.cache.Ping(ctx); err != nil {
			body["cache"] = "down"
			if status == http.StatusOK {
				body["status"] = "degraded"
			}
		}
	}
	c.JSON(status, body)
}
