package visualizations

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"spaik-backend/internal/shared/server/middleware"
	"spaik-backend/internal/shared/server/respond"
)

// Handler wires HTTP handlers to the service.
type Handler struct {
	Svc           *Service
	Detector      *middleware.DuplicateDetector
	PublicBaseURL string
}

// NewHandler constructs a Handler. detector may be nil when duplicate
// detection is disabled.
func NewHandler(svc *Service, detector *middleware.DuplicateDetector, publicBaseURL string) *Handler {
	return &Handler{Svc: svc, Detector: detector, PublicBaseURL: publicBaseURL}
}

// Ingest handles POST /webhook/visualization-data after the middleware
// gates (body, signature, rate limit, duplicate) have passed.
func (h *Handler) Ingest(c *gin.Context) {
	rec, err := h.Svc.Process(c.Request.Context(), IngestInput{
		Body:        middleware.RawBodyFromContext(c),
		ContentType: c.ContentType(),
		ClientIP:    c.ClientIP(),
		UserAgent:   c.Request.UserAgent(),
		RequestID:   middleware.RequestIDFromContext(c),
	})
	if err != nil {
		h.respondIngestError(c, err)
		return
	}

	c.Set("recordId", rec.ID)
	if h.Detector != nil {
		if digest := middleware.DedupeDigestFromContext(c); digest != "" {
			h.Detector.Attach(digest, rec.ID)
		}
	}
	respond.JSON(c, http.StatusOK, toIngestResponse(rec, h.PublicBaseURL))
}

func (h *Handler) respondIngestError(c *gin.Context, err error) {
	var vErr *ValidationError
	var pErr *ParseError
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		respond.Error(c, http.StatusRequestTimeout, "processing_timeout", "webhook processing timed out", nil)
	case errors.As(err, &vErr):
		respond.Error(c, http.StatusBadRequest, "validation_error", "payload failed validation", vErr.Fields)
	case errors.As(err, &pErr):
		respond.Error(c, http.StatusBadRequest, "parse_error", pErr.Error(), nil)
	case errors.Is(err, ErrUnsupportedContentType):
		respond.Error(c, http.StatusBadRequest, "unsupported_content_type", "content type must be application/json or text/plain", nil)
	default:
		respond.Error(c, http.StatusInternalServerError, "processing_failed", "webhook processing failed", nil)
	}
}

// GetByID handles GET /api/visualization-data/:id.
func (h *Handler) GetByID(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))
	rec, err := h.Svc.Get(c.Request.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "no visualization with id "+id, nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal", "failed to load visualization", nil)
		}
		return
	}
	respond.OK(c, gin.H{"data": rec})
}

// Status handles GET /webhook/status.
func (h *Handler) Status(enabled map[string]bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		snap := h.Svc.Stats.Snapshot()
		respond.OK(c, gin.H{
			"service":       "spaik-webhook",
			"uptimeSeconds": snap.UptimeSeconds,
			"storedRecords": h.Svc.StoredCount(c.Request.Context()),
			"features":      enabled,
		})
	}
}

// Health handles GET /webhook/health.
func (h *Handler) Health(c *gin.Context) {
	snap := h.Svc.Stats.Snapshot()
	status := "healthy"
	if !snap.Healthy() {
		status = "degraded"
	}
	respond.OK(c, gin.H{
		"status":          status,
		"successRate":     snap.SuccessRate,
		"avgProcessingMs": snap.AvgProcessingMs,
		"total":           snap.Total,
	})
}

// Stats handles GET /webhook/stats.
func (h *Handler) Stats(c *gin.Context) {
	respond.OK(c, gin.H{"stats": h.Svc.Stats.Snapshot()})
}

// Alerts handles GET /webhook/alerts.
func (h *Handler) Alerts(c *gin.Context) {
	alerts := h.Svc.Alerts(c.Request.Context())
	respond.OK(c, gin.H{"count": len(alerts), "alerts": alerts})
}

// ClearAll handles DELETE /dev/visualization-data (dev environments only).
func (h *Handler) ClearAll(c *gin.Context) {
	n, err := h.Svc.ClearAll(c.Request.Context())
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal", "failed to clear store", nil)
		return
	}
	respond.OK(c, gin.H{"cleared": n})
}
