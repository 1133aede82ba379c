package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"spaik-backend/internal/shared/config"
	"spaik-backend/internal/shared/metrics"
	"spaik-backend/internal/shared/server/middleware"
	"spaik-backend/internal/shared/server/respond"
	"spaik-backend/internal/visualizations"
)

// NewRouter constructs the Gin engine with middleware and routes registered.
func NewRouter(cfg config.Config) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	r.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Recovery(),
		middleware.CORS(cfg.AllowedOrigins),
	)

	// Dependencies. All pipeline state lives in these instances; restart
	// loses it, which is a documented limitation of the service.
	repo := visualizations.NewMemoryRepo()
	stats := visualizations.NewStats(nil)
	svc := visualizations.NewService(repo, stats)
	svc.Timeout = cfg.WebhookTimeout

	var detector *middleware.DuplicateDetector
	if cfg.DuplicateDetectionOn {
		detector = middleware.NewDuplicateDetector(0, nil)
	}
	h := visualizations.NewHandler(svc, detector, cfg.PublicBaseURL)

	// Ingestion chain: body gates, signature, rate limit, duplicate check,
	// then the orchestrator.
	ingest := []gin.HandlerFunc{
		middleware.CaptureBody(middleware.MaxPayloadBytes),
		middleware.Signature(cfg.WebhookSecret),
	}
	if cfg.RateLimitingEnabled {
		ingest = append(ingest, middleware.RateLimit(middleware.NewWindowLimiter(0, 0, nil)))
	}
	if detector != nil {
		ingest = append(ingest, middleware.Dedupe(detector))
	}
	ingest = append(ingest, h.Ingest)

	wh := r.Group("/webhook")
	wh.POST("/visualization-data", ingest...)
	wh.GET("/status", h.Status(map[string]bool{
		"rateLimiting":       cfg.RateLimitingEnabled,
		"duplicateDetection": cfg.DuplicateDetectionOn,
		"monitoring":         cfg.MonitoringEnabled,
	}))
	wh.GET("/health", h.Health)
	if cfg.MonitoringEnabled {
		wh.GET("/stats", h.Stats)
		wh.GET("/alerts", h.Alerts)
		r.GET("/metrics", metrics.Handler())
	}

	r.GET("/api/visualization-data/:id", h.GetByID)

	r.GET("/health", func(c *gin.Context) {
		respond.JSON(c, http.StatusOK, gin.H{"ok": true})
	})

	if cfg.Env == "dev" {
		dev := r.Group("/dev")
		dev.DELETE("/visualization-data", h.ClearAll)
	}

	return r
}

// Addr normalizes the listen address.
func Addr(port string) string {
	if port == "" {
		return ":8080"
	}
	if port[0] == ':' {
		return port
	}
	return ":" + port
}
