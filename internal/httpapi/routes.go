// Package httpapi serves spray card analysis over HTTP with gin.
package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/ironsheep/spraycard-mcp/internal/config"
	"github.com/ironsheep/spraycard-mcp/internal/logging"
	"github.com/ironsheep/spraycard-mcp/internal/pipeline"
)

// Handler bundles what the route handlers need.
type Handler struct {
	cfg    *config.Config
	log    zerolog.Logger
	runner *pipeline.Runner
}

// NewHandler creates the HTTP handler state.
func NewHandler(cfg *config.Config, log zerolog.Logger) *Handler {
	return &Handler{
		cfg:    cfg,
		log:    logging.Component(log, "http"),
		runner: pipeline.NewRunner(log, cfg.Batch.Workers),
	}
}

// NewEngine returns a gin engine with recovery, request IDs, access
// logging and all routes installed.
func NewEngine(h *Handler) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), RequestID(), AccessLog(h.log))
	SetupRoutes(r, h)
	return r
}

// SetupRoutes registers the API on r.
func SetupRoutes(r *gin.Engine, h *Handler) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"service": "spraycard",
		})
	})

	apiGroup := r.Group("/api/v1")
	{
		apiGroup.POST("/analyze", h.HandleAnalyze)
		apiGroup.POST("/overlay", h.HandleOverlay)
	}
}
