package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yanqian/contenttools/internal/infra/config"
)

// NewRouter wires up the HTTP handlers and returns a configured server.
func NewRouter(cfg *config.Config, handler *Handler, logger *slog.Logger) *http.Server {
	gin.SetMode(gin.ReleaseMode)
	logger = logger.With("component", "http.router")

	router := gin.New()
	router.MaxMultipartMemory = cfg.HTTP.MaxUploadMB << 20
	router.Use(
		gin.Recovery(),
		requestLogger(logger),
		corsMiddleware(cfg.HTTP.CORSOrigins),
		errorHandlingMiddleware(logger),
		rateLimitMiddleware(cfg.HTTP.RateLimit, logger),
	)

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := router.Group("/api/v1")
	{
		faqGroup := api.Group("/faq")
		faqGroup.POST("/generate", handler.GenerateFAQ)
		faqGroup.POST("/apply", handler.ApplyFAQ)
		faqGroup.POST("/analyze", handler.AnalyzeFAQ)
		faqGroup.POST("/apply-reviewed", handler.ApplyReviewedFAQ)
		faqGroup.GET("/:id", handler.GetFAQ)
		faqGroup.DELETE("/:id", handler.DeleteFAQ)
		faqGroup.GET("/:id/jsonld", handler.FAQStructuredData)

		api.GET("/reports/:key", handler.DownloadReport)

		toolsGroup := api.Group("/tools")
		toolsGroup.POST("/alt-text", handler.UpdateAltText)
		toolsGroup.POST("/serp", handler.UpdateSERP)
		toolsGroup.POST("/categories", handler.Recategorize)
		toolsGroup.POST("/trash", handler.TrashPosts)
		toolsGroup.GET("/export", handler.ExportPosts)
	}

	return &http.Server{
		Addr:           cfg.HTTP.Address,
		Handler:        withRetry(router, cfg.HTTP.Retry, logger),
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		MaxHeaderBytes: 1 << 20,
	}
}
