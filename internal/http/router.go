package httpapi

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/civicpulse/backend/internal/classify"
	"github.com/civicpulse/backend/internal/config"
	"github.com/civicpulse/backend/internal/db"
	"github.com/civicpulse/backend/internal/http/handlers"
	"github.com/civicpulse/backend/internal/http/middleware"
	"github.com/civicpulse/backend/internal/service"

	_ "github.com/civicpulse/backend/docs"
)

func Router(cfg config.Config, store *db.Store, engine *service.EnrichmentPipeline, lifecycle *service.Lifecycle, table *service.ResponsibilityTable, sla *service.SLAPolicy, classifier classify.Adapter, redisClient *redis.Client, logger zerolog.Logger) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))
	r.MaxMultipartMemory = cfg.MaxUploadSizeMB << 20

	corsCfg := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Admin-Key", "X-Request-Id", "X-User-Id"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if cfg.CORSAllowed == "*" {
		corsCfg.AllowAllOrigins = true
	} else {
		corsCfg.AllowOrigins = []string{cfg.CORSAllowed}
	}
	r.Use(cors.New(corsCfg))

	h := &handlers.Handler{
		Store:          store,
		Pipeline:       engine,
		Lifecycle:      lifecycle,
		Responsibility: table,
		SLA:            sla,
		Classifier:     classifier,
		Validator:      validator.New(),
		Logger:         logger,
		AdminKey:       cfg.AdminKey,
	}

	r.GET("/healthz", h.Healthz)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.Group("/api")
	{
		api.POST("/issues", middleware.SubmitRateLimit(redisClient, cfg.SubmitDailyCap), h.SubmitIssue)
		api.GET("/issues", h.IssuesList)
		api.GET("/issues/nearby", h.NearbyIssues)
		api.GET("/issues/token/:token", h.IssueByShareToken)
		api.GET("/issues/:id", h.IssueDetails)
		api.GET("/stats", h.StatsSummary)
		api.GET("/rankings", h.Rankings)
		api.GET("/wards", h.WardsList)
		api.GET("/contractors", h.ContractorsList)
		api.POST("/classify-image", h.ClassifyImage)
	}

	admin := api.Group("")
	admin.Use(middleware.AdminKey(cfg.AdminKey))
	{
		admin.PATCH("/issues/:id/status", h.UpdateStatus)
		admin.DELETE("/issues/:id", h.DeleteIssue)
	}

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	return r
}
