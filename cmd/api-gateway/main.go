package main

import (
	"fmt"
	"log"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/noah-isme/canvas-companion-api/api/swagger"
	"github.com/noah-isme/canvas-companion-api/internal/handler"
	"github.com/noah-isme/canvas-companion-api/internal/middleware"
	"github.com/noah-isme/canvas-companion-api/internal/repository"
	"github.com/noah-isme/canvas-companion-api/internal/service"
	"github.com/noah-isme/canvas-companion-api/pkg/completion"
	"github.com/noah-isme/canvas-companion-api/pkg/config"
	"github.com/noah-isme/canvas-companion-api/pkg/logger"
	corsmiddleware "github.com/noah-isme/canvas-companion-api/pkg/middleware/cors"
	reqidmiddleware "github.com/noah-isme/canvas-companion-api/pkg/middleware/requestid"
)

// @title Canvas Companion API
// @version 0.1.0
// @description Canvas LMS aggregation dashboard with an AI study companion
// @BasePath /
// @schemes http

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	canvasRepo, err := repository.NewCanvasRepository(cfg.Canvas)
	if err != nil {
		logr.Sugar().Fatalw("canvas client init failed", "error", err)
	}

	completionClient, err := completion.NewClient(cfg.Completion)
	if err != nil {
		logr.Sugar().Fatalw("completion client init failed", "error", err)
	}

	metricsSvc := service.NewMetricsService()
	aggregatorSvc := service.NewAggregatorService(canvasRepo, metricsSvc, logr, cfg.Canvas.FetchConcurrency)
	normalizerSvc := service.NewNormalizerService()
	dashboardSvc := service.NewDashboardService(aggregatorSvc, normalizerSvc)
	companionSvc := service.NewCompanionService(aggregatorSvc, completionClient, metricsSvc, logr, service.CompanionServiceConfig{
		Model:      cfg.Companion.Model,
		MaxCourses: cfg.Companion.MaxCoursesInContext,
	})

	dashboardHandler := handler.NewDashboardHandler(dashboardSvc)
	companionHandler := handler.NewCompanionHandler(companionSvc)
	metricsHandler := handler.NewMetricsHandler(metricsSvc)

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metricsSvc))

	r.LoadHTMLGlob("web/templates/*.html")

	r.GET("/", dashboardHandler.Page)
	r.GET("/api/dashboard", dashboardHandler.Data)
	r.POST("/api/ai-companion", companionHandler.Chat)

	if cfg.Exports.Enabled {
		exportHandler := handler.NewExportHandler(service.NewExportService(dashboardSvc))
		r.GET("/api/export/grades", exportHandler.Grades)
		r.GET("/api/export/assignments", exportHandler.Assignments)
	}

	r.GET("/health", metricsHandler.Health)
	r.GET("/ready", metricsHandler.Health)
	r.GET("/metrics", metricsHandler.Prometheus)

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env)
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}
