package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/warrior-support/wss-api/api/swagger"
	"github.com/warrior-support/wss-api/internal/handler"
	"github.com/warrior-support/wss-api/internal/middleware"
	"github.com/warrior-support/wss-api/internal/models"
	"github.com/warrior-support/wss-api/internal/repository"
	"github.com/warrior-support/wss-api/internal/service"
	"github.com/warrior-support/wss-api/pkg/cache"
	"github.com/warrior-support/wss-api/pkg/config"
	"github.com/warrior-support/wss-api/pkg/database"
	"github.com/warrior-support/wss-api/pkg/export"
	"github.com/warrior-support/wss-api/pkg/logger"
	corsmiddleware "github.com/warrior-support/wss-api/pkg/middleware/cors"
	reqidmiddleware "github.com/warrior-support/wss-api/pkg/middleware/requestid"
)

// @title Warrior Support System API
// @version 1.0.0
// @description Personnel welfare and mental-health tracking for battalion units
// @BasePath /api
// @schemes http

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		logr.Sugar().Fatalw("failed to connect to postgres", "error", err)
	}
	defer db.Close() //nolint:errcheck

	cacheEnabled := cfg.Cache.Enabled
	redisClient, err := cache.NewRedis(cfg.Redis)
	if err != nil {
		logr.Sugar().Warnw("redis unavailable, caching disabled", "error", err)
		redisClient = nil
		cacheEnabled = false
	}
	if redisClient != nil {
		defer redisClient.Close() //nolint:errcheck
	}

	validate := validator.New()

	metricsService := service.NewMetricsService()
	cacheRepo := repository.NewCacheRepository(redisClient, logr)
	cacheService := service.NewCacheService(cacheRepo, metricsService, cfg.Cache.QuestionTTL, logr, cacheEnabled)

	userRepo := repository.NewUserRepository(db)
	battalionRepo := repository.NewBattalionRepository(db)
	personnelRepo := repository.NewPersonnelRepository(db)
	questionRepo := repository.NewQuestionRepository(db)
	examinationRepo := repository.NewExaminationRepository(db)
	severeRepo := repository.NewSevereRepository(db)

	authService := service.NewAuthService(userRepo, validate, logr, service.AuthConfig{
		TokenSecret: cfg.JWT.Secret,
		TokenExpiry: cfg.JWT.Expiration,
		Issuer:      cfg.JWT.Issuer,
	})
	battalionService := service.NewBattalionService(battalionRepo, personnelRepo, cacheService, validate, logr)
	personnelService := service.NewPersonnelService(personnelRepo, cacheService, cfg.Cache.RosterTTL, validate, logr)
	questionService := service.NewQuestionService(questionRepo, cacheService, cfg.Cache.QuestionTTL, validate, logr)
	analysisService := service.NewAnalysisService(cfg.Analysis, logr)
	examinationService := service.NewExaminationService(examinationRepo, personnelRepo, questionRepo, analysisService, metricsService, validate, logr)
	evaluationService := service.NewEvaluationService(personnelRepo, validate, logr)
	severeService := service.NewSevereService(severeRepo, validate, logr)
	csvService := service.NewCSVService(personnelService, export.NewCSVExporter(), cfg.Import.MaxRows, validate, logr)
	userService := service.NewUserService(userRepo, metricsService, validate, logr)
	reportService := service.NewReportService(personnelService, battalionService, export.NewPDFExporter(), logr)

	rootCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	analysisService.Start(rootCtx)
	defer analysisService.Stop()

	authHandler := handler.NewAuthHandler(authService)
	userHandler := handler.NewUserHandler(userService)
	battalionHandler := handler.NewBattalionHandler(battalionService)
	personnelHandler := handler.NewPersonnelHandler(personnelService)
	questionHandler := handler.NewQuestionHandler(questionService)
	examinationHandler := handler.NewExaminationHandler(examinationService)
	evaluationHandler := handler.NewEvaluationHandler(evaluationService)
	csvHandler := handler.NewCSVHandler(csvService, cfg.Import.MaxFileSizeBytes)
	reportHandler := handler.NewReportHandler(reportService)
	severeHandler := handler.NewSevereHandler(severeService)
	metricsHandler := handler.NewMetricsHandler(metricsService, db)

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metricsService))

	r.GET("/health", metricsHandler.Health)
	r.GET("/ready", metricsHandler.Ready)
	r.GET("/metrics", metricsHandler.Prometheus)

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	prefix := cfg.APIPrefix
	if prefix == "" {
		prefix = "/api"
	}
	api := r.Group(prefix)

	auth := api.Group("/auth")
	{
		auth.POST("/register", authHandler.Register)
		auth.POST("/login", authHandler.Login)
	}

	gate := api.Group("")
	gate.Use(middleware.Authenticate(authService))
	{
		gate.GET("/auth/profile", authHandler.Profile)
		gate.PUT("/auth/change-password", authHandler.ChangePassword)

		coOnly := middleware.RequireRoles(models.RoleCO)
		gate.GET("/user", coOnly, userHandler.List)
		gate.PUT("/user/:id", coOnly, userHandler.Update)
		gate.PUT("/user/:id/active", coOnly, userHandler.SetActive)
		gate.GET("/stats/system", coOnly, metricsHandler.System)

		gate.GET("/battalion", battalionHandler.List)
		gate.POST("/battalion", battalionHandler.Create)
		gate.DELETE("/battalion/:id", coOnly, battalionHandler.Delete)

		gate.GET("/personnel/battalion/:battalionId", personnelHandler.ListByBattalion)
		gate.GET("/personnel/:id", personnelHandler.Get)
		commanders := middleware.RequireRoles(models.RoleCO, models.RoleJCO)
		gate.POST("/personnel", commanders, personnelHandler.Create)
		gate.PUT("/personnel/:id", commanders, personnelHandler.Update)
		gate.DELETE("/personnel/:id", commanders, personnelHandler.Delete)
		gate.DELETE("/personnel/battalion/:battalionId", coOnly, personnelHandler.DeleteByBattalion)

		gate.GET("/question", questionHandler.List)
		gate.POST("/question", coOnly, questionHandler.Create)
		gate.PUT("/question/:id", coOnly, questionHandler.Update)
		gate.DELETE("/question/:id", coOnly, questionHandler.Delete)

		gate.POST("/examination/submit", examinationHandler.Submit)
		gate.GET("/examination/personnel/:armyNo", examinationHandler.History)

		gate.POST("/evaluation/submit", middleware.RequireRoles(models.RoleJCO), evaluationHandler.Submit)

		gate.GET("/csv/export/:battalionId", commanders, csvHandler.Export)
		gate.POST("/csv/import/:battalionId", commanders, csvHandler.Import)
		gate.GET("/report/pdf/:battalionId", commanders, reportHandler.BattalionPDF)

		gate.POST("/severePersonnel", severeHandler.BulkInsert)
		gate.GET("/severePersonnel", severeHandler.List)
		gate.DELETE("/severePersonnel/:id", commanders, severeHandler.Delete)
	}

	addr := fmt.Sprintf(":%d", cfg.Port)
	srv := &http.Server{
		Addr:              addr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logr.Sugar().Fatalw("server failed", "error", err)
		}
	}()

	<-rootCtx.Done()
	logr.Sugar().Infow("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logr.Sugar().Errorw("graceful shutdown failed", "error", err)
	}
}
