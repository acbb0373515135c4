package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/yuehan-qin/classpoints-api/api/swagger"
	"github.com/yuehan-qin/classpoints-api/internal/handler"
	"github.com/yuehan-qin/classpoints-api/internal/middleware"
	"github.com/yuehan-qin/classpoints-api/internal/repository"
	"github.com/yuehan-qin/classpoints-api/internal/service"
	"github.com/yuehan-qin/classpoints-api/pkg/cache"
	"github.com/yuehan-qin/classpoints-api/pkg/config"
	"github.com/yuehan-qin/classpoints-api/pkg/database"
	"github.com/yuehan-qin/classpoints-api/pkg/export"
	"github.com/yuehan-qin/classpoints-api/pkg/logger"
	corsmiddleware "github.com/yuehan-qin/classpoints-api/pkg/middleware/cors"
	reqidmiddleware "github.com/yuehan-qin/classpoints-api/pkg/middleware/requestid"
)

// @title ClassPoints API
// @version 0.1.0
// @description Classroom points ledger: students, groups, rewards, lucky draw
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
	defer db.Close()

	// Redis is optional: without it the snapshot endpoint skips caching.
	redisClient, err := cache.NewRedis(cfg.Redis)
	if err != nil {
		logr.Sugar().Warnw("redis unavailable, snapshot caching disabled", "error", err)
		redisClient = nil
	}

	validate := validator.New()

	ledgerRepo := repository.NewLedgerRepository(db)
	studentRepo := repository.NewStudentRepository(db)
	groupRepo := repository.NewGroupRepository(db)
	rewardRepo := repository.NewRewardRepository(db)
	prizeRepo := repository.NewPrizeRepository(db)
	recordRepo := repository.NewRecordRepository(db)
	settingRepo := repository.NewSettingRepository(db)
	dataRepo := repository.NewDataRepository(db)
	cacheRepo := repository.NewCacheRepository(redisClient, logr)

	metricsSvc := service.NewMetricsService()
	settingsSvc := service.NewSettingsService(settingRepo, nil, cfg.Draw.DefaultCost, logr)
	snapshotSvc := service.NewSnapshotService(service.SnapshotServiceDeps{
		Students: studentRepo,
		Groups:   groupRepo,
		Rewards:  rewardRepo,
		Prizes:   prizeRepo,
		Records:  recordRepo,
		Settings: settingsSvc,
		Data:     dataRepo,
		Cache:    cacheRepo,
		Metrics:  metricsSvc,
		CacheTTL: cfg.Snapshot.CacheTTL,
	}, validate, logr)
	// Cost updates must drop the cached snapshot, so rebind the settings
	// service once the snapshot service exists.
	settingsSvc = service.NewSettingsService(settingRepo, snapshotSvc, cfg.Draw.DefaultCost, logr)

	ledgerSvc := service.NewLedgerService(ledgerRepo, snapshotSvc, metricsSvc, validate, logr)
	studentSvc := service.NewStudentService(studentRepo, snapshotSvc, validate, logr)
	groupSvc := service.NewGroupService(groupRepo, studentRepo, snapshotSvc, validate, logr)
	rewardSvc := service.NewRewardService(rewardRepo, snapshotSvc, validate, logr)
	drawSvc := service.NewDrawService(prizeRepo, ledgerRepo, settingsSvc, snapshotSvc, validate, logr)
	recordSvc := service.NewRecordService(recordRepo, export.NewCSVExporter(), export.NewPDFExporter(cfg.Export.PDFFontPath), logr)

	studentHandler := handler.NewStudentHandler(studentSvc)
	groupHandler := handler.NewGroupHandler(groupSvc)
	pointsHandler := handler.NewPointsHandler(ledgerSvc)
	rewardHandler := handler.NewRewardHandler(rewardSvc)
	turntableHandler := handler.NewTurntableHandler(drawSvc, settingsSvc)
	recordHandler := handler.NewRecordHandler(recordSvc)
	dataHandler := handler.NewDataHandler(snapshotSvc)
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

	r.GET("/health", metricsHandler.Health)
	r.GET("/ready", func(c *gin.Context) {
		if err := db.Ping(); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})
	r.GET("/metrics", metricsHandler.Prometheus)

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group(cfg.APIPrefix)
	api.Use(middleware.Auth(cfg.JWT.Secret))
	{
		api.GET("/students", studentHandler.List)
		api.POST("/students", studentHandler.Create)
		api.PUT("/students/:id", studentHandler.Update)
		api.DELETE("/students/:id", studentHandler.Delete)
		api.POST("/students/import", studentHandler.Import)
		api.POST("/students/:id/points", pointsHandler.AdjustStudent)
		api.POST("/students/:id/redeem", pointsHandler.Redeem)

		api.GET("/groups", groupHandler.List)
		api.POST("/groups", groupHandler.Create)
		api.PUT("/groups/:id", groupHandler.Rename)
		api.DELETE("/groups/:id", groupHandler.Delete)
		api.PUT("/groups/:id/members", groupHandler.SetMembers)
		api.POST("/groups/:id/points", pointsHandler.AdjustGroup)

		api.POST("/class/points", pointsHandler.AdjustClass)

		api.GET("/rewards", rewardHandler.List)
		api.POST("/rewards", rewardHandler.Create)
		api.PUT("/rewards/:id", rewardHandler.Update)
		api.DELETE("/rewards/:id", rewardHandler.Delete)

		api.GET("/turntable/prizes", turntableHandler.ListPrizes)
		api.POST("/turntable/prizes", turntableHandler.CreatePrize)
		api.PUT("/turntable/prizes/:id", turntableHandler.UpdatePrize)
		api.DELETE("/turntable/prizes/:id", turntableHandler.DeletePrize)
		api.POST("/turntable/spin", turntableHandler.Spin)
		api.PUT("/settings/turntable-cost", turntableHandler.UpdateCost)

		api.GET("/records", recordHandler.List)
		api.GET("/records/export", recordHandler.Export)

		api.GET("/data", dataHandler.Get)
		api.POST("/data/import", dataHandler.Import)
		api.DELETE("/data", dataHandler.Reset)
	}

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env)
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}
