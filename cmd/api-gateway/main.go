package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/noah-isme/campus-enroll-api/api/swagger"
	"github.com/noah-isme/campus-enroll-api/internal/handler"
	"github.com/noah-isme/campus-enroll-api/internal/middleware"
	"github.com/noah-isme/campus-enroll-api/internal/models"
	"github.com/noah-isme/campus-enroll-api/internal/repository"
	"github.com/noah-isme/campus-enroll-api/internal/service"
	"github.com/noah-isme/campus-enroll-api/pkg/cache"
	"github.com/noah-isme/campus-enroll-api/pkg/config"
	"github.com/noah-isme/campus-enroll-api/pkg/database"
	"github.com/noah-isme/campus-enroll-api/pkg/logger"
	corsmiddleware "github.com/noah-isme/campus-enroll-api/pkg/middleware/cors"
	reqidmiddleware "github.com/noah-isme/campus-enroll-api/pkg/middleware/requestid"
)

// @title Campus Enroll API
// @version 0.1.0
// @description Course enrollment, weekly timetables and schedule conflict resolution
// @BasePath /
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

	metrics := service.NewMetricsService()

	var cacheSvc *service.CacheService
	if cfg.Dashboard.Enabled {
		redisClient, err := cache.NewRedis(cfg.Redis)
		if err != nil {
			logr.Sugar().Warnw("redis unavailable, dashboard cache disabled", "error", err)
		} else {
			defer redisClient.Close()
			cacheRepo := repository.NewCacheRepository(redisClient, logr)
			cacheSvc = service.NewCacheService(cacheRepo, metrics, cfg.Dashboard.CacheTTL, logr, true)
		}
	}

	enrollmentRepo := repository.NewEnrollmentRepository(db)
	courseRepo := repository.NewCourseRepository(db)
	courseLogRepo := repository.NewCourseLogRepository(db)

	timetableCfg, err := buildTimetableConfig(cfg.Timetable)
	if err != nil {
		logr.Sugar().Fatalw("invalid timetable config", "error", err)
	}

	authSvc := service.NewAuthService(cfg.JWT.Secret, logr)
	conflictSvc := service.NewConflictService(enrollmentRepo, cacheSvc, metrics, nil, logr)
	timetableSvc := service.NewTimetableService(enrollmentRepo, courseRepo, timetableCfg, logr)
	exportSvc := service.NewExportService(timetableSvc, logr)
	enrollmentSvc := service.NewEnrollmentService(enrollmentRepo, courseRepo, courseLogRepo, cacheSvc, nil, logr)
	courseSvc := service.NewCourseService(courseRepo, courseLogRepo, nil, logr)
	courseLogSvc := service.NewCourseLogService(courseLogRepo, logr)
	dashboardSvc := service.NewDashboardService(enrollmentRepo, courseRepo, conflictSvc, cacheSvc, cfg.Dashboard.CacheTTL, logr)

	courseHandler := handler.NewCourseHandler(courseSvc)
	enrollmentHandler := handler.NewEnrollmentHandler(enrollmentSvc)
	scheduleHandler := handler.NewScheduleHandler(timetableSvc, exportSvc)
	conflictHandler := handler.NewConflictHandler(conflictSvc)
	dashboardHandler := handler.NewDashboardHandler(dashboardSvc)
	courseLogHandler := handler.NewCourseLogHandler(courseLogSvc)
	metricsHandler := handler.NewMetricsHandler(metrics)

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metrics))

	r.GET("/health", metricsHandler.Health)
	r.GET("/ready", func(c *gin.Context) {
		if err := db.PingContext(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})
	r.GET("/metrics", metricsHandler.Prometheus)

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group(cfg.APIPrefix)
	api.Use(middleware.JWT(authSvc))

	api.GET("/courses", courseHandler.List)
	api.GET("/courses/mine", middleware.RequireRoles(models.RoleFaculty), courseHandler.Mine)
	api.GET("/courses/:id", courseHandler.Get)
	api.POST("/courses", middleware.RequireRoles(models.RoleFaculty), courseHandler.Create)

	api.GET("/enrollments", middleware.RequireRoles(models.RoleFaculty), enrollmentHandler.List)
	api.POST("/enrollments", middleware.RequireRoles(models.RoleStudent), enrollmentHandler.Create)
	api.DELETE("/enrollments/:id", middleware.RequireRoles(models.RoleStudent), enrollmentHandler.Drop)

	api.GET("/me/schedule", scheduleHandler.Student)
	api.GET("/me/schedule/staff", middleware.RequireRoles(models.RoleFaculty), scheduleHandler.Staff)
	api.GET("/me/schedule/export", scheduleHandler.Export)
	api.GET("/me/dashboard", dashboardHandler.Me)

	api.GET("/conflicts", middleware.RequireRoles(models.RoleFaculty), conflictHandler.List)
	api.POST("/conflicts/:enrollmentId/resolve", middleware.RequireRoles(models.RoleFaculty), conflictHandler.Resolve)

	api.GET("/course-logs", middleware.RequireRoles(models.RoleFaculty), courseLogHandler.Recent)

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env)
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}

func buildTimetableConfig(cfg config.TimetableConfig) (service.TimetableConfig, error) {
	days, err := models.ParseWeekdays(cfg.Days)
	if err != nil {
		return service.TimetableConfig{}, err
	}
	start, err := models.ParseTimeOfDay(cfg.SlotStart)
	if err != nil {
		return service.TimetableConfig{}, err
	}
	end, err := models.ParseTimeOfDay(cfg.SlotEnd)
	if err != nil {
		return service.TimetableConfig{}, err
	}
	interval := int(cfg.SlotInterval.Minutes())
	if interval <= 0 {
		interval = 60
	}
	return service.TimetableConfig{
		Days:  days,
		Slots: models.SlotTable(start, end, interval),
	}, nil
}
