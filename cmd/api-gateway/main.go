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
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	_ "github.com/noah-isme/coaching-center-api/api/swagger"
	"github.com/noah-isme/coaching-center-api/internal/handler"
	"github.com/noah-isme/coaching-center-api/internal/repository"
	"github.com/noah-isme/coaching-center-api/internal/router"
	"github.com/noah-isme/coaching-center-api/internal/service"
	"github.com/noah-isme/coaching-center-api/pkg/cache"
	"github.com/noah-isme/coaching-center-api/pkg/config"
	"github.com/noah-isme/coaching-center-api/pkg/database"
	"github.com/noah-isme/coaching-center-api/pkg/jobs"
	"github.com/noah-isme/coaching-center-api/pkg/logger"
	"github.com/noah-isme/coaching-center-api/pkg/mailer"
	"github.com/noah-isme/coaching-center-api/pkg/storage"
)

// @title Coaching Center API
// @version 1.0.0
// @description Courses, announcements, enquiries, team, testimonials, videos and newsletter for the coaching center site.
// @BasePath /api
// @schemes http https
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

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

	switch cfg.Env {
	case config.EnvProduction:
		gin.SetMode(gin.ReleaseMode)
	case config.EnvDevelopment:
		gin.SetMode(gin.DebugMode)
	default:
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := database.NewPostgres(ctx, cfg.Database)
	if err != nil {
		logr.Fatal("failed to connect database", zap.Error(err))
	}
	defer db.Close()

	metrics := service.NewMetricsService()

	var redisClient *redis.Client
	if cfg.Cache.Enabled {
		if redisClient, err = cache.NewRedis(ctx, cfg.Redis); err != nil {
			logr.Warn("redis unavailable, response cache disabled", zap.Error(err))
			redisClient = nil
		} else {
			defer redisClient.Close()
		}
	}
	metricsHandler := handler.NewMetricsHandler(metrics, db)
	var cacheRepo service.CacheRepository
	if redisClient != nil {
		redisRepo := repository.NewCacheRepository(redisClient, logr)
		cacheRepo = redisRepo
		metricsHandler.WithCache(redisRepo)
	}
	cacheSvc := service.NewCacheService(cacheRepo, metrics, cfg.Cache.TTL, logr, redisClient != nil)

	courseRepo := repository.NewCourseRepository(db)
	announcementRepo := repository.NewAnnouncementRepository(db)
	contactRepo := repository.NewContactRepository(db)
	teamRepo := repository.NewTeamRepository(db)
	testimonialRepo := repository.NewTestimonialRepository(db)
	videoRepo := repository.NewVideoRepository(db)
	adminRepo := repository.NewAdminRepository(db)
	newsletterRepo := repository.NewNewsletterRepository(db)

	validate := service.NewValidator()

	if !cfg.SMTP.Configured() {
		logr.Warn("smtp not configured, outbound email disabled")
	}
	notifications := service.NewNotificationService(mailer.New(cfg.SMTP), cfg.SMTP.AdminEmail, metrics, logr, jobs.QueueConfig{
		Workers:    cfg.Notify.Workers,
		MaxRetries: cfg.Notify.Retries,
		RetryDelay: 5 * time.Second,
	})
	notifications.Start(ctx)
	defer notifications.Stop()

	exportStore, err := storage.NewLocalStorage(cfg.Exports.StorageDir)
	if err != nil {
		logr.Fatal("failed to prepare export storage", zap.Error(err))
	}
	signer := storage.NewSignedURLSigner(cfg.Exports.SignedURLSecret, cfg.Exports.SignedURLTTL)

	authSvc := service.NewAuthService(adminRepo, validate, logr, service.AuthConfig{Secret: cfg.JWT.Secret, Expiry: cfg.JWT.Expiration})
	courseSvc := service.NewCourseService(courseRepo, cacheSvc, validate, logr)
	announcementSvc := service.NewAnnouncementService(announcementRepo, cacheSvc, validate, logr)
	contactSvc := service.NewContactService(contactRepo, notifications, metrics, validate, logr)
	teamSvc := service.NewTeamService(teamRepo, cacheSvc, validate, logr)
	testimonialSvc := service.NewTestimonialService(testimonialRepo, cacheSvc, metrics, validate, logr)
	videoSvc := service.NewVideoService(videoRepo, cacheSvc, validate, logr)
	newsletterSvc := service.NewNewsletterService(newsletterRepo, notifications, metrics, validate, logr)
	exportSvc := service.NewExportService(newsletterRepo, exportStore, signer, metrics, logr, service.ExportConfig{
		APIPrefix: cfg.APIPrefix,
		Retention: 24 * time.Hour,
	})
	dashboardSvc := service.NewDashboardService(service.DashboardCounters{
		Courses:             courseRepo.Count,
		Announcements:       announcementRepo.Count,
		ContactsByStatus:    contactRepo.CountByStatus,
		ActiveTeamMembers:   teamRepo.CountActive,
		PendingTestimonials: testimonialRepo.CountPending,
		Videos:              videoRepo.Count,
		ActiveSubscribers:   newsletterRepo.CountActive,
	}, logr)

	opts := router.Options{
		APIPrefix:      cfg.APIPrefix,
		AllowedOrigins: cfg.CORS.AllowedOrigins,
		Docs:           cfg.Env != config.EnvProduction,
		Logger:         logr,
		Metrics:        metrics,
	}
	if cfg.Env == config.EnvProduction {
		opts.StaticDir = cfg.StaticDir
	}
	engine := router.New(opts, authSvc, router.Handlers{
		Course:       handler.NewCourseHandler(courseSvc),
		Announcement: handler.NewAnnouncementHandler(announcementSvc),
		Contact:      handler.NewContactHandler(contactSvc),
		Team:         handler.NewTeamHandler(teamSvc),
		Testimonial:  handler.NewTestimonialHandler(testimonialSvc),
		Video:        handler.NewVideoHandler(videoSvc),
		Auth:         handler.NewAuthHandler(authSvc),
		Newsletter:   handler.NewNewsletterHandler(newsletterSvc, exportSvc),
		Dashboard:    handler.NewDashboardHandler(dashboardSvc),
		Metrics:      metricsHandler,
	})

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logr.Info("server starting", zap.String("addr", srv.Addr), zap.String("env", cfg.Env))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logr.Fatal("server failed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logr.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logr.Error("graceful shutdown failed", zap.Error(err))
	}
}
