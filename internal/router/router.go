package router

import (
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	"github.com/noah-isme/coaching-center-api/internal/handler"
	"github.com/noah-isme/coaching-center-api/internal/middleware"
	"github.com/noah-isme/coaching-center-api/internal/service"
	appErrors "github.com/noah-isme/coaching-center-api/pkg/errors"
	"github.com/noah-isme/coaching-center-api/pkg/logger"
	corsmiddleware "github.com/noah-isme/coaching-center-api/pkg/middleware/cors"
	reqidmiddleware "github.com/noah-isme/coaching-center-api/pkg/middleware/requestid"
	"github.com/noah-isme/coaching-center-api/pkg/response"
)

// Options configures the HTTP surface.
type Options struct {
	APIPrefix      string
	AllowedOrigins []string
	// StaticDir, when set, is served as a single page app with index.html
	// fallback for unknown non-API paths.
	StaticDir string
	Docs      bool
	Logger    *zap.Logger
	Metrics   *service.MetricsService
}

// Handlers groups every HTTP handler the router mounts.
type Handlers struct {
	Course       *handler.CourseHandler
	Announcement *handler.AnnouncementHandler
	Contact      *handler.ContactHandler
	Team         *handler.TeamHandler
	Testimonial  *handler.TestimonialHandler
	Video        *handler.VideoHandler
	Auth         *handler.AuthHandler
	Newsletter   *handler.NewsletterHandler
	Dashboard    *handler.DashboardHandler
	Metrics      *handler.MetricsHandler
}

// New builds the gin engine with middleware and routes.
func New(opts Options, auth middleware.Authenticator, h Handlers) *gin.Engine {
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	prefix := "/" + strings.Trim(opts.APIPrefix, "/")

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(opts.Logger))
	r.Use(middleware.Metrics(opts.Metrics))
	r.Use(corsmiddleware.New(opts.AllowedOrigins))

	r.GET("/health", h.Metrics.Health)
	r.GET("/ready", h.Metrics.Ready)
	r.GET("/metrics", h.Metrics.Prometheus)
	if opts.Docs {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	admin := func(handlers ...gin.HandlerFunc) []gin.HandlerFunc {
		return append([]gin.HandlerFunc{middleware.Protect(auth), middleware.Authorize()}, handlers...)
	}
	optional := middleware.OptionalAuth(auth)

	api := r.Group(prefix)

	courses := api.Group("/courses")
	courses.GET("", h.Course.List)
	courses.POST("", admin(h.Course.Create)...)
	courses.GET("/:id", h.Course.Get)
	courses.PUT("/:id", admin(h.Course.Update)...)
	courses.DELETE("/:id", admin(h.Course.Delete)...)

	announcements := api.Group("/announcements")
	announcements.GET("", h.Announcement.List)
	announcements.POST("", admin(h.Announcement.Create)...)
	announcements.GET("/:id", h.Announcement.Get)
	announcements.PUT("/:id", admin(h.Announcement.Update)...)
	announcements.DELETE("/:id", admin(h.Announcement.Delete)...)

	contacts := api.Group("/contacts")
	contacts.POST("", h.Contact.Submit)
	contacts.GET("", admin(h.Contact.List)...)
	contacts.GET("/:id", admin(h.Contact.Get)...)
	contacts.PUT("/:id", admin(h.Contact.Update)...)
	contacts.PATCH("/:id/status", admin(h.Contact.UpdateStatus)...)
	contacts.DELETE("/:id", admin(h.Contact.Delete)...)

	authGroup := api.Group("/auth")
	authGroup.POST("/login", h.Auth.Login)
	authGroup.GET("/me", admin(h.Auth.Me)...)
	authGroup.PUT("/change-password", admin(h.Auth.ChangePassword)...)

	newsletter := api.Group("/newsletter")
	newsletter.POST("/subscribe", h.Newsletter.Subscribe)
	newsletter.PUT("/unsubscribe", h.Newsletter.Unsubscribe)
	newsletter.GET("/subscriptions", admin(h.Newsletter.Subscriptions)...)
	newsletter.POST("/subscriptions/export", admin(h.Newsletter.Export)...)
	newsletter.DELETE("/subscription/:id", admin(h.Newsletter.DeleteSubscription)...)
	newsletter.GET("/exports/download", h.Newsletter.Download)

	team := api.Group("/team")
	team.GET("", h.Team.List)
	team.POST("", admin(h.Team.Create)...)
	team.GET("/admin", admin(h.Team.ListAll)...)
	team.GET("/:id", h.Team.Get)
	team.PUT("/:id", admin(h.Team.Update)...)
	team.DELETE("/:id", admin(h.Team.Delete)...)

	testimonials := api.Group("/testimonials")
	testimonials.GET("", optional, h.Testimonial.List)
	testimonials.POST("", admin(h.Testimonial.Create)...)
	testimonials.POST("/submit", h.Testimonial.Submit)
	testimonials.GET("/pending", admin(h.Testimonial.Pending)...)
	testimonials.GET("/:id", optional, h.Testimonial.Get)
	testimonials.PUT("/:id", admin(h.Testimonial.Update)...)
	testimonials.PUT("/:id/approve", admin(h.Testimonial.Approve)...)
	testimonials.DELETE("/:id", admin(h.Testimonial.Delete)...)

	videos := api.Group("/videos")
	videos.GET("", optional, h.Video.List)
	videos.POST("", admin(h.Video.Create)...)
	videos.GET("/:id", optional, h.Video.Get)
	videos.PUT("/:id", admin(h.Video.Update)...)
	videos.DELETE("/:id", admin(h.Video.Delete)...)

	api.GET("/dashboard/stats", admin(h.Dashboard.Stats)...)

	r.NoRoute(noRoute(prefix, opts.StaticDir))
	return r
}

func noRoute(prefix, staticDir string) gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.Request.URL.Path
		if staticDir == "" || strings.HasPrefix(path, prefix+"/") || path == prefix || c.Request.Method != http.MethodGet {
			response.Error(c, appErrors.Clone(appErrors.ErrNotFound, "route not found"))
			return
		}

		candidate := filepath.Join(staticDir, filepath.FromSlash(filepath.Clean("/"+path)))
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			c.File(candidate)
			return
		}
		c.File(filepath.Join(staticDir, "index.html"))
	}
}
