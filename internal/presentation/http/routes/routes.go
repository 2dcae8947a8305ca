package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/labomak/dashboard/internal/application/dashboard"
	"github.com/labomak/dashboard/internal/application/gateway"
	"github.com/labomak/dashboard/internal/application/offerno"
	"github.com/labomak/dashboard/internal/application/service"
	"github.com/labomak/dashboard/internal/application/validation"
	"github.com/labomak/dashboard/internal/config"
	"github.com/labomak/dashboard/internal/domain/entity"
	domainRepo "github.com/labomak/dashboard/internal/domain/repository"
	"github.com/labomak/dashboard/internal/presentation/http/handler"
	"github.com/labomak/dashboard/internal/presentation/http/middleware"
	"github.com/labomak/dashboard/pkg/utils"
)

// Handlers holds all the HTTP handlers used for route registration.
type Handlers struct {
	Auth      *handler.AuthHandler
	Dashboard *handler.DashboardHandler
	Customers *handler.EntityHandler[entity.Customer]
	Products  *handler.EntityHandler[entity.Product]
	Offers    *handler.EntityHandler[entity.Offer]
	Images    *handler.ImageHandler
	Tables    *handler.TableHandler
}

// NewHandlers builds every handler over one gateway.
func NewHandlers(
	gw *gateway.Gateway,
	numbers *offerno.Generator,
	prober *validation.ImageProber,
	authService *service.AuthService,
	exportService *service.ExportService,
) *Handlers {
	return &Handlers{
		Auth:      handler.NewAuthHandler(authService),
		Dashboard: handler.NewDashboardHandler(gw),
		Customers: handler.NewEntityHandler(dashboard.CustomerDescriptor(gw), exportService),
		Products:  handler.NewEntityHandler(dashboard.ProductDescriptor(gw), exportService),
		Offers:    handler.NewEntityHandler(dashboard.OfferDescriptor(gw, numbers), exportService),
		Images:    handler.NewImageHandler(prober),
		Tables:    handler.NewTableHandler(gw),
	}
}

// Deps holds shared dependencies needed by the routes.
type Deps struct {
	JWTManager      *utils.JWTManager
	Cfg             *config.Config
	IdempotencyRepo domainRepo.IdempotencyRepository
	// RateLimiter is built from Cfg.RateLimit when nil.
	RateLimiter *middleware.UserRateLimiter
}

// Setup creates the Gin router and registers all routes.
func Setup(h *Handlers, deps *Deps) *gin.Engine {
	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(middleware.LoggerMiddleware())
	router.Use(middleware.CORSMiddleware(&deps.Cfg.CORS))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"service": deps.Cfg.App.Name,
		})
	})

	v1 := router.Group("/api/v1")
	{
		v1.POST("/auth/login", h.Auth.Login)

		protected := v1.Group("")
		protected.Use(middleware.AuthMiddleware(deps.JWTManager))

		rateLimiter := deps.RateLimiter
		if rateLimiter == nil {
			rateLimiter = middleware.NewUserRateLimiter(rateLimiterConfig(deps.Cfg.RateLimit))
		}
		protected.Use(rateLimiter.Middleware())
		protected.Use(middleware.Idempotency(deps.IdempotencyRepo))

		registerProtectedRoutes(protected, h)
	}

	return router
}

func rateLimiterConfig(cfg config.RateLimitConfig) middleware.RateLimiterConfig {
	rl := middleware.DefaultRateLimiterConfig()
	if cfg.Requests > 0 && cfg.Duration > 0 {
		rl.RequestsPerSecond = float64(cfg.Requests) / float64(cfg.Duration)
		rl.BurstSize = cfg.Requests
	}
	return rl
}

func registerProtectedRoutes(protected *gin.RouterGroup, h *Handlers) {
	protected.GET("/me", h.Auth.Me)

	// Dashboard
	protected.GET("/dashboard/stats", h.Dashboard.GetStats)
	protected.GET("/dashboard/activities", h.Dashboard.GetActivities)
	protected.GET("/dashboard/modules", h.Dashboard.GetModules)

	h.Offers.Register(protected.Group("/" + dashboard.ModuleOffers))
	h.Products.Register(protected.Group("/" + dashboard.ModuleProducts))
	h.Customers.Register(protected.Group("/" + dashboard.ModuleCustomers))

	protected.POST("/images/probe", h.Images.Probe)

	// Admin
	admin := protected.Group("")
	admin.Use(middleware.RequireRole("admin"))
	{
		admin.GET("/users", h.Tables.Users)
		tables := admin.Group("/tables/:table")
		tables.GET("", h.Tables.List)
		tables.GET("/:key", h.Tables.Get)
		tables.POST("", h.Tables.Create)
		tables.PUT("/:key", h.Tables.Update)
		tables.DELETE("/:key", h.Tables.Delete)
	}
}
