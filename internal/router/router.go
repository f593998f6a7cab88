package router // package router defines how HTTP routes are registered for the API

import (
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"

	"github.com/iliyamo/portfolio-backend/internal/config"
	"github.com/iliyamo/portfolio-backend/internal/handler"
	"github.com/iliyamo/portfolio-backend/internal/middleware"
	"github.com/iliyamo/portfolio-backend/internal/queue"
	"github.com/iliyamo/portfolio-backend/internal/repository"
	"github.com/iliyamo/portfolio-backend/internal/validation"
)

// Deps carries everything the routes need.  Events and Redis may be nil.
type Deps struct {
	Cfg    config.Config
	Log    *slog.Logger
	Store  *repository.Store
	Events queue.Publisher
	Redis  *redis.Client
}

// New builds the Echo instance with shared middleware and every route
// registered.
func New(d Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = validation.New()

	e.Use(echomw.Recover())
	e.Use(middleware.RequestLogger(d.Log))
	e.Use(echomw.CORSWithConfig(corsConfig(d.Cfg.CORSOrigins)))

	RegisterRoutes(e)
	RegisterAPI(e, d)
	return e
}

// RegisterRoutes registers routes that live outside the API prefix.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", handler.Health)
}

// RegisterAPI mounts the portfolio endpoints under the configured prefix.
// The admin listing is only guarded when an admin secret is configured.
func RegisterAPI(e *echo.Echo, d Deps) {
	status := handler.NewStatusHandler(d.Store.Status, d.Log)
	contact := handler.NewContactHandler(d.Store.Contacts, d.Events, d.Log)

	api := e.Group(d.Cfg.APIPrefix)
	api.GET("", handler.Root)
	api.GET("/", handler.Root)
	api.POST("/status", status.Create)
	api.GET("/status", status.List)
	api.POST("/contact", contact.Submit, middleware.NewTokenBucket(d.Cfg.RateLimit, d.Redis, d.Log))

	admin := api.Group("/admin")
	if d.Cfg.Admin.Guarded() {
		admin.Use(middleware.JWTAuth(d.Cfg.Admin.JWTSecret), middleware.RequireRole(AdminRole))
	}
	admin.GET("/contacts", contact.AdminList)
}

// AdminRole is the role claim required on admin tokens.
const AdminRole = "ADMIN"

func corsConfig(origins []string) echomw.CORSConfig {
	cfg := echomw.CORSConfig{
		AllowOrigins:     origins,
		AllowMethods:     []string{http.MethodGet, http.MethodHead, http.MethodPut, http.MethodPatch, http.MethodPost, http.MethodDelete, http.MethodOptions},
		AllowCredentials: true,
	}
	for _, o := range origins {
		if o == "*" {
			cfg.UnsafeWildcardOriginWithAllowCredentials = true
			break
		}
	}
	return cfg
}
