package api

import (
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoswagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	_ "github.com/99minutos/identity-admin/docs"
	"github.com/99minutos/identity-admin/internal/api/handler"
	"github.com/99minutos/identity-admin/internal/api/middleware"
	"github.com/99minutos/identity-admin/internal/core/authz"
	"github.com/99minutos/identity-admin/internal/core/service"
	mongorepo "github.com/99minutos/identity-admin/internal/infrastructure/db/mongo"
	rediscache "github.com/99minutos/identity-admin/internal/infrastructure/db/redis"
)

// RouterConfig carries the knobs the router needs beyond its dependencies.
type RouterConfig struct {
	JWTSecret string
	TokenTTL  time.Duration
	CacheTTL  time.Duration
}

// NewRouter builds the Echo instance with all routes registered. Every
// resource route passes the Auth middleware and then the authorization gate
// for its (resource, operation) pair; the policy table is the single place
// access rules live.
func NewRouter(db *mongo.Database, rdb *redis.Client, policy *authz.Policy, cfg RouterConfig, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("identity"))

	// --- Dependencies ---
	userRepo := mongorepo.NewUserRepository(db)
	roleRepo := mongorepo.NewRoleRepository(db)
	userCache := rediscache.NewUserCache(rdb, cfg.CacheTTL, log)

	usersService := service.NewUsersService(userRepo, userCache, log)
	rolesService := service.NewRolesService(roleRepo, log)
	authService := service.NewAuthService(userRepo, cfg.JWTSecret, cfg.TokenTTL)

	userHandler := handler.NewUserHandler(usersService)
	roleHandler := handler.NewRoleHandler(rolesService)
	authHandler := handler.NewAuthHandler(authService)

	authn := middleware.Auth(cfg.JWTSecret)
	gate := func(resource string, op authz.Operation) echo.MiddlewareFunc {
		return middleware.Authorize(policy, resource, op)
	}

	// --- Auth ---
	e.POST("/auth/login", authHandler.Login)

	// --- Users ---
	users := e.Group("/v1/users", authn)
	users.GET("", userHandler.List, gate(authz.ResourceUsers, authz.OpList))
	users.GET("/:id", userHandler.Get, gate(authz.ResourceUsers, authz.OpGet))
	users.POST("", userHandler.Create, gate(authz.ResourceUsers, authz.OpCreate))
	users.PATCH("/:id", userHandler.Update, gate(authz.ResourceUsers, authz.OpUpdate))
	users.DELETE("/:id", userHandler.Delete, gate(authz.ResourceUsers, authz.OpDelete))

	// --- Roles ---
	roles := e.Group("/v1/roles", authn)
	roles.GET("", roleHandler.List, gate(authz.ResourceRoles, authz.OpList))
	roles.GET("/:id", roleHandler.Get, gate(authz.ResourceRoles, authz.OpGet))
	roles.POST("", roleHandler.Create, gate(authz.ResourceRoles, authz.OpCreate))
	roles.PATCH("/:id", roleHandler.Update, gate(authz.ResourceRoles, authz.OpUpdate))
	roles.DELETE("/:id", roleHandler.Delete, gate(authz.ResourceRoles, authz.OpDelete))

	// --- Health probes (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)           // liveness  – is the process alive?
	e.GET("/health/ready", readinessHandler.Readiness) // readiness – are dependencies up?

	// --- Operations surface ---
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoswagger.WrapHandler)

	return e
}
