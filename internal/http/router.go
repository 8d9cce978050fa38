package http

import (
	"context"
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sikmo/useradmin/internal/auth"
	"github.com/sikmo/useradmin/internal/cache"
	"github.com/sikmo/useradmin/internal/config"
	"github.com/sikmo/useradmin/internal/http/handlers"
	"github.com/sikmo/useradmin/internal/http/middlewares"
	"github.com/sikmo/useradmin/internal/observability"
	"github.com/sikmo/useradmin/internal/repo/postgres"
	"github.com/sikmo/useradmin/internal/session"
	"github.com/sikmo/useradmin/web"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
)

func NewRouter(log *slog.Logger, pool *pgxpool.Pool, cfg config.Config) *gin.Engine {
	if cfg.Env != "dev" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()

	// middleware

	r.Use(gin.Recovery())
	r.Use(RequestID())
	r.Use(RequestLogger(log))
	r.Use(middlewares.SecurityHeaders())
	r.Use(middlewares.MaxBodyBytes(1 << 20))

	if cfg.OTELEnabled {
		r.Use(otelgin.Middleware("useradmin"))
	}

	// metrics
	reg := prometheus.NewRegistry()
	prom := observability.NewProm(reg)
	r.Use(prom.GinHandleMiddleware())
	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(reg, promhttp.HandlerOpts{})))

	// views
	r.SetHTMLTemplate(web.Templates())

	// health
	ping := func() error {
		if pool == nil {
			return nil
		}

		ctx, cancel := context.WithTimeout(context.Background(), 1*time.Second)
		defer cancel()

		return pool.Ping(ctx)
	}

	h := handlers.NewHealthHandler(ping)
	r.GET("/healthz", h.Healthz)
	r.GET("/readyz", h.Readyz)

	// wire up repositories
	usersRepo := postgres.NewUsersRepo(pool, prom)
	rolesRepo := postgres.NewRolesRepo(pool, prom)

	jwtManager := auth.NewManager(cfg.JWTSecret, cfg.SessionTTL())

	// session revocation store is optional, the guard degrades to
	// cookie-expiry-only logout without it
	var revoker handlers.SessionRevoker
	var checker middlewares.SessionChecker

	if cfg.RedisAddr != "" {
		store := session.New(session.Config{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		revoker = store
		checker = store
	}

	// wire up handlers
	authHandler := handlers.NewAuthHandler(usersRepo, jwtManager, revoker, cfg)
	usersHandler := handlers.NewUsersHandlerWithCache(usersRepo, rolesRepo, cache.New(30*time.Second))

	r.GET("/", authHandler.Root)
	r.GET("/login", authHandler.LoginForm)
	r.POST("/login", authHandler.Login)
	r.GET("/logout", authHandler.Logout)

	// everything else sits behind the session guard
	guard := middlewares.NewAuthMiddleware(jwtManager, checker)
	protected := r.Group("/", guard.RequireSession())

	protected.GET("/user_list", usersHandler.List)
	protected.GET("/add_user", usersHandler.NewForm)
	protected.POST("/add_user", usersHandler.Create)
	protected.GET("/user_detail/:id", usersHandler.Detail)
	protected.POST("/update_user/:id", usersHandler.Update)
	protected.GET("/delete_user/:id", usersHandler.Delete)

	return r
}
