package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/geocoder89/meetuphub/internal/config"
	"github.com/geocoder89/meetuphub/internal/http/handlers"
	"github.com/geocoder89/meetuphub/internal/http/middlewares"
	"github.com/geocoder89/meetuphub/internal/observability"
)

const serviceName = "meetuphub"

// Deps are the collaborators the router mounts. Auth is optional; when nil
// the write routes are open.
type Deps struct {
	Registrations handlers.RegistrationService
	Meetups       handlers.MeetupService
	Prom          *observability.Prom
	Auth          middlewares.TokenVerifier
	Pings         map[string]handlers.PingFunc
}

func NewRouter(log *slog.Logger, cfg config.Config, deps Deps) *gin.Engine {
	if cfg.Env != "dev" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()

	// middleware
	r.Use(gin.Recovery())
	r.Use(otelgin.Middleware(serviceName))
	r.Use(middlewares.RequestID())
	r.Use(middlewares.RequestLogger(log))
	if deps.Prom != nil {
		r.Use(deps.Prom.GinHandleMiddleware())
	}
	r.Use(middlewares.SecurityHeaders(cfg.Env == "prod"))
	r.Use(middlewares.CORS(cfg.CORSOrigins))

	r.NoRoute(func(ctx *gin.Context) {
		handlers.RespondNotFound(ctx, "Route not found")
	})

	// health + ops
	h := handlers.NewHealthHandler(deps.Pings)
	r.GET("/healthz", h.Healthz)
	r.GET("/readyz", h.Readyz)
	if deps.Prom != nil {
		r.GET("/metrics", gin.WrapH(deps.Prom.Handler()))
	}
	r.GET("/docs", handlers.SwaggerUI)
	r.GET("/docs/openapi.yaml", handlers.OpenAPISpec)

	api := r.Group("/api")
	api.Use(middlewares.MaxBodyBytes(cfg.MaxBodyBytes))
	api.Use(middlewares.RequireJSON())

	var writeGuard []gin.HandlerFunc
	if deps.Auth != nil {
		writeGuard = append(writeGuard, middlewares.NewAuthMiddleware(deps.Auth).RequireAuth())
	}

	if cfg.RateLimitPerMinute > 0 {
		rl := middlewares.NewRateLimiter(cfg.RateLimitPerMinute, time.Minute)
		// reads are limited per client IP, writes per caller once auth ran
		api.Use(rl.Middleware(middlewares.KeyByIP))

		writes := middlewares.NewRateLimiter(cfg.RateLimitPerMinute, time.Minute)
		writeGuard = append(writeGuard, writes.Middleware(middlewares.KeyByUserOrIP))
	}

	write := func(handler gin.HandlerFunc) []gin.HandlerFunc {
		return append(append([]gin.HandlerFunc{}, writeGuard...), handler)
	}

	// registrations
	rh := handlers.NewRegistrationHandler(deps.Registrations)
	api.GET("/registration", rh.List)
	api.GET("/registration/:id", rh.Get)
	api.POST("/registration", write(rh.Create)...)
	api.PUT("/registration/:id", write(rh.Update)...)
	api.DELETE("/registration/:id", write(rh.Delete)...)

	// meetups
	mh := handlers.NewMeetupHandler(deps.Meetups)
	api.GET("/meetups", mh.List)
	api.GET("/meetups/:id", mh.Get)
	api.GET("/meetups/:id/registrations", mh.Registrations)
	api.POST("/meetups", write(mh.Create)...)
	api.PUT("/meetups/:id", write(mh.Update)...)
	api.DELETE("/meetups/:id", write(mh.Delete)...)

	return r
}

// NewServer wraps the router with the timeouts the api binary serves with.
func NewServer(addr string, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
}
