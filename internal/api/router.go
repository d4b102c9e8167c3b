package api

import (
	"github.com/google/uuid"
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/campushub/event-hub/docs"
	"github.com/campushub/event-hub/internal/api/handler"
	"github.com/campushub/event-hub/internal/api/metrics"
	"github.com/campushub/event-hub/internal/api/middleware"
	"github.com/campushub/event-hub/internal/core/ports"
	"github.com/campushub/event-hub/internal/infrastructure/activity"
)

// Deps carries everything the router wires into handlers. Storage is already
// hidden behind the services, so the same router runs on MongoDB or on the
// in-memory store.
type Deps struct {
	Events        ports.EventService
	Registrations ports.RegistrationService
	Auth          ports.AuthService
	Verifier      ports.TokenVerifier

	// Activity receives one entry per request. A 100-entry log is created when nil.
	Activity *activity.Log
	// Health maps dependency names to readiness pings.
	Health map[string]handler.Checker

	Logger zerolog.Logger

	// EventMutationRoles, when non-empty, restricts event create/update/delete
	// to callers holding one of these roles.
	EventMutationRoles []string
	CORSAllowOrigins   []string

	// Registry receives HTTP and domain metrics. nil uses the Prometheus default registry.
	Registry *prometheus.Registry
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(d Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(d.Logger)

	var (
		registerer prometheus.Registerer = prometheus.DefaultRegisterer
		gatherer   prometheus.Gatherer   = prometheus.DefaultGatherer
	)
	if d.Registry != nil {
		registerer, gatherer = d.Registry, d.Registry
	}
	if err := metrics.Register(registerer); err != nil {
		d.Logger.Warn().Err(err).Msg("failed to register domain metrics")
	}

	activityLog := d.Activity
	if activityLog == nil {
		activityLog = activity.New(100)
	}
	origins := d.CORSAllowOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}

	// --- Global middleware ---
	// Outermost first. Recover sits inside Activity and hands panics back as
	// errors, so a crashed request is still rendered, logged and recorded.
	e.Use(echomiddleware.RequestIDWithConfig(echomiddleware.RequestIDConfig{
		Generator: uuid.NewString,
	}))
	e.Use(requestLogger(d.Logger))
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Namespace:  metricsNamespace,
		Registerer: registerer,
		Skipper: func(c echo.Context) bool {
			return c.Path() == "/metrics"
		},
	}))
	e.Use(middleware.Activity(activityLog))
	e.Use(echomiddleware.RecoverWithConfig(echomiddleware.RecoverConfig{
		DisableErrorHandler: true,
	}))
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins: origins,
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
	}))

	// --- Dependencies ---
	requireIdentity := middleware.RequireIdentity(d.Verifier)
	attachIdentity := middleware.AttachIdentity(d.Verifier)
	mutateEvents := []echo.MiddlewareFunc{requireIdentity}
	if len(d.EventMutationRoles) > 0 {
		mutateEvents = append(mutateEvents, middleware.RequireRole(d.EventMutationRoles...))
	}

	eventHandler := handler.NewEventHandler(d.Events)
	registrationHandler := handler.NewRegistrationHandler(d.Registrations)
	authHandler := handler.NewAuthHandler(d.Auth)
	activityHandler := handler.NewActivityHandler(activityLog)
	healthHandler := handler.NewHealthHandler(d.Health)

	// --- Operational routes (no auth required) ---
	e.GET("/", handler.Index)
	e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{Gatherer: gatherer}))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	api := e.Group("/api")
	api.GET("/health", healthHandler.Liveness)        // liveness: is the process alive?
	api.GET("/health/ready", healthHandler.Readiness) // readiness: are dependencies up?
	api.GET("/activity", activityHandler.List)

	// --- Auth routes ---
	auth := api.Group("/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)
	auth.GET("/me", authHandler.Me, requireIdentity)

	// --- Event catalog ---
	events := api.Group("/events")
	events.GET("", eventHandler.List, attachIdentity)
	events.GET("/:id", eventHandler.Get, attachIdentity)
	events.POST("", eventHandler.Create, mutateEvents...)
	events.PUT("/:id", eventHandler.Update, mutateEvents...)
	events.DELETE("/:id", eventHandler.Delete, mutateEvents...)

	// --- Registrations (identity always required) ---
	registrations := api.Group("/registrations", requireIdentity)
	registrations.GET("/event/:eventId", registrationHandler.ListByEvent)
	registrations.GET("/user/:userId", registrationHandler.ListByUser)
	registrations.GET("/my", registrationHandler.ListMine)
	registrations.POST("", registrationHandler.Register)
	registrations.DELETE("/:registrationId", registrationHandler.Unregister)

	return e
}

const metricsNamespace = "campushub"

// requestLogger emits one zerolog line per request.
func requestLogger(log zerolog.Logger) echo.MiddlewareFunc {
	return echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v echomiddleware.RequestLoggerValues) error {
			var evt *zerolog.Event
			switch {
			case v.Status >= 500:
				evt = log.Error().Err(v.Error)
			case v.Error != nil:
				evt = log.Warn().Err(v.Error)
			default:
				evt = log.Info()
			}
			evt.Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Str("request_id", v.RequestID).
				Msg("request")
			return nil
		},
	})
}
