package server

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	echoSwagger "github.com/swaggo/echo-swagger"
	"golang.org/x/time/rate"

	_ "github.com/medtrack/core/docs"
	httpHandlers "github.com/medtrack/core/internal/adapters/http"
	"github.com/medtrack/core/internal/adapters/memory"
	"github.com/medtrack/core/internal/adapters/remote"
	"github.com/medtrack/core/internal/application/services"
	"github.com/medtrack/core/internal/infrastructure/config"
	"github.com/medtrack/core/internal/infrastructure/logger"
)

// Server represents the facade HTTP server
type Server struct {
	echo   *echo.Echo
	config *config.Config
	logger *logger.Logger
	guard  *remote.Guard
}

// CustomValidator wraps the validator
type CustomValidator struct {
	validator *validator.Validate
}

// Validate validates structs
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}

// New creates a new server instance
func New(cfg *config.Config, appLogger *logger.Logger) (*Server, error) {
	e := echo.New()

	// Set custom validator
	e.Validator = &CustomValidator{validator: validator.New()}

	// Configure Echo
	e.HideBanner = true
	e.HidePort = true

	// Initialize stores
	catalog := memory.NewMedicationCatalog()
	reminderStore := memory.NewReminderStore()

	// Initialize backend adapter
	tokens := remote.NewStaticTokenSource(cfg.Auth.Token, cfg.Auth.RefreshToken)
	client := remote.NewClient(cfg.Backend, tokens, appLogger)
	guard := remote.NewGuard(cfg.Backend, appLogger)

	// Initialize services
	medicationService := services.NewMedicationService(catalog, client, guard, appLogger)
	reminderService := services.NewReminderService(reminderStore, client, guard, appLogger)
	scheduleService := services.NewScheduleService(catalog, reminderStore, appLogger)
	statusService := services.NewStatusService(reminderStore, client, appLogger)

	// Initialize handlers
	scheduleHandler := httpHandlers.NewScheduleHandler(reminderService, scheduleService, appLogger)
	medicationHandler := httpHandlers.NewMedicationHandler(medicationService, appLogger)
	reminderHandler := httpHandlers.NewReminderHandler(reminderService, appLogger)
	doseHandler := httpHandlers.NewDoseHandler(statusService, appLogger)

	server := &Server{
		echo:   e,
		config: cfg,
		logger: appLogger,
		guard:  guard,
	}

	// Setup middleware
	server.setupMiddleware()

	// Setup routes
	server.setupRoutes(scheduleHandler, medicationHandler, reminderHandler, doseHandler)

	// Setup metrics
	if cfg.Metrics.Enabled {
		server.setupMetrics()
	}

	return server, nil
}

// setupMiddleware configures middleware
func (s *Server) setupMiddleware() {
	// Recovery middleware
	s.echo.Use(middleware.Recover())

	// Logger middleware
	s.echo.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogURI:       true,
		LogStatus:    true,
		LogMethod:    true,
		LogLatency:   true,
		LogError:     true,
		LogRemoteIP:  true,
		LogUserAgent: true,
		LogValuesFunc: func(c echo.Context, values middleware.RequestLoggerValues) error {
			fields := []interface{}{
				"method", values.Method,
				"uri", values.URI,
				"status", values.Status,
				"latency_ms", float64(values.Latency.Nanoseconds()) / 1000000,
				"remote_ip", values.RemoteIP,
				"user_agent", values.UserAgent,
			}

			if values.Error != nil {
				fields = append(fields, "error", values.Error.Error())
				s.logger.Errorw("HTTP request failed", fields...)
			} else {
				s.logger.Infow("HTTP request", fields...)
			}

			return nil
		},
	}))

	// CORS middleware
	s.echo.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: strings.Split(s.config.Security.CORSAllowedOrigins, ","),
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
		AllowMethods: []string{echo.GET, echo.HEAD, echo.PUT, echo.PATCH, echo.POST, echo.DELETE},
	}))

	// Rate limiting middleware
	s.echo.Use(middleware.RateLimiterWithConfig(middleware.RateLimiterConfig{
		Store: middleware.NewRateLimiterMemoryStoreWithConfig(
			middleware.RateLimiterMemoryStoreConfig{Rate: rate.Limit(s.config.Security.RateLimitRequests), Burst: s.config.Security.RateLimitRequests, ExpiresIn: s.config.Security.RateLimitWindow},
		),
		IdentifierExtractor: func(ctx echo.Context) (string, error) {
			id := ctx.RealIP()
			return id, nil
		},
		ErrorHandler: func(context echo.Context, err error) error {
			return context.JSON(http.StatusForbidden, map[string]string{"message": "rate limit exceeded"})
		},
		DenyHandler: func(context echo.Context, identifier string, err error) error {
			return context.JSON(http.StatusTooManyRequests, map[string]string{"message": "rate limit exceeded"})
		},
	}))

	// Security headers
	s.echo.Use(middleware.SecureWithConfig(middleware.SecureConfig{
		XSSProtection:         "1; mode=block",
		ContentTypeNosniff:    "nosniff",
		XFrameOptions:         "DENY",
		HSTSMaxAge:            31536000,
		ContentSecurityPolicy: "default-src 'self'",
	}))

	// Request ID middleware
	s.echo.Use(middleware.RequestID())

	// Bearer passthrough: the mobile client's own token rides along on
	// every backend call made for this request.
	s.echo.Use(s.tokenPassthrough())

	// Timeout middleware
	s.echo.Use(middleware.TimeoutWithConfig(middleware.TimeoutConfig{
		Timeout: 30 * time.Second,
	}))
}

// setupRoutes configures all routes
func (s *Server) setupRoutes(scheduleHandler *httpHandlers.ScheduleHandler, medicationHandler *httpHandlers.MedicationHandler, reminderHandler *httpHandlers.ReminderHandler, doseHandler *httpHandlers.DoseHandler) {
	// Health check routes
	s.echo.GET("/health", s.healthCheck)
	s.echo.GET("/ready", s.readinessCheck)

	// Swagger documentation
	s.echo.GET("/swagger/*", echoSwagger.WrapHandler)

	// API v1 routes
	v1 := s.echo.Group("/api/v1")

	// Schedule routes
	v1.GET("/schedule", scheduleHandler.GetSchedule)

	// Medication routes
	medicationGroup := v1.Group("/medications")
	medicationGroup.GET("", medicationHandler.ListMedications)
	medicationGroup.POST("", medicationHandler.CreateMedication)
	medicationGroup.PUT("/:id", medicationHandler.UpdateMedication)
	medicationGroup.DELETE("/:id", medicationHandler.DeleteMedication)

	// Reminder routes
	reminderGroup := v1.Group("/reminders")
	reminderGroup.GET("", reminderHandler.ListReminders)
	reminderGroup.POST("", reminderHandler.CreateReminder)

	// Dose status routes
	doseGroup := v1.Group("/doses")
	doseGroup.PUT("/:id/taken", doseHandler.MarkTaken)
	doseGroup.PUT("/:id/skipped", doseHandler.MarkSkipped)
	doseGroup.PUT("/:id/reset", doseHandler.Reset)
}

// setupMetrics configures Prometheus metrics
func (s *Server) setupMetrics() {
	requestsTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	requestDuration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	prometheus.MustRegister(requestsTotal, requestDuration)
	prometheus.MustRegister(collectors.NewBuildInfoCollector())

	// Custom metrics middleware
	s.echo.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()

			err := next(c)

			duration := time.Since(start)
			status := c.Response().Status

			requestsTotal.WithLabelValues(
				c.Request().Method,
				c.Path(),
				fmt.Sprintf("%d", status),
			).Inc()

			requestDuration.WithLabelValues(
				c.Request().Method,
				c.Path(),
			).Observe(duration.Seconds())

			return err
		}
	})

	// Metrics endpoint; the default gatherer also carries the guard's
	// probe/retry/fallback counters.
	s.echo.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
}

// Health check handlers
func (s *Server) healthCheck(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status": "ok",
		"time":   time.Now().UTC().Format(time.RFC3339),
	})
}

// readinessCheck reports whether the legacy backend is currently usable.
// An unreachable backend still returns 200: the gateway stays up in demo
// mode, and the payload says so.
func (s *Server) readinessCheck(c echo.Context) error {
	reachability := s.guard.Probe(c.Request().Context())

	return c.JSON(http.StatusOK, map[string]string{
		"status":  "ok",
		"backend": reachability.String(),
		"time":    time.Now().UTC().Format(time.RFC3339),
	})
}

// Start starts the HTTP server
func (s *Server) Start() error {
	addr := fmt.Sprintf("%s:%d", s.config.Server.Host, s.config.Server.Port)
	s.logger.Infow("Starting server", "address", addr)

	s.echo.Server.ReadTimeout = s.config.Server.ReadTimeout
	s.echo.Server.WriteTimeout = s.config.Server.WriteTimeout
	s.echo.Server.IdleTimeout = s.config.Server.IdleTimeout

	return s.echo.Start(addr)
}

// Shutdown gracefully stops the HTTP server
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Infow("Shutting down server")
	return s.echo.Shutdown(ctx)
}
