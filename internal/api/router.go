package api

import (
	"strconv"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	"github.com/taskboard/task-api/internal/api/handler"
	"github.com/taskboard/task-api/internal/api/middleware"
	"github.com/taskboard/task-api/internal/core/ports"
	"github.com/taskboard/task-api/internal/core/service"
)

// multipartOverhead is allowed on top of the image limit so oversized files
// reach the service and get a 400 instead of a bare 413.
const multipartOverhead = 1 << 20

// Dependencies holds everything the router needs. Services are built by the
// caller so tests can swap any of them.
type Dependencies struct {
	Logger    zerolog.Logger
	JWTSecret string

	AuthService     ports.AuthService
	UserService     ports.UserService
	TaskService     ports.TaskService
	CategoryService ports.CategoryService

	// HealthChecks are run by /health/ready, keyed by dependency name.
	HealthChecks map[string]handler.Checker
	// MaxUploadBytes caps profile images; zero means the service default.
	MaxUploadBytes int64
	// Metrics is the registry for HTTP metrics. Nil uses the Prometheus
	// default registry.
	Metrics *prometheus.Registry
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Dependencies) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Logger)
	e.Validator = handler.NewValidator()

	var (
		registerer prometheus.Registerer = prometheus.DefaultRegisterer
		gatherer   prometheus.Gatherer   = prometheus.DefaultGatherer
	)
	if deps.Metrics != nil {
		registerer, gatherer = deps.Metrics, deps.Metrics
	}

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(middleware.RequestID())
	e.Use(middleware.RequestLogger(deps.Logger))
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Namespace:  "taskboard",
		Registerer: registerer,
		Skipper: func(c echo.Context) bool {
			return c.Path() == "/metrics"
		},
	}))

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(deps.AuthService)
	userHandler := handler.NewUserHandler(deps.UserService)
	taskHandler := handler.NewTaskHandler(deps.TaskService)
	categoryHandler := handler.NewCategoryHandler(deps.CategoryService)
	healthHandler := handler.NewHealthHandler(deps.HealthChecks)

	// --- Public routes ---
	e.POST("/auth/register", authHandler.Register)
	e.POST("/auth/login", authHandler.Login)

	e.GET("/health", healthHandler.Liveness)        // liveness  – is the process alive?
	e.GET("/health/ready", healthHandler.Readiness) // readiness – are dependencies up?
	e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{Gatherer: gatherer}))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	// --- Authenticated routes ---
	authMiddleware := middleware.Auth(deps.JWTSecret)

	maxUpload := deps.MaxUploadBytes
	if maxUpload <= 0 {
		maxUpload = service.DefaultMaxImageBytes
	}
	uploadLimit := echomiddleware.BodyLimit(strconv.FormatInt(maxUpload+multipartOverhead, 10))

	users := e.Group("/users", authMiddleware)
	users.GET("/profile", userHandler.Profile)
	users.PATCH("/profile", userHandler.UpdateProfile)
	users.POST("/profile/upload", userHandler.UploadImage, uploadLimit)
	users.POST("/linkedin/scrape/:userId", userHandler.ScrapeLinkedIn, middleware.OwnerParam("userId"))

	tasks := e.Group("/tasks", authMiddleware)
	tasks.POST("", taskHandler.Create)
	tasks.GET("", taskHandler.List)
	tasks.GET("/:id", taskHandler.Get)
	tasks.PATCH("/:id", taskHandler.Update)
	tasks.DELETE("/:id", taskHandler.Delete)

	categories := e.Group("/categories", authMiddleware)
	categories.POST("", categoryHandler.Create)
	categories.GET("", categoryHandler.List)
	categories.GET("/:id", categoryHandler.Get)
	categories.PATCH("/:id", categoryHandler.Update)
	categories.DELETE("/:id", categoryHandler.Delete)

	return e
}
