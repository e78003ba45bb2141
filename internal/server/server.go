// Package server contains the HTTP handlers and routing for the API.
package server

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"inkwell/internal/config"
	"inkwell/internal/database"
	"inkwell/internal/identity"
	"inkwell/internal/media"
	"inkwell/internal/middleware"
	"inkwell/internal/models"
	"inkwell/internal/notify"
	"inkwell/internal/repository"
	"inkwell/internal/service"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/monitor"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Server holds all dependencies and provides handlers
type Server struct {
	config         *config.Config
	db             *gorm.DB
	redis          *redis.Client
	app            *fiber.App
	promMiddleware *fiberprometheus.FiberPrometheus
	verifier       identity.Verifier
	mediaStore     *media.Store
	postService    *service.PostService
	contactService *service.ContactService
	supportService *service.SupportService
}

// NewServer creates a new server instance with all dependencies
func NewServer(cfg *config.Config) (*Server, error) {
	db, err := database.Connect(cfg)
	if err != nil {
		return nil, fmt.Errorf("database connection failed: %w", err)
	}

	var redisClient *redis.Client
	if cfg.RedisURL != "" {
		redisClient = redis.NewClient(&redis.Options{Addr: cfg.RedisURL})
	}

	verifier := identity.NewJWTVerifier(cfg.JWTSecret, cfg.JWTIssuer, cfg.JWTAudience, redisClient)

	var forwarder notify.Forwarder
	if cfg.TelegramBotToken != "" && cfg.TelegramChatID != "" {
		forwarder = notify.NewTelegramForwarder(cfg.TelegramBotToken, cfg.TelegramChatID)
	}

	mediaStore, err := media.NewStore(cfg)
	if err != nil {
		return nil, fmt.Errorf("media store initialization failed: %w", err)
	}

	return NewServerWithDeps(cfg, db, redisClient, verifier, forwarder, mediaStore)
}

// NewServerWithDeps creates a Server using already-initialized dependencies.
// Tests and bootstrap layers use this to inject an in-memory store, a stub
// verifier or an unreachable forwarder.
func NewServerWithDeps(
	cfg *config.Config,
	db *gorm.DB,
	redisClient *redis.Client,
	verifier identity.Verifier,
	forwarder notify.Forwarder,
	mediaStore *media.Store,
) (*Server, error) {
	postRepo := repository.NewPostRepository(db)
	contactRepo := repository.NewContactRepository(db)
	supportRepo := repository.NewSupportMessageRepository(db)

	prom := middleware.InitMetrics("inkwell-api")

	return &Server{
		config:         cfg,
		db:             db,
		redis:          redisClient,
		promMiddleware: prom,
		verifier:       verifier,
		mediaStore:     mediaStore,
		postService:    service.NewPostService(postRepo),
		contactService: service.NewContactService(contactRepo),
		supportService: service.NewSupportService(supportRepo, forwarder),
	}, nil
}

// SetupMiddleware configures middleware for the Fiber app
func (s *Server) SetupMiddleware(app *fiber.App) {
	// Panic recovery
	app.Use(recover.New())

	// Request ID for log correlation
	app.Use(requestid.New())

	// Context middleware to propagate request ID into the user context
	app.Use(middleware.ContextMiddleware())

	// Tracing (after requestid so the span carries the request id)
	app.Use(middleware.TracingMiddleware())

	// Prometheus metrics
	if s.promMiddleware != nil {
		app.Use(middleware.MetricsMiddleware(s.promMiddleware))
	}

	// Security headers
	app.Use(helmet.New())

	// Structured logging middleware (after requestid and context middleware)
	app.Use(middleware.StructuredLogger())

	origins := s.config.AllowedOrigins
	if origins == "" {
		origins = "http://localhost:5173,http://localhost:3000,http://127.0.0.1:5173"
	}

	app.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowCredentials: true,
		MaxAge:           86400, // 24 hours
	}))
}

// SetupRoutes configures all routes for the application
func (s *Server) SetupRoutes(app *fiber.App) {
	api := app.Group("/api")

	// Health checks
	app.Get("/health/live", s.LivenessCheck)
	app.Get("/health/ready", s.ReadinessCheck)
	app.Get("/health", s.ReadinessCheck)

	// Metrics endpoint for Prometheus
	if s.promMiddleware != nil {
		s.promMiddleware.RegisterAt(app, "/metrics")
	}
	api.Get("/metrics/dashboard", monitor.New(monitor.Config{
		Title: "Inkwell Backend Metrics Dashboard",
	}))

	// Post routes. The specific /user/:userId route must precede /:id.
	posts := api.Group("/posts")
	posts.Get("/", s.GetPosts)
	posts.Get("/user/:userId", s.AuthRequired(), s.GetUserPosts)
	posts.Get("/:id", s.GetPost)
	posts.Post("/", s.AuthRequired(), s.CreatePost)
	posts.Put("/:id", s.AuthRequired(), s.UpdatePost)
	posts.Delete("/:id", s.AuthRequired(), s.DeletePost)

	// Contact directory routes. /admin must precede /:id.
	contacts := api.Group("/contacts")
	contacts.Get("/", s.GetContacts)
	contacts.Get("/admin", s.AuthRequired(), s.GetContactsAdmin)
	contacts.Post("/", s.AuthRequired(), s.CreateContact)
	contacts.Put("/:id", s.AuthRequired(), s.UpdateContact)
	contacts.Delete("/:id", s.AuthRequired(), s.DeleteContact)

	// Support message routes
	support := api.Group("/support")
	support.Post("/", s.CreateSupportMessage)
	support.Get("/", s.AuthRequired(), s.GetSupportMessages)

	// Media routes
	mediaGroup := api.Group("/media")
	mediaGroup.Post("/upload", s.AuthRequired(), s.UploadMedia)
	mediaGroup.Get("/file/:filename", s.ServeMediaFile)
	mediaGroup.Delete("/file/:filename", s.AuthRequired(), s.DeleteMediaFile)
}

// LivenessCheck handles liveness probe requests
func (s *Server) LivenessCheck(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"status": "up",
		"time":   time.Now(),
	})
}

// ReadinessCheck handles readiness probe requests
func (s *Server) ReadinessCheck(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 5*time.Second)
	defer cancel()

	dbStatus := "healthy"
	sqlDB, err := s.db.DB()
	if err != nil {
		dbStatus = "unhealthy"
	} else if err := sqlDB.PingContext(ctx); err != nil {
		dbStatus = "unhealthy"
	}

	redisStatus := "healthy"
	if s.redis != nil {
		if err := s.redis.Ping(ctx).Err(); err != nil {
			redisStatus = "unhealthy"
		}
	} else {
		// Redis is optional; without it token revocation checks are skipped.
		redisStatus = "disabled"
	}

	status := fiber.StatusOK
	overallStatus := "healthy"
	if dbStatus == "unhealthy" || redisStatus == "unhealthy" {
		status = fiber.StatusServiceUnavailable
		overallStatus = "unhealthy"
	}

	return c.Status(status).JSON(fiber.Map{
		"status": overallStatus,
		"checks": fiber.Map{
			"database": dbStatus,
			"redis":    redisStatus,
		},
		"time": time.Now(),
	})
}

// AuthRequired returns the authentication middleware. It verifies the bearer
// credential and stores the resulting principal in the request locals.
func (s *Server) AuthRequired() fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return models.RespondWithError(c, fiber.StatusUnauthorized,
				models.NewUnauthenticatedError("No valid authorization header provided"))
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
			return models.RespondWithError(c, fiber.StatusUnauthorized,
				models.NewUnauthenticatedError("No valid authorization header provided"))
		}

		principal, err := s.verifier.Verify(c.Context(), parts[1])
		if err != nil {
			message := "Invalid token"
			switch {
			case errors.Is(err, identity.ErrTokenExpired):
				message = "Token expired"
			case errors.Is(err, identity.ErrTokenRevoked):
				message = "Token has been revoked"
			}
			return models.RespondWithError(c, fiber.StatusUnauthorized,
				models.NewUnauthenticatedError(message))
		}

		c.Locals("principal", principal)
		ctx := context.WithValue(c.UserContext(), middleware.PrincipalIDKey, principal.ID)
		c.SetUserContext(ctx)

		return c.Next()
	}
}

// NewFiberApp builds the fiber app with transport limits derived from
// configuration. The body limit must admit a full upload request: up to
// maxFiles files of maxUploadMB each, plus framing headroom. The per-file
// ceiling is enforced in the media store.
func (s *Server) NewFiberApp() *fiber.App {
	maxUploadMB := media.DefaultMaxUploadSizeMB
	if s.config.MediaMaxUploadSizeMB > 0 {
		maxUploadMB = s.config.MediaMaxUploadSizeMB
	}
	maxFiles := media.DefaultMaxFiles
	if s.config.MediaMaxFiles > 0 {
		maxFiles = s.config.MediaMaxFiles
	}

	return fiber.New(fiber.Config{
		AppName:   "Inkwell API",
		BodyLimit: (maxFiles*maxUploadMB + 2) * 1024 * 1024,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			log.Printf("Error: %v", err)
			return models.RespondWithError(c, fiber.StatusInternalServerError,
				models.NewInternalError(err))
		},
	})
}

// Start starts the server
func (s *Server) Start() error {
	app := s.NewFiberApp()
	s.app = app

	s.SetupMiddleware(app)
	s.SetupRoutes(app)

	log.Printf("Server starting on port %s...", s.config.Port)
	return app.Listen(":" + s.config.Port)
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	if s.app != nil {
		if err := s.app.ShutdownWithContext(ctx); err != nil {
			log.Printf("error shutting down HTTP server: %v", err)
		}
	}

	if sqlDB, err := s.db.DB(); err == nil {
		if cerr := sqlDB.Close(); cerr != nil {
			log.Printf("error closing sql DB: %v", cerr)
		}
	}

	if s.redis != nil {
		if rerr := s.redis.Close(); rerr != nil {
			log.Printf("error closing redis: %v", rerr)
		}
	}

	log.Println("Server shutdown complete")
	return nil
}
