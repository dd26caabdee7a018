// Package server contains the HTTP handlers and routing for the
// application's HTML pages.
package server

import (
	"context"
	"fmt"
	"log"
	"time"

	"warbler/internal/cache"
	"warbler/internal/config"
	"warbler/internal/database"
	"warbler/internal/middleware"
	"warbler/internal/repository"
	"warbler/internal/service"
	"warbler/internal/view"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/encryptcookie"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/gofiber/fiber/v2/middleware/session"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Server holds all dependencies and provides handlers
type Server struct {
	config         *config.Config
	db             *gorm.DB
	redis          *redis.Client
	app            *fiber.App
	store          *session.Store
	views          *view.Engine
	promMiddleware *fiberprometheus.FiberPrometheus
	userRepo       repository.UserRepository
	messageRepo    repository.MessageRepository
	followRepo     repository.FollowRepository
	userService    *service.UserService
	messageService *service.MessageService
	followService  *service.FollowService
}

// NewServer creates a new server instance with all dependencies
func NewServer(cfg *config.Config) (*Server, error) {
	db, err := database.Connect(cfg)
	if err != nil {
		return nil, fmt.Errorf("database connection failed: %w", err)
	}

	cache.InitRedis(cfg.RedisURL)
	redisClient := cache.GetClient()

	return NewServerWithDeps(cfg, db, redisClient)
}

// NewServerWithDeps creates a Server using already-initialized
// dependencies. Tests use this to wire an in-memory database.
func NewServerWithDeps(cfg *config.Config, db *gorm.DB, redisClient *redis.Client) (*Server, error) {
	views, err := view.New()
	if err != nil {
		return nil, fmt.Errorf("view engine failed: %w", err)
	}

	userRepo := repository.NewUserRepository(db)
	messageRepo := repository.NewMessageRepository(db)
	followRepo := repository.NewFollowRepository(db)

	prom := middleware.InitMetrics("warbler")

	server := &Server{
		config:         cfg,
		db:             db,
		redis:          redisClient,
		store:          newSessionStore(),
		views:          views,
		promMiddleware: prom,
		userRepo:       userRepo,
		messageRepo:    messageRepo,
		followRepo:     followRepo,
	}
	server.userService = service.NewUserService(userRepo)
	server.messageService = service.NewMessageService(messageRepo)
	server.followService = service.NewFollowService(followRepo, userRepo)

	return server, nil
}

// SetupMiddleware configures middleware for the Fiber app
func (s *Server) SetupMiddleware(app *fiber.App) {
	// Panic recovery
	app.Use(recover.New())

	// Request ID for tracing
	app.Use(requestid.New())

	// Context Middleware to propagate Request ID and User ID
	app.Use(middleware.ContextMiddleware())

	// Prometheus Metrics
	if s.promMiddleware != nil {
		app.Use(middleware.MetricsMiddleware(s.promMiddleware))
	}

	// Security headers
	app.Use(helmet.New())

	// Structured Logging middleware (after requestid and context middleware)
	app.Use(middleware.StructuredLogger())

	origins := s.config.AllowedOrigins
	if origins == "" {
		origins = "http://localhost:5000"
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowHeaders:     "Origin, Content-Type, Accept",
		AllowCredentials: true,
		MaxAge:           86400,
	}))

	// Cookie values are encrypted with a key derived from the session
	// secret, so session IDs never travel in the clear. Must run before
	// SessionLoader reads the cookie.
	app.Use(encryptcookie.New(encryptcookie.Config{
		Key: cookieKey(s.config.SessionSecret),
	}))

	// Session resolution runs after logging so user_id lands in the
	// request context for every handler below.
	app.Use(s.SessionLoader())
}

// SetupRoutes configures all routes for the application
func (s *Server) SetupRoutes(app *fiber.App) {
	// Health checks
	app.Get("/health/live", s.LivenessCheck)
	app.Get("/health/ready", s.ReadinessCheck)

	// Metrics endpoint for Prometheus
	if s.promMiddleware != nil {
		s.promMiddleware.RegisterAt(app, "/metrics")
	}

	// Home timeline
	app.Get("/", s.Home)

	// Auth routes
	app.Get("/signup", s.SignupPage)
	app.Post("/signup", middleware.RateLimit(
		s.redis, 5, 10*time.Minute, "signup"), s.Signup)
	app.Get("/login", s.LoginPage)
	app.Post("/login", middleware.RateLimit(
		s.redis, 10, 5*time.Minute, "login"), s.Login)
	app.Post("/logout", s.Logout)

	// User routes. Static paths are registered before /users/:id so
	// "profile", "follow" and friends never match as an ID.
	app.Get("/users", s.ListUsers)
	app.Get("/users/profile", s.LoginRequired(), s.ProfileEditPage)
	app.Post("/users/profile", s.LoginRequired(), s.UpdateProfile)
	app.Post("/users/delete", s.LoginRequired(), s.DeleteUser)
	app.Post("/users/follow/:id", s.LoginRequired(), s.FollowUser)
	app.Post("/users/stop-following/:id", s.LoginRequired(), s.StopFollowing)
	app.Get("/users/:id/following", s.LoginRequired(), s.ShowFollowing)
	app.Get("/users/:id/followers", s.LoginRequired(), s.ShowFollowers)
	app.Get("/users/:id", s.ShowUser)

	// Message routes
	app.Get("/messages/new", s.LoginRequired(), s.NewMessagePage)
	app.Post("/messages/new", s.LoginRequired(), s.CreateMessage)
	app.Get("/messages/:id", s.ShowMessage)
	app.Post("/messages/:id/delete", s.LoginRequired(), s.DeleteMessage)
}

// Home renders the timeline for logged-in users and the landing page for
// everyone else. A session naming a user that no longer exists is treated
// as anonymous rather than failing the page.
func (s *Server) Home(c *fiber.Ctx) error {
	user := s.currentUser(c)
	if user == nil {
		return s.render(c, "home_anon", nil)
	}

	messages, err := s.messageService.HomeTimeline(c.Context(), user.ID, 100)
	if err != nil {
		return s.renderAppError(c, err)
	}
	following, followers, err := s.followService.Counts(c.Context(), user.ID)
	if err != nil {
		return s.renderAppError(c, err)
	}

	return s.render(c, "home", fiber.Map{
		"CurrentUser":    user,
		"Messages":       messages,
		"FollowingCount": following,
		"FollowersCount": followers,
	})
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
		// The app degrades gracefully without Redis; report but stay ready.
		redisStatus = "unavailable"
	}

	status := fiber.StatusOK
	overallStatus := "healthy"
	if dbStatus == "unhealthy" {
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

// NewApp builds the Fiber app with middleware and routes attached.
func (s *Server) NewApp() *fiber.App {
	app := fiber.New(fiber.Config{
		AppName: "Warbler",
		Views:   s.views,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			if fe, ok := err.(*fiber.Error); ok && fe.Code < fiber.StatusInternalServerError {
				return c.Status(fe.Code).SendString(fe.Message)
			}
			log.Printf("Error: %v", err)
			return s.renderError(c, fiber.StatusInternalServerError, "Something went wrong.")
		},
	})
	s.SetupMiddleware(app)
	s.SetupRoutes(app)
	return app
}

// Start starts the server
func (s *Server) Start() error {
	s.app = s.NewApp()
	log.Printf("Server starting on port %s...", s.config.Port)
	return s.app.Listen(":" + s.config.Port)
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
