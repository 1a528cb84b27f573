// Package server contains the HTTP handlers and routing for the API.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"kkapi/internal/auth"
	"kkapi/internal/cache"
	"kkapi/internal/config"
	"kkapi/internal/database"
	"kkapi/internal/middleware"
	"kkapi/internal/models"
	"kkapi/internal/repository"
	"kkapi/internal/service"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
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
	tokens         *auth.TokenManager
	userRepo       repository.UserRepository
	tokenRepo      repository.TokenRepository
	tagRepo        repository.TagRepository
	speakRepo      repository.SpeakRepository
	postRepo       repository.PostRepository
	userService    *service.UserService
	tokenService   *service.TokenService
	tagService     *service.TagService
	speakService   *service.SpeakService
	postService    *service.PostService
}

// NewServer creates a server instance, establishing the database and
// Redis connections from configuration.
func NewServer(cfg *config.Config) (*Server, error) {
	db, err := database.Connect(cfg)
	if err != nil {
		return nil, fmt.Errorf("database connection failed: %w", err)
	}

	cache.InitRedis(cfg.RedisURL)

	return NewServerWithDeps(cfg, db, cache.GetClient())
}

// NewServerWithDeps creates a Server using already-initialized
// dependencies. Tests use this with an in-memory database and miniredis.
func NewServerWithDeps(cfg *config.Config, db *gorm.DB, redisClient *redis.Client) (*Server, error) {
	userRepo := repository.NewUserRepository(db)
	tokenRepo := repository.NewTokenRepository(db)
	tagRepo := repository.NewTagRepository(db)
	speakRepo := repository.NewSpeakRepository(db)
	postRepo := repository.NewPostRepository(db)

	prom := middleware.InitMetrics("kkapi")

	server := &Server{
		config:         cfg,
		db:             db,
		redis:          redisClient,
		promMiddleware: prom,
		tokens:         auth.NewTokenManager(cfg.JWTSecret, cfg.JWTTTL()),
		userRepo:       userRepo,
		tokenRepo:      tokenRepo,
		tagRepo:        tagRepo,
		speakRepo:      speakRepo,
		postRepo:       postRepo,
	}
	server.userService = service.NewUserService(userRepo, server.tokens)
	server.tokenService = service.NewTokenService(tokenRepo)
	server.tagService = service.NewTagService(tagRepo)
	server.speakService = service.NewSpeakService(speakRepo, tagRepo, tokenRepo)
	server.postService = service.NewPostService(postRepo)

	return server, nil
}

// SetupMiddleware configures middleware for the Fiber app
func (s *Server) SetupMiddleware(app *fiber.App) {
	// Panic recovery
	app.Use(recover.New())

	// Request ID for tracing
	app.Use(requestid.New())

	// Context middleware to propagate request ID and user ID
	app.Use(middleware.ContextMiddleware())

	// Prometheus metrics
	if s.promMiddleware != nil {
		app.Use(middleware.MetricsMiddleware(s.promMiddleware))
	}

	// Security headers
	app.Use(helmet.New())

	// Structured logging middleware (after requestid and context middleware)
	app.Use(middleware.StructuredLogger())

	// CORS runs before middlewares that can short-circuit (e.g. limiter)
	// so browser clients still receive CORS headers on error responses.
	origins := s.config.AllowedOrigins
	if origins == "" {
		origins = "http://localhost:5173,http://localhost:3000"
	}

	app.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowCredentials: true,
		MaxAge:           86400,
	}))

	// Global rate limiting (100 requests per minute per IP)
	app.Use(limiter.New(limiter.Config{
		Max:        100,
		Expiration: 1 * time.Minute,
		Next: func(c *fiber.Ctx) bool {
			return c.Method() == fiber.MethodOptions
		},
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"error": "Too many requests, please try again later.",
			})
		},
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
		Title: "KKAPI Metrics Dashboard",
	}))

	// User routes
	users := api.Group("/user")
	users.Get("/init", middleware.RateLimit(
		s.redis, 3, 10*time.Minute, "init"), s.InitUser)
	users.Post("/login", middleware.RateLimit(
		s.redis, 10, 5*time.Minute, "login"), s.Login)
	users.Get("/", s.AuthRequired(), s.GetUsers)
	users.Get("/id", s.AuthRequired(), s.GetUserID)
	users.Get("/getUserInfo", s.AuthRequired(), s.GetUserInfo)
	users.Patch("/update", s.AuthRequired(), s.UpdateProfile)
	users.Patch("/password", s.AuthRequired(), s.ChangePassword)

	// API token routes (all owner-scoped)
	tokens := users.Group("/token", s.AuthRequired())
	tokens.Get("/", s.GetTokens)
	tokens.Post("/add", s.CreateToken)
	tokens.Patch("/update", s.UpdateToken)
	tokens.Delete("/delete/:id", s.DeleteToken)

	// Speak routes
	speaks := api.Group("/ispeak")
	speaks.Get("/", s.GetSpeaks)
	speaks.Get("/getByPage", s.AuthRequired(), s.GetSpeaksAdmin)
	speaks.Post("/add", s.AuthRequired(), s.CreateSpeak)
	speaks.Post("/addByToken", middleware.RateLimit(
		s.redis, 10, time.Minute, "speak_token"), s.CreateSpeakByToken)
	speaks.Patch("/update", s.AuthRequired(), s.UpdateSpeak)
	speaks.Patch("/status/", s.AuthRequired(), s.UpdateSpeakStatus)
	// Specific /get/:id route before the generic delete /:id
	speaks.Get("/get/:id", s.GetSpeak)
	speaks.Delete("/:id", s.AuthRequired(), s.DeleteSpeak)

	// Tag routes
	tags := speaks.Group("/tag")
	tags.Get("/", s.GetTags)
	tags.Get("/list", s.GetTagList)
	tags.Get("/getByPage", s.AuthRequired(), s.GetTagsByPage)
	tags.Post("/add", s.AuthRequired(), s.CreateTag)
	tags.Post("/update", s.AuthRequired(), s.UpdateTag)
	tags.Delete("/:id", s.AuthRequired(), s.DeleteTag)

	// Link feed routes
	posts := api.Group("/post", s.AuthRequired())
	posts.Get("/", s.GetPosts)
	posts.Post("/add", s.CreatePost)
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
		redisStatus = "unavailable"
	}

	status := fiber.StatusOK
	overallStatus := "healthy"
	if dbStatus == "unhealthy" || redisStatus != "healthy" {
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

// AuthRequired returns the authentication middleware. The verified user
// ID lands in Locals("userID") and in the request context for logging.
func (s *Server) AuthRequired() fiber.Handler {
	return func(c *fiber.Ctx) error {
		tokenString := bearerToken(c)
		if tokenString == "" {
			return models.RespondWithError(c, fiber.StatusUnauthorized,
				models.NewUnauthorizedError("Authorization required"))
		}

		claims, err := s.tokens.Verify(tokenString)
		if err != nil {
			return models.RespondWithError(c, fiber.StatusUnauthorized, err)
		}

		c.Locals("userID", claims.UserID)
		ctx := context.WithValue(c.UserContext(), middleware.UserIDKey, claims.UserID)
		c.SetUserContext(ctx)

		return c.Next()
	}
}

// optionalUserID extracts the user ID from the Authorization header but
// does not enforce it. Anonymous and bad-token requests both read as
// not logged in.
func (s *Server) optionalUserID(c *fiber.Ctx) (uint, bool) {
	tokenString := bearerToken(c)
	if tokenString == "" {
		return 0, false
	}
	claims, err := s.tokens.Verify(tokenString)
	if err != nil {
		return 0, false
	}
	return claims.UserID, true
}

// Start starts the server
func (s *Server) Start() error {
	app := fiber.New(fiber.Config{
		AppName: "KKAPI",
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			middleware.Logger.ErrorContext(c.UserContext(), "unhandled error", slog.Any("error", err))
			return models.RespondWithError(c, fiber.StatusInternalServerError,
				models.NewInternalError(err))
		},
	})
	s.app = app

	s.SetupMiddleware(app)
	s.SetupRoutes(app)

	middleware.Logger.Info("server starting", slog.String("port", s.config.Port))
	return app.Listen(":" + s.config.Port)
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	if s.app != nil {
		if err := s.app.ShutdownWithContext(ctx); err != nil {
			middleware.Logger.Error("error shutting down HTTP server", slog.Any("error", err))
		}
	}

	if sqlDB, err := s.db.DB(); err == nil {
		if cerr := sqlDB.Close(); cerr != nil {
			middleware.Logger.Error("error closing sql DB", slog.Any("error", cerr))
		}
	}

	if s.redis != nil {
		if rerr := s.redis.Close(); rerr != nil {
			middleware.Logger.Error("error closing redis", slog.Any("error", rerr))
		}
	}

	middleware.Logger.Info("server shutdown complete")
	return nil
}
