// Package server contains the HTTP handlers for the application's API endpoints.
package server

import (
	"context"
	"fmt"
	"time"

	"kiroku/internal/cache"
	"kiroku/internal/config"
	"kiroku/internal/database"
	"kiroku/internal/middleware"
	"kiroku/internal/repository"
	"kiroku/internal/storage"

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
	config       *config.Config
	db           *gorm.DB
	redis        *redis.Client
	store        storage.ObjectStore
	todoRepo     repository.TodoRepository
	categoryRepo repository.CategoryRepository
	postRepo     repository.PostRepository
	commentRepo  repository.CommentRepository
	replyRepo    repository.ReplyRepository
}

// NewServer creates a new server instance with all dependencies
func NewServer(cfg *config.Config) (*Server, error) {
	db, err := database.Connect(cfg)
	if err != nil {
		return nil, fmt.Errorf("database connection failed: %w", err)
	}

	cache.InitRedis(cfg.RedisURL)
	redisClient := cache.GetClient()

	store := storage.NewDiskStore(cfg.UploadDir, cfg.PublicBaseURL)

	return NewServerWithDeps(cfg, db, redisClient, store)
}

// NewServerWithDeps creates a Server using already-initialized dependencies.
// Use this in tests or when a bootstrap layer establishes DB/Redis first.
// The cache helpers are bound to the same client the limiter and health
// check use.
func NewServerWithDeps(cfg *config.Config, db *gorm.DB, redisClient *redis.Client, store storage.ObjectStore) (*Server, error) {
	cache.SetClient(redisClient)
	return &Server{
		config:       cfg,
		db:           db,
		redis:        redisClient,
		store:        store,
		todoRepo:     repository.NewTodoRepository(db),
		categoryRepo: repository.NewCategoryRepository(db),
		postRepo:     repository.NewPostRepository(db),
		commentRepo:  repository.NewCommentRepository(db),
		replyRepo:    repository.NewReplyRepository(db),
	}, nil
}

// SetupMiddleware configures middleware for the Fiber app
func (s *Server) SetupMiddleware(app *fiber.App) {
	app.Use(recover.New())

	// Request ID for tracing
	app.Use(requestid.New())

	// Security headers
	app.Use(helmet.New())

	// Structured logging middleware
	app.Use(middleware.StructuredLogger())

	// Global rate limiting (100 requests per minute per IP)
	app.Use(limiter.New(limiter.Config{
		Max:        100,
		Expiration: 1 * time.Minute,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"error": "Too many requests, please try again later.",
			})
		},
	}))

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
	// Uploaded objects are served straight from the store's directory.
	if s.config.UploadDir != "" {
		app.Static("/media", s.config.UploadDir)
	}

	api := app.Group("/api")

	// Health check
	api.Get("/", s.HealthCheck)

	api.Get("/metrics", monitor.New(monitor.Config{
		Title: "Kiroku Backend Metrics",
	}))

	// Todo routes
	todos := api.Group("/todos")
	todos.Get("/", s.GetTodos)
	todos.Post("/", s.CreateTodo)
	todos.Get("/:id", s.GetTodo)
	todos.Put("/:id", s.UpdateTodo)
	todos.Delete("/:id", s.DeleteTodo)

	// Category routes
	categories := api.Group("/categories")
	categories.Get("/", s.GetCategories)
	categories.Post("/", s.CreateCategory)
	categories.Put("/:id", s.UpdateCategory)
	categories.Delete("/:id", s.DeleteCategory)

	// Public post routes
	posts := api.Group("/posts")
	posts.Get("/", s.GetPosts)
	posts.Post("/", s.CreatePost)
	// Define specific /:id/:resource routes BEFORE generic /:id route
	posts.Get("/:id/comments", s.GetComments)
	posts.Get("/:id", s.GetPost)
	posts.Put("/:id", s.UpdatePost)
	posts.Delete("/:id", s.DeletePost)

	// Engagement and upload flows require a bearer token from the session provider
	protected := api.Group("", middleware.AuthRequired(s.config.JWTSecret))
	protected.Post("/posts/:id/like", middleware.RateLimit(s.redis, 30, time.Minute, "engage"), s.LikePost)
	protected.Post("/posts/:id/comments", middleware.RateLimit(s.redis, 10, time.Minute, "create_comment"), s.CreateComment)
	protected.Post("/comments/:id/like", middleware.RateLimit(s.redis, 30, time.Minute, "engage"), s.LikeComment)
	protected.Post("/comments/:id/replies", middleware.RateLimit(s.redis, 10, time.Minute, "create_comment"), s.CreateReply)
	protected.Post("/replies/:id/like", middleware.RateLimit(s.redis, 30, time.Minute, "engage"), s.LikeReply)
	protected.Post("/uploads", middleware.RateLimit(s.redis, 10, time.Minute, "upload"), s.UploadImage)

	// Admin surface: same CRUD flows plus bulk moderation
	admin := api.Group("/admin", middleware.AuthRequired(s.config.JWTSecret))

	adminTodos := admin.Group("/todos")
	adminTodos.Get("/", s.GetTodos)
	adminTodos.Post("/", s.CreateTodo)
	adminTodos.Post("/bulk-delete", s.BulkDeleteTodos)
	adminTodos.Get("/:id", s.GetTodo)
	adminTodos.Put("/:id", s.UpdateTodo)
	adminTodos.Delete("/:id", s.DeleteTodo)

	adminCategories := admin.Group("/categories")
	adminCategories.Get("/", s.GetCategories)
	adminCategories.Post("/", s.CreateCategory)
	adminCategories.Post("/bulk-delete", s.BulkDeleteCategories)
	adminCategories.Put("/:id", s.UpdateCategory)
	adminCategories.Delete("/:id", s.DeleteCategory)

	adminPosts := admin.Group("/posts")
	adminPosts.Get("/", s.GetPosts)
	adminPosts.Post("/", s.CreatePost)
	adminPosts.Post("/bulk-delete", s.BulkDeletePosts)
	adminPosts.Get("/:id", s.GetPost)
	adminPosts.Put("/:id", s.UpdatePost)
	adminPosts.Delete("/:id", s.DeletePost)
}

// HealthCheck handles health check requests
func (s *Server) HealthCheck(c *fiber.Ctx) error {
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
	if dbStatus == "unhealthy" {
		status = fiber.StatusServiceUnavailable
	}

	return c.Status(status).JSON(fiber.Map{
		"message": "ok",
		"checks": fiber.Map{
			"database": dbStatus,
			"redis":    redisStatus,
		},
		"time": time.Now(),
	})
}

// Shutdown releases server-held resources (database pool, redis connection).
func (s *Server) Shutdown(ctx context.Context) error {
	_ = cache.Close()
	if s.db != nil {
		if sqlDB, err := s.db.DB(); err == nil {
			return sqlDB.Close()
		}
	}
	return nil
}
