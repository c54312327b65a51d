// Package server wires the HTTP surface of the blog: routing, session
// resolution, flash messages, and the page handlers.
package server

import (
	"context"
	"errors"
	"fmt"
	"html/template"
	"log/slog"
	"time"

	"inkwell/internal/config"
	"inkwell/internal/database"
	"inkwell/internal/middleware"
	"inkwell/internal/models"
	"inkwell/internal/repository"
	"inkwell/internal/service"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/gofiber/template/html/v2"
	"gorm.io/gorm"
)

// Server holds all dependencies and provides handlers
type Server struct {
	config         *config.Config
	db             *gorm.DB
	promMiddleware *fiberprometheus.FiberPrometheus
	userRepo       repository.UserRepository
	postRepo       repository.PostRepository
	commentRepo    repository.CommentRepository
	authService    *service.AuthService
	postService    *service.PostService
	commentService *service.CommentService
}

// NewServer creates a new server instance with all dependencies
func NewServer(cfg *config.Config) (*Server, error) {
	db, err := database.Connect(cfg)
	if err != nil {
		return nil, fmt.Errorf("database connection failed: %w", err)
	}
	return NewServerWithDeps(cfg, db), nil
}

// NewServerWithDeps creates a Server using an already-initialized
// database. Use this in tests or when a bootstrap layer establishes
// the DB and optionally performs explicit seeding.
func NewServerWithDeps(cfg *config.Config, db *gorm.DB) *Server {
	userRepo := repository.NewUserRepository(db)
	postRepo := repository.NewPostRepository(db)
	commentRepo := repository.NewCommentRepository(db)

	s := &Server{
		config:         cfg,
		db:             db,
		promMiddleware: middleware.InitMetrics("inkwell"),
		userRepo:       userRepo,
		postRepo:       postRepo,
		commentRepo:    commentRepo,
	}
	s.authService = service.NewAuthService(userRepo)
	s.postService = service.NewPostService(postRepo)
	s.commentService = service.NewCommentService(commentRepo, postRepo)
	return s
}

// BuildApp constructs the Fiber app with the views engine, middleware,
// and routes installed.
func (s *Server) BuildApp(viewsDir string) *fiber.App {
	engine := html.New(viewsDir, ".html")
	engine.AddFunc("gravatar", gravatarURL)
	// Post bodies are rich text authored through the editor; they render
	// unescaped.
	engine.AddFunc("safe", func(body string) template.HTML {
		return template.HTML(body)
	})

	app := fiber.New(fiber.Config{
		AppName:      "Inkwell",
		Views:        engine,
		ErrorHandler: s.errorHandler,
	})

	s.SetupMiddleware(app)
	s.SetupRoutes(app)
	return app
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

	// Session resolution: identity is re-read from the database once per
	// request, never cached across requests.
	app.Use(s.loadSessionUser())
}

// SetupRoutes configures all routes for the application
func (s *Server) SetupRoutes(app *fiber.App) {
	app.Get("/health", s.Health)

	// Metrics endpoint for Prometheus
	if s.promMiddleware != nil {
		s.promMiddleware.RegisterAt(app, "/metrics")
	}

	// Auth routes
	app.Get("/register", s.RegisterPage)
	app.Post("/register", s.Register)
	app.Get("/login", s.LoginPage)
	app.Post("/login", s.Login)
	app.Get("/logout", s.requireUser, s.Logout)

	// Public pages
	app.Get("/", s.Index)
	app.Get("/about", s.About)
	app.Get("/contact", s.Contact)

	// Post view; the POST branch adds a comment and gates itself so the
	// anonymous case can redirect with a flash instead of a route-level 401.
	app.Get("/show_post/:id", s.ShowPost)
	app.Post("/show_post/:id", s.AddComment)

	// Authoring routes
	app.Get("/make-post", s.requireUser, s.MakePostPage)
	app.Post("/make-post", s.requireUser, s.MakePost)
	app.Get("/edit-post/:id", s.requireUser, s.EditPostPage)
	app.Post("/edit-post/:id", s.requireUser, s.EditPost)
	app.Get("/delete_post/:id", s.requireUser, s.DeletePost)
}

// requireUser redirects anonymous visitors to the login page.
func (s *Server) requireUser(c *fiber.Ctx) error {
	if sessionUser(c) == nil {
		setFlash(c, flashDanger, "Please log in to access this page.")
		return c.Redirect("/login", fiber.StatusSeeOther)
	}
	return c.Next()
}

// errorHandler is the last line of defense: anything a handler did not
// recover is mapped to a status page here.
func (s *Server) errorHandler(c *fiber.Ctx, err error) error {
	status := fiber.StatusInternalServerError

	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		status = fiberErr.Code
	}
	if models.ErrorCode(err) == models.CodeNotFound {
		status = fiber.StatusNotFound
	}

	if status >= fiber.StatusInternalServerError {
		middleware.Logger.ErrorContext(c.UserContext(), "unhandled error",
			slog.String("error", err.Error()),
			slog.String("path", c.Path()),
		)
	}

	if status == fiber.StatusNotFound {
		return c.Status(status).Render("404", fiber.Map{"User": sessionUser(c)})
	}
	return c.Status(status).Render("error", fiber.Map{
		"User":   sessionUser(c),
		"Status": status,
	})
}

// Health handles liveness/readiness probe requests.
func (s *Server) Health(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 5*time.Second)
	defer cancel()

	dbStatus := "healthy"
	sqlDB, err := s.db.DB()
	if err != nil {
		dbStatus = "unhealthy"
	} else if err := sqlDB.PingContext(ctx); err != nil {
		dbStatus = "unhealthy"
	}

	status := fiber.StatusOK
	overall := "healthy"
	if dbStatus != "healthy" {
		status = fiber.StatusServiceUnavailable
		overall = "unhealthy"
	}

	return c.Status(status).JSON(fiber.Map{
		"status": overall,
		"checks": fiber.Map{"database": dbStatus},
		"time":   time.Now(),
	})
}
