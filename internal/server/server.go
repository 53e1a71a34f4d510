// Package server contains the HTTP handlers for the application's API
// endpoints.
package server

import (
	"context"
	"time"

	"inkwell/internal/config"
	"inkwell/internal/middleware"
	"inkwell/internal/repository"
	"inkwell/internal/service"
	"inkwell/internal/session"
	"inkwell/internal/storage"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Server holds all dependencies and provides the HTTP handlers.
type Server struct {
	config         *config.Config
	db             *gorm.DB
	redis          *redis.Client
	app            *fiber.App
	promMiddleware *fiberprometheus.FiberPrometheus

	sessions session.Store

	userService     *service.UserService
	postService     *service.PostService
	categoryService *service.CategoryService
	commentService  *service.CommentService
	imageService    *service.ImageService
}

// NewServerWithDeps creates a Server using already-initialized
// dependencies. The bootstrap layer supplies the production database and
// Redis client; tests inject an in-memory database or a
// miniredis-backed client. A nil Redis client selects the in-memory
// session store.
func NewServerWithDeps(cfg *config.Config, db *gorm.DB, redisClient *redis.Client) *Server {
	userRepo := repository.NewUserRepository(db)
	postRepo := repository.NewPostRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	commentRepo := repository.NewCommentRepository(db)

	ttl := time.Duration(cfg.SessionTTLHours) * time.Hour
	var sessions session.Store
	if redisClient != nil {
		sessions = session.NewRedisStore(redisClient, ttl)
	} else {
		sessions = session.NewMemoryStore(ttl)
	}

	store := storage.NewDiskStore(cfg.UploadDir)

	s := &Server{
		config:         cfg,
		db:             db,
		redis:          redisClient,
		promMiddleware: middleware.InitMetrics("inkwell-api"),
		sessions:       sessions,

		userService:     service.NewUserService(userRepo),
		postService:     service.NewPostService(postRepo, categoryRepo, cfg.PostsPerPage),
		categoryService: service.NewCategoryService(categoryRepo),
		commentService:  service.NewCommentService(commentRepo, postRepo),
		imageService: service.NewImageService(
			store,
			int64(cfg.MaxUploadSizeMB)*1024*1024,
			cfg.ImageMaxWidth,
			cfg.ImageMaxHeight,
		),
	}
	return s
}

// SetupMiddleware configures the middleware chain for the Fiber app.
func (s *Server) SetupMiddleware(app *fiber.App) {
	app.Use(recover.New())
	app.Use(requestid.New())

	// Session resolution before context injection so the logger sees the
	// user id.
	app.Use(middleware.ResolvePrincipal(s.sessions))
	app.Use(middleware.ContextMiddleware())

	if s.promMiddleware != nil {
		app.Use(s.promMiddleware.Middleware)
	}

	app.Use(helmet.New())
	app.Use(middleware.StructuredLogger())

	origins := s.config.AllowedOrigins
	if origins == "" {
		origins = "http://localhost:5173,http://localhost:3000"
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowHeaders:     "Origin, Content-Type, Accept",
		AllowCredentials: true,
		MaxAge:           86400,
	}))
}

// SetupRoutes configures all routes for the application.
func (s *Server) SetupRoutes(app *fiber.App) {
	app.Get("/healthz", s.HealthCheck)
	if s.promMiddleware != nil {
		s.promMiddleware.RegisterAt(app, "/metrics")
	}

	api := app.Group("/api")

	auth := api.Group("/auth")
	auth.Post("/register", s.Register)
	auth.Post("/login", s.Login)
	auth.Post("/logout", s.Logout)

	posts := api.Group("/posts")
	posts.Get("/", s.GetPosts)
	posts.Post("/", middleware.AuthRequired, s.CreatePost)
	posts.Get("/:id/comments", s.GetComments)
	posts.Post("/:id/comments", middleware.AuthRequired, s.CreateComment)
	posts.Get("/:id", s.GetPost)
	posts.Put("/:id", middleware.AuthRequired, s.UpdatePost)
	posts.Delete("/:id", middleware.AuthRequired, s.DeletePost)

	comments := api.Group("/comments", middleware.AuthRequired)
	comments.Put("/:id", s.UpdateComment)
	comments.Delete("/:id", s.DeleteComment)

	categories := api.Group("/categories")
	categories.Get("/", s.GetCategories)
	categories.Get("/:id/posts", s.GetCategoryPosts)

	profile := api.Group("/profile", middleware.AuthRequired)
	profile.Get("/", s.GetProfile)
	profile.Put("/", s.UpdateProfile)
	profile.Put("/password", s.ChangePassword)
	profile.Put("/avatar", s.UploadAvatar)
	profile.Delete("/avatar", s.DeleteAvatar)

	// The content surfaces under /admin are open to authors too; the
	// handlers gate on the content-role predicate. Everything else under
	// /admin is admin-only.
	adminPosts := api.Group("/admin/posts", middleware.AuthRequired)
	adminPosts.Get("/", s.AdminListPosts)
	adminPosts.Post("/", s.AdminCreatePost)

	admin := api.Group("/admin", middleware.RoleRequired("admin"))
	adminUsers := admin.Group("/users")
	adminUsers.Get("/", s.AdminListUsers)
	adminUsers.Post("/", s.AdminCreateUser)
	adminUsers.Put("/:id", s.AdminUpdateUser)
	adminUsers.Delete("/:id", s.AdminDeleteUser)

	adminCategories := admin.Group("/categories")
	adminCategories.Post("/", s.AdminCreateCategory)
	adminCategories.Put("/:id", s.AdminUpdateCategory)
	adminCategories.Delete("/:id", s.AdminDeleteCategory)
}

// HealthCheck handles GET /healthz.
func (s *Server) HealthCheck(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":  "ok",
		"service": "inkwell-api",
	})
}

// App builds and returns the configured Fiber application.
func (s *Server) App() *fiber.App {
	if s.app != nil {
		return s.app
	}
	s.app = fiber.New(fiber.Config{
		AppName:   "inkwell",
		BodyLimit: (s.config.MaxUploadSizeMB + 1) * 1024 * 1024,
	})
	s.SetupMiddleware(s.app)
	s.SetupRoutes(s.app)
	return s.app
}

// Listen starts serving on the configured port.
func (s *Server) Listen() error {
	return s.App().Listen(":" + s.config.Port)
}

// Shutdown stops the HTTP server and closes shared connections.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.app != nil {
		if err := s.app.ShutdownWithContext(ctx); err != nil {
			return err
		}
	}
	if s.redis != nil {
		if err := s.redis.Close(); err != nil {
			middleware.Logger.Error("closing redis client", "error", err.Error())
		}
	}
	if sqlDB, err := s.db.DB(); err == nil {
		return sqlDB.Close()
	}
	return nil
}
