package main

import (
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/cors"
	"github.com/gofiber/fiber/v3/middleware/logger"
	"github.com/gofiber/fiber/v3/middleware/recover"

	"movie-catalog-api/internal/config"
	"movie-catalog-api/internal/database"
	"movie-catalog-api/internal/handler"
	"movie-catalog-api/internal/middleware"
	"movie-catalog-api/internal/repository"
	"movie-catalog-api/internal/service"
)

func main() {
	// Structured logging
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo})))

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	// Connect to PostgreSQL
	db, err := database.NewPostgres(cfg.DB)
	if err != nil {
		slog.Error("failed to connect to PostgreSQL", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	// Connect to Redis (non-fatal: without it logout revocation is not tracked)
	rdb, err := database.NewRedis(cfg.Redis)
	if err != nil {
		slog.Warn("Redis unavailable, running without token revocation", "error", err)
	}

	// Initialize layers
	catalogRepo := repository.NewCatalogRepository(db)
	userRepo := repository.NewUserRepository(db)
	catalogSvc := service.NewCatalogService(catalogRepo)
	authSvc := service.NewAuthService(userRepo, cfg.JWT.Secret, rdb)
	movieHandler := handler.NewMovieHandler(catalogSvc)
	personHandler := handler.NewPersonHandler(catalogSvc)
	userHandler := handler.NewUserHandler(authSvc)

	// Create Fiber app
	app := fiber.New(fiber.Config{
		AppName:      "Movie Catalog API",
		ServerHeader: "Movie-Catalog-API",
		ErrorHandler: func(c fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			slog.Error("unhandled error", "error", err, "status", code)
			return c.Status(code).JSON(handler.ErrorResponse{Error: true, Message: err.Error()})
		},
	})

	// Middleware
	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(cors.New())

	// Swagger docs
	swaggerYAML, err := os.ReadFile("docs/openapi.yaml")
	if err != nil {
		slog.Warn("openapi.yaml not found, swagger UI will be unavailable", "error", err)
	} else {
		handler.RegisterSwagger(app, swaggerYAML)
	}

	// Routes
	movies := app.Group("/movies")
	movies.Get("/search", movieHandler.SearchMovies)
	movies.Get("/data/:imdbID", movieHandler.GetMovie)

	app.Get("/people/:id", middleware.RequireAuth(authSvc.Verify), personHandler.GetPerson)

	user := app.Group("/user")
	user.Post("/register", userHandler.Register)
	user.Post("/login", userHandler.Login)
	user.Post("/refresh", userHandler.Refresh)
	user.Post("/logout", userHandler.Logout)
	user.Get("/:email/profile", middleware.OptionalAuth(authSvc.Verify), userHandler.GetProfile)
	user.Put("/:email/profile", middleware.RequireAuth(authSvc.Verify), userHandler.UpdateProfile)

	// Graceful shutdown
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan
		slog.Info("shutting down catalog API...")
		_ = app.Shutdown()
	}()

	// Start server
	addr := ":" + cfg.Port
	slog.Info("starting movie catalog API", "addr", addr)
	if err := app.Listen(addr); err != nil {
		slog.Error("server error", "error", err)
		os.Exit(1)
	}
}
