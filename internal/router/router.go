package router

import (
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/cinelist/backend/internal/handlers"
	"github.com/cinelist/backend/internal/middleware"
	"github.com/cinelist/backend/internal/models"
	"github.com/cinelist/backend/internal/notify"
	"github.com/cinelist/backend/internal/repositories"
	"github.com/cinelist/backend/pkg/config"
	"github.com/cinelist/backend/pkg/logger"
	"github.com/cinelist/backend/pkg/tmdb"
)

// SetupMiddleware attaches the global middleware chain
func SetupMiddleware(e *echo.Echo) {
	e.Use(echomw.Recover())
	e.Use(echomw.CORS())
	e.Use(echomw.RequestID())
}

// SetupRouter wires repositories, handlers and routes onto the echo instance
func SetupRouter(e *echo.Echo, db *config.DB, cfg *config.Config) error {
	if err := db.Postgres.AutoMigrate(
		&models.User{},
		&models.FriendRequest{},
		&models.Movie{},
		&models.BorrowRequest{},
		&models.Genre{},
		&models.UserPreferences{},
	); err != nil {
		return err
	}
	logger.Info("Database migration complete")

	tmdbClient, err := tmdb.New(cfg.TMDBAPIKey, cfg.TMDBBaseURL, cfg.TMDBLanguage)
	if err != nil {
		return err
	}

	userRepo := repositories.NewPostgresUserRepository(db.Postgres)
	friendRequestRepo := repositories.NewPostgresFriendRequestRepository(db.Postgres)
	movieRepo := repositories.NewPostgresMovieRepository(db.Postgres)
	borrowRepo := repositories.NewPostgresBorrowRequestRepository(db.Postgres)
	genreRepo := repositories.NewPostgresGenreRepository(db.Postgres)
	preferencesRepo := repositories.NewPostgresPreferencesRepository(db.Postgres)
	messageRepo := repositories.NewMongoMessageRepository(db.Mongo.Database("cinelist"))

	notifications := notify.NewService(messageRepo, notify.LogNotifier{}, cfg.MailFrom)

	authHandler := handlers.NewAuthHandler(userRepo, notifications, cfg.JWTSecret)
	userHandler := handlers.NewUserHandler(userRepo, preferencesRepo)
	friendshipHandler := handlers.NewFriendshipHandler(friendRequestRepo, userRepo, notifications)
	libraryHandler := handlers.NewLibraryHandler(movieRepo, userRepo, borrowRepo, genreRepo, tmdbClient)
	borrowHandler := handlers.NewBorrowHandler(borrowRepo, movieRepo, userRepo, notifications)
	dashboardHandler := handlers.NewDashboardHandler(movieRepo, friendRequestRepo, borrowRepo)
	messageHandler := handlers.NewMessageHandler(messageRepo)
	preferencesHandler := handlers.NewPreferencesHandler(preferencesRepo)

	e.GET("/health", handlers.Health)

	authGroup := e.Group("/auth")
	authHandler.RegisterAuthRoutes(authGroup)

	api := e.Group("/api")
	api.Use(middleware.JWTAuthMiddleware(cfg.JWTSecret))

	userHandler.RegisterProfileRoutes(api)
	api.GET("/users/search", userHandler.SearchUsers)
	friendshipHandler.RegisterFriendshipRoutes(api)
	libraryHandler.RegisterLibraryRoutes(api)
	borrowHandler.RegisterBorrowRoutes(api)
	dashboardHandler.RegisterDashboardRoutes(api)
	messageHandler.RegisterMessageRoutes(api)
	preferencesHandler.RegisterPreferencesRoutes(api)

	return nil
}
