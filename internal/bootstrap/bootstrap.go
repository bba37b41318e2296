// Package bootstrap wires configuration, database, services and routes
// into a runnable application.
package bootstrap

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/educonnect/educonnect/internal/app/controllers"
	appMigrations "github.com/educonnect/educonnect/internal/app/migrations"
	"github.com/educonnect/educonnect/internal/app/repositories"
	appRoutes "github.com/educonnect/educonnect/internal/app/routes"
	"github.com/educonnect/educonnect/internal/app/services"
	"github.com/educonnect/educonnect/internal/config"
	"github.com/educonnect/educonnect/internal/db"
	"github.com/educonnect/educonnect/internal/middleware"
	"github.com/educonnect/educonnect/internal/pkg/auth"
	"github.com/educonnect/educonnect/internal/pkg/filestorage"
	"github.com/educonnect/educonnect/internal/pkg/helpers"
	"github.com/educonnect/educonnect/internal/pkg/logger"
	"github.com/educonnect/educonnect/internal/seed"
)

// Dependencies holds all the application dependencies
type Dependencies struct {
	AuthService    services.AuthService
	UserService    services.UserService
	SessionService services.SessionService
	BookingService services.BookingService
	ChatService    services.ChatService

	AuthController    *controllers.AuthController
	UserController    *controllers.UserController
	SessionController *controllers.SessionController
	BookingController *controllers.BookingController
	ChatController    *controllers.ChatController

	AuthMiddleware *middleware.AuthMiddleware
	Repos          *repositories.Repositories
	JWTService     *auth.JWTService
	FileStorage    *filestorage.LocalStorage
	Logger         zerolog.Logger
}

// LoadConfigAndSetupLogger loads configuration and initializes the logger
func LoadConfigAndSetupLogger() (*config.Config, zerolog.Logger, error) {
	configPath := filepath.Join("configs", "config.yaml")
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to load configuration")
		return nil, zerolog.Logger{}, err
	}

	logLevel := logger.LogLevel(strings.ToLower(cfg.Logging.Level))
	prettyLog := strings.ToLower(cfg.Logging.Format) == "text"

	logger.Configure(logger.Config{
		Level:  logLevel,
		Pretty: prettyLog,
	})

	lgr := log.Logger
	lgr.Info().Str("logLevel", string(logLevel)).Str("logFormat", cfg.Logging.Format).Msg("Logger configured")
	return cfg, lgr, nil
}

// SetupDatabase establishes the database connection, runs migrations and
// seeds default data
func SetupDatabase(cfg *config.Config, lgr zerolog.Logger) (*db.PostgresDB, error) {
	lgr.Info().Msg("Establishing database connection...")
	database, err := db.NewPostgresDB(cfg)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to connect to database")
		return nil, err
	}

	lgr.Info().Msg("Running database migrations...")
	migrator := appMigrations.NewMigrator(database.Pool)

	migrationsDir := "migrations"
	if _, err := os.Stat(migrationsDir); os.IsNotExist(err) {
		database.Close()
		return nil, fmt.Errorf("migrations directory not found at %s: %w", migrationsDir, err)
	}

	if err := migrator.MigrateFromDirectory(migrationsDir); err != nil {
		database.Close()
		return nil, fmt.Errorf("database migrations failed: %w", err)
	}
	lgr.Info().Msg("Database migrations applied")

	// Startup survives a seeding failure
	if err := seed.CreateDefaultData(context.Background(), database, lgr); err != nil {
		lgr.Error().Err(err).Msg("Failed to create default data, proceeding anyway")
	}

	return database, nil
}

// BuildDependencies initializes repositories, services and controllers
func BuildDependencies(cfg *config.Config, database *db.PostgresDB, lgr zerolog.Logger) (*Dependencies, error) {
	deps := &Dependencies{Logger: lgr}

	deps.Repos = repositories.NewRepositories(database)

	baseURL := "http://localhost:" + cfg.Server.Port
	var err error
	deps.FileStorage, err = filestorage.NewLocalStorage(cfg.Server.StoragePath, baseURL+"/uploads")
	if err != nil {
		return nil, fmt.Errorf("failed to initialize file storage: %w", err)
	}

	deps.JWTService = auth.NewJWTService(auth.JWTConfig{
		SecretKey:       cfg.JWT.Secret,
		AccessTokenExp:  helpers.ParseDuration(cfg.JWT.AccessTokenExpiration, 1*time.Hour),
		RefreshTokenExp: helpers.ParseDuration(cfg.JWT.RefreshTokenExpiration, 720*time.Hour),
		TokenIssuer:     cfg.JWT.Issuer,
	})

	deps.AuthService = services.NewAuthService(deps.Repos.UserRepository, deps.JWTService, lgr)
	deps.UserService = services.NewUserService(deps.Repos.UserRepository, deps.FileStorage, lgr)
	deps.SessionService = services.NewSessionService(deps.Repos.SessionRepository, lgr)
	deps.BookingService = services.NewBookingService(deps.Repos.BookingRepository, deps.Repos.SessionRepository, lgr)
	deps.ChatService = services.NewChatService(cfg.Chat, lgr)

	deps.AuthMiddleware = middleware.NewAuthMiddleware(deps.JWTService)

	deps.AuthController = controllers.NewAuthController(deps.AuthService, lgr)
	deps.UserController = controllers.NewUserController(deps.UserService, lgr)
	deps.SessionController = controllers.NewSessionController(deps.SessionService, deps.BookingService, lgr)
	deps.BookingController = controllers.NewBookingController(deps.BookingService, lgr)
	deps.ChatController = controllers.NewChatController(deps.ChatService, lgr)

	return deps, nil
}

// SetupRouter configures the Gin engine with middleware and routes
func SetupRouter(cfg *config.Config, deps *Dependencies, lgr zerolog.Logger) *gin.Engine {
	if strings.ToLower(cfg.Server.Mode) == "production" {
		gin.SetMode(gin.ReleaseMode)
	} else {
		gin.SetMode(gin.DebugMode)
	}

	router := gin.New()
	router.Use(middleware.RequestLogger(), middleware.CORS(), gin.Recovery())

	appRoutes.SetupSwagger(router)

	appRoutes.SetupRouter(router,
		deps.AuthController,
		deps.UserController,
		deps.SessionController,
		deps.BookingController,
		deps.ChatController,
		deps.AuthMiddleware,
	)

	return router
}
