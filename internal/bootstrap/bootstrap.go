package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/Ayesha-Rimione/hackmate/docs" // Import generated swagger docs
	appControllers "github.com/Ayesha-Rimione/hackmate/internal/app/controllers"
	appMigrations "github.com/Ayesha-Rimione/hackmate/internal/app/migrations"
	appRepos "github.com/Ayesha-Rimione/hackmate/internal/app/repositories"
	appRoutes "github.com/Ayesha-Rimione/hackmate/internal/app/routes"
	appServices "github.com/Ayesha-Rimione/hackmate/internal/app/services"
	"github.com/Ayesha-Rimione/hackmate/internal/config"
	"github.com/Ayesha-Rimione/hackmate/internal/db"
	appMiddleware "github.com/Ayesha-Rimione/hackmate/internal/middleware"
	pkgAuth "github.com/Ayesha-Rimione/hackmate/internal/pkg/auth"
	"github.com/Ayesha-Rimione/hackmate/internal/pkg/helpers"
	"github.com/Ayesha-Rimione/hackmate/internal/pkg/logger"
)

// Dependencies holds all the application dependencies
type Dependencies struct {
	AuthService            appServices.AuthService
	UserService            appServices.UserService
	SkillService           appServices.SkillService
	EventService           appServices.EventService
	TeamService            appServices.TeamService
	MessagingService       appServices.MessagingService
	NotificationService    appServices.NotificationService
	AuthController         *appControllers.AuthController
	UserController         *appControllers.UserController
	SkillController        *appControllers.SkillController
	EventController        *appControllers.EventController
	TeamController         *appControllers.TeamController
	MessagingController    *appControllers.MessagingController
	NotificationController *appControllers.NotificationController
	AuthMiddleware         *appMiddleware.AuthMiddleware
	Repos                  *appRepos.Repositories
	JWTService             *pkgAuth.JWTService
	Logger                 zerolog.Logger
}

// LoadConfigAndSetupLogger loads configuration and initializes the logger.
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

	lgr := log.Logger // Get the configured global logger
	lgr.Info().Str("logLevel", string(logLevel)).Str("logFormat", cfg.Logging.Format).Msg("Logger configured")
	return cfg, lgr, nil
}

// SetupDatabase establishes the database connection and runs migrations.
func SetupDatabase(cfg *config.Config, lgr zerolog.Logger) (*pgxpool.Pool, error) {
	lgr.Info().Msg("Establishing database connection...")
	database, err := db.NewPostgresDB(cfg)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to connect to database")
		return nil, err
	}
	dbPool := database.Pool

	// Test connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := dbPool.Ping(ctx); err != nil {
		lgr.Error().Err(err).Msg("Failed to ping database")
		dbPool.Close()
		return nil, err
	}
	lgr.Info().Msg("Database connection successfully established.")

	// Run migrations
	lgr.Info().Msg("Running database migrations...")
	migrator := appMigrations.NewMigrator(dbPool)

	migrationsDir := "migrations"
	if _, err := os.Stat(migrationsDir); os.IsNotExist(err) {
		lgr.Error().Str("path", migrationsDir).Msg("Migrations directory not found")
		return nil, fmt.Errorf("migrations directory not found at %s: %w", migrationsDir, err)
	}

	if err := migrator.MigrateFromDirectory(migrationsDir); err != nil {
		lgr.Error().Err(err).Msg("Database migration error")
		return nil, fmt.Errorf("database migrations failed: %w", err)
	}

	lgr.Info().Msg("Database migrations successfully applied.")

	return dbPool, nil
}

// BuildDependencies initializes application repositories, services, and controllers.
func BuildDependencies(cfg *config.Config, dbPool *pgxpool.Pool, lgr zerolog.Logger) (*Dependencies, error) {
	deps := &Dependencies{Logger: lgr}

	deps.Repos = appRepos.NewRepositories(dbPool)

	deps.JWTService = pkgAuth.NewJWTService(pkgAuth.JWTConfig{
		SecretKey:       cfg.JWT.Secret,
		AccessTokenExp:  helpers.ParseDuration(cfg.JWT.AccessTokenExpiration, 1*time.Hour),
		RefreshTokenExp: helpers.ParseDuration(cfg.JWT.RefreshTokenExpiration, 720*time.Hour),
		TokenIssuer:     cfg.JWT.Issuer,
	})

	invitationExpiry := helpers.ParseDuration(cfg.Invitations.DefaultExpiry, 168*time.Hour)

	// Initialize services
	deps.AuthService = appServices.NewAuthService(deps.Repos.UserRepository, deps.JWTService, lgr)
	deps.UserService = appServices.NewUserService(deps.Repos.UserRepository, lgr)
	deps.SkillService = appServices.NewSkillService(deps.Repos.SkillRepository, lgr)
	deps.EventService = appServices.NewEventService(deps.Repos.EventRepository, deps.Repos.UserRepository, lgr)
	deps.TeamService = appServices.NewTeamService(
		deps.Repos.TeamRepository,
		deps.Repos.JoinRequestRepository,
		deps.Repos.InvitationRepository,
		deps.Repos.NotificationRepository,
		deps.Repos.UserRepository,
		invitationExpiry,
		lgr,
	)
	deps.MessagingService = appServices.NewMessagingService(
		deps.Repos.MessagingRepository,
		deps.Repos.UserRepository,
		deps.Repos.NotificationRepository,
		lgr,
	)
	deps.NotificationService = appServices.NewNotificationService(deps.Repos.NotificationRepository, lgr)

	deps.AuthMiddleware = appMiddleware.NewAuthMiddleware(deps.JWTService)

	// Initialize controllers
	deps.AuthController = appControllers.NewAuthController(deps.AuthService)
	deps.UserController = appControllers.NewUserController(deps.UserService)
	deps.SkillController = appControllers.NewSkillController(deps.SkillService)
	deps.EventController = appControllers.NewEventController(deps.EventService)
	deps.TeamController = appControllers.NewTeamController(deps.TeamService)
	deps.MessagingController = appControllers.NewMessagingController(deps.MessagingService)
	deps.NotificationController = appControllers.NewNotificationController(deps.NotificationService)

	return deps, nil
}

// SetupRouter configures the Gin engine with middleware and routes.
func SetupRouter(cfg *config.Config, deps *Dependencies, lgr zerolog.Logger) *gin.Engine {
	if strings.ToLower(cfg.Server.Mode) == "production" {
		gin.SetMode(gin.ReleaseMode)
		lgr.Info().Msg("Setting Gin mode to release")
	} else {
		gin.SetMode(gin.DebugMode)
		lgr.Info().Msg("Setting Gin mode to debug")
	}

	router := gin.New()
	router.Use(appMiddleware.RequestLogger(lgr))
	router.Use(appMiddleware.CORS())
	router.Use(gin.Recovery())

	// Setup Swagger
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json"), ginSwagger.DefaultModelsExpandDepth(1)))

	// Setup API routes using the dependencies
	appRoutes.SetupRouter(router,
		deps.AuthController,
		deps.UserController,
		deps.SkillController,
		deps.EventController,
		deps.TeamController,
		deps.MessagingController,
		deps.NotificationController,
		deps.AuthMiddleware,
	)

	// Test endpoint
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong", "status": "success"})
	})

	return router
}
