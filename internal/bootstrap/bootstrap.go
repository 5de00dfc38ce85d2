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
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	appControllers "github.com/Sujith8257/hostel-ms-sub000/internal/app/controllers"
	appMigrations "github.com/Sujith8257/hostel-ms-sub000/internal/app/migrations"
	appRepos "github.com/Sujith8257/hostel-ms-sub000/internal/app/repositories"
	appRoutes "github.com/Sujith8257/hostel-ms-sub000/internal/app/routes"
	appServices "github.com/Sujith8257/hostel-ms-sub000/internal/app/services"
	"github.com/Sujith8257/hostel-ms-sub000/internal/config"
	"github.com/Sujith8257/hostel-ms-sub000/internal/db"
	appMiddleware "github.com/Sujith8257/hostel-ms-sub000/internal/middleware"
	pkgAuth "github.com/Sujith8257/hostel-ms-sub000/internal/pkg/auth"
	"github.com/Sujith8257/hostel-ms-sub000/internal/pkg/helpers"
	"github.com/Sujith8257/hostel-ms-sub000/internal/pkg/logger"
	"github.com/Sujith8257/hostel-ms-sub000/internal/seed"
)

// Dependencies holds all the application dependencies
type Dependencies struct {
	AuthService           appServices.AuthService
	RoomService           appServices.RoomService
	AdminService          appServices.AdminService
	MaintenanceService    appServices.MaintenanceService
	AuthController        *appControllers.AuthController
	RoomController        *appControllers.RoomController
	AdminController       *appControllers.AdminController
	MaintenanceController *appControllers.MaintenanceController
	AuthMiddleware        *appMiddleware.AuthMiddleware
	Repos                 *appRepos.Repositories
	JWTService            *pkgAuth.JWTService
	Logger                zerolog.Logger
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

	lgr := log.Logger
	lgr.Info().Str("logLevel", string(logLevel)).Str("logFormat", cfg.Logging.Format).Msg("Logger configured")
	return cfg, lgr, nil
}

// SetupDatabase establishes the database connection, runs migrations and
// seeds default data.
func SetupDatabase(cfg *config.Config, lgr zerolog.Logger) (*db.PostgresDB, error) {
	lgr.Info().Msg("Establishing database connection...")
	database, err := db.NewPostgresDB(cfg)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to connect to database")
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := database.Ping(ctx); err != nil {
		lgr.Error().Err(err).Msg("Failed to ping database")
		database.Close()
		return nil, err
	}
	lgr.Info().Msg("Database connection successfully established.")

	lgr.Info().Msg("Running database migrations...")
	migrator := appMigrations.NewMigrator(database.Pool)

	migrationsDir := "migrations"
	if _, err := os.Stat(migrationsDir); os.IsNotExist(err) {
		lgr.Error().Str("path", migrationsDir).Msg("Migrations directory not found")
		database.Close()
		return nil, fmt.Errorf("migrations directory not found at %s: %w", migrationsDir, err)
	}

	if err := migrator.MigrateFromDirectory(migrationsDir); err != nil {
		lgr.Error().Err(err).Msg("Database migration error")
		database.Close()
		return nil, fmt.Errorf("database migrations failed: %w", err)
	}

	lgr.Info().Msg("Database migrations successfully applied.")

	if err := seed.CreateDefaultData(context.Background(), database.Pool, cfg, lgr); err != nil {
		// Startup can proceed without seed data
		lgr.Error().Err(err).Msg("Failed to create default data, proceeding anyway...")
	}

	return database, nil
}

// BuildDependencies initializes application repositories, services, and controllers.
func BuildDependencies(cfg *config.Config, database *db.PostgresDB, lgr zerolog.Logger) (*Dependencies, error) {
	deps := &Dependencies{Logger: lgr}

	deps.Repos = appRepos.NewRepositories(database)

	deps.JWTService = pkgAuth.NewJWTService(pkgAuth.JWTConfig{
		SecretKey:       cfg.JWT.Secret,
		AccessTokenExp:  helpers.ParseDuration(cfg.JWT.AccessTokenExpiration, 1*time.Hour),
		RefreshTokenExp: helpers.ParseDuration(cfg.JWT.RefreshTokenExpiration, 720*time.Hour),
		TokenIssuer:     cfg.JWT.Issuer,
	})

	deps.AuthService = appServices.NewAuthService(
		deps.Repos.ProfileRepository,
		deps.Repos.TokenRepository,
		deps.JWTService,
		lgr,
	)

	deps.RoomService = appServices.NewRoomService(
		deps.Repos.RoomRepository,
		deps.Repos.AllotmentRepository,
		deps.Repos.WaitingListRepository,
		deps.Repos.StudentRepository,
		deps.Repos.BuildingRepository,
		lgr,
	)

	deps.AdminService = appServices.NewAdminService(
		deps.Repos.ProfileRepository,
		deps.Repos.StudentRepository,
		deps.Repos.BuildingRepository,
		deps.Repos.EntryLogRepository,
		deps.Repos.AlertRepository,
		deps.Repos.WaitingListRepository,
		deps.Repos.RoomRepository,
		deps.Repos.StaffAssignmentRepository,
		database,
		lgr,
	)

	deps.MaintenanceService = appServices.NewMaintenanceService(
		deps.Repos.MaintenanceRepository,
		deps.Repos.BuildingRepository,
		lgr,
	)

	deps.AuthMiddleware = appMiddleware.NewAuthMiddleware(
		deps.JWTService,
		deps.Repos.ProfileRepository,
		deps.Repos.StaffAssignmentRepository,
	)

	deps.AuthController = appControllers.NewAuthController(deps.AuthService, lgr)
	deps.RoomController = appControllers.NewRoomController(deps.RoomService, lgr)
	deps.AdminController = appControllers.NewAdminController(deps.AdminService, lgr)
	deps.MaintenanceController = appControllers.NewMaintenanceController(deps.MaintenanceService, lgr)

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

	router := gin.Default()

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json"), ginSwagger.DefaultModelsExpandDepth(1)))

	appRoutes.SetupRouter(router,
		deps.AuthController,
		deps.RoomController,
		deps.AdminController,
		deps.MaintenanceController,
		deps.AuthMiddleware,
	)

	return router
}
