// Package bootstrap wires configuration, database, storage, and the
// HTTP layer together at startup.
package bootstrap

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	appControllers "github.com/emirkaya/staffdesk/internal/app/controllers"
	appMigrations "github.com/emirkaya/staffdesk/internal/app/migrations"
	appRepos "github.com/emirkaya/staffdesk/internal/app/repositories"
	appRoutes "github.com/emirkaya/staffdesk/internal/app/routes"
	appServices "github.com/emirkaya/staffdesk/internal/app/services"
	"github.com/emirkaya/staffdesk/internal/config"
	"github.com/emirkaya/staffdesk/internal/db"
	appMiddleware "github.com/emirkaya/staffdesk/internal/middleware"
	pkgAuth "github.com/emirkaya/staffdesk/internal/pkg/auth"
	"github.com/emirkaya/staffdesk/internal/pkg/filestorage"
	"github.com/emirkaya/staffdesk/internal/pkg/helpers"
	"github.com/emirkaya/staffdesk/internal/pkg/logger"
	"github.com/emirkaya/staffdesk/internal/seed"
)

// Dependencies holds all the application dependencies
type Dependencies struct {
	AuthService        appServices.AuthService
	EmployeeService    appServices.EmployeeService
	AuthController     *appControllers.AuthController
	EmployeeController *appControllers.EmployeeController
	AuthMiddleware     *appMiddleware.AuthMiddleware
	Repos              *appRepos.Repositories
	JWTService         *pkgAuth.JWTService
	FileStorage        filestorage.FileStorage
	Logger             zerolog.Logger
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
	prettyLog := strings.ToLower(cfg.Logging.Format) == "console"

	logger.Configure(logger.Config{
		Level:  logLevel,
		Pretty: prettyLog,
	})

	lgr := log.Logger
	lgr.Info().Str("logLevel", string(logLevel)).Str("logFormat", cfg.Logging.Format).Msg("Logger configured")
	return cfg, lgr, nil
}

// SetupDatabase establishes the database connection, runs migrations,
// and seeds the admin credential.
func SetupDatabase(cfg *config.Config, lgr zerolog.Logger) (*pgxpool.Pool, error) {
	lgr.Info().Msg("Establishing database connection...")
	database, err := db.NewPostgresDB(cfg)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to connect to database")
		return nil, err
	}
	dbPool := database.Pool

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := dbPool.Ping(ctx); err != nil {
		lgr.Error().Err(err).Msg("Failed to ping database")
		dbPool.Close()
		return nil, err
	}
	lgr.Info().Msg("Database connection successfully established.")

	lgr.Info().Msg("Running database migrations...")
	migrator := appMigrations.NewMigrator(dbPool)

	migrationsDir := "migrations"
	if _, err := os.Stat(migrationsDir); os.IsNotExist(err) {
		lgr.Error().Str("path", migrationsDir).Msg("Migrations directory not found")
		dbPool.Close()
		return nil, fmt.Errorf("migrations directory not found at %s: %w", migrationsDir, err)
	}

	if err := migrator.MigrateFromDirectory(migrationsDir); err != nil {
		lgr.Error().Err(err).Msg("Database migration error")
		dbPool.Close()
		return nil, fmt.Errorf("database migrations failed: %w", err)
	}
	lgr.Info().Msg("Database migrations successfully applied.")

	if err := seed.EnsureAdminCredential(context.Background(), dbPool, cfg, lgr); err != nil {
		// Seeding failure is not fatal; an operator can still create
		// the credential out of band.
		lgr.Error().Err(err).Msg("Failed to seed admin credential, proceeding anyway...")
	}

	return dbPool, nil
}

// buildFileStorage selects the storage backend from configuration.
func buildFileStorage(cfg *config.Config, lgr zerolog.Logger) (filestorage.FileStorage, error) {
	switch cfg.Storage.Driver {
	case "s3":
		loadCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		awsCfg, err := awsconfig.LoadDefaultConfig(loadCtx,
			awsconfig.WithRegion(cfg.Storage.S3.Region),
		)
		if err != nil {
			return nil, fmt.Errorf("failed to load AWS configuration: %w", err)
		}

		client := s3.NewFromConfig(awsCfg)
		storage, err := filestorage.NewS3Storage(client, cfg.Storage.S3.Bucket, cfg.Storage.S3.KeyPrefix, cfg.Storage.S3.BaseURL)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize s3 storage: %w", err)
		}
		lgr.Info().Str("bucket", cfg.Storage.S3.Bucket).Msg("S3 file storage configured")
		return storage, nil

	default:
		baseURL := "http://localhost:" + cfg.Server.Port + "/uploads"
		storage, err := filestorage.NewLocalStorage(cfg.Server.StoragePath, baseURL)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize local storage: %w", err)
		}
		lgr.Info().Str("path", cfg.Server.StoragePath).Msg("Local file storage configured")
		return storage, nil
	}
}

// BuildDependencies initializes application repositories, services, and controllers.
func BuildDependencies(cfg *config.Config, dbPool *pgxpool.Pool, lgr zerolog.Logger) (*Dependencies, error) {
	deps := &Dependencies{Logger: lgr}

	deps.Repos = appRepos.NewRepositories(dbPool)

	var err error
	deps.FileStorage, err = buildFileStorage(cfg, lgr)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to initialize file storage")
		return nil, err
	}

	deps.JWTService = pkgAuth.NewJWTService(pkgAuth.JWTConfig{
		SecretKey:      cfg.JWT.Secret,
		AccessTokenExp: helpers.ParseDuration(cfg.JWT.AccessTokenExpiration, 1*time.Hour),
		TokenIssuer:    cfg.JWT.Issuer,
	})

	deps.AuthService = appServices.NewAuthService(deps.Repos.CredentialRepository, deps.JWTService, lgr)
	deps.EmployeeService = appServices.NewEmployeeService(deps.Repos.EmployeeRepository, deps.FileStorage, lgr)

	deps.AuthMiddleware = appMiddleware.NewAuthMiddleware(deps.JWTService)

	deps.AuthController = appControllers.NewAuthController(deps.AuthService, lgr)
	deps.EmployeeController = appControllers.NewEmployeeController(deps.EmployeeService, deps.FileStorage, lgr)

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
	router.Use(appMiddleware.CORS())

	appRoutes.SetupRouter(router,
		deps.AuthController,
		deps.EmployeeController,
		deps.AuthMiddleware,
	)

	return router
}
