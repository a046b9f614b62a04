package bootstrap

import (
	"context"
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	appControllers "github.com/vdab/fietsen/internal/app/controllers"
	appMigrations "github.com/vdab/fietsen/internal/app/migrations"
	appRepos "github.com/vdab/fietsen/internal/app/repositories"
	appRoutes "github.com/vdab/fietsen/internal/app/routes"
	appServices "github.com/vdab/fietsen/internal/app/services"
	"github.com/vdab/fietsen/internal/config"
	"github.com/vdab/fietsen/internal/db"
	appMiddleware "github.com/vdab/fietsen/internal/middleware"
	"github.com/vdab/fietsen/internal/pkg/logger"
	"github.com/vdab/fietsen/internal/pkg/metrics"
	"github.com/vdab/fietsen/internal/seed"
)

// Dependencies holds all the application dependencies
type Dependencies struct {
	Repos    *appRepos.Repositories
	Services *appServices.Services
	Metrics  *metrics.Metrics

	InstructorController     *appControllers.InstructorController
	CampusController         *appControllers.CampusController
	ResponsibilityController *appControllers.ResponsibilityController
	CourseController         *appControllers.CourseController

	Logger zerolog.Logger
}

// LoadConfigAndSetupLogger loads configuration and initializes the logger.
func LoadConfigAndSetupLogger(configPath string) (*config.Config, zerolog.Logger, error) {
	if configPath == "" {
		configPath = config.DefaultPath
	}
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logger.Error().Err(err).Str("path", configPath).Msg("Failed to load configuration")
		return nil, zerolog.Logger{}, err
	}

	logLevel := logger.ParseLevel(cfg.Logging.Level)
	lgr := logger.Configure(logger.Config{
		Level:  logLevel,
		Pretty: strings.ToLower(cfg.Logging.Format) == "text",
	})
	lgr.Info().Str("logLevel", string(logLevel)).Str("logFormat", cfg.Logging.Format).Msg("Logger configured")
	return cfg, lgr, nil
}

// ConnectDatabase establishes the database connection pool.
func ConnectDatabase(cfg *config.Config, lgr zerolog.Logger) (*db.PostgresDB, error) {
	lgr.Info().Str("host", cfg.Database.Host).Str("dbname", cfg.Database.DBName).Msg("Establishing database connection...")
	database, err := db.NewPostgresDB(cfg)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to connect to database")
		return nil, err
	}
	lgr.Info().Msg("Database connection successfully established.")
	return database, nil
}

// RunMigrations applies the embedded schema migrations.
func RunMigrations(ctx context.Context, database *db.PostgresDB, lgr zerolog.Logger) error {
	lgr.Info().Msg("Running database migrations...")
	if err := appMigrations.NewMigrator(database.Pool).Migrate(ctx, appMigrations.Files()); err != nil {
		lgr.Error().Err(err).Msg("Database migration error")
		return fmt.Errorf("database migrations failed: %w", err)
	}
	lgr.Info().Msg("Database migrations successfully applied.")
	return nil
}

// SetupDatabase connects, migrates and, when enabled, seeds the default data.
func SetupDatabase(ctx context.Context, cfg *config.Config, lgr zerolog.Logger) (*db.PostgresDB, error) {
	database, err := ConnectDatabase(cfg, lgr)
	if err != nil {
		return nil, err
	}

	if err := RunMigrations(ctx, database, lgr); err != nil {
		database.Close()
		return nil, err
	}

	if cfg.Seed.Enabled {
		if err := seed.CreateDefaultData(ctx, appRepos.NewRepositories(database), lgr); err != nil {
			// startup continues without the default data
			lgr.Error().Err(err).Msg("Failed to create default data, proceeding anyway...")
		}
	}

	return database, nil
}

// BuildDependencies initializes application services and controllers on repos.
func BuildDependencies(repos *appRepos.Repositories, lgr zerolog.Logger) *Dependencies {
	deps := &Dependencies{
		Repos:   repos,
		Metrics: metrics.New(),
		Logger:  lgr,
	}

	deps.Services = appServices.NewServices(repos, deps.Metrics)

	deps.InstructorController = appControllers.NewInstructorController(deps.Services.InstructorService)
	deps.CampusController = appControllers.NewCampusController(deps.Services.CampusService)
	deps.ResponsibilityController = appControllers.NewResponsibilityController(deps.Services.ResponsibilityService)
	deps.CourseController = appControllers.NewCourseController(deps.Services.CourseService)

	return deps
}

// SetupRouter configures the Gin engine with middleware and routes.
func SetupRouter(cfg *config.Config, deps *Dependencies, lgr zerolog.Logger) *gin.Engine {
	if strings.ToLower(cfg.Server.Mode) == "production" {
		gin.SetMode(gin.ReleaseMode)
		lgr.Info().Msg("Setting Gin mode to release")
	} else if gin.Mode() != gin.TestMode {
		gin.SetMode(gin.DebugMode)
		lgr.Info().Msg("Setting Gin mode to debug")
	}

	router := gin.New()
	router.Use(
		gin.Recovery(),
		appMiddleware.RequestID(),
		appMiddleware.AccessLog(),
		appMiddleware.Metrics(deps.Metrics),
	)

	appRoutes.SetupRouter(router, appRoutes.Controllers{
		Instructor:     deps.InstructorController,
		Campus:         deps.CampusController,
		Responsibility: deps.ResponsibilityController,
		Course:         deps.CourseController,
	})

	if cfg.Metrics.Enabled {
		router.GET(cfg.Metrics.Path, gin.WrapH(deps.Metrics.Handler()))
		lgr.Info().Str("path", cfg.Metrics.Path).Msg("Metrics endpoint enabled")
	}

	return router
}
