package bootstrap

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	appAuth "github.com/yigit/unicatalog/internal/app/auth"
	"github.com/yigit/unicatalog/internal/app/cascade"
	appControllers "github.com/yigit/unicatalog/internal/app/controllers"
	appMigrations "github.com/yigit/unicatalog/internal/app/migrations"
	appRepos "github.com/yigit/unicatalog/internal/app/repositories"
	"github.com/yigit/unicatalog/internal/app/resolvers"
	appRoutes "github.com/yigit/unicatalog/internal/app/routes"
	appServices "github.com/yigit/unicatalog/internal/app/services"
	"github.com/yigit/unicatalog/internal/config"
	"github.com/yigit/unicatalog/internal/db"
	appMiddleware "github.com/yigit/unicatalog/internal/middleware"
	pkgAuth "github.com/yigit/unicatalog/internal/pkg/auth"
	"github.com/yigit/unicatalog/internal/pkg/logger"
	"github.com/yigit/unicatalog/internal/pkg/metrics"
)

// DefaultConfigPath is where the API and the importer look for their
// configuration file.
var DefaultConfigPath = filepath.Join("configs", "config.yaml")

// Dependencies holds all the application dependencies
type Dependencies struct {
	Repos          *appRepos.Repositories
	Graph          *cascade.Registry
	Services       *appServices.Services
	Controllers    appRoutes.Controllers
	Resolvers      *resolvers.Resolvers
	JWTService     *pkgAuth.JWTService
	AuthzService   *appAuth.AuthorizationService
	AuthMiddleware *appMiddleware.AuthMiddleware
	Metrics        *metrics.Metrics
	Logger         zerolog.Logger
}

// LoadConfigAndSetupLogger loads configuration and initializes the logger.
func LoadConfigAndSetupLogger(configPath string) (*config.Config, zerolog.Logger, error) {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to load configuration")
		return nil, zerolog.Logger{}, err
	}

	logger.Configure(logger.Config{
		Level:  cfg.Logging.Level,
		Pretty: cfg.PrettyLogs(),
	})

	lgr := logger.Get()
	lgr.Info().Str("logLevel", cfg.Logging.Level).Str("logFormat", cfg.Logging.Format).Msg("Logger configured")
	return cfg, lgr, nil
}

// SetupDatabase opens the configured store and applies pending migrations.
func SetupDatabase(cfg *config.Config, lgr zerolog.Logger) (*db.DB, error) {
	lgr.Info().Str("driver", cfg.Database.Driver).Msg("Establishing database connection...")
	database, err := db.Open(cfg)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to connect to database")
		return nil, err
	}
	lgr.Info().Msg("Database connection successfully established.")

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	lgr.Info().Msg("Running database migrations...")
	if err := appMigrations.NewMigrator(database, lgr).Migrate(ctx); err != nil {
		lgr.Error().Err(err).Msg("Database migration error")
		database.Close()
		return nil, fmt.Errorf("database migrations failed: %w", err)
	}
	lgr.Info().Msg("Database migrations successfully applied.")

	return database, nil
}

// BuildDependencies initializes repositories, the cascade graph, services
// and controllers.
func BuildDependencies(cfg *config.Config, database *db.DB, lgr zerolog.Logger) *Dependencies {
	deps := &Dependencies{Logger: lgr, Metrics: metrics.New()}

	deps.Repos = appRepos.NewRepositories(database)
	deps.Graph = cascade.NewGraph(deps.Repos, cfg.Catalog.CascadeConcurrency, deps.Metrics, logger.Component("cascade"))
	deps.Services = appServices.NewServices(deps.Repos, deps.Graph)
	deps.Resolvers = resolvers.New(deps.Services)

	deps.JWTService = pkgAuth.NewJWTService(pkgAuth.JWTConfig{
		SecretKey:   cfg.Auth.Secret,
		TokenIssuer: cfg.Auth.Issuer,
		TokenTTL:    cfg.TokenTTL(),
	})
	deps.AuthzService = appAuth.NewAuthorizationService(deps.JWTService)
	deps.AuthMiddleware = appMiddleware.NewAuthMiddleware(deps.AuthzService)

	pageSize := cfg.Catalog.PageSize
	deps.Controllers = appRoutes.Controllers{
		Course:      appControllers.NewCourseController(deps.Services.Courses, pageSize),
		Catalog:     appControllers.NewCatalogController(deps.Services.Catalogs, pageSize),
		Modality:    appControllers.NewModalityController(deps.Services.Modalities, pageSize),
		Block:       appControllers.NewBlockController(deps.Services.Blocks, pageSize),
		Requirement: appControllers.NewRequirementController(deps.Services.Requirements, pageSize),
		Discipline:  appControllers.NewDisciplineController(deps.Services.Disciplines, pageSize),
		Offering:    appControllers.NewOfferingController(deps.Services.Offerings, pageSize),
	}

	return deps
}

// SetupRouter configures the Gin engine with middleware and routes.
func SetupRouter(cfg *config.Config, deps *Dependencies, lgr zerolog.Logger) *gin.Engine {
	if strings.ToLower(cfg.Server.Mode) == "production" {
		gin.SetMode(gin.ReleaseMode)
		lgr.Info().Msg("Setting Gin mode to release")
	}

	router := gin.New()
	router.Use(gin.Recovery(), appMiddleware.RequestLogger(), appMiddleware.Metrics(deps.Metrics))

	appRoutes.SetupRouter(router, deps.Controllers, deps.Resolvers, deps.AuthMiddleware)

	if cfg.Metrics.Enabled {
		router.GET(cfg.Metrics.Path, gin.WrapH(deps.Metrics.Handler(lgr)))
		lgr.Info().Str("path", cfg.Metrics.Path).Msg("Metrics endpoint enabled")
	}

	return router
}
