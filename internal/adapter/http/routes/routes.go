package routes

import (
	"context"
	"fmt"

	_ "estimador/docs"
	"estimador/internal/adapter/http/handlers"
	"estimador/internal/adapter/http/middleware"
	"estimador/internal/adapter/persistence/repository"
	"estimador/internal/config"
	"estimador/internal/infrastructure/database"
	"estimador/internal/infrastructure/export"
	"estimador/internal/infrastructure/security"
	"estimador/internal/usecase"
	"estimador/internal/usecase/interfaces"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"
)

// Dependencies are the pieces the router mounts.
type Dependencies struct {
	Logger        *zap.Logger
	Sessions      usecase.ISessionUseCase
	Auth          *handlers.AuthHandler
	Users         *handlers.UserHandler
	Templates     *handlers.TemplateHandler
	Estimates     *handlers.EstimateHandler
	Reports       *handlers.ReportHandler
	EnableSwagger bool
}

type repositories struct {
	users     interfaces.IUserRepository
	templates interfaces.ITemplateRepository
	estimates interfaces.IEstimateRepository
}

// Run wires storage, use cases and handlers, then starts the server
func Run(ctx context.Context, cfg *config.Config, log *zap.Logger) error {
	repos, err := openRepositories(ctx, cfg, log)
	if err != nil {
		return err
	}

	tokens, err := security.NewJWTIssuer(cfg.Auth.JWTSecret, cfg.Auth.Issuer, cfg.Auth.TokenTTL())
	if err != nil {
		return fmt.Errorf("failed to configure sessions: %w", err)
	}
	hasher := security.NewBcryptHasher(0)

	userUseCase := usecase.NewUserUseCase(repos.users, hasher, log)
	templateUseCase := usecase.NewTemplateUseCase(repos.templates, log)
	estimateUseCase := usecase.NewEstimateUseCase(repos.estimates, repos.templates, log)
	reportUseCase := usecase.NewReportUseCase(repos.estimates, []interfaces.IReportExporter{
		export.NewExcelExporter(),
		export.NewPDFExporter(),
	}, log)
	sessionUseCase := usecase.NewSessionUseCase(repos.users, hasher, tokens, log)

	if cfg.Bootstrap.AdminPassword != "" {
		if _, err := userUseCase.EnsureAdmin(ctx, cfg.Bootstrap.AdminUsername, cfg.Bootstrap.AdminPassword); err != nil {
			return fmt.Errorf("failed to bootstrap admin: %w", err)
		}
	}

	router := NewRouter(Dependencies{
		Logger:        log,
		Sessions:      sessionUseCase,
		Auth:          handlers.NewAuthHandler(sessionUseCase),
		Users:         handlers.NewUserHandler(userUseCase),
		Templates:     handlers.NewTemplateHandler(templateUseCase),
		Estimates:     handlers.NewEstimateHandler(estimateUseCase),
		Reports:       handlers.NewReportHandler(reportUseCase),
		EnableSwagger: cfg.Server.EnableSwagger,
	})

	log.Info("[http] listening", zap.String("addr", cfg.App.Addr()), zap.String("storage", cfg.Storage.Driver))
	if err := router.Run(cfg.App.Addr()); err != nil {
		return fmt.Errorf("failed to startup the application: %w", err)
	}
	return nil
}

// NewRouter mounts middlewares and every route group on a fresh engine.
func NewRouter(deps Dependencies) *gin.Engine {
	router := gin.New()
	router.Use(middleware.RequestLogger(deps.Logger))
	router.Use(middleware.Recovery(deps.Logger))

	if deps.EnableSwagger {
		router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	v1 := router.Group("/v1")
	addPingRoutes(v1)
	addEstimatorRoutes(v1, deps)

	return router
}

func openRepositories(ctx context.Context, cfg *config.Config, log *zap.Logger) (repositories, error) {
	switch cfg.Storage.Driver {
	case config.StorageSQLite:
		db, err := database.ConnectSQLite(cfg.Storage.SQLitePath)
		if err != nil {
			return repositories{}, err
		}
		if err := repository.AutoMigrateGorm(db); err != nil {
			return repositories{}, fmt.Errorf("failed to migrate sqlite schema: %w", err)
		}
		log.Info("[storage] sqlite ready", zap.String("path", cfg.Storage.SQLitePath))
		return repositories{
			users:     repository.NewUserGormRepository(db),
			templates: repository.NewTemplateGormRepository(db),
			estimates: repository.NewEstimateGormRepository(db),
		}, nil
	default:
		ddb, err := database.ConnectDynamoDB(ctx, cfg.DynamoDB)
		if err != nil {
			return repositories{}, err
		}
		log.Info("[storage] dynamodb ready",
			zap.String("region", cfg.DynamoDB.Region),
			zap.String("endpoint", cfg.DynamoDB.Endpoint),
		)
		return repositories{
			users:     repository.NewUserDynamoRepository(ddb, cfg.DynamoDB.UsersTable),
			templates: repository.NewTemplateDynamoRepository(ddb, cfg.DynamoDB.TemplatesTable),
			estimates: repository.NewEstimateDynamoRepository(ddb, cfg.DynamoDB.EstimatesTable),
		}, nil
	}
}
