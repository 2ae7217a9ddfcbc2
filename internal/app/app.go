package app

import (
	"context"
	"fmt"
	"time"

	"github.com/dsaidinesh/influencerflow/database"
	"github.com/dsaidinesh/influencerflow/internal/config"
	"github.com/dsaidinesh/influencerflow/internal/embeddings"
	"github.com/dsaidinesh/influencerflow/internal/handlers"
	"github.com/dsaidinesh/influencerflow/internal/logger"
	"github.com/dsaidinesh/influencerflow/internal/middleware"
	"github.com/dsaidinesh/influencerflow/internal/repositories"
	"github.com/dsaidinesh/influencerflow/internal/routes"
	"github.com/dsaidinesh/influencerflow/internal/services"
	"github.com/dsaidinesh/influencerflow/internal/validator"
	"github.com/dsaidinesh/influencerflow/internal/workers"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func Run() {
	config.LoadConfig()
	cfg := config.AppConfig

	logger.Init(cfg.Server.Env)
	logger.Info("Logger initialized", "env", cfg.Server.Env)

	logger.Info("Connecting to database...")
	gormDB, err := gorm.Open(postgres.Open(cfg.Database.DSN), &gorm.Config{})
	if err != nil {
		logger.Fatal("Failed to connect to GORM", "error", err)
	}
	sqlDB, err := gormDB.DB()
	if err != nil {
		logger.Fatal("Failed to get *sql.DB from GORM", "error", err)
	}
	if err = sqlDB.Ping(); err != nil {
		logger.Fatal("Database unavailable", "error", err)
	}
	logger.Info("Database connected")

	if err := database.AutoMigrate(gormDB); err != nil {
		logger.Fatal("Failed to migrate database schema", "error", err)
	}

	embedder := buildEmbedder(cfg)
	ginRouter := setupRouterWith(cfg, gormDB, embedder)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	startWorkers(ctx, cfg, gormDB, embedder)

	address := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	logger.Info(fmt.Sprintf("Server starting on %s", address))
	if err := ginRouter.Run(address); err != nil {
		logger.Fatal("Server startup error", "error", err)
	}
}

func SetupRouter(cfg *config.Config, gormDB *gorm.DB) *gin.Engine {
	return setupRouterWith(cfg, gormDB, buildEmbedder(cfg))
}

func setupRouterWith(cfg *config.Config, gormDB *gorm.DB, embedder embeddings.Embedder) *gin.Engine {
	serviceContainer := initializeServices(cfg, embedder)
	appHandlers := initializeHandlers(serviceContainer)

	ginRouter := initializeGinRouter(cfg, gormDB)
	routes.RegisterRoutes(ginRouter, appHandlers, middleware.AuthMiddleware(cfg.JWT.Secret))

	return ginRouter
}

// buildEmbedder returns nil when no API key is configured; the matching
// service then installs its synthetic strategy and the backfill worker idles.
func buildEmbedder(cfg *config.Config) embeddings.Embedder {
	embedder, err := embeddings.NewOpenAIEmbedder(embeddings.Config{
		APIKey:         cfg.OpenAI.APIKey,
		Model:          cfg.OpenAI.Model,
		Dimensions:     cfg.OpenAI.Dimensions,
		TimeoutSeconds: cfg.OpenAI.TimeoutSeconds,
	})
	if err != nil {
		logger.Warn("Embedding backend unavailable, matching will serve synthetic results", "error", err.Error())
		return nil
	}
	logger.Info("Embedding backend initialized", "model", cfg.OpenAI.Model, "dimensions", cfg.OpenAI.Dimensions)
	return embedder
}

func initializeServices(cfg *config.Config, embedder embeddings.Embedder) *services.ServiceContainer {
	creatorRepo := repositories.NewCreatorRepository()
	campaignRepo := repositories.NewCampaignRepository()

	authService := services.NewAuthService(services.AuthConfig{
		AdminEmail:        cfg.Auth.AdminEmail,
		AdminPasswordHash: cfg.Auth.AdminPasswordHash,
		JWTSecret:         cfg.JWT.Secret,
		TokenTTL:          time.Duration(cfg.JWT.TTL) * time.Minute,
	})
	creatorService := services.NewCreatorService(creatorRepo)
	campaignService := services.NewCampaignService(campaignRepo)
	matchingService := services.NewMatchingService(
		embedder,
		creatorRepo,
		campaignRepo,
		services.Tuning{
			NicheBoost:          cfg.Matching.NicheBoost,
			AudienceDamp:        cfg.Matching.AudienceDamp,
			CreatorsPerCampaign: cfg.Matching.CreatorsPerCampaign,
		},
		services.MatchingDefaults{
			Threshold: cfg.Matching.DefaultThreshold,
			Count:     cfg.Matching.DefaultCount,
		},
	)

	return &services.ServiceContainer{
		AuthService:     authService,
		CreatorService:  creatorService,
		CampaignService: campaignService,
		MatchingService: matchingService,
	}
}

func initializeHandlers(serviceContainer *services.ServiceContainer) *handlers.AppHandlers {
	customValidator := validator.New()
	baseHandler := handlers.NewBaseHandler(customValidator)

	return &handlers.AppHandlers{
		AuthHandler:     handlers.NewAuthHandler(baseHandler, serviceContainer.AuthService),
		CreatorHandler:  handlers.NewCreatorHandler(baseHandler, serviceContainer.CreatorService),
		CampaignHandler: handlers.NewCampaignHandler(baseHandler, serviceContainer.CampaignService),
		MatchingHandler: handlers.NewMatchingHandler(baseHandler, serviceContainer.MatchingService),
	}
}

func initializeGinRouter(cfg *config.Config, db *gorm.DB) *gin.Engine {
	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggingMiddleware())
	router.Use(middleware.CORSMiddleware())
	router.Use(middleware.DBMiddleware(db))
	return router
}

func startWorkers(ctx context.Context, cfg *config.Config, db *gorm.DB, embedder embeddings.Embedder) {
	worker := workers.NewEmbeddingWorker(
		db,
		embedder,
		repositories.NewCreatorRepository(),
		time.Duration(cfg.Matching.BackfillIntervalMinutes)*time.Minute,
	)
	worker.Start(ctx)
}
