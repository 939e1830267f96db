package api

import (
	"context"
	"log"
	"time"

	"github.com/ethanbaker/api/pkg/api_key"
	api_utils "github.com/ethanbaker/api/pkg/utils"
	"github.com/ethanbaker/influencer-hub/internal/digest"
	"github.com/ethanbaker/influencer-hub/internal/gsheets"
	"github.com/ethanbaker/influencer-hub/internal/stores/records"
	"github.com/ethanbaker/influencer-hub/pkg/hub"
	"github.com/ethanbaker/influencer-hub/pkg/importer"
	"github.com/ethanbaker/influencer-hub/pkg/utils"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	health_module "github.com/ethanbaker/influencer-hub/internal/api/modules/health"
	imports_module "github.com/ethanbaker/influencer-hub/internal/api/modules/imports"
	records_module "github.com/ethanbaker/influencer-hub/internal/api/modules/records"
	reminders_module "github.com/ethanbaker/influencer-hub/internal/api/modules/reminders"
	sheets_module "github.com/ethanbaker/influencer-hub/internal/api/modules/sheets"
)

// Dependencies are the components the API modules are built on
type Dependencies struct {
	Store   hub.StoreInterface
	Fetcher importer.Fetcher // nil when external spreadsheets cannot be read
	Digest  *digest.Manager  // nil when no digest is configured
	Logger  *zap.Logger
}

func Start(cfg *utils.Config) {
	logger, err := utils.NewLogger(cfg)
	if err != nil {
		log.Fatal("[API-MAIN]: Failed to create logger: ", err)
	}
	defer logger.Sync()

	// Open the record store
	store, services, err := records.Open(context.Background(), cfg, logger.Named("store"))
	if err != nil {
		logger.Fatal("failed to open record store", zap.Error(err))
	}
	defer store.Close()

	deps := &Dependencies{Store: store, Logger: logger}

	// External spreadsheets are read with the same Google credentials as the store
	if services != nil {
		deps.Fetcher = gsheets.NewFetcher(services.Sheets, logger.Named("import"))
	}

	// Start the reminder digest when configured
	digestCfg, err := digest.LoadConfig(cfg.Get(utils.KEY_DIGEST_CONFIG_PATH))
	if err != nil {
		logger.Fatal("failed to load digest config", zap.Error(err))
	}
	if digestCfg != nil {
		manager, err := digest.NewManager(digestCfg, store, logger.Named("digest"))
		if err != nil {
			logger.Fatal("failed to create digest manager", zap.Error(err))
		}
		if err := manager.Start(); err != nil {
			logger.Fatal("failed to start digest manager", zap.Error(err))
		}
		defer manager.Stop()
		deps.Digest = manager
	} else {
		logger.Info("no digest config found, reminder digest disabled")
	}

	engine := NewEngine(cfg, deps)

	// Then after performing initial setup, start the server
	port := cfg.GetWithDefault(utils.KEY_API_PORT, "8080")
	logger.Info("starting server", zap.String("port", port), zap.String("backend", cfg.StoreBackend()))
	if err := engine.Run(":" + port); err != nil {
		logger.Fatal("failed to start server", zap.Error(err))
	}
}

// NewEngine builds the gin engine with every module registered
func NewEngine(cfg *utils.Config, deps *Dependencies) *gin.Engine {
	logger := deps.Logger.Named("api")

	// Add app level settings/routes
	engine := gin.Default()
	engine.NoRoute(api_utils.NoRouteHandler)

	// Add trusted proxies
	engine.SetTrustedProxies(nil)

	// Add CORS using gin-contrib/cors (https://github.com/gin-contrib/cors for documentation)
	origins := cfg.GetList(utils.KEY_CORS_ALLOWED_ORIGINS)
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	engine.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"OPTIONS", "GET", "POST", "PUT", "DELETE"},
		AllowHeaders:     []string{"Origin", "Content-Type", "X-API-KEY"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	engine.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Base group '/api' for all API routes
	baseGroup := engine.Group("/api")
	health_module.RegisterRoutes(baseGroup)

	// Data routes sit behind the API key when one is set
	dataGroup := baseGroup.Group("")
	if validator := makeApiKeyValidator(cfg); validator != nil {
		dataGroup.Handlers = append(dataGroup.Handlers, api_key.APIKeyHeaderHandler(validator))
	} else {
		logger.Warn("API_KEY not set, data routes are open")
	}

	// Adding custom modules
	records_module.Init(deps.Store, logger)
	records_module.RegisterRoutes(dataGroup)

	reminders_module.Init(deps.Store, deps.Digest, logger)
	reminders_module.RegisterRoutes(dataGroup)

	imports_module.Init(deps.Store, deps.Fetcher, logger)
	imports_module.RegisterRoutes(dataGroup)

	sheets_module.Init(deps.Store, logger)
	sheets_module.RegisterRoutes(dataGroup)

	return engine
}

// makeApiKeyValidator checks the provided key against API_KEY; nil when no key is configured
func makeApiKeyValidator(cfg *utils.Config) func(key string) bool {
	apiKey := cfg.Get(utils.KEY_API_KEY)
	if apiKey == "" {
		return nil
	}

	return func(key string) bool {
		return apiKey == key
	}
}
