package records

import (
	"context"
	"fmt"

	"github.com/ethanbaker/influencer-hub/internal/gsheets"
	"github.com/ethanbaker/influencer-hub/pkg/hub"
	"github.com/ethanbaker/influencer-hub/pkg/utils"
	"github.com/go-sql-driver/mysql"
	"go.uber.org/zap"
)

// Open builds the store selected by STORE_BACKEND, wrapped with metrics. The Google
// services are returned too so imports can reuse them; they are nil for other backends
func Open(ctx context.Context, cfg *utils.Config, logger *zap.Logger) (hub.StoreInterface, *gsheets.Services, error) {
	backend := cfg.StoreBackend()

	switch backend {
	case utils.BACKEND_GOOGLE:
		services, err := gsheets.NewServices(ctx, cfg, logger)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to connect to google: %w", err)
		}
		store := NewGoogleStore(services, cfg.Get(utils.KEY_SPREADSHEET_ID), cfg.GetWithDefault(utils.KEY_SPREADSHEET_TITLE, hub.DEFAULT_SPREADSHEET_TITLE), logger)
		return Instrument(store, backend, logger), services, nil

	case utils.BACKEND_MYSQL:
		dbConfig := MySQLConfig(cfg)
		if dbConfig.DBName == "" {
			return nil, nil, fmt.Errorf("MYSQL_DATABASE not set in environment")
		}

		store, err := NewStore(dbConfig.FormatDSN())
		if err != nil {
			return nil, nil, err
		}
		return Instrument(store, backend, logger), nil, nil

	case utils.BACKEND_MEMORY:
		logger.Warn("using in-memory store, data will not persist across restarts")
		return Instrument(NewInMemoryStore(), backend, logger), nil, nil

	default:
		return nil, nil, fmt.Errorf("unknown store backend '%s'", backend)
	}
}

// MySQLConfig builds the driver config from the MYSQL_* settings
func MySQLConfig(cfg *utils.Config) *mysql.Config {
	dbConfig := mysql.NewConfig()
	dbConfig.User = cfg.Get("MYSQL_USER")
	dbConfig.Passwd = cfg.Get("MYSQL_ROOT_PASSWORD")
	dbConfig.Net = "tcp"
	dbConfig.Addr = fmt.Sprintf("%s:%s", cfg.GetWithDefault("MYSQL_HOST", "127.0.0.1"), cfg.GetWithDefault("MYSQL_PORT", "3306"))
	dbConfig.DBName = cfg.Get("MYSQL_DATABASE")
	dbConfig.ParseTime = true
	return dbConfig
}
