package configs

import (
	"fmt"

	"github.com/dhnushshetty/food-cart-jsf/repository"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var db *gorm.DB

func DB() *gorm.DB {
	return db
}

// ConnectionDB opens the database named by cfg and keeps it for DB().
func ConnectionDB(cfg *Config) error {
	var dialector gorm.Dialector
	switch cfg.DBDriver {
	case "sqlite":
		dialector = sqlite.Open(cfg.DBSource)
	case "postgres":
		dialector = postgres.Open(cfg.DBSource)
	default:
		return fmt.Errorf("unsupported DB_DRIVER %q", cfg.DBDriver)
	}

	gcfg := &gorm.Config{TranslateError: true}
	if cfg.IsProduction() {
		gcfg.Logger = logger.Default.LogMode(logger.Warn)
	}

	database, err := gorm.Open(dialector, gcfg)
	if err != nil {
		return fmt.Errorf("failed to connect database: %w", err)
	}

	if cfg.DBDriver == "sqlite" {
		// one writer at a time, so transactions never see SQLITE_BUSY
		sqlDB, err := database.DB()
		if err != nil {
			return err
		}
		sqlDB.SetMaxOpenConns(1)
	}

	db = database
	return nil
}

func SetupDatabase() error {
	return repository.Migrate(db)
}
