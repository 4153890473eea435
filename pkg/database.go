package pkg

import (
	"fmt"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/edupanel/student-portal/internal/config"
)

// InitDatabase opens the Postgres connection and configures the pool.
// Connections are pooled for the process lifetime; each operation borrows
// one for its own scope.
func InitDatabase(cfg *config.Config) (*gorm.DB, error) {
	logLevel := gormlogger.Warn
	if cfg.Environment == "production" {
		logLevel = gormlogger.Error
	}

	db, err := gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{
		// Surfaces gorm.ErrDuplicatedKey on unique violations.
		TranslateError: true,
		// The pool connects lazily; an unreachable store at boot leaves
		// the process serving errors until it comes back instead of
		// aborting.
		DisableAutomaticPing: true,
		Logger:               gormlogger.Default.LogMode(logLevel),
	})
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("get sql db: %w", err)
	}

	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(5 * time.Minute)

	return db, nil
}
