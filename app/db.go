package app

import (
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"pagewatch/config"
	"pagewatch/lib/models"
)

// NewDatabase opens the tracker database when one is configured. A nil return
// is not an error at this point: runs restricted to the file source never
// touch the database, and the Runner rejects database-only runs without one.
func NewDatabase(lc fx.Lifecycle, log *zap.Logger, cfg *config.Config) *gorm.DB {
	if cfg.DatabasePath == "" {
		log.Info("Tracker database not configured")
		return nil
	}

	db, err := gorm.Open(sqlite.Open(cfg.DatabasePath), &gorm.Config{})
	if err != nil {
		log.Sugar().Errorw("failed to connect database", "err", err)
		return nil
	}
	log.Info("Database started")

	log.Info("Starting migrations")
	db.AutoMigrate(&models.TrackedURL{})
	return db
}
