package config

import (
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"jobgate/video-studio/internal/models"
)

func InitDatabase(cfg *Config) (*gorm.DB, error) {
	dsn := cfg.GetDatabaseDSN()

	logLevel := logger.Silent
	if cfg.Server.Env == "development" {
		logLevel = logger.Info
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logLevel),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := MigrateModels(db); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return db, nil
}

// MigrateModels runs the schema migration for every model. Shared with the
// test setup so test databases carry the same schema.
func MigrateModels(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Video{},
		&models.QualityCheck{},
		&models.RecordingSession{},
		&models.CandidateProfile{},
		&models.CVVideoSyncLog{},
		&models.VideoViewLog{},
		&models.RecruiterProfile{},
		&models.ProfileViewLog{},
		&models.CandidateInteraction{},
		&models.RecruiterFavorite{},
		&models.Notification{},
		&models.NotificationPreference{},
		&models.NotificationTemplate{},
	)
}
