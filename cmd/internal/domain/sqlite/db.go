package sqlite

import (
	"clubcal/cmd/internal/domain/entity"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm/logger"
	"time"

	"gorm.io/gorm"
)

func Init(path string) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, err
	}

	err = db.AutoMigrate(&entity.User{}, &entity.Appointment{}, &entity.Response{})
	if err != nil {
		return nil, err
	}

	// SQLite serialises writers anyway, and a single connection keeps
	// ":memory:" databases shared across queries.
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(1)
	sqlDB.SetMaxIdleConns(1)
	sqlDB.SetConnMaxLifetime(time.Hour)

	return db, nil
}
