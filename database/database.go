package database

import (
	"fmt"
	"log"
	"strings"

	"github.com/anjiri1684/college_review/models"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func gormConfig() *gorm.Config {
	return &gorm.Config{
		SkipDefaultTransaction:                   true,
		DisableForeignKeyConstraintWhenMigrating: true,
		TranslateError:                           true,
		Logger:                                   logger.Default.LogMode(logger.Warn),
	}
}

// ConnectLocal opens the on-device cache. SQLite allows a single writer, so the
// pool is pinned to one connection and every write is serialised there.
func ConnectLocal(path string) (*gorm.DB, error) {
	dsn := path
	if !strings.Contains(dsn, "?") {
		dsn += "?_busy_timeout=5000"
	}

	db, err := gorm.Open(sqlite.Open(dsn), gormConfig())
	if err != nil {
		return nil, fmt.Errorf("open local store: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("local store handle: %w", err)
	}
	sqlDB.SetMaxOpenConns(1)
	sqlDB.SetMaxIdleConns(1)
	sqlDB.SetConnMaxLifetime(0)

	log.Println("✅ Local review store opened")
	return db, nil
}

// ConnectRemote opens the remote ledger.
func ConnectRemote(dsn string) (*gorm.DB, error) {
	if dsn == "" {
		return nil, fmt.Errorf("DATABASE_URL is not set")
	}

	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  dsn,
		PreferSimpleProtocol: true,
	}), gormConfig())
	if err != nil {
		return nil, fmt.Errorf("open remote ledger: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("remote ledger handle: %w", err)
	}
	sqlDB.SetMaxOpenConns(10)
	sqlDB.SetMaxIdleConns(5)

	log.Println("✅ Remote ledger connected")
	return db, nil
}

func MigrateLocal(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&models.Review{},
		&models.OutboxEntry{},
	); err != nil {
		return fmt.Errorf("migrate local store: %w", err)
	}
	log.Println("✅ Local store migration successful")
	return nil
}

func MigrateRemote(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&models.Document{},
		&models.Account{},
	); err != nil {
		return fmt.Errorf("migrate remote ledger: %w", err)
	}
	log.Println("✅ Remote ledger migration successful")
	return nil
}
