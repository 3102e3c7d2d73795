package config

import (
	"log"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// PostgresGormConfig creates a configured *gorm.DB for dsn.
func PostgresGormConfig(dsn string) *gorm.DB {
	const defaultMaxOpenConnections = 10
	const defaultMaxIdleConnections = 2
	const defaultMaxConnLifetime = time.Hour

	db, err := gorm.Open(
		postgres.Open(WithUTCSession(dsn)),
		&gorm.Config{Logger: logger.Default.LogMode(logger.Silent)},
	)
	if err != nil {
		log.Fatal("Failed to open database connection, error: ", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		log.Fatal("Failed to access the connection pool, error: ", err)
	}

	// Configure connection pool settings
	sqlDB.SetMaxOpenConns(defaultMaxOpenConnections)
	sqlDB.SetMaxIdleConns(defaultMaxIdleConnections)
	sqlDB.SetConnMaxLifetime(defaultMaxConnLifetime)

	return db
}

// GormDryRun creates a *gorm.DB that renders SQL without connecting.
func GormDryRun() *gorm.DB {
	db, err := gorm.Open(
		postgres.New(postgres.Config{DSN: PostgresDefaultDSN()}),
		&gorm.Config{DryRun: true, DisableAutomaticPing: true},
	)
	if err != nil {
		log.Fatal("Failed to create a dry run session, error: ", err)
	}

	return db
}
