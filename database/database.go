package database

import (
	"fmt"
	"log"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/sdpjss/community-registry-backend/config"
)

var DB *gorm.DB

// Connect opens the Postgres connection and keeps the handle in DB for
// route wiring.
func Connect(cfg *config.Config) *gorm.DB {
	dsn := fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		cfg.DBHost, cfg.DBPort, cfg.DBUser, cfg.DBPassword, cfg.DBName,
	)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	DB = db
	log.Println("Database connected")
	return db
}

// SetDB overrides the shared handle; used by tests running on sqlite.
func SetDB(db *gorm.DB) { DB = db }
