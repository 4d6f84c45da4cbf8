package main

import (
	"fmt"

	"github.com/hairizuanbinnoorazman/script-tracker/database"
	"github.com/hairizuanbinnoorazman/script-tracker/script"
	"gorm.io/gorm"
)

// openDatabase connects using cfg. SQLite databases have no migration files,
// so their schema is brought up to date with AutoMigrate on every open.
func openDatabase(cfg DatabaseConfig) (*gorm.DB, error) {
	conn := cfg.connection()
	db, err := database.Connect(conn)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if conn.IsSQLite() {
		if err := database.AutoMigrate(db, &script.Script{}); err != nil {
			return nil, fmt.Errorf("failed to migrate sqlite schema: %w", err)
		}
	}
	return db, nil
}
