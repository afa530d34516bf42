package main

import (
	"aftech-backend/config"
	"aftech-backend/controllers/idgen"
	"aftech-backend/database"
	"aftech-backend/migration"
	"fmt"

	"gorm.io/gorm"
)

// openDB loads configuration and returns a migrated connection.
func openDB() (*gorm.DB, error) {
	config.LoadConfig()
	idgen.Init(int64(config.SnowflakeNode))

	db, err := database.OpenDatabaseConnection()
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}
	if err := migration.Migrate(db); err != nil {
		database.Close(db)
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return db, nil
}
