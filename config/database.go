package config

import (
	"log/slog"
	"os"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/doganiot/mywordismyword/models"
)

var DB *gorm.DB

// ConnectDB opens the Postgres connection and runs the schema migration.
// The process cannot do anything useful without a database, so a failure
// here is fatal.
func ConnectDB() {
	dsn := App.DatabaseURL
	if dsn == "" {
		slog.Error("DB_URL environment variable is not set")
		os.Exit(1)
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}

	if err := db.AutoMigrate(models.All()...); err != nil {
		slog.Error("schema migration failed", "error", err)
		os.Exit(1)
	}

	DB = db
	slog.Info("connected to database")
}
