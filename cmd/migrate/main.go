package main

import (
	"database/sql"
	"os"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/pressly/goose/v3"
	"github.com/rs/zerolog/log"

	"library-catalog/internal/config"
	"library-catalog/migrations"
	"library-catalog/pkg/logger"
)

func main() {
	// Load .env file if it exists
	envErr := godotenv.Load()
	logger.Init(os.Getenv("APP_ENV"), os.Getenv("LOG_LEVEL"))
	if envErr != nil {
		log.Info().Msg(".env file not found, using existing environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load config")
	}

	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to open database")
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		log.Fatal().Err(err).Msg("Failed to ping database")
	}

	// Get command from arguments (default to "up")
	command := "up"
	if len(os.Args) > 1 {
		command = os.Args[1]
	}

	goose.SetBaseFS(migrations.FS)
	if err := goose.SetDialect("postgres"); err != nil {
		log.Fatal().Err(err).Msg("Failed to set dialect")
	}

	log.Info().Str("command", command).Msg("Running migrations")
	switch command {
	case "up":
		if err := goose.Up(db, "."); err != nil {
			log.Fatal().Err(err).Msg("Failed to run migrations")
		}
		log.Info().Msg("Migrations completed successfully")
	case "down":
		if err := goose.Down(db, "."); err != nil {
			log.Fatal().Err(err).Msg("Failed to rollback migration")
		}
		log.Info().Msg("Rollback completed successfully")
	case "status":
		if err := goose.Status(db, "."); err != nil {
			log.Fatal().Err(err).Msg("Failed to get migration status")
		}
	case "version":
		version, err := goose.GetDBVersion(db)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to get version")
		}
		log.Info().Int64("version", version).Msg("Current migration version")
	default:
		log.Fatal().Msgf("Unknown command: %s. Available commands: up, down, status, version", command)
	}
}
