package main

import (
	"database/sql"
	"flag"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"

	"medishare/internal/db"
	"medishare/internal/infra"
)

func main() {
	down := flag.Bool("down", false, "roll back the last migration instead of migrating up")
	flag.Parse()

	_ = godotenv.Load()

	cfg, err := infra.LoadConfig()
	if err != nil {
		panic(err)
	}
	logger := infra.NewLogger(cfg.AppEnv)

	conn, err := sql.Open("postgres", cfg.DatabaseURL)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to open database")
	}
	defer conn.Close()

	if *down {
		if err := db.MigrateDown(conn); err != nil {
			logger.Fatal().Err(err).Msg("rollback failed")
		}
		logger.Info().Msg("rollback completed")
		return
	}

	if err := db.RunMigrations(conn); err != nil {
		logger.Fatal().Err(err).Msg("migration failed")
	}
	logger.Info().Msg("migration completed")
}
