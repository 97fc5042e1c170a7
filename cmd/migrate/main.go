package main

import (
	"database/sql"
	"flag"
	"log"

	"cym-store/internal/config"
	"cym-store/internal/db"
	"cym-store/internal/logger"

	"go.uber.org/zap"
)

var (
	openDBFunc  = db.NewDatabase
	migrateFunc = db.RunMigrations
)

func main() {
	mode := flag.String("mode", db.MigrateUp, "migration mode: up or down")
	flag.Parse()

	if err := run(*mode); err != nil {
		log.Fatal(err)
	}
}

func run(mode string) error {
	cfg := config.LoadConfig()
	logger.Init(cfg.AppEnv)
	defer logger.Sync()

	database, err := openDBFunc(cfg)
	if err != nil {
		return err
	}
	defer func(d *sql.DB) { _ = d.Close() }(database)

	if err := migrateFunc(database, mode); err != nil {
		return err
	}

	logger.L().Info("migrations done", zap.String("mode", mode))
	return nil
}
