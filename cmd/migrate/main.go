package main

import (
	"context"
	"flag"
	"log"
	"os"

	"balaji-storefront/internal/config"
	"balaji-storefront/internal/migrate"
	"github.com/joho/godotenv"
)

func main() {
	var down, status bool
	flag.BoolVar(&down, "down", false, "Revert the most recent migration")
	flag.BoolVar(&status, "version", false, "Print the applied schema version")
	flag.Parse()

	_ = godotenv.Load()
	cfg := config.FromEnv()
	logger := log.New(os.Stdout, "[migrate] ", log.LstdFlags|log.LUTC|log.Lshortfile)
	ctx := context.Background()

	switch {
	case status:
		v, dirty, err := migrate.Version(ctx, cfg.DBConnString)
		if err != nil {
			logger.Fatalf("read version: %v", err)
		}
		logger.Printf("schema version %d (dirty=%t)", v, dirty)
	case down:
		if err := migrate.Rollback(ctx, cfg.DBConnString); err != nil {
			logger.Fatalf("rollback: %v", err)
		}
		logger.Println("last migration reverted")
	default:
		if err := migrate.Apply(ctx, cfg.DBConnString); err != nil {
			logger.Fatalf("apply migrations: %v", err)
		}
		logger.Println("migrations applied")
	}
}
