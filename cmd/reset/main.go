// Command reset discards all AML data and reloads the seed dataset.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	_ "github.com/joho/godotenv/autoload"

	"github.com/sjperalta/aml-lists-api/internal/config"
	"github.com/sjperalta/aml-lists-api/internal/database"
	"github.com/sjperalta/aml-lists-api/internal/services"
	"github.com/sjperalta/aml-lists-api/pkg/logger"
)

func main() {
	yes := flag.Bool("yes", false, "skip the confirmation prompt")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	logger.Setup(cfg.Environment)

	if !*yes {
		fmt.Printf("This deletes every customer, list entry, transaction and audit entry in %s. Continue? [y/N] ", cfg.DatabaseDriver)
		var answer string
		_, _ = fmt.Scanln(&answer)
		if answer != "y" && answer != "Y" {
			fmt.Println("Aborted")
			return
		}
	}

	db, err := database.Connect(cfg.DatabaseDriver, cfg.DatabaseURL)
	if err != nil {
		logger.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}

	if err := services.NewSeedService(db).Reset(context.Background()); err != nil {
		logger.Error("Reset failed", "error", err)
		os.Exit(1)
	}
	fmt.Println("Data reset to seed dataset")
}
