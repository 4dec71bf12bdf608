package main

import (
	"fmt"
	"log/slog"

	log "github.com/charmbracelet/log"
	"github.com/sociomart/backend/config"
	"github.com/sociomart/backend/infra/initializer"
	"github.com/sociomart/backend/webapi"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	cfg, err := config.LoadAppConfig(slog.Default(), ".env")
	if err != nil {
		return fmt.Errorf("failed to load application configuration: %w", err)
	}

	deps, err := initializer.InitializeDependencies(cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize dependencies: %w", err)
	}

	deps.Logger.Info("starting server",
		"env", cfg.Env,
		"host", cfg.Host,
		"port", cfg.Port,
	)

	app := webapi.NewApp(deps)
	return app.Listen(fmt.Sprintf(":%d", cfg.Port))
}
