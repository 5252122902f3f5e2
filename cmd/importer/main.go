package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/yigit/unicatalog/internal/bootstrap"
	"github.com/yigit/unicatalog/internal/importer"
	"github.com/yigit/unicatalog/internal/pkg/logger"
)

var errRowsFailed = errors.New("some rows failed to import")

func main() {
	configPath := flag.String("config", bootstrap.DefaultConfigPath, "path to the YAML configuration file")
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, *configPath); err != nil {
		logger.Error().Err(err).Msg("Import failed")
		stop()
		os.Exit(1)
	}
}

func run(ctx context.Context, configPath string) error {
	cfg, lgr, err := bootstrap.LoadConfigAndSetupLogger(configPath)
	if err != nil {
		return err
	}

	storage, err := importer.NewStorage(ctx, cfg)
	if err != nil {
		return fmt.Errorf("failed to open import source: %w", err)
	}

	database, err := bootstrap.SetupDatabase(cfg, lgr)
	if err != nil {
		return err
	}
	defer database.Close()

	deps := bootstrap.BuildDependencies(cfg, database, lgr)
	summary, err := importer.New(storage, deps.Services, deps.Metrics, logger.Component("importer")).Run(ctx)
	if err != nil {
		return err
	}
	if !summary.OK() {
		return fmt.Errorf("%w: %d failed, %d imported", errRowsFailed, summary.Failed, summary.Imported)
	}
	return nil
}
