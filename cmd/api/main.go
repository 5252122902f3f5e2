package main

import (
	"flag"
	"os"

	"github.com/yigit/unicatalog/internal/bootstrap"
	"github.com/yigit/unicatalog/internal/pkg/logger"
	"github.com/yigit/unicatalog/internal/server"
)

// @title Curriculum Catalog API
// @version 1.0
// @description Courses, catalogs, modalities, blocks, requirements, disciplines and offerings

// @securityDefinitions.apikey CSRFToken
// @in header
// @name csrf-token
// @description Capability token; Authorization: Bearer is accepted as well

func main() {
	configPath := flag.String("config", bootstrap.DefaultConfigPath, "path to the YAML configuration file")
	flag.Parse()

	srv, err := server.NewServer(*configPath)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to initialize server")
		os.Exit(1)
	}

	if err := srv.Run(); err != nil {
		logger.Error().Err(err).Msg("Server execution failed or shutdown encountered errors")
		os.Exit(1)
	}

	logger.Info().Msg("Application finished gracefully.")
}
