package main

import (
	"os"

	"github.com/gesapp/ges-backend/internal/pkg/logger"
	"github.com/gesapp/ges-backend/internal/server"
)

// @title GES API
// @version 1.0
// @description School management backend: programs, subjects, schedules and accounts

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /api/v1
// @schemes http https

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description JWT access token

func main() {
	srv, err := server.NewServer()
	if err != nil {
		logger.Error().Err(err).Msg("Failed to initialize server")
		os.Exit(1)
	}

	if err := srv.Run(); err != nil {
		logger.Error().Err(err).Msg("Server execution failed")
		os.Exit(1)
	}

	logger.Info().Msg("Application finished gracefully.")
}
