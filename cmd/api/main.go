package main

import (
	"os"

	"github.com/educonnect/educonnect/internal/pkg/logger"
	"github.com/educonnect/educonnect/internal/server"
)

// @title EduConnect API
// @version 1.0
// @description API for EduConnect, a platform connecting students without access to formal education to volunteer tutors

// @contact.name API Support
// @contact.email support@educonnect.app

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /api/v1
// @schemes http https

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description JWT token for authorization

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

	logger.Info().Msg("Application finished gracefully")
}
