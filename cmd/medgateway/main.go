package main

import (
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/medtrack/core/cmd/medgateway/commands"
)

// @title MedGateway API
// @version 1.0
// @description Medication schedule gateway between the mobile client and the legacy backend

// @contact.name MedTrack Support
// @contact.url https://github.com/medtrack/core

// @license.name MIT
// @license.url https://github.com/medtrack/core/blob/main/LICENSE

// @host localhost:8080
// @BasePath /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

func main() {
	rootCmd := &cobra.Command{
		Use:   "medgateway",
		Short: "MedGateway API Server",
		Long:  `MedGateway sits between the medication reminder client and the legacy backend, normalizing schema drift and keeping the schedule usable when the backend is down.`,
	}

	// Add commands
	rootCmd.AddCommand(commands.NewServeCommand())
	rootCmd.AddCommand(commands.NewProbeCommand())
	rootCmd.AddCommand(commands.NewScheduleCommand())
	rootCmd.AddCommand(commands.NewVersionCommand())

	// Execute root command
	if err := rootCmd.Execute(); err != nil {
		log.Printf("Command execution failed: %v", err)
		os.Exit(1)
	}
}
