package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/medtrack/core/internal/adapters/memory"
	"github.com/medtrack/core/internal/adapters/remote"
	"github.com/medtrack/core/internal/application/services"
	"github.com/medtrack/core/internal/infrastructure/config"
	"github.com/medtrack/core/internal/infrastructure/logger"
	"github.com/medtrack/core/internal/infrastructure/server"
)

// NewServeCommand creates the serve command
func NewServeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the MedGateway API server",
		Long:  "Start the MedGateway API server with all configured routes and middleware",
		Run: func(cmd *cobra.Command, args []string) {
			runServer()
		},
	}
}

// NewProbeCommand creates the probe command
func NewProbeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "probe",
		Short: "Check backend reachability",
		Long:  "Run the reachability probe against the configured backend and report the result",
		Run: func(cmd *cobra.Command, args []string) {
			runProbe()
		},
	}
}

// NewScheduleCommand creates the schedule command
func NewScheduleCommand() *cobra.Command {
	scheduleCmd := &cobra.Command{
		Use:   "schedule",
		Short: "Print the schedule for a date",
		Long:  "Fetch reminders and medications for one date and print the computed slot list as JSON",
		Run: func(cmd *cobra.Command, args []string) {
			date, _ := cmd.Flags().GetString("date")
			printSchedule(date)
		},
	}

	scheduleCmd.Flags().String("date", "", "Calendar date in YYYY-MM-DD form (defaults to today)")
	return scheduleCmd
}

// NewVersionCommand creates the version command
func NewVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print MedGateway version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println("MedGateway v1.0.0")
		},
	}
}

func runServer() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	appLogger, err := logger.New(cfg.Logger)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer appLogger.Close()

	srv, err := server.New(cfg, appLogger)
	if err != nil {
		appLogger.Fatalw("Failed to initialize server", "error", err)
	}

	appLogger.Infow("Starting MedGateway API server",
		"port", cfg.Server.Port,
		"backend", cfg.Backend.BaseURL,
		"environment", cfg.App.Environment,
	)

	// Graceful shutdown on SIGINT/SIGTERM
	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			appLogger.Errorw("Shutdown failed", "error", err)
		}
	}()

	if err := srv.Start(); err != nil {
		appLogger.Fatalw("Server failed to start", "error", err)
	}
}

func runProbe() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	appLogger, err := logger.New(cfg.Logger)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer appLogger.Close()

	guard := remote.NewGuard(cfg.Backend, appLogger)

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Backend.ProbeTimeout+time.Second)
	defer cancel()

	reachability := guard.Probe(ctx)
	fmt.Printf("Backend %s: %s\n", cfg.Backend.BaseURL, reachability)

	if reachability == remote.Unreachable {
		os.Exit(1)
	}
}

func printSchedule(date string) {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	appLogger, err := logger.New(cfg.Logger)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer appLogger.Close()

	if date == "" {
		date = time.Now().Format("2006-01-02")
	}

	catalog := memory.NewMedicationCatalog()
	store := memory.NewReminderStore()
	tokens := remote.NewStaticTokenSource(cfg.Auth.Token, cfg.Auth.RefreshToken)
	client := remote.NewClient(cfg.Backend, tokens, appLogger)
	guard := remote.NewGuard(cfg.Backend, appLogger)

	medications := services.NewMedicationService(catalog, client, guard, appLogger)
	reminders := services.NewReminderService(store, client, guard, appLogger)
	schedule := services.NewScheduleService(catalog, store, appLogger)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if _, err := medications.Refresh(ctx); err != nil {
		appLogger.Fatalw("Medication refresh failed", "error", err)
	}
	synthetic, _, err := reminders.RefreshDay(ctx, date)
	if err != nil {
		appLogger.Fatalw("Reminder refresh failed", "error", err)
	}

	out := map[string]any{
		"date":      date,
		"synthetic": synthetic,
		"slots":     schedule.BuildDay(date),
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		log.Fatalf("Failed to encode schedule: %v", err)
	}
}
