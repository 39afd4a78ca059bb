package commands

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/bryanchriswhite/snapsource/internal/api"
	"github.com/bryanchriswhite/snapsource/internal/config"
	"github.com/bryanchriswhite/snapsource/internal/engine"
	"github.com/bryanchriswhite/snapsource/internal/logger"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the snapsource HTTP server",
	Long: `Start the snapsource HTTP server.

The server exposes source enumeration, PNG snapshots and a websocket frame
stream over a REST API.`,
	Example: `  # Start server on default port (8080)
  snapsource serve

  # Start server on custom port
  snapsource serve --port 9090

  # Start with debug logging
  snapsource serve --log-level debug`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	configMgr, err := config.NewManager(GetConfigFile())
	if err != nil {
		return fmt.Errorf("failed to initialize config manager: %w", err)
	}

	if viper.IsSet("server_port") {
		if port := viper.GetInt("server_port"); port > 0 {
			configMgr.SetPort(port)
		}
	}
	if viper.IsSet("log_level") {
		if logLevel := viper.GetString("log_level"); logLevel != "" {
			configMgr.SetLogLevel(logLevel)
		}
	}

	cfg := configMgr.Get()
	logger.Init(cfg.LogLevel, true)

	log.Println("Connecting to capture subsystem...")
	eng, err := engine.New(cfg.CaptureTimeout())
	if err != nil {
		return fmt.Errorf("failed to initialize capture engine: %w", err)
	}
	defer eng.Close()

	server := api.NewServer(eng, configMgr)

	go func() {
		log.Printf("Server starting on http://localhost:%d", cfg.ServerPort)
		if err := server.Start(cfg.ServerPort); err != nil {
			log.Fatalf("Server error: %v", err)
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	log.Println("snapsource is running")
	log.Printf("   - API: http://localhost:%d/api", cfg.ServerPort)
	log.Println("   - Press Ctrl+C to stop")

	<-sigChan

	log.Println("Shutting down gracefully...")
	return nil
}
