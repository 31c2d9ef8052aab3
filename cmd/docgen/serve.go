package main

import (
	"fmt"
	"time"

	"github.com/jonathan/deal-docs/internal/server"
	"github.com/jonathan/deal-docs/internal/server/ratelimit"
	"github.com/spf13/cobra"
)

var (
	servePort int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	Long:  `Start an HTTP server that serves the selection form and generates documents on request.`,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 8080, "Port to listen on (overrides config and $PORT)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("port") {
		cfg.Server.Port = servePort
	}

	gen, err := buildGenerator(cfg)
	if err != nil {
		return fmt.Errorf("failed to build generator: %w", err)
	}

	srv, err := server.New(server.Config{
		Port:         cfg.Server.Port,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeoutSeconds) * time.Second,
		Generator:    gen,
		RateLimit:    ratelimit.LoadConfig(),
		Copyright:    cfg.Publisher.Copyright,
	})
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	return srv.Start()
}
