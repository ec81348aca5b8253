package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/nadim/adgm-agent/internal/config"
	"github.com/nadim/adgm-agent/internal/server"
)

var (
	serveConfigPath string
	servePort       int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long:  `Start an HTTP server that exposes REST endpoints for document upload, compliance analysis, reports, and the regulatory checklist.`,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveConfigPath, "config", "", "Path to config.json file")
	serveCmd.Flags().IntVar(&servePort, "port", 8080, "Port to listen on")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	var cfg config.Config
	if serveConfigPath != "" {
		loadedCfg, err := config.LoadConfig(serveConfigPath)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		if err := loadedCfg.Validate(); err != nil {
			return err
		}
		cfg = *loadedCfg
	}

	// Database URL from config file or environment
	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	}
	if cfg.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL environment variable is required")
	}

	// API key from config file or environment
	if cfg.APIKey == "" {
		cfg.APIKey = os.Getenv("GEMINI_API_KEY")
	}
	if cfg.APIKey == "" {
		return fmt.Errorf("GEMINI_API_KEY environment variable is required")
	}

	// The --port flag wins over server_addr from the config file
	port := servePort
	if !cmd.Flags().Changed("port") && cfg.ServerAddr != "" {
		parsed, err := strconv.Atoi(strings.TrimPrefix(cfg.ServerAddr, ":"))
		if err != nil {
			return fmt.Errorf("invalid server_addr in config: %s", cfg.ServerAddr)
		}
		port = parsed
	}

	srv, err := server.New(server.Config{
		Port:        port,
		DatabaseURL: cfg.DatabaseURL,
		APIKey:      cfg.APIKey,
	})
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	return srv.Start()
}
