// Package main provides the entry point for the ADGM Corporate Agent CLI and HTTP API server.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "adgm_agent",
	Short: "ADGM Corporate Agent",
	Long:  "ADGM Corporate Agent reviews corporate documents for compliance with Abu Dhabi Global Market regulations, flags issues, and assembles compliance reports via CLI or REST API.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
