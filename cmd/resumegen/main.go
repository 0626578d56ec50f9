// Package main provides the resumegen CLI: keyword-highlighted .docx resumes from structured records.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "resumegen",
	Short: "Keyword-highlighting resume formatter",
	Long: "resumegen renders a structured resume record into a formatted Word (.docx) document, " +
		"emphasizing important keywords in bold. It ships several named styles and an HTTP API.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
