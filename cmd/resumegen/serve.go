package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-formatter/internal/keywords"
	"github.com/jonathan/resume-formatter/internal/server"
)

var (
	servePort       int
	serveOutputDir  string
	serveBoldWords  string
	serveConfigFile string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long:  `Start an HTTP server that renders resume records into .docx documents (POST /resumes, POST /highlight, GET /styles).`,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 8080, "Port to listen on")
	serveCmd.Flags().StringVarP(&serveOutputDir, "out-dir", "o", "", "Base output directory (default generated_resumes)")
	serveCmd.Flags().StringVar(&serveBoldWords, "bold-words", "", "Path to always-bold keyword list (default bold_words.json)")
	serveCmd.Flags().StringVar(&serveConfigFile, "config", "", "Path to JSON config file")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	settings, err := loadSettings(serveConfigFile)
	if err != nil {
		return err
	}
	stringFlag(cmd, "out-dir", serveOutputDir, &settings.OutputDir)
	stringFlag(cmd, "bold-words", serveBoldWords, &settings.BoldWords)
	if cmd.Flags().Changed("port") {
		settings.Port = servePort
	}
	if err := settings.Validate(); err != nil {
		return err
	}

	// The always-bold list is read once here and shared by every request
	alwaysBold, err := keywords.NewAlwaysBold(settings.BoldWords).Terms()
	if err != nil {
		return fmt.Errorf("failed to load always-bold keywords: %w", err)
	}

	srv, err := server.New(server.Config{
		Port:       settings.Port,
		OutputDir:  settings.OutputDir,
		AlwaysBold: alwaysBold,
	})
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	return srv.Start()
}
