package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-formatter/internal/coverage"
	"github.com/jonathan/resume-formatter/internal/document"
	"github.com/jonathan/resume-formatter/internal/docx"
	"github.com/jonathan/resume-formatter/internal/keywords"
	"github.com/jonathan/resume-formatter/internal/observability"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect",
	Short: "Print the text of a generated .docx with bold runs marked",
	Long: "Reads a .docx document and prints each paragraph, wrapping bold runs in **. " +
		"When keywords are given a coverage report shows which of them appear and how often they are bold.",
	RunE: runInspect,
}

var (
	inspectDocxFile     string
	inspectKeywords     []string
	inspectKeywordsFile string
	inspectJSON         bool
)

func init() {
	inspectCmd.Flags().StringVarP(&inspectDocxFile, "docx", "d", "", "Path to .docx file (required)")
	inspectCmd.Flags().StringArrayVarP(&inspectKeywords, "keyword", "k", nil, "Keyword to check coverage for (repeatable)")
	inspectCmd.Flags().StringVar(&inspectKeywordsFile, "keywords-file", "", "Path to JSON keyword list to check coverage for")
	inspectCmd.Flags().BoolVar(&inspectJSON, "json", false, "Print the coverage report as JSON")

	if err := inspectCmd.MarkFlagRequired("docx"); err != nil {
		panic(fmt.Sprintf("failed to mark docx flag as required: %v", err))
	}

	rootCmd.AddCommand(inspectCmd)
}

func runInspect(_ *cobra.Command, _ []string) error {
	doc, err := docx.ReadFile(inspectDocxFile)
	if err != nil {
		return fmt.Errorf("failed to read document: %w", err)
	}

	fromFile, err := keywords.LoadList(inspectKeywordsFile)
	if err != nil {
		return fmt.Errorf("failed to load keywords: %w", err)
	}
	set := keywords.NewSet(fromFile, splitKeywords(inspectKeywords))

	if inspectJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(coverage.AnalyzeDocument(doc, set))
	}

	for _, p := range doc.Paragraphs() {
		line := markRuns(p)
		if p.Bullet {
			line = "• " + line
		}
		_, _ = fmt.Fprintln(os.Stdout, line)
	}

	if set.Len() > 0 {
		_, _ = fmt.Fprintln(os.Stdout)
		observability.NewPrinter(os.Stdout).PrintCoverage(coverage.AnalyzeDocument(doc, set))
	}
	return nil
}

// markRuns joins a paragraph's runs, wrapping bold text in **
func markRuns(p *document.Paragraph) string {
	var sb strings.Builder
	for _, r := range p.Runs {
		if r.Bold && strings.TrimSpace(r.Text) != "" {
			sb.WriteString("**" + r.Text + "**")
			continue
		}
		sb.WriteString(r.Text)
	}
	return sb.String()
}
