package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-formatter/internal/keywords"
	"github.com/jonathan/resume-formatter/internal/observability"
	"github.com/jonathan/resume-formatter/internal/record"
	"github.com/jonathan/resume-formatter/internal/rendering"
)

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Render a resume record into a .docx document",
	Long: "Renders a resume record (standard or .NET layout) with one named style, or every style with --style all. " +
		"Skills, supplied keywords and the always-bold list are emphasized in bold. Output goes to " +
		"<out-dir>/<YYYY-MM-DD>/<Name><suffix>_<timestamp>.docx and existing files are never overwritten.",
	RunE: runRender,
}

var (
	renderInputFile    string
	renderStyle        string
	renderKeywords     []string
	renderKeywordsFile string
	renderBoldWords    string
	renderOutputDir    string
	renderFont         string
	renderFontSize     float64
	renderNoHighlight  bool
	renderFormat       string
	renderConfigFile   string
	renderVerbose      bool
)

func init() {
	renderCmd.Flags().StringVarP(&renderInputFile, "input", "i", "", "Path to resume record JSON file (required)")
	renderCmd.Flags().StringVarP(&renderStyle, "style", "s", rendering.DefaultStyle, "Style name (style_1..style_7, dotnet) or 'all'")
	renderCmd.Flags().StringArrayVarP(&renderKeywords, "keyword", "k", nil, "Keyword to bold (repeatable, comma separated allowed)")
	renderCmd.Flags().StringVar(&renderKeywordsFile, "keywords-file", "", "Path to JSON keyword list for this run")
	renderCmd.Flags().StringVar(&renderBoldWords, "bold-words", "", "Path to always-bold keyword list (default bold_words.json)")
	renderCmd.Flags().StringVarP(&renderOutputDir, "out-dir", "o", "", "Base output directory (default generated_resumes)")
	renderCmd.Flags().StringVar(&renderFont, "font", "", "Override the style's font family")
	renderCmd.Flags().Float64Var(&renderFontSize, "font-size", 0, "Override the style's base font size in points")
	renderCmd.Flags().BoolVar(&renderNoHighlight, "no-highlight", false, "Disable keyword bolding")
	renderCmd.Flags().StringVar(&renderFormat, "format", "auto", "Record format: auto, standard or dotnet")
	renderCmd.Flags().StringVar(&renderConfigFile, "config", "", "Path to JSON config file")
	renderCmd.Flags().BoolVarP(&renderVerbose, "verbose", "v", false, "Print detailed debug information")

	if err := renderCmd.MarkFlagRequired("input"); err != nil {
		panic(fmt.Sprintf("failed to mark input flag as required: %v", err))
	}

	rootCmd.AddCommand(renderCmd)
}

func runRender(cmd *cobra.Command, _ []string) error {
	settings, err := loadSettings(renderConfigFile)
	if err != nil {
		return err
	}

	// Flags win over the config file
	stringFlag(cmd, "style", renderStyle, &settings.Style)
	stringFlag(cmd, "keywords-file", renderKeywordsFile, &settings.KeywordsFile)
	stringFlag(cmd, "bold-words", renderBoldWords, &settings.BoldWords)
	stringFlag(cmd, "out-dir", renderOutputDir, &settings.OutputDir)
	stringFlag(cmd, "font", renderFont, &settings.Font)
	stringFlag(cmd, "format", renderFormat, &settings.Format)
	if cmd.Flags().Changed("font-size") {
		settings.FontSize = renderFontSize
	}
	boolFlag(cmd, "no-highlight", renderNoHighlight, &settings.NoHighlight)
	boolFlag(cmd, "verbose", renderVerbose, &settings.Verbose)

	if err := settings.Validate(); err != nil {
		return err
	}

	format, err := record.ParseFormat(settings.Format)
	if err != nil {
		return err
	}

	rec, err := record.LoadFile(renderInputFile, format)
	if err != nil {
		return fmt.Errorf("failed to load resume record: %w", err)
	}

	alwaysBold, err := keywords.NewAlwaysBold(settings.BoldWords).Terms()
	if err != nil {
		return fmt.Errorf("failed to load always-bold keywords: %w", err)
	}

	supplied, err := collectKeywords(settings, renderKeywords)
	if err != nil {
		return fmt.Errorf("failed to load keywords: %w", err)
	}
	set := keywords.ForRecord(rec, supplied, alwaysBold)

	cfgs, err := selectStyles(settings.Style, settings.Font, settings.FontSize, settings.NoHighlight)
	if err != nil {
		return err
	}

	var printer *observability.Printer
	if settings.Verbose {
		printer = observability.NewPrinter(os.Stdout)
		printer.PrintRecord(rec)
		printer.PrintKeywords(set.Terms())
	}

	renderer := rendering.NewRenderer(rendering.Options{OutputDir: settings.OutputDir})
	results, err := rendering.RenderAll(cmd.Context(), renderer, rec, cfgs, set)
	if err != nil {
		return fmt.Errorf("failed to render resume: %w", err)
	}

	if printer != nil {
		printer.PrintResults(results)
	}

	for _, res := range results {
		_, _ = fmt.Fprintf(os.Stdout, "Generated %s resume: %s\n", res.Style, res.Path)
	}
	return nil
}
