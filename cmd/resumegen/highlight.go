package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-formatter/internal/highlight"
	"github.com/jonathan/resume-formatter/internal/observability"
)

var highlightCmd = &cobra.Command{
	Use:   "highlight",
	Short: "Show which keyword occurrences would be bolded in a text",
	Long:  "Runs the keyword highlighter over --text (or stdin) and prints the text with bold spans wrapped in **.",
	RunE:  runHighlight,
}

var (
	highlightText     string
	highlightKeywords []string
	highlightJSON     bool
	highlightVerbose  bool
)

func init() {
	highlightCmd.Flags().StringVarP(&highlightText, "text", "t", "", "Text to highlight (reads stdin when empty)")
	highlightCmd.Flags().StringArrayVarP(&highlightKeywords, "keyword", "k", nil, "Keyword to bold (repeatable, comma separated allowed)")
	highlightCmd.Flags().BoolVar(&highlightJSON, "json", false, "Print segments and matches as JSON")
	highlightCmd.Flags().BoolVarP(&highlightVerbose, "verbose", "v", false, "Print a formatted summary box")

	rootCmd.AddCommand(highlightCmd)
}

func runHighlight(cmd *cobra.Command, _ []string) error {
	text := highlightText
	if !cmd.Flags().Changed("text") {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return fmt.Errorf("failed to read stdin: %w", err)
		}
		text = strings.TrimRight(string(data), "\r\n")
	}

	h := highlight.New(splitKeywords(highlightKeywords))
	segments := h.Segments(text)

	if highlightJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		matches := h.Matches(text)
		if matches == nil {
			matches = []highlight.Match{}
		}
		return enc.Encode(map[string]any{"segments": segments, "matches": matches})
	}

	if highlightVerbose {
		observability.NewPrinter(os.Stdout).PrintSegments(segments)
		return nil
	}

	_, _ = fmt.Fprintln(os.Stdout, markBold(segments))
	return nil
}

// markBold renders segments with highlighted spans wrapped in **
func markBold(segments []highlight.Segment) string {
	var sb strings.Builder
	for _, s := range segments {
		if s.Highlighted {
			sb.WriteString("**" + s.Text + "**")
			continue
		}
		sb.WriteString(s.Text)
	}
	return sb.String()
}
