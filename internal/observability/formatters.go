// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/jonathan/resume-formatter/internal/coverage"
	"github.com/jonathan/resume-formatter/internal/highlight"
	"github.com/jonathan/resume-formatter/internal/rendering"
	"github.com/jonathan/resume-formatter/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// truncate shortens s to at most n runes, ending with "..."
func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	runes := []rune(s)
	return string(runes[:n-3]) + "..."
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	for _, line := range strings.Split(content, "\n") {
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, truncate(line, boxWidth-4))
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintRecord outputs a short summary of the loaded resume record.
func (p *Printer) PrintRecord(record *types.ResumeRecord) {
	if record == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Name:     %s\n", record.Name))
	if record.Title != "" {
		sb.WriteString(fmt.Sprintf("Title:    %s\n", record.Title))
	}
	sb.WriteString("\n")
	sb.WriteString(fmt.Sprintf("Summary bullets:  %d\n", len(record.ProfessionalSummary)))
	sb.WriteString(fmt.Sprintf("Skill categories: %d\n", len(record.TechnicalSkills)))
	sb.WriteString(fmt.Sprintf("Jobs:             %d\n", len(record.Experience)))
	sb.WriteString(fmt.Sprintf("Education:        %d\n", len(record.Education)))
	sb.WriteString(fmt.Sprintf("Certifications:   %d", len(record.Certifications)))

	p.printBox("RESUME RECORD", sb.String())
}

// PrintKeywords outputs the keyword set used for highlighting.
func (p *Printer) PrintKeywords(terms []string) {
	var sb strings.Builder
	if len(terms) == 0 {
		sb.WriteString("No keywords; nothing will be bolded")
		p.printBox("KEYWORDS", sb.String())
		return
	}

	sb.WriteString(fmt.Sprintf("Total keywords: %d\n\n", len(terms)))
	count := min(len(terms), maxItemsToShow*2)
	for i := 0; i < count; i++ {
		sb.WriteString(fmt.Sprintf("  • %s\n", terms[i]))
	}
	if len(terms) > count {
		sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(terms)-count))
	}

	p.printBox("KEYWORDS", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintResults outputs the documents written by a render.
func (p *Printer) PrintResults(results []*rendering.Result) {
	if len(results) == 0 {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Generated %d document(s):\n\n", len(results)))

	for i, res := range results {
		if res == nil {
			continue
		}
		sb.WriteString(fmt.Sprintf("#%d  %s\n", i+1, res.Style))
		sb.WriteString(fmt.Sprintf("    File: %s\n", filepath.Base(res.Path)))
		sb.WriteString(fmt.Sprintf("    Paragraphs: %d  Bolded: %d", res.Paragraphs, res.HighlightedRuns))
		if i < len(results)-1 {
			sb.WriteString("\n\n")
		}
	}

	p.printBox("RENDERED RESUMES", sb.String())
}

// PrintSegments outputs highlighter segments with bold spans wrapped in **.
func (p *Printer) PrintSegments(segments []highlight.Segment) {
	var sb strings.Builder
	matched := 0
	for _, s := range segments {
		if s.Highlighted {
			matched++
			sb.WriteString("**" + s.Text + "**")
			continue
		}
		sb.WriteString(s.Text)
	}

	content := fmt.Sprintf("Matches: %d\n\n%s", matched, wrap(sb.String(), boxWidth-4))
	p.printBox("HIGHLIGHTED TEXT", content)
}

// PrintCoverage outputs a keyword coverage report.
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) PrintCoverage(report *coverage.Report) {
	if report == nil || len(report.Keywords) == 0 {
		fmt.Fprintf(p.out, "┌%s┐\n", strings.Repeat("─", boxWidth-2))
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, "NO KEYWORDS TO CHECK")
		fmt.Fprintf(p.out, "└%s┘\n", strings.Repeat("─", boxWidth-2))
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Coverage: %.0f%% (%d of %d keywords)\n\n",
		report.CoverageScore*100, len(report.Matched), len(report.Keywords)))

	for _, kc := range report.Keywords {
		mark := "✓"
		if kc.Occurrences == 0 {
			mark = "✗"
		}
		sb.WriteString(fmt.Sprintf("%s %-30s %3d found, %3d bold\n",
			mark, truncate(kc.Keyword, 30), kc.Occurrences, kc.Bolded))
	}

	if len(report.Missing) > 0 {
		sb.WriteString(fmt.Sprintf("\nMissing: %s", strings.Join(report.Missing, ", ")))
	}

	p.printBox("KEYWORD COVERAGE", strings.TrimSuffix(sb.String(), "\n"))
}

// wrap breaks s into lines of at most width runes on spaces
func wrap(s string, width int) string {
	var lines []string
	var line strings.Builder
	for _, word := range strings.Fields(s) {
		if line.Len() > 0 && utf8.RuneCountInString(line.String())+1+utf8.RuneCountInString(word) > width {
			lines = append(lines, line.String())
			line.Reset()
		}
		if line.Len() > 0 {
			line.WriteByte(' ')
		}
		line.WriteString(word)
	}
	if line.Len() > 0 {
		lines = append(lines, line.String())
	}
	return strings.Join(lines, "\n")
}
