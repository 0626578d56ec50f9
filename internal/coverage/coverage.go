// Package coverage reports which keywords appear in a generated resume.
package coverage

import (
	"strings"

	"github.com/jonathan/resume-formatter/internal/docx"
	"github.com/jonathan/resume-formatter/internal/document"
	"github.com/jonathan/resume-formatter/internal/highlight"
	"github.com/jonathan/resume-formatter/internal/keywords"
)

// KeywordCount holds the whole-word occurrences of one keyword
type KeywordCount struct {
	Keyword     string `json:"keyword"`
	Occurrences int    `json:"occurrences"`
	Bolded      int    `json:"bolded"`
}

// Report summarizes keyword coverage. CoverageScore is the share of
// keywords found at least once, between 0 and 1.
type Report struct {
	Keywords      []KeywordCount `json:"keywords"`
	Matched       []string       `json:"matched"`
	Missing       []string       `json:"missing"`
	CoverageScore float64        `json:"coverage_score"`
}

// Analyze counts keyword occurrences in plain text
func Analyze(text string, set keywords.Set) *Report {
	return analyze(text, "", set)
}

// AnalyzeDocument counts keyword occurrences in a document, including how
// many of them were highlighted. Bold headings, labels and skill categories
// are not highlights and do not count.
func AnalyzeDocument(doc *document.Document, set keywords.Set) *Report {
	var highlighted []string
	for _, p := range doc.Paragraphs() {
		highlighted = append(highlighted, p.KeywordText()...)
	}
	return analyze(doc.Text(), strings.Join(highlighted, "\n"), set)
}

// AnalyzeFile reads a .docx file and reports its keyword coverage
func AnalyzeFile(path string, set keywords.Set) (*Report, error) {
	doc, err := docx.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return AnalyzeDocument(doc, set), nil
}

func analyze(text, boldText string, set keywords.Set) *Report {
	terms := set.Terms()
	report := &Report{
		Keywords: make([]KeywordCount, 0, len(terms)),
		Matched:  []string{},
		Missing:  []string{},
	}

	for _, term := range terms {
		// one matcher per keyword so overlapping keywords are each counted
		h := highlight.New([]string{term})
		count := KeywordCount{
			Keyword:     term,
			Occurrences: len(h.Matches(text)),
		}
		if boldText != "" {
			count.Bolded = len(h.Matches(boldText))
		}
		report.Keywords = append(report.Keywords, count)

		if count.Occurrences > 0 {
			report.Matched = append(report.Matched, term)
		} else {
			report.Missing = append(report.Missing, term)
		}
	}

	if len(terms) > 0 {
		report.CoverageScore = float64(len(report.Matched)) / float64(len(terms))
	}
	return report
}
