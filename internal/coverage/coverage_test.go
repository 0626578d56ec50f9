package coverage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/jonathan/resume-formatter/internal/docx"
	"github.com/jonathan/resume-formatter/internal/document"
	"github.com/jonathan/resume-formatter/internal/keywords"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnalyze(t *testing.T) {
	set := keywords.NewSet([]string{"Java", "AWS", "Kubernetes", "Data Engineer", "Data"})
	report := Analyze("Data Engineer shipping JavaScript and AWS Lambda on AWS", set)

	assert.Equal(t, []string{"AWS", "Data Engineer", "Data"}, report.Matched)
	assert.Equal(t, []string{"Java", "Kubernetes"}, report.Missing)
	assert.InDelta(t, 0.6, report.CoverageScore, 1e-9)

	counts := map[string]int{}
	for _, k := range report.Keywords {
		counts[k.Keyword] = k.Occurrences
	}
	assert.Equal(t, 2, counts["AWS"])
	assert.Equal(t, 0, counts["Java"])
	assert.Equal(t, 1, counts["Data"])
}

func TestAnalyze_EmptySet(t *testing.T) {
	report := Analyze("anything", keywords.Set{})
	assert.Empty(t, report.Keywords)
	assert.Empty(t, report.Matched)
	assert.Equal(t, 0.0, report.CoverageScore)
}

func sampleDoc() *document.Document {
	doc := document.New("Calibri", 11)
	doc.AddParagraph().Add(
		document.Run{Text: "Moved jobs to "},
		document.Run{Text: "AWS", Bold: true, Keyword: true},
		document.Run{Text: " with Python"},
	)
	doc.AddParagraph().Add(document.Run{Text: "Cloud: ", Bold: true}, document.Run{Text: "AWS, GCP"})
	return doc
}

func TestAnalyzeDocument_CountsBolded(t *testing.T) {
	report := AnalyzeDocument(sampleDoc(), keywords.NewSet([]string{"AWS", "Python", "Go"}))

	require.Len(t, report.Keywords, 3)
	assert.Equal(t, KeywordCount{Keyword: "AWS", Occurrences: 2, Bolded: 1}, report.Keywords[0])
	assert.Equal(t, KeywordCount{Keyword: "Python", Occurrences: 1, Bolded: 0}, report.Keywords[1])
	assert.Equal(t, []string{"Go"}, report.Missing)
}

func TestAnalyzeDocument_IgnoresBoldLabels(t *testing.T) {
	doc := sampleDoc()
	heading := doc.AddParagraph().Add(document.Run{Text: "CLOUD EXPERIENCE", Bold: true})
	heading.BorderBottom = true

	report := AnalyzeDocument(doc, keywords.NewSet([]string{"Cloud"}))

	require.Len(t, report.Keywords, 1)
	assert.Equal(t, KeywordCount{Keyword: "Cloud", Occurrences: 2, Bolded: 0}, report.Keywords[0])
}

func TestAnalyzeFile(t *testing.T) {
	data, err := docx.Bytes(sampleDoc())
	require.NoError(t, err)
	path := filepath.Join(t.TempDir(), "cv.docx")
	require.NoError(t, os.WriteFile(path, data, 0644))

	report, err := AnalyzeFile(path, keywords.NewSet([]string{"AWS", "GCP"}))
	require.NoError(t, err)
	assert.Equal(t, 1.0, report.CoverageScore)
	assert.Equal(t, 1, report.Keywords[0].Bolded)

	_, err = AnalyzeFile(filepath.Join(t.TempDir(), "missing.docx"), keywords.NewSet([]string{"AWS"}))
	assert.Error(t, err)
}
