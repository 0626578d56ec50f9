package highlight

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func joinSegments(segments []Segment) string {
	var sb strings.Builder
	for _, s := range segments {
		sb.WriteString(s.Text)
	}
	return sb.String()
}

func highlighted(segments []Segment) []string {
	var out []string
	for _, s := range segments {
		if s.Highlighted {
			out = append(out, s.Text)
		}
	}
	return out
}

func TestHighlight_EmptyText(t *testing.T) {
	segments := Highlight("", []string{"Go"})
	require.Len(t, segments, 1)
	assert.Equal(t, Segment{Text: ""}, segments[0])
}

func TestHighlight_NoKeywords(t *testing.T) {
	segments := Highlight("Built services in Go", nil)
	require.Len(t, segments, 1)
	assert.Equal(t, Segment{Text: "Built services in Go"}, segments[0])
}

func TestHighlight_BlankKeywordsIgnored(t *testing.T) {
	segments := Highlight("Built services in Go", []string{"", "   "})
	require.Len(t, segments, 1)
	assert.False(t, segments[0].Highlighted)
}

func TestHighlight_NoMatch(t *testing.T) {
	segments := Highlight("Built services in Rust", []string{"Go"})
	require.Len(t, segments, 1)
	assert.Equal(t, "Built services in Rust", segments[0].Text)
	assert.False(t, segments[0].Highlighted)
}

func TestHighlight_WordBoundary(t *testing.T) {
	assert.Empty(t, highlighted(Highlight("JavaScript expert", []string{"Java"})))
	assert.Equal(t, []string{"Java"}, highlighted(Highlight("Java expert", []string{"Java"})))
}

func TestHighlight_WordBoundaryBothSides(t *testing.T) {
	assert.Empty(t, highlighted(Highlight("Used PySpark daily", []string{"Spark"})))
	assert.Empty(t, highlighted(Highlight("snake_case_go", []string{"case"})))
	assert.Equal(t, []string{"Spark"}, highlighted(Highlight("Used Spark, daily", []string{"Spark"})))
}

func TestHighlight_CaseInsensitivePreservesSourceCasing(t *testing.T) {
	segments := Highlight("Built in Python.", []string{"python"})
	assert.Equal(t, []string{"Python"}, highlighted(segments))
	assert.Equal(t, "Built in Python.", joinSegments(segments))
}

func TestHighlight_OverlapKeepsLongerAtSameStart(t *testing.T) {
	for _, kws := range [][]string{
		{"Data Engineer", "Data"},
		{"Data", "Data Engineer"},
	} {
		segments := Highlight("Data Engineer role", kws)
		assert.Equal(t, []string{"Data Engineer"}, highlighted(segments), "keywords %v", kws)
		assert.Equal(t, "Data Engineer role", joinSegments(segments))
	}
}

func TestHighlight_OverlapFirstStartWins(t *testing.T) {
	// "Machine Learning" starts first; "Learning Systems" overlaps it and is dropped entirely
	segments := Highlight("Machine Learning Systems team", []string{"Learning Systems", "Machine Learning"})
	assert.Equal(t, []string{"Machine Learning"}, highlighted(segments))
	assert.Equal(t, "Machine Learning Systems team", joinSegments(segments))
}

func TestHighlight_RegexMetacharactersAreLiteral(t *testing.T) {
	tests := []struct {
		text    string
		keyword string
		want    []string
	}{
		{text: "Expert in C++ and Go", keyword: "C++", want: []string{"C++"}},
		{text: "Built on .NET Core", keyword: ".NET", want: []string{".NET"}},
		{text: "Node.js services", keyword: "Node.js", want: []string{"Node.js"}},
		{text: "NodeXjs services", keyword: "Node.js", want: nil},
		{text: "CI/CD pipelines", keyword: "CI/CD", want: []string{"CI/CD"}},
		{text: "a (b) c", keyword: "(b)", want: []string{"(b)"}},
		// punctuation edges carry no boundary check
		{text: "ASP.NET MVC", keyword: ".NET", want: []string{".NET"}},
		{text: "C++17 toolchain", keyword: "C++", want: []string{"C++"}},
		{text: "XC++ toolchain", keyword: "C++", want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.keyword+"_"+tt.text, func(t *testing.T) {
			segments := Highlight(tt.text, []string{tt.keyword})
			assert.Equal(t, tt.want, highlighted(segments))
			assert.Equal(t, tt.text, joinSegments(segments))
		})
	}
}

func TestHighlight_MultipleOccurrences(t *testing.T) {
	text := "AWS Lambda on AWS with aws-sdk"
	segments := Highlight(text, []string{"AWS"})
	assert.Equal(t, []string{"AWS", "AWS", "aws"}, highlighted(segments))
	assert.Equal(t, text, joinSegments(segments))
}

func TestHighlight_SegmentOrder(t *testing.T) {
	segments := Highlight("Led migration to AWS and Python microservices", []string{"AWS", "Python"})
	assert.Equal(t, []Segment{
		{Text: "Led migration to "},
		{Text: "AWS", Highlighted: true},
		{Text: " and "},
		{Text: "Python", Highlighted: true},
		{Text: " microservices"},
	}, segments)
}

func TestHighlight_MatchAtEdges(t *testing.T) {
	segments := Highlight("Go", []string{"go"})
	assert.Equal(t, []Segment{{Text: "Go", Highlighted: true}}, segments)
}

func TestHighlight_RetriesAfterRejectedOccurrence(t *testing.T) {
	// the first "ab" is glued to "x"; the later standalone one still matches
	segments := Highlight("xab ab", []string{"ab"})
	assert.Equal(t, []string{"ab"}, highlighted(segments))
	assert.Equal(t, "xab ab", joinSegments(segments))
}

func TestHighlight_UnicodeBoundaries(t *testing.T) {
	assert.Empty(t, highlighted(Highlight("résumé", []string{"sum"})))
	assert.Equal(t, []string{"Café"}, highlighted(Highlight("Café ops", []string{"café"})))
}

func TestMatches_Offsets(t *testing.T) {
	h := New([]string{"Kafka"})
	matches := h.Matches("Streams via Kafka.")
	require.Len(t, matches, 1)
	assert.Equal(t, 12, matches[0].Start)
	assert.Equal(t, 17, matches[0].End)
	assert.Equal(t, "Kafka", matches[0].Text)
	assert.Equal(t, "Kafka", matches[0].Keyword)
}

func TestNew_DedupesCaseInsensitively(t *testing.T) {
	h := New([]string{"Go", "go", " GO ", "Rust"})
	assert.Equal(t, 2, h.Len())
}

func TestHighlight_Properties(t *testing.T) {
	texts := []string{
		"",
		"Designed Spark and PySpark jobs on AWS EMR",
		"Data Engineer with Data Engineering background",
		"python, Python, PYTHON",
		"C++/C# and .NET; Go-based APIs",
		"unicode: naïve café Δelta",
	}
	keywordSets := [][]string{
		nil,
		{"Spark", "AWS", "AWS EMR"},
		{"Data", "Data Engineer", "Engineering"},
		{"python"},
		{"C++", "C#", ".NET", "Go"},
		{"café", "Δelta", "naïve café"},
	}

	for _, text := range texts {
		for _, kws := range keywordSets {
			h := New(kws)
			segments := h.Segments(text)

			// reconstruction
			assert.Equal(t, text, joinSegments(segments))

			// determinism
			assert.Equal(t, segments, h.Segments(text))

			// non-overlap and ordering
			matches := h.Matches(text)
			for i := 1; i < len(matches); i++ {
				assert.GreaterOrEqual(t, matches[i].Start, matches[i-1].End)
			}

			// each highlighted segment is exactly one accepted match
			assert.Equal(t, len(matches), len(highlighted(segments)))
		}
	}
}

func TestHasHighlight(t *testing.T) {
	assert.False(t, HasHighlight([]Segment{{Text: "a"}}))
	assert.True(t, HasHighlight([]Segment{{Text: "a"}, {Text: "b", Highlighted: true}}))
}
