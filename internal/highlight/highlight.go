// Package highlight splits text into plain and keyword segments for bold rendering.
package highlight

import (
	"regexp"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Segment is a contiguous span of the source text.
// Concatenating the Text of every segment yields the original string.
type Segment struct {
	Text        string `json:"text"`
	Highlighted bool   `json:"highlighted"`
}

// Match is an accepted keyword occurrence. Start and End are half-open byte
// offsets into the source text; Text is the source substring, not the keyword.
type Match struct {
	Start   int    `json:"start"`
	End     int    `json:"end"`
	Text    string `json:"text"`
	Keyword string `json:"keyword"`
}

type pattern struct {
	keyword string
	re      *regexp.Regexp
}

// Highlighter holds compiled keyword patterns. It is immutable after New and
// safe for concurrent use.
type Highlighter struct {
	patterns []pattern
}

// New compiles one case-insensitive literal pattern per keyword.
// Keywords are trimmed; blanks and case-insensitive duplicates are dropped.
func New(keywords []string) *Highlighter {
	h := &Highlighter{}
	seen := make(map[string]bool, len(keywords))
	for _, kw := range keywords {
		kw = strings.TrimSpace(kw)
		if kw == "" {
			continue
		}
		key := strings.ToLower(kw)
		if seen[key] {
			continue
		}
		seen[key] = true
		h.patterns = append(h.patterns, pattern{
			keyword: kw,
			re:      regexp.MustCompile(`(?i)` + regexp.QuoteMeta(kw)),
		})
	}
	return h
}

// Len returns the number of distinct keywords.
func (h *Highlighter) Len() int {
	return len(h.patterns)
}

// Highlight is a convenience wrapper for New(keywords).Segments(text).
// Word boundaries are only enforced on keyword edges that are letters, digits
// or '_', so "C++" and ".NET" still match next to a word character.
func Highlight(text string, keywords []string) []Segment {
	return New(keywords).Segments(text)
}

// candidate is a match before overlap resolution
type candidate struct {
	Match
	order int
}

// Matches returns the accepted, non-overlapping keyword occurrences in text
// ordered by position.
//
// Candidates are sorted by start offset; at equal starts the longer match
// comes first, then the keyword that was listed first. A candidate is accepted
// only when it starts at or after the end of the last accepted one; rejected
// candidates are dropped, never shortened.
func (h *Highlighter) Matches(text string) []Match {
	if text == "" || len(h.patterns) == 0 {
		return nil
	}

	var candidates []candidate
	for i, p := range h.patterns {
		for _, loc := range findWholeWord(text, p.re) {
			candidates = append(candidates, candidate{
				Match: Match{
					Start:   loc[0],
					End:     loc[1],
					Text:    text[loc[0]:loc[1]],
					Keyword: p.keyword,
				},
				order: i,
			})
		}
	}
	if len(candidates) == 0 {
		return nil
	}

	sort.SliceStable(candidates, func(a, b int) bool {
		ca, cb := candidates[a], candidates[b]
		if ca.Start != cb.Start {
			return ca.Start < cb.Start
		}
		if la, lb := ca.End-ca.Start, cb.End-cb.Start; la != lb {
			return la > lb
		}
		return ca.order < cb.order
	})

	accepted := make([]Match, 0, len(candidates))
	lastEnd := 0
	for _, c := range candidates {
		if len(accepted) > 0 && c.Start < lastEnd {
			continue
		}
		accepted = append(accepted, c.Match)
		lastEnd = c.End
	}
	return accepted
}

// Segments partitions text into plain and highlighted segments.
// Empty text yields a single empty plain segment; text without matches yields
// a single plain segment holding the whole text.
func (h *Highlighter) Segments(text string) []Segment {
	matches := h.Matches(text)
	if len(matches) == 0 {
		return []Segment{{Text: text}}
	}

	segments := make([]Segment, 0, len(matches)*2+1)
	last := 0
	for _, m := range matches {
		if m.Start > last {
			segments = append(segments, Segment{Text: text[last:m.Start]})
		}
		segments = append(segments, Segment{Text: m.Text, Highlighted: true})
		last = m.End
	}
	if last < len(text) {
		segments = append(segments, Segment{Text: text[last:]})
	}
	return segments
}

// HasHighlight reports whether any segment is highlighted.
func HasHighlight(segments []Segment) bool {
	for _, s := range segments {
		if s.Highlighted {
			return true
		}
	}
	return false
}

// findWholeWord returns every non-overlapping occurrence of re in text that
// is not glued to a neighbouring word character. When an occurrence fails the
// boundary check the scan resumes one rune later so that a valid occurrence
// overlapping the rejected one is still found.
func findWholeWord(text string, re *regexp.Regexp) [][2]int {
	var locs [][2]int
	pos := 0
	for pos < len(text) {
		loc := re.FindStringIndex(text[pos:])
		if loc == nil {
			break
		}
		start, end := pos+loc[0], pos+loc[1]
		if end == start {
			break
		}
		if isWholeWord(text, start, end) {
			locs = append(locs, [2]int{start, end})
			pos = end
			continue
		}
		_, size := utf8.DecodeRuneInString(text[start:])
		pos = start + size
	}
	return locs
}

// isWholeWord applies a word boundary on each edge where the matched text
// itself begins or ends with a word character. Edges made of punctuation
// (".NET", "C++") need no boundary.
func isWholeWord(text string, start, end int) bool {
	first, _ := utf8.DecodeRuneInString(text[start:end])
	if isWordRune(first) && start > 0 {
		prev, _ := utf8.DecodeLastRuneInString(text[:start])
		if isWordRune(prev) {
			return false
		}
	}

	last, _ := utf8.DecodeLastRuneInString(text[start:end])
	if isWordRune(last) && end < len(text) {
		next, _ := utf8.DecodeRuneInString(text[end:])
		if isWordRune(next) {
			return false
		}
	}
	return true
}

func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}
