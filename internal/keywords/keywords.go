// Package keywords builds the keyword sets used for bolding resume text.
package keywords

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"sort"
	"strings"
	"sync"

	"github.com/jonathan/resume-formatter/internal/types"
)

// Set is an ordered, case-insensitively deduplicated list of keywords.
// The first casing seen for a keyword is kept.
type Set struct {
	terms []string
	index map[string]struct{}
}

// NewSet merges the given lists. Terms are trimmed and blanks are dropped.
func NewSet(lists ...[]string) Set {
	s := Set{index: make(map[string]struct{})}
	for _, list := range lists {
		for _, term := range list {
			s.add(term)
		}
	}
	return s
}

func (s *Set) add(term string) {
	term = strings.TrimSpace(term)
	if term == "" {
		return
	}
	key := strings.ToLower(term)
	if _, ok := s.index[key]; ok {
		return
	}
	s.index[key] = struct{}{}
	s.terms = append(s.terms, term)
}

// Terms returns a copy of the keywords in insertion order.
func (s Set) Terms() []string {
	out := make([]string, len(s.terms))
	copy(out, s.terms)
	return out
}

// Len returns the number of distinct keywords
func (s Set) Len() int {
	return len(s.terms)
}

// Contains reports whether term is in the set, ignoring case.
func (s Set) Contains(term string) bool {
	_, ok := s.index[strings.ToLower(strings.TrimSpace(term))]
	return ok
}

// ForRecord builds the keyword set for one render.
//
// The record's technical skills take part only when the caller supplied a
// non-empty keyword list; the always-bold terms always do.
func ForRecord(record *types.ResumeRecord, supplied, alwaysBold []string) Set {
	supplied = nonBlank(supplied)
	var skills []string
	if len(supplied) > 0 && record != nil {
		skills = record.TechnicalSkills.AllSkills()
	}
	return NewSet(skills, supplied, alwaysBold)
}

func nonBlank(list []string) []string {
	out := make([]string, 0, len(list))
	for _, s := range list {
		if strings.TrimSpace(s) != "" {
			out = append(out, s)
		}
	}
	return out
}

// ParseList decodes a keyword file. Accepted shapes are a JSON array of
// strings, an object with a "keywords" array, or any object whose string and
// string-array values are collected (keys visited in sorted order).
func ParseList(data []byte) ([]string, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, nil
	}

	switch trimmed[0] {
	case '[':
		var list []string
		if err := json.Unmarshal(trimmed, &list); err != nil {
			return nil, fmt.Errorf("failed to parse keyword list: %w", err)
		}
		return list, nil
	case '{':
		var obj map[string]json.RawMessage
		if err := json.Unmarshal(trimmed, &obj); err != nil {
			return nil, fmt.Errorf("failed to parse keyword object: %w", err)
		}
		if raw, ok := obj["keywords"]; ok {
			var list []string
			if err := json.Unmarshal(raw, &list); err != nil {
				return nil, fmt.Errorf("failed to parse \"keywords\" array: %w", err)
			}
			return list, nil
		}
		return collectValues(obj), nil
	default:
		return nil, fmt.Errorf("keyword file must contain a JSON array or object")
	}
}

func collectValues(obj map[string]json.RawMessage) []string {
	keys := make([]string, 0, len(obj))
	for k := range obj {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var out []string
	for _, k := range keys {
		var single string
		if err := json.Unmarshal(obj[k], &single); err == nil {
			out = append(out, single)
			continue
		}
		var list []string
		if err := json.Unmarshal(obj[k], &list); err == nil {
			out = append(out, list...)
		}
	}
	return out
}

// LoadList reads a keyword file. An empty path or a missing file yields an
// empty list; a file that exists but cannot be parsed is an error.
func LoadList(path string) ([]string, error) {
	if path == "" {
		return nil, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read keyword file %s: %w", path, err)
	}
	list, err := ParseList(data)
	if err != nil {
		return nil, fmt.Errorf("keyword file %s: %w", path, err)
	}
	return list, nil
}

// AlwaysBold holds the process-wide always-bold keyword list. The file is
// read at most once; later calls return the same immutable terms.
type AlwaysBold struct {
	path  string
	once  sync.Once
	terms []string
	err   error
}

// NewAlwaysBold creates a holder for the list stored at path
func NewAlwaysBold(path string) *AlwaysBold {
	return &AlwaysBold{path: path}
}

// Terms loads the list on first use and returns a copy of it.
func (a *AlwaysBold) Terms() ([]string, error) {
	a.once.Do(func() {
		list, err := LoadList(a.path)
		if err != nil {
			a.err = err
			return
		}
		a.terms = NewSet(list).Terms()
		log.Printf("[keywords] Loaded %d always-bold keywords from %s", len(a.terms), a.path)
	})
	if a.err != nil {
		return nil, a.err
	}
	out := make([]string, len(a.terms))
	copy(out, a.terms)
	return out, nil
}
