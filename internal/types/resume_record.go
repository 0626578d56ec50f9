// Package types provides type definitions for structured data used throughout the resume-formatter system.
//
//nolint:revive // types is a standard Go package name pattern
package types

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// ResumeRecord is the structured resume content consumed by the renderer.
// The renderer never mutates a record.
type ResumeRecord struct {
	Name                string          `json:"name" validate:"required"`
	Title               string          `json:"title,omitempty"`
	Contact             Contact         `json:"contact"`
	ProfessionalSummary []string        `json:"professional_summary,omitempty"`
	TechnicalSkills     SkillCategories `json:"technical_skills,omitempty"`
	Experience          []JobEntry      `json:"experience,omitempty"`
	Education           EducationList   `json:"education,omitempty"`
	Certifications      []string        `json:"certifications,omitempty"`
}

// Contact holds the optional contact fields shown in the header line
type Contact struct {
	Email     string `json:"email,omitempty"`
	Phone     string `json:"phone,omitempty"`
	Location  string `json:"location,omitempty"`
	LinkedIn  string `json:"linkedin,omitempty"`
	Portfolio string `json:"portfolio,omitempty"`
}

// JobEntry represents one position in the experience section
type JobEntry struct {
	Role             string    `json:"role"`
	Client           string    `json:"client,omitempty"`
	Company          string    `json:"company,omitempty"`
	Duration         string    `json:"duration"`
	Location         string    `json:"location,omitempty"`
	Responsibilities []string  `json:"responsibilities,omitempty"`
	Environment      []string  `json:"environment,omitempty"`
	Projects         []Project `json:"projects,omitempty"`
}

// Employer returns the client name, falling back to the company name.
func (j JobEntry) Employer() string {
	if c := strings.TrimSpace(j.Client); c != "" {
		return c
	}
	return strings.TrimSpace(j.Company)
}

// Project is a client engagement nested under a job (alternate schema only)
type Project struct {
	Name             string   `json:"name,omitempty"`
	Summary          string   `json:"summary,omitempty"`
	Responsibilities []string `json:"responsibilities,omitempty"`
	Environment      []string `json:"environment,omitempty"`
}

// Education represents a single education entry
type Education struct {
	Degree        string     `json:"degree,omitempty"`
	Field         string     `json:"field,omitempty"`
	Concentration string     `json:"concentration,omitempty"`
	Institution   string     `json:"institution,omitempty"`
	Location      string     `json:"location,omitempty"`
	Year          FlexString `json:"year,omitempty"`
}

// IsEmpty reports whether the entry has no displayable field at all.
func (e Education) IsEmpty() bool {
	return strings.TrimSpace(e.Degree) == "" &&
		strings.TrimSpace(e.Field) == "" &&
		strings.TrimSpace(e.Concentration) == "" &&
		strings.TrimSpace(e.Institution) == "" &&
		strings.TrimSpace(e.Location) == "" &&
		strings.TrimSpace(string(e.Year)) == ""
}

// EducationList accepts either a JSON array of entries or a single entry object.
type EducationList []Education

// UnmarshalJSON implements json.Unmarshaler
func (l *EducationList) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		*l = nil
		return nil
	}
	if trimmed[0] == '{' {
		var single Education
		if err := json.Unmarshal(trimmed, &single); err != nil {
			return err
		}
		*l = EducationList{single}
		return nil
	}
	var many []Education
	if err := json.Unmarshal(trimmed, &many); err != nil {
		return err
	}
	*l = many
	return nil
}

// FlexString is a string that also accepts JSON numbers (e.g. "year": 2019).
type FlexString string

// UnmarshalJSON implements json.Unmarshaler
func (f *FlexString) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if bytes.Equal(trimmed, []byte("null")) {
		*f = ""
		return nil
	}
	if len(trimmed) > 0 && trimmed[0] == '"' {
		var s string
		if err := json.Unmarshal(trimmed, &s); err != nil {
			return err
		}
		*f = FlexString(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(trimmed, &n); err != nil {
		return fmt.Errorf("expected string or number, got %s", string(trimmed))
	}
	if i, err := n.Int64(); err == nil {
		*f = FlexString(strconv.FormatInt(i, 10))
		return nil
	}
	*f = FlexString(n.String())
	return nil
}

// SkillCategory is one named group of skills
type SkillCategory struct {
	Name   string
	Skills []string
}

// SkillCategories keeps technical skills in the order the categories appear in
// the source document. A plain map would lose that order.
type SkillCategories []SkillCategory

// AllSkills returns every skill of every category in display order.
func (s SkillCategories) AllSkills() []string {
	var all []string
	for _, cat := range s {
		all = append(all, cat.Skills...)
	}
	return all
}

// UnmarshalJSON decodes a JSON object while preserving key order.
// Category values may be an array of strings or a single string.
func (s *SkillCategories) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if bytes.Equal(trimmed, []byte("null")) {
		*s = nil
		return nil
	}

	dec := json.NewDecoder(bytes.NewReader(trimmed))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("technical_skills must be an object")
	}

	var result SkillCategories
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := keyTok.(string)
		if !ok {
			return fmt.Errorf("technical_skills: unexpected key token %v", keyTok)
		}

		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return fmt.Errorf("technical_skills[%s]: %w", key, err)
		}
		skills, err := decodeSkillValue(raw)
		if err != nil {
			return fmt.Errorf("technical_skills[%s]: %w", key, err)
		}
		result = append(result, SkillCategory{Name: key, Skills: skills})
	}

	if _, err := dec.Token(); err != nil {
		return err
	}

	*s = result
	return nil
}

func decodeSkillValue(raw json.RawMessage) ([]string, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) > 0 && trimmed[0] == '"' {
		var single string
		if err := json.Unmarshal(trimmed, &single); err != nil {
			return nil, err
		}
		if strings.TrimSpace(single) == "" {
			return nil, nil
		}
		return []string{single}, nil
	}
	var skills []string
	if err := json.Unmarshal(trimmed, &skills); err != nil {
		return nil, fmt.Errorf("expected array of strings or string")
	}
	return skills, nil
}

// MarshalJSON writes the categories back as an ordered JSON object.
func (s SkillCategories) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, cat := range s {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(cat.Name)
		if err != nil {
			return nil, err
		}
		skills := cat.Skills
		if skills == nil {
			skills = []string{}
		}
		value, err := json.Marshal(skills)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
