package rendering

import (
	"fmt"
	"strings"

	"github.com/jonathan/resume-formatter/internal/document"
)

// SectionKind names a body section of the resume
type SectionKind string

// Sections a config can order
const (
	SectionSummary        SectionKind = "summary"
	SectionExperience     SectionKind = "experience"
	SectionSkills         SectionKind = "skills"
	SectionEducation      SectionKind = "education"
	SectionCertifications SectionKind = "certifications"
)

// Title returns the heading text of the section
func (s SectionKind) Title() string {
	switch s {
	case SectionSummary:
		return "Professional Summary"
	case SectionExperience:
		return "Professional Experience"
	case SectionSkills:
		return "Technical Skills"
	case SectionEducation:
		return "Education"
	case SectionCertifications:
		return "Certifications"
	default:
		return string(s)
	}
}

func (s SectionKind) valid() bool {
	switch s {
	case SectionSummary, SectionExperience, SectionSkills, SectionEducation, SectionCertifications:
		return true
	}
	return false
}

// HeadingStyle is the decoration applied to section headings
type HeadingStyle string

// Heading styles
const (
	HeadingNone     HeadingStyle = "none"
	HeadingBordered HeadingStyle = "bordered"
	HeadingShaded   HeadingStyle = "shaded"
)

// ExperienceLayout selects how job entries are laid out
type ExperienceLayout string

// Experience layouts
const (
	// ExperienceStandard puts the role and the right-aligned duration on one
	// line and the client and location on the next
	ExperienceStandard ExperienceLayout = "standard"
	// ExperienceCompact is a single "Role || Client || Duration" line
	ExperienceCompact ExperienceLayout = "compact"
	// ExperienceProjects lists Client, Role and Project lines per project
	ExperienceProjects ExperienceLayout = "projects"
)

// SkillsLayout selects how technical skills are laid out
type SkillsLayout string

// Skills layouts
const (
	SkillsInline SkillsLayout = "inline"
	SkillsTable  SkillsLayout = "table"
)

// EducationLayout selects how education entries are laid out
type EducationLayout string

// Education layouts
const (
	EducationSpaced EducationLayout = "spaced"
	EducationPiped  EducationLayout = "piped"
)

// Config describes one visual variant of the resume. A Config is a value:
// the With methods return modified copies and never touch the receiver.
type Config struct {
	Name             string
	SectionOrder     []SectionKind
	HeadingStyle     HeadingStyle
	HeadingOverrides map[SectionKind]HeadingStyle
	NameAlignment    document.Alignment
	FontFamily       string
	BaseFontSizePt   float64
	NameFontSizePt   float64
	TitleFontSizePt  float64
	TitleBold        bool
	HighlightEnabled bool
	PageBorder       bool
	ExperienceLayout ExperienceLayout
	SkillsLayout     SkillsLayout
	EducationLayout  EducationLayout
	PortfolioLabel   string
	FileSuffix       string
}

// DefaultConfig returns the base config the named styles are derived from
func DefaultConfig() Config {
	return Config{
		Name: "default",
		SectionOrder: []SectionKind{
			SectionSummary,
			SectionExperience,
			SectionSkills,
			SectionEducation,
			SectionCertifications,
		},
		HeadingStyle:     HeadingBordered,
		NameAlignment:    document.AlignCenter,
		FontFamily:       "Calibri",
		BaseFontSizePt:   11,
		NameFontSizePt:   16,
		TitleFontSizePt:  12,
		HighlightEnabled: true,
		PageBorder:       true,
		ExperienceLayout: ExperienceStandard,
		SkillsLayout:     SkillsInline,
		EducationLayout:  EducationSpaced,
		PortfolioLabel:   "Portfolio",
	}
}

func (c Config) clone() Config {
	out := c
	out.SectionOrder = append([]SectionKind(nil), c.SectionOrder...)
	if c.HeadingOverrides != nil {
		out.HeadingOverrides = make(map[SectionKind]HeadingStyle, len(c.HeadingOverrides))
		for k, v := range c.HeadingOverrides {
			out.HeadingOverrides[k] = v
		}
	}
	return out
}

// WithName returns a copy with the style name set
func (c Config) WithName(name string) Config {
	out := c.clone()
	out.Name = name
	return out
}

// WithSectionOrder returns a copy with the given section order
func (c Config) WithSectionOrder(sections ...SectionKind) Config {
	out := c.clone()
	out.SectionOrder = append([]SectionKind(nil), sections...)
	return out
}

// WithHeadingStyle returns a copy using style for every heading without an override
func (c Config) WithHeadingStyle(style HeadingStyle) Config {
	out := c.clone()
	out.HeadingStyle = style
	return out
}

// WithHeadingOverride returns a copy where one section uses its own heading style
func (c Config) WithHeadingOverride(section SectionKind, style HeadingStyle) Config {
	out := c.clone()
	if out.HeadingOverrides == nil {
		out.HeadingOverrides = make(map[SectionKind]HeadingStyle)
	}
	out.HeadingOverrides[section] = style
	return out
}

// WithNameAlignment returns a copy with the header alignment set
func (c Config) WithNameAlignment(align document.Alignment) Config {
	out := c.clone()
	out.NameAlignment = align
	return out
}

// WithFont returns a copy using the given font family and base size.
// A zero size keeps the current one.
func (c Config) WithFont(family string, sizePt float64) Config {
	out := c.clone()
	if family != "" {
		out.FontFamily = family
	}
	if sizePt > 0 {
		out.BaseFontSizePt = sizePt
	}
	return out
}

// WithHighlight returns a copy with keyword bolding switched on or off
func (c Config) WithHighlight(enabled bool) Config {
	out := c.clone()
	out.HighlightEnabled = enabled
	return out
}

// WithPageBorder returns a copy with the page border switched on or off
func (c Config) WithPageBorder(enabled bool) Config {
	out := c.clone()
	out.PageBorder = enabled
	return out
}

// WithExperienceLayout returns a copy with the experience layout set
func (c Config) WithExperienceLayout(layout ExperienceLayout) Config {
	out := c.clone()
	out.ExperienceLayout = layout
	return out
}

// WithSkillsLayout returns a copy with the skills layout set
func (c Config) WithSkillsLayout(layout SkillsLayout) Config {
	out := c.clone()
	out.SkillsLayout = layout
	return out
}

// WithEducationLayout returns a copy with the education layout set
func (c Config) WithEducationLayout(layout EducationLayout) Config {
	out := c.clone()
	out.EducationLayout = layout
	return out
}

// WithTitle returns a copy with the title line size and weight set
func (c Config) WithTitle(sizePt float64, bold bool) Config {
	out := c.clone()
	if sizePt > 0 {
		out.TitleFontSizePt = sizePt
	}
	out.TitleBold = bold
	return out
}

// WithNameSize returns a copy with the name font size set
func (c Config) WithNameSize(sizePt float64) Config {
	out := c.clone()
	out.NameFontSizePt = sizePt
	return out
}

// WithPortfolioLabel returns a copy with the portfolio link text set
func (c Config) WithPortfolioLabel(label string) Config {
	out := c.clone()
	out.PortfolioLabel = label
	return out
}

// WithFileSuffix returns a copy with the output file name suffix set
func (c Config) WithFileSuffix(suffix string) Config {
	out := c.clone()
	out.FileSuffix = suffix
	return out
}

// HeadingFor returns the heading style of a section
func (c Config) HeadingFor(section SectionKind) HeadingStyle {
	if style, ok := c.HeadingOverrides[section]; ok {
		return style
	}
	return c.HeadingStyle
}

// Validate checks the config for values the renderer cannot honor
func (c Config) Validate() error {
	seen := make(map[SectionKind]bool, len(c.SectionOrder))
	for _, s := range c.SectionOrder {
		if !s.valid() {
			return &ConfigError{Field: "section_order", Message: fmt.Sprintf("unknown section %q", s)}
		}
		if seen[s] {
			return &ConfigError{Field: "section_order", Message: fmt.Sprintf("section %q listed more than once", s)}
		}
		seen[s] = true
	}

	if !validHeading(c.HeadingStyle) {
		return &ConfigError{Field: "heading_style", Message: fmt.Sprintf("unknown heading style %q", c.HeadingStyle)}
	}
	for s, style := range c.HeadingOverrides {
		if !validHeading(style) {
			return &ConfigError{Field: "heading_overrides", Message: fmt.Sprintf("unknown heading style %q for %s", style, s)}
		}
	}

	switch c.NameAlignment {
	case document.AlignCenter, document.AlignLeft:
	default:
		return &ConfigError{Field: "name_alignment", Message: fmt.Sprintf("must be center or left, got %q", c.NameAlignment)}
	}

	if strings.TrimSpace(c.FontFamily) == "" {
		return &ConfigError{Field: "font_family", Message: "is required"}
	}
	if c.BaseFontSizePt <= 0 || c.BaseFontSizePt > 72 {
		return &ConfigError{Field: "base_font_size", Message: fmt.Sprintf("must be between 0 and 72, got %v", c.BaseFontSizePt)}
	}

	switch c.ExperienceLayout {
	case ExperienceStandard, ExperienceCompact, ExperienceProjects:
	default:
		return &ConfigError{Field: "experience_layout", Message: fmt.Sprintf("unknown layout %q", c.ExperienceLayout)}
	}
	switch c.SkillsLayout {
	case SkillsInline, SkillsTable:
	default:
		return &ConfigError{Field: "skills_layout", Message: fmt.Sprintf("unknown layout %q", c.SkillsLayout)}
	}
	switch c.EducationLayout {
	case EducationSpaced, EducationPiped:
	default:
		return &ConfigError{Field: "education_layout", Message: fmt.Sprintf("unknown layout %q", c.EducationLayout)}
	}

	if strings.ContainsAny(c.FileSuffix, `/\`) {
		return &ConfigError{Field: "file_suffix", Message: "must not contain path separators"}
	}
	return nil
}

func validHeading(h HeadingStyle) bool {
	switch h {
	case HeadingNone, HeadingBordered, HeadingShaded:
		return true
	}
	return false
}
