package rendering

import (
	"fmt"
	"strings"

	"github.com/jonathan/resume-formatter/internal/document"
)

// DefaultStyle is used when no style is named
const DefaultStyle = "style_5"

var (
	experienceFirst = []SectionKind{SectionSummary, SectionExperience, SectionSkills, SectionEducation, SectionCertifications}
	skillsFirst     = []SectionKind{SectionSummary, SectionSkills, SectionExperience, SectionEducation, SectionCertifications}
)

// Styles returns the named styles in a stable order. Each call returns
// fresh values.
func Styles() []Config {
	base := DefaultConfig()
	return []Config{
		base.WithName("style_1").
			WithSectionOrder(experienceFirst...).
			WithFileSuffix("_CV"),
		base.WithName("style_2").
			WithSectionOrder(experienceFirst...).
			WithHeadingStyle(HeadingShaded).
			WithFileSuffix("_style_2_conditional"),
		base.WithName("style_3").
			WithSectionOrder(experienceFirst...).
			WithHeadingStyle(HeadingShaded).
			WithExperienceLayout(ExperienceCompact).
			WithFileSuffix("_style_3_enhanced"),
		base.WithName("style_4").
			WithSectionOrder(skillsFirst...).
			WithHeadingStyle(HeadingShaded).
			WithExperienceLayout(ExperienceCompact).
			WithFileSuffix("_style_4_ordered"),
		base.WithName("style_5").
			WithSectionOrder(skillsFirst...),
		base.WithName("style_6").
			WithSectionOrder(skillsFirst...).
			WithFileSuffix("_style_6_shading_tech_second"),
		base.WithName("style_7").
			WithSectionOrder(experienceFirst...).
			WithNameAlignment(document.AlignLeft).
			WithTitle(12, true).
			WithPortfolioLabel("GitHub").
			WithFileSuffix("_style_7_left_name"),
		base.WithName("dotnet").
			WithSectionOrder(skillsFirst...).
			WithHeadingOverride(SectionSkills, HeadingNone).
			WithNameAlignment(document.AlignLeft).
			WithFont("Times New Roman", 9).
			WithNameSize(12).
			WithTitle(10, false).
			WithPageBorder(false).
			WithExperienceLayout(ExperienceProjects).
			WithSkillsLayout(SkillsTable).
			WithEducationLayout(EducationPiped).
			WithFileSuffix("_dotnet"),
	}
}

// StyleNames lists the names of the built-in styles
func StyleNames() []string {
	styles := Styles()
	names := make([]string, len(styles))
	for i, s := range styles {
		names[i] = s.Name
	}
	return names
}

// LookupStyle returns the named style. Names are matched case-insensitively
// and a bare number selects style_<n>.
func LookupStyle(name string) (Config, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	if key == "" {
		key = DefaultStyle
	}
	if len(key) == 1 && key[0] >= '1' && key[0] <= '9' {
		key = "style_" + key
	}
	for _, s := range Styles() {
		if s.Name == key {
			return s, nil
		}
	}
	return Config{}, &ConfigError{
		Field:   "style",
		Message: fmt.Sprintf("unknown style %q (available: %s)", name, strings.Join(StyleNames(), ", ")),
	}
}
