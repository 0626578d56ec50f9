package rendering

import (
	"errors"
	"testing"

	"github.com/jonathan/resume-formatter/internal/document"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig_Valid(t *testing.T) {
	require.NoError(t, DefaultConfig().Validate())
}

func TestConfig_WithMethodsDoNotMutateReceiver(t *testing.T) {
	base := DefaultConfig()
	changed := base.
		WithSectionOrder(SectionSkills).
		WithHeadingOverride(SectionSkills, HeadingNone).
		WithHighlight(false).
		WithFont("Arial", 10)

	assert.Len(t, base.SectionOrder, 5)
	assert.Nil(t, base.HeadingOverrides)
	assert.True(t, base.HighlightEnabled)
	assert.Equal(t, "Calibri", base.FontFamily)

	assert.Equal(t, []SectionKind{SectionSkills}, changed.SectionOrder)
	assert.Equal(t, HeadingNone, changed.HeadingFor(SectionSkills))
	assert.False(t, changed.HighlightEnabled)
	assert.Equal(t, 10.0, changed.BaseFontSizePt)
}

func TestConfig_OverrideMapIsCopied(t *testing.T) {
	a := DefaultConfig().WithHeadingOverride(SectionSkills, HeadingNone)
	b := a.WithHeadingOverride(SectionSkills, HeadingShaded)

	assert.Equal(t, HeadingNone, a.HeadingFor(SectionSkills))
	assert.Equal(t, HeadingShaded, b.HeadingFor(SectionSkills))
	assert.Equal(t, HeadingBordered, b.HeadingFor(SectionSummary))
}

func TestConfig_WithFontKeepsZeroValues(t *testing.T) {
	cfg := DefaultConfig().WithFont("", 0)
	assert.Equal(t, "Calibri", cfg.FontFamily)
	assert.Equal(t, 11.0, cfg.BaseFontSizePt)
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name  string
		cfg   Config
		field string
	}{
		{name: "duplicate section", cfg: DefaultConfig().WithSectionOrder(SectionSummary, SectionSummary), field: "section_order"},
		{name: "unknown section", cfg: DefaultConfig().WithSectionOrder("hobbies"), field: "section_order"},
		{name: "bad heading", cfg: DefaultConfig().WithHeadingStyle("wavy"), field: "heading_style"},
		{name: "bad override", cfg: DefaultConfig().WithHeadingOverride(SectionSkills, "wavy"), field: "heading_overrides"},
		{name: "right aligned name", cfg: DefaultConfig().WithNameAlignment(document.AlignRight), field: "name_alignment"},
		{name: "zero font size", cfg: Config{SectionOrder: nil, HeadingStyle: HeadingNone, NameAlignment: document.AlignLeft, FontFamily: "Arial"}, field: "base_font_size"},
		{name: "bad experience layout", cfg: DefaultConfig().WithExperienceLayout("grid"), field: "experience_layout"},
		{name: "bad skills layout", cfg: DefaultConfig().WithSkillsLayout("cloud"), field: "skills_layout"},
		{name: "bad education layout", cfg: DefaultConfig().WithEducationLayout("tree"), field: "education_layout"},
		{name: "suffix with separator", cfg: DefaultConfig().WithFileSuffix("/../x"), field: "file_suffix"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			require.Error(t, err)
			var cfgErr *ConfigError
			require.True(t, errors.As(err, &cfgErr))
			assert.Equal(t, tt.field, cfgErr.Field)
		})
	}
}

func TestConfig_EmptySectionOrderIsValid(t *testing.T) {
	assert.NoError(t, DefaultConfig().WithSectionOrder().Validate())
}

func TestSectionKind_Title(t *testing.T) {
	assert.Equal(t, "Professional Summary", SectionSummary.Title())
	assert.Equal(t, "Technical Skills", SectionSkills.Title())
	assert.Equal(t, "custom", SectionKind("custom").Title())
}
