package record

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/jonathan/resume-formatter/internal/schemas"
	"github.com/jonathan/resume-formatter/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const standardRecord = `{
  "name": "Jane Doe",
  "title": "Data Engineer",
  "contact": {"email": "jane@example.com", "phone": "555-0100", "linkedin": "https://linkedin.com/in/janedoe"},
  "professional_summary": ["Built AWS data pipelines in Python"],
  "technical_skills": {"Languages": ["Python", "SQL"], "Cloud": ["AWS"], "Tools": "Airflow"},
  "experience": [
    {"role": "Data Engineer", "client": "Acme", "duration": "Jan 2021 - Present", "location": "Remote",
     "responsibilities": ["Migrated ETL to AWS Glue"], "environment": ["AWS", "Python"]}
  ],
  "education": {"degree": "B.S.", "field": "Computer Science", "institution": "State University", "year": 2018},
  "certifications": ["AWS Certified Data Analytics"]
}`

const dotNetRecord = `{
  "personal_info": {"name": "Ravi Kumar", "title": ".NET Developer", "email": "ravi@example.com",
                    "phone": "555-0101", "location": "Dallas, TX", "linkedin": "linkedin.com/in/ravi"},
  "professional_summary": ["Built C# services on .NET Core"],
  "technical_skills": {"programming_languages": ["C#", "TypeScript"], "cloud": ["Azure"]},
  "experience": [
    {"company": "Contoso", "location": "Austin, TX", "role": "Senior .NET Developer",
     "start_date": "Mar 2020", "end_date": "Present",
     "project": [
       {"name": "Claims Portal", "project_summary": "Modernized the claims workflow.",
        "responsibilities": ["Built Web APIs"], "environment": "C#, .NET 6, Azure"},
       {"name": "Billing", "responsibilities": ["Wrote reports"], "environment": ["SQL Server"]}
     ]}
  ],
  "education": [{"degree": "MCA", "institution": "Osmania University", "location": "Hyderabad", "year": "2012"}],
  "certifications": ["AZ-204"]
}`

func TestParseFormat(t *testing.T) {
	tests := []struct {
		input   string
		want    Format
		wantErr bool
	}{
		{input: "", want: FormatAuto},
		{input: "auto", want: FormatAuto},
		{input: "Standard", want: FormatStandard},
		{input: "dotnet", want: FormatDotNet},
		{input: ".NET", want: FormatDotNet},
		{input: "yaml", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseFormat(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDetect(t *testing.T) {
	assert.Equal(t, FormatStandard, Detect([]byte(standardRecord)))
	assert.Equal(t, FormatDotNet, Detect([]byte(dotNetRecord)))
	assert.Equal(t, FormatDotNet, Detect([]byte(`{"experience": [{"project": []}]}`)))
	assert.Equal(t, FormatStandard, Detect([]byte(`{"personal_info": null}`)))
	assert.Equal(t, FormatStandard, Detect([]byte(`[1, 2]`)))
}

func TestParse_Standard(t *testing.T) {
	record, err := Parse([]byte(standardRecord), FormatAuto)
	require.NoError(t, err)

	assert.Equal(t, "Jane Doe", record.Name)
	assert.Equal(t, "Data Engineer", record.Title)
	assert.Equal(t, "jane@example.com", record.Contact.Email)
	require.Len(t, record.TechnicalSkills, 3)
	assert.Equal(t, "Languages", record.TechnicalSkills[0].Name)
	assert.Equal(t, "Cloud", record.TechnicalSkills[1].Name)
	assert.Equal(t, []string{"Airflow"}, record.TechnicalSkills[2].Skills)
	require.Len(t, record.Experience, 1)
	assert.Equal(t, "Acme", record.Experience[0].Employer())
	require.Len(t, record.Education, 1)
	assert.Equal(t, types.FlexString("2018"), record.Education[0].Year)
}

func TestParse_DotNet(t *testing.T) {
	record, err := Parse([]byte(dotNetRecord), FormatAuto)
	require.NoError(t, err)

	assert.Equal(t, "Ravi Kumar", record.Name)
	assert.Equal(t, ".NET Developer", record.Title)
	assert.Equal(t, "Dallas, TX", record.Contact.Location)
	assert.Equal(t, "linkedin.com/in/ravi", record.Contact.LinkedIn)
	assert.Equal(t, "programming_languages", record.TechnicalSkills[0].Name)

	require.Len(t, record.Experience, 1)
	job := record.Experience[0]
	assert.Equal(t, "Contoso", job.Client)
	assert.Equal(t, "Austin, TX", job.Location)
	assert.Equal(t, "Mar 2020 - Present", job.Duration)
	require.Len(t, job.Projects, 2)
	assert.Equal(t, "Claims Portal", job.Projects[0].Name)
	assert.Equal(t, "Modernized the claims workflow.", job.Projects[0].Summary)
	assert.Equal(t, []string{"C#, .NET 6, Azure"}, job.Projects[0].Environment)
	assert.Equal(t, []string{"SQL Server"}, job.Projects[1].Environment)

	require.Len(t, record.Education, 1)
	assert.Equal(t, "Osmania University", record.Education[0].Institution)
}

func TestParse_ForcedFormat(t *testing.T) {
	// the standard layout has no personal_info, so forcing dotnet fails the schema
	_, err := Parse([]byte(standardRecord), FormatDotNet)
	require.Error(t, err)
	var schemaErr *schemas.ValidationError
	assert.True(t, errors.As(err, &schemaErr))
}

func TestParse_StringEncodedDocument(t *testing.T) {
	encoded, err := json.Marshal(standardRecord)
	require.NoError(t, err)

	record, err := Parse(encoded, FormatAuto)
	require.NoError(t, err)
	assert.Equal(t, "Jane Doe", record.Name)
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		assert func(t *testing.T, err error)
	}{
		{
			name:  "empty",
			input: "  ",
			assert: func(t *testing.T, err error) {
				var parseErr *ParseError
				assert.True(t, errors.As(err, &parseErr))
			},
		},
		{
			name:  "malformed",
			input: `{"name": "Jane"`,
			assert: func(t *testing.T, err error) {
				var parseErr *ParseError
				require.True(t, errors.As(err, &parseErr))
				assert.Contains(t, err.Error(), "not valid JSON")
			},
		},
		{
			name:  "string without object",
			input: `"just text"`,
			assert: func(t *testing.T, err error) {
				var parseErr *ParseError
				assert.True(t, errors.As(err, &parseErr))
			},
		},
		{
			name:  "wrong field type",
			input: `{"name": "Jane", "certifications": "AWS"}`,
			assert: func(t *testing.T, err error) {
				var schemaErr *schemas.ValidationError
				assert.True(t, errors.As(err, &schemaErr))
			},
		},
		{
			name:  "missing name",
			input: `{"title": "Engineer"}`,
			assert: func(t *testing.T, err error) {
				var validationErr *types.ValidationError
				require.True(t, errors.As(err, &validationErr))
				assert.Equal(t, "name", validationErr.Field)
			},
		},
		{
			name:  "dotnet missing name",
			input: `{"personal_info": {"title": "Dev"}}`,
			assert: func(t *testing.T, err error) {
				var validationErr *types.ValidationError
				require.True(t, errors.As(err, &validationErr))
				assert.Equal(t, "name", validationErr.Field)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.input), FormatAuto)
			require.Error(t, err)
			tt.assert(t, err)
		})
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "resume.json")
	require.NoError(t, os.WriteFile(path, []byte(standardRecord), 0644))

	record, err := LoadFile(path, FormatAuto)
	require.NoError(t, err)
	assert.Equal(t, "Jane Doe", record.Name)

	_, err = LoadFile(filepath.Join(t.TempDir(), "missing.json"), FormatAuto)
	require.Error(t, err)
	var loadErr *LoadError
	require.True(t, errors.As(err, &loadErr))
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestJoinDates(t *testing.T) {
	assert.Equal(t, "Jan 2020 - Dec 2021", joinDates("Jan 2020", "Dec 2021"))
	assert.Equal(t, "Jan 2020", joinDates("Jan 2020", ""))
	assert.Equal(t, "Present", joinDates(" ", "Present"))
	assert.Equal(t, "", joinDates("", ""))
}
