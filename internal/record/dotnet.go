package record

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/jonathan/resume-formatter/internal/schemas"
	"github.com/jonathan/resume-formatter/internal/types"
)

// dotNetResume mirrors the .NET layout: contact details under personal_info
// and project engagements nested in each experience entry.
type dotNetResume struct {
	PersonalInfo struct {
		Name     string `json:"name"`
		Title    string `json:"title"`
		Email    string `json:"email"`
		Phone    string `json:"phone"`
		Location string `json:"location"`
		LinkedIn string `json:"linkedin"`
	} `json:"personal_info"`
	ProfessionalSummary []string              `json:"professional_summary"`
	TechnicalSkills     types.SkillCategories `json:"technical_skills"`
	Experience          []dotNetJob           `json:"experience"`
	Education           types.EducationList   `json:"education"`
	Certifications      []string              `json:"certifications"`
}

type dotNetJob struct {
	Company   string          `json:"company"`
	Location  string          `json:"location"`
	Role      string          `json:"role"`
	StartDate string          `json:"start_date"`
	EndDate   string          `json:"end_date"`
	Projects  []dotNetProject `json:"project"`
}

type dotNetProject struct {
	Name             string     `json:"name"`
	ProjectSummary   string     `json:"project_summary"`
	Responsibilities []string   `json:"responsibilities"`
	Environment      stringList `json:"environment"`
}

// stringList accepts an array of strings or a single string
type stringList []string

func (l *stringList) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if bytes.Equal(trimmed, []byte("null")) {
		*l = nil
		return nil
	}
	if len(trimmed) > 0 && trimmed[0] == '"' {
		var s string
		if err := json.Unmarshal(trimmed, &s); err != nil {
			return err
		}
		if strings.TrimSpace(s) == "" {
			*l = nil
			return nil
		}
		*l = stringList{s}
		return nil
	}
	var many []string
	if err := json.Unmarshal(trimmed, &many); err != nil {
		return fmt.Errorf("expected array of strings or string")
	}
	*l = many
	return nil
}

// ParseDotNet decodes a document in the .NET layout and maps it onto a
// ResumeRecord. The company becomes the job's client and the start and end
// dates are joined into the duration.
func ParseDotNet(data []byte) (*types.ResumeRecord, error) {
	data, err := unwrap(data)
	if err != nil {
		return nil, err
	}
	if err := schemas.ValidateBytes(schemas.DotNetResumeSchema, data); err != nil {
		return nil, err
	}

	var doc dotNetResume
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, &ParseError{Format: FormatDotNet, Message: "failed to unmarshal record", Cause: err}
	}

	record := doc.toRecord()
	if err := types.ValidateRecord(record); err != nil {
		return nil, err
	}
	return record, nil
}

func (d *dotNetResume) toRecord() *types.ResumeRecord {
	info := d.PersonalInfo
	record := &types.ResumeRecord{
		Name:  info.Name,
		Title: info.Title,
		Contact: types.Contact{
			Email:    info.Email,
			Phone:    info.Phone,
			Location: info.Location,
			LinkedIn: info.LinkedIn,
		},
		ProfessionalSummary: d.ProfessionalSummary,
		TechnicalSkills:     d.TechnicalSkills,
		Education:           d.Education,
		Certifications:      d.Certifications,
	}

	for _, job := range d.Experience {
		entry := types.JobEntry{
			Role:     job.Role,
			Client:   job.Company,
			Location: job.Location,
			Duration: joinDates(job.StartDate, job.EndDate),
		}
		for _, p := range job.Projects {
			entry.Projects = append(entry.Projects, types.Project{
				Name:             p.Name,
				Summary:          p.ProjectSummary,
				Responsibilities: p.Responsibilities,
				Environment:      p.Environment,
			})
		}
		record.Experience = append(record.Experience, entry)
	}
	return record
}

func joinDates(start, end string) string {
	start, end = strings.TrimSpace(start), strings.TrimSpace(end)
	switch {
	case start != "" && end != "":
		return start + " - " + end
	case start != "":
		return start
	default:
		return end
	}
}
