package rendering

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/jonathan/resume-formatter/internal/document"
	"github.com/jonathan/resume-formatter/internal/highlight"
	"github.com/jonathan/resume-formatter/internal/types"
)

const (
	linkColor    = "0000FF"
	headingShade = "ADD8E6"
	yearUnknown  = "YYYY"
)

// durations and dates sit against the right margin of a letter page with
// half-inch margins
var rightTab = document.TabStop{PositionTwips: document.Inches(7.5), Align: document.TabRight}

// builder lays out one record with one config. It is used for a single
// Build call and then discarded.
type builder struct {
	cfg         Config
	doc         *document.Document
	hl          *highlight.Highlighter
	highlighted int
}

func newBuilder(cfg Config, keywords []string) *builder {
	doc := document.New(cfg.FontFamily, cfg.BaseFontSizePt)
	doc.PageBorder = cfg.PageBorder

	b := &builder{cfg: cfg, doc: doc}
	if cfg.HighlightEnabled {
		b.hl = highlight.New(keywords)
	}
	return b
}

func (b *builder) build(record *types.ResumeRecord) *document.Document {
	b.doc.Title = record.Name
	b.doc.Author = record.Name

	b.header(record)
	for _, section := range b.cfg.SectionOrder {
		switch section {
		case SectionSummary:
			b.summary(record.ProfessionalSummary)
		case SectionSkills:
			b.skills(record.TechnicalSkills)
		case SectionExperience:
			b.experience(record.Experience)
		case SectionEducation:
			b.education(record.Education)
		case SectionCertifications:
			b.certifications(record.Certifications)
		}
	}
	return b.doc
}

func (b *builder) plain(text string) document.Run {
	return document.Run{Text: text, SizePt: b.cfg.BaseFontSizePt}
}

func (b *builder) strong(text string) document.Run {
	return document.Run{Text: text, Bold: true, SizePt: b.cfg.BaseFontSizePt}
}

func (b *builder) link(text, url string) document.Run {
	return document.Run{Text: text, Link: url, Color: linkColor, Underline: true, SizePt: b.cfg.BaseFontSizePt}
}

// emphasized splits text into runs, bolding keyword occurrences when
// highlighting is enabled
func (b *builder) emphasized(text string) []document.Run {
	if b.hl == nil {
		return []document.Run{b.plain(text)}
	}
	segments := b.hl.Segments(text)
	runs := make([]document.Run, 0, len(segments))
	for _, seg := range segments {
		run := b.plain(seg.Text)
		if seg.Highlighted {
			run.Bold = true
			run.Keyword = true
			b.highlighted++
		}
		runs = append(runs, run)
	}
	return runs
}

func (b *builder) header(record *types.ResumeRecord) {
	align := b.cfg.NameAlignment

	name := b.doc.AddParagraph()
	name.Align = align
	name.Add(document.Run{Text: strings.TrimSpace(record.Name), Bold: true, SizePt: b.cfg.NameFontSizePt})

	if title := strings.TrimSpace(record.Title); title != "" {
		p := b.doc.AddParagraph()
		p.Align = align
		p.Add(document.Run{Text: title, Bold: b.cfg.TitleBold, SizePt: b.cfg.TitleFontSizePt})
	}

	runs := b.contactRuns(record.Contact)
	if len(runs) == 0 {
		return
	}
	p := b.doc.AddParagraph()
	p.Align = align
	for i, run := range runs {
		if i > 0 {
			p.Add(b.plain(" | "))
		}
		p.Add(run)
	}
}

// contactRuns returns one run per present contact field in display order
func (b *builder) contactRuns(c types.Contact) []document.Run {
	var runs []document.Run
	if email := strings.TrimSpace(c.Email); email != "" {
		runs = append(runs, b.link(email, "mailto:"+email))
	}
	if phone := strings.TrimSpace(c.Phone); phone != "" {
		if digits := telDigits(phone); digits != "" {
			runs = append(runs, b.link(phone, "tel:"+digits))
		} else {
			runs = append(runs, b.plain(phone))
		}
	}
	if loc := strings.TrimSpace(c.Location); loc != "" {
		runs = append(runs, b.plain(loc))
	}
	if li := strings.TrimSpace(c.LinkedIn); li != "" {
		runs = append(runs, b.link("LinkedIn", absoluteURL(li)))
	}
	if pf := strings.TrimSpace(c.Portfolio); pf != "" {
		label := b.cfg.PortfolioLabel
		if label == "" {
			label = "Portfolio"
		}
		runs = append(runs, b.link(label, absoluteURL(pf)))
	}
	return runs
}

func (b *builder) heading(section SectionKind) {
	p := b.doc.AddParagraph()
	p.KeepNext = true
	p.Add(b.strong(strings.ToUpper(section.Title())))

	switch b.cfg.HeadingFor(section) {
	case HeadingBordered:
		p.BorderBottom = true
		p.Spacing = &document.Spacing{AfterPt: 4}
	case HeadingShaded:
		p.Shading = headingShade
		p.Spacing = &document.Spacing{}
	}
}

func (b *builder) bullets(items []string, highlightText bool) {
	for _, item := range items {
		p := b.doc.AddParagraph()
		p.Bullet = true
		p.Align = document.AlignJustify
		if highlightText {
			p.Add(b.emphasized(item)...)
		} else {
			p.Add(b.plain(item))
		}
	}
}

func (b *builder) summary(items []string) {
	items = nonBlank(items)
	if len(items) == 0 {
		return
	}
	b.heading(SectionSummary)
	b.bullets(items, true)
}

func (b *builder) skills(categories types.SkillCategories) {
	var present types.SkillCategories
	for _, cat := range categories {
		if skills := nonBlank(cat.Skills); len(skills) > 0 {
			present = append(present, types.SkillCategory{Name: cat.Name, Skills: skills})
		}
	}
	if len(present) == 0 {
		return
	}
	b.heading(SectionSkills)

	if b.cfg.SkillsLayout == SkillsTable {
		b.skillsTable(present)
		return
	}
	for i, cat := range present {
		p := b.doc.AddParagraph()
		p.Align = document.AlignJustify
		if i == 0 {
			p.Spacing = &document.Spacing{}
		}
		p.Add(b.strong(cat.Name+": "), b.plain(strings.Join(cat.Skills, ", ")))
	}
}

func (b *builder) skillsTable(categories types.SkillCategories) {
	caser := cases.Title(language.English)
	table := &document.Table{
		ColumnWidths: []int{document.Inches(2.0), document.Inches(5.5)},
		Borders:      true,
	}
	for _, cat := range categories {
		label := caser.String(strings.ReplaceAll(cat.Name, "_", " "))
		table.Rows = append(table.Rows, []document.Cell{
			document.TextCell(b.strong(label)),
			document.TextCell(b.plain(strings.Join(cat.Skills, ", "))),
		})
	}
	b.doc.AddTable(table)
}

func (b *builder) experience(jobs []types.JobEntry) {
	if len(jobs) == 0 {
		return
	}
	b.heading(SectionExperience)

	if b.cfg.ExperienceLayout == ExperienceProjects {
		for _, job := range jobs {
			b.projectEntries(job)
		}
		return
	}

	for i, job := range jobs {
		if b.cfg.ExperienceLayout == ExperienceCompact {
			b.compactJobHeader(job)
		} else {
			b.jobHeader(job)
		}

		responsibilities, environment := flattenProjects(job)
		if len(responsibilities) > 0 {
			p := b.doc.AddParagraph()
			p.Align = document.AlignJustify
			p.Add(b.strong("Responsibilities:"))
			b.bullets(responsibilities, true)
		}
		if len(environment) > 0 {
			label := b.doc.AddParagraph()
			label.Align = document.AlignJustify
			label.Add(b.strong("Environment:"))
			list := b.doc.AddParagraph()
			list.Align = document.AlignJustify
			list.Add(b.plain(strings.Join(environment, ", ")))
		}

		if i < len(jobs)-1 {
			gap := b.doc.AddParagraph()
			gap.Spacing = &document.Spacing{AfterPt: 2}
		}
	}
}

func (b *builder) jobHeader(job types.JobEntry) {
	role := b.doc.AddParagraph()
	role.TabStops = []document.TabStop{rightTab}
	role.Spacing = &document.Spacing{}
	role.Add(b.strong(strings.TrimSpace(job.Role)))
	if d := strings.TrimSpace(job.Duration); d != "" {
		role.Add(b.strong("\t" + d))
	}

	employer, location := job.Employer(), strings.TrimSpace(job.Location)
	var info string
	switch {
	case employer != "" && location != "":
		info = employer + " – " + location
	case employer != "":
		info = employer
	default:
		info = location
	}
	if info != "" {
		p := b.doc.AddParagraph()
		p.Spacing = &document.Spacing{AfterPt: 2}
		p.Add(b.strong(info))
	}
}

func (b *builder) compactJobHeader(job types.JobEntry) {
	parts := nonBlank([]string{job.Role, job.Employer(), job.Duration})
	p := b.doc.AddParagraph()
	p.Spacing = &document.Spacing{AfterPt: 2}
	p.Add(b.strong(strings.Join(trimAll(parts), " || ")))
}

// projectEntries writes one Client/Role/Project block per project. A job
// without projects is written as a single unnamed project.
func (b *builder) projectEntries(job types.JobEntry) {
	projects := job.Projects
	if len(projects) == 0 {
		projects = []types.Project{{
			Responsibilities: job.Responsibilities,
			Environment:      job.Environment,
		}}
	}

	client := strings.Join(trimAll(nonBlank([]string{job.Employer(), job.Location})), ", ")
	duration := strings.TrimSpace(job.Duration)
	role := strings.TrimSpace(job.Role)

	for _, proj := range projects {
		if client != "" || duration != "" {
			p := b.doc.AddParagraph()
			p.TabStops = []document.TabStop{rightTab}
			if client != "" {
				p.Add(b.strong("Client: " + client + "."))
			}
			if duration != "" {
				p.Add(b.strong("\t" + duration))
			}
		}
		if role != "" {
			b.doc.AddParagraph().Add(b.strong("Role: " + role + "."))
		}
		if name := strings.TrimSpace(proj.Name); name != "" {
			b.doc.AddParagraph().Add(b.strong("Project: " + name + "."))
		}
		gap := b.doc.AddParagraph()
		gap.Spacing = &document.Spacing{AfterPt: 2}

		if summary := strings.TrimSpace(proj.Summary); summary != "" {
			p := b.doc.AddParagraph()
			p.Align = document.AlignJustify
			p.Spacing = &document.Spacing{AfterPt: 4}
			p.Add(b.emphasized(summary)...)
		}
		b.bullets(nonBlank(proj.Responsibilities), true)
		if env := nonBlank(proj.Environment); len(env) > 0 {
			p := b.doc.AddParagraph()
			p.Spacing = &document.Spacing{AfterPt: 8}
			p.Add(b.strong("Environment: "), b.plain(strings.Join(env, ", ")))
		}
	}
}

func (b *builder) education(entries types.EducationList) {
	if len(entries) == 0 {
		return
	}
	b.heading(SectionEducation)

	for _, edu := range entries {
		if edu.IsEmpty() {
			continue
		}
		p := b.doc.AddParagraph()
		if b.cfg.EducationLayout == EducationPiped {
			p.Add(b.plain(pipedEducation(edu)))
			continue
		}

		degree := strings.TrimSpace(edu.Degree)
		rest := spacedEducation(edu, degree != "")
		switch {
		case degree != "" && rest != "":
			p.Add(b.strong(degree+" "), b.plain(rest))
		case degree != "":
			p.Add(b.strong(degree))
		default:
			p.Add(b.plain(rest))
		}
	}
}

// spacedEducation formats everything after the degree:
// "in Field (Concentration) | Institution (Year)". The bar only separates the
// institution from something before it.
func spacedEducation(edu types.Education, afterDegree bool) string {
	var parts []string
	if f := strings.TrimSpace(edu.Field); f != "" {
		parts = append(parts, "in "+f)
	}
	if c := strings.TrimSpace(edu.Concentration); c != "" {
		parts = append(parts, "("+c+")")
	}
	if inst := strings.TrimSpace(edu.Institution); inst != "" {
		if afterDegree || len(parts) > 0 {
			inst = "| " + inst
		}
		parts = append(parts, inst)
	}
	if y := displayYear(edu.Year); y != "" {
		parts = append(parts, "("+y+")")
	}
	return strings.Join(parts, " ")
}

// pipedEducation formats "Degree | Institution | Location | (Year)"
func pipedEducation(edu types.Education) string {
	parts := trimAll(nonBlank([]string{edu.Degree, edu.Institution, edu.Location}))
	if y := displayYear(edu.Year); y != "" {
		parts = append(parts, "("+y+")")
	}
	return strings.Join(parts, " | ")
}

func displayYear(year types.FlexString) string {
	y := strings.TrimSpace(string(year))
	if strings.EqualFold(y, yearUnknown) {
		return ""
	}
	return y
}

func (b *builder) certifications(items []string) {
	items = nonBlank(items)
	if len(items) == 0 {
		return
	}
	b.heading(SectionCertifications)
	b.bullets(items, false)
}

// flattenProjects merges project bullets and environment into the job's own
// lists for layouts that do not show projects
func flattenProjects(job types.JobEntry) (responsibilities, environment []string) {
	responsibilities = nonBlank(job.Responsibilities)
	environment = nonBlank(job.Environment)
	for _, p := range job.Projects {
		responsibilities = append(responsibilities, nonBlank(p.Responsibilities)...)
		environment = append(environment, nonBlank(p.Environment)...)
	}
	return responsibilities, environment
}

func nonBlank(items []string) []string {
	out := make([]string, 0, len(items))
	for _, s := range items {
		if strings.TrimSpace(s) != "" {
			out = append(out, s)
		}
	}
	return out
}

func trimAll(items []string) []string {
	out := make([]string, len(items))
	for i, s := range items {
		out[i] = strings.TrimSpace(s)
	}
	return out
}

func telDigits(phone string) string {
	var sb strings.Builder
	for _, r := range phone {
		if (r >= '0' && r <= '9') || (r == '+' && sb.Len() == 0) {
			sb.WriteRune(r)
		}
	}
	if sb.Len() == 0 || sb.String() == "+" {
		return ""
	}
	return sb.String()
}

// absoluteURL adds an https scheme to bare host/path links
func absoluteURL(u string) string {
	lower := strings.ToLower(u)
	if strings.Contains(lower, "://") || strings.HasPrefix(lower, "mailto:") {
		return u
	}
	return "https://" + u
}
