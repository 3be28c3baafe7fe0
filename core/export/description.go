package export

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/trezcool/masomo-apply/core"
	"github.com/trezcool/masomo-apply/core/application"
	"github.com/trezcool/masomo-apply/core/catalog"
	"github.com/trezcool/masomo-apply/core/document"
	"github.com/trezcool/masomo-apply/core/profile"
	"github.com/trezcool/masomo-apply/core/program"
)

// Description is the printable tree of an exported document, before PDF serialization.
type Description struct {
	Title   string `json:"title"`
	Subject string `json:"subject"`
	Pages   []Page `json:"pages"`
}

type Page struct {
	Sections []Section `json:"sections"`
}

type Section struct {
	Heading    string   `json:"heading"`
	Fields     []Field  `json:"fields,omitempty"`
	Items      []string `json:"items,omitempty"`
	Paragraphs []string `json:"paragraphs,omitempty"`
}

type Field struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// ApplicationSource is an application snapshot with its weak references resolved.
// Only the target matching the entity type is set; it is nil when the id dangles.
type ApplicationSource struct {
	Application application.Application
	University  *catalog.University
	Program     *program.Program
	Student     profile.Personal
}

type (
	UniversityLookup interface {
		Lookup(id string) *catalog.University
	}
	ProgramLookup interface {
		Lookup(id string) *program.Program
	}
)

// ResolveApplication looks app's target up in the catalog or in the programs, by entity type.
func ResolveApplication(app application.Application, unis UniversityLookup, programs ProgramLookup, student profile.Personal) ApplicationSource {
	src := ApplicationSource{Application: app, Student: student}
	if app.EntityType == application.EntityProgram {
		src.Program = programs.Lookup(app.UniversityID)
	} else {
		src.University = unis.Lookup(app.UniversityID)
	}
	return src
}

// TargetName is the name of the university or program applied to, empty when it dangles.
func (src ApplicationSource) TargetName() string {
	switch {
	case src.Program != nil:
		return src.Program.Name
	case src.University != nil:
		return src.University.Name
	}
	return ""
}

const (
	profileSubject     = "Student profile"
	applicationSubject = "University application"
)

// RenderProfile describes the profile export. Only entries flagged to appear on the profile are listed.
func RenderProfile(data profile.StudentData, docs []document.Document) Description {
	name := data.Personal.FullName()
	if name == "" {
		name = "Student"
	}
	desc := Description{Title: name + " - Profile", Subject: profileSubject}

	p, fam, edu, ts := data.Personal, data.Family, data.Education, data.TestScores
	desc.Pages = append(desc.Pages, Page{Sections: nonEmpty(
		Section{Heading: "Personal Information", Fields: fields(
			"Name", name,
			"Date of Birth", p.DateOfBirth,
			"Gender", p.Gender,
			"Email", p.Email,
			"Phone", p.Phone,
			"Citizenship", p.Citizenship,
			"Address", joinNonBlank(", ", p.Address, p.City, p.Country),
		)},
		Section{Heading: "Family", Fields: fields(
			"Household", householdLabel(fam.Household),
			"Lives With", fam.LivesWith,
			"Parent / Guardian 1", parentLine(fam.Parent1),
			"Parent / Guardian 2", parentLine(fam.Parent2),
			"Siblings", itoa(fam.SiblingCount),
		)},
		Section{Heading: "Education", Fields: fields(
			"School", edu.SchoolName,
			"Country", edu.SchoolCountry,
			"Curriculum", edu.Curriculum,
			"Entry Date", edu.EntryDate,
			"Graduation Year", itoa(edu.GraduationYear),
			"GPA", gpaLine(edu.GPA, edu.GPAScale),
			"Class Rank", rankLine(edu.ClassRank, edu.ClassSize),
		)},
		Section{Heading: "Test Scores", Fields: fields(
			"SAT", itoa(ts.SAT),
			"ACT", itoa(ts.ACT),
			"TOEFL", itoa(ts.TOEFL),
			"IELTS", ftoa(ts.IELTS),
			"IB Predicted", itoa(ts.IBPredict),
			"AP Exams", ts.APExams,
		)},
	)})

	var acts []string
	for _, a := range profile.VisibleActivities(data) {
		acts = append(acts, activityLine(a))
	}
	var hons []string
	for _, h := range profile.VisibleHonors(data) {
		hons = append(hons, honorLine(h))
	}
	desc.Pages = append(desc.Pages, Page{Sections: nonEmpty(
		Section{Heading: "Activities", Items: acts},
		Section{Heading: "Honors", Items: hons},
		Section{Heading: "Personal Statement", Paragraphs: paragraphs(data.Essays.PersonalStatement)},
		Section{Heading: "Additional Information", Paragraphs: paragraphs(data.Essays.AdditionalInfo)},
	)})

	desc.Pages = append(desc.Pages, Page{Sections: nonEmpty(
		Section{Heading: "Recommendations", Fields: fields(
			"Counselor", data.Recommendations.Counselor,
			"Teacher 1", data.Recommendations.Teacher1,
			"Teacher 2", data.Recommendations.Teacher2,
		)},
		Section{Heading: "Documents", Items: documentItems(docs)},
	)})
	return desc.compact()
}

// RenderApplication describes one application. docs resolve the supplements' document links.
func RenderApplication(src ApplicationSource, docs []document.Document) Description {
	app := src.Application
	target := "Unknown university"
	targetSection := Section{Heading: "University", Fields: fields("Name", target, "Catalog ID", app.UniversityID)}
	if app.EntityType == application.EntityProgram {
		target = "Unknown program"
		targetSection = Section{Heading: "Program", Fields: fields("Name", target, "Program ID", app.UniversityID)}
	}
	if p := src.Program; p != nil {
		target = p.Name
		targetSection.Fields = fields(
			"Name", p.Name,
			"University", p.University,
			"Country", p.Country,
			"Duration", p.Duration,
			"Cost (USD)", itoa(p.Cost),
			"Deadline", p.Deadline,
		)
	}
	if u := src.University; u != nil {
		target = u.Name
		targetSection.Fields = fields(
			"Name", u.Name,
			"Country", u.Country,
			"World Rank", itoa(u.Rank),
			"Tuition (USD/yr)", itoa(u.Tuition),
			"Acceptance Rate", percent(u.AcceptanceRate),
			"Deadline", u.Deadline,
			"Scholarships", u.ScholarshipTier,
		)
	}

	byID := make(map[string]document.Document, len(docs))
	for _, d := range docs {
		byID[d.ID] = d
	}
	sups := make([]string, 0, len(app.Supplements))
	for _, s := range app.Supplements {
		line := s.Title + ": no document linked"
		if s.LinkedDocumentID != nil {
			if d, ok := byID[*s.LinkedDocumentID]; ok {
				line = s.Title + ": " + d.Name
			} else {
				line = s.Title + ": document unavailable"
			}
		}
		sups = append(sups, line)
	}

	desc := Description{
		Title:   joinNonBlank(" - ", target, src.Student.FullName(), "Application"),
		Subject: applicationSubject,
	}
	desc.Pages = append(desc.Pages, Page{Sections: nonEmpty(
		targetSection,
		Section{Heading: "Application", Fields: fields(
			"Applicant", src.Student.FullName(),
			"Type", string(app.EntityType),
			"Status", string(app.Status),
			"Started", app.CreatedAt.Format("2006-01-02"),
			"First Major", app.Majors.First,
			"Second Major", app.Majors.Second,
		)},
		Section{Heading: "Supplements", Items: sups},
		Section{Heading: "Notes", Paragraphs: paragraphs(app.Notes)},
	)})
	return desc.compact()
}

// compact drops pages left without sections and guarantees at least one page.
func (d Description) compact() Description {
	pages := make([]Page, 0, len(d.Pages))
	for _, p := range d.Pages {
		if len(p.Sections) > 0 {
			pages = append(pages, p)
		}
	}
	if len(pages) == 0 {
		pages = append(pages, Page{Sections: []Section{{Heading: d.Subject, Paragraphs: []string{"Nothing to show yet."}}}})
	}
	d.Pages = pages
	return d
}

func nonEmpty(sections ...Section) []Section {
	kept := make([]Section, 0, len(sections))
	for _, s := range sections {
		if len(s.Fields)+len(s.Items)+len(s.Paragraphs) > 0 {
			kept = append(kept, s)
		}
	}
	return kept
}

// fields builds label/value pairs, skipping blank values.
func fields(pairs ...string) []Field {
	var out []Field
	for i := 0; i+1 < len(pairs); i += 2 {
		if v := core.CleanString(pairs[i+1]); v != "" {
			out = append(out, Field{Label: pairs[i], Value: v})
		}
	}
	return out
}

func paragraphs(text string) []string {
	var out []string
	for _, p := range strings.Split(text, "\n\n") {
		if p = core.CleanString(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func joinNonBlank(sep string, parts ...string) string {
	kept := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = core.CleanString(p); p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, sep)
}

func itoa(n int) string {
	if n == 0 {
		return ""
	}
	return strconv.Itoa(n)
}

func ftoa(f float64) string {
	if f == 0 {
		return ""
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}

func percent(f float64) string {
	if f == 0 {
		return ""
	}
	return strconv.FormatFloat(f*100, 'f', -1, 64) + "%"
}

func gpaLine(gpa, scale float64) string {
	if gpa == 0 {
		return ""
	}
	if scale == 0 {
		return ftoa(gpa)
	}
	return ftoa(gpa) + " / " + ftoa(scale)
}

func rankLine(rank, size int) string {
	if rank == 0 {
		return ""
	}
	if size == 0 {
		return itoa(rank)
	}
	return fmt.Sprintf("%d of %d", rank, size)
}

func householdLabel(h string) string {
	switch h {
	case profile.HouseholdTwoParents:
		return "Two parents"
	case profile.HouseholdSingle:
		return "Single parent"
	case profile.HouseholdGuardian:
		return "Guardian"
	}
	return h
}

func parentLine(p profile.Parent) string {
	return joinNonBlank(", ", p.Name, p.Relation, p.Occupation)
}

func activityLine(a profile.Activity) string {
	line := a.Title
	if role := joinNonBlank(", ", a.Position, a.Organization); role != "" {
		line += " (" + role + ")"
	}
	if a.HoursPerWeek > 0 && a.WeeksPerYear > 0 {
		line += fmt.Sprintf(", %d hrs/wk, %d wks/yr", a.HoursPerWeek, a.WeeksPerYear)
	}
	if len(a.GradeLevels) > 0 {
		line += ", grades " + strings.Join(a.GradeLevels, "/")
	}
	return line
}

func honorLine(h profile.Honor) string {
	line := h.Title
	if len(h.Recognition) > 0 {
		line += " (" + strings.Join(h.Recognition, ", ") + ")"
	}
	if len(h.GradeLevels) > 0 {
		line += ", grades " + strings.Join(h.GradeLevels, "/")
	}
	return line
}

func documentItems(docs []document.Document) []string {
	items := make([]string, 0, len(docs))
	for _, d := range docs {
		items = append(items, d.Name+" ("+d.Kind+")")
	}
	return items
}
