package export

import (
	"bytes"
	"regexp"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trezcool/masomo-apply/core/application"
	"github.com/trezcool/masomo-apply/core/catalog"
	"github.com/trezcool/masomo-apply/core/document"
	"github.com/trezcool/masomo-apply/core/profile"
	"github.com/trezcool/masomo-apply/core/program"
)

var safeFilename = regexp.MustCompile(`^[A-Za-z0-9_.-]+$`)

func TestFilename(t *testing.T) {
	tests := []struct {
		name string
		got  string
		want string
	}{
		{name: "apostrophe", got: ProfileFilename("Jane", "O'Brien"), want: "Jane_O_Brien_Profile.pdf"},
		{name: "blank first name", got: ProfileFilename("   ", "Doe"), want: "Student_Doe_Profile.pdf"},
		{name: "blank names", got: ProfileFilename("", ""), want: "Student_Unnamed_Profile.pdf"},
		{name: "symbols only", got: ProfileFilename("'''", "Doe"), want: "Student_Doe_Profile.pdf"},
		{name: "accents and spaces", got: ProfileFilename("Zoé", "Mbala Nzuzi"), want: "Zo_Mbala_Nzuzi_Profile.pdf"},
		{name: "apostrophe and space", got: ProfileFilename("O' Brien", ""), want: "O_Brien_Unnamed_Profile.pdf"},
		{name: "double space", got: ProfileFilename("Mary  Ann", "Doe"), want: "Mary_Ann_Doe_Profile.pdf"},
		{name: "underscores collapsed", got: ProfileFilename("a__b", "Doe"), want: "a_b_Doe_Profile.pdf"},
		{name: "hyphen kept", got: ProfileFilename("Anne-Marie", "Doe"), want: "Anne-Marie_Doe_Profile.pdf"},
		{
			name: "application",
			got:  ApplicationFilename("University of Cape Town", "Doe"),
			want: "University_of_Cape_Town_Doe_Application.pdf",
		},
		{name: "application unknown university", got: ApplicationFilename("", ""), want: "University_Student_Application.pdf"},
		{name: "no parts", got: Filename(""), want: "document.pdf"},
		{name: "blank fallback", got: Filename("x", Part{Value: " ", Fallback: " "}), want: "document_x.pdf"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.got)
			assert.Regexp(t, safeFilename, tt.got)
			assert.NotContains(t, tt.got, "__", "separator collision")
		})
	}
}

func sampleProfile() profile.StudentData {
	data := profile.Empty()
	data.Personal = profile.Personal{FirstName: "Jane", LastName: "O'Brien", Email: "jane@example.com", City: "Goma", Country: "DR Congo"}
	data.Family = profile.Family{Household: profile.HouseholdSingle, Parent1: profile.Parent{Name: "Marie", Relation: "mother"}}
	data.Education = profile.Education{SchoolName: "Lycée Wima", GPA: 3.6, GPAScale: 4, ClassRank: 2, ClassSize: 50}
	data.TestScores = profile.TestScores{SAT: 1420}
	data.Activities = []profile.Activity{
		{ID: "a1", Title: "Debate", Position: "Captain", HoursPerWeek: 5, WeeksPerYear: 30, AppearOnProfile: true},
		{ID: "a2", Title: "Secret hobby"},
	}
	data.Honors = []profile.Honor{{ID: "h1", Title: "Math olympiad", Recognition: []string{"national"}, AppearOnProfile: true}}
	data.Essays.PersonalStatement = "First paragraph.\n\nSecond paragraph."
	return data
}

func TestRenderProfile(t *testing.T) {
	docs := []document.Document{{ID: "d1", Name: "Transcript", Kind: document.KindTranscript}}
	data := sampleProfile()
	before := sampleProfile()

	desc := RenderProfile(data, docs)

	assert.Equal(t, "Jane O'Brien - Profile", desc.Title)
	assert.Empty(t, cmp.Diff(before, data), "RenderProfile must not modify its input")

	want := []Section{
		{Heading: "Activities", Items: []string{"Debate (Captain), 5 hrs/wk, 30 wks/yr"}},
		{Heading: "Honors", Items: []string{"Math olympiad (national)"}},
		{Heading: "Personal Statement", Paragraphs: []string{"First paragraph.", "Second paragraph."}},
	}
	require.Len(t, desc.Pages, 3)
	if diff := cmp.Diff(want, desc.Pages[1].Sections); diff != "" {
		t.Errorf("activities page mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, []Section{{Heading: "Documents", Items: []string{"Transcript (transcript)"}}}, desc.Pages[2].Sections)

	edu := desc.Pages[0].Sections[2]
	assert.Equal(t, "Education", edu.Heading)
	assert.Contains(t, edu.Fields, Field{Label: "GPA", Value: "3.6 / 4"})
	assert.Contains(t, edu.Fields, Field{Label: "Class Rank", Value: "2 of 50"})
}

func TestRenderProfile_empty(t *testing.T) {
	desc := RenderProfile(profile.Empty(), nil)
	assert.Equal(t, "Student - Profile", desc.Title)
	require.Len(t, desc.Pages, 1)
	assert.NotEmpty(t, desc.Pages[0].Sections)
}

func TestRenderApplication(t *testing.T) {
	linked, gone := "d1", "d-gone"
	app := application.Application{
		ID:           "app1",
		UniversityID: "uni-uct",
		EntityType:   application.EntityUniversity,
		Status:       application.StatusInProgress,
		Majors:       application.Majors{First: "Computer Science"},
		Supplements: []application.Supplement{
			{ID: "s1", Title: "Essay", LinkedDocumentID: &linked},
			{ID: "s2", Title: "Portfolio"},
			{ID: "s3", Title: "Letter", LinkedDocumentID: &gone},
		},
		CreatedAt: time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC),
	}
	uni := &catalog.University{ID: "uni-uct", Name: "University of Cape Town", Country: "South Africa", Rank: 171}
	docs := []document.Document{{ID: "d1", Name: "Why UCT.pdf"}}

	desc := RenderApplication(ApplicationSource{Application: app, University: uni, Student: profile.Personal{FirstName: "Jane", LastName: "Doe"}}, docs)
	assert.Equal(t, "University of Cape Town - Jane Doe - Application", desc.Title)
	require.Len(t, desc.Pages, 1)

	secs := desc.Pages[0].Sections
	require.Len(t, secs, 3)
	assert.Equal(t, []string{"Essay: Why UCT.pdf", "Portfolio: no document linked", "Letter: document unavailable"}, secs[2].Items)
	assert.Contains(t, secs[1].Fields, Field{Label: "Status", Value: "In Progress"})
	assert.Contains(t, secs[1].Fields, Field{Label: "Started", Value: "2025-09-01"})

	t.Run("dangling university", func(t *testing.T) {
		desc := RenderApplication(ApplicationSource{Application: app}, docs)
		assert.Equal(t, "Unknown university - Application", desc.Title)
		assert.Contains(t, desc.Pages[0].Sections[0].Fields, Field{Label: "Catalog ID", Value: "uni-uct"})
	})
}

type programsByID map[string]program.Program

func (m programsByID) Lookup(id string) *program.Program {
	if p, ok := m[id]; ok {
		return &p
	}
	return nil
}

type universitiesByID map[string]catalog.University

func (m universitiesByID) Lookup(id string) *catalog.University {
	if u, ok := m[id]; ok {
		return &u
	}
	return nil
}

func TestResolveApplication(t *testing.T) {
	unis := universitiesByID{"shared-id": {ID: "shared-id", Name: "University of Ghana"}}
	progs := programsByID{"shared-id": {ID: "shared-id", Name: "Computer Science", University: "Ashesi University"}}
	student := profile.Personal{LastName: "Doe"}

	tests := []struct {
		name       string
		app        application.Application
		wantTarget string
		wantTitle  string
	}{
		{
			name:       "university",
			app:        application.Application{UniversityID: "shared-id", EntityType: application.EntityUniversity},
			wantTarget: "University of Ghana",
			wantTitle:  "University of Ghana - Doe - Application",
		},
		{
			name:       "program",
			app:        application.Application{UniversityID: "shared-id", EntityType: application.EntityProgram},
			wantTarget: "Computer Science",
			wantTitle:  "Computer Science - Doe - Application",
		},
		{
			name:      "dangling program",
			app:       application.Application{UniversityID: "gone", EntityType: application.EntityProgram},
			wantTitle: "Unknown program - Doe - Application",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := ResolveApplication(tt.app, unis, progs, student)
			assert.Equal(t, tt.wantTarget, src.TargetName())
			assert.Equal(t, tt.wantTitle, RenderApplication(src, nil).Title)
		})
	}

	src := ResolveApplication(application.Application{UniversityID: "shared-id", EntityType: application.EntityProgram}, unis, progs, student)
	assert.Nil(t, src.University)
	assert.Equal(t, "Computer_Science_Doe_Application.pdf", ApplicationFilename(src.TargetName(), student.LastName))
	assert.Contains(t, RenderApplication(src, nil).Pages[0].Sections[0].Fields, Field{Label: "University", Value: "Ashesi University"})
}

func TestSerializePDF(t *testing.T) {
	desc := RenderProfile(sampleProfile(), []document.Document{{ID: "d1", Name: "Relevé de notes", Kind: document.KindTranscript}})

	first, err := SerializePDF(desc)
	require.NoError(t, err)
	second, err := SerializePDF(RenderProfile(sampleProfile(), []document.Document{{ID: "d1", Name: "Relevé de notes", Kind: document.KindTranscript}}))
	require.NoError(t, err)

	assert.True(t, bytes.HasPrefix(first, []byte("%PDF-")))
	assert.True(t, bytes.Equal(first, second), "identical descriptions must give identical bytes")

	other := desc
	other.Title = "Someone else"
	third, err := SerializePDF(other)
	require.NoError(t, err)
	assert.False(t, bytes.Equal(first, third))
}
