package profile

import (
	"sort"

	"github.com/trezcool/masomo-apply/core"
)

// Sections
type Section string

const (
	SectionPersonal        Section = "personal"
	SectionFamily          Section = "family"
	SectionEducation       Section = "education"
	SectionTestScores      Section = "testScores"
	SectionFinance         Section = "finance"
	SectionActivities      Section = "activities"
	SectionHonors          Section = "honors"
	SectionEssays          Section = "essays"
	SectionRecommendations Section = "recommendations"
)

// Entry statuses
type Status string

const (
	StatusDraft    Status = "draft"
	StatusComplete Status = "complete"
)

// Household statuses
const (
	HouseholdTwoParents = "two_parents"
	HouseholdSingle     = "single"
	HouseholdGuardian   = "guardian"
)

// StudentData is the whole profile. Every section is always present.
type StudentData struct {
	Personal        Personal        `json:"personal"`
	Family          Family          `json:"family"`
	Education       Education       `json:"education"`
	TestScores      TestScores      `json:"testScores"`
	Finance         Finance         `json:"finance"`
	Activities      []Activity      `json:"activities"`
	Honors          []Honor         `json:"honors"`
	Essays          Essays          `json:"essays"`
	Recommendations Recommendations `json:"recommendations"`
}

type Personal struct {
	FirstName     string `json:"firstName"`
	LastName      string `json:"lastName"`
	PreferredName string `json:"preferredName"`
	DateOfBirth   string `json:"dateOfBirth"`
	Gender        string `json:"gender"`
	Email         string `json:"email"`
	Phone         string `json:"phone"`
	Citizenship   string `json:"citizenship"`
	Address       string `json:"address"`
	City          string `json:"city"`
	Country       string `json:"country"`
}

type Parent struct {
	Name       string `json:"name"`
	Relation   string `json:"relation"`
	Occupation string `json:"occupation"`
	Education  string `json:"education"`
	Email      string `json:"email" validate:"omitempty,email"`
	Phone      string `json:"phone"`
}

type Family struct {
	Household    string `json:"household" validate:"required,oneof=two_parents single guardian"`
	LivesWith    string `json:"livesWith"`
	Parent1      Parent `json:"parent1"`
	Parent2      Parent `json:"parent2"`
	SiblingCount int    `json:"siblingCount" validate:"gte=0,lte=30"`
}

type Education struct {
	SchoolName     string  `json:"schoolName" validate:"notblank"`
	SchoolCountry  string  `json:"schoolCountry"`
	Curriculum     string  `json:"curriculum"`
	EntryDate      string  `json:"entryDate" validate:"yearmonth"`
	GraduationYear int     `json:"graduationYear" validate:"omitempty,gte=1990,lte=2100"`
	WillGraduate   string  `json:"willGraduate" validate:"required,yesno"`
	ExitDate       string  `json:"exitDate" validate:"required_if=WillGraduate no,yearmonth"`
	ExitReason     string  `json:"exitReason" validate:"required_if=WillGraduate no"`
	GPA            float64 `json:"gpa" validate:"gte=0"`
	GPAScale       float64 `json:"gpaScale" validate:"gte=0"`
	ClassRank      int     `json:"classRank" validate:"gte=0"`
	ClassSize      int     `json:"classSize" validate:"gte=0"`
}

type TestScores struct {
	SAT       int     `json:"sat"`
	ACT       int     `json:"act"`
	TOEFL     int     `json:"toefl"`
	IELTS     float64 `json:"ielts"`
	APExams   string  `json:"apExams"`
	IBPredict int     `json:"ibPredicted"`
}

type Finance struct {
	NeedsAid        bool   `json:"needsAid"`
	AnnualBudget    int    `json:"annualBudget"`
	Currency        string `json:"currency"`
	FundingSource   string `json:"fundingSource"`
	ScholarshipNote string `json:"scholarshipNote"`
}

type Essays struct {
	PersonalStatement string `json:"personalStatement"`
	Prompt            string `json:"prompt"`
	AdditionalInfo    string `json:"additionalInfo"`
}

type Recommendations struct {
	Counselor  string `json:"counselor"`
	Teacher1   string `json:"teacher1"`
	Teacher2   string `json:"teacher2"`
	OtherNotes string `json:"otherNotes"`
}

type Activity struct {
	ID              string   `json:"id"`
	Title           string   `json:"title"`
	Position        string   `json:"position"`
	Organization    string   `json:"organization"`
	Description     string   `json:"description"`
	Categories      []string `json:"categories"`
	GradeLevels     []string `json:"gradeLevels"`
	HoursPerWeek    int      `json:"hoursPerWeek"`
	WeeksPerYear    int      `json:"weeksPerYear"`
	AppearOnProfile bool     `json:"appearOnProfile"`
	Status          Status   `json:"status"`
}

type Honor struct {
	ID              string   `json:"id"`
	Title           string   `json:"title"`
	Recognition     []string `json:"recognition"`
	GradeLevels     []string `json:"gradeLevels"`
	AppearOnProfile bool     `json:"appearOnProfile"`
	Status          Status   `json:"status"`
}

// Empty returns a well-typed StudentData: all lists are non-nil.
func Empty() StudentData {
	return StudentData{
		Activities: []Activity{},
		Honors:     []Honor{},
	}
}

// FullName returns the name as printed on summaries and exports.
func (p Personal) FullName() string {
	first := core.CleanString(p.PreferredName)
	if first == "" {
		first = core.CleanString(p.FirstName)
	}
	last := core.CleanString(p.LastName)
	switch {
	case first == "":
		return last
	case last == "":
		return first
	}
	return first + " " + last
}

// normalize makes sure restored data is as well-typed as Empty().
func (d StudentData) normalize() StudentData {
	if d.Activities == nil {
		d.Activities = []Activity{}
	}
	if d.Honors == nil {
		d.Honors = []Honor{}
	}
	for i := range d.Activities {
		d.Activities[i].Categories = tagSet(d.Activities[i].Categories)
		d.Activities[i].GradeLevels = tagSet(d.Activities[i].GradeLevels)
	}
	for i := range d.Honors {
		d.Honors[i].Recognition = tagSet(d.Honors[i].Recognition)
		d.Honors[i].GradeLevels = tagSet(d.Honors[i].GradeLevels)
	}
	return d
}

// clone returns a copy sharing no slices with d.
func (d StudentData) clone() StudentData {
	c := d
	c.Activities = make([]Activity, len(d.Activities))
	for i, a := range d.Activities {
		a.Categories = append([]string{}, a.Categories...)
		a.GradeLevels = append([]string{}, a.GradeLevels...)
		c.Activities[i] = a
	}
	c.Honors = make([]Honor, len(d.Honors))
	for i, h := range d.Honors {
		h.Recognition = append([]string{}, h.Recognition...)
		h.GradeLevels = append([]string{}, h.GradeLevels...)
		c.Honors[i] = h
	}
	return c
}

// tagSet cleans, de-duplicates and sorts multi-valued tags: their order is irrelevant.
func tagSet(tags []string) []string {
	set := make([]string, 0, len(tags))
	seen := make(map[string]bool, len(tags))
	for _, t := range tags {
		t = core.CleanString(t)
		if t == "" || seen[t] {
			continue
		}
		seen[t] = true
		set = append(set, t)
	}
	sort.Strings(set)
	return set
}
