package profile

// SectionUpdate is a typed partial update of one StudentData section.
// nil fields are left unchanged.
type SectionUpdate interface {
	Section() Section
	// Apply returns data with the update merged into its section. data is not modified.
	Apply(data StudentData) StudentData
}

var (
	_ SectionUpdate = PersonalUpdate{}
	_ SectionUpdate = FamilyUpdate{}
	_ SectionUpdate = EducationUpdate{}
	_ SectionUpdate = TestScoresUpdate{}
	_ SectionUpdate = FinanceUpdate{}
	_ SectionUpdate = EssaysUpdate{}
	_ SectionUpdate = RecommendationsUpdate{}
)

// NewSectionUpdate returns an empty update for the named section, ready to be decoded into.
// ok is false for unknown sections and for the list sections (activities, honors).
func NewSectionUpdate(name string) (upd SectionUpdate, ok bool) {
	switch Section(name) {
	case SectionPersonal:
		return &PersonalUpdate{}, true
	case SectionFamily:
		return &FamilyUpdate{}, true
	case SectionEducation:
		return &EducationUpdate{}, true
	case SectionTestScores:
		return &TestScoresUpdate{}, true
	case SectionFinance:
		return &FinanceUpdate{}, true
	case SectionEssays:
		return &EssaysUpdate{}, true
	case SectionRecommendations:
		return &RecommendationsUpdate{}, true
	}
	return nil, false
}

func setStr(dst *string, src *string) {
	if src != nil {
		*dst = *src
	}
}

func setInt(dst *int, src *int) {
	if src != nil {
		*dst = *src
	}
}

func setFloat(dst *float64, src *float64) {
	if src != nil {
		*dst = *src
	}
}

type PersonalUpdate struct {
	FirstName     *string `json:"firstName"`
	LastName      *string `json:"lastName"`
	PreferredName *string `json:"preferredName"`
	DateOfBirth   *string `json:"dateOfBirth"`
	Gender        *string `json:"gender"`
	Email         *string `json:"email"`
	Phone         *string `json:"phone"`
	Citizenship   *string `json:"citizenship"`
	Address       *string `json:"address"`
	City          *string `json:"city"`
	Country       *string `json:"country"`
}

func (u PersonalUpdate) Section() Section { return SectionPersonal }

func (u PersonalUpdate) Apply(data StudentData) StudentData {
	p := data.Personal
	setStr(&p.FirstName, u.FirstName)
	setStr(&p.LastName, u.LastName)
	setStr(&p.PreferredName, u.PreferredName)
	setStr(&p.DateOfBirth, u.DateOfBirth)
	setStr(&p.Gender, u.Gender)
	setStr(&p.Email, u.Email)
	setStr(&p.Phone, u.Phone)
	setStr(&p.Citizenship, u.Citizenship)
	setStr(&p.Address, u.Address)
	setStr(&p.City, u.City)
	setStr(&p.Country, u.Country)
	data.Personal = p
	return data
}

type ParentUpdate struct {
	Name       *string `json:"name"`
	Relation   *string `json:"relation"`
	Occupation *string `json:"occupation"`
	Education  *string `json:"education"`
	Email      *string `json:"email"`
	Phone      *string `json:"phone"`
}

func (u *ParentUpdate) apply(p Parent) Parent {
	if u == nil {
		return p
	}
	setStr(&p.Name, u.Name)
	setStr(&p.Relation, u.Relation)
	setStr(&p.Occupation, u.Occupation)
	setStr(&p.Education, u.Education)
	setStr(&p.Email, u.Email)
	setStr(&p.Phone, u.Phone)
	return p
}

type FamilyUpdate struct {
	Household    *string       `json:"household"`
	LivesWith    *string       `json:"livesWith"`
	Parent1      *ParentUpdate `json:"parent1"`
	Parent2      *ParentUpdate `json:"parent2"`
	SiblingCount *int          `json:"siblingCount"`
}

func (u FamilyUpdate) Section() Section { return SectionFamily }

func (u FamilyUpdate) Apply(data StudentData) StudentData {
	f := data.Family
	setStr(&f.Household, u.Household)
	setStr(&f.LivesWith, u.LivesWith)
	f.Parent1 = u.Parent1.apply(f.Parent1)
	f.Parent2 = u.Parent2.apply(f.Parent2)
	setInt(&f.SiblingCount, u.SiblingCount)
	data.Family = f
	return data
}

type EducationUpdate struct {
	SchoolName     *string  `json:"schoolName"`
	SchoolCountry  *string  `json:"schoolCountry"`
	Curriculum     *string  `json:"curriculum"`
	EntryDate      *string  `json:"entryDate"`
	GraduationYear *int     `json:"graduationYear"`
	WillGraduate   *string  `json:"willGraduate"`
	ExitDate       *string  `json:"exitDate"`
	ExitReason     *string  `json:"exitReason"`
	GPA            *float64 `json:"gpa"`
	GPAScale       *float64 `json:"gpaScale"`
	ClassRank      *int     `json:"classRank"`
	ClassSize      *int     `json:"classSize"`
}

func (u EducationUpdate) Section() Section { return SectionEducation }

func (u EducationUpdate) Apply(data StudentData) StudentData {
	e := data.Education
	setStr(&e.SchoolName, u.SchoolName)
	setStr(&e.SchoolCountry, u.SchoolCountry)
	setStr(&e.Curriculum, u.Curriculum)
	setStr(&e.EntryDate, u.EntryDate)
	setInt(&e.GraduationYear, u.GraduationYear)
	setStr(&e.WillGraduate, u.WillGraduate)
	setStr(&e.ExitDate, u.ExitDate)
	setStr(&e.ExitReason, u.ExitReason)
	setFloat(&e.GPA, u.GPA)
	setFloat(&e.GPAScale, u.GPAScale)
	setInt(&e.ClassRank, u.ClassRank)
	setInt(&e.ClassSize, u.ClassSize)
	data.Education = e
	return data
}

type TestScoresUpdate struct {
	SAT       *int     `json:"sat"`
	ACT       *int     `json:"act"`
	TOEFL     *int     `json:"toefl"`
	IELTS     *float64 `json:"ielts"`
	APExams   *string  `json:"apExams"`
	IBPredict *int     `json:"ibPredicted"`
}

func (u TestScoresUpdate) Section() Section { return SectionTestScores }

func (u TestScoresUpdate) Apply(data StudentData) StudentData {
	s := data.TestScores
	setInt(&s.SAT, u.SAT)
	setInt(&s.ACT, u.ACT)
	setInt(&s.TOEFL, u.TOEFL)
	setFloat(&s.IELTS, u.IELTS)
	setStr(&s.APExams, u.APExams)
	setInt(&s.IBPredict, u.IBPredict)
	data.TestScores = s
	return data
}

type FinanceUpdate struct {
	NeedsAid        *bool   `json:"needsAid"`
	AnnualBudget    *int    `json:"annualBudget"`
	Currency        *string `json:"currency"`
	FundingSource   *string `json:"fundingSource"`
	ScholarshipNote *string `json:"scholarshipNote"`
}

func (u FinanceUpdate) Section() Section { return SectionFinance }

func (u FinanceUpdate) Apply(data StudentData) StudentData {
	f := data.Finance
	if u.NeedsAid != nil {
		f.NeedsAid = *u.NeedsAid
	}
	setInt(&f.AnnualBudget, u.AnnualBudget)
	setStr(&f.Currency, u.Currency)
	setStr(&f.FundingSource, u.FundingSource)
	setStr(&f.ScholarshipNote, u.ScholarshipNote)
	data.Finance = f
	return data
}

type EssaysUpdate struct {
	PersonalStatement *string `json:"personalStatement"`
	Prompt            *string `json:"prompt"`
	AdditionalInfo    *string `json:"additionalInfo"`
}

func (u EssaysUpdate) Section() Section { return SectionEssays }

func (u EssaysUpdate) Apply(data StudentData) StudentData {
	e := data.Essays
	setStr(&e.PersonalStatement, u.PersonalStatement)
	setStr(&e.Prompt, u.Prompt)
	setStr(&e.AdditionalInfo, u.AdditionalInfo)
	data.Essays = e
	return data
}

type RecommendationsUpdate struct {
	Counselor  *string `json:"counselor"`
	Teacher1   *string `json:"teacher1"`
	Teacher2   *string `json:"teacher2"`
	OtherNotes *string `json:"otherNotes"`
}

func (u RecommendationsUpdate) Section() Section { return SectionRecommendations }

func (u RecommendationsUpdate) Apply(data StudentData) StudentData {
	r := data.Recommendations
	setStr(&r.Counselor, u.Counselor)
	setStr(&r.Teacher1, u.Teacher1)
	setStr(&r.Teacher2, u.Teacher2)
	setStr(&r.OtherNotes, u.OtherNotes)
	data.Recommendations = r
	return data
}
