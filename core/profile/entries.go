package profile

import "github.com/trezcool/masomo-apply/core"

// NewActivity contains information needed to create a new Activity.
type NewActivity struct {
	Title           string   `json:"title" validate:"notblank,max=150"`
	Position        string   `json:"position" validate:"max=150"`
	Organization    string   `json:"organization" validate:"max=150"`
	Description     string   `json:"description" validate:"max=1000"`
	Categories      []string `json:"categories"`
	GradeLevels     []string `json:"gradeLevels"`
	HoursPerWeek    int      `json:"hoursPerWeek" validate:"gte=0,lte=168"`
	WeeksPerYear    int      `json:"weeksPerYear" validate:"gte=0,lte=52"`
	AppearOnProfile bool     `json:"appearOnProfile"`
}

func (na NewActivity) build() Activity {
	return Activity{
		ID:              core.NewID(),
		Title:           core.CleanString(na.Title),
		Position:        core.CleanString(na.Position),
		Organization:    core.CleanString(na.Organization),
		Description:     na.Description,
		Categories:      tagSet(na.Categories),
		GradeLevels:     tagSet(na.GradeLevels),
		HoursPerWeek:    na.HoursPerWeek,
		WeeksPerYear:    na.WeeksPerYear,
		AppearOnProfile: na.AppearOnProfile,
		Status:          StatusDraft,
	}
}

// ActivityUpdate defines what information may be provided to modify an existing Activity.
type ActivityUpdate struct {
	Title           *string   `json:"title" validate:"omitempty,notblank,max=150"`
	Position        *string   `json:"position"`
	Organization    *string   `json:"organization"`
	Description     *string   `json:"description"`
	Categories      *[]string `json:"categories"`
	GradeLevels     *[]string `json:"gradeLevels"`
	HoursPerWeek    *int      `json:"hoursPerWeek" validate:"omitempty,gte=0,lte=168"`
	WeeksPerYear    *int      `json:"weeksPerYear" validate:"omitempty,gte=0,lte=52"`
	AppearOnProfile *bool     `json:"appearOnProfile"`
	Status          *Status   `json:"status" validate:"omitempty,oneof=draft complete"`
}

func (u ActivityUpdate) apply(a Activity) Activity {
	if u.Title != nil {
		a.Title = core.CleanString(*u.Title)
	}
	setStr(&a.Position, u.Position)
	setStr(&a.Organization, u.Organization)
	setStr(&a.Description, u.Description)
	if u.Categories != nil {
		a.Categories = tagSet(*u.Categories)
	}
	if u.GradeLevels != nil {
		a.GradeLevels = tagSet(*u.GradeLevels)
	}
	setInt(&a.HoursPerWeek, u.HoursPerWeek)
	setInt(&a.WeeksPerYear, u.WeeksPerYear)
	if u.AppearOnProfile != nil {
		a.AppearOnProfile = *u.AppearOnProfile
	}
	if u.Status != nil {
		a.Status = *u.Status
	}
	return a
}

// NewHonor contains information needed to create a new Honor.
type NewHonor struct {
	Title           string   `json:"title" validate:"notblank,max=100"`
	Recognition     []string `json:"recognition" validate:"dive,oneof=school regional national international"`
	GradeLevels     []string `json:"gradeLevels"`
	AppearOnProfile bool     `json:"appearOnProfile"`
}

func (nh NewHonor) build() Honor {
	return Honor{
		ID:              core.NewID(),
		Title:           core.CleanString(nh.Title),
		Recognition:     tagSet(nh.Recognition),
		GradeLevels:     tagSet(nh.GradeLevels),
		AppearOnProfile: nh.AppearOnProfile,
		Status:          StatusDraft,
	}
}

// HonorUpdate defines what information may be provided to modify an existing Honor.
type HonorUpdate struct {
	Title           *string   `json:"title" validate:"omitempty,notblank,max=100"`
	Recognition     *[]string `json:"recognition" validate:"omitempty,dive,oneof=school regional national international"`
	GradeLevels     *[]string `json:"gradeLevels"`
	AppearOnProfile *bool     `json:"appearOnProfile"`
	Status          *Status   `json:"status" validate:"omitempty,oneof=draft complete"`
}

func (u HonorUpdate) apply(h Honor) Honor {
	if u.Title != nil {
		h.Title = core.CleanString(*u.Title)
	}
	if u.Recognition != nil {
		h.Recognition = tagSet(*u.Recognition)
	}
	if u.GradeLevels != nil {
		h.GradeLevels = tagSet(*u.GradeLevels)
	}
	if u.AppearOnProfile != nil {
		h.AppearOnProfile = *u.AppearOnProfile
	}
	if u.Status != nil {
		h.Status = *u.Status
	}
	return h
}
