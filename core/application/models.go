package application

import (
	"time"

	"github.com/pkg/errors"

	"github.com/trezcool/masomo-apply/core"
)

// ErrNotFound is returned by read lookups only: mutations on unknown ids are no-ops.
var ErrNotFound = errors.New("application not found")

// Statuses
type Status string

const (
	StatusPlanning   Status = "Planning"
	StatusInProgress Status = "In Progress"
	StatusSubmitted  Status = "Submitted"
)

var Statuses = []Status{StatusPlanning, StatusInProgress, StatusSubmitted}

// Entity types
type EntityType string

const (
	EntityUniversity EntityType = "university"
	EntityProgram    EntityType = "program"
)

// Application tracks one university (or program) the student applies to.
// UniversityID is a weak reference into the catalog, or into the programs for EntityProgram, resolved at read time.
type Application struct {
	ID           string       `json:"id"`
	UniversityID string       `json:"universityId"`
	EntityType   EntityType   `json:"entityType"`
	Status       Status       `json:"status"`
	Majors       Majors       `json:"majors"`
	Supplements  []Supplement `json:"supplements"`
	Notes        string       `json:"notes"`
	CreatedAt    time.Time    `json:"createdAt"`
}

type Majors struct {
	First  string `json:"first" validate:"max=100"`
	Second string `json:"second" validate:"max=100"`
}

// Supplement is an extra piece of an application.
// LinkedDocumentID is a weak reference to a document owned by the document library; nil when unlinked.
type Supplement struct {
	ID               string  `json:"id"`
	Title            string  `json:"title"`
	LinkedDocumentID *string `json:"linkedDocumentId"`
}

// NewApplication contains information needed to create a new Application.
type NewApplication struct {
	UniversityID string     `json:"universityId" validate:"notblank"`
	EntityType   EntityType `json:"entityType" validate:"omitempty,oneof=university program"`
	Notes        string     `json:"notes" validate:"max=2000"`
}

func (na NewApplication) build() Application {
	et := na.EntityType
	if et == "" {
		et = EntityUniversity
	}
	return Application{
		ID:           core.NewID(),
		UniversityID: core.CleanString(na.UniversityID),
		EntityType:   et,
		Status:       StatusPlanning,
		Supplements:  []Supplement{},
		Notes:        na.Notes,
		CreatedAt:    core.NowFunc(),
	}
}

// NewSupplement contains information needed to add a Supplement.
type NewSupplement struct {
	Title string `json:"title" validate:"notblank,max=150"`
}

// StatusUpdate is the payload of a status change.
type StatusUpdate struct {
	Status Status `json:"status" validate:"required,oneof=Planning 'In Progress' Submitted"`
}

// LinkUpdate is the payload of a supplement link change; a nil DocumentID unlinks.
type LinkUpdate struct {
	DocumentID *string `json:"documentId" validate:"omitempty,notblank"`
}

func (a Application) clone() Application {
	sups := make([]Supplement, len(a.Supplements))
	for i, s := range a.Supplements {
		s.LinkedDocumentID = copyID(s.LinkedDocumentID)
		sups[i] = s
	}
	a.Supplements = sups
	return a
}

func (a Application) normalize() Application {
	if a.Supplements == nil {
		a.Supplements = []Supplement{}
	}
	if a.EntityType == "" {
		a.EntityType = EntityUniversity
	}
	return a
}

func copyID(id *string) *string {
	if id == nil {
		return nil
	}
	c := *id
	return &c
}
