package profile

import (
	"github.com/go-playground/validator/v10"

	"github.com/trezcool/masomo-apply/core"
)

var (
	gpaScaleTag  = "gpascale"
	gpaScaleText = "GPA cannot exceed the GPA scale"

	classRankTag  = "classrank"
	classRankText = "class rank cannot exceed class size"
)

// Schemas validates the profile forms.
// Each schema is a pure check over the full section: it never modifies its input.
type Schemas struct {
	v *core.Validator
}

// NewSchemas registers the profile rules on v.
func NewSchemas(v *core.Validator) *Schemas {
	v.Engine().RegisterStructValidation(familyStructValidation, Family{})
	v.Engine().RegisterStructValidation(educationStructValidation, Education{})
	v.RegisterCustomTranslation(gpaScaleTag, gpaScaleText)
	v.RegisterCustomTranslation(classRankTag, classRankText)
	return &Schemas{v: v}
}

// Education checks the education form.
// exitDate and exitReason are required only when the student will not graduate.
func (s *Schemas) Education(e Education) error { return s.v.Validate(e) }

// Family checks the family form.
// parent2 is required unless the household is a single-parent one.
func (s *Schemas) Family(f Family) error { return s.v.Validate(f) }

// Check validates the section touched by upd once applied to data.
// Sections without a schema are always valid.
func (s *Schemas) Check(data StudentData, upd SectionUpdate) error {
	next := upd.Apply(data)
	switch upd.Section() {
	case SectionEducation:
		return s.Education(next.Education)
	case SectionFamily:
		return s.Family(next.Family)
	}
	return nil
}

// Custom Validators

// familyStructValidation does the parents' conditional rules.
func familyStructValidation(sl validator.StructLevel) {
	f, ok := sl.Current().Interface().(Family)
	if !ok {
		return
	}
	reportBlank := func(val, field string) {
		if core.CleanString(val) == "" {
			sl.ReportError(val, field, field, "required", "")
		}
	}

	reportBlank(f.Parent1.Name, "parent1.name")
	reportBlank(f.Parent1.Relation, "parent1.relation")
	if f.Household != HouseholdSingle {
		reportBlank(f.Parent2.Name, "parent2.name")
		reportBlank(f.Parent2.Relation, "parent2.relation")
	}
}

// educationStructValidation does the cross-field numeric rules.
func educationStructValidation(sl validator.StructLevel) {
	e, ok := sl.Current().Interface().(Education)
	if !ok {
		return
	}
	if e.GPAScale > 0 && e.GPA > e.GPAScale {
		sl.ReportError(e.GPA, "gpa", "GPA", gpaScaleTag, "")
	}
	if e.ClassSize > 0 && e.ClassRank > e.ClassSize {
		sl.ReportError(e.ClassRank, "classRank", "ClassRank", classRankTag, "")
	}
}
