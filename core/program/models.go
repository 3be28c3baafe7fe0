package program

import (
	"github.com/trezcool/masomo-apply/core"
)

// TypeProgram tags every Program, seeded or added.
const TypeProgram = "program"

// Program is a catalog-like record of a study program.
type Program struct {
	ID         string `json:"id"`
	Type       string `json:"type"`
	Name       string `json:"name"`
	University string `json:"university"`
	Country    string `json:"country"`
	Duration   string `json:"duration"`
	Cost       int    `json:"cost"`
	Deadline   string `json:"deadline"`
}

// NewProgram contains information needed to create a new Program.
type NewProgram struct {
	Name       string `json:"name" validate:"notblank,max=150"`
	University string `json:"university" validate:"max=150"`
	Country    string `json:"country" validate:"max=100"`
	Duration   string `json:"duration" validate:"max=50"`
	Cost       int    `json:"cost" validate:"gte=0"`
	Deadline   string `json:"deadline" validate:"omitempty,datetime=2006-01-02"`
}

func (np NewProgram) build() Program {
	return Program{
		ID:         core.NewID(),
		Type:       TypeProgram,
		Name:       core.CleanString(np.Name),
		University: core.CleanString(np.University),
		Country:    core.CleanString(np.Country),
		Duration:   core.CleanString(np.Duration),
		Cost:       np.Cost,
		Deadline:   np.Deadline,
	}
}

// Seed returns the compiled-in programs, used when nothing usable is persisted.
func Seed() []Program {
	return []Program{
		{
			ID: "prog-alu-ibl", Type: TypeProgram,
			Name: "International Business & Trade", University: "African Leadership University",
			Country: "Rwanda", Duration: "4 years", Cost: 14000, Deadline: "2026-03-15",
		},
		{
			ID: "prog-ashesi-cs", Type: TypeProgram,
			Name: "Computer Science", University: "Ashesi University",
			Country: "Ghana", Duration: "4 years", Cost: 12500, Deadline: "2026-03-01",
		},
		{
			ID: "prog-uct-foundation", Type: TypeProgram,
			Name: "Engineering Foundation Year", University: "University of Cape Town",
			Country: "South Africa", Duration: "1 year", Cost: 6000, Deadline: "2026-07-31",
		},
		{
			ID: "prog-mastercard-scholars", Type: TypeProgram,
			Name: "Mastercard Foundation Scholars Program", University: "McGill University",
			Country: "Canada", Duration: "4 years", Cost: 0, Deadline: "2026-01-15",
		},
		{
			ID: "prog-edinburgh-gap", Type: TypeProgram,
			Name: "Summer Pre-University Programme", University: "University of Edinburgh",
			Country: "United Kingdom", Duration: "6 weeks", Cost: 4200, Deadline: "2026-04-30",
		},
	}
}
