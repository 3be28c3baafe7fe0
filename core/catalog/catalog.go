package catalog

import (
	_ "embed"
	"sort"
	"strings"
	"sync"

	"github.com/pkg/errors"
	"github.com/pmezard/go-difflib/difflib"
	"gopkg.in/yaml.v3"
)

// ErrNotFound is returned when a university id does not resolve.
var ErrNotFound = errors.New("university not found")

// minRatio is the lowest similarity a fuzzy match may have.
const minRatio = 0.6

//go:embed universities.yaml
var universitiesYAML []byte

// University is a read-only catalog entry.
type University struct {
	ID              string  `json:"id" yaml:"id"`
	Name            string  `json:"name" yaml:"name"`
	Country         string  `json:"country" yaml:"country"`
	Rank            int     `json:"rank" yaml:"rank"`
	Tuition         int     `json:"tuition" yaml:"tuition"`
	AcceptanceRate  float64 `json:"acceptanceRate" yaml:"acceptanceRate"`
	Deadline        string  `json:"deadline" yaml:"deadline"`
	ScholarshipTier string  `json:"scholarshipTier" yaml:"scholarshipTier"`
	LogoURL         string  `json:"logoUrl" yaml:"logoUrl"`
}

// Catalog is the static list of universities.
type Catalog struct {
	universities []University
	byID         map[string]int
}

var (
	loadOnce sync.Once
	loaded   *Catalog
	loadErr  error
)

// Load parses the compiled-in catalog once.
func Load() (*Catalog, error) {
	loadOnce.Do(func() {
		loaded, loadErr = Parse(universitiesYAML)
	})
	return loaded, loadErr
}

// Parse builds a Catalog from YAML.
func Parse(data []byte) (*Catalog, error) {
	var unis []University
	if err := yaml.Unmarshal(data, &unis); err != nil {
		return nil, errors.Wrap(err, "parsing catalog")
	}
	c := &Catalog{universities: unis, byID: make(map[string]int, len(unis))}
	for i, u := range unis {
		if u.ID == "" {
			return nil, errors.Errorf("catalog entry %d has no id", i)
		}
		if _, dup := c.byID[u.ID]; dup {
			return nil, errors.Errorf("duplicate catalog id %q", u.ID)
		}
		c.byID[u.ID] = i
	}
	return c, nil
}

func (c *Catalog) All() []University {
	return append([]University{}, c.universities...)
}

func (c *Catalog) Get(id string) (University, error) {
	i, ok := c.byID[id]
	if !ok {
		return University{}, ErrNotFound
	}
	return c.universities[i], nil
}

// Lookup resolves a weak reference; nil when it dangles.
func (c *Catalog) Lookup(id string) *University {
	u, err := c.Get(id)
	if err != nil {
		return nil
	}
	return &u
}

type match struct {
	uni    University
	substr bool
	ratio  float64
}

// Search returns up to limit universities matching query by name or country.
// Substring hits come first, then names ranked by similarity. limit <= 0 means no limit.
func (c *Catalog) Search(query string, limit int) []University {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return c.cap(c.All(), limit)
	}

	var matches []match
	for _, u := range c.universities {
		name := strings.ToLower(u.Name)
		if strings.Contains(name, q) || strings.Contains(strings.ToLower(u.Country), q) {
			matches = append(matches, match{uni: u, substr: true, ratio: 1})
			continue
		}
		if r := similarity(q, name); r >= minRatio {
			matches = append(matches, match{uni: u, ratio: r})
		}
	}
	sort.SliceStable(matches, func(i, j int) bool {
		if matches[i].substr != matches[j].substr {
			return matches[i].substr
		}
		return matches[i].ratio > matches[j].ratio
	})

	found := make([]University, len(matches))
	for i, m := range matches {
		found[i] = m.uni
	}
	return c.cap(found, limit)
}

func (c *Catalog) cap(unis []University, limit int) []University {
	if limit > 0 && len(unis) > limit {
		return unis[:limit]
	}
	return unis
}

// similarity compares q with each word of name and the whole name, keeping the best ratio.
func similarity(q, name string) float64 {
	best := ratio(q, name)
	for _, word := range strings.Fields(name) {
		if r := ratio(q, word); r > best {
			best = r
		}
	}
	return best
}

func ratio(a, b string) float64 {
	m := difflib.NewMatcher(strings.Split(a, ""), strings.Split(b, ""))
	return m.Ratio()
}
