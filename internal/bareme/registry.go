package bareme

import (
	"fmt"
	"os"
	"sort"

	"github.com/fiscalio/fiscalio/internal/domain"
	"gopkg.in/yaml.v3"
)

// Registry holds the validated baremes by fiscal year. It is built
// once at startup and read-only afterwards, so concurrent reads from
// the API layer need no locking.
type Registry struct {
	byYear map[int]*Bareme
}

// NewRegistry validates every bareme and indexes it by year
func NewRegistry(baremes ...*Bareme) (*Registry, error) {
	byYear := make(map[int]*Bareme, len(baremes))
	for _, b := range baremes {
		if err := b.Validate(); err != nil {
			return nil, err
		}
		if _, dup := byYear[b.Year]; dup {
			return nil, &domain.ConfigurationError{Year: b.Year, Field: "year", Reason: "duplicate fiscal year"}
		}
		byYear[b.Year] = b
	}
	return &Registry{byYear: byYear}, nil
}

// DefaultRegistry returns a registry holding the built-in baremes
func DefaultRegistry() *Registry {
	reg, err := NewRegistry(Default2025())
	if err != nil {
		// Built-in tables are validated by tests; a failure here is a defect.
		panic(err)
	}
	return reg
}

// ForYear returns the bareme for a fiscal year, or a ConfigurationError
// if the year is not loaded. Callers never get a guessed fallback.
func (r *Registry) ForYear(year int) (*Bareme, error) {
	b, ok := r.byYear[year]
	if !ok {
		return nil, &domain.ConfigurationError{Year: year, Field: "year", Reason: "no bareme loaded for this fiscal year"}
	}
	return b, nil
}

// Years lists the loaded fiscal years in ascending order
func (r *Registry) Years() []int {
	years := make([]int, 0, len(r.byYear))
	for y := range r.byYear {
		years = append(years, y)
	}
	sort.Ints(years)
	return years
}

// registryFile is the on-disk shape of a bareme file: a list of
// per-year tables under a single key.
type registryFile struct {
	Baremes []*Bareme `yaml:"baremes"`
}

// LoadFromFile reads and validates a YAML bareme file
func LoadFromFile(filename string) (*Registry, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read bareme file %s: %w", filename, err)
	}
	return Parse(data)
}

// Parse builds a registry from YAML bytes
func Parse(data []byte) (*Registry, error) {
	var file registryFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse bareme YAML: %w", err)
	}
	if len(file.Baremes) == 0 {
		return nil, &domain.ConfigurationError{Field: "baremes", Reason: "file contains no bareme"}
	}
	return NewRegistry(file.Baremes...)
}
