package testutil

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/vellumlabs/vellum/internal/class"
	"github.com/vellumlabs/vellum/internal/hazard"
	"github.com/vellumlabs/vellum/internal/morph"
	"github.com/vellumlabs/vellum/internal/token"
)

// Fixture is a declarative test corpus.
type Fixture struct {
	Name     string         `yaml:"name"`
	Prefixes []string       `yaml:"prefixes"`
	Suffixes []string       `yaml:"suffixes"`
	Kernel   []string       `yaml:"kernel"`
	Records  []FixtureLine  `yaml:"records"`
	Classes  []FixtureClass `yaml:"classes"`
	Hazards  []FixtureHaz   `yaml:"hazards,omitempty"`

	// Auxiliary maps record ID (folio:line) to matched record IDs for
	// union-mode tests.
	Auxiliary map[string][]string `yaml:"auxiliary,omitempty"`
}

// FixtureLine is one context record: a folio line of tokens.
type FixtureLine struct {
	Folio  string   `yaml:"folio"`
	Line   int      `yaml:"line"`
	Tokens []string `yaml:"tokens"`
}

// FixtureClass is one class-table entry.
type FixtureClass struct {
	ID        string   `yaml:"id"`
	Role      string   `yaml:"role"`
	Members   []string `yaml:"members"`
	Hazardous bool     `yaml:"hazardous,omitempty"`
}

// FixtureHaz is one curated forbidden-transition declaration.
type FixtureHaz struct {
	Source   string `yaml:"source"`
	Target   string `yaml:"target"`
	Category string `yaml:"category"`
}

// LoadFixture reads a YAML fixture from disk.
func LoadFixture(path string) (*Fixture, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading fixture: %w", err)
	}
	var f Fixture
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing fixture %s: %w", path, err)
	}
	return &f, nil
}

// Source expands the fixture lines into an ordered in-memory token source.
func (f *Fixture) Source() *token.MemorySource {
	var tokens []token.Token
	for _, rec := range f.Records {
		for pos, text := range rec.Tokens {
			tokens = append(tokens, token.Token{
				Text:     text,
				Folio:    rec.Folio,
				Line:     rec.Line,
				Position: pos,
				Track:    "canonical",
			})
		}
	}
	return token.NewMemorySource(tokens)
}

// Rules builds the fixture's decomposition rule table.
func (f *Fixture) Rules() *morph.Rules {
	return morph.NewRules(f.Prefixes, f.Suffixes)
}

// Registry freezes the fixture's class table.
func (f *Fixture) Registry() (*class.Registry, error) {
	classes := make([]class.Class, 0, len(f.Classes))
	for _, fc := range f.Classes {
		classes = append(classes, class.Class{
			ID:        fc.ID,
			Role:      class.Role(fc.Role),
			Members:   fc.Members,
			Hazardous: fc.Hazardous,
		})
	}
	return class.NewRegistry(classes)
}

// Inventory returns the fixture's curated hazard inventory.
func (f *Fixture) Inventory() []hazard.Declared {
	out := make([]hazard.Declared, 0, len(f.Hazards))
	for _, h := range f.Hazards {
		out = append(out, hazard.Declared{
			Source:   h.Source,
			Target:   h.Target,
			Category: hazard.Category(h.Category),
		})
	}
	return out
}

// KernelSet returns the fixture kernel tokens as a membership set.
func (f *Fixture) KernelSet() map[string]bool {
	out := make(map[string]bool, len(f.Kernel))
	for _, k := range f.Kernel {
		out[k] = true
	}
	return out
}
