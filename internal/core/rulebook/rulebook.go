// Package rulebook bundles scoring rules and tier tables into one document
// that can be loaded from YAML.
package rulebook

import (
	"errors"
	"fmt"
	"os"

	"clan-points-tracker/internal/core/scoring"
	"clan-points-tracker/internal/core/tiers"

	"gopkg.in/yaml.v3"
)

type Rulebook struct {
	Scoring scoring.Rules `yaml:"scoring"`
	Tiers   tiers.Tables  `yaml:"tiers"`
}

func Default() *Rulebook {
	return &Rulebook{
		Scoring: scoring.DefaultRules(),
		Tiers:   tiers.DefaultTables(),
	}
}

// Load reads a rulebook from path. An empty path returns the built-in
// defaults. Sections missing from the file keep their default values; a list
// present in the file replaces the default list entirely.
func Load(path string) (*Rulebook, error) {
	if path == "" {
		return Default(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading rulebook: %w", err)
	}
	return Parse(data)
}

func Parse(data []byte) (*Rulebook, error) {
	data = []byte(os.ExpandEnv(string(data)))

	rb := Default()
	if err := yaml.Unmarshal(data, rb); err != nil {
		return nil, fmt.Errorf("parsing rulebook: %w", err)
	}

	if err := rb.Validate(); err != nil {
		return nil, err
	}
	return rb, nil
}

func (rb *Rulebook) Validate() error {
	var errs []error
	if err := rb.Scoring.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("scoring: %w", err))
	}
	if err := rb.Tiers.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("tiers: %w", err))
	}
	if len(errs) > 0 {
		return fmt.Errorf("invalid rulebook: %w", errors.Join(errs...))
	}
	return nil
}
