package harness

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/roach88/matex/internal/material"
	"github.com/roach88/matex/internal/preset"
)

// DefaultSnapshot is the snapshot id used when a scenario sets none.
const DefaultSnapshot = "test-snapshot"

// Scenario is a sequence of queries against one dataset.
type Scenario struct {
	// Name uniquely identifies this scenario and names its golden file.
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description"`

	// Snapshot is the fixed snapshot id stamped on the dataset.
	Snapshot string `yaml:"snapshot,omitempty"`

	// Dataset is the table the steps query.
	Dataset Dataset `yaml:"dataset"`

	// Steps run in order against the same table.
	Steps []Step `yaml:"steps"`
}

// Dataset is either inline records or a seeded synthetic table.
type Dataset struct {
	Records   []material.Record `yaml:"records,omitempty"`
	Synthetic *SyntheticDataset `yaml:"synthetic,omitempty"`
}

// SyntheticDataset configures a provider.Synthetic source.
// Seed must be non-zero so the table is reproducible.
type SyntheticDataset struct {
	Rows int    `yaml:"rows"`
	Seed uint64 `yaml:"seed"`
}

// Step is one query: exactly one of Filter or Find is set.
type Step struct {
	// Filter runs engine.Filter with this filter.
	Filter *preset.Filter `yaml:"filter,omitempty"`

	// Find runs engine.FindByID with this id.
	Find string `yaml:"find,omitempty"`

	// Expect checks the step's outcome. Nil means no check.
	Expect *Expect `yaml:"expect,omitempty"`
}

// Op names the step's operation.
func (s Step) Op() string {
	if s.Filter != nil {
		return OpFilter
	}
	return OpFind
}

// Step operations.
const (
	OpFilter = "filter"
	OpFind   = "find"
)

// Expect describes a step's expected outcome.
type Expect struct {
	// IDs are the expected result ids in order.
	IDs []string `yaml:"ids,omitempty"`

	// Count is the expected number of result rows.
	Count *int `yaml:"count,omitempty"`

	// Error is the error code the step must fail with
	// (e.g. "INVALID_SPEC", "NOT_FOUND").
	Error string `yaml:"error,omitempty"`
}

// LoadScenario reads and parses a scenario YAML file.
// Returns an error if the file doesn't exist, is malformed,
// contains unknown fields (typos), or is missing required fields.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}
	return ParseScenario(data)
}

// ParseScenario parses and validates one scenario document.
func ParseScenario(data []byte) (*Scenario, error) {
	// Strict decoding catches typos like "step:" vs "steps:"
	var scenario Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := validateScenario(&scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}

	return &scenario, nil
}

// validateScenario checks that required fields are present and valid.
func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}

	if s.Description == "" {
		return fmt.Errorf("description is required")
	}

	hasRecords := len(s.Dataset.Records) > 0
	hasSynthetic := s.Dataset.Synthetic != nil
	switch {
	case hasRecords && hasSynthetic:
		return fmt.Errorf("dataset: records and synthetic are mutually exclusive")
	case !hasRecords && !hasSynthetic:
		return fmt.Errorf("dataset: records or synthetic is required")
	case hasSynthetic && s.Dataset.Synthetic.Seed == 0:
		return fmt.Errorf("dataset.synthetic: seed must be non-zero")
	case hasSynthetic && s.Dataset.Synthetic.Rows < 0:
		return fmt.Errorf("dataset.synthetic: rows must be non-negative")
	}

	if len(s.Steps) == 0 {
		return fmt.Errorf("steps list is required and must be non-empty")
	}

	for i, step := range s.Steps {
		if err := validateStep(i, &step); err != nil {
			return err
		}
	}

	return nil
}

// validateStep validates a single step.
func validateStep(index int, s *Step) error {
	if (s.Filter != nil) == (s.Find != "") {
		return fmt.Errorf("steps[%d]: exactly one of filter or find is required", index)
	}
	if s.Expect != nil && s.Expect.Count != nil && *s.Expect.Count < 0 {
		return fmt.Errorf("steps[%d].expect: count must be non-negative", index)
	}
	return nil
}
