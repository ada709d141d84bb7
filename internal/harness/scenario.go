// Package harness runs end-to-end rewrite scenarios defined in YAML and
// compares the rewritten source against golden files. Scenarios exercise the
// whole pipeline: parse, lower, print.
package harness

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Scenario defines one end-to-end rewrite test.
type Scenario struct {
	// Name uniquely identifies this scenario; the golden file is
	// testdata/golden/{Name}.golden.
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description"`

	// Sources lists Java files to parse, relative to the scenario file.
	// Every source participates in interface resolution.
	Sources []string `yaml:"sources"`

	// Target is the source whose rewritten output is golden-compared.
	// Defaults to the first entry of Sources.
	Target string `yaml:"target,omitempty"`

	// LanguageLevel is the Java feature level for the run. Defaults to 17.
	LanguageLevel int `yaml:"language_level,omitempty"`

	// Expect describes the per-declaration outcomes the run must produce.
	Expect Expectation `yaml:"expect"`

	// baseDir is where relative source paths resolve from; set by the
	// loader.
	baseDir string
}

// Expectation lists expected declaration outcomes by name.
type Expectation struct {
	Rewritten []string `yaml:"rewritten,omitempty"`
	Skipped   []string `yaml:"skipped,omitempty"`
}

// LoadScenario reads a scenario from a YAML file.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scenario: %w", err)
	}
	var s Scenario
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parse scenario %s: %w", path, err)
	}
	if s.Name == "" {
		return nil, fmt.Errorf("scenario %s: name is required", path)
	}
	if len(s.Sources) == 0 {
		return nil, fmt.Errorf("scenario %s: at least one source is required", path)
	}
	if s.Target == "" {
		s.Target = s.Sources[0]
	}
	if s.LanguageLevel == 0 {
		s.LanguageLevel = 17
	}
	return &s, nil
}

// LoadScenarios reads every *.yaml scenario in a directory, sorted by name.
func LoadScenarios(dir string) ([]*Scenario, error) {
	matches, err := filepath.Glob(filepath.Join(dir, "*.yaml"))
	if err != nil {
		return nil, err
	}
	var scenarios []*Scenario
	for _, path := range matches {
		s, err := LoadScenario(path)
		if err != nil {
			return nil, err
		}
		s.baseDir = filepath.Dir(path)
		scenarios = append(scenarios, s)
	}
	return scenarios, nil
}
