package underwriting

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// FileConfigStore loads the configuration tables from a single YAML file.
// The file holds three lists keyed by section name:
//
//	stateOverrides:
//	  - stateCode: NY
//	    continuousGi: true
//	declineConditions:
//	  - code: ESRD
//	    label: End-Stage Renal Disease
//	giScenarios:
//	  - code: MA_PLAN_TERMINATION
//	    lookbackDays: 63
type FileConfigStore struct {
	path string
}

// NewFileConfigStore creates a store reading from the given path. The file is
// read once per collection at startup; nothing watches it afterward.
func NewFileConfigStore(path string) *FileConfigStore {
	return &FileConfigStore{path: path}
}

type configFile struct {
	StateOverrides    []StateOverride    `yaml:"stateOverrides"`
	DeclineConditions []DeclineCondition `yaml:"declineConditions"`
	GiScenarios       []GiScenario       `yaml:"giScenarios"`
}

func (s *FileConfigStore) load() (*configFile, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("failed to read configuration file %q: %w", s.path, err)
	}

	var cfg configFile
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse configuration file %q: %w", s.path, err)
	}
	return &cfg, nil
}

// StateOverrides returns overrides keyed by state code.
func (s *FileConfigStore) StateOverrides() (map[string]StateOverride, error) {
	cfg, err := s.load()
	if err != nil {
		return nil, err
	}

	out := make(map[string]StateOverride, len(cfg.StateOverrides))
	for _, ov := range cfg.StateOverrides {
		if _, exists := out[ov.StateCode]; exists {
			return nil, fmt.Errorf("duplicate state override %q in %s", ov.StateCode, s.path)
		}
		out[ov.StateCode] = ov
	}
	return out, nil
}

// DeclineConditions returns decline conditions keyed by code.
func (s *FileConfigStore) DeclineConditions() (map[string]DeclineCondition, error) {
	cfg, err := s.load()
	if err != nil {
		return nil, err
	}

	out := make(map[string]DeclineCondition, len(cfg.DeclineConditions))
	for _, c := range cfg.DeclineConditions {
		if _, exists := out[c.Code]; exists {
			return nil, fmt.Errorf("duplicate decline condition %q in %s", c.Code, s.path)
		}
		out[c.Code] = c
	}
	return out, nil
}

// GiScenarios returns GI scenarios keyed by event type.
func (s *FileConfigStore) GiScenarios() (map[GiEventType]GiScenario, error) {
	cfg, err := s.load()
	if err != nil {
		return nil, err
	}

	out := make(map[GiEventType]GiScenario, len(cfg.GiScenarios))
	for _, sc := range cfg.GiScenarios {
		if _, exists := out[sc.Code]; exists {
			return nil, fmt.Errorf("duplicate GI scenario %q in %s", sc.Code, s.path)
		}
		out[sc.Code] = sc
	}
	return out, nil
}
