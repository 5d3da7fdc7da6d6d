package underwriting

import "fmt"

// ConfigStore supplies the three configuration collections. Implementations
// exist for YAML files and PostgreSQL; the engine only ever sees the
// assembled Tables.
type ConfigStore interface {
	// StateOverrides returns overrides keyed by two-letter state code.
	StateOverrides() (map[string]StateOverride, error)

	// DeclineConditions returns automatic-decline conditions keyed by code.
	DeclineConditions() (map[string]DeclineCondition, error)

	// GiScenarios returns Guaranteed Issue scenarios keyed by event type.
	GiScenarios() (map[GiEventType]GiScenario, error)
}

// LoadTables reads all three collections from the store, validates them, and
// returns the immutable Tables used by the engine for the process lifetime.
func LoadTables(store ConfigStore) (*Tables, error) {
	states, err := store.StateOverrides()
	if err != nil {
		return nil, fmt.Errorf("failed to load state overrides: %w", err)
	}

	conditions, err := store.DeclineConditions()
	if err != nil {
		return nil, fmt.Errorf("failed to load decline conditions: %w", err)
	}

	scenarios, err := store.GiScenarios()
	if err != nil {
		return nil, fmt.Errorf("failed to load GI scenarios: %w", err)
	}

	return NewTables(states, conditions, scenarios)
}
