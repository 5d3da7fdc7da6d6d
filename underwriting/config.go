package underwriting

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
)

// StateOverride is a state-level deviation from the federal baseline. A state
// with ContinuousGi bypasses underwriting entirely (R-600).
type StateOverride struct {
	StateCode       string `yaml:"stateCode" json:"stateCode"`
	ContinuousGi    bool   `yaml:"continuousGi" json:"continuousGi"`
	BirthdayRule    bool   `yaml:"birthdayRule" json:"birthdayRule"`
	AnniversaryRule bool   `yaml:"anniversaryRule" json:"anniversaryRule"`
	Under65Access   string `yaml:"under65Access" json:"under65Access,omitempty"`
	Notes           string `yaml:"notes" json:"notes,omitempty"`
}

// DeclineCondition is a configured automatic-decline health condition.
// Matching against disclosed conditions is loose substring containment.
type DeclineCondition struct {
	Code        string `yaml:"code" json:"code"`
	Label       string `yaml:"label" json:"label"`
	Description string `yaml:"description" json:"description,omitempty"`
}

// GiScenario describes one Guaranteed Issue trigger: its lookback window and
// the plan letters federal guidance permits for it. The permitted letters are
// advisory metadata; the pipeline's allowed set for GI is the fixed base set.
type GiScenario struct {
	Code                 GiEventType `yaml:"code" json:"code"`
	Description          string      `yaml:"description" json:"description,omitempty"`
	LookbackDays         int         `yaml:"lookbackDays" json:"lookbackDays"`
	PermittedPlanLetters []string    `yaml:"permittedPlanLetters" json:"permittedPlanLetters,omitempty"`
}

// Tables holds the three read-only configuration mappings. Built once at
// startup, never mutated afterward, so reads need no synchronization.
type Tables struct {
	stateOverrides    map[string]StateOverride
	declineConditions map[string]DeclineCondition
	giScenarios       map[GiEventType]GiScenario
}

// NewTables validates the three mappings and assembles an immutable Tables.
func NewTables(states map[string]StateOverride, conditions map[string]DeclineCondition, scenarios map[GiEventType]GiScenario) (*Tables, error) {
	if err := validateTables(states, conditions, scenarios); err != nil {
		return nil, err
	}

	t := &Tables{
		stateOverrides:    make(map[string]StateOverride, len(states)),
		declineConditions: make(map[string]DeclineCondition, len(conditions)),
		giScenarios:       make(map[GiEventType]GiScenario, len(scenarios)),
	}
	for k, v := range states {
		t.stateOverrides[strings.ToUpper(k)] = v
	}
	for k, v := range conditions {
		t.declineConditions[k] = v
	}
	for k, v := range scenarios {
		t.giScenarios[k] = v
	}
	return t, nil
}

// LookupStateOverride returns the override for a state code, if configured.
// Absence is a normal negative result, not an error.
func (t *Tables) LookupStateOverride(state string) (StateOverride, bool) {
	ov, ok := t.stateOverrides[strings.ToUpper(state)]
	return ov, ok
}

// ListStateOverrides returns all configured overrides sorted by state code.
func (t *Tables) ListStateOverrides() []StateOverride {
	out := make([]StateOverride, 0, len(t.stateOverrides))
	for _, ov := range t.stateOverrides {
		out = append(out, ov)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StateCode < out[j].StateCode })
	return out
}

// ListDeclineConditions returns all decline conditions sorted by code, so the
// decline matcher evaluates them in a deterministic order.
func (t *Tables) ListDeclineConditions() []DeclineCondition {
	out := make([]DeclineCondition, 0, len(t.declineConditions))
	for _, c := range t.declineConditions {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	return out
}

// LookupGiScenario returns the scenario for a GI event type, if configured.
func (t *Tables) LookupGiScenario(code GiEventType) (GiScenario, bool) {
	sc, ok := t.giScenarios[code]
	return sc, ok
}

// ListGiScenarios returns all GI scenarios sorted by code.
func (t *Tables) ListGiScenarios() []GiScenario {
	out := make([]GiScenario, 0, len(t.giScenarios))
	for _, sc := range t.giScenarios {
		out = append(out, sc)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	return out
}

// GiLookbackDays returns the configured lookback for an event type, falling
// back to the 63-day federal default.
func (t *Tables) GiLookbackDays(code GiEventType) int {
	if sc, ok := t.giScenarios[code]; ok && sc.LookbackDays > 0 {
		return sc.LookbackDays
	}
	return GiDefaultLookbackDays
}

var stateCodePattern = regexp.MustCompile(`^[A-Z]{2}$`)

// validateTables rejects malformed configuration before the engine can see
// it: bad state codes, empty condition codes, unknown plan letters, or
// negative lookbacks.
func validateTables(states map[string]StateOverride, conditions map[string]DeclineCondition, scenarios map[GiEventType]GiScenario) error {
	valid := make(map[string]bool, len(AllPlanLetters()))
	for _, p := range AllPlanLetters() {
		valid[p] = true
	}

	for key, ov := range states {
		code := strings.ToUpper(key)
		if !stateCodePattern.MatchString(code) {
			return fmt.Errorf("state override %q: state code must be two letters", key)
		}
		if ov.StateCode != "" && !strings.EqualFold(ov.StateCode, key) {
			return fmt.Errorf("state override %q: key does not match stateCode %q", key, ov.StateCode)
		}
	}

	for key, c := range conditions {
		if strings.TrimSpace(key) == "" {
			return fmt.Errorf("decline condition with empty code")
		}
		if strings.TrimSpace(c.Label) == "" && strings.TrimSpace(c.Description) == "" {
			return fmt.Errorf("decline condition %q: label and description both empty", key)
		}
	}

	for key, sc := range scenarios {
		if strings.TrimSpace(string(key)) == "" {
			return fmt.Errorf("GI scenario with empty code")
		}
		if sc.LookbackDays < 0 {
			return fmt.Errorf("GI scenario %q: negative lookbackDays %d", key, sc.LookbackDays)
		}
		for _, p := range sc.PermittedPlanLetters {
			if !valid[p] {
				return fmt.Errorf("GI scenario %q: unknown plan letter %q", key, p)
			}
		}
	}

	return nil
}
