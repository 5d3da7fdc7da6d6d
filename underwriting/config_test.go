package underwriting

import (
	"os"
	"path/filepath"
	"testing"
)

func TestFileConfigStoreLoadTables(t *testing.T) {
	store := NewFileConfigStore(filepath.Join("testdata", "tables.yaml"))

	tables, err := LoadTables(store)
	if err != nil {
		t.Fatalf("LoadTables() error = %v", err)
	}

	ov, ok := tables.LookupStateOverride("NY")
	if !ok || !ov.ContinuousGi {
		t.Errorf("LookupStateOverride(NY) = %+v, %v; want continuous GI override", ov, ok)
	}
	if _, ok := tables.LookupStateOverride("TX"); ok {
		t.Error("LookupStateOverride(TX) found an override, want none")
	}

	conditions := tables.ListDeclineConditions()
	if len(conditions) != 2 {
		t.Fatalf("ListDeclineConditions() = %d entries, want 2", len(conditions))
	}
	if conditions[0].Code != "COPD-O2" || conditions[1].Code != "ESRD" {
		t.Errorf("ListDeclineConditions() order = [%s %s], want sorted by code", conditions[0].Code, conditions[1].Code)
	}

	sc, ok := tables.LookupGiScenario(GiMedicareSelectRelocation)
	if !ok || sc.LookbackDays != 90 {
		t.Errorf("LookupGiScenario(MEDICARE_SELECT_RELOCATION) = %+v, %v; want 90-day lookback", sc, ok)
	}
}

func TestFileConfigStoreMissingFile(t *testing.T) {
	store := NewFileConfigStore(filepath.Join("testdata", "nope.yaml"))

	if _, err := store.StateOverrides(); err == nil {
		t.Error("StateOverrides() error = nil for missing file, want failure")
	}
}

func TestFileConfigStoreDuplicateEntries(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tables.yaml")
	content := "declineConditions:\n  - code: ESRD\n    label: ESRD\n  - code: ESRD\n    label: ESRD again\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	store := NewFileConfigStore(path)
	if _, err := store.DeclineConditions(); err == nil {
		t.Error("DeclineConditions() error = nil for duplicate codes, want failure")
	}
}

func TestGiLookbackDaysDefault(t *testing.T) {
	tables := newTestTables(t)

	if got := tables.GiLookbackDays(GiMedicareSelectRelocation); got != 90 {
		t.Errorf("GiLookbackDays(MEDICARE_SELECT_RELOCATION) = %d, want configured 90", got)
	}
	if got := tables.GiLookbackDays(GiEmployerGroupEnding); got != GiDefaultLookbackDays {
		t.Errorf("GiLookbackDays(EMPLOYER_GROUP_ENDING) = %d, want default %d", got, GiDefaultLookbackDays)
	}
}

func TestNewTablesValidation(t *testing.T) {
	testCases := []struct {
		name       string
		states     map[string]StateOverride
		conditions map[string]DeclineCondition
		scenarios  map[GiEventType]GiScenario
	}{
		{
			name:   "bad state code",
			states: map[string]StateOverride{"NEWYORK": {StateCode: "NEWYORK", ContinuousGi: true}},
		},
		{
			name:   "key mismatch",
			states: map[string]StateOverride{"NY": {StateCode: "CA"}},
		},
		{
			name:       "condition without label or description",
			conditions: map[string]DeclineCondition{"X": {Code: "X"}},
		},
		{
			name:      "negative lookback",
			scenarios: map[GiEventType]GiScenario{GiMAPlanTermination: {Code: GiMAPlanTermination, LookbackDays: -1}},
		},
		{
			name: "unknown permitted plan letter",
			scenarios: map[GiEventType]GiScenario{
				GiMAPlanTermination: {Code: GiMAPlanTermination, PermittedPlanLetters: []string{"Q"}},
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := NewTables(tc.states, tc.conditions, tc.scenarios); err == nil {
				t.Error("NewTables() error = nil, want validation failure")
			}
		})
	}
}

func TestNewTablesNormalizesStateKeys(t *testing.T) {
	tables, err := NewTables(
		map[string]StateOverride{"ny": {StateCode: "NY", ContinuousGi: true}},
		nil, nil,
	)
	if err != nil {
		t.Fatalf("NewTables() error = %v", err)
	}

	if _, ok := tables.LookupStateOverride("Ny"); !ok {
		t.Error("LookupStateOverride(Ny) not found, want case-insensitive lookup")
	}
}
