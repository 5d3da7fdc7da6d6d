package underwriting

import (
	"testing"
)

func testDeclineConditions() []DeclineCondition {
	return []DeclineCondition{
		{Code: "COPD-O2", Label: "COPD", Description: "COPD requiring supplemental oxygen"},
		{Code: "CIRR", Label: "CIRRHOSIS", Description: "Cirrhosis of the liver"},
	}
}

func TestDeclineHitsSubstringMatch(t *testing.T) {
	health := &Health{Conditions: []string{"Severe COPD with home oxygen"}}

	hits := declineHits(health, testDeclineConditions())
	if len(hits) != 1 || hits[0] != "COPD-O2" {
		t.Errorf("declineHits() = %v, want [COPD-O2]", hits)
	}
}

func TestDeclineHitsCaseInsensitive(t *testing.T) {
	health := &Health{Conditions: []string{"cirrhosis"}}

	hits := declineHits(health, testDeclineConditions())
	if len(hits) != 1 || hits[0] != "CIRR" {
		t.Errorf("declineHits() = %v, want [CIRR]", hits)
	}
}

func TestDeclineHitsHardcodedConditions(t *testing.T) {
	testCases := []struct {
		name       string
		conditions []string
		oxygen     bool
		wantAuto   bool
	}{
		{"ESRD", []string{"ESRD"}, false, true},
		{"Alzheimer", []string{"ALZHEIMER"}, false, true},
		{"Dementia", []string{"dementia"}, false, true},
		{"CHF with oxygen", []string{"CHF"}, true, true},
		{"CHF without oxygen", []string{"CHF"}, false, false},
		{"Unrelated condition", []string{"hypertension"}, false, false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			health := &Health{Conditions: tc.conditions, OxygenUse: tc.oxygen}
			hits := declineHits(health, nil)

			gotAuto := false
			for _, h := range hits {
				if h == "AUTO" {
					gotAuto = true
				}
			}
			if gotAuto != tc.wantAuto {
				t.Errorf("declineHits(%v, oxygen=%v) AUTO = %v, want %v", tc.conditions, tc.oxygen, gotAuto, tc.wantAuto)
			}
		})
	}
}

func TestDeclineHitsNilHealth(t *testing.T) {
	if hits := declineHits(nil, testDeclineConditions()); hits != nil {
		t.Errorf("declineHits(nil) = %v, want nil", hits)
	}
}

func TestDeclineHitsConfiguredAndAuto(t *testing.T) {
	health := &Health{Conditions: []string{"ESRD", "advanced cirrhosis"}}

	hits := declineHits(health, testDeclineConditions())
	if len(hits) != 2 {
		t.Fatalf("declineHits() = %v, want configured hit plus AUTO", hits)
	}
	if hits[0] != "CIRR" || hits[1] != "AUTO" {
		t.Errorf("declineHits() = %v, want [CIRR AUTO]", hits)
	}
}
