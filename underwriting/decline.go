package underwriting

import "strings"

// Conditions that decline automatically regardless of configuration. CHF only
// declines when combined with oxygen use.
const (
	condCHF       = "CHF"
	condESRD      = "ESRD"
	condAlzheimer = "ALZHEIMER"
	condDementia  = "DEMENTIA"
)

// declineHits matches the applicant's disclosed conditions against the
// configured decline table plus the hardcoded automatic declines. Matching is
// loose, case-insensitive substring containment of a condition's label or
// description within a disclosed condition. Returns the codes that matched,
// configured codes first in table order, then "AUTO" for the hardcoded set.
func declineHits(health *Health, conditions []DeclineCondition) []string {
	if health == nil {
		return nil
	}

	disclosed := make(map[string]bool, len(health.Conditions))
	for _, c := range health.Conditions {
		disclosed[strings.ToUpper(c)] = true
	}

	containsLabel := func(label string) bool {
		label = strings.ToUpper(label)
		if label == "" {
			return false
		}
		for c := range disclosed {
			if strings.Contains(c, label) {
				return true
			}
		}
		return false
	}

	var hits []string
	for _, cond := range conditions {
		if containsLabel(cond.Label) || containsLabel(cond.Description) {
			hits = append(hits, cond.Code)
		}
	}

	if (disclosed[condCHF] && health.OxygenUse) ||
		disclosed[condESRD] || disclosed[condAlzheimer] || disclosed[condDementia] {
		hits = append(hits, "AUTO")
	}

	return hits
}
