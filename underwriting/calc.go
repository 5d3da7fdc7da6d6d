package underwriting

import "time"

// ApplyMACRAFilter removes plans C, F, and HDF from the candidate set when
// the applicant first became Medicare-eligible on or after the MACRA cutoff.
// A nil eligibility date leaves the set unchanged.
func ApplyMACRAFilter(planLetters []string, medicareEligibility *time.Time) []string {
	if medicareEligibility == nil || medicareEligibility.Before(MACRACutoff) {
		return planLetters
	}
	out := make([]string, 0, len(planLetters))
	for _, p := range planLetters {
		if p == "C" || p == "F" || p == "HDF" {
			continue
		}
		out = append(out, p)
	}
	return out
}

func macraRestricted(planLetter string, medicareEligibility *time.Time) bool {
	if medicareEligibility == nil || medicareEligibility.Before(MACRACutoff) {
		return false
	}
	return planLetter == "C" || planLetter == "F" || planLetter == "HDF"
}

// computeWaitingPeriod applies the federal-baseline pre-existing-condition
// waiting period. Protected paths (ACCEPT_NO_UW) never carry one. Otherwise
// the applicant avoids it with at least 6 months of creditable coverage and a
// gap no longer than the GI lookback; the period is otherwise 6 months less
// one per month of prior creditable coverage.
func computeWaitingPeriod(priorMonths, gapDays int, protected bool) WaitingPeriod {
	if protected {
		return WaitingPeriod{}
	}
	if gapDays <= GiDefaultLookbackDays && priorMonths >= 6 {
		return WaitingPeriod{}
	}
	months := 6 - priorMonths
	if months <= 0 {
		return WaitingPeriod{}
	}
	return WaitingPeriod{
		Applies: true,
		Months:  months,
		Reason:  "Pre-existing condition waiting period per federal baseline",
	}
}

// computeRatingGuidance suggests a premium class. Business issued without
// underwriting is always PREFERRED at factor 1.0. BMI defaults to 25 when
// either measurement is missing.
func computeRatingGuidance(tobacco bool, heightInches, weightPounds int, uwRequired bool) RatingGuidance {
	if !uwRequired {
		return RatingGuidance{Class: RatingPreferred, SuggestedFactor: 1.0}
	}

	bmi := 25.0
	if heightInches > 0 && weightPounds > 0 {
		kg := float64(weightPounds) / 2.20462
		meters := float64(heightInches) * 0.0254
		bmi = kg / (meters * meters)
	}

	switch {
	case tobacco || bmi >= 35:
		return RatingGuidance{Class: RatingRated, SuggestedFactor: 1.25}
	case bmi >= 30:
		return RatingGuidance{Class: RatingStandard, SuggestedFactor: 1.10}
	default:
		return RatingGuidance{Class: RatingPreferred, SuggestedFactor: 1.0}
	}
}
