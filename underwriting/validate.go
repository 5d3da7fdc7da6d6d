package underwriting

import (
	"fmt"
	"strings"
)

// ValidationError lists the request fields that were missing or malformed.
// The caller receives it whole; the engine never fills gaps with defaults.
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid request: missing or malformed fields: %s", strings.Join(e.Fields, ", "))
}

var validPlanLetters = func() map[string]bool {
	m := make(map[string]bool)
	for _, p := range AllPlanLetters() {
		m[p] = true
	}
	return m
}()

var validChannels = map[SalesChannel]bool{
	ChannelAgent: true, ChannelBroker: true, ChannelDirect: true, ChannelMGA: true,
}

var validCoverageKinds = map[CoverageKind]bool{
	CoverageNone: true, CoverageMedigap: true, CoverageMA: true,
	CoverageEmployerGroup: true, CoverageUnion: true, CoverageSelect: true,
	CoverageOther: true,
}

var validGiEventTypes = map[GiEventType]bool{
	GiMAPlanTermination: true, GiEmployerGroupEnding: true, GiMovedOutOfArea: true,
	GiMATrialRight: true, GiCarrierInsolvency: true, GiCoverageMisrepresented: true,
	GiMedicareSelectRelocation: true,
}

// ValidateRequest fails fast on any missing required field or malformed date
// before a single rule executes. All offending fields are collected into one
// ValidationError rather than reported one at a time.
func ValidateRequest(req *EvaluateRequest) error {
	var bad []string

	requireDate := func(field, value string) {
		if value == "" {
			bad = append(bad, field)
			return
		}
		if _, err := ParseDate(value); err != nil {
			bad = append(bad, field)
		}
	}
	optionalDate := func(field, value string) {
		if value == "" {
			return
		}
		if _, err := ParseDate(value); err != nil {
			bad = append(bad, field)
		}
	}

	requireDate("application.receivedDate", req.Application.ReceivedDate)
	requireDate("application.requestedEffectiveDate", req.Application.RequestedEffectiveDate)
	if req.Application.Channel != "" && !validChannels[req.Application.Channel] {
		bad = append(bad, "application.channel")
	}

	requireDate("applicant.dateOfBirth", req.Applicant.DateOfBirth)
	requireDate("applicant.partBEffectiveDate", req.Applicant.PartBEffectiveDate)
	optionalDate("applicant.partAEffectiveDate", req.Applicant.PartAEffectiveDate)
	optionalDate("applicant.medicareEligibilityDate", req.Applicant.MedicareEligibilityDate)

	state := strings.ToUpper(strings.TrimSpace(req.Applicant.State))
	if !stateCodePattern.MatchString(state) {
		bad = append(bad, "applicant.state")
	}
	if req.Applicant.CurrentCoverageType != "" && !validCoverageKinds[req.Applicant.CurrentCoverageType] {
		bad = append(bad, "applicant.currentCoverageType")
	}

	if !validPlanLetters[req.Coverage.RequestedPlanLetter] {
		bad = append(bad, "coverage.requestedPlanLetter")
	}
	if req.Coverage.ReplacedCoverageType != "" && !validCoverageKinds[req.Coverage.ReplacedCoverageType] {
		bad = append(bad, "coverage.replacedCoverageType")
	}
	if req.Coverage.PriorCreditableCoverageMonths < 0 {
		bad = append(bad, "coverage.priorCreditableCoverageMonths")
	}
	if req.Coverage.GapSinceCreditableCoverageEndDays < 0 {
		bad = append(bad, "coverage.gapSinceCreditableCoverageEndDays")
	}

	for i, ev := range req.GiEvents {
		if !validGiEventTypes[ev.Type] {
			bad = append(bad, fmt.Sprintf("giEvents[%d].type", i))
		}
		requireDate(fmt.Sprintf("giEvents[%d].triggeringDate", i), ev.TriggeringDate)
	}

	if req.Health != nil && req.Health.RecentHospitalization != nil {
		optionalDate("health.recentHospitalization.dischargeDate", req.Health.RecentHospitalization.DischargeDate)
	}

	if len(bad) > 0 {
		return &ValidationError{Fields: bad}
	}
	return nil
}
