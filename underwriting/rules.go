package underwriting

import (
	"fmt"
	"strings"
)

// Rule identifiers as they appear in decisions and audit trails.
const (
	RuleStateOverride   = "R-600"
	RuleOpenEnrollment  = "R-100"
	RuleGuaranteedIssue = "R-200"
	RuleMACRAInfo       = "R-210"
	RuleMAConflict      = "R-300"
	RuleDefaultUW       = "R-400"
	RuleFallback        = "R-900"
	RuleMACRAPlan       = "R-700"
	RuleAutoDecline     = "R-410"
	RuleWaitingPeriod   = "R-500"
)

const detailSuperseded = "Decision already selected by an earlier rule."

// ruleUnit is one rule in the fixed-order pipeline. Evaluate appends exactly
// one audit entry whether the rule fires or not (the GI rule additionally
// records the informational R-210 entry when it applies).
type ruleUnit interface {
	Evaluate(ec *evalContext, d *Decision, audit *AuditRecorder)
}

// pipeline returns the rules in their fixed total order: the branch selectors
// first (the first to fire wins), then the overlays.
func pipeline() []ruleUnit {
	return []ruleUnit{
		stateOverrideRule{},
		openEnrollmentRule{},
		guaranteedIssueRule{},
		maConflictRule{},
		defaultUWRule{},
		fallbackRule{},
		macraPlanRule{},
		autoDeclineRule{},
		waitingPeriodRule{},
	}
}

func normalizeState(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}

// stateOverrideRule (R-600) accepts without underwriting in states with
// continuous Guaranteed Issue protections.
type stateOverrideRule struct{}

func (stateOverrideRule) Evaluate(ec *evalContext, d *Decision, audit *AuditRecorder) {
	ov, ok := ec.tables.LookupStateOverride(ec.state)
	if !ok || !ov.ContinuousGi {
		audit.Skipped(RuleStateOverride, fmt.Sprintf("No continuous GI for %s", ec.state))
		return
	}

	d.Status = StatusAcceptNoUW
	d.UnderwritingRequired = false
	d.Reasons = []Reason{{
		Code:    RuleStateOverride,
		Message: fmt.Sprintf("State %s continuous GI protections - no underwriting.", ec.state),
	}}
	d.PlanRestrictions = PlanRestrictions{
		AllowedPlanLetters:    ApplyMACRAFilter(AllPlanLetters(), ec.medicareElig),
		DisallowedPlanLetters: []string{},
	}
	d.WaitingPeriod = WaitingPeriod{}
	ec.branchTaken = true
	audit.Fired(RuleStateOverride, fmt.Sprintf("Continuous GI for %s", ec.state))
}

// openEnrollmentRule (R-100) accepts without underwriting inside the 6-month
// Medigap Open Enrollment window.
type openEnrollmentRule struct{}

func (openEnrollmentRule) Evaluate(ec *evalContext, d *Decision, audit *AuditRecorder) {
	if ec.branchTaken {
		audit.Skipped(RuleOpenEnrollment, detailSuperseded)
		return
	}
	if !IsOpenEnrollment(ec.dob, ec.partB, ec.asOf) {
		audit.Skipped(RuleOpenEnrollment, "Outside OE window.")
		return
	}

	d.Status = StatusAcceptNoUW
	d.UnderwritingRequired = false
	d.Reasons = []Reason{{
		Code:    RuleOpenEnrollment,
		Message: "Within 6-month Medigap Open Enrollment; underwriting not permitted.",
	}}
	d.PlanRestrictions = PlanRestrictions{
		AllowedPlanLetters:    ApplyMACRAFilter(AllPlanLetters(), ec.medicareElig),
		DisallowedPlanLetters: []string{},
	}
	d.WaitingPeriod = WaitingPeriod{}
	ec.branchTaken = true
	audit.Fired(RuleOpenEnrollment, "Age>=65 and within OE window.")
}

// guaranteedIssueRule (R-200) accepts without underwriting when a qualifying
// GI event falls inside its lookback window. The lookback is scenario-
// configurable per event type, defaulting to 63 days.
type guaranteedIssueRule struct{}

func (guaranteedIssueRule) Evaluate(ec *evalContext, d *Decision, audit *AuditRecorder) {
	if ec.branchTaken {
		audit.Skipped(RuleGuaranteedIssue, detailSuperseded)
		return
	}

	event, ok := firstQualifyingEvent(ec)
	if !ok {
		audit.Skipped(RuleGuaranteedIssue, "No GI event in lookback.")
		return
	}

	allowed := ApplyMACRAFilter(giAllowedPlanLetters(), ec.medicareElig)
	d.Status = StatusAcceptNoUW
	d.UnderwritingRequired = false
	d.Reasons = []Reason{{
		Code:    RuleGuaranteedIssue,
		Message: fmt.Sprintf("Guaranteed Issue applies: %s within lookback.", event.Type),
	}}
	d.PlanRestrictions = PlanRestrictions{
		AllowedPlanLetters:    allowed,
		DisallowedPlanLetters: complementPlanLetters(allowed),
		Notes:                 []string{"Plan N availability may vary by carrier."},
	}
	d.WaitingPeriod = WaitingPeriod{}
	ec.branchTaken = true
	audit.Fired(RuleGuaranteedIssue, "GI within lookback.")

	if ec.medicareElig != nil && !ec.medicareElig.Before(MACRACutoff) {
		audit.Fired(RuleMACRAInfo, "MACRA removed C/F for newly eligible.")
	}
}

func firstQualifyingEvent(ec *evalContext) (GiEvent, bool) {
	for _, ev := range ec.req.GiEvents {
		trig, err := ParseDate(ev.TriggeringDate)
		if err != nil {
			continue
		}
		if giEventWithin(trig, ec.asOf, ec.tables.GiLookbackDays(ev.Type)) {
			return ev, true
		}
	}
	return GiEvent{}, false
}

// giAllowedPlanLetters is the base GI plan set plus the carrier-optional N,
// in canonical order.
func giAllowedPlanLetters() []string {
	return append(append([]string{}, giBasePlanLetters...), "N")
}

func complementPlanLetters(allowed []string) []string {
	in := make(map[string]bool, len(allowed))
	for _, p := range allowed {
		in[p] = true
	}
	out := []string{}
	for _, p := range AllPlanLetters() {
		if !in[p] {
			out = append(out, p)
		}
	}
	return out
}

// maConflictRule (R-300) pends applications from applicants still enrolled in
// Medicare Advantage: Medigap cannot be combined with MA.
type maConflictRule struct{}

func (maConflictRule) Evaluate(ec *evalContext, d *Decision, audit *AuditRecorder) {
	if ec.branchTaken {
		audit.Skipped(RuleMAConflict, detailSuperseded)
		return
	}
	if !ec.req.Applicant.CurrentlyOnMA {
		audit.Skipped(RuleMAConflict, "Not on MA.")
		return
	}

	d.Status = StatusPended
	d.UnderwritingRequired = true
	d.Reasons = []Reason{{
		Code:    RuleMAConflict,
		Message: "Currently on Medicare Advantage; require disenrollment or GI path.",
	}}
	d.PlanRestrictions = PlanRestrictions{
		AllowedPlanLetters:    []string{},
		DisallowedPlanLetters: []string{},
	}
	d.WaitingPeriod = WaitingPeriod{}
	d.RequestsForInformation = append(d.RequestsForInformation, "Proof of MA disenrollment effective date")
	ec.branchTaken = true
	audit.Fired(RuleMAConflict, "MA present without GI.")
}

// defaultUWRule (R-400) is the default branch: accept subject to medical
// underwriting. MACRA filtering of the requested plan happens later as the
// R-700 overlay, not here.
type defaultUWRule struct{}

func (defaultUWRule) Evaluate(ec *evalContext, d *Decision, audit *AuditRecorder) {
	if ec.branchTaken {
		audit.Skipped(RuleDefaultUW, detailSuperseded)
		return
	}

	d.Status = StatusAcceptWithUW
	d.UnderwritingRequired = true
	d.Reasons = []Reason{{
		Code:    RuleDefaultUW,
		Message: "Outside OE/GI; medical underwriting required.",
	}}
	d.PlanRestrictions = PlanRestrictions{
		AllowedPlanLetters:    AllPlanLetters(),
		DisallowedPlanLetters: []string{},
	}
	d.WaitingPeriod = WaitingPeriod{}
	ec.branchTaken = true
	audit.Fired(RuleDefaultUW, "Proceed to UW checks.")
}

// fallbackRule (R-900) pends the application if no branch selector produced a
// decision. R-400 always fires when reached, so this is defensive only.
type fallbackRule struct{}

func (fallbackRule) Evaluate(ec *evalContext, d *Decision, audit *AuditRecorder) {
	if ec.branchTaken {
		audit.Skipped(RuleFallback, "Branch selected; fallback not needed.")
		return
	}

	d.Status = StatusPended
	d.UnderwritingRequired = true
	d.Reasons = []Reason{{Code: RuleFallback, Message: "Insufficient data"}}
	d.PlanRestrictions = PlanRestrictions{
		AllowedPlanLetters:    []string{},
		DisallowedPlanLetters: []string{},
	}
	d.WaitingPeriod = WaitingPeriod{}
	ec.branchTaken = true
	audit.Fired(RuleFallback, "No branch selector matched.")
}

// macraPlanRule (R-700) is the first overlay: a newly eligible beneficiary
// cannot purchase plans C, F, or HDF. Accept decisions are downgraded to
// PENDED pending a new plan selection; DECLINE and PENDED are left as-is but
// the audit entry still fires.
type macraPlanRule struct{}

func (macraPlanRule) Evaluate(ec *evalContext, d *Decision, audit *AuditRecorder) {
	if !macraRestricted(ec.req.Coverage.RequestedPlanLetter, ec.medicareElig) {
		audit.Skipped(RuleMACRAPlan, "MACRA not applicable to requested plan.")
		return
	}

	audit.Fired(RuleMACRAPlan, "Requested C/F not allowed for newly eligible.")
	if d.Status != StatusAcceptNoUW && d.Status != StatusAcceptWithUW {
		return
	}

	d.Status = StatusPended
	d.Reasons = append(d.Reasons, Reason{
		Code:    RuleMACRAPlan,
		Message: "Requested plan not available for newly eligible (MACRA). Suggest G/HDG.",
	})
	d.RequestsForInformation = append(d.RequestsForInformation, "Updated plan selection (G or HDG suggested)")
}

// autoDeclineRule (R-410) declines underwritten business with knock-out
// health conditions. Only the underwriting path is screened; PENDED decisions
// wait for information first.
type autoDeclineRule struct{}

func (autoDeclineRule) Evaluate(ec *evalContext, d *Decision, audit *AuditRecorder) {
	if !d.UnderwritingRequired || d.Status == StatusPended {
		audit.Skipped(RuleAutoDecline, "Not on underwriting path.")
		return
	}

	hits := declineHits(ec.req.Health, ec.tables.ListDeclineConditions())
	if len(hits) == 0 {
		audit.Skipped(RuleAutoDecline, "No automatic decline condition matched.")
		return
	}

	d.Status = StatusDecline
	d.Reasons = append([]Reason{{
		Code:    RuleAutoDecline,
		Message: "Automatic decline based on health conditions.",
	}}, d.Reasons...)
	audit.Fired(RuleAutoDecline, fmt.Sprintf("Decline hits: %v", hits))
}

// waitingPeriodRule (R-500) attaches the pre-existing-condition waiting
// period to accept decisions. ACCEPT_NO_UW paths are protected and never
// carry one.
type waitingPeriodRule struct{}

func (waitingPeriodRule) Evaluate(ec *evalContext, d *Decision, audit *AuditRecorder) {
	if d.Status != StatusAcceptNoUW && d.Status != StatusAcceptWithUW {
		audit.Skipped(RuleWaitingPeriod, "No accepted decision; waiting period not assessed.")
		return
	}

	protected := d.Status == StatusAcceptNoUW
	wp := computeWaitingPeriod(
		ec.req.Coverage.PriorCreditableCoverageMonths,
		ec.req.Coverage.GapSinceCreditableCoverageEndDays,
		protected,
	)
	d.WaitingPeriod = wp

	detail := fmt.Sprintf("Waiting period months=%d", wp.Months)
	if wp.Applies {
		audit.Fired(RuleWaitingPeriod, detail)
	} else {
		audit.Skipped(RuleWaitingPeriod, detail)
	}
}
