package underwriting

import "time"

// DecisionStatus is the terminal outcome of an evaluation.
type DecisionStatus string

const (
	StatusAcceptNoUW   DecisionStatus = "ACCEPT_NO_UW"
	StatusAcceptWithUW DecisionStatus = "ACCEPT_WITH_UW"
	StatusDecline      DecisionStatus = "DECLINE"
	StatusPended       DecisionStatus = "PENDED"
)

// SalesChannel identifies how the application was submitted.
type SalesChannel string

const (
	ChannelAgent  SalesChannel = "AGENT"
	ChannelBroker SalesChannel = "BROKER"
	ChannelDirect SalesChannel = "DIRECT"
	ChannelMGA    SalesChannel = "MGA"
)

// CoverageKind classifies the applicant's current (or replaced) coverage.
type CoverageKind string

const (
	CoverageNone          CoverageKind = "NONE"
	CoverageMedigap       CoverageKind = "MEDIGAP"
	CoverageMA            CoverageKind = "MA"
	CoverageEmployerGroup CoverageKind = "EMPLOYER_GROUP"
	CoverageUnion         CoverageKind = "UNION"
	CoverageSelect        CoverageKind = "SELECT"
	CoverageOther         CoverageKind = "OTHER"
)

// GiEventType enumerates the qualifying Guaranteed Issue triggers.
type GiEventType string

const (
	GiMAPlanTermination        GiEventType = "MA_PLAN_TERMINATION"
	GiEmployerGroupEnding      GiEventType = "EMPLOYER_GROUP_ENDING"
	GiMovedOutOfArea           GiEventType = "MOVED_OUT_OF_AREA"
	GiMATrialRight             GiEventType = "MA_TRIAL_RIGHT"
	GiCarrierInsolvency        GiEventType = "MEDIGAP_CARRIER_INSOLVENCY"
	GiCoverageMisrepresented   GiEventType = "COVERAGE_MISREPRESENTATION"
	GiMedicareSelectRelocation GiEventType = "MEDICARE_SELECT_RELOCATION"
)

// RatingClass is the suggested premium class for underwritten business.
type RatingClass string

const (
	RatingPreferred RatingClass = "PREFERRED"
	RatingStandard  RatingClass = "STANDARD"
	RatingRated     RatingClass = "RATED"
)

// AuditOutcome records whether a rule fired or was skipped.
type AuditOutcome string

const (
	OutcomeFired   AuditOutcome = "FIRED"
	OutcomeSkipped AuditOutcome = "SKIPPED"
)

// MACRACutoff is the regulatory boundary after which newly eligible
// beneficiaries may not purchase plans C, F, or HDF.
var MACRACutoff = time.Date(2020, time.January, 1, 0, 0, 0, 0, time.UTC)

// GiDefaultLookbackDays is the federal default lookback window for GI events.
const GiDefaultLookbackDays = 63

// AllPlanLetters returns the standardized Medigap plan letters, including the
// high-deductible variants, in canonical order.
func AllPlanLetters() []string {
	return []string{"A", "B", "C", "D", "F", "G", "K", "L", "M", "N", "HDG", "HDF"}
}

// giBasePlanLetters is the federally mandated GI plan set; Plan N is
// carrier-optional and handled separately.
var giBasePlanLetters = []string{"A", "B", "C", "D", "F", "G", "K", "L"}

// Application carries application-level metadata. ReceivedDate is the
// temporal anchor for every window computation.
type Application struct {
	ID                     string       `json:"applicationId"`
	ReceivedDate           string       `json:"receivedDate"`
	RequestedEffectiveDate string       `json:"requestedEffectiveDate"`
	Channel                SalesChannel `json:"channel,omitempty"`
	CarrierCode            string       `json:"carrierCode,omitempty"`
}

// Applicant carries demographic and Medicare facts.
type Applicant struct {
	DateOfBirth             string       `json:"dateOfBirth"`
	State                   string       `json:"state"`
	TobaccoUse              *bool        `json:"tobaccoUse,omitempty"`
	HeightInches            int          `json:"heightInches,omitempty"`
	WeightPounds            int          `json:"weightPounds,omitempty"`
	PartAEffectiveDate      string       `json:"partAEffectiveDate,omitempty"`
	PartBEffectiveDate      string       `json:"partBEffectiveDate"`
	CurrentlyOnMA           bool         `json:"currentlyOnMA"`
	CurrentCoverageType     CoverageKind `json:"currentCoverageType,omitempty"`
	MedicareEligibilityDate string       `json:"medicareEligibilityDate,omitempty"`
}

// Coverage describes the requested plan and prior creditable coverage.
type Coverage struct {
	RequestedPlanLetter               string       `json:"requestedPlanLetter"`
	ReplacingCoverage                 bool         `json:"replacingCoverage"`
	ReplacedCoverageType              CoverageKind `json:"replacedCoverageType,omitempty"`
	PriorCreditableCoverageMonths     int          `json:"priorCreditableCoverageMonths"`
	GapSinceCreditableCoverageEndDays int          `json:"gapSinceCreditableCoverageEndDays"`
}

// GiEvent is a single Guaranteed Issue qualifying event.
type GiEvent struct {
	Type           GiEventType `json:"type"`
	TriggeringDate string      `json:"triggeringDate"`
}

// Hospitalization captures a recent inpatient stay.
type Hospitalization struct {
	Occurred      bool   `json:"occurred"`
	DischargeDate string `json:"dischargeDate,omitempty"`
}

// Health holds the applicant's disclosed health history.
type Health struct {
	Conditions            []string         `json:"conditions,omitempty"`
	Medications           []string         `json:"medications,omitempty"`
	OxygenUse             bool             `json:"oxygenUse,omitempty"`
	ADLAssistance         bool             `json:"adlAssistance,omitempty"`
	RecentHospitalization *Hospitalization `json:"recentHospitalization,omitempty"`
}

// EvaluateRequest is the single input to the rule pipeline. Every date field
// is a YYYY-MM-DD calendar date; a missing required date is a hard input
// error, never defaulted.
type EvaluateRequest struct {
	Application Application    `json:"application"`
	Applicant   Applicant      `json:"applicant"`
	Coverage    Coverage       `json:"coverage"`
	GiEvents    []GiEvent      `json:"giEvents,omitempty"`
	Health      *Health        `json:"health,omitempty"`
	Context     map[string]any `json:"context,omitempty"`
}

// Reason is one coded justification attached to a decision.
type Reason struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// PlanRestrictions lists the plan letters the applicant may and may not buy.
type PlanRestrictions struct {
	AllowedPlanLetters    []string `json:"allowedPlanLetters"`
	DisallowedPlanLetters []string `json:"disallowedPlanLetters"`
	Notes                 []string `json:"notes,omitempty"`
}

// WaitingPeriod is the pre-existing-condition waiting period, if any.
type WaitingPeriod struct {
	Applies bool   `json:"applies"`
	Months  int    `json:"months"`
	Reason  string `json:"reason,omitempty"`
}

// RatingGuidance is the suggested premium class and factor.
type RatingGuidance struct {
	Class           RatingClass `json:"class"`
	SuggestedFactor float64     `json:"suggestedFactor"`
}

// RuleAudit is one entry in the decision audit trail. Entries are appended in
// evaluation order; the ordering is part of the observable contract.
type RuleAudit struct {
	RuleID  string       `json:"ruleId"`
	Outcome AuditOutcome `json:"outcome"`
	Details string       `json:"details"`
}

// AuditBlock is the complete trail attached to a finalized decision.
type AuditBlock struct {
	EvaluatedAt  time.Time   `json:"evaluatedAt"`
	MatchedRules []RuleAudit `json:"matchedRules"`
}

// Decision is the working decision mutated by the pipeline. It becomes
// immutable once placed into the decision repository.
type Decision struct {
	Status                 DecisionStatus   `json:"status"`
	UnderwritingRequired   bool             `json:"underwritingRequired"`
	Reasons                []Reason         `json:"reasons"`
	PlanRestrictions       PlanRestrictions `json:"planRestrictions"`
	WaitingPeriod          WaitingPeriod    `json:"waitingPeriod"`
	RatingGuidance         *RatingGuidance  `json:"ratingGuidance,omitempty"`
	RequestsForInformation []string         `json:"requestsForInformation,omitempty"`
}

// EvaluateResponse is the finalized decision plus its audit trail.
type EvaluateResponse struct {
	DecisionID string `json:"decisionId"`
	Decision
	Audit AuditBlock `json:"audit"`
}
