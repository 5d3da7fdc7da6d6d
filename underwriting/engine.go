package underwriting

import (
	"fmt"
	"time"
)

// Engine runs the fixed-order underwriting rule pipeline. Each evaluation is
// a pure function of the request and the immutable configuration tables; the
// only shared mutable state is the decision repository.
type Engine struct {
	tables *Tables
	repo   DecisionRepository
	rules  []ruleUnit
}

// NewEngine creates an engine over the given configuration tables and
// decision repository.
func NewEngine(tables *Tables, repo DecisionRepository) *Engine {
	return &Engine{
		tables: tables,
		repo:   repo,
		rules:  pipeline(),
	}
}

// evalContext carries the parsed request facts through the pipeline.
type evalContext struct {
	req          *EvaluateRequest
	tables       *Tables
	asOf         time.Time
	dob          time.Time
	partB        time.Time
	medicareElig *time.Time
	state        string

	// branchTaken is set once a branch selector fires; later branch
	// selectors then record SKIPPED without evaluating their guard.
	branchTaken bool
}

func (e *Engine) newEvalContext(req *EvaluateRequest) (*evalContext, error) {
	asOf, err := ParseDate(req.Application.ReceivedDate)
	if err != nil {
		return nil, &DateFormatError{Field: "application.receivedDate", Value: req.Application.ReceivedDate}
	}
	dob, err := ParseDate(req.Applicant.DateOfBirth)
	if err != nil {
		return nil, &DateFormatError{Field: "applicant.dateOfBirth", Value: req.Applicant.DateOfBirth}
	}
	partB, err := ParseDate(req.Applicant.PartBEffectiveDate)
	if err != nil {
		return nil, &DateFormatError{Field: "applicant.partBEffectiveDate", Value: req.Applicant.PartBEffectiveDate}
	}

	ec := &evalContext{
		req:    req,
		tables: e.tables,
		asOf:   asOf,
		dob:    dob,
		partB:  partB,
		state:  normalizeState(req.Applicant.State),
	}

	if s := req.Applicant.MedicareEligibilityDate; s != "" {
		elig, err := ParseDate(s)
		if err != nil {
			return nil, &DateFormatError{Field: "applicant.medicareEligibilityDate", Value: s}
		}
		ec.medicareElig = &elig
	}

	return ec, nil
}

// Evaluate validates the request, runs every rule in the fixed order, and
// returns the finalized decision with its complete audit trail. The decision
// is stored in the repository only after it is fully assembled, so a failed
// evaluation never leaves a partial entry behind.
func (e *Engine) Evaluate(req *EvaluateRequest) (*EvaluateResponse, error) {
	if err := ValidateRequest(req); err != nil {
		return nil, err
	}

	ec, err := e.newEvalContext(req)
	if err != nil {
		return nil, err
	}

	d := &Decision{
		Reasons: []Reason{},
		PlanRestrictions: PlanRestrictions{
			AllowedPlanLetters:    []string{},
			DisallowedPlanLetters: []string{},
		},
	}
	audit := NewAuditRecorder()

	for _, rule := range e.rules {
		rule.Evaluate(ec, d, audit)
	}

	tobacco := req.Applicant.TobaccoUse != nil && *req.Applicant.TobaccoUse
	rg := computeRatingGuidance(tobacco, req.Applicant.HeightInches, req.Applicant.WeightPounds, d.UnderwritingRequired)
	d.RatingGuidance = &rg

	resp := &EvaluateResponse{
		DecisionID: NewDecisionID(),
		Decision:   *d,
		Audit: AuditBlock{
			EvaluatedAt:  time.Now().UTC(),
			MatchedRules: audit.Entries(),
		},
	}

	if err := e.repo.Store(resp.DecisionID, resp); err != nil {
		return nil, fmt.Errorf("failed to store decision: %w", err)
	}

	return resp, nil
}

// GetDecision retrieves a previously finalized decision by identifier.
func (e *Engine) GetDecision(id string) (*EvaluateResponse, bool) {
	return e.repo.Get(id)
}

// Tables exposes the engine's configuration tables for read-only listing.
func (e *Engine) Tables() *Tables {
	return e.tables
}
