package underwriting

// AuditRecorder accumulates one RuleAudit entry per rule evaluated, in
// evaluation order. It is scoped to a single evaluation and never shared.
type AuditRecorder struct {
	entries []RuleAudit
}

// NewAuditRecorder creates an empty recorder.
func NewAuditRecorder() *AuditRecorder {
	return &AuditRecorder{}
}

// Fired appends a FIRED entry for ruleID.
func (a *AuditRecorder) Fired(ruleID, details string) {
	a.entries = append(a.entries, RuleAudit{RuleID: ruleID, Outcome: OutcomeFired, Details: details})
}

// Skipped appends a SKIPPED entry for ruleID.
func (a *AuditRecorder) Skipped(ruleID, details string) {
	a.entries = append(a.entries, RuleAudit{RuleID: ruleID, Outcome: OutcomeSkipped, Details: details})
}

// Entries returns the recorded trail in append order.
func (a *AuditRecorder) Entries() []RuleAudit {
	return a.entries
}
