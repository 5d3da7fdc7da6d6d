package main

import "github.com/clearlineins/underwriting/underwriting"

// API response models

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error  string   `json:"error"`
	Fields []string `json:"fields,omitempty"`
}

// HealthResponse represents the health check response
type HealthResponse struct {
	Status string `json:"status"`
}

// StateOverridesResponse lists the configured state overrides
type StateOverridesResponse struct {
	StateOverrides []underwriting.StateOverride `json:"stateOverrides"`
}

// DeclineConditionsResponse lists the configured decline conditions
type DeclineConditionsResponse struct {
	DeclineConditions []underwriting.DeclineCondition `json:"declineConditions"`
}

// GiScenariosResponse lists the configured Guaranteed Issue scenarios
type GiScenariosResponse struct {
	GiScenarios []underwriting.GiScenario `json:"giScenarios"`
}
