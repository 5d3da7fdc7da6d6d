package underwriting

import (
	"errors"
	"testing"
)

func validRequest() *EvaluateRequest {
	return &EvaluateRequest{
		Application: Application{
			ReceivedDate:           "2026-02-01",
			RequestedEffectiveDate: "2026-03-01",
		},
		Applicant: Applicant{
			DateOfBirth:        "1950-05-15",
			State:              "TX",
			PartBEffectiveDate: "2020-01-01",
		},
		Coverage: Coverage{RequestedPlanLetter: "G"},
	}
}

func TestValidateRequestAccepts(t *testing.T) {
	if err := ValidateRequest(validRequest()); err != nil {
		t.Errorf("ValidateRequest() error = %v, want nil", err)
	}
}

func TestValidateRequestRejects(t *testing.T) {
	testCases := []struct {
		name      string
		mutate    func(*EvaluateRequest)
		wantField string
	}{
		{
			name:      "missing received date",
			mutate:    func(r *EvaluateRequest) { r.Application.ReceivedDate = "" },
			wantField: "application.receivedDate",
		},
		{
			name:      "malformed date of birth",
			mutate:    func(r *EvaluateRequest) { r.Applicant.DateOfBirth = "15-05-1950" },
			wantField: "applicant.dateOfBirth",
		},
		{
			name:      "bad state code",
			mutate:    func(r *EvaluateRequest) { r.Applicant.State = "Texas" },
			wantField: "applicant.state",
		},
		{
			name:      "unknown plan letter",
			mutate:    func(r *EvaluateRequest) { r.Coverage.RequestedPlanLetter = "Z" },
			wantField: "coverage.requestedPlanLetter",
		},
		{
			name:      "missing plan letter",
			mutate:    func(r *EvaluateRequest) { r.Coverage.RequestedPlanLetter = "" },
			wantField: "coverage.requestedPlanLetter",
		},
		{
			name:      "unknown channel",
			mutate:    func(r *EvaluateRequest) { r.Application.Channel = "PHONE" },
			wantField: "application.channel",
		},
		{
			name:      "negative prior coverage months",
			mutate:    func(r *EvaluateRequest) { r.Coverage.PriorCreditableCoverageMonths = -1 },
			wantField: "coverage.priorCreditableCoverageMonths",
		},
		{
			name: "unknown GI event type",
			mutate: func(r *EvaluateRequest) {
				r.GiEvents = []GiEvent{{Type: "LOST_LOTTERY", TriggeringDate: "2026-01-01"}}
			},
			wantField: "giEvents[0].type",
		},
		{
			name: "GI event missing date",
			mutate: func(r *EvaluateRequest) {
				r.GiEvents = []GiEvent{{Type: GiMAPlanTermination}}
			},
			wantField: "giEvents[0].triggeringDate",
		},
		{
			name: "malformed discharge date",
			mutate: func(r *EvaluateRequest) {
				r.Health = &Health{RecentHospitalization: &Hospitalization{Occurred: true, DischargeDate: "recently"}}
			},
			wantField: "health.recentHospitalization.dischargeDate",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			req := validRequest()
			tc.mutate(req)

			err := ValidateRequest(req)
			if err == nil {
				t.Fatal("ValidateRequest() error = nil, want validation failure")
			}
			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("ValidateRequest() error = %T, want *ValidationError", err)
			}
			found := false
			for _, f := range verr.Fields {
				if f == tc.wantField {
					found = true
				}
			}
			if !found {
				t.Errorf("ValidationError.Fields = %v, want %s listed", verr.Fields, tc.wantField)
			}
		})
	}
}

func TestValidateRequestCollectsAllFields(t *testing.T) {
	req := &EvaluateRequest{}

	err := ValidateRequest(req)
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("ValidateRequest() error = %v, want *ValidationError", err)
	}
	if len(verr.Fields) < 5 {
		t.Errorf("ValidationError.Fields = %v, want every missing field reported at once", verr.Fields)
	}
}
