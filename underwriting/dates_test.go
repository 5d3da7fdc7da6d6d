package underwriting

import (
	"errors"
	"testing"
	"time"
)

func mustDate(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := ParseDate(s)
	if err != nil {
		t.Fatalf("ParseDate(%q) failed: %v", s, err)
	}
	return d
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2026-02-01")
	if err != nil {
		t.Fatalf("ParseDate() failed: %v", err)
	}
	if d.Year() != 2026 || d.Month() != time.February || d.Day() != 1 {
		t.Errorf("ParseDate() = %v, want 2026-02-01", d)
	}
	if d.Location() != time.UTC {
		t.Errorf("ParseDate() location = %v, want UTC", d.Location())
	}
}

func TestParseDateInvalid(t *testing.T) {
	testCases := []struct {
		name  string
		value string
	}{
		{"Empty", ""},
		{"Wrong separator", "2026/02/01"},
		{"Missing padding", "2026-2-1"},
		{"Month out of range", "2026-13-01"},
		{"Not a date", "yesterday"},
		{"Timestamp", "2026-02-01T00:00:00Z"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ParseDate(tc.value)
			if err == nil {
				t.Fatalf("ParseDate(%q) should return error", tc.value)
			}
			var dErr *DateFormatError
			if !errors.As(err, &dErr) {
				t.Errorf("ParseDate(%q) error = %T, want *DateFormatError", tc.value, err)
			}
		})
	}
}

func TestAgeInYears(t *testing.T) {
	testCases := []struct {
		name string
		dob  string
		asOf string
		want int
	}{
		{"Birthday passed", "1960-03-15", "2026-06-01", 66},
		{"Birthday today", "1960-03-15", "2026-03-15", 66},
		{"Birthday tomorrow", "1960-03-15", "2026-03-14", 65},
		{"Same month earlier day", "1960-03-20", "2026-03-15", 65},
		{"Exactly 65", "1961-02-01", "2026-02-01", 65},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := AgeInYears(mustDate(t, tc.dob), mustDate(t, tc.asOf))
			if got != tc.want {
				t.Errorf("AgeInYears(%s, %s) = %d, want %d", tc.dob, tc.asOf, got, tc.want)
			}
		})
	}
}

// Window for a 2025-03-15 Part B effective date runs 2025-03-01 through
// 2025-08-31 inclusive.
func TestIsOpenEnrollmentWindowBoundaries(t *testing.T) {
	dob := mustDate(t, "1950-01-01")
	partB := mustDate(t, "2025-03-15")

	testCases := []struct {
		name string
		asOf string
		want bool
	}{
		{"First day of window", "2025-03-01", true},
		{"Day before window", "2025-02-28", false},
		{"Inside window", "2025-05-15", true},
		{"Last day of window", "2025-08-31", true},
		{"Day after window", "2025-09-01", false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := IsOpenEnrollment(dob, partB, mustDate(t, tc.asOf))
			if got != tc.want {
				t.Errorf("IsOpenEnrollment(asOf=%s) = %v, want %v", tc.asOf, got, tc.want)
			}
		})
	}
}

func TestIsOpenEnrollmentRequiresAge65(t *testing.T) {
	partB := mustDate(t, "2025-03-15")
	asOf := mustDate(t, "2025-05-15")

	// 64 years old inside the window: not Open Enrollment.
	under65 := mustDate(t, "1961-01-01")
	if IsOpenEnrollment(under65, partB, asOf) {
		t.Error("IsOpenEnrollment() should be false under age 65")
	}

	over65 := mustDate(t, "1955-01-01")
	if !IsOpenEnrollment(over65, partB, asOf) {
		t.Error("IsOpenEnrollment() should be true at 65+ inside the window")
	}
}

func TestGiAppliesLookbackBoundaries(t *testing.T) {
	asOf := mustDate(t, "2026-02-01")

	testCases := []struct {
		name       string
		triggering string
		want       bool
	}{
		{"Same day", "2026-02-01", true},
		{"30 days back", "2026-01-02", true},
		{"Exactly 63 days back", "2025-11-30", true},
		{"64 days back", "2025-11-29", false},
		{"Future trigger", "2026-02-02", false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			events := []GiEvent{{Type: GiMAPlanTermination, TriggeringDate: tc.triggering}}
			_, got := GiApplies(events, asOf, GiDefaultLookbackDays)
			if got != tc.want {
				t.Errorf("GiApplies(trigger=%s) = %v, want %v", tc.triggering, got, tc.want)
			}
		})
	}
}

func TestGiAppliesReturnsFirstByListOrder(t *testing.T) {
	asOf := mustDate(t, "2026-02-01")
	events := []GiEvent{
		{Type: GiMAPlanTermination, TriggeringDate: "2025-01-01"}, // stale
		{Type: GiEmployerGroupEnding, TriggeringDate: "2026-01-15"},
		{Type: GiMovedOutOfArea, TriggeringDate: "2026-01-20"},
	}

	ev, ok := GiApplies(events, asOf, GiDefaultLookbackDays)
	if !ok {
		t.Fatal("GiApplies() should find a qualifying event")
	}
	if ev.Type != GiEmployerGroupEnding {
		t.Errorf("GiApplies() returned %s, want first qualifying %s", ev.Type, GiEmployerGroupEnding)
	}
}

func TestGiAppliesNoEvents(t *testing.T) {
	if _, ok := GiApplies(nil, mustDate(t, "2026-02-01"), GiDefaultLookbackDays); ok {
		t.Error("GiApplies() with no events should not match")
	}
}
