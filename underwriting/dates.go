package underwriting

import (
	"fmt"
	"time"
)

const dateLayout = "2006-01-02"

// DateFormatError reports a date string that does not match YYYY-MM-DD.
type DateFormatError struct {
	Field string
	Value string
}

func (e *DateFormatError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("field %s: invalid date %q, expected YYYY-MM-DD", e.Field, e.Value)
	}
	return fmt.Sprintf("invalid date %q, expected YYYY-MM-DD", e.Value)
}

// ParseDate parses a YYYY-MM-DD calendar date into a UTC midnight time.
func ParseDate(s string) (time.Time, error) {
	t, err := time.ParseInLocation(dateLayout, s, time.UTC)
	if err != nil {
		return time.Time{}, &DateFormatError{Value: s}
	}
	return t, nil
}

// AgeInYears returns completed years between dob and asOf.
func AgeInYears(dob, asOf time.Time) int {
	years := asOf.Year() - dob.Year()
	if asOf.Month() < dob.Month() ||
		(asOf.Month() == dob.Month() && asOf.Day() < dob.Day()) {
		years--
	}
	return years
}

// DaysBetween returns the whole calendar days from a to b. Negative when b
// precedes a. Both arguments are expected to be UTC midnights.
func DaysBetween(a, b time.Time) int {
	return int(b.Sub(a).Hours() / 24)
}

// IsOpenEnrollment reports whether asOf falls inside the one-time 6-month
// Medigap Open Enrollment window: the applicant must be at least 65 at asOf,
// and asOf must lie between the first day of the Part B effective month and
// the last day of the sixth month after it, inclusive on both ends.
func IsOpenEnrollment(dob, partBEffective, asOf time.Time) bool {
	if AgeInYears(dob, asOf) < 65 {
		return false
	}
	start := time.Date(partBEffective.Year(), partBEffective.Month(), 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 6, 0).AddDate(0, 0, -1)
	return !asOf.Before(start) && !asOf.After(end)
}

// GiApplies returns the first event, in list order, whose triggering date is
// within [0, lookbackDays] days before asOf. Events triggered after asOf
// never qualify.
func GiApplies(events []GiEvent, asOf time.Time, lookbackDays int) (GiEvent, bool) {
	for _, ev := range events {
		trig, err := ParseDate(ev.TriggeringDate)
		if err != nil {
			continue
		}
		if giEventWithin(trig, asOf, lookbackDays) {
			return ev, true
		}
	}
	return GiEvent{}, false
}

func giEventWithin(triggeringDate, asOf time.Time, lookbackDays int) bool {
	diff := DaysBetween(triggeringDate, asOf)
	return diff >= 0 && diff <= lookbackDays
}
