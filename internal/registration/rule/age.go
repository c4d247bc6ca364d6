package rule

import (
	"time"
)

// Majority is the legal adulthood age.
const Majority = 18

var birthLayouts = []string{time.DateOnly, time.RFC3339, time.RFC3339Nano}

// CalculateAge returns the number of whole years between the person's birth and now.
//
// The year count is the UTC year of the instant (epoch + (now - birth)) minus 1970.
// This is not a calendar-anniversary age: around leap days and birthdays the result
// may lag by one, and callers rely on that exact behavior.
func CalculateAge(p *Person, now time.Time) (int, error) {
	if p == nil {
		return 0, fail(ReasonMissingParam, FieldBirth)
	}

	birth, err := birthOf(p.Birth)
	if err != nil {
		return 0, err
	}

	if birth.After(now) {
		return 0, fail(ReasonFutureDateNotAllowed, FieldBirth)
	}

	// millisecond offsets, the duration type would overflow past ~292 years
	diff := now.UnixMilli() - birth.UnixMilli()
	age := time.UnixMilli(diff).UTC().Year() - 1970
	if age < 0 {
		age = -age
	}

	return age, nil
}

func birthOf(v any) (time.Time, error) {
	switch b := v.(type) {
	case nil:
		return time.Time{}, fail(ReasonMissingParam, FieldBirth)
	case time.Time:
		if b.IsZero() {
			return time.Time{}, fail(ReasonMissingParam, FieldBirth)
		}
		return b, nil
	case *time.Time:
		if b == nil || b.IsZero() {
			return time.Time{}, fail(ReasonMissingParam, FieldBirth)
		}
		return *b, nil
	case string:
		if b == "" {
			return time.Time{}, fail(ReasonMissingParam, FieldBirth)
		}
		for _, layout := range birthLayouts {
			if t, err := time.Parse(layout, b); err == nil {
				return t, nil
			}
		}
		return time.Time{}, fail(ReasonBadParam, FieldBirth)
	default:
		return time.Time{}, fail(ReasonBadParam, FieldBirth)
	}
}

// Age checks the person is at least Majority years old at now.
// Errors from CalculateAge are returned unchanged.
func Age(p *Person, now time.Time) error {
	age, err := CalculateAge(p, now)
	if err != nil {
		return err
	}

	if age < Majority {
		return fail(ReasonNotAdult, FieldBirth)
	}

	return nil
}

// ParseBirth converts a loosely typed birth value into a time.Time, with the
// same errors CalculateAge reports for it.
func ParseBirth(v any) (time.Time, error) {
	return birthOf(v)
}
