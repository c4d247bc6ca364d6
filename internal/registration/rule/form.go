package rule

import (
	"time"

	"github.com/samber/lo"
)

// Report is the per-field state of a registration form.
type Report struct {
	// Errors maps a field name to its first violation. Valid fields are absent.
	Errors map[string]*Error
	// SubmitEnabled is true only when every required field passes.
	SubmitEnabled bool
}

// Messages returns the field to message map shown next to each input.
func (r Report) Messages() map[string]string {
	return lo.MapValues(r.Errors, func(e *Error, _ string) string {
		return e.Error()
	})
}

// Evaluate runs every field validator independently and builds the form report.
// Unlike Identity it reports firstname and lastname separately, and an empty
// birth is shown as an empty field rather than a missing parameter.
func Evaluate(p *Person, now time.Time) Report {
	if p == nil {
		p = &Person{}
	}

	checks := map[string]func() error{
		FieldFirstname: func() error { return TextField(p.Firstname, FieldFirstname) },
		FieldLastname:  func() error { return TextField(p.Lastname, FieldLastname) },
		FieldCity:      func() error { return TextField(p.City, FieldCity) },
		FieldEmail:     func() error { return Email(p) },
		FieldZipCode:   func() error { return ZipCode(p) },
		FieldBirth:     func() error { return BirthField(p, now) },
	}

	errs := make(map[string]*Error)
	for field, check := range checks {
		if res := Outcome(check()); !res.Valid {
			errs[field] = res.Err
		}
	}

	return Report{Errors: errs, SubmitEnabled: len(errs) == 0}
}

// TextField validates a loosely typed name-like form value.
func TextField(v any, field string) error {
	s, absent, isString := stringField(v)
	if absent {
		return fail(ReasonEmptyField, field)
	}
	if !isString {
		return fail(ReasonBadParam, field)
	}
	return name(s, field)
}

// BirthField validates the birth input of a form: empty is an empty field,
// anything else goes through Age.
func BirthField(p *Person, now time.Time) error {
	if p == nil {
		return fail(ReasonEmptyField, FieldBirth)
	}
	if _, absent, _ := stringField(p.Birth); absent {
		return fail(ReasonEmptyField, FieldBirth)
	}
	return Age(p, now)
}
