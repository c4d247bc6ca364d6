package usecase

import (
	"github.com/shandysiswandi/userlab/internal/pkg/clock"
	"github.com/shandysiswandi/userlab/internal/pkg/validator"
	"github.com/shandysiswandi/userlab/internal/registration/rule"
)

// Validation tags backed by the registration rules. Their messages are the
// rule messages.
const (
	TagPersonName = "person_name"
	TagEmail      = "person_email"
	TagZipCode    = "fr_zip_code"
	TagAdult      = "adult"
)

// RegisterRules binds the registration tags on v. The adult tag reads the
// current date from clk on every call.
func RegisterRules(v validator.Validator, clk clock.Clocker) error {
	rules := map[string]validator.Rule{
		TagPersonName: func(value any) error {
			return rule.TextField(value, "")
		},
		TagEmail: func(value any) error {
			return rule.Email(&rule.Person{Email: value})
		},
		TagZipCode: func(value any) error {
			return rule.ZipCode(&rule.Person{ZipCode: value})
		},
		TagAdult: func(value any) error {
			return rule.BirthField(&rule.Person{Birth: value}, clk.Now())
		},
	}

	for tag, r := range rules {
		if err := v.RegisterRule(tag, r); err != nil {
			return err
		}
	}

	return nil
}
