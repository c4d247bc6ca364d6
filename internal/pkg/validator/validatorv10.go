package validator

import (
	"errors"
	"log/slog"
	"reflect"
	"strings"

	"github.com/go-playground/locales/fr"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	frTranslations "github.com/go-playground/validator/v10/translations/fr"
	"github.com/samber/lo"
)

// MsgRequired replaces the stock French "required" translation.
const MsgRequired = "Le champ ne peut pas être vide"

var (
	// ErrTranslatorNotFound indicates the requested translator is unavailable.
	ErrTranslatorNotFound = errors.New("translator not found")
	// ErrInvalidRule is returned by RegisterRule for an empty tag or a nil rule.
	ErrInvalidRule = errors.New("invalid validation rule")
)

// V10Validator implements Validator using go-playground/validator v10.
type V10Validator struct {
	validate   *validator.Validate
	translator ut.Translator
}

// NewV10Validator constructs a V10Validator with French translations.
func NewV10Validator() (*V10Validator, error) {
	validate := validator.New(validator.WithRequiredStructEnabled())
	validate.RegisterTagNameFunc(fieldName)

	frLang := fr.New()
	uni := ut.New(frLang, frLang)
	frTrans, ok := uni.GetTranslator("fr")
	if !ok {
		return nil, ErrTranslatorNotFound
	}

	if err := frTranslations.RegisterDefaultTranslations(validate, frTrans); err != nil {
		return nil, err
	}

	if err := overrideRequired(validate, frTrans); err != nil {
		return nil, err
	}

	return &V10Validator{
		validate:   validate,
		translator: frTrans,
	}, nil
}

// Validate validates a struct and returns a ValidationError on failure.
func (v *V10Validator) Validate(data any) error {
	if err := v.validate.Struct(data); err != nil {
		var validateErrs validator.ValidationErrors
		if !errors.As(err, &validateErrs) {
			return err
		}

		errV10 := make(ValidationError)
		for _, fe := range validateErrs {
			if _, exists := errV10[fe.Field()]; exists {
				continue
			}
			errV10[fe.Field()] = fe.Translate(v.translator)
		}

		return errV10
	}

	return nil
}

// RegisterRule binds rule to tag. The message of the error returned by rule
// becomes the translation of the field error.
func (v *V10Validator) RegisterRule(tag string, rule Rule) error {
	if tag == "" || rule == nil {
		return ErrInvalidRule
	}

	err := v.validate.RegisterValidation(tag, func(fl validator.FieldLevel) bool {
		return rule(fl.Field().Interface()) == nil
	})
	if err != nil {
		return err
	}

	return v.validate.RegisterTranslation(tag, v.translator,
		func(ut.Translator) error { return nil },
		func(_ ut.Translator, fe validator.FieldError) string {
			if rerr := rule(fe.Value()); rerr != nil {
				return rerr.Error()
			}

			slog.Warn("warning: rule passed on translation", "tag", fe.Tag(), "field", fe.Field())
			return fe.Error()
		},
	)
}

func overrideRequired(validate *validator.Validate, trans ut.Translator) error {
	return validate.RegisterTranslation("required", trans,
		func(ut ut.Translator) error {
			return ut.Add("required", MsgRequired, true)
		},
		func(ut ut.Translator, fe validator.FieldError) string {
			t, err := ut.T(fe.Tag(), fe.Field())
			if err != nil {
				slog.Warn("warning: error translating", "FieldError", fe, "error", err)
				return fe.Error()
			}

			return t
		},
	)
}

// fieldName reports a struct field under its JSON name, or its snake_case Go
// name when it has none.
func fieldName(sf reflect.StructField) string {
	name, _, _ := strings.Cut(sf.Tag.Get("json"), ",")
	switch name {
	case "-":
		return ""
	case "":
		return lo.SnakeCase(sf.Name)
	default:
		return name
	}
}
