package validator

import (
	"encoding/json"
	"fmt"
)

// Rule checks a single field value. A nil return means the value is valid;
// otherwise the error message is reported for the field as is.
type Rule func(value any) error

// Validator validates structs annotated with `validate` tags.
type Validator interface {
	Validate(data any) error
	RegisterRule(tag string, rule Rule) error
}

// ValidationError is a field-to-message map returned when validation fails.
type ValidationError map[string]string

// Error implements the error interface.
func (vs ValidationError) Error() string {
	if len(vs) == 0 {
		return "validation error"
	}

	b, err := json.Marshal(vs)
	if err != nil {
		return fmt.Sprintf("validation error (failed to marshal: %v)", err)
	}
	return string(b)
}

// Values returns the field error map.
func (vs ValidationError) Values() map[string]string {
	return vs
}
