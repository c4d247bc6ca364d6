package rule

import "regexp"

var (
	reEmail = regexp.MustCompile(`^[a-zA-Z0-9._+-]+@[a-zA-Z0-9]+([.-][a-zA-Z0-9]+)*\.[a-zA-Z]{2,}$`)

	reZipShape = regexp.MustCompile(`^[0-9]{5}$`)

	// Metropolitan departments 01-95 except 75, overseas 971-974 and 976,
	// and Paris arrondissements 75001-75020.
	reZipRange = regexp.MustCompile(`^(?:(?:0[1-9]|[1-6][0-9]|7[0-4]|7[6-9]|8[0-9]|9[0-5])[0-9]{3}|97[1-4][0-9]{2}|976[0-9]{2}|7500[1-9]|7501[0-9]|75020)$`)
)

// Email validates the person's email address.
func Email(p *Person) error {
	if p == nil {
		return fail(ReasonMissingParam, FieldEmail)
	}

	email, absent, isString := stringField(p.Email)
	if absent {
		return fail(ReasonEmailEmpty, FieldEmail)
	}
	if !isString {
		return fail(ReasonBadParam, FieldEmail)
	}

	if !reEmail.MatchString(email) {
		return fail(ReasonInvalidEmailFormat, FieldEmail)
	}

	return nil
}

// ZipCode validates the person's French postal code. The shape check (exactly
// five ASCII digits) always runs before the range check.
func ZipCode(p *Person) error {
	if p == nil {
		return fail(ReasonMissingParam, FieldZipCode)
	}

	zip, absent, isString := stringField(p.ZipCode)
	if absent {
		return fail(ReasonZipEmpty, FieldZipCode)
	}
	if !isString {
		return fail(ReasonBadParam, FieldZipCode)
	}

	if !reZipShape.MatchString(zip) {
		return fail(ReasonZipWrongLength, FieldZipCode)
	}

	if !reZipRange.MatchString(zip) {
		return fail(ReasonZipOutOfRange, FieldZipCode)
	}

	return nil
}
