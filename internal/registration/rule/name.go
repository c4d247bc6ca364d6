package rule

import (
	"regexp"
	"strings"
)

var (
	reName = regexp.MustCompile(`^[a-zA-ZÀ-ÿ` + whitespace + `'-]+$`)

	reDigit = regexp.MustCompile(`[0-9]`)
)

// whitespace matches the Unicode spaces of pasted French text, such as the
// no-break and narrow no-break spaces.
const whitespace = `\t\n\v\f\r \x{00A0}\x{1680}\x{2000}-\x{200A}\x{2028}\x{2029}\x{202F}\x{205F}\x{3000}\x{FEFF}`

const specialChars = "_/!@#$€§£%+=^¨&*(),.?\"`':;{}|<>[]\\"

// Name validates a first name, last name or city.
//
// Letters, including the Latin-1 accented range, spaces, apostrophes and hyphens
// are accepted. Rejections are checked in order: digits, then special characters.
func Name(value string) error {
	return name(value, "")
}

func name(value, field string) error {
	if value == "" {
		return fail(ReasonEmptyField, field)
	}

	if reName.MatchString(value) {
		return nil
	}

	if reDigit.MatchString(value) {
		return fail(ReasonDigitsForbidden, field)
	}

	if strings.ContainsAny(value, specialChars) {
		return fail(ReasonSpecialCharsForbidden, field)
	}

	// Reached by characters outside both classes, e.g. "Łukasz" or "~".
	return fail(ReasonUnknownError, field)
}

// Identity validates the firstname/lastname pair. Firstname is checked first, so
// its failure wins when both are invalid.
func Identity(p *Person) error {
	if p == nil {
		return fail(ReasonMissingParam, "")
	}

	if p.Firstname == nil || p.Firstname == "" {
		return fail(ReasonMissingParam, FieldFirstname)
	}
	if p.Lastname == nil {
		return fail(ReasonMissingParam, FieldLastname)
	}

	firstname, ok := p.Firstname.(string)
	if !ok {
		return fail(ReasonBadParam, FieldFirstname)
	}
	lastname, ok := p.Lastname.(string)
	if !ok {
		return fail(ReasonBadParam, FieldLastname)
	}

	if err := name(firstname, FieldFirstname); err != nil {
		return err
	}

	return name(lastname, FieldLastname)
}

// ValidateIndentity is the historical name of Identity.
//
// Deprecated: use Identity.
func ValidateIndentity(p *Person) error {
	return Identity(p)
}
