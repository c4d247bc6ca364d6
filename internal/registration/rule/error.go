package rule

// Kind classifies a failure into a high-level bucket.
type Kind int

const (
	// KindMissingParam means a required input is absent.
	KindMissingParam Kind = iota + 1
	// KindBadParam means an input has the wrong type.
	KindBadParam
	// KindEmptyField means a field is present but empty.
	KindEmptyField
	// KindFormatInvalid means a value fails a pattern or shape check.
	KindFormatInvalid
	// KindOutOfRange means a value is well formed but semantically rejected.
	KindOutOfRange
	// KindFutureDate means a birth date lies after the evaluation instant.
	KindFutureDate
	// KindUnknown is the fallback for a value no other rule could classify.
	KindUnknown
)

// String returns the string representation of the kind.
func (k Kind) String() string {
	switch k {
	case KindMissingParam:
		return "MISSING_PARAM"
	case KindBadParam:
		return "BAD_PARAM"
	case KindEmptyField:
		return "EMPTY_FIELD"
	case KindFormatInvalid:
		return "FORMAT_INVALID"
	case KindOutOfRange:
		return "OUT_OF_RANGE"
	case KindFutureDate:
		return "FUTURE_DATE"
	default:
		return "UNKNOWN"
	}
}

// Reason is a specific failure with a fixed, user-facing message.
type Reason int

const (
	ReasonMissingParam Reason = iota + 1
	ReasonBadParam
	ReasonFutureDateNotAllowed
	ReasonEmptyField
	ReasonDigitsForbidden
	ReasonSpecialCharsForbidden
	ReasonUnknownError
	ReasonEmailEmpty
	ReasonInvalidEmailFormat
	ReasonZipEmpty
	ReasonZipWrongLength
	ReasonZipOutOfRange
	ReasonNotAdult
)

// Messages are displayed verbatim by clients, do not reword them.
const (
	MsgMissingParam          = "missing param"
	MsgBadParam              = "bad param"
	MsgFutureDateNotAllowed  = "Persons from the future are not allowed to calculate their age"
	MsgEmptyField            = "Le champ ne peut pas être vide"
	MsgDigitsForbidden       = "Les chiffres sont interdits"
	MsgSpecialCharsForbidden = "Les caractères spéciaux sont interdits"
	MsgUnknownError          = "Erreur inconnue"
	MsgEmailEmpty            = "L'email ne peut pas être vide"
	MsgInvalidEmailFormat    = "Le format de l'email est invalide"
	MsgZipEmpty              = "Le code postal ne peut pas être vide"
	MsgZipWrongLength        = "Le code postal doit comporter 5 chiffres"
	MsgZipOutOfRange         = "Le code postal n'est pas valide"
	MsgNotAdult              = "Vous devez être majeur pour vous inscrire"
)

var reasons = map[Reason]struct {
	kind Kind
	msg  string
}{
	ReasonMissingParam:          {KindMissingParam, MsgMissingParam},
	ReasonBadParam:              {KindBadParam, MsgBadParam},
	ReasonFutureDateNotAllowed:  {KindFutureDate, MsgFutureDateNotAllowed},
	ReasonEmptyField:            {KindEmptyField, MsgEmptyField},
	ReasonDigitsForbidden:       {KindFormatInvalid, MsgDigitsForbidden},
	ReasonSpecialCharsForbidden: {KindFormatInvalid, MsgSpecialCharsForbidden},
	ReasonUnknownError:          {KindUnknown, MsgUnknownError},
	ReasonEmailEmpty:            {KindEmptyField, MsgEmailEmpty},
	ReasonInvalidEmailFormat:    {KindFormatInvalid, MsgInvalidEmailFormat},
	ReasonZipEmpty:              {KindEmptyField, MsgZipEmpty},
	ReasonZipWrongLength:        {KindFormatInvalid, MsgZipWrongLength},
	ReasonZipOutOfRange:         {KindOutOfRange, MsgZipOutOfRange},
	ReasonNotAdult:              {KindOutOfRange, MsgNotAdult},
}

// Message returns the exact message of the reason.
func (r Reason) Message() string {
	if v, ok := reasons[r]; ok {
		return v.msg
	}
	return MsgUnknownError
}

// Kind returns the bucket the reason belongs to.
func (r Reason) Kind() Kind {
	if v, ok := reasons[r]; ok {
		return v.kind
	}
	return KindUnknown
}

// Sentinels for errors.Is comparisons. They match any *Error with the same Reason,
// whatever its Field.
var (
	ErrMissingParam          = &Error{Reason: ReasonMissingParam}
	ErrBadParam              = &Error{Reason: ReasonBadParam}
	ErrFutureDateNotAllowed  = &Error{Reason: ReasonFutureDateNotAllowed}
	ErrEmptyField            = &Error{Reason: ReasonEmptyField}
	ErrDigitsForbidden       = &Error{Reason: ReasonDigitsForbidden}
	ErrSpecialCharsForbidden = &Error{Reason: ReasonSpecialCharsForbidden}
	ErrUnknown               = &Error{Reason: ReasonUnknownError}
	ErrEmailEmpty            = &Error{Reason: ReasonEmailEmpty}
	ErrInvalidEmailFormat    = &Error{Reason: ReasonInvalidEmailFormat}
	ErrZipEmpty              = &Error{Reason: ReasonZipEmpty}
	ErrZipWrongLength        = &Error{Reason: ReasonZipWrongLength}
	ErrZipOutOfRange         = &Error{Reason: ReasonZipOutOfRange}
	ErrNotAdult              = &Error{Reason: ReasonNotAdult}
)

// Error is a rule violation. Field names the person field that failed, when known.
type Error struct {
	Reason Reason
	Field  string
}

func fail(r Reason, field string) *Error {
	return &Error{Reason: r, Field: field}
}

// Error implements the error interface and returns the exact reason message.
func (e *Error) Error() string {
	return e.Reason.Message()
}

// Kind returns the taxonomy bucket of the violation.
func (e *Error) Kind() Kind {
	return e.Reason.Kind()
}

// Is reports whether target is a rule error with the same reason.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Reason == e.Reason
}
