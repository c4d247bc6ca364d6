package rule

import (
	"errors"
	"time"
)

// Result is the outcome of a validator: either Valid, or a failure in Err.
type Result struct {
	Valid bool
	Err   *Error
}

// Message returns the failure message, or "" when valid.
func (r Result) Message() string {
	if r.Valid || r.Err == nil {
		return ""
	}
	return r.Err.Error()
}

// Outcome converts a validator error into a Result. Errors that are not rule
// errors are reported as ReasonUnknownError.
func Outcome(err error) Result {
	if err == nil {
		return Result{Valid: true}
	}

	var rerr *Error
	if errors.As(err, &rerr) {
		return Result{Err: rerr}
	}

	return Result{Err: fail(ReasonUnknownError, "")}
}

// TryName is the Result form of Name.
func TryName(value string) Result { return Outcome(Name(value)) }

// TryIdentity is the Result form of Identity.
func TryIdentity(p *Person) Result { return Outcome(Identity(p)) }

// TryEmail is the Result form of Email.
func TryEmail(p *Person) Result { return Outcome(Email(p)) }

// TryZipCode is the Result form of ZipCode.
func TryZipCode(p *Person) Result { return Outcome(ZipCode(p)) }

// TryAge is the Result form of Age.
func TryAge(p *Person, now time.Time) Result { return Outcome(Age(p, now)) }
