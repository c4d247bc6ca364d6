package rule

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validPerson() *Person {
	return &Person{
		Firstname: "Noël",
		Lastname:  "Côté",
		Email:     "noel.cote@example.fr",
		Birth:     "1990-05-12",
		ZipCode:   "35200",
		City:      "Rennes",
	}
}

func TestEvaluate(t *testing.T) {
	t.Run("valid form enables submit", func(t *testing.T) {
		report := Evaluate(validPerson(), now)
		assert.True(t, report.SubmitEnabled)
		assert.Empty(t, report.Errors)
		assert.Empty(t, report.Messages())
	})

	t.Run("empty form reports every field", func(t *testing.T) {
		report := Evaluate(&Person{}, now)
		assert.False(t, report.SubmitEnabled)
		assert.Equal(t, map[string]string{
			FieldFirstname: MsgEmptyField,
			FieldLastname:  MsgEmptyField,
			FieldCity:      MsgEmptyField,
			FieldEmail:     MsgEmailEmpty,
			FieldZipCode:   MsgZipEmpty,
			FieldBirth:     MsgEmptyField,
		}, report.Messages())
	})

	t.Run("nil person behaves like an empty form", func(t *testing.T) {
		assert.Equal(t, Evaluate(&Person{}, now).Messages(), Evaluate(nil, now).Messages())
	})

	t.Run("reports firstname and lastname independently", func(t *testing.T) {
		p := validPerson()
		p.Firstname = "Jean<script>"
		p.Lastname = "Dup0nt"

		report := Evaluate(p, now)
		require.False(t, report.SubmitEnabled)
		assert.Equal(t, map[string]string{
			FieldFirstname: MsgSpecialCharsForbidden,
			FieldLastname:  MsgDigitsForbidden,
		}, report.Messages())
		assert.Equal(t, FieldLastname, report.Errors[FieldLastname].Field)
	})

	t.Run("one failing field disables submit", func(t *testing.T) {
		p := validPerson()
		p.Birth = time.Date(2015, time.March, 3, 0, 0, 0, 0, time.UTC)

		report := Evaluate(p, now)
		assert.False(t, report.SubmitEnabled)
		assert.Equal(t, map[string]string{FieldBirth: MsgNotAdult}, report.Messages())
	})

	t.Run("wrong types are bad params", func(t *testing.T) {
		p := validPerson()
		p.City = 42
		p.ZipCode = 35200

		report := Evaluate(p, now)
		assert.Equal(t, map[string]string{
			FieldCity:    MsgBadParam,
			FieldZipCode: MsgBadParam,
		}, report.Messages())
	})
}

func TestOutcome(t *testing.T) {
	t.Run("nil error is valid", func(t *testing.T) {
		res := Outcome(nil)
		assert.True(t, res.Valid)
		assert.Nil(t, res.Err)
		assert.Empty(t, res.Message())
	})

	t.Run("wrapped rule error keeps its reason", func(t *testing.T) {
		res := Outcome(fmt.Errorf("zip: %w", ZipCode(&Person{ZipCode: "98000"})))
		require.False(t, res.Valid)
		assert.Equal(t, ReasonZipOutOfRange, res.Err.Reason)
		assert.Equal(t, MsgZipOutOfRange, res.Message())
	})

	t.Run("foreign error is unknown", func(t *testing.T) {
		res := Outcome(errors.New("boom"))
		require.False(t, res.Valid)
		assert.Equal(t, KindUnknown, res.Err.Kind())
	})

	t.Run("try variants", func(t *testing.T) {
		assert.True(t, TryName("Pierre").Valid)
		assert.True(t, TryIdentity(&Person{Firstname: "Pierre", Lastname: "Dubois"}).Valid)
		assert.True(t, TryEmail(&Person{Email: "user@example.com"}).Valid)
		assert.Equal(t, MsgZipWrongLength, TryZipCode(&Person{ZipCode: "9300"}).Message())
		assert.Equal(t, MsgNotAdult, TryAge(&Person{Birth: date(2011, time.January, 1)}, now).Message())
	})
}

func TestReasonKinds(t *testing.T) {
	tests := map[Reason]Kind{
		ReasonMissingParam:          KindMissingParam,
		ReasonBadParam:              KindBadParam,
		ReasonEmptyField:            KindEmptyField,
		ReasonEmailEmpty:            KindEmptyField,
		ReasonZipEmpty:              KindEmptyField,
		ReasonDigitsForbidden:       KindFormatInvalid,
		ReasonSpecialCharsForbidden: KindFormatInvalid,
		ReasonInvalidEmailFormat:    KindFormatInvalid,
		ReasonZipWrongLength:        KindFormatInvalid,
		ReasonZipOutOfRange:         KindOutOfRange,
		ReasonNotAdult:              KindOutOfRange,
		ReasonFutureDateNotAllowed:  KindFutureDate,
		ReasonUnknownError:          KindUnknown,
	}

	for reason, kind := range tests {
		assert.Equal(t, kind, reason.Kind(), reason.Message())
	}

	assert.Equal(t, KindUnknown, Reason(0).Kind())
	assert.Equal(t, MsgUnknownError, Reason(0).Message())
	assert.Equal(t, "OUT_OF_RANGE", KindOutOfRange.String())
}
