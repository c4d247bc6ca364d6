package rule

// Field names as reported on *Error.Field and in form reports.
const (
	FieldFirstname = "firstname"
	FieldLastname  = "lastname"
	FieldEmail     = "email"
	FieldBirth     = "birth"
	FieldZipCode   = "zip_code"
	FieldCity      = "city"
)

// Person is the validation subject. Fields are loosely typed because values come
// straight from a form or a decoded JSON document: a field may be absent (nil),
// a string, or for Birth a time.Time.
type Person struct {
	Firstname any `json:"firstname"`
	Lastname  any `json:"lastname"`
	Email     any `json:"email"`
	Birth     any `json:"birth"`
	ZipCode   any `json:"zip_code"`
	City      any `json:"city"`
}

// stringField classifies a loosely typed value.
// absent is true for nil and the empty string.
func stringField(v any) (s string, absent, isString bool) {
	if v == nil {
		return "", true, false
	}
	s, isString = v.(string)
	if !isString {
		return "", false, false
	}
	return s, s == "", true
}
