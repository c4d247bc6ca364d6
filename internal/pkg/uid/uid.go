package uid

// StringID generates opaque string identifiers, such as correlation IDs.
type StringID interface {
	Generate() string
}

// NumberID generates time ordered numeric identifiers, such as user IDs.
type NumberID interface {
	Generate() int64
}
