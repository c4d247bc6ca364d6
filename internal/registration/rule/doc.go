// Package rule holds the registration business rules: age calculation and the
// field validators for identity, email, French postal code and majority.
//
// Every function here is pure. Nothing reads the wall clock; callers pass the
// evaluation instant explicitly, usually from a clock.Clocker. Inputs are never
// mutated.
//
// Validators return nil on success or an *Error carrying a Reason whose message
// is shown to end users verbatim. The Try* variants return a Result instead.
package rule
