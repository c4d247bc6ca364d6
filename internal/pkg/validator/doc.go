// Package validator provides the validation abstraction for request structs.
//
// Modules depend on the Validator interface and register their own rules by
// tag. The go-playground/validator v10 implementation translates failures to
// French and keys them by JSON field name.
package validator
