// Package jwt issues and verifies the bearer tokens of back-office operators.
//
// Tokens are HS512 signed. The subject is the operator name that
// authorization policies refer to.
package jwt
