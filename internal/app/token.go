package app

import (
	"context"
	"errors"
)

// ErrTokensDisabled is returned by IssueToken when jwt.secret is not configured.
var ErrTokensDisabled = errors.New("app: jwt.secret is not configured")

// IssueToken signs an operator token for subject with the configured secret.
// It only loads configuration and libraries, never the network resources.
func IssueToken(subject string) (string, error) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	a := &App{ctx: ctx, cancel: cancel}
	a.initConfig()
	a.initLibraries()
	a.initAuth()
	defer func() { _ = a.config.Close() }()

	if a.jwt == nil {
		return "", ErrTokensDisabled
	}
	return a.jwt.Generate(subject)
}
