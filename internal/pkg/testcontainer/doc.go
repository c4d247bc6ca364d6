//go:build integration

// Package testcontainer starts throwaway Redis and PostgreSQL instances for
// integration tests. Run them with: go test -tags integration ./...
package testcontainer
