package config

import (
	"io"
	"time"
)

// Config is the read-only view of the service configuration.
//
// Missing keys and values that cannot be converted yield the zero value.
// Keys are dotted paths such as "registration.recent_size".
type Config interface {
	io.Closer

	// IsSet reports whether key has a value in the file, the environment or
	// the defaults.
	IsSet(key string) bool

	GetBool(key string) bool
	GetString(key string) string
	GetInt(key string) int
	GetInt64(key string) int64
	GetFloat64(key string) float64

	// GetDuration parses values such as "1500ms" or "2m".
	GetDuration(key string) time.Duration

	// GetSecond reads an integer number of seconds.
	GetSecond(key string) time.Duration

	// GetArray accepts either a YAML list or a comma separated string.
	// Elements are trimmed and empty ones dropped.
	GetArray(key string) []string

	// GetMap reads a "k1:v1,k2:v2" string.
	GetMap(key string) map[string]string
}
