package config

import (
	"bytes"
	"errors"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/samber/lo"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes environment overrides: USERLAB_STORE_DRIVER overrides store.driver.
const EnvPrefix = "USERLAB"

// ErrConfigType is returned by NewViperFromBytes without a config type.
var ErrConfigType = errors.New("config type is required")

// Viper is a Config implementation backed by github.com/spf13/viper.
type Viper struct {
	v *viper.Viper
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("app.name", "userlab")
	v.SetDefault("app.tz", "UTC")
	v.SetDefault("app.server.http.address", ":8080")
	v.SetDefault("app.server.http.read_timeout", "10s")
	v.SetDefault("app.server.http.write_timeout", "10s")
	v.SetDefault("app.server.http.shutdown_timeout", "15s")
	v.SetDefault("store.driver", "memory")
	v.SetDefault("messaging.driver", "noop")
	v.SetDefault("registration.recent_size", 5)
	v.SetDefault("registration.max_recent_size", 100)

	return v
}

// NewViper loads the configuration file at pathFile and watches it for changes.
// The file type is inferred from the extension.
func NewViper(pathFile string) (*Viper, error) {
	v := newViper()
	v.SetConfigFile(filepath.Clean(pathFile))

	if err := v.ReadInConfig(); err != nil {
		return nil, err
	}

	v.OnConfigChange(func(e fsnotify.Event) {
		slog.Info("config reloaded", "path", e.Name, "op", e.Op.String())
	})
	v.WatchConfig()

	return &Viper{v: v}, nil
}

// NewViperFromBytes loads configuration from memory.
// configType should be a format supported by Viper (e.g. "yaml", "json", "toml").
func NewViperFromBytes(configType string, data []byte) (*Viper, error) {
	if strings.TrimSpace(configType) == "" {
		return nil, ErrConfigType
	}

	v := newViper()
	v.SetConfigType(configType)

	if err := v.ReadConfig(bytes.NewReader(data)); err != nil {
		return nil, err
	}

	return &Viper{v: v}, nil
}

func (vc *Viper) IsSet(key string) bool                { return vc.v.IsSet(key) }
func (vc *Viper) GetBool(key string) bool              { return vc.v.GetBool(key) }
func (vc *Viper) GetString(key string) string          { return vc.v.GetString(key) }
func (vc *Viper) GetInt(key string) int                { return vc.v.GetInt(key) }
func (vc *Viper) GetInt64(key string) int64            { return vc.v.GetInt64(key) }
func (vc *Viper) GetFloat64(key string) float64        { return vc.v.GetFloat64(key) }
func (vc *Viper) GetDuration(key string) time.Duration { return vc.v.GetDuration(key) }

func (vc *Viper) GetSecond(key string) time.Duration {
	return time.Duration(vc.v.GetInt64(key)) * time.Second
}

func (vc *Viper) GetArray(key string) []string {
	var items []string
	switch raw := vc.v.Get(key).(type) {
	case nil:
		return nil
	case string:
		items = strings.Split(raw, ",")
	default:
		items = vc.v.GetStringSlice(key)
	}

	return lo.FilterMap(items, func(s string, _ int) (string, bool) {
		s = strings.TrimSpace(s)
		return s, s != ""
	})
}

func (vc *Viper) GetMap(key string) map[string]string {
	m := make(map[string]string)
	for pair := range strings.SplitSeq(vc.v.GetString(key), ",") {
		if k, val, ok := strings.Cut(pair, ":"); ok {
			m[strings.TrimSpace(k)] = strings.TrimSpace(val)
		}
	}
	return m
}

// Close implements io.Closer. Viper holds no resources.
func (*Viper) Close() error {
	return nil
}
