// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package config resolves run settings from viper (flags and config file)
// and an explicitly supplied environment.
package config

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/spf13/viper"

	"github.com/pdiddy/roots-import/pkg/types"
)

// EnvPrefix prefixes every environment variable read by Load.
const EnvPrefix = "ROOTS"

// Setting keys shared by flags, the config file, and the environment.
const (
	KeyDatabase   = "database"
	KeyMaxResults = "max-results"
	KeyKind       = "kind"
	KeyQuality    = "quality"
	KeyStrict     = "strict"
)

var builtinDefaults = map[string]string{
	KeyDatabase:   "roots.db",
	KeyMaxResults: "50",
	KeyKind:       "",
	KeyQuality:    "",
	KeyStrict:     "false",
}

// LookupFunc reports the value of an environment variable. os.LookupEnv
// satisfies it.
type LookupFunc func(key string) (string, bool)

// MapEnv adapts a map to a LookupFunc.
func MapEnv(m map[string]string) LookupFunc {
	return func(key string) (string, bool) {
		v, ok := m[key]
		return v, ok
	}
}

// EnvName returns the environment variable consulted for key,
// e.g. "max-results" -> "ROOTS_MAX_RESULTS".
func EnvName(key string) string {
	return EnvPrefix + "_" + strings.ToUpper(strings.ReplaceAll(key, "-", "_"))
}

// applyDefaults installs, for each key, the environment value when present
// and the built-in default otherwise. Values already held by v from flags
// or a config file take precedence over both.
func applyDefaults(v *viper.Viper, env LookupFunc) error {
	for key, def := range builtinDefaults {
		if env != nil {
			name := EnvName(key)
			if val, ok := env(name); ok {
				if !utf8.ValidString(val) {
					return fmt.Errorf("environment variable %s is not valid UTF-8", name)
				}
				def = val
			}
		}
		v.SetDefault(key, def)
	}
	return nil
}

// LoadStore resolves the database settings.
func LoadStore(v *viper.Viper, env LookupFunc) (types.StoreConfig, error) {
	if err := applyDefaults(v, env); err != nil {
		return types.StoreConfig{}, err
	}

	cfg := types.StoreConfig{
		Database:   v.GetString(KeyDatabase),
		MaxResults: v.GetInt(KeyMaxResults),
	}
	if cfg.Database == "" {
		return types.StoreConfig{}, fmt.Errorf("database path is empty")
	}
	if cfg.MaxResults < 0 {
		return types.StoreConfig{}, fmt.Errorf("max-results must not be negative, got %d", cfg.MaxResults)
	}
	return cfg, nil
}

// LoadImport resolves the settings of an import run reading input.
// Kind must name a supported format and quality must be set.
func LoadImport(v *viper.Viper, env LookupFunc, input string) (types.ImportConfig, error) {
	store, err := LoadStore(v, env)
	if err != nil {
		return types.ImportConfig{}, err
	}

	kind, err := types.ParseKind(v.GetString(KeyKind))
	if err != nil {
		return types.ImportConfig{}, err
	}

	quality := v.GetString(KeyQuality)
	if quality == "" {
		return types.ImportConfig{}, fmt.Errorf("quality is required: use --quality or %s", EnvName(KeyQuality))
	}
	if input == "" {
		return types.ImportConfig{}, fmt.Errorf("input path is required")
	}

	return types.ImportConfig{
		StoreConfig: store,
		Input:       input,
		Kind:        kind,
		Quality:     quality,
		Strict:      v.GetBool(KeyStrict),
	}, nil
}
