package config

import (
	"embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	kfs "github.com/knadh/koanf/providers/fs"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix marks environment variables that override configuration keys.
const EnvPrefix = "APP_"

// DefaultDir holds base.yaml and the profile files.
const DefaultDir = "configs"

//go:embed defaults.yaml
var builtin embed.FS

// Load reads configuration from DefaultDir for profile. See LoadDir.
func Load(profile string) (*Config, error) {
	return LoadDir(DefaultDir, profile)
}

// LoadDir layers, lowest precedence first:
//  1. the built-in defaults
//  2. dir/base.yaml
//  3. dir/<profile>.yaml, when profile is set
//  4. APP_* environment variables
//
// Missing files are skipped. Keys left empty that derive from others are
// filled in last.
func LoadDir(dir, profile string) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(kfs.Provider(builtin, "defaults.yaml"), yaml.Parser()); err != nil {
		return nil, fmt.Errorf("loading built-in defaults: %w", err)
	}

	layers := []string{"base"}
	if profile != "" {
		layers = append(layers, profile)
	}

	for _, name := range layers {
		if err := loadFileIfExists(k, filepath.Join(dir, name+".yaml")); err != nil {
			return nil, fmt.Errorf("loading %s config: %w", name, err)
		}
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", envKeyMapper(k.Keys())), nil); err != nil {
		return nil, fmt.Errorf("loading environment: %w", err)
	}

	if err := k.Load(confmap.Provider(derived(k), "."), nil); err != nil {
		return nil, fmt.Errorf("deriving config: %w", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}

	return &cfg, nil
}

// derived returns values for empty keys that default to other keys.
func derived(k *koanf.Koanf) map[string]any {
	out := make(map[string]any)

	if k.String("telemetry.service_name") == "" {
		out["telemetry.service_name"] = k.String("app.name")
	}

	if k.String("services.artic.user_agent") == "" {
		out["services.artic.user_agent"] = k.String("app.name") + "/" + k.String("app.version")
	}

	return out
}

// envKeyMapper maps APP_FEATURED_FETCH_TIMEOUT to featured.fetch_timeout.
// Known keys win, so underscores inside a key survive; anything else has
// every underscore turned into a separator.
func envKeyMapper(known []string) func(string) string {
	byEnv := make(map[string]string, len(known))
	for _, key := range known {
		byEnv[strings.ReplaceAll(key, ".", "_")] = key
	}

	return func(s string) string {
		name := strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
		if key, ok := byEnv[name]; ok {
			return key
		}

		return strings.ReplaceAll(name, "_", ".")
	}
}

func loadFileIfExists(k *koanf.Koanf, path string) error {
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return nil
	}

	return k.Load(file.Provider(path), yaml.Parser())
}
