package project

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// Load reads the persisted project document at path (JSON) into a
// Configuration. CAP_-prefixed environment variables override keys that
// the document contains, the way the teacher's flag-driven options do for
// process flags.
func Load(path string) (*Configuration, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("json")
	v.SetEnvPrefix("CAP")
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("project: read config %s: %w", path, err)
	}

	var cfg Configuration
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("project: unmarshal config %s: %w", path, err)
	}
	return &cfg, nil
}

// Save atomically writes cfg to path as JSON: write to a sibling temp file,
// fsync, then rename over the destination. Matches §6's "atomically
// written on import completion" requirement.
func Save(path string, cfg *Configuration) error {
	v := viper.New()
	v.SetConfigType("json")

	m, err := toMap(cfg)
	if err != nil {
		return fmt.Errorf("project: encode config: %w", err)
	}
	for k, val := range m {
		v.Set(k, val)
	}

	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".project-*.json.tmp")
	if err != nil {
		return fmt.Errorf("project: create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	tmp.Close()
	defer os.Remove(tmpPath)

	if err := v.WriteConfigAs(tmpPath); err != nil {
		return fmt.Errorf("project: write temp config: %w", err)
	}
	f, err := os.Open(tmpPath)
	if err != nil {
		return err
	}
	if err := f.Sync(); err != nil {
		f.Close()
		return err
	}
	f.Close()

	return os.Rename(tmpPath, path)
}

// toMap round-trips cfg through viper's generic marshaller by way of a
// struct->map conversion; viper's Unmarshal/WriteConfigAs pair works over
// map[string]any, not struct values directly.
func toMap(cfg *Configuration) (map[string]any, error) {
	b, err := marshalJSON(cfg)
	if err != nil {
		return nil, err
	}
	v := viper.New()
	v.SetConfigType("json")
	if err := v.ReadConfig(newBytesReader(b)); err != nil {
		return nil, err
	}
	return v.AllSettings(), nil
}
