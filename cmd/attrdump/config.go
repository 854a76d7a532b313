package main

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"runtime"

	"gopkg.in/yaml.v3"

	"github.com/dhamidi/jattr/attr"
)

const defaultFormat = "line"

// Config holds the settings of a run. Values come from defaults, then the
// YAML file, then flags given on the command line.
type Config struct {
	Format  string   `yaml:"format"`
	Kinds   []string `yaml:"kinds"`
	Workers int      `yaml:"workers"`
	Verbose int      `yaml:"verbose"`
	LogFile string   `yaml:"log_file"`
}

func defaultConfig() Config {
	return Config{
		Format:  defaultFormat,
		Workers: runtime.NumCPU(),
	}
}

// loadConfig reads path over the defaults. An empty path yields the
// defaults.
func loadConfig(path string) (Config, error) {
	cfg := defaultConfig()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

// merge copies the flags reported as changed into cfg.
func (cfg *Config) merge(flags Config, changed func(name string) bool) {
	if changed("format") {
		cfg.Format = flags.Format
	}
	if changed("kinds") {
		cfg.Kinds = flags.Kinds
	}
	if changed("workers") {
		cfg.Workers = flags.Workers
	}
	if changed("verbose") {
		cfg.Verbose = flags.Verbose
	}
	if changed("log-file") {
		cfg.LogFile = flags.LogFile
	}
	if cfg.Workers < 1 {
		cfg.Workers = 1
	}
}

// registry returns the attribute registry for cfg.Kinds.
func (cfg Config) registry() (*attr.Registry, error) {
	if len(cfg.Kinds) == 0 {
		return attr.DefaultRegistry, nil
	}
	kinds := make([]attr.Kind, 0, len(cfg.Kinds))
	for _, name := range cfg.Kinds {
		k, ok := attr.KindOf(name)
		if !ok {
			return nil, fmt.Errorf("unknown attribute kind %q", name)
		}
		kinds = append(kinds, k)
	}
	return attr.NewRegistry(kinds...), nil
}
