// Package config reads the optional TOML file cmd/memdb consults for
// default snapshot/history paths, grounded in the teacher's
// internal/parser/toml schema reader (same BurntSushi/toml decode-into-
// struct style, much smaller document shape). The CORE packages never
// import this package: every executor operation takes its paths as
// explicit command arguments, exactly as spec.md requires.
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// Defaults are the zero-value fallbacks used when no config file is
// present, or the file has no [defaults] table.
const (
	DefaultDumpPath    = "dump.bin"
	DefaultHistoryPath = "history.log"
)

// Config is the decoded shape of a memdb TOML config file.
type Config struct {
	Defaults Defaults `toml:"defaults"`
}

// Defaults holds the [defaults] table.
type Defaults struct {
	DumpPath    string `toml:"dump_path"`
	HistoryPath string `toml:"history_path"`
}

// Load reads the TOML file at path and fills in any unset field with its
// documented default. A path that does not exist is not an error: Load
// returns the all-defaults Config instead.
func Load(path string) (*Config, error) {
	cfg := &Config{Defaults: Defaults{
		DumpPath:    DefaultDumpPath,
		HistoryPath: DefaultHistoryPath,
	}}

	if path == "" {
		return cfg, nil
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}

	var file Config
	if _, err := toml.DecodeFile(path, &file); err != nil {
		return nil, fmt.Errorf("config: decode %q: %w", path, err)
	}

	if file.Defaults.DumpPath != "" {
		cfg.Defaults.DumpPath = file.Defaults.DumpPath
	}
	if file.Defaults.HistoryPath != "" {
		cfg.Defaults.HistoryPath = file.Defaults.HistoryPath
	}
	return cfg, nil
}
