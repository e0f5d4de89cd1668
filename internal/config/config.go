// Package config loads ermine's layered configuration: CLI flags
// override environment variables, which override the project/user
// config file, which overrides built-in defaults. The file lookup
// follows the same walk-up-then-fall-back-to-home-dir convention the
// teacher codebase uses for its own config file.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// Defaults mirror the engine construction parameters of SPEC_FULL.md §6.2.
const (
	DefaultMinSup  = 0.5
	DefaultMinConf = 0.75
	DefaultOutput  = "output.txt"
	DefaultPrune   = true
)

// Config holds the resolved mining settings for a run.
type Config struct {
	MinSup  float64
	MinConf float64
	Output  string
	Write   bool
	Verbose bool
	Prune   bool
	Color   string // "auto", "always", "never"
	LogFile string
}

// Load builds a viper instance seeded with defaults, the discovered
// config file (if any), and ERMINE_-prefixed environment variables.
// It does not read CLI flags; callers bind those on top via
// BindPFlags so that flags always win.
func Load(explicitPath string) (*viper.Viper, error) {
	v := viper.New()
	v.SetConfigType("yaml")

	v.SetDefault("minsup", DefaultMinSup)
	v.SetDefault("minconf", DefaultMinConf)
	v.SetDefault("output", DefaultOutput)
	v.SetDefault("write", false)
	v.SetDefault("verbose", false)
	v.SetDefault("prune", DefaultPrune)
	v.SetDefault("color", "auto")
	v.SetDefault("log_file", defaultLogFile())

	v.SetEnvPrefix("ERMINE")
	v.AutomaticEnv()

	if explicitPath != "" {
		v.SetConfigFile(explicitPath)
	} else if path := locateConfigFile(); path != "" {
		v.SetConfigFile(path)
	}

	if v.ConfigFileUsed() != "" {
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("config: reading %s: %w", v.ConfigFileUsed(), err)
		}
	}
	return v, nil
}

// locateConfigFile walks up from the working directory looking for
// .ermine/config.yaml, then falls back to the user config directory,
// then the home directory. Returns "" if none exist.
func locateConfigFile() string {
	if cwd, err := os.Getwd(); err == nil {
		for dir := cwd; ; {
			candidate := filepath.Join(dir, ".ermine", "config.yaml")
			if _, err := os.Stat(candidate); err == nil {
				return candidate
			}
			parent := filepath.Dir(dir)
			if parent == dir {
				break
			}
			dir = parent
		}
	}
	if configDir, err := os.UserConfigDir(); err == nil {
		candidate := filepath.Join(configDir, "ermine", "config.yaml")
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
	}
	if home, err := os.UserHomeDir(); err == nil {
		candidate := filepath.Join(home, ".ermine", "config.yaml")
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
	}
	return ""
}

func defaultLogFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "ermine.log"
	}
	return filepath.Join(home, ".ermine", "ermine.log")
}

// FromViper materializes a Config from a viper instance after flags
// have been bound on top of it (see cmd/ermine).
func FromViper(v *viper.Viper) Config {
	return Config{
		MinSup:  v.GetFloat64("minsup"),
		MinConf: v.GetFloat64("minconf"),
		Output:  v.GetString("output"),
		Write:   v.GetBool("write"),
		Verbose: v.GetBool("verbose"),
		Prune:   v.GetBool("prune"),
		Color:   v.GetString("color"),
		LogFile: v.GetString("log_file"),
	}
}
