// Package config resolves runmunch's on-disk configuration: the config
// directory (RUNMUNCH_HOME, else a directory under the user's home), an
// optional YAML defaults file, and the diagnostics log path, through a
// three-tier precedence of CLI flag, then config file, then built-in default.
package config

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const (
	// EnvHome overrides the config directory, which otherwise defaults to
	// a well-known dotfile directory under the user's home.
	EnvHome           = "RUNMUNCH_HOME"
	DefaultConfigDir  = ".config/runmunch"
	DefaultConfigFile = "config.yaml"
	DefaultLogFile    = "diagnostics.jsonl"
)

// FileDefaults is the shape of the optional config.yaml.
type FileDefaults struct {
	FlagMode     string `yaml:"flag_mode"`
	OutputFormat string `yaml:"output_format"`
	LogPath      string `yaml:"log_path"`
}

// Config holds resolved runtime settings after CLI flags, the config file,
// and built-in defaults have been layered (in that precedence order).
type Config struct {
	ConfigDir    string
	LogPath      string
	OutputFormat string
	FlagMode     string // "" means auto-detect from the affix file's FLAG directive
	Strict       bool
}

// Load resolves configuration. CLI-flag values (logPath, outputFormat,
// flagMode) take precedence over the config file, which takes precedence
// over built-in defaults — the same three-tier precedence the reference
// gateway applies to its policy/log path flags.
func Load(logPath, outputFormat, flagMode string, strict bool) (*Config, error) {
	configDir, err := resolveConfigDir()
	if err != nil {
		return nil, err
	}
	if err := ensureDir(configDir); err != nil {
		return nil, err
	}

	defaults := loadFileDefaults(filepath.Join(configDir, DefaultConfigFile))

	cfg := &Config{
		ConfigDir:    configDir,
		OutputFormat: "text",
		Strict:       strict,
	}

	switch {
	case logPath != "":
		cfg.LogPath = logPath
	case defaults.LogPath != "":
		cfg.LogPath = defaults.LogPath
	default:
		cfg.LogPath = filepath.Join(configDir, DefaultLogFile)
	}

	switch {
	case outputFormat != "":
		cfg.OutputFormat = outputFormat
	case defaults.OutputFormat != "":
		cfg.OutputFormat = defaults.OutputFormat
	}

	switch {
	case flagMode != "":
		cfg.FlagMode = flagMode
	case defaults.FlagMode != "":
		cfg.FlagMode = defaults.FlagMode
	}

	return cfg, nil
}

func resolveConfigDir() (string, error) {
	if override := os.Getenv(EnvHome); override != "" {
		return override, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, DefaultConfigDir), nil
}

// loadFileDefaults reads the optional config.yaml. A missing file is not an
// error — it just means every field falls through to built-in defaults.
func loadFileDefaults(path string) FileDefaults {
	data, err := os.ReadFile(path)
	if err != nil {
		return FileDefaults{}
	}
	var d FileDefaults
	if err := yaml.Unmarshal(data, &d); err != nil {
		return FileDefaults{}
	}
	return d
}

func ensureDir(path string) error {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return os.MkdirAll(path, 0700)
	}
	return nil
}
