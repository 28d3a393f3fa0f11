package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	skerrors "github.com/jenquist/shared-agent-skills/internal/errors"
)

// ProjectFile is the project-level config file name, relative to the project root.
const ProjectFile = ".link-skills.toml"

// LogLevel specifies the logging verbosity.
type LogLevel string

const (
	LogLevelDebug LogLevel = "debug"
	LogLevelInfo  LogLevel = "info"
	LogLevelWarn  LogLevel = "warn"
	LogLevelError LogLevel = "error"
)

// LogFormat specifies the log output format.
type LogFormat string

const (
	LogFormatJSON LogFormat = "json"
	LogFormatText LogFormat = "text"
)

// LinkConfig holds settings for the skill links.
type LinkConfig struct {
	// Target is the directory that receives <skill>.md links,
	// relative to the project root unless absolute.
	Target string `toml:"target"`

	// Source is an explicit catalog root. When set, package lookup
	// in node_modules is skipped.
	Source string `toml:"source"`

	// Packages are the npm package names searched under node_modules,
	// in order. The catalog is the package's skills/ directory.
	Packages []string `toml:"packages"`

	// Include and Exclude are glob patterns over skill names.
	// An empty Include means every skill; Exclude wins over Include.
	Include []string `toml:"include"`
	Exclude []string `toml:"exclude"`
}

// HookConfig holds post-merge hook settings.
type HookConfig struct {
	// Command is the command the embedded post-merge template runs.
	Command string `toml:"command"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  LogLevel  `toml:"level"`
	Format LogFormat `toml:"format"`
	File   string    `toml:"file"`
}

// Config is the main configuration struct for link-skills.
type Config struct {
	Link    LinkConfig    `toml:"link"`
	Hook    HookConfig    `toml:"hook"`
	Logging LoggingConfig `toml:"logging"`
}

// Default returns a Config with sensible defaults.
func Default() *Config {
	return &Config{
		Link: LinkConfig{
			Target: ".claude/skills",
			Packages: []string{
				"@jenquist/shared-agent-skills",
				"shared-agent-skills",
			},
		},
		Hook: HookConfig{
			Command: "npx link-skills",
		},
		Logging: LoggingConfig{
			Level:  LogLevelWarn,
			Format: LogFormatText,
		},
	}
}

// Load loads configuration from file, merging with defaults.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil // Use defaults if no config file
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}

	if _, err := toml.Decode(string(data), cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	return cfg, nil
}

// LoadFromDir loads configuration from the standard locations for a project.
// Applies in order: defaults -> global config -> <dir>/.link-skills.toml
// Later configs override earlier ones (project-level takes precedence).
func LoadFromDir(dir string) (*Config, error) {
	cfg := Default()

	if globalConfig, err := GlobalPath(); err == nil {
		if data, err := os.ReadFile(globalConfig); err == nil {
			if _, err := toml.Decode(string(data), cfg); err != nil {
				return nil, fmt.Errorf("parsing global config: %w", err)
			}
		}
	}

	projectConfig := filepath.Join(dir, ProjectFile)
	if data, err := os.ReadFile(projectConfig); err == nil {
		if _, err := toml.Decode(string(data), cfg); err != nil {
			return nil, fmt.Errorf("parsing project config: %w", err)
		}
	}

	return cfg, nil
}

// GlobalPath returns the user-level config path.
// Respects XDG_CONFIG_HOME if set, otherwise uses ~/.config.
func GlobalPath() (string, error) {
	configDir := os.Getenv("XDG_CONFIG_HOME")
	if configDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("getting home dir: %w", err)
		}
		configDir = filepath.Join(home, ".config")
	}
	return filepath.Join(configDir, "link-skills", "config.toml"), nil
}

// Validate checks that the configuration is valid.
func (c *Config) Validate() error {
	if c.Link.Target == "" {
		return skerrors.ConfigMissingField("link.target")
	}
	if c.Link.Source == "" && len(c.Link.Packages) == 0 {
		return skerrors.ConfigMissingField("link.packages")
	}
	switch c.Logging.Level {
	case LogLevelDebug, LogLevelInfo, LogLevelWarn, LogLevelError:
	default:
		return skerrors.ConfigInvalidValue("logging.level", c.Logging.Level, "must be debug, info, warn or error")
	}
	switch c.Logging.Format {
	case LogFormatJSON, LogFormatText:
	default:
		return skerrors.ConfigInvalidValue("logging.format", c.Logging.Format, "must be json or text")
	}
	return nil
}

// TargetDir returns the absolute target directory path.
func (c *Config) TargetDir(baseDir string) string {
	if filepath.IsAbs(c.Link.Target) {
		return c.Link.Target
	}
	return filepath.Join(baseDir, c.Link.Target)
}

// SourceDir returns the absolute explicit catalog root, or "" when unset.
func (c *Config) SourceDir(baseDir string) string {
	if c.Link.Source == "" || filepath.IsAbs(c.Link.Source) {
		return c.Link.Source
	}
	return filepath.Join(baseDir, c.Link.Source)
}

// LogFile returns the absolute log file path, or "" when file logging is off.
func (c *Config) LogFile(baseDir string) string {
	if c.Logging.File == "" || filepath.IsAbs(c.Logging.File) {
		return c.Logging.File
	}
	return filepath.Join(baseDir, c.Logging.File)
}
