package config

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/Ning0612/Photostamp/internal/core/offset"
	"github.com/Ning0612/Photostamp/internal/domain"
	"github.com/Ning0612/Photostamp/internal/logger"
)

// Config represents the complete configuration for photostamp.
// Every field has a command-line flag; the file only supplies defaults.
type Config struct {
	// TimeDiff is the offset string, [+-]SECONDS or [+-][HH:]MM:SS
	TimeDiff string `mapstructure:"time_diff"`

	// DryRun reports renames without performing them
	DryRun bool `mapstructure:"dryrun"`

	// MTime uses modification time instead of creation time
	MTime bool `mapstructure:"mtime"`

	// Journal configures the optional rename journal
	Journal JournalConfig `mapstructure:"journal"`

	// Logging configures structured logging
	Logging LoggingConfig `mapstructure:"logging"`
}

// JournalConfig configures the sqlite rename journal
type JournalConfig struct {
	// Path of the journal database; empty disables journaling
	Path string `mapstructure:"path"`
}

// LoggingConfig configures structured logging.
// Logging is off unless Verbose is set or File is given.
type LoggingConfig struct {
	Verbose    bool   `mapstructure:"verbose"`
	Level      string `mapstructure:"level"`
	Format     string `mapstructure:"format"`
	File       string `mapstructure:"file"`
	MaxSizeMB  int    `mapstructure:"max_size_mb"`
	MaxAgeDays int    `mapstructure:"max_age_days"`
	MaxBackups int    `mapstructure:"max_backups"`
	Compress   bool   `mapstructure:"compress"`
	MaskHome   bool   `mapstructure:"mask_home"`
}

// Default returns the configuration used when no file is found
func Default() *Config {
	return &Config{
		Logging: LoggingConfig{
			Level:      "info",
			Format:     "text",
			MaxSizeMB:  10,
			MaxAgeDays: 30,
			MaxBackups: 3,
			MaskHome:   true,
		},
	}
}

// Validate checks if the configuration is complete and consistent
func (c *Config) Validate() error {
	if c.Logging.Level != "" && !logger.ValidLevel(c.Logging.Level) {
		return fmt.Errorf("%w: unknown log level: %s", domain.ErrConfigInvalid, c.Logging.Level)
	}
	if c.Logging.Format != "" && !logger.ValidFormat(c.Logging.Format) {
		return fmt.Errorf("%w: unknown log format: %s", domain.ErrConfigInvalid, c.Logging.Format)
	}
	if c.Logging.MaxSizeMB < 0 || c.Logging.MaxAgeDays < 0 || c.Logging.MaxBackups < 0 {
		return fmt.Errorf("%w: log rotation values cannot be negative", domain.ErrConfigInvalid)
	}
	return nil
}

// OffsetSeconds parses TimeDiff. Only the rename command needs it, so it is
// not part of Validate.
func (c *Config) OffsetSeconds() (int64, error) {
	secs, err := offset.Parse(c.TimeDiff)
	if err != nil {
		return 0, fmt.Errorf("%w: time_diff: %w", domain.ErrConfigInvalid, err)
	}
	return secs, nil
}

// TimeSource returns the timestamp source selected by MTime
func (c *Config) TimeSource() domain.TimeSource {
	if c.MTime {
		return domain.TimeSourceModification
	}
	return domain.TimeSourceCreation
}

// LoggingEnabled reports whether structured logging should be initialized
func (c *Config) LoggingEnabled() bool {
	return c.Logging.Verbose || c.Logging.File != ""
}

// LoggerConfig converts the logging section to a logger.Config.
// Verbose logs at debug level to stderr; File adds a rotating file.
func (c *Config) LoggerConfig(stderr io.Writer) logger.Config {
	lc := logger.Config{
		Level:    logger.ParseLevel(c.Logging.Level),
		Format:   logger.ParseFormat(c.Logging.Format),
		MaskHome: c.Logging.MaskHome,
		File: logger.FileConfig{
			Path:       ExpandPath(c.Logging.File),
			MaxSizeMB:  c.Logging.MaxSizeMB,
			MaxAgeDays: c.Logging.MaxAgeDays,
			MaxBackups: c.Logging.MaxBackups,
			Compress:   c.Logging.Compress,
		},
	}
	if c.Logging.Verbose {
		lc.Level = logger.LevelDebug
		lc.Outputs = append(lc.Outputs, logger.OutputConfig{Type: logger.OutputStderr, Writer: stderr})
	}
	if c.Logging.File != "" {
		lc.Outputs = append(lc.Outputs, logger.OutputConfig{Type: logger.OutputFile})
	}
	return lc
}

// JournalPath returns the expanded journal path, or "" when disabled
func (c *Config) JournalPath() string {
	if c.Journal.Path == "" {
		return ""
	}
	return ExpandPath(c.Journal.Path)
}

// ExpandPath expands ~ and environment variables in a path
func ExpandPath(path string) string {
	if path == "" {
		return ""
	}
	// Expand ~ to home directory
	if path[0] == '~' {
		home, err := os.UserHomeDir()
		if err == nil {
			if len(path) > 1 && (path[1] == '/' || path[1] == filepath.Separator) {
				path = filepath.Join(home, path[2:])
			} else if len(path) == 1 {
				path = home
			}
		}
	}
	path = os.ExpandEnv(path)
	return filepath.Clean(path)
}
