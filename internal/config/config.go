// Package config loads the résumé converter's YAML configuration file.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/goccy/go-yaml"

	"github.com/alnah/go-resume2pdf/internal/fileutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
	ErrConfigTooLarge  = errors.New("config file exceeds maximum size")
	ErrFieldTooLong    = errors.New("field exceeds maximum length")
	ErrInvalidDuration = errors.New("invalid duration")
	ErrInvalidNumber   = errors.New("invalid number")
)

// MaxConfigSize limits config input to prevent memory exhaustion (1MB).
const MaxConfigSize = 1 << 20

// Field length limits.
const (
	MaxPathLength     = 4096 // PATH_MAX on Linux
	MaxStyleLength    = 4096 // name or path
	MaxSubtitleLength = 200
	MaxPresetLength   = 20
	MaxDurationLength = 20 // "1m30s"
)

// userConfigDirName is the directory under os.UserConfigDir searched for named configs.
const userConfigDirName = "go-resume2pdf"

// Config holds the options of one résumé conversion.
type Config struct {
	Input       string       `yaml:"input"`       // markdown file (default: resume.md)
	Output      OutputConfig `yaml:"output"`      // generated files
	Style       string       `yaml:"style"`       // style name, CSS file path (empty = embedded résumé style)
	Stylesheet  string       `yaml:"stylesheet"`  // href written into the HTML (default: resume.css)
	InlineCSS   bool         `yaml:"inlineCSS"`   // embed the style in the HTML
	WriteCSS    bool         `yaml:"writeCSS"`    // write the stylesheet next to the HTML when missing
	Subtitle    string       `yaml:"subtitle"`    // overrides the summary-derived subtitle
	Assets      AssetsConfig `yaml:"assets"`      // asset overrides
	Page        PageConfig   `yaml:"page"`        // PDF page layout
	Timeout     string       `yaml:"timeout"`     // page load timeout, Go duration (default: 30s)
	SettleDelay string       `yaml:"settleDelay"` // pause before printing, Go duration (default: 1s)
}

// OutputConfig defines output file locations.
type OutputConfig struct {
	PDF        string `yaml:"pdf"`        // empty = <input>.pdf
	HTML       string `yaml:"html"`       // empty = <pdf>.html
	AllPresets bool   `yaml:"allPresets"` // also write <pdf>-print.pdf and <pdf>-compact.pdf
}

// AssetsConfig defines asset loading options.
type AssetsConfig struct {
	BasePath string `yaml:"basePath"` // Empty = use embedded assets
}

// PageConfig defines PDF page settings. Zero values keep the preset's.
type PageConfig struct {
	Preset string  `yaml:"preset"` // "default", "print", "screen", "compact"
	Margin float64 `yaml:"margin"` // inches, all sides
	Scale  float64 `yaml:"scale"`
}

// Validate checks field lengths, durations and number signs.
// Preset names and margin/scale bounds are checked by the converter.
func (c *Config) Validate() error {
	fields := []struct {
		name  string
		value string
		max   int
	}{
		{"input", c.Input, MaxPathLength},
		{"output.pdf", c.Output.PDF, MaxPathLength},
		{"output.html", c.Output.HTML, MaxPathLength},
		{"style", c.Style, MaxStyleLength},
		{"stylesheet", c.Stylesheet, MaxPathLength},
		{"subtitle", c.Subtitle, MaxSubtitleLength},
		{"assets.basePath", c.Assets.BasePath, MaxPathLength},
		{"page.preset", c.Page.Preset, MaxPresetLength},
		{"timeout", c.Timeout, MaxDurationLength},
		{"settleDelay", c.SettleDelay, MaxDurationLength},
	}
	for _, f := range fields {
		if err := validateFieldLength(f.name, f.value, f.max); err != nil {
			return err
		}
	}

	if _, err := c.TimeoutDuration(); err != nil {
		return err
	}
	if _, err := c.SettleDuration(); err != nil {
		return err
	}

	if c.Page.Margin < 0 {
		return fmt.Errorf("%w: page.margin must not be negative, got %.2f", ErrInvalidNumber, c.Page.Margin)
	}
	if c.Page.Scale < 0 {
		return fmt.Errorf("%w: page.scale must not be negative, got %.2f", ErrInvalidNumber, c.Page.Scale)
	}

	return nil
}

// TimeoutDuration parses Timeout. Empty means 0 (use the default).
func (c *Config) TimeoutDuration() (time.Duration, error) {
	return parseDuration("timeout", c.Timeout)
}

// SettleDuration parses SettleDelay. Empty means -1 (use the default),
// since "0s" is a valid setting that disables the delay.
func (c *Config) SettleDuration() (time.Duration, error) {
	if c.SettleDelay == "" {
		return -1, nil
	}
	return parseDuration("settleDelay", c.SettleDelay)
}

func parseDuration(field, s string) (time.Duration, error) {
	if s == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, fmt.Errorf("%w: %s: %q", ErrInvalidDuration, field, s)
	}
	if d < 0 {
		return 0, fmt.Errorf("%w: %s must not be negative: %q", ErrInvalidDuration, field, s)
	}
	return d, nil
}

// validateFieldLength checks if a field exceeds its maximum allowed length.
func validateFieldLength(fieldName, value string, maxLength int) error {
	if len(value) > maxLength {
		return fmt.Errorf("%w: %s (%d chars, max %d)", ErrFieldTooLong, fieldName, len(value), maxLength)
	}
	return nil
}

// DefaultConfig returns a configuration where every field falls back to the
// converter defaults.
func DefaultConfig() *Config {
	return &Config{}
}

// LoadConfig loads configuration from a file path or config name.
// If nameOrPath contains a path separator, it's treated as a file path.
// Otherwise, it's treated as a config name and searched in standard locations.
// Returns error if the file is not found (no silent fallback).
func LoadConfig(nameOrPath string) (*Config, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	var configPath string
	var err error

	if fileutil.IsFilePath(nameOrPath) {
		configPath = nameOrPath
	} else {
		configPath, err = resolveConfigPath(nameOrPath)
		if err != nil {
			return nil, err
		}
	}

	data, err := os.ReadFile(configPath) // #nosec G304 -- config path is user-provided
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg, err := Decode(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", configPath, err)
	}
	return cfg, nil
}

// Decode parses and validates YAML config data. Unknown keys are rejected.
func Decode(data []byte) (*Config, error) {
	if len(data) > MaxConfigSize {
		return nil, fmt.Errorf("%w: %d bytes (max %d)", ErrConfigTooLarge, len(data), MaxConfigSize)
	}

	cfg := DefaultConfig()
	if len(strings.TrimSpace(string(data))) == 0 {
		return cfg, nil
	}

	if err := yaml.UnmarshalWithOptions(data, cfg, yaml.Strict()); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// resolveConfigPath searches for a config file by name in standard locations.
// Tries extensions in order: .yaml, .yml
// Tries locations in order: current directory, ~/.config/go-resume2pdf/
func resolveConfigPath(name string) (string, error) {
	paths := SearchPaths(name)
	for _, p := range paths {
		if fileutil.FileExists(p) {
			return p, nil
		}
	}
	return "", fmt.Errorf("%w: tried %s", ErrConfigNotFound, strings.Join(paths, ", "))
}

// SearchPaths lists the files LoadConfig tries for a config name, in order.
func SearchPaths(name string) []string {
	extensions := []string{".yaml", ".yml"}
	paths := make([]string, 0, len(extensions)*2) // 2 locations

	for _, ext := range extensions {
		paths = append(paths, name+ext)
	}

	if dir, err := os.UserConfigDir(); err == nil {
		for _, ext := range extensions {
			paths = append(paths, filepath.Join(dir, userConfigDirName, name+ext))
		}
	}
	return paths
}
