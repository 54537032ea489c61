package main

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/alnah/go-resume2pdf/internal/config"
)

// envPrefix marks the environment variables read by the CLI.
const envPrefix = "RESUME2PDF_"

// envConfig holds configuration from environment variables.
// Provides CI/CD-friendly overrides without requiring YAML files.
type envConfig struct {
	ConfigPath string        // RESUME2PDF_CONFIG: config file name or path
	Style      string        // RESUME2PDF_STYLE: CSS style name or path
	Timeout    time.Duration // RESUME2PDF_TIMEOUT: page load timeout
	Preset     string        // RESUME2PDF_PRESET: page preset
	Output     string        // RESUME2PDF_OUTPUT: PDF output path
}

// knownEnvVars lists valid RESUME2PDF_* environment variables.
// Used to detect typos and warn users about unknown variables.
var knownEnvVars = map[string]bool{
	"RESUME2PDF_CONFIG":    true,
	"RESUME2PDF_STYLE":     true,
	"RESUME2PDF_TIMEOUT":   true,
	"RESUME2PDF_PRESET":    true,
	"RESUME2PDF_OUTPUT":    true,
	"RESUME2PDF_CONTAINER": true, // read by doctor
}

// loadEnvConfig reads configuration from environment variables.
// An invalid or non-positive timeout is ignored.
func loadEnvConfig() *envConfig {
	cfg := &envConfig{
		ConfigPath: os.Getenv("RESUME2PDF_CONFIG"),
		Style:      os.Getenv("RESUME2PDF_STYLE"),
		Preset:     os.Getenv("RESUME2PDF_PRESET"),
		Output:     os.Getenv("RESUME2PDF_OUTPUT"),
	}

	if timeout := os.Getenv("RESUME2PDF_TIMEOUT"); timeout != "" {
		if d, err := time.ParseDuration(timeout); err == nil && d > 0 {
			cfg.Timeout = d
		}
	}

	return cfg
}

// warnUnknownEnvVars logs warnings for unrecognized RESUME2PDF_* variables,
// sorted by name.
func warnUnknownEnvVars(w io.Writer) {
	var unknown []string
	for _, env := range os.Environ() {
		if !strings.HasPrefix(env, envPrefix) {
			continue
		}
		name, _, _ := strings.Cut(env, "=")
		if !knownEnvVars[name] {
			unknown = append(unknown, name)
		}
	}

	sort.Strings(unknown)
	for _, name := range unknown {
		fmt.Fprintf(w, "warning: unknown environment variable %s (typo?)\n", name)
	}
}

// applyEnvConfig applies environment variable values over the config file.
// Priority: CLI flags > env vars > config file > defaults
// (CLI flags are applied later via mergeFlags; the timeout is resolved
// separately in resolveTimeout).
func applyEnvConfig(env *envConfig, cfg *config.Config) {
	if env.Style != "" {
		cfg.Style = env.Style
	}
	if env.Preset != "" {
		cfg.Page.Preset = env.Preset
	}
	if env.Output != "" {
		cfg.Output.PDF = env.Output
	}
}
