package resume2pdf

import (
	"log/slog"
	"time"
)

// Default browser timings.
const (
	defaultTimeout     = 30 * time.Second
	defaultSettleDelay = time.Second
)

// Option configures a Converter.
type Option func(*Converter)

// converterConfig holds converter configuration.
type converterConfig struct {
	timeout       time.Duration
	settleDelay   time.Duration
	assetPath     string
	styleInput    string // name, file path, or CSS content
	resolvedStyle string // CSS content after resolution
	logger        *slog.Logger
}

// WithTimeout sets the page load timeout. A context deadline that expires
// sooner wins. Non-positive values are ignored.
func WithTimeout(d time.Duration) Option {
	return func(c *Converter) {
		if d > 0 {
			c.cfg.timeout = d
		}
	}
}

// WithSettleDelay sets the pause between page load and printing, for fonts
// and late layout. Zero disables it; negative values are ignored.
func WithSettleDelay(d time.Duration) Option {
	return func(c *Converter) {
		if d >= 0 {
			c.cfg.settleDelay = d
		}
	}
}

// WithAssetPath sets a directory whose styles/ and templates/ override the
// embedded assets. Missing files fall back to the embedded ones.
func WithAssetPath(path string) Option {
	return func(c *Converter) {
		c.cfg.assetPath = path
	}
}

// WithStyle selects the résumé stylesheet:
//   - a name ("resume") loaded from the asset loader
//   - a file path ("./custom.css")
//   - CSS content (anything containing "{")
func WithStyle(style string) Option {
	return func(c *Converter) {
		c.cfg.styleInput = style
	}
}

// WithLogger sets the logger for conversion steps. Nil is ignored.
// By default nothing is logged.
func WithLogger(l *slog.Logger) Option {
	return func(c *Converter) {
		if l != nil {
			c.cfg.logger = l
		}
	}
}
