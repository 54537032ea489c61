package main

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	resume2pdf "github.com/alnah/go-resume2pdf"
	"github.com/alnah/go-resume2pdf/internal/config"
	"github.com/alnah/go-resume2pdf/internal/fileutil"
	"github.com/alnah/go-resume2pdf/internal/hints"
)

// defaultInput is converted when neither the command line nor the config names a file.
const defaultInput = "resume.md"

// Sentinel errors for argument resolution.
var (
	ErrTooManyArgs      = errors.New("too many arguments")
	ErrInvalidExtension = errors.New("file must have .md or .markdown extension")
	ErrInvalidTimeout   = errors.New("invalid timeout")
)

// mergeFlags merges CLI flags into config. CLI values override config values.
func mergeFlags(flags *convertFlags, cfg *config.Config) {
	if flags.output.pdf != "" {
		cfg.Output.PDF = flags.output.pdf
	}
	if flags.output.html != "" {
		cfg.Output.HTML = flags.output.html
	}
	if flags.output.allPresets {
		cfg.Output.AllPresets = true
	}

	if flags.style.style != "" {
		cfg.Style = flags.style.style
	}
	if flags.style.stylesheet != "" {
		cfg.Stylesheet = flags.style.stylesheet
	}
	if flags.style.assetPath != "" {
		cfg.Assets.BasePath = flags.style.assetPath
	}
	if flags.style.inlineCSS {
		cfg.InlineCSS = true
	}
	if flags.style.writeCSS {
		cfg.WriteCSS = true
	}

	if flags.subtitle != "" {
		cfg.Subtitle = flags.subtitle
	}

	if flags.page.preset != "" {
		cfg.Page.Preset = flags.page.preset
	}
	if flags.page.margin != 0 {
		cfg.Page.Margin = flags.page.margin
	}
	if flags.page.scale != 0 {
		cfg.Page.Scale = flags.page.scale
	}

	if flags.settle != "" {
		cfg.SettleDelay = flags.settle
	}
}

// resolveInputPath determines the markdown file from args, config, or the default.
func resolveInputPath(args []string, cfg *config.Config) (string, error) {
	if len(args) > 1 {
		return "", fmt.Errorf("%w: expected one input file, got %d", ErrTooManyArgs, len(args))
	}

	path := defaultInput
	switch {
	case len(args) == 1:
		path = args[0]
	case cfg.Input != "":
		path = cfg.Input
	}

	if err := validateMarkdownExtension(path); err != nil {
		return "", err
	}
	return path, nil
}

// validateMarkdownExtension checks that the file has a .md or .markdown extension.
func validateMarkdownExtension(path string) error {
	if !looksLikeMarkdown(path) {
		return fmt.Errorf("%w: got %q", ErrInvalidExtension, filepath.Ext(path))
	}
	return nil
}

// resolveOutputPaths returns the PDF and HTML paths for inputPath.
// Without overrides both sit next to the input. A PDF output not ending in
// .pdf is a directory. The HTML defaults to the PDF path with .html.
func resolveOutputPaths(inputPath string, cfg *config.Config) (pdfPath, htmlPath string) {
	base := strings.TrimSuffix(filepath.Base(inputPath), filepath.Ext(inputPath))

	switch out := cfg.Output.PDF; {
	case out == "":
		pdfPath = filepath.Join(filepath.Dir(inputPath), base+".pdf")
	case strings.EqualFold(filepath.Ext(out), ".pdf"):
		pdfPath = out
	default:
		pdfPath = filepath.Join(out, base+".pdf")
	}

	htmlPath = cfg.Output.HTML
	if htmlPath == "" {
		htmlPath = fileutil.ReplaceExt(pdfPath, ".html")
	}
	return pdfPath, htmlPath
}

// pdfTarget is one PDF to print from the rendered HTML.
type pdfTarget struct {
	path string
	page *resume2pdf.PageSettings
}

// presetVariants are the files of an all-presets run, as suffixes of the
// PDF path.
var presetVariants = []struct{ suffix, preset string }{
	{"", resume2pdf.PresetDefault},
	{"-print", resume2pdf.PresetPrint},
	{"-compact", resume2pdf.PresetCompact},
}

// pdfTargets lists the PDFs to print. An all-presets run prints one file
// per preset variant and ignores the page settings.
func pdfTargets(pdfPath string, page *resume2pdf.PageSettings, allPresets bool) []pdfTarget {
	if !allPresets {
		return []pdfTarget{{path: pdfPath, page: page}}
	}

	base := strings.TrimSuffix(pdfPath, filepath.Ext(pdfPath))
	targets := make([]pdfTarget, 0, len(presetVariants))
	for _, v := range presetVariants {
		targets = append(targets, pdfTarget{
			path: base + v.suffix + ".pdf",
			page: &resume2pdf.PageSettings{Preset: v.preset},
		})
	}
	return targets
}

// buildPageSettings creates resume2pdf.PageSettings from config.
// Returns nil when nothing is set, which selects the default preset.
func buildPageSettings(cfg *config.Config) (*resume2pdf.PageSettings, error) {
	if cfg.Page.Preset == "" && cfg.Page.Margin == 0 && cfg.Page.Scale == 0 {
		return nil, nil
	}

	ps := &resume2pdf.PageSettings{
		Preset: cfg.Page.Preset,
		Margin: cfg.Page.Margin,
		Scale:  cfg.Page.Scale,
	}
	if err := ps.Validate(); err != nil {
		return nil, fmt.Errorf("%w%s", err, hints.ForPageSettings(resume2pdf.PresetNames()))
	}
	return ps, nil
}

// resolveTimeoutWithEnv picks the page load timeout.
// Priority: flag > env > config. 0 means the library default.
func resolveTimeoutWithEnv(flagValue string, envValue time.Duration, configValue string) (time.Duration, error) {
	if flagValue != "" {
		d, err := time.ParseDuration(flagValue)
		if err != nil {
			return 0, fmt.Errorf("%w: %q (use e.g. 30s, 2m)", ErrInvalidTimeout, flagValue)
		}
		if d <= 0 {
			return 0, fmt.Errorf("%w: must be positive, got %s", ErrInvalidTimeout, flagValue)
		}
		return d, nil
	}

	if envValue > 0 {
		return envValue, nil
	}

	cfg := config.Config{Timeout: configValue}
	d, err := cfg.TimeoutDuration()
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrInvalidTimeout, err)
	}
	return d, nil
}

// converterOptions translates the merged config into library options.
// A zero timeout and a negative settle delay keep the library defaults.
func converterOptions(cfg *config.Config, timeout, settle time.Duration) []resume2pdf.Option {
	var opts []resume2pdf.Option
	if timeout > 0 {
		opts = append(opts, resume2pdf.WithTimeout(timeout))
	}
	if settle >= 0 {
		opts = append(opts, resume2pdf.WithSettleDelay(settle))
	}
	if cfg.Style != "" {
		opts = append(opts, resume2pdf.WithStyle(cfg.Style))
	}
	if cfg.Assets.BasePath != "" {
		opts = append(opts, resume2pdf.WithAssetPath(cfg.Assets.BasePath))
	}
	return opts
}
