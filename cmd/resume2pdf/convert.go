package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	resume2pdf "github.com/alnah/go-resume2pdf"
	"github.com/alnah/go-resume2pdf/internal/assets"
	"github.com/alnah/go-resume2pdf/internal/config"
	"github.com/alnah/go-resume2pdf/internal/hints"
	"github.com/alnah/go-resume2pdf/internal/pipeline"
)

// Sentinel errors for CLI operations.
var (
	ErrReadMarkdown = errors.New("failed to read markdown file")
	ErrWriteHTML    = errors.New("failed to write HTML file")
	ErrWriteCSS     = errors.New("failed to write stylesheet")
	ErrWritePDF     = errors.New("failed to write PDF file")
	ErrOutputDir    = errors.New("failed to create output directory")
)

// File permission constants.
const (
	dirPermissions  = 0o750 // rwxr-x---: owner full, group read+execute
	filePermissions = 0o644 // rw-r--r--: owner read+write, others read
)

// Converter is the interface for the conversion service.
type Converter interface {
	RenderHTML(ctx context.Context, input resume2pdf.Input) ([]byte, error)
	RenderPDF(ctx context.Context, html []byte, input resume2pdf.Input) ([]byte, error)
	CheckFile(ctx context.Context, path string) (*resume2pdf.CheckResult, error)
	Style() string
	Close() error
}

// Compile-time interface implementation check.
var _ Converter = (*resume2pdf.Converter)(nil)

// convertJob is a resolved conversion: paths plus library input.
type convertJob struct {
	inputPath string
	htmlPath  string
	pdfs      []pdfTarget
	writeCSS  bool
	input     resume2pdf.Input
}

// runConvert orchestrates the conversion process.
func runConvert(ctx context.Context, positionalArgs []string, flags *convertFlags, env *Environment) error {
	start := env.Now()
	warnUnknownEnvVars(env.Stderr)
	envCfg := loadEnvConfig()

	cfg, err := loadConfig(flags.common.config, envCfg.ConfigPath)
	if err != nil {
		return err
	}
	applyEnvConfig(envCfg, cfg)
	mergeFlags(flags, cfg)

	timeout, err := resolveTimeoutWithEnv(flags.common.timeout, envCfg.Timeout, cfg.Timeout)
	if err != nil {
		return err
	}
	settle, err := cfg.SettleDuration()
	if err != nil {
		return err
	}

	job, err := buildJob(positionalArgs, cfg, flags.output.htmlOnly)
	if err != nil {
		return err
	}

	markdown, err := os.ReadFile(job.inputPath) // #nosec G304 -- user-provided path
	if err != nil {
		return fmt.Errorf("%w: %w", ErrReadMarkdown, err)
	}
	job.input.Markdown = string(markdown)

	opts := converterOptions(cfg, timeout, settle)
	if logger := newLogger(flags.common.verbose, env.Stderr); logger != nil {
		opts = append(opts, resume2pdf.WithLogger(logger))
	}

	conv, err := env.NewConverter(opts...)
	if err != nil {
		return withHint(err)
	}
	defer func() {
		if cerr := conv.Close(); cerr != nil && flags.common.verbose {
			fmt.Fprintf(env.Stderr, "warning: closing browser: %v\n", cerr)
		}
	}()

	written, err := convertFile(ctx, conv, job)
	if err != nil {
		return err
	}

	if !flags.common.quiet {
		for _, path := range written {
			fmt.Fprintf(env.Stdout, "Created %s\n", path)
		}
		if flags.common.verbose {
			fmt.Fprintf(env.Stdout, "%s converted in %v\n", job.inputPath, env.Now().Sub(start).Round(time.Millisecond))
		}
	}
	return nil
}

// loadConfig loads the config named by the flag, else by the environment.
// No name means defaults.
func loadConfig(flagValue, envValue string) (*config.Config, error) {
	name := flagValue
	if name == "" {
		name = envValue
	}
	if name == "" {
		return config.DefaultConfig(), nil
	}

	cfg, err := config.LoadConfig(name)
	if err != nil {
		if errors.Is(err, config.ErrConfigNotFound) {
			return nil, fmt.Errorf("loading config: %w%s", err, hints.ForConfigNotFound(config.SearchPaths(name)))
		}
		return nil, fmt.Errorf("loading config: %w", err)
	}
	return cfg, nil
}

// buildJob resolves paths and page settings from the merged config.
func buildJob(args []string, cfg *config.Config, htmlOnly bool) (*convertJob, error) {
	inputPath, err := resolveInputPath(args, cfg)
	if err != nil {
		return nil, err
	}
	pdfPath, htmlPath := resolveOutputPaths(inputPath, cfg)

	page, err := buildPageSettings(cfg)
	if err != nil {
		return nil, err
	}

	return &convertJob{
		inputPath: inputPath,
		htmlPath:  htmlPath,
		pdfs:      pdfTargets(pdfPath, page, cfg.Output.AllPresets),
		writeCSS:  cfg.WriteCSS,
		input: resume2pdf.Input{
			Stylesheet: cfg.Stylesheet,
			InlineCSS:  cfg.InlineCSS,
			Subtitle:   cfg.Subtitle,
			BaseDir:    filepath.Dir(htmlPath),
			Page:       page,
			HTMLOnly:   htmlOnly,
		},
	}, nil
}

// convertFile renders the job and writes its outputs. Returns the written
// paths in order: HTML, stylesheet (when written), PDFs. The HTML is on
// disk before any PDF is printed, so a failed print still leaves it.
func convertFile(ctx context.Context, conv Converter, job *convertJob) ([]string, error) {
	// The HTML directory must exist before printing: the browser copy
	// resolves the stylesheet against it.
	if err := os.MkdirAll(job.input.BaseDir, dirPermissions); err != nil {
		return nil, fmt.Errorf("%w: %w%s", ErrOutputDir, err, hints.ForOutputDirectory())
	}

	htmlContent, err := conv.RenderHTML(ctx, job.input)
	if err != nil {
		return nil, withHint(err)
	}

	var written []string

	// #nosec G306 -- HTML is meant to be readable
	if err := os.WriteFile(job.htmlPath, htmlContent, filePermissions); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrWriteHTML, err)
	}
	written = append(written, job.htmlPath)

	if job.writeCSS {
		paths, err := writeMissingStylesheets(string(htmlContent), job.input.BaseDir, conv.Style())
		if err != nil {
			return written, err
		}
		written = append(written, paths...)
	}

	if job.input.HTMLOnly {
		return written, nil
	}

	for _, target := range job.pdfs {
		if err := os.MkdirAll(filepath.Dir(target.path), dirPermissions); err != nil {
			return written, fmt.Errorf("%w: %w%s", ErrOutputDir, err, hints.ForOutputDirectory())
		}

		input := job.input
		input.Page = target.page
		pdf, err := conv.RenderPDF(ctx, htmlContent, input)
		if err != nil {
			return written, withHint(err)
		}

		// #nosec G306 -- PDFs are meant to be readable
		if err := os.WriteFile(target.path, pdf, filePermissions); err != nil {
			return written, fmt.Errorf("%w: %w", ErrWritePDF, err)
		}
		written = append(written, target.path)
	}

	return written, nil
}

// writeMissingStylesheets writes css to every local stylesheet the document
// links that does not exist under dir. Existing files and references
// outside dir are left alone.
func writeMissingStylesheets(document, dir, css string) ([]string, error) {
	paths, err := pipeline.LocalStylesheets(document, dir)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrWriteCSS, err)
	}

	var written []string
	for _, p := range paths {
		if rel, err := filepath.Rel(dir, p); err != nil || strings.HasPrefix(rel, "..") {
			continue
		}
		if _, err := os.Stat(p); err == nil {
			continue
		}
		if err := os.MkdirAll(filepath.Dir(p), dirPermissions); err != nil {
			return written, fmt.Errorf("%w: %w", ErrWriteCSS, err)
		}
		// #nosec G306 -- stylesheets are meant to be readable
		if err := os.WriteFile(p, []byte(css), filePermissions); err != nil {
			return written, fmt.Errorf("%w: %w", ErrWriteCSS, err)
		}
		written = append(written, p)
	}
	return written, nil
}

// withHint appends an actionable hint for known library errors.
func withHint(err error) error {
	var hint string
	switch {
	case errors.Is(err, resume2pdf.ErrBrowserConnect):
		hint = hints.ForBrowserConnect()
	case errors.Is(err, resume2pdf.ErrPageLoad), errors.Is(err, context.DeadlineExceeded):
		hint = hints.ForTimeout()
	case errors.Is(err, resume2pdf.ErrStyleNotFound):
		hint = hints.ForStyleNotFound(assets.StyleNames())
	case errors.Is(err, resume2pdf.ErrEmptyMarkdown):
		hint = hints.ForEmptyResume()
	}
	if hint == "" {
		return err
	}
	return fmt.Errorf("%w%s", err, hint)
}

// newLogger returns a debug-level logger on w when verbose, else nil.
func newLogger(verbose bool, w io.Writer) *slog.Logger {
	if !verbose {
		return nil
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelDebug}))
}
