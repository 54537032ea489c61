package main

import (
	"context"
	"errors"
	"fmt"

	resume2pdf "github.com/alnah/go-resume2pdf"
	"github.com/alnah/go-resume2pdf/internal/fileutil"
)

// Sentinel errors for the check command.
var (
	ErrNoHTMLInput = errors.New("no HTML file specified")
	ErrReadHTML    = errors.New("failed to read HTML file")
	ErrCheckFailed = errors.New("page reported errors")
)

// runCheck loads a generated HTML file in the browser and prints the console
// errors and uncaught exceptions it reports.
func runCheck(ctx context.Context, positionalArgs []string, flags *checkFlags, env *Environment) error {
	if len(positionalArgs) == 0 {
		return ErrNoHTMLInput
	}
	if len(positionalArgs) > 1 {
		return fmt.Errorf("%w: expected one HTML file, got %d", ErrTooManyArgs, len(positionalArgs))
	}
	path := positionalArgs[0]
	if !fileutil.FileExists(path) {
		return fmt.Errorf("%w: %s", ErrReadHTML, path)
	}

	warnUnknownEnvVars(env.Stderr)
	envCfg := loadEnvConfig()
	cfg, err := loadConfig(flags.common.config, envCfg.ConfigPath)
	if err != nil {
		return err
	}
	timeout, err := resolveTimeoutWithEnv(flags.common.timeout, envCfg.Timeout, cfg.Timeout)
	if err != nil {
		return err
	}

	opts := converterOptions(cfg, timeout, -1)
	if logger := newLogger(flags.common.verbose, env.Stderr); logger != nil {
		opts = append(opts, resume2pdf.WithLogger(logger))
	}
	conv, err := env.NewConverter(opts...)
	if err != nil {
		return withHint(err)
	}
	defer func() { _ = conv.Close() }()

	result, err := conv.CheckFile(ctx, path)
	if err != nil {
		return withHint(err)
	}

	for _, msg := range result.ConsoleErrors {
		fmt.Fprintf(env.Stdout, "console error: %s\n", msg)
	}
	for _, msg := range result.Exceptions {
		fmt.Fprintf(env.Stdout, "exception: %s\n", msg)
	}

	if !result.OK() {
		return fmt.Errorf("%w: %d console error(s), %d exception(s)", ErrCheckFailed, len(result.ConsoleErrors), len(result.Exceptions))
	}
	if !flags.common.quiet {
		fmt.Fprintf(env.Stdout, "OK %s\n", path)
	}
	return nil
}
