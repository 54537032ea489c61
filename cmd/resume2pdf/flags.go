package main

import (
	"errors"
	"fmt"
	"io"

	flag "github.com/spf13/pflag"
)

// ErrInvalidFlags wraps flag parsing failures so they map to ExitUsage.
var ErrInvalidFlags = errors.New("invalid flags")

// commonFlags holds flags shared across commands.
type commonFlags struct {
	config  string
	timeout string
	quiet   bool
	verbose bool
}

// pageFlags holds page layout flags. Zero values mean unset.
type pageFlags struct {
	preset string
	margin float64
	scale  float64
}

// styleFlags holds styling flags.
type styleFlags struct {
	style      string // name, CSS file path
	stylesheet string // href written into the HTML
	assetPath  string // override asset directory
	inlineCSS  bool
	writeCSS   bool
}

// outputFlags holds output location flags.
type outputFlags struct {
	pdf        string
	html       string
	htmlOnly   bool
	allPresets bool
}

// convertFlags holds all flags for the convert command.
type convertFlags struct {
	common   commonFlags
	output   outputFlags
	page     pageFlags
	style    styleFlags
	subtitle string
	settle   string
}

// checkFlags holds flags for the check command.
type checkFlags struct {
	common commonFlags
}

// addCommonFlags adds common flags to a FlagSet.
func addCommonFlags(fs *flag.FlagSet, f *commonFlags) {
	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.StringVarP(&f.timeout, "timeout", "t", "", "page load timeout (e.g., 30s, 2m)")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "show timings and debug logs")
}

// addOutputFlags adds output location flags to a FlagSet.
func addOutputFlags(fs *flag.FlagSet, f *outputFlags) {
	fs.StringVarP(&f.pdf, "output", "o", "", "PDF output path (default: <input>.pdf)")
	fs.StringVar(&f.html, "html-out", "", "HTML output path (default: next to the PDF)")
	fs.BoolVar(&f.htmlOnly, "html-only", false, "write HTML only, skip PDF")
	fs.BoolVar(&f.allPresets, "all-presets", false, "write default, -print and -compact PDFs")
}

// addPageFlags adds page layout flags to a FlagSet.
func addPageFlags(fs *flag.FlagSet, f *pageFlags) {
	fs.StringVarP(&f.preset, "preset", "p", "", "page preset: default, print, screen, compact")
	fs.Float64Var(&f.margin, "margin", 0, "page margin in inches (0.25-3.0)")
	fs.Float64Var(&f.scale, "scale", 0, "print scale (0.1-2.0)")
}

// addStyleFlags adds styling flags to a FlagSet.
func addStyleFlags(fs *flag.FlagSet, f *styleFlags) {
	fs.StringVar(&f.style, "style", "", "CSS style name or file path")
	fs.StringVar(&f.stylesheet, "stylesheet", "", "stylesheet href written into the HTML (default: resume.css)")
	fs.StringVar(&f.assetPath, "asset-path", "", "custom asset directory")
	fs.BoolVar(&f.inlineCSS, "inline-css", false, "embed the style in the HTML")
	fs.BoolVar(&f.writeCSS, "write-css", false, "write the stylesheet next to the HTML when missing")
}

// parseConvertFlags parses convert command flags and returns positional args.
func parseConvertFlags(args []string, stderr io.Writer) (*convertFlags, []string, error) {
	fs := flag.NewFlagSet("convert", flag.ContinueOnError)
	f := &convertFlags{}

	addCommonFlags(fs, &f.common)
	addOutputFlags(fs, &f.output)
	addPageFlags(fs, &f.page)
	addStyleFlags(fs, &f.style)
	fs.StringVar(&f.subtitle, "subtitle", "", "subtitle under the name (default: from summary)")
	fs.StringVar(&f.settle, "settle", "", "pause before printing (e.g., 1s, 0s)")

	if err := parse(fs, args, stderr, printConvertUsage); err != nil {
		return nil, nil, err
	}
	return f, fs.Args(), nil
}

// parseCheckFlags parses check command flags and returns positional args.
func parseCheckFlags(args []string, stderr io.Writer) (*checkFlags, []string, error) {
	fs := flag.NewFlagSet("check", flag.ContinueOnError)
	f := &checkFlags{}

	addCommonFlags(fs, &f.common)

	if err := parse(fs, args, stderr, printCheckUsage); err != nil {
		return nil, nil, err
	}
	return f, fs.Args(), nil
}

// parse runs fs.Parse, printing usage to stderr for --help. Parse errors
// are returned for the caller to print.
func parse(fs *flag.FlagSet, args []string, stderr io.Writer, usage func(io.Writer)) error {
	fs.SetOutput(io.Discard)
	fs.Usage = func() { usage(stderr) }

	err := fs.Parse(args)
	if err == nil || errors.Is(err, flag.ErrHelp) {
		return err
	}
	return fmt.Errorf("%w: %v", ErrInvalidFlags, err)
}
