package main

// Notes:
// - runConvert is tested end to end against a mock converter in t.TempDir():
//   output files, the Input handed to the library, and error mapping.
// - Env-dependent behavior lives in env_config_test.go.

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	resume2pdf "github.com/alnah/go-resume2pdf"
)

// runConvertArgs parses args like the CLI and runs the convert command.
func runConvertArgs(t *testing.T, env *Environment, args ...string) error {
	t.Helper()

	flags, positional, err := parseConvertFlags(args, env.Stderr)
	if err != nil {
		t.Fatalf("parseConvertFlags(%v) error = %v", args, err)
	}
	return runConvert(context.Background(), positional, flags, env)
}

// ---------------------------------------------------------------------------
// TestRunConvert - Output files
// ---------------------------------------------------------------------------

func TestRunConvert_WritesHTMLAndPDF(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	input := writeFile(t, dir, "resume.md", testResume)

	mock := newMockConverter()
	env, stdout, _ := newTestEnv(mock)

	if err := runConvertArgs(t, env, input); err != nil {
		t.Fatalf("runConvert() error = %v", err)
	}

	html, err := os.ReadFile(filepath.Join(dir, "resume.html"))
	if err != nil || string(html) != mockHTML {
		t.Errorf("resume.html = %q, %v", html, err)
	}
	pdf, err := os.ReadFile(filepath.Join(dir, "resume.pdf"))
	if err != nil || !strings.HasPrefix(string(pdf), "%PDF") {
		t.Errorf("resume.pdf = %q, %v", pdf, err)
	}
	if _, err := os.Stat(filepath.Join(dir, "resume.css")); !os.IsNotExist(err) {
		t.Error("resume.css should not be written without --write-css")
	}

	if mock.input.Markdown != testResume {
		t.Error("converter should receive the file content")
	}
	if mock.input.BaseDir != dir {
		t.Errorf("BaseDir = %q, want %q", mock.input.BaseDir, dir)
	}
	if mock.input.Page != nil {
		t.Errorf("Page = %+v, want nil (default preset)", mock.input.Page)
	}
	if !mock.closed {
		t.Error("converter should be closed")
	}

	out := stdout.String()
	if !strings.Contains(out, "Created "+filepath.Join(dir, "resume.html")) ||
		!strings.Contains(out, "Created "+filepath.Join(dir, "resume.pdf")) {
		t.Errorf("stdout = %q, want both created paths", out)
	}
}

func TestRunConvert_HTMLOnly(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	input := writeFile(t, dir, "cv.md", testResume)

	mock := newMockConverter()
	env, _, _ := newTestEnv(mock)

	if err := runConvertArgs(t, env, input, "--html-only"); err != nil {
		t.Fatalf("runConvert() error = %v", err)
	}

	if !mock.input.HTMLOnly {
		t.Error("HTMLOnly should be passed to the converter")
	}
	if _, err := os.Stat(filepath.Join(dir, "cv.html")); err != nil {
		t.Errorf("cv.html missing: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "cv.pdf")); !os.IsNotExist(err) {
		t.Error("cv.pdf should not be written with --html-only")
	}
}

func TestRunConvert_OutputPaths(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	input := writeFile(t, dir, "src/resume.md", testResume)
	outDir := filepath.Join(dir, "out", "nested")
	htmlOut := filepath.Join(dir, "web", "index.html")

	mock := newMockConverter()
	env, _, _ := newTestEnv(mock)

	if err := runConvertArgs(t, env, input, "-o", outDir, "--html-out", htmlOut); err != nil {
		t.Fatalf("runConvert() error = %v", err)
	}

	for _, p := range []string{filepath.Join(outDir, "resume.pdf"), htmlOut} {
		if _, err := os.Stat(p); err != nil {
			t.Errorf("%s missing: %v", p, err)
		}
	}
	if mock.input.BaseDir != filepath.Dir(htmlOut) {
		t.Errorf("BaseDir = %q, want the HTML directory", mock.input.BaseDir)
	}
}

func TestRunConvert_WriteCSS(t *testing.T) {
	t.Parallel()

	t.Run("writes missing stylesheet", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		input := writeFile(t, dir, "resume.md", testResume)
		mock := newMockConverter()
		env, stdout, _ := newTestEnv(mock)

		if err := runConvertArgs(t, env, input, "--write-css", "--html-only"); err != nil {
			t.Fatalf("runConvert() error = %v", err)
		}

		css, err := os.ReadFile(filepath.Join(dir, "resume.css"))
		if err != nil || string(css) != mock.style {
			t.Errorf("resume.css = %q, %v; want converter style", css, err)
		}
		if !strings.Contains(stdout.String(), "resume.css") {
			t.Errorf("stdout should list the stylesheet, got %q", stdout.String())
		}
	})

	t.Run("keeps existing stylesheet", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		input := writeFile(t, dir, "resume.md", testResume)
		writeFile(t, dir, "resume.css", "/* mine */")
		env, _, _ := newTestEnv(newMockConverter())

		if err := runConvertArgs(t, env, input, "--write-css", "--html-only"); err != nil {
			t.Fatalf("runConvert() error = %v", err)
		}

		css, _ := os.ReadFile(filepath.Join(dir, "resume.css"))
		if string(css) != "/* mine */" {
			t.Errorf("resume.css overwritten: %q", css)
		}
	})

	t.Run("skips stylesheet outside the output directory", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		input := writeFile(t, dir, "site/resume.md", testResume)
		mock := newMockConverter()
		mock.html = []byte(`<html><head><link rel="stylesheet" href="../shared.css"></head></html>`)
		env, _, _ := newTestEnv(mock)

		if err := runConvertArgs(t, env, input, "--write-css", "--html-only"); err != nil {
			t.Fatalf("runConvert() error = %v", err)
		}
		if _, err := os.Stat(filepath.Join(dir, "shared.css")); !os.IsNotExist(err) {
			t.Error("stylesheet outside the HTML directory should not be written")
		}
	})
}

func TestRunConvert_AllPresets(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	input := writeFile(t, dir, "cv.md", testResume)
	mock := newMockConverter()
	env, stdout, _ := newTestEnv(mock)

	if err := runConvertArgs(t, env, input, "--all-presets", "--preset", "screen"); err != nil {
		t.Fatalf("runConvert() error = %v", err)
	}

	want := []struct{ file, preset string }{
		{"cv.pdf", "default"},
		{"cv-print.pdf", "print"},
		{"cv-compact.pdf", "compact"},
	}
	if len(mock.printed) != len(want) {
		t.Fatalf("RenderPDF called %d times, want %d", len(mock.printed), len(want))
	}
	for i, w := range want {
		path := filepath.Join(dir, w.file)
		if _, err := os.Stat(path); err != nil {
			t.Errorf("%s missing: %v", w.file, err)
		}
		if !strings.Contains(stdout.String(), "Created "+path) {
			t.Errorf("stdout should list %s", w.file)
		}
		if page := mock.printed[i].Page; page == nil || page.Preset != w.preset {
			t.Errorf("%s printed with %+v, want preset %s", w.file, page, w.preset)
		}
	}
	if mock.created != 1 {
		t.Errorf("converter created %d times, want one browser for every preset", mock.created)
	}
	if _, err := os.Stat(filepath.Join(dir, "cv.html")); err != nil {
		t.Errorf("cv.html missing: %v", err)
	}
}

// ---------------------------------------------------------------------------
// TestRunConvert - Input handed to the library
// ---------------------------------------------------------------------------

func TestRunConvert_FlagsReachInput(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	input := writeFile(t, dir, "resume.md", testResume)
	mock := newMockConverter()
	env, _, _ := newTestEnv(mock)

	err := runConvertArgs(t, env, input,
		"--preset", "compact", "--scale", "0.8",
		"--subtitle", "Staff Engineer", "--stylesheet", "theme.css", "--inline-css",
		"--style", "print", "-t", "45s", "--settle", "0s")
	if err != nil {
		t.Fatalf("runConvert() error = %v", err)
	}

	got := mock.input
	if got.Page == nil || got.Page.Preset != "compact" || got.Page.Scale != 0.8 {
		t.Errorf("Page = %+v, want compact at 0.8", got.Page)
	}
	if got.Subtitle != "Staff Engineer" || got.Stylesheet != "theme.css" || !got.InlineCSS {
		t.Errorf("Input = %+v", got)
	}
	// timeout, settle delay, style
	if mock.options != 3 {
		t.Errorf("converter options = %d, want 3", mock.options)
	}
}

func TestRunConvert_ConfigFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	input := writeFile(t, dir, "cv.md", testResume)
	cfgPath := writeFile(t, dir, "resume.yaml", fmt.Sprintf(
		"input: %s\nsubtitle: From Config\npage:\n  preset: print\n", input))

	mock := newMockConverter()
	env, _, _ := newTestEnv(mock)

	if err := runConvertArgs(t, env, "-c", cfgPath, "--html-only", "--subtitle", "From Flag"); err != nil {
		t.Fatalf("runConvert() error = %v", err)
	}

	if mock.input.Markdown != testResume {
		t.Error("config input should be converted")
	}
	if mock.input.Subtitle != "From Flag" {
		t.Errorf("Subtitle = %q, flag should win over config", mock.input.Subtitle)
	}
	if mock.input.Page == nil || mock.input.Page.Preset != "print" {
		t.Errorf("Page = %+v, want print preset from config", mock.input.Page)
	}
}

// ---------------------------------------------------------------------------
// TestRunConvert - Errors
// ---------------------------------------------------------------------------

func TestRunConvert_Errors(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	input := writeFile(t, dir, "resume.md", testResume)
	notes := writeFile(t, dir, "notes.txt", "x")

	tests := []struct {
		name     string
		args     []string
		convErr  error
		pdfErr   error
		wantCode int
		wantText string
	}{
		{"invalid preset", []string{input, "--preset", "poster"}, nil, nil, ExitUsage, "presets:"},
		{"margin out of range", []string{input, "--margin", "5"}, nil, nil, ExitUsage, "invalid margin"},
		{"bad timeout", []string{input, "-t", "soon"}, nil, nil, ExitUsage, "invalid timeout"},
		{"wrong extension", []string{notes}, nil, nil, ExitUsage, ".md or .markdown"},
		{"two inputs", []string{input, input}, nil, nil, ExitUsage, "too many arguments"},
		{"missing config", []string{input, "-c", filepath.Join(dir, "nope.yaml")}, nil, nil, ExitUsage, "config file not found"},
		{"browser failure", []string{input}, nil, fmt.Errorf("converting to PDF: %w", resume2pdf.ErrBrowserConnect), ExitBrowser, "failed to connect to browser"},
		{"page load failure", []string{input}, nil, fmt.Errorf("%w: timeout", resume2pdf.ErrPageLoad), ExitBrowser, "--timeout"},
		{"empty markdown", []string{input}, resume2pdf.ErrEmptyMarkdown, nil, ExitUsage, "# Your Name"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			mock := newMockConverter()
			mock.err = tt.convErr
			mock.pdfErr = tt.pdfErr
			env, _, _ := newTestEnv(mock)

			err := runConvertArgs(t, env, tt.args...)
			if err == nil {
				t.Fatal("runConvert() error = nil, want error")
			}
			if code := exitCodeFor(err); code != tt.wantCode {
				t.Errorf("exit code = %d, want %d (err: %v)", code, tt.wantCode, err)
			}
			if !strings.Contains(err.Error(), tt.wantText) {
				t.Errorf("error %q should contain %q", err, tt.wantText)
			}
		})
	}
}

func TestRunConvert_PDFFailureKeepsHTML(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	input := writeFile(t, dir, "resume.md", testResume)
	mock := newMockConverter()
	mock.pdfErr = fmt.Errorf("converting to PDF: %w", resume2pdf.ErrPDFGeneration)
	env, _, _ := newTestEnv(mock)

	if err := runConvertArgs(t, env, input); !errors.Is(err, resume2pdf.ErrPDFGeneration) {
		t.Fatalf("runConvert() error = %v, want ErrPDFGeneration", err)
	}

	html, err := os.ReadFile(filepath.Join(dir, "resume.html"))
	if err != nil || string(html) != mockHTML {
		t.Errorf("resume.html = %q, %v; want the rendered HTML kept", html, err)
	}
	if _, err := os.Stat(filepath.Join(dir, "resume.pdf")); !os.IsNotExist(err) {
		t.Error("resume.pdf should not exist after a failed print")
	}
}

func TestRunConvert_ConverterFactoryError(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	input := writeFile(t, dir, "resume.md", testResume)
	env, _, _ := newTestEnv(newMockConverter())
	env.NewConverter = func(...resume2pdf.Option) (Converter, error) {
		return nil, fmt.Errorf("loading style %q: %w", "nope", resume2pdf.ErrStyleNotFound)
	}

	err := runConvertArgs(t, env, input)
	if !errors.Is(err, resume2pdf.ErrStyleNotFound) {
		t.Fatalf("error = %v, want ErrStyleNotFound", err)
	}
	if !strings.Contains(err.Error(), "available:") {
		t.Errorf("error %q should list available styles", err)
	}
}

func TestRunConvert_Quiet(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	input := writeFile(t, dir, "resume.md", testResume)
	env, stdout, _ := newTestEnv(newMockConverter())

	if err := runConvertArgs(t, env, input, "-q"); err != nil {
		t.Fatalf("runConvert() error = %v", err)
	}
	if stdout.Len() != 0 {
		t.Errorf("quiet mode printed %q", stdout.String())
	}
}
