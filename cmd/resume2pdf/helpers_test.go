package main

// Notes:
// - Test infrastructure shared across the command tests: a hand-written
//   Converter mock and an Environment wired to it.

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	resume2pdf "github.com/alnah/go-resume2pdf"
)

// ---------------------------------------------------------------------------
// Mock Implementations
// ---------------------------------------------------------------------------

const mockHTML = `<!DOCTYPE html><html><head><link rel="stylesheet" href="resume.css"></head><body><h1>Jane</h1></body></html>`

// mockConverter records its calls and returns fixed results.
// err fails RenderHTML, pdfErr fails RenderPDF.
type mockConverter struct {
	html     []byte
	pdf      []byte
	style    string
	err      error
	pdfErr   error
	check    *resume2pdf.CheckResult
	checkErr error

	called      bool
	input       resume2pdf.Input
	printed     []resume2pdf.Input
	checkedPath string
	closed      bool
	options     int
	created     int
}

func newMockConverter() *mockConverter {
	return &mockConverter{
		html:  []byte(mockHTML),
		pdf:   []byte("%PDF-1.4 mock"),
		style: "body{margin:0}",
		check: &resume2pdf.CheckResult{},
	}
}

func (m *mockConverter) RenderHTML(_ context.Context, input resume2pdf.Input) ([]byte, error) {
	m.called = true
	m.input = input
	if m.err != nil {
		return nil, m.err
	}
	return m.html, nil
}

func (m *mockConverter) RenderPDF(_ context.Context, _ []byte, input resume2pdf.Input) ([]byte, error) {
	m.printed = append(m.printed, input)
	if m.pdfErr != nil {
		return nil, m.pdfErr
	}
	return m.pdf, nil
}

func (m *mockConverter) CheckFile(_ context.Context, path string) (*resume2pdf.CheckResult, error) {
	m.checkedPath = path
	if m.checkErr != nil {
		return nil, m.checkErr
	}
	return m.check, nil
}

func (m *mockConverter) Style() string { return m.style }

func (m *mockConverter) Close() error {
	m.closed = true
	return nil
}

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

// newTestEnv returns an Environment whose converter factory yields m.
func newTestEnv(m *mockConverter) (*Environment, *bytes.Buffer, *bytes.Buffer) {
	var stdout, stderr bytes.Buffer
	fixed := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	env := &Environment{
		Now:    func() time.Time { return fixed },
		Stdout: &stdout,
		Stderr: &stderr,
		NewConverter: func(opts ...resume2pdf.Option) (Converter, error) {
			m.options = len(opts)
			m.created++
			return m, nil
		},
	}
	return env, &stdout, &stderr
}

// writeFile writes content under dir and returns the full path.
func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

const testResume = `# Jane Doe
- **Email**: jane@example.com

## Summary
Engineer. Builds things.

## Skills
- **Languages**: Go
`
