package fileutil_test

// Notes:
// - TestWriteTempFile_CreateTempError modifies TMPDIR and cannot run in
//   parallel with other tests.
// - WriteString and Close error branches are not tested: triggering disk
//   write failures is platform-specific.

import (
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/alnah/go-resume2pdf/internal/fileutil"
)

// ---------------------------------------------------------------------------
// TestValidateExtension - Extension validation
// ---------------------------------------------------------------------------

func TestValidateExtension(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		extension string
		wantErr   error
	}{
		{"html", "html", nil},
		{"css", "css", nil},
		{"empty", "", fileutil.ErrExtensionEmpty},
		{"slash", "../html", fileutil.ErrExtensionPathTraversal},
		{"backslash", `..\html`, fileutil.ErrExtensionPathTraversal},
		{"null byte", "ht\x00ml", fileutil.ErrExtensionPathTraversal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if err := fileutil.ValidateExtension(tt.extension); !errors.Is(err, tt.wantErr) {
				t.Errorf("ValidateExtension(%q) = %v, want %v", tt.extension, err, tt.wantErr)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestWriteTempFile - Temp file lifecycle
// ---------------------------------------------------------------------------

func TestWriteTempFile(t *testing.T) {
	t.Parallel()

	path, cleanup, err := fileutil.WriteTempFile("<html></html>", "html")
	if err != nil {
		t.Fatalf("WriteTempFile() error = %v", err)
	}

	if !strings.HasPrefix(filepath.Base(path), "resume2pdf-") || filepath.Ext(path) != ".html" {
		t.Errorf("temp file name = %q, want resume2pdf-*.html", filepath.Base(path))
	}

	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading temp file: %v", err)
	}
	if string(got) != "<html></html>" {
		t.Errorf("content = %q", got)
	}

	cleanup()
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Errorf("temp file still exists after cleanup")
	}
}

func TestWriteTempFile_InvalidExtension(t *testing.T) {
	t.Parallel()

	if _, _, err := fileutil.WriteTempFile("x", "a/b"); !errors.Is(err, fileutil.ErrExtensionPathTraversal) {
		t.Errorf("WriteTempFile() error = %v, want ErrExtensionPathTraversal", err)
	}
}

func TestWriteTempFile_CreateTempError(t *testing.T) {
	t.Setenv("TMPDIR", filepath.Join(t.TempDir(), "missing"))
	if runtime.GOOS == "windows" {
		t.Skip("TMPDIR is not used on Windows")
	}

	if _, _, err := fileutil.WriteTempFile("x", "html"); err == nil {
		t.Error("WriteTempFile() error = nil, want error for missing temp dir")
	}
}

// ---------------------------------------------------------------------------
// TestPathHelpers
// ---------------------------------------------------------------------------

func TestFileExists(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	file := filepath.Join(dir, "a.css")
	if err := os.WriteFile(file, []byte("x"), 0o600); err != nil {
		t.Fatal(err)
	}

	if !fileutil.FileExists(file) {
		t.Error("FileExists(file) = false")
	}
	if fileutil.FileExists(dir) {
		t.Error("FileExists(dir) = true, want false for directories")
	}
	if fileutil.FileExists(filepath.Join(dir, "missing")) {
		t.Error("FileExists(missing) = true")
	}
}

func TestIsFilePathAndIsCSS(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in       string
		wantPath bool
		wantCSS  bool
	}{
		{"resume", false, false},
		{"./custom.css", true, false},
		{`C:\styles\cv.css`, true, false},
		{"body { color: red }", false, true},
		{"/* x */ a{}", true, true},
	}

	for _, tt := range tests {
		if got := fileutil.IsFilePath(tt.in); got != tt.wantPath {
			t.Errorf("IsFilePath(%q) = %v, want %v", tt.in, got, tt.wantPath)
		}
		if got := fileutil.IsCSS(tt.in); got != tt.wantCSS {
			t.Errorf("IsCSS(%q) = %v, want %v", tt.in, got, tt.wantCSS)
		}
	}
}

func TestPathToFileURL(t *testing.T) {
	t.Parallel()

	if runtime.GOOS == "windows" {
		t.Skip("unix paths")
	}

	tests := []struct {
		in   string
		want string
	}{
		{"/home/me/cv.html", "file:///home/me/cv.html"},
		{"/dir with space/a.css", "file:///dir%20with%20space/a.css"},
	}
	for _, tt := range tests {
		if got := fileutil.PathToFileURL(tt.in); got != tt.want {
			t.Errorf("PathToFileURL(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}

	wd, _ := os.Getwd()
	if got := fileutil.PathToFileURL("rel.html"); got != fileutil.PathToFileURL(filepath.Join(wd, "rel.html")) {
		t.Errorf("relative path should resolve against the working directory, got %q", got)
	}
}

func TestReplaceExt(t *testing.T) {
	t.Parallel()

	tests := []struct{ in, ext, want string }{
		{"resume.md", ".pdf", "resume.pdf"},
		{"dir/cv.markdown", ".html", "dir/cv.html"},
		{"noext", ".pdf", "noext.pdf"},
	}
	for _, tt := range tests {
		if got := fileutil.ReplaceExt(tt.in, tt.ext); got != tt.want {
			t.Errorf("ReplaceExt(%q, %q) = %q, want %q", tt.in, tt.ext, got, tt.want)
		}
	}
}
