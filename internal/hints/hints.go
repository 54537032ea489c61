// Package hints turns resume2pdf failures into short suggestions the user can
// act on. Every hint reads "\n  hint: <text>" so callers append it to the error.
package hints

import (
	"os"
	"slices"
	"strings"

	"github.com/alnah/go-resume2pdf/internal/fileutil"
)

// IsInContainer reports whether the process runs in Docker. Replaced in tests.
var IsInContainer = func() bool {
	return fileutil.FileExists("/.dockerenv")
}

var ciEnvVars = []string{"CI", "GITHUB_ACTIONS", "GITLAB_CI", "JENKINS_URL"}

// ForBrowserConnect suggests the go-rod variables that usually fix a Chrome
// launch failure: the sandbox opt-out inside CI or containers, and a custom
// binary when none is configured.
func ForBrowserConnect() string {
	var out []string

	inCI := slices.ContainsFunc(ciEnvVars, func(v string) bool { return os.Getenv(v) != "" })
	if (inCI || IsInContainer()) && os.Getenv("ROD_NO_SANDBOX") != "1" {
		out = append(out, "set ROD_NO_SANDBOX=1 for Docker/CI")
	}
	if os.Getenv("ROD_BROWSER_BIN") == "" {
		out = append(out, "set ROD_BROWSER_BIN to use custom Chrome")
	}

	return formatHints(out)
}

// ForTimeout covers page loads that outlive the deadline.
func ForTimeout() string {
	return format("for slow fonts or remote images, use --timeout flag")
}

// ForConfigNotFound points at --config, and at the user config directory
// when it appears among the searched paths.
func ForConfigNotFound(searchedPaths []string) string {
	hint := "use --config /path/to/file.yaml"

	for _, p := range searchedPaths {
		if strings.Contains(p, "go-resume2pdf") {
			hint += " or create " + p
			break
		}
	}

	return format(hint)
}

// ForOutputDirectory covers failures creating the PDF or HTML directory.
func ForOutputDirectory() string {
	return format("check parent directory exists and is writable")
}

// ForStyleNotFound lists the styles that do exist. Empty when none are known.
func ForStyleNotFound(available []string) string {
	if len(available) == 0 {
		return ""
	}
	return format("available: " + strings.Join(available, ", "))
}

// ForPageSettings returns hints for invalid page layout options.
func ForPageSettings(presets []string) string {
	hint := "margin must be 0.25-3.0 inches, scale 0.1-2.0"
	if len(presets) > 0 {
		hint = "presets: " + strings.Join(presets, ", ") + "; " + hint
	}
	return format(hint)
}

// ForEmptyResume returns a hint for a résumé file with no content.
func ForEmptyResume() string {
	return format("start the file with \"# Your Name\" followed by \"## Section\" headers")
}

// format prefixes a non-empty hint.
func format(hint string) string {
	if hint == "" {
		return ""
	}
	return "\n  hint: " + hint
}

// formatHints joins several suggestions into one hint line.
func formatHints(parts []string) string {
	return format(strings.Join(parts, "; "))
}
