package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"slices"
	"strings"

	"github.com/go-rod/rod/lib/launcher"

	"github.com/alnah/go-resume2pdf/internal/assets"
	"github.com/alnah/go-resume2pdf/internal/fileutil"
)

// Doctor statuses.
const (
	statusReady    = "ready"
	statusWarnings = "warnings"
	statusErrors   = "errors"
)

// doctorResult holds all diagnostic information.
type doctorResult struct {
	Status   string     `json:"status"`
	Chrome   chromeInfo `json:"chrome"`
	Env      envInfo    `json:"environment"`
	System   systemInfo `json:"system"`
	Assets   assetInfo  `json:"assets"`
	Warnings []string   `json:"warnings,omitempty"`
	Errors   []string   `json:"errors,omitempty"`
}

// chromeInfo holds Chrome/Chromium detection results.
type chromeInfo struct {
	Found   bool   `json:"found"`
	Path    string `json:"path,omitempty"`
	Version string `json:"version,omitempty"`
	Sandbox bool   `json:"sandbox"`
}

// envInfo holds environment detection results.
type envInfo struct {
	OS            string `json:"os"`
	Arch          string `json:"arch"`
	Container     bool   `json:"container"`
	ContainerHint string `json:"container_hint,omitempty"`
	CI            bool   `json:"ci"`
	NoSandbox     string `json:"rod_no_sandbox"`
	BrowserBin    string `json:"rod_browser_bin"`
}

// systemInfo holds system check results.
type systemInfo struct {
	TempWritable bool `json:"temp_writable"`
}

// assetInfo lists the embedded assets the converter needs.
type assetInfo struct {
	Styles   []string `json:"styles"`
	Template bool     `json:"template"`
}

// lookPath locates Chrome. Replaced in tests.
var lookPath = launcher.LookPath

// runDoctorCmd executes the doctor command and returns an exit code.
// Exit codes: 0 = OK (including warnings), 1 = errors found.
func runDoctorCmd(args []string, env *Environment) int {
	jsonOutput := false
	for _, arg := range args {
		if arg == "--json" {
			jsonOutput = true
		}
	}

	result := runDoctor()

	if jsonOutput {
		enc := json.NewEncoder(env.Stdout)
		enc.SetIndent("", "  ")
		_ = enc.Encode(result)
	} else {
		printDoctorResult(env.Stdout, result)
	}

	if result.Status == statusErrors {
		return ExitGeneral
	}
	return ExitSuccess
}

// runDoctor performs all diagnostic checks.
func runDoctor() *doctorResult {
	result := &doctorResult{
		Status: statusReady,
		Env: envInfo{
			OS:         runtime.GOOS,
			Arch:       runtime.GOARCH,
			NoSandbox:  os.Getenv("ROD_NO_SANDBOX"),
			BrowserBin: os.Getenv("ROD_BROWSER_BIN"),
		},
	}

	checkChrome(result)
	checkEnvironment(result)
	checkSystem(result)
	checkAssets(result)

	if len(result.Errors) > 0 {
		result.Status = statusErrors
	} else if len(result.Warnings) > 0 {
		result.Status = statusWarnings
	}

	return result
}

// checkChrome detects the Chrome/Chromium installation.
// The sandbox is off under the same conditions the converter uses.
func checkChrome(result *doctorResult) {
	chromePath := result.Env.BrowserBin

	if chromePath == "" {
		var found bool
		chromePath, found = lookPath()
		if !found {
			result.Errors = append(result.Errors,
				"Chrome/Chromium not found. Install Chrome or set ROD_BROWSER_BIN")
			return
		}
	}

	if _, err := os.Stat(chromePath); err != nil {
		result.Errors = append(result.Errors,
			fmt.Sprintf("Chrome not found at %s", chromePath))
		return
	}

	result.Chrome.Found = true
	result.Chrome.Path = chromePath

	// #nosec G204 -- path comes from ROD_BROWSER_BIN or the launcher lookup
	out, err := exec.Command(chromePath, "--version").Output()
	if err == nil {
		result.Chrome.Version = strings.TrimSpace(string(out))
	} else {
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("Could not get Chrome version: %v", err))
	}

	result.Chrome.Sandbox = !(os.Getenv("CI") == "true" ||
		result.Env.NoSandbox == "1" ||
		result.Env.BrowserBin != "")
}

// ciVars are the variables CI services set on every job.
var ciVars = []string{"CI", "GITHUB_ACTIONS", "GITLAB_CI", "JENKINS_URL", "CIRCLECI"}

// checkEnvironment records container and CI signals. Chrome refuses to start
// sandboxed as root in most images, so either signal without a sandbox
// opt-out is a warning.
func checkEnvironment(result *doctorResult) {
	result.Env.Container, result.Env.ContainerHint = isContainer()
	result.Env.CI = slices.ContainsFunc(ciVars, func(v string) bool { return os.Getenv(v) != "" })

	sandboxOff := result.Env.NoSandbox == "1" || os.Getenv("CI") == "true"
	if (result.Env.Container || result.Env.CI) && !sandboxOff {
		result.Warnings = append(result.Warnings,
			"Container/CI detected but ROD_NO_SANDBOX not set. Set ROD_NO_SANDBOX=1")
	}
}

// isContainer reports the first container signal found and its source.
func isContainer() (bool, string) {
	switch {
	case os.Getenv("RESUME2PDF_CONTAINER") == "1":
		return true, "RESUME2PDF_CONTAINER=1"
	case fileutil.FileExists("/.dockerenv"):
		return true, "/.dockerenv"
	case os.Getenv("container") != "": // podman, systemd-nspawn
		return true, "container=" + os.Getenv("container")
	case os.Getenv("KUBERNETES_SERVICE_HOST") != "":
		return true, "KUBERNETES_SERVICE_HOST"
	}
	return false, ""
}

// checkSystem verifies the temp directory is writable: the browser loads
// every document from a temp file.
func checkSystem(result *doctorResult) {
	tmpDir := os.TempDir()
	testFile := filepath.Join(tmpDir, "resume2pdf-doctor-test")
	if err := os.WriteFile(testFile, []byte("test"), 0o600); err != nil {
		result.Errors = append(result.Errors,
			fmt.Sprintf("Temp directory not writable: %s", tmpDir))
		return
	}
	_ = os.Remove(testFile)
	result.System.TempWritable = true
}

// checkAssets loads the embedded template and styles.
func checkAssets(result *doctorResult) {
	loader := assets.NewEmbeddedLoader()

	if _, err := loader.LoadTemplate(assets.DefaultTemplateName); err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Embedded template: %v", err))
	} else {
		result.Assets.Template = true
	}

	for _, name := range assets.StyleNames() {
		if _, err := loader.LoadStyle(name); err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("Embedded style %s: %v", name, err))
			continue
		}
		result.Assets.Styles = append(result.Assets.Styles, name)
	}
}

// doctorReport writes the indented "[TAG] text" lines of the human output.
type doctorReport struct{ w io.Writer }

func (r doctorReport) section(title string) { fmt.Fprintf(r.w, "%s\n", title) }
func (r doctorReport) end()                 { fmt.Fprintln(r.w) }

func (r doctorReport) line(tag, format string, args ...any) {
	fmt.Fprintf(r.w, "  [%s] %s\n", tag, fmt.Sprintf(format, args...))
}

func (r doctorReport) check(ok bool, good, bad string) {
	if ok {
		r.line("OK", "%s", good)
	} else {
		r.line("ERROR", "%s", bad)
	}
}

var statusLines = map[string]string{
	statusReady:    "Status: Ready to convert",
	statusWarnings: "Status: Ready with warnings",
	statusErrors:   "Status: Not ready (see errors above)",
}

// printDoctorResult outputs human-readable diagnostic results.
func printDoctorResult(w io.Writer, res *doctorResult) {
	r := doctorReport{w}
	r.section("resume2pdf doctor")
	r.end()

	r.section("Chrome/Chromium")
	if res.Chrome.Found {
		r.line("OK", "Found at %s", res.Chrome.Path)
		if res.Chrome.Version != "" {
			r.line("OK", "Version: %s", res.Chrome.Version)
		}
		sandbox := "disabled"
		if res.Chrome.Sandbox {
			sandbox = "enabled"
		}
		r.line("OK", "Sandbox: %s", sandbox)
	} else {
		r.line("ERROR", "Not found")
	}
	r.end()

	r.section("Environment")
	r.line("OK", "Platform: %s/%s", res.Env.OS, res.Env.Arch)
	if res.Env.Container {
		r.line("OK", "Container: detected (%s)", res.Env.ContainerHint)
	}
	if res.Env.CI {
		r.line("OK", "CI: detected")
	}
	r.end()

	r.section("System")
	r.check(res.System.TempWritable, "Temp directory: writable", "Temp directory: not writable")
	r.end()

	r.section("Assets")
	r.check(res.Assets.Template, "Template: embedded", "Template: missing")
	if len(res.Assets.Styles) > 0 {
		r.line("OK", "Styles: %s", strings.Join(res.Assets.Styles, ", "))
	}
	r.end()

	for _, group := range []struct {
		title, tag string
		items      []string
	}{
		{"Warnings:", "WARN", res.Warnings},
		{"Errors:", "ERROR", res.Errors},
	} {
		if len(group.items) == 0 {
			continue
		}
		r.section(group.title)
		for _, item := range group.items {
			r.line(group.tag, "%s", item)
		}
		r.end()
	}

	if msg, ok := statusLines[res.Status]; ok {
		fmt.Fprintln(w, msg)
	}
}
