package resume2pdf

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/launcher/flags"
	"github.com/go-rod/rod/lib/proto"

	"github.com/alnah/go-resume2pdf/internal/fileutil"
	"github.com/alnah/go-resume2pdf/internal/process"
)

// pdfConverter abstracts the browser so the Converter can be tested without Chrome.
type pdfConverter interface {
	ToPDF(ctx context.Context, htmlContent string, opts *pdfOptions) ([]byte, error)
	Check(ctx context.Context, htmlContent string) (*CheckResult, error)
	Close() error
}

// pdfRenderer works on an HTML file already on disk.
type pdfRenderer interface {
	RenderFromFile(ctx context.Context, filePath string, opts *pdfOptions) ([]byte, error)
	CheckFile(ctx context.Context, filePath string) (*CheckResult, error)
}

// pdfOptions holds options for PDF generation.
type pdfOptions struct {
	Page *PageSettings
}

// A4 paper in inches.
const (
	paperWidthInches  = 8.27
	paperHeightInches = 11.69
)

// Viewport used for layout before printing.
const (
	viewportWidth     = 1200
	viewportHeight    = 1600
	deviceScaleFactor = 2
)

// checkTimeout bounds page loading in Check.
const checkTimeout = 10 * time.Second

// rodSettings configures the browser session.
type rodSettings struct {
	timeout     time.Duration
	settleDelay time.Duration
	printCSS    string
	logger      *slog.Logger
}

// rodRenderer implements pdfRenderer using go-rod.
// Rod automatically downloads Chromium on first run if not found.
type rodRenderer struct {
	rodSettings
	browser  *rod.Browser
	launcher *launcher.Launcher
}

func newRodRenderer(s rodSettings) *rodRenderer {
	if s.logger == nil {
		s.logger = slog.New(slog.DiscardHandler)
	}
	return &rodRenderer{rodSettings: s}
}

// noSandbox reports whether Chrome must run without its sandbox
// (containers and CI runners).
func noSandbox() bool {
	return os.Getenv("CI") == "true" ||
		os.Getenv("ROD_NO_SANDBOX") == "1" ||
		os.Getenv("ROD_BROWSER_BIN") != ""
}

// ensureBrowser lazily launches and connects to the browser.
func (r *rodRenderer) ensureBrowser() error {
	if r.browser != nil {
		return nil
	}

	l := launcher.New().
		Headless(true).
		Set(flags.Flag("disable-dev-shm-usage")).
		Set(flags.Flag("disable-gpu")).
		Set(flags.Flag("disable-accelerated-2d-canvas")).
		Set(flags.Flag("no-first-run"))

	// Use pre-installed browser if specified (Docker/containerized environments)
	bin := os.Getenv("ROD_BROWSER_BIN")
	if bin != "" {
		l = l.Bin(bin)
	}

	sandboxOff := noSandbox()
	if sandboxOff {
		// Chrome refuses --no-zygote while the sandbox is on.
		l = l.NoSandbox(true).Set(flags.Flag("no-zygote"))
	}

	r.logger.Info("launching browser", slog.String("bin", bin), slog.Bool("noSandbox", sandboxOff))

	u, err := l.Launch()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrBrowserConnect, err)
	}

	browser := rod.New().ControlURL(u)
	if err := browser.Connect(); err != nil {
		l.Kill()
		return fmt.Errorf("%w: %v", ErrBrowserConnect, err)
	}

	r.browser = browser
	r.launcher = l
	return nil
}

// Close closes the browser. If it does not close cleanly the launcher's
// process group is killed so no Chrome helpers outlive the run.
func (r *rodRenderer) Close() error {
	if r.browser == nil {
		return nil
	}

	err := r.browser.Close()
	r.browser = nil

	if r.launcher != nil {
		if err != nil {
			r.logger.Warn("browser close failed, killing process group", slog.Any("error", err))
			if pid := r.launcher.PID(); pid > 0 {
				process.KillProcessGroup(pid)
			}
			r.launcher.Kill()
		}
		r.launcher.Cleanup()
		r.launcher = nil
	}

	r.logger.Info("browser closed")
	return err
}

// openPage creates a blank page with the print viewport.
func (r *rodRenderer) openPage() (*rod.Page, error) {
	if err := r.ensureBrowser(); err != nil {
		return nil, err
	}

	page, err := r.browser.Page(proto.TargetCreateTarget{})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPageCreate, err)
	}

	if err := page.SetViewport(&proto.EmulationSetDeviceMetricsOverride{
		Width:             viewportWidth,
		Height:            viewportHeight,
		DeviceScaleFactor: deviceScaleFactor,
	}); err != nil {
		_ = page.Close()
		return nil, fmt.Errorf("%w: setting viewport: %v", ErrPageCreate, err)
	}
	return page, nil
}

// load navigates to url and waits for the load event within timeout.
// A context deadline that expires sooner wins.
func load(ctx context.Context, page *rod.Page, url string, timeout time.Duration) error {
	p := page.Context(ctx).Timeout(timeout)
	if err := p.Navigate(url); err != nil {
		return fmt.Errorf("%w: %v", ErrPageLoad, err)
	}
	if err := p.WaitLoad(); err != nil {
		return fmt.Errorf("%w: %v", ErrPageLoad, err)
	}
	return nil
}

// settle waits d or until ctx is done.
func settle(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// RenderFromFile opens a local HTML file in headless Chrome and prints it to PDF.
func (r *rodRenderer) RenderFromFile(ctx context.Context, filePath string, opts *pdfOptions) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	page, err := r.openPage()
	if err != nil {
		return nil, err
	}
	defer page.Close()

	start := time.Now()
	url := fileutil.PathToFileURL(filePath)
	if err := load(ctx, page, url, r.timeout); err != nil {
		return nil, err
	}
	r.logger.Debug("page loaded", slog.String("url", url), slog.Duration("elapsed", time.Since(start)))

	if err := settle(ctx, r.settleDelay); err != nil {
		return nil, err
	}

	if r.printCSS != "" {
		if err := page.Context(ctx).AddStyleTag("", r.printCSS); err != nil {
			return nil, fmt.Errorf("%w: injecting print style: %v", ErrPDFGeneration, err)
		}
	}

	reader, err := page.Context(ctx).PDF(buildPDFOptions(opts))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPDFGeneration, err)
	}

	pdfBuf, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("%w: reading PDF stream: %v", ErrPDFGeneration, err)
	}

	r.logger.Info("PDF generated", slog.Int("bytes", len(pdfBuf)), slog.Duration("elapsed", time.Since(start)))
	return pdfBuf, nil
}

// CheckFile loads a local HTML file and collects console errors and
// uncaught exceptions until the page has loaded and settled.
func (r *rodRenderer) CheckFile(ctx context.Context, filePath string) (*CheckResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	page, err := r.openPage()
	if err != nil {
		return nil, err
	}
	defer page.Close()

	res := &CheckResult{}
	evCtx, stop := context.WithCancel(ctx)
	defer stop()

	wait := page.Context(evCtx).EachEvent(
		func(e *proto.RuntimeConsoleAPICalled) {
			if e.Type == proto.RuntimeConsoleAPICalledTypeError {
				res.ConsoleErrors = append(res.ConsoleErrors, consoleText(e.Args))
			}
		},
		func(e *proto.RuntimeExceptionThrown) {
			res.Exceptions = append(res.Exceptions, exceptionText(e.ExceptionDetails))
		},
	)
	done := make(chan struct{})
	go func() {
		wait()
		close(done)
	}()

	loadErr := load(ctx, page, fileutil.PathToFileURL(filePath), checkTimeout)
	if loadErr == nil {
		loadErr = settle(ctx, r.settleDelay)
	}

	// Handlers run on the wait goroutine; res is read only after it returns.
	stop()
	<-done

	if loadErr != nil {
		return nil, loadErr
	}

	r.logger.Info("HTML checked",
		slog.Int("consoleErrors", len(res.ConsoleErrors)),
		slog.Int("exceptions", len(res.Exceptions)))
	return res, nil
}

// consoleText joins console arguments the way DevTools prints them.
func consoleText(args []*proto.RuntimeRemoteObject) string {
	parts := make([]string, 0, len(args))
	for _, a := range args {
		switch {
		case a.Description != "":
			parts = append(parts, a.Description)
		case !a.Value.Nil():
			parts = append(parts, a.Value.String())
		}
	}
	return strings.Join(parts, " ")
}

func exceptionText(d *proto.RuntimeExceptionDetails) string {
	if d == nil {
		return ""
	}
	if d.Exception != nil && d.Exception.Description != "" {
		return d.Exception.Description
	}
	return d.Text
}

// buildPDFOptions maps the page settings to Chrome print parameters.
func buildPDFOptions(opts *pdfOptions) *proto.PagePrintToPDF {
	var page *PageSettings
	if opts != nil {
		page = opts.Page
	}
	l := page.layout()

	return &proto.PagePrintToPDF{
		PaperWidth:          floatPtr(paperWidthInches),
		PaperHeight:         floatPtr(paperHeightInches),
		MarginTop:           floatPtr(l.Margins.Top),
		MarginRight:         floatPtr(l.Margins.Right),
		MarginBottom:        floatPtr(l.Margins.Bottom),
		MarginLeft:          floatPtr(l.Margins.Left),
		Scale:               floatPtr(l.Scale),
		PrintBackground:     true,
		DisplayHeaderFooter: false,
		PreferCSSPageSize:   false,
	}
}

// floatPtr returns a pointer to a float64 value.
func floatPtr(v float64) *float64 {
	return &v
}

// rodConverter converts HTML to PDF using headless Chrome via go-rod.
type rodConverter struct {
	renderer *rodRenderer
}

func newRodConverter(s rodSettings) *rodConverter {
	return &rodConverter{renderer: newRodRenderer(s)}
}

// ToPDF writes the HTML to a temp file and prints it.
func (c *rodConverter) ToPDF(ctx context.Context, htmlContent string, opts *pdfOptions) ([]byte, error) {
	tmpPath, cleanup, err := fileutil.WriteTempFile(htmlContent, "html")
	if err != nil {
		return nil, err
	}
	defer cleanup()

	return c.renderer.RenderFromFile(ctx, tmpPath, opts)
}

// Check writes the HTML to a temp file and checks it.
func (c *rodConverter) Check(ctx context.Context, htmlContent string) (*CheckResult, error) {
	tmpPath, cleanup, err := fileutil.WriteTempFile(htmlContent, "html")
	if err != nil {
		return nil, err
	}
	defer cleanup()

	return c.renderer.CheckFile(ctx, tmpPath)
}

// Close releases browser resources.
func (c *rodConverter) Close() error {
	if c.renderer != nil {
		return c.renderer.Close()
	}
	return nil
}
