package resume2pdf

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/alnah/go-resume2pdf/internal/assets"
	"github.com/alnah/go-resume2pdf/internal/fileutil"
	"github.com/alnah/go-resume2pdf/internal/pipeline"
	"github.com/alnah/go-resume2pdf/internal/resume"
)

// Compile-time interface implementation checks.
var (
	_ pipeline.MarkdownConverter = (*pipeline.GoldmarkConverter)(nil)
	_ pipeline.CSSInjector       = (*pipeline.CSSInjection)(nil)
	_ pdfConverter               = (*rodConverter)(nil)
	_ pdfRenderer                = (*rodRenderer)(nil)
)

// Converter turns markdown résumés into HTML and PDF.
// Create with NewConverter, use Convert for conversion, and Close when done.
// A Converter is not safe for concurrent use.
type Converter struct {
	cfg          converterConfig
	assetLoader  assets.AssetLoader
	markdown     pipeline.MarkdownConverter
	renderer     *pipeline.Renderer
	cssInjector  pipeline.CSSInjector
	pdfConverter pdfConverter
}

// NewConverter creates a Converter with default configuration.
// The browser is started on the first conversion, not here.
// Returns error if asset loading or template parsing fails.
func NewConverter(opts ...Option) (*Converter, error) {
	c := &Converter{
		cfg: converterConfig{
			timeout:     defaultTimeout,
			settleDelay: defaultSettleDelay,
			logger:      slog.New(slog.DiscardHandler),
		},
		assetLoader: assets.NewEmbeddedLoader(),
		markdown:    pipeline.NewGoldmarkConverter(),
		cssInjector: &pipeline.CSSInjection{},
	}

	for _, opt := range opts {
		opt(c)
	}

	if c.cfg.assetPath != "" {
		resolver, err := assets.NewAssetResolver(c.cfg.assetPath)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidAssetPath, err)
		}
		c.assetLoader = resolver
	}

	if err := c.resolveStyle(); err != nil {
		return nil, err
	}

	tmpl, err := c.assetLoader.LoadTemplate(assets.DefaultTemplateName)
	if err != nil {
		return nil, fmt.Errorf("loading document template: %w", err)
	}
	c.renderer, err = pipeline.NewRenderer(tmpl, c.markdown)
	if err != nil {
		return nil, fmt.Errorf("initializing renderer: %w", err)
	}

	// Create PDF converter if not injected (e.g., by tests)
	if c.pdfConverter == nil {
		printCSS, err := c.assetLoader.LoadStyle(assets.PrintStyleName)
		if err != nil {
			return nil, fmt.Errorf("loading print style: %w", err)
		}
		c.pdfConverter = newRodConverter(rodSettings{
			timeout:     c.cfg.timeout,
			settleDelay: c.cfg.settleDelay,
			printCSS:    printCSS,
			logger:      c.cfg.logger,
		})
	}

	return c, nil
}

// RenderHTML parses the markdown and returns the complete HTML document.
func (c *Converter) RenderHTML(ctx context.Context, input Input) (_ []byte, err error) {
	defer recoverInternal(&err)

	if err := c.validateInput(input); err != nil {
		return nil, err
	}

	htmlContent, err := c.renderDocument(ctx, input)
	if err != nil {
		return nil, err
	}
	return []byte(htmlContent), nil
}

// Convert renders the HTML and prints it to PDF.
// The context is used for cancellation and timeout.
// If input.HTMLOnly is true, PDF generation is skipped.
func (c *Converter) Convert(ctx context.Context, input Input) (*ConvertResult, error) {
	htmlContent, err := c.RenderHTML(ctx, input)
	if err != nil {
		return nil, err
	}

	res := &ConvertResult{HTML: htmlContent}
	if input.HTMLOnly {
		return res, nil
	}

	pdf, err := c.RenderPDF(ctx, htmlContent, input)
	if err != nil {
		return nil, err
	}
	res.PDF = pdf
	return res, nil
}

// RenderPDF prints an HTML document produced by RenderHTML. input.BaseDir
// and input.Page apply as in Convert; input.Markdown is not used.
// Calls share the Converter's browser, so printing one document with
// several page settings starts Chrome once.
func (c *Converter) RenderPDF(ctx context.Context, htmlContent []byte, input Input) (_ []byte, err error) {
	defer recoverInternal(&err)

	if len(bytes.TrimSpace(htmlContent)) == 0 {
		return nil, fmt.Errorf("%w: empty HTML", ErrPDFGeneration)
	}
	if err := input.Page.Validate(); err != nil {
		return nil, err
	}

	printHTML, err := c.printCopy(ctx, string(htmlContent), input)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	pdfBytes, err := c.pdfConverter.ToPDF(ctx, printHTML, &pdfOptions{Page: input.Page})
	if err != nil {
		return nil, fmt.Errorf("converting to PDF: %w", err)
	}
	return pdfBytes, nil
}

// recoverInternal turns a panic in the render pipeline into an error so it
// does not reach callers.
func recoverInternal(err *error) {
	if r := recover(); r != nil {
		*err = fmt.Errorf("internal error: %v", r)
	}
}

// Check loads an HTML document in the browser and reports console errors
// and uncaught exceptions.
func (c *Converter) Check(ctx context.Context, htmlContent string) (*CheckResult, error) {
	if strings.TrimSpace(htmlContent) == "" {
		return nil, fmt.Errorf("%w: empty HTML", ErrPageLoad)
	}
	return c.pdfConverter.Check(ctx, htmlContent)
}

// CheckFile is Check for an HTML file on disk. References relative to the
// file resolve the same way they would when opening it directly.
func (c *Converter) CheckFile(ctx context.Context, path string) (*CheckResult, error) {
	content, err := os.ReadFile(path) // #nosec G304 -- user-provided path
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	htmlContent, err := pipeline.RewriteRelativePaths(string(content), filepath.Dir(path))
	if err != nil {
		return nil, fmt.Errorf("rewriting relative paths: %w", err)
	}
	return c.Check(ctx, htmlContent)
}

// Close releases resources (headless Chrome browser).
func (c *Converter) Close() error {
	if c.pdfConverter != nil {
		return c.pdfConverter.Close()
	}
	return nil
}

// Style returns the resolved résumé CSS, for writing next to the HTML.
func (c *Converter) Style() string {
	return c.cfg.resolvedStyle
}

func (c *Converter) renderDocument(ctx context.Context, input Input) (string, error) {
	doc := resume.Parse(input.Markdown)

	opts := pipeline.DocumentOptions{
		Stylesheet: input.Stylesheet,
		Subtitle:   input.Subtitle,
	}
	if input.InlineCSS {
		opts.InlineCSS = c.cfg.resolvedStyle
	}

	htmlContent, err := c.renderer.RenderDocument(ctx, doc, opts)
	if err != nil {
		return "", fmt.Errorf("rendering HTML: %w", err)
	}

	c.cfg.logger.Debug("rendered HTML",
		slog.String("name", doc.Name),
		slog.Int("sections", len(doc.Sections)),
		slog.Int("bytes", len(htmlContent)))
	return htmlContent, nil
}

// printCopy prepares the HTML handed to the browser, which loads it from a
// temp file: relative references are rewritten against BaseDir, and the
// style is inlined when the linked stylesheet is not on disk. A stylesheet
// that exists outside BaseDir is rewritten too, so the two never disagree.
func (c *Converter) printCopy(ctx context.Context, htmlContent string, input Input) (string, error) {
	out := htmlContent

	if !input.InlineCSS && missingStylesheet(htmlContent, input.BaseDir) {
		c.cfg.logger.Debug("linked stylesheet not found, inlining style", slog.String("baseDir", input.BaseDir))
		out = c.cssInjector.InjectCSS(ctx, out, c.cfg.resolvedStyle)
	}

	if input.BaseDir == "" {
		return out, nil
	}

	out, err := pipeline.RewriteRelativePaths(out, input.BaseDir)
	if err != nil {
		return "", fmt.Errorf("rewriting relative paths: %w", err)
	}
	return out, nil
}

// missingStylesheet reports whether a relative stylesheet of the document
// cannot be loaded from baseDir. Without a baseDir no relative reference
// resolves.
func missingStylesheet(htmlContent, baseDir string) bool {
	paths, err := pipeline.LocalStylesheets(htmlContent, baseDir)
	if err != nil || len(paths) == 0 {
		return false
	}
	if baseDir == "" {
		return true
	}
	for _, p := range paths {
		if !fileutil.FileExists(p) {
			return true
		}
	}
	return false
}

// resolveStyle resolves the style input (name, path, or CSS content) to CSS content.
// With no input the embedded résumé style is used.
func (c *Converter) resolveStyle() error {
	input := c.cfg.styleInput
	if input == "" {
		input = assets.DefaultStyleName
	}

	// CSS content? (contains {). Checked first: CSS often contains "/".
	if fileutil.IsCSS(input) {
		c.cfg.resolvedStyle = input
		return nil
	}

	// File path? (contains a separator or ends in .css)
	if fileutil.IsFilePath(input) || strings.HasSuffix(strings.ToLower(input), ".css") {
		content, err := os.ReadFile(input) // #nosec G304 -- user-provided path
		if err != nil {
			return fmt.Errorf("loading style file %q: %w", input, err)
		}
		c.cfg.resolvedStyle = string(content)
		return nil
	}

	css, err := c.assetLoader.LoadStyle(input)
	if err != nil {
		return fmt.Errorf("loading style %q: %w", input, err)
	}
	c.cfg.resolvedStyle = css
	return nil
}

// validateInput checks that required fields are present and valid.
//
// This is a TRUST BOUNDARY for direct library users who build Input manually.
// The CLI validates page settings earlier, when merging flags and config.
func (c *Converter) validateInput(input Input) error {
	if strings.TrimSpace(input.Markdown) == "" {
		return ErrEmptyMarkdown
	}
	return input.Page.Validate()
}
