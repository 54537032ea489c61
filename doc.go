// Package resume2pdf converts a markdown résumé to a styled HTML document and
// prints it to an A4 PDF with headless Chrome.
//
// # Quick Start
//
//	conv, err := resume2pdf.NewConverter()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer conv.Close()
//
//	result, err := conv.Convert(ctx, resume2pdf.Input{
//	    Markdown: content,
//	    BaseDir:  "/path/to/resume",
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	os.WriteFile("resume.pdf", result.PDF, 0o644)
//
// The result holds the HTML (result.HTML) and the PDF (result.PDF).
// Set Input.HTMLOnly to skip the browser.
//
// # Markdown Conventions
//
// The first "# " heading is the name. The "- " bullets that follow it are
// contact entries ("- **Email**: jane@example.com"). Each "## " heading opens
// a section whose type comes from its title:
//
//	summary      -> header subtitle, not rendered in the body
//	experience   -> "### Company | Location" jobs, "Title (Duration)" lines
//	skills       -> "- Category: a, b, c" bullets
//	education    -> "Degree — School" entries
//	projects     -> "- Name — description" bullets
//	highlights   -> achievement cards
//	anything else -> plain markdown
//
// # Pipeline
//
//  1. Parse the markdown into a Document (never fails)
//  2. Render each section with its formatter, general sections via Goldmark
//  3. Assemble the document through html/template
//  4. Print with headless Chrome (go-rod): A4, print backgrounds, page preset
//
// # Configuration
//
//	conv, err := resume2pdf.NewConverter(
//	    resume2pdf.WithTimeout(time.Minute),
//	    resume2pdf.WithStyle("./my-resume.css"),
//	    resume2pdf.WithLogger(slog.Default()),
//	)
//
// Page layout is chosen per conversion with Input.Page:
//
//	Page: &resume2pdf.PageSettings{Preset: resume2pdf.PresetCompact}
//
// # Browser
//
// Rod downloads Chromium on first use unless ROD_BROWSER_BIN points at an
// installed browser. Set ROD_NO_SANDBOX=1 (or CI=true) in containers.
package resume2pdf
