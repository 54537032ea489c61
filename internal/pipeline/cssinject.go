package pipeline

import (
	"context"
	"strings"
)

// CSSInjector embeds a stylesheet into a rendered résumé page.
type CSSInjector interface {
	InjectCSS(ctx context.Context, htmlContent, cssContent string) string
}

// CSSInjection places the stylesheet in a <style> element so the page renders
// without its external resume.css next to it.
type CSSInjection struct{}

// InjectCSS puts the style element at the end of <head>. Pages without a head
// get it right after the opening <body> tag, and fragments get it prepended.
func (s *CSSInjection) InjectCSS(ctx context.Context, htmlContent, cssContent string) string {
	if ctx.Err() != nil || strings.TrimSpace(cssContent) == "" {
		return htmlContent
	}

	style := "<style>" + escapeStyleClose(cssContent) + "</style>"
	lower := strings.ToLower(htmlContent)

	if at := strings.Index(lower, "</head>"); at >= 0 {
		return htmlContent[:at] + style + htmlContent[at:]
	}
	if open := strings.Index(lower, "<body"); open >= 0 {
		if end := strings.IndexByte(htmlContent[open:], '>'); end >= 0 {
			at := open + end + 1
			return htmlContent[:at] + style + htmlContent[at:]
		}
	}
	return style + htmlContent
}

// escapeStyleClose keeps "</style>" inside the CSS from ending the element.
func escapeStyleClose(css string) string {
	return strings.ReplaceAll(css, "</", `<\/`)
}

var _ CSSInjector = (*CSSInjection)(nil)
