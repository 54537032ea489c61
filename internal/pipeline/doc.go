// Package pipeline turns a parsed résumé into a complete HTML document.
//
// Stages:
//   - Section rendering: each section type has its own formatter
//     (experience, skills, education, achievements, projects); other
//     sections pass through Goldmark as plain markdown
//   - Contact block rendering from the raw contact entries
//   - Document assembly through the html/template set from internal/assets
//   - Optional inline CSS injection
//   - Relative path rewriting for the copy handed to the browser
//
// PDF printing lives in the root package, which drives headless Chrome (go-rod).
package pipeline
