package pipeline

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"strings"

	"github.com/alnah/go-resume2pdf/internal/resume"
)

// Template definitions the document template set must provide.
const (
	tmplDocument     = "document"
	tmplContact      = "contact"
	tmplExperience   = "experience"
	tmplSkills       = "skills"
	tmplEducation    = "education"
	tmplAchievements = "achievements"
	tmplProjects     = "projects"
)

var requiredTemplates = []string{
	tmplDocument, tmplContact, tmplExperience, tmplSkills,
	tmplEducation, tmplAchievements, tmplProjects,
}

const (
	// DefaultStylesheet is the href written into the document head.
	DefaultStylesheet = "resume.css"
	// DefaultSubtitle is used when the résumé has no summary text.
	DefaultSubtitle = "Professional"

	contractorPrefix = "Independent Contractor @ "
)

// DocumentOptions controls document assembly.
type DocumentOptions struct {
	Stylesheet string // href of the external stylesheet, DefaultStylesheet when empty
	Subtitle   string // overrides the subtitle derived from the summary
	InlineCSS  string // injected as a <style> block when set
}

// Renderer turns parsed résumés into HTML.
type Renderer struct {
	tmpl *template.Template
	md   MarkdownConverter
	css  CSSInjector
}

// documentData feeds the "document" template.
type documentData struct {
	Name       string
	Stylesheet string
	Subtitle   string
	Contact    []ContactItem
	Sections   []renderedSection
}

type renderedSection struct {
	Title string
	Body  template.HTML
}

// NewRenderer parses the template set and checks that every section
// definition is present. General sections go through md.
func NewRenderer(tmplContent string, md MarkdownConverter) (*Renderer, error) {
	tmpl, err := template.New("resume").Parse(tmplContent)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTemplateParse, err)
	}

	for _, name := range requiredTemplates {
		if tmpl.Lookup(name) == nil {
			return nil, fmt.Errorf("%w: %q", ErrIncompleteTemplate, name)
		}
	}

	return &Renderer{tmpl: tmpl, md: md, css: &CSSInjection{}}, nil
}

// RenderSection renders the body of one section according to its type.
func (r *Renderer) RenderSection(ctx context.Context, s resume.Section) (template.HTML, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	switch s.Type {
	case resume.SectionExperience:
		return r.execute(tmplExperience, ParseJobs(s.Content))
	case resume.SectionSkills:
		return r.execute(tmplSkills, ParseSkills(s.Content))
	case resume.SectionEducation:
		return r.execute(tmplEducation, ParseEducation(s.Content))
	case resume.SectionAchievements:
		return r.execute(tmplAchievements, ParseAchievements(s.Content))
	case resume.SectionProjects:
		return r.execute(tmplProjects, ParseProjects(s.Content))
	default:
		fragment, err := r.md.ToFragment(ctx, strings.Join(s.Content, "\n"))
		if err != nil {
			return "", err
		}
		// #nosec G203 -- goldmark escapes raw HTML (no WithUnsafe)
		return template.HTML(fragment), nil
	}
}

// RenderDocument renders a full HTML5 document: header with name, subtitle
// and contact line, then one <section> per non-summary section.
func (r *Renderer) RenderDocument(ctx context.Context, doc resume.Document, opts DocumentOptions) (string, error) {
	body := doc.Body()

	data := documentData{
		Name:       doc.Name,
		Stylesheet: opts.Stylesheet,
		Subtitle:   opts.Subtitle,
		Contact:    ParseContact(doc.Contact),
		Sections:   make([]renderedSection, 0, len(body)),
	}
	if data.Stylesheet == "" {
		data.Stylesheet = DefaultStylesheet
	}
	if data.Subtitle == "" {
		data.Subtitle = Subtitle(doc)
	}

	for _, s := range body {
		html, err := r.RenderSection(ctx, s)
		if err != nil {
			return "", fmt.Errorf("rendering section %q: %w", s.Title, err)
		}
		data.Sections = append(data.Sections, renderedSection{Title: s.Title, Body: html})
	}

	out, err := r.execute(tmplDocument, data)
	if err != nil {
		return "", err
	}

	return r.css.InjectCSS(ctx, string(out), opts.InlineCSS), nil
}

// execute runs one named template. html/template has escaped the output,
// so it is safe to embed as template.HTML.
func (r *Renderer) execute(name string, data any) (template.HTML, error) {
	var buf bytes.Buffer
	if err := r.tmpl.ExecuteTemplate(&buf, name, data); err != nil {
		return "", fmt.Errorf("%w: %s: %v", ErrTemplateRender, name, err)
	}
	// #nosec G203 -- produced by html/template
	return template.HTML(buf.String()), nil
}

// Subtitle derives the header subtitle from the summary section: its text
// up to the first period, without an "Independent Contractor @ " prefix.
func Subtitle(doc resume.Document) string {
	summary := doc.Summary()
	if summary == nil {
		return DefaultSubtitle
	}

	text := strings.Replace(strings.Join(summary.Content, " "), contractorPrefix, "", 1)
	head, _, _ := strings.Cut(text, ".")
	if head = strings.TrimSpace(head); head == "" {
		return DefaultSubtitle
	}
	return head
}
