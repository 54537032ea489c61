package resume2pdf

import (
	"fmt"
	"sort"
	"strings"

	"github.com/alnah/go-resume2pdf/internal/resume"
)

// Document is a parsed résumé.
type Document = resume.Document

// Section is one "## " block of a résumé.
type Section = resume.Section

// SectionType selects the formatter used for a section.
type SectionType = resume.SectionType

// Section types.
const (
	SectionSummary      = resume.SectionSummary
	SectionExperience   = resume.SectionExperience
	SectionSkills       = resume.SectionSkills
	SectionEducation    = resume.SectionEducation
	SectionProjects     = resume.SectionProjects
	SectionAchievements = resume.SectionAchievements
	SectionGeneral      = resume.SectionGeneral
)

// Parse splits a markdown résumé into name, contact entries and typed sections.
// It never fails: unrecognized lines are attached to the open section or dropped.
func Parse(markdown string) *Document {
	doc := resume.Parse(markdown)
	return &doc
}

// Page preset names.
const (
	PresetDefault = "default"
	PresetPrint   = "print"
	PresetScreen  = "screen"
	PresetCompact = "compact"
)

// Margin and scale bounds.
const (
	MinMargin    = 0.25
	MaxMargin    = 3.0
	MinScale     = 0.1
	MaxScale     = 2.0
	DefaultScale = 1.0
)

// Margins are page margins in inches.
type Margins struct {
	Top, Right, Bottom, Left float64
}

func uniform(in float64) Margins {
	return Margins{Top: in, Right: in, Bottom: in, Left: in}
}

// pageLayout is a resolved preset.
type pageLayout struct {
	Margins Margins
	Scale   float64
}

var presets = map[string]pageLayout{
	PresetDefault: {Margins: uniform(0.5), Scale: DefaultScale},
	PresetPrint:   {Margins: uniform(0.75), Scale: DefaultScale},
	PresetScreen:  {Margins: uniform(0.25), Scale: DefaultScale},
	PresetCompact: {Margins: Margins{Top: 0.5, Right: 0.4, Bottom: 0.5, Left: 0.4}, Scale: 0.9},
}

// PresetNames returns the known page presets, sorted.
func PresetNames() []string {
	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// PageSettings configures the printed page. Paper is always A4.
type PageSettings struct {
	Preset string  // "default", "print", "screen", "compact"; empty = default
	Margin float64 // inches on every side, overrides the preset when non-zero
	Scale  float64 // print scale, overrides the preset when non-zero
}

// Validate checks the preset name and the margin and scale bounds.
// Returns nil if p is nil (nil means use defaults).
func (p *PageSettings) Validate() error {
	if p == nil {
		return nil
	}

	if p.Preset != "" {
		if _, ok := presets[strings.ToLower(p.Preset)]; !ok {
			return fmt.Errorf("%w: %q (available: %s)", ErrInvalidPreset, p.Preset, strings.Join(PresetNames(), ", "))
		}
	}

	if p.Margin != 0 && (p.Margin < MinMargin || p.Margin > MaxMargin) {
		return fmt.Errorf("%w: %.2f (must be between %.2f and %.2f)", ErrInvalidMargin, p.Margin, MinMargin, MaxMargin)
	}

	if p.Scale != 0 && (p.Scale < MinScale || p.Scale > MaxScale) {
		return fmt.Errorf("%w: %.2f (must be between %.1f and %.1f)", ErrInvalidScale, p.Scale, MinScale, MaxScale)
	}

	return nil
}

// layout resolves the settings to concrete margins and scale.
// Call Validate first; an unknown preset resolves to the default.
func (p *PageSettings) layout() pageLayout {
	l := presets[PresetDefault]
	if p == nil {
		return l
	}

	if preset, ok := presets[strings.ToLower(p.Preset)]; ok {
		l = preset
	}
	if p.Margin != 0 {
		l.Margins = uniform(p.Margin)
	}
	if p.Scale != 0 {
		l.Scale = p.Scale
	}
	return l
}

// Input contains conversion parameters.
type Input struct {
	Markdown   string        // résumé markdown (required)
	Stylesheet string        // stylesheet href written into the HTML, "resume.css" when empty
	InlineCSS  bool          // embed the converter style in the HTML as well as linking it
	Subtitle   string        // overrides the subtitle taken from the summary section
	BaseDir    string        // directory the HTML is written to; resolves relative references
	Page       *PageSettings // nil = default preset
	HTMLOnly   bool          // skip PDF generation
}

// ConvertResult holds the outputs of a conversion.
type ConvertResult struct {
	HTML []byte
	PDF  []byte // nil when Input.HTMLOnly is set
}

// CheckResult lists the problems reported by the browser while loading a page.
type CheckResult struct {
	ConsoleErrors []string // console.error messages
	Exceptions    []string // uncaught exceptions
}

// OK reports whether the page loaded without errors.
func (r *CheckResult) OK() bool {
	return len(r.ConsoleErrors) == 0 && len(r.Exceptions) == 0
}
