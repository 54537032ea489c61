package resume

import "strings"

// SectionType classifies a section and selects the renderer that formats it.
type SectionType string

// Section types recognized from section titles.
const (
	SectionSummary      SectionType = "summary"
	SectionExperience   SectionType = "experience"
	SectionSkills       SectionType = "skills"
	SectionEducation    SectionType = "education"
	SectionProjects     SectionType = "projects"
	SectionAchievements SectionType = "achievements"
	SectionGeneral      SectionType = "general"
)

// Document is the parsed form of a markdown résumé.
type Document struct {
	Name     string
	Contact  []string  // raw contact entries, in document order
	Sections []Section // in document order
}

// Section is one H2 block of the résumé.
type Section struct {
	Title   string
	Type    SectionType
	Content []string // trimmed, non-empty lines
}

// classifyRules are checked in order; the first keyword found wins.
var classifyRules = []struct {
	keywords []string
	typ      SectionType
}{
	{[]string{"summary"}, SectionSummary},
	{[]string{"experience"}, SectionExperience},
	{[]string{"skills", "expertise"}, SectionSkills},
	{[]string{"education"}, SectionEducation},
	{[]string{"projects"}, SectionProjects},
	{[]string{"highlights"}, SectionAchievements},
}

// Classify returns the section type for a section title.
// Matching is a case-insensitive substring search.
func Classify(title string) SectionType {
	lower := strings.ToLower(title)
	for _, rule := range classifyRules {
		for _, kw := range rule.keywords {
			if strings.Contains(lower, kw) {
				return rule.typ
			}
		}
	}
	return SectionGeneral
}

// Summary returns the first summary section, or nil if there is none.
func (d *Document) Summary() *Section {
	for i := range d.Sections {
		if d.Sections[i].Type == SectionSummary {
			return &d.Sections[i]
		}
	}
	return nil
}

// Body returns every section except summaries, which feed the header instead.
func (d *Document) Body() []Section {
	body := make([]Section, 0, len(d.Sections))
	for _, s := range d.Sections {
		if s.Type != SectionSummary {
			body = append(body, s)
		}
	}
	return body
}
