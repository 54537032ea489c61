package resume

import "strings"

// Line prefixes of the résumé convention.
const (
	namePrefix    = "# "
	sectionPrefix = "## "
	bulletPrefix  = "- "
)

// utf8BOM is stripped from the start of the input.
const utf8BOM = "\uFEFF"

// Parse scans markdown line by line and builds a Document.
// It never fails: unrecognized lines go to the open section or are dropped.
func Parse(markdown string) Document {
	var (
		doc       Document
		current   *Section
		inContact bool
	)

	for _, raw := range splitLines(markdown) {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}

		if doc.Name == "" && strings.HasPrefix(line, namePrefix) {
			doc.Name = strings.TrimSpace(line[len(namePrefix):])
			inContact = true
			continue
		}

		if inContact && strings.HasPrefix(line, bulletPrefix) {
			doc.Contact = append(doc.Contact, strings.TrimSpace(line[len(bulletPrefix):]))
			continue
		}

		if strings.HasPrefix(line, sectionPrefix) {
			inContact = false
			title := strings.TrimSpace(line[len(sectionPrefix):])
			doc.Sections = append(doc.Sections, Section{
				Title: title,
				Type:  Classify(title),
			})
			current = &doc.Sections[len(doc.Sections)-1]
			continue
		}

		if current != nil {
			current.Content = append(current.Content, line)
		}
	}

	return doc
}

// splitLines splits on LF, CRLF and lone CR, after removing a UTF-8 BOM.
func splitLines(s string) []string {
	s = strings.TrimPrefix(s, utf8BOM)
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\r", "\n")
	return strings.Split(s, "\n")
}
