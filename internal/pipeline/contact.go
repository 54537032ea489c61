package pipeline

import (
	"regexp"
	"strings"
)

var (
	markdownLinkRe = regexp.MustCompile(`\[([^\]]+)\]\(([^)]+)\)`)
	boldRe         = regexp.MustCompile(`\*\*(.*?)\*\*`)
)

// ContactItem is one entry of the header contact line.
// An empty Href renders plain text.
type ContactItem struct {
	Icon     string
	Text     string
	Href     string
	External bool
}

// contactRule maps a bold "**Label**:" marker to its rendering.
type contactRule struct {
	label string
	build func(value, raw string) (ContactItem, bool)
}

var contactRules = []contactRule{
	{"**Email**:", func(v, _ string) (ContactItem, bool) {
		return ContactItem{Icon: "📧", Text: v, Href: "mailto:" + v}, true
	}},
	{"**Phone**:", func(v, _ string) (ContactItem, bool) {
		return ContactItem{Icon: "📞", Text: v}, true
	}},
	{"**Web**:", func(v, _ string) (ContactItem, bool) {
		return ContactItem{Icon: "🌐", Text: v, Href: v, External: true}, true
	}},
	{"**GitHub**:", linkItem("🐙")},
	{"**LinkedIn**:", linkItem("💼")},
	{"**Location**:", func(v, _ string) (ContactItem, bool) {
		return ContactItem{Icon: "📍", Text: v}, true
	}},
}

// linkItem builds an item from the first markdown link of the entry.
// Entries without a link fall through to the next rule.
func linkItem(icon string) func(string, string) (ContactItem, bool) {
	return func(_, raw string) (ContactItem, bool) {
		m := markdownLinkRe.FindStringSubmatch(raw)
		if m == nil {
			return ContactItem{}, false
		}
		return ContactItem{Icon: icon, Text: m[1], Href: m[2], External: true}, true
	}
}

// ParseContact maps raw contact entries to display items.
// Unrecognized entries keep their text with **bold** markers removed.
func ParseContact(entries []string) []ContactItem {
	items := make([]ContactItem, 0, len(entries))
	for _, entry := range entries {
		items = append(items, contactItem(entry))
	}
	return items
}

func contactItem(entry string) ContactItem {
	for _, rule := range contactRules {
		if !strings.Contains(entry, rule.label) {
			continue
		}
		value := strings.TrimSpace(strings.Replace(entry, rule.label, "", 1))
		if item, ok := rule.build(value, entry); ok {
			return item
		}
	}
	return ContactItem{Text: boldRe.ReplaceAllString(entry, "$1")}
}
