package pipeline

import (
	"regexp"
	"strings"
)

const (
	bulletPrefix  = "- "
	entryPrefix   = "### "
	headingMarker = "#"

	companySeparator = " | "
	projectDash      = " — "
	educationDash    = "—"
)

var (
	// "Engineer (2020–2022)" -> title, duration.
	titleDurationRe = regexp.MustCompile(`^(.+?)\s*\((.+?)\)\s*$`)
	parentheticalRe = regexp.MustCompile(`\((.+?)\)`)
	yearRe          = regexp.MustCompile(`\d{4}`)
)

// achievementVerbs mark a first experience bullet as an achievement
// rather than the job description.
var achievementVerbs = []string{"Achieved", "Generated", "Presented", "Established"}

// achievementIcons cycle over the items of an achievements section.
var achievementIcons = []string{"🚀", "⚡", "💎", "🌟", "🎯", "💡"}

// Job is one entry of an experience section.
type Job struct {
	Company      string
	Location     string
	Title        string
	Duration     string
	Description  []string
	Achievements []string
}

// DescriptionText joins the description lines with a space.
func (j Job) DescriptionText() string {
	return strings.Join(j.Description, " ")
}

// EducationEntry is one entry of an education section.
type EducationEntry struct {
	Degree   string
	School   string
	Location string
	Duration string
}

// ProjectEntry is one bullet of a projects section.
type ProjectEntry struct {
	Name        string
	Description string
}

// AchievementItem is one card of an achievements section.
type AchievementItem struct {
	Icon        string
	Title       string
	Description string
}

// ParseJobs groups experience lines into jobs.
// Lines before the first "### " heading are ignored.
func ParseJobs(lines []string) []Job {
	var jobs []Job
	var cur *Job

	for _, line := range lines {
		if strings.HasPrefix(line, entryPrefix) {
			jobs = append(jobs, newJob(strings.TrimSpace(line[len(entryPrefix):])))
			cur = &jobs[len(jobs)-1]
			continue
		}
		if cur == nil {
			continue
		}

		switch {
		case cur.Title == "" && !strings.HasPrefix(line, "-"):
			if m := titleDurationRe.FindStringSubmatch(line); m != nil {
				cur.Title = strings.TrimSpace(m[1])
				cur.Duration = strings.TrimSpace(m[2])
			} else {
				cur.Title = strings.TrimSpace(line)
			}
		case strings.HasPrefix(line, bulletPrefix):
			text := strings.TrimSpace(line[len(bulletPrefix):])
			if len(cur.Description) == 0 && !startsWithAny(text, achievementVerbs) {
				cur.Description = append(cur.Description, text)
			} else {
				cur.Achievements = append(cur.Achievements, text)
			}
		case !strings.HasPrefix(line, headingMarker):
			cur.Description = append(cur.Description, line)
		}
	}

	return jobs
}

// newJob builds a job from the text of a "Company | Location" heading.
func newJob(heading string) Job {
	company, location, _ := strings.Cut(heading, companySeparator)
	// Anything after a second separator is dropped.
	location, _, _ = strings.Cut(location, companySeparator)
	return Job{Company: company, Location: location}
}

// ParseSkills flattens skill bullets. "Category: a, b" yields a and b;
// a bullet without a category is one skill.
func ParseSkills(lines []string) []string {
	var skills []string

	for _, line := range lines {
		if !strings.HasPrefix(line, bulletPrefix) {
			continue
		}
		text := strings.TrimSpace(line[len(bulletPrefix):])

		if i := strings.Index(text, ":"); i > 0 {
			for _, item := range strings.Split(text[i+1:], ",") {
				if item = strings.TrimSpace(item); item != "" {
					skills = append(skills, item)
				}
			}
			continue
		}
		if text != "" {
			skills = append(skills, text)
		}
	}

	return skills
}

// ParseEducation groups education lines into entries.
// An entry starts on a "Degree — School" line or on any line naming a
// University or College; a later line with a parenthetical or a year
// supplies the duration.
func ParseEducation(lines []string) []EducationEntry {
	var entries []EducationEntry
	var cur *EducationEntry

	for _, line := range lines {
		text := strings.TrimSpace(strings.TrimPrefix(line, entryPrefix))

		if isEducationEntry(line, text) {
			entries = append(entries, newEducationEntry(text))
			cur = &entries[len(entries)-1]
			continue
		}
		if cur == nil || (!strings.Contains(line, "(") && !yearRe.MatchString(line)) {
			continue
		}

		if m := parentheticalRe.FindStringSubmatchIndex(line); m != nil {
			cur.Duration = line[m[2]:m[3]]
			if cur.Location == "" {
				cur.Location = strings.Trim(line[:m[0]]+line[m[1]:], " |,-—")
			}
		}
	}

	return entries
}

func isEducationEntry(line, text string) bool {
	if strings.Contains(text, "University") || strings.Contains(text, "College") {
		return true
	}
	if strings.HasPrefix(line, "-") {
		return false
	}
	return !strings.HasPrefix(text, headingMarker) && strings.Contains(text, educationDash)
}

func newEducationEntry(text string) EducationEntry {
	degree, school, _ := strings.Cut(text, educationDash)
	degree = strings.TrimSpace(degree)
	if degree == "" {
		degree = text
	}
	return EducationEntry{Degree: degree, School: strings.TrimSpace(school)}
}

// ParseAchievements turns bullets into achievement cards.
// "Title: description" splits on the first colon; otherwise the first
// three words are the title.
func ParseAchievements(lines []string) []AchievementItem {
	var items []AchievementItem

	for _, line := range lines {
		if !strings.HasPrefix(line, bulletPrefix) {
			continue
		}
		text := strings.TrimSpace(line[len(bulletPrefix):])

		var title, desc string
		if i := strings.Index(text, ":"); i > 0 {
			title = strings.TrimSpace(text[:i])
			desc = strings.TrimSpace(text[i+1:])
		} else {
			words := strings.Split(text, " ")
			n := min(3, len(words))
			title = strings.Join(words[:n], " ")
			desc = strings.Join(words[n:], " ")
		}
		if desc == "" {
			desc = text
		}

		items = append(items, AchievementItem{
			Icon:        achievementIcons[len(items)%len(achievementIcons)],
			Title:       title,
			Description: desc,
		})
	}

	return items
}

// ParseProjects turns bullets into projects split on the first " — ".
func ParseProjects(lines []string) []ProjectEntry {
	var projects []ProjectEntry

	for _, line := range lines {
		if !strings.HasPrefix(line, bulletPrefix) {
			continue
		}
		text := strings.TrimSpace(line[len(bulletPrefix):])

		if i := strings.Index(text, projectDash); i > 0 {
			projects = append(projects, ProjectEntry{
				Name:        strings.TrimSpace(text[:i]),
				Description: strings.TrimSpace(text[i+len(projectDash):]),
			})
			continue
		}
		projects = append(projects, ProjectEntry{Name: text})
	}

	return projects
}

func startsWithAny(s string, prefixes []string) bool {
	for _, p := range prefixes {
		if strings.HasPrefix(s, p) {
			return true
		}
	}
	return false
}
