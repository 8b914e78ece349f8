package feature

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

const (
	maxSummaryEntries    = 5
	maxFlattenedSkills   = 20
	maxFlattenedProjects = 3
	maxFlattenedDuties   = 3
	daysPerYear          = 365.25
	unknownEducation     = "Unknown"
)

// degreeRank orders degree levels for picking the highest one. Keys are the
// lower-cased level strings as they appear in the corpus; anything else
// ranks 0.
var degreeRank = map[string]int{
	"phd": 5, "ph.d": 5, "doctorate": 5,
	"me": 4, "m.e": 4, "ms": 4, "m.s": 4, "master": 4,
	"be": 3, "b.e": 3, "bs": 3, "b.s": 3, "bachelor": 3,
	"diploma": 2,
	"hsc":     1,
	"ssc":     1,
}

var (
	durationYearRe  = regexp.MustCompile(`(\d+)\s*year`)
	durationMonthRe = regexp.MustCompile(`(\d+)\s*month`)
)

// ExtractSkills returns the deduplicated union of all technical skill
// sub-categories, excluding sentinel values. Order is first-seen.
func ExtractSkills(rec Record) []string {
	tech := rec.Skills.Technical
	categories := [][]SkillRef{
		tech.ProgrammingLanguages,
		tech.Frameworks,
		tech.Databases,
		tech.Cloud,
		tech.ProjectManagement,
		tech.Automation,
		tech.SoftwareTools,
	}

	seen := make(map[string]bool)
	var skills []string
	for _, category := range categories {
		for _, ref := range category {
			name := strings.TrimSpace(ref.Name)
			if isSentinel(name) || seen[name] {
				continue
			}
			seen[name] = true
			skills = append(skills, name)
		}
	}
	return skills
}

// ExtractExperienceSummary joins up to five "Title at Company" fragments for
// experience entries with a usable title and company.
func ExtractExperienceSummary(rec Record) string {
	var parts []string
	for _, exp := range rec.Experience {
		title := strings.TrimSpace(exp.Title)
		company := strings.TrimSpace(exp.Company)
		if title == "" || company == "" || isSentinel(title) {
			continue
		}
		parts = append(parts, title+" at "+company)
	}
	if len(parts) > maxSummaryEntries {
		parts = parts[:maxSummaryEntries]
	}
	return strings.Join(parts, ", ")
}

// ExtractEducationLevel returns the highest-ranked degree level string found,
// or "Unknown" when no usable level exists. The first entry wins ties.
func ExtractEducationLevel(rec Record) string {
	best := ""
	bestRank := -1
	for _, edu := range rec.Education {
		level := strings.TrimSpace(edu.Degree.Level)
		if isSentinel(level) {
			continue
		}
		rank := degreeRank[strings.ToLower(level)]
		if rank > bestRank {
			best = level
			bestRank = rank
		}
	}
	if best == "" {
		return unknownEducation
	}
	return best
}

// ExtractExperienceYears sums per-job durations, rounded to one decimal.
// A free-text duration field wins over start/end dates; unparseable entries
// contribute zero.
func ExtractExperienceYears(rec Record) float64 {
	return experienceYearsAt(rec, time.Now())
}

func experienceYearsAt(rec Record, now time.Time) float64 {
	total := 0.0
	for _, exp := range rec.Experience {
		total += entryYears(exp.Dates, now)
	}
	return round1(total)
}

func entryYears(dates Dates, now time.Time) float64 {
	duration := strings.ToLower(strings.TrimSpace(dates.Duration))
	if duration != "" && duration != "unknown" && duration != "not provided" && duration != "present" {
		years := 0.0
		if m := durationYearRe.FindStringSubmatch(duration); m != nil {
			n, _ := strconv.Atoi(m[1])
			years += float64(n)
		}
		if m := durationMonthRe.FindStringSubmatch(duration); m != nil {
			n, _ := strconv.Atoi(m[1])
			years += float64(n) / 12.0
		}
		return years
	}

	start := strings.TrimSpace(dates.Start)
	if start == "" || isSentinel(start) {
		return 0
	}
	startDate, err := parseYearMonth(start)
	if err != nil {
		return 0
	}

	end := strings.ToLower(strings.TrimSpace(dates.End))
	endDate := now
	if end != "" && end != "present" && end != "current" {
		endDate, err = parseYearMonth(end)
		if err != nil {
			return 0
		}
	}

	days := endDate.Sub(startDate).Hours() / 24
	if days < 0 {
		return 0
	}
	return days / daysPerYear
}

// parseYearMonth parses "YYYY-MM" prefixes, tolerating full dates like
// "2017-08-01".
func parseYearMonth(value string) (time.Time, error) {
	if len(value) > 7 {
		value = value[:7]
	}
	return time.Parse("2006-01", value)
}

func round1(v float64) float64 {
	s := strconv.FormatFloat(v, 'f', 1, 64)
	out, _ := strconv.ParseFloat(s, 64)
	return out
}

// FlattenText renders a record as the text representation used for
// vectorization: summary, experience with top duties, skills, education and
// projects, one aspect per line.
func FlattenText(rec Record) string {
	var parts []string

	if summary := rec.PersonalInfo.Summary; !isSentinel(summary) {
		parts = append(parts, "Summary: "+summary)
	}

	for _, exp := range rec.Experience {
		if exp.Title == "" || exp.Company == "" {
			continue
		}
		parts = append(parts, fmt.Sprintf("Experience: %s at %s", exp.Title, exp.Company))
		duties := exp.Responsibilities
		if len(duties) > maxFlattenedDuties {
			duties = duties[:maxFlattenedDuties]
		}
		for _, duty := range duties {
			if isSentinel(duty) {
				continue
			}
			parts = append(parts, "  - "+duty)
		}
	}

	if skills := ExtractSkills(rec); len(skills) > 0 {
		if len(skills) > maxFlattenedSkills {
			skills = skills[:maxFlattenedSkills]
		}
		parts = append(parts, "Skills: "+strings.Join(skills, ", "))
	}

	for _, edu := range rec.Education {
		level := edu.Degree.Level
		if level == "" {
			continue
		}
		line := "Education: " + level
		if edu.Degree.Field != "" {
			line += " in " + edu.Degree.Field
		}
		if edu.Institution.Name != "" {
			line += " from " + edu.Institution.Name
		}
		parts = append(parts, line)
	}

	projects := rec.Projects
	if len(projects) > maxFlattenedProjects {
		projects = projects[:maxFlattenedProjects]
	}
	for _, proj := range projects {
		if isSentinel(proj.Name) {
			continue
		}
		parts = append(parts, "Project: "+proj.Name)
		if !isSentinel(proj.Description) {
			parts = append(parts, "  "+proj.Description)
		}
	}

	return strings.Join(parts, "\n")
}
