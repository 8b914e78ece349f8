package feature

import (
	"regexp"
	"strings"
)

// educationPoints maps a recognized degree level to its score contribution.
var educationPoints = map[string]int{
	"phd": 10, "ph.d": 10, "doctorate": 10,
	"me": 8, "m.e": 8, "ms": 8, "m.s": 8, "master": 8,
	"be": 6, "b.e": 6, "bs": 6, "b.s": 6, "bachelor": 6,
	"diploma": 3,
}

// quantifiableRe matches measurable outcomes in responsibility text:
// percentages, "N+" counts, or counts of users/clients/projects/years.
var quantifiableRe = regexp.MustCompile(`\d+%|\d+\+|\d+\s*(users|clients|projects|years)`)

// QualityScore computes the heuristic resume quality score in [0,100] as the
// sum of five capped sub-scores. It is deterministic: same inputs, same score.
func QualityScore(rec Record, skills []string, experienceYears float64, educationLevel string) int {
	score := experienceDepthScore(experienceYears) +
		skillRichnessScore(len(skills)) +
		achievementScore(rec) +
		educationScore(rec, educationLevel) +
		completenessScore(rec)

	if score > 100 {
		score = 100
	}
	if score < 0 {
		score = 0
	}
	return score
}

// experienceDepthScore awards up to 30 points for total years of experience.
func experienceDepthScore(years float64) int {
	switch {
	case years >= 10:
		return 30
	case years >= 7:
		return 25
	case years >= 5:
		return 20
	case years >= 3:
		return 15
	case years >= 1:
		return 10
	case years > 0:
		return 5
	}
	return 0
}

// skillRichnessScore awards up to 25 points for breadth of skills.
func skillRichnessScore(count int) int {
	switch {
	case count >= 15:
		return 25
	case count >= 10:
		return 20
	case count >= 7:
		return 15
	case count >= 5:
		return 10
	case count >= 3:
		return 5
	}
	return 0
}

// achievementScore awards up to 25 points for quantified outcomes in
// responsibilities and stated project impact.
func achievementScore(rec Record) int {
	hasQuantifiable := false
	for _, exp := range rec.Experience {
		for _, duty := range exp.Responsibilities {
			if quantifiableRe.MatchString(strings.ToLower(duty)) {
				hasQuantifiable = true
				break
			}
		}
		if hasQuantifiable {
			break
		}
	}

	hasImpact := false
	for _, proj := range rec.Projects {
		if !isSentinel(proj.Impact) {
			hasImpact = true
			break
		}
	}

	switch {
	case hasQuantifiable && hasImpact:
		return 25
	case hasQuantifiable || hasImpact:
		return 15
	case len(rec.Experience) >= 2:
		return 10
	case len(rec.Experience) >= 1:
		return 5
	}
	return 0
}

// educationScore awards up to 10 points for the highest degree plus a small
// certifications bonus.
func educationScore(rec Record, educationLevel string) int {
	score := educationPoints[strings.ToLower(educationLevel)]

	certs := rec.Certifications
	if certs.IsList() {
		bonus := len(certs.List)
		if bonus > 2 {
			bonus = 2
		}
		score += bonus
	} else if !isSentinel(certs.Value) {
		score += 2
	}
	return score
}

// completenessScore awards up to 10 points for structural completeness:
// a summary, a contact email and at least one project.
func completenessScore(rec Record) int {
	present := 0
	if strings.TrimSpace(rec.PersonalInfo.Summary) != "" {
		present++
	}
	if strings.TrimSpace(rec.PersonalInfo.Email) != "" {
		present++
	}
	if len(rec.Projects) > 0 {
		present++
	}

	switch present {
	case 3:
		return 10
	case 2:
		return 7
	case 1:
		return 5
	}
	return 0
}
