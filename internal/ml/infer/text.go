package infer

import (
	"regexp"
	"strings"
)

// The model predicts skills and a score only; experience summary and
// education level are recovered from the raw text with the same keyword
// priorities the feature extractor uses on structured records.

const maxSummaryLines = 5

var experienceLineRe = regexp.MustCompile(`(?m)^Experience:\s*(.+)$`)

// educationKeywords in descending priority. The first group with a match in
// the text wins.
var educationKeywords = []struct {
	label string
	words []string
}{
	{"PhD", []string{"phd", "ph.d", "doctorate"}},
	{"Master", []string{"master", "m.s", "msc", "m.e"}},
	{"Bachelor", []string{"bachelor", "b.s", "bsc", "b.e", "b.tech"}},
	{"Diploma", []string{"diploma"}},
}

// summaryFromText collects up to five "Experience:" lines from flattened
// resume text.
func summaryFromText(text string) string {
	matches := experienceLineRe.FindAllStringSubmatch(text, maxSummaryLines)
	parts := make([]string, 0, len(matches))
	for _, m := range matches {
		parts = append(parts, strings.TrimSpace(m[1]))
	}
	return strings.Join(parts, ", ")
}

// educationFromText scans for degree keywords, highest first.
func educationFromText(text string) string {
	lower := strings.ToLower(text)
	for _, group := range educationKeywords {
		for _, w := range group.words {
			if strings.Contains(lower, w) {
				return group.label
			}
		}
	}
	return "Unknown"
}
