package feature

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleRecord() Record {
	return Record{
		PersonalInfo: PersonalInfo{
			Name:    "Asha Patel",
			Email:   "asha@example.com",
			Summary: "Backend engineer focused on distributed systems.",
		},
		Skills: SkillSections{
			Technical: TechnicalSkills{
				ProgrammingLanguages: []SkillRef{{Name: "Go"}, {Name: "Python"}},
				Frameworks:           []SkillRef{{Name: "Gin"}, {Name: "go"}},
				Databases:            []SkillRef{{Name: "PostgreSQL"}, {Name: "unknown"}},
			},
		},
		Experience: []Experience{
			{
				Title:   "Senior Engineer",
				Company: "Acme",
				Dates:   Dates{Start: "2018-01", End: "2020-01"},
				Responsibilities: []string{
					"Reduced latency by 40%",
					"Mentored 5 engineers",
				},
			},
			{
				Title:   "Engineer",
				Company: "Globex",
				Dates:   Dates{Duration: "1 year 6 months"},
			},
		},
		Education: []Education{
			{Degree: Degree{Level: "B.S", Field: "Computer Science"}, Institution: Institution{Name: "State University"}},
			{Degree: Degree{Level: "MS", Field: "Computer Science"}, Institution: Institution{Name: "Tech Institute"}},
		},
		Projects: []Project{
			{Name: "Pipeline", Description: "Streaming ETL", Impact: "Cut costs 30%"},
		},
	}
}

func TestExtractSkillsDedupAndSentinels(t *testing.T) {
	skills := ExtractSkills(sampleRecord())

	// Dedup is case-sensitive: "go" is a distinct entry from "Go".
	assert.Equal(t, []string{"Go", "Python", "Gin", "go", "PostgreSQL"}, skills)
}

func TestExtractSkillsDropsExactDuplicates(t *testing.T) {
	rec := Record{Skills: SkillSections{Technical: TechnicalSkills{
		ProgrammingLanguages: []SkillRef{{Name: "Go"}, {Name: "Go"}},
		Frameworks:           []SkillRef{{Name: "Go"}},
	}}}

	assert.Equal(t, []string{"Go"}, ExtractSkills(rec))
}

func TestExtractSkillsEmptyRecord(t *testing.T) {
	assert.Empty(t, ExtractSkills(Record{}))
}

func TestExtractExperienceSummary(t *testing.T) {
	summary := ExtractExperienceSummary(sampleRecord())

	assert.Equal(t, "Senior Engineer at Acme, Engineer at Globex", summary)
}

func TestExtractExperienceSummaryCapsEntries(t *testing.T) {
	rec := Record{}
	for i := 0; i < 8; i++ {
		rec.Experience = append(rec.Experience, Experience{Title: "Engineer", Company: "Acme"})
	}

	assert.Equal(t, maxSummaryEntries, strings.Count(ExtractExperienceSummary(rec), "Engineer at Acme"))
}

func TestExtractEducationLevelPicksHighest(t *testing.T) {
	assert.Equal(t, "MS", ExtractEducationLevel(sampleRecord()))
}

func TestExtractEducationLevelPhDOverMaster(t *testing.T) {
	rec := Record{Education: []Education{
		{Degree: Degree{Level: "Master"}},
		{Degree: Degree{Level: "PhD"}},
		{Degree: Degree{Level: "Bachelor"}},
	}}

	assert.Equal(t, "PhD", ExtractEducationLevel(rec))
}

func TestExtractEducationLevelUnknownFallback(t *testing.T) {
	assert.Equal(t, unknownEducation, ExtractEducationLevel(Record{}))
}

func TestExperienceYearsFromDates(t *testing.T) {
	now := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	rec := Record{Experience: []Experience{
		{Dates: Dates{Start: "2018-01", End: "2020-01"}},
	}}

	assert.InDelta(t, 2.0, experienceYearsAt(rec, now), 0.05)
}

func TestExperienceYearsFromDuration(t *testing.T) {
	now := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	rec := Record{Experience: []Experience{
		{Dates: Dates{Duration: "1 year 6 months"}},
	}}

	assert.InDelta(t, 1.5, experienceYearsAt(rec, now), 0.001)
}

func TestExperienceYearsOpenEndedCountsToNow(t *testing.T) {
	now := time.Date(2021, 1, 1, 0, 0, 0, 0, time.UTC)
	rec := Record{Experience: []Experience{
		{Dates: Dates{Start: "2020-01", End: ""}},
	}}

	assert.InDelta(t, 1.0, experienceYearsAt(rec, now), 0.05)
}

func TestExperienceYearsNegativeRangeIsZero(t *testing.T) {
	now := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	rec := Record{Experience: []Experience{
		{Dates: Dates{Start: "2022-01", End: "2020-01"}},
	}}

	assert.Zero(t, experienceYearsAt(rec, now))
}

func TestFlattenTextSections(t *testing.T) {
	text := FlattenText(sampleRecord())

	assert.Contains(t, text, "Summary: Backend engineer")
	assert.Contains(t, text, "Experience: Senior Engineer at Acme")
	assert.Contains(t, text, "Skills: Go, Python, Gin, go, PostgreSQL")
	assert.Contains(t, text, "Education: MS in Computer Science from Tech Institute")
	assert.Contains(t, text, "Project: Pipeline")
}

func TestCertificationsStringOrList(t *testing.T) {
	var rec Record
	require.NoError(t, json.Unmarshal([]byte(`{"certifications": "AWS SAA"}`), &rec))
	assert.False(t, rec.Certifications.IsList())
	assert.Equal(t, "AWS SAA", rec.Certifications.Value)

	var rec2 Record
	require.NoError(t, json.Unmarshal([]byte(`{"certifications": ["AWS SAA", "CKA"]}`), &rec2))
	assert.True(t, rec2.Certifications.IsList())
	assert.Equal(t, []string{"AWS SAA", "CKA"}, rec2.Certifications.List)
}
