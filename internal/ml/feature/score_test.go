package feature

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQualityScoreBounds(t *testing.T) {
	records := []Record{
		{},
		sampleRecord(),
		{Experience: []Experience{{Title: "Engineer", Company: "Acme"}}},
	}

	for _, rec := range records {
		skills := ExtractSkills(rec)
		years := ExtractExperienceYears(rec)
		level := ExtractEducationLevel(rec)

		score := QualityScore(rec, skills, years, level)
		assert.GreaterOrEqual(t, score, 0)
		assert.LessOrEqual(t, score, 100)
	}
}

func TestQualityScoreDeterministic(t *testing.T) {
	rec := sampleRecord()
	skills := ExtractSkills(rec)
	years := ExtractExperienceYears(rec)
	level := ExtractEducationLevel(rec)

	first := QualityScore(rec, skills, years, level)
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, QualityScore(rec, skills, years, level))
	}
}

func TestExperienceDepthSteps(t *testing.T) {
	cases := []struct {
		years float64
		want  int
	}{
		{12, 30},
		{8, 25},
		{5, 20},
		{3.5, 15},
		{1, 10},
		{0.4, 5},
		{0, 0},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, experienceDepthScore(tc.years), "years=%v", tc.years)
	}
}

func TestSkillRichnessSteps(t *testing.T) {
	cases := []struct {
		count int
		want  int
	}{
		{20, 25},
		{10, 20},
		{7, 15},
		{5, 10},
		{3, 5},
		{2, 0},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, skillRichnessScore(tc.count), "count=%d", tc.count)
	}
}

func TestAchievementScoreQuantifiableAndImpact(t *testing.T) {
	rec := Record{
		Experience: []Experience{{Responsibilities: []string{"Improved throughput by 40%"}}},
		Projects:   []Project{{Impact: "Cut infra spend in half"}},
	}
	assert.Equal(t, 25, achievementScore(rec))
}

func TestAchievementScoreQuantifiableOnly(t *testing.T) {
	rec := Record{
		Experience: []Experience{{Responsibilities: []string{"Supported 200+ clients"}}},
	}
	assert.Equal(t, 15, achievementScore(rec))
}

func TestAchievementScoreFallsBackToExperienceCount(t *testing.T) {
	rec := Record{Experience: []Experience{
		{Responsibilities: []string{"Wrote services"}},
		{Responsibilities: []string{"Ran deploys"}},
	}}
	assert.Equal(t, 10, achievementScore(rec))

	rec.Experience = rec.Experience[:1]
	assert.Equal(t, 5, achievementScore(rec))
}

func TestEducationScoreWithCertificationsList(t *testing.T) {
	var rec Record
	require.NoError(t, json.Unmarshal([]byte(`{"certifications": ["AWS SAA", "CKA", "CKAD"]}`), &rec))

	// Master's degree plus a capped bonus of 2 for the list.
	assert.Equal(t, 10, educationScore(rec, "MS"))
}

func TestEducationScoreWithCertificationString(t *testing.T) {
	var rec Record
	require.NoError(t, json.Unmarshal([]byte(`{"certifications": "AWS SAA"}`), &rec))

	assert.Equal(t, 8, educationScore(rec, "BE"))
}

func TestEducationScoreSentinelCertIgnored(t *testing.T) {
	var rec Record
	require.NoError(t, json.Unmarshal([]byte(`{"certifications": "not provided"}`), &rec))

	assert.Equal(t, 6, educationScore(rec, "B.S"))
}

func TestCompletenessScoreCounts(t *testing.T) {
	full := Record{
		PersonalInfo: PersonalInfo{Email: "a@b.c", Summary: "Engineer."},
		Projects:     []Project{{Name: "X"}},
	}
	assert.Equal(t, 10, completenessScore(full))

	two := Record{PersonalInfo: PersonalInfo{Email: "a@b.c", Summary: "Engineer."}}
	assert.Equal(t, 7, completenessScore(two))

	one := Record{PersonalInfo: PersonalInfo{Email: "a@b.c"}}
	assert.Equal(t, 5, completenessScore(one))

	assert.Zero(t, completenessScore(Record{}))
}
