package vocab

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/interview-ace/ace/internal/ml/dataset"
)

func tokenShard() []dataset.Example {
	return []dataset.Example{
		{Text: "go redis go postgres"},
		{Text: "go postgres kafka"},
		{Text: "Redis GO"},
	}
}

func TestBuildTokensFrequencyOrder(t *testing.T) {
	v := BuildTokens(tokenShard(), DefaultMaxTokens)

	// go:4, redis:2, postgres:2, kafka:1. Ties keep first-seen order.
	assert.Equal(t, []string{"go", "redis", "postgres", "kafka"}, v.Entries)
	assert.Equal(t, 0, v.Index("go"))
	assert.Equal(t, -1, v.Index("terraform"))
}

func TestBuildTokensDeterministic(t *testing.T) {
	first := BuildTokens(tokenShard(), DefaultMaxTokens)
	second := BuildTokens(tokenShard(), DefaultMaxTokens)

	assert.Equal(t, first.Entries, second.Entries)
}

func TestBuildTokensCap(t *testing.T) {
	v := BuildTokens(tokenShard(), 2)

	assert.Equal(t, []string{"go", "redis"}, v.Entries)
}

func TestBuildSkillsMinCount(t *testing.T) {
	examples := []dataset.Example{
		{Skills: []string{"Go", "Redis"}},
		{Skills: []string{"Go", "Terraform"}},
		{Skills: []string{"Redis"}},
	}

	v := BuildSkills(examples, DefaultSkillMinCount, DefaultMaxSkills)

	// Terraform appears once and is dropped. Go and Redis tie at 2,
	// first-seen order wins.
	assert.Equal(t, []string{"Go", "Redis"}, v.Entries)
}

func TestVectorizeCountsAndIgnoresOOV(t *testing.T) {
	v := New([]string{"go", "redis"})

	vec := v.Vectorize("Go go kafka redis")

	assert.Equal(t, []float64{2, 1}, vec)
}

func TestTargetsMultiHot(t *testing.T) {
	v := New([]string{"Go", "Redis", "Kafka"})

	vec := v.Targets([]string{"Kafka", "Go", "Terraform"})

	assert.Equal(t, []float64{1, 0, 1}, vec)
}
