// Package vocab builds the token and skill vocabularies that fix the model's
// input and output dimensions.
package vocab

import (
	"sort"
	"strings"

	"github.com/interview-ace/ace/internal/ml/dataset"
)

const (
	// DefaultMaxTokens caps the token vocabulary.
	DefaultMaxTokens = 5000

	// DefaultSkillMinCount drops skills seen fewer times than this.
	DefaultSkillMinCount = 2

	// DefaultMaxSkills caps the skill vocabulary.
	DefaultMaxSkills = 200
)

// Vocabulary maps entries to dense indices. Index order is descending
// frequency with ties broken by first appearance, so building twice from the
// same shard yields identical assignments.
type Vocabulary struct {
	Entries []string
	index   map[string]int
}

// New constructs a Vocabulary from an ordered entry list, e.g. one restored
// from a checkpoint.
func New(entries []string) *Vocabulary {
	v := &Vocabulary{Entries: entries, index: make(map[string]int, len(entries))}
	for i, e := range entries {
		v.index[e] = i
	}
	return v
}

// Size returns the number of entries.
func (v *Vocabulary) Size() int { return len(v.Entries) }

// Index returns the dense index of entry, or -1 when out of vocabulary.
func (v *Vocabulary) Index(entry string) int {
	if i, ok := v.index[entry]; ok {
		return i
	}
	return -1
}

// counter accumulates frequencies while remembering first-seen order.
type counter struct {
	counts map[string]int
	order  []string
}

func newCounter() *counter {
	return &counter{counts: make(map[string]int)}
}

func (c *counter) add(entry string) {
	if _, ok := c.counts[entry]; !ok {
		c.order = append(c.order, entry)
	}
	c.counts[entry]++
}

// top returns up to limit entries with count >= minCount, ordered by
// descending frequency, ties by first appearance.
func (c *counter) top(minCount, limit int) []string {
	entries := make([]string, 0, len(c.order))
	for _, e := range c.order {
		if c.counts[e] >= minCount {
			entries = append(entries, e)
		}
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return c.counts[entries[i]] > c.counts[entries[j]]
	})
	if len(entries) > limit {
		entries = entries[:limit]
	}
	return entries
}

// Tokenize lower-cases text and splits on whitespace.
func Tokenize(text string) []string {
	return strings.Fields(strings.ToLower(text))
}

// BuildTokens builds the token vocabulary from the training shard.
func BuildTokens(examples []dataset.Example, maxTokens int) *Vocabulary {
	c := newCounter()
	for _, ex := range examples {
		for _, tok := range Tokenize(ex.Text) {
			c.add(tok)
		}
	}
	return New(c.top(1, maxTokens))
}

// BuildSkills builds the skill label vocabulary from the training shard.
func BuildSkills(examples []dataset.Example, minCount, maxSkills int) *Vocabulary {
	c := newCounter()
	for _, ex := range examples {
		for _, skill := range ex.Skills {
			c.add(skill)
		}
	}
	return New(c.top(minCount, maxSkills))
}

// Vectorize produces the bag-of-words count vector for text. Tokens outside
// the vocabulary are ignored.
func (v *Vocabulary) Vectorize(text string) []float64 {
	vec := make([]float64, v.Size())
	for _, tok := range Tokenize(text) {
		if i := v.Index(tok); i >= 0 {
			vec[i]++
		}
	}
	return vec
}

// Targets produces the multi-hot label vector for a skill list.
func (v *Vocabulary) Targets(skills []string) []float64 {
	vec := make([]float64, v.Size())
	for _, skill := range skills {
		if i := v.Index(skill); i >= 0 {
			vec[i] = 1
		}
	}
	return vec
}
