package knowledge

import (
	"strings"
	"time"

	"github.com/interview-ace/ace/pkg/kernel"
)

// RoleBoost is added to a match's similarity when the document's role
// contains the search's role hint.
const RoleBoost = 0.05

// MaxEmbedChars limits how much document or query text is embedded.
const MaxEmbedChars = 4000

// Document is one ingested knowledge-base entry.
type Document struct {
	ID        kernel.DocumentID `db:"id" json:"id"`
	Title     string            `db:"title" json:"title"`
	Role      string            `db:"role" json:"role"`
	Text      string            `db:"text" json:"text"`
	Tags      []string          `db:"tags" json:"tags,omitempty"`
	CreatedAt time.Time         `db:"created_at" json:"created_at"`
}

// Match pairs a document with its search similarity.
type Match struct {
	Document   Document `json:"document"`
	Similarity float64  `json:"similarity"`
}

// MatchesRole reports whether the document's role contains the hint,
// case-insensitively.
func (d *Document) MatchesRole(hint string) bool {
	if hint == "" {
		return false
	}
	return strings.Contains(strings.ToLower(d.Role), strings.ToLower(hint))
}

// EmbedText returns the slice of text that gets embedded.
func EmbedText(text string) string {
	if len(text) > MaxEmbedChars {
		return text[:MaxEmbedChars]
	}
	return text
}
