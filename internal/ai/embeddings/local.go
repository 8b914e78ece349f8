package embeddings

import "context"

const (
	localDimension = 64
	localMaxChars  = 256
)

// LocalHash is a deterministic character-hash embedder used when no API key
// is configured. It is not semantically meaningful but keeps retrieval
// functional and reproducible offline.
type LocalHash struct{}

// NewLocalHash creates the offline embedder.
func NewLocalHash() *LocalHash { return &LocalHash{} }

// Dimension returns the fixed local vector size.
func (*LocalHash) Dimension() int { return localDimension }

// GenerateEmbedding folds the first 256 runes into a 64-bucket vector.
func (*LocalHash) GenerateEmbedding(_ context.Context, text string) ([]float32, error) {
	vec := make([]float32, localDimension)
	for i, ch := range []rune(text) {
		if i >= localMaxChars {
			break
		}
		vec[i%localDimension] += float32(ch%97) / 97.0
	}
	return vec, nil
}
