package ports

import (
	"context"

	"github.com/karimelsayed/ragkb/internal/core/domain"
)

// DocumentLoader reads every supported file under a directory. Unreadable or
// unsupported files are skipped, not fatal.
type DocumentLoader interface {
	LoadDir(ctx context.Context, dir string) ([]domain.Document, error)
}

// Segmenter splits documents into retrievable chunks, preserving document
// order, per-document sequence and source attribution.
type Segmenter interface {
	Segment(documents []domain.Document) []domain.Chunk
}

// Embedder maps text to fixed-length vectors. Dimensionality must be
// consistent across all calls within one index's lifetime.
type Embedder interface {
	Embed(ctx context.Context, texts []string) ([][]float32, error)
	EmbedQuery(ctx context.Context, text string) ([]float32, error)
}

// Generator maps a prompt to generated text. It may be slow or fail; callers
// never retry capability failures.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// VectorIndex stores chunk/vector pairs and performs nearest-neighbor search.
// Mutation is append-only; implementations persist durably.
type VectorIndex interface {
	Add(ctx context.Context, chunks []domain.Chunk, vectors [][]float32) error
	Search(ctx context.Context, queryVector []float32, k int) ([]domain.RetrievedChunk, error)
	Count() int
}
