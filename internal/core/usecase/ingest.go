package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/karimelsayed/ragkb/internal/core/domain"
	"github.com/karimelsayed/ragkb/internal/core/ports"
)

// IngestUseCase loads a directory of documents, segments them, embeds every
// chunk and commits the whole batch into the vector index.
type IngestUseCase struct {
	loader    ports.DocumentLoader
	segmenter ports.Segmenter
	embedder  ports.Embedder
	index     ports.VectorIndex
}

func NewIngestUseCase(
	loader ports.DocumentLoader,
	segmenter ports.Segmenter,
	embedder ports.Embedder,
	index ports.VectorIndex,
) *IngestUseCase {
	return &IngestUseCase{
		loader:    loader,
		segmenter: segmenter,
		embedder:  embedder,
		index:     index,
	}
}

// Ingest returns the number of chunks committed. Unreadable files were
// already skipped by the loader; embedding or indexing failures are fatal and
// leave the index untouched, because the batch is built fully before the
// single Add call.
func (uc *IngestUseCase) Ingest(ctx context.Context, dir string) (int, error) {
	documents, err := uc.loader.LoadDir(ctx, dir)
	if err != nil {
		return 0, fmt.Errorf("load documents: %w", err)
	}
	if len(documents) == 0 {
		return 0, domain.WrapError(domain.ErrInvalidInput, "load documents",
			errors.New("no loadable documents in directory"))
	}

	chunks := uc.segmenter.Segment(documents)
	if len(chunks) == 0 {
		return 0, domain.WrapError(domain.ErrInvalidInput, "segment documents",
			errors.New("segmentation produced zero chunks"))
	}

	texts := make([]string, len(chunks))
	for i, chunk := range chunks {
		texts[i] = chunk.Text
	}

	vectors, err := uc.embedder.Embed(ctx, texts)
	if err != nil {
		return 0, fmt.Errorf("embed chunks: %w", err)
	}
	if len(vectors) != len(chunks) {
		return 0, domain.WrapError(
			domain.ErrInvalidInput,
			"embed chunks",
			fmt.Errorf("vectors/chunks mismatch: %d/%d", len(vectors), len(chunks)),
		)
	}

	if err := uc.index.Add(ctx, chunks, vectors); err != nil {
		return 0, fmt.Errorf("index chunks: %w", err)
	}
	return len(chunks), nil
}
