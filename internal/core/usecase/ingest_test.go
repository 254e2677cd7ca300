package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/karimelsayed/ragkb/internal/core/domain"
)

func TestIngestCountsCommittedChunks(t *testing.T) {
	chunks := []domain.Chunk{
		{ID: "1", Text: "first", Source: "a.txt", Position: 0},
		{ID: "2", Text: "second", Source: "a.txt", Position: 1},
	}
	index := &indexFake{}
	uc := NewIngestUseCase(
		&loaderFake{docs: []domain.Document{{Text: "first second", Source: "a.txt"}}},
		&segmenterFake{chunks: chunks},
		&embedderFake{},
		index,
	)

	count, err := uc.Ingest(context.Background(), "/docs")
	if err != nil {
		t.Fatalf("Ingest() error = %v", err)
	}
	if count != 2 {
		t.Fatalf("expected 2 chunks, got %d", count)
	}
	if len(index.added) != 2 {
		t.Fatalf("expected 2 chunks in index, got %d", len(index.added))
	}
}

func TestIngestNoLoadableDocuments(t *testing.T) {
	uc := NewIngestUseCase(&loaderFake{}, &segmenterFake{}, &embedderFake{}, &indexFake{})

	_, err := uc.Ingest(context.Background(), "/docs")
	if err == nil {
		t.Fatalf("expected error")
	}
	if !domain.IsKind(err, domain.ErrInvalidInput) {
		t.Fatalf("expected invalid input kind, got %v", err)
	}
}

func TestIngestEmbedFailureLeavesIndexUntouched(t *testing.T) {
	index := &indexFake{}
	uc := NewIngestUseCase(
		&loaderFake{docs: []domain.Document{{Text: "text", Source: "a.txt"}}},
		&segmenterFake{chunks: []domain.Chunk{{ID: "1", Text: "text", Source: "a.txt"}}},
		&embedderFake{embedErr: errors.New("embedder down")},
		index,
	)

	_, err := uc.Ingest(context.Background(), "/docs")
	if err == nil {
		t.Fatalf("expected error")
	}
	if len(index.added) != 0 {
		t.Fatalf("index must stay untouched on embed failure, got %d chunks", len(index.added))
	}
}

func TestIngestVectorCountMismatch(t *testing.T) {
	index := &indexFake{}
	uc := NewIngestUseCase(
		&loaderFake{docs: []domain.Document{{Text: "text", Source: "a.txt"}}},
		&segmenterFake{chunks: []domain.Chunk{
			{ID: "1", Text: "one", Source: "a.txt"},
			{ID: "2", Text: "two", Source: "a.txt"},
		}},
		&embedderFake{vectors: [][]float32{{0.1}}},
		index,
	)

	_, err := uc.Ingest(context.Background(), "/docs")
	if !domain.IsKind(err, domain.ErrInvalidInput) {
		t.Fatalf("expected invalid input kind, got %v", err)
	}
	if len(index.added) != 0 {
		t.Fatalf("index must stay untouched on mismatch")
	}
}

func TestIngestIndexFailurePropagates(t *testing.T) {
	uc := NewIngestUseCase(
		&loaderFake{docs: []domain.Document{{Text: "text", Source: "a.txt"}}},
		&segmenterFake{chunks: []domain.Chunk{{ID: "1", Text: "text", Source: "a.txt"}}},
		&embedderFake{},
		&indexFake{addErr: errors.New("store full")},
	)

	_, err := uc.Ingest(context.Background(), "/docs")
	if err == nil {
		t.Fatalf("expected error")
	}
}
