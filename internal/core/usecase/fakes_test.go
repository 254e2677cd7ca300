package usecase

import (
	"context"

	"github.com/karimelsayed/ragkb/internal/core/domain"
)

type loaderFake struct {
	docs []domain.Document
	err  error
}

func (f *loaderFake) LoadDir(context.Context, string) ([]domain.Document, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.docs, nil
}

type segmenterFake struct {
	chunks []domain.Chunk
}

func (f *segmenterFake) Segment([]domain.Document) []domain.Chunk {
	return f.chunks
}

type embedderFake struct {
	vectors    [][]float32
	queryVec   []float32
	embedErr   error
	queryErr   error
	embedCalls int
}

func (f *embedderFake) Embed(_ context.Context, texts []string) ([][]float32, error) {
	f.embedCalls++
	if f.embedErr != nil {
		return nil, f.embedErr
	}
	if f.vectors != nil {
		return f.vectors, nil
	}
	out := make([][]float32, len(texts))
	for i := range texts {
		out[i] = []float32{0.1, 0.2}
	}
	return out, nil
}

func (f *embedderFake) EmbedQuery(_ context.Context, _ string) ([]float32, error) {
	if f.queryErr != nil {
		return nil, f.queryErr
	}
	if f.queryVec != nil {
		return f.queryVec, nil
	}
	return []float32{0.1, 0.2}, nil
}

type indexFake struct {
	added     []domain.Chunk
	results   []domain.RetrievedChunk
	count     int
	addErr    error
	searchErr error
	searchK   int
}

func (f *indexFake) Add(_ context.Context, chunks []domain.Chunk, _ [][]float32) error {
	if f.addErr != nil {
		return f.addErr
	}
	f.added = append(f.added, chunks...)
	f.count += len(chunks)
	return nil
}

func (f *indexFake) Search(_ context.Context, _ []float32, k int) ([]domain.RetrievedChunk, error) {
	f.searchK = k
	if f.searchErr != nil {
		return nil, f.searchErr
	}
	if k > len(f.results) {
		return f.results, nil
	}
	return f.results[:k], nil
}

func (f *indexFake) Count() int { return f.count }

type generatorFake struct {
	responses []string
	err       error
	calls     int
	prompts   []string
}

func (f *generatorFake) Generate(_ context.Context, prompt string) (string, error) {
	f.calls++
	f.prompts = append(f.prompts, prompt)
	if f.err != nil {
		return "", f.err
	}
	idx := f.calls - 1
	if idx >= len(f.responses) {
		idx = len(f.responses) - 1
	}
	return f.responses[idx], nil
}
