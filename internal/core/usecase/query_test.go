package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/karimelsayed/ragkb/internal/core/domain"
)

func newQueryUseCase(embedder *embedderFake, index *indexFake, gen *generatorFake, topK int) *QueryUseCase {
	return NewQueryUseCase(
		NewRetriever(embedder, index),
		NewSynthesizer(gen, 2),
		index,
		ModelInfo{EmbeddingModel: "nomic-embed-text", GenerationModel: "llama3"},
		topK,
	)
}

func TestAnswerAssemblesResult(t *testing.T) {
	index := &indexFake{
		count: 3,
		results: []domain.RetrievedChunk{
			{Text: "alpha", Source: "a.txt", Position: 0, Score: 0.9},
			{Text: "beta", Source: "b.txt", Position: 1, Score: 0.8},
			{Text: "gamma", Source: "a.txt", Position: 2, Score: 0.7},
		},
	}
	gen := &generatorFake{responses: []string{"the answer"}}
	uc := newQueryUseCase(&embedderFake{}, index, gen, 0)

	result, err := uc.Answer(context.Background(), "what is alpha?", domain.LanguageEnglish, 0)
	if err != nil {
		t.Fatalf("Answer() error = %v", err)
	}
	if result.Answer != "the answer" {
		t.Fatalf("unexpected answer %q", result.Answer)
	}
	if index.searchK != defaultTopK {
		t.Fatalf("expected default k %d, got %d", defaultTopK, index.searchK)
	}
	if len(result.Chunks) != 3 || len(result.Sources) != 3 {
		t.Fatalf("expected 3 chunks and 3 sources, got %d and %d",
			len(result.Chunks), len(result.Sources))
	}
	if len(result.SourceFiles) != 2 {
		t.Fatalf("expected deduplicated source files, got %v", result.SourceFiles)
	}
	if result.SourceFiles[0] != "a.txt" || result.SourceFiles[1] != "b.txt" {
		t.Fatalf("source files must keep rank order, got %v", result.SourceFiles)
	}
	if result.Attempts != 1 {
		t.Fatalf("expected 1 attempt, got %d", result.Attempts)
	}
	if result.ProcessingTime < 0 {
		t.Fatalf("processing time must be non-negative, got %v", result.ProcessingTime)
	}
	if result.EmbeddingModel != "nomic-embed-text" || result.GenerationModel != "llama3" {
		t.Fatalf("model info missing from result: %+v", result)
	}
}

func TestAnswerEmptyQuestion(t *testing.T) {
	uc := newQueryUseCase(&embedderFake{}, &indexFake{count: 1}, &generatorFake{responses: []string{"x"}}, 3)

	_, err := uc.Answer(context.Background(), "   ", domain.LanguageEnglish, 3)
	if !domain.IsKind(err, domain.ErrInvalidInput) {
		t.Fatalf("expected invalid input kind, got %v", err)
	}
}

func TestAnswerEmptyIndex(t *testing.T) {
	uc := newQueryUseCase(&embedderFake{}, &indexFake{}, &generatorFake{responses: []string{"x"}}, 3)

	_, err := uc.Answer(context.Background(), "anything?", domain.LanguageEnglish, 3)
	if !domain.IsKind(err, domain.ErrNotReady) {
		t.Fatalf("expected not ready kind, got %v", err)
	}
}

func TestAnswerFewerChunksThanRequested(t *testing.T) {
	index := &indexFake{
		count:   1,
		results: []domain.RetrievedChunk{{Text: "only one", Source: "a.txt", Score: 0.5}},
	}
	uc := newQueryUseCase(&embedderFake{}, index, &generatorFake{responses: []string{"answer"}}, 3)

	result, err := uc.Answer(context.Background(), "q?", domain.LanguageEnglish, 3)
	if err != nil {
		t.Fatalf("Answer() error = %v", err)
	}
	if len(result.Chunks) != 1 {
		t.Fatalf("expected 1 chunk, got %d", len(result.Chunks))
	}
}

func TestAnswerExplicitKOverridesDefault(t *testing.T) {
	index := &indexFake{
		count: 5,
		results: []domain.RetrievedChunk{
			{Text: "a"}, {Text: "b"}, {Text: "c"}, {Text: "d"}, {Text: "e"},
		},
	}
	uc := newQueryUseCase(&embedderFake{}, index, &generatorFake{responses: []string{"answer"}}, 3)

	result, err := uc.Answer(context.Background(), "q?", domain.LanguageEnglish, 5)
	if err != nil {
		t.Fatalf("Answer() error = %v", err)
	}
	if index.searchK != 5 {
		t.Fatalf("expected k=5 passed to index, got %d", index.searchK)
	}
	if len(result.Chunks) != 5 {
		t.Fatalf("expected 5 chunks, got %d", len(result.Chunks))
	}
}

func TestAnswerRecordsRetryAttempts(t *testing.T) {
	index := &indexFake{
		count:   1,
		results: []domain.RetrievedChunk{{Text: "passage", Source: "a.txt"}},
	}
	gen := &generatorFake{responses: []string{"english draft", "إجابة عربية"}}
	uc := newQueryUseCase(&embedderFake{}, index, gen, 3)

	result, err := uc.Answer(context.Background(), "سؤال؟", domain.LanguageArabic, 3)
	if err != nil {
		t.Fatalf("Answer() error = %v", err)
	}
	if result.Attempts != 2 {
		t.Fatalf("expected 2 attempts, got %d", result.Attempts)
	}
	if result.Answer != "إجابة عربية" {
		t.Fatalf("expected arabic answer, got %q", result.Answer)
	}
}

func TestAnswerRetrievalFailure(t *testing.T) {
	index := &indexFake{count: 1, searchErr: errors.New("store gone")}
	uc := newQueryUseCase(&embedderFake{}, index, &generatorFake{responses: []string{"x"}}, 3)

	_, err := uc.Answer(context.Background(), "q?", domain.LanguageEnglish, 3)
	if err == nil {
		t.Fatalf("expected error")
	}
}

func TestAnswerEmbedFailure(t *testing.T) {
	index := &indexFake{count: 1}
	uc := newQueryUseCase(&embedderFake{queryErr: errors.New("embedder down")}, index,
		&generatorFake{responses: []string{"x"}}, 3)

	_, err := uc.Answer(context.Background(), "q?", domain.LanguageEnglish, 3)
	if err == nil {
		t.Fatalf("expected error")
	}
}

func TestAnswerGenerationFailure(t *testing.T) {
	index := &indexFake{
		count:   1,
		results: []domain.RetrievedChunk{{Text: "passage"}},
	}
	uc := newQueryUseCase(&embedderFake{}, index, &generatorFake{err: errors.New("model crashed")}, 3)

	_, err := uc.Answer(context.Background(), "q?", domain.LanguageEnglish, 3)
	if !domain.IsKind(err, domain.ErrGeneration) {
		t.Fatalf("expected generation kind, got %v", err)
	}
}
