package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/karimelsayed/ragkb/internal/core/domain"
	"github.com/karimelsayed/ragkb/internal/core/ports"
)

const defaultTopK = 3

// ModelInfo names the external capabilities behind a query so every result
// records what produced it.
type ModelInfo struct {
	EmbeddingModel  string
	GenerationModel string
}

// QueryUseCase is the public entry point for answering questions: retrieval,
// language-enforced synthesis and result assembly.
type QueryUseCase struct {
	retriever   *Retriever
	synthesizer *Synthesizer
	index       ports.VectorIndex
	models      ModelInfo
	topK        int
}

func NewQueryUseCase(
	retriever *Retriever,
	synthesizer *Synthesizer,
	index ports.VectorIndex,
	models ModelInfo,
	topK int,
) *QueryUseCase {
	if topK <= 0 {
		topK = defaultTopK
	}
	return &QueryUseCase{
		retriever:   retriever,
		synthesizer: synthesizer,
		index:       index,
		models:      models,
		topK:        topK,
	}
}

func (uc *QueryUseCase) Answer(
	ctx context.Context,
	question string,
	language domain.Language,
	k int,
) (*domain.QueryResult, error) {
	question = strings.TrimSpace(question)
	if question == "" {
		return nil, domain.WrapError(domain.ErrInvalidInput, "answer question",
			errors.New("question is empty"))
	}
	if k <= 0 {
		k = uc.topK
	}
	if uc.index.Count() == 0 {
		return nil, domain.WrapError(domain.ErrNotReady, "answer question",
			errors.New("no documents ingested"))
	}

	start := time.Now()

	chunks, err := uc.retriever.Retrieve(ctx, question, k)
	if err != nil {
		return nil, fmt.Errorf("retrieve context: %w", err)
	}

	answer, attempts, err := uc.synthesizer.Synthesize(ctx, question, chunks, language)
	if err != nil {
		return nil, fmt.Errorf("synthesize answer: %w", err)
	}

	sources := make([]domain.SourceRef, 0, len(chunks))
	for _, chunk := range chunks {
		sources = append(sources, domain.NewSourceRef(chunk))
	}

	return &domain.QueryResult{
		Question:        question,
		Answer:          answer,
		Language:        language,
		Chunks:          chunks,
		Sources:         sources,
		SourceFiles:     domain.DedupSources(chunks),
		Attempts:        attempts,
		ProcessingTime:  time.Since(start),
		EmbeddingModel:  uc.models.EmbeddingModel,
		GenerationModel: uc.models.GenerationModel,
	}, nil
}
