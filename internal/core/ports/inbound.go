package ports

import (
	"context"

	"github.com/karimelsayed/ragkb/internal/core/domain"
)

// KnowledgeIngestor is the inbound contract for populating the index from a
// directory of documents.
type KnowledgeIngestor interface {
	Ingest(ctx context.Context, dir string) (int, error)
}

// QuestionAnswerer is the inbound contract for answering a question from the
// ingested knowledge base in the requested language.
type QuestionAnswerer interface {
	Answer(ctx context.Context, question string, language domain.Language, k int) (*domain.QueryResult, error)
}
