package chunking

import (
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/karimelsayed/ragkb/internal/core/domain"
)

// Splitter cuts document text into fixed-size chunks with a configured rune
// overlap between consecutive chunks of the same document.
type Splitter struct {
	chunkSize int
	overlap   int
}

// NewSplitter validates the chunking parameters before any chunking happens.
// overlap >= chunkSize would make the window step non-positive, so it is a
// configuration error rather than something to clamp silently.
func NewSplitter(chunkSize, overlap int) (*Splitter, error) {
	if chunkSize <= 0 {
		return nil, domain.WrapError(domain.ErrConfiguration, "new splitter",
			fmt.Errorf("chunk size must be positive, got %d", chunkSize))
	}
	if overlap < 0 {
		return nil, domain.WrapError(domain.ErrConfiguration, "new splitter",
			fmt.Errorf("overlap must not be negative, got %d", overlap))
	}
	if overlap >= chunkSize {
		return nil, domain.WrapError(domain.ErrConfiguration, "new splitter",
			errors.New("overlap must be smaller than chunk size"))
	}
	return &Splitter{chunkSize: chunkSize, overlap: overlap}, nil
}

// Segment walks the documents in order and produces chunks in per-document
// sequence. Chunk text is sliced on rune boundaries; adjacent chunks of one
// document share exactly the configured overlap, except at the document end.
func (s *Splitter) Segment(documents []domain.Document) []domain.Chunk {
	var out []domain.Chunk
	for _, doc := range documents {
		out = append(out, s.segmentOne(doc)...)
	}
	return out
}

func (s *Splitter) segmentOne(doc domain.Document) []domain.Chunk {
	runes := []rune(doc.Text)
	if len(runes) == 0 {
		return nil
	}

	step := s.chunkSize - s.overlap
	chunks := make([]domain.Chunk, 0, len(runes)/step+1)
	for start, pos := 0, 0; start < len(runes); start, pos = start+step, pos+1 {
		end := start + s.chunkSize
		if end > len(runes) {
			end = len(runes)
		}
		chunks = append(chunks, domain.Chunk{
			ID:       uuid.NewString(),
			Text:     string(runes[start:end]),
			Source:   doc.Source,
			Position: pos,
			Metadata: doc.Metadata,
		})
		if end == len(runes) {
			break
		}
	}
	return chunks
}
