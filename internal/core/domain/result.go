package domain

import "time"

const excerptLimit = 300

// SourceRef is one ranked piece of evidence behind an answer. Excerpt is the
// chunk text capped for display; the full text stays in Chunks.
type SourceRef struct {
	Excerpt  string            `json:"excerpt"`
	Source   string            `json:"source"`
	Score    float32           `json:"score"`
	Metadata map[string]string `json:"metadata,omitempty"`
}

// QueryResult is the transient record of one answered question. It is built
// per call and never persisted.
type QueryResult struct {
	Question        string           `json:"question"`
	Answer          string           `json:"answer"`
	Language        Language         `json:"language"`
	Chunks          []RetrievedChunk `json:"chunks"`
	Sources         []SourceRef      `json:"sources"`
	SourceFiles     []string         `json:"source_files"`
	Attempts        int              `json:"attempts"`
	ProcessingTime  time.Duration    `json:"processing_time"`
	EmbeddingModel  string           `json:"embedding_model"`
	GenerationModel string           `json:"generation_model"`
}

// NewSourceRef caps the chunk text at 300 runes for provenance display.
func NewSourceRef(chunk RetrievedChunk) SourceRef {
	excerpt := chunk.Text
	if runes := []rune(excerpt); len(runes) > excerptLimit {
		excerpt = string(runes[:excerptLimit]) + "..."
	}
	return SourceRef{
		Excerpt:  excerpt,
		Source:   chunk.Source,
		Score:    chunk.Score,
		Metadata: chunk.Metadata,
	}
}

// DedupSources returns the distinct source identifiers in rank order.
func DedupSources(chunks []RetrievedChunk) []string {
	seen := make(map[string]struct{}, len(chunks))
	out := make([]string, 0, len(chunks))
	for _, c := range chunks {
		if _, ok := seen[c.Source]; ok {
			continue
		}
		seen[c.Source] = struct{}{}
		out = append(out, c.Source)
	}
	return out
}
