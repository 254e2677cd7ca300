package domain

// Document is one unit of loaded content. It exists only between the loader
// and the segmenter; after chunking it is not retained.
type Document struct {
	Text     string
	Source   string
	Metadata map[string]string
}

// Chunk is a contiguous, possibly overlapping slice of a document's text and
// the unit of retrieval.
type Chunk struct {
	ID       string            `json:"id"`
	Text     string            `json:"text"`
	Source   string            `json:"source"`
	Position int               `json:"position"`
	Metadata map[string]string `json:"metadata,omitempty"`
}

// RetrievedChunk is a chunk returned by similarity search, ordered by
// decreasing relevance.
type RetrievedChunk struct {
	Text     string            `json:"text"`
	Source   string            `json:"source"`
	Position int               `json:"position"`
	Score    float32           `json:"score"`
	Metadata map[string]string `json:"metadata,omitempty"`
}
