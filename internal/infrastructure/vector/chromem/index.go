package chromem

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	chromemgo "github.com/philippgille/chromem-go"

	"github.com/karimelsayed/ragkb/internal/core/domain"
)

const (
	collectionName = "knowledge"
	metaFileName   = "index_meta.json"
)

// Index is a durable vector index over an embedded chromem-go store. The
// distance metric is cosine, fixed at collection creation; no code path can
// select another metric, so build and query always agree.
type Index struct {
	db         *chromemgo.DB
	collection *chromemgo.Collection
	path       string
	dimension  int
}

type indexMeta struct {
	Dimension int `json:"dimension"`
}

// Open creates the index at path, loading previously persisted state when it
// exists. Writes are persisted as they happen; there is no separate flush.
func Open(path string) (*Index, error) {
	db, err := chromemgo.NewPersistentDB(path, false)
	if err != nil {
		return nil, fmt.Errorf("open index store: %w", err)
	}

	collection, err := db.GetOrCreateCollection(collectionName, map[string]string{"hnsw:space": "cosine"}, nil)
	if err != nil {
		return nil, fmt.Errorf("open index collection: %w", err)
	}

	ix := &Index{db: db, collection: collection, path: path}
	meta, err := readMeta(path)
	if err != nil {
		return nil, err
	}
	ix.dimension = meta.Dimension
	return ix, nil
}

// Load opens an existing persisted index and reports ErrIndexNotFound when
// the location does not exist. The caller decides whether that is fatal or a
// trigger for ingestion.
func Load(path string) (*Index, error) {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, domain.WrapError(domain.ErrIndexNotFound, "load index", err)
		}
		return nil, fmt.Errorf("stat index location: %w", err)
	}
	return Open(path)
}

// Add appends chunk/vector pairs. The first batch establishes the index
// dimensionality; later batches must match it.
func (ix *Index) Add(ctx context.Context, chunks []domain.Chunk, vectors [][]float32) error {
	if len(chunks) != len(vectors) {
		return domain.WrapError(domain.ErrConfiguration, "index add",
			fmt.Errorf("chunk/vector count mismatch: %d/%d", len(chunks), len(vectors)))
	}
	if len(chunks) == 0 {
		return nil
	}

	dim := ix.dimension
	if dim == 0 {
		dim = len(vectors[0])
	}
	for i, vec := range vectors {
		if len(vec) != dim {
			return domain.WrapError(domain.ErrConfiguration, "index add",
				fmt.Errorf("vector %d has dimension %d, index uses %d", i, len(vec), dim))
		}
	}

	ids := make([]string, len(chunks))
	metadatas := make([]map[string]string, len(chunks))
	contents := make([]string, len(chunks))
	for i, chunk := range chunks {
		ids[i] = chunk.ID
		contents[i] = chunk.Text
		meta := map[string]string{
			"source":   chunk.Source,
			"position": strconv.Itoa(chunk.Position),
		}
		for k, v := range chunk.Metadata {
			meta[k] = v
		}
		metadatas[i] = meta
	}

	if err := ix.collection.Add(ctx, ids, vectors, metadatas, contents); err != nil {
		return fmt.Errorf("index add: %w", err)
	}

	if ix.dimension == 0 {
		ix.dimension = dim
		if err := writeMeta(ix.path, indexMeta{Dimension: dim}); err != nil {
			return err
		}
	}
	return nil
}

// Search returns up to k stored chunks by decreasing cosine similarity. An
// empty index yields an empty result, never an error.
func (ix *Index) Search(ctx context.Context, queryVector []float32, k int) ([]domain.RetrievedChunk, error) {
	if k <= 0 {
		return nil, domain.WrapError(domain.ErrInvalidInput, "index search",
			fmt.Errorf("k must be positive, got %d", k))
	}
	if ix.dimension != 0 && len(queryVector) != ix.dimension {
		return nil, domain.WrapError(domain.ErrConfiguration, "index search",
			fmt.Errorf("query vector has dimension %d, index uses %d", len(queryVector), ix.dimension))
	}

	count := ix.collection.Count()
	if count == 0 {
		return nil, nil
	}
	if k > count {
		k = count
	}

	results, err := ix.collection.QueryEmbedding(ctx, queryVector, k, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("index search: %w", err)
	}

	out := make([]domain.RetrievedChunk, 0, len(results))
	for _, res := range results {
		out = append(out, toRetrievedChunk(res))
	}
	return out, nil
}

func (ix *Index) Count() int {
	return ix.collection.Count()
}

func toRetrievedChunk(res chromemgo.Result) domain.RetrievedChunk {
	chunk := domain.RetrievedChunk{
		Text:  res.Content,
		Score: res.Similarity,
	}
	meta := make(map[string]string, len(res.Metadata))
	for k, v := range res.Metadata {
		switch k {
		case "source":
			chunk.Source = v
		case "position":
			chunk.Position, _ = strconv.Atoi(v)
		default:
			meta[k] = v
		}
	}
	if len(meta) > 0 {
		chunk.Metadata = meta
	}
	return chunk
}

func readMeta(path string) (indexMeta, error) {
	raw, err := os.ReadFile(filepath.Join(path, metaFileName))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return indexMeta{}, nil
		}
		return indexMeta{}, fmt.Errorf("read index meta: %w", err)
	}
	var meta indexMeta
	if err := json.Unmarshal(raw, &meta); err != nil {
		return indexMeta{}, fmt.Errorf("decode index meta: %w", err)
	}
	return meta, nil
}

func writeMeta(path string, meta indexMeta) error {
	raw, err := json.Marshal(meta)
	if err != nil {
		return fmt.Errorf("encode index meta: %w", err)
	}
	if err := os.WriteFile(filepath.Join(path, metaFileName), raw, 0o644); err != nil {
		return fmt.Errorf("write index meta: %w", err)
	}
	return nil
}
