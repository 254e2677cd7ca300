package bootstrap

import (
	"fmt"
	"log/slog"

	"github.com/karimelsayed/ragkb/internal/config"
	"github.com/karimelsayed/ragkb/internal/core/domain"
	"github.com/karimelsayed/ragkb/internal/core/ports"
	"github.com/karimelsayed/ragkb/internal/core/usecase"
	"github.com/karimelsayed/ragkb/internal/infrastructure/chunking"
	"github.com/karimelsayed/ragkb/internal/infrastructure/llm/ollama"
	"github.com/karimelsayed/ragkb/internal/infrastructure/loader/localfs"
	"github.com/karimelsayed/ragkb/internal/infrastructure/resilience"
	"github.com/karimelsayed/ragkb/internal/infrastructure/vector/chromem"
	"github.com/karimelsayed/ragkb/internal/observability/logging"
)

type App struct {
	Config config.Config
	Log    *slog.Logger

	IngestUC ports.KnowledgeIngestor
	QueryUC  ports.QuestionAnswerer
	Models   usecase.ModelInfo
}

// New wires the full pipeline. Ingestion opens the index create-or-load;
// query-only entry points load an existing index and fail with ErrNotReady
// when nothing has been ingested yet.
func New(cfg config.Config, queryOnly bool) (*App, error) {
	log := logging.NewJSONLogger("ragkb", cfg.LogLevel)
	slog.SetDefault(log)

	breakerCfg := resilience.DefaultConfig()
	breakerCfg.Enabled = cfg.BreakerEnabled
	if cfg.BreakerOpenTimeout > 0 {
		breakerCfg.OpenTimeout = cfg.BreakerOpenTimeout
	}
	breaker := resilience.NewBreaker(breakerCfg)

	client := ollama.New(cfg.OllamaURL, cfg.OllamaGenModel, cfg.OllamaEmbedModel, breaker)
	embedder := ollama.NewEmbedder(client)
	generator := ollama.NewGenerator(client)

	index, err := openIndex(cfg.IndexPath, queryOnly)
	if err != nil {
		return nil, err
	}

	splitter, err := chunking.NewSplitter(cfg.ChunkSize, cfg.ChunkOverlap)
	if err != nil {
		return nil, fmt.Errorf("configure splitter: %w", err)
	}
	loader := localfs.New(log)

	models := usecase.ModelInfo{
		EmbeddingModel:  client.EmbeddingModel(),
		GenerationModel: client.GenerationModel(),
	}

	retriever := usecase.NewRetriever(embedder, index)
	synthesizer := usecase.NewSynthesizer(generator, cfg.MaxAttempts)

	return &App{
		Config:   cfg,
		Log:      log,
		IngestUC: usecase.NewIngestUseCase(loader, splitter, embedder, index),
		QueryUC:  usecase.NewQueryUseCase(retriever, synthesizer, index, models, cfg.TopK),
		Models:   models,
	}, nil
}

func openIndex(path string, queryOnly bool) (*chromem.Index, error) {
	if queryOnly {
		index, err := chromem.Load(path)
		if err != nil {
			if domain.IsKind(err, domain.ErrIndexNotFound) {
				return nil, domain.WrapError(domain.ErrNotReady, "open index",
					fmt.Errorf("no index at %s, run ingest first", path))
			}
			return nil, fmt.Errorf("load index: %w", err)
		}
		return index, nil
	}
	index, err := chromem.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open index: %w", err)
	}
	return index, nil
}
