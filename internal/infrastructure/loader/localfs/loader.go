package localfs

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/karimelsayed/ragkb/internal/core/domain"
)

// Loader reads supported files from a local directory. A file that cannot be
// read or parsed is logged and skipped; only a missing directory is fatal.
type Loader struct {
	log *slog.Logger
}

func New(log *slog.Logger) *Loader {
	if log == nil {
		log = slog.Default()
	}
	return &Loader{log: log}
}

type extractFunc func(path string) (string, error)

var extractors = map[string]extractFunc{
	".txt":  extractPlainText,
	".md":   extractPlainText,
	".pdf":  extractPDF,
	".xlsx": extractWorkbook,
}

func (l *Loader) LoadDir(ctx context.Context, dir string) ([]domain.Document, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read documents directory: %w", err)
	}

	// Deterministic ingestion order regardless of filesystem quirks.
	sort.Slice(entries, func(i, j int) bool { return entries[i].Name() < entries[j].Name() })

	var docs []domain.Document
	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if entry.IsDir() {
			continue
		}

		path := filepath.Join(dir, entry.Name())
		ext := strings.ToLower(filepath.Ext(entry.Name()))
		extract, ok := extractors[ext]
		if !ok {
			l.log.Debug("skip unsupported file", "path", path)
			continue
		}

		text, err := extract(path)
		if err != nil {
			l.log.Warn("skip unreadable document", "path", path, "error", err)
			continue
		}
		if strings.TrimSpace(text) == "" {
			l.log.Warn("skip empty document", "path", path)
			continue
		}

		docs = append(docs, domain.Document{
			Text:   text,
			Source: path,
			Metadata: map[string]string{
				"filename": entry.Name(),
				"format":   strings.TrimPrefix(ext, "."),
			},
		})
	}
	return docs, nil
}
