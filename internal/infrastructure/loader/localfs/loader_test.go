package localfs

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

func TestLoadDirReadsSupportedFiles(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b.txt"), []byte("second file"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.md"), []byte("# first file"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.docx"), []byte("unsupported"), 0o644))

	docs, err := New(discardLogger()).LoadDir(context.Background(), dir)
	require.NoError(t, err)
	require.Len(t, docs, 2)

	// Lexicographic order keeps ingestion deterministic.
	require.Equal(t, "# first file", docs[0].Text)
	require.Equal(t, filepath.Join(dir, "a.md"), docs[0].Source)
	require.Equal(t, "md", docs[0].Metadata["format"])
	require.Equal(t, "second file", docs[1].Text)
}

func TestLoadDirSkipsCorruptAndEmptyFiles(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "binary.txt"), []byte{0xff, 0xfe, 0x00, 0x81}, 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "blank.txt"), []byte("   \n\t"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "broken.pdf"), []byte("not a pdf"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "good.txt"), []byte("still ingested"), 0o644))

	docs, err := New(discardLogger()).LoadDir(context.Background(), dir)
	require.NoError(t, err)
	require.Len(t, docs, 1)
	require.Equal(t, "still ingested", docs[0].Text)
}

func TestLoadDirMissingDirectoryIsFatal(t *testing.T) {
	_, err := New(discardLogger()).LoadDir(context.Background(), filepath.Join(t.TempDir(), "nope"))
	require.Error(t, err)
}
