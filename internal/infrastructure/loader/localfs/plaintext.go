package localfs

import (
	"fmt"
	"os"
	"strings"
	"unicode/utf8"
)

func extractPlainText(path string) (string, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read file: %w", err)
	}
	if !utf8.Valid(raw) {
		return "", fmt.Errorf("file is not valid utf-8 text")
	}
	return strings.TrimSpace(string(raw)), nil
}
