package exporter

import (
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/cherdeman/COPA-Project/internal/errors"
)

// WriteJSON writes v as indented JSON to path, creating parent directories.
func WriteJSON(logger *slog.Logger, path string, v any) error {
	if logger == nil {
		logger = slog.Default()
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return errors.NewStorageError("failed to create directory for JSON output", err)
	}

	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return errors.NewStorageError("failed to marshal JSON output", err)
	}

	if err := os.WriteFile(path, append(data, '\n'), 0644); err != nil {
		return errors.NewStorageError("failed to write JSON file", err)
	}

	logger.Info("Wrote JSON file", slog.String("path", path), slog.Int("bytes", len(data)+1))
	return nil
}
