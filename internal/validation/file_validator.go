package validation

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/cherdeman/COPA-Project/internal/errors"
)

// FileValidator checks input and output paths before a run touches them
type FileValidator struct {
	logger *slog.Logger
}

// NewFileValidator creates a new file validator
func NewFileValidator(logger *slog.Logger) *FileValidator {
	if logger == nil {
		logger = slog.Default()
	}
	return &FileValidator{
		logger: logger,
	}
}

// ValidateSourceFile checks that path is a readable regular file
func (v *FileValidator) ValidateSourceFile(path string) error {
	if strings.TrimSpace(path) == "" {
		return errors.NewInvalidArgumentError("no input file given")
	}

	info, err := os.Stat(path)
	if err != nil {
		v.logger.Error("Input file not accessible",
			slog.String("file", path),
			slog.String("error", err.Error()))
		return errors.NewSourceNotFoundError(path, err)
	}
	if info.IsDir() {
		v.logger.Error("Input path is a directory",
			slog.String("path", path))
		return errors.NewSourceNotFoundError(path, fmt.Errorf("%s is a directory, not a file", path))
	}

	v.logger.Debug("Input file validated",
		slog.String("file", path),
		slog.Int64("size", info.Size()))
	return nil
}

// ValidateOutputFile checks the extension of an output path and makes sure
// its directory exists or can be created
func (v *FileValidator) ValidateOutputFile(path string, extensions ...string) error {
	if len(extensions) > 0 {
		ext := strings.ToLower(filepath.Ext(path))
		ok := false
		for _, want := range extensions {
			if ext == want {
				ok = true
				break
			}
		}
		if !ok {
			return errors.NewInvalidArgumentError(
				fmt.Sprintf("output %s must end in %s", path, strings.Join(extensions, " or ")))
		}
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		v.logger.Error("Failed to create output directory",
			slog.String("directory", dir),
			slog.String("error", err.Error()))
		return errors.NewStorageError(fmt.Sprintf("cannot create output directory %s", dir), err)
	}
	return nil
}
