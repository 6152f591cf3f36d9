package validation

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	apperrors "github.com/kSibalic/nba/internal/errors"
	"github.com/kSibalic/nba/internal/source"
)

// sourceExtensions are the file extensions accepted for local season files.
var sourceExtensions = map[string]bool{".csv": true, ".txt": true}

// FileValidator checks local paths before a command starts work on them
type FileValidator struct {
	logger *slog.Logger
}

// NewFileValidator creates a new file validator
func NewFileValidator(logger *slog.Logger) *FileValidator {
	if logger == nil {
		logger = slog.Default()
	}
	return &FileValidator{
		logger: logger.With(slog.String("component", "file_validator")),
	}
}

// ValidateOutputDirectory ensures output directory exists or can be created
func (v *FileValidator) ValidateOutputDirectory(dir string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		v.logger.Error("Failed to create output directory",
			slog.String("directory", dir),
			slog.String("error", err.Error()))
		return fmt.Errorf("failed to create output directory %s: %w", dir, err)
	}

	// Verify it's writable by creating a test file
	probe, err := os.CreateTemp(dir, ".write_test*")
	if err != nil {
		v.logger.Error("Output directory is not writable",
			slog.String("directory", dir),
			slog.String("error", err.Error()))
		return fmt.Errorf("output directory %s is not writable: %w", dir, err)
	}
	probe.Close()
	os.Remove(probe.Name())

	v.logger.Debug("Output directory validated", slog.String("directory", dir))
	return nil
}

// ValidateFile checks if a specific file exists and is readable
func (v *FileValidator) ValidateFile(path string) error {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		v.logger.Error("File does not exist", slog.String("file", path))
		return fmt.Errorf("file %s does not exist", path)
	}
	if err != nil {
		v.logger.Error("Failed to stat file",
			slog.String("file", path),
			slog.String("error", err.Error()))
		return fmt.Errorf("failed to stat file %s: %w", path, err)
	}
	if info.IsDir() {
		v.logger.Error("Path is a directory, not a file", slog.String("path", path))
		return fmt.Errorf("%s is a directory, not a file", path)
	}

	file, err := os.Open(path)
	if err != nil {
		v.logger.Error("File is not readable",
			slog.String("file", path),
			slog.String("error", err.Error()))
		return fmt.Errorf("file %s is not readable: %w", path, err)
	}
	file.Close()

	v.logger.Debug("File validated",
		slog.String("file", path),
		slog.Int64("size", info.Size()))
	return nil
}

// ValidateSource checks a season file location. URLs are left to the fetcher;
// local files must be readable delimited text. Failures are SOURCE_UNAVAILABLE.
func (v *FileValidator) ValidateSource(location string) error {
	if source.IsRemote(location) {
		return nil
	}

	if err := v.ValidateFile(location); err != nil {
		return apperrors.NewSourceUnavailableError(location, err)
	}

	ext := strings.ToLower(filepath.Ext(location))
	if !sourceExtensions[ext] {
		v.logger.Error("Season file has an unexpected extension",
			slog.String("file", location),
			slog.String("extension", ext))
		return apperrors.NewSourceUnavailableError(location,
			fmt.Errorf("extension %q is not a delimited text file", ext))
	}
	return nil
}

// ValidateSources validates every location and reports all failures together.
func (v *FileValidator) ValidateSources(locations ...string) error {
	var errs []error
	for _, location := range locations {
		if err := v.ValidateSource(location); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
