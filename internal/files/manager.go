package files

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Manager provides file operations rooted at a base directory.
// Absolute paths bypass the root.
type Manager struct {
	root   string
	logger *slog.Logger
}

// NewManager creates a manager rooted at root. An empty root means the
// working directory.
func NewManager(root string, logger *slog.Logger) *Manager {
	if logger == nil {
		logger = slog.Default()
	}
	return &Manager{
		root:   root,
		logger: logger.With(slog.String("component", "files")),
	}
}

// Root returns the base directory.
func (m *Manager) Root() string { return m.root }

// Resolve returns the full path for path.
func (m *Manager) Resolve(path string) string {
	if filepath.IsAbs(path) || m.root == "" {
		return filepath.Clean(path)
	}
	return filepath.Join(m.root, path)
}

// FileExists checks if a regular file exists at the given path
func (m *Manager) FileExists(path string) bool {
	fullPath := m.Resolve(path)
	info, err := os.Stat(fullPath)
	exists := err == nil && !info.IsDir()

	m.logger.Debug("FileExists check",
		slog.String("path", path),
		slog.String("full_path", fullPath),
		slog.Bool("exists", exists))

	return exists
}

// Open opens a file for reading.
func (m *Manager) Open(path string) (*os.File, error) {
	fullPath := m.Resolve(path)

	m.logger.Debug("Opening file",
		slog.String("path", path),
		slog.String("full_path", fullPath))

	return os.Open(fullPath)
}

// ReadFile reads the entire content of a file
func (m *Manager) ReadFile(path string) ([]byte, error) {
	return os.ReadFile(m.Resolve(path))
}

// Create creates or truncates a file, creating parent directories first.
func (m *Manager) Create(path string) (*os.File, error) {
	fullPath := m.Resolve(path)
	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	m.logger.Info("Creating file",
		slog.String("path", path),
		slog.String("full_path", fullPath))

	return os.Create(fullPath)
}

// WriteFile writes data to a file, creating parent directories first.
func (m *Manager) WriteFile(path string, data []byte) error {
	fullPath := m.Resolve(path)

	m.logger.Info("Writing file",
		slog.String("path", path),
		slog.String("full_path", fullPath),
		slog.Int("size_bytes", len(data)))

	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	return os.WriteFile(fullPath, data, 0644)
}

// EnsureDirectory creates a directory if it doesn't exist
func (m *Manager) EnsureDirectory(path string) error {
	fullPath := m.Resolve(path)

	m.logger.Debug("Ensuring directory exists",
		slog.String("path", path),
		slog.String("full_path", fullPath))

	return os.MkdirAll(fullPath, 0755)
}

// ListFiles returns the sorted names of the regular files in dir whose
// extension matches ext (case-insensitive). An empty ext matches everything.
func (m *Manager) ListFiles(dir, ext string) ([]string, error) {
	entries, err := os.ReadDir(m.Resolve(dir))
	if err != nil {
		return nil, err
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if ext != "" && !strings.EqualFold(filepath.Ext(entry.Name()), ext) {
			continue
		}
		names = append(names, entry.Name())
	}
	sort.Strings(names)

	return names, nil
}
