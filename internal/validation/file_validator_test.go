package validation

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/kSibalic/nba/internal/errors"
	"github.com/kSibalic/nba/internal/shared/testutil"
)

func TestFileValidator_ValidateOutputDirectory(t *testing.T) {
	logger, _ := testutil.NewTestLogger(t)
	v := NewFileValidator(logger)

	t.Run("creates nested directory", func(t *testing.T) {
		dir := filepath.Join(t.TempDir(), "a", "b")
		require.NoError(t, v.ValidateOutputDirectory(dir))
		assert.DirExists(t, dir)

		entries, err := os.ReadDir(dir)
		require.NoError(t, err)
		assert.Empty(t, entries, "write probe must be removed")
	})

	t.Run("path is a file", func(t *testing.T) {
		file := filepath.Join(t.TempDir(), "taken")
		require.NoError(t, os.WriteFile(file, []byte("x"), 0644))
		assert.Error(t, v.ValidateOutputDirectory(file))
	})
}

func TestFileValidator_ValidateFile(t *testing.T) {
	logger, _ := testutil.NewTestLogger(t)
	v := NewFileValidator(logger)
	dir := t.TempDir()
	file := filepath.Join(dir, "regular.csv")
	require.NoError(t, os.WriteFile(file, []byte("Rk;Player\n"), 0644))

	tests := []struct {
		name          string
		path          string
		errorContains string
	}{
		{name: "readable file", path: file},
		{name: "missing", path: filepath.Join(dir, "nope.csv"), errorContains: "does not exist"},
		{name: "directory", path: dir, errorContains: "is a directory"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.ValidateFile(tt.path)
			if tt.errorContains == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errorContains)
		})
	}
}

func TestFileValidator_ValidateSources(t *testing.T) {
	logger, logs := testutil.NewTestLogger(t)
	v := NewFileValidator(logger)
	dir := t.TempDir()

	csvFile := filepath.Join(dir, "regular.csv")
	txtFile := filepath.Join(dir, "playoff.txt")
	xlsxFile := filepath.Join(dir, "season.xlsx")
	for _, f := range []string{csvFile, txtFile, xlsxFile} {
		require.NoError(t, os.WriteFile(f, []byte("Rk;Player\n"), 0644))
	}

	tests := []struct {
		name      string
		locations []string
		wantErr   bool
	}{
		{name: "local csv and txt", locations: []string{csvFile, txtFile}},
		{name: "remote is not checked", locations: []string{"https://example.com/regular.csv", csvFile}},
		{name: "missing file", locations: []string{csvFile, filepath.Join(dir, "missing.csv")}, wantErr: true},
		{name: "wrong extension", locations: []string{xlsxFile}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.ValidateSources(tt.locations...)
			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.True(t, errors.Is(err, apperrors.ErrSourceUnavailable))
		})
	}

	assert.True(t, logs.ContainsMessage("unexpected extension"))
}

func TestFileValidator_ValidateSourcesJoinsErrors(t *testing.T) {
	logger, _ := testutil.NewTestLogger(t)
	v := NewFileValidator(logger)
	dir := t.TempDir()

	err := v.ValidateSources(filepath.Join(dir, "a.csv"), filepath.Join(dir, "b.csv"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "a.csv")
	assert.Contains(t, err.Error(), "b.csv")
}
