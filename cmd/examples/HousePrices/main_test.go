package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeGridCoercesNumericAlphas(t *testing.T) {
	grid := map[string][]any{
		"alpha":  {1, 0.5, "10"},
		"solver": {"auto"},
	}
	require.NoError(t, normalizeGrid(grid))
	assert.Equal(t, []any{1.0, 0.5, 10.0}, grid["alpha"])
	assert.Equal(t, []any{"auto"}, grid["solver"])
}

func TestNormalizeGridRejectsMalformedAlpha(t *testing.T) {
	grid := map[string][]any{"alpha": {"not-a-number"}}
	err := normalizeGrid(grid)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not-a-number")
}

func TestLoadConfigFailsOnMalformedGridValue(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	raw := "ridge_grid:\n  alpha: [0.1, bogus]\n"
	require.NoError(t, os.WriteFile(path, []byte(raw), 0o644))

	_, err := loadConfig(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bogus")
}
