package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wudi/intmud/opcodes"
)

func TestDefaultIsPermissive(t *testing.T) {
	cfg := Default()
	assert.Equal(t, opcodes.MaxStackSize, cfg.Limits.MaxStackSize)
	assert.Equal(t, opcodes.MaxCallDepth, cfg.Limits.MaxCallDepth)
	assert.Equal(t, opcodes.MaxLocals, cfg.Limits.MaxLocals)
	assert.True(t, cfg.Special.EnableArquivo)
	assert.True(t, cfg.Special.EnableBuffer)
}

func TestLoadShrinksLimits(t *testing.T) {
	path := writeTempConfig(t, `
limits:
  max_stack_size: 10
  max_call_depth: 5
special_types:
  enable_arquivo: false
  enable_buffer: true
`)
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 10, cfg.Limits.MaxStackSize)
	assert.Equal(t, 5, cfg.Limits.MaxCallDepth)
	assert.Equal(t, opcodes.MaxLocals, cfg.Limits.MaxLocals)
	assert.False(t, cfg.Special.EnableArquivo)
	assert.True(t, cfg.Special.EnableBuffer)
}

// TestLoadNeverGrowsPastHardCaps confirms an override above the compiled
// hard cap is clamped back down rather than honored (§4.1).
func TestLoadNeverGrowsPastHardCaps(t *testing.T) {
	path := writeTempConfig(t, `
limits:
  max_stack_size: 999999
  max_call_depth: 0
  max_locals: -5
`)
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, opcodes.MaxStackSize, cfg.Limits.MaxStackSize)
	assert.Equal(t, opcodes.MaxCallDepth, cfg.Limits.MaxCallDepth)
	assert.Equal(t, opcodes.MaxLocals, cfg.Limits.MaxLocals)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func writeTempConfig(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "intmud.yaml")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0644))
	return path
}
