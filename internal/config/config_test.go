package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestDefaultConfigIsValid(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())

	cols := cfg.Columns()
	assert.Equal(t, "Codigo_Cliente", cols.ID)
	assert.Equal(t, "ICS - BE", cols.Indicator)
	assert.Len(t, cols.Extras, 9)
	assert.Equal(t, "Opera a Crédito", cols.Extras[6])

	labels, err := cfg.LabelSet()
	require.NoError(t, err)
	assert.Equal(t, "Igual", labels.Unchanged)
}

func TestLoadConfigWithInfo(t *testing.T) {
	path := writeConfig(t, `
[server]
port = 8088

[comparison]
extra_fields = ["PS", "TC"]
labels = "sin_cambios"
`)

	cfg, info, err := LoadConfigWithInfo(path)
	require.NoError(t, err)
	assert.True(t, info.Found)
	assert.True(t, info.PortSpecified)
	assert.Equal(t, 8088, cfg.Server.Port)
	assert.Equal(t, []string{"PS", "TC"}, cfg.Comparison.ExtraFields)
	// 未配置的字段保留默认值
	assert.Equal(t, "Codigo_Cliente", cfg.Comparison.IDColumn)

	labels, err := cfg.LabelSet()
	require.NoError(t, err)
	assert.Equal(t, "Sin cambios", labels.Unchanged)
}

func TestLoadConfigPortNotSpecified(t *testing.T) {
	path := writeConfig(t, "[log]\nlevel = \"debug\"\n")

	cfg, info, err := LoadConfigWithInfo(path)
	require.NoError(t, err)
	assert.False(t, info.PortSpecified)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, DefaultConfig().Server.Port, cfg.Server.Port)
}

func TestLoadConfigExplicitMissingFile(t *testing.T) {
	_, _, err := LoadConfigWithInfo(filepath.Join(t.TempDir(), "missing.toml"))
	require.Error(t, err)
}

func TestLoadConfigEnvOverride(t *testing.T) {
	path := writeConfig(t, "")
	t.Setenv("COMPARADOR_PORT", "9099")
	t.Setenv("COMPARADOR_LABELS", "sin_cambios")

	cfg, info, err := LoadConfigWithInfo(path)
	require.NoError(t, err)
	assert.True(t, info.PortSpecified)
	assert.Equal(t, 9099, cfg.Server.Port)
	assert.Equal(t, "sin_cambios", cfg.Comparison.Labels)
}

func TestValidateRejectsBadExtraFields(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Comparison.ExtraFields = []string{"PS", " ps "}
	require.Error(t, cfg.Validate())

	cfg.Comparison.ExtraFields = []string{"PS", "  "}
	require.Error(t, cfg.Validate())

	cfg = DefaultConfig()
	cfg.Comparison.Labels = "otro"
	require.Error(t, cfg.Validate())
}

func TestSaveConfigRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	cfg := DefaultConfig()
	cfg.Server.Port = 7070

	require.NoError(t, SaveConfig(cfg, path))

	loaded, _, err := LoadConfigWithInfo(path)
	require.NoError(t, err)
	assert.Equal(t, 7070, loaded.Server.Port)
	assert.Equal(t, cfg.Comparison.ExtraFields, loaded.Comparison.ExtraFields)
}
