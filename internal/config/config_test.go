package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ironsheep/spraycard-mcp/internal/imaging"
	"github.com/ironsheep/spraycard-mcp/internal/spray"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, 10, cfg.Analysis.SectionCount)
	assert.True(t, cfg.Output.WriteOverlay)
	assert.False(t, cfg.Output.WriteChart)
	assert.Equal(t, "_analyzed", cfg.Output.Suffix)
	assert.Equal(t, 90, cfg.Output.JPEGQuality)
	assert.Equal(t, "Spray Coverage percentage in each section", cfg.Output.Title)
	assert.Equal(t, 4, cfg.Batch.Workers)
	assert.Equal(t, ":8080", cfg.HTTP.Addr)
	assert.Equal(t, int64(20<<20), cfg.HTTP.MaxUploadBytes)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.NoError(t, cfg.Validate())
}

func TestLoadConfigMissing(t *testing.T) {
	for _, path := range []string{"", filepath.Join(t.TempDir(), "absent.yaml")} {
		cfg, err := LoadConfig(path)
		require.NoError(t, err)
		if diff := cmp.Diff(DefaultConfig(), cfg); diff != "" {
			t.Errorf("LoadConfig(%q) mismatch (-want +got):\n%s", path, diff)
		}
	}
}

func TestLoadConfigPartial(t *testing.T) {
	path := filepath.Join(t.TempDir(), "spraycard.yaml")
	data := `
analysis:
  sectionCount: 6
output:
  writeChart: true
label:
  enabled: true
  region: {x1: 0, y1: 0, x2: 300, y2: 60}
batch:
  workers: 2
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, 6, cfg.Analysis.SectionCount)
	assert.True(t, cfg.Output.WriteChart)
	assert.True(t, cfg.Output.WriteOverlay, "unset keys keep their defaults")
	assert.Equal(t, 2, cfg.Batch.Workers)
	assert.Equal(t, "eng", cfg.Label.Language)
	require.NotNil(t, cfg.Label.Region)
	assert.Equal(t, imaging.Region{X1: 0, Y1: 0, X2: 300, Y2: 60}, *cfg.Label.Region)
	assert.NoError(t, cfg.Validate())
}

func TestLoadConfigMalformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("analysis: [unclosed"), 0644))

	_, err := LoadConfig(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "error parsing config file")
}

func TestSaveConfigRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "spraycard.yaml")

	cfg := DefaultConfig()
	cfg.Analysis.SectionCount = 12
	cfg.Label.Enabled = true
	cfg.Label.Region = &imaging.Region{X1: 10, Y1: 20, X2: 110, Y2: 70}
	require.NoError(t, SaveConfig(cfg, path))

	loaded, err := LoadConfig(path)
	require.NoError(t, err)
	if diff := cmp.Diff(cfg, loaded); diff != "" {
		t.Errorf("round trip mismatch (-saved +loaded):\n%s", diff)
	}
}

func TestCreateDefaultConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "spraycard.yaml")
	require.NoError(t, CreateDefaultConfigFile(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "sectionCount: 10")
	assert.Contains(t, string(data), "suffix: _analyzed")
}

func TestApplyEnv(t *testing.T) {
	env := map[string]string{
		EnvLogLevel: "debug",
		EnvSections: "8",
		EnvHTTPAddr: "127.0.0.1:9000",
	}
	lookup := func(k string) (string, bool) {
		v, ok := env[k]
		return v, ok
	}

	cfg := DefaultConfig()
	require.NoError(t, cfg.ApplyEnv(lookup))
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, 8, cfg.Analysis.SectionCount)
	assert.Equal(t, "127.0.0.1:9000", cfg.HTTP.Addr)

	env[EnvSections] = "many"
	err := DefaultConfig().ApplyEnv(lookup)
	assert.ErrorIs(t, err, spray.ErrInvalidConfiguration)
}

func TestApplyEnvEmpty(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.ApplyEnv(func(string) (string, bool) { return "", true }))
	if diff := cmp.Diff(DefaultConfig(), cfg); diff != "" {
		t.Errorf("empty values changed config (-want +got):\n%s", diff)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero sections", func(c *Config) { c.Analysis.SectionCount = 0 }},
		{"jpeg quality low", func(c *Config) { c.Output.JPEGQuality = 0 }},
		{"jpeg quality high", func(c *Config) { c.Output.JPEGQuality = 101 }},
		{"negative border", func(c *Config) { c.Output.BorderWidth = -1 }},
		{"no workers", func(c *Config) { c.Batch.Workers = 0 }},
		{"no upload limit", func(c *Config) { c.HTTP.MaxUploadBytes = 0 }},
		{"label without region", func(c *Config) { c.Label.Enabled = true }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			assert.ErrorIs(t, cfg.Validate(), spray.ErrInvalidConfiguration)
		})
	}
}
