package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfigFile(t *testing.T, name, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad_YAML(t *testing.T) {
	path := writeConfigFile(t, "bridge.yaml", `
endpoint:
  url: opc.tcp://plc.example.com:4840
driver:
  cycle_time: 50ms
browse:
  max_references_per_node: 1000
logging:
  level: debug
  format: json
metrics:
  enabled: true
  listen: ":9091"
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "opc.tcp://plc.example.com:4840", cfg.Endpoint.URL)
	assert.Equal(t, 50*time.Millisecond, cfg.Driver.CycleTime.AsDuration())
	assert.Equal(t, uint32(1000), cfg.Browse.MaxReferencesPerNode)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Format)
	assert.True(t, cfg.Metrics.Enabled)
	assert.Equal(t, ":9091", cfg.Metrics.Listen)
}

func TestLoad_JSON(t *testing.T) {
	path := writeConfigFile(t, "bridge.json", `{
		"endpoint": {"url": "opc.tcp://localhost:4840"},
		"driver": {"cycle_time": "250ms"}
	}`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "opc.tcp://localhost:4840", cfg.Endpoint.URL)
	assert.Equal(t, 250*time.Millisecond, cfg.Driver.CycleTime.AsDuration())
}

func TestLoad_DefaultsApply(t *testing.T) {
	path := writeConfigFile(t, "bridge.yaml", `
endpoint:
  url: opc.tcp://localhost:4840
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 100*time.Millisecond, cfg.Driver.CycleTime.AsDuration())
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "text", cfg.Logging.Format)
	assert.False(t, cfg.Metrics.Enabled)
}

func TestLoad_UnsupportedExtension(t *testing.T) {
	path := writeConfigFile(t, "bridge.toml", `endpoint = "x"`)

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported config format")
}

func TestLoad_BadDuration(t *testing.T) {
	path := writeConfigFile(t, "bridge.yaml", `
endpoint:
  url: opc.tcp://localhost:4840
driver:
  cycle_time: fast
`)

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid duration")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:   "valid",
			mutate: func(*Config) {},
		},
		{
			name:    "missing endpoint",
			mutate:  func(c *Config) { c.Endpoint.URL = "" },
			wantErr: "endpoint.url is required",
		},
		{
			name:    "wrong scheme",
			mutate:  func(c *Config) { c.Endpoint.URL = "http://localhost:4840" },
			wantErr: "scheme must be opc.tcp",
		},
		{
			name:    "zero cycle time",
			mutate:  func(c *Config) { c.Driver.CycleTime = 0 },
			wantErr: "cycle_time must be positive",
		},
		{
			name:    "bad log level",
			mutate:  func(c *Config) { c.Logging.Level = "verbose" },
			wantErr: "logging.level",
		},
		{
			name: "metrics enabled without listen",
			mutate: func(c *Config) {
				c.Metrics.Enabled = true
				c.Metrics.Listen = ""
			},
			wantErr: "metrics.listen is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			cfg.Endpoint.URL = "opc.tcp://localhost:4840"
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
