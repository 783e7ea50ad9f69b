package config

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "mcanim.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadDefaultsWithoutFile(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "text", cfg.Log.Format)
	assert.False(t, cfg.Telemetry.Enabled)
	assert.Equal(t, "mcanim", cfg.Telemetry.ServiceName)
	assert.Equal(t, "default", cfg.Runtime.Name)
	assert.Equal(t, "local", cfg.Runtime.Space)
	assert.Equal(t, "y", cfg.Runtime.UpAxis)
	assert.Equal(t, -1, cfg.Export.Precision)
	assert.Equal(t, 1, cfg.Export.Workers)
	assert.Equal(t, 24.0, cfg.Export.FPS)
	assert.Empty(t, cfg.Exports)
}

func TestLoadMissingExplicitFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.ErrorContains(t, err, "failed to load config")
}

func TestLoadFileAndEnv(t *testing.T) {
	path := writeConfig(t, `
log:
  level: debug
runtime:
  name: bedrock
  space: world
export:
  precision: 4
  workers: 2
exports:
  - object: turret
    output: out/turret.json
    id: 3
    name: spin
    looping: false
    frame_start: 10
  - object: door
    output: out/door.json
`)
	t.Setenv("MCANIM_RUNTIME__UP_AXIS", "z")
	t.Setenv("MCANIM_EXPORT__WORKERS", "8")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "bedrock", cfg.Runtime.Name)
	assert.Equal(t, "world", cfg.Runtime.Space)
	assert.Equal(t, "z", cfg.Runtime.UpAxis)
	assert.Equal(t, 4, cfg.Export.Precision)
	assert.Equal(t, 8, cfg.Export.Workers)
	assert.Equal(t, 24.0, cfg.Export.FPS)

	require.Len(t, cfg.Exports, 2)
	turret := cfg.Exports[0]
	assert.Equal(t, "turret", turret.Object)
	assert.Equal(t, 3, turret.ID)
	assert.Equal(t, "spin", turret.Name)
	assert.False(t, turret.IsLooping())
	require.NotNil(t, turret.FrameStart)
	assert.Equal(t, 10, *turret.FrameStart)
	assert.Nil(t, turret.FrameEnd)

	assert.True(t, cfg.Exports[1].IsLooping())
}

func TestLoadInvalid(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{name: "space", body: "runtime:\n  space: parent\n", want: "Config.Runtime.Space: oneof"},
		{name: "axis", body: "runtime:\n  up_axis: x\n", want: "Config.Runtime.UpAxis: oneof"},
		{name: "workers", body: "export:\n  workers: 0\n", want: "Config.Export.Workers: min"},
		{name: "fps", body: "export:\n  fps: -1\n", want: "Config.Export.FPS: gt"},
		{name: "export output", body: "exports:\n  - object: cube\n", want: "Config.Exports[0].Output: required"},
		{name: "export range", body: "exports:\n  - object: cube\n    output: a.json\n    frame_end: -4\n", want: "Config.Exports[0].FrameEnd: min"},
		{name: "service name", body: "telemetry:\n  enabled: true\n  service_name: \"\"\n", want: "Config.Telemetry.ServiceName: required_if"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.body))
			require.Error(t, err)
			assert.ErrorContains(t, err, "invalid config")
			assert.ErrorContains(t, err, tt.want)
		})
	}
}

func TestLoadMalformedYAML(t *testing.T) {
	_, err := Load(writeConfig(t, "log: [unterminated\n"))
	assert.ErrorContains(t, err, "failed to load config")
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer

	logger := LogConfig{Level: "warn", Format: "json"}.NewLogger(&buf)
	assert.False(t, logger.Enabled(context.Background(), slog.LevelInfo))
	assert.True(t, logger.Enabled(context.Background(), slog.LevelWarn))

	logger.Warn("careful", "object", "cube")
	assert.Contains(t, buf.String(), `"msg":"careful"`)
	assert.Contains(t, buf.String(), `"object":"cube"`)

	buf.Reset()
	logger = LogConfig{Level: "debug", Format: "text"}.NewLogger(&buf)
	assert.True(t, logger.Enabled(context.Background(), slog.LevelDebug))
	logger.Debug("sampled", "frames", 3)
	assert.Contains(t, buf.String(), "msg=sampled frames=3")
}
