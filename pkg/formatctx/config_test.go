package formatctx_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mash-protocol/mash-text/pkg/formatctx"
)

func TestParseConfig_YAML(t *testing.T) {
	cfg, err := formatctx.ParseConfig([]byte("duration: standard\ntimestamp: bcl\n"), formatctx.FormatYAML)
	require.NoError(t, err)
	assert.Equal(t, formatctx.Config{Duration: "standard", Timestamp: "bcl"}, cfg)

	opts, err := cfg.Options()
	require.NoError(t, err)

	ctx, err := formatctx.With(context.Background(), opts...)
	require.NoError(t, err)
	assert.Equal(t, formatctx.DurationStandard, formatctx.DurationModeFrom(ctx))
	assert.Equal(t, formatctx.TimestampBCL, formatctx.TimestampModeFrom(ctx))
}

func TestParseConfig_JSONCWithComments(t *testing.T) {
	data := []byte(`{
		// clock-style durations for the legacy consumers
		"duration": "standard",
	}`)

	cfg, err := formatctx.ParseConfig(data, formatctx.FormatJSONC)
	require.NoError(t, err)
	assert.Equal(t, "standard", cfg.Duration)
	assert.Empty(t, cfg.Timestamp)

	opts, err := cfg.Options()
	require.NoError(t, err)
	assert.Len(t, opts, 1)
}

func TestParseConfig_Errors(t *testing.T) {
	tests := []struct {
		name   string
		data   string
		format formatctx.ConfigFormat
		target error
	}{
		{"unknown duration mode", "duration: compact\n", formatctx.FormatYAML, formatctx.ErrInvalidMode},
		{"unknown timestamp mode", `{"timestamp": "unix"}`, formatctx.FormatJSONC, formatctx.ErrInvalidMode},
		{"unknown format", "duration: standard\n", formatctx.ConfigFormat(0), formatctx.ErrUnknownConfigFormat},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := formatctx.ParseConfig([]byte(tt.data), tt.format)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.target)

			var cfgErr *formatctx.ConfigError
			assert.ErrorAs(t, err, &cfgErr)
		})
	}
}

func TestParseConfig_MalformedYAML(t *testing.T) {
	_, err := formatctx.ParseConfig([]byte("duration: [standard\n"), formatctx.FormatYAML)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parsing yaml config")
}

func TestLoadConfig_ByExtension(t *testing.T) {
	dir := t.TempDir()

	yamlPath := filepath.Join(dir, "formats.yml")
	require.NoError(t, os.WriteFile(yamlPath, []byte("timestamp: bcl-compatible\n"), 0o644))

	cfg, err := formatctx.LoadConfig(yamlPath)
	require.NoError(t, err)
	assert.Equal(t, "bcl-compatible", cfg.Timestamp)

	jsoncPath := filepath.Join(dir, "formats.jsonc")
	require.NoError(t, os.WriteFile(jsoncPath, []byte(`{"duration": "ISO8601", /* default */}`), 0o644))

	cfg, err = formatctx.LoadConfig(jsoncPath)
	require.NoError(t, err)
	assert.Equal(t, "ISO8601", cfg.Duration)
}

func TestLoadConfig_Errors(t *testing.T) {
	dir := t.TempDir()

	_, err := formatctx.LoadConfig(filepath.Join(dir, "formats.toml"))
	assert.ErrorIs(t, err, formatctx.ErrUnknownConfigFormat)

	_, err = formatctx.LoadConfig(filepath.Join(dir, "missing.yaml"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestModeText(t *testing.T) {
	var d formatctx.DurationMode
	require.NoError(t, d.UnmarshalText([]byte("Standard")))
	assert.Equal(t, formatctx.DurationStandard, d)

	text, err := formatctx.DurationISO8601.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "iso8601", string(text))

	var ts formatctx.TimestampMode
	require.NoError(t, ts.UnmarshalText([]byte("native")))
	assert.Equal(t, formatctx.TimestampNative, ts)
	assert.Error(t, ts.UnmarshalText([]byte("epoch")))
	assert.Equal(t, formatctx.TimestampNative, ts, "failed unmarshal must not change the value")

	_, err = formatctx.TimestampMode(0).MarshalText()
	assert.ErrorIs(t, err, formatctx.ErrInvalidMode)
	assert.Equal(t, "unknown", formatctx.DurationMode(5).String())
}
