package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ryabkov82/sets-merger/internal/extract"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	assert.Equal(t, "uploads", cfg.InputDir)
	assert.Equal(t, ".", cfg.OutputDir)
	assert.Equal(t, 1000, cfg.SampleRows)
	assert.False(t, cfg.AddSourceFile)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "text", cfg.Logging.Format)
	assert.Equal(t, extract.DefaultLayout(), cfg.ExtractLayout())
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("SETS_INPUT_DIR", "/data/in/")
	t.Setenv("SETS_LOGGING_LEVEL", "debug")
	t.Setenv("SETS_LAYOUT_TEACHER_SUFFIX_LEN", "4")

	cfg, err := Load("")
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	assert.Equal(t, "/data/in", cfg.InputDir)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, 4, cfg.Layout.TeacherSuffixLen)
}

func TestLoadFileOverridesEnv(t *testing.T) {
	t.Setenv("SETS_OUTPUT_DIR", "/from/env")
	t.Setenv("SETS_INPUT_DIR", "/in/env")

	path := filepath.Join(t.TempDir(), "sets.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
output_dir: /from/file
add_source_file: true
layout:
  footer_rows: 1
logging:
  format: json
`), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	assert.Equal(t, "/from/file", cfg.OutputDir)
	assert.Equal(t, "/in/env", cfg.InputDir, "ключи, которых нет в файле, не меняются")
	assert.True(t, cfg.AddSourceFile)
	assert.Equal(t, 1, cfg.Layout.FooterRows)
	assert.Equal(t, 2, cfg.Layout.HeaderRows)
	assert.Equal(t, "json", cfg.Logging.Format)
}

func TestLoadFileErrors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("unknown_key: 1\n"), 0o644))
	_, err = Load(path)
	assert.Error(t, err)
}

func TestLoadBadEnv(t *testing.T) {
	t.Setenv("SETS_SAMPLE_ROWS", "many")

	_, err := Load("")
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *Config)
	}{
		{"empty input", func(c *Config) { c.InputDir = "" }},
		{"empty output", func(c *Config) { c.OutputDir = "" }},
		{"negative sample", func(c *Config) { c.SampleRows = -1 }},
		{"zero header", func(c *Config) { c.Layout.HeaderRows = 0 }},
		{"label outside header", func(c *Config) { c.Layout.LabelRow = 2 }},
		{"zero suffix", func(c *Config) { c.Layout.TeacherSuffixLen = 0 }},
		{"empty sentinel", func(c *Config) { c.Layout.UnknownTeacher = "" }},
		{"bad level", func(c *Config) { c.Logging.Level = "loud" }},
		{"bad format", func(c *Config) { c.Logging.Format = "xml" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := Load("")
			require.NoError(t, err)
			tt.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}
