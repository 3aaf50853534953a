package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_ExplicitFile(t *testing.T) {
	tests := []struct {
		name     string
		content  string
		expected Config
	}{
		{
			name: "all keys",
			content: `output_ext: .wiki
strip_front_matter: true
jobs: 8
languages:
  golang: go
  sh: bash
`,
			expected: Config{
				OutputExt:        ".wiki",
				StripFrontMatter: true,
				Jobs:             8,
				Languages:        map[string]string{"golang": "go", "sh": "bash"},
			},
		},
		{
			name:    "missing keys fall back to defaults",
			content: "jobs: 2\n",
			expected: Config{
				OutputExt: DefaultOutputExt,
				Jobs:      2,
				Languages: map[string]string{},
			},
		},
		{
			name:    "extension without dot and invalid jobs",
			content: "output_ext: confluence\njobs: 0\n",
			expected: Config{
				OutputExt: ".confluence",
				Jobs:      1,
				Languages: map[string]string{},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeFile(t, t.TempDir(), "config.yml", tt.content)

			cfg, err := Load(path)
			require.NoError(t, err)

			tt.expected.File = path
			assert.Equal(t, &tt.expected, cfg)
		})
	}
}

func TestLoad_ExplicitFileMissing(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yml"))
	assert.ErrorIs(t, err, ErrConfigNotFound)
}

func TestLoad_Invalid(t *testing.T) {
	path := writeFile(t, t.TempDir(), "config.yml", "jobs: [1, 2\n")

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), path)
}

func TestLoad_Search(t *testing.T) {
	home := t.TempDir()
	work := t.TempDir()
	t.Setenv("HOME", home)
	t.Chdir(work)

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg, "no file means defaults")

	homeFile := writeFile(t, home, filepath.Join(".config", "md2markup", "config.yml"), "jobs: 3\n")
	cfg, err = Load("")
	require.NoError(t, err)
	assert.Equal(t, homeFile, cfg.File)
	assert.Equal(t, 3, cfg.Jobs)

	writeFile(t, work, FileName, "jobs: 5\n")
	cfg, err = Load("")
	require.NoError(t, err)
	assert.Equal(t, FileName, cfg.File, "project file wins over home file")
	assert.Equal(t, 5, cfg.Jobs)
}

func TestLoad_Env(t *testing.T) {
	t.Setenv("MD2MARKUP_OUTPUT_EXT", ".wiki")
	t.Setenv("MD2MARKUP_JOBS", "6")
	path := writeFile(t, t.TempDir(), "config.yml", "output_ext: .txt\njobs: 2\n")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, ".wiki", cfg.OutputExt)
	assert.Equal(t, 6, cfg.Jobs)
}

func TestConfig_YAML(t *testing.T) {
	t.Parallel()

	cfg := Default()
	cfg.Languages["golang"] = "go"
	data, err := cfg.YAML()
	require.NoError(t, err)

	path := writeFile(t, t.TempDir(), "config.yml", string(data))
	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg.OutputExt, loaded.OutputExt)
	assert.Equal(t, cfg.Jobs, loaded.Jobs)
	assert.Equal(t, cfg.Languages, loaded.Languages)
	assert.NotContains(t, string(data), "file")
}
