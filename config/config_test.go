package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "java.lang", cfg.Resolve.ImplicitPackage)
	assert.Equal(t, "undocumented", cfg.Tags.Exclude)
	assert.Equal(t, "constructor", cfg.Tags.Constructor)
	assert.Equal(t, []string{"resume", "summary"}, cfg.Tags.Summary)
	assert.Equal(t, "polydoc.db", cfg.Store.Path)
	assert.Positive(t, cfg.Workers)
	assert.Empty(t, cfg.Sources)
}

func TestLoad_FileAndEnvironment(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "polydoc.toml")
	require.NoError(t, os.WriteFile(file, []byte(`
sources = ["src/main/java"]
workers = 3

[tags]
exclude = "hidden"

[store]
path = "out/catalog.db"
`), 0o644))
	t.Setenv("POLYDOC_TAGS_SUMMARY", "brief, resume")
	t.Setenv("POLYDOC_RESOLVE_IMPLICIT_PACKAGE", "kotlin")

	cfg, err := Load(file)
	require.NoError(t, err)

	assert.Equal(t, []string{"src/main/java"}, cfg.Sources)
	assert.Equal(t, 3, cfg.Workers)
	assert.Equal(t, "hidden", cfg.Tags.Exclude)
	assert.Equal(t, "out/catalog.db", cfg.Store.Path)
	assert.Equal(t, []string{"brief", "resume"}, cfg.Tags.Summary)
	assert.Equal(t, "kotlin", cfg.Resolve.ImplicitPackage)
	assert.Len(t, cfg.WorkspaceOptions(), 5)
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	assert.Error(t, err)
}

func TestStringToSliceHook(t *testing.T) {
	t.Setenv("POLYDOC_SOURCES", "a, b,,c")
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "c"}, cfg.Sources)
}
