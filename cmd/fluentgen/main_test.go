package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeDefaultCatalog(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	dir := filepath.Join(root, "default")
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "app.ftl"),
		[]byte("greeting = Hello\nwelcome-user = Hello, { $name }!\n"), 0o644))
	return root
}

func TestRunGeneratesBindings(t *testing.T) {
	root := writeDefaultCatalog(t)
	out := filepath.Join(t.TempDir(), "localizations.gen.go")

	err := run(genConfig{Package: "localizations", Out: out, Dir: root})
	require.NoError(t, err)

	code, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Contains(t, string(code), "package localizations")
	assert.Contains(t, string(code), "App_greeting")
	assert.Contains(t, string(code), "App_welcome_user")
}

func TestRunFailsOnBrokenCatalog(t *testing.T) {
	root := t.TempDir()
	dir := filepath.Join(root, "default")
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "app.ftl"),
		[]byte("greeting = { unknown-entry }\n"), 0o644))

	err := run(genConfig{Package: "localizations", Out: filepath.Join(root, "out.go"), Dir: root})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown")
}

func TestRootCommandFlags(t *testing.T) {
	root := writeDefaultCatalog(t)
	out := filepath.Join(t.TempDir(), "gen.go")

	cmd := newRootCmd()
	cmd.SetArgs([]string{"--dir", root, "--out", out, "--package", "msgs"})
	require.NoError(t, cmd.Execute())

	code, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Contains(t, string(code), "package msgs")
}

func TestConfigFileProvidesDefaultsFlagsWin(t *testing.T) {
	root := writeDefaultCatalog(t)
	outFromFile := filepath.Join(t.TempDir(), "from_file.go")
	outFromFlag := filepath.Join(t.TempDir(), "from_flag.go")

	configPath := filepath.Join(t.TempDir(), "fluentgen.toml")
	require.NoError(t, os.WriteFile(configPath,
		[]byte("package = \"fromfile\"\nout = \""+outFromFile+"\"\ndir = \""+root+"\"\n"), 0o644))

	cmd := newRootCmd()
	cmd.SetArgs([]string{"--config", configPath, "--out", outFromFlag})
	require.NoError(t, cmd.Execute())

	_, err := os.Stat(outFromFile)
	assert.True(t, os.IsNotExist(err))

	code, err := os.ReadFile(outFromFlag)
	require.NoError(t, err)
	assert.Contains(t, string(code), "package fromfile")
}

func TestApplyConfigFileMissingIsFine(t *testing.T) {
	cfg := genConfig{Package: "keep"}
	require.NoError(t, applyConfigFile(&cfg, filepath.Join(t.TempDir(), "nope.toml")))
	assert.Equal(t, "keep", cfg.Package)
}
