package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	t.Cleanup(func() {
		manifestPath, checkOnly, converterNames, verbose = "bind.yaml", false, nil, false
	})

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)

	err := rootCmd.Execute()

	return out.String(), err
}

func TestCheck_Clean(t *testing.T) {
	out, err := execute(t, "check", "--converter", "percent", "../../examples/viewmodel/bindings.yaml")
	require.NoError(t, err)
	assert.Empty(t, out)
}

func TestCheck_ReportsProblems(t *testing.T) {
	sheet := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(sheet, []byte(`
bindings:
  - target: Caption
    source: Title
    converter: percnt
  - target: "Caption."
  - target: Status
    source_resolver: named_element
`), 0o644))

	out, err := execute(t, "check", "-c", "percent", sheet)
	require.ErrorContains(t, err, "3 problem(s) found")

	assert.Contains(t, out, "did you mean percent?")
	assert.Contains(t, out, "[bindings[1]] Caption.")
	assert.Contains(t, out, "[bindings[2]]")
}

func TestCheck_MissingSheet(t *testing.T) {
	_, err := execute(t, "check", filepath.Join(t.TempDir(), "none.yaml"))
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestGen_CheckViewModel(t *testing.T) {
	out, err := execute(t, "gen", "--check", "--manifest", "../../examples/viewmodel/bind.yaml")
	require.NoError(t, err)
	assert.Contains(t, out, "generated files are up to date")
}

func TestGen_BadManifest(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bind.yaml")
	require.NoError(t, os.WriteFile(path, []byte("version: \"1\"\n"), 0o644))

	_, err := execute(t, "gen", "-m", path)
	require.ErrorContains(t, err, "at least one pattern is required")
}
