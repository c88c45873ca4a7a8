package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func chdir(t *testing.T, dir string) {
	t.Helper()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() {
		_ = os.Chdir(wd)
	})
}

func setArgs(t *testing.T, args ...string) {
	t.Helper()
	original := os.Args
	os.Args = append([]string{"fab"}, args...)
	t.Cleanup(func() {
		os.Args = original
	})
}

func TestRun_Version(t *testing.T) {
	setArgs(t, "version")

	assert.Equal(t, 0, run())
}

func TestRun_CleanWithValidConfig(t *testing.T) {
	tmpDir := t.TempDir()
	config := `version: "1"
targets:
    kc705:
        variants: [nist_clock]
`
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "fab.yaml"), []byte(config), 0o600))
	require.NoError(t, os.MkdirAll(filepath.Join(tmpDir, ".fab", "build"), 0o750))

	chdir(t, tmpDir)
	setArgs(t, "clean")

	assert.Equal(t, 0, run())
	assert.NoDirExists(t, filepath.Join(tmpDir, ".fab", "build"))
}

func TestRun_MissingConfig(t *testing.T) {
	chdir(t, t.TempDir())
	setArgs(t, "vendor")

	assert.Equal(t, 1, run())
}
