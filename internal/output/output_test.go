package output

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWrite_New(t *testing.T) {
	path := filepath.Join(t.TempDir(), "inc", "timer_alias.h")

	require.NoError(t, Write(path, []byte("#define X 1\n"), false))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "#define X 1\n", string(data))
}

func TestWrite_RefusesOverwrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "timer_alias.h")
	require.NoError(t, os.WriteFile(path, []byte("old"), 0644))

	err := Write(path, []byte("new"), false)
	assert.ErrorIs(t, err, ErrExists)
	data, _ := os.ReadFile(path)
	assert.Equal(t, "old", string(data))

	require.NoError(t, Write(path, []byte("new"), true))
	data, _ = os.ReadFile(path)
	assert.Equal(t, "new", string(data))
}

func TestWrite_LeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, Write(filepath.Join(dir, "gen.go"), []byte("package x\n"), false))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "gen.go", entries[0].Name())
}

func TestWrite_SyncFailure(t *testing.T) {
	orig := syncFile
	syncFile = func(*os.File) error { return errors.New("disk gone") }
	defer func() { syncFile = orig }()

	dir := t.TempDir()
	path := filepath.Join(dir, "timer_alias.h")
	err := Write(path, []byte("new"), false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk gone")
	assert.NoFileExists(t, path)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries, "temp file removed")
}
