package testable

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMockFileSystem_OverridesOnlySetFields(t *testing.T) {
	errBoom := errors.New("boom")
	m := &MockFileSystem{
		CreateFn: func(string) (*os.File, error) { return nil, errBoom },
	}

	_, err := m.Create(filepath.Join(t.TempDir(), "x"))
	assert.ErrorIs(t, err, errBoom)

	dir := filepath.Join(t.TempDir(), "a", "b")
	require.NoError(t, m.MkdirAll(dir, 0o750))
	path := filepath.Join(dir, "f.txt")
	require.NoError(t, m.WriteFile(path, []byte("hi"), 0o600))

	info, err := m.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, int64(2), info.Size())

	abs, err := m.Abs(".")
	require.NoError(t, err)
	assert.True(t, filepath.IsAbs(abs))
}

func TestOsFileSystem_Create(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.txt")
	f, err := DefaultFS.Create(path)
	require.NoError(t, err)
	_, err = f.WriteString("ok")
	require.NoError(t, err)
	require.NoError(t, f.Close())

	data, err := os.ReadFile(path) //nolint:gosec // test path
	require.NoError(t, err)
	assert.Equal(t, "ok", string(data))
}

func TestCreateAll(t *testing.T) {
	path := filepath.Join(t.TempDir(), "reports", "2022", "overview.md")
	f, err := CreateAll(DefaultFS, path)
	require.NoError(t, err)
	require.NoError(t, f.Close())
	assert.FileExists(t, path)

	errDenied := errors.New("denied")
	_, err = CreateAll(&MockFileSystem{
		MkdirAllFn: func(string, os.FileMode) error { return errDenied },
	}, path)
	assert.ErrorIs(t, err, errDenied)
}
