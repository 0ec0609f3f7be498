// Package testable is the file system seam of the CLI. Commands write
// reports, exports and config files through a FileSystem so tests can
// inject failures; production code uses DefaultFS.
package testable

import (
	"os"
	"path/filepath"
)

// FileSystem is the subset of os and filepath the CLI writes through.
type FileSystem interface {
	Abs(path string) (string, error)
	Stat(name string) (os.FileInfo, error)
	Create(name string) (*os.File, error)
	WriteFile(name string, data []byte, perm os.FileMode) error
	MkdirAll(path string, perm os.FileMode) error
}

// OsFileSystem delegates to the os and filepath packages.
type OsFileSystem struct{}

func (OsFileSystem) Abs(path string) (string, error) { return filepath.Abs(path) }

func (OsFileSystem) Stat(name string) (os.FileInfo, error) { return os.Stat(name) }

func (OsFileSystem) Create(name string) (*os.File, error) {
	return os.Create(name) //nolint:gosec // user-specified output path
}

func (OsFileSystem) WriteFile(name string, data []byte, perm os.FileMode) error {
	return os.WriteFile(name, data, perm) //nolint:gosec // user-specified output path
}

func (OsFileSystem) MkdirAll(path string, perm os.FileMode) error { return os.MkdirAll(path, perm) }

// DefaultFS is the FileSystem used when none is injected.
var DefaultFS FileSystem = OsFileSystem{}

// CreateAll creates name on fsys after creating its parent directories,
// so "-o reports/2022/overview.md" works on a fresh checkout.
func CreateAll(fsys FileSystem, name string) (*os.File, error) {
	if dir := filepath.Dir(name); dir != "." {
		if err := fsys.MkdirAll(dir, 0o750); err != nil {
			return nil, err
		}
	}
	return fsys.Create(name)
}
