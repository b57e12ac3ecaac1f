package types

import (
	"io/fs"
)

// FS is the filesystem surface plugins and resolvers read through.
// Tests use an in-memory implementation (see filesystem.NewAferoFS).
type FS interface {
	// File operations
	Stat(name string) (fs.FileInfo, error)
	ReadFile(name string) ([]byte, error)
	WriteFile(name string, data []byte, perm fs.FileMode) error

	// Directory operations
	MkdirAll(path string, perm fs.FileMode) error
}
