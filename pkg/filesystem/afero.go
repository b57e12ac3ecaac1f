package filesystem

import (
	"io/fs"

	"github.com/arthur-debert/bundlechain/pkg/types"
	"github.com/spf13/afero"
)

// aferoFS adapts an afero.Fs to types.FS
type aferoFS struct {
	base afero.Fs
}

// NewAferoFS wraps any afero filesystem
func NewAferoFS(base afero.Fs) types.FS {
	return &aferoFS{base: base}
}

// NewOS returns the host filesystem
func NewOS() types.FS {
	return NewAferoFS(afero.NewOsFs())
}

// NewReadOnlyOS returns the host filesystem with writes rejected. Builds
// only probe and read project files.
func NewReadOnlyOS() types.FS {
	return NewAferoFS(afero.NewReadOnlyFs(afero.NewOsFs()))
}

// NewMemory returns an empty in-memory filesystem
func NewMemory() types.FS {
	return NewAferoFS(afero.NewMemMapFs())
}

func (a *aferoFS) Stat(name string) (fs.FileInfo, error) {
	return a.base.Stat(name)
}

// ReadFile refuses directories on every backend; MemMapFs would
// otherwise return an empty slice for them
func (a *aferoFS) ReadFile(name string) ([]byte, error) {
	info, err := a.base.Stat(name)
	if err != nil {
		return nil, err
	}
	if info.IsDir() {
		return nil, &fs.PathError{Op: "read", Path: name, Err: fs.ErrInvalid}
	}
	return afero.ReadFile(a.base, name)
}

func (a *aferoFS) WriteFile(name string, data []byte, perm fs.FileMode) error {
	return afero.WriteFile(a.base, name, data, perm)
}

func (a *aferoFS) MkdirAll(path string, perm fs.FileMode) error {
	return a.base.MkdirAll(path, perm)
}
