package testutil

import (
	"io/fs"
	"sync"

	"github.com/arthur-debert/bundlechain/pkg/types"
)

// FaultFS wraps a filesystem and injects failures on selected paths.
// Stat and ReadFile consult the injected faults; writes pass through.
type FaultFS struct {
	types.FS

	mu     sync.RWMutex
	errs   map[string]error
	panics map[string]bool
	all    error
}

// NewFaultFS wraps base. A nil base behaves as an empty filesystem.
func NewFaultFS(base types.FS) *FaultFS {
	return &FaultFS{
		FS:     base,
		errs:   make(map[string]error),
		panics: make(map[string]bool),
	}
}

// FailOn makes every read of name return err
func (f *FaultFS) FailOn(name string, err error) *FaultFS {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.errs[name] = err
	return f
}

// FailAll makes every read without a more specific fault return err
func (f *FaultFS) FailAll(err error) *FaultFS {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.all = err
	return f
}

// PanicOn makes every read of name panic
func (f *FaultFS) PanicOn(name string) *FaultFS {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.panics[name] = true
	return f
}

func (f *FaultFS) fault(name string) error {
	f.mu.RLock()
	defer f.mu.RUnlock()
	if f.panics[name] {
		panic("injected fault: " + name)
	}
	if err, ok := f.errs[name]; ok {
		return err
	}
	if f.all != nil {
		return f.all
	}
	if f.FS == nil {
		return fs.ErrNotExist
	}
	return nil
}

func (f *FaultFS) Stat(name string) (fs.FileInfo, error) {
	if err := f.fault(name); err != nil {
		return nil, &fs.PathError{Op: "stat", Path: name, Err: err}
	}
	return f.FS.Stat(name)
}

func (f *FaultFS) ReadFile(name string) ([]byte, error) {
	if err := f.fault(name); err != nil {
		return nil, &fs.PathError{Op: "read", Path: name, Err: err}
	}
	return f.FS.ReadFile(name)
}
