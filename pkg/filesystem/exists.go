package filesystem

import (
	"github.com/arthur-debert/bundlechain/pkg/logging"
	"github.com/arthur-debert/bundlechain/pkg/types"
)

// Exists reports whether path exists on fsys. It never fails: any error,
// including a panic from a misbehaving FS implementation, reads as false.
func Exists(fsys types.FS, path string) (exists bool) {
	if fsys == nil || path == "" {
		return false
	}

	defer func() {
		if r := recover(); r != nil {
			logger := logging.GetLogger("filesystem")
			logger.Debug().
				Str("path", path).
				Interface("panic", r).
				Msg("Stat panicked, treating path as missing")
			exists = false
		}
	}()

	if _, err := fsys.Stat(path); err != nil {
		logger := logging.GetLogger("filesystem")
		logger.Trace().
			Err(err).
			Str("path", path).
			Msg("Path does not exist or cannot be read")
		return false
	}
	return true
}

// FirstExisting returns the first of names, joined to dir, that exists
func FirstExisting(fsys types.FS, dir string, names ...string) (string, bool) {
	for _, name := range names {
		candidate := Join(dir, name)
		if Exists(fsys, candidate) {
			return candidate, true
		}
	}
	return "", false
}
