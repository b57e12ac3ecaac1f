package testutil

import (
	"path"
	"testing"

	"github.com/arthur-debert/bundlechain/pkg/browserslist"
	"github.com/arthur-debert/bundlechain/pkg/filesystem"
	"github.com/arthur-debert/bundlechain/pkg/types"
	"github.com/stretchr/testify/require"
)

// NewProjectFS returns an in-memory filesystem holding root, the given
// directories and files. Relative names are joined to root.
func NewProjectFS(t *testing.T, root string, files map[string]string, dirs ...string) types.FS {
	t.Helper()
	fsys := filesystem.NewMemory()
	require.NoError(t, fsys.MkdirAll(root, 0755))
	for _, dir := range dirs {
		require.NoError(t, fsys.MkdirAll(resolve(root, dir), 0755))
	}
	for name, content := range files {
		require.NoError(t, fsys.WriteFile(resolve(root, name), []byte(content), 0644))
	}
	return fsys
}

func resolve(root, name string) string {
	if path.IsAbs(name) {
		return name
	}
	return path.Join(root, name)
}

// ClearBrowserslistEnv blanks the browserslist variables for the test
func ClearBrowserslistEnv(t *testing.T) {
	t.Helper()
	t.Setenv(browserslist.EnvQueries, "")
	t.Setenv(browserslist.EnvSection, "")
}
