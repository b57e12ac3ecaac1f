package filesystem

import "path/filepath"

// Join joins name onto dir unless name is already absolute or dir is empty
func Join(dir, name string) string {
	if dir == "" || filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(dir, name)
}
