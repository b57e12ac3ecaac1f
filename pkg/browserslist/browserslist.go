package browserslist

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/arthur-debert/bundlechain/pkg/config"
	"github.com/arthur-debert/bundlechain/pkg/errors"
	"github.com/arthur-debert/bundlechain/pkg/filesystem"
	"github.com/arthur-debert/bundlechain/pkg/logging"
	"github.com/arthur-debert/bundlechain/pkg/types"
	"github.com/tidwall/jsonc"
)

// Environment variables read by Resolve
const (
	EnvQueries = "BROWSERSLIST"
	EnvSection = "BROWSERSLIST_ENV"
)

// ConfigFileNames are the standalone config files probed in each directory
var ConfigFileNames = []string{".browserslistrc", "browserslist"}

var defaults = map[types.Target][]string{
	types.TargetWeb:           {"> 0.01%", "not dead", "not op_mini all"},
	types.TargetNode:          {"node >= 14"},
	types.TargetWebWorker:     {"> 0.01%", "not dead", "not op_mini all"},
	types.TargetServiceWorker: {"> 0.01%", "not dead", "not op_mini all"},
}

// Default returns the built-in queries for target
func Default(target types.Target) ([]string, bool) {
	q, ok := defaults[target]
	if !ok {
		return nil, false
	}
	return append([]string(nil), q...), true
}

// Resolve returns the browserslist queries for target. The first source
// that yields queries wins:
//
//  1. output.override_browserslist (a list, or the entry for target)
//  2. the BROWSERSLIST environment variable
//  3. .browserslistrc or browserslist in root or a parent directory, or the
//     browserslist field of a package.json found on the way up
//  4. the built-in default for target
//
// Sections of file sources are picked by BROWSERSLIST_ENV, falling back to
// production or development from isProd.
func Resolve(ctx context.Context, fsys types.FS, root string, cfg *config.NormalizedConfig, target types.Target, isProd bool) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	logger := logging.GetLogger("browserslist")

	if cfg != nil {
		if q, ok := cfg.Output.OverrideBrowserslist.For(target); ok {
			logger.Debug().Str("target", target.String()).Msg("Using browserslist override")
			return append([]string(nil), q...), nil
		}
	}

	if env := os.Getenv(EnvQueries); strings.TrimSpace(env) != "" {
		return splitQueries(env), nil
	}

	section := os.Getenv(EnvSection)
	if section == "" {
		section = "development"
		if isProd {
			section = "production"
		}
	}

	if fsys != nil && root != "" {
		q, source, err := fromFiles(ctx, fsys, root, section)
		if err != nil {
			return nil, err
		}
		if len(q) > 0 {
			logger.Debug().Str("source", source).Strs("queries", q).Msg("Loaded browserslist")
			return q, nil
		}
	}

	if q, ok := Default(target); ok {
		return q, nil
	}
	return nil, errors.Newf(errors.ErrBrowserslist, "no browserslist for target %q", target).
		WithDetail("target", target.String())
}

// fromFiles walks from root to the filesystem root and stops at the first
// directory holding a browserslist source
func fromFiles(ctx context.Context, fsys types.FS, root, section string) ([]string, string, error) {
	dir := filepath.Clean(root)
	for {
		if err := ctx.Err(); err != nil {
			return nil, "", err
		}

		for _, name := range ConfigFileNames {
			path := filepath.Join(dir, name)
			if !filesystem.Exists(fsys, path) {
				continue
			}
			data, err := fsys.ReadFile(path)
			if err != nil {
				return nil, "", errors.Wrapf(err, errors.ErrFileAccess, "failed to read %s", path).
					WithDetail("path", path)
			}
			return ParseConfig(string(data), section), path, nil
		}

		pkgPath := filepath.Join(dir, "package.json")
		if filesystem.Exists(fsys, pkgPath) {
			q, found, err := fromPackageJSON(fsys, pkgPath, section)
			if err != nil {
				return nil, "", err
			}
			if found {
				return q, pkgPath, nil
			}
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return nil, "", nil
		}
		dir = parent
	}
}

func fromPackageJSON(fsys types.FS, path, section string) ([]string, bool, error) {
	data, err := fsys.ReadFile(path)
	if err != nil {
		return nil, false, errors.Wrapf(err, errors.ErrFileAccess, "failed to read %s", path).
			WithDetail("path", path)
	}

	var pkg struct {
		Browserslist json.RawMessage `json:"browserslist"`
	}
	if err := json.Unmarshal(jsonc.ToJSON(data), &pkg); err != nil {
		return nil, false, errors.Wrapf(err, errors.ErrBrowserslist, "malformed %s", path).
			WithDetail("path", path)
	}
	if len(pkg.Browserslist) == 0 || string(pkg.Browserslist) == "null" {
		return nil, false, nil
	}

	var list []string
	if err := json.Unmarshal(pkg.Browserslist, &list); err == nil {
		return list, true, nil
	}

	var sections map[string][]string
	if err := json.Unmarshal(pkg.Browserslist, &sections); err != nil {
		return nil, false, errors.Newf(errors.ErrBrowserslist,
			"browserslist field in %s must be a list or an object of lists", path).
			WithDetail("path", path)
	}
	if q, ok := sections[section]; ok {
		return q, true, nil
	}
	if q, ok := sections["defaults"]; ok {
		return q, true, nil
	}
	return nil, true, nil
}

// ParseConfig parses the .browserslistrc format and returns the queries of
// section, or the queries outside any section when section is not present
func ParseConfig(content, section string) []string {
	var (
		global   []string
		sections = map[string][]string{}
		current  []string
		inGlobal = true
	)

	for _, line := range strings.Split(content, "\n") {
		if i := strings.Index(line, "#"); i >= 0 {
			line = line[:i]
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		if strings.HasPrefix(line, "[") && strings.HasSuffix(line, "]") {
			inGlobal = false
			current = strings.Fields(line[1 : len(line)-1])
			for _, name := range current {
				if _, ok := sections[name]; !ok {
					sections[name] = []string{}
				}
			}
			continue
		}

		queries := splitQueries(line)
		if inGlobal {
			global = append(global, queries...)
			continue
		}
		for _, name := range current {
			sections[name] = append(sections[name], queries...)
		}
	}

	if q, ok := sections[section]; ok {
		return q
	}
	if q, ok := sections["defaults"]; ok {
		return q
	}
	return global
}

func splitQueries(s string) []string {
	var out []string
	for _, q := range strings.Split(s, ",") {
		if q = strings.TrimSpace(q); q != "" {
			out = append(out, q)
		}
	}
	return out
}
