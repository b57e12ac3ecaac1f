package loaders

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/arthur-debert/bundlechain/pkg/config"
	"github.com/arthur-debert/bundlechain/pkg/errors"
	"github.com/arthur-debert/bundlechain/pkg/filesystem"
	"github.com/arthur-debert/bundlechain/pkg/logging"
	"github.com/arthur-debert/bundlechain/pkg/types"
	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"
)

// PostCSSConfigFiles are probed in order inside the project root, after the
// "postcss" field of package.json. Data files are inlined into the loader
// options; script files are handed to postcss-loader by path.
var PostCSSConfigFiles = []string{
	".postcssrc",
	".postcssrc.json",
	".postcssrc.yaml",
	".postcssrc.yml",
	".postcssrc.js",
	".postcssrc.cjs",
	".postcssrc.mjs",
	".postcssrc.ts",
	"postcss.config.js",
	"postcss.config.cjs",
	"postcss.config.mjs",
	"postcss.config.ts",
}

// PostCSSParams are the inputs of PostCSSLoaderOptions
type PostCSSParams struct {
	Browserslist []string
	Config       *config.NormalizedConfig
	Root         string
	FS           types.FS
}

// postcssSource is a project level PostCSS configuration
type postcssSource struct {
	path    string
	script  bool
	options map[string]interface{}
	plugins []interface{}
}

// PostCSSLoaderOptions builds postcss-loader options. Project plugins come
// first, followed by postcss-flexbugs-fixes and autoprefixer targeting
// browserslist; tools.postcss is merged over the result.
func PostCSSLoaderOptions(ctx context.Context, p PostCSSParams) (map[string]interface{}, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	logger := logging.GetLogger("loaders.postcss")

	src, err := findPostCSSConfig(p.FS, p.Root)
	if err != nil {
		return nil, err
	}

	postcssOptions := map[string]interface{}{}
	var plugins []interface{}
	if src != nil && !src.script {
		for k, v := range src.options {
			postcssOptions[k] = v
		}
		plugins = append(plugins, src.plugins...)
		logger.Debug().Str("path", src.path).Int("plugins", len(src.plugins)).Msg("Inlined project PostCSS config")
	}

	autoprefixerOptions := MergeChainedOptions(map[string]interface{}{
		"flexbox":              "no-2009",
		"overrideBrowserslist": append([]string(nil), p.Browserslist...),
	}, p.Config.Tools.Autoprefixer)

	plugins = append(plugins,
		PostCSSFlexbugsFixes,
		[]interface{}{Autoprefixer, autoprefixerOptions},
	)
	postcssOptions["plugins"] = plugins

	merged := MergeChainedOptions(map[string]interface{}{
		"postcssOptions": postcssOptions,
		"sourceMap":      UseCSSSourceMap(p.Config),
	}, p.Config.Tools.PostCSS)

	finalOptions, ok := merged["postcssOptions"].(map[string]interface{})
	if !ok {
		finalOptions = map[string]interface{}{}
		merged["postcssOptions"] = finalOptions
	}
	if src != nil && src.script {
		finalOptions["config"] = src.path
	} else {
		finalOptions["config"] = false
	}

	return merged, nil
}

func findPostCSSConfig(fsys types.FS, root string) (*postcssSource, error) {
	if fsys == nil {
		return nil, nil
	}

	pkgPath := filesystem.Join(root, "package.json")
	if filesystem.Exists(fsys, pkgPath) {
		data, err := fsys.ReadFile(pkgPath)
		if err != nil {
			return nil, errors.Wrapf(err, errors.ErrFileAccess, "failed to read %s", pkgPath).
				WithDetail("path", pkgPath)
		}
		doc, err := parseOrdered(data, true)
		if err != nil {
			return nil, errors.Wrapf(err, errors.ErrConfigInvalid, "malformed %s", pkgPath).
				WithDetail("path", pkgPath)
		}
		if field := mappingValue(doc, "postcss"); field != nil {
			return decodePostCSSSource(pkgPath, field)
		}
	}

	for _, name := range PostCSSConfigFiles {
		path := filesystem.Join(root, name)
		if !filesystem.Exists(fsys, path) {
			continue
		}

		ext := filepath.Ext(name)
		switch ext {
		case ".js", ".cjs", ".mjs", ".ts":
			return &postcssSource{path: path, script: true}, nil
		}

		data, err := fsys.ReadFile(path)
		if err != nil {
			return nil, errors.Wrapf(err, errors.ErrFileAccess, "failed to read %s", path).
				WithDetail("path", path)
		}
		isJSON := ext == ".json" || (ext == "" && strings.HasPrefix(strings.TrimSpace(string(data)), "{"))
		doc, err := parseOrdered(data, isJSON)
		if err != nil {
			return nil, errors.Wrapf(err, errors.ErrConfigInvalid, "malformed PostCSS config %s", path).
				WithDetail("path", path)
		}
		if doc == nil {
			return &postcssSource{path: path}, nil
		}
		return decodePostCSSSource(path, doc)
	}
	return nil, nil
}

// parseOrdered parses JSON (with comments) or YAML into a node tree so
// plugin order survives decoding
func parseOrdered(data []byte, isJSON bool) (*yaml.Node, error) {
	if isJSON {
		data = jsonc.ToJSON(data)
	}
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	if doc.Kind == 0 {
		return nil, nil
	}
	if doc.Kind == yaml.DocumentNode {
		if len(doc.Content) == 0 {
			return nil, nil
		}
		return doc.Content[0], nil
	}
	return &doc, nil
}

func mappingValue(node *yaml.Node, key string) *yaml.Node {
	if node == nil || node.Kind != yaml.MappingNode {
		return nil
	}
	for i := 0; i+1 < len(node.Content); i += 2 {
		if node.Content[i].Value == key {
			return node.Content[i+1]
		}
	}
	return nil
}

func decodePostCSSSource(path string, node *yaml.Node) (*postcssSource, error) {
	if node.Kind != yaml.MappingNode {
		return nil, errors.Newf(errors.ErrConfigInvalid, "PostCSS config %s must be an object", path).
			WithDetail("path", path)
	}

	src := &postcssSource{path: path, options: map[string]interface{}{}}
	for i := 0; i+1 < len(node.Content); i += 2 {
		key, value := node.Content[i].Value, node.Content[i+1]
		if key == "plugins" {
			plugins, err := decodePostCSSPlugins(value)
			if err != nil {
				return nil, errors.Wrapf(err, errors.ErrConfigInvalid, "invalid plugins in %s", path).
					WithDetail("path", path)
			}
			src.plugins = plugins
			continue
		}
		var v interface{}
		if err := value.Decode(&v); err != nil {
			return nil, errors.Wrapf(err, errors.ErrConfigInvalid, "invalid %s in %s", key, path).
				WithDetail("path", path)
		}
		src.options[key] = v
	}
	return src, nil
}

// decodePostCSSPlugins accepts the object form ({"name": options}) and the
// list form of the plugins key. In the object form false disables a plugin
// and empty options reduce the entry to its name.
func decodePostCSSPlugins(node *yaml.Node) ([]interface{}, error) {
	var plugins []interface{}
	switch node.Kind {
	case yaml.MappingNode:
		for i := 0; i+1 < len(node.Content); i += 2 {
			name := node.Content[i].Value
			var opts interface{}
			if err := node.Content[i+1].Decode(&opts); err != nil {
				return nil, err
			}
			switch o := opts.(type) {
			case bool:
				if !o {
					continue
				}
				plugins = append(plugins, name)
			case nil:
				plugins = append(plugins, name)
			case map[string]interface{}:
				if len(o) == 0 {
					plugins = append(plugins, name)
				} else {
					plugins = append(plugins, []interface{}{name, o})
				}
			default:
				plugins = append(plugins, []interface{}{name, o})
			}
		}
	case yaml.SequenceNode:
		if err := node.Decode(&plugins); err != nil {
			return nil, err
		}
	default:
		return nil, errors.New(errors.ErrConfigInvalid, "plugins must be an object or a list")
	}
	return plugins, nil
}
