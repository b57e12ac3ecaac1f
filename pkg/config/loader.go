package config

import (
	_ "embed"
	"errors"
	"os"
	"path/filepath"
	"strings"

	chainerrors "github.com/arthur-debert/bundlechain/pkg/errors"
	"github.com/arthur-debert/bundlechain/pkg/logging"
	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

//go:embed embedded/defaults.toml
var defaultConfig []byte

// DefaultEnvPrefix prefixes environment overrides. Levels are separated by
// a double underscore: BUNDLECHAIN_OUTPUT__DISABLE_CSS_EXTRACT=true.
const DefaultEnvPrefix = "BUNDLECHAIN_"

// ConfigFileNames are probed in order inside the project root
var ConfigFileNames = []string{
	"bundlechain.toml",
	".bundlechain.toml",
	"bundlechain.yaml",
	"bundlechain.yml",
}

type rawBytesProvider struct{ bytes []byte }

func (r *rawBytesProvider) ReadBytes() ([]byte, error) { return r.bytes, nil }
func (r *rawBytesProvider) Read() (map[string]interface{}, error) {
	return nil, errors.New("not implemented")
}

// LoadOptions tunes Load
type LoadOptions struct {
	// ConfigFile bypasses the ConfigFileNames probe when set
	ConfigFile string
	// EnvPrefix defaults to DefaultEnvPrefix; "-" disables env overrides
	EnvPrefix string
}

// Load reads the configuration for the project at root
func Load(root string) (*NormalizedConfig, error) {
	return LoadWithOptions(root, LoadOptions{})
}

// LoadWithOptions merges the embedded defaults, the project config file and
// environment overrides, then decodes and validates the result.
func LoadWithOptions(root string, opts LoadOptions) (*NormalizedConfig, error) {
	logger := logging.GetLogger("config")

	k, err := loadDefaults()
	if err != nil {
		return nil, err
	}

	configPath := opts.ConfigFile
	if configPath == "" {
		configPath = findConfigFile(root)
	} else if !filepath.IsAbs(configPath) {
		configPath = filepath.Join(root, configPath)
	}

	if configPath != "" {
		parser, err := parserFor(configPath)
		if err != nil {
			return nil, err
		}
		if err := k.Load(file.Provider(configPath), parser); err != nil {
			return nil, chainerrors.Wrapf(err, chainerrors.ErrConfigLoad,
				"failed to load config from %s", configPath).
				WithDetail("path", configPath)
		}
		logger.Debug().Str("path", configPath).Msg("Loaded project config")
	}

	prefix := opts.EnvPrefix
	if prefix == "" {
		prefix = DefaultEnvPrefix
	}
	if prefix != "-" {
		if err := k.Load(env.Provider(prefix, ".", func(s string) string {
			return strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(s, prefix)), "__", ".")
		}), nil); err != nil {
			return nil, chainerrors.Wrap(err, chainerrors.ErrConfigLoad, "failed to load env vars")
		}
	}

	return decode(k)
}

// FromMap builds a configuration from the embedded defaults and the nested
// map m, which uses the same keys as the config file.
func FromMap(m map[string]interface{}) (*NormalizedConfig, error) {
	k, err := loadDefaults()
	if err != nil {
		return nil, err
	}
	if err := k.Load(confmap.Provider(m, ""), nil); err != nil {
		return nil, chainerrors.Wrap(err, chainerrors.ErrConfigLoad, "failed to load config map")
	}
	return decode(k)
}

// Default returns the built-in configuration
func Default() *NormalizedConfig {
	cfg, err := FromMap(map[string]interface{}{})
	if err != nil {
		panic("embedded defaults are invalid: " + err.Error())
	}
	return cfg
}

func loadDefaults() (*koanf.Koanf, error) {
	k := koanf.New(".")
	if err := k.Load(&rawBytesProvider{bytes: defaultConfig}, toml.Parser()); err != nil {
		return nil, chainerrors.Wrap(err, chainerrors.ErrConfigLoad, "failed to load defaults")
	}
	return k, nil
}

func decode(k *koanf.Koanf) (*NormalizedConfig, error) {
	var cfg NormalizedConfig
	unmarshalConf := koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           &cfg,
			WeaklyTypedInput: true,
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToSliceHookFunc(","),
				unionHookFunc(),
			),
		},
	}
	if err := k.UnmarshalWithConf("", &cfg, unmarshalConf); err != nil {
		return nil, chainerrors.Wrap(err, chainerrors.ErrConfigParse, "failed to unmarshal configuration")
	}

	if err := Validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func findConfigFile(root string) string {
	for _, name := range ConfigFileNames {
		path := filepath.Join(root, name)
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

func parserFor(path string) (koanf.Parser, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return toml.Parser(), nil
	case ".yaml", ".yml":
		return yaml.Parser(), nil
	}
	return nil, chainerrors.Newf(chainerrors.ErrConfigLoad, "unsupported config file type: %s", path).
		WithDetail("path", path)
}
