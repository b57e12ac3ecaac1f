package output

import (
	_ "embed"
	"io"

	"github.com/arthur-debert/bundlechain/pkg/errors"
	"github.com/charmbracelet/lipgloss"
	"gopkg.in/yaml.v3"
)

//go:embed styles.yaml
var defaultStyles []byte

// ColorDef is an adaptive color definition
type ColorDef struct {
	Light string `yaml:"light"`
	Dark  string `yaml:"dark"`
}

// StyleDef is a style definition. Foreground names an entry of Colors.
type StyleDef struct {
	Bold       bool   `yaml:"bold,omitempty"`
	Italic     bool   `yaml:"italic,omitempty"`
	Underline  bool   `yaml:"underline,omitempty"`
	Foreground string `yaml:"foreground,omitempty"`
}

// StyleConfig is the complete styles configuration
type StyleConfig struct {
	Colors map[string]ColorDef `yaml:"colors"`
	Styles map[string]StyleDef `yaml:"styles"`
}

// Styles maps semantic names to lipgloss styles bound to one writer
type Styles struct {
	registry map[string]lipgloss.Style
	renderer *lipgloss.Renderer
}

// ParseStyles decodes a YAML style configuration
func ParseStyles(data []byte) (*StyleConfig, error) {
	var cfg StyleConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "failed to parse styles")
	}
	return &cfg, nil
}

// NewStyles builds the default styles for w
func NewStyles(w io.Writer) *Styles {
	cfg, err := ParseStyles(defaultStyles)
	if err != nil {
		panic(err)
	}
	return NewStylesFromConfig(w, cfg)
}

// NewStylesFromConfig builds styles for w from cfg. The color profile is
// detected from w, so a non-terminal writer gets unstyled text.
func NewStylesFromConfig(w io.Writer, cfg *StyleConfig) *Styles {
	renderer := lipgloss.NewRenderer(w)

	colors := make(map[string]lipgloss.AdaptiveColor, len(cfg.Colors))
	for name, def := range cfg.Colors {
		colors[name] = lipgloss.AdaptiveColor{Light: def.Light, Dark: def.Dark}
	}

	registry := make(map[string]lipgloss.Style, len(cfg.Styles))
	for name, def := range cfg.Styles {
		style := renderer.NewStyle()
		if def.Bold {
			style = style.Bold(true)
		}
		if def.Italic {
			style = style.Italic(true)
		}
		if def.Underline {
			style = style.Underline(true)
		}
		if color, ok := colors[def.Foreground]; ok {
			style = style.Foreground(color)
		}
		registry[name] = style
	}

	return &Styles{registry: registry, renderer: renderer}
}

// Get returns the named style, or a plain style if it is not defined
func (s *Styles) Get(name string) lipgloss.Style {
	if style, ok := s.registry[name]; ok {
		return style
	}
	return s.renderer.NewStyle()
}

// Render applies the named style to text
func (s *Styles) Render(name, text string) string {
	return s.Get(name).Render(text)
}
