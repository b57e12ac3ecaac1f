package config

import (
	"github.com/arthur-debert/bundlechain/pkg/errors"
)

var localsConventions = map[string]bool{
	"asIs":          true,
	"camelCase":     true,
	"camelCaseOnly": true,
	"dashes":        true,
	"dashesOnly":    true,
}

// Validate checks the values decoding cannot catch
func Validate(cfg *NormalizedConfig) error {
	if conv := cfg.Output.CSSModules.ExportLocalsConvention; conv != "" && !localsConventions[conv] {
		return errors.Newf(errors.ErrConfigInvalid,
			"output.css_modules.export_locals_convention: unknown convention %q", conv)
	}

	if o := cfg.Output.OverrideBrowserslist; o != nil {
		for target := range o.ByTarget {
			if !target.IsValid() {
				return errors.Newf(errors.ErrConfigInvalid,
					"output.override_browserslist: unknown target %q", target).
					WithDetail("target", string(target))
			}
		}
	}

	if c := cfg.Output.Copy; c != nil {
		for i, p := range c.Patterns {
			if p.Bare && p.From == "" {
				return errors.Newf(errors.ErrConfigInvalid, "output.copy pattern %d is an empty string", i)
			}
		}
	}

	return nil
}

