package chain

import (
	"github.com/arthur-debert/bundlechain/pkg/errors"
	"github.com/arthur-debert/bundlechain/pkg/logging"
)

// Chain is the mutable, ordered description of a bundler configuration that
// plugins build up during composition. It is not safe for concurrent use.
type Chain struct {
	rules   []*Rule
	plugins Plugins
}

// New creates an empty chain
func New() *Chain {
	return &Chain{}
}

// Rule returns the rule with the given id, creating it if needed
func (c *Chain) Rule(id string) *Rule {
	for _, r := range c.rules {
		if r.id == id {
			return r
		}
	}
	r := &Rule{id: id}
	c.rules = append(c.rules, r)
	return r
}

// GetRule returns the rule with the given id without creating it
func (c *Chain) GetRule(id string) (*Rule, bool) {
	for _, r := range c.rules {
		if r.id == id {
			return r, true
		}
	}
	return nil, false
}

// Rules returns the rules in creation order
func (c *Chain) Rules() []*Rule {
	out := make([]*Rule, len(c.rules))
	copy(out, c.rules)
	return out
}

// Plugins returns the chain's plugin list
func (c *Chain) Plugins() *Plugins {
	return &c.plugins
}

// Materialize produces the raw bundler configuration. Options are deep
// copied, so later changes to the result do not reach the chain.
func (c *Chain) Materialize() (*BundlerConfig, error) {
	logger := logging.GetLogger("chain")

	bc := &BundlerConfig{
		Module:  Module{Rules: make([]RuleConfig, 0, len(c.rules))},
		Plugins: make([]PluginConfig, 0, c.plugins.Len()),
	}

	for _, r := range c.rules {
		if r.testErr != nil {
			return nil, errors.Wrapf(r.testErr, errors.ErrRuleInvalid,
				"rule %s has an invalid test pattern %q", r.id, r.test).
				WithDetail("rule", r.id)
		}

		rc := RuleConfig{
			Name:        r.id,
			Test:        r.test,
			Use:         make([]UseConfig, 0, len(r.uses)),
			SideEffects: r.sideEffects,
		}
		if r.resolve != nil && r.resolve.preferRelative != nil {
			rc.Resolve = &ResolveConfig{PreferRelative: r.resolve.preferRelative}
		}
		for _, u := range r.uses {
			if u.loader == "" {
				return nil, errors.Newf(errors.ErrRuleInvalid,
					"stage %s of rule %s has no loader", u.id, r.id).
					WithDetail("rule", r.id).
					WithDetail("use", u.id)
			}
			rc.Use = append(rc.Use, UseConfig{
				Name:    u.id,
				Loader:  u.loader,
				Options: u.options.Clone(),
			})
		}
		bc.Module.Rules = append(bc.Module.Rules, rc)
	}

	for _, p := range c.plugins.entries {
		bc.Plugins = append(bc.Plugins, PluginConfig{
			Name:    p.ID,
			Kind:    p.Kind,
			Options: p.Options.Clone(),
		})
	}

	logger.Debug().
		Int("rules", len(bc.Module.Rules)).
		Int("plugins", len(bc.Plugins)).
		Msg("Materialized chain")

	return bc, nil
}
