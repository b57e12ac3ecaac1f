package provider

import (
	"context"

	"github.com/arthur-debert/bundlechain/pkg/chain"
	"github.com/arthur-debert/bundlechain/pkg/config"
	"github.com/arthur-debert/bundlechain/pkg/errors"
	"github.com/arthur-debert/bundlechain/pkg/filesystem"
	"github.com/arthur-debert/bundlechain/pkg/logging"
	"github.com/arthur-debert/bundlechain/pkg/plugins"
	"github.com/arthur-debert/bundlechain/pkg/plugins/builtin"
	"github.com/arthur-debert/bundlechain/pkg/types"
	"github.com/rs/zerolog"
)

type phase int

const (
	phaseNew phase = iota
	phaseComposed
	phaseMaterialized
	phaseFinalized
)

func (p phase) String() string {
	switch p {
	case phaseNew:
		return "new"
	case phaseComposed:
		return "composed"
	case phaseMaterialized:
		return "materialized"
	case phaseFinalized:
		return "finalized"
	}
	return "unknown"
}

// Options configures a build
type Options struct {
	Config  *config.NormalizedConfig
	Context types.BuildContext
	// FS defaults to the read-only host filesystem
	FS types.FS
	// Plugins lists catalog names in hook order; nil means builtin.DefaultOrder
	Plugins []string
}

// Result is the outcome of Build
type Result struct {
	Chain         *chain.Chain
	BundlerConfig *chain.BundlerConfig
	Plugins       []string
}

// Provider runs plugin hooks for one build. Compose runs every ModifyChain
// hook, Materialize turns the chain into a BundlerConfig and Finalize runs
// every ModifyBundlerConfig hook. Each step runs once, in that order.
type Provider struct {
	api     *plugins.API
	plugins []plugins.Plugin
	chain   *chain.Chain
	bc      *chain.BundlerConfig
	phase   phase
	logger  zerolog.Logger
}

// New resolves the plugins of a build
func New(opts Options) (*Provider, error) {
	if opts.Config == nil {
		return nil, errors.New(errors.ErrInvalidInput, "provider requires a configuration")
	}
	if opts.FS == nil {
		opts.FS = filesystem.NewReadOnlyOS()
	}
	names := opts.Plugins
	if names == nil {
		names = builtin.Names()
	}

	resolved := make([]plugins.Plugin, 0, len(names))
	for _, name := range names {
		p, err := plugins.Get(name)
		if err != nil {
			return nil, err
		}
		resolved = append(resolved, p)
	}

	return &Provider{
		api: &plugins.API{
			Config:  opts.Config,
			Context: opts.Context,
			FS:      opts.FS,
		},
		plugins: resolved,
		chain:   chain.New(),
		phase:   phaseNew,
		logger:  logging.GetLogger("provider"),
	}, nil
}

// Chain returns the chain plugins compose into
func (p *Provider) Chain() *chain.Chain {
	return p.chain
}

// Compose runs the ModifyChain hooks in plugin order
func (p *Provider) Compose(ctx context.Context) error {
	if err := p.expect(phaseNew, "compose"); err != nil {
		return err
	}

	for _, plugin := range p.plugins {
		if err := ctx.Err(); err != nil {
			return err
		}
		modifier, ok := plugin.(plugins.ChainModifier)
		if !ok {
			continue
		}
		p.logger.Debug().Str("plugin", plugin.Name()).Msg("Running ModifyChain")
		if err := modifier.ModifyChain(ctx, p.api, p.chain); err != nil {
			return errors.InPlugin(err, plugin.Name(), "ModifyChain")
		}
	}

	p.phase = phaseComposed
	return nil
}

// Materialize produces the bundler configuration from the composed chain
func (p *Provider) Materialize() (*chain.BundlerConfig, error) {
	if err := p.expect(phaseComposed, "materialize"); err != nil {
		return nil, err
	}
	bc, err := p.chain.Materialize()
	if err != nil {
		return nil, err
	}
	p.bc = bc
	p.phase = phaseMaterialized
	return bc, nil
}

// Finalize runs the ModifyBundlerConfig hooks in plugin order. A composed
// but not yet materialized chain is materialized first.
func (p *Provider) Finalize(ctx context.Context) (*chain.BundlerConfig, error) {
	if p.phase == phaseComposed {
		if _, err := p.Materialize(); err != nil {
			return nil, err
		}
	}
	if err := p.expect(phaseMaterialized, "finalize"); err != nil {
		return nil, err
	}

	for _, plugin := range p.plugins {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		modifier, ok := plugin.(plugins.ConfigModifier)
		if !ok {
			continue
		}
		p.logger.Debug().Str("plugin", plugin.Name()).Msg("Running ModifyBundlerConfig")
		if err := modifier.ModifyBundlerConfig(ctx, p.api, p.bc); err != nil {
			return nil, errors.InPlugin(err, plugin.Name(), "ModifyBundlerConfig")
		}
	}

	p.phase = phaseFinalized
	return p.bc, nil
}

func (p *Provider) expect(want phase, step string) error {
	if p.phase == want {
		return nil
	}
	return errors.Newf(errors.ErrPhaseOrder, "cannot %s a build that is %s", step, p.phase).
		WithDetail("phase", p.phase.String())
}

// Build composes, materializes and finalizes a bundler configuration
func Build(ctx context.Context, opts Options) (*Result, error) {
	logger := logging.GetLogger("provider")

	p, err := New(opts)
	if err != nil {
		return nil, err
	}
	if err := p.Compose(ctx); err != nil {
		return nil, err
	}
	bc, err := p.Finalize(ctx)
	if err != nil {
		return nil, err
	}

	names := make([]string, len(p.plugins))
	for i, plugin := range p.plugins {
		names[i] = plugin.Name()
	}

	logger.Info().
		Str("target", opts.Context.Target.String()).
		Str("mode", opts.Context.Mode()).
		Int("rules", len(bc.Module.Rules)).
		Int("plugins", len(bc.Plugins)).
		Msg("Built bundler config")

	return &Result{Chain: p.chain, BundlerConfig: bc, Plugins: names}, nil
}
