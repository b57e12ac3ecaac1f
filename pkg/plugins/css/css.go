package css

import (
	"context"

	"github.com/arthur-debert/bundlechain/pkg/browserslist"
	"github.com/arthur-debert/bundlechain/pkg/chain"
	"github.com/arthur-debert/bundlechain/pkg/config"
	"github.com/arthur-debert/bundlechain/pkg/errors"
	"github.com/arthur-debert/bundlechain/pkg/filesystem"
	"github.com/arthur-debert/bundlechain/pkg/loaders"
	"github.com/arthur-debert/bundlechain/pkg/logging"
	"github.com/arthur-debert/bundlechain/pkg/plugins"
	"github.com/arthur-debert/bundlechain/pkg/types"
)

const (
	// Name is the catalog name of the plugin
	Name = "css"

	// CSSPattern is the test pattern of the CSS rule
	CSSPattern = "*.css"
)

// Options tunes ApplyBaseCSSRule
type Options struct {
	// ImportLoaders is the number of stages after css-loader that apply to
	// @import-ed files. Zero means 1.
	ImportLoaders int

	// FS is read for browserslist and PostCSS config files. Nil means the
	// OS filesystem.
	FS types.FS
}

// ApplyBaseCSSRule appends the CSS stages to rule. For browser bundles the
// stages are, in insertion order: extraction or style injection, optional
// CSS Modules type declarations, css-loader and postcss-loader. Server and
// worker bundles get ignore-css and css-loader only.
func ApplyBaseCSSRule(ctx context.Context, rule *chain.Rule, cfg *config.NormalizedConfig, bctx types.BuildContext, opts Options) error {
	logger := logging.GetLogger("css")

	if opts.ImportLoaders == 0 {
		opts.ImportLoaders = 1
	}
	if opts.FS == nil {
		opts.FS = filesystem.NewReadOnlyOS()
	}

	targets, err := browserslist.Resolve(ctx, opts.FS, bctx.RootPath, cfg, bctx.Target, bctx.IsProd)
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return errors.Wrapf(err, errors.ErrConfigInvalid, "failed to resolve browserslist for %s", bctx.Target).
			WithDetail("target", bctx.Target.String()).
			WithDetail("root", bctx.RootPath)
	}

	enableExtract := loaders.IsUseCSSExtract(cfg, bctx.Target)
	enableModuleTypes := cfg.Output.EnableCSSModuleTSDeclaration
	localIdentName := loaders.CSSModuleLocalIdentName(cfg, bctx.IsProd)

	cssOptions, err := loaders.CSSLoaderOptions(loaders.CSSLoaderParams{
		Config:         cfg,
		ImportLoaders:  opts.ImportLoaders,
		IsServer:       bctx.IsServer,
		IsWebWorker:    bctx.IsWebWorker,
		LocalIdentName: localIdentName,
	})
	if err != nil {
		return err
	}

	browserBundle := !bctx.IsServer && !bctx.IsWebWorker
	if browserBundle {
		if enableExtract {
			rule.Use(chain.UseMiniCSSExtract).
				SetLoader(loaders.CSSExtractLoader).
				SetOptions(loaders.CSSExtractLoaderOptions(cfg))
		} else {
			rule.Use(chain.UseStyle).
				SetLoader(loaders.StyleLoader).
				SetOptions(loaders.MergeChainedOptions(map[string]interface{}{}, cfg.Tools.StyleLoader))
		}

		if enableModuleTypes && loaders.ModulesEnabled(cssOptions) {
			rule.Use(chain.UseCSSModulesTS).
				SetLoader(loaders.CSSModulesTSLoader).
				SetOptions(chain.Options{"modules": cssOptions["modules"]})
		}
	} else {
		rule.Use(chain.UseIgnoreCSS).SetLoader(loaders.IgnoreCSSLoader)
	}

	rule.Use(chain.UseCSS).
		SetLoader(loaders.CSSLoader).
		SetOptions(cssOptions)

	if browserBundle {
		postcssOptions, err := loaders.PostCSSLoaderOptions(ctx, loaders.PostCSSParams{
			Browserslist: targets,
			Config:       cfg,
			Root:         bctx.RootPath,
			FS:           opts.FS,
		})
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return errors.Wrap(err, errors.ErrConfigInvalid, "failed to derive postcss-loader options").
				WithDetail("root", bctx.RootPath)
		}
		rule.Use(chain.UsePostCSS).
			SetLoader(loaders.PostCSSLoader).
			SetOptions(postcssOptions)
	}

	rule.SideEffects(true)
	rule.Resolve().PreferRelative(true)

	logger.Debug().
		Str("target", bctx.Target.String()).
		Bool("extract", browserBundle && enableExtract).
		Bool("moduleTypes", rule.HasUse(chain.UseCSSModulesTS)).
		Strs("uses", rule.UseIDs()).
		Msg("Applied CSS rule")

	return nil
}

// Plugin composes the CSS rule
type Plugin struct{}

// New creates the CSS plugin
func New() *Plugin {
	return &Plugin{}
}

func (p *Plugin) Name() string {
	return Name
}

// ModifyChain creates the css rule and applies the CSS stages to it
func (p *Plugin) ModifyChain(ctx context.Context, api *plugins.API, c *chain.Chain) error {
	rule := c.Rule(chain.RuleCSS).Test(CSSPattern)
	return ApplyBaseCSSRule(ctx, rule, api.Config, api.Context, Options{FS: api.FS})
}

// ModifyBundlerConfig turns off the bundler's native CSS handling so the
// loader chain is the only thing processing CSS. Extracted CSS modules are
// only tree-shaken under the newer algorithm, which is switched on here too.
func (p *Plugin) ModifyBundlerConfig(ctx context.Context, api *plugins.API, bc *chain.BundlerConfig) error {
	bc.Experiments.CSS = chain.Bool(false)
	if bc.Experiments.Future == nil {
		bc.Experiments.Future = &chain.FutureExperiments{}
	}
	bc.Experiments.Future.NewTreeshaking = chain.Bool(true)
	return nil
}

func init() {
	plugins.MustRegister(Name, func() plugins.Plugin { return New() })
}
