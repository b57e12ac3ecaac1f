package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/arthur-debert/bundlechain/pkg/config"
	"github.com/arthur-debert/bundlechain/pkg/errors"
	"github.com/arthur-debert/bundlechain/pkg/logging"
	"github.com/arthur-debert/bundlechain/pkg/output"
	"github.com/arthur-debert/bundlechain/pkg/provider"
	"github.com/arthur-debert/bundlechain/pkg/types"
	"github.com/spf13/cobra"
)

type inspectOptions struct {
	root       string
	configFile string
	target     string
	mode       string
	format     string
	plugins    []string
}

func newInspectCmd() *cobra.Command {
	opts := &inspectOptions{}

	cmd := &cobra.Command{
		Use:   "inspect",
		Short: MsgInspectShort,
		Long:  MsgInspectLong,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInspect(cmd, opts)
		},
	}

	targets := make([]string, len(types.AllTargets))
	for i, t := range types.AllTargets {
		targets[i] = t.String()
	}

	flags := cmd.Flags()
	flags.StringVarP(&opts.root, "root", "r", "", MsgFlagRoot)
	flags.StringVarP(&opts.configFile, "config", "c", "", MsgFlagConfig)
	flags.StringVarP(&opts.target, "target", "t", types.TargetWeb.String(), MsgFlagTarget)
	flags.StringVarP(&opts.mode, "mode", "m", "production", MsgFlagMode)
	flags.StringVarP(&opts.format, "format", "f", "auto", MsgFlagFormat)
	flags.StringSliceVar(&opts.plugins, "plugins", nil, MsgFlagPlugins)

	_ = cmd.RegisterFlagCompletionFunc("target", fixedCompletion(targets))
	_ = cmd.RegisterFlagCompletionFunc("mode", fixedCompletion([]string{"production", "development"}))
	_ = cmd.RegisterFlagCompletionFunc("format", fixedCompletion(output.FormatNames()))

	return cmd
}

func fixedCompletion(values []string) func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
	return func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return values, cobra.ShellCompDirectiveNoFileComp
	}
}

func parseMode(mode string) (bool, error) {
	switch strings.ToLower(mode) {
	case "production", "prod", "":
		return true, nil
	case "development", "dev":
		return false, nil
	}
	return false, errors.Newf(errors.ErrInvalidInput, MsgErrUnknownMode, mode).WithDetail("mode", mode)
}

func runInspect(cmd *cobra.Command, opts *inspectOptions) error {
	logger := logging.GetLogger("cli.inspect")

	format, err := output.ParseFormat(opts.format)
	if err != nil {
		return err
	}
	target, err := types.ParseTarget(opts.target)
	if err != nil {
		return errors.Wrap(err, errors.ErrInvalidInput, "invalid target").WithDetail("target", opts.target)
	}
	isProd, err := parseMode(opts.mode)
	if err != nil {
		return err
	}

	root := opts.root
	if root == "" {
		if root, err = os.Getwd(); err != nil {
			return fmt.Errorf(MsgErrGetwd, err)
		}
	}
	if root, err = filepath.Abs(root); err != nil {
		return errors.Wrap(err, errors.ErrFileAccess, "failed to resolve project root").WithDetail("root", opts.root)
	}

	cfg, err := config.LoadWithOptions(root, config.LoadOptions{ConfigFile: opts.configFile})
	if err != nil {
		return err
	}

	bctx := types.NewBuildContext(target, isProd, root)
	logger.Debug().
		Str("root", root).
		Str("target", target.String()).
		Str("mode", bctx.Mode()).
		Msg("Inspecting build")

	result, err := provider.Build(cmd.Context(), provider.Options{
		Config:  cfg,
		Context: bctx,
		Plugins: opts.plugins,
	})
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if f, ok := out.(*os.File); ok {
		format = output.Resolve(format, f)
	}
	renderer, err := output.NewRenderer(out, format)
	if err != nil {
		return err
	}

	return renderer.Render(&output.Report{
		Target:  target.String(),
		Mode:    bctx.Mode(),
		Root:    root,
		Plugins: result.Plugins,
		Config:  result.BundlerConfig,
	})
}
