package main

import (
	"os"

	"github.com/arthur-debert/bundlechain/internal/cli"
	"github.com/arthur-debert/bundlechain/pkg/errors"
	"github.com/arthur-debert/bundlechain/pkg/output"
)

func main() {
	rootCmd := cli.NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		if renderer, rerr := output.NewRenderer(os.Stderr, output.Resolve(output.FormatAuto, os.Stderr)); rerr == nil {
			_ = renderer.RenderError(err)
		}
		os.Exit(errors.ExitCode(err))
	}
}
