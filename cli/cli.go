package cli

import (
	"context"

	"github.com/alecthomas/kong"

	"github.com/kartva/ph-interpreters/cli/cmd"
	"github.com/kartva/ph-interpreters/cli/cmd/repl"
	"github.com/kartva/ph-interpreters/pkg"
)

// CLI is the top-level command-line interface for ph.
type CLI struct {
	Log   logConfig   `embed:"" group:"log"   prefix:"log-"`
	Pprof pprofConfig `embed:"" group:"pprof" prefix:"pprof-"`

	Version kong.VersionFlag `help:"Print version and exit." short:"V"`

	Run  cmd.Run   `cmd:"" default:"withargs" help:"Parse and run a program"`
	Ast  cmd.Ast   `cmd:"" help:"Parse a program and print its syntax tree"`
	Repl repl.Repl `cmd:"" help:"Start an interactive session"`
}

// Run executes the ph CLI with the given context and arguments.
// The exit function is called with the appropriate exit code when kong
// terminates early, such as for --help.
func Run(
	ctx context.Context,
	exit func(code int),
	args ...string,
) error {
	var cli CLI

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	parser, err := kong.New(&cli,
		kong.Name(pkg.Name),
		kong.Description(pkg.Description),
		kong.UsageOnError(),
		kong.Exit(exit),
		kong.Vars{"version": pkg.VersionString()},
		kong.ExplicitGroups(
			[]kong.Group{cli.Log.group(), cli.Pprof.group()},
		),
		kong.BindSingletonProvider(func() context.Context {
			return ctx
		}),
		kong.ConfigureHelp(
			kong.HelpOptions{
				Compact: true,
				Summary: true,
			}),
	)
	if err != nil {
		return err
	}

	ktx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	// Finalize logger configuration with all parsed values. The level and
	// format flags already applied themselves through TextUnmarshaler; this
	// also picks up the flags that do not go through text parsing.
	cli.Log.start(ctx)

	// No-op unless built with tag pprof and a mode is selected.
	defer cli.Pprof.start(ctx)()

	return ktx.Run(ctx, &cli)
}
