package main

import (
	"log/slog"
	"os"

	"github.com/alecthomas/kong"

	"git.home.luguber.info/inful/askygg/cmd/askygg/commands"
	"git.home.luguber.info/inful/askygg/internal/config"
	foundationerrors "git.home.luguber.info/inful/askygg/internal/foundation/errors"
	"git.home.luguber.info/inful/askygg/internal/version"
)

func main() {
	config.LoadEnvFiles()

	cli := &commands.CLI{}
	parser := kong.Parse(cli,
		kong.Name("askygg"),
		kong.Description("Build and launch the askygg editor."),
		kong.UsageOnError(),
		kong.Vars{"version": version.String()},
	)

	global := commands.NewGlobal()
	if err := parser.Run(global, cli); err != nil {
		adapter := foundationerrors.NewCLIErrorAdapter(cli.Verbose, slog.Default())
		os.Exit(adapter.Report(err))
	}
	os.Exit(global.ExitCode)
}
