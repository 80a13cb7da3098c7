package cli

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kong"
	"github.com/hearthbuild/hearth/internal"
)

// Represents the root command for the hearth tool.
var RootCmd struct {
	Debug   bool   `short:"d" help:"Enable debug output."`
	Recipes string `help:"Directory containing recipe files." default:"recipes" placeholder:"DIR"`

	Init      InitCmd      `cmd:"" help:"Provision the isolation environment."`
	Build     BuildCmd     `cmd:"" help:"Build a recipe."`
	BuildAll  BuildAllCmd  `cmd:"" name:"build-all" help:"Build every recipe."`
	Rebuild   RebuildCmd   `cmd:"" help:"Clear a recipe's completion marker and build it again."`
	Package   PackageCmd   `cmd:"" help:"Run a recipe's package steps."`
	MakePatch MakePatchCmd `cmd:"" name:"make-patch" help:"Start the patching workflow for a recipe."`
	SavePatch SavePatchCmd `cmd:"" name:"save-patch" help:"Save workdir modifications into a patch file."`
	Version   VersionCmd   `cmd:"" help:"Show version information."`
}

// Parses arguments, configures logging, and runs the selected subcommand.
func Execute() error {

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	kongCtx := kong.Parse(&RootCmd,
		kong.Name(internal.Name),
		kong.Description("Builds third-party software recipes inside an isolated, reproducible environment."),
		kong.UsageOnError(),
		kong.Vars{
			"version": internal.VersionString(),
		},
		kong.BindTo(ctx, (*context.Context)(nil)),
	)

	configureLogger()

	return kongCtx.Run()
}

// Configures the global logger based on CLI flags.
func configureLogger() {
	level := slog.LevelInfo
	switch {
	case RootCmd.Debug || internal.IsDebug():
		level = slog.LevelDebug
	case internal.IsQuiet():
		level = slog.LevelWarn
	}

	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	slog.SetDefault(slog.New(handler))
}
