package build

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/hearthbuild/hearth/internal/cache"
	"github.com/hearthbuild/hearth/internal/recipe"
	"github.com/hearthbuild/hearth/internal/shell"
	"github.com/hearthbuild/hearth/internal/ui"
)

// Runs a recipe's build phase in a fresh working copy of its sources.
//
// No-op when the completion marker already exists. Otherwise the pristine
// source tree is copied into the build directory, overwriting any prior
// partial build, and the build steps run there in declared order. The
// marker is written only after every step succeeds; a failing step leaves
// the marker absent so the next invocation redoes the build.
func Build(ctx context.Context, runner shell.Runner, st *cache.Store, rec *recipe.Recipe, quiet bool) error {
	if st.IsBuilt(rec.ID) {
		slog.Debug("recipe already built", "id", rec.ID)
		return nil
	}

	ui.Progress("Building recipe '%s'", rec.ID)

	if err := runSteps(ctx, runner, st, rec, rec.Steps.Build, quiet); err != nil {
		return err
	}

	if err := st.MarkBuilt(rec.ID); err != nil {
		return err
	}

	ui.Done()
	return nil
}

// Runs a recipe's package phase in a fresh working copy of its sources.
//
// Unlike [Build], packaging is not gated by a marker: every invocation
// recopies the pristine tree and reruns the package steps.
func Package(ctx context.Context, runner shell.Runner, st *cache.Store, rec *recipe.Recipe, quiet bool) error {
	ui.Progress("Packaging recipe '%s'", rec.ID)

	if err := runSteps(ctx, runner, st, rec, rec.Steps.Package, quiet); err != nil {
		return err
	}

	ui.Done()
	return nil
}

// Recreates the build working tree from the pristine sources and runs the
// given steps there in order.
//
// Each step is a shell command line split on spaces, executed with the
// build directory as working directory. The first non-zero exit aborts the
// sequence.
func runSteps(ctx context.Context, runner shell.Runner, st *cache.Store, rec *recipe.Recipe, steps []string, quiet bool) error {
	buildDir := st.BuildDir(rec.ID)

	if err := os.RemoveAll(buildDir); err != nil {
		return err
	}
	if err := copySources(st, rec.ID); err != nil {
		return err
	}

	for i, step := range steps {
		argv := strings.Fields(step)
		if len(argv) == 0 {
			continue
		}

		opts := shell.Options{Dir: buildDir, Quiet: quiet}
		if err := runner.Run(ctx, opts, argv...); err != nil {
			return fmt.Errorf("%w: step %d (%s): %w", ErrStepFailed, i+1, step, err)
		}
	}

	return nil
}
