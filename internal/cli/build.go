package cli

import (
	"context"
	"fmt"

	"github.com/hearthbuild/hearth/internal/build"
	"github.com/hearthbuild/hearth/internal/cache"
	"github.com/hearthbuild/hearth/internal/fetch"
	"github.com/hearthbuild/hearth/internal/isolation"
	"github.com/hearthbuild/hearth/internal/recipe"
	"github.com/hearthbuild/hearth/internal/shell"
)

// Flags shared by the build-family commands.
type buildFlags struct {
	Quiet       bool `help:"Silence build step output."`
	InContainer bool `name:"in-container" hidden:"" help:"The command is already running inside the container."`
}

// Represents the 'hearth build' command.
type BuildCmd struct {
	Recipe string `required:"" help:"Recipe to build."`
	buildFlags
}

// Executes the build command.
//
// Outside the container the command provisions the isolation environment
// and re-invokes itself inside it; inside, it fetches and builds directly.
func (c *BuildCmd) Run(ctx context.Context) error {
	st := cache.Default()

	if st.IsBuilt(c.Recipe) {
		fmt.Println("No work to do")
		return nil
	}

	if c.InContainer {
		return buildRecipe(ctx, st, c.Recipe, c.Quiet)
	}

	return proxy(ctx, "build", "--recipe="+c.Recipe, quietFlag(c.Quiet))
}

// Represents the 'hearth build-all' command.
type BuildAllCmd struct {
	buildFlags
}

// Executes the build-all command.
//
// Recipes are processed sequentially in discovery order; already-built
// recipes are skipped with a notice, and the first failure halts the
// remaining sweep.
func (c *BuildAllCmd) Run(ctx context.Context) error {
	if !c.InContainer {
		return proxy(ctx, "build-all", quietFlag(c.Quiet))
	}

	st := cache.Default()

	ids, err := recipe.Discover(RootCmd.Recipes)
	if err != nil {
		return err
	}

	for _, id := range ids {
		if st.IsBuilt(id) {
			fmt.Printf("%s: no work to do\n", id)
			continue
		}
		if err := buildRecipe(ctx, st, id, c.Quiet); err != nil {
			return err
		}
	}

	return nil
}

// Represents the 'hearth rebuild' command.
type RebuildCmd struct {
	Recipe string `required:"" help:"Recipe to rebuild."`
	buildFlags
}

// Executes the rebuild command.
//
// The completion marker is removed before work is redone, on whichever
// side of the container boundary the command runs.
func (c *RebuildCmd) Run(ctx context.Context) error {
	st := cache.Default()

	if err := st.ClearBuilt(c.Recipe); err != nil {
		return err
	}

	if c.InContainer {
		return buildRecipe(ctx, st, c.Recipe, c.Quiet)
	}

	return proxy(ctx, "rebuild", "--recipe="+c.Recipe, quietFlag(c.Quiet))
}

// Represents the 'hearth package' command.
type PackageCmd struct {
	Recipe string `required:"" help:"Recipe to package."`
	buildFlags
}

// Executes the package command.
//
// Packaging is never gated by a marker; every invocation recopies the
// pristine tree and reruns the package steps.
func (c *PackageCmd) Run(ctx context.Context) error {
	st := cache.Default()

	if c.InContainer {
		rec, err := recipe.Load(RootCmd.Recipes, c.Recipe)
		if err != nil {
			return err
		}
		if err := fetch.Fetch(ctx, st, rec); err != nil {
			return err
		}
		return build.Package(ctx, shell.New(), st, rec, c.Quiet)
	}

	return proxy(ctx, "package", "--recipe="+c.Recipe, quietFlag(c.Quiet))
}

// Loads a recipe, fetches its sources if needed, and runs its build phase.
func buildRecipe(ctx context.Context, st *cache.Store, id string, quiet bool) error {
	rec, err := recipe.Load(RootCmd.Recipes, id)
	if err != nil {
		return err
	}

	if err := fetch.Fetch(ctx, st, rec); err != nil {
		return err
	}

	return build.Build(ctx, shell.New(), st, rec, quiet)
}

// Provisions the isolation environment and re-invokes the given command
// line inside the container.
func proxy(ctx context.Context, args ...string) error {
	img, err := isolation.LookupImage(isolation.DefaultImage)
	if err != nil {
		return err
	}

	mgr := isolation.NewManager(isolation.DefaultConfig(img), shell.New())
	if err := mgr.Ensure(ctx); err != nil {
		return err
	}

	return mgr.RunSelf(ctx, args...)
}

func quietFlag(quiet bool) string {
	return fmt.Sprintf("--quiet=%t", quiet)
}
