package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/hearthbuild/hearth/internal/cache"
	"github.com/hearthbuild/hearth/internal/patch"
	"github.com/hearthbuild/hearth/internal/shell"
)

// Represents the 'hearth make-patch' command.
type MakePatchCmd struct {
	Recipe string `required:"" help:"Recipe to patch."`
}

// Executes the make-patch command.
func (c *MakePatchCmd) Run(ctx context.Context) error {
	workdir, err := patch.Make(cache.Default(), c.Recipe)
	if err != nil {
		return err
	}

	fmt.Printf("Created new directory '%s', make your changes and run 'save-patch'\n", workdir)
	return nil
}

// Represents the 'hearth save-patch' command.
type SavePatchCmd struct {
	Recipe string `required:"" help:"Recipe to save a patch for."`
}

// Executes the save-patch command.
func (c *SavePatchCmd) Run(ctx context.Context) error {
	_, err := patch.Save(ctx, shell.New(), cache.Default(), c.Recipe, os.Stdin, os.Stdout)
	return err
}
