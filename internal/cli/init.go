package cli

import (
	"context"

	"github.com/hearthbuild/hearth/internal/isolation"
	"github.com/hearthbuild/hearth/internal/shell"
)

// Represents the 'hearth init' command.
type InitCmd struct {
	Image string `help:"Which OS image to use." default:"debian"`
}

// Executes the init command.
//
// Validates the image, then eagerly provisions the machine (on hosts that
// need one) and the build container. Build-family commands also provision
// lazily, so init is a convenience rather than a prerequisite.
func (c *InitCmd) Run(ctx context.Context) error {
	img, err := isolation.LookupImage(c.Image)
	if err != nil {
		return err
	}

	mgr := isolation.NewManager(isolation.DefaultConfig(img), shell.New())
	return mgr.Ensure(ctx)
}
