// Package build runs the build and package phases of a recipe.
//
// Both phases operate on an ephemeral working copy of the pristine source
// tree under the builds namespace; the pristine tree and its clean snapshot
// are never modified. The build phase is gated by the cache store's
// completion marker, packaging is deliberately not — it is meant to be
// cheap to re-run.
//
// Example usage:
//
//	rec, err := recipe.Load("recipes", "zlib")
//	if err != nil {
//	    return err
//	}
//	if err := fetch.Fetch(ctx, store, rec); err != nil {
//	    return err
//	}
//	if err := build.Build(ctx, shell.New(), store, rec, false); err != nil {
//	    return err
//	}
package build
