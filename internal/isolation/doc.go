// Package isolation provisions the environment builds run in: a podman
// machine on hosts that need virtualization to reach a Linux kernel, and a
// long-lived named container on every host.
//
// Both resources follow the same state machine, converged independently:
// absent -> created -> running. Existence is probed by name and a failing
// probe means "absent"; creation is therefore idempotent. The container
// mounts the working directory read-write at a fixed path, and commands
// from the command surface re-enter the tool inside it via [Manager.RunSelf].
//
// Exec carries a deliberately narrow recovery policy: one container restart
// followed by one retry of the same command, compensating for a known
// transient backend fault where exec fails until the container restarts.
//
// Example usage:
//
//	img, err := isolation.LookupImage("debian")
//	if err != nil {
//	    return err
//	}
//
//	mgr := isolation.NewManager(isolation.DefaultConfig(img), shell.New())
//	if err := mgr.Ensure(ctx); err != nil {
//	    return err
//	}
//
//	return mgr.RunSelf(ctx, "build", "--recipe=zlib")
package isolation
