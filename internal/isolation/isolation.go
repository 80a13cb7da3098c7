package isolation

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"runtime"
	"slices"
	"strings"

	"github.com/hearthbuild/hearth/internal"
	"github.com/hearthbuild/hearth/internal/shell"
	"github.com/hearthbuild/hearth/internal/ui"
)

// Prefix shared by every machine and container this tool creates.
const namePrefix = internal.Name + "-"

// Immutable isolation settings, resolved once at process start.
type Config struct {
	Machine   string   // Name of the podman machine.
	Container string   // Name of the long-lived build container.
	Image     Image    // Image the container is created from.
	MountPath string   // Mount point of the working directory inside the container.
	HostOS    string   // Host operating system; non-Linux hosts need the machine.
	Self      []string // Argv prefix that re-invokes this tool inside the container.
}

// Returns the default configuration for the given image.
func DefaultConfig(img Image) Config {
	return Config{
		Machine:   namePrefix + "machine",
		Container: namePrefix + "default",
		Image:     img,
		MountPath: "/bootstrap",
		HostOS:    runtime.GOOS,
		Self:      []string{internal.Name},
	}
}

// Provisions and addresses the isolation environment: at most one machine
// (virtual machine, on hosts that need one) and at most one container, both
// identified purely by name. Their state lives in the container subsystem;
// the manager only queries and converges it.
type Manager struct {
	cfg    Config
	runner shell.Runner
}

// Creates a manager over the given configuration and process runner.
func NewManager(cfg Config, runner shell.Runner) *Manager {
	return &Manager{cfg: cfg, runner: runner}
}

// Whether a machine with the configured name exists.
//
// Any query failure is interpreted as "absent".
func (m *Manager) MachineExists(ctx context.Context) bool {
	err := m.runner.Run(ctx, shell.Options{Quiet: true}, "podman", "machine", "inspect", m.cfg.Machine)
	return err == nil
}

// Whether a container with the configured name exists.
//
// Any query failure is interpreted as "absent".
func (m *Manager) ContainerExists(ctx context.Context) bool {
	err := m.runner.Run(ctx, shell.Options{Quiet: true}, "podman", "container", "exists", m.cfg.Container)
	return err == nil
}

// Converges the full environment: machine first (where needed), then the
// container.
func (m *Manager) Ensure(ctx context.Context) error {
	if err := m.EnsureMachine(ctx); err != nil {
		return err
	}
	return m.EnsureContainer(ctx)
}

// Makes sure the machine exists and is running.
//
// No-op on Linux hosts, which run containers natively. Otherwise a missing
// machine is initialized rootful with the working directory bound in and
// started immediately; an existing machine is started, tolerating the
// failure that means "already running". In both cases the default
// connection is repointed at the machine, because the tooling otherwise
// keeps addressing a stale default target.
func (m *Manager) EnsureMachine(ctx context.Context) error {
	if m.cfg.HostOS == "linux" {
		return nil
	}

	ui.Progress("Starting machine '%s'", m.cfg.Machine)

	cwd, err := os.Getwd()
	if err != nil {
		return err
	}

	if !m.MachineExists(ctx) {
		// Stop whichever machine currently holds the default slot; there
		// may be none, which is fine.
		_ = m.runner.Run(ctx, shell.Options{Quiet: true}, "podman", "machine", "stop")

		err := m.runner.Run(ctx, shell.Options{Quiet: true},
			"podman", "machine", "init", m.cfg.Machine, "--rootful", "-v", cwd, "--now")
		if err != nil {
			return fmt.Errorf("%w: init %s: %w", ErrMachine, m.cfg.Machine, err)
		}
	} else {
		// Starting an already-running machine fails; that is not an error.
		if err := m.runner.Run(ctx, shell.Options{Quiet: true}, "podman", "machine", "start", m.cfg.Machine); err != nil {
			slog.Debug("machine start tolerated", "machine", m.cfg.Machine, "error", err)
		}
	}

	err = m.runner.Run(ctx, shell.Options{Quiet: true},
		"podman", "system", "connection", "default", m.cfg.Machine)
	if err != nil {
		return fmt.Errorf("%w: repointing default connection: %w", ErrMachine, err)
	}

	ui.Done()
	return nil
}

// Makes sure the long-lived build container exists.
//
// A missing container is started detached with an interactive shell, the
// working directory mounted read-write at the configured mount path, and
// the image's setup commands are run inside it in order.
func (m *Manager) EnsureContainer(ctx context.Context) error {
	if m.ContainerExists(ctx) {
		return nil
	}

	cwd, err := os.Getwd()
	if err != nil {
		return err
	}

	err = m.runner.Run(ctx, shell.Options{},
		"podman", "run", "-v", cwd+":"+m.cfg.MountPath, "-dit",
		"--name", m.cfg.Container, m.cfg.Image.Name, "/bin/bash")
	if err != nil {
		return fmt.Errorf("%w: creating %s: %w", ErrContainer, m.cfg.Container, err)
	}

	slog.Info("container created", "container", m.cfg.Container, "image", m.cfg.Image.Name)

	for _, cmd := range m.cfg.Image.Setup {
		if err := m.Exec(ctx, cmd); err != nil {
			return err
		}
	}

	return nil
}

// Runs a shell command inside the container.
//
// On failure the container is restarted once and the same command retried
// once; a second failure is fatal. This is not a general retry policy: the
// container backend is known to enter a state where exec fails until a
// restart, and a single bounded recovery attempt is applied before giving
// up.
func (m *Manager) Exec(ctx context.Context, command string) error {
	first := m.exec(ctx, command)
	if first == nil {
		return nil
	}

	slog.Warn("container exec failed, restarting once", "container", m.cfg.Container, "error", first)

	if err := m.runner.Run(ctx, shell.Options{}, "podman", "restart", m.cfg.Container); err != nil {
		return fmt.Errorf("%w: restarting %s: %w", ErrExec, m.cfg.Container, err)
	}

	if err := m.exec(ctx, command); err != nil {
		return fmt.Errorf("%w: %w", ErrExec, err)
	}

	return nil
}

func (m *Manager) exec(ctx context.Context, command string) error {
	return m.runner.Run(ctx, shell.Options{},
		"podman", "exec", m.cfg.Container, "/bin/sh", "-c", command)
}

// Re-invokes this tool inside the container.
//
// The command line appends the in-container flag so the inner invocation
// runs its work directly instead of recursing back into the manager.
func (m *Manager) RunSelf(ctx context.Context, args ...string) error {
	argv := append(slices.Clone(m.cfg.Self), args...)
	argv = append(argv, "--in-container")

	command := "cd " + m.cfg.MountPath + " && " + strings.Join(argv, " ")
	return m.Exec(ctx, command)
}
