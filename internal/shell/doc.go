// Package shell runs external processes for the build stages and the
// isolation manager.
//
// The [Runner] interface is the single seam between this tool and the
// commands it drives (build steps, podman, git). Production code uses the
// process-backed implementation returned by [New]; tests substitute fakes
// that script exit codes and record invocations.
package shell
