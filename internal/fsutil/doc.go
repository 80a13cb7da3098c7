// Package fsutil provides the recursive copy and move primitives used by
// the fetch, build, and patch stages.
package fsutil
