// Package fetch resolves recipe sources into the local cache.
//
// Fetching is idempotent: the presence of sources/<id> is the signal that
// a recipe has already been fetched, so a second call is a no-op. A fresh
// fetch downloads the source tarball, verifies its integrity against the
// recipe's declared checksum, extracts it into a temporary directory,
// flattens one level of tarball nesting into the final source tree, and
// records an immutable "-clean" snapshot used as the diff baseline by the
// patch workflow.
package fetch
