// Package cache tracks per-recipe completion state on local disk.
//
// Layout under the process-wide cache directory:
//
//	sources/<id>/            pristine extracted tree
//	sources/<id>-clean/      immutable reference copy
//	builds/<id>/             ephemeral build/package working tree
//	builds/<id>.built        zero-byte completion marker
//
// The presence of sources/<id> is the "already fetched" signal and the
// marker file is the "already built" signal; there is no separate metadata
// record. Markers are removed by the rebuild operation before work is
// redone.
package cache
