// Package patch captures manual edits to a recipe's sources as a portable
// diff file.
//
// The workflow has two halves: make-patch seeds a mutable <id>-workdir from
// the recipe's immutable clean snapshot, the developer edits it, and
// save-patch diffs the snapshot against the workdir into <id>.patch. The
// workdir itself is the only state shared between the two operations; no
// marker tracks it.
package patch
