// Package recipe defines the declarative recipe model and its JSON loader.
//
// A recipe names one piece of third-party software, where its source
// tarball comes from, and the ordered shell steps for its build and
// package phases. Recipes live as <id>.json files in a recipes directory
// and are discovered by file name stem; the embedded id must match the
// stem for discovery to work.
package recipe
