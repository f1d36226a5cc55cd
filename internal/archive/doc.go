// Package archive wraps archive/zip with the append-only discipline the
// packaging pipeline relies on: unique entry names, explicit permission
// bits, subtree copies from an fs.FS, and a hard append/finalize boundary.
package archive
