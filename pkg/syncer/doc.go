// Package syncer links shared rule files into a project's rule directory.
//
// For every rule file in the source directory the syncer makes sure the
// target directory holds a symlink of the same name whose target is the
// rule's path relative to the target directory:
//
//   - an existing symlink at that name is replaced, whatever it pointed to
//   - a regular file or directory at that name is left alone and counted
//     as skipped
//   - a failure to inspect, remove or create is recorded on the entry and
//     the run moves on to the next rule
//
// A missing target directory is the only condition that stops a run, and
// it does so before anything is written. A missing or empty source
// directory ends the run early without error.
//
// Entries are processed one after another in directory listing order.
// Running two syncs against the same target directory at once is not
// safe.
package syncer
