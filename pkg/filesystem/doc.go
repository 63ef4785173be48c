// Package filesystem provides filesystem implementations for rulesync.
//
// This package contains implementations of the types.FS interface:
// the OS filesystem used for real runs, and an afero-backed adapter used
// for dry runs (over a read-only OS view) and for in-memory tests.
package filesystem
