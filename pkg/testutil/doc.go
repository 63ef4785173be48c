// Package testutil provides helpers for testing rulesync components.
//
// Symlink behavior is tested on the real filesystem under t.TempDir();
// NewProject lays out the default .cursor/rules and .cursor/shared/rules
// pair. NewTestFS returns an in-memory afero filesystem for tests that
// don't depend on real link semantics.
package testutil
