// Package state detects and removes dangling rule links.
//
// A link is dangling when it lives in the target directory, resolves into
// the shared rules directory and its destination no longer exists, which
// happens when a rule is deleted or renamed upstream.
package state
