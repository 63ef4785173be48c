// Package types holds the data types shared across rulesync packages:
// the filesystem interface, rule entries and the results produced by the
// sync, status and prune operations.
package types
