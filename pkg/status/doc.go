// Package status implements the read-only `rulesync status` inspection.
//
// Each rule file in the shared directory maps to one of the link states in
// pkg/types: linked, stale, missing, conflict or error.
package status
