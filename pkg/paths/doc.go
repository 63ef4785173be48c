// Package paths provides path handling for rulesync.
//
// Rule and target directories are configured as relative paths and
// resolved against the working directory (or an explicit base). Links
// are always written with a target relative to the directory holding the
// link, so a project can be moved or cloned elsewhere without breaking
// them as long as the layout between the two directories is kept.
//
//	target, _ := paths.Resolve("", ".cursor/rules")
//	source, _ := paths.Resolve("", ".cursor/shared/rules")
//	rel := paths.RelativeLinkTarget(target, filepath.Join(source, "a.mdc"))
//	// rel == "../shared/rules/a.mdc"
package paths
