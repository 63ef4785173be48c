package paths

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// EnvHome is consulted when os.UserHomeDir fails
const EnvHome = "HOME"

// Resolve returns p as an absolute, cleaned path. Relative paths are
// joined to base; an empty base means the current working directory.
// A leading ~ expands to the user's home directory.
func Resolve(base, p string) (string, error) {
	p = ExpandHome(p)
	if filepath.IsAbs(p) {
		return filepath.Clean(p), nil
	}

	if base == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("failed to get working directory: %w", err)
		}
		base = wd
	}
	base = ExpandHome(base)
	if !filepath.IsAbs(base) {
		abs, err := filepath.Abs(base)
		if err != nil {
			return "", fmt.Errorf("failed to resolve %s: %w", base, err)
		}
		base = abs
	}

	return filepath.Join(base, p), nil
}

// RelativeLinkTarget returns the path of source relative to linkDir, the
// directory that will hold the symlink. The link stays valid when both
// directories move together. When no relative path exists (e.g. different
// Windows volumes) the absolute source is returned.
func RelativeLinkTarget(linkDir, source string) string {
	rel, err := filepath.Rel(linkDir, source)
	if err != nil {
		return source
	}
	return rel
}

// ResolveLinkDestination turns a raw symlink target into an absolute path,
// interpreting relative targets against the directory holding the link.
func ResolveLinkDestination(linkPath, dest string) string {
	if filepath.IsAbs(dest) {
		return filepath.Clean(dest)
	}
	return filepath.Join(filepath.Dir(linkPath), dest)
}

// Within reports whether p is root itself or lies below it.
// Both paths are compared after cleaning; no symlinks are resolved.
func Within(root, p string) bool {
	rel, err := filepath.Rel(filepath.Clean(root), filepath.Clean(p))
	if err != nil {
		return false
	}
	return rel == "." || (rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)))
}

// ExpandHome expands ~ and ~/ prefixes to the user's home directory.
// Other ~user forms are returned unchanged.
func ExpandHome(path string) string {
	if path == "" || path[0] != '~' {
		return path
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		homeDir = os.Getenv(EnvHome)
		if homeDir == "" {
			return path
		}
	}

	if len(path) == 1 {
		return homeDir
	}
	if path[1] == '/' || path[1] == filepath.Separator {
		return filepath.Join(homeDir, path[2:])
	}
	return path
}
