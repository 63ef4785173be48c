package testutil

import (
	"path/filepath"
	"testing"

	"github.com/arthur-debert/rulesync/pkg/filesystem"
	"github.com/arthur-debert/rulesync/pkg/types"
	"github.com/spf13/afero"
)

// Project is a throwaway project layout with a rules directory and a
// shared rules directory, both under Root.
type Project struct {
	Root      string
	TargetDir string
	SourceDir string
}

// NewProject creates <tmp>/.cursor/rules and <tmp>/.cursor/shared/rules.
func NewProject(t *testing.T) *Project {
	t.Helper()

	root := t.TempDir()
	// macOS hands out /var/... which is a symlink to /private/var/...
	if resolved, err := filepath.EvalSymlinks(root); err == nil {
		root = resolved
	}
	return &Project{
		Root:      root,
		TargetDir: CreateDir(t, root, filepath.Join(".cursor", "rules")),
		SourceDir: CreateDir(t, root, filepath.Join(".cursor", "shared", "rules")),
	}
}

// AddRule writes a rule file into the shared source directory.
func (p *Project) AddRule(t *testing.T, name, content string) string {
	t.Helper()
	return CreateFile(t, p.SourceDir, name, content)
}

// AddTargetFile writes a regular file into the target directory.
func (p *Project) AddTargetFile(t *testing.T, name, content string) string {
	t.Helper()
	return CreateFile(t, p.TargetDir, name, content)
}

// Link returns the path of a link in the target directory.
func (p *Project) Link(name string) string {
	return filepath.Join(p.TargetDir, name)
}

// RelativeSource is the link target rulesync writes for a rule name in the
// default layout.
func (p *Project) RelativeSource(name string) string {
	return filepath.Join("..", "shared", "rules", name)
}

// NewTestFS creates a new in-memory filesystem for testing.
func NewTestFS() types.FS {
	return filesystem.NewAferoFS(afero.NewMemMapFs())
}
