package syncer

import (
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"testing"

	"github.com/arthur-debert/rulesync/pkg/errors"
	"github.com/arthur-debert/rulesync/pkg/filesystem"
	"github.com/arthur-debert/rulesync/pkg/testutil"
	"github.com/arthur-debert/rulesync/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSyncer(p *testutil.Project, dryRun bool) *Syncer {
	fsys := filesystem.NewOS()
	if dryRun {
		fsys = filesystem.NewReadOnlyOS()
	}
	return New(fsys, Options{
		TargetDir: p.TargetDir,
		SourceDir: p.SourceDir,
		DryRun:    dryRun,
	})
}

func entriesByName(r *types.SyncResult) map[string]types.EntryResult {
	out := make(map[string]types.EntryResult, len(r.Entries))
	for _, e := range r.Entries {
		out[e.Name] = e
	}
	return out
}

func listDir(t *testing.T, dir string) []string {
	t.Helper()
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	var out []string
	for _, e := range entries {
		out = append(out, e.Name())
	}
	sort.Strings(out)
	return out
}

func TestSyncLinksEveryRule(t *testing.T) {
	testutil.SkipOnWindows(t)
	p := testutil.NewProject(t)
	p.AddRule(t, "a.mdc", "rule a")
	p.AddRule(t, "b.mdc", "rule b")

	result, err := newSyncer(p, false).Sync()
	require.NoError(t, err)

	assert.Equal(t, 2, result.Linked)
	assert.Equal(t, 0, result.Skipped)
	assert.Equal(t, 0, result.Failed)

	for _, name := range []string{"a.mdc", "b.mdc"} {
		testutil.AssertSymlink(t, p.Link(name), p.RelativeSource(name))
		assert.Equal(t, "rule "+name[:1], testutil.ReadFile(t, p.Link(name)))
	}
}

func TestSyncMixedScenario(t *testing.T) {
	testutil.SkipOnWindows(t)
	p := testutil.NewProject(t)
	p.AddRule(t, "a.mdc", "rule a")
	p.AddRule(t, "b.mdc", "rule b")
	p.AddRule(t, "notes.txt", "not a rule")
	p.AddTargetFile(t, "b.mdc", "local b")

	result, err := newSyncer(p, false).Sync()
	require.NoError(t, err)

	assert.Equal(t, 1, result.Linked)
	assert.Equal(t, 1, result.Skipped)

	testutil.AssertSymlink(t, p.Link("a.mdc"), p.RelativeSource("a.mdc"))
	testutil.AssertFileContent(t, p.Link("b.mdc"), "local b")
	testutil.AssertNoFile(t, p.Link("notes.txt"))

	byName := entriesByName(result)
	assert.Equal(t, types.EntrySkipped, byName["b.mdc"].Status)
	assert.Equal(t, types.SkipOccupied, byName["b.mdc"].Reason)
	assert.NotContains(t, byName, "notes.txt")
}

func TestSyncReplacesStaleSymlink(t *testing.T) {
	testutil.SkipOnWindows(t)
	p := testutil.NewProject(t)
	p.AddRule(t, "a.mdc", "current")
	unrelated := testutil.CreateFile(t, p.Root, "elsewhere/a.mdc", "unrelated")
	testutil.CreateSymlink(t, unrelated, p.Link("a.mdc"))

	result, err := newSyncer(p, false).Sync()
	require.NoError(t, err)

	assert.Equal(t, 1, result.Linked)
	assert.True(t, result.Entries[0].Replaced)
	testutil.AssertSymlink(t, p.Link("a.mdc"), p.RelativeSource("a.mdc"))
	assert.Equal(t, "current", testutil.ReadFile(t, p.Link("a.mdc")))
	testutil.AssertFileContent(t, unrelated, "unrelated")
}

func TestSyncReplacesDanglingSymlink(t *testing.T) {
	testutil.SkipOnWindows(t)
	p := testutil.NewProject(t)
	p.AddRule(t, "a.mdc", "current")
	testutil.CreateSymlink(t, filepath.Join(p.Root, "gone.mdc"), p.Link("a.mdc"))

	result, err := newSyncer(p, false).Sync()
	require.NoError(t, err)

	assert.Equal(t, 1, result.Linked)
	testutil.AssertSymlink(t, p.Link("a.mdc"), p.RelativeSource("a.mdc"))
}

func TestSyncSkipsDirectoryOccupyingName(t *testing.T) {
	testutil.SkipOnWindows(t)
	p := testutil.NewProject(t)
	p.AddRule(t, "a.mdc", "rule a")
	testutil.CreateDir(t, p.TargetDir, "a.mdc")

	result, err := newSyncer(p, false).Sync()
	require.NoError(t, err)

	assert.Equal(t, 0, result.Linked)
	assert.Equal(t, 1, result.Skipped)
	assert.False(t, testutil.SymlinkExists(t, p.Link("a.mdc")))
}

func TestSyncIsIdempotent(t *testing.T) {
	testutil.SkipOnWindows(t)
	p := testutil.NewProject(t)
	p.AddRule(t, "a.mdc", "rule a")
	p.AddRule(t, "b.mdc", "rule b")
	p.AddTargetFile(t, "c.mdc", "local")
	p.AddRule(t, "c.mdc", "rule c")

	first, err := newSyncer(p, false).Sync()
	require.NoError(t, err)
	afterFirst := listDir(t, p.TargetDir)

	second, err := newSyncer(p, false).Sync()
	require.NoError(t, err)
	afterSecond := listDir(t, p.TargetDir)

	assert.Equal(t, afterFirst, afterSecond)
	assert.Equal(t, first.Linked, second.Linked)
	assert.Equal(t, first.Skipped, second.Skipped)
	assert.Equal(t, 2, second.Linked)
	assert.Equal(t, 1, second.Skipped)

	for _, name := range []string{"a.mdc", "b.mdc"} {
		testutil.AssertSymlink(t, p.Link(name), p.RelativeSource(name))
	}
	for _, e := range second.Entries {
		if e.Status == types.EntryLinked {
			assert.True(t, e.Replaced, "second run replaces %s", e.Name)
		}
	}
}

func TestSyncMissingTargetIsFatal(t *testing.T) {
	p := testutil.NewProject(t)
	p.AddRule(t, "a.mdc", "rule a")
	require.NoError(t, os.RemoveAll(p.TargetDir))

	result, err := newSyncer(p, false).Sync()
	require.Error(t, err)
	assert.Nil(t, result)
	assert.True(t, errors.IsErrorCode(err, errors.ErrTargetNotFound))
	assert.Contains(t, errors.Message(err), p.TargetDir)

	testutil.AssertNoFile(t, p.TargetDir)
	assert.Equal(t, []string{"a.mdc"}, listDir(t, p.SourceDir))
}

func TestSyncMissingSourceIsNotAnError(t *testing.T) {
	p := testutil.NewProject(t)
	require.NoError(t, os.RemoveAll(filepath.Dir(p.SourceDir)))
	p.AddTargetFile(t, "keep.mdc", "keep")

	result, err := newSyncer(p, false).Sync()
	require.NoError(t, err)
	assert.True(t, result.SourceMissing)
	assert.Empty(t, result.Entries)
	assert.Equal(t, []string{"keep.mdc"}, listDir(t, p.TargetDir))
}

func TestSyncUnreadableSourceRecordsScanError(t *testing.T) {
	testutil.SkipIfRoot(t)
	testutil.SkipOnWindows(t)
	p := testutil.NewProject(t)
	p.AddRule(t, "a.mdc", "a")
	testutil.Chmod(t, p.SourceDir, 0000)

	result, err := newSyncer(p, false).Sync()
	require.NoError(t, err)
	assert.NotEmpty(t, result.ScanError)
	assert.False(t, result.SourceMissing)
	assert.Empty(t, result.Entries)
	assert.Equal(t, 0, result.Linked)
	assert.Equal(t, 0, result.Skipped)
	assert.Empty(t, listDir(t, p.TargetDir))
}

func TestSyncNoRules(t *testing.T) {
	p := testutil.NewProject(t)
	p.AddRule(t, "readme.md", "not a rule")

	result, err := newSyncer(p, false).Sync()
	require.NoError(t, err)
	assert.True(t, result.NoRules)
	assert.Equal(t, 0, result.Linked)
	assert.Empty(t, listDir(t, p.TargetDir))
}

func TestSyncDryRun(t *testing.T) {
	testutil.SkipOnWindows(t)
	p := testutil.NewProject(t)
	p.AddRule(t, "a.mdc", "rule a")
	p.AddRule(t, "b.mdc", "rule b")
	p.AddRule(t, "c.mdc", "rule c")
	p.AddTargetFile(t, "b.mdc", "local b")
	stale := testutil.CreateFile(t, p.Root, "old.mdc", "old")
	testutil.CreateSymlink(t, stale, p.Link("c.mdc"))

	result, err := newSyncer(p, true).Sync()
	require.NoError(t, err)

	assert.True(t, result.DryRun)
	assert.Equal(t, 2, result.Linked)
	assert.Equal(t, 1, result.Skipped)
	assert.Equal(t, 0, result.Failed)

	byName := entriesByName(result)
	assert.Equal(t, types.EntryWouldLink, byName["a.mdc"].Status)
	assert.Equal(t, types.EntryWouldLink, byName["c.mdc"].Status)
	assert.True(t, byName["c.mdc"].Replaced)
	assert.Equal(t, p.RelativeSource("a.mdc"), byName["a.mdc"].LinkTarget)

	// Nothing was written
	testutil.AssertNoFile(t, p.Link("a.mdc"))
	testutil.AssertSymlink(t, p.Link("c.mdc"), stale)
	testutil.AssertFileContent(t, p.Link("b.mdc"), "local b")
}

func TestSyncLinkCreationFailureContinues(t *testing.T) {
	testutil.SkipOnWindows(t)
	testutil.SkipIfRoot(t)
	p := testutil.NewProject(t)
	p.AddRule(t, "a.mdc", "rule a")
	p.AddRule(t, "b.mdc", "rule b")
	testutil.Chmod(t, p.TargetDir, 0555)

	result, err := newSyncer(p, false).Sync()
	require.NoError(t, err)

	assert.Equal(t, 0, result.Linked)
	assert.Equal(t, 0, result.Skipped)
	assert.Equal(t, 2, result.Failed)
	for _, e := range result.Entries {
		assert.Equal(t, types.EntryFailed, e.Status)
		assert.True(t, errors.IsErrorCode(e.Err, errors.ErrSymlinkCreate))
		assert.NotEmpty(t, e.Error)
	}
}

func TestSyncRemovalFailureSkips(t *testing.T) {
	testutil.SkipOnWindows(t)
	testutil.SkipIfRoot(t)
	p := testutil.NewProject(t)
	p.AddRule(t, "a.mdc", "rule a")
	testutil.CreateSymlink(t, "somewhere", p.Link("a.mdc"))
	testutil.Chmod(t, p.TargetDir, 0555)

	result, err := newSyncer(p, false).Sync()
	require.NoError(t, err)

	assert.Equal(t, 0, result.Linked)
	assert.Equal(t, 1, result.Skipped)
	e := result.Entries[0]
	assert.Equal(t, types.SkipCheck, e.Reason)
	assert.True(t, errors.IsErrorCode(e.Err, errors.ErrSymlinkRemove))
	testutil.AssertSymlink(t, p.Link("a.mdc"), "somewhere")
}

// lstatFailFS fails Lstat for one path
type lstatFailFS struct {
	types.FS
	path string
	err  error
}

func (f lstatFailFS) Lstat(name string) (fs.FileInfo, error) {
	if name == f.path {
		return nil, f.err
	}
	return f.FS.Lstat(name)
}

func TestSyncInspectionFailureSkips(t *testing.T) {
	testutil.SkipOnWindows(t)
	p := testutil.NewProject(t)
	p.AddRule(t, "a.mdc", "rule a")
	p.AddRule(t, "b.mdc", "rule b")

	fsys := lstatFailFS{FS: filesystem.NewOS(), path: p.Link("a.mdc"), err: fs.ErrPermission}
	result, err := New(fsys, Options{TargetDir: p.TargetDir, SourceDir: p.SourceDir}).Sync()
	require.NoError(t, err)

	assert.Equal(t, 1, result.Linked)
	assert.Equal(t, 1, result.Skipped)

	a := entriesByName(result)["a.mdc"]
	assert.Equal(t, types.SkipCheck, a.Reason)
	assert.True(t, errors.IsErrorCode(a.Err, errors.ErrFileAccess))
	testutil.AssertNoFile(t, p.Link("a.mdc"))
	testutil.AssertSymlink(t, p.Link("b.mdc"), p.RelativeSource("b.mdc"))
}

func TestSyncCustomLayoutAndSuffix(t *testing.T) {
	testutil.SkipOnWindows(t)
	root := t.TempDir()
	target := testutil.CreateDir(t, root, "rules")
	source := testutil.CreateDir(t, root, "vendor/team-rules")
	testutil.CreateFile(t, source, "style.md", "style")
	testutil.CreateFile(t, source, "ignored.mdc", "ignored")

	result, err := New(filesystem.NewOS(), Options{
		TargetDir: target,
		SourceDir: source,
		Suffix:    ".md",
	}).Sync()
	require.NoError(t, err)

	assert.Equal(t, 1, result.Linked)
	testutil.AssertSymlink(t, filepath.Join(target, "style.md"), filepath.Join("..", "vendor", "team-rules", "style.md"))
	testutil.AssertNoFile(t, filepath.Join(target, "ignored.mdc"))
}

func TestSyncLinksSurviveRelocation(t *testing.T) {
	testutil.SkipOnWindows(t)
	p := testutil.NewProject(t)
	p.AddRule(t, "a.mdc", "rule a")

	_, err := newSyncer(p, false).Sync()
	require.NoError(t, err)

	moved := filepath.Join(t.TempDir(), "moved")
	require.NoError(t, os.Rename(p.Root, moved))

	content := testutil.ReadFile(t, filepath.Join(moved, ".cursor", "rules", "a.mdc"))
	assert.Equal(t, "rule a", content)
}
