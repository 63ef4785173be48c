package status

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/arthur-debert/rulesync/pkg/errors"
	"github.com/arthur-debert/rulesync/pkg/filesystem"
	"github.com/arthur-debert/rulesync/pkg/syncer"
	"github.com/arthur-debert/rulesync/pkg/testutil"
	"github.com/arthur-debert/rulesync/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func byName(r *types.StatusReport) map[string]types.RuleStatus {
	out := make(map[string]types.RuleStatus, len(r.Rules))
	for _, rule := range r.Rules {
		out[rule.Name] = rule
	}
	return out
}

func TestCheckStates(t *testing.T) {
	testutil.SkipOnWindows(t)
	p := testutil.NewProject(t)
	p.AddRule(t, "linked.mdc", "a")
	p.AddRule(t, "stale.mdc", "b")
	p.AddRule(t, "missing.mdc", "c")
	p.AddRule(t, "conflict.mdc", "d")
	p.AddRule(t, "absolute.mdc", "e")
	p.AddRule(t, "README.md", "not a rule")

	testutil.CreateSymlink(t, p.RelativeSource("linked.mdc"), p.Link("linked.mdc"))
	testutil.CreateSymlink(t, filepath.Join("..", "elsewhere.mdc"), p.Link("stale.mdc"))
	p.AddTargetFile(t, "conflict.mdc", "local edit")
	testutil.CreateSymlink(t, filepath.Join(p.SourceDir, "absolute.mdc"), p.Link("absolute.mdc"))

	report, err := NewChecker(filesystem.NewOS(), p.TargetDir, p.SourceDir, "").Check()
	require.NoError(t, err)
	require.Len(t, report.Rules, 5)

	got := byName(report)
	tests := []struct {
		name  string
		state types.LinkState
	}{
		{"linked.mdc", types.LinkStateLinked},
		{"stale.mdc", types.LinkStateStale},
		{"missing.mdc", types.LinkStateMissing},
		{"conflict.mdc", types.LinkStateConflict},
		{"absolute.mdc", types.LinkStateLinked},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rule, ok := got[tt.name]
			require.True(t, ok)
			assert.Equal(t, tt.state, rule.State)
			assert.Equal(t, p.RelativeSource(tt.name), rule.ExpectedTarget)
			assert.Equal(t, p.Link(tt.name), rule.LinkPath)
		})
	}

	assert.Equal(t, filepath.Join("..", "elsewhere.mdc"), got["stale.mdc"].ActualTarget)
	assert.Empty(t, got["missing.mdc"].ActualTarget)
	assert.Equal(t, 2, report.Count(types.LinkStateLinked))
}

func TestCheckAfterSyncReportsLinked(t *testing.T) {
	testutil.SkipOnWindows(t)
	p := testutil.NewProject(t)
	p.AddRule(t, "a.mdc", "a")
	p.AddRule(t, "b.mdc", "b")

	fsys := filesystem.NewOS()
	_, err := syncer.New(fsys, syncer.Options{TargetDir: p.TargetDir, SourceDir: p.SourceDir}).Sync()
	require.NoError(t, err)

	report, err := NewChecker(fsys, p.TargetDir, p.SourceDir, ".mdc").Check()
	require.NoError(t, err)
	for _, rule := range report.Rules {
		assert.Equal(t, types.LinkStateLinked, rule.State, rule.Name)
	}
	assert.Equal(t, 2, report.Count(types.LinkStateLinked))
}

func TestCheckPreconditions(t *testing.T) {
	t.Run("missing_target_is_fatal", func(t *testing.T) {
		p := testutil.NewProject(t)
		require.NoError(t, os.RemoveAll(p.TargetDir))

		report, err := NewChecker(filesystem.NewOS(), p.TargetDir, p.SourceDir, "").Check()
		require.Error(t, err)
		assert.Nil(t, report)
		assert.True(t, errors.IsErrorCode(err, errors.ErrTargetNotFound))
	})

	t.Run("missing_source", func(t *testing.T) {
		p := testutil.NewProject(t)
		require.NoError(t, os.RemoveAll(p.SourceDir))

		report, err := NewChecker(filesystem.NewOS(), p.TargetDir, p.SourceDir, "").Check()
		require.NoError(t, err)
		assert.True(t, report.SourceMissing)
		assert.Empty(t, report.Rules)
	})

	t.Run("unreadable_source", func(t *testing.T) {
		testutil.SkipIfRoot(t)
		testutil.SkipOnWindows(t)
		p := testutil.NewProject(t)
		p.AddRule(t, "a.mdc", "a")
		testutil.Chmod(t, p.SourceDir, 0000)

		report, err := NewChecker(filesystem.NewOS(), p.TargetDir, p.SourceDir, "").Check()
		require.NoError(t, err)
		assert.NotEmpty(t, report.ScanError)
		assert.False(t, report.SourceMissing)
		assert.Empty(t, report.Rules)
	})

	t.Run("no_rules", func(t *testing.T) {
		p := testutil.NewProject(t)
		p.AddRule(t, "notes.txt", "x")

		report, err := NewChecker(filesystem.NewOS(), p.TargetDir, p.SourceDir, "").Check()
		require.NoError(t, err)
		assert.True(t, report.NoRules)
	})
}

func TestCheckInMemory(t *testing.T) {
	fsys := testutil.NewTestFS()
	require.NoError(t, fsys.MkdirAll("/p/.cursor/rules", 0755))
	require.NoError(t, fsys.MkdirAll("/p/.cursor/shared/rules", 0755))
	require.NoError(t, fsys.WriteFile("/p/.cursor/shared/rules/a.mdc", []byte("a"), 0644))
	require.NoError(t, fsys.WriteFile("/p/.cursor/shared/rules/b.mdc", []byte("b"), 0644))
	require.NoError(t, fsys.Symlink("../shared/rules/a.mdc", "/p/.cursor/rules/a.mdc"))

	report, err := NewChecker(fsys, "/p/.cursor/rules", "/p/.cursor/shared/rules", "").Check()
	require.NoError(t, err)

	got := byName(report)
	assert.Equal(t, types.LinkStateLinked, got["a.mdc"].State)
	assert.Equal(t, types.LinkStateMissing, got["b.mdc"].State)
}
