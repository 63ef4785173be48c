package output

import (
	"bytes"
	"fmt"
	"os"
	"strings"
	"testing"

	"github.com/arthur-debert/rulesync/pkg/errors"
	"github.com/arthur-debert/rulesync/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testHint = "git submodule add git@github.com:tower1229/cursor-config.git .cursor/shared"

func newTestRenderer(t *testing.T) (*Renderer, *bytes.Buffer, *bytes.Buffer) {
	t.Helper()
	var out, errOut bytes.Buffer
	r, err := NewRenderer(Options{
		Out:               &out,
		ErrOut:            &errOut,
		NoColor:           true,
		MissingSourceHint: testHint,
	})
	require.NoError(t, err)
	return r, &out, &errOut
}

func permissionDenied(op, path string) error {
	return &os.PathError{Op: op, Path: path, Err: os.ErrPermission}
}

func TestRenderSync(t *testing.T) {
	linkFailure := errors.Wrapf(permissionDenied("symlink", "/p/.cursor/rules/c.mdc"), errors.ErrSymlinkCreate, "cannot link %s", "/p/.cursor/rules/c.mdc")
	checkFailure := errors.Wrapf(permissionDenied("lstat", "/p/.cursor/rules/d.mdc"), errors.ErrFileAccess, "cannot inspect %s", "/p/.cursor/rules/d.mdc")

	result := &types.SyncResult{TargetDir: "/p/.cursor/rules", SourceDir: "/p/.cursor/shared/rules"}
	result.Add(types.EntryResult{Name: "a.mdc", Status: types.EntryLinked})
	result.Add(types.EntryResult{Name: "b.mdc", Status: types.EntrySkipped, Reason: types.SkipOccupied})
	result.Add(types.EntryResult{Name: "c.mdc", Status: types.EntryFailed, Err: linkFailure})
	result.Add(types.EntryResult{Name: "d.mdc", Status: types.EntrySkipped, Reason: types.SkipCheck, Err: checkFailure})

	r, out, errOut := newTestRenderer(t)
	require.NoError(t, r.RenderSync(result))

	assert.Equal(t, "✅ Linked: a.mdc\n\n📊 Summary: 1 linked, 2 skipped\n", out.String())
	assert.Equal(t, strings.Join([]string{
		"⚠️  b.mdc exists as a regular file, skipping",
		"❌ Failed to link c.mdc: symlink /p/.cursor/rules/c.mdc: permission denied",
		"⚠️  Error checking d.mdc: lstat /p/.cursor/rules/d.mdc: permission denied",
		"",
	}, "\n"), errOut.String())
}

func TestRenderSyncEarlyExits(t *testing.T) {
	tests := []struct {
		name    string
		result  *types.SyncResult
		wantOut string
		wantErr string
	}{
		{
			name:    "source missing",
			result:  &types.SyncResult{SourceDir: "/p/.cursor/shared/rules", SourceMissing: true},
			wantOut: "💡 Run: " + testHint + "\n",
			wantErr: "⚠️  Shared rules directory /p/.cursor/shared/rules does not exist\n",
		},
		{
			name:    "no rules",
			result:  &types.SyncResult{NoRules: true},
			wantOut: "ℹ️  No shared rules found\n",
		},
		{
			name:    "scan error",
			result:  &types.SyncResult{SourceDir: "/s", ScanError: "permission denied"},
			wantErr: "❌ Cannot read shared rules directory /s: permission denied\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, out, errOut := newTestRenderer(t)
			require.NoError(t, r.RenderSync(tt.result))
			assert.Equal(t, tt.wantOut, out.String())
			assert.Equal(t, tt.wantErr, errOut.String())
		})
	}
}

func TestRenderSyncDryRun(t *testing.T) {
	result := &types.SyncResult{DryRun: true}
	result.Add(types.EntryResult{Name: "a.mdc", Status: types.EntryWouldLink})

	r, out, _ := newTestRenderer(t)
	require.NoError(t, r.RenderSync(result))

	assert.Equal(t, "🔍 Dry run: no links will be changed\n🔍 Would link: a.mdc\n\n📊 Summary: 1 linked, 0 skipped\n", out.String())
}

func TestRenderSyncEscapesNames(t *testing.T) {
	result := &types.SyncResult{}
	result.Add(types.EntryResult{Name: "r&d <draft>.mdc", Status: types.EntryLinked})

	r, out, _ := newTestRenderer(t)
	require.NoError(t, r.RenderSync(result))
	assert.Contains(t, out.String(), "✅ Linked: r&d <draft>.mdc\n")
}

func TestRenderStatus(t *testing.T) {
	report := &types.StatusReport{
		TargetDir: "/p/.cursor/rules",
		Rules: []types.RuleStatus{
			{Name: "a.mdc", State: types.LinkStateLinked, ActualTarget: "../shared/rules/a.mdc", ExpectedTarget: "../shared/rules/a.mdc"},
			{Name: "b.mdc", State: types.LinkStateStale, ActualTarget: "../old/b.mdc", ExpectedTarget: "../shared/rules/b.mdc"},
			{Name: "c.mdc", State: types.LinkStateMissing, ExpectedTarget: "../shared/rules/c.mdc"},
		},
	}

	r, out, errOut := newTestRenderer(t)
	require.NoError(t, r.RenderStatus(report))

	text := out.String()
	assert.True(t, strings.HasPrefix(text, "Rules in /p/.cursor/rules\n"))
	for _, want := range []string{"RULE", "STATE", "a.mdc", "linked", "stale", "expected ../shared/rules/b.mdc", "missing"} {
		assert.Contains(t, text, want)
	}
	assert.Contains(t, text, "📊 Status: 1 linked, 1 stale, 1 missing, 0 conflict, 0 error")
	assert.NotContains(t, text, "<", "no style tags left in output")
	assert.Empty(t, errOut.String())
}

func TestRenderStatusSourceMissing(t *testing.T) {
	r, out, errOut := newTestRenderer(t)
	require.NoError(t, r.RenderStatus(&types.StatusReport{SourceDir: "/s", SourceMissing: true}))
	assert.Contains(t, errOut.String(), "Shared rules directory /s does not exist")
	assert.Contains(t, out.String(), "💡 Run:")
}

func TestRenderStatusScanError(t *testing.T) {
	r, out, errOut := newTestRenderer(t)
	require.NoError(t, r.RenderStatus(&types.StatusReport{SourceDir: "/s", ScanError: "permission denied"}))
	assert.Equal(t, "❌ Cannot read shared rules directory /s: permission denied\n", errOut.String())
	assert.Empty(t, out.String(), "no table or summary")
}

func TestRenderPrune(t *testing.T) {
	tests := []struct {
		name    string
		result  *types.PruneResult
		wantOut []string
		wantErr string
	}{
		{
			name:    "nothing to prune",
			result:  &types.PruneResult{},
			wantOut: []string{"ℹ️  No dangling links found"},
		},
		{
			name: "removed and failed",
			result: &types.PruneResult{
				Removed: []types.DanglingLink{{LinkPath: "/p/rules/gone.mdc", Destination: "../shared/rules/gone.mdc"}},
				Failed: []types.PruneFailure{{
					Link:  types.DanglingLink{LinkPath: "/p/rules/stuck.mdc"},
					Error: "permission denied",
				}},
			},
			wantOut: []string{
				"🧹 Removed: gone.mdc (was ../shared/rules/gone.mdc)",
				"📊 Summary: 1 removed, 1 failed",
			},
			wantErr: "❌ Failed to remove stuck.mdc: permission denied\n",
		},
		{
			name: "dry run",
			result: &types.PruneResult{
				DryRun:  true,
				Removed: []types.DanglingLink{{LinkPath: "/p/rules/gone.mdc", Destination: "../shared/rules/gone.mdc"}},
			},
			wantOut: []string{"🔍 Dry run", "🔍 Would remove: gone.mdc"},
		},
		{
			name:    "source missing",
			result:  &types.PruneResult{SourceDir: "/p/shared/rules", SourceMissing: true},
			wantOut: []string{"💡 Run: " + testHint},
			wantErr: "⚠️  Shared rules directory /p/shared/rules does not exist\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, out, errOut := newTestRenderer(t)
			require.NoError(t, r.RenderPrune(tt.result))
			for _, want := range tt.wantOut {
				assert.Contains(t, out.String(), want)
			}
			assert.Equal(t, tt.wantErr, errOut.String())
		})
	}
}

func TestRenderError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{
			name: "missing target",
			err:  errors.Wrapf(os.ErrNotExist, errors.ErrTargetNotFound, "Directory %s does not exist", "/p/.cursor/rules"),
			want: "❌ Directory /p/.cursor/rules does not exist\n",
		},
		{
			name: "coded with cause",
			err:  errors.Wrap(fmt.Errorf("bad toml"), errors.ErrConfigParse, "failed to load config"),
			want: "❌ failed to load config: bad toml\n",
		},
		{
			name: "plain error",
			err:  fmt.Errorf("unknown flag: --nope"),
			want: "❌ unknown flag: --nope\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, out, errOut := newTestRenderer(t)
			require.NoError(t, r.RenderError(tt.err))
			assert.Equal(t, tt.want, errOut.String())
			assert.Empty(t, out.String())
		})
	}
}
