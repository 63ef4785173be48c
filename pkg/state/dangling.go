package state

import (
	"io/fs"
	"path/filepath"

	"github.com/arthur-debert/rulesync/pkg/errors"
	"github.com/arthur-debert/rulesync/pkg/logging"
	"github.com/arthur-debert/rulesync/pkg/paths"
	"github.com/arthur-debert/rulesync/pkg/types"
)

// LinkDetector finds links in the target directory that rulesync manages
// but whose rule file was removed from the shared directory.
type LinkDetector struct {
	fs     types.FS
	target string
	source string
}

// NewLinkDetector creates a new LinkDetector for absolute target and
// source directories
func NewLinkDetector(fs types.FS, targetDir, sourceDir string) *LinkDetector {
	return &LinkDetector{
		fs:     fs,
		target: targetDir,
		source: sourceDir,
	}
}

// DetectDanglingLinks scans the direct entries of the target directory.
// Only symlinks resolving inside the source directory are considered, so
// links the user made to other places are never reported.
//
// A missing source directory returns ErrSourceNotFound: every managed
// link would look dangling while the shared checkout is absent.
func (ld *LinkDetector) DetectDanglingLinks() ([]types.DanglingLink, error) {
	logger := logging.GetLogger("state.dangling")

	if _, err := ld.fs.Stat(ld.target); err != nil {
		return nil, errors.Wrapf(err, errors.ErrTargetNotFound, "Directory %s does not exist", ld.target).
			WithDetail("path", ld.target)
	}

	if _, err := ld.fs.Stat(ld.source); err != nil {
		logger.Warn().Err(err).Str("source", ld.source).Msg("shared rules directory unavailable, not pruning")
		return nil, errors.Wrapf(err, errors.ErrSourceNotFound, "Shared rules directory %s does not exist", ld.source).
			WithDetail("path", ld.source)
	}

	entries, err := ld.fs.ReadDir(ld.target)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrFileAccess, "cannot list %s", ld.target)
	}

	dangling := []types.DanglingLink{}
	for _, entry := range entries {
		linkPath := filepath.Join(ld.target, entry.Name())

		dl, err := ld.checkLink(linkPath)
		if err != nil {
			logger.Warn().Err(err).Str("link", linkPath).Msg("error checking link")
			continue
		}
		if dl != nil {
			dangling = append(dangling, *dl)
		}
	}

	logger.Debug().Int("count", len(dangling)).Msg("dangling links detected")
	return dangling, nil
}

// checkLink returns a DanglingLink when linkPath is a managed symlink whose
// destination is gone, nil otherwise
func (ld *LinkDetector) checkLink(linkPath string) (*types.DanglingLink, error) {
	logger := logging.GetLogger("state.dangling")

	info, err := ld.fs.Lstat(linkPath)
	if err != nil {
		return nil, err
	}
	if info.Mode()&fs.ModeSymlink == 0 {
		return nil, nil
	}

	dest, err := ld.fs.Readlink(linkPath)
	if err != nil {
		return nil, err
	}
	resolved := paths.ResolveLinkDestination(linkPath, dest)

	if !paths.Within(ld.source, resolved) {
		logger.Debug().Str("link", linkPath).Str("dest", resolved).Msg("points outside shared rules, ignoring")
		return nil, nil
	}

	if _, err := ld.fs.Stat(resolved); err == nil {
		return nil, nil
	} else if !errors.IsNotExist(err) {
		return nil, err
	}

	logger.Debug().Str("link", linkPath).Str("dest", resolved).Msg("destination missing, link is dangling")
	return &types.DanglingLink{
		LinkPath:     linkPath,
		Destination:  dest,
		ResolvedPath: resolved,
	}, nil
}

// RemoveDanglingLinks removes the given links. Each link is re-checked
// first; one that was repaired or replaced in the meantime is left alone.
// With dryRun nothing is removed and every still-dangling link is
// reported as removed.
func (ld *LinkDetector) RemoveDanglingLinks(links []types.DanglingLink, dryRun bool) *types.PruneResult {
	logger := logging.GetLogger("state.dangling")
	result := ld.newResult(dryRun)

	for _, dl := range links {
		current, err := ld.checkLink(dl.LinkPath)
		if err != nil && !errors.IsNotExist(err) {
			result.Failed = append(result.Failed, types.PruneFailure{Link: dl, Error: err.Error()})
			continue
		}
		if current == nil {
			logger.Debug().Str("link", dl.LinkPath).Msg("no longer dangling, leaving in place")
			continue
		}

		if dryRun {
			result.Removed = append(result.Removed, *current)
			continue
		}

		if err := ld.fs.Remove(current.LinkPath); err != nil && !errors.IsNotExist(err) {
			logger.Error().Err(err).Str("link", current.LinkPath).Msg("error removing dangling link")
			wrapped := errors.Wrapf(err, errors.ErrSymlinkRemove, "failed to remove %s", current.LinkPath)
			result.Failed = append(result.Failed, types.PruneFailure{Link: *current, Error: wrapped.Error()})
			continue
		}

		logger.Info().Str("link", current.LinkPath).Str("dest", current.Destination).Msg("removed dangling link")
		result.Removed = append(result.Removed, *current)
	}

	return result
}

// Prune detects and removes dangling links in one call. Without the source
// directory it removes nothing and reports SourceMissing.
func (ld *LinkDetector) Prune(dryRun bool) (*types.PruneResult, error) {
	links, err := ld.DetectDanglingLinks()
	if errors.IsErrorCode(err, errors.ErrSourceNotFound) {
		result := ld.newResult(dryRun)
		result.SourceMissing = true
		return result, nil
	}
	if err != nil {
		return nil, err
	}
	return ld.RemoveDanglingLinks(links, dryRun), nil
}

func (ld *LinkDetector) newResult(dryRun bool) *types.PruneResult {
	return &types.PruneResult{
		TargetDir: ld.target,
		SourceDir: ld.source,
		DryRun:    dryRun,
		Removed:   []types.DanglingLink{},
	}
}
