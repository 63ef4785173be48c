package syncer

import (
	"io/fs"
	"path/filepath"

	"github.com/arthur-debert/rulesync/pkg/errors"
	"github.com/arthur-debert/rulesync/pkg/logging"
	"github.com/arthur-debert/rulesync/pkg/paths"
	"github.com/arthur-debert/rulesync/pkg/rules"
	"github.com/arthur-debert/rulesync/pkg/types"
	"github.com/rs/zerolog"
)

// Options configures a Syncer.
type Options struct {
	// TargetDir holds the links. It must already exist.
	TargetDir string
	// SourceDir holds the shared rule files. It may be absent.
	SourceDir string
	// Suffix selects rule files by name. Defaults to rules.DefaultSuffix.
	Suffix string
	// DryRun decides every entry without removing or creating links.
	DryRun bool
}

// Syncer mirrors the rule files of SourceDir into TargetDir as relative
// symlinks.
type Syncer struct {
	fs     types.FS
	opts   Options
	logger zerolog.Logger
}

// New creates a Syncer. TargetDir and SourceDir are expected to be
// absolute; see paths.Resolve.
func New(fs types.FS, opts Options) *Syncer {
	if opts.Suffix == "" {
		opts.Suffix = rules.DefaultSuffix
	}
	return &Syncer{
		fs:     fs,
		opts:   opts,
		logger: logging.GetLogger("syncer"),
	}
}

// Sync runs one pass over the shared rules.
//
// The only error returned is ErrTargetNotFound, before anything is
// touched. Every other problem is recorded on the result and the run
// continues with the next entry.
func (s *Syncer) Sync() (*types.SyncResult, error) {
	done := logging.LogOperationStart(s.logger, "sync")
	defer done()

	result := &types.SyncResult{
		TargetDir: s.opts.TargetDir,
		SourceDir: s.opts.SourceDir,
		DryRun:    s.opts.DryRun,
	}

	if _, err := s.fs.Stat(s.opts.TargetDir); err != nil {
		s.logger.Error().Err(err).Str("target", s.opts.TargetDir).Msg("target directory unavailable")
		return nil, errors.Wrapf(err, errors.ErrTargetNotFound, "Directory %s does not exist", s.opts.TargetDir).
			WithDetail("path", s.opts.TargetDir)
	}

	if _, err := s.fs.Stat(s.opts.SourceDir); err != nil {
		s.logger.Warn().Err(err).Str("source", s.opts.SourceDir).Msg("shared rules directory unavailable")
		result.SourceMissing = true
		return result, nil
	}

	found, err := rules.NewScanner(s.fs, s.opts.Suffix).Scan(s.opts.SourceDir)
	if err != nil {
		if errors.IsErrorCode(err, errors.ErrSourceNotFound) {
			result.SourceMissing = true
			return result, nil
		}
		s.logger.Error().Err(err).Str("source", s.opts.SourceDir).Msg("cannot list shared rules")
		result.ScanError = err.Error()
		return result, nil
	}

	if len(found) == 0 {
		s.logger.Info().Str("source", s.opts.SourceDir).Msg("no shared rules found")
		result.NoRules = true
		return result, nil
	}

	for _, rule := range found {
		entry := s.syncEntry(rule)
		result.Add(entry)
	}

	s.logger.Info().
		Int("linked", result.Linked).
		Int("skipped", result.Skipped).
		Int("failed", result.Failed).
		Bool("dryRun", s.opts.DryRun).
		Msg("sync finished")

	return result, nil
}

// syncEntry links a single rule, replacing an existing symlink at the
// link path and leaving anything else there alone.
func (s *Syncer) syncEntry(rule types.RuleEntry) types.EntryResult {
	linkPath := filepath.Join(s.opts.TargetDir, rule.Name)
	entry := types.EntryResult{
		Name:     rule.Name,
		LinkPath: linkPath,
	}
	logger := s.logger.With().Str("rule", rule.Name).Str("link", linkPath).Logger()

	info, err := s.fs.Lstat(linkPath)
	switch {
	case err == nil && info.Mode()&fs.ModeSymlink != 0:
		if !s.opts.DryRun {
			if err := s.fs.Remove(linkPath); err != nil {
				logger.Warn().Err(err).Msg("cannot remove existing symlink")
				entry.Status = types.EntrySkipped
				entry.Reason = types.SkipCheck
				entry.Err = errors.Wrapf(err, errors.ErrSymlinkRemove, "cannot remove %s", linkPath)
				return entry
			}
		}
		entry.Replaced = true
		logger.Debug().Msg("removed existing symlink")
	case err == nil:
		logger.Warn().Str("mode", info.Mode().String()).Msg("name occupied by a non-symlink, skipping")
		entry.Status = types.EntrySkipped
		entry.Reason = types.SkipOccupied
		return entry
	case !errors.IsNotExist(err):
		logger.Warn().Err(err).Msg("cannot inspect link path")
		entry.Status = types.EntrySkipped
		entry.Reason = types.SkipCheck
		entry.Err = errors.Wrapf(err, errors.ErrFileAccess, "cannot inspect %s", linkPath)
		return entry
	}

	entry.LinkTarget = paths.RelativeLinkTarget(s.opts.TargetDir, rule.SourcePath)

	if s.opts.DryRun {
		entry.Status = types.EntryWouldLink
		logger.Info().Str("target", entry.LinkTarget).Msg("would link")
		return entry
	}

	if err := s.fs.Symlink(entry.LinkTarget, linkPath); err != nil {
		logger.Error().Err(err).Str("target", entry.LinkTarget).Msg("failed to create symlink")
		entry.Status = types.EntryFailed
		entry.Err = errors.Wrapf(err, errors.ErrSymlinkCreate, "cannot link %s", linkPath)
		return entry
	}

	entry.Status = types.EntryLinked
	logger.Info().Str("target", entry.LinkTarget).Bool("replaced", entry.Replaced).Msg("linked")
	return entry
}
