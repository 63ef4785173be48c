package status

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

// Checker reports how each shared rule is represented in the target
// directory. It never modifies the filesystem.
type Checker struct {
	fs     types.FS
	target string
	source string
	suffix string
	logger zerolog.Logger
}

// NewChecker creates a status checker for the given absolute directories
func NewChecker(fs types.FS, targetDir, sourceDir, suffix string) *Checker {
	if suffix == "" {
		suffix = rules.DefaultSuffix
	}
	return &Checker{
		fs:     fs,
		target: targetDir,
		source: sourceDir,
		suffix: suffix,
		logger: logging.GetLogger("status"),
	}
}

// Check inspects every rule file. A missing target directory is the only
// error. A missing, empty or unreadable source directory is flagged on the
// report, the same way sync treats it.
func (c *Checker) Check() (*types.StatusReport, error) {
	report := &types.StatusReport{
		TargetDir: c.target,
		SourceDir: c.source,
		Rules:     []types.RuleStatus{},
	}

	if _, err := c.fs.Stat(c.target); err != nil {
		return nil, errors.Wrapf(err, errors.ErrTargetNotFound, "Directory %s does not exist", c.target).
			WithDetail("path", c.target)
	}

	found, err := rules.NewScanner(c.fs, c.suffix).Scan(c.source)
	if err != nil {
		if errors.IsErrorCode(err, errors.ErrSourceNotFound) {
			report.SourceMissing = true
			return report, nil
		}
		c.logger.Warn().Err(err).Str("source", c.source).Msg("cannot list shared rules")
		report.ScanError = err.Error()
		return report, nil
	}
	if len(found) == 0 {
		report.NoRules = true
		return report, nil
	}

	for _, rule := range found {
		report.Rules = append(report.Rules, c.checkRule(rule))
	}

	c.logger.Debug().
		Int("linked", report.Count(types.LinkStateLinked)).
		Int("stale", report.Count(types.LinkStateStale)).
		Int("missing", report.Count(types.LinkStateMissing)).
		Int("conflict", report.Count(types.LinkStateConflict)).
		Msg("status checked")

	return report, nil
}

func (c *Checker) checkRule(rule types.RuleEntry) types.RuleStatus {
	linkPath := filepath.Join(c.target, rule.Name)
	st := types.RuleStatus{
		Name:           rule.Name,
		LinkPath:       linkPath,
		ExpectedTarget: paths.RelativeLinkTarget(c.target, rule.SourcePath),
	}

	info, err := c.fs.Lstat(linkPath)
	if err != nil {
		if errors.IsNotExist(err) {
			st.State = types.LinkStateMissing
		} else {
			st.State = types.LinkStateError
			st.Error = err.Error()
		}
		return st
	}

	if info.Mode()&fs.ModeSymlink == 0 {
		st.State = types.LinkStateConflict
		return st
	}

	actual, err := c.fs.Readlink(linkPath)
	if err != nil {
		st.State = types.LinkStateError
		st.Error = err.Error()
		return st
	}
	st.ActualTarget = actual

	if pointsTo(linkPath, actual, st.ExpectedTarget, rule.SourcePath) {
		st.State = types.LinkStateLinked
	} else {
		st.State = types.LinkStateStale
	}
	return st
}

// pointsTo accepts the exact relative target as well as any spelling that
// resolves to the source file, e.g. an absolute link made by hand.
func pointsTo(linkPath, actual, expected, source string) bool {
	if actual == expected || filepath.Clean(actual) == filepath.Clean(expected) {
		return true
	}
	return paths.ResolveLinkDestination(linkPath, actual) == filepath.Clean(source)
}
