package rules

import (
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/arthur-debert/rulesync/pkg/errors"
	"github.com/arthur-debert/rulesync/pkg/logging"
	"github.com/arthur-debert/rulesync/pkg/types"
	"github.com/rs/zerolog"
)

// DefaultSuffix identifies rule files
const DefaultSuffix = ".mdc"

// Scanner lists rule files in a shared source directory
type Scanner struct {
	fs     types.FS
	suffix string
	logger zerolog.Logger
}

// NewScanner creates a scanner matching names that end with suffix
func NewScanner(fs types.FS, suffix string) *Scanner {
	return &Scanner{
		fs:     fs,
		suffix: suffix,
		logger: logging.GetLogger("rules.scanner"),
	}
}

// Scan returns the direct children of dir whose name ends with the
// scanner's suffix, in the order the filesystem listing returns them.
// Subdirectories are not descended into.
//
// A missing dir yields an ErrSourceNotFound error; other listing failures
// yield ErrFileAccess.
func (s *Scanner) Scan(dir string) ([]types.RuleEntry, error) {
	if s.suffix == "" {
		return nil, errors.New(errors.ErrInvalidInput, "rule suffix must not be empty")
	}

	entries, err := s.fs.ReadDir(dir)
	if err != nil {
		if errors.IsNotExist(err) {
			return nil, errors.Wrapf(err, errors.ErrSourceNotFound, "Shared rules directory %s does not exist", dir).
				WithDetail("path", dir)
		}
		return nil, errors.Wrapf(err, errors.ErrFileAccess, "failed to read %s", dir).
			WithDetail("path", dir)
	}

	var found []types.RuleEntry
	for _, entry := range entries {
		if !s.Matches(entry) {
			s.logger.Trace().Str("name", entry.Name()).Msg("not a rule file")
			continue
		}
		found = append(found, types.RuleEntry{
			Name:       entry.Name(),
			SourcePath: filepath.Join(dir, entry.Name()),
		})
	}

	s.logger.Debug().
		Str("dir", dir).
		Str("suffix", s.suffix).
		Int("entries", len(entries)).
		Int("rules", len(found)).
		Msg("Scanned rules directory")

	return found, nil
}

// Matches reports whether a directory entry is a rule file
func (s *Scanner) Matches(entry fs.DirEntry) bool {
	return strings.HasSuffix(entry.Name(), s.suffix)
}
