package types

// RuleEntry is one rule file found in the shared source directory.
type RuleEntry struct {
	// Name is the file name, which is also the link name in the target directory
	Name string `json:"name"`
	// SourcePath is the absolute path of the rule inside the source directory
	SourcePath string `json:"sourcePath"`
}

// EntryStatus is the per-rule outcome of a sync run
type EntryStatus string

const (
	// EntryLinked means a symlink was created
	EntryLinked EntryStatus = "linked"
	// EntryWouldLink means a symlink would be created (dry run)
	EntryWouldLink EntryStatus = "would-link"
	// EntrySkipped means the name was occupied or could not be inspected
	EntrySkipped EntryStatus = "skipped"
	// EntryFailed means creating the symlink failed
	EntryFailed EntryStatus = "failed"
)

// SkipReason tells why an entry was skipped
type SkipReason string

const (
	SkipNone     SkipReason = ""
	SkipOccupied SkipReason = "occupied"
	SkipCheck    SkipReason = "check-error"
)

// EntryResult records what happened to a single rule
type EntryResult struct {
	Name       string      `json:"name"`
	LinkPath   string      `json:"linkPath"`
	LinkTarget string      `json:"linkTarget,omitempty"`
	Status     EntryStatus `json:"status"`
	Replaced   bool        `json:"replaced,omitempty"` // an existing symlink was removed first
	Reason     SkipReason  `json:"reason,omitempty"`
	Err        error       `json:"-"`
	Error      string      `json:"error,omitempty"`
}

// SyncResult is the outcome of one sync invocation.
// Linked and Skipped are the run summary counters; Failed entries are
// counted separately and never folded into either.
type SyncResult struct {
	TargetDir     string `json:"targetDir"`
	SourceDir     string `json:"sourceDir"`
	DryRun        bool   `json:"dryRun"`
	SourceMissing bool   `json:"sourceMissing"`
	NoRules       bool   `json:"noRules"`
	// ScanError is set when the source directory exists but cannot be listed
	ScanError string        `json:"scanError,omitempty"`
	Entries   []EntryResult `json:"entries"`
	Linked    int           `json:"linked"`
	Skipped   int           `json:"skipped"`
	Failed    int           `json:"failed"`
}

// Add appends an entry result and updates the counters
func (r *SyncResult) Add(entry EntryResult) {
	if entry.Err != nil && entry.Error == "" {
		entry.Error = entry.Err.Error()
	}
	switch entry.Status {
	case EntryLinked, EntryWouldLink:
		r.Linked++
	case EntrySkipped:
		r.Skipped++
	case EntryFailed:
		r.Failed++
	}
	r.Entries = append(r.Entries, entry)
}
