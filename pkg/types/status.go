package types

// LinkState describes how a rule is currently represented in the target directory
type LinkState string

const (
	// LinkStateLinked is a symlink pointing at the expected source
	LinkStateLinked LinkState = "linked"
	// LinkStateStale is a symlink pointing somewhere else
	LinkStateStale LinkState = "stale"
	// LinkStateMissing means nothing exists at the link path
	LinkStateMissing LinkState = "missing"
	// LinkStateConflict means a non-symlink occupies the link path
	LinkStateConflict LinkState = "conflict"
	// LinkStateError means the link path could not be inspected
	LinkStateError LinkState = "error"
)

// RuleStatus is the read-only view of one rule
type RuleStatus struct {
	Name           string    `json:"name"`
	LinkPath       string    `json:"linkPath"`
	ExpectedTarget string    `json:"expectedTarget"`
	ActualTarget   string    `json:"actualTarget,omitempty"`
	State          LinkState `json:"state"`
	Error          string    `json:"error,omitempty"`
}

// StatusReport is the outcome of a status inspection. ScanError holds the
// reason the source directory could not be listed.
type StatusReport struct {
	TargetDir     string       `json:"targetDir"`
	SourceDir     string       `json:"sourceDir"`
	SourceMissing bool         `json:"sourceMissing"`
	ScanError     string       `json:"scanError,omitempty"`
	NoRules       bool         `json:"noRules"`
	Rules         []RuleStatus `json:"rules"`
}

// Count returns how many rules are in the given state
func (r *StatusReport) Count(state LinkState) int {
	n := 0
	for _, rule := range r.Rules {
		if rule.State == state {
			n++
		}
	}
	return n
}

// DanglingLink is a symlink in the target directory that resolves into the
// source directory to a path that no longer exists.
type DanglingLink struct {
	// LinkPath is the symlink in the target directory
	LinkPath string `json:"linkPath"`
	// Destination is the raw link target as stored in the symlink
	Destination string `json:"destination"`
	// ResolvedPath is Destination made absolute
	ResolvedPath string `json:"resolvedPath"`
}

// PruneResult is the outcome of removing dangling links. With
// SourceMissing set nothing was inspected or removed.
type PruneResult struct {
	TargetDir     string         `json:"targetDir"`
	SourceDir     string         `json:"sourceDir"`
	DryRun        bool           `json:"dryRun"`
	SourceMissing bool           `json:"sourceMissing"`
	Removed       []DanglingLink `json:"removed"`
	Failed        []PruneFailure `json:"failed,omitempty"`
}

// PruneFailure records a dangling link that could not be removed
type PruneFailure struct {
	Link  DanglingLink `json:"link"`
	Error string       `json:"error"`
}
