package types

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSyncResultAdd(t *testing.T) {
	var r SyncResult

	r.Add(EntryResult{Name: "a.mdc", Status: EntryLinked})
	r.Add(EntryResult{Name: "b.mdc", Status: EntrySkipped, Reason: SkipOccupied})
	r.Add(EntryResult{Name: "c.mdc", Status: EntryFailed, Err: errors.New("boom")})
	r.Add(EntryResult{Name: "d.mdc", Status: EntryWouldLink})

	assert.Equal(t, 2, r.Linked)
	assert.Equal(t, 1, r.Skipped)
	assert.Equal(t, 1, r.Failed)
	assert.Len(t, r.Entries, 4)
	assert.Equal(t, "boom", r.Entries[2].Error)
}

func TestStatusReportCount(t *testing.T) {
	r := StatusReport{Rules: []RuleStatus{
		{Name: "a.mdc", State: LinkStateLinked},
		{Name: "b.mdc", State: LinkStateLinked},
		{Name: "c.mdc", State: LinkStateConflict},
	}}

	assert.Equal(t, 2, r.Count(LinkStateLinked))
	assert.Equal(t, 1, r.Count(LinkStateConflict))
	assert.Equal(t, 0, r.Count(LinkStateStale))
}
