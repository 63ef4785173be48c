// Package json provides machine-readable JSON output
package json

import (
	"encoding/json"
	"io"

	"github.com/arthur-debert/rulesync/pkg/errors"
	"github.com/arthur-debert/rulesync/pkg/output"
	"github.com/arthur-debert/rulesync/pkg/types"
)

// Renderer writes one indented JSON document per call
type Renderer struct {
	encoder *json.Encoder
	hint    string
}

// New creates a new JSON renderer. hint is included in documents that
// report a missing source directory.
func New(w io.Writer, hint string) *Renderer {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	encoder.SetEscapeHTML(false)
	return &Renderer{encoder: encoder, hint: hint}
}

type syncDocument struct {
	*types.SyncResult
	Hint string `json:"hint,omitempty"`
}

type statusDocument struct {
	*types.StatusReport
	Hint string `json:"hint,omitempty"`
}

type pruneDocument struct {
	*types.PruneResult
	Hint string `json:"hint,omitempty"`
}

type errorDocument struct {
	Error   string                 `json:"error"`
	Code    errors.ErrorCode       `json:"code"`
	Details map[string]interface{} `json:"details,omitempty"`
}

// RenderSync encodes the sync result
func (r *Renderer) RenderSync(result *types.SyncResult) error {
	doc := syncDocument{SyncResult: result}
	if result.SourceMissing {
		doc.Hint = r.hint
	}
	return r.encoder.Encode(doc)
}

// RenderStatus encodes the status report
func (r *Renderer) RenderStatus(report *types.StatusReport) error {
	doc := statusDocument{StatusReport: report}
	if report.SourceMissing {
		doc.Hint = r.hint
	}
	return r.encoder.Encode(doc)
}

// RenderPrune encodes the prune result
func (r *Renderer) RenderPrune(result *types.PruneResult) error {
	doc := pruneDocument{PruneResult: result}
	if result.SourceMissing {
		doc.Hint = r.hint
	}
	return r.encoder.Encode(doc)
}

// RenderError encodes err with its code and details
func (r *Renderer) RenderError(err error) error {
	details := errors.GetErrorDetails(err)
	if len(details) == 0 {
		details = nil
	}
	return r.encoder.Encode(errorDocument{
		Error:   output.Describe(err),
		Code:    errors.GetErrorCode(err),
		Details: details,
	})
}
