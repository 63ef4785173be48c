// Package ui selects how results reach the user: styled terminal lines,
// plain text lines, or JSON.
package ui

import (
	"io"
	"os"

	"github.com/arthur-debert/rulesync/pkg/errors"
	"github.com/arthur-debert/rulesync/pkg/output"
	"github.com/arthur-debert/rulesync/pkg/types"
	"github.com/arthur-debert/rulesync/pkg/ui/json"
)

// Renderer is the common interface for all output renderers
type Renderer interface {
	RenderSync(result *types.SyncResult) error
	RenderStatus(report *types.StatusReport) error
	RenderPrune(result *types.PruneResult) error
	RenderError(err error) error
}

// Options are shared by every format
type Options struct {
	Out               io.Writer
	ErrOut            io.Writer
	MissingSourceHint string
}

// NewRenderer creates a renderer for the given format. FormatAuto inspects
// Out: a color terminal gets FormatTerminal, anything else FormatText.
func NewRenderer(format Format, opts Options) (Renderer, error) {
	if opts.Out == nil {
		opts.Out = os.Stdout
	}
	if opts.ErrOut == nil {
		opts.ErrOut = os.Stderr
	}

	switch format {
	case FormatAuto:
		if file, ok := opts.Out.(*os.File); ok {
			return NewRenderer(DetectFormat(file), opts)
		}
		return NewRenderer(FormatText, opts)
	case FormatTerminal, FormatText:
		return output.NewRenderer(output.Options{
			Out:               opts.Out,
			ErrOut:            opts.ErrOut,
			NoColor:           format == FormatText,
			MissingSourceHint: opts.MissingSourceHint,
		})
	case FormatJSON:
		return json.New(opts.Out, opts.MissingSourceHint), nil
	default:
		return nil, errors.Newf(errors.ErrInvalidInput, "unknown format: %v", format)
	}
}
