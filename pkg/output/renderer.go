package output

import (
	"bytes"
	"embed"
	stderrors "errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"text/template"

	"github.com/arthur-debert/rulesync/pkg/errors"
	"github.com/arthur-debert/rulesync/pkg/logging"
	"github.com/arthur-debert/rulesync/pkg/output/styles"
	"github.com/arthur-debert/rulesync/pkg/types"
	"github.com/arthur-debert/rulesync/pkg/ui/lipbalm"
	"github.com/charmbracelet/lipgloss"
	"github.com/pterm/pterm"
)

//go:embed templates/*.tmpl
var templatesFS embed.FS

// Options configures a Renderer
type Options struct {
	// Out receives confirmations, informational lines and summaries
	Out io.Writer
	// ErrOut receives warnings and errors
	ErrOut io.Writer
	// NoColor strips every style tag
	NoColor bool
	// MissingSourceHint is printed after the missing source warning
	MissingSourceHint string
}

// Renderer turns results into human-readable lines. Each line comes from a
// named template in templates/, is expanded (or stripped) by lipbalm and is
// written to Out or ErrOut.
type Renderer struct {
	templates *template.Template
	out       io.Writer
	errOut    io.Writer
	noColor   bool
	hint      string
}

// NewRenderer creates a Renderer. Nil writers default to os.Stdout and
// os.Stderr.
func NewRenderer(opts Options) (*Renderer, error) {
	log := logging.GetLogger("output.Renderer")

	if opts.Out == nil {
		opts.Out = os.Stdout
	}
	if opts.ErrOut == nil {
		opts.ErrOut = os.Stderr
	}

	if opts.NoColor {
		pterm.DisableColor()
	} else {
		pterm.EnableColor()
		renderer := lipgloss.NewRenderer(opts.Out)
		lipbalm.SetDefaultRenderer(renderer)
		log.Debug().
			Str("colorProfile", fmt.Sprintf("%v", renderer.ColorProfile())).
			Msg("lipgloss renderer created")
	}

	tmpl, err := template.New("output").
		Funcs(template.FuncMap{"esc": lipbalm.Escape}).
		ParseFS(templatesFS, "templates/*.tmpl")
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}

	return &Renderer{
		templates: tmpl,
		out:       opts.Out,
		errOut:    opts.ErrOut,
		noColor:   opts.NoColor,
		hint:      opts.MissingSourceHint,
	}, nil
}

// RenderSync prints one line per entry followed by the summary
func (r *Renderer) RenderSync(result *types.SyncResult) error {
	if result.DryRun {
		if err := r.line(r.out, "dry-run", nil); err != nil {
			return err
		}
	}

	switch {
	case result.SourceMissing:
		return r.sourceMissing(result.SourceDir)
	case result.ScanError != "":
		return r.scanError(result.SourceDir, result.ScanError)
	case result.NoRules:
		return r.line(r.out, "no-rules", nil)
	}

	for _, entry := range result.Entries {
		if err := r.renderEntry(entry); err != nil {
			return err
		}
	}

	return r.line(r.out, "summary", map[string]int{
		"Linked":  result.Linked,
		"Skipped": result.Skipped,
	})
}

func (r *Renderer) renderEntry(entry types.EntryResult) error {
	data := map[string]string{
		"Name":  entry.Name,
		"Cause": cause(entry.Err, entry.Error),
	}

	switch entry.Status {
	case types.EntryLinked:
		return r.line(r.out, "linked", data)
	case types.EntryWouldLink:
		return r.line(r.out, "would-link", data)
	case types.EntryFailed:
		return r.line(r.errOut, "link-failed", data)
	case types.EntrySkipped:
		if entry.Reason == types.SkipOccupied {
			return r.line(r.errOut, "occupied", data)
		}
		return r.line(r.errOut, "check-error", data)
	default:
		return fmt.Errorf("unknown entry status %q", entry.Status)
	}
}

func (r *Renderer) sourceMissing(dir string) error {
	if err := r.line(r.errOut, "source-missing", map[string]string{"Path": dir}); err != nil {
		return err
	}
	if r.hint == "" {
		return nil
	}
	return r.line(r.out, "hint", map[string]string{"Hint": r.hint})
}

func (r *Renderer) scanError(dir, cause string) error {
	return r.line(r.errOut, "scan-error", map[string]string{"Path": dir, "Cause": cause})
}

// RenderStatus prints a table of rules and their link state
func (r *Renderer) RenderStatus(report *types.StatusReport) error {
	switch {
	case report.SourceMissing:
		return r.sourceMissing(report.SourceDir)
	case report.ScanError != "":
		return r.scanError(report.SourceDir, report.ScanError)
	case report.NoRules:
		return r.line(r.out, "no-rules", nil)
	}

	if err := r.line(r.out, "status-header", map[string]string{"Path": report.TargetDir}); err != nil {
		return err
	}

	data := pterm.TableData{{"RULE", "STATE", "LINK TARGET", "DETAIL"}}
	for _, rule := range report.Rules {
		detail := rule.Error
		if rule.State == types.LinkStateStale {
			detail = "expected " + rule.ExpectedTarget
		}
		target := rule.ActualTarget
		if target == "" {
			target = "-"
		}
		data = append(data, []string{
			rule.Name,
			r.styled(stateStyle(rule.State), string(rule.State)),
			target,
			detail,
		})
	}

	table, err := pterm.DefaultTable.WithHasHeader().WithData(data).Srender()
	if err != nil {
		return fmt.Errorf("failed to render status table: %w", err)
	}
	if _, err := fmt.Fprintln(r.out, table); err != nil {
		return err
	}

	return r.line(r.out, "status-summary", map[string]int{
		"Linked":   report.Count(types.LinkStateLinked),
		"Stale":    report.Count(types.LinkStateStale),
		"Missing":  report.Count(types.LinkStateMissing),
		"Conflict": report.Count(types.LinkStateConflict),
		"Error":    report.Count(types.LinkStateError),
	})
}

func stateStyle(state types.LinkState) string {
	switch state {
	case types.LinkStateLinked:
		return "StateLinked"
	case types.LinkStateStale:
		return "StateStale"
	case types.LinkStateMissing:
		return "StateMissing"
	case types.LinkStateConflict:
		return "StateConflict"
	default:
		return "StateError"
	}
}

// RenderPrune prints the removed and failed dangling links. A missing
// source directory gets the same warning and hint as sync.
func (r *Renderer) RenderPrune(result *types.PruneResult) error {
	if result.DryRun {
		if err := r.line(r.out, "dry-run", nil); err != nil {
			return err
		}
	}

	if result.SourceMissing {
		return r.sourceMissing(result.SourceDir)
	}
	if len(result.Removed) == 0 && len(result.Failed) == 0 {
		return r.line(r.out, "no-dangling", nil)
	}

	name := "removed"
	if result.DryRun {
		name = "would-remove"
	}
	for _, dl := range result.Removed {
		if err := r.line(r.out, name, map[string]string{
			"Name": filepath.Base(dl.LinkPath),
			"Dest": dl.Destination,
		}); err != nil {
			return err
		}
	}
	for _, f := range result.Failed {
		if err := r.line(r.errOut, "remove-failed", map[string]string{
			"Name":  filepath.Base(f.Link.LinkPath),
			"Cause": f.Error,
		}); err != nil {
			return err
		}
	}

	return r.line(r.out, "prune-summary", map[string]int{
		"Removed": len(result.Removed),
		"Failed":  len(result.Failed),
	})
}

// RenderError prints err on ErrOut. Coded errors show their message and
// the underlying cause without the code prefix.
func (r *Renderer) RenderError(err error) error {
	return r.line(r.errOut, "error", map[string]string{"Message": Describe(err)})
}

// Describe formats err for people: the message of a coded error, followed
// by its cause when there is one. A missing target directory is reported
// as the bare message.
func Describe(err error) string {
	var rsErr *errors.RuleSyncError
	if !stderrors.As(err, &rsErr) {
		return err.Error()
	}
	if rsErr.Code == errors.ErrTargetNotFound || rsErr.Wrapped == nil {
		return rsErr.Message
	}
	return rsErr.Message + ": " + Describe(rsErr.Wrapped)
}

// cause returns the innermost useful text for an entry error: the wrapped
// filesystem error when there is one
func cause(err error, fallback string) string {
	if err == nil {
		return fallback
	}
	if inner := stderrors.Unwrap(err); inner != nil {
		return inner.Error()
	}
	return err.Error()
}

func (r *Renderer) styled(style, text string) string {
	tagged := "<" + style + ">" + lipbalm.Escape(text) + "</" + style + ">"
	if r.noColor {
		return lipbalm.StripTags(tagged)
	}
	out, err := lipbalm.ExpandTags(tagged, styles.Registry())
	if err != nil {
		return text
	}
	return out
}

// line executes a named template and writes the result as one line
func (r *Renderer) line(w io.Writer, name string, data interface{}) error {
	var buf bytes.Buffer
	if err := r.templates.ExecuteTemplate(&buf, name, data); err != nil {
		return fmt.Errorf("failed to execute template %s: %w", name, err)
	}

	var text string
	if r.noColor {
		text = lipbalm.StripTags(buf.String())
	} else {
		expanded, err := lipbalm.ExpandTags(buf.String(), styles.Registry())
		if err != nil {
			return fmt.Errorf("failed to expand tags: %w", err)
		}
		text = expanded
	}

	_, err := fmt.Fprintln(w, text)
	return err
}
