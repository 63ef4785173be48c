// Package app turns the global command-line flags into the pieces every
// rulesync command needs: the effective configuration, the resolved
// directories, a filesystem and a renderer.
package app

import (
	stderrors "errors"

	"github.com/arthur-debert/rulesync/pkg/config"
	"github.com/arthur-debert/rulesync/pkg/errors"
	"github.com/arthur-debert/rulesync/pkg/filesystem"
	"github.com/arthur-debert/rulesync/pkg/logging"
	"github.com/arthur-debert/rulesync/pkg/output/styles"
	"github.com/arthur-debert/rulesync/pkg/paths"
	"github.com/arthur-debert/rulesync/pkg/types"
	"github.com/arthur-debert/rulesync/pkg/ui"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// Flag names shared by all commands
const (
	FlagVerbose = "verbose"
	FlagDryRun  = "dry-run"
	FlagConfig  = "config"
	FlagTarget  = "target"
	FlagSource  = "source"
	FlagSuffix  = "suffix"
	FlagFormat  = "format"
)

// flagKeys maps flags to the configuration keys they override
var flagKeys = map[string]string{
	FlagTarget: "paths.target",
	FlagSource: "paths.source",
	FlagSuffix: "rules.suffix",
	FlagFormat: "output.format",
}

// Flags holds the global flag values
type Flags struct {
	Verbosity  int
	DryRun     bool
	ConfigFile string
	Target     string
	Source     string
	Suffix     string
	Format     string
}

// Bind registers the global flags on fs
func (f *Flags) Bind(fs *pflag.FlagSet) {
	fs.CountVarP(&f.Verbosity, FlagVerbose, "v", MsgFlagVerbose)
	fs.BoolVar(&f.DryRun, FlagDryRun, false, MsgFlagDryRun)
	fs.StringVar(&f.ConfigFile, FlagConfig, "", MsgFlagConfig)
	fs.StringVar(&f.Target, FlagTarget, "", MsgFlagTarget)
	fs.StringVar(&f.Source, FlagSource, "", MsgFlagSource)
	fs.StringVar(&f.Suffix, FlagSuffix, "", MsgFlagSuffix)
	fs.StringVar(&f.Format, FlagFormat, "", MsgFlagFormat)
}

// App is everything a command needs to run
type App struct {
	Config    *config.Config
	TargetDir string
	SourceDir string
	DryRun    bool
	FS        types.FS
	Renderer  ui.Renderer
}

// FromCommand builds an App from the flags cmd was invoked with.
// Configuration errors are returned unreported.
func FromCommand(cmd *cobra.Command) (*App, error) {
	logger := logging.GetLogger("app")
	flags := cmd.Flags()

	configFile, _ := flags.GetString(FlagConfig)
	dryRun, _ := flags.GetBool(FlagDryRun)

	overrides := map[string]interface{}{}
	for name, key := range flagKeys {
		if f := flags.Lookup(name); f != nil && f.Changed {
			overrides[key] = f.Value.String()
		}
	}

	cfg, err := config.Load(config.LoadOptions{
		ConfigFile: configFile,
		Overrides:  overrides,
	})
	if err != nil {
		return nil, err
	}

	target, source, err := cfg.ResolveDirs("")
	if err != nil {
		return nil, err
	}

	if cfg.Output.Styles != "" {
		stylesPath, err := paths.Resolve("", cfg.Output.Styles)
		if err != nil {
			return nil, errors.Wrap(err, errors.ErrConfigValid, "cannot resolve styles file")
		}
		if err := styles.LoadStyles(stylesPath); err != nil {
			return nil, errors.Wrap(err, errors.ErrConfigLoad, "cannot load styles").WithDetail("path", stylesPath)
		}
	}

	renderer, err := NewRenderer(cmd, cfg.Output.Format, cfg.Hints.MissingSource)
	if err != nil {
		return nil, err
	}

	fs := filesystem.NewOS()
	if dryRun {
		fs = filesystem.NewReadOnlyOS()
	}

	logger.Debug().
		Str("target", target).
		Str("source", source).
		Str("suffix", cfg.Rules.Suffix).
		Str("format", cfg.Output.Format).
		Bool("dryRun", dryRun).
		Msg("configuration resolved")

	return &App{
		Config:    cfg,
		TargetDir: target,
		SourceDir: source,
		DryRun:    dryRun,
		FS:        fs,
		Renderer:  renderer,
	}, nil
}

// NewRenderer creates a renderer writing to cmd's output streams
func NewRenderer(cmd *cobra.Command, format, hint string) (ui.Renderer, error) {
	f, err := ui.ParseFormat(format)
	if err != nil {
		return nil, err
	}
	return ui.NewRenderer(f, ui.Options{
		Out:               cmd.OutOrStdout(),
		ErrOut:            cmd.ErrOrStderr(),
		MissingSourceHint: hint,
	})
}

// ReportedError is an error that has already been shown to the user
type ReportedError struct {
	Err error
}

func (e *ReportedError) Error() string { return e.Err.Error() }
func (e *ReportedError) Unwrap() error { return e.Err }

// Fail renders err and returns it marked as reported
func (a *App) Fail(err error) error {
	if renderErr := a.Renderer.RenderError(err); renderErr != nil {
		return err
	}
	return &ReportedError{Err: err}
}

// ReportError shows err unless a command already did. The format flag is
// honored when it parses; otherwise plain text is used.
func ReportError(cmd *cobra.Command, err error) {
	var reported *ReportedError
	if stderrors.As(err, &reported) {
		return
	}

	format, _ := cmd.Flags().GetString(FlagFormat)
	renderer, rerr := NewRenderer(cmd, format, "")
	if rerr != nil {
		renderer, _ = NewRenderer(cmd, ui.FormatText.String(), "")
	}
	_ = renderer.RenderError(err)
}
