package sync

import (
	"github.com/arthur-debert/rulesync/cmd/rulesync/internal/app"
	"github.com/arthur-debert/rulesync/pkg/logging"
	"github.com/arthur-debert/rulesync/pkg/syncer"
	"github.com/spf13/cobra"
)

// NewCommand creates the sync command
func NewCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "sync",
		Short:   MsgShort,
		Long:    MsgLong,
		Example: MsgExample,
		GroupID: "core",
		Args:    cobra.NoArgs,
		RunE:    Run,
	}
}

// Run links every shared rule into the target directory. It is also the
// action of the bare root command. Per-entry problems are reported but do
// not fail the command; only a missing target directory does.
func Run(cmd *cobra.Command, args []string) error {
	logging.LogCommand(cmd.Name(), args)

	a, err := app.FromCommand(cmd)
	if err != nil {
		return err
	}

	result, err := syncer.New(a.FS, syncer.Options{
		TargetDir: a.TargetDir,
		SourceDir: a.SourceDir,
		Suffix:    a.Config.Rules.Suffix,
		DryRun:    a.DryRun,
	}).Sync()
	if err != nil {
		return a.Fail(err)
	}

	return a.Renderer.RenderSync(result)
}
