package status

import (
	"github.com/arthur-debert/rulesync/cmd/rulesync/internal/app"
	"github.com/arthur-debert/rulesync/pkg/logging"
	"github.com/arthur-debert/rulesync/pkg/status"
	"github.com/spf13/cobra"
)

// NewCommand creates the status command
func NewCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "status",
		Short:   MsgShort,
		Long:    MsgLong,
		Example: MsgExample,
		GroupID: "core",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			logging.LogCommand(cmd.Name(), args)

			a, err := app.FromCommand(cmd)
			if err != nil {
				return err
			}

			report, err := status.NewChecker(a.FS, a.TargetDir, a.SourceDir, a.Config.Rules.Suffix).Check()
			if err != nil {
				return a.Fail(err)
			}
			return a.Renderer.RenderStatus(report)
		},
	}
}
