package prune

import (
	"github.com/arthur-debert/rulesync/cmd/rulesync/internal/app"
	"github.com/arthur-debert/rulesync/pkg/logging"
	"github.com/arthur-debert/rulesync/pkg/state"
	"github.com/spf13/cobra"
)

// NewCommand creates the prune command
func NewCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "prune",
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

			result, err := state.NewLinkDetector(a.FS, a.TargetDir, a.SourceDir).Prune(a.DryRun)
			if err != nil {
				return a.Fail(err)
			}
			return a.Renderer.RenderPrune(result)
		},
	}
}
