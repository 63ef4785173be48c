package rulesync

import (
	"github.com/arthur-debert/rulesync/cmd/rulesync/commands/completion"
	"github.com/arthur-debert/rulesync/cmd/rulesync/commands/genconfig"
	"github.com/arthur-debert/rulesync/cmd/rulesync/commands/prune"
	"github.com/arthur-debert/rulesync/cmd/rulesync/commands/status"
	synccmd "github.com/arthur-debert/rulesync/cmd/rulesync/commands/sync"
	"github.com/arthur-debert/rulesync/cmd/rulesync/commands/version"
	"github.com/arthur-debert/rulesync/cmd/rulesync/internal/app"
	iversion "github.com/arthur-debert/rulesync/internal/version"
	"github.com/arthur-debert/rulesync/pkg/logging"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

// NewRootCmd creates and returns the root command. Run without a
// subcommand it syncs, so `rulesync` alone does what the sync script did.
func NewRootCmd() *cobra.Command {
	var flags app.Flags

	rootCmd := &cobra.Command{
		Use:     "rulesync",
		Short:   MsgRootShort,
		Long:    MsgRootLong,
		Example: MsgRootExample,
		Version: iversion.Version,
		Args:    cobra.NoArgs,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logging.SetupLogger(flags.Verbosity)
			log.Debug().Str("command", cmd.Name()).Msg("Command started")
		},
		RunE:          synccmd.Run,
		SilenceUsage:  true,
		SilenceErrors: true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		DisableAutoGenTag: true,
	}

	flags.Bind(rootCmd.PersistentFlags())

	rootCmd.AddGroup(&cobra.Group{
		ID:    "core",
		Title: "COMMANDS:",
	})
	rootCmd.AddGroup(&cobra.Group{
		ID:    "misc",
		Title: "MISC:",
	})

	rootCmd.AddCommand(synccmd.NewCommand())
	rootCmd.AddCommand(status.NewCommand())
	rootCmd.AddCommand(prune.NewCommand())
	rootCmd.AddCommand(genconfig.NewCommand())
	rootCmd.AddCommand(version.NewCommand())
	rootCmd.AddCommand(completion.NewCommand())

	initTopics(rootCmd)

	return rootCmd
}

// Execute runs the root command with args and reports any error that the
// command did not already print. It returns the process exit status.
func Execute(rootCmd *cobra.Command, args []string) int {
	rootCmd.SetArgs(args)

	cmd, err := rootCmd.ExecuteC()
	if err != nil {
		if cmd == nil {
			cmd = rootCmd
		}
		app.ReportError(cmd, err)
		return 1
	}
	return 0
}
