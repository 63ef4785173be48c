package genconfig

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/arthur-debert/rulesync/cmd/rulesync/internal/app"
	"github.com/arthur-debert/rulesync/pkg/config"
	"github.com/arthur-debert/rulesync/pkg/errors"
	"github.com/arthur-debert/rulesync/pkg/logging"
	"github.com/spf13/cobra"
)

// DefaultFileName is the file written by --write
const DefaultFileName = ".rulesync.toml"

// NewCommand creates the genconfig command
func NewCommand() *cobra.Command {
	var (
		write    bool
		defaults bool
		force    bool
	)

	cmd := &cobra.Command{
		Use:     "genconfig",
		Short:   MsgShort,
		Long:    MsgLong,
		Example: MsgExample,
		GroupID: "misc",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			logging.LogCommand(cmd.Name(), args)

			content, err := generate(cmd, defaults)
			if err != nil {
				return err
			}

			if !write {
				_, err := fmt.Fprint(cmd.OutOrStdout(), content)
				return err
			}

			path, err := filepath.Abs(DefaultFileName)
			if err != nil {
				return errors.Wrap(err, errors.ErrFileWrite, "cannot resolve config path")
			}
			if _, err := os.Stat(path); err == nil && !force {
				return errors.Newf(errors.ErrFileWrite, MsgErrExists, path).WithDetail("path", path)
			}
			if err := os.WriteFile(path, []byte(content), 0644); err != nil {
				return errors.Wrapf(err, errors.ErrFileWrite, "cannot write %s", path)
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), MsgWritten, path)
			return err
		},
	}

	cmd.Flags().BoolVarP(&write, "write", "w", false, MsgFlagWrite)
	cmd.Flags().BoolVar(&defaults, "defaults", false, MsgFlagDefaults)
	cmd.Flags().BoolVar(&force, "force", false, MsgFlagForce)

	return cmd
}

func generate(cmd *cobra.Command, defaults bool) (string, error) {
	if defaults {
		return config.GenerateConfigContent(), nil
	}

	a, err := app.FromCommand(cmd)
	if err != nil {
		return "", err
	}
	return config.GenerateEffectiveConfig(a.Config)
}
