package genconfig

// Message constants
const (
	MsgShort = "Generate a rulesync configuration file"
	MsgLong  = `Print the effective configuration (defaults, config file, RULESYNC_*
environment and flags combined) as TOML. With --defaults the built-in
defaults are printed instead, commented out and ready to edit.

With -w the output is written to .rulesync.toml in the current directory.`
	MsgExample = `  rulesync genconfig                      # Print the effective configuration
  rulesync genconfig --defaults -w        # Write a commented template to .rulesync.toml
  rulesync genconfig --target rules -w    # Persist a custom target directory`

	MsgFlagWrite    = "Write the configuration to .rulesync.toml instead of stdout"
	MsgFlagDefaults = "Use the commented built-in defaults instead of the effective configuration"
	MsgFlagForce    = "Overwrite an existing .rulesync.toml"

	MsgWritten   = "Wrote %s\n"
	MsgErrExists = "%s already exists (use --force to overwrite)"
)
