package rulesync

// Message constants
const (
	MsgRootShort = "Link shared Cursor rules into a project"
	MsgRootLong  = `rulesync keeps .cursor/rules in sync with a shared rules checkout
(usually a git submodule at .cursor/shared) by creating one relative
symlink per .mdc rule file.

Run without a subcommand it behaves like "rulesync sync".

Directories and the rule suffix come from, lowest precedence first: the
built-in defaults, .rulesync.toml (or rulesync.toml, .rulesync.yaml) in the
current directory, RULESYNC_* environment variables and the flags below.`
	MsgRootExample = `  rulesync                 # Link every shared rule
  rulesync status          # See what is linked, stale or missing
  rulesync prune           # Remove links to deleted rules
  rulesync --dry-run -v    # Preview with logging`
)
