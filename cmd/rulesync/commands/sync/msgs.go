package sync

// Message constants
const (
	MsgShort = "Link every shared rule into the rules directory"
	MsgLong  = `Create one relative symlink in the rules directory for every file ending
in the rule suffix directly inside the shared rules directory.

An existing symlink with the same name is replaced. A regular file or
directory with the same name is left alone and counted as skipped.

The rules directory must exist. A missing shared rules directory is not an
error: a hint on how to add it is printed instead.`
	MsgExample = `  rulesync sync                         # Link .cursor/shared/rules/*.mdc into .cursor/rules
  rulesync sync --dry-run               # Show what would be linked
  rulesync sync --source vendor/rules   # Use another shared rules directory`
)
