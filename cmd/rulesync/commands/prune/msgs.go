package prune

// Message constants
const (
	MsgShort = "Remove links to rules that no longer exist"
	MsgLong  = `Remove symlinks in the rules directory that point into the shared rules
directory at a file that is gone, typically a rule deleted or renamed
upstream. Links pointing anywhere else are never touched.`
	MsgExample = `  rulesync prune --dry-run   # List dangling links
  rulesync prune             # Remove them`
)
