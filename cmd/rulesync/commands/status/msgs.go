package status

// Message constants
const (
	MsgShort = "Show how each shared rule is linked"
	MsgLong  = `Report, without changing anything, the state of every shared rule:

  linked    symlink pointing at the shared rule
  stale     symlink pointing somewhere else (sync replaces it)
  missing   nothing with that name (sync creates it)
  conflict  a regular file or directory uses the name (sync skips it)
  error     the name could not be inspected`
	MsgExample = `  rulesync status
  rulesync status --format json`
)
