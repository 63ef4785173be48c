package version

// Message constants
const (
	MsgShort         = "Print version information"
	MsgLong          = "Print detailed version information including commit hash and build date"
	MsgVersionFormat = "rulesync %s (commit %s, built %s)\n"
)
