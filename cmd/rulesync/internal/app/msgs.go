package app

// Flag descriptions
const (
	MsgFlagVerbose = "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)"
	MsgFlagDryRun  = "Preview changes without touching any link"
	MsgFlagConfig  = "Config file (default: .rulesync.toml, rulesync.toml or .rulesync.yaml in the current directory)"
	MsgFlagTarget  = "Directory that receives the links (default .cursor/rules)"
	MsgFlagSource  = "Shared rules directory the links point into (default .cursor/shared/rules)"
	MsgFlagSuffix  = "Suffix of rule files (default .mdc)"
	MsgFlagFormat  = "Output format: auto, term, text or json"
)
