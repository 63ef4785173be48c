package completion

// Message constants
const (
	MsgShort = "Generate shell completion script"
	MsgLong  = `Generate the autocompletion script for rulesync for the specified shell.

  bash:        source <(rulesync completion bash)
  zsh:         rulesync completion zsh > "${fpath[1]}/_rulesync"
  fish:        rulesync completion fish | source
  powershell:  rulesync completion powershell | Out-String | Invoke-Expression`

	MsgErrUnknownShell = "unknown shell %q (supported: bash, zsh, fish, powershell)"
)
