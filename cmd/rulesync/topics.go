package rulesync

import (
	"embed"
	"io/fs"
	"os"

	"github.com/arthur-debert/rulesync/pkg/cobrax/topics"
	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

//go:embed topics/*.md
var topicFiles embed.FS

// initTopics installs `rulesync help <topic>`. Markdown is styled only
// when stdout is a terminal.
func initTopics(rootCmd *cobra.Command) {
	source, err := fs.Sub(topicFiles, "topics")
	if err != nil {
		log.Warn().Err(err).Msg("help topics unavailable")
		return
	}

	renderer := topics.NewPlainGlamourRenderer()
	if isatty.IsTerminal(os.Stdout.Fd()) {
		renderer = topics.NewGlamourRenderer()
	}

	if _, err := topics.Initialize(rootCmd, source, topics.Options{
		Extensions: []string{".md"},
		Renderer:   renderer,
	}); err != nil {
		log.Warn().Err(err).Msg("help topics unavailable")
	}
}
