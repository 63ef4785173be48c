package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateConfigContent(t *testing.T) {
	content := GenerateConfigContent()

	assert.Contains(t, content, "[paths]")
	assert.Contains(t, content, `# target = ".cursor/rules"`)
	assert.Contains(t, content, `# suffix = ".mdc"`)

	for _, line := range strings.Split(content, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") || strings.HasPrefix(trimmed, "[") {
			continue
		}
		t.Errorf("uncommented value line: %q", line)
	}
}

func TestGenerateEffectiveConfigRoundTrip(t *testing.T) {
	cfg := &Config{
		Paths: PathsConfig{Target: "rules", Source: "vendor/shared"},
		Rules: RulesConfig{Suffix: ".md"},
		Hints: HintsConfig{MissingSource: "clone it"},
	}

	content, err := GenerateEffectiveConfig(cfg)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(content, "# rulesync configuration"))

	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, ".rulesync.toml"), []byte(content), 0644))

	loaded, err := Load(LoadOptions{ProjectRoot: root, SkipEnv: true})
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}
