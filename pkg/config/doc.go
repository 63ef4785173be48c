// Package config handles configuration management for rulesync.
//
// Configuration is layered with koanf, lowest precedence first:
//
//  1. embedded defaults (embedded/defaults.toml)
//  2. the project file: .rulesync.toml, rulesync.toml or .rulesync.yaml
//     in the project root, or an explicit --config file
//  3. RULESYNC_* environment variables (RULESYNC_PATHS_TARGET, ...)
//  4. command-line flag overrides
//
// With no file, no environment and no flags the defaults reproduce the
// classic layout: links in .cursor/rules pointing into
// .cursor/shared/rules, for files ending in .mdc.
package config
