// Package cli implements the statecraft command-line interface.
//
// This package provides commands for running input words through finite
// automata, minimizing and pruning machines, rendering state diagrams, and
// managing the artifact cache. The CLI is built using cobra and supports
// verbose logging via the charmbracelet/log library.
//
// # Commands
//
// The main commands are:
//   - run: Feed an input word to a machine and report accept/reject
//   - minimize: Rewrite a machine as its minimal equivalent DFA
//   - render: Generate DOT, SVG, or PNG state diagrams
//   - divisible: Build a divisibility-checker DFA
//   - simulate: Step through a machine interactively
//   - show: Print a machine's transition table
//   - cache: Manage the rendered-artifact cache
package cli

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/statecraft/pkg/buildinfo"
	"github.com/matzehuels/statecraft/pkg/cache"
	"github.com/matzehuels/statecraft/pkg/pipeline"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for directories and display.
const appName = "statecraft"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          "statecraft",
		Short:        "Statecraft builds, minimizes, and renders finite automata",
		Long:         `Statecraft is a CLI tool for working with finite-state machines: run input words, prune unreachable states, minimize to the smallest equivalent DFA, and render state diagrams.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
	}

	root.SetVersionTemplate(buildinfo.Template())

	// Register all subcommands
	root.AddCommand(c.runCommand())
	root.AddCommand(c.minimizeCommand())
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.divisibleCommand())
	root.AddCommand(c.simulateCommand())
	root.AddCommand(c.showCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner for CLI use.
func (c *CLI) newRunner(noCache bool) (*pipeline.Runner, error) {
	cache, err := newCache(noCache)
	if err != nil {
		return nil, err
	}
	return pipeline.NewRunner(cache, c.Logger), nil
}

func newCache(noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	dir, err := cacheDir()
	if err != nil {
		return cache.NewNullCache(), nil
	}
	return cache.NewFileCache(dir)
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the cache directory using XDG standard (~/.cache/statecraft/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}

// =============================================================================
// Flag Helpers
// =============================================================================

// parseFormats parses a comma-separated format string into a slice.
func parseFormats(s string) []string {
	if s == "" {
		return []string{pipeline.FormatSVG}
	}
	return strings.Split(s, ",")
}

// parseSymbols splits a CLI input word into machine symbols. Words may be
// comma-separated ("1,0,1") or plain strings of one-rune symbols ("101").
func parseSymbols(args []string) []string {
	var out []string
	for _, arg := range args {
		if strings.Contains(arg, ",") {
			for _, s := range strings.Split(arg, ",") {
				if s != "" {
					out = append(out, s)
				}
			}
			continue
		}
		for _, r := range arg {
			out = append(out, string(r))
		}
	}
	return out
}
