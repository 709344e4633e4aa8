// Package cli implements the packman command-line interface.
//
// # Commands
//
// The main commands are:
//   - scan: Detect package managers in source directories and write one
//     BDIO document per project
//   - types: List the supported package-manager types
//   - completion: Generate shell completion scripts
//
// # Configuration
//
// scan reads an optional TOML file (--config, or packman.toml in the working
// directory when present). Flags given on the command line win over the
// file.
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging. Logs go to
// stderr; the summary of produced files goes to stdout.
package cli

import (
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/packman/pkg/buildinfo"
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
	// Out receives user-facing output. Nil means os.Stdout.
	Out io.Writer
}

// New creates a new CLI instance logging to w.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          buildinfo.Name,
		Short:        "packman exports package-manager dependency graphs as BDIO documents",
		Long:         `packman inspects source directories, detects the package managers used to build the projects in them, and writes one Black Duck I/O (BDIO) bill of materials per project.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
	}

	root.SetVersionTemplate(buildinfo.Template())

	root.AddCommand(c.scanCommand())
	root.AddCommand(c.typesCommand())
	root.AddCommand(c.completionCommand())

	return root
}

func (c *CLI) out() io.Writer {
	if c.Out == nil {
		return os.Stdout
	}
	return c.Out
}
