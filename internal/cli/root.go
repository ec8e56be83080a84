// Package cli implements the nameplate command-line interface.
//
// The commands deal names onto a deck, arrange the cards on a board,
// render boards and print sheets, and run the live board either in the
// terminal or behind a local HTTP view. The CLI is built using cobra and
// logs through charmbracelet/log.
//
// # Commands
//
// The main commands are:
//   - deal: Shuffle names onto cards
//   - layout: Arrange cards and write a board document
//   - render: Generate SVG, PNG, PDF or DOT from a board document
//   - print: Generate the A4 print sheet
//   - board: Interactive terminal board
//   - serve: Live board in the browser
//   - config, cache: Manage settings and the artifact cache
//
// # Configuration
//
// Settings come from ~/.config/nameplate/config.toml, a .env file and
// NAMEPLATE_* variables; command flags override them.
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging. Loggers are
// passed through context.Context to allow structured progress tracking.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/nameplate/pkg/buildinfo"
)

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "Nameplate arranges name cards on a board",
		Long:         `Nameplate deals a list of names onto playing-card slots, arranges them as grid, circle or spiral layouts on a board, and renders the board for screens and for printing folded table nameplates.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			installLogHooks(c.Logger)
			if skipConfig(cmd) {
				return nil
			}
			return c.loadConfig()
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default: "+defaultConfigHint+")")

	// Register all subcommands
	root.AddCommand(c.dealCommand())
	root.AddCommand(c.layoutCommand())
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.printCommand())
	root.AddCommand(c.boardCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.configCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

const defaultConfigHint = "$XDG_CONFIG_HOME/nameplate/config.toml"

// skipConfig reports whether cmd must run without loading settings, so that
// a broken config file can still be inspected and replaced.
func skipConfig(cmd *cobra.Command) bool {
	for p := cmd; p != nil; p = p.Parent() {
		switch p.Name() {
		case "config", "completion":
			return true
		}
	}
	return false
}
