package cli

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/matzehuels/nameplate/pkg/arrange"
	"github.com/matzehuels/nameplate/pkg/io"
)

// frameBuffer is how many controller frames may queue for the terminal.
const frameBuffer = 16

// boardCommand creates the board command, an interactive terminal board.
func (c *CLI) boardCommand() *cobra.Command {
	var (
		opts   boardOpts
		output string
	)

	cmd := &cobra.Command{
		Use:   "board [names...]",
		Short: "Open the interactive board in the terminal",
		Long: `Open the interactive board in the terminal.

The board fills the terminal and is re-arranged when the terminal is
resized, when 'r' is pressed, and on the configured interval.

Keys:
  tab / shift+tab   move focus between cards
  d                 pick up the focused card; arrows move it, d or enter drops it
  enter             edit the focused card's name; enter saves, esc cancels
  r                 re-arrange now
  q                 quit`,
		RunE: func(cmd *cobra.Command, args []string) error {
			list, err := opts.in.read(args, cmd.InOrStdin())
			if err != nil {
				return err
			}
			return c.runBoard(cmd.Context(), &opts, list, output)
		},
	}

	opts.addFlags(cmd)
	cmd.Flags().StringVarP(&output, "output", "o", "", "write the final board document to this file on exit")

	return cmd
}

func (c *CLI) runBoard(ctx context.Context, opts *boardOpts, list []string, output string) error {
	frames := make(chan arrange.Frame, frameBuffer)
	ctrl, seed, err := c.newController(opts, list, arrange.WithListener(frameSink(frames)))
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	go ctrl.Run(ctx)

	p := tea.NewProgram(NewBoardModel(ctrl, frames), tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return fmt.Errorf("run board: %w", err)
	}
	cancel()

	if output == "" {
		return nil
	}
	f := ctrl.Current()
	doc := io.Board{Width: f.Width, Height: f.Height, Strategy: f.Strategy, Seed: seed, Cards: f.Cards}
	if err := io.ExportJSON(doc, output); err != nil {
		return fmt.Errorf("write output %s: %w", output, err)
	}
	printSuccess("Board saved")
	printFile(output)
	return nil
}
