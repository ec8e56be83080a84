package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/nameplate/pkg/arrange"
	"github.com/matzehuels/nameplate/pkg/errors"
	"github.com/matzehuels/nameplate/pkg/io"
	"github.com/matzehuels/nameplate/pkg/layout"
)

// boardOpts are the flags shared by commands that build a live board.
type boardOpts struct {
	in       namesInput
	strategy string
	width    float64
	height   float64
	seed     uint64
	overflow string
}

func (o *boardOpts) addFlags(cmd *cobra.Command) {
	o.in.addFlags(cmd)
	cmd.Flags().StringVarP(&o.strategy, "strategy", "s", "", "layout strategy: grid, circular, spiral (default: random per arrangement)")
	cmd.Flags().Float64Var(&o.width, "width", 0, "board width (default from config)")
	cmd.Flags().Float64Var(&o.height, "height", 0, "board height (default from config)")
	cmd.Flags().Uint64Var(&o.seed, "seed", 0, "random seed (0 = config or fresh)")
	cmd.Flags().StringVar(&o.overflow, "overflow", "", "policy for more than 52 names: cap, reject")
}

// newController builds a controller from flags and config, loads names
// into it and returns it with the seed used.
func (c *CLI) newController(o *boardOpts, list []string, extra ...arrange.Option) (*arrange.Controller, uint64, error) {
	cfg := c.config()

	strategy := cfg.Strategy()
	if o.strategy != "" {
		s, err := layout.ParseStrategy(o.strategy)
		if err != nil {
			return nil, 0, err
		}
		strategy = s
	}
	policy, err := c.overflowPolicy(o.overflow)
	if err != nil {
		return nil, 0, err
	}
	rng, seed := c.newRandom(o.seed)

	opts := []arrange.Option{
		arrange.WithRandom(rng),
		arrange.WithOverflow(policy),
		arrange.WithInterval(cfg.Board.Interval.Duration),
		arrange.WithLogger(c.Logger),
	}
	if strategy != "" {
		opts = append(opts, arrange.WithStrategy(strategy))
	}
	ctrl := arrange.New(append(opts, extra...)...)

	dropped, err := ctrl.Load(list)
	if err != nil {
		return nil, 0, err
	}
	if dropped > 0 {
		printWarning("%d names did not fit on the deck and were dropped", dropped)
	}
	return ctrl, seed, nil
}

// size returns the flag size, falling back to the configured one.
func (c *CLI) size(o *boardOpts) (float64, float64, error) {
	w, h := o.width, o.height
	if w == 0 {
		w = c.config().Board.Width
	}
	if h == 0 {
		h = c.config().Board.Height
	}
	if err := errors.ValidateDimensions(w, h); err != nil {
		return 0, 0, err
	}
	return w, h, nil
}

// layoutCommand creates the layout command, which arranges names once and
// writes the board document.
func (c *CLI) layoutCommand() *cobra.Command {
	var (
		opts   boardOpts
		output string
	)

	cmd := &cobra.Command{
		Use:   "layout [names...]",
		Short: "Arrange names on a board and write the board document",
		Long: `Arrange names on a board and write the board document.

The names are dealt onto cards and arranged once with the chosen strategy
(or a random one). The result is a board.json document that 'render' and
'print' read.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			list, err := opts.in.read(args, cmd.InOrStdin())
			if err != nil {
				return err
			}
			return c.runLayout(cmd.Context(), &opts, list, output)
		},
	}

	opts.addFlags(cmd)
	cmd.Flags().StringVarP(&output, "output", "o", "board.json", "output file")

	return cmd
}

// runLayout deals and arranges the names and writes the document.
func (c *CLI) runLayout(ctx context.Context, opts *boardOpts, list []string, output string) error {
	logger := loggerFromContext(ctx)
	prog := newProgress(logger)

	w, h, err := c.size(opts)
	if err != nil {
		return err
	}
	ctrl, seed, err := c.newController(opts, list)
	if err != nil {
		return err
	}
	f, _ := ctrl.Resize(w, h)

	doc := io.Board{
		Width:    f.Width,
		Height:   f.Height,
		Strategy: f.Strategy,
		Seed:     seed,
		Cards:    f.Cards,
	}
	if err := io.ExportJSON(doc, output); err != nil {
		return fmt.Errorf("write output %s: %w", output, err)
	}
	prog.done(fmt.Sprintf("Arranged %d cards", len(f.Cards)))

	printSuccess("Layout complete")
	printFile(output)
	printStats(len(f.Cards), string(f.Strategy), seed)
	printNewline()
	printNextStep("Render", appName+" render "+output)
	return nil
}
