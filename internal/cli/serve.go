package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/nameplate/internal/server"
	"github.com/matzehuels/nameplate/pkg/render/styles"
)

// serveCommand creates the serve command, which runs a live board behind a
// local HTTP view.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		opts    boardOpts
		addr    string
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   "serve [names...]",
		Short: "Serve a live board in the browser",
		Long: `Serve a live board in the browser.

The page shows the board and re-arranges it when the window is resized,
when 'r' is pressed, and on the configured interval. Cards can be dragged,
and double-clicking one opens it for editing. Every change is pushed to
open pages over a websocket.

PNG and PDF downloads are cached in redis when serve.redis_url is set.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			list, err := opts.in.read(args, cmd.InOrStdin())
			if err != nil {
				return err
			}
			if addr == "" {
				addr = c.config().Serve.Addr
			}
			return c.runServe(cmd.Context(), &opts, list, addr, noCache)
		},
	}

	opts.addFlags(cmd)
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the artifact cache")

	return cmd
}

func (c *CLI) runServe(ctx context.Context, opts *boardOpts, list []string, addr string, noCache bool) error {
	cfg := c.config()

	ctrl, seed, err := c.newController(opts, list)
	if err != nil {
		return err
	}
	if opts.width > 0 && opts.height > 0 {
		ctrl.Resize(opts.width, opts.height)
	}

	font, err := c.loadFont()
	if err != nil {
		return err
	}
	style, err := styles.ByName(cfg.Render.Style, cfg.Render.FontFamily)
	if err != nil {
		return err
	}
	store, err := c.newCache(ctx, noCache)
	if err != nil {
		return fmt.Errorf("open cache: %w", err)
	}
	defer store.Close()

	srv := server.New(ctrl, server.Options{
		Style:      style,
		FontFamily: cfg.Render.FontFamily,
		Font:       font,
		Columns:    cfg.Print.Columns,
		Cache:      store,
		CacheTTL:   cfg.Serve.CacheTTL.Duration,
		Logger:     c.Logger,
	})

	printSuccess("Board ready")
	printStats(len(ctrl.Snapshot()), string(cfg.Strategy()), seed)
	printKeyValue("Open", StyleLink.Render("http://"+addr+"/"))
	printKeyValue("Print", StyleLink.Render("http://"+addr+"/print"))
	printNewline()

	err = srv.Run(ctx, addr)
	if errors.Is(err, context.Canceled) {
		printInfo("Server stopped")
	}
	return err
}
