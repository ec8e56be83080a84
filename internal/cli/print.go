package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/nameplate/pkg/errors"
	"github.com/matzehuels/nameplate/pkg/io"
	"github.com/matzehuels/nameplate/pkg/render"
	"github.com/matzehuels/nameplate/pkg/render/sink"
	"github.com/matzehuels/nameplate/pkg/render/styles"
)

const formatHTML = "html"

type printOpts struct {
	format  string
	output  string
	columns int
}

// printCommand creates the print command, which writes the A4 print sheet
// of a board document.
func (c *CLI) printCommand() *cobra.Command {
	opts := printOpts{format: formatHTML}

	cmd := &cobra.Command{
		Use:   "print <board.json>",
		Short: "Write the A4 print sheet for a board",
		Long: `Write the A4 print sheet for a board.

The sheet holds one folded-plate panel per card on A4 landscape pages,
laid out in columns. Only the names are printed; positions on the board
are ignored. HTML is meant for the browser's print dialog, SVG and PDF
for direct printing.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := errors.ValidateFormat(opts.format, formatHTML, formatSVG, formatPDF); err != nil {
				return err
			}
			if opts.columns == 0 {
				opts.columns = c.config().Print.Columns
			}
			return c.runPrint(cmd.Context(), args[0], &opts)
		},
	}

	cmd.Flags().StringVar(&opts.format, "format", opts.format, "sheet format: html, svg, pdf")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default: <input>.print.<format>)")
	cmd.Flags().IntVar(&opts.columns, "columns", 0, "plates per row (default from config)")

	return cmd
}

func (c *CLI) runPrint(ctx context.Context, input string, opts *printOpts) error {
	doc, err := io.ImportJSON(input)
	if err != nil {
		return err
	}
	font, err := c.loadFont()
	if err != nil {
		return err
	}
	cfg := c.config()
	style, err := styles.ByName(cfg.Render.Style, cfg.Render.FontFamily)
	if err != nil {
		return err
	}

	sheetOpts := []sink.PrintOption{sink.WithColumns(opts.columns), sink.WithPrintStyle(style)}
	if font != nil {
		sheetOpts = append(sheetOpts, sink.WithPrintFont(font))
	}
	if cfg.Render.FontFamily != "" {
		sheetOpts = append(sheetOpts, sink.WithPrintFontFamily(cfg.Render.FontFamily))
	}

	var data []byte
	switch opts.format {
	case formatHTML:
		data, err = sink.RenderPrintHTML(doc.Cards, sheetOpts...)
	case formatSVG:
		data = sink.RenderPrintSVG(doc.Cards, sheetOpts...)
	case formatPDF:
		data, err = render.ToPDF(ctx, sink.RenderPrintSVG(doc.Cards, sheetOpts...))
	}
	if err != nil {
		return err
	}

	path := opts.output
	if path == "" {
		path = basePath("", input) + ".print." + opts.format
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}

	pages := sink.ComputePrintLayout(len(doc.Cards), opts.columns).Pages
	printSuccess("Print sheet ready")
	printFile(path)
	printDimParts([]string{fmt.Sprintf("%d plates", len(doc.Cards)), fmt.Sprintf("%d pages", pages)})
	return nil
}
