package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/nameplate/pkg/cache"
	"github.com/matzehuels/nameplate/pkg/errors"
	"github.com/matzehuels/nameplate/pkg/fonts"
	"github.com/matzehuels/nameplate/pkg/io"
	"github.com/matzehuels/nameplate/pkg/observability"
	"github.com/matzehuels/nameplate/pkg/render"
	"github.com/matzehuels/nameplate/pkg/render/sink"
	"github.com/matzehuels/nameplate/pkg/render/styles"
)

const (
	formatSVG = "svg"
	formatPNG = "png"
	formatPDF = "pdf"
	formatDOT = "dot"

	engineGraphviz = "graphviz" // PNG drawn by the embedded graphviz from the DOT form
	engineRSVG     = "rsvg"     // PNG rasterized from the styled SVG by rsvg-convert
)

// validFormats is the set of supported output formats.
var validFormats = map[string]bool{formatSVG: true, formatPNG: true, formatPDF: true, formatDOT: true}

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	output  string   // output file path (or base path for multiple outputs)
	formats []string // output formats: svg, png, pdf, dot
	style   string   // visual style: paper or simple
	engine  string   // PNG engine: graphviz or rsvg
	scale   float64  // rsvg PNG scale factor
	noCache bool     // bypass the artifact cache
}

// renderCommand creates the render command for generating board artifacts.
func (c *CLI) renderCommand() *cobra.Command {
	var formatsStr string
	opts := renderOpts{engine: engineGraphviz, scale: 2}

	cmd := &cobra.Command{
		Use:   "render <board.json>",
		Short: "Render a board document to SVG, PNG, PDF or DOT",
		Long: `Render a board document to SVG, PNG, PDF or DOT.

PNG is drawn by the embedded graphviz engine from the board's DOT form
(--engine graphviz), or rasterized from the styled SVG with rsvg-convert
(--engine rsvg). PDF always goes through rsvg-convert. PNG and PDF results
are kept in the artifact cache.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.formats = parseFormats(formatsStr)
			if err := validateFormats(opts.formats); err != nil {
				return err
			}
			if opts.style == "" {
				opts.style = c.config().Render.Style
			}
			if opts.engine != engineGraphviz && opts.engine != engineRSVG {
				return errors.New(errors.ErrCodeInvalidInput, "invalid engine: %s (must be 'graphviz' or 'rsvg')", opts.engine)
			}
			return c.runRender(cmd.Context(), args[0], &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): svg (default), png, pdf, dot (comma-separated)")
	cmd.Flags().StringVar(&opts.style, "style", "", "visual style: paper, simple (default from config)")
	cmd.Flags().StringVar(&opts.engine, "engine", opts.engine, "PNG engine: graphviz, rsvg")
	cmd.Flags().Float64Var(&opts.scale, "scale", opts.scale, "PNG scale factor (rsvg engine)")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the artifact cache")

	return cmd
}

// validateFormats checks that all requested formats are valid.
func validateFormats(formats []string) error {
	for _, f := range formats {
		if !validFormats[f] {
			return errors.New(errors.ErrCodeInvalidFormat, "invalid format: %s (must be 'svg', 'png', 'pdf' or 'dot')", f)
		}
	}
	return nil
}

// basePath derives the base output path from the output and input file paths.
// If output is empty, it strips the extension from input.
// If output has a format extension (.svg, .pdf, etc.), it strips that extension.
func basePath(output, input string) string {
	if output == "" {
		return strings.TrimSuffix(input, filepath.Ext(input))
	}
	ext := filepath.Ext(output)
	if validFormats[strings.TrimPrefix(ext, ".")] {
		return strings.TrimSuffix(output, ext)
	}
	return output
}

// outputPath returns where format is written: opts.output itself for a
// single format, otherwise base.format.
func outputPath(input, format string, opts *renderOpts) string {
	if len(opts.formats) == 1 && opts.output != "" {
		return opts.output
	}
	return basePath(opts.output, input) + "." + format
}

// boardRenderer renders one board document to the supported formats.
type boardRenderer struct {
	doc   io.Board
	style styles.Style
	font  *fonts.Font
	opts  *renderOpts
	cache cache.Cache
	keys  cache.Keyer
}

// runRender loads the board document and writes every requested format.
func (c *CLI) runRender(ctx context.Context, input string, opts *renderOpts) error {
	logger := loggerFromContext(ctx)
	logger.Infof("Rendering %s", input)

	doc, err := io.ImportJSON(input)
	if err != nil {
		return err
	}
	logger.Debugf("Loaded board: %d cards, %vx%v", len(doc.Cards), doc.Width, doc.Height)

	font, err := c.loadFont()
	if err != nil {
		return err
	}
	family := c.config().Render.FontFamily
	style, err := styles.ByName(opts.style, family)
	if err != nil {
		return err
	}
	store, err := c.newCache(ctx, opts.noCache)
	if err != nil {
		return fmt.Errorf("open cache: %w", err)
	}
	defer store.Close()

	r := &boardRenderer{doc: doc, style: style, font: font, opts: opts, cache: store, keys: cache.NewDefaultKeyer()}

	hooks := observability.Render()
	hooks.OnRenderStart(ctx, opts.formats)
	start := time.Now()

	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Rendering %s...", strings.Join(opts.formats, ", ")))
	spinner.Start()
	written := make(map[string]bool, len(opts.formats))
	var renderErr error
	for _, format := range opts.formats {
		path := outputPath(input, format, opts)
		cached, err := r.write(ctx, format, path)
		if err != nil {
			renderErr = fmt.Errorf("%s: %w", format, err)
			break
		}
		written[path] = cached
	}
	hooks.OnRenderComplete(ctx, opts.formats, time.Since(start), renderErr)

	if renderErr != nil {
		spinner.StopWithError("Render failed")
		return renderErr
	}
	spinner.Stop()
	if ctx.Err() != nil {
		return ctx.Err()
	}

	printSuccess("Rendered %d cards", len(doc.Cards))
	for _, format := range opts.formats {
		path := outputPath(input, format, opts)
		printArtifact(path, written[path])
	}
	return nil
}

// write renders format to path and reports whether it came from the cache.
func (r *boardRenderer) write(ctx context.Context, format, path string) (bool, error) {
	data, cached, err := r.render(ctx, format)
	if err != nil {
		return false, err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return false, fmt.Errorf("write %s: %w", path, err)
	}
	loggerFromContext(ctx).Debugf("Generated %s: %d bytes", path, len(data))
	return cached, nil
}

func (r *boardRenderer) render(ctx context.Context, format string) ([]byte, bool, error) {
	switch format {
	case formatSVG:
		return r.svg(), false, nil
	case formatDOT:
		return []byte(r.dot()), false, nil
	case formatPNG:
		if r.opts.engine == engineGraphviz {
			dot := r.dot()
			return r.cached(ctx, dot, cache.ArtifactKeyOpts{Format: formatPNG, Style: engineGraphviz}, func() ([]byte, error) {
				return sink.RenderDOT(ctx, dot, formatPNG)
			})
		}
		svg := r.svg()
		return r.cached(ctx, string(svg), cache.ArtifactKeyOpts{Format: formatPNG, Style: engineRSVG, Scale: r.opts.scale}, func() ([]byte, error) {
			return render.ToPNG(ctx, svg, r.opts.scale)
		})
	case formatPDF:
		svg := r.svg()
		return r.cached(ctx, string(svg), cache.ArtifactKeyOpts{Format: formatPDF}, func() ([]byte, error) {
			return render.ToPDF(ctx, svg)
		})
	}
	return nil, false, errors.New(errors.ErrCodeInvalidFormat, "unknown format: %s", format)
}

func (r *boardRenderer) svg() []byte {
	opts := []sink.SVGOption{sink.WithStyle(r.style)}
	if r.font != nil {
		opts = append(opts, sink.WithEmbeddedFont(r.font))
	}
	return sink.RenderSVG(r.doc.Cards, r.doc.Width, r.doc.Height, opts...)
}

func (r *boardRenderer) dot() string {
	return sink.ToDOT(r.doc.Cards, r.doc.Width, r.doc.Height)
}

// cached looks up the artifact of source in the cache and produces it on
// a miss.
func (r *boardRenderer) cached(ctx context.Context, source string, key cache.ArtifactKeyOpts, produce func() ([]byte, error)) ([]byte, bool, error) {
	hit := true
	data, err := cache.Fetch(ctx, r.cache, r.keys.ArtifactKey(cache.Hash([]byte(source)), key), key.Format, cacheTTL, func() ([]byte, error) {
		hit = false
		return produce()
	})
	return data, hit, err
}

// cacheTTL bounds how long CLI-rendered artifacts are kept.
const cacheTTL = 30 * 24 * time.Hour
