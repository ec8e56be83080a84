package server

import (
	"context"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/matzehuels/nameplate/pkg/arrange"
	"github.com/matzehuels/nameplate/pkg/cache"
	"github.com/matzehuels/nameplate/pkg/card"
	"github.com/matzehuels/nameplate/pkg/errors"
	"github.com/matzehuels/nameplate/pkg/interact"
	"github.com/matzehuels/nameplate/pkg/io"
	"github.com/matzehuels/nameplate/pkg/render"
	"github.com/matzehuels/nameplate/pkg/render/sink"
)

func (s *Server) boardSVG(f arrange.Frame) []byte {
	opts := []sink.SVGOption{sink.WithStyle(s.opts.Style)}
	if f.Target != nil {
		opts = append(opts, sink.WithSelected(*f.Target))
	}
	if f.Mode == interact.Editing.String() {
		opts = append(opts, sink.WithEditor(f.Scratch))
	}
	if s.opts.Font != nil {
		opts = append(opts, sink.WithEmbeddedFont(s.opts.Font))
	}
	if s.opts.FontFamily != "" {
		opts = append(opts, sink.WithFontFamily(s.opts.FontFamily))
	}
	w, h := f.Width, f.Height
	if w <= 0 || h <= 0 {
		w, h = 1280, 800
	}
	return sink.RenderSVG(f.Cards, w, h, opts...)
}

func (s *Server) handleSVG(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "image/svg+xml")
	w.Header().Set("Cache-Control", "no-store")
	w.Write(s.boardSVG(s.ctrl.Current()))
}

func (s *Server) handleJSON(w http.ResponseWriter, r *http.Request) {
	f := s.ctrl.Current()
	doc := io.Board{
		ID:       s.boardID,
		Width:    f.Width,
		Height:   f.Height,
		Strategy: f.Strategy,
		Cards:    f.Cards,
	}
	w.Header().Set("Content-Type", "application/json")
	if err := io.WriteJSON(doc, w); err != nil {
		s.logger.Error("Write board JSON", "err", err)
	}
}

func (s *Server) handleDOT(w http.ResponseWriter, r *http.Request) {
	f := s.ctrl.Current()
	w.Header().Set("Content-Type", "text/vnd.graphviz; charset=utf-8")
	w.Write([]byte(sink.ToDOT(f.Cards, f.Width, f.Height)))
}

func (s *Server) handlePNG(w http.ResponseWriter, r *http.Request) {
	f := s.ctrl.Current()
	dot := sink.ToDOT(f.Cards, f.Width, f.Height)
	data, err := s.artifact(r.Context(), dot, "png", "graphviz", func() ([]byte, error) {
		return sink.RenderDOT(r.Context(), dot, "png")
	})
	if err != nil {
		writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Write(data)
}

func (s *Server) handlePDF(w http.ResponseWriter, r *http.Request) {
	svg := s.boardSVG(s.ctrl.Current())
	data, err := s.artifact(r.Context(), string(svg), "pdf", "", func() ([]byte, error) {
		return render.ToPDF(r.Context(), svg)
	})
	if err != nil {
		writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/pdf")
	w.Write(data)
}

// artifact returns a rendered artifact of source from the cache, producing
// and storing it on a miss.
func (s *Server) artifact(ctx context.Context, source, format, style string, produce func() ([]byte, error)) ([]byte, error) {
	key := s.keys.ArtifactKey(cache.Hash([]byte(source)), cache.ArtifactKeyOpts{Format: format, Style: style})
	return cache.Fetch(ctx, s.opts.Cache, key, format, s.opts.CacheTTL, produce)
}

func (s *Server) handlePrint(w http.ResponseWriter, r *http.Request) {
	opts := []sink.PrintOption{sink.WithColumns(s.opts.Columns)}
	if s.opts.Font != nil {
		opts = append(opts, sink.WithPrintFont(s.opts.Font))
	}
	if s.opts.FontFamily != "" {
		opts = append(opts, sink.WithPrintFontFamily(s.opts.FontFamily))
	}
	page, err := sink.RenderPrintHTML(s.ctrl.Snapshot(), opts...)
	if err != nil {
		writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(page)
}

func (s *Server) handleRefresh(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.ctrl.Refresh())
}

type resizeRequest struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

func (s *Server) handleResize(w http.ResponseWriter, r *http.Request) {
	var req resizeRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeError(w, err)
		return
	}
	if err := errors.ValidateDimensions(req.Width, req.Height); err != nil {
		writeError(w, err)
		return
	}
	f, ok := s.ctrl.Resize(req.Width, req.Height)
	if !ok {
		f = s.ctrl.Current()
	}
	writeJSON(w, http.StatusOK, f)
}

type dragRequest struct {
	DX float64 `json:"dx"`
	DY float64 `json:"dy"`
}

// handleDrag applies a whole drag gesture (start, then drop at the given
// displacement) and returns the moved card.
func (s *Server) handleDrag(w http.ResponseWriter, r *http.Request) {
	id, err := cardID(r)
	if err != nil {
		writeError(w, err)
		return
	}
	var req dragRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeError(w, err)
		return
	}
	f, err := s.ctrl.Drag(id, req.DX, req.DY)
	if err != nil {
		writeError(w, err)
		return
	}
	i := card.IndexOf(f.Cards, id)
	if i < 0 {
		writeError(w, errors.New(errors.ErrCodeCardNotFound, "no card with id %d", id))
		return
	}
	writeJSON(w, http.StatusOK, f.Cards[i])
}

func (s *Server) handleSelect(w http.ResponseWriter, r *http.Request) {
	id, err := cardID(r)
	if err != nil {
		writeError(w, err)
		return
	}
	s.respond(w)(s.ctrl.Select(id))
}

type editRequest struct {
	Value string `json:"value"`
}

func (s *Server) handleEdit(w http.ResponseWriter, r *http.Request) {
	var req editRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeError(w, err)
		return
	}
	if req.Value != "" {
		if err := errors.ValidateName(req.Value); err != nil {
			writeError(w, err)
			return
		}
	}
	s.respond(w)(s.ctrl.Edit(req.Value))
}

func (s *Server) handleDone(w http.ResponseWriter, r *http.Request) {
	s.respond(w)(s.ctrl.Done())
}

func (s *Server) handleCancel(w http.ResponseWriter, r *http.Request) {
	s.respond(w)(s.ctrl.Cancel())
}

// respond writes a gesture result as JSON.
func (s *Server) respond(w http.ResponseWriter) func(arrange.Frame, error) {
	return func(f arrange.Frame, err error) {
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, f)
	}
}

func cardID(r *http.Request) (int, error) {
	raw := chi.URLParam(r, "id")
	id, err := strconv.Atoi(raw)
	if err != nil {
		return 0, errors.New(errors.ErrCodeInvalidInput, "card id %q is not a number", raw)
	}
	return id, nil
}
