// Package pkg holds the libraries behind nameplate, a board of name cards.
//
// # Overview
//
// Each name is dealt onto a card drawn from a shuffled 52-card deck, and
// the cards are arranged on a container with one of three strategies
// (grid, circular, spiral). Boards re-arrange on resize, on a timer and on
// request, and cards can be dragged and renamed in place.
//
// # Architecture
//
//	names / free text
//	       ↓
//	  [names]  tokenize, format, validate
//	       ↓
//	  [deck]   shuffle and deal onto cards
//	       ↓
//	  [arrange] controller: strategy, entry poses, gestures ([interact])
//	       ↓          uses [layout] for target poses
//	  Frame ──→ renderers: [render/sink] (SVG, print sheet, DOT),
//	                       [render] (PDF, PNG), [io] (board.json)
//
// # Quick Start
//
//	import (
//	    "github.com/matzehuels/nameplate/pkg/arrange"
//	    "github.com/matzehuels/nameplate/pkg/random"
//	    "github.com/matzehuels/nameplate/pkg/render/sink"
//	)
//
//	ctrl := arrange.New(arrange.WithRandom(random.New(42)))
//	if _, err := ctrl.Load([]string{"Ada", "Grace", "Linus"}); err != nil {
//	    return err
//	}
//	f, _ := ctrl.Resize(1280, 800)
//	svg := sink.RenderSVG(f.Cards, f.Width, f.Height)
//
// # Packages
//
// Domain:
//   - [card]: the card record and its pose
//   - [deck]: the 52-card identity pool, shuffling and dealing
//   - [names]: name parsing and display formatting
//   - [layout]: grid, circular and spiral target poses
//   - [arrange]: the board controller and its frames
//   - [interact]: the drag and edit state machine
//   - [random]: the injectable random source
//
// Output:
//   - [render/sink]: SVG board, printable sheet and graphviz DOT
//   - [render/styles]: plate appearance
//   - [render]: PDF and PNG conversion
//   - [fonts]: font stacks and embedded font faces
//   - [io]: board.json documents and name list files
//
// Support:
//   - [cache]: rendered artifact cache (file, redis, null)
//   - [config]: nameplate.toml, .env and environment overlays
//   - [errors]: coded errors and input validation
//   - [observability]: arrange, render, cache and HTTP hooks
//   - [buildinfo]: version stamping
//
// The CLI and HTTP server live under internal/ and are not importable.
package pkg
