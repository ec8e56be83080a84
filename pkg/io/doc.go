// Package io provides JSON import and export for board documents and
// plain-text reading of name lists.
//
// # Board Format
//
// A board document is the arranged card set plus the container it was
// laid out in:
//
//	{
//	  "board_id": "6f1c2b0e-...",
//	  "width": 1280,
//	  "height": 800,
//	  "strategy": "circular",
//	  "seed": 42,
//	  "cards": [
//	    {"id": 17, "value": "Ada", "x": 640, "y": 80, "rotation": -90,
//	     "scale": 1, "z_index": 0, "suit": "D", "rank": "5"}
//	  ]
//	}
//
// board_id and seed are optional. Card keys are snake_case, as in
// [card.Card].
//
// # Import
//
// [ImportJSON] reads a document from a file path and [ReadJSON] from any
// io.Reader. Both reject documents with duplicate card ids, non-positive
// geometry or an unknown strategy, with an INVALID_FORMAT error naming the
// offending field.
//
// # Export
//
// [ExportJSON] and [WriteJSON] write indented JSON that [ReadJSON] accepts
// back unchanged.
//
// # Names
//
// [ReadNames] reads free text (one name per line, or separated by
// punctuation) and returns the tokenized names.
//
// [card.Card]: github.com/matzehuels/nameplate/pkg/card.Card
package io
