package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/matzehuels/nameplate/pkg/card"
	"github.com/matzehuels/nameplate/pkg/layout"
)

// Board is the on-disk form of an arranged card set.
type Board struct {
	ID       string          `json:"board_id,omitempty"`
	Width    float64         `json:"width"`
	Height   float64         `json:"height"`
	Strategy layout.Strategy `json:"strategy"`
	Seed     uint64          `json:"seed,omitempty"`
	Cards    []card.Card     `json:"cards"`
}

// WriteJSON encodes doc as indented JSON and writes it to w.
// The output can be re-imported with [ReadJSON].
func WriteJSON(doc Board, w io.Writer) error {
	if doc.Cards == nil {
		doc.Cards = []card.Card{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// ExportJSON writes doc to a JSON file at path.
func ExportJSON(doc Board, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := WriteJSON(doc, f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
