package io

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/matzehuels/nameplate/pkg/errors"
	"github.com/matzehuels/nameplate/pkg/names"
)

// maxNamesInput caps how much text ReadNames will consume.
const maxNamesInput = 1 << 20

// ReadJSON decodes a board document from r and validates it.
//
// ReadJSON returns an INVALID_FORMAT error if:
//   - The JSON is malformed
//   - Width or height is not a positive finite number
//   - The strategy is set but not a known layout strategy
//   - Two cards share an id
//
// An empty strategy is accepted and left empty. ReadJSON does not close r.
func ReadJSON(r io.Reader) (Board, error) {
	var doc Board
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return Board{}, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode board")
	}
	if err := errors.ValidateDimensions(doc.Width, doc.Height); err != nil {
		return Board{}, errors.Wrap(errors.ErrCodeInvalidFormat, err, "board geometry")
	}
	if doc.Strategy != "" && !doc.Strategy.Valid() {
		return Board{}, errors.New(errors.ErrCodeInvalidFormat, "unknown strategy %q", doc.Strategy)
	}
	seen := make(map[int]bool, len(doc.Cards))
	for i, c := range doc.Cards {
		if seen[c.ID] {
			return Board{}, errors.New(errors.ErrCodeInvalidFormat, "card %d: duplicate id %d", i, c.ID)
		}
		seen[c.ID] = true
	}
	return doc, nil
}

// ImportJSON reads a board document from the file at path.
// A missing file is reported as FILE_NOT_FOUND.
func ImportJSON(path string) (Board, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Board{}, errors.Wrap(errors.ErrCodeFileNotFound, err, "board %s", path)
		}
		return Board{}, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	doc, err := ReadJSON(f)
	if err != nil {
		return Board{}, fmt.Errorf("%s: %w", path, err)
	}
	return doc, nil
}

// ReadNames reads free text from r and returns the names in it, in order.
// Blank lines and separators are skipped.
func ReadNames(r io.Reader) ([]string, error) {
	var b strings.Builder
	sc := bufio.NewScanner(io.LimitReader(r, maxNamesInput))
	sc.Buffer(make([]byte, 0, 64*1024), maxNamesInput)
	for sc.Scan() {
		b.WriteString(sc.Text())
		b.WriteByte('\n')
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read names: %w", err)
	}
	return names.Tokenize(b.String()), nil
}
