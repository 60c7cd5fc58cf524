package engine

import (
	_ "embed"
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"

	"compact-chess/board"
)

//go:embed book.csv
var defaultBookData string

// OpeningBook is a fixed catalog of known move sequences. When the exact
// prefix of moves played so far matches a line, the line's next move is
// returned without searching.
type OpeningBook struct {
	lines map[string][]string // line name -> coordinate moves
}

// LoadBook parses a CSV book: one record per line, name followed by a
// space-separated move sequence.
func LoadBook(r io.Reader) (*OpeningBook, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = 2
	bk := &OpeningBook{lines: make(map[string][]string)}
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("opening book: %w", err)
		}
		moves := strings.Fields(record[1])
		if len(moves) == 0 {
			return nil, fmt.Errorf("opening book: line %q has no moves", record[0])
		}
		bk.lines[record[0]] = moves
	}
	return bk, nil
}

// DefaultBook returns the embedded catalog. The embedded data is fixed, so a
// parse failure is a build defect and panics.
func DefaultBook() *OpeningBook {
	bk, err := LoadBook(strings.NewReader(defaultBookData))
	if err != nil {
		panic(err)
	}
	return bk
}

// Lines returns the catalog's line names in sorted order.
func (bk *OpeningBook) Lines() []string {
	names := maps.Keys(bk.lines)
	slices.Sort(names)
	return names
}

// Probe returns the catalog's continuation for the board's played-move
// prefix. It only answers for games that started at the standard position,
// and the candidate is validated against the generator before being
// returned. Ties between lines sharing a prefix resolve to the first line in
// name order, keeping lookups deterministic.
func (bk *OpeningBook) Probe(b *board.Board) (board.Move, bool) {
	if !b.FromStartPos() {
		return 0, false
	}
	played := b.History()
	for _, name := range bk.Lines() {
		line := bk.lines[name]
		if len(line) <= len(played) {
			continue
		}
		if !prefixMatches(line, played) {
			continue
		}
		next, err := b.ParseMove(line[len(played)])
		if err != nil {
			continue
		}
		for _, legal := range b.GenerateMoves() {
			if legal == next {
				return next, true
			}
		}
	}
	return 0, false
}

func prefixMatches(line []string, played []board.Move) bool {
	for i, m := range played {
		if line[i] != m.String() {
			return false
		}
	}
	return true
}
