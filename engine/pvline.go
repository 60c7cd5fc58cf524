package engine

import (
	"strings"

	"compact-chess/board"
)

// PVLine tracks the principal variation found under a node.
type PVLine struct {
	Moves []board.Move
}

// Clear truncates the line.
func (pv *PVLine) Clear() { pv.Moves = pv.Moves[:0] }

// Update sets the line to move followed by the child node's line.
func (pv *PVLine) Update(move board.Move, child PVLine) {
	pv.Moves = append(pv.Moves[:0], move)
	pv.Moves = append(pv.Moves, child.Moves...)
}

// GetPVMove returns the first move of the line, or 0 when empty.
func (pv *PVLine) GetPVMove() board.Move {
	if len(pv.Moves) == 0 {
		return 0
	}
	return pv.Moves[0]
}

// Clone returns an independent copy of the line.
func (pv *PVLine) Clone() PVLine {
	return PVLine{Moves: append([]board.Move(nil), pv.Moves...)}
}

func (pv *PVLine) String() string {
	parts := make([]string, len(pv.Moves))
	for i, m := range pv.Moves {
		parts[i] = m.String()
	}
	return strings.Join(parts, " ")
}
