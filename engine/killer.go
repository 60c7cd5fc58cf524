package engine

import "compact-chess/board"

// KillerTable remembers two quiet moves per ply that caused beta cutoffs.
type KillerTable struct {
	moves [MaxPly + 1][2]board.Move
}

// Insert records a killer at the given ply, shifting the previous first slot.
func (k *KillerTable) Insert(move board.Move, ply int8) {
	if move != k.moves[ply][0] {
		k.moves[ply][1] = k.moves[ply][0]
		k.moves[ply][0] = move
	}
}

// IsKiller reports whether the move is one of the ply's killers.
func (k *KillerTable) IsKiller(move board.Move, ply int8) bool {
	return move == k.moves[ply][0] || move == k.moves[ply][1]
}

// Clear empties the table.
func (k *KillerTable) Clear() {
	k.moves = [MaxPly + 1][2]board.Move{}
}
