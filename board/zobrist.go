package board

import "math/rand"

// Zobrist keys for each piece code on each square, plus a side-to-move key.
// The key covers board contents and side to move, never the move history, so
// transposed move orders hash identically.
var zobristPiece [15][64]uint64
var zobristSide uint64

func init() {
	// Fixed seed keeps hashes reproducible across runs and tests.
	rnd := rand.New(rand.NewSource(0x5EED))
	for p := 1; p < 15; p++ {
		for sq := 0; sq < 64; sq++ {
			zobristPiece[p][sq] = rnd.Uint64()
		}
	}
	zobristSide = rnd.Uint64()
}

// ComputeZobrist recalculates the hash from scratch. Apply/Undo maintain the
// key incrementally; this is the validation path.
func (b *Board) ComputeZobrist() uint64 {
	var key uint64
	for sq := 0; sq < 64; sq++ {
		if p := b.squares[sq]; p != NoPiece {
			key ^= zobristPiece[p][sq]
		}
	}
	if b.sideToMove == Black {
		key ^= zobristSide
	}
	return key
}
