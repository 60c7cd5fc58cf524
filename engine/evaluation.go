package engine

import (
	"math/bits"

	"compact-chess/board"
)

// Base material values per piece kind. The king's constant only matters for
// treating a king capture as a terminal blunder; the generator does not
// filter self-check, so real mate detection happens via the search sentinel.
var PieceValue = [7]int32{0, 100, 320, 330, 500, 900, 20000}

// Tunable positional terms.
var (
	CenterBonus         int32 = 20
	DoubledPawnPenalty  int32 = 15
	IsolatedPawnPenalty int32 = 12
	ConnectedPawnBonus  int32 = 8
	KingOpenFilePenalty int32 = 25
	MobilityBonus       int32 = 2
)

// EnableMobility switches on the per-piece mobility term. It reruns move
// generation for both sides at every evaluated leaf, so it is off by default.
var EnableMobility bool

// d4, e4, d5, e5
const centerMask uint64 = 1<<27 | 1<<28 | 1<<35 | 1<<36

// Piece-square tables from White's point of view: index 0 is a8, so White
// reads them as printed and Black mirrors through 63-sq. Values are the
// classic simplified-evaluation tables.
var PSQT = [7][64]int32{
	board.PieceTypePawn: {
		0, 0, 0, 0, 0, 0, 0, 0,
		50, 50, 50, 50, 50, 50, 50, 50,
		10, 10, 20, 30, 30, 20, 10, 10,
		5, 5, 10, 25, 25, 10, 5, 5,
		0, 0, 0, 20, 20, 0, 0, 0,
		5, -5, -10, 0, 0, -10, -5, 5,
		5, 10, 10, -20, -20, 10, 10, 5,
		0, 0, 0, 0, 0, 0, 0, 0,
	},
	board.PieceTypeKnight: {
		-50, -40, -30, -30, -30, -30, -40, -50,
		-40, -20, 0, 0, 0, 0, -20, -40,
		-30, 0, 10, 15, 15, 10, 0, -30,
		-30, 5, 15, 20, 20, 15, 5, -30,
		-30, 0, 15, 20, 20, 15, 0, -30,
		-30, 5, 10, 15, 15, 10, 5, -30,
		-40, -20, 0, 5, 5, 0, -20, -40,
		-50, -40, -30, -30, -30, -30, -40, -50,
	},
	board.PieceTypeBishop: {
		-20, -10, -10, -10, -10, -10, -10, -20,
		-10, 0, 0, 0, 0, 0, 0, -10,
		-10, 0, 5, 10, 10, 5, 0, -10,
		-10, 5, 5, 10, 10, 5, 5, -10,
		-10, 0, 10, 10, 10, 10, 0, -10,
		-10, 10, 10, 10, 10, 10, 10, -10,
		-10, 5, 0, 0, 0, 0, 5, -10,
		-20, -10, -10, -10, -10, -10, -10, -20,
	},
	board.PieceTypeRook: {
		0, 0, 0, 0, 0, 0, 0, 0,
		5, 10, 10, 10, 10, 10, 10, 5,
		-5, 0, 0, 0, 0, 0, 0, -5,
		-5, 0, 0, 0, 0, 0, 0, -5,
		-5, 0, 0, 0, 0, 0, 0, -5,
		-5, 0, 0, 0, 0, 0, 0, -5,
		-5, 0, 0, 0, 0, 0, 0, -5,
		0, 0, 0, 5, 5, 0, 0, 0,
	},
	board.PieceTypeQueen: {
		-20, -10, -10, -5, -5, -10, -10, -20,
		-10, 0, 0, 0, 0, 0, 0, -10,
		-10, 0, 5, 5, 5, 5, 0, -10,
		-5, 0, 5, 5, 5, 5, 0, -5,
		0, 0, 5, 5, 5, 5, 0, -5,
		-10, 5, 5, 5, 5, 5, 0, -10,
		-10, 0, 5, 0, 0, 0, 0, -10,
		-20, -10, -10, -5, -5, -10, -10, -20,
	},
	board.PieceTypeKing: {
		-30, -40, -40, -50, -50, -40, -40, -30,
		-30, -40, -40, -50, -50, -40, -40, -30,
		-30, -40, -40, -50, -50, -40, -40, -30,
		-30, -40, -40, -50, -50, -40, -40, -30,
		-20, -30, -30, -40, -40, -30, -30, -20,
		-10, -20, -20, -20, -20, -20, -20, -10,
		20, 20, 0, 0, 0, 0, 20, 20,
		20, 30, 10, 0, 0, 10, 30, 20,
	},
}

// Evaluate scores the position for whoever moves next: the White-minus-Black
// sum, negated when Black is to move. Every component is antisymmetric under
// Mirror, so evaluate(P) == -evaluate(mirror(P)) holds for the total.
func Evaluate(b *board.Board) int32 {
	score := evaluateWhite(b)
	if b.SideToMove() == board.Black {
		score = -score
	}
	return score
}

// evaluateWhite computes the score from White's perspective.
func evaluateWhite(b *board.Board) int32 {
	var score int32

	// pawnFiles[side][file] counts pawns per file; pawnMask[side] is a
	// square bitmask of pawn placement for the structure terms.
	var pawnFiles [2][8]int
	var pawnMask [2]uint64
	kingFile := [2]int{-1, -1}

	for sq := board.Square(0); sq < 64; sq++ {
		p := b.PieceAt(sq)
		if p == board.NoPiece {
			continue
		}
		pt := p.Type()
		value := PieceValue[pt]
		if p.IsWhite() {
			value += PSQT[pt][sq]
		} else {
			value += PSQT[pt][63-sq]
		}
		if centerMask&(1<<uint(sq)) != 0 {
			value += CenterBonus
		}

		side := 0
		if p.Color() == board.Black {
			side = 1
		}
		switch pt {
		case board.PieceTypePawn:
			pawnFiles[side][sq.File()]++
			pawnMask[side] |= 1 << uint(sq)
		case board.PieceTypeKing:
			kingFile[side] = sq.File()
		}

		if p.IsWhite() {
			score += value
		} else {
			score -= value
		}
	}

	score += pawnStructure(pawnFiles[0], pawnMask[0], board.White)
	score -= pawnStructure(pawnFiles[1], pawnMask[1], board.Black)

	// A king on a file with no friendly pawn is exposed.
	if kingFile[0] >= 0 && pawnFiles[0][kingFile[0]] == 0 {
		score -= KingOpenFilePenalty
	}
	if kingFile[1] >= 0 && pawnFiles[1][kingFile[1]] == 0 {
		score += KingOpenFilePenalty
	}

	if EnableMobility {
		score += MobilityBonus * int32(b.CountMoves(board.White)-b.CountMoves(board.Black))
	}

	return score
}

// pawnStructure scores one side's doubled, isolated and connected pawns.
func pawnStructure(files [8]int, mask uint64, c board.Color) int32 {
	var score int32
	for f := 0; f < 8; f++ {
		n := files[f]
		if n == 0 {
			continue
		}
		if n > 1 {
			score -= DoubledPawnPenalty * int32(n-1)
		}
		neighbors := 0
		if f > 0 {
			neighbors += files[f-1]
		}
		if f < 7 {
			neighbors += files[f+1]
		}
		if neighbors == 0 {
			score -= IsolatedPawnPenalty * int32(n)
		}
	}

	// Connected: a pawn defended by a friendly pawn. White pawns attack
	// toward lower indices, so a white pawn on s is covered from s+7/s+9.
	rest := mask
	for rest != 0 {
		sq := board.Square(bits.TrailingZeros64(rest))
		rest &= rest - 1
		if pawnDefended(mask, sq, c) {
			score += ConnectedPawnBonus
		}
	}
	return score
}

func pawnDefended(mask uint64, sq board.Square, c board.Color) bool {
	offs := [2]int{7, 9}
	if c == board.Black {
		offs = [2]int{-7, -9}
	}
	for _, off := range offs {
		from := sq + board.Square(off)
		if !board.SquareValid(from) {
			continue
		}
		df := from.File() - sq.File()
		if df != 1 && df != -1 {
			continue
		}
		if mask&(1<<uint(from)) != 0 {
			return true
		}
	}
	return false
}
