package board

// Offset tables for the linearized 64-cell board. Offsets alone wrap across
// the board edges, so every consumer re-checks rank/file deltas.
var (
	knightOffsets = [8]int{-17, -15, -10, -6, 6, 10, 15, 17}
	kingOffsets   = [8]int{-9, -8, -7, -1, 1, 7, 8, 9}
	bishopDirs    = [4]int{-9, -7, 7, 9}
	rookDirs      = [4]int{-8, -1, 1, 8}
	queenDirs     = [8]int{-9, -8, -7, -1, 1, 7, 8, 9}
)

// GenerateMoves returns the pseudo-legal moves for the side to move. The
// order is unspecified but deterministic for a given position, which keeps
// searches reproducible.
func (b *Board) GenerateMoves() []Move {
	return b.GenerateMovesInto(make([]Move, 0, 64))
}

// GenerateMovesInto appends the side to move's pseudo-legal moves to dst and
// returns the extended slice. Useful for callers that reuse buffers.
func (b *Board) GenerateMovesInto(dst []Move) []Move {
	return b.generateInto(dst, false)
}

// GenerateCaptures returns only the moves that land on an occupied square,
// the move subset the quiescence search explores.
func (b *Board) GenerateCaptures() []Move {
	return b.generateInto(make([]Move, 0, 16), true)
}

// HasMoves reports whether the side to move has at least one move.
func (b *Board) HasMoves() bool {
	var buf [8]Move
	for sq := Square(0); sq < 64; sq++ {
		p := b.squares[sq]
		if p == NoPiece || p.Color() != b.sideToMove {
			continue
		}
		if len(b.pieceMovesInto(buf[:0], sq, p, false)) > 0 {
			return true
		}
	}
	return false
}

// CountMoves returns the number of pseudo-legal moves available to the given
// color regardless of whose turn it is. Used by the optional mobility
// evaluation term.
func (b *Board) CountMoves(c Color) int {
	var buf [32]Move
	n := 0
	for sq := Square(0); sq < 64; sq++ {
		p := b.squares[sq]
		if p == NoPiece || p.Color() != c {
			continue
		}
		n += len(b.pieceMovesInto(buf[:0], sq, p, false))
	}
	return n
}

func (b *Board) generateInto(dst []Move, capturesOnly bool) []Move {
	for sq := Square(0); sq < 64; sq++ {
		p := b.squares[sq]
		if p == NoPiece || p.Color() != b.sideToMove {
			continue
		}
		dst = b.pieceMovesInto(dst, sq, p, capturesOnly)
	}
	return dst
}

func (b *Board) pieceMovesInto(dst []Move, sq Square, p Piece, capturesOnly bool) []Move {
	switch p.Type() {
	case PieceTypePawn:
		dst = b.pawnMovesInto(dst, sq, p, capturesOnly)
	case PieceTypeKnight:
		dst = b.stepperMovesInto(dst, sq, p, knightOffsets[:], capturesOnly, isKnightStep)
	case PieceTypeBishop:
		dst = b.sliderMovesInto(dst, sq, p, bishopDirs[:], capturesOnly)
	case PieceTypeRook:
		dst = b.sliderMovesInto(dst, sq, p, rookDirs[:], capturesOnly)
	case PieceTypeQueen:
		dst = b.sliderMovesInto(dst, sq, p, queenDirs[:], capturesOnly)
	case PieceTypeKing:
		dst = b.stepperMovesInto(dst, sq, p, kingOffsets[:], capturesOnly, isKingStep)
	}
	return dst
}

// isKnightStep checks the L-shape: the rank and file deltas must sum to 3
// with neither zero. Offsets that wrap across a board edge fail this.
func isKnightStep(from, to Square) bool {
	dr := from.Rank() - to.Rank()
	df := from.File() - to.File()
	if dr < 0 {
		dr = -dr
	}
	if df < 0 {
		df = -df
	}
	return dr+df == 3 && dr != 0 && df != 0
}

// isKingStep accepts only the 8 adjacent cells; wrapped offsets show up as a
// rank or file delta greater than one.
func isKingStep(from, to Square) bool {
	dr := from.Rank() - to.Rank()
	df := from.File() - to.File()
	if dr < 0 {
		dr = -dr
	}
	if df < 0 {
		df = -df
	}
	return dr <= 1 && df <= 1
}

func (b *Board) stepperMovesInto(dst []Move, sq Square, p Piece, offsets []int, capturesOnly bool, stepOK func(from, to Square) bool) []Move {
	for _, off := range offsets {
		to := sq + Square(off)
		if !SquareValid(to) || !stepOK(sq, to) {
			continue
		}
		target := b.squares[to]
		if target == NoPiece {
			if !capturesOnly {
				dst = append(dst, NewMove(sq, to, NoPiece))
			}
		} else if target.Color() != p.Color() {
			dst = append(dst, NewMove(sq, to, target))
		}
	}
	return dst
}

func (b *Board) sliderMovesInto(dst []Move, sq Square, p Piece, dirs []int, capturesOnly bool) []Move {
	for _, dir := range dirs {
		cur := sq
		for {
			to := cur + Square(dir)
			if !SquareValid(to) {
				break
			}
			// A single step never changes the file by more than one;
			// a bigger jump means the offset wrapped around an edge.
			df := to.File() - cur.File()
			if df < -1 || df > 1 {
				break
			}
			target := b.squares[to]
			if target == NoPiece {
				if !capturesOnly {
					dst = append(dst, NewMove(sq, to, NoPiece))
				}
				cur = to
				continue
			}
			if target.Color() != p.Color() {
				dst = append(dst, NewMove(sq, to, target))
			}
			break
		}
	}
	return dst
}

func (b *Board) pawnMovesInto(dst []Move, sq Square, p Piece, capturesOnly bool) []Move {
	dir := 8
	startRank := 1
	if p.IsWhite() {
		dir = -8
		startRank = 6
	}

	// Pushes: one step onto an empty square, plus the two-step leap from the
	// color's starting rank when both squares are free.
	if !capturesOnly {
		to := sq + Square(dir)
		if SquareValid(to) && b.squares[to] == NoPiece {
			dst = append(dst, NewMove(sq, to, NoPiece))
			if sq.Rank() == startRank {
				leap := sq + Square(2*dir)
				if b.squares[leap] == NoPiece {
					dst = append(dst, NewMove(sq, leap, NoPiece))
				}
			}
		}
	}

	// Diagonal captures. The file must differ by exactly one or the offset
	// wrapped across the a/h edge.
	for _, off := range [2]int{dir - 1, dir + 1} {
		to := sq + Square(off)
		if !SquareValid(to) {
			continue
		}
		df := to.File() - sq.File()
		if df != 1 && df != -1 {
			continue
		}
		target := b.squares[to]
		if target != NoPiece && target.Color() != p.Color() {
			dst = append(dst, NewMove(sq, to, target))
		}
	}
	return dst
}

// Perft counts leaf positions reachable in depth half-moves by repeated
// generate/apply/undo. It is the regression oracle for the generator: the
// counts are fixed for this rule set, not classical chess perft values
// beyond the plies where the rule sets coincide.
func Perft(b *Board, depth int) uint64 {
	if depth <= 0 {
		return 1
	}
	moves := b.GenerateMoves()
	if depth == 1 {
		return uint64(len(moves))
	}
	var nodes uint64
	for _, m := range moves {
		b.Apply(m)
		nodes += Perft(b, depth-1)
		b.Undo()
	}
	return nodes
}

// PerftDivide returns the per-root-move leaf counts at the given depth.
func PerftDivide(b *Board, depth int) map[Move]uint64 {
	out := make(map[Move]uint64)
	for _, m := range b.GenerateMoves() {
		b.Apply(m)
		out[m] = Perft(b, depth-1)
		b.Undo()
	}
	return out
}
