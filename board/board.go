// Package board holds the position representation for the engine: an 8-bit
// piece code per square, a reversible move log, a compact move codec and a
// pseudo-legal move generator.
//
// The rule set is a subset of chess: no castling, en passant,
// promotion or check filtering. A stricter generator can be substituted as
// long as it keeps the GenerateMoves contract.
package board

// Piece encodes a piece in 4 bits: the kind in the low 3 bits and the color
// in bit 3 (set means White, the side that moves first).
type Piece uint8

const (
	NoPiece Piece = 0

	BlackPawn   Piece = 1
	BlackKnight Piece = 2
	BlackBishop Piece = 3
	BlackRook   Piece = 4
	BlackQueen  Piece = 5
	BlackKing   Piece = 6

	WhitePawn   Piece = 1 | 8
	WhiteKnight Piece = 2 | 8
	WhiteBishop Piece = 3 | 8
	WhiteRook   Piece = 4 | 8
	WhiteQueen  Piece = 5 | 8
	WhiteKing   Piece = 6 | 8
)

// PieceType is the colorless kind of a piece, used for table lookups.
type PieceType uint8

const (
	PieceTypeNone   PieceType = 0
	PieceTypePawn   PieceType = 1
	PieceTypeKnight PieceType = 2
	PieceTypeBishop PieceType = 3
	PieceTypeRook   PieceType = 4
	PieceTypeQueen  PieceType = 5
	PieceTypeKing   PieceType = 6
)

// Type returns the colorless kind of the piece.
func (p Piece) Type() PieceType { return PieceType(p & 7) }

// IsWhite reports whether the color bit is set. NoPiece is not white.
func (p Piece) IsWhite() bool { return p >= 8 }

// Color returns the side that owns the piece. NoPiece is reported as Black.
func (p Piece) Color() Color {
	if p.IsWhite() {
		return White
	}
	return Black
}

// PieceFromType combines a colorless kind with a side.
func PieceFromType(c Color, pt PieceType) Piece {
	if pt == PieceTypeNone {
		return NoPiece
	}
	p := Piece(pt)
	if c == White {
		p |= 8
	}
	return p
}

// Color identifies a side. White moves first.
type Color uint8

const (
	White Color = 0
	Black Color = 1
)

// Other returns the opposing side.
func (c Color) Other() Color { return c ^ 1 }

func (c Color) String() string {
	if c == White {
		return "white"
	}
	return "black"
}

// Square indexes a board cell 0-63. Square 0 is a8: files a-h run left to
// right, ranks 8-1 top to bottom, matching the coordinate move notation.
type Square int

// SquareValid reports whether s addresses a board cell.
func SquareValid(s Square) bool { return s >= 0 && s < 64 }

// File returns the file index 0-7 (0 = a).
func (s Square) File() int { return int(s) % 8 }

// Rank returns the row index 0-7 counted from the top (0 = rank 8).
func (s Square) Rank() int { return int(s) / 8 }

func (s Square) String() string {
	return string([]byte{'a' + byte(s.File()), '8' - byte(s.Rank())})
}

// HistoryCap bounds the move log. It must accommodate the deepest ply any
// search or self-play loop will reach; running past it is a configuration
// error, not something to truncate silently.
const HistoryCap = 1024

// Board is the single mutable position state. It is not safe for concurrent
// use; parallel searches must each own a private copy.
type Board struct {
	squares    [64]Piece
	history    [HistoryCap]Move
	historyLen int
	sideToMove Color
	key        uint64

	// set by NewGame, cleared by ParseFEN; opening-book lookups only make
	// sense when the move log really starts at the standard position
	fromStart bool
}

var startBackRank = [8]PieceType{
	PieceTypeRook, PieceTypeKnight, PieceTypeBishop, PieceTypeQueen,
	PieceTypeKing, PieceTypeBishop, PieceTypeKnight, PieceTypeRook,
}

// NewGame returns a board set up in the standard starting arrangement with
// White to move.
func NewGame() *Board {
	b := &Board{fromStart: true}
	for f := 0; f < 8; f++ {
		b.squares[f] = PieceFromType(Black, startBackRank[f])
		b.squares[8+f] = BlackPawn
		b.squares[48+f] = WhitePawn
		b.squares[56+f] = PieceFromType(White, startBackRank[f])
	}
	b.key = b.ComputeZobrist()
	return b
}

// PieceAt returns the piece on a square.
func (b *Board) PieceAt(sq Square) Piece { return b.squares[sq] }

// SideToMove reports which side is to play. The field is toggled on every
// Apply/Undo, so it always equals the parity of the move count for games
// started with NewGame.
func (b *Board) SideToMove() Color { return b.sideToMove }

// HistoryLen returns the number of half-moves currently applied.
func (b *Board) HistoryLen() int { return b.historyLen }

// History returns the applied moves, oldest first. The slice aliases the
// internal log and must not be mutated.
func (b *Board) History() []Move { return b.history[:b.historyLen] }

// LastMove returns the most recently applied move.
func (b *Board) LastMove() (Move, bool) {
	if b.historyLen == 0 {
		return 0, false
	}
	return b.history[b.historyLen-1], true
}

// FromStartPos reports whether the move log began at the standard starting
// position (true for NewGame boards, false after ParseFEN).
func (b *Board) FromStartPos() bool { return b.fromStart }

// Hash returns the incrementally maintained zobrist key. It covers piece
// placement and the side to move, not the move history.
func (b *Board) Hash() uint64 { return b.key }

// Apply plays a move: the destination takes the source piece and the source
// is emptied. No legality check is performed. Every Apply must be paired with
// exactly one Undo on every code path, including pruning early-outs; the
// search's correctness depends on that discipline.
func (b *Board) Apply(m Move) {
	if b.historyLen >= HistoryCap {
		panic("board: move history capacity exceeded")
	}
	from, to := m.From(), m.To()
	moving := b.squares[from]
	if captured := b.squares[to]; captured != NoPiece {
		b.key ^= zobristPiece[captured][to]
	}
	b.key ^= zobristPiece[moving][from] ^ zobristPiece[moving][to]
	b.squares[to] = moving
	b.squares[from] = NoPiece
	b.history[b.historyLen] = m
	b.historyLen++
	b.sideToMove = b.sideToMove.Other()
	b.key ^= zobristSide
}

// Undo reverts the most recent Apply, restoring the captured piece from the
// move's own encoding. Calling it with an empty history is a broken
// apply/undo pairing and panics.
func (b *Board) Undo() Move {
	if b.historyLen == 0 {
		panic("board: Undo with no applied moves")
	}
	b.historyLen--
	m := b.history[b.historyLen]
	from, to, captured := m.From(), m.To(), m.Captured()
	moving := b.squares[to]
	b.key ^= zobristPiece[moving][to] ^ zobristPiece[moving][from]
	if captured != NoPiece {
		b.key ^= zobristPiece[captured][to]
	}
	b.squares[from] = moving
	b.squares[to] = captured
	b.sideToMove = b.sideToMove.Other()
	b.key ^= zobristSide
	return m
}

// Copy returns an independent clone of the board, move log included.
func (b *Board) Copy() *Board {
	nb := *b
	return &nb
}

// Mirror returns the color-mirrored counterpart of the position: every piece
// swaps color and reflects through square 63-s, and the side to move flips.
// The move log is not carried over. Mirroring is the symmetry the evaluator
// must be antisymmetric under.
func (b *Board) Mirror() *Board {
	nb := &Board{sideToMove: b.sideToMove.Other()}
	for sq := Square(0); sq < 64; sq++ {
		p := b.squares[sq]
		if p == NoPiece {
			continue
		}
		nb.squares[63-sq] = PieceFromType(p.Color().Other(), p.Type())
	}
	nb.key = nb.ComputeZobrist()
	return nb
}

// String renders the board as an 8x8 grid with rank and file labels,
// uppercase for White.
func (b *Board) String() string {
	buf := make([]byte, 0, 180)
	for r := 0; r < 8; r++ {
		buf = append(buf, '8'-byte(r), ' ')
		for f := 0; f < 8; f++ {
			buf = append(buf, ' ', pieceChar(b.squares[r*8+f]))
		}
		buf = append(buf, '\n')
	}
	buf = append(buf, ' ', ' ')
	for f := 0; f < 8; f++ {
		buf = append(buf, ' ', 'a'+byte(f))
	}
	return string(buf)
}
