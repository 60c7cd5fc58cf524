package board

import "fmt"

// Move packs a half-move into 16 bits:
//
//	bits [0:6)   source square
//	bits [6:12)  destination square
//	bits [12:16) piece code that occupied the destination before the move
//
// The captured piece is recorded at encode time from the live board; it is
// what makes Undo possible without a separate capture stack. Piece codes are
// at most 14, so the 4-bit field never overflows.
type Move uint16

const (
	moveFromShift = 0
	moveToShift   = 6
	moveCapShift  = 12
)

// NewMove constructs a Move from its components.
func NewMove(from, to Square, captured Piece) Move {
	return Move(uint16(from&0x3F) |
		uint16(to&0x3F)<<moveToShift |
		uint16(captured&0xF)<<moveCapShift)
}

// From returns the source square of the move.
func (m Move) From() Square { return Square(m >> moveFromShift & 0x3F) }

// To returns the destination square of the move.
func (m Move) To() Square { return Square(m >> moveToShift & 0x3F) }

// Captured returns the piece code that occupied the destination before the
// move, or NoPiece.
func (m Move) Captured() Piece { return Piece(m >> moveCapShift & 0xF) }

// IsCapture reports whether the move took a piece.
func (m Move) IsCapture() bool { return m.Captured() != NoPiece }

// String renders the move in coordinate form, e.g. "e2e4". Files run a-h
// left to right, ranks 8-1 top to bottom.
func (m Move) String() string {
	from := m.From()
	to := m.To()
	return string([]byte{
		'a' + byte(from%8), '8' - byte(from/8),
		'a' + byte(to%8), '8' - byte(to/8),
	})
}

// ParseSquare converts a two-character coordinate such as "e2" to a square.
func ParseSquare(s string) (Square, error) {
	if len(s) != 2 {
		return 0, fmt.Errorf("square %q: want two characters", s)
	}
	file := int(s[0] - 'a')
	rank := int('8' - s[1])
	if file < 0 || file > 7 || rank < 0 || rank > 7 {
		return 0, fmt.Errorf("square %q: out of range", s)
	}
	return Square(rank*8 + file), nil
}

// ParseMove parses a 4-character coordinate move like "e2e4" against the
// given board, filling the captured field from the live position. The move is
// not checked for legality beyond square validity and from != to.
func (b *Board) ParseMove(s string) (Move, error) {
	if len(s) != 4 {
		return 0, fmt.Errorf("move %q: want four characters", s)
	}
	from, err := ParseSquare(s[:2])
	if err != nil {
		return 0, fmt.Errorf("move %q: %w", s, err)
	}
	to, err := ParseSquare(s[2:])
	if err != nil {
		return 0, fmt.Errorf("move %q: %w", s, err)
	}
	if from == to {
		return 0, fmt.Errorf("move %q: source equals destination", s)
	}
	return NewMove(from, to, b.squares[to]), nil
}

// Encode builds a move between two squares, capturing whatever currently
// occupies the destination.
func (b *Board) Encode(from, to Square) Move {
	return NewMove(from, to, b.squares[to])
}
