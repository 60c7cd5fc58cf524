package board

import (
	"fmt"
	"strconv"
	"strings"
)

// FENStartPos is the standard initial position.
const FENStartPos = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w - - 0 1"

func pieceFromChar(ch byte) Piece {
	var pt PieceType
	switch ch | 0x20 {
	case 'p':
		pt = PieceTypePawn
	case 'n':
		pt = PieceTypeKnight
	case 'b':
		pt = PieceTypeBishop
	case 'r':
		pt = PieceTypeRook
	case 'q':
		pt = PieceTypeQueen
	case 'k':
		pt = PieceTypeKing
	default:
		return NoPiece
	}
	if ch >= 'A' && ch <= 'Z' {
		return PieceFromType(White, pt)
	}
	return PieceFromType(Black, pt)
}

func pieceChar(p Piece) byte {
	const chars = ".pnbrqk"
	if p == NoPiece {
		return '.'
	}
	ch := chars[p.Type()]
	if p.IsWhite() {
		ch -= 0x20
	}
	return ch
}

// ParseFEN builds a board from a FEN string. The castling and en-passant
// fields are accepted but ignored since they are outside this generator's
// rule set, and the move log starts empty, so FEN-loaded boards never match
// the opening book.
func ParseFEN(fen string) (*Board, error) {
	fields := strings.Fields(fen)
	if len(fields) < 2 {
		return nil, fmt.Errorf("fen %q: want at least piece placement and side to move", fen)
	}

	b := &Board{}
	ranks := strings.Split(fields[0], "/")
	if len(ranks) != 8 {
		return nil, fmt.Errorf("fen %q: want 8 ranks, got %d", fen, len(ranks))
	}
	for r, row := range ranks {
		f := 0
		for i := 0; i < len(row); i++ {
			ch := row[i]
			if ch >= '1' && ch <= '8' {
				f += int(ch - '0')
				continue
			}
			p := pieceFromChar(ch)
			if p == NoPiece {
				return nil, fmt.Errorf("fen %q: bad piece character %q", fen, ch)
			}
			if f > 7 {
				return nil, fmt.Errorf("fen %q: rank %d overflows", fen, 8-r)
			}
			b.squares[r*8+f] = p
			f++
		}
		if f != 8 {
			return nil, fmt.Errorf("fen %q: rank %d has %d files", fen, 8-r, f)
		}
	}

	switch fields[1] {
	case "w":
		b.sideToMove = White
	case "b":
		b.sideToMove = Black
	default:
		return nil, fmt.Errorf("fen %q: bad side to move %q", fen, fields[1])
	}

	b.key = b.ComputeZobrist()
	return b, nil
}

// ToFEN serializes the position. Castling and en-passant emit as "-" and the
// halfmove clock as 0, since the board does not track them.
func (b *Board) ToFEN() string {
	var sb strings.Builder
	for r := 0; r < 8; r++ {
		if r > 0 {
			sb.WriteByte('/')
		}
		empty := 0
		for f := 0; f < 8; f++ {
			p := b.squares[r*8+f]
			if p == NoPiece {
				empty++
				continue
			}
			if empty > 0 {
				sb.WriteByte('0' + byte(empty))
				empty = 0
			}
			sb.WriteByte(pieceChar(p))
		}
		if empty > 0 {
			sb.WriteByte('0' + byte(empty))
		}
	}
	sb.WriteByte(' ')
	if b.sideToMove == White {
		sb.WriteByte('w')
	} else {
		sb.WriteByte('b')
	}
	sb.WriteString(" - - 0 ")
	sb.WriteString(strconv.Itoa(b.historyLen/2 + 1))
	return sb.String()
}
