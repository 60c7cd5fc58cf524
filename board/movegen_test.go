package board

import (
	"sort"
	"testing"

	"github.com/dylhunn/dragontoothmg"
)

func TestPerftInitialPosition(t *testing.T) {
	// Within three plies of the start no check, pin, promotion, castle or
	// en passant is possible, so these counts match full-rules chess.
	cases := []struct {
		depth int
		want  uint64
	}{
		{1, 20},
		{2, 400},
		{3, 8902},
	}
	for _, tc := range cases {
		b := NewGame()
		if got := Perft(b, tc.depth); got != tc.want {
			t.Errorf("perft(%d) = %d, want %d", tc.depth, got, tc.want)
		}
		if b.HistoryLen() != 0 {
			t.Errorf("perft(%d) left %d moves applied", tc.depth, b.HistoryLen())
		}
	}
}

func TestPerftDivideSumsToTotal(t *testing.T) {
	b := NewGame()
	div := PerftDivide(b, 3)
	if len(div) != 20 {
		t.Fatalf("root move count = %d, want 20", len(div))
	}
	var sum uint64
	for _, n := range div {
		sum += n
	}
	if sum != 8902 {
		t.Errorf("divide sum = %d, want 8902", sum)
	}
}

func TestGenerateMovesDeterministic(t *testing.T) {
	b := NewGame()
	first := b.GenerateMoves()
	second := b.GenerateMoves()
	if len(first) != len(second) {
		t.Fatal("repeated generation returned different counts")
	}
	for i := range first {
		if first[i] != second[i] {
			t.Fatal("repeated generation returned different order")
		}
	}
}

func moveSet(moves []Move) map[string]bool {
	set := make(map[string]bool, len(moves))
	for _, m := range moves {
		set[m.String()] = true
	}
	return set
}

func TestPawnMoves(t *testing.T) {
	t.Run("double push from start rank", func(t *testing.T) {
		b := NewGame()
		set := moveSet(b.GenerateMoves())
		if !set["e2e3"] || !set["e2e4"] {
			t.Error("white e-pawn missing single or double push")
		}
	})

	t.Run("blocked pawn has no moves", func(t *testing.T) {
		b, err := ParseFEN("7k/8/8/8/8/p7/P7/8 w - - 0 1")
		if err != nil {
			t.Fatal(err)
		}
		if moves := b.GenerateMoves(); len(moves) != 0 {
			t.Errorf("blocked pawn generated %v", moves)
		}
	})

	t.Run("double push blocked on far square", func(t *testing.T) {
		b, err := ParseFEN("7k/8/8/8/4p3/8/4P3/7K w - - 0 1")
		if err != nil {
			t.Fatal(err)
		}
		set := moveSet(b.GenerateMoves())
		if !set["e2e3"] {
			t.Error("single push missing")
		}
		if set["e2e4"] {
			t.Error("double push jumped over an occupied square")
		}
	})

	t.Run("captures stay on adjacent files", func(t *testing.T) {
		// Black pawn on a3: a white pawn on h2 must not "capture" it by
		// wrapping around the board edge.
		b, err := ParseFEN("7k/8/8/8/8/p7/7P/7K w - - 0 1")
		if err != nil {
			t.Fatal(err)
		}
		for _, m := range b.GenerateMoves() {
			if m.IsCapture() {
				t.Errorf("wrap capture generated: %s", m)
			}
		}
	})

	t.Run("diagonal capture", func(t *testing.T) {
		b, err := ParseFEN("7k/8/8/3p4/4P3/8/8/7K w - - 0 1")
		if err != nil {
			t.Fatal(err)
		}
		set := moveSet(b.GenerateMoves())
		if !set["e4d5"] {
			t.Error("pawn capture e4xd5 missing")
		}
		if set["e4f5"] {
			t.Error("pawn captured an empty square")
		}
	})
}

func TestKnightCornerMoves(t *testing.T) {
	b, err := ParseFEN("N6k/8/8/8/8/8/8/7K w - - 0 1")
	if err != nil {
		t.Fatal(err)
	}
	var knightMoves []string
	for _, m := range b.GenerateMoves() {
		if m.From() == 0 {
			knightMoves = append(knightMoves, m.String())
		}
	}
	sort.Strings(knightMoves)
	want := []string{"a8b6", "a8c7"}
	if len(knightMoves) != len(want) {
		t.Fatalf("corner knight moves = %v, want %v", knightMoves, want)
	}
	for i := range want {
		if knightMoves[i] != want[i] {
			t.Fatalf("corner knight moves = %v, want %v", knightMoves, want)
		}
	}
}

func TestSliderStopsAtBlockers(t *testing.T) {
	// White rook a1, white pawn a3, black pawn e1. The rook may advance to
	// a2, capture nothing beyond its own pawn, and slide right up to the
	// capture on e1 but no further.
	b, err := ParseFEN("7k/8/8/8/8/P7/8/R3p2K w - - 0 1")
	if err != nil {
		t.Fatal(err)
	}
	var rookMoves []string
	for _, m := range b.GenerateMoves() {
		if m.From() == 56 {
			rookMoves = append(rookMoves, m.String())
		}
	}
	sort.Strings(rookMoves)
	want := []string{"a1a2", "a1b1", "a1c1", "a1d1", "a1e1"}
	if len(rookMoves) != len(want) {
		t.Fatalf("rook moves = %v, want %v", rookMoves, want)
	}
	for i := range want {
		if rookMoves[i] != want[i] {
			t.Fatalf("rook moves = %v, want %v", rookMoves, want)
		}
	}
	// The slide onto e1 must record the captured pawn.
	cap, err := b.ParseMove("a1e1")
	if err != nil {
		t.Fatal(err)
	}
	if cap.Captured() != BlackPawn {
		t.Errorf("a1e1 captured = %v, want black pawn", cap.Captured())
	}
}

func TestSliderNoRankWrap(t *testing.T) {
	// A rook on h4 must not continue from h4 onto a4's neighbors by index
	// arithmetic alone; its eastward ray ends at the board edge.
	b, err := ParseFEN("7k/8/8/8/7R/8/8/7K w - - 0 1")
	if err != nil {
		t.Fatal(err)
	}
	set := moveSet(b.GenerateMoves())
	if set["h4a5"] || set["h4a3"] {
		t.Error("rook ray wrapped around the board edge")
	}
}

func TestGenerateCapturesSubset(t *testing.T) {
	b, err := ParseFEN("7k/8/8/3p4/4P3/8/8/R6K w - - 0 1")
	if err != nil {
		t.Fatal(err)
	}
	all := moveSet(b.GenerateMoves())
	captures := b.GenerateCaptures()
	if len(captures) != 1 {
		t.Fatalf("captures = %v, want exactly e4d5", captures)
	}
	for _, m := range captures {
		if !m.IsCapture() {
			t.Errorf("quiet move %s in capture list", m)
		}
		if !all[m.String()] {
			t.Errorf("capture %s not in the full move list", m)
		}
	}
}

func TestNoMovesForBarrenSide(t *testing.T) {
	b, err := ParseFEN("7k/8/8/8/8/8/8/8 w - - 0 1")
	if err != nil {
		t.Fatal(err)
	}
	if b.HasMoves() {
		t.Error("side with no pieces reports moves")
	}
	if len(b.GenerateMoves()) != 0 {
		t.Error("side with no pieces generated moves")
	}
}

// TestAgainstReferenceGenerator cross-checks against a full-rules generator
// on positions where pseudo-legal and legal move sets coincide: no checks or
// pins are possible, castling rights are absent and there is no en passant.
func TestAgainstReferenceGenerator(t *testing.T) {
	fens := []string{
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w - - 0 1",
		"rnbqkbnr/pppppppp/8/8/4P3/8/PPPP1PPP/RNBQKBNR b - - 0 1",
		"rnbqkbnr/pppp1ppp/8/4p3/4P3/8/PPPP1PPP/RNBQKBNR w - - 0 1",
		"r1bqkbnr/pppp1ppp/2n5/4p3/4P3/5N2/PPPP1PPP/RNBQKB1R b - - 0 1",
	}
	for _, fen := range fens {
		b, err := ParseFEN(fen)
		if err != nil {
			t.Fatalf("ParseFEN(%q): %v", fen, err)
		}
		mine := moveSet(b.GenerateMoves())

		ref := dragontoothmg.ParseFen(fen)
		refMoves := ref.GenerateLegalMoves()
		theirs := make(map[string]bool, len(refMoves))
		for _, m := range refMoves {
			theirs[m.String()] = true
		}

		for ms := range theirs {
			if !mine[ms] {
				t.Errorf("%s: reference move %s missing", fen, ms)
			}
		}
		for ms := range mine {
			if !theirs[ms] {
				t.Errorf("%s: extra move %s", fen, ms)
			}
		}
	}
}
