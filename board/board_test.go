package board

import (
	"math/rand"
	"testing"
)

func TestNewGameSetup(t *testing.T) {
	b := NewGame()
	if b.SideToMove() != White {
		t.Fatal("white must move first")
	}
	if b.HistoryLen() != 0 {
		t.Fatal("fresh board has applied moves")
	}
	if !b.FromStartPos() {
		t.Fatal("NewGame board not marked as starting position")
	}
	if got := b.PieceAt(0); got != BlackRook {
		t.Errorf("a8 = %v, want black rook", got)
	}
	if got := b.PieceAt(60); got != WhiteKing {
		t.Errorf("e1 = %v, want white king", got)
	}
	for sq := Square(16); sq < 48; sq++ {
		if b.PieceAt(sq) != NoPiece {
			t.Errorf("square %s not empty on fresh board", sq)
		}
	}
	if b.Hash() != b.ComputeZobrist() {
		t.Error("incremental key out of sync after setup")
	}
}

// sameState compares everything Undo promises to restore. The vacated slots
// of the move log are scratch space and not compared.
func sameState(a, b *Board) bool {
	return a.squares == b.squares &&
		a.historyLen == b.historyLen &&
		a.sideToMove == b.sideToMove &&
		a.key == b.key &&
		a.fromStart == b.fromStart
}

func TestApplyUndoRoundtrip(t *testing.T) {
	b := NewGame()
	before := b.Copy()

	m, err := b.ParseMove("e2e4")
	if err != nil {
		t.Fatal(err)
	}
	b.Apply(m)
	if b.SideToMove() != Black {
		t.Error("side did not flip on Apply")
	}
	if b.PieceAt(36) != WhitePawn || b.PieceAt(52) != NoPiece {
		t.Error("pawn did not move e2 to e4")
	}
	if got, ok := b.LastMove(); !ok || got != m {
		t.Error("LastMove does not report the applied move")
	}

	if undone := b.Undo(); undone != m {
		t.Error("Undo returned a different move")
	}
	if !sameState(b, before) {
		t.Error("board state not fully restored by Undo")
	}
}

// TestRandomGameUndoAll walks random generated moves deep into a game, then
// unwinds everything and verifies each intermediate hash and the final state.
func TestRandomGameUndoAll(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	for game := 0; game < 20; game++ {
		b := NewGame()
		initial := b.Copy()
		var hashes []uint64

		for ply := 0; ply < 120; ply++ {
			moves := b.GenerateMoves()
			if len(moves) == 0 {
				break
			}
			hashes = append(hashes, b.Hash())
			b.Apply(moves[rng.Intn(len(moves))])
			if b.Hash() != b.ComputeZobrist() {
				t.Fatalf("game %d ply %d: incremental key diverged from recomputation", game, ply)
			}
		}

		for i := len(hashes) - 1; i >= 0; i-- {
			b.Undo()
			if b.Hash() != hashes[i] {
				t.Fatalf("game %d: hash mismatch after undo to ply %d", game, i)
			}
		}
		if !sameState(b, initial) {
			t.Fatalf("game %d: board not restored after full unwind", game)
		}
	}
}

func TestUndoEmptyPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("Undo on an empty history did not panic")
		}
	}()
	NewGame().Undo()
}

func TestApplyOverflowPanics(t *testing.T) {
	b := NewGame()
	shuffle := [4]string{"g1f3", "f3g1", "b8c6", "c6b8"}
	// Alternate knight shuffles to fill the log exactly to capacity.
	for i := 0; i < HistoryCap; i++ {
		var ms string
		if i%2 == 0 {
			ms = shuffle[(i/2)%2]
		} else {
			ms = shuffle[2+(i/2)%2]
		}
		m, err := b.ParseMove(ms)
		if err != nil {
			t.Fatalf("ply %d: %v", i, err)
		}
		b.Apply(m)
	}
	if b.HistoryLen() != HistoryCap {
		t.Fatalf("history length %d, want %d", b.HistoryLen(), HistoryCap)
	}
	defer func() {
		if recover() == nil {
			t.Fatal("Apply past history capacity did not panic")
		}
	}()
	m, _ := b.ParseMove("g1f3")
	b.Apply(m)
}

func TestHashDistinguishesSideToMove(t *testing.T) {
	b1, err := ParseFEN("4k3/8/8/8/8/8/8/4K3 w - - 0 1")
	if err != nil {
		t.Fatal(err)
	}
	b2, err := ParseFEN("4k3/8/8/8/8/8/8/4K3 b - - 0 1")
	if err != nil {
		t.Fatal(err)
	}
	if b1.Hash() == b2.Hash() {
		t.Error("same placement with different side to move should hash differently")
	}
}

func TestCopyIndependence(t *testing.T) {
	b := NewGame()
	c := b.Copy()
	m, _ := b.ParseMove("e2e4")
	b.Apply(m)
	if c.HistoryLen() != 0 || c.PieceAt(52) != WhitePawn {
		t.Error("mutating the original changed the copy")
	}
}

func TestMirrorInvolution(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	b := NewGame()
	for ply := 0; ply < 24; ply++ {
		moves := b.GenerateMoves()
		if len(moves) == 0 {
			break
		}
		b.Apply(moves[rng.Intn(len(moves))])
	}

	m := b.Mirror()
	if m.SideToMove() != b.SideToMove().Other() {
		t.Error("mirror did not flip the side to move")
	}
	mm := m.Mirror()
	if mm.squares != b.squares || mm.SideToMove() != b.SideToMove() {
		t.Error("double mirror did not restore the position")
	}
}

func TestFENRoundtrip(t *testing.T) {
	fens := []string{
		FENStartPos,
		"rnbqkbnr/pppppppp/8/8/4P3/8/PPPP1PPP/RNBQKBNR b - - 0 1",
		"4k3/8/8/8/8/8/8/4K3 w - - 0 1",
		"7k/8/8/8/8/p7/P7/8 w - - 0 1",
	}
	for _, fen := range fens {
		b, err := ParseFEN(fen)
		if err != nil {
			t.Fatalf("ParseFEN(%q): %v", fen, err)
		}
		rb, err := ParseFEN(b.ToFEN())
		if err != nil {
			t.Fatalf("reparsing %q: %v", b.ToFEN(), err)
		}
		if rb.squares != b.squares || rb.SideToMove() != b.SideToMove() {
			t.Errorf("FEN roundtrip changed the position for %q", fen)
		}
		if b.Hash() != b.ComputeZobrist() {
			t.Errorf("ParseFEN(%q) left key out of sync", fen)
		}
	}
	for _, bad := range []string{"", "xyz", "8/8/8/8/8/8/8 w - - 0 1", "9/8/8/8/8/8/8/8 w - - 0 1"} {
		if _, err := ParseFEN(bad); err == nil {
			t.Errorf("ParseFEN(%q) succeeded, want error", bad)
		}
	}
}
