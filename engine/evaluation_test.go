package engine

import (
	"math/rand"
	"testing"

	"compact-chess/board"
)

func TestEvaluateStartPositionBalanced(t *testing.T) {
	if score := Evaluate(board.NewGame()); score != 0 {
		t.Errorf("initial position evaluates to %d, want 0", score)
	}
}

// TestEvaluateMirrorInvariance: mirroring swaps colors, reflects the board
// and flips the side to move, so the score from the mover's perspective must
// not change. This holds exactly when the terms are antisymmetric in color.
func TestEvaluateMirrorInvariance(t *testing.T) {
	rng := rand.New(rand.NewSource(99))
	for game := 0; game < 10; game++ {
		b := board.NewGame()
		for ply := 0; ply < 40; ply++ {
			moves := b.GenerateMoves()
			if len(moves) == 0 {
				break
			}
			b.Apply(moves[rng.Intn(len(moves))])

			if got, want := Evaluate(b.Mirror()), Evaluate(b); got != want {
				t.Fatalf("game %d ply %d: mirror evaluates to %d, original %d\n%s",
					game, ply, got, want, b)
			}
		}
	}
}

func TestEvaluateMirrorInvarianceWithMobility(t *testing.T) {
	EnableMobility = true
	defer func() { EnableMobility = false }()

	rng := rand.New(rand.NewSource(123))
	b := board.NewGame()
	for ply := 0; ply < 30; ply++ {
		moves := b.GenerateMoves()
		if len(moves) == 0 {
			break
		}
		b.Apply(moves[rng.Intn(len(moves))])
		if got, want := Evaluate(b.Mirror()), Evaluate(b); got != want {
			t.Fatalf("ply %d: mirror evaluates to %d, original %d", ply, got, want)
		}
	}
}

func TestEvaluateMaterialDominates(t *testing.T) {
	// White is a full queen up.
	b, err := board.ParseFEN("rnb1kbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w - - 0 1")
	if err != nil {
		t.Fatal(err)
	}
	if score := Evaluate(b); score < 800 {
		t.Errorf("queen-up position scores %d for the mover, want clearly positive", score)
	}
	// The same deficit from Black's perspective.
	b2, err := board.ParseFEN("rnb1kbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR b - - 0 1")
	if err != nil {
		t.Fatal(err)
	}
	if score := Evaluate(b2); score > -800 {
		t.Errorf("queen-down position scores %d for the mover, want clearly negative", score)
	}
}

func TestEvaluateCenterBonus(t *testing.T) {
	center, err := board.ParseFEN("4k3/8/8/3N4/8/8/8/4K3 w - - 0 1")
	if err != nil {
		t.Fatal(err)
	}
	rim, err := board.ParseFEN("4k3/8/8/N7/8/8/8/4K3 w - - 0 1")
	if err != nil {
		t.Fatal(err)
	}
	if Evaluate(center) <= Evaluate(rim) {
		t.Errorf("knight on d5 (%d) should outscore knight on a5 (%d)",
			Evaluate(center), Evaluate(rim))
	}
}

func TestEvaluateDoubledPawnsPenalized(t *testing.T) {
	doubled, err := board.ParseFEN("4k3/pppp4/8/8/8/4P3/PPP1P3/4K3 w - - 0 1")
	if err != nil {
		t.Fatal(err)
	}
	healthy, err := board.ParseFEN("4k3/pppp4/8/8/8/8/PPPPP3/4K3 w - - 0 1")
	if err != nil {
		t.Fatal(err)
	}
	if Evaluate(doubled) >= Evaluate(healthy) {
		t.Errorf("doubled e-pawns (%d) should score below a clean structure (%d)",
			Evaluate(doubled), Evaluate(healthy))
	}
}
