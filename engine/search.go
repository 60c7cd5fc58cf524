// Package engine implements the search half of the program: static
// evaluation, fail-hard negamax with alpha-beta pruning, a capture-only
// quiescence extension, iterative deepening under a wall-clock budget, a
// transposition cache and an opening catalog.
package engine

import (
	"time"

	"compact-chess/board"
)

// Score constants. The mate sentinel exceeds any achievable material
// evaluation (a captured king plus full extra material stays under 25000),
// so it dominates all comparisons.
const (
	MaxScore int32 = 32500
	Mate     int32 = 30000

	// scores beyond this are mate-distance scores
	mateBound int32 = Mate - 2*int32(MaxPly)
)

const (
	// MaxPly bounds the main search recursion.
	MaxPly int8 = 64
	// MaxQuiescenceDepth is the hard ceiling on the capture extension, a
	// guard against runaway exchanges in pathological positions.
	MaxQuiescenceDepth int8 = 32

	DefaultDepth    int8 = 32
	DefaultTTSizeMB      = 64
)

// Options configures a Search.
type Options struct {
	MaxDepth int8         // deepest iteration; <=0 means DefaultDepth
	TTSizeMB int          // transposition table size; 0 disables the cache
	Book     *OpeningBook // nil disables the opening lookup
}

// DefaultOptions is the standard playing configuration.
func DefaultOptions() Options {
	return Options{MaxDepth: DefaultDepth, TTSizeMB: DefaultTTSizeMB, Book: DefaultBook()}
}

// InfoEvent reports one completed deepening iteration.
type InfoEvent struct {
	Depth   int8
	Score   int32
	Nodes   uint64
	Elapsed time.Duration
	PV      []board.Move
}

// Search owns all mutable search state: the transposition table, killer and
// history tables and the clock. Nothing is shared between Search values, so
// independent searches (and therefore parallel games) can coexist as long as
// each has a private Board.
type Search struct {
	opts    Options
	tt      TransTable
	killers KillerTable
	history [2][64][64]int
	clock   TimeHandler

	nodes uint64
	stop  bool

	// Info, when set, receives one event per completed depth.
	Info func(InfoEvent)
}

// NewSearch returns a Search with the default configuration.
func NewSearch() *Search { return NewSearchWith(DefaultOptions()) }

// NewSearchWith returns a Search with explicit options.
func NewSearchWith(opts Options) *Search {
	if opts.MaxDepth <= 0 {
		opts.MaxDepth = DefaultDepth
	}
	s := &Search{opts: opts}
	s.tt.Init(opts.TTSizeMB)
	return s
}

// Nodes returns the node count of the last SelectMove call.
func (s *Search) Nodes() uint64 { return s.nodes }

// Reset clears all cross-move state (cache, killers, history) for a new game.
func (s *Search) Reset() {
	s.tt.Clear()
	s.killers.Clear()
	s.clearHistory()
}

// LegalMoves exposes the generator's move list for display and statistics.
func LegalMoves(b *board.Board) []board.Move { return b.GenerateMoves() }

// SelectMove picks a move for the side to move within the wall-clock budget
// (non-positive means unbounded). It reports false only when no legal move
// exists, a mate-like terminal for this rule set rather than an error. The board
// is restored to its entry state before returning.
func (s *Search) SelectMove(b *board.Board, budget time.Duration) (board.Move, bool) {
	s.nodes = 0
	s.stop = false
	s.clock.Start(budget)

	if s.opts.Book != nil {
		if move, ok := s.opts.Book.Probe(b); ok {
			return move, true
		}
	}

	moves := b.GenerateMoves()
	if len(moves) == 0 {
		return 0, false
	}

	var bestMove board.Move
	var bestScore int32
	var pvLine, prevPV PVLine
	started := time.Now()

	// Iterative deepening: re-running shallow depths seeds the TT move
	// ordering for the next depth and guarantees an any-time answer once
	// depth 1 completes.
	for depth := int8(1); depth <= s.opts.MaxDepth; depth++ {
		if depth > 1 && s.clock.Exceeded() {
			break
		}

		pvLine.Clear()
		score := s.alphabeta(b, -MaxScore, MaxScore, depth, 0, &pvLine)

		if s.stop {
			// The interrupted depth's partial result is unreliable;
			// keep the deepest completed answer.
			break
		}

		bestScore = score
		prevPV = pvLine.Clone()
		bestMove = prevPV.GetPVMove()

		if s.Info != nil {
			s.Info(InfoEvent{
				Depth:   depth,
				Score:   bestScore,
				Nodes:   s.nodes,
				Elapsed: time.Since(started),
				PV:      prevPV.Moves,
			})
		}

		if bestScore > mateBound || bestScore < -mateBound {
			break
		}
	}

	if bestMove == 0 {
		// Budget expired inside depth 1; any generated move beats none.
		bestMove = moves[0]
	}
	return bestMove, true
}

// alphabeta is a fail-hard negamax: the return value is always clamped into
// the (alpha, beta) window. Both bounds and scores are from the perspective
// of the side to move at this node; each recursion negates and swaps the
// window.
func (s *Search) alphabeta(b *board.Board, alpha, beta int32, depth, ply int8, pvLine *PVLine) int32 {
	s.nodes++
	if s.nodes&4095 == 0 && s.clock.Exceeded() {
		s.stop = true
	}
	if s.stop {
		return 0
	}
	if ply >= MaxPly {
		return clampScore(Evaluate(b), alpha, beta)
	}
	if depth <= 0 {
		return s.quiescence(b, alpha, beta, ply, 0)
	}

	hash := b.Hash()
	var ttMove board.Move
	if entry, ok := s.tt.Probe(hash); ok {
		ttMove = entry.Move
		// A cached score is only trusted when its recorded depth covers
		// what this node still needs; the root always searches so a move
		// is available to return.
		if ply > 0 {
			if usable, score := s.tt.Use(entry, depth, alpha, beta, ply); usable {
				return score
			}
		}
	}

	moves := b.GenerateMoves()
	if len(moves) == 0 {
		// Mate-like sentinel; stalemate is indistinguishable without
		// check detection. Closer mates score higher via the ply term.
		return -Mate + int32(ply)
	}

	ml := s.scoreMoves(b, moves, ply, ttMove)
	flag := TTUpper
	var bestMove board.Move
	var childPV PVLine

	for i := 0; i < len(ml.moves); i++ {
		orderNextMove(i, &ml)
		move := ml.moves[i].move

		b.Apply(move)
		score := -s.alphabeta(b, -beta, -alpha, depth-1, ply+1, &childPV)
		b.Undo()

		if s.stop {
			return 0
		}

		if score >= beta {
			if !move.IsCapture() {
				s.killers.Insert(move, ply)
				s.incrementHistory(b.SideToMove(), move, depth)
			}
			s.tt.Store(hash, depth, ply, move, beta, TTLower)
			return beta
		}
		if score > alpha {
			alpha = score
			bestMove = move
			flag = TTExact
			pvLine.Update(move, childPV)
		}
		childPV.Clear()
	}

	s.tt.Store(hash, depth, ply, bestMove, alpha, flag)
	return alpha
}

// quiescence resolves the search frontier: stand pat on the static score,
// then explore only captures so the evaluation never lands mid-exchange.
func (s *Search) quiescence(b *board.Board, alpha, beta int32, ply, qdepth int8) int32 {
	s.nodes++
	if s.nodes&2047 == 0 && s.clock.Exceeded() {
		s.stop = true
	}
	if s.stop {
		return 0
	}

	standPat := Evaluate(b)
	if standPat >= beta {
		return beta
	}
	if standPat > alpha {
		alpha = standPat
	}
	if qdepth >= MaxQuiescenceDepth || ply >= MaxPly {
		return alpha
	}

	ml := s.scoreCaptures(b, b.GenerateCaptures())
	for i := 0; i < len(ml.moves); i++ {
		orderNextMove(i, &ml)
		move := ml.moves[i].move

		b.Apply(move)
		score := -s.quiescence(b, -beta, -alpha, ply+1, qdepth+1)
		b.Undo()

		if s.stop {
			return 0
		}
		if score >= beta {
			return beta
		}
		if score > alpha {
			alpha = score
		}
	}
	return alpha
}

func clampScore(v, alpha, beta int32) int32 {
	if v <= alpha {
		return alpha
	}
	if v >= beta {
		return beta
	}
	return v
}
