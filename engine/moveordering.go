package engine

import "compact-chess/board"

type scoredMove struct {
	move  board.Move
	score uint16
}

type moveList struct {
	moves []scoredMove
}

// Most Valuable Victim - Least Valuable Aggressor; used to score captures.
var mvvLva = [7][7]uint16{
	{0, 0, 0, 0, 0, 0, 0},
	{0, 14, 13, 12, 11, 10, 0}, // victim pawn
	{0, 24, 23, 22, 21, 20, 0}, // victim knight
	{0, 34, 33, 32, 31, 30, 0}, // victim bishop
	{0, 44, 43, 42, 41, 40, 0}, // victim rook
	{0, 54, 53, 52, 51, 50, 0}, // victim queen
	{0, 64, 63, 62, 61, 60, 0}, // victim king
}

// Ordering offsets. PV/TT move first, then captures, then killers, then
// center-bound quiets, then history-scored quiets.
const (
	pvOffset      uint16 = 25000
	captureOffset uint16 = 15000
	killerOffset  uint16 = 4000
	centerOffset  uint16 = 2200
)

const historyMax = 2000 // history scores stay below every offset above

// orderNextMove selection-sorts the best remaining move to currIndex.
func orderNextMove(currIndex int, ml *moveList) {
	bestIndex := currIndex
	bestScore := ml.moves[bestIndex].score
	for i := currIndex + 1; i < len(ml.moves); i++ {
		if ml.moves[i].score > bestScore {
			bestIndex = i
			bestScore = ml.moves[i].score
		}
	}
	ml.moves[currIndex], ml.moves[bestIndex] = ml.moves[bestIndex], ml.moves[currIndex]
}

func (s *Search) scoreMoves(b *board.Board, moves []board.Move, ply int8, pvMove board.Move) moveList {
	ml := moveList{moves: make([]scoredMove, len(moves))}
	sideIdx := int(b.SideToMove())

	for i, move := range moves {
		var score uint16
		switch {
		case move == pvMove && pvMove != 0:
			score = pvOffset
		case move.IsCapture():
			attacker := b.PieceAt(move.From()).Type()
			score = captureOffset + mvvLva[move.Captured().Type()][attacker]
		case s.killers.IsKiller(move, ply):
			score = killerOffset
		case centerMask&(1<<uint(move.To())) != 0:
			score = centerOffset + uint16(s.history[sideIdx][move.From()][move.To()])
		default:
			score = uint16(s.history[sideIdx][move.From()][move.To()])
		}
		ml.moves[i] = scoredMove{move: move, score: score}
	}
	return ml
}

// scoreCaptures ranks a capture-only list by MVV-LVA for quiescence.
func (s *Search) scoreCaptures(b *board.Board, moves []board.Move) moveList {
	ml := moveList{moves: make([]scoredMove, len(moves))}
	for i, move := range moves {
		attacker := b.PieceAt(move.From()).Type()
		ml.moves[i] = scoredMove{
			move:  move,
			score: mvvLva[move.Captured().Type()][attacker],
		}
	}
	return ml
}

// incrementHistory rewards a quiet move that caused a beta cutoff; the table
// is aged once scores reach the cap so they stay below the ordering offsets.
func (s *Search) incrementHistory(c board.Color, move board.Move, depth int8) {
	sideIdx := int(c)
	s.history[sideIdx][move.From()][move.To()] += int(depth) * int(depth)
	if s.history[sideIdx][move.From()][move.To()] >= historyMax {
		s.ageHistory(sideIdx)
	}
}

func (s *Search) ageHistory(sideIdx int) {
	for from := 0; from < 64; from++ {
		for to := 0; to < 64; to++ {
			s.history[sideIdx][from][to] /= 2
		}
	}
}

func (s *Search) clearHistory() {
	for side := 0; side < 2; side++ {
		for from := 0; from < 64; from++ {
			for to := 0; to < 64; to++ {
				s.history[side][from][to] = 0
			}
		}
	}
}
