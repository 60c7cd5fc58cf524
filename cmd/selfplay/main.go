// Command selfplay runs engine-vs-engine games in parallel and reports
// aggregate statistics. With -out, each game's move list is written to a
// record file for later replay through "position startpos moves ...".
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"compact-chess/board"
	"compact-chess/engine"
)

type gameResult struct {
	id       int
	winner   string // "white", "black" or "draw"
	moves    int
	captures int
	minEval  int32 // extremes of the static eval from White's side
	maxEval  int32
	record   []board.Move
}

func main() {
	games := flag.Int("games", 4, "number of games to play")
	parallel := flag.Int("parallel", 2, "games running at once")
	budget := flag.Duration("budget", 500*time.Millisecond, "thinking time per move")
	maxMoves := flag.Int("maxmoves", 200, "ply limit before a game is scored a draw")
	outDir := flag.String("out", "", "directory for game record files (optional)")
	flag.Parse()

	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.TimeOnly}).
		With().Timestamp().Logger()

	if *outDir != "" {
		if err := os.MkdirAll(*outDir, 0o755); err != nil {
			log.Fatal().Err(err).Msg("creating output directory")
		}
	}

	var (
		mu      sync.Mutex
		results []gameResult
	)

	start := time.Now()
	var g errgroup.Group
	g.SetLimit(*parallel)
	for id := 0; id < *games; id++ {
		id := id
		g.Go(func() error {
			gameStart := time.Now()
			res := playGame(id, *budget, *maxMoves)
			log.Info().
				Dur("elapsed", time.Since(gameStart)).
				Int("game", res.id).
				Str("winner", res.winner).
				Int("moves", res.moves).
				Int("captures", res.captures).
				Int32("min_eval", res.minEval).
				Int32("max_eval", res.maxEval).
				Msg("game finished")

			if *outDir != "" {
				if err := writeRecord(*outDir, res); err != nil {
					return fmt.Errorf("game %d: %w", res.id, err)
				}
			}

			mu.Lock()
			results = append(results, res)
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		log.Fatal().Err(err).Msg("selfplay aborted")
	}

	var whiteWins, blackWins, draws, totalMoves, totalCaptures int
	for _, r := range results {
		switch r.winner {
		case "white":
			whiteWins++
		case "black":
			blackWins++
		default:
			draws++
		}
		totalMoves += r.moves
		totalCaptures += r.captures
	}
	log.Info().
		Int("games", len(results)).
		Int("white", whiteWins).
		Int("black", blackWins).
		Int("draws", draws).
		Float64("avg_moves", float64(totalMoves)/float64(len(results))).
		Float64("avg_captures", float64(totalCaptures)/float64(len(results))).
		Dur("elapsed", time.Since(start)).
		Msg("selfplay done")
}

// playGame runs one game to the ply limit or until a side has no moves.
// Each game owns its board and both Search values, so games are independent.
func playGame(id int, budget time.Duration, maxMoves int) gameResult {
	b := board.NewGame()
	players := [2]*engine.Search{engine.NewSearch(), engine.NewSearch()}

	res := gameResult{id: id, winner: "draw"}
	for b.HistoryLen() < maxMoves {
		move, ok := players[b.SideToMove()].SelectMove(b, budget)
		if !ok {
			// The side to move is out of moves and loses.
			res.winner = b.SideToMove().Other().String()
			break
		}
		if move.IsCapture() {
			res.captures++
		}
		b.Apply(move)
		res.record = append(res.record, move)

		ev := engine.Evaluate(b)
		if b.SideToMove() == board.Black {
			ev = -ev
		}
		if ev < res.minEval {
			res.minEval = ev
		}
		if ev > res.maxEval {
			res.maxEval = ev
		}
	}
	res.moves = b.HistoryLen()
	return res
}

func writeRecord(dir string, res gameResult) error {
	parts := make([]string, len(res.record))
	for i, m := range res.record {
		parts[i] = m.String()
	}
	content := fmt.Sprintf("winner %s\nmoves %s\n", res.winner, strings.Join(parts, " "))
	path := filepath.Join(dir, fmt.Sprintf("game_%03d.txt", res.id))
	return os.WriteFile(path, []byte(content), 0o644)
}
