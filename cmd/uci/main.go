// Command uci speaks a small subset of the UCI protocol on stdin/stdout,
// enough to drive the engine from a GUI or a scripted match runner.
package main

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"compact-chess/board"
	"compact-chess/engine"
)

const defaultMoveTime = 9800 * time.Millisecond

func main() {
	uciLoop()
}

func uciLoop() {
	scanner := bufio.NewScanner(os.Stdin)
	b := board.NewGame()
	search := engine.NewSearch()
	search.Info = printInfo

	for scanner.Scan() {
		line := scanner.Text()
		tokens := strings.Fields(line)
		if len(tokens) == 0 { // ignore blank lines
			continue
		}
		switch strings.ToLower(tokens[0]) {
		case "uci":
			fmt.Println("id name CompactChess")
			fmt.Println("id author CompactChess authors")
			fmt.Println("uciok")
		case "isready":
			fmt.Println("readyok")
		case "ucinewgame":
			b = board.NewGame()
			search.Reset()
		case "position":
			nb, err := parsePosition(tokens[1:])
			if err != nil {
				fmt.Println("info string", err)
				continue
			}
			b = nb
		case "go":
			budget, depth := parseGo(tokens[1:])
			if depth > 0 {
				search = engine.NewSearchWith(engine.Options{MaxDepth: depth, TTSizeMB: engine.DefaultTTSizeMB, Book: engine.DefaultBook()})
				search.Info = printInfo
			}
			move, ok := search.SelectMove(b, budget)
			if !ok {
				fmt.Println("bestmove 0000")
				continue
			}
			fmt.Println("bestmove", move)
		case "eval":
			fmt.Printf("info string static eval %d (side to move)\n", engine.Evaluate(b))
		case "d":
			fmt.Print(b)
			fmt.Println("fen:", b.ToFEN())
		case "quit":
			return
		}
	}
}

// parsePosition handles "startpos [moves ...]" and "fen <6 fields> [moves ...]".
func parsePosition(tokens []string) (*board.Board, error) {
	if len(tokens) == 0 {
		return nil, fmt.Errorf("position: missing arguments")
	}

	var b *board.Board
	rest := tokens[1:]
	switch tokens[0] {
	case "startpos":
		b = board.NewGame()
	case "fen":
		if len(rest) < 6 {
			return nil, fmt.Errorf("position fen: expected 6 fields")
		}
		parsed, err := board.ParseFEN(strings.Join(rest[:6], " "))
		if err != nil {
			return nil, err
		}
		b = parsed
		rest = rest[6:]
	default:
		return nil, fmt.Errorf("position: unknown mode %q", tokens[0])
	}

	if len(rest) > 0 && rest[0] == "moves" {
		for _, ms := range rest[1:] {
			move, err := b.ParseMove(ms)
			if err != nil {
				return nil, fmt.Errorf("position: move %q: %w", ms, err)
			}
			b.Apply(move)
		}
	}
	return b, nil
}

func parseGo(tokens []string) (time.Duration, int8) {
	budget := defaultMoveTime
	var depth int8
	for i := 0; i < len(tokens); i++ {
		switch strings.ToLower(tokens[i]) {
		case "movetime":
			if i+1 < len(tokens) {
				if ms, err := strconv.Atoi(tokens[i+1]); err == nil {
					budget = time.Duration(ms) * time.Millisecond
				}
				i++
			}
		case "depth":
			if i+1 < len(tokens) {
				if d, err := strconv.Atoi(tokens[i+1]); err == nil && d > 0 {
					depth = int8(d)
					budget = 0 // depth-limited searches run unclocked
				}
				i++
			}
		case "infinite":
			budget = 0
		}
	}
	return budget, depth
}

func printInfo(ev engine.InfoEvent) {
	var pv strings.Builder
	for i, m := range ev.PV {
		if i > 0 {
			pv.WriteByte(' ')
		}
		pv.WriteString(m.String())
	}
	fmt.Printf("info depth %d score %s nodes %d time %d pv %s\n",
		ev.Depth, engine.ScoreString(ev.Score), ev.Nodes, ev.Elapsed.Milliseconds(), pv.String())
}
