// Command play runs a console game against the engine. Moves are entered in
// coordinate notation ("e2e4"); "moves" lists the options, "undo" takes back
// the last full move pair, "quit" resigns.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"compact-chess/board"
	"compact-chess/engine"
)

func main() {
	budget := flag.Duration("budget", 5*time.Second, "engine thinking time per move")
	playBlack := flag.Bool("black", false, "play the black pieces")
	noBook := flag.Bool("nobook", false, "disable the engine's opening lines")
	flag.Parse()

	opts := engine.DefaultOptions()
	if *noBook {
		opts.Book = nil
	}
	search := engine.NewSearchWith(opts)

	b := board.NewGame()
	humanSide := board.White
	if *playBlack {
		humanSide = board.Black
	}

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print(b)

		if len(engine.LegalMoves(b)) == 0 {
			fmt.Printf("%s has no moves. Game over.\n", b.SideToMove())
			return
		}

		if b.SideToMove() == humanSide {
			move, quit := readHumanMove(scanner, b)
			if quit {
				return
			}
			b.Apply(move)
			continue
		}

		start := time.Now()
		move, ok := search.SelectMove(b, *budget)
		if !ok {
			fmt.Printf("%s has no moves. Game over.\n", b.SideToMove())
			return
		}
		fmt.Printf("engine plays %s (%.1fs, %d nodes)\n", move, time.Since(start).Seconds(), search.Nodes())
		b.Apply(move)
	}
}

func readHumanMove(scanner *bufio.Scanner, b *board.Board) (board.Move, bool) {
	for {
		fmt.Printf("%s> ", b.SideToMove())
		if !scanner.Scan() {
			return 0, true
		}
		input := strings.TrimSpace(scanner.Text())
		switch input {
		case "":
			continue
		case "quit", "exit":
			return 0, true
		case "moves":
			for _, m := range engine.LegalMoves(b) {
				fmt.Printf("%s ", m)
			}
			fmt.Println()
			continue
		case "undo":
			if b.HistoryLen() >= 2 {
				b.Undo()
				b.Undo()
			}
			fmt.Print(b)
			continue
		}

		move, err := b.ParseMove(input)
		if err != nil {
			fmt.Println("bad move:", err)
			continue
		}
		if !isGenerated(b, move) {
			fmt.Println("illegal move:", input)
			continue
		}
		return move, false
	}
}

func isGenerated(b *board.Board, move board.Move) bool {
	for _, m := range b.GenerateMoves() {
		if m == move {
			return true
		}
	}
	return false
}
