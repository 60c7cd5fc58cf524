// Command analyze serves a small HTTP API over the engine. REST endpoints
// answer one-shot queries (legal moves, static evaluation); the websocket
// endpoint streams search progress depth by depth, so a client can watch the
// principal variation refine while the engine thinks.
package main

import (
	"encoding/json"
	"flag"
	"net/http"
	"os"
	"time"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"compact-chess/board"
	"compact-chess/engine"
)

var log = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.TimeOnly}).
	With().Timestamp().Logger()

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

func main() {
	addr := flag.String("addr", ":8080", "listen address")
	flag.Parse()

	r := mux.NewRouter()
	r.HandleFunc("/api/moves", handleMoves).Methods(http.MethodGet)
	r.HandleFunc("/api/eval", handleEval).Methods(http.MethodGet)
	r.HandleFunc("/ws/analyze", handleAnalyze)

	log.Info().Str("addr", *addr).Msg("analyze server listening")
	err := http.ListenAndServe(*addr, handlers.CombinedLoggingHandler(os.Stdout, r))
	log.Fatal().Err(err).Msg("server stopped")
}

// boardFromQuery builds a board from the fen query parameter, defaulting to
// the initial position.
func boardFromQuery(r *http.Request) (*board.Board, error) {
	fen := r.URL.Query().Get("fen")
	if fen == "" {
		return board.NewGame(), nil
	}
	return board.ParseFEN(fen)
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("encoding response")
	}
}

func writeError(w http.ResponseWriter, status int, err error) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": err.Error()})
}

func handleMoves(w http.ResponseWriter, r *http.Request) {
	b, err := boardFromQuery(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	moves := b.GenerateMoves()
	out := make([]string, len(moves))
	for i, m := range moves {
		out[i] = m.String()
	}
	writeJSON(w, map[string]any{
		"fen":   b.ToFEN(),
		"side":  b.SideToMove().String(),
		"moves": out,
	})
}

func handleEval(w http.ResponseWriter, r *http.Request) {
	b, err := boardFromQuery(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	writeJSON(w, map[string]any{
		"fen":   b.ToFEN(),
		"side":  b.SideToMove().String(),
		"score": engine.Evaluate(b),
	})
}

type analyzeRequest struct {
	FEN        string `json:"fen"`
	MoveTimeMS int    `json:"movetime_ms"`
	Depth      int8   `json:"depth"`
}

type analyzeInfo struct {
	Type    string   `json:"type"` // "info" or "bestmove"
	Depth   int8     `json:"depth,omitempty"`
	Score   string   `json:"score,omitempty"`
	Nodes   uint64   `json:"nodes,omitempty"`
	TimeMS  int64    `json:"time_ms,omitempty"`
	PV      []string `json:"pv,omitempty"`
	Move    string   `json:"move,omitempty"`
	Message string   `json:"message,omitempty"`
}

// handleAnalyze upgrades to a websocket, reads one request, and streams an
// "info" frame per completed depth followed by a final "bestmove" frame.
func handleAnalyze(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Error().Err(err).Msg("websocket upgrade")
		return
	}
	defer conn.Close()

	var req analyzeRequest
	if err := conn.ReadJSON(&req); err != nil {
		log.Error().Err(err).Msg("reading analyze request")
		return
	}

	b := board.NewGame()
	if req.FEN != "" {
		if b, err = board.ParseFEN(req.FEN); err != nil {
			conn.WriteJSON(analyzeInfo{Type: "error", Message: err.Error()})
			return
		}
	}

	opts := engine.DefaultOptions()
	opts.Book = nil // analysis wants the search, never a canned reply
	if req.Depth > 0 {
		opts.MaxDepth = req.Depth
	}
	search := engine.NewSearchWith(opts)
	search.Info = func(ev engine.InfoEvent) {
		pv := make([]string, len(ev.PV))
		for i, m := range ev.PV {
			pv[i] = m.String()
		}
		conn.WriteJSON(analyzeInfo{
			Type:   "info",
			Depth:  ev.Depth,
			Score:  engine.ScoreString(ev.Score),
			Nodes:  ev.Nodes,
			TimeMS: ev.Elapsed.Milliseconds(),
			PV:     pv,
		})
	}

	budget := 5 * time.Second
	if req.MoveTimeMS > 0 {
		budget = time.Duration(req.MoveTimeMS) * time.Millisecond
	}
	if req.Depth > 0 && req.MoveTimeMS == 0 {
		budget = 0 // depth-limited analysis runs unclocked
	}

	move, ok := search.SelectMove(b, budget)
	if !ok {
		conn.WriteJSON(analyzeInfo{Type: "bestmove", Message: "no legal moves"})
		return
	}
	conn.WriteJSON(analyzeInfo{Type: "bestmove", Move: move.String()})
}
