package match

import (
	"github.com/lgbarn/nicechess-go/internal/chess"
	"github.com/lgbarn/nicechess-go/internal/game"
)

// Termination reasons besides the draw rules.
const (
	ReasonCheckmate = "checkmate"
	ReasonStopped   = "stopped"
	ReasonMaxPlies  = "move limit"
)

// PGN result strings.
const (
	WhiteWins  = "1-0"
	BlackWins  = "0-1"
	DrawResult = "1/2-1/2"
	Unfinished = "*"
)

// Result is how a match ended.
type Result struct {
	Status    game.Status
	Winner    chess.Colour // valid when HasWinner
	HasWinner bool
	Reason    string
	Plies     int
	FEN       string // final position
}

// PGN returns the result in PGN notation.
func (r Result) PGN() string {
	switch {
	case r.HasWinner && r.Winner == chess.White:
		return WhiteWins
	case r.HasWinner:
		return BlackWins
	case r.Status == game.Stalemate || r.Status == game.Draw:
		return DrawResult
	}
	return Unfinished
}

// Score returns White's points: 1, 0.5 or 0. Unfinished games score 0.5.
func (r Result) Score() float64 {
	switch r.PGN() {
	case WhiteWins:
		return 1
	case BlackWins:
		return 0
	}
	return 0.5
}

func resultOf(state *game.State, reason string) Result {
	res := Result{
		Status: state.Status(),
		Reason: reason,
		Plies:  state.Ply(),
		FEN:    state.FEN(),
	}
	res.Winner, res.HasWinner = state.Winner()
	switch {
	case res.HasWinner:
		res.Reason = ReasonCheckmate
	case state.IsDraw():
		res.Reason = state.DrawReason().String()
	}
	return res
}
