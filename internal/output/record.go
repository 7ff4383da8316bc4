package output

import (
	"strings"

	"github.com/lgbarn/nicechess-go/internal/chess"
	"github.com/lgbarn/nicechess-go/internal/engine"
	"github.com/lgbarn/nicechess-go/internal/errors"
	"github.com/lgbarn/nicechess-go/internal/game"
	"github.com/lgbarn/nicechess-go/internal/match"
)

// Record is a finished or stopped match, ready to be written as JSON or PGN.
type Record struct {
	ID          string     `json:"id"`
	Event       string     `json:"event,omitempty"`
	Date        string     `json:"date,omitempty"` // PGN form, 2006.01.02
	Round       int        `json:"round,omitempty"`
	White       string     `json:"white"`
	Black       string     `json:"black"`
	InitialFEN  string     `json:"initialFEN,omitempty"` // empty for the standard start
	Moves       []JSONMove `json:"moves,omitempty"`
	Result      string     `json:"result"`
	Termination string     `json:"termination,omitempty"`
	PlyCount    int        `json:"plyCount"`
	FinalFEN    string     `json:"finalFEN"`
}

// JSONMove is one move of a Record.
type JSONMove struct {
	MoveNumber int    `json:"moveNumber"`
	Color      string `json:"color"` // "white" or "black"
	SAN        string `json:"san"`
	UCI        string `json:"uci"`
	From       string `json:"from"`
	To         string `json:"to"`
	Piece      string `json:"piece"`
	Captured   string `json:"captured,omitempty"`
	Promotion  string `json:"promotion,omitempty"`
	FEN        string `json:"fen"`
}

// NewRecord builds the record of a match by replaying its moves.
func NewRecord(id, white, black string, state *game.State, res match.Result) (*Record, error) {
	rec := &Record{
		ID:          id,
		White:       white,
		Black:       black,
		Result:      res.PGN(),
		Termination: res.Reason,
		FinalFEN:    state.FEN(),
	}
	if state.StartFEN() != engine.InitialFEN {
		rec.InitialFEN = state.StartFEN()
	}

	replay, err := game.FromFEN(state.StartFEN())
	if err != nil {
		return nil, err
	}
	for _, move := range state.History() {
		board := replay.Board()
		jm := JSONMove{
			MoveNumber: replay.TurnNumber(),
			Color:      strings.ToLower(board.ToMove.String()),
			SAN:        FormatMove(&board, move, SAN),
			UCI:        move.String(),
			From:       move.From.String(),
			To:         move.To.String(),
			Piece:      pieceName(board.Get(move.From).Type),
		}
		if engine.IsCapture(&board, move) {
			jm.Captured = pieceName(capturedType(&board, move))
		}
		if move.Promotion != chess.NoPieceType {
			jm.Promotion = pieceName(move.Promotion)
		}

		if err := replay.Update(move); err != nil {
			return nil, errors.Wrapf(err, "record %s", id)
		}
		jm.FEN = replay.FEN()
		rec.Moves = append(rec.Moves, jm)
	}
	rec.PlyCount = len(rec.Moves)
	return rec, nil
}

func capturedType(board *chess.Board, move chess.Move) chess.PieceType {
	if t := board.Get(move.To).Type; t != chess.NoPieceType {
		return t
	}
	return chess.Pawn
}

func pieceName(t chess.PieceType) string {
	return strings.ToLower(t.String())
}
