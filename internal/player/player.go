// Package player defines the actors that choose moves in a match: a human
// at the keyboard, the built-in search engine, a random mover and external
// engines speaking UCI or Xboard.
package player

import (
	"context"
	"io"
	"log"

	"github.com/lgbarn/nicechess-go/internal/chess"
	"github.com/lgbarn/nicechess-go/internal/game"
)

// Player produces moves for one side of a game.
//
// Think is called from a worker goroutine with a snapshot of the game and
// must return promptly once ctx is done, with ErrSearchStopped. A side with
// no legal move gets ErrNoLegalMove. All other methods are called from the
// goroutine that drives the match.
type Player interface {
	Think(ctx context.Context, state *game.State) (chess.Move, error)
	OpponentMove(move chess.Move, state *game.State) error
	IsHuman() bool
	NeedMove() bool
	Ply() int
	SetPly(ply int)
	Colour() chess.Colour
	NewGame(state *game.State) error
	Close() error
}

// Promoter is implemented by players that pick a promotion piece only after
// their pawn has reached the last rank.
type Promoter interface {
	ChoosePromotion(ctx context.Context, move chess.Move) (chess.PieceType, error)
}

// Undoer is implemented by players that keep their own copy of the game
// and must be told when a move is taken back.
type Undoer interface {
	UndoMove() error
}

// base holds what every player shares.
type base struct {
	colour chess.Colour
	ply    int
	logger *log.Logger
}

func newBase(colour chess.Colour, ply int, logger *log.Logger) base {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return base{colour: colour, ply: ply, logger: logger}
}

func (b *base) Colour() chess.Colour { return b.colour }
func (b *base) Ply() int             { return b.ply }
func (b *base) SetPly(ply int)       { b.ply = ply }
func (b *base) IsHuman() bool        { return false }
func (b *base) NeedMove() bool       { return false }

func (b *base) OpponentMove(chess.Move, *game.State) error { return nil }
func (b *base) NewGame(*game.State) error                  { return nil }
func (b *base) Close() error                               { return nil }
