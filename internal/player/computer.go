package player

import (
	"context"
	"log"

	"github.com/lgbarn/nicechess-go/internal/chess"
	"github.com/lgbarn/nicechess-go/internal/errors"
	"github.com/lgbarn/nicechess-go/internal/game"
	"github.com/lgbarn/nicechess-go/internal/search"
)

// Computer chooses moves with the built-in alpha-beta search, looking Ply
// half-moves ahead.
type Computer struct {
	base
	engine *search.Engine
}

// NewComputer creates a computer player.
func NewComputer(colour chess.Colour, ply int, logger *log.Logger) *Computer {
	if ply < 1 {
		ply = 1
	}
	return &Computer{
		base:   newBase(colour, ply, logger),
		engine: search.NewEngine(),
	}
}

// Think searches the position. A search cancelled before its first
// iteration finished returns ErrSearchStopped.
func (c *Computer) Think(ctx context.Context, state *game.State) (chess.Move, error) {
	board := state.Board()
	res := c.engine.Think(ctx, &board, c.ply)

	switch {
	case res.Move.IsNull() && res.Stopped:
		return chess.NullMove, errors.ErrSearchStopped
	case res.Move.IsNull():
		return chess.NullMove, errors.ErrNoLegalMove
	}

	c.logger.Printf("%s: %s depth %d score %d nodes %d", c.colour, res.Move, res.Depth, res.Score, res.Nodes)
	return res.Move, nil
}
