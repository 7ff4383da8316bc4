package player

import (
	"context"
	"log"
	"math/rand"

	"github.com/lgbarn/nicechess-go/internal/chess"
	"github.com/lgbarn/nicechess-go/internal/errors"
	"github.com/lgbarn/nicechess-go/internal/game"
)

// Random plays a uniformly chosen legal move.
type Random struct {
	base
	rng *rand.Rand
}

// NewRandom creates a random player. Equal seeds give equal games.
func NewRandom(colour chess.Colour, seed int64, logger *log.Logger) *Random {
	return &Random{
		base: newBase(colour, 0, logger),
		rng:  rand.New(rand.NewSource(seed)), //nolint:gosec // G404: move choice, not security
	}
}

// Think picks a legal move.
func (r *Random) Think(ctx context.Context, state *game.State) (chess.Move, error) {
	if ctx.Err() != nil {
		return chess.NullMove, errors.ErrSearchStopped
	}
	moves := state.LegalMoves()
	if len(moves) == 0 {
		return chess.NullMove, errors.ErrNoLegalMove
	}
	return moves[r.rng.Intn(len(moves))], nil
}
