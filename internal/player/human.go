package player

import (
	"context"
	"log"
	"sync"
	"sync/atomic"

	"github.com/lgbarn/nicechess-go/internal/chess"
	"github.com/lgbarn/nicechess-go/internal/errors"
	"github.com/lgbarn/nicechess-go/internal/game"
)

// Human waits for moves delivered from outside, typically a UI or a
// terminal reader, through SendMove and SendPromotion.
type Human struct {
	base
	moves      chan chess.Move
	promotions chan chess.PieceType
	needMove   atomic.Bool

	mu        sync.Mutex
	promoting *chess.Move
}

// NewHuman creates a human player for the given side.
func NewHuman(colour chess.Colour, logger *log.Logger) *Human {
	return &Human{
		base:       newBase(colour, 0, logger),
		moves:      make(chan chess.Move),
		promotions: make(chan chess.PieceType),
	}
}

// IsHuman reports true.
func (h *Human) IsHuman() bool { return true }

// NeedMove reports whether Think is waiting for a move.
func (h *Human) NeedMove() bool { return h.needMove.Load() }

// Think blocks until a move is sent or ctx is done. The move is not
// validated here; the match rejects illegal moves and asks again.
func (h *Human) Think(ctx context.Context, state *game.State) (chess.Move, error) {
	if len(state.LegalMoves()) == 0 {
		return chess.NullMove, errors.ErrNoLegalMove
	}

	h.needMove.Store(true)
	defer h.needMove.Store(false)

	select {
	case m := <-h.moves:
		return m, nil
	case <-ctx.Done():
		return chess.NullMove, errors.ErrSearchStopped
	}
}

// SendMove hands a move to a waiting Think.
func (h *Human) SendMove(ctx context.Context, move chess.Move) error {
	select {
	case h.moves <- move:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// AwaitingPromotion returns the move waiting for a promotion piece, if
// ChoosePromotion is blocked.
func (h *Human) AwaitingPromotion() (chess.Move, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.promoting == nil {
		return chess.NullMove, false
	}
	return *h.promoting, true
}

func (h *Human) setPromoting(move *chess.Move) {
	h.mu.Lock()
	h.promoting = move
	h.mu.Unlock()
}

// ChoosePromotion blocks until a promotion piece is sent or ctx is done.
func (h *Human) ChoosePromotion(ctx context.Context, move chess.Move) (chess.PieceType, error) {
	h.logger.Printf("%s: choose a promotion piece for %s", h.colour, move)

	h.setPromoting(&move)
	h.needMove.Store(true)
	defer func() {
		h.needMove.Store(false)
		h.setPromoting(nil)
	}()

	select {
	case t := <-h.promotions:
		return t, nil
	case <-ctx.Done():
		return chess.NoPieceType, errors.ErrSearchStopped
	}
}

// SendPromotion hands a promotion piece to a waiting ChoosePromotion.
func (h *Human) SendPromotion(ctx context.Context, t chess.PieceType) error {
	select {
	case h.promotions <- t:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
