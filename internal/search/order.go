package search

import (
	"sort"

	"github.com/lgbarn/nicechess-go/internal/chess"
	"github.com/lgbarn/nicechess-go/internal/engine"
)

// orderMoves sorts captures first (most valuable victim, then least
// valuable attacker), then promotions, then quiet moves. The sort is
// stable so equal moves keep generation order.
func orderMoves(board *chess.Board, moves []chess.Move) {
	keys := make([]int, len(moves))
	for i, m := range moves {
		keys[i] = moveOrderKey(board, m)
	}
	sort.Stable(byKey{moves: moves, keys: keys})
}

func moveOrderKey(board *chess.Board, m chess.Move) int {
	key := 0
	if engine.IsCapture(board, m) {
		victim := board.Get(m.To).Type
		if victim == chess.NoPieceType {
			victim = chess.Pawn // en passant
		}
		key += 10*pieceValues[victim] - pieceValues[m.Piece.Type]/10 + 10000
	}
	if m.Promotion != chess.NoPieceType {
		key += pieceValues[m.Promotion]
	}
	return key
}

type byKey struct {
	moves []chess.Move
	keys  []int
}

func (b byKey) Len() int           { return len(b.moves) }
func (b byKey) Less(i, j int) bool { return b.keys[i] > b.keys[j] }
func (b byKey) Swap(i, j int) {
	b.moves[i], b.moves[j] = b.moves[j], b.moves[i]
	b.keys[i], b.keys[j] = b.keys[j], b.keys[i]
}
