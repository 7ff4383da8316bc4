package search

import (
	"context"

	"github.com/lgbarn/nicechess-go/internal/chess"
	"github.com/lgbarn/nicechess-go/internal/engine"
	"github.com/lgbarn/nicechess-go/internal/errors"
)

const (
	// Infinity bounds every score.
	Infinity = 1_000_000
	// MateScore is the score of delivering mate at the root; mates further
	// away score one less per ply.
	MateScore = 100_000
	// MaxDepth caps the depth of a single search.
	MaxDepth = 64
)

// Result is the outcome of Think.
type Result struct {
	Move    chess.Move // best move, NullMove if none
	Score   int        // score of Move from the mover's point of view
	Depth   int        // deepest fully completed iteration
	Nodes   uint64     // nodes visited over all iterations
	Stopped bool       // the search was cancelled
}

// Engine runs searches. It keeps one scratch board per ply and is not safe
// for concurrent use; give each player its own Engine.
type Engine struct {
	arena [MaxDepth + 1]chess.Board
	nodes uint64
}

// NewEngine creates a search engine.
func NewEngine() *Engine {
	return &Engine{}
}

// Nodes returns the nodes visited since the engine was created.
func (e *Engine) Nodes() uint64 {
	return e.nodes
}

// Think runs an iterative-deepening search up to depth plies for the side
// to move and returns the move of the deepest completed iteration.
//
// If the context is cancelled, Stopped is set and Move is the best move
// found so far; it is NullMove only if not a single root move was searched
// to completion. If the side to move has no legal move, Move is NullMove
// and Stopped is false.
func (e *Engine) Think(ctx context.Context, board *chess.Board, depth int) Result {
	depth = clampDepth(depth)
	start := e.nodes
	var res Result

	if !engine.HasLegalMoves(board, board.ToMove) {
		return res
	}

	for d := 1; d <= depth; d++ {
		score, move, err := e.Search(ctx, board, d, -Infinity, Infinity)
		if err != nil {
			res.Stopped = true
			if res.Move.IsNull() && !move.IsNull() {
				res.Move, res.Score = move, score
			}
			break
		}
		res.Move, res.Score, res.Depth = move, score, d
		if isMateScore(score) {
			break
		}
	}

	res.Nodes = e.nodes - start
	return res
}

// Search scores the board for the side to move by negamax with alpha-beta
// pruning to the given depth and returns the score and best move.
//
// The context is checked at every node. On cancellation the error is
// ErrSearchStopped; the returned move is then the best root move whose
// subtree was searched completely, or NullMove.
func (e *Engine) Search(ctx context.Context, board *chess.Board, depth, alpha, beta int) (int, chess.Move, error) {
	e.arena[0] = *board
	return e.negamax(ctx, 0, clampDepth(depth), alpha, beta)
}

func (e *Engine) negamax(ctx context.Context, ply, depth, alpha, beta int) (int, chess.Move, error) {
	select {
	case <-ctx.Done():
		return 0, chess.NullMove, errors.ErrSearchStopped
	default:
	}
	e.nodes++

	board := &e.arena[ply]
	if depth == 0 {
		return Evaluate(board, board.ToMove), chess.NullMove, nil
	}

	moves := engine.LegalMoves(board)
	if len(moves) == 0 {
		if engine.IsInCheck(board, board.ToMove) {
			return -MateScore + ply, chess.NullMove, nil
		}
		return 0, chess.NullMove, nil
	}
	orderMoves(board, moves)

	best, bestMove := -Infinity, chess.NullMove
	for _, m := range moves {
		child := &e.arena[ply+1]
		*child = *board
		engine.ApplyMove(child, m)

		score, _, err := e.negamax(ctx, ply+1, depth-1, -beta, -alpha)
		if err != nil {
			return best, bestMove, err
		}
		score = -score

		if score > best {
			best, bestMove = score, m
		}
		if best > alpha {
			alpha = best
		}
		if alpha >= beta {
			break
		}
	}
	return best, bestMove, nil
}

func clampDepth(depth int) int {
	if depth < 1 {
		return 1
	}
	if depth > MaxDepth-1 {
		return MaxDepth - 1
	}
	return depth
}

func isMateScore(score int) bool {
	return score >= MateScore-MaxDepth || score <= -MateScore+MaxDepth
}
