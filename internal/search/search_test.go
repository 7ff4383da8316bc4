package search

import (
	"context"
	"testing"

	"github.com/lgbarn/nicechess-go/internal/chess"
	"github.com/lgbarn/nicechess-go/internal/engine"
	"github.com/lgbarn/nicechess-go/internal/errors"
	"github.com/lgbarn/nicechess-go/internal/testutil"
)

func mustBoard(t testing.TB, fen string) *chess.Board {
	t.Helper()
	board, err := engine.NewBoardFromFEN(fen)
	if err != nil {
		t.Fatalf("NewBoardFromFEN(%q): %v", fen, err)
	}
	return board
}

// minimax is an unpruned negamax over the same ordered tree.
func minimax(board *chess.Board, ply, depth int) (int, chess.Move) {
	if depth == 0 {
		return Evaluate(board, board.ToMove), chess.NullMove
	}
	moves := engine.LegalMoves(board)
	if len(moves) == 0 {
		if engine.IsInCheck(board, board.ToMove) {
			return -MateScore + ply, chess.NullMove
		}
		return 0, chess.NullMove
	}
	orderMoves(board, moves)

	best, bestMove := -Infinity, chess.NullMove
	for _, m := range moves {
		child := *board
		engine.ApplyMove(&child, m)
		score, _ := minimax(&child, ply+1, depth-1)
		if -score > best {
			best, bestMove = -score, m
		}
	}
	return best, bestMove
}

var searchFENs = []struct {
	name string
	fen  string
}{
	{"initial", engine.InitialFEN},
	{"open centre", "r1bqkbnr/pppp1ppp/2n5/4p3/4P3/5N2/PPPP1PPP/RNBQKB1R w KQkq - 2 3"},
	{"hanging queen", "rnb1kbnr/pppp1ppp/8/4p3/3qP3/5N2/PPPP1PPP/RNBQKB1R w KQkq - 0 4"},
	{"rook endgame", "8/5k2/8/3p4/8/2K5/8/4R3 b - - 0 1"},
	{"promotion race", "8/P6k/8/8/8/8/6Kp/8 w - - 0 1"},
}

func TestAlphaBetaMatchesMinimax(t *testing.T) {
	for _, tt := range searchFENs {
		for depth := 1; depth <= 3; depth++ {
			board := mustBoard(t, tt.fen)
			wantScore, wantMove := minimax(board, 0, depth)

			e := NewEngine()
			score, move, err := e.Search(context.Background(), board, depth, -Infinity, Infinity)
			testutil.AssertNoError(t, err)
			testutil.AssertEqual(t, score, wantScore, "%s depth %d score", tt.name, depth)
			testutil.AssertEqual(t, move.String(), wantMove.String(), "%s depth %d move", tt.name, depth)
		}
	}
}

func TestSearchLeavesBoardUntouched(t *testing.T) {
	board := mustBoard(t, searchFENs[1].fen)
	before := *board

	e := NewEngine()
	_, _, err := e.Search(context.Background(), board, 3, -Infinity, Infinity)
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, engine.BoardToFEN(board), engine.BoardToFEN(&before))
}

func TestThinkFindsMateInOne(t *testing.T) {
	board := mustBoard(t, "6k1/5ppp/8/8/8/8/8/R5K1 w - - 0 1")

	res := NewEngine().Think(context.Background(), board, 4)
	testutil.AssertEqual(t, res.Move.String(), "a1a8")
	testutil.AssertEqual(t, res.Score, MateScore-1)
	testutil.AssertEqual(t, res.Depth, 2)
	testutil.AssertFalse(t, res.Stopped)
	testutil.AssertTrue(t, res.Nodes > 0)
}

func TestThinkTakesHangingQueen(t *testing.T) {
	board := mustBoard(t, searchFENs[2].fen)

	res := NewEngine().Think(context.Background(), board, 2)
	testutil.AssertEqual(t, res.Move.String(), "f3d4")
}

func TestThinkNoLegalMove(t *testing.T) {
	tests := []struct {
		name string
		fen  string
	}{
		{"checkmated", "R5k1/5ppp/8/8/8/8/8/6K1 b - - 0 1"},
		{"stalemated", "7k/5Q2/6K1/8/8/8/8/8 b - - 0 1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := NewEngine().Think(context.Background(), mustBoard(t, tt.fen), 3)
			testutil.AssertTrue(t, res.Move.IsNull())
			testutil.AssertFalse(t, res.Stopped)
		})
	}
}

func TestThinkStopped(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	res := NewEngine().Think(ctx, mustBoard(t, engine.InitialFEN), 5)
	testutil.AssertTrue(t, res.Stopped)
	testutil.AssertTrue(t, res.Move.IsNull())
	testutil.AssertEqual(t, res.Depth, 0)
}

func TestSearchStoppedError(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, move, err := NewEngine().Search(ctx, mustBoard(t, engine.InitialFEN), 3, -Infinity, Infinity)
	testutil.AssertErrorIs(t, err, errors.ErrSearchStopped)
	testutil.AssertTrue(t, move.IsNull())
}

func TestOrderMovesCapturesFirst(t *testing.T) {
	board := mustBoard(t, "4k3/8/8/3p4/4P3/8/8/4K3 w - - 0 1")
	moves := engine.LegalMoves(board)
	orderMoves(board, moves)

	testutil.AssertEqual(t, moves[0].String(), "e4d5")
	for _, m := range moves[1:] {
		testutil.AssertFalse(t, engine.IsCapture(board, m), "%s ordered after the capture", m)
	}
}

func TestOrderMovesPrefersValuableVictims(t *testing.T) {
	// The e4 pawn attacks both a rook on d5 and a knight on f5.
	board := mustBoard(t, "4k3/8/8/3r1n2/4P3/8/8/4K3 w - - 0 1")
	moves := engine.LegalMoves(board)
	orderMoves(board, moves)

	testutil.AssertEqual(t, moves[0].String(), "e4d5")
	testutil.AssertEqual(t, moves[1].String(), "e4f5")
}

func BenchmarkThink(b *testing.B) {
	board := mustBoard(b, searchFENs[1].fen)
	for i := 0; i < b.N; i++ {
		NewEngine().Think(context.Background(), board, 3)
	}
}
