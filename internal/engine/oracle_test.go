package engine

import (
	"sort"
	"testing"

	notnil "github.com/notnil/chess"

	"github.com/lgbarn/nicechess-go/internal/testutil"
)

// oracleMoves lists the legal moves of a position according to notnil/chess.
func oracleMoves(t *testing.T, fen string) []string {
	t.Helper()
	opt, err := notnil.FEN(fen)
	if err != nil {
		t.Fatalf("notnil FEN(%q): %v", fen, err)
	}
	game := notnil.NewGame(opt)
	var out []string
	for _, m := range game.ValidMoves() {
		out = append(out, m.String())
	}
	sort.Strings(out)
	return out
}

func TestLegalMovesMatchOracle(t *testing.T) {
	fens := []string{
		InitialFEN,
		kiwipeteFEN,
		"8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1",
		"r3k2r/Pppp1ppp/1b3nbN/nP6/BBP1P3/q4N2/Pp1P2PP/R2Q1RK1 w kq - 0 1",
		"rnbq1k1r/pp1Pbppp/2p5/8/2B5/8/PPP1NnPP/RNBQK2R w KQ - 1 8",
		"rnbqkbnr/ppp1p1pp/8/3pPp2/8/8/PPPP1PPP/RNBQKBNR w KQkq f6 0 3",
		"r3k2r/8/8/8/8/8/5r2/R3K2R w KQkq - 0 1",
		"rnb1kbnr/pppp1ppp/8/4p3/6Pq/5P2/PPPPP2P/RNBQKBNR w KQkq - 1 3",
	}

	for _, fen := range fens {
		t.Run(fen, func(t *testing.T) {
			board := mustBoard(t, fen)
			got := testutil.MoveStrings(LegalMoves(board))
			if len(got) == 0 {
				got = nil
			}
			testutil.AssertEqual(t, got, oracleMoves(t, fen))
		})
	}
}

// TestRandomWalkMatchesOracle follows the first legal move a few dozen
// times, comparing move lists at every step.
func TestRandomWalkMatchesOracle(t *testing.T) {
	board := mustBoard(t, kiwipeteFEN)
	clocks := Clocks{Halfmove: 0, Fullmove: 1}

	for ply := 0; ply < 40; ply++ {
		fen := FormatFEN(board, clocks)
		moves := LegalMoves(board)
		got := testutil.MoveStrings(moves)
		if len(got) == 0 {
			got = nil
		}
		testutil.AssertEqual(t, got, oracleMoves(t, fen), "ply %d %s", ply, fen)
		if len(moves) == 0 {
			return
		}
		ApplyMove(board, moves[(ply*7)%len(moves)])
	}
}
