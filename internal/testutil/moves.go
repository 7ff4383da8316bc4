package testutil

import (
	"sort"
	"testing"

	"github.com/lgbarn/nicechess-go/internal/chess"
)

// MoveStrings returns the long algebraic form of each move, sorted.
func MoveStrings(moves []chess.Move) []string {
	out := make([]string, len(moves))
	for i, m := range moves {
		out[i] = m.String()
	}
	sort.Strings(out)
	return out
}

// MustParseMove parses long algebraic notation or fails the test.
// The returned move has no piece set.
func MustParseMove(t testing.TB, s string) chess.Move {
	t.Helper()
	m, err := chess.ParseMove(s)
	if err != nil {
		t.Fatalf("ParseMove(%q): %v", s, err)
	}
	return m
}

// PieceCount returns how many pieces stand on the board.
func PieceCount(board *chess.Board) int {
	return board.Occupied().Count()
}
