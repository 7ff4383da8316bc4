package engine

import (
	"fmt"

	"github.com/lgbarn/nicechess-go/internal/chess"
	"github.com/lgbarn/nicechess-go/internal/errors"
)

// IsCheckmate returns true if the given colour is in check with no legal move.
func IsCheckmate(board *chess.Board, colour chess.Colour) bool {
	return IsInCheck(board, colour) && !HasLegalMoves(board, colour)
}

// IsStalemate returns true if the given colour is not in check but has no legal move.
func IsStalemate(board *chess.Board, colour chess.Colour) bool {
	return !IsInCheck(board, colour) && !HasLegalMoves(board, colour)
}

// IsMaterialDraw returns true if neither side can possibly mate:
// king against king, king and one minor piece against king, or king and
// bishop against king and bishop with both bishops on the same colour.
func IsMaterialDraw(board *chess.Board) bool {
	heavy := board.ByType[chess.Pawn] | board.ByType[chess.Rook] | board.ByType[chess.Queen]
	if heavy != 0 {
		return false
	}

	minors := func(colour chess.Colour) int {
		return board.Pieces(colour, chess.Knight).Count() + board.Pieces(colour, chess.Bishop).Count()
	}
	white, black := minors(chess.White), minors(chess.Black)

	switch {
	case white+black <= 1:
		return true
	case white == 1 && black == 1 && board.ByType[chess.Knight] == 0:
		bishops := board.ByType[chess.Bishop].Squares()
		return bishops[0].IsLight() == bishops[1].IsLight()
	}
	return false
}

// Validate checks that the board could occur in a game: one king per side,
// no pawn on a back rank and the side not to move not in check.
func Validate(board *chess.Board) error {
	for _, colour := range []chess.Colour{chess.White, chess.Black} {
		if n := board.Pieces(colour, chess.King).Count(); n != 1 {
			return fmt.Errorf("%v has %d kings: %w", colour, n, errors.ErrInvalidPosition)
		}
	}
	if board.ByType[chess.Pawn]&(chess.RankMask(0)|chess.RankMask(chess.BoardSize-1)) != 0 {
		return fmt.Errorf("pawn on a back rank: %w", errors.ErrInvalidPosition)
	}
	if IsInCheck(board, board.ToMove.Opposite()) {
		return fmt.Errorf("%v is in check but not to move: %w", board.ToMove.Opposite(), errors.ErrInvalidPosition)
	}
	return nil
}

// Perft counts the leaf nodes of the legal move tree to the given depth.
func Perft(board *chess.Board, depth int) int {
	if depth <= 0 {
		return 1
	}
	moves := LegalMoves(board)
	if depth == 1 {
		return len(moves)
	}
	nodes := 0
	for _, m := range moves {
		child := *board
		ApplyMove(&child, m)
		nodes += Perft(&child, depth-1)
	}
	return nodes
}
