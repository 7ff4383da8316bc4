package engine

import (
	"fmt"

	"github.com/lgbarn/nicechess-go/internal/chess"
)

// ApplyMove plays a move on the board: the mover is relocated, a captured
// piece (including an en-passant pawn) is removed, a castling rook is moved,
// a promotion is applied, the en-passant target and castling rights are
// updated and the side to move flips. It returns the captured piece, or
// NoPiece.
//
// The move must be legal; ApplyMove does not check. Real and speculative
// moves go through the same code. A move from an empty square panics.
func ApplyMove(board *chess.Board, move chess.Move) chess.Piece {
	piece := board.Get(move.From)
	if piece.IsEmpty() {
		panic(fmt.Sprintf("engine: no piece on %v for move %v", move.From, move))
	}

	ep := board.EnPassant
	board.EnPassant = chess.NoPosition

	captured := board.Clear(move.To)
	board.Clear(move.From)

	switch piece.Type {
	case chess.Pawn:
		if move.To == ep && captured.IsEmpty() && move.From.File != move.To.File {
			captured = board.Clear(chess.NewPosition(int(move.To.File), int(move.From.Rank)))
		}
		if abs(move.SignedRankDiff()) == 2 {
			board.EnPassant = move.From.Offset(0, chess.ColourOffset(piece.Colour))
		}
		if move.Promotion != chess.NoPieceType {
			piece = piece.Promote(move.Promotion)
		}
	case chess.King:
		if abs(move.SignedFileDiff()) == 2 {
			applyCastle(board, piece.Colour, move)
		}
	}

	board.Set(move.To, piece)
	updateCastlingRights(board, move.From, move.To)
	board.ToMove = board.ToMove.Opposite()
	return captured
}

// IsCapture reports whether the move takes a piece, en passant included.
func IsCapture(board *chess.Board, move chess.Move) bool {
	if board.IsOccupied(move.To) {
		return true
	}
	return enPassantVictim(board, move.From, move.To, board.Get(move.From)).IsValid()
}
