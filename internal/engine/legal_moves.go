package engine

import (
	"fmt"

	"github.com/lgbarn/nicechess-go/internal/chess"
	"github.com/lgbarn/nicechess-go/internal/errors"
)

// ResolveMove fills in the moving piece from the board, for moves that
// were parsed from text.
func ResolveMove(board *chess.Board, move chess.Move) chess.Move {
	move.Piece = board.Get(move.From)
	return move
}

// CheckMove returns nil if the move is legal for the side to move.
// Otherwise the error wraps ErrIllegalMove and names the reason.
// The board is not modified.
func CheckMove(board *chess.Board, move chess.Move) error {
	if !move.From.IsValid() || !move.To.IsValid() {
		return errors.ErrOffBoard
	}
	if move.From == move.To {
		return errors.ErrBadGeometry
	}

	piece := board.Get(move.From)
	if piece.IsEmpty() {
		return errors.ErrNoPiece
	}
	if piece.Colour != board.ToMove {
		return errors.ErrWrongColour
	}
	if !move.Piece.IsEmpty() && move.Piece != piece {
		return fmt.Errorf("%v is not on %v: %w", move.Piece, move.From, errors.ErrNoPiece)
	}
	move.Piece = piece

	if target := board.Get(move.To); !target.IsEmpty() && target.Colour == piece.Colour {
		return errors.ErrBadGeometry
	}

	switch {
	case piece.Type == chess.Pawn:
		if err := checkPawnMove(board, move); err != nil {
			return err
		}
	case move.IsCastle():
		if move.Promotion != chess.NoPieceType {
			return errors.ErrBadPromotion
		}
		if err := checkCastle(board, move); err != nil {
			return err
		}
	default:
		if move.Promotion != chess.NoPieceType {
			return errors.ErrBadPromotion
		}
		if !canPieceMove(board, piece.Type, move.From, move.To) {
			return errors.ErrBadGeometry
		}
	}

	if leavesKingInCheck(board, move) {
		return errors.ErrSelfCheck
	}
	return nil
}

// IsMoveLegal reports whether the move is legal for the side to move.
func IsMoveLegal(board *chess.Board, move chess.Move) bool {
	return CheckMove(board, move) == nil
}

// leavesKingInCheck plays the move on a scratch copy and tests the mover's king.
func leavesKingInCheck(board *chess.Board, move chess.Move) bool {
	colour := board.Get(move.From).Colour
	scratch := *board
	ApplyMove(&scratch, move)
	return IsInCheck(&scratch, colour)
}

// PseudoLegalMoves generates every move obeying piece geometry for the
// colour, without checking whether it leaves the king in check. Castling
// moves are only generated for the side to move and are fully checked.
func PseudoLegalMoves(board *chess.Board, colour chess.Colour) []chess.Move {
	moves := make([]chess.Move, 0, 48)
	for own := board.ByColour[colour]; own != 0; {
		from := own.PopLSB()
		moves = appendPieceMoves(moves, board, from, board.Get(from))
	}
	return moves
}

// LegalMoves generates every legal move for the side to move.
func LegalMoves(board *chess.Board) []chess.Move {
	moves := PseudoLegalMoves(board, board.ToMove)
	legal := moves[:0]
	for _, m := range moves {
		if !leavesKingInCheck(board, m) {
			legal = append(legal, m)
		}
	}
	return legal
}

// LegalMovesFrom generates the legal moves of the piece on pos. It returns
// nil unless a piece of the side to move stands there.
func LegalMovesFrom(board *chess.Board, pos chess.Position) []chess.Move {
	piece := board.Get(pos)
	if piece.IsEmpty() || piece.Colour != board.ToMove {
		return nil
	}
	var legal []chess.Move
	for _, m := range appendPieceMoves(nil, board, pos, piece) {
		if !leavesKingInCheck(board, m) {
			legal = append(legal, m)
		}
	}
	return legal
}

// HasLegalMoves returns true if the given colour has at least one legal move.
func HasLegalMoves(board *chess.Board, colour chess.Colour) bool {
	var buf [32]chess.Move
	for own := board.ByColour[colour]; own != 0; {
		from := own.PopLSB()
		for _, m := range appendPieceMoves(buf[:0], board, from, board.Get(from)) {
			if !leavesKingInCheck(board, m) {
				return true
			}
		}
	}
	return false
}
