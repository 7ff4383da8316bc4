package engine

import (
	"github.com/lgbarn/nicechess-go/internal/chess"
	"github.com/lgbarn/nicechess-go/internal/errors"
)

// promotionOrder lists promotion pieces, strongest first.
var promotionOrder = [4]chess.PieceType{chess.Queen, chess.Rook, chess.Bishop, chess.Knight}

// pawnStartRank returns the rank index pawns of the colour start on.
func pawnStartRank(colour chess.Colour) int {
	return chess.HomeRank(colour) + chess.ColourOffset(colour)
}

// enPassantVictim returns the square of the pawn captured by an en-passant
// move, or NoPosition if the move is not an en-passant capture.
func enPassantVictim(board *chess.Board, from, to chess.Position, piece chess.Piece) chess.Position {
	if piece.Type != chess.Pawn || to != board.EnPassant || board.IsOccupied(to) || from.File == to.File {
		return chess.NoPosition
	}
	victim := chess.NewPosition(int(to.File), int(from.Rank))
	if board.Get(victim) != chess.NewPiece(piece.Colour.Opposite(), chess.Pawn) {
		return chess.NoPosition
	}
	return victim
}

// checkPawnMove validates pawn geometry and the promotion field.
func checkPawnMove(board *chess.Board, move chess.Move) error {
	piece := move.Piece
	dir := chess.ColourOffset(piece.Colour)
	df, dr := move.SignedFileDiff(), move.SignedRankDiff()
	target := board.Get(move.To)

	switch {
	case df == 0 && dr == dir:
		if !target.IsEmpty() {
			return errors.ErrBadGeometry
		}
	case df == 0 && dr == 2*dir:
		if int(move.From.Rank) != pawnStartRank(piece.Colour) ||
			!target.IsEmpty() || board.IsOccupied(move.From.Offset(0, dir)) {
			return errors.ErrBadGeometry
		}
	case abs(df) == 1 && dr == dir:
		if target.IsEmpty() && !enPassantVictim(board, move.From, move.To, piece).IsValid() {
			return errors.ErrBadGeometry
		}
	default:
		return errors.ErrBadGeometry
	}

	if move.NeedsPromotion() {
		if move.Promotion == chess.NoPieceType {
			return errors.ErrPromotionRequired
		}
		if !move.Promotion.IsPromotionTarget() {
			return errors.ErrBadPromotion
		}
	} else if move.Promotion != chess.NoPieceType {
		return errors.ErrBadPromotion
	}
	return nil
}

// appendPawnMoves appends pushes, captures and en-passant captures. A move
// onto the last rank is appended once per promotion piece.
func appendPawnMoves(moves []chess.Move, board *chess.Board, from chess.Position, piece chess.Piece) []chess.Move {
	dir := chess.ColourOffset(piece.Colour)

	one := from.Offset(0, dir)
	if one.IsValid() && !board.IsOccupied(one) {
		moves = appendPawnMove(moves, chess.NewMove(from, one, piece))
		two := from.Offset(0, 2*dir)
		if int(from.Rank) == pawnStartRank(piece.Colour) && !board.IsOccupied(two) {
			moves = append(moves, chess.NewMove(from, two, piece))
		}
	}

	for _, df := range [2]int{-1, 1} {
		to := from.Offset(df, dir)
		if !to.IsValid() {
			continue
		}
		target := board.Get(to)
		switch {
		case !target.IsEmpty() && target.Colour != piece.Colour:
			moves = appendPawnMove(moves, chess.NewMove(from, to, piece))
		case piece.Colour == board.ToMove && enPassantVictim(board, from, to, piece).IsValid():
			moves = append(moves, chess.NewMove(from, to, piece))
		}
	}
	return moves
}

func appendPawnMove(moves []chess.Move, move chess.Move) []chess.Move {
	if !move.NeedsPromotion() {
		return append(moves, move)
	}
	for _, t := range promotionOrder {
		moves = append(moves, move.WithPromotion(t))
	}
	return moves
}
