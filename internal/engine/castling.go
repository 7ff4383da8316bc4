package engine

import (
	"github.com/lgbarn/nicechess-go/internal/chess"
	"github.com/lgbarn/nicechess-go/internal/errors"
)

const (
	kingFile          = 4
	kingsideRookFile  = 7
	queensideRookFile = 0
)

// castleSide describes one castling option of one colour.
type castleSide struct {
	right    chess.Castling
	kingTo   int   // king destination file
	rookFrom int   // rook start file
	rookTo   int   // rook destination file
	between  []int // files that must be empty
	transit  int   // file the king passes over
}

var (
	kingside  = castleSide{kingTo: 6, rookFrom: kingsideRookFile, rookTo: 5, between: []int{5, 6}, transit: 5}
	queenside = castleSide{kingTo: 2, rookFrom: queensideRookFile, rookTo: 3, between: []int{1, 2, 3}, transit: 3}
)

// castleSideFor returns the castling option a king move to toFile selects.
func castleSideFor(colour chess.Colour, toFile int) (castleSide, bool) {
	switch toFile {
	case kingside.kingTo:
		side := kingside
		side.right = chess.KingsideRight(colour)
		return side, true
	case queenside.kingTo:
		side := queenside
		side.right = chess.QueensideRight(colour)
		return side, true
	}
	return castleSide{}, false
}

// checkCastle validates a king move of two files: the right must remain,
// the rook must stand on its square, the squares between must be empty and
// the king may not castle out of, through or into check.
func checkCastle(board *chess.Board, move chess.Move) error {
	colour := move.Piece.Colour
	rank := chess.HomeRank(colour)
	if move.From != chess.NewPosition(kingFile, rank) || int(move.To.Rank) != rank {
		return errors.ErrBadGeometry
	}
	side, ok := castleSideFor(colour, int(move.To.File))
	if !ok {
		return errors.ErrBadGeometry
	}
	if !board.Castling.Has(side.right) {
		return errors.ErrCastleNotAllowed
	}
	if board.Get(chess.NewPosition(side.rookFrom, rank)) != chess.NewPiece(colour, chess.Rook) {
		return errors.ErrCastleNotAllowed
	}
	for _, file := range side.between {
		if board.IsOccupied(chess.NewPosition(file, rank)) {
			return errors.ErrCastleNotAllowed
		}
	}
	enemy := colour.Opposite()
	if IsInCheck(board, colour) ||
		isSquareAttacked(board, chess.NewPosition(side.transit, rank), enemy) ||
		isSquareAttacked(board, move.To, enemy) {
		return errors.ErrCastleNotAllowed
	}
	return nil
}

// appendCastles appends the castling moves available to the king on from.
func appendCastles(moves []chess.Move, board *chess.Board, from chess.Position, piece chess.Piece) []chess.Move {
	if piece.Colour != board.ToMove || from != chess.NewPosition(kingFile, chess.HomeRank(piece.Colour)) {
		return moves
	}
	for _, file := range [2]int{kingside.kingTo, queenside.kingTo} {
		move := chess.NewMove(from, chess.NewPosition(file, int(from.Rank)), piece)
		if checkCastle(board, move) == nil {
			moves = append(moves, move)
		}
	}
	return moves
}

// applyCastle relocates the rook of a castling move. The king itself is
// moved by ApplyMove.
func applyCastle(board *chess.Board, colour chess.Colour, move chess.Move) {
	side, ok := castleSideFor(colour, int(move.To.File))
	if !ok {
		return
	}
	rank := int(move.From.Rank)
	rook := board.Clear(chess.NewPosition(side.rookFrom, rank))
	board.Set(chess.NewPosition(side.rookTo, rank), rook)
}

// castlingRightsAt returns the rights lost when a piece leaves or is
// captured on the square.
func castlingRightsAt(sq chess.Position) chess.Castling {
	switch sq {
	case chess.NewPosition(kingFile, 0):
		return chess.WhiteKingside | chess.WhiteQueenside
	case chess.NewPosition(kingsideRookFile, 0):
		return chess.WhiteKingside
	case chess.NewPosition(queensideRookFile, 0):
		return chess.WhiteQueenside
	case chess.NewPosition(kingFile, 7):
		return chess.BlackKingside | chess.BlackQueenside
	case chess.NewPosition(kingsideRookFile, 7):
		return chess.BlackKingside
	case chess.NewPosition(queensideRookFile, 7):
		return chess.BlackQueenside
	}
	return chess.NoCastling
}

// updateCastlingRights strips the rights touched by a move: a king or rook
// leaving its home square, or a rook captured on it.
func updateCastlingRights(board *chess.Board, from, to chess.Position) {
	board.Castling &^= castlingRightsAt(from) | castlingRightsAt(to)
}
