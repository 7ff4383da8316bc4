package engine

import "github.com/lgbarn/nicechess-go/internal/chess"

// canPieceMove checks the geometry of a knight, bishop, rook, queen or
// single-step king move, including a clear path for sliders.
func canPieceMove(board *chess.Board, pieceType chess.PieceType, from, to chess.Position) bool {
	fileDiff := abs(int(to.File) - int(from.File))
	rankDiff := abs(int(to.Rank) - int(from.Rank))

	switch pieceType {
	case chess.Knight:
		return (fileDiff == 1 && rankDiff == 2) || (fileDiff == 2 && rankDiff == 1)

	case chess.Bishop:
		if fileDiff != rankDiff {
			return false
		}
		return isPathClear(board, from, to)

	case chess.Rook:
		if fileDiff != 0 && rankDiff != 0 {
			return false
		}
		return isPathClear(board, from, to)

	case chess.Queen:
		if fileDiff != rankDiff && fileDiff != 0 && rankDiff != 0 {
			return false
		}
		return isPathClear(board, from, to)

	case chess.King:
		return fileDiff <= 1 && rankDiff <= 1
	}

	return false
}

// appendPieceMoves appends the pseudo-legal moves of the piece on from.
func appendPieceMoves(moves []chess.Move, board *chess.Board, from chess.Position, piece chess.Piece) []chess.Move {
	switch piece.Type {
	case chess.Pawn:
		return appendPawnMoves(moves, board, from, piece)
	case chess.Knight:
		return appendOffsetMoves(moves, board, from, piece, knightOffsets[:])
	case chess.Bishop:
		return appendSlidingMoves(moves, board, from, piece, diagonalDirs[:])
	case chess.Rook:
		return appendSlidingMoves(moves, board, from, piece, straightDirs[:])
	case chess.Queen:
		moves = appendSlidingMoves(moves, board, from, piece, diagonalDirs[:])
		return appendSlidingMoves(moves, board, from, piece, straightDirs[:])
	case chess.King:
		moves = appendOffsetMoves(moves, board, from, piece, kingOffsets[:])
		return appendCastles(moves, board, from, piece)
	}
	return moves
}

func appendOffsetMoves(moves []chess.Move, board *chess.Board, from chess.Position, piece chess.Piece, offsets [][2]int) []chess.Move {
	for _, o := range offsets {
		to := from.Offset(o[0], o[1])
		if !to.IsValid() {
			continue
		}
		target := board.Get(to)
		if target.IsEmpty() || target.Colour != piece.Colour {
			moves = append(moves, chess.NewMove(from, to, piece))
		}
	}
	return moves
}

func appendSlidingMoves(moves []chess.Move, board *chess.Board, from chess.Position, piece chess.Piece, dirs [][2]int) []chess.Move {
	for _, dir := range dirs {
		for to := from.Offset(dir[0], dir[1]); to.IsValid(); to = to.Offset(dir[0], dir[1]) {
			target := board.Get(to)
			if target.IsEmpty() {
				moves = append(moves, chess.NewMove(from, to, piece))
				continue
			}
			if target.Colour != piece.Colour {
				moves = append(moves, chess.NewMove(from, to, piece))
			}
			break // Blocked
		}
	}
	return moves
}
