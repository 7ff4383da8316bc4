package engine

import "github.com/lgbarn/nicechess-go/internal/chess"

var (
	knightOffsets = [8][2]int{{-2, -1}, {-2, 1}, {-1, -2}, {-1, 2}, {1, -2}, {1, 2}, {2, -1}, {2, 1}}
	kingOffsets   = [8][2]int{{-1, -1}, {-1, 0}, {-1, 1}, {0, -1}, {0, 1}, {1, -1}, {1, 0}, {1, 1}}
	diagonalDirs  = [4][2]int{{-1, -1}, {-1, 1}, {1, -1}, {1, 1}}
	straightDirs  = [4][2]int{{-1, 0}, {1, 0}, {0, -1}, {0, 1}}
)

// IsInCheck returns true if the given colour's king is in check.
// A board without that king is never in check.
func IsInCheck(board *chess.Board, colour chess.Colour) bool {
	king := board.KingSquare(colour)
	if !king.IsValid() {
		return false
	}
	return isSquareAttacked(board, king, colour.Opposite())
}

// IsSquareAttacked returns true if the square is attacked by the given colour.
func IsSquareAttacked(board *chess.Board, sq chess.Position, byColour chess.Colour) bool {
	return isSquareAttacked(board, sq, byColour)
}

// isSquareAttacked walks outwards from the square looking for attackers.
func isSquareAttacked(board *chess.Board, sq chess.Position, byColour chess.Colour) bool {
	// Pawns attack from one rank behind, seen from their side.
	pawn := chess.NewPiece(byColour, chess.Pawn)
	back := -chess.ColourOffset(byColour)
	if board.Get(sq.Offset(-1, back)) == pawn || board.Get(sq.Offset(1, back)) == pawn {
		return true
	}

	knight := chess.NewPiece(byColour, chess.Knight)
	for _, o := range knightOffsets {
		if board.Get(sq.Offset(o[0], o[1])) == knight {
			return true
		}
	}

	king := chess.NewPiece(byColour, chess.King)
	for _, o := range kingOffsets {
		if board.Get(sq.Offset(o[0], o[1])) == king {
			return true
		}
	}

	queen := chess.NewPiece(byColour, chess.Queen)
	if rayHits(board, sq, diagonalDirs[:], chess.NewPiece(byColour, chess.Bishop), queen) {
		return true
	}
	return rayHits(board, sq, straightDirs[:], chess.NewPiece(byColour, chess.Rook), queen)
}

// rayHits reports whether the first piece met along any direction is a or b.
func rayHits(board *chess.Board, sq chess.Position, dirs [][2]int, a, b chess.Piece) bool {
	for _, dir := range dirs {
		for p := sq.Offset(dir[0], dir[1]); p.IsValid(); p = p.Offset(dir[0], dir[1]) {
			piece := board.Get(p)
			if piece.IsEmpty() {
				continue
			}
			if piece == a || piece == b {
				return true
			}
			break // Blocked
		}
	}
	return false
}

// Attacks returns every square attacked by pieces of the given colour.
// Sliders stop at, and include, the first occupied square in each direction.
func Attacks(board *chess.Board, colour chess.Colour) chess.Bitboard {
	var attacks chess.Bitboard
	for own := board.ByColour[colour]; own != 0; {
		from := own.PopLSB()
		switch board.Get(from).Type {
		case chess.Pawn:
			dir := chess.ColourOffset(colour)
			attacks |= from.Offset(-1, dir).Bit() | from.Offset(1, dir).Bit()
		case chess.Knight:
			attacks |= offsetTargets(from, knightOffsets[:])
		case chess.King:
			attacks |= offsetTargets(from, kingOffsets[:])
		case chess.Bishop:
			attacks |= rayTargets(board, from, diagonalDirs[:])
		case chess.Rook:
			attacks |= rayTargets(board, from, straightDirs[:])
		case chess.Queen:
			attacks |= rayTargets(board, from, diagonalDirs[:]) | rayTargets(board, from, straightDirs[:])
		}
	}
	return attacks
}

func offsetTargets(from chess.Position, offsets [][2]int) chess.Bitboard {
	var bb chess.Bitboard
	for _, o := range offsets {
		bb |= from.Offset(o[0], o[1]).Bit()
	}
	return bb
}

func rayTargets(board *chess.Board, from chess.Position, dirs [][2]int) chess.Bitboard {
	var bb chess.Bitboard
	for _, dir := range dirs {
		for p := from.Offset(dir[0], dir[1]); p.IsValid(); p = p.Offset(dir[0], dir[1]) {
			bb |= p.Bit()
			if board.IsOccupied(p) {
				break
			}
		}
	}
	return bb
}
