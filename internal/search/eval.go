// Package search chooses moves with a depth-limited negamax search with
// alpha-beta pruning over a static positional evaluation.
package search

import (
	"github.com/lgbarn/nicechess-go/internal/chess"
	"github.com/lgbarn/nicechess-go/internal/engine"
)

// Material values in centipawns.
const (
	PawnValue   = 100
	KnightValue = 320
	BishopValue = 330
	RookValue   = 500
	QueenValue  = 900
)

// Positional weights.
const (
	IsolatedPawnPenalty = 15
	DoubledPawnPenalty  = 10
	MobilityWeight      = 2

	// endgameMaterial is the most non-pawn material a side may keep for the
	// position to count as an endgame: a rook and a minor piece.
	endgameMaterial = RookValue + BishopValue
)

var pieceValues = [chess.NumPieceTypes]int{
	chess.Pawn:   PawnValue,
	chess.Knight: KnightValue,
	chess.Bishop: BishopValue,
	chess.Rook:   RookValue,
	chess.Queen:  QueenValue,
}

// PieceValue returns the material value of a piece type. Kings are worth 0.
func PieceValue(t chess.PieceType) int {
	return pieceValues[t]
}

// Evaluate scores the board from colour's point of view: positive is good
// for colour. It sums material, piece-square bonuses, pawn-structure
// penalties and mobility for both sides.
func Evaluate(board *chess.Board, colour chess.Colour) int {
	endgame := IsEndgame(board)
	score := sideScore(board, chess.White, endgame) - sideScore(board, chess.Black, endgame)
	if colour == chess.Black {
		return -score
	}
	return score
}

// IsEndgame reports whether neither side has a queen, or both sides are
// down to at most a rook and a minor piece besides pawns.
func IsEndgame(board *chess.Board) bool {
	if board.ByType[chess.Queen] == 0 {
		return true
	}
	return nonPawnMaterial(board, chess.White) <= endgameMaterial &&
		nonPawnMaterial(board, chess.Black) <= endgameMaterial
}

func nonPawnMaterial(board *chess.Board, colour chess.Colour) int {
	total := 0
	for t := chess.Knight; t <= chess.Queen; t++ {
		total += board.Pieces(colour, t).Count() * pieceValues[t]
	}
	return total
}

func sideScore(board *chess.Board, colour chess.Colour, endgame bool) int {
	score := 0
	for own := board.ByColour[colour]; own != 0; {
		sq := own.PopLSB()
		piece := board.Get(sq)
		score += pieceValues[piece.Type] + squareBonus(piece, sq, endgame)
	}
	score -= pawnStructurePenalty(board.Pieces(colour, chess.Pawn))
	score += MobilityWeight * (engine.Attacks(board, colour) &^ board.ByColour[colour]).Count()
	return score
}

// pawnStructurePenalty charges isolated pawns (no friendly pawn on an
// adjacent file) and doubled pawns (each extra pawn on a file).
func pawnStructurePenalty(pawns chess.Bitboard) int {
	penalty := 0
	for file := 0; file < chess.BoardSize; file++ {
		onFile := (pawns & chess.FileMask(file)).Count()
		if onFile == 0 {
			continue
		}
		if onFile > 1 {
			penalty += (onFile - 1) * DoubledPawnPenalty
		}
		if pawns&(chess.FileMask(file-1)|chess.FileMask(file+1)) == 0 {
			penalty += onFile * IsolatedPawnPenalty
		}
	}
	return penalty
}
