package hashing

import (
	"math/rand"

	"github.com/lgbarn/nicechess-go/internal/chess"
)

const numSquares = chess.BoardSize * chess.BoardSize

// Zobrist keys. The generator seed is fixed so hashes are stable between
// runs.
var (
	pieceKeys     [chess.NumColours][chess.NumPieceTypes][numSquares]uint64
	castlingKeys  [chess.AllCastling + 1]uint64
	enPassantKeys [chess.BoardSize]uint64
	whiteToMove   uint64
)

func init() {
	r := rand.New(rand.NewSource(0x6e696365)) //nolint:gosec // G404: hash keys, not secrets
	for c := range pieceKeys {
		for t := range pieceKeys[c] {
			for sq := range pieceKeys[c][t] {
				pieceKeys[c][t][sq] = r.Uint64()
			}
		}
	}
	for i := range castlingKeys {
		castlingKeys[i] = r.Uint64()
	}
	for i := range enPassantKeys {
		enPassantKeys[i] = r.Uint64()
	}
	whiteToMove = r.Uint64()
}

// GenerateZobristHash returns the Zobrist hash of a position: pieces, side
// to move, castling rights and en passant file.
func GenerateZobristHash(board *chess.Board) uint64 {
	var hash uint64
	for sq, p := range board.Squares {
		if !p.IsEmpty() {
			hash ^= pieceKeys[p.Colour][p.Type][sq]
		}
	}
	hash ^= castlingKeys[board.Castling&chess.AllCastling]
	if board.EnPassant.IsValid() {
		hash ^= enPassantKeys[board.EnPassant.File]
	}
	if board.ToMove == chess.White {
		hash ^= whiteToMove
	}
	return hash
}

// WeakHash is a cheap second hash of the piece placement only, used to
// confirm a Zobrist match.
func WeakHash(board *chess.Board) uint64 {
	var hash uint64
	for sq, p := range board.Squares {
		if !p.IsEmpty() {
			code := uint64(p.Type) + uint64(p.Colour)*uint64(chess.NumPieceTypes)
			hash += code * uint64(sq+1) * 0x9e3779b97f4a7c15
		}
	}
	return hash
}
