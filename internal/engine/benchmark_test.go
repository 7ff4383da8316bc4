package engine

import "testing"

var benchFENs = map[string]string{
	"initial":  InitialFEN,
	"kiwipete": kiwipeteFEN,
	"endgame":  "8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1",
}

func BenchmarkLegalMoves(b *testing.B) {
	for name, fen := range benchFENs {
		board := mustBoard(b, fen)
		b.Run(name, func(b *testing.B) {
			for i := 0; i < b.N; i++ {
				LegalMoves(board)
			}
		})
	}
}

func BenchmarkPerft3(b *testing.B) {
	board := NewInitialBoard()
	for i := 0; i < b.N; i++ {
		Perft(board, 3)
	}
}

func BenchmarkIsInCheck(b *testing.B) {
	board := mustBoard(b, kiwipeteFEN)
	for i := 0; i < b.N; i++ {
		IsInCheck(board, board.ToMove)
	}
}

func BenchmarkAttacks(b *testing.B) {
	board := mustBoard(b, kiwipeteFEN)
	for i := 0; i < b.N; i++ {
		Attacks(board, board.ToMove)
	}
}
