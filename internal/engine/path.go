package engine

import "github.com/lgbarn/nicechess-go/internal/chess"

// isPathClear checks that every square strictly between from and to is empty.
// The two squares must share a rank, file or diagonal.
func isPathClear(board *chess.Board, from, to chess.Position) bool {
	fileDir := sign(int(to.File) - int(from.File))
	rankDir := sign(int(to.Rank) - int(from.Rank))

	for p := from.Offset(fileDir, rankDir); p != to; p = p.Offset(fileDir, rankDir) {
		if !p.IsValid() {
			return false
		}
		if board.IsOccupied(p) {
			return false
		}
	}
	return true
}
