package output

import (
	"strings"

	"github.com/lgbarn/nicechess-go/internal/chess"
	"github.com/lgbarn/nicechess-go/internal/engine"
	"github.com/lgbarn/nicechess-go/internal/errors"
)

// Format is a move notation.
type Format int

// Move notations.
const (
	SAN   Format = iota // Standard Algebraic Notation: Nf3, exd5, O-O, e8=Q+
	LALG                // long algebraic: g1f3
	HALG                // hyphenated long algebraic: g1-f3, e4xd5
	ELALG               // enhanced long algebraic: Ng1f3
	UCI                 // e7e8q
)

// ParseFormat converts a notation name to a Format.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(s) {
	case "", "san":
		return SAN, nil
	case "lalg":
		return LALG, nil
	case "halg":
		return HALG, nil
	case "elalg":
		return ELALG, nil
	case "uci":
		return UCI, nil
	}
	return SAN, errors.Wrapf(errors.ErrInvalidConfig, "unknown move format %q", s)
}

// FormatMove writes a legal move played on board in the given notation.
// The board is not modified.
func FormatMove(board *chess.Board, move chess.Move, format Format) string {
	move = engine.ResolveMove(board, move)
	switch format {
	case UCI:
		return move.String()
	case LALG:
		return formatLongAlgebraic(board, move, false, false)
	case HALG:
		return formatLongAlgebraic(board, move, true, false)
	case ELALG:
		return formatLongAlgebraic(board, move, false, true)
	}
	return formatSAN(board, move)
}

func castleText(move chess.Move) string {
	if move.SignedFileDiff() > 0 {
		return "O-O"
	}
	return "O-O-O"
}

func formatLongAlgebraic(board *chess.Board, move chess.Move, hyphenated, enhanced bool) string {
	if move.IsCastle() {
		return castleText(move)
	}

	var sb strings.Builder
	if enhanced && move.Piece.Type != chess.Pawn {
		sb.WriteByte(move.Piece.Type.Letter())
	}
	sb.WriteString(move.From.String())
	if hyphenated {
		if engine.IsCapture(board, move) {
			sb.WriteByte('x')
		} else {
			sb.WriteByte('-')
		}
	}
	sb.WriteString(move.To.String())
	if move.Promotion != chess.NoPieceType {
		sb.WriteByte('=')
		sb.WriteByte(move.Promotion.Letter())
	}
	return sb.String()
}

func formatSAN(board *chess.Board, move chess.Move) string {
	var sb strings.Builder

	if move.IsCastle() {
		sb.WriteString(castleText(move))
	} else {
		capture := engine.IsCapture(board, move)
		if move.Piece.Type == chess.Pawn {
			if capture {
				sb.WriteByte(move.From.String()[0])
			}
		} else {
			sb.WriteByte(move.Piece.Type.Letter())
			sb.WriteString(disambiguation(board, move))
		}
		if capture {
			sb.WriteByte('x')
		}
		sb.WriteString(move.To.String())
		if move.Promotion != chess.NoPieceType {
			sb.WriteByte('=')
			sb.WriteByte(move.Promotion.Letter())
		}
	}

	sb.WriteString(checkSuffix(board, move))
	return sb.String()
}

// disambiguation returns the file, rank or square needed to tell the move
// apart from other moves of the same piece type to the same square.
func disambiguation(board *chess.Board, move chess.Move) string {
	ambiguous, sameFile, sameRank := false, false, false
	for _, other := range engine.LegalMoves(board) {
		if other.To != move.To || other.From == move.From || other.Piece != move.Piece {
			continue
		}
		ambiguous = true
		if other.From.File == move.From.File {
			sameFile = true
		}
		if other.From.Rank == move.From.Rank {
			sameRank = true
		}
	}

	from := move.From.String()
	switch {
	case !ambiguous:
		return ""
	case !sameFile:
		return from[:1]
	case !sameRank:
		return from[1:]
	}
	return from
}

func checkSuffix(board *chess.Board, move chess.Move) string {
	after := *board
	engine.ApplyMove(&after, move)
	if !engine.IsInCheck(&after, after.ToMove) {
		return ""
	}
	if engine.HasLegalMoves(&after, after.ToMove) {
		return "+"
	}
	return "#"
}
