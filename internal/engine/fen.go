// Package engine provides chess move validation and board manipulation.
package engine

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/lgbarn/nicechess-go/internal/chess"
	"github.com/lgbarn/nicechess-go/internal/errors"
)

// InitialFEN is the FEN string for the standard starting position.
const InitialFEN = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

// Clocks are the two counters a FEN carries besides the board.
type Clocks struct {
	Halfmove int // plies since the last pawn move or capture
	Fullmove int // starts at 1, incremented after Black moves
}

// ParseFEN parses a FEN string. Missing trailing fields take their
// defaults ("w - - 0 1").
func ParseFEN(fen string) (*chess.Board, Clocks, error) {
	clocks := Clocks{Halfmove: 0, Fullmove: 1}
	parts := strings.Fields(fen)
	if len(parts) < 1 {
		return nil, clocks, fmt.Errorf("empty FEN string: %w", errors.ErrInvalidFEN)
	}
	if len(parts) > 6 {
		return nil, clocks, fmt.Errorf("too many fields: %w", errors.ErrInvalidFEN)
	}

	board := chess.NewBoard()

	if err := parsePiecePositions(board, parts[0]); err != nil {
		return nil, clocks, err
	}
	if err := parseSideToMove(board, parts); err != nil {
		return nil, clocks, err
	}
	if err := parseCastlingRights(board, parts); err != nil {
		return nil, clocks, err
	}
	if err := parseEnPassant(board, parts); err != nil {
		return nil, clocks, err
	}
	if err := parseClocks(&clocks, parts); err != nil {
		return nil, clocks, err
	}
	return board, clocks, nil
}

// NewBoardFromFEN creates a board from a FEN string, ignoring the clocks.
func NewBoardFromFEN(fen string) (*chess.Board, error) {
	board, _, err := ParseFEN(fen)
	return board, err
}

// parsePiecePositions parses the piece placement field of a FEN string.
func parsePiecePositions(board *chess.Board, positions string) error {
	rows := strings.Split(positions, "/")
	if len(rows) != chess.BoardSize {
		return fmt.Errorf("%d ranks in placement: %w", len(rows), errors.ErrInvalidFEN)
	}

	for i, row := range rows {
		rank := chess.BoardSize - 1 - i
		file := 0
		for j := 0; j < len(row); j++ {
			c := row[j]
			if c >= '1' && c <= '8' {
				file += int(c - '0')
				continue
			}
			piece, ok := chess.PieceFromLetter(c)
			if !ok {
				return fmt.Errorf("invalid piece character: %c: %w", c, errors.ErrInvalidFEN)
			}
			if file >= chess.BoardSize {
				return fmt.Errorf("rank %d overflows: %w", rank+1, errors.ErrInvalidFEN)
			}
			board.Set(chess.NewPosition(file, rank), piece)
			file++
		}
		if file != chess.BoardSize {
			return fmt.Errorf("rank %d has %d files: %w", rank+1, file, errors.ErrInvalidFEN)
		}
	}
	return nil
}

// parseSideToMove parses the side to move field.
func parseSideToMove(board *chess.Board, parts []string) error {
	if len(parts) < 2 {
		return nil
	}
	switch parts[1] {
	case "w":
		board.ToMove = chess.White
	case "b":
		board.ToMove = chess.Black
	default:
		return fmt.Errorf("invalid side to move: %s: %w", parts[1], errors.ErrInvalidFEN)
	}
	return nil
}

// parseCastlingRights parses the castling availability field. Rights whose
// king or rook is not on its home square are dropped.
func parseCastlingRights(board *chess.Board, parts []string) error {
	board.Castling = chess.NoCastling
	if len(parts) < 3 || parts[2] == "-" {
		return nil
	}

	for _, c := range parts[2] {
		switch c {
		case 'K':
			board.Castling |= chess.WhiteKingside
		case 'Q':
			board.Castling |= chess.WhiteQueenside
		case 'k':
			board.Castling |= chess.BlackKingside
		case 'q':
			board.Castling |= chess.BlackQueenside
		default:
			return fmt.Errorf("invalid castling character: %c: %w", c, errors.ErrInvalidFEN)
		}
	}

	for _, colour := range []chess.Colour{chess.White, chess.Black} {
		rank := chess.HomeRank(colour)
		rook := chess.NewPiece(colour, chess.Rook)
		if board.Get(chess.NewPosition(kingFile, rank)) != chess.NewPiece(colour, chess.King) {
			board.Castling &^= chess.KingsideRight(colour) | chess.QueensideRight(colour)
		}
		if board.Get(chess.NewPosition(kingsideRookFile, rank)) != rook {
			board.Castling &^= chess.KingsideRight(colour)
		}
		if board.Get(chess.NewPosition(queensideRookFile, rank)) != rook {
			board.Castling &^= chess.QueensideRight(colour)
		}
	}
	return nil
}

// parseEnPassant parses the en passant target square field.
func parseEnPassant(board *chess.Board, parts []string) error {
	board.EnPassant = chess.NoPosition
	if len(parts) < 4 || parts[3] == "-" {
		return nil
	}
	sq, err := chess.ParsePosition(parts[3])
	if err != nil {
		return fmt.Errorf("en passant square %q: %w", parts[3], errors.ErrInvalidFEN)
	}
	want := 5
	if board.ToMove == chess.Black {
		want = 2
	}
	if int(sq.Rank) != want {
		return fmt.Errorf("en passant square %v on wrong rank: %w", sq, errors.ErrInvalidFEN)
	}
	board.EnPassant = sq
	return nil
}

// parseClocks parses the halfmove clock and fullmove number fields.
func parseClocks(clocks *Clocks, parts []string) error {
	if len(parts) >= 5 {
		n, err := strconv.Atoi(parts[4])
		if err != nil || n < 0 {
			return fmt.Errorf("halfmove clock %q: %w", parts[4], errors.ErrInvalidFEN)
		}
		clocks.Halfmove = n
	}
	if len(parts) >= 6 {
		n, err := strconv.Atoi(parts[5])
		if err != nil || n < 1 {
			return fmt.Errorf("fullmove number %q: %w", parts[5], errors.ErrInvalidFEN)
		}
		clocks.Fullmove = n
	}
	return nil
}

// FormatFEN converts a board and its clocks to a FEN string.
func FormatFEN(board *chess.Board, clocks Clocks) string {
	var sb strings.Builder

	writePiecePositions(&sb, board)
	sb.WriteByte(' ')
	writeSideToMove(&sb, board)
	sb.WriteByte(' ')
	sb.WriteString(board.Castling.String())
	sb.WriteByte(' ')
	sb.WriteString(board.EnPassant.String())
	sb.WriteByte(' ')
	fmt.Fprintf(&sb, "%d %d", clocks.Halfmove, clocks.Fullmove)

	return sb.String()
}

// BoardToFEN converts a board to a FEN string with clocks "0 1".
func BoardToFEN(board *chess.Board) string {
	return FormatFEN(board, Clocks{Halfmove: 0, Fullmove: 1})
}

// writePiecePositions writes the piece placement to the builder.
func writePiecePositions(sb *strings.Builder, board *chess.Board) {
	for rank := chess.BoardSize - 1; rank >= 0; rank-- {
		emptyCount := 0
		for file := 0; file < chess.BoardSize; file++ {
			piece := board.Get(chess.NewPosition(file, rank))
			if piece.IsEmpty() {
				emptyCount++
				continue
			}
			if emptyCount > 0 {
				sb.WriteByte(byte('0' + emptyCount))
				emptyCount = 0
			}
			sb.WriteByte(piece.Letter())
		}
		if emptyCount > 0 {
			sb.WriteByte(byte('0' + emptyCount))
		}
		if rank > 0 {
			sb.WriteByte('/')
		}
	}
}

// writeSideToMove writes the side to move to the builder.
func writeSideToMove(sb *strings.Builder, board *chess.Board) {
	if board.ToMove == chess.White {
		sb.WriteByte('w')
	} else {
		sb.WriteByte('b')
	}
}

// NewInitialBoard creates a board with the standard starting position.
func NewInitialBoard() *chess.Board {
	board := chess.NewBoard()
	board.SetupInitialPosition()
	return board
}
