package chess

import (
	"fmt"

	"github.com/lgbarn/nicechess-go/internal/errors"
)

// Move is a single move. Piece is the piece standing on From before the
// move; it may be left empty by parsers and filled in from a board later.
// Promotion is NoPieceType unless a pawn promotes.
type Move struct {
	From      Position
	To        Position
	Piece     Piece
	Promotion PieceType
}

// NullMove is "no move". Any move with From == To is null.
var NullMove = Move{}

// NewMove creates a move of piece from one square to another.
func NewMove(from, to Position, piece Piece) Move {
	return Move{From: from, To: to, Piece: piece}
}

// IsNull reports whether the move is the null move.
func (m Move) IsNull() bool {
	return m.From == m.To
}

// SignedFileDiff returns To.File - From.File.
func (m Move) SignedFileDiff() int {
	return int(m.To.File) - int(m.From.File)
}

// SignedRankDiff returns To.Rank - From.Rank.
func (m Move) SignedRankDiff() int {
	return int(m.To.Rank) - int(m.From.Rank)
}

// FileDiff returns the unsigned file distance.
func (m Move) FileDiff() int {
	return absInt(m.SignedFileDiff())
}

// RankDiff returns the unsigned rank distance.
func (m Move) RankDiff() int {
	return absInt(m.SignedRankDiff())
}

// IsCastle reports whether the move is a king moving two files.
func (m Move) IsCastle() bool {
	return m.Piece.Type == King && m.FileDiff() == 2 && m.RankDiff() == 0
}

// NeedsPromotion reports whether the move takes a pawn to its last rank.
func (m Move) NeedsPromotion() bool {
	return m.Piece.Type == Pawn && int(m.To.Rank) == PromotionRank(m.Piece.Colour)
}

// WithPromotion returns a copy of the move promoting to t.
func (m Move) WithPromotion(t PieceType) Move {
	m.Promotion = t
	return m
}

// String returns the move in long algebraic (UCI) notation, e.g. "e7e8q".
// The null move is "0000".
func (m Move) String() string {
	if m.IsNull() {
		return "0000"
	}
	s := m.From.String() + m.To.String()
	if m.Promotion != NoPieceType {
		s += string(m.Promotion.Letter() + 'a' - 'A')
	}
	return s
}

// ParseMove parses long algebraic notation ("e2e4", "e7e8q", "e2-e4",
// "e7-e8q"). The returned move has no Piece set.
func ParseMove(s string) (Move, error) {
	if (len(s) == 5 || len(s) == 6) && s[2] == '-' {
		s = s[:2] + s[3:]
	}
	if len(s) != 4 && len(s) != 5 {
		return NullMove, fmt.Errorf("move %q: %w", s, errors.ErrInvalidMoveText)
	}
	from, err := ParsePosition(s[0:2])
	if err != nil {
		return NullMove, fmt.Errorf("move %q: %w", s, errors.ErrInvalidMoveText)
	}
	to, err := ParsePosition(s[2:4])
	if err != nil {
		return NullMove, fmt.Errorf("move %q: %w", s, errors.ErrInvalidMoveText)
	}
	m := Move{From: from, To: to}
	if len(s) == 5 {
		t := PieceTypeFromLetter(s[4])
		if !t.IsPromotionTarget() {
			return NullMove, fmt.Errorf("move %q: bad promotion piece: %w", s, errors.ErrInvalidMoveText)
		}
		m.Promotion = t
	}
	return m, nil
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
