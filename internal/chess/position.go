package chess

import (
	"fmt"

	"github.com/lgbarn/nicechess-go/internal/errors"
)

// Position is a square on the board. File 0 is the a-file, rank 0 is the
// first rank. NoPosition is the only valid value outside the grid.
type Position struct {
	File int8
	Rank int8
}

// NoPosition is the sentinel for "no square".
var NoPosition = Position{File: -1, Rank: -1}

// NewPosition returns the square at (file, rank), or NoPosition if the
// coordinates are off the board.
func NewPosition(file, rank int) Position {
	if file < 0 || file >= BoardSize || rank < 0 || rank >= BoardSize {
		return NoPosition
	}
	return Position{File: int8(file), Rank: int8(rank)}
}

// PositionFromHash is the inverse of Hash.
func PositionFromHash(h int) Position {
	if h < 0 || h >= BoardSize*BoardSize {
		return NoPosition
	}
	return Position{File: int8(h % BoardSize), Rank: int8(h / BoardSize)}
}

// ParsePosition parses algebraic square notation such as "e4".
func ParsePosition(s string) (Position, error) {
	if len(s) != 2 || s[0] < 'a' || s[0] > 'h' || s[1] < '1' || s[1] > '8' {
		return NoPosition, fmt.Errorf("square %q: %w", s, errors.ErrInvalidSquare)
	}
	return Position{File: int8(s[0] - 'a'), Rank: int8(s[1] - '1')}, nil
}

// MustParsePosition is like ParsePosition but panics on error.
// It is intended for tests and constant tables.
func MustParsePosition(s string) Position {
	p, err := ParsePosition(s)
	if err != nil {
		panic(err)
	}
	return p
}

// IsValid reports whether the position is on the board.
func (p Position) IsValid() bool {
	return p.File >= 0 && p.File < BoardSize && p.Rank >= 0 && p.Rank < BoardSize
}

// Hash returns a stable index in 0..63 (a1 = 0, h8 = 63), or -1 for NoPosition.
func (p Position) Hash() int {
	if !p.IsValid() {
		return -1
	}
	return int(p.Rank)*BoardSize + int(p.File)
}

// Offset returns the square df files and dr ranks away, or NoPosition.
func (p Position) Offset(df, dr int) Position {
	if !p.IsValid() {
		return NoPosition
	}
	return NewPosition(int(p.File)+df, int(p.Rank)+dr)
}

// N steps one rank towards Black.
func (p Position) N() Position { return p.Offset(0, 1) }

// S steps one rank towards White.
func (p Position) S() Position { return p.Offset(0, -1) }

// E steps one file towards the h-file.
func (p Position) E() Position { return p.Offset(1, 0) }

// W steps one file towards the a-file.
func (p Position) W() Position { return p.Offset(-1, 0) }

// IsLight reports whether the square is a light square (h1 is light).
func (p Position) IsLight() bool {
	return (p.File+p.Rank)%2 == 1
}

// Bit returns the single-bit bitboard for the square.
func (p Position) Bit() Bitboard {
	if !p.IsValid() {
		return 0
	}
	return Bitboard(1) << uint(p.Hash())
}

// String returns algebraic notation, or "-" for NoPosition.
func (p Position) String() string {
	if !p.IsValid() {
		return "-"
	}
	return string([]byte{byte('a' + p.File), byte('1' + p.Rank)})
}
