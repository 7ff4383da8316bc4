package chess

import "math/bits"

// Bitboard is a set of squares, bit i standing for PositionFromHash(i).
type Bitboard uint64

// File masks.
const (
	FileA Bitboard = 0x0101010101010101
	FileH Bitboard = FileA << 7
)

// FileMask returns the bitboard of every square on the given file.
func FileMask(file int) Bitboard {
	if file < 0 || file >= BoardSize {
		return 0
	}
	return FileA << uint(file)
}

// Has reports whether the square is in the set.
func (b Bitboard) Has(p Position) bool {
	return b&p.Bit() != 0
}

// Count returns the number of squares in the set.
func (b Bitboard) Count() int {
	return bits.OnesCount64(uint64(b))
}

// Squares returns the members of the set in ascending order.
func (b Bitboard) Squares() []Position {
	out := make([]Position, 0, b.Count())
	for b != 0 {
		i := bits.TrailingZeros64(uint64(b))
		out = append(out, PositionFromHash(i))
		b &= b - 1
	}
	return out
}

// PopLSB removes the lowest square from the set and returns it.
// It returns NoPosition when the set is empty.
func (b *Bitboard) PopLSB() Position {
	if *b == 0 {
		return NoPosition
	}
	i := bits.TrailingZeros64(uint64(*b))
	*b &= *b - 1
	return PositionFromHash(i)
}

// RankMask returns the bitboard of every square on the given rank.
func RankMask(rank int) Bitboard {
	if rank < 0 || rank >= BoardSize {
		return 0
	}
	return Bitboard(0xff) << uint(rank*BoardSize)
}
