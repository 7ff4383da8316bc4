package chess

import "strings"

// Castling is the set of castling rights still available.
type Castling uint8

const (
	WhiteKingside Castling = 1 << iota
	WhiteQueenside
	BlackKingside
	BlackQueenside

	NoCastling  Castling = 0
	AllCastling          = WhiteKingside | WhiteQueenside | BlackKingside | BlackQueenside
)

// KingsideRight returns the kingside castling right of the given colour.
func KingsideRight(colour Colour) Castling {
	if colour == White {
		return WhiteKingside
	}
	return BlackKingside
}

// QueensideRight returns the queenside castling right of the given colour.
func QueensideRight(colour Colour) Castling {
	if colour == White {
		return WhiteQueenside
	}
	return BlackQueenside
}

// Has reports whether all rights in r are present.
func (c Castling) Has(r Castling) bool {
	return c&r == r && r != 0
}

// String returns the FEN castling field, "-" when no rights remain.
func (c Castling) String() string {
	var sb strings.Builder
	if c.Has(WhiteKingside) {
		sb.WriteByte('K')
	}
	if c.Has(WhiteQueenside) {
		sb.WriteByte('Q')
	}
	if c.Has(BlackKingside) {
		sb.WriteByte('k')
	}
	if c.Has(BlackQueenside) {
		sb.WriteByte('q')
	}
	if sb.Len() == 0 {
		return "-"
	}
	return sb.String()
}

// Board is a mailbox board with occupancy bitboards kept in step with it.
// A Board is a plain value: assigning or copying it yields an independent board.
type Board struct {
	// Squares indexed by Position.Hash.
	Squares [BoardSize * BoardSize]Piece

	// Occupancy per colour and per piece type.
	ByColour [NumColours]Bitboard
	ByType   [NumPieceTypes]Bitboard

	// Who has the next move.
	ToMove Colour

	// Castling rights still available.
	Castling Castling

	// Square a pawn may capture onto en passant this ply, or NoPosition.
	EnPassant Position

	// Where the two kings are, NoPosition if absent.
	Kings [NumColours]Position
}

// NewBoard creates a new empty board with White to move.
func NewBoard() *Board {
	return &Board{
		ToMove:    White,
		EnPassant: NoPosition,
		Kings:     [NumColours]Position{NoPosition, NoPosition},
	}
}

// SetupInitialPosition sets up the standard chess starting position.
func (b *Board) SetupInitialPosition() {
	*b = *NewBoard()
	backRank := []PieceType{Rook, Knight, Bishop, Queen, King, Bishop, Knight, Rook}
	for file := 0; file < BoardSize; file++ {
		b.Set(NewPosition(file, 0), W(backRank[file]))
		b.Set(NewPosition(file, 1), W(Pawn))
		b.Set(NewPosition(file, 6), B(Pawn))
		b.Set(NewPosition(file, 7), B(backRank[file]))
	}
	b.Castling = AllCastling
}

// Copy returns an independent copy of the board.
func (b *Board) Copy() *Board {
	c := *b
	return &c
}

// Get returns the piece at a square; NoPiece for empty or off-board squares.
func (b *Board) Get(pos Position) Piece {
	if !pos.IsValid() {
		return NoPiece
	}
	return b.Squares[pos.Hash()]
}

// IsOccupied reports whether a piece stands on the square.
func (b *Board) IsOccupied(pos Position) bool {
	return !b.Get(pos).IsEmpty()
}

// Set places a piece on a square, replacing whatever stood there.
// Setting NoPiece clears the square.
func (b *Board) Set(pos Position, p Piece) {
	if !pos.IsValid() {
		return
	}
	b.Clear(pos)
	if p.IsEmpty() {
		return
	}
	bit := pos.Bit()
	b.Squares[pos.Hash()] = p
	b.ByColour[p.Colour] |= bit
	b.ByType[p.Type] |= bit
	if p.Type == King {
		b.Kings[p.Colour] = pos
	}
}

// Clear empties a square and returns the piece that stood there.
func (b *Board) Clear(pos Position) Piece {
	if !pos.IsValid() {
		return NoPiece
	}
	old := b.Squares[pos.Hash()]
	if old.IsEmpty() {
		return NoPiece
	}
	bit := pos.Bit()
	b.Squares[pos.Hash()] = NoPiece
	b.ByColour[old.Colour] &^= bit
	b.ByType[old.Type] &^= bit
	if old.Type == King && b.Kings[old.Colour] == pos {
		b.Kings[old.Colour] = NoPosition
	}
	return old
}

// Occupied returns every occupied square.
func (b *Board) Occupied() Bitboard {
	return b.ByColour[White] | b.ByColour[Black]
}

// Pieces returns the squares holding pieces of the given colour and type.
func (b *Board) Pieces(colour Colour, t PieceType) Bitboard {
	return b.ByColour[colour] & b.ByType[t]
}

// KingSquare returns where the king of the given colour stands.
func (b *Board) KingSquare(colour Colour) Position {
	return b.Kings[colour]
}

// SerialBoard is a comparable snapshot of everything that makes two
// positions the same for repetition purposes.
type SerialBoard struct {
	ByType   [NumPieceTypes]Bitboard
	ByColour [NumColours]Bitboard
	ToMove   Colour
	Castling Castling
}

// Serialize returns the repetition key of the board.
func (b *Board) Serialize() SerialBoard {
	return SerialBoard{
		ByType:   b.ByType,
		ByColour: b.ByColour,
		ToMove:   b.ToMove,
		Castling: b.Castling,
	}
}

// String renders the board as eight lines of FEN letters, rank 8 first.
func (b *Board) String() string {
	var sb strings.Builder
	for rank := BoardSize - 1; rank >= 0; rank-- {
		sb.WriteByte(byte('1' + rank))
		sb.WriteByte(' ')
		for file := 0; file < BoardSize; file++ {
			sb.WriteByte(b.Get(NewPosition(file, rank)).Letter())
			if file < BoardSize-1 {
				sb.WriteByte(' ')
			}
		}
		sb.WriteByte('\n')
	}
	sb.WriteString("  a b c d e f g h\n")
	return sb.String()
}
