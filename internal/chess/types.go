// Package chess provides core chess types: colours, pieces, squares, moves
// and the board representation shared by the rules engine and the search.
package chess

// Colour represents the colour of a piece or player.
type Colour uint8

const (
	Black Colour = iota
	White
)

// NumColours is the number of sides, for arrays indexed by Colour.
const NumColours = 2

// String returns the string representation of a colour.
func (c Colour) String() string {
	if c == White {
		return "White"
	}
	return "Black"
}

// Opposite returns the opposite colour.
func (c Colour) Opposite() Colour {
	if c == White {
		return Black
	}
	return White
}

// ColourOffset returns +1 for White, -1 for Black (for pawn direction).
func ColourOffset(colour Colour) int {
	if colour == White {
		return 1
	}
	return -1
}

// HomeRank returns the back rank index of the given colour.
func HomeRank(colour Colour) int {
	if colour == White {
		return 0
	}
	return BoardSize - 1
}

// PromotionRank returns the rank index on which a pawn of the given colour promotes.
func PromotionRank(colour Colour) int {
	return HomeRank(colour.Opposite())
}

// PieceType represents a chess piece kind without colour.
type PieceType uint8

const (
	NoPieceType PieceType = iota
	Pawn
	Knight
	Bishop
	Rook
	Queen
	King
	NumPieceTypes
)

// BoardSize is the number of files and ranks.
const BoardSize = 8

// String returns the string representation of a piece type.
func (t PieceType) String() string {
	names := []string{"None", "Pawn", "Knight", "Bishop", "Rook", "Queen", "King"}
	if int(t) < len(names) {
		return names[t]
	}
	return "Unknown"
}

// Letter returns the single letter representation of a piece type (uppercase).
func (t PieceType) Letter() byte {
	letters := []byte{' ', 'P', 'N', 'B', 'R', 'Q', 'K'}
	if int(t) < len(letters) {
		return letters[t]
	}
	return '?'
}

// IsPromotionTarget reports whether a pawn may promote to this type.
func (t PieceType) IsPromotionTarget() bool {
	return t == Knight || t == Bishop || t == Rook || t == Queen
}

// PieceTypeFromLetter converts a piece letter in either case to a piece type.
// It returns NoPieceType for anything else.
func PieceTypeFromLetter(c byte) PieceType {
	switch c {
	case 'P', 'p':
		return Pawn
	case 'N', 'n':
		return Knight
	case 'B', 'b':
		return Bishop
	case 'R', 'r':
		return Rook
	case 'Q', 'q':
		return Queen
	case 'K', 'k':
		return King
	default:
		return NoPieceType
	}
}

// Piece is a coloured piece. The zero value is NoPiece, an empty square.
type Piece struct {
	Colour Colour
	Type   PieceType
}

// NoPiece marks an empty square.
var NoPiece = Piece{}

// NewPiece creates a coloured piece.
func NewPiece(colour Colour, t PieceType) Piece {
	return Piece{Colour: colour, Type: t}
}

// W creates a white piece.
func W(t PieceType) Piece {
	return NewPiece(White, t)
}

// B creates a black piece.
func B(t PieceType) Piece {
	return NewPiece(Black, t)
}

// IsEmpty reports whether p is NoPiece.
func (p Piece) IsEmpty() bool {
	return p.Type == NoPieceType
}

// Promote returns the piece a pawn becomes on promotion.
// Promoting anything but a pawn, or to an invalid type, panics.
func (p Piece) Promote(t PieceType) Piece {
	if p.Type != Pawn || !t.IsPromotionTarget() {
		panic("chess: invalid promotion of " + p.String() + " to " + t.String())
	}
	return Piece{Colour: p.Colour, Type: t}
}

// Letter returns the FEN letter of the piece: uppercase for White,
// lowercase for Black, '.' for an empty square.
func (p Piece) Letter() byte {
	if p.IsEmpty() {
		return '.'
	}
	l := p.Type.Letter()
	if p.Colour == Black {
		l += 'a' - 'A'
	}
	return l
}

// String returns e.g. "White Knight".
func (p Piece) String() string {
	if p.IsEmpty() {
		return "Empty"
	}
	return p.Colour.String() + " " + p.Type.String()
}

// PieceFromLetter converts a FEN letter to a piece.
func PieceFromLetter(c byte) (Piece, bool) {
	t := PieceTypeFromLetter(c)
	if t == NoPieceType {
		return NoPiece, false
	}
	colour := White
	if c >= 'a' && c <= 'z' {
		colour = Black
	}
	return NewPiece(colour, t), true
}
