package chess

import (
	"testing"
)

func TestNewBoard(t *testing.T) {
	b := NewBoard()

	t.Run("initial state", func(t *testing.T) {
		if b.ToMove != White {
			t.Errorf("ToMove = %v; want White", b.ToMove)
		}
		if b.EnPassant != NoPosition {
			t.Errorf("EnPassant = %v; want NoPosition", b.EnPassant)
		}
		if b.Castling != NoCastling {
			t.Errorf("Castling = %v; want -", b.Castling)
		}
	})

	t.Run("all squares empty", func(t *testing.T) {
		for i := 0; i < 64; i++ {
			if got := b.Get(PositionFromHash(i)); !got.IsEmpty() {
				t.Errorf("Get(%v) = %v; want Empty", PositionFromHash(i), got)
			}
		}
		if b.Occupied() != 0 {
			t.Errorf("Occupied() = %x; want 0", b.Occupied())
		}
	})

	t.Run("off-board lookups", func(t *testing.T) {
		if b.IsOccupied(NoPosition) {
			t.Error("IsOccupied(NoPosition) = true")
		}
		if got := b.Get(NoPosition); got != NoPiece {
			t.Errorf("Get(NoPosition) = %v; want NoPiece", got)
		}
	})
}

func TestSetupInitialPosition(t *testing.T) {
	b := NewBoard()
	b.SetupInitialPosition()

	tests := []struct {
		name  string
		sq    string
		piece Piece
	}{
		{"white rook a1", "a1", W(Rook)},
		{"white knight b1", "b1", W(Knight)},
		{"white bishop c1", "c1", W(Bishop)},
		{"white queen d1", "d1", W(Queen)},
		{"white king e1", "e1", W(King)},
		{"white pawn e2", "e2", W(Pawn)},
		{"black pawn e7", "e7", B(Pawn)},
		{"black queen d8", "d8", B(Queen)},
		{"black king e8", "e8", B(King)},
		{"black rook h8", "h8", B(Rook)},
		{"empty e4", "e4", NoPiece},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := b.Get(MustParsePosition(tt.sq)); got != tt.piece {
				t.Errorf("Get(%s) = %v; want %v", tt.sq, got, tt.piece)
			}
		})
	}

	if got := b.ByColour[White].Count(); got != 16 {
		t.Errorf("white pieces = %d; want 16", got)
	}
	if got := b.Pieces(Black, Pawn).Count(); got != 8 {
		t.Errorf("black pawns = %d; want 8", got)
	}
	if b.KingSquare(White) != MustParsePosition("e1") || b.KingSquare(Black) != MustParsePosition("e8") {
		t.Errorf("kings = %v; want [e8 e1]", b.Kings)
	}
	if b.Castling != AllCastling {
		t.Errorf("Castling = %v; want KQkq", b.Castling)
	}
}

func TestSetKeepsBitboardsInStep(t *testing.T) {
	b := NewBoard()
	e4 := MustParsePosition("e4")

	b.Set(e4, W(Knight))
	b.Set(e4, B(Queen))

	if b.Pieces(White, Knight) != 0 {
		t.Error("white knight bit left behind after overwrite")
	}
	if !b.Pieces(Black, Queen).Has(e4) {
		t.Error("black queen bit missing")
	}
	if got := b.Clear(e4); got != B(Queen) {
		t.Errorf("Clear() = %v; want Black Queen", got)
	}
	if b.Occupied() != 0 {
		t.Errorf("Occupied() = %x after clear; want 0", b.Occupied())
	}
}

func TestBoardCopyIsIndependent(t *testing.T) {
	b := NewBoard()
	b.SetupInitialPosition()
	c := b.Copy()
	c.Clear(MustParsePosition("e2"))
	c.Castling = NoCastling

	if !b.IsOccupied(MustParsePosition("e2")) {
		t.Error("clearing the copy changed the original")
	}
	if b.Castling != AllCastling {
		t.Error("changing the copy's castling changed the original")
	}
}

func TestSerialize(t *testing.T) {
	a := NewBoard()
	a.SetupInitialPosition()
	b := a.Copy()

	if a.Serialize() != b.Serialize() {
		t.Fatal("identical boards serialize differently")
	}

	b.ToMove = Black
	if a.Serialize() == b.Serialize() {
		t.Error("side to move not part of the key")
	}

	b = a.Copy()
	b.Castling &^= WhiteKingside
	if a.Serialize() == b.Serialize() {
		t.Error("castling rights not part of the key")
	}

	b = a.Copy()
	b.Set(MustParsePosition("e4"), b.Clear(MustParsePosition("e2")))
	if a.Serialize() == b.Serialize() {
		t.Error("piece layout not part of the key")
	}
}

func TestCastlingString(t *testing.T) {
	tests := []struct {
		rights Castling
		want   string
	}{
		{AllCastling, "KQkq"},
		{NoCastling, "-"},
		{WhiteQueenside | BlackKingside, "Qk"},
	}
	for _, tt := range tests {
		if got := tt.rights.String(); got != tt.want {
			t.Errorf("Castling(%d).String() = %q; want %q", tt.rights, got, tt.want)
		}
	}
}
