package quadchego

import (
	"os"
	"testing"
)

// TestMain initializes the attack and Zobrist key tables once, so individual
// tests don't have to remember to.
func TestMain(m *testing.M) {
	InitAttackTables()
	InitZobristKeys()
	os.Exit(m.Run())
}

func TestGenPawnAttacks(t *testing.T) {
	testcases := []struct {
		name     string
		color    Color
		bb       Bitboard
		expected Bitboard
	}{
		{"White pawn b4", White, Bit(SquareB4), Bit(SquareA5) | Bit(SquareC5)},
		{"White pawn a4", White, Bit(SquareA4), Bit(SquareB5)},
		{"White pawn h4", White, Bit(SquareH4), Bit(SquareG5)},
		{"White pawn b8", White, Bit(SquareB8), 0},
		{"Black pawn b4", Black, Bit(SquareB4), Bit(SquareA3) | Bit(SquareC3)},
		{"Black pawn a4", Black, Bit(SquareA4), Bit(SquareB3)},
		{"Black pawn h4", Black, Bit(SquareH4), Bit(SquareG3)},
		{"Black pawn b1", Black, Bit(SquareB1), 0},
	}

	for _, tc := range testcases {
		if got := genPawnAttacks(tc.bb, tc.color); got != tc.expected {
			t.Errorf("%s: genPawnAttacks() = %#x, want %#x", tc.name, got, tc.expected)
		}
	}
}

func TestGenKnightAttacks(t *testing.T) {
	testcases := []struct {
		name     string
		sq       Square
		expected Bitboard
	}{
		{"knight d4", SquareD4, Bit(SquareC2) | Bit(SquareE2) | Bit(SquareB3) | Bit(SquareF3) |
			Bit(SquareB5) | Bit(SquareF5) | Bit(SquareC6) | Bit(SquareE6)},
		{"knight a8", SquareA8, Bit(SquareB6) | Bit(SquareC7)},
		{"knight h1", SquareH1, Bit(SquareF2) | Bit(SquareG3)},
	}

	for _, tc := range testcases {
		if got := genKnightAttacks(Bit(tc.sq)); got != tc.expected {
			t.Errorf("%s: genKnightAttacks() = %#x, want %#x", tc.name, got, tc.expected)
		}
	}
}

func TestGenKingAttacks(t *testing.T) {
	testcases := []struct {
		name     string
		sq       Square
		expected Bitboard
	}{
		{"king d5", SquareD5, Bit(SquareC4) | Bit(SquareD4) | Bit(SquareE4) | Bit(SquareC5) |
			Bit(SquareE5) | Bit(SquareC6) | Bit(SquareD6) | Bit(SquareE6)},
		{"king a8", SquareA8, Bit(SquareA7) | Bit(SquareB7) | Bit(SquareB8)},
	}

	for _, tc := range testcases {
		if got := genKingAttacks(Bit(tc.sq)); got != tc.expected {
			t.Errorf("%s: genKingAttacks() = %#x, want %#x", tc.name, got, tc.expected)
		}
	}
}

func TestSlidingAttacksBlocked(t *testing.T) {
	// Rook on d4 with blockers on d6 and b4: attacks stop at (and include)
	// the first blocker in every direction.
	occ := Bit(SquareD4) | Bit(SquareD6) | Bit(SquareB4)
	want := Bit(SquareD5) | Bit(SquareD6) | // north, blocked at d6
		Bit(SquareD3) | Bit(SquareD2) | Bit(SquareD1) | // south, open
		Bit(SquareE4) | Bit(SquareF4) | Bit(SquareG4) | Bit(SquareH4) | // east, open
		Bit(SquareC4) | Bit(SquareB4) // west, blocked at b4

	if got := rookAttacks(SquareD4, occ); got != want {
		t.Errorf("rookAttacks(d4) = %#x, want %#x", got, want)
	}
}

func TestQuadBitboardRoundTrip(t *testing.T) {
	for _, c := range []Color{White, Black} {
		for pt := Pawn; pt <= King; pt++ {
			var q QuadBitboard
			q = q.setNibble(SquareE4, pieceCode(c, pt))
			gotColor, gotType, ok := q.PieceAt(SquareE4)
			if !ok || gotColor != c || gotType != pt {
				t.Errorf("pieceCode(%v,%v) round-trip = (%v,%v,%v), want (%v,%v,true)",
					c, pt, gotColor, gotType, ok, c, pt)
			}
		}
	}
}

func TestQuadBitboardDerivedPlanes(t *testing.T) {
	pos, err := ParseFEN(StartFEN)
	if err != nil {
		t.Fatalf("ParseFEN: %v", err)
	}
	q := pos.QBB

	if q.occupied() != (rank1 | rank2 | rank7 | rank8) {
		t.Errorf("occupied() wrong for starting position")
	}
	if q.pawns() != (rank2 | rank7) {
		t.Errorf("pawns() wrong for starting position")
	}
	if q.white()&q.black() != 0 {
		t.Errorf("white() and black() overlap")
	}
	if q.white()|q.black() != q.occupied() {
		t.Errorf("white()|black() != occupied()")
	}
}

func TestCastleDeltaIsInvolution(t *testing.T) {
	// Invariant 8: applying a castling delta twice returns the original QBB.
	pos, err := ParseFEN(StartFEN)
	if err != nil {
		t.Fatalf("ParseFEN: %v", err)
	}
	original := pos.QBB
	once := original.apply(whiteKingsideCastle)
	twice := once.apply(whiteKingsideCastle)
	if twice != original {
		t.Errorf("castling delta applied twice did not return the original QBB")
	}
}

func TestEnPassantCapture(t *testing.T) {
	var q QuadBitboard
	q = q.setNibble(SquareE5, pieceCode(White, Pawn))
	q = q.setNibble(SquareD5, pieceCode(Black, Pawn))

	q = q.enPassant(SquareE5, SquareD6)

	if _, _, ok := q.PieceAt(SquareD5); ok {
		t.Errorf("captured pawn on d5 not cleared by enPassant")
	}
	if c, pt, ok := q.PieceAt(SquareD6); !ok || c != White || pt != Pawn {
		t.Errorf("capturing pawn not found on d6 after enPassant")
	}
}

func TestInsufficientMaterial(t *testing.T) {
	testcases := []struct {
		name     string
		fen      string
		expected bool
	}{
		{"bare kings", "8/8/4k3/8/8/3K4/8/8 w - - 0 1", true},
		{"king and bishop vs king", "8/8/4k3/8/8/3KB3/8/8 w - - 0 1", true},
		{"same-color bishops both sides", "3b4/8/4k3/8/8/3KB3/8/8 w - - 0 1", true},
		{"opposite-color bishops both sides", "4b3/8/4k3/8/8/3KB3/8/8 w - - 0 1", false},
		{"king and rook vs king", "8/8/4k3/8/8/3KR3/8/8 w - - 0 1", false},
		{"starting position", StartFEN, false},
	}

	for _, tc := range testcases {
		pos, err := ParseFEN(tc.fen)
		if err != nil {
			t.Fatalf("%s: ParseFEN: %v", tc.name, err)
		}
		if got := pos.InsufficientMaterial(); got != tc.expected {
			t.Errorf("%s: InsufficientMaterial() = %v, want %v", tc.name, got, tc.expected)
		}
	}
}
