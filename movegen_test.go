package quadchego

import "testing"

func TestLegalPliesCountStartingPosition(t *testing.T) {
	pos, err := ParseFEN(StartFEN)
	if err != nil {
		t.Fatalf("ParseFEN: %v", err)
	}
	if got := len(LegalPlies(pos)); got != 20 {
		t.Errorf("len(LegalPlies(startpos)) = %d, want 20", got)
	}
}

func TestLegalPliesNeverLeaveMoverInCheck(t *testing.T) {
	// Invariant 3.
	positions := []string{
		StartFEN,
		"r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1",
		"8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1",
		"rnbqkbnr/ppp1pppp/8/3p4/4P3/8/PPPP1PPP/RNBQKBNR b KQkq - 0 1",
	}

	for _, fen := range positions {
		pos, err := ParseFEN(fen)
		if err != nil {
			t.Fatalf("ParseFEN(%q): %v", fen, err)
		}
		for _, ply := range LegalPlies(pos) {
			next := UnsafeApply(pos, ply)
			if next.InCheck(pos.Color) {
				t.Errorf("%s: ply %v leaves mover in check", fen, ply)
			}
			if next.Color != pos.Color.Opponent() {
				t.Errorf("%s: ply %v did not flip side to move", fen, ply)
			}
		}
	}
}

func TestCastlingRequiresClearAndUnattackedPath(t *testing.T) {
	// White to castle kingside, but f1 is attacked by a black rook on f8:
	// castling must not appear among legal plies.
	pos, err := ParseFEN("5r2/8/8/8/8/8/8/4K2R w K - 0 1")
	if err != nil {
		t.Fatalf("ParseFEN: %v", err)
	}
	for _, ply := range LegalPlies(pos) {
		if ply.Source() == SquareE1 && ply.Target() == SquareG1 {
			t.Errorf("kingside castle generated while f1 is attacked")
		}
	}
}

func TestCastlingAvailableWhenPathSafe(t *testing.T) {
	pos, err := ParseFEN("4k3/8/8/8/8/8/8/4K2R w K - 0 1")
	if err != nil {
		t.Fatalf("ParseFEN: %v", err)
	}
	found := false
	for _, ply := range LegalPlies(pos) {
		if ply.Source() == SquareE1 && ply.Target() == SquareG1 {
			found = true
		}
	}
	if !found {
		t.Errorf("kingside castle not generated despite a clear, unattacked path")
	}
}

func TestPromotionGeneratesFourPlies(t *testing.T) {
	pos, err := ParseFEN("8/4P3/8/8/8/8/k7/4K3 w - - 0 1")
	if err != nil {
		t.Fatalf("ParseFEN: %v", err)
	}

	promos := map[PieceType]bool{}
	for _, ply := range LegalPlies(pos) {
		if ply.Source() == SquareE7 && ply.Target() == SquareE8 {
			promos[ply.Promotion()] = true
		}
	}
	for _, pt := range promotionTypes {
		if !promos[pt] {
			t.Errorf("promotion to %v not generated for e7-e8", pt)
		}
	}
	if len(promos) != 4 {
		t.Errorf("got %d distinct promotion plies for e7-e8, want 4", len(promos))
	}
}

func TestEnPassantPlyGenerated(t *testing.T) {
	pos, err := ParseFEN("4k3/8/8/3pP3/8/8/8/4K3 w - d6 0 1")
	if err != nil {
		t.Fatalf("ParseFEN: %v", err)
	}
	found := false
	for _, ply := range LegalPlies(pos) {
		if ply.Source() == SquareE5 && ply.Target() == SquareD6 {
			found = true
		}
	}
	if !found {
		t.Errorf("en passant capture e5xd6 not generated")
	}
}

func TestCheckmateHasNoLegalPlies(t *testing.T) {
	// Fool's mate final position, white to move is mated.
	pos, err := ParseFEN("rnb1kbnr/pppp1ppp/8/4p3/6Pq/5P2/PPPPP2P/RNBQKBNR w KQkq - 1 3")
	if err != nil {
		t.Fatalf("ParseFEN: %v", err)
	}
	if len(LegalPlies(pos)) != 0 {
		t.Errorf("len(LegalPlies()) = %d, want 0 for checkmate", len(LegalPlies(pos)))
	}
	if !pos.InCheck(pos.Color) {
		t.Errorf("expected white king to be in check")
	}
}
