package quadchego

import "fmt"

// UnsafeApply returns the position reached by playing ply in pos, without
// checking that ply is legal (that ply.Source() holds a piece of the side to
// move, that the king isn't left in check, etc). It is the building block
// LegalPlies uses to test "does this pseudo-legal ply leave my own king in
// check" — calling it with an arbitrary Ply is the caller's responsibility.
func UnsafeApply(pos Position, ply Ply) Position {
	us := pos.Color
	src, dst := ply.Source(), ply.Target()
	_, pt, _ := pos.QBB.PieceAt(src)
	_, _, captured := pos.QBB.PieceAt(dst)

	promo := ply.Promotion()

	qbb := pos.QBB
	switch {
	case pt == King && src == SquareE1 && dst == SquareG1:
		qbb = qbb.apply(whiteKingsideCastle)
	case pt == King && src == SquareE1 && dst == SquareC1:
		qbb = qbb.apply(whiteQueensideCastle)
	case pt == King && src == SquareE8 && dst == SquareG8:
		qbb = qbb.apply(blackKingsideCastle)
	case pt == King && src == SquareE8 && dst == SquareC8:
		qbb = qbb.apply(blackQueensideCastle)
	case pt == Pawn && promo >= 0:
		qbb = qbb.promote(src, dst, us, promo)
	case pt == Pawn && dst.File() != src.File() && !captured:
		qbb = qbb.enPassant(src, dst)
	default:
		qbb = qbb.move(src, dst)
	}

	flags := pos.Flags &^ enPassantMask
	flags &^= castlingClearMask[src] | castlingClearMask[dst]
	if pt == Pawn && dst.Rank()-src.Rank() == 2 {
		flags |= Bit(Square(src) + 8)
	} else if pt == Pawn && src.Rank()-dst.Rank() == 2 {
		flags |= Bit(Square(src) - 8)
	}

	halfMove := pos.HalfMoveClock + 1
	if pt == Pawn || captured {
		halfMove = 0
	}

	moveNumber := pos.MoveNumber
	if us == Black {
		moveNumber++
	}

	return Position{
		QBB:           qbb,
		Color:         us.Opponent(),
		Flags:         flags,
		HalfMoveClock: halfMove,
		MoveNumber:    moveNumber,
	}
}

// Apply plays ply in pos, returning ErrIllegalPly if ply is not a member of
// LegalPlies(pos).
func Apply(pos Position, ply Ply) (Position, error) {
	if !containsPly(LegalPlies(pos), ply) {
		return Position{}, fmt.Errorf("%w: %v in %v", ErrIllegalPly, ply, ToFEN(pos))
	}
	return UnsafeApply(pos, ply), nil
}
