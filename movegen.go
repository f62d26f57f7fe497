package quadchego

// promotionTypes are the four piece types a pawn may promote to, in the
// order plies are generated (queen first, since it's the overwhelmingly
// common choice and perft/search callers often only want the first).
var promotionTypes = [4]PieceType{Queen, Rook, Bishop, Knight}

// LegalPlies returns every Ply playable by the side to move in pos. It
// generates pseudo-legal plies per piece type, then discards any that would
// leave the moving side's own king in check (including castling plies,
// which are additionally required to pass through no attacked square).
func LegalPlies(pos Position) []Ply {
	pseudo := make([]Ply, 0, 48)

	us := pos.Color
	occ := pos.QBB.occupied()
	usBB := pos.QBB.byColor(us)
	themBB := pos.QBB.byColor(us.Opponent())

	pseudo = genPawnPlies(pseudo, pos, us, occ, themBB)
	pseudo = genKnightPlies(pseudo, pos, usBB)
	pseudo = genSliderPlies(pseudo, pos, usBB, occ, pos.QBB.diagonals(), diagonal)
	pseudo = genSliderPlies(pseudo, pos, usBB, occ, pos.QBB.orthogonals(), orthogonal)
	pseudo = genKingPlies(pseudo, pos, us, usBB, occ)

	legal := make([]Ply, 0, len(pseudo))
	for _, ply := range pseudo {
		next := UnsafeApply(pos, ply)
		if !next.InCheck(us) {
			legal = append(legal, ply)
		}
	}
	return legal
}

func genPawnPlies(out []Ply, pos Position, us Color, occ, themBB Bitboard) []Ply {
	pawns := pos.QBB.pawns() & pos.QBB.byColor(us)

	forward, startRank, promoRank := shiftN, 1, 7
	if us == Black {
		forward, startRank, promoRank = shiftS, 6, 0
	}

	pushPly := func(src, dst Square) {
		if dst.Rank() == promoRank {
			for _, pt := range promotionTypes {
				out = append(out, NewPly(src, dst).PromoteTo(pt))
			}
			return
		}
		out = append(out, NewPly(src, dst))
	}

	for bb := pawns; bb != 0; {
		src := popSquare(&bb)
		srcBB := Bit(src)

		single := forward(srcBB) &^ occ
		if single != 0 {
			dst := popSquare(&single)
			pushPly(src, dst)

			if src.Rank() == startRank {
				double := forward(forward(srcBB)) &^ occ
				if double != 0 {
					out = append(out, NewPly(src, popSquare(&double)))
				}
			}
		}

		for attacks := genPawnAttacks(srcBB, us) & themBB; attacks != 0; {
			pushPly(src, popSquare(&attacks))
		}

		if ep, ok := pos.EnPassantSquare(); ok {
			if genPawnAttacks(srcBB, us)&Bit(ep) != 0 {
				out = append(out, NewPly(src, ep))
			}
		}
	}

	return out
}

func genKnightPlies(out []Ply, pos Position, usBB Bitboard) []Ply {
	for bb := pos.QBB.knights() & usBB; bb != 0; {
		src := popSquare(&bb)
		for targets := knightAttacksTable[src] &^ usBB; targets != 0; {
			out = append(out, NewPly(src, popSquare(&targets)))
		}
	}
	return out
}

// genSliderPlies generates plies for every piece whose occupancy is set in
// pieces (bishops+queens or rooks+queens), using attack to compute each
// piece's targets.
func genSliderPlies(out []Ply, pos Position, usBB, occ, pieces Bitboard, attack func(Square, Bitboard) Bitboard) []Ply {
	for bb := pieces & usBB; bb != 0; {
		src := popSquare(&bb)
		for targets := attack(src, occ) &^ usBB; targets != 0; {
			out = append(out, NewPly(src, popSquare(&targets)))
		}
	}
	return out
}

func genKingPlies(out []Ply, pos Position, us Color, usBB, occ Bitboard) []Ply {
	kingBB := pos.QBB.kings() & usBB
	if kingBB == 0 {
		return out
	}
	src := popSquare(&kingBB)

	for targets := kingAttacksTable[src] &^ usBB; targets != 0; {
		out = append(out, NewPly(src, popSquare(&targets)))
	}

	them := us.Opponent()
	if squareAttackedBy(pos.QBB, src, them, occ) {
		return out // can't castle out of check
	}

	if us == White {
		if pos.CanCastle(whiteKingsideRight) && castlePathClear(occ, SquareF1, SquareG1) &&
			castlePathSafe(pos.QBB, them, occ, SquareF1, SquareG1) {
			out = append(out, NewPly(SquareE1, SquareG1))
		}
		if pos.CanCastle(whiteQueensideRight) && castlePathClear(occ, SquareB1, SquareC1, SquareD1) &&
			castlePathSafe(pos.QBB, them, occ, SquareC1, SquareD1) {
			out = append(out, NewPly(SquareE1, SquareC1))
		}
	} else {
		if pos.CanCastle(blackKingsideRight) && castlePathClear(occ, SquareF8, SquareG8) &&
			castlePathSafe(pos.QBB, them, occ, SquareF8, SquareG8) {
			out = append(out, NewPly(SquareE8, SquareG8))
		}
		if pos.CanCastle(blackQueensideRight) && castlePathClear(occ, SquareB8, SquareC8, SquareD8) &&
			castlePathSafe(pos.QBB, them, occ, SquareC8, SquareD8) {
			out = append(out, NewPly(SquareE8, SquareC8))
		}
	}

	return out
}

func castlePathClear(occ Bitboard, squares ...Square) bool {
	for _, sq := range squares {
		if occ&Bit(sq) != 0 {
			return false
		}
	}
	return true
}

// castlePathSafe reports that none of squares (the king's transit squares,
// excluding its origin, which the caller already checked) is attacked.
func castlePathSafe(q QuadBitboard, them Color, occ Bitboard, squares ...Square) bool {
	for _, sq := range squares {
		if squareAttackedBy(q, sq, them, occ) {
			return false
		}
	}
	return true
}
