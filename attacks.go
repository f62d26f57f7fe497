package quadchego

// Precomputed attack tables, indexed by source square 0-63. Sliding-piece
// attacks use magic bitboards: a perfect-ish hash of the relevant occupancy
// subset into a dense lookup table, built once at init time by the classical
// ray-scan (genBishopRay/genRookRay below) — the ray-scan itself is never
// used on the hot path, only to populate these tables.
var (
	pawnAttacksTable   [2][64]Bitboard
	knightAttacksTable [64]Bitboard
	kingAttacksTable   [64]Bitboard

	bishopOccupancyMask [64]Bitboard
	rookOccupancyMask   [64]Bitboard

	bishopAttackTable [64][512]Bitboard
	rookAttackTable   [64][4096]Bitboard
)

// bishopBitCount and rookBitCount record, per square, the number of "relevant
// occupancy" bits a slider's attack set can depend on.
var bishopBitCount = [64]int{
	6, 5, 5, 5, 5, 5, 5, 6,
	5, 5, 5, 5, 5, 5, 5, 5,
	5, 5, 7, 7, 7, 7, 5, 5,
	5, 5, 7, 9, 9, 7, 5, 5,
	5, 5, 7, 9, 9, 7, 5, 5,
	5, 5, 7, 7, 7, 7, 5, 5,
	5, 5, 5, 5, 5, 5, 5, 5,
	6, 5, 5, 5, 5, 5, 5, 6,
}

var rookBitCount = [64]int{
	12, 11, 11, 11, 11, 11, 11, 12,
	11, 10, 10, 10, 10, 10, 10, 11,
	11, 10, 10, 10, 10, 10, 10, 11,
	11, 10, 10, 10, 10, 10, 10, 11,
	11, 10, 10, 10, 10, 10, 10, 11,
	11, 10, 10, 10, 10, 10, 10, 11,
	11, 10, 10, 10, 10, 10, 10, 11,
	12, 11, 11, 11, 11, 11, 11, 12,
}

// bishopMagicNumbers and rookMagicNumbers are precalculated constants such
// that (relevantOccupancy * magic) >> (64-bitCount) is a collision-free index
// into that square's attack table.
var bishopMagicNumbers = [64]uint64{
	0x11410121040100, 0x2084820928010, 0xa010208481080040, 0x214240082000610,
	0x4d104000400480, 0x1012010804408, 0x42044101452000c, 0x2844804050104880,
	0x814204290a0a00, 0x10280688224500, 0x1080410101010084, 0x10020a108408004,
	0x2482020210c80080, 0x480104a0040400, 0x411006404200810, 0x1024010908024292,
	0x1004401001011a, 0x810006081220080, 0x1040404206004100, 0x58080000820041ce,
	0x3406000422010890, 0x1a004100520210, 0x202a000048040400, 0x225004441180110,
	0x8064240102240, 0x1424200404010402, 0x1041100041024200, 0x8082002012008200,
	0x1010008104000, 0x8808004000806000, 0x380a000080c400, 0x31040100042d0101,
	0x110109008082220, 0x4010880204201, 0x4006462082100300, 0x4002010040140041,
	0x40090200250880, 0x2010100c40c08040, 0x12800ac01910104, 0x10b20051020100,
	0x210894104828c000, 0x50440220004800, 0x1002011044180800, 0x4220404010410204,
	0x1002204a2020401, 0x21021001000210, 0x4880081009402, 0xc208088c088e0040,
	0x4188464200080, 0x3810440618022200, 0xc020310401040420, 0x2000008208800e0,
	0x4c910240020, 0x425100a8602a0, 0x20c4206a0c030510, 0x4c10010801184000,
	0x200202020a026200, 0x6000004400841080, 0xc14004121082200, 0x400324804208800,
	0x1802200040504100, 0x1820000848488820, 0x8620682a908400, 0x8010600084204240,
}

var rookMagicNumbers = [64]uint64{
	0x2080008040002010, 0x40200010004000, 0x100090010200040, 0x2080080010000480,
	0x880040080080102, 0x8200106200042108, 0x410041000408b200, 0x100009a00402100,
	0x5800800020804000, 0x848404010002000, 0x101001820010041, 0x10a0040100420080,
	0x8a02002006001008, 0x926000844110200, 0x8000800200800100, 0x28060001008c2042,
	0x10818002204000, 0x10004020004001, 0x110002008002400, 0x11a020010082040,
	0x2001010008000410, 0x42010100080400, 0x4004040008020110, 0x820000840041,
	0x400080208000, 0x2080200040005000, 0x8000200080100080, 0x4400080180500080,
	0x4900080080040080, 0x4004004480020080, 0x8006000200040108, 0xc481000100006396,
	0x1000400080800020, 0x201004400040, 0x10008010802000, 0x204012000a00,
	0x800400800802, 0x284000200800480, 0x3000403000200, 0x840a6000514,
	0x4080c000228012, 0x10002000444010, 0x620001000808020, 0xc210010010009,
	0x100c001008010100, 0xc10020004008080, 0x20100802040001, 0x808008305420014,
	0xc010800840043080, 0x208401020890100, 0x10b0081020028280, 0x6087001001220900,
	0xc080011000500, 0x9810200040080, 0x2000010882100400, 0x2000050880540200,
	0x800020104200810a, 0x6220250242008016, 0x9180402202900a, 0x40210500100009,
	0x6000814102026, 0x410100080a040013, 0x10405008022d1184, 0x1000009400410822,
}

// genPawnAttacks returns the diagonal capture targets of a single pawn
// bitboard bb (color determines the forward direction).
func genPawnAttacks(bb Bitboard, c Color) Bitboard {
	if c == White {
		return shiftNE(bb) | shiftNW(bb)
	}
	return shiftSE(bb) | shiftSW(bb)
}

// genKnightAttacks returns the union of the eight knight-jump targets of bb.
func genKnightAttacks(bb Bitboard) Bitboard {
	return shiftNNE(bb) | shiftNNW(bb) | shiftSSE(bb) | shiftSSW(bb) |
		shiftENE(bb) | shiftESE(bb) | shiftWNW(bb) | shiftWSW(bb)
}

// genKingAttacks returns the union of the eight one-step shifts of bb.
func genKingAttacks(bb Bitboard) Bitboard {
	return shiftN(bb) | shiftS(bb) | shiftE(bb) | shiftW(bb) |
		shiftNE(bb) | shiftNW(bb) | shiftSE(bb) | shiftSW(bb)
}

// rayScan walks from sq in the given step direction, stopping after
// including the first blocker found in occ, and excluding sq itself.
func rayScan(sq Square, occ Bitboard, step func(Bitboard) Bitboard) (attacks Bitboard) {
	bb := step(Bit(sq))
	for bb != 0 {
		attacks |= bb
		if bb&occ != 0 {
			break
		}
		bb = step(bb)
	}
	return attacks
}

// genBishopRay computes a bishop's attack set from sq given occ by classical
// ray-scan on the four diagonal directions. Used only to populate
// bishopAttackTable at init time.
func genBishopRay(sq Square, occ Bitboard) Bitboard {
	return rayScan(sq, occ, shiftNE) | rayScan(sq, occ, shiftNW) |
		rayScan(sq, occ, shiftSE) | rayScan(sq, occ, shiftSW)
}

// genRookRay computes a rook's attack set from sq given occ by classical
// ray-scan on the four orthogonal directions. Used only to populate
// rookAttackTable at init time.
func genRookRay(sq Square, occ Bitboard) Bitboard {
	return rayScan(sq, occ, shiftN) | rayScan(sq, occ, shiftS) |
		rayScan(sq, occ, shiftE) | rayScan(sq, occ, shiftW)
}

// relevantOccupancy computes the "relevant occupancy squares" for a slider
// stepping in the four directions given by steps, excluding board edges
// (the edge squares never block further sliding, so they don't affect the
// attack set and are left out of the magic-hashed occupancy).
func relevantOccupancy(sq Square, steps []func(Bitboard) Bitboard, edge Bitboard) Bitboard {
	var occ Bitboard
	for _, step := range steps {
		for bb := step(Bit(sq)); bb&edge != 0; bb = step(bb) {
			occ |= bb
		}
	}
	return occ
}

func initBishopOccupancy() {
	steps := []func(Bitboard) Bitboard{shiftNE, shiftNW, shiftSE, shiftSW}
	inner := notAFile & notHFile & not1stRank & not8thRank
	for sq := range 64 {
		bishopOccupancyMask[sq] = relevantOccupancy(Square(sq), steps, inner)
	}
}

func initRookOccupancy() {
	hSteps := []func(Bitboard) Bitboard{shiftE, shiftW}
	vSteps := []func(Bitboard) Bitboard{shiftN, shiftS}
	for sq := range 64 {
		occ := relevantOccupancy(Square(sq), hSteps, notAFile&notHFile)
		occ |= relevantOccupancy(Square(sq), vSteps, not1stRank&not8thRank)
		rookOccupancyMask[sq] = occ
	}
}

// subsetOccupancy enumerates the key-th subset of relevantBitCount relevant
// occupancy bits, used to exhaustively populate the magic attack tables.
func subsetOccupancy(key, relevantBitCount int, relevant Bitboard) (occ Bitboard) {
	for i := range relevantBitCount {
		sq := popSquare(&relevant)
		if key&(1<<i) != 0 {
			occ |= Bit(sq)
		}
	}
	return occ
}

func initSliderAttacks() {
	initBishopOccupancy()
	initRookOccupancy()

	for sq := range 64 {
		bits := bishopBitCount[sq]
		for i := range 1 << bits {
			occ := subsetOccupancy(i, bits, bishopOccupancyMask[sq])
			key := uint64(occ) * bishopMagicNumbers[sq] >> (64 - bits)
			bishopAttackTable[sq][key] = genBishopRay(Square(sq), occ)
		}

		bits = rookBitCount[sq]
		for i := range 1 << bits {
			occ := subsetOccupancy(i, bits, rookOccupancyMask[sq])
			key := uint64(occ) * rookMagicNumbers[sq] >> (64 - bits)
			rookAttackTable[sq][key] = genRookRay(Square(sq), occ)
		}
	}
}

func initLeaperAttacks() {
	for sq := range 64 {
		bb := Bit(Square(sq))
		pawnAttacksTable[White][sq] = genPawnAttacks(bb, White)
		pawnAttacksTable[Black][sq] = genPawnAttacks(bb, Black)
		knightAttacksTable[sq] = genKnightAttacks(bb)
		kingAttacksTable[sq] = genKingAttacks(bb)
	}
}

// InitAttackTables populates every precomputed attack table. Call this once,
// as close as possible to program start — move generation and check
// detection silently return empty attack sets if it is skipped.
func InitAttackTables() {
	initLeaperAttacks()
	initSliderAttacks()
}

// bishopAttacks returns the bishop attack set from sq given occupancy occ,
// via a magic-multiply hash into the precomputed table.
func bishopAttacks(sq Square, occ Bitboard) Bitboard {
	occ &= bishopOccupancyMask[sq]
	key := uint64(occ) * bishopMagicNumbers[sq] >> (64 - bishopBitCount[sq])
	return bishopAttackTable[sq][key]
}

// rookAttacks returns the rook attack set from sq given occupancy occ.
func rookAttacks(sq Square, occ Bitboard) Bitboard {
	occ &= rookOccupancyMask[sq]
	key := uint64(occ) * rookMagicNumbers[sq] >> (64 - rookBitCount[sq])
	return rookAttackTable[sq][key]
}

// queenAttacks is the union of the bishop and rook attack sets from sq.
func queenAttacks(sq Square, occ Bitboard) Bitboard {
	return bishopAttacks(sq, occ) | rookAttacks(sq, occ)
}

// diagonal and orthogonal are the public sliding-attack contracts named in
// the move generator's design: for any occupancy occ, diagonal(sq, occ)
// returns the squares a bishop on sq attacks (rays including the first
// blocker on each ray), and orthogonal(sq, occ) the same for a rook.
func diagonal(sq Square, occ Bitboard) Bitboard   { return bishopAttacks(sq, occ) }
func orthogonal(sq Square, occ Bitboard) Bitboard { return rookAttacks(sq, occ) }

// attackedBy returns the set of squares attacked by every piece of color c,
// given board occupancy occ. To compute squares the opponent's king may not
// step into, the caller should pass occ with its own king removed first, so
// a slider's ray isn't blocked by the very king it's attacking.
func attackedBy(q QuadBitboard, c Color, occ Bitboard) Bitboard {
	var attacks Bitboard

	for bb := q.pawns() & q.byColor(c); bb != 0; {
		attacks |= pawnAttacksTable[c][popSquare(&bb)]
	}
	for bb := q.knights() & q.byColor(c); bb != 0; {
		attacks |= knightAttacksTable[popSquare(&bb)]
	}
	for bb := q.diagonals() & q.byColor(c); bb != 0; {
		attacks |= diagonal(popSquare(&bb), occ)
	}
	for bb := q.orthogonals() & q.byColor(c); bb != 0; {
		attacks |= orthogonal(popSquare(&bb), occ)
	}
	for bb := q.kings() & q.byColor(c); bb != 0; {
		attacks |= kingAttacksTable[popSquare(&bb)]
	}

	return attacks
}

// squareAttackedBy reports whether sq is attacked by any piece of color c
// given board occupancy occ, by unioning pawn, knight, slider and king
// attack sets anchored at sq and testing intersection with c's pieces —
// cheaper than computing the full attackedBy set when only one square
// matters.
func squareAttackedBy(q QuadBitboard, sq Square, c Color, occ Bitboard) bool {
	if pawnAttacksTable[c.Opponent()][sq]&q.pawns()&q.byColor(c) != 0 {
		return true
	}
	if knightAttacksTable[sq]&q.knights()&q.byColor(c) != 0 {
		return true
	}
	if diagonal(sq, occ)&q.diagonals()&q.byColor(c) != 0 {
		return true
	}
	if orthogonal(sq, occ)&q.orthogonals()&q.byColor(c) != 0 {
		return true
	}
	if kingAttacksTable[sq]&q.kings()&q.byColor(c) != 0 {
		return true
	}
	return false
}
