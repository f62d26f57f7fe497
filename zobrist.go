package quadchego

// Zobrist hashing gives each Position a single uint64 fingerprint, built
// once at init from a table of random keys XORed together for every piece
// occupying a square, the side to move, the castling rights, and the
// en-passant file. Per FIDE Article 9.2 (and invariant 9), the hash is a
// function of qbb+color+flags only: the halfmove clock and move number never
// enter it, so two positions that are "the same" for repetition purposes
// hash identically even if reached by different move counts.
var (
	pieceKeys    [14][64]uint64 // indexed by pieceCode(c, pt), 2-13
	castlingKeys [16]uint64     // indexed by the 4-bit castling-rights value
	epFileKeys   [8]uint64
	colorKey     uint64
)

// splitMix64 is a fast, fixed-seed PRNG used only to fill the Zobrist key
// tables at init time: it need not be cryptographically strong, only
// well-distributed and reproducible across runs so a given binary always
// hashes the same position the same way.
func splitMix64(seed *uint64) uint64 {
	*seed += 0x9E3779B97F4A7C15
	z := *seed
	z = (z ^ (z >> 30)) * 0xBF58476D1CE4E5B9
	z = (z ^ (z >> 27)) * 0x94D049BB133111EB
	return z ^ (z >> 31)
}

// InitZobristKeys fills the Zobrist key tables from a fixed seed. Call this
// once at program start, alongside InitAttackTables.
func InitZobristKeys() {
	seed := uint64(0xC0FFEE1234567890)

	for c := White; c <= Black; c++ {
		for pt := Pawn; pt <= King; pt++ {
			code := pieceCode(c, pt)
			for sq := range 64 {
				pieceKeys[code][sq] = splitMix64(&seed)
			}
		}
	}
	for i := range castlingKeys {
		castlingKeys[i] = splitMix64(&seed)
	}
	for i := range epFileKeys {
		epFileKeys[i] = splitMix64(&seed)
	}
	colorKey = splitMix64(&seed)
}

// castlingRightsIndex packs flags' four castling bits into a 0-15 value for
// indexing castlingKeys.
func castlingRightsIndex(flags Bitboard) int {
	idx := 0
	if flags&whiteKingsideRight != 0 {
		idx |= 1
	}
	if flags&whiteQueensideRight != 0 {
		idx |= 2
	}
	if flags&blackKingsideRight != 0 {
		idx |= 4
	}
	if flags&blackQueensideRight != 0 {
		idx |= 8
	}
	return idx
}

// Hash returns p's Zobrist fingerprint, computed only from QBB, Color, and
// Flags — the two move counters are never mixed in, so Hash agrees with
// Equal on which positions are "the same".
func (p Position) Hash() uint64 {
	var h uint64

	occ := p.QBB.occupied()
	for bb := occ; bb != 0; {
		sq := popSquare(&bb)
		c, pt, _ := p.QBB.PieceAt(sq)
		h ^= pieceKeys[pieceCode(c, pt)][sq]
	}

	h ^= castlingKeys[castlingRightsIndex(p.Flags)]

	if ep, ok := p.EnPassantSquare(); ok {
		h ^= epFileKeys[ep.File()]
	}

	if p.Color == Black {
		h ^= colorKey
	}

	return h
}
