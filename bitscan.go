package quadchego

// bitScanLookup maps a De Bruijn-hashed LSB to its index within a 64-bit word.
//
// See http://pradu.us/old/Nov27_2008/Buzz/research/magic/Bitboards.pdf section 3.2.
var bitScanLookup = [64]int{
	63, 0, 58, 1, 59, 47, 53, 2,
	60, 39, 48, 27, 54, 33, 42, 3,
	61, 51, 37, 40, 49, 18, 28, 20,
	55, 30, 34, 11, 43, 14, 22, 4,
	62, 57, 46, 52, 38, 26, 32, 41,
	50, 36, 17, 19, 29, 10, 13, 21,
	56, 45, 25, 31, 35, 16, 9, 12,
	44, 24, 15, 8, 23, 7, 6, 5,
}

// bitscanMagic is the De Bruijn constant used to hash an isolated LSB into
// bitScanLookup.
const bitscanMagic uint64 = 0x07EDD5E59A4E28C2

// bitScan returns the index of the least significant set bit of bb.
//
// NOTE: bitScan returns 63 for an empty bitboard.
func bitScan(bb uint64) int {
	return bitScanLookup[(bb&-bb)*bitscanMagic>>58]
}

// popLSB clears the least significant set bit of *bb and returns its index.
//
// NOTE: popLSB returns 63 for an empty bitboard.
func popLSB(bb *uint64) int {
	lsb := bitScan(*bb)
	*bb &= *bb - 1
	return lsb
}

// countBits returns the number of set bits in bb.
func countBits(bb uint64) (cnt int) {
	for ; bb > 0; cnt++ {
		bb &= bb - 1
	}
	return cnt
}

// popSquare clears the least significant set bit of *bb and returns it as a
// Square, for iterating a Bitboard one occupied square at a time.
func popSquare(bb *Bitboard) Square {
	return Square(popLSB((*uint64)(bb)))
}
