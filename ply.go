package quadchego

import (
	"fmt"
	"strings"
)

// Ply is a single half-move packed into 16 bits: bits 0-5 are the
// destination square, bits 6-11 the source square, bits 12-14 the promotion
// piece (0 = none, else PieceType+1). Castling is represented as the king's
// own move (E1->G1/C1, E8->G8/C8); en-passant captures are the pawn's
// source->target move with no promotion bits set — there is no separate
// "move type" tag, so callers recover special-move status from context
// (source piece, destination, and board state) rather than from the Ply.
type Ply uint16

// NewPly packs a plain (non-promoting) move from src to dst.
func NewPly(src, dst Square) Ply {
	return Ply(dst) | Ply(src)<<6
}

// Source returns the move's origin square.
func (p Ply) Source() Square { return Square(p>>6) & 0x3F }

// Target returns the move's destination square.
func (p Ply) Target() Square { return Square(p) & 0x3F }

// Promotion returns the promoted-to piece type, or -1 if this ply does not
// promote.
func (p Ply) Promotion() PieceType {
	code := int(p>>12) & 0x7
	if code == 0 {
		return -1
	}
	return PieceType(code - 1)
}

// PromoteTo returns p with its promotion bits overwritten by pt. Pawn and
// King are not legal promotion targets, so requesting either is a defensive
// no-op that leaves p unchanged.
func (p Ply) PromoteTo(pt PieceType) Ply {
	if pt == Pawn || pt == King {
		return p
	}
	return p&^(0x7<<12) | Ply(pt+1)<<12
}

func (p Ply) String() string { return p.toUCIString() }

var promoLetters = [6]byte{0, 'n', 'b', 'r', 'q', 0}

// toUCIString renders p as 4 or 5 lowercase coordinate characters.
func (p Ply) toUCIString() string {
	var b strings.Builder
	b.Grow(5)
	b.WriteString(p.Source().String())
	b.WriteString(p.Target().String())
	if pt := p.Promotion(); pt >= 0 {
		b.WriteByte(promoLetters[pt])
	}
	return b.String()
}

// ToUCI is the public alias for the move's 4-or-5-character algebraic form.
func ToUCI(p Ply) string { return p.toUCIString() }

// castlingAliasTargets maps a king's "captures own rook" source/target pair
// (Lichess-style castling encoding) to the corresponding standard king move.
var castlingAliasTargets = map[[2]Square]Square{
	{SquareE1, SquareH1}: SquareG1,
	{SquareE1, SquareA1}: SquareC1,
	{SquareE8, SquareH8}: SquareG8,
	{SquareE8, SquareA8}: SquareC8,
}

// FromUCI parses a UCI move string in the context of pos and validates it
// against pos's legal plies. If the parsed ply is not legal but its source
// piece is the king and (source, target) names one of the Lichess-style
// king-captures-own-rook castling aliases, the corresponding castling ply is
// substituted and revalidated.
func FromUCI(pos Position, text string) (Ply, error) {
	if len(text) != 4 && len(text) != 5 {
		return 0, fmt.Errorf("parse UCI move %q: want 4 or 5 characters", text)
	}
	src, err := SquareFromString(text[0:2])
	if err != nil {
		return 0, fmt.Errorf("parse UCI move %q: %w", text, err)
	}
	dst, err := SquareFromString(text[2:4])
	if err != nil {
		return 0, fmt.Errorf("parse UCI move %q: %w", text, err)
	}

	ply := NewPly(src, dst)
	if len(text) == 5 {
		pt, err := promotionFromLetter(text[4])
		if err != nil {
			return 0, fmt.Errorf("parse UCI move %q: %w", text, err)
		}
		ply = ply.PromoteTo(pt)
	}

	legal := LegalPlies(pos)
	if containsPly(legal, ply) {
		return ply, nil
	}

	if c, pt, ok := pos.QBB.PieceAt(src); ok && pt == King && c == pos.Color {
		if aliasTarget, ok := castlingAliasTargets[[2]Square{src, dst}]; ok {
			aliasPly := NewPly(src, aliasTarget)
			if containsPly(legal, aliasPly) {
				return aliasPly, nil
			}
		}
	}

	return 0, fmt.Errorf("%w: %q is not legal in this position", ErrIllegalPly, text)
}

func promotionFromLetter(letter byte) (PieceType, error) {
	switch letter {
	case 'q':
		return Queen, nil
	case 'r':
		return Rook, nil
	case 'b':
		return Bishop, nil
	case 'n':
		return Knight, nil
	default:
		return 0, fmt.Errorf("unknown promotion letter %q", letter)
	}
}

func containsPly(plies []Ply, p Ply) bool {
	for _, candidate := range plies {
		if candidate == p {
			return true
		}
	}
	return false
}
