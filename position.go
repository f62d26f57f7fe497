package quadchego

import (
	"fmt"
	"strconv"
	"strings"
)

// Position is the tuple of QuadBitboard, side to move, castling/en-passant
// flags, and the two FEN move counters. Positions are immutable values:
// every operation that "changes" a Position returns a new one.
type Position struct {
	QBB   QuadBitboard
	Color Color
	// Flags packs castling rights and the en-passant target into one
	// square-indexed bitboard: bit SquareH1/SquareA1 are White's
	// kingside/queenside rights, SquareH8/SquareA8 are Black's, and at
	// most one bit on rank 3 or rank 6 is the en-passant target square.
	Flags         Bitboard
	HalfMoveClock int
	MoveNumber    int
}

const (
	whiteKingsideRight  = Bitboard(1) << SquareH1
	whiteQueensideRight = Bitboard(1) << SquareA1
	blackKingsideRight  = Bitboard(1) << SquareH8
	blackQueensideRight = Bitboard(1) << SquareA8
	allCastlingRights   = whiteKingsideRight | whiteQueensideRight |
		blackKingsideRight | blackQueensideRight
	enPassantMask = rank3 | rank6
)

// castlingClearMask[sq] is the set of castling-right bits that must be
// cleared whenever a ply's source or destination is sq: the king's home
// square clears both of that color's rights, each corner clears the one
// right it guards.
var castlingClearMask = buildCastlingClearMask()

func buildCastlingClearMask() [64]Bitboard {
	var m [64]Bitboard
	m[SquareE1] = whiteKingsideRight | whiteQueensideRight
	m[SquareH1] = whiteKingsideRight
	m[SquareA1] = whiteQueensideRight
	m[SquareE8] = blackKingsideRight | blackQueensideRight
	m[SquareH8] = blackKingsideRight
	m[SquareA8] = blackQueensideRight
	return m
}

// EnPassantSquare returns the en-passant target square and true, or
// (NoSquare, false) if no capture is currently available.
func (p Position) EnPassantSquare() (Square, bool) {
	ep := p.Flags & enPassantMask
	if ep == 0 {
		return NoSquare, false
	}
	return popSquare(&ep), true
}

// CanCastle reports whether the castling-rights bit for right is set.
func (p Position) CanCastle(right Bitboard) bool { return p.Flags&right != 0 }

// Equal reports whether p and other are the same position per FIDE Article
// 9.2: equal QuadBitboard, side to move, and flags. HalfMoveClock and
// MoveNumber are deliberately excluded, so repetition detection can use this
// as its equality.
func (p Position) Equal(other Position) bool {
	return p.QBB == other.QBB && p.Color == other.Color && p.Flags == other.Flags
}

// InsufficientMaterial reports whether neither side has enough material left
// to deliver checkmate.
func (p Position) InsufficientMaterial() bool { return p.QBB.insufficientMaterial() }

// InCheck reports whether c's king is currently attacked.
func (p Position) InCheck(c Color) bool {
	kingBB := p.QBB.kings() & p.QBB.byColor(c)
	if kingBB == 0 {
		return false
	}
	king := popSquare(&kingBB)
	return squareAttackedBy(p.QBB, king, c.Opponent(), p.QBB.occupied())
}

// StartFEN is the FEN of the standard chess starting position.
const StartFEN = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

// ParseFEN parses a standard 6-field FEN string, or the 4-field abbreviated
// form (halfmove clock defaulting to 0, move number to 1).
func ParseFEN(text string) (Position, error) {
	fields := strings.Fields(text)
	if len(fields) != 4 && len(fields) != 6 {
		return Position{}, fmt.Errorf("%w: %q: want 4 or 6 fields, got %d", ErrMalformedFEN, text, len(fields))
	}

	qbb, err := parsePlacement(fields[0])
	if err != nil {
		return Position{}, fmt.Errorf("%w: %q: %w", ErrMalformedFEN, text, err)
	}

	var color Color
	switch fields[1] {
	case "w":
		color = White
	case "b":
		color = Black
	default:
		return Position{}, fmt.Errorf("%w: %q: bad active color %q", ErrMalformedFEN, text, fields[1])
	}

	var flags Bitboard
	if fields[2] != "-" {
		for _, c := range fields[2] {
			switch c {
			case 'K':
				flags |= whiteKingsideRight
			case 'Q':
				flags |= whiteQueensideRight
			case 'k':
				flags |= blackKingsideRight
			case 'q':
				flags |= blackQueensideRight
			default:
				return Position{}, fmt.Errorf("%w: %q: bad castling field %q", ErrMalformedFEN, text, fields[2])
			}
		}
	}

	if fields[3] != "-" {
		sq, err := SquareFromString(fields[3])
		if err != nil {
			return Position{}, fmt.Errorf("%w: %q: bad en passant field: %w", ErrMalformedFEN, text, err)
		}
		if Bit(sq)&enPassantMask == 0 {
			return Position{}, fmt.Errorf("%w: %q: en passant square %v not on rank 3 or 6", ErrMalformedFEN, text, sq)
		}
		flags |= Bit(sq)
	}

	halfMove, moveNumber := 0, 1
	if len(fields) == 6 {
		halfMove, err = strconv.Atoi(fields[4])
		if err != nil {
			return Position{}, fmt.Errorf("%w: %q: bad halfmove clock: %w", ErrMalformedFEN, text, err)
		}
		moveNumber, err = strconv.Atoi(fields[5])
		if err != nil {
			return Position{}, fmt.Errorf("%w: %q: bad fullmove number: %w", ErrMalformedFEN, text, err)
		}
	}

	return Position{
		QBB:           qbb,
		Color:         color,
		Flags:         flags,
		HalfMoveClock: halfMove,
		MoveNumber:    moveNumber,
	}, nil
}

// CastlingString renders p's castling rights in FEN order (KQkq), or "-" if
// neither side retains any.
func (p Position) CastlingString() string {
	var b strings.Builder
	if p.Flags&whiteKingsideRight != 0 {
		b.WriteByte('K')
	}
	if p.Flags&whiteQueensideRight != 0 {
		b.WriteByte('Q')
	}
	if p.Flags&blackKingsideRight != 0 {
		b.WriteByte('k')
	}
	if p.Flags&blackQueensideRight != 0 {
		b.WriteByte('q')
	}
	if b.Len() == 0 {
		return "-"
	}
	return b.String()
}

// ToFEN serializes p into the standard 6-field FEN string.
func ToFEN(p Position) string {
	var b strings.Builder
	b.Grow(64)

	b.WriteString(serializePlacement(p.QBB))
	b.WriteByte(' ')

	if p.Color == White {
		b.WriteByte('w')
	} else {
		b.WriteByte('b')
	}
	b.WriteByte(' ')

	b.WriteString(p.CastlingString())
	b.WriteByte(' ')

	if ep, ok := p.EnPassantSquare(); ok {
		b.WriteString(ep.String())
	} else {
		b.WriteByte('-')
	}
	b.WriteByte(' ')

	b.WriteString(strconv.Itoa(p.HalfMoveClock))
	b.WriteByte(' ')
	b.WriteString(strconv.Itoa(p.MoveNumber))

	return b.String()
}

var fenPieceLetters = map[byte]struct {
	Color
	PieceType
}{
	'P': {White, Pawn}, 'N': {White, Knight}, 'B': {White, Bishop},
	'R': {White, Rook}, 'Q': {White, Queen}, 'K': {White, King},
	'p': {Black, Pawn}, 'n': {Black, Knight}, 'b': {Black, Bishop},
	'r': {Black, Rook}, 'q': {Black, Queen}, 'k': {Black, King},
}

// parsePlacement is the QuadBitboard's string constructor: it parses the
// first FEN field (ranks 8 down to 1, '/' separators, digits for runs of
// empty squares, piece letters PNBRQKpnbrqk) into a QuadBitboard.
func parsePlacement(text string) (QuadBitboard, error) {
	var q QuadBitboard
	sq := 56 // a8

	for i := 0; i < len(text); i++ {
		switch c := text[i]; {
		case c == '/':
			sq -= 16
		case c >= '1' && c <= '8':
			sq += int(c - '0')
		default:
			piece, ok := fenPieceLetters[c]
			if !ok {
				return QuadBitboard{}, fmt.Errorf("bad piece placement %q: unknown character %q", text, c)
			}
			if sq < 0 || sq > 63 {
				return QuadBitboard{}, fmt.Errorf("bad piece placement %q: square out of range", text)
			}
			q = q.setNibble(Square(sq), pieceCode(piece.Color, piece.PieceType))
			sq++
		}
	}

	return q, nil
}

// serializePlacement is the inverse of parsePlacement.
func serializePlacement(q QuadBitboard) string {
	var b strings.Builder
	b.Grow(20)

	for rank := 7; rank >= 0; rank-- {
		empty := 0
		for file := range 8 {
			sq := Square(rank*8 + file)
			c, pt, ok := q.PieceAt(sq)
			if !ok {
				empty++
				continue
			}
			if empty > 0 {
				b.WriteByte('0' + byte(empty))
				empty = 0
			}
			letter := pt.Letter()
			if c == Black {
				letter += 'a' - 'A'
			}
			b.WriteByte(letter)
		}
		if empty > 0 {
			b.WriteByte('0' + byte(empty))
		}
		if rank != 0 {
			b.WriteByte('/')
		}
	}

	return b.String()
}
