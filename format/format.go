// Package format renders QuadBitboards and Positions as human-readable
// ASCII/Unicode diagrams, mainly for test failure output and the perft CLI's
// verbose mode.
package format

import (
	"strings"

	"github.com/qbbchego/quadchego"
)

var pieceSymbols = [2][6]rune{
	quadchego.White: {'♙', '♘', '♗', '♖', '♕', '♔'},
	quadchego.Black: {'♟', '♞', '♝', '♜', '♛', '♚'},
}

// Bitboard renders a single 64-bit bitboard as an 8x8 grid, marking each set
// square with symbol and every other square with '.'.
func Bitboard(bb quadchego.Bitboard, symbol rune) string {
	var b strings.Builder

	for rank := 7; rank >= 0; rank-- {
		b.WriteByte(byte(rank) + '1')
		b.WriteString("  ")
		for file := 0; file < 8; file++ {
			sq := quadchego.Square(rank*8 + file)
			r := '.'
			if bb&quadchego.Bit(sq) != 0 {
				r = symbol
			}
			b.WriteRune(r)
			b.WriteString("  ")
		}
		b.WriteByte('\n')
	}
	b.WriteString("   a  b  c  d  e  f  g  h\n")

	return b.String()
}

// Board renders the full piece placement of q as an 8x8 grid of Unicode
// chess symbols.
func Board(q quadchego.QuadBitboard) string {
	var b strings.Builder

	for rank := 7; rank >= 0; rank-- {
		b.WriteByte(byte(rank) + '1')
		b.WriteString("  ")
		for file := 0; file < 8; file++ {
			sq := quadchego.Square(rank*8 + file)
			r := '.'
			if c, pt, ok := q.PieceAt(sq); ok {
				r = pieceSymbols[c][pt]
			}
			b.WriteRune(r)
			b.WriteString("  ")
		}
		b.WriteByte('\n')
	}
	b.WriteString("   a  b  c  d  e  f  g  h\n")

	return b.String()
}

// Position renders p's board plus its side-to-move, en-passant target and
// castling rights, for perft verbose output and test failure dumps.
func Position(p quadchego.Position) string {
	var b strings.Builder

	b.WriteString(Board(p.QBB))
	b.WriteString("Active color: ")
	b.WriteString(p.Color.String())

	b.WriteString("\nEn passant: ")
	if ep, ok := p.EnPassantSquare(); ok {
		b.WriteString(ep.String())
	} else {
		b.WriteString("none")
	}

	b.WriteString("\nCastling rights: ")
	b.WriteString(p.CastlingString())
	b.WriteByte('\n')

	return b.String()
}
