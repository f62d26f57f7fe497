// Package game implements chess game state management on top of the pure
// quadchego core: a move stack with undo, captured-piece tracking, and
// threefold-repetition bookkeeping.
//
// Make sure to call [quadchego.InitAttackTables] and
// [quadchego.InitZobristKeys] once before using this package.
package game

import "github.com/qbbchego/quadchego"

// Game represents a single chess game's mutable state, built from immutable
// Positions.
type Game struct {
	Position    quadchego.Position
	LegalPlies  []quadchego.Ply
	PlyStack    []CompletedPly
	Repetitions map[uint64]int
	Captured    []struct {
		quadchego.Color
		quadchego.PieceType
	}
}

// CompletedPly is one entry of a Game's move stack: the ply played and the
// position it was played from, so PopPly can restore prior state without
// re-deriving it.
type CompletedPly struct {
	Ply    quadchego.Ply
	Before quadchego.Position
}

// NewGame creates a new game from the standard starting position.
func NewGame() *Game {
	pos, err := quadchego.ParseFEN(quadchego.StartFEN)
	if err != nil {
		panic("game: starting FEN failed to parse: " + err.Error())
	}
	g := &Game{
		Position:    pos,
		PlyStack:    make([]CompletedPly, 0, 64),
		Repetitions: make(map[uint64]int),
	}
	g.LegalPlies = quadchego.LegalPlies(g.Position)
	g.Repetitions[g.Position.Hash()]++
	return g
}

// NewGameFromFEN creates a new game from an arbitrary FEN string.
func NewGameFromFEN(fen string) (*Game, error) {
	pos, err := quadchego.ParseFEN(fen)
	if err != nil {
		return nil, err
	}
	g := &Game{
		Position:    pos,
		PlyStack:    make([]CompletedPly, 0, 64),
		Repetitions: make(map[uint64]int),
	}
	g.LegalPlies = quadchego.LegalPlies(g.Position)
	g.Repetitions[g.Position.Hash()]++
	return g, nil
}

// PushPly plays ply, which must be a member of g.LegalPlies — it is the
// caller's responsibility to check GetLegalPly first. Updates captured
// pieces, the move stack, legal plies for the next turn, and the
// repetition table.
func (g *Game) PushPly(ply quadchego.Ply) {
	if c, pt, captured := g.capturedPiece(ply); captured {
		g.Captured = append(g.Captured, struct {
			quadchego.Color
			quadchego.PieceType
		}{c, pt})
	}

	g.PlyStack = append(g.PlyStack, CompletedPly{Ply: ply, Before: g.Position})
	g.Position = quadchego.UnsafeApply(g.Position, ply)
	g.LegalPlies = quadchego.LegalPlies(g.Position)
	g.Repetitions[g.Position.Hash()]++
}

// PopPly undoes the last played ply, restoring the prior position and
// regenerating legal plies. No-op if no ply has been played.
func (g *Game) PopPly() {
	if len(g.PlyStack) == 0 {
		return
	}

	g.Repetitions[g.Position.Hash()]--
	last := g.PlyStack[len(g.PlyStack)-1]
	g.PlyStack = g.PlyStack[:len(g.PlyStack)-1]

	g.Position = last.Before
	if _, _, captured := g.capturedPiece(last.Ply); captured {
		g.Captured = g.Captured[:len(g.Captured)-1]
	}

	g.LegalPlies = quadchego.LegalPlies(g.Position)
}

// capturedPiece reports the piece ply removes from the board when played
// from g.Position, including the pawn taken by an en-passant capture (which
// sits beside the ply's target square rather than on it).
func (g *Game) capturedPiece(ply quadchego.Ply) (quadchego.Color, quadchego.PieceType, bool) {
	pos := g.Position
	if c, pt, ok := pos.QBB.PieceAt(ply.Target()); ok {
		return c, pt, true
	}
	if _, pt, ok := pos.QBB.PieceAt(ply.Source()); ok && pt == quadchego.Pawn {
		if ep, ok := pos.EnPassantSquare(); ok && ep == ply.Target() {
			capturedSquare := ply.Target() - 8
			if pos.Color == quadchego.Black {
				capturedSquare = ply.Target() + 8
			}
			if c, pt, ok := pos.QBB.PieceAt(capturedSquare); ok {
				return c, pt, true
			}
		}
	}
	return 0, 0, false
}

// IsThreefoldRepetition reports whether the current position has occurred
// at least three times in this game.
func (g *Game) IsThreefoldRepetition() bool {
	return g.Repetitions[g.Position.Hash()] >= 3
}

// IsInsufficientMaterial reports whether neither side retains enough
// material to deliver checkmate.
func (g *Game) IsInsufficientMaterial() bool {
	return g.Position.InsufficientMaterial()
}

// IsCheckmate reports whether the side to move has no legal plies and is in
// check. With no legal plies and no check, the position is a stalemate
// instead.
func (g *Game) IsCheckmate() bool {
	return len(g.LegalPlies) == 0 && g.Position.InCheck(g.Position.Color)
}

// IsStalemate reports whether the side to move has no legal plies and is
// not in check.
func (g *Game) IsStalemate() bool {
	return len(g.LegalPlies) == 0 && !g.Position.InCheck(g.Position.Color)
}

// GetLegalPly looks up ply among g.LegalPlies by source and destination
// square, filling in ply's requested promotion piece (defaulting to Queen
// if ply doesn't name a valid one). Returns ok=false if no legal ply shares
// ply's source and destination.
func (g *Game) GetLegalPly(ply quadchego.Ply) (quadchego.Ply, bool) {
	for _, legal := range g.LegalPlies {
		if legal.Source() != ply.Source() || legal.Target() != ply.Target() {
			continue
		}
		if legal.Promotion() < 0 {
			return legal, true
		}
		promo := ply.Promotion()
		if promo != quadchego.Knight && promo != quadchego.Bishop &&
			promo != quadchego.Rook && promo != quadchego.Queen {
			promo = quadchego.Queen
		}
		return legal.PromoteTo(promo), true
	}
	return 0, false
}
