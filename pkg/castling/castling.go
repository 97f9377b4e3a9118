// Copyright © 2022 Rak Laptudirm <rak@laptudirm.com>
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package castling implements castling rights and the static data
// (rook source/destination, king destination, travel direction) needed
// to play and unplay a castling move.
package castling

import (
	"laptudirm.com/x/messfront/pkg/piece"
	"laptudirm.com/x/messfront/pkg/square"
)

// Right represents a single castling right.
type Right uint8

// the four castling rights.
const (
	WhiteKingSide Right = 1 << iota
	WhiteQueenSide
	BlackKingSide
	BlackQueenSide
)

// Rights is a set of castling rights.
type Rights uint8

// NoRights is the empty set of castling rights.
const NoRights Rights = 0

// StartingRights is the set of rights present at the start of a game.
const StartingRights = Rights(WhiteKingSide | WhiteQueenSide | BlackKingSide | BlackQueenSide)

// NewRights parses a Rights set from its FEN representation, e.g. "KQkq"
// or "-" for none. Unrecognized letters are ignored.
func NewRights(s string) Rights {
	if s == "-" {
		return NoRights
	}

	var r Rights
	for _, c := range s {
		switch c {
		case 'K':
			r |= Rights(WhiteKingSide)
		case 'Q':
			r |= Rights(WhiteQueenSide)
		case 'k':
			r |= Rights(BlackKingSide)
		case 'q':
			r |= Rights(BlackQueenSide)
		}
	}
	return r
}

// Has reports whether the set contains the given right.
func (r Rights) Has(right Right) bool {
	return r&Rights(right) != 0
}

// Without returns the set with the given rights removed.
func (r Rights) Without(right Rights) Rights {
	return r &^ right
}

// String converts a Rights set to its FEN representation.
func (r Rights) String() string {
	if r == NoRights {
		return "-"
	}

	s := ""
	if r.Has(WhiteKingSide) {
		s += "K"
	}
	if r.Has(WhiteQueenSide) {
		s += "Q"
	}
	if r.Has(BlackKingSide) {
		s += "k"
	}
	if r.Has(BlackQueenSide) {
		s += "q"
	}
	return s
}

// Info describes everything needed to play or unplay one castling move.
type Info struct {
	Right Right // the right this castle consumes

	KingFrom, KingTo square.Square
	RookFrom, RookTo square.Square
	RookPiece        piece.Piece

	// KingDirection is the direction the king travels in. The move
	// generator does not read it; it checks the king's path with
	// square.ClosedPath.
	KingDirection square.Direction
}

// ByKingDestination looks up the castling Info for a king move landing
// on the given square, e.g. g1 for white king-side. Ok is false if to is
// not a valid castling destination.
func ByKingDestination(to square.Square) (Info, bool) {
	for _, info := range All {
		if info.KingTo == to {
			return info, true
		}
	}
	return Info{}, false
}

// All enumerates the four possible castling moves.
var All = [4]Info{
	{
		Right:         WhiteKingSide,
		KingFrom:      square.E1,
		KingTo:        square.G1,
		RookFrom:      square.H1,
		RookTo:        square.F1,
		RookPiece:     piece.WhiteRook,
		KingDirection: square.East,
	},
	{
		Right:         WhiteQueenSide,
		KingFrom:      square.E1,
		KingTo:        square.C1,
		RookFrom:      square.A1,
		RookTo:        square.D1,
		RookPiece:     piece.WhiteRook,
		KingDirection: square.West,
	},
	{
		Right:         BlackKingSide,
		KingFrom:      square.E8,
		KingTo:        square.G8,
		RookFrom:      square.H8,
		RookTo:        square.F8,
		RookPiece:     piece.BlackRook,
		KingDirection: square.East,
	},
	{
		Right:         BlackQueenSide,
		KingFrom:      square.E8,
		KingTo:        square.C8,
		RookFrom:      square.A8,
		RookTo:        square.D8,
		RookPiece:     piece.BlackRook,
		KingDirection: square.West,
	},
}

// RightUpdates[s] is the set of rights that are lost the moment a piece
// moves away from, or is captured on, square s. Applying this to both
// the move's source and target square after every move (king moves,
// rook moves, and rook captures alike) mechanically keeps castling
// rights correct, matching the mechanical rule in the component design:
// a king move clears both of its color's rights, a rook move or capture
// on an original rook square clears only that side's right.
var RightUpdates [square.N]Rights

func init() {
	RightUpdates[square.E1] = Rights(WhiteKingSide | WhiteQueenSide)
	RightUpdates[square.E8] = Rights(BlackKingSide | BlackQueenSide)
	RightUpdates[square.H1] = Rights(WhiteKingSide)
	RightUpdates[square.A1] = Rights(WhiteQueenSide)
	RightUpdates[square.H8] = Rights(BlackKingSide)
	RightUpdates[square.A8] = Rights(BlackQueenSide)
}
