// Copyright © 2023 Rak Laptudirm <rak@laptudirm.com>
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

package piece

import "laptudirm.com/x/messfront/pkg/square"

// diagonalDirections and orthogonalDirections are the ray directions a
// bishop and a rook respectively may slide along.
var diagonalDirections = []square.Direction{
	square.NorthEast, square.SouthEast, square.SouthWest, square.NorthWest,
}

var orthogonalDirections = []square.Direction{
	square.North, square.East, square.South, square.West,
}

// allDirections is the union used by the queen and the king.
var allDirections = append(append([]square.Direction{}, orthogonalDirections...), diagonalDirections...)

// knightDirections are the eight knight jumps.
var knightDirections = []square.Direction{
	square.KnightNNE, square.KnightENE, square.KnightESE, square.KnightSSE,
	square.KnightSSW, square.KnightWSW, square.KnightWNW, square.KnightNNW,
}

// Directions returns the set of directions a piece of this type may move
// along. For sliders it is the rays the piece walks until blocked; for
// the knight and king it is a single step in each of their directions.
// It panics for Pawn, which moves asymmetrically by color — use
// Color.PawnForwardDirections and Color.PawnPushDirection instead.
func (t Type) Directions() []square.Direction {
	switch t {
	case Bishop:
		return diagonalDirections
	case Rook:
		return orthogonalDirections
	case Queen, King:
		return allDirections
	case Knight:
		return knightDirections
	default:
		panic("piece: type has no direction set")
	}
}

// Sliding reports whether pieces of this type slide along their
// directions (bishop, rook, queen) as opposed to taking a single step.
func (t Type) Sliding() bool {
	return t == Bishop || t == Rook || t == Queen
}

// PawnPushDirection returns the single direction a pawn of this color
// advances along when pushing.
func (c Color) PawnPushDirection() square.Direction {
	if c == White {
		return square.North
	}
	return square.South
}

// PawnForwardDirections returns the two diagonal directions a pawn of
// this color captures along.
func (c Color) PawnForwardDirections() [2]square.Direction {
	if c == White {
		return [2]square.Direction{square.NorthWest, square.NorthEast}
	}
	return [2]square.Direction{square.SouthWest, square.SouthEast}
}

// PawnHomeRank is the rank pawns of this color start the game on.
func (c Color) PawnHomeRank() square.Rank {
	if c == White {
		return square.Rank2
	}
	return square.Rank7
}

// PawnPromotionRank is the rank a pawn of this color promotes upon
// reaching.
func (c Color) PawnPromotionRank() square.Rank {
	if c == White {
		return square.Rank8
	}
	return square.Rank1
}
