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

// Package move declares the Move type and the long-algebraic notation
// used by the engine wire protocol, along with the browsable Move List
// kept by a game's history.
package move

import (
	"fmt"

	"laptudirm.com/x/messfront/internal/fault"
	"laptudirm.com/x/messfront/pkg/piece"
	"laptudirm.com/x/messfront/pkg/square"
)

// Disambiguation records which part of a move's source square needs to
// be shown in algebraic notation to distinguish it from another legal
// move of the same piece type to the same destination.
type Disambiguation uint8

// the four disambiguation states.
const (
	DisambigNone Disambiguation = iota
	DisambigFile
	DisambigRank
	DisambigBoth
)

// Move represents a single chess move and the bookkeeping data attached
// to it once it has been played: the captured piece (if any), whether it
// was a castle or an en-passant capture, and the check/disambiguation
// annotations needed to print it. Two moves with the same From, To and
// Promotion are the same move for generation purposes regardless
// of these annotations, which is why they are filled in only after the
// move has been applied.
type Move struct {
	Piece piece.Piece
	From  square.Square
	To    square.Square

	// Promotion is the piece type the pawn becomes, or piece.NoType.
	Promotion piece.Type

	// Captured is the piece taken by this move, or piece.NoPiece.
	Captured piece.Piece

	Castle    bool
	EnPassant bool

	Disambiguation Disambiguation
	Check          bool
	Checkmate      bool
}

// Null is the move with no source or destination square (both
// square.None), used as a "no such move" sentinel.
var Null = Move{From: square.None, To: square.None}

// IsCapture reports whether the move takes a piece, including en-passant.
func (m Move) IsCapture() bool {
	return m.Captured != piece.NoPiece
}

// IsPromotion reports whether the move promotes a pawn.
func (m Move) IsPromotion() bool {
	return m.Promotion != piece.NoType
}

// Equal reports whether two moves are the same move for generation and
// legality purposes, ignoring annotations stamped in after application.
func (m Move) Equal(o Move) bool {
	return m.From == o.From && m.To == o.To && m.Promotion == o.Promotion
}

// String renders the move in long algebraic notation, e.g. "e2e4",
// "e7e8q" for a promotion, or "e1g1" for castling (the king's own
// two-square move, per the wire protocol).
func (m Move) String() string {
	if m == Null {
		return "0000"
	}

	s := m.From.String() + m.To.String()
	if m.Promotion != piece.NoType {
		s += m.Promotion.String()
	}
	return s
}

// ParseLongAlgebraic parses the from/to squares and optional promotion
// piece type out of a long-algebraic move string. It does not know
// which piece is moving or whether the move is legal; the board
// package resolves that context.
func ParseLongAlgebraic(s string) (from, to square.Square, promotion piece.Type, err error) {
	if s == "0000" {
		return square.None, square.None, piece.NoType, nil
	}

	if len(s) != 4 && len(s) != 5 {
		return 0, 0, 0, fmt.Errorf("move: invalid long algebraic move %q: %w", s, fault.ErrParse)
	}

	from = square.NewFromString(s[0:2])
	to = square.NewFromString(s[2:4])

	if len(s) == 5 {
		switch s[4] {
		case 'q':
			promotion = piece.Queen
		case 'r':
			promotion = piece.Rook
		case 'b':
			promotion = piece.Bishop
		case 'n':
			promotion = piece.Knight
		default:
			return 0, 0, 0, fmt.Errorf("move: invalid promotion letter %q: %w", s[4:], fault.ErrParse)
		}
	}

	return from, to, promotion, nil
}
