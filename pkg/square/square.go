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

// Package square declares constants representing every square on a
// chessboard, and the geometry (ranks, files, directions, and path
// iterators) used by move generation.
//
// Squares are represented using algebraic notation.
// https://www.chessprogramming.org/Algebraic_Chess_Notation
// The null square is represented using the "-" symbol.
package square

import "fmt"

// Square represents a square on a chessboard, or None.
type Square int8

// None is the null square, returned whenever a query has no answer, e.g.
// the en-passant target of a position where no double push just happened.
const None Square = -1

// constants representing every square on the board.
const (
	A8, B8, C8, D8, E8, F8, G8, H8 Square = +0, +1, +2, +3, +4, +5, +6, +7
	A7, B7, C7, D7, E7, F7, G7, H7 Square = +8, +9, 10, 11, 12, 13, 14, 15
	A6, B6, C6, D6, E6, F6, G6, H6 Square = 16, 17, 18, 19, 20, 21, 22, 23
	A5, B5, C5, D5, E5, F5, G5, H5 Square = 24, 25, 26, 27, 28, 29, 30, 31
	A4, B4, C4, D4, E4, F4, G4, H4 Square = 32, 33, 34, 35, 36, 37, 38, 39
	A3, B3, C3, D3, E3, F3, G3, H3 Square = 40, 41, 42, 43, 44, 45, 46, 47
	A2, B2, C2, D2, E2, F2, G2, H2 Square = 48, 49, 50, 51, 52, 53, 54, 55
	A1, B1, C1, D1, E1, F1, G1, H1 Square = 56, 57, 58, 59, 60, 61, 62, 63
)

// N is the number of squares on the board.
const N = 64

// New creates a Square from a file and a rank. index(rank, file) =
// rank*8 + file, matching the invariant every conversion relies on.
func New(file File, rank Rank) Square {
	return Square(int(rank)<<3 | int(file))
}

// NewFromString parses a square from its two-character algebraic form,
// e.g. "e4", or the literal "-" for None.
func NewFromString(id string) Square {
	if id == "-" {
		return None
	}
	if len(id) != 2 {
		panic(fmt.Sprintf("square: invalid square id %q", id))
	}
	return New(FileFrom(string(id[0])), RankFrom(string(id[1])))
}

// String converts a Square to its algebraic representation.
func (s Square) String() string {
	if s == None {
		return "-"
	}
	return s.File().String() + s.Rank().String()
}

// File returns the file the square lies on.
func (s Square) File() File {
	return File(s) & 7
}

// Rank returns the rank the square lies on.
func (s Square) Rank() Rank {
	return Rank(s) >> 3
}

// Valid reports whether s is a real square (not None and in range).
func (s Square) Valid() bool {
	return s >= 0 && s < N
}

// Flip mirrors a square across the board's centre: (rank, file) maps to
// (7-rank, 7-file). Used to share tables between white and black.
func (s Square) Flip() Square {
	if s == None {
		return None
	}
	return New(7-s.File(), 7-s.Rank())
}
