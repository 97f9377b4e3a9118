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

package board

import "laptudirm.com/x/messfront/pkg/square"

// squareSet is a set of squares supporting O(1) add, remove and
// membership queries. It backs the Piece Index's per-(color,type)
// groups; unlike a bitboard it carries no board-wide packed
// representation, just the occupied squares themselves, keeping the
// position representation bitboard-free end to end.
type squareSet struct {
	squares []square.Square
	slot    [square.N]int8 // slot[s]-1 is squares' index of s, 0 if absent
}

func (s *squareSet) add(sq square.Square) {
	if s.slot[sq] != 0 {
		return
	}
	s.squares = append(s.squares, sq)
	s.slot[sq] = int8(len(s.squares))
}

func (s *squareSet) remove(sq square.Square) {
	i := s.slot[sq]
	if i == 0 {
		return
	}

	last := len(s.squares) - 1
	moved := s.squares[last]

	s.squares[i-1] = moved
	s.slot[moved] = i
	s.squares = s.squares[:last]
	s.slot[sq] = 0
}

func (s *squareSet) contains(sq square.Square) bool {
	return s.slot[sq] != 0
}

func (s *squareSet) len() int {
	return len(s.squares)
}

// clone returns an independent copy of the set.
func (s *squareSet) clone() squareSet {
	var c squareSet
	c.squares = append([]square.Square(nil), s.squares...)
	c.slot = s.slot
	return c
}
