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

// Perft counts the number of leaf positions reachable in exactly depth
// plies from the current position, the standard move generator
// correctness and performance benchmark.
// https://www.chessprogramming.org/Perft
func (b *Board) Perft(depth int) uint64 {
	if depth == 0 {
		return 1
	}

	var nodes uint64
	for _, m := range b.AllLegalMoves(b.sideToMove) {
		if err := b.MakeMove(m); err != nil {
			panic("board: perft: generated move rejected by MakeMove: " + err.Error())
		}
		nodes += b.Perft(depth - 1)
		b.UndoMove()
	}
	return nodes
}

// DividedPerft runs Perft(depth-1) on each of the current position's
// legal moves and reports the node count broken down per root move, in
// long algebraic notation. It is used to localize a move generator bug
// by diffing against a reference engine's own divide output.
func (b *Board) DividedPerft(depth int) map[string]uint64 {
	results := make(map[string]uint64)
	if depth == 0 {
		return results
	}

	for _, m := range b.AllLegalMoves(b.sideToMove) {
		if err := b.MakeMove(m); err != nil {
			panic("board: divided perft: generated move rejected by MakeMove: " + err.Error())
		}
		results[m.String()] = b.Perft(depth - 1)
		b.UndoMove()
	}
	return results
}
