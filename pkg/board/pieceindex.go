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

import (
	"laptudirm.com/x/messfront/pkg/piece"
	"laptudirm.com/x/messfront/pkg/square"
)

// PieceIndex is the bitboard-free position representation: a 64-entry
// mailbox of pieces plus, for each (color, type) combination, the set
// of squares it occupies, and a cache of both kings' squares. Every
// non-empty mailbox entry appears in exactly one group; each king group
// has exactly one member in a legal position.
type PieceIndex struct {
	mailbox [square.N]piece.Piece
	groups  [piece.BlackKing + 1]squareSet // indexed by piece.Piece value
	kings   [piece.ColorN]square.Square
}

// NewPieceIndex returns an empty index with no pieces placed and the
// king caches set to square.None.
func NewPieceIndex() *PieceIndex {
	idx := &PieceIndex{}
	idx.kings[piece.White] = square.None
	idx.kings[piece.Black] = square.None
	return idx
}

// Get returns the piece occupying sq, or piece.NoPiece if it is empty.
func (idx *PieceIndex) Get(sq square.Square) piece.Piece {
	return idx.mailbox[sq]
}

// Set places p on sq, which must currently be empty.
func (idx *PieceIndex) Set(p piece.Piece, sq square.Square) {
	idx.mailbox[sq] = p
	idx.groups[p].add(sq)
	if p.Is(piece.King) {
		idx.kings[p.Color()] = sq
	}
}

// Remove clears sq and returns the piece that was there, or
// piece.NoPiece if it was already empty.
func (idx *PieceIndex) Remove(sq square.Square) piece.Piece {
	p := idx.mailbox[sq]
	if p == piece.NoPiece {
		return piece.NoPiece
	}

	idx.mailbox[sq] = piece.NoPiece
	idx.groups[p].remove(sq)
	if p.Is(piece.King) {
		idx.kings[p.Color()] = square.None
	}
	return p
}

// Group returns the squares currently occupied by p. The returned slice
// is owned by the index and must not be mutated or retained across a
// Set/Remove call.
func (idx *PieceIndex) Group(p piece.Piece) []square.Square {
	return idx.groups[p].squares
}

// GroupSize returns the number of squares occupied by p.
func (idx *PieceIndex) GroupSize(p piece.Piece) int {
	return idx.groups[p].len()
}

// KingSquare returns the cached square of the given color's king, or
// square.None if it has been removed (setup mode only).
func (idx *PieceIndex) KingSquare(c piece.Color) square.Square {
	return idx.kings[c]
}

// CopyFrom overwrites idx in place with a copy of other's state.
func (idx *PieceIndex) CopyFrom(other *PieceIndex) {
	idx.mailbox = other.mailbox
	idx.kings = other.kings
	for p := range idx.groups {
		idx.groups[p] = other.groups[p].clone()
	}
}

// Clone returns an independent deep copy of the index.
func (idx *PieceIndex) Clone() *PieceIndex {
	c := &PieceIndex{}
	c.CopyFrom(idx)
	return c
}

// RayEmpty reports whether every square strictly between from and to is
// empty. from and to must share one of the sixteen directions.
func (idx *PieceIndex) RayEmpty(from, to square.Square) bool {
	for _, sq := range square.OpenPath(from, to) {
		if idx.mailbox[sq] != piece.NoPiece {
			return false
		}
	}
	return true
}

// RayEmptyIgnoringKing is RayEmpty but treats the given color's king
// square as empty. It is used to detect that a king in check cannot
// simply step backward along the checking slider's ray, since without
// this the king itself would be (wrongly) seen as blocking its own
// escape square from attack.
func (idx *PieceIndex) RayEmptyIgnoringKing(from, to square.Square, kingColor piece.Color) bool {
	kingSq := idx.kings[kingColor]
	for _, sq := range square.OpenPath(from, to) {
		if sq == kingSq {
			continue
		}
		if idx.mailbox[sq] != piece.NoPiece {
			return false
		}
	}
	return true
}

// FirstBlocker walks the ray from (exclusive) along dir and returns the
// first occupied square and the piece on it. ok is false if the ray
// reaches the edge of the board without finding one.
func (idx *PieceIndex) FirstBlocker(from square.Square, dir square.Direction) (sq square.Square, p piece.Piece, ok bool) {
	return idx.firstBlocker(from, dir, square.None)
}

// FirstBlockerIgnoring is FirstBlocker but treats the ignore square as
// empty even if occupied, used for the same king-ray-vision purpose as
// RayEmptyIgnoringKing but for an open-ended ray.
func (idx *PieceIndex) FirstBlockerIgnoring(from square.Square, dir square.Direction, ignore square.Square) (sq square.Square, p piece.Piece, ok bool) {
	return idx.firstBlocker(from, dir, ignore)
}

func (idx *PieceIndex) firstBlocker(from square.Square, dir square.Direction, ignore square.Square) (square.Square, piece.Piece, bool) {
	ray := square.RayFrom(from, dir)
	for sq := ray.Next(); sq != square.None; sq = ray.Next() {
		if sq == ignore {
			continue
		}
		if p := idx.mailbox[sq]; p != piece.NoPiece {
			return sq, p, true
		}
	}
	return square.None, piece.NoPiece, false
}
