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

// AllAttackers returns every square occupied by a byColor piece that
// attacks sq in the current position.
func (b *Board) AllAttackers(sq square.Square, byColor piece.Color) []square.Square {
	return b.index.allAttackers(sq, byColor, square.None)
}

func (idx *PieceIndex) allAttackers(sq square.Square, byColor piece.Color, ignore square.Square) []square.Square {
	var attackers []square.Square

	for _, dir := range piece.Queen.Directions() {
		blockerSq, p, ok := idx.FirstBlockerIgnoring(sq, dir, ignore)
		if !ok || p.Color() != byColor {
			continue
		}
		if p.Is(piece.Queen) || (dir.Diagonal() && p.Is(piece.Bishop)) || (!dir.Diagonal() && p.Is(piece.Rook)) {
			attackers = append(attackers, blockerSq)
		}
	}

	for _, dir := range piece.Knight.Directions() {
		if to := square.Step(sq, dir); to != square.None && to != ignore {
			if p := idx.Get(to); p.Color() == byColor && p.Is(piece.Knight) {
				attackers = append(attackers, to)
			}
		}
	}

	for _, dir := range piece.King.Directions() {
		if to := square.Step(sq, dir); to != square.None && to != ignore {
			if p := idx.Get(to); p.Color() == byColor && p.Is(piece.King) {
				attackers = append(attackers, to)
			}
		}
	}

	// a pawn attacks sq if sq is one of its two forward-diagonal targets,
	// i.e. sq is reachable from a byColor pawn stepping forward; walking
	// backward from sq along byColor's forward directions finds it.
	fwd := byColor.PawnForwardDirections()
	for _, dir := range fwd {
		if from := square.Step(sq, dir.Opposite()); from != square.None && from != ignore {
			if p := idx.Get(from); p.Color() == byColor && p.Is(piece.Pawn) {
				attackers = append(attackers, from)
			}
		}
	}

	return attackers
}

// isAttacked reports whether sq is attacked by any byColor piece,
// optionally treating the ignore square as empty — used so that a
// king fleeing along a slider's ray is not wrongly protected by its own
// current square.
func (idx *PieceIndex) isAttacked(sq square.Square, byColor piece.Color, ignore square.Square) bool {
	// short-circuiting re-implementation of allAttackers avoids building
	// a slice just to check for emptiness on the hot king-safety path.
	for _, dir := range piece.Queen.Directions() {
		_, p, ok := idx.FirstBlockerIgnoring(sq, dir, ignore)
		if ok && p.Color() == byColor &&
			(p.Is(piece.Queen) || (dir.Diagonal() && p.Is(piece.Bishop)) || (!dir.Diagonal() && p.Is(piece.Rook))) {
			return true
		}
	}

	for _, dir := range piece.Knight.Directions() {
		if to := square.Step(sq, dir); to != square.None && to != ignore {
			if p := idx.Get(to); p.Color() == byColor && p.Is(piece.Knight) {
				return true
			}
		}
	}

	for _, dir := range piece.King.Directions() {
		if to := square.Step(sq, dir); to != square.None && to != ignore {
			if p := idx.Get(to); p.Color() == byColor && p.Is(piece.King) {
				return true
			}
		}
	}

	for _, dir := range byColor.PawnForwardDirections() {
		if from := square.Step(sq, dir.Opposite()); from != square.None && from != ignore {
			if p := idx.Get(from); p.Color() == byColor && p.Is(piece.Pawn) {
				return true
			}
		}
	}

	return false
}

// KingState describes whether a color's king is in check, and whether
// it has any legal move at all (used together with that to classify
// checkmate versus stalemate).
type KingState struct {
	InCheck    bool
	HasNoMoves bool
}

// KingState reports the check/stalemate status of the given color.
func (b *Board) KingState(c piece.Color) KingState {
	kingSq := b.index.KingSquare(c)
	inCheck := kingSq != square.None && b.index.isAttacked(kingSq, c.Other(), square.None)
	return KingState{
		InCheck:    inCheck,
		HasNoMoves: len(b.AllLegalMoves(c)) == 0,
	}
}

// pinDirection returns the direction, as seen from the king outward,
// that pins the piece on sq against its own king, or square.DirNone if
// the piece is not pinned. A piece at sq is pinned iff the ray from the
// king to sq is otherwise empty, and the first enemy piece beyond sq
// along that same ray is a slider that can move along it.
func (b *Board) pinDirection(sq square.Square) square.Direction {
	mover := b.index.Get(sq).Color()
	kingSq := b.index.KingSquare(mover)
	if kingSq == square.None {
		return square.DirNone
	}

	dir := square.DirectionBetween(kingSq, sq)
	if dir == square.DirNone || !dir.Sliding() {
		return square.DirNone
	}

	if !b.index.RayEmpty(kingSq, sq) {
		return square.DirNone
	}

	_, blocker, ok := b.index.FirstBlocker(sq, dir)
	if !ok || blocker.Color() == mover {
		return square.DirNone
	}

	if blocker.Is(piece.Queen) || (dir.Diagonal() && blocker.Is(piece.Bishop)) || (!dir.Diagonal() && blocker.Is(piece.Rook)) {
		return dir
	}
	return square.DirNone
}

// staysOnPin reports whether moving to `to` keeps a piece pinned along
// dir on the same infinite ray through the king.
func staysOnPin(kingSq, to square.Square, dir square.Direction) bool {
	return square.DirectionBetween(kingSq, to) == dir
}
