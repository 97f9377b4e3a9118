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
	"fmt"

	"laptudirm.com/x/messfront/internal/fault"
	"laptudirm.com/x/messfront/pkg/castling"
	"laptudirm.com/x/messfront/pkg/move"
	"laptudirm.com/x/messfront/pkg/piece"
	"laptudirm.com/x/messfront/pkg/square"
)

// EnterSetup puts the board into setup mode, in which Place and
// MoveInSetup may freely rearrange pieces without regard for legality.
// Move generation is unavailable until ExitSetup commits a valid
// position, which also resets the game history.
func (b *Board) EnterSetup() {
	b.setup = true
}

// InSetup reports whether the board is currently in setup mode.
func (b *Board) InSetup() bool {
	return b.setup
}

// Place puts p on sq, replacing whatever was there, or clears sq if p
// is piece.NoPiece. It is only valid in setup mode.
func (b *Board) Place(p piece.Piece, sq square.Square) error {
	if !b.setup {
		return fmt.Errorf("board: place: not in setup mode: %w", fault.ErrProtocolState)
	}
	b.index.Remove(sq)
	if p != piece.NoPiece {
		b.index.Set(p, sq)
	}
	return nil
}

// MoveInSetup relocates whatever piece occupies from to to, discarding
// any piece already on to, without any move legality checks. It is
// only valid in setup mode.
func (b *Board) MoveInSetup(from, to square.Square) error {
	if !b.setup {
		return fmt.Errorf("board: move in setup: not in setup mode: %w", fault.ErrProtocolState)
	}
	p := b.index.Remove(from)
	if p == piece.NoPiece {
		return nil
	}
	b.index.Remove(to)
	b.index.Set(p, to)
	return nil
}

// ExitSetup validates the arranged position and, if it satisfies the
// structural invariants every position must hold, commits it as a
// fresh game: side to move, castling rights, en-passant target and
// move counters are taken from the arguments, and history is reset.
// It returns an error wrapping fault.ErrSetupInvariant, leaving setup
// mode active, if the position is structurally invalid.
func (b *Board) ExitSetup(sideToMove piece.Color, rights castling.Rights, ep square.Square, halfMoveClock, fullMoveNumber int) error {
	if !b.setup {
		return fmt.Errorf("board: exit setup: not in setup mode: %w", fault.ErrProtocolState)
	}

	if b.index.GroupSize(piece.WhiteKing) != 1 || b.index.GroupSize(piece.BlackKing) != 1 {
		return fmt.Errorf("board: exit setup: each side must have exactly one king: %w", fault.ErrSetupInvariant)
	}

	for _, sq := range b.index.Group(piece.WhitePawn) {
		if sq.Rank() == square.Rank8 || sq.Rank() == square.Rank1 {
			return fmt.Errorf("board: exit setup: pawns cannot stand on the back ranks: %w", fault.ErrSetupInvariant)
		}
	}
	for _, sq := range b.index.Group(piece.BlackPawn) {
		if sq.Rank() == square.Rank8 || sq.Rank() == square.Rank1 {
			return fmt.Errorf("board: exit setup: pawns cannot stand on the back ranks: %w", fault.ErrSetupInvariant)
		}
	}

	waiting := sideToMove.Other()
	if b.index.isAttacked(b.index.KingSquare(waiting), sideToMove, square.None) {
		return fmt.Errorf("board: exit setup: the side not to move cannot be left in check: %w", fault.ErrSetupInvariant)
	}

	b.sideToMove = sideToMove
	b.castlingRights = rights
	b.enPassantTarget = ep
	b.halfMoveClock = halfMoveClock
	b.fullMoveNumber = fullMoveNumber
	b.hash = fingerprintOf(b.index, b.sideToMove, b.castlingRights, b.enPassantTarget)

	b.repetition = map[fingerprint]int{b.hash: 1}
	b.snapshots = nil
	b.moves = move.NewList(b.sideToMove == piece.Black)
	b.original = b.snapshot(move.Null)

	b.setup = false
	return nil
}
