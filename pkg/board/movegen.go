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
	"laptudirm.com/x/messfront/pkg/castling"
	"laptudirm.com/x/messfront/pkg/move"
	"laptudirm.com/x/messfront/pkg/piece"
	"laptudirm.com/x/messfront/pkg/square"
)

// AllLegalMoves generates every legal move for side in the current
// position. While the board is in setup mode no side has legal moves.
func (b *Board) AllLegalMoves(side piece.Color) []move.Move {
	if b.setup {
		return nil
	}

	kingSq := b.index.KingSquare(side)
	if kingSq == square.None {
		return nil
	}

	enemy := side.Other()
	checkers := b.index.allAttackers(kingSq, enemy, square.None)

	var moves []move.Move

	for _, to := range b.knightOrKingTargets(kingSq, piece.King.Directions(), side) {
		if !b.index.isAttacked(to, enemy, kingSq) {
			moves = append(moves, move.Move{Piece: piece.New(piece.King, side), From: kingSq, To: to, Captured: b.index.Get(to)})
		}
	}

	if len(checkers) == 0 {
		moves = append(moves, b.generateCastling(side)...)
	}

	if len(checkers) < 2 {
		var blockMask map[square.Square]bool
		if len(checkers) == 1 {
			checker := checkers[0]
			blockMask = map[square.Square]bool{checker: true}
			if b.index.Get(checker).Type().Sliding() {
				for _, sq := range square.OpenPath(kingSq, checker) {
					blockMask[sq] = true
				}
			}
		}

		for _, from := range b.friendlySquares(side) {
			p := b.index.Get(from)
			if p.Is(piece.King) {
				continue
			}

			pinDir := b.pinDirection(from)

			var targets []square.Square
			switch {
			case p.Is(piece.Pawn):
				targets = b.pawnTargets(from, side)
			case p.Type().Sliding():
				targets = b.slidingTargets(from, p.Type().Directions())
			default:
				targets = b.knightOrKingTargets(from, piece.Knight.Directions(), side)
			}

			for _, to := range targets {
				if pinDir != square.DirNone && square.DirectionBetween(kingSq, to) != pinDir {
					continue
				}
				if blockMask != nil && !blockMask[to] {
					continue
				}
				moves = append(moves, b.buildPawnOrPieceMoves(p, from, to, side)...)
			}
		}

		moves = append(moves, b.generateEnPassant(side, len(checkers))...)
	}

	return moves
}

// LegalMovesFrom returns the legal moves of side starting from a
// specific square, a subset of AllLegalMoves.
func (b *Board) LegalMovesFrom(side piece.Color, from square.Square) []move.Move {
	var out []move.Move
	for _, m := range b.AllLegalMoves(side) {
		if m.From == from {
			out = append(out, m)
		}
	}
	return out
}

// IsLegal reports whether m, identified by its From/To/Promotion, is a
// legal move in the current position for the side to move.
func (b *Board) IsLegal(m move.Move) bool {
	for _, candidate := range b.LegalMovesFrom(b.sideToMove, m.From) {
		if candidate.Equal(m) {
			return true
		}
	}
	return false
}

// friendlySquares returns every square occupied by one of side's
// pieces.
func (b *Board) friendlySquares(side piece.Color) []square.Square {
	var out []square.Square
	for t := piece.Pawn; t <= piece.King; t++ {
		out = append(out, b.index.Group(piece.New(t, side))...)
	}
	return out
}

// buildPawnOrPieceMoves finishes a pseudo-legal (from, to) candidate
// into one or more concrete moves, expanding a pawn reaching the back
// rank into its four promotion choices.
func (b *Board) buildPawnOrPieceMoves(p piece.Piece, from, to square.Square, side piece.Color) []move.Move {
	captured := b.index.Get(to)

	if p.Is(piece.Pawn) && to.Rank() == side.PawnPromotionRank() {
		return []move.Move{
			{Piece: p, From: from, To: to, Captured: captured, Promotion: piece.Queen},
			{Piece: p, From: from, To: to, Captured: captured, Promotion: piece.Rook},
			{Piece: p, From: from, To: to, Captured: captured, Promotion: piece.Bishop},
			{Piece: p, From: from, To: to, Captured: captured, Promotion: piece.Knight},
		}
	}

	return []move.Move{{Piece: p, From: from, To: to, Captured: captured}}
}

// slidingTargets returns the pseudo-legal destinations of a slider on
// from, walking each direction until the edge of the board, a friendly
// piece (excluded), or an enemy piece (included, as a capture).
func (b *Board) slidingTargets(from square.Square, dirs []square.Direction) []square.Square {
	mover := b.index.Get(from).Color()

	var out []square.Square
	for _, dir := range dirs {
		ray := square.RayFrom(from, dir)
		for to := ray.Next(); to != square.None; to = ray.Next() {
			p := b.index.Get(to)
			if p == piece.NoPiece {
				out = append(out, to)
				continue
			}
			if p.Color() != mover {
				out = append(out, to)
			}
			break
		}
	}
	return out
}

// knightOrKingTargets returns the pseudo-legal destinations of a
// single-step piece (knight or king) on from.
func (b *Board) knightOrKingTargets(from square.Square, dirs []square.Direction, mover piece.Color) []square.Square {
	var out []square.Square
	for _, dir := range dirs {
		to := square.Step(from, dir)
		if to == square.None {
			continue
		}
		if p := b.index.Get(to); p == piece.NoPiece || p.Color() != mover {
			out = append(out, to)
		}
	}
	return out
}

// pawnTargets returns a pawn's pseudo-legal push and capture
// destinations, excluding en passant, which is generated separately
// since its legality can depend on a discovered check along the
// capturing pawns' shared rank.
func (b *Board) pawnTargets(from square.Square, side piece.Color) []square.Square {
	var out []square.Square

	pushDir := side.PawnPushDirection()
	if one := square.Step(from, pushDir); one != square.None && b.index.Get(one) == piece.NoPiece {
		out = append(out, one)
		if from.Rank() == side.PawnHomeRank() {
			if two := square.Step(one, pushDir); two != square.None && b.index.Get(two) == piece.NoPiece {
				out = append(out, two)
			}
		}
	}

	for _, dir := range side.PawnForwardDirections() {
		to := square.Step(from, dir)
		if to == square.None {
			continue
		}
		if p := b.index.Get(to); p != piece.NoPiece && p.Color() != side {
			out = append(out, to)
		}
	}

	return out
}

// generateCastling returns the castling moves currently available to
// side. It is only called when side's king is not in check.
func (b *Board) generateCastling(side piece.Color) []move.Move {
	enemy := side.Other()

	var moves []move.Move
	for _, info := range castling.All {
		if info.RookPiece.Color() != side {
			continue
		}
		if !b.castlingRights.Has(info.Right) {
			continue
		}
		if b.index.Get(info.KingFrom) != piece.New(piece.King, side) {
			continue
		}
		if b.index.Get(info.RookFrom) != info.RookPiece {
			continue
		}

		emptyBetween := true
		for _, sq := range square.OpenPath(info.KingFrom, info.RookFrom) {
			if b.index.Get(sq) != piece.NoPiece {
				emptyBetween = false
				break
			}
		}
		if !emptyBetween {
			continue
		}

		safe := true
		for _, sq := range square.ClosedPath(info.KingFrom, info.KingTo) {
			if b.index.isAttacked(sq, enemy, square.None) {
				safe = false
				break
			}
		}
		if !safe {
			continue
		}

		moves = append(moves, move.Move{
			Piece:  piece.New(piece.King, side),
			From:   info.KingFrom,
			To:     info.KingTo,
			Castle: true,
		})
	}
	return moves
}

// generateEnPassant returns the (zero, one or two) en-passant captures
// available to side, verifying each by simulation rather than pin math
// so that a discovered check along the capturing pawns' shared rank is
// always caught correctly. checkCount is the number of pieces currently
// checking side's king; en passant cannot resolve a double check.
func (b *Board) generateEnPassant(side piece.Color, checkCount int) []move.Move {
	target := b.enPassantTarget
	if target == square.None || checkCount >= 2 {
		return nil
	}

	enemy := side.Other()
	capturedSq := square.Step(target, enemy.PawnPushDirection())
	if capturedSq == square.None {
		return nil
	}

	pawn := piece.New(piece.Pawn, side)
	capturedPawn := b.index.Get(capturedSq)

	var moves []move.Move
	for _, dir := range side.PawnForwardDirections() {
		from := square.Step(target, dir.Opposite())
		if from == square.None {
			continue
		}
		if b.index.Get(from) != pawn {
			continue
		}

		safe := b.simulateLeavesKingSafe(side, func(idx *PieceIndex) {
			idx.Remove(from)
			idx.Remove(capturedSq)
			idx.Set(pawn, target)
		})
		if !safe {
			continue
		}

		moves = append(moves, move.Move{
			Piece:     pawn,
			From:      from,
			To:        target,
			Captured:  capturedPawn,
			EnPassant: true,
		})
	}
	return moves
}

// simulateLeavesKingSafe clones the position, applies mutate to the
// clone, and reports whether color's king is safe afterwards. It is
// used only for en passant's rare discovered-check edge case, where
// precomputed pin directions do not capture the fact that both the
// capturing and captured pawn leave the same rank at once.
func (b *Board) simulateLeavesKingSafe(color piece.Color, mutate func(*PieceIndex)) bool {
	clone := b.index.Clone()
	mutate(clone)

	kingSq := clone.KingSquare(color)
	if kingSq == square.None {
		return true
	}
	return !clone.isAttacked(kingSq, color.Other(), square.None)
}
