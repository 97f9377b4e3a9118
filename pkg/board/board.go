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

// Package board implements the bitboard-free Board & Move Engine: a
// chessboard position, its legal move generator, and the browsable
// history of a game played on it.
package board

import (
	"fmt"

	"laptudirm.com/x/messfront/internal/fault"
	"laptudirm.com/x/messfront/pkg/castling"
	"laptudirm.com/x/messfront/pkg/move"
	"laptudirm.com/x/messfront/pkg/piece"
	"laptudirm.com/x/messfront/pkg/square"
)

// Board is the state of a chessboard at a point in a game: the current
// position, whose move it is, and the browsable history of snapshots
// that got it there.
type Board struct {
	index *PieceIndex

	sideToMove      piece.Color
	castlingRights  castling.Rights
	enPassantTarget square.Square
	halfMoveClock   int
	fullMoveNumber  int
	hash            fingerprint

	original   snapshot // state before any move was played
	snapshots  []snapshot
	moves      *move.List
	repetition map[fingerprint]int

	setup bool // true while in setup mode
}

// snapshot is a full copy of the position state taken after a move is
// played. Undo restores the previous snapshot wholesale rather than
// reversing the move's individual effects; browsing to an arbitrary
// point in the move list is likewise a copy rather than a replay, at
// the cost of O(pieces) work per played move instead of O(1)
// incremental unmake.
type snapshot struct {
	index           *PieceIndex
	sideToMove      piece.Color
	castlingRights  castling.Rights
	enPassantTarget square.Square
	halfMoveClock   int
	fullMoveNumber  int
	hash            fingerprint
	move            move.Move
}

// StartFEN is the FEN of the standard chess starting position.
const StartFEN = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

// New creates a Board from a FEN string. It returns an error wrapping
// fault.ErrParse if the FEN is malformed.
func New(fen string) (*Board, error) {
	b := &Board{
		index:      NewPieceIndex(),
		repetition: make(map[fingerprint]int),
	}

	if err := b.loadFEN(fen); err != nil {
		return nil, err
	}

	b.moves = move.NewList(b.sideToMove == piece.Black)
	b.hash = fingerprintOf(b.index, b.sideToMove, b.castlingRights, b.enPassantTarget)
	b.repetition[b.hash] = 1
	b.original = b.snapshot(move.Null)

	return b, nil
}

// NewGame creates a Board in the standard starting position.
func NewGame() *Board {
	b, err := New(StartFEN)
	if err != nil {
		panic("board: invalid start fen: " + err.Error())
	}
	return b
}

// String renders the board as an 8x8 grid followed by its FEN, mainly
// useful for debugging from a REPL or test failure message.
func (b *Board) String() string {
	s := ""
	for r := square.Rank8; r < square.RankN; r++ {
		for f := square.FileA; f < square.FileN; f++ {
			s += b.index.Get(square.New(f, r)).String()
		}
		s += "\n"
	}
	return fmt.Sprintf("%s\nfen: %s\n", s, b.FEN())
}

// SideToMove returns the color to move in the current position.
func (b *Board) SideToMove() piece.Color {
	return b.sideToMove
}

// CastlingRights returns the castling rights of the current position.
func (b *Board) CastlingRights() castling.Rights {
	return b.castlingRights
}

// EnPassantTarget returns the current en-passant target square, or
// square.None if the last move was not a double pawn push.
func (b *Board) EnPassantTarget() square.Square {
	return b.enPassantTarget
}

// HalfMoveClock returns the number of plies since the last pawn move
// or capture, used for the fifty-move rule.
func (b *Board) HalfMoveClock() int {
	return b.halfMoveClock
}

// PieceAt returns the piece occupying sq, or piece.NoPiece.
func (b *Board) PieceAt(sq square.Square) piece.Piece {
	return b.index.Get(sq)
}

// Moves returns the game's browsable move list.
func (b *Board) Moves() *move.List {
	return b.moves
}

// snapshot captures the current live state, tagging it with the move
// that produced it (move.Null for the original position).
func (b *Board) snapshot(m move.Move) snapshot {
	return snapshot{
		index:           b.index.Clone(),
		sideToMove:      b.sideToMove,
		castlingRights:  b.castlingRights,
		enPassantTarget: b.enPassantTarget,
		halfMoveClock:   b.halfMoveClock,
		fullMoveNumber:  b.fullMoveNumber,
		hash:            b.hash,
		move:            m,
	}
}

// MakeMove plays m, which must be a currently legal move (as produced
// by AllLegalMoves/LegalMovesFrom), updating the position, the repetition
// table and the move list. It returns an error wrapping
// fault.ErrIllegalMove if m is not legal in the current position.
func (b *Board) MakeMove(m move.Move) error {
	if !b.moves.AtEnd() {
		return fmt.Errorf("board: make move %s: cannot play a move while browsing history, call BrowseLast first: %w", m, fault.ErrProtocolState)
	}

	mover := b.sideToMove
	all := b.AllLegalMoves(mover)

	found := false
	for _, candidate := range all {
		if candidate.Equal(m) {
			m = candidate // pick up Captured/Castle/EnPassant annotations
			found = true
			break
		}
	}
	if !found {
		return fmt.Errorf("board: make move %s: %w", m, fault.ErrIllegalMove)
	}

	m.Disambiguation = disambiguate(all, m)

	b.applyMove(m)

	state := b.KingState(b.sideToMove) // the side about to move now, i.e. the one put in check
	m.Check = state.InCheck
	m.Checkmate = state.InCheck && state.HasNoMoves

	b.snapshots = append(b.snapshots, b.snapshot(m))
	b.moves.Append(m)
	b.repetition[b.hash]++

	return nil
}

// disambiguate computes the minimal algebraic disambiguation needed to
// tell m apart from the other legal moves of the same piece type
// landing on the same square, per the standard SAN rule: prefer file,
// fall back to rank, and only use both when neither alone is unique.
func disambiguate(all []move.Move, m move.Move) move.Disambiguation {
	uniqueFile, uniqueRank := true, true
	ambiguous := false

	for _, cand := range all {
		if cand.From == m.From || cand.Piece != m.Piece || cand.To != m.To {
			continue
		}
		ambiguous = true
		if cand.From.File() == m.From.File() {
			uniqueFile = false
		}
		if cand.From.Rank() == m.From.Rank() {
			uniqueRank = false
		}
	}

	switch {
	case !ambiguous:
		return move.DisambigNone
	case uniqueFile:
		return move.DisambigFile
	case uniqueRank:
		return move.DisambigRank
	default:
		return move.DisambigBoth
	}
}

// applyMove mutates the position to reflect m, without any legality
// checking; callers must have already validated m.
func (b *Board) applyMove(m move.Move) {
	us := b.sideToMove
	them := us.Other()

	if b.enPassantTarget != square.None {
		b.hash ^= enPassantKeys[b.enPassantTarget.File()]
	}
	b.enPassantTarget = square.None

	b.halfMoveClock++
	if m.Piece.Is(piece.Pawn) || m.IsCapture() {
		b.halfMoveClock = 0
	}

	switch {
	case m.Castle:
		info, ok := castling.ByKingDestination(m.To)
		if !ok {
			panic("board: castle move with no matching castling info")
		}
		b.movePiece(info.KingFrom, info.KingTo)
		b.movePiece(info.RookFrom, info.RookTo)

	case m.EnPassant:
		captureSq := square.New(m.To.File(), m.From.Rank())
		b.removePiece(captureSq)
		b.movePiece(m.From, m.To)

	case m.IsCapture():
		b.removePiece(m.To)
		b.movePiece(m.From, m.To)

	default:
		b.movePiece(m.From, m.To)
	}

	if m.IsPromotion() {
		b.removePiece(m.To)
		b.placePiece(piece.New(m.Promotion, us), m.To)
	}

	if m.Piece.Is(piece.Pawn) && abs(int(m.To)-int(m.From)) == 16 {
		target := square.New(m.From.File(), (m.From.Rank()+m.To.Rank())/2)
		if pawnAttacksTarget(b.index, target, them) {
			b.enPassantTarget = target
			b.hash ^= enPassantKeys[target.File()]
		}
	}

	b.hash ^= castlingKeys[b.castlingRights]
	b.castlingRights &^= castling.RightUpdates[m.From]
	b.castlingRights &^= castling.RightUpdates[m.To]
	b.hash ^= castlingKeys[b.castlingRights]

	b.hash ^= sideToMoveKey
	b.sideToMove = them
	if b.sideToMove == piece.White {
		b.fullMoveNumber++
	}
}

// pawnAttacksTarget reports whether one of the attackers of target is
// actually a them-colored pawn, as opposed to some other attacker type
// isAttacked also counts; only a pawn can capture en passant.
func pawnAttacksTarget(idx *PieceIndex, target square.Square, them piece.Color) bool {
	for _, dir := range them.PawnForwardDirections() {
		if from := square.Step(target, dir.Opposite()); from != square.None {
			if p := idx.Get(from); p.Color() == them && p.Is(piece.Pawn) {
				return true
			}
		}
	}
	return false
}

func (b *Board) movePiece(from, to square.Square) {
	p := b.index.Remove(from)
	b.hash ^= pieceSquareKeys[p][from]
	b.index.Set(p, to)
	b.hash ^= pieceSquareKeys[p][to]
}

func (b *Board) placePiece(p piece.Piece, sq square.Square) {
	b.index.Set(p, sq)
	b.hash ^= pieceSquareKeys[p][sq]
}

func (b *Board) removePiece(sq square.Square) piece.Piece {
	p := b.index.Remove(sq)
	if p != piece.NoPiece {
		b.hash ^= pieceSquareKeys[p][sq]
	}
	return p
}

// UndoMove reverts the last played move by restoring the preceding
// snapshot, permanently discarding it from the move list. It only
// operates at the end of the move list; callers mid-browse must
// BrowseLast first. It reports false if there is no move to undo.
func (b *Board) UndoMove() bool {
	if _, ok := b.moves.Pop(); !ok {
		return false
	}

	b.repetition[b.hash]--
	if b.repetition[b.hash] <= 0 {
		delete(b.repetition, b.hash)
	}

	last := len(b.snapshots) - 1
	b.snapshots = b.snapshots[:last]

	if last == 0 {
		b.restore(b.original)
	} else {
		b.restore(b.snapshots[last-1])
	}

	return true
}

// restore copies a snapshot's state into the live board fields.
func (b *Board) restore(snap snapshot) {
	b.index.CopyFrom(snap.index)
	b.sideToMove = snap.sideToMove
	b.castlingRights = snap.castlingRights
	b.enPassantTarget = snap.enPassantTarget
	b.halfMoveClock = snap.halfMoveClock
	b.fullMoveNumber = snap.fullMoveNumber
	b.hash = snap.hash
}

// Browse moves the move list's cursor to the given position (-1 for
// the starting position, up to Moves().Len()-1 for the latest move)
// and replays the position to match, without altering move history.
func (b *Board) Browse(cursor int) {
	b.moves.SetCursor(cursor)

	if c := b.moves.Cursor(); c < 0 {
		b.restore(b.original)
	} else {
		b.restore(b.snapshots[c])
	}
}

// BrowseFirst moves to the starting position.
func (b *Board) BrowseFirst() { b.Browse(-1) }

// BrowsePrevious moves one ply back, if possible.
func (b *Board) BrowsePrevious() { b.Browse(b.moves.Cursor() - 1) }

// BrowseNext moves one ply forward, if possible.
func (b *Board) BrowseNext() { b.Browse(b.moves.Cursor() + 1) }

// BrowseLast moves to the latest played move.
func (b *Board) BrowseLast() { b.Browse(b.moves.Len() - 1) }

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
