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

package board_test

import (
	"testing"

	"laptudirm.com/x/messfront/pkg/board"
	"laptudirm.com/x/messfront/pkg/castling"
	"laptudirm.com/x/messfront/pkg/move"
)

// TestUndoRestoresFEN plays every legal move from a handful of
// positions one ply deep and checks that undoing it reproduces the
// exact starting FEN, the cheapest whole-state correctness check for
// a snapshot-based undo implementation.
func TestUndoRestoresFEN(t *testing.T) {
	fens := []string{
		board.StartFEN,
		"r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1",
		"rnbqkbnr/ppp2ppp/8/2Ppp3/8/8/PP1PPPPP/RNBQKBNR w KQkq d6 0 3",
		"8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1",
	}

	for _, fen := range fens {
		b, err := board.New(fen)
		if err != nil {
			t.Fatalf("fen %q: unexpected error: %v", fen, err)
		}

		for _, m := range b.AllLegalMoves(b.SideToMove()) {
			if err := b.MakeMove(m); err != nil {
				t.Fatalf("fen %q: make move %s: %v", fen, m, err)
			}
			if !b.UndoMove() {
				t.Fatalf("fen %q: move %s: undo reported nothing to undo", fen, m)
			}
			if got := b.FEN(); got != fen {
				t.Errorf("fen %q: move %s: undo produced %q", fen, m, got)
			}
		}
	}
}

// TestEnPassantCaptureAndUndo exercises the capture itself (the
// victim pawn disappears) and confirms undo brings it back.
func TestEnPassantCaptureAndUndo(t *testing.T) {
	fen := "rnbqkbnr/ppp1p1pp/8/3pPp2/8/8/PPPP1PPP/RNBQKBNR w KQkq f6 0 3"
	b, err := board.New(fen)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var ep move.Move
	found := false
	for _, m := range b.AllLegalMoves(b.SideToMove()) {
		if m.EnPassant {
			ep = m
			found = true
			break
		}
	}
	if !found {
		t.Fatalf("no en-passant move generated for %q", fen)
	}

	if err := b.MakeMove(ep); err != nil {
		t.Fatalf("make move %s: %v", ep, err)
	}
	if p := b.PieceAt(ep.To); p.String() != "P" {
		t.Fatalf("expected white pawn on %s after en passant, got %q", ep.To, p)
	}

	if !b.UndoMove() {
		t.Fatal("undo reported nothing to undo")
	}
	if got := b.FEN(); got != fen {
		t.Errorf("undo produced %q, want %q", got, fen)
	}
}

// TestCastlingClearsRights confirms a king move clears both of its
// color's castling rights, the mechanical rule the castling package's
// RightUpdates table encodes.
func TestCastlingClearsRights(t *testing.T) {
	fen := "r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1"
	b, err := board.New(fen)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var castle move.Move
	found := false
	for _, m := range b.AllLegalMoves(b.SideToMove()) {
		if m.Castle {
			castle = m
			found = true
			break
		}
	}
	if !found {
		t.Fatal("no castling move generated")
	}

	if err := b.MakeMove(castle); err != nil {
		t.Fatalf("make move %s: %v", castle, err)
	}

	rights := b.CastlingRights()
	if rights.Has(castling.WhiteKingSide) || rights.Has(castling.WhiteQueenSide) {
		t.Errorf("white castling rights not cleared after %s, got %s", castle, rights)
	}
}
