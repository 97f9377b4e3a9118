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
)

// the standard perft suite used to validate a move generator's
// handling of checks, pins, castling, promotion and en passant.
// https://www.chessprogramming.org/Perft_Results
func TestPerft(t *testing.T) {
	tests := []struct {
		fen   string
		depth int
		nodes uint64
	}{
		{board.StartFEN, 1, 20},
		{board.StartFEN, 2, 400},
		{board.StartFEN, 3, 8902},
		{board.StartFEN, 4, 197281},
		{board.StartFEN, 5, 4865609},

		// "kiwipete": stresses castling, promotion and pinned pieces.
		{"r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1", 1, 48},
		{"r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1", 2, 2039},
		{"r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1", 3, 97862},
		{"r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1", 4, 4085603},

		// "position 3": heavy on discovered and en-passant checks.
		{"8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1", 1, 14},
		{"8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1", 2, 191},
		{"8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1", 3, 2812},
		{"8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1", 4, 43238},

		// "position 4": exercises every promotion piece and castling
		// rights loss by rook capture.
		{"r3k2r/Pppp1ppp/1b3nbN/nP6/BBP1P3/q4N2/Pp1P2PP/R2Q1RK1 w kq - 0 1", 1, 6},
		{"r3k2r/Pppp1ppp/1b3nbN/nP6/BBP1P3/q4N2/Pp1P2PP/R2Q1RK1 w kq - 0 1", 2, 264},
		{"r3k2r/Pppp1ppp/1b3nbN/nP6/BBP1P3/q4N2/Pp1P2PP/R2Q1RK1 w kq - 0 1", 3, 9467},
		{"r3k2r/Pppp1ppp/1b3nbN/nP6/BBP1P3/q4N2/Pp1P2PP/R2Q1RK1 w kq - 0 1", 4, 422333},
	}

	for _, test := range tests {
		if test.depth > 3 && testing.Short() {
			continue
		}

		b, err := board.New(test.fen)
		if err != nil {
			t.Fatalf("fen %q: unexpected error: %v", test.fen, err)
		}

		if got := b.Perft(test.depth); got != test.nodes {
			t.Errorf("fen %q depth %d: got %d nodes, want %d", test.fen, test.depth, got, test.nodes)
		}
	}
}

func TestCheckmateHasNoMoves(t *testing.T) {
	// fool's mate.
	b := board.NewGame()
	for _, m := range []string{"f2f3", "e7e5", "g2g4", "d8h4"} {
		applyLongAlgebraic(t, b, m)
	}

	if state := b.TerminalState(); state != board.Checkmate {
		t.Fatalf("want checkmate, got %s", state)
	}
}

func TestStalemate(t *testing.T) {
	b, err := board.New("7k/8/6QK/8/8/8/8/8 b - - 0 1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if state := b.TerminalState(); state != board.Stalemate {
		t.Fatalf("want stalemate, got %s", state)
	}
}

// applyLongAlgebraic is a small test helper that resolves a long
// algebraic move string against the board's currently legal moves and
// applies it, failing the test if no legal move matches.
func applyLongAlgebraic(t *testing.T, b *board.Board, s string) {
	t.Helper()

	for _, m := range b.AllLegalMoves(b.SideToMove()) {
		if m.String() == s {
			if err := b.MakeMove(m); err != nil {
				t.Fatalf("make move %s: %v", s, err)
			}
			return
		}
	}
	t.Fatalf("move %s not found among legal moves", s)
}
