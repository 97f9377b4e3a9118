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
	"laptudirm.com/x/messfront/pkg/piece"
	"laptudirm.com/x/messfront/pkg/square"
)

// fingerprint is an opaque repetition key: a Zobrist-style hash over
// piece placement, side to move, castling rights and the en-passant
// file. It deliberately excludes the half-move clock and full-move
// number, since threefold repetition is defined on the other fields alone;
// it is a hash of the position, not a representation of it, so using
// one here does not reintroduce a bitboard into the Piece Index.
type fingerprint uint64

var (
	pieceSquareKeys [piece.BlackKing + 1][square.N]fingerprint
	enPassantKeys   [square.FileN]fingerprint
	castlingKeys    [castling.StartingRights + 1]fingerprint
	sideToMoveKey   fingerprint
)

func init() {
	var rng prng
	rng.seed = 1070372 // seed used by Stockfish's Zobrist tables

	for p := piece.Piece(0); p <= piece.BlackKing; p++ {
		for s := square.Square(0); s < square.N; s++ {
			pieceSquareKeys[p][s] = fingerprint(rng.next())
		}
	}

	for f := square.FileA; f < square.FileN; f++ {
		enPassantKeys[f] = fingerprint(rng.next())
	}

	for r := castling.NoRights; r <= castling.StartingRights; r++ {
		castlingKeys[r] = fingerprint(rng.next())
	}

	sideToMoveKey = fingerprint(rng.next())
}

// prng is the xorshift64star generator, dedicated to the public domain
// by Sebastiano Vigna (2014): 64-bit output, single 64-bit state word,
// period 2^64-1, no warm-up required.
type prng struct {
	seed uint64
}

func (p *prng) next() uint64 {
	p.seed ^= p.seed >> 12
	p.seed ^= p.seed << 25
	p.seed ^= p.seed >> 27
	return p.seed * 2685821657736338717
}

// fingerprintOf computes the fingerprint of a position from scratch. It
// is only used to seed a freshly constructed board; make/undo maintain
// the running value incrementally from there.
func fingerprintOf(idx *PieceIndex, side piece.Color, rights castling.Rights, ep square.Square) fingerprint {
	var h fingerprint

	for s := square.Square(0); s < square.N; s++ {
		if p := idx.Get(s); p != piece.NoPiece {
			h ^= pieceSquareKeys[p][s]
		}
	}

	h ^= castlingKeys[rights]

	if ep != square.None {
		h ^= enPassantKeys[ep.File()]
	}

	if side == piece.Black {
		h ^= sideToMoveKey
	}

	return h
}
