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
	"strconv"
	"strings"

	"laptudirm.com/x/messfront/internal/fault"
	"laptudirm.com/x/messfront/pkg/castling"
	"laptudirm.com/x/messfront/pkg/piece"
	"laptudirm.com/x/messfront/pkg/square"
)

// startingPlacement is the piece-placement field of StartFEN, used to
// pick the default castling rights for a FEN that omits the field
// entirely.
var startingPlacement = strings.Fields(StartFEN)[0]

// loadFEN parses fen into b's position fields. b.index must already be
// a freshly constructed, empty PieceIndex.
//
// A caller may omit any of the trailing fields (castling rights,
// en-passant target, half-move clock, full-move number): only the
// piece placement and side to move are mandatory. Omitted fields are
// filled with the value a GUI leaving them out would mean: no
// en-passant target, zero clocks, and castling rights of "-" unless
// the placement is the standard starting position, in which case it
// defaults to the full starting rights.
func (b *Board) loadFEN(fen string) error {
	fields := strings.Fields(fen)
	if len(fields) < 2 || len(fields) > 6 {
		return fmt.Errorf("board: fen %q: want 2 to 6 fields, got %d: %w", fen, len(fields), fault.ErrParse)
	}

	placement, sideToMove := fields[0], fields[1]

	rights := "-"
	if placement == startingPlacement {
		rights = castling.StartingRights.String()
	}
	if len(fields) > 2 {
		rights = fields[2]
	}

	ep := "-"
	if len(fields) > 3 {
		ep = fields[3]
	}

	halfMove := "0"
	if len(fields) > 4 {
		halfMove = fields[4]
	}

	fullMove := "1"
	if len(fields) > 5 {
		fullMove = fields[5]
	}

	ranks := strings.Split(placement, "/")
	if len(ranks) != square.RankN {
		return fmt.Errorf("board: fen %q: want 8 ranks, got %d: %w", fen, len(ranks), fault.ErrParse)
	}

	for r, rankData := range ranks {
		f := square.FileA
		for _, id := range rankData {
			if id >= '1' && id <= '8' {
				f += square.File(id - '0')
				continue
			}

			if f >= square.FileN {
				return fmt.Errorf("board: fen %q: rank %d overflows the board: %w", fen, r, fault.ErrParse)
			}

			if !strings.ContainsRune("KQRBNPkqrbnp", id) {
				return fmt.Errorf("board: fen %q: invalid piece %q: %w", fen, id, fault.ErrParse)
			}

			p := piece.NewFromString(string(id))
			b.index.Set(p, square.New(f, square.Rank(r)))
			f++
		}

		if f != square.FileN {
			return fmt.Errorf("board: fen %q: rank %d does not fill the board: %w", fen, r, fault.ErrParse)
		}
	}

	switch sideToMove {
	case "w":
		b.sideToMove = piece.White
	case "b":
		b.sideToMove = piece.Black
	default:
		return fmt.Errorf("board: fen %q: invalid side to move %q: %w", fen, sideToMove, fault.ErrParse)
	}

	b.castlingRights = castling.NewRights(rights)

	if ep == "-" {
		b.enPassantTarget = square.None
	} else {
		if len(ep) != 2 || ep[0] < 'a' || ep[0] > 'h' || ep[1] < '1' || ep[1] > '8' {
			return fmt.Errorf("board: fen %q: invalid en-passant target %q: %w", fen, ep, fault.ErrParse)
		}
		b.enPassantTarget = square.NewFromString(ep)
	}

	clock, err := strconv.Atoi(halfMove)
	if err != nil {
		return fmt.Errorf("board: fen %q: invalid half-move clock %q: %w", fen, halfMove, fault.ErrParse)
	}
	b.halfMoveClock = clock

	move, err := strconv.Atoi(fullMove)
	if err != nil {
		return fmt.Errorf("board: fen %q: invalid full-move number %q: %w", fen, fullMove, fault.ErrParse)
	}
	b.fullMoveNumber = move

	return nil
}

// FEN renders the current position as a FEN string.
func (b *Board) FEN() string {
	var placement strings.Builder
	for r := square.Rank8; r < square.RankN; r++ {
		empty := 0
		for f := square.FileA; f < square.FileN; f++ {
			p := b.index.Get(square.New(f, r))
			if p == piece.NoPiece {
				empty++
				continue
			}
			if empty > 0 {
				placement.WriteString(strconv.Itoa(empty))
				empty = 0
			}
			placement.WriteString(p.String())
		}
		if empty > 0 {
			placement.WriteString(strconv.Itoa(empty))
		}
		if r != square.RankN-1 {
			placement.WriteByte('/')
		}
	}

	return fmt.Sprintf("%s %s %s %s %d %d",
		placement.String(),
		b.sideToMove.String(),
		b.castlingRights.String(),
		b.enPassantTarget.String(),
		b.halfMoveClock,
		b.fullMoveNumber,
	)
}
