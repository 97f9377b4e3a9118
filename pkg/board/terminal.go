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

// TerminalState classifies the game status of the side to move's
// current position.
type TerminalState uint8

// the six states a position may be in.
const (
	Ongoing TerminalState = iota
	Check
	Checkmate
	Stalemate
	DrawThreefold
	DrawFiftyMove
)

// String names a TerminalState for logging and display.
func (s TerminalState) String() string {
	switch s {
	case Ongoing:
		return "ongoing"
	case Check:
		return "check"
	case Checkmate:
		return "checkmate"
	case Stalemate:
		return "stalemate"
	case DrawThreefold:
		return "draw by threefold repetition"
	case DrawFiftyMove:
		return "draw by fifty-move rule"
	default:
		return "unknown"
	}
}

// fiftyMoveLimit is the number of half-moves (plies) without a pawn
// move or capture after which the game is drawn.
const fiftyMoveLimit = 100

// TerminalState classifies the current position for the side to move:
// ongoing play, check, checkmate, stalemate, or one of the two
// automatic draw conditions this front end tracks. Checkmate and
// stalemate take priority over the clock-based draws, matching how a
// mating move ends the game before a draw claim would even apply.
func (b *Board) TerminalState() TerminalState {
	state := b.KingState(b.sideToMove)

	switch {
	case state.InCheck && state.HasNoMoves:
		return Checkmate
	case !state.InCheck && state.HasNoMoves:
		return Stalemate
	case b.repetition[b.hash] >= 3:
		return DrawThreefold
	case b.halfMoveClock >= fiftyMoveLimit:
		return DrawFiftyMove
	case state.InCheck:
		return Check
	default:
		return Ongoing
	}
}
