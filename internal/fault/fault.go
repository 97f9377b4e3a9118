// Copyright © 2023 Rak Laptudirm <rak@laptudirm.com>
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

// Package fault collects the sentinel error kinds shared across
// messfront's packages, so that callers anywhere in the module can tell
// what went wrong with errors.Is instead of string-matching messages.
package fault

import "errors"

// the five error kinds a messfront component reports, matching the ways
// a game of chess being played through this front end can go wrong.
var (
	// ErrIllegalMove is returned when a move is rejected by the move
	// generator: it is not in the set of currently legal moves.
	ErrIllegalMove = errors.New("illegal move")

	// ErrParse is returned by a codec that could not make sense of its
	// input, be it a FEN string or a long algebraic move. UCI lines are
	// never rejected: an unrecognised line parses to an Unknown message.
	ErrParse = errors.New("parse error")

	// ErrIO is reported to a session's listener when reading from or
	// writing to its connection fails.
	ErrIO = errors.New("i/o error")

	// ErrProtocolState is returned when an operation is not valid in the
	// current state, e.g. starting a session twice, playing a move while
	// browsing history, editing the board outside setup mode, or a human
	// move out of turn.
	ErrProtocolState = errors.New("protocol state error")

	// ErrSetupInvariant is returned when setup mode is asked to exit
	// with a position that violates a structural invariant, such as
	// having zero or more than one king of a color.
	ErrSetupInvariant = errors.New("setup invariant violated")
)
