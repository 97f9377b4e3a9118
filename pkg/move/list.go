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

package move

// Column identifies which color's cell of a move-list row is meant.
type Column uint8

// the two columns of a move-list table.
const (
	White Column = iota
	Black
)

// List is the tabular, browsable history of a game: an ordered sequence
// of applied moves together with a cursor over them. The cursor ranges
// over [-1, Len()-1]; -1 means "before the first move", mirroring the
// starting position.
type List struct {
	moves        []Move
	cursor       int
	firstIsBlack bool // true if the game started with black to move
}

// NewList creates an empty Move List. firstIsBlack should be set if the
// starting position already had black to move, so that the first row's
// white cell renders empty.
func NewList(firstIsBlack bool) *List {
	return &List{cursor: -1, firstIsBlack: firstIsBlack}
}

// Append records a newly played move at the end of the list and moves
// the cursor onto it.
func (l *List) Append(m Move) {
	l.moves = l.moves[:l.cursor+1] // drop any redone tail
	l.moves = append(l.moves, m)
	l.cursor = len(l.moves) - 1
}

// Len returns the number of recorded moves.
func (l *List) Len() int {
	return len(l.moves)
}

// index converts a (row, column) table cell into an index into moves,
// returning ok=false for the row 0 White cell of a black-started game,
// which has no move.
func (l *List) index(row int, col Column) (int, bool) {
	idx := row*2 + int(col)
	if l.firstIsBlack {
		idx--
	}
	if idx < 0 || idx >= len(l.moves) {
		return 0, false
	}
	return idx, true
}

// Get returns the move at the given table cell, if any.
func (l *List) Get(row int, col Column) (Move, bool) {
	idx, ok := l.index(row, col)
	if !ok {
		return Null, false
	}
	return l.moves[idx], true
}

// Rows returns the number of full-move rows the table needs to render
// every recorded move.
func (l *List) Rows() int {
	if len(l.moves) == 0 {
		return 0
	}
	offset := 0
	if l.firstIsBlack {
		offset = 1
	}
	return (len(l.moves) + offset + 1) / 2
}

// RowForCurrent returns the table row containing the move the cursor is
// on, or -1 if the cursor is before the first move.
func (l *List) RowForCurrent() int {
	if l.cursor < 0 {
		return -1
	}
	idx := l.cursor
	if l.firstIsBlack {
		idx++
	}
	return idx / 2
}

// IsCellAtCurrentMove reports whether the given cell holds the move the
// cursor is currently on.
func (l *List) IsCellAtCurrentMove(row int, col Column) bool {
	if l.cursor < 0 {
		return false
	}
	idx, ok := l.index(row, col)
	return ok && idx == l.cursor
}

// IsCellAfterCurrentMove reports whether the given cell's move comes
// after the cursor, used by a renderer to grey out not-yet-reached
// moves while browsing history.
func (l *List) IsCellAfterCurrentMove(row int, col Column) bool {
	idx, ok := l.index(row, col)
	return ok && idx > l.cursor
}

// Cursor returns the current browsing position.
func (l *List) Cursor() int {
	return l.cursor
}

// Current returns the move the cursor is on, if any.
func (l *List) Current() (Move, bool) {
	if l.cursor < 0 || l.cursor >= len(l.moves) {
		return Null, false
	}
	return l.moves[l.cursor], true
}

// SetCursor repositions the cursor. It is used by the board engine's
// browse operation, which is the only code that knows how to replay the
// position at an arbitrary cursor value.
func (l *List) SetCursor(cursor int) {
	if cursor < -1 {
		cursor = -1
	}
	if cursor >= len(l.moves) {
		cursor = len(l.moves) - 1
	}
	l.cursor = cursor
}

// Pop removes the most recently played move, moving the cursor back
// onto the new last move. It only operates when the cursor is already
// at the end of the list (AtEnd); the board layer uses this to back
// undo out of being mixed up with browsing to an earlier point in a
// history that is still being extended.
func (l *List) Pop() (Move, bool) {
	if len(l.moves) == 0 || l.cursor != len(l.moves)-1 {
		return Null, false
	}
	m := l.moves[len(l.moves)-1]
	l.moves = l.moves[:len(l.moves)-1]
	l.cursor = len(l.moves) - 1
	return m, true
}

// AtStart reports whether the cursor is before the first move.
func (l *List) AtStart() bool {
	return l.cursor < 0
}

// AtEnd reports whether the cursor is on the last recorded move.
func (l *List) AtEnd() bool {
	return l.cursor == len(l.moves)-1
}

// Moves returns the recorded moves in order. The returned slice must
// not be mutated by the caller.
func (l *List) Moves() []Move {
	return l.moves
}
