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

package game

import (
	"sync"

	"laptudirm.com/x/messfront/internal/server"
	"laptudirm.com/x/messfront/pkg/board"
	"laptudirm.com/x/messfront/pkg/move"
	"laptudirm.com/x/messfront/pkg/uci/message"
)

// SpectatedGame does not play a role in the relayed conversation at
// all: it watches the lines a Server Session passes between an
// external client and a local engine, applies every position/bestmove
// it can make sense of to its own board, and reports them to an
// Observer, so that a local view can show a game it has no say in.
type SpectatedGame struct {
	mu    sync.Mutex
	board *board.Board
}

// NewSpectatedGame creates a SpectatedGame starting from b's current
// position; it is typically board.NewGame().
func NewSpectatedGame(b *board.Board) *SpectatedGame {
	return &SpectatedGame{board: b}
}

// Board returns the game's board.
func (g *SpectatedGame) Board() *board.Board {
	return g.board
}

// Listener returns a server.Listener that feeds this game's board from
// a Server's relayed conversation, also forwarding every callback on
// to observer.
func (g *SpectatedGame) Listener(observer Observer) server.Listener {
	return &spectatedListener{game: g, observer: observer}
}

type spectatedListener struct {
	game     *SpectatedGame
	observer Observer
}

func (l *spectatedListener) OnClientMessage(line string) {
	msg := message.ParseClientMessage(line)

	pos, ok := msg.(message.Position)
	if !ok {
		return
	}

	l.game.mu.Lock()
	defer l.game.mu.Unlock()

	fresh, err := freshBoard(pos)
	if err != nil {
		l.observer.OnError(err)
		return
	}
	l.game.board = fresh

	for _, uciMove := range pos.Moves {
		from, to, promotion, err := move.ParseLongAlgebraic(uciMove)
		if err != nil {
			l.observer.OnError(err)
			return
		}
		mover := l.game.board.PieceAt(from)
		if err := l.game.board.MakeMove(move.Move{Piece: mover, From: from, To: to, Promotion: promotion}); err != nil {
			l.observer.OnError(err)
			return
		}
	}

	if played, ok := l.game.board.Moves().Current(); ok {
		l.observer.OnMove(l.game.board, played)
	}
}

func (l *spectatedListener) OnEngineMessage(line string) {
	msg := message.ParseEngineMessage(line)

	best, ok := msg.(message.BestMove)
	if !ok || best.Move == "0000" {
		return
	}

	l.game.mu.Lock()
	defer l.game.mu.Unlock()

	from, to, promotion, err := move.ParseLongAlgebraic(best.Move)
	if err != nil {
		l.observer.OnError(err)
		return
	}
	mover := l.game.board.PieceAt(from)
	if err := l.game.board.MakeMove(move.Move{Piece: mover, From: from, To: to, Promotion: promotion}); err != nil {
		l.observer.OnError(err)
		return
	}

	played, _ := l.game.board.Moves().Current()
	l.observer.OnMove(l.game.board, played)

	if state := l.game.board.TerminalState(); state != board.Ongoing && state != board.Check {
		l.observer.OnTerminal(l.game.board, state)
	}
}

func (l *spectatedListener) OnError(err error) {
	l.observer.OnError(err)
}

func (l *spectatedListener) OnClosed() {}

// freshBoard rebuilds a board from a position message's base (startpos
// or FEN), discarding whatever game was being watched before: a new
// "position" line from the client always restarts the spectated game
// from that base, same as it would for the engine itself.
func freshBoard(pos message.Position) (*board.Board, error) {
	if pos.StartPos {
		return board.NewGame(), nil
	}
	return board.New(pos.FEN)
}
