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
	"fmt"
	"sync"

	"laptudirm.com/x/messfront/internal/session"
	"laptudirm.com/x/messfront/pkg/board"
	"laptudirm.com/x/messfront/pkg/move"
	"laptudirm.com/x/messfront/pkg/piece"
	"laptudirm.com/x/messfront/pkg/uci/message"
)

// EngineVsEngineGame pits two engine connections against each other;
// neither side ever receives a human move, and the game runs to
// completion (or until Stop) purely on bestmove replies.
type EngineVsEngineGame struct {
	mu          sync.Mutex
	board       *board.Board
	sessions    [2]*session.Session // indexed by piece.White, piece.Black
	observer    Observer
	search      message.Go
	playedMoves []string
	stopped     bool
}

// engineVsEngineListener routes one side's inbound lines to its game,
// tagged with which color that side is playing.
type engineVsEngineListener struct {
	g     *EngineVsEngineGame
	color piece.Color
}

func (l engineVsEngineListener) OnMessage(line string) {
	l.g.handleLine(l.color, line)
}

func (l engineVsEngineListener) OnError(err error) {
	l.g.observer.OnError(fmt.Errorf("game: engine-vs-engine session (%s): %w", l.color, err))
}

func (l engineVsEngineListener) OnClosed() {}

// NewEngineVsEngineGame starts the UCI handshake on both connections,
// the engine of the position's side to move playing first, and returns
// the running game.
func NewEngineVsEngineGame(b *board.Board, white, black session.Connectable, observer Observer, search message.Go) (*EngineVsEngineGame, error) {
	g := &EngineVsEngineGame{board: b, observer: observer, search: search}

	whiteSess := session.New(white, engineVsEngineListener{g: g, color: piece.White})
	blackSess := session.New(black, engineVsEngineListener{g: g, color: piece.Black})
	g.sessions[piece.White] = whiteSess
	g.sessions[piece.Black] = blackSess

	for _, s := range g.sessions {
		if err := s.Start(); err != nil {
			return nil, err
		}
		s.Send(message.UCI{}.String())
		s.Send(message.UCINewGame{}.String())
		s.Send(message.IsReady{}.String())
	}

	g.requestMove(b.SideToMove())
	return g, nil
}

// Board returns the game's board.
func (g *EngineVsEngineGame) Board() *board.Board {
	return g.board
}

// Stop tears down both engine sessions, ending the game early.
func (g *EngineVsEngineGame) Stop() {
	g.mu.Lock()
	g.stopped = true
	g.mu.Unlock()

	g.sessions[piece.White].Stop()
	g.sessions[piece.Black].Stop()
}

func (g *EngineVsEngineGame) requestMove(side piece.Color) {
	g.mu.Lock()
	pos := message.Position{StartPos: true, Moves: append([]string(nil), g.playedMoves...)}
	search := g.search
	g.mu.Unlock()

	s := g.sessions[side]
	s.Send(pos.String())
	s.Send(search.String())
}

func (g *EngineVsEngineGame) handleLine(from piece.Color, line string) {
	msg := message.ParseEngineMessage(line)
	best, ok := msg.(message.BestMove)
	if !ok {
		return
	}

	g.mu.Lock()
	if g.stopped {
		g.mu.Unlock()
		return
	}
	if g.board.SideToMove() != from {
		// a stale reply from a side that is not on move, e.g. arriving
		// after Stop was already called for the other side's turn.
		g.mu.Unlock()
		return
	}
	if best.Move == "0000" {
		g.mu.Unlock()
		return
	}

	from2, to, promotion, err := move.ParseLongAlgebraic(best.Move)
	if err != nil {
		g.mu.Unlock()
		g.observer.OnError(fmt.Errorf("game: engine-vs-engine bestmove: %w", err))
		return
	}

	mover := g.board.PieceAt(from2)
	if err := g.board.MakeMove(move.Move{Piece: mover, From: from2, To: to, Promotion: promotion}); err != nil {
		g.mu.Unlock()
		g.observer.OnError(fmt.Errorf("game: engine-vs-engine bestmove %s: %w", best.Move, err))
		return
	}
	played, _ := g.board.Moves().Current()
	g.playedMoves = append(g.playedMoves, played.String())
	terminal := g.board.TerminalState()
	next := g.board.SideToMove()
	g.mu.Unlock()

	g.observer.OnMove(g.board, played)
	if terminal != board.Ongoing && terminal != board.Check {
		g.observer.OnTerminal(g.board, terminal)
		return
	}

	g.requestMove(next)
}
