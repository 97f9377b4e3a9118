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

// Package game composes the Board & Move Engine, the Protocol Codec
// and the Session Runtime into the handful of ways messfront actually
// hosts a game: two humans sharing one board, a human against one
// engine, two engines against each other, and a server session that
// only watches a client/engine conversation it relays but does not
// itself play in.
package game

import (
	"fmt"
	"sync"

	"laptudirm.com/x/messfront/internal/fault"
	"laptudirm.com/x/messfront/internal/session"
	"laptudirm.com/x/messfront/pkg/board"
	"laptudirm.com/x/messfront/pkg/move"
	"laptudirm.com/x/messfront/pkg/piece"
	"laptudirm.com/x/messfront/pkg/uci/message"
)

// Observer is notified of a game's progress regardless of which kind
// of controller is driving it. Every callback may arrive from a
// Session worker goroutine when an engine side is involved; a caller
// with thread affinity should wrap its Observer with an
// session.Executor of its own before handing it to a constructor here.
type Observer interface {
	// OnMove is called after a move has been applied to the board,
	// human or engine-originated alike.
	OnMove(b *board.Board, m move.Move)

	// OnTerminal is called once the board reaches a non-Ongoing,
	// non-Check TerminalState: checkmate, stalemate or one of the
	// automatic draws.
	OnTerminal(b *board.Board, state board.TerminalState)

	// OnError reports an engine session fault or an illegal move
	// attempt; the game does not necessarily end because of it.
	OnError(err error)
}

// HumanGame is the simplest controller: a board shared by two human
// players taking turns at the same input, with no engine or session
// involved at all. It exists mainly to give the other controllers a
// common shape to be compared against.
type HumanGame struct {
	mu       sync.Mutex
	board    *board.Board
	observer Observer
}

// NewHumanGame starts a human-vs-human game on b, which should
// typically be board.NewGame().
func NewHumanGame(b *board.Board, observer Observer) *HumanGame {
	return &HumanGame{board: b, observer: observer}
}

// Board returns the game's board, e.g. for the view layer to render.
func (g *HumanGame) Board() *board.Board {
	return g.board
}

// Play applies m as the move of whichever side is currently to move.
// It reports an illegal-move error to the Observer (and returns it)
// rather than ending the game.
func (g *HumanGame) Play(m move.Move) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if err := g.board.MakeMove(m); err != nil {
		g.observer.OnError(err)
		return err
	}

	played, _ := g.board.Moves().Current()
	g.observer.OnMove(g.board, played)
	g.reportTerminal()
	return nil
}

func (g *HumanGame) reportTerminal() {
	if state := g.board.TerminalState(); state != board.Ongoing && state != board.Check {
		g.observer.OnTerminal(g.board, state)
	}
}

// EngineGame pairs one human player against one engine connection. The
// human's moves are applied directly and then relayed to the engine as
// a position message; the engine's bestmove replies are parsed,
// applied to the board and surfaced as the human's opponent's moves.
type EngineGame struct {
	mu          sync.Mutex
	board       *board.Board
	human       piece.Color
	sess        *session.Session
	observer    Observer
	searchOpts  message.Go
	playedMoves []string
}

// engineGameListener adapts a session.Listener to the line-oriented
// messages an EngineGame needs to act on.
type engineGameListener struct {
	g *EngineGame
}

func (l engineGameListener) OnMessage(line string) {
	l.g.handleEngineLine(line)
}

func (l engineGameListener) OnError(err error) {
	l.g.observer.OnError(fmt.Errorf("game: engine session: %w", err))
}

func (l engineGameListener) OnClosed() {}

// NewEngineGame sends the UCI handshake (uci, ucinewgame, isready) to
// conn and returns an EngineGame, with human to move as human, without
// waiting for the engine's replies. search is the Go message sent to
// the engine, unchanged, after every opponent move.
func NewEngineGame(b *board.Board, human piece.Color, conn session.Connectable, observer Observer, search message.Go) (*EngineGame, error) {
	g := &EngineGame{
		board:      b,
		human:      human,
		observer:   observer,
		searchOpts: search,
	}

	g.sess = session.New(conn, engineGameListener{g: g})
	if err := g.sess.Start(); err != nil {
		return nil, err
	}

	g.sess.Send(message.UCI{}.String())
	g.sess.Send(message.UCINewGame{}.String())
	g.sess.Send(message.IsReady{}.String())

	if b.SideToMove() != human {
		g.requestEngineMove()
	}

	return g, nil
}

// Board returns the game's board.
func (g *EngineGame) Board() *board.Board {
	return g.board
}

// Play applies the human's move m, then, unless the game has ended,
// asks the engine to reply.
func (g *EngineGame) Play(m move.Move) error {
	g.mu.Lock()

	if g.board.SideToMove() != g.human {
		g.mu.Unlock()
		err := fmt.Errorf("game: play %s: not the human's turn: %w", m, fault.ErrProtocolState)
		g.observer.OnError(err)
		return err
	}

	if err := g.board.MakeMove(m); err != nil {
		g.mu.Unlock()
		g.observer.OnError(err)
		return err
	}
	played, _ := g.board.Moves().Current()
	g.playedMoves = append(g.playedMoves, played.String())

	terminal := g.board.TerminalState()
	g.mu.Unlock()

	g.observer.OnMove(g.board, played)
	if terminal != board.Ongoing && terminal != board.Check {
		g.observer.OnTerminal(g.board, terminal)
		return nil
	}

	g.requestEngineMove()
	return nil
}

// Resign stops the underlying engine session without playing a final
// move; the caller is responsible for reporting the resignation to its
// own UI, since there is no wire message for it.
func (g *EngineGame) Resign() {
	g.sess.Stop()
}

// SetSearch replaces the Go message sent to the engine after every
// future opponent move, letting a front end's own local settings (e.g.
// a configurable move time) take effect without restarting the game.
func (g *EngineGame) SetSearch(search message.Go) {
	g.mu.Lock()
	g.searchOpts = search
	g.mu.Unlock()
}

func (g *EngineGame) requestEngineMove() {
	g.mu.Lock()
	pos := message.Position{StartPos: true, Moves: append([]string(nil), g.playedMoves...)}
	search := g.searchOpts
	g.mu.Unlock()

	g.sess.Send(pos.String())
	g.sess.Send(search.String())
}

func (g *EngineGame) handleEngineLine(line string) {
	msg := message.ParseEngineMessage(line)

	best, ok := msg.(message.BestMove)
	if !ok {
		return
	}
	if best.Move == "0000" {
		return
	}

	g.mu.Lock()
	from, to, promotion, err := move.ParseLongAlgebraic(best.Move)
	if err != nil {
		g.mu.Unlock()
		g.observer.OnError(fmt.Errorf("game: engine bestmove: %w", err))
		return
	}

	mover := g.board.PieceAt(from)
	err = g.board.MakeMove(move.Move{Piece: mover, From: from, To: to, Promotion: promotion})
	if err != nil {
		g.mu.Unlock()
		g.observer.OnError(fmt.Errorf("game: engine bestmove %s: %w", best.Move, err))
		return
	}
	played, _ := g.board.Moves().Current()
	g.playedMoves = append(g.playedMoves, played.String())
	terminal := g.board.TerminalState()
	g.mu.Unlock()

	g.observer.OnMove(g.board, played)
	if terminal != board.Ongoing && terminal != board.Check {
		g.observer.OnTerminal(g.board, terminal)
	}
}
