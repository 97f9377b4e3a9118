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

package game_test

import (
	"bufio"
	"net"
	"sync"
	"testing"
	"time"

	"laptudirm.com/x/messfront/internal/game"
	"laptudirm.com/x/messfront/pkg/board"
	"laptudirm.com/x/messfront/pkg/move"
	"laptudirm.com/x/messfront/pkg/piece"
	"laptudirm.com/x/messfront/pkg/uci/message"
)

// recordingObserver collects every callback, guarded by a mutex since
// an EngineGame invokes it from a session worker goroutine.
type recordingObserver struct {
	mu        sync.Mutex
	moves     []move.Move
	terminals []board.TerminalState
	errs      []error
	moveCh    chan struct{}
}

func newRecordingObserver() *recordingObserver {
	return &recordingObserver{moveCh: make(chan struct{}, 16)}
}

func (o *recordingObserver) OnMove(_ *board.Board, m move.Move) {
	o.mu.Lock()
	o.moves = append(o.moves, m)
	o.mu.Unlock()
	o.moveCh <- struct{}{}
}

func (o *recordingObserver) OnTerminal(_ *board.Board, state board.TerminalState) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.terminals = append(o.terminals, state)
}

func (o *recordingObserver) OnError(err error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.errs = append(o.errs, err)
}

func (o *recordingObserver) waitForMoves(t *testing.T, n int) {
	t.Helper()
	for i := 0; i < n; i++ {
		select {
		case <-o.moveCh:
		case <-time.After(2 * time.Second):
			t.Fatalf("timed out waiting for move %d/%d", i+1, n)
		}
	}
}

func TestHumanGamePlaysBothSides(t *testing.T) {
	observer := newRecordingObserver()
	g := game.NewHumanGame(board.NewGame(), observer)

	from, to, _, err := move.ParseLongAlgebraic("e2e4")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	mover := g.Board().PieceAt(from)
	if err := g.Play(move.Move{Piece: mover, From: from, To: to}); err != nil {
		t.Fatalf("play e2e4: %v", err)
	}

	from, to, _, err = move.ParseLongAlgebraic("e7e5")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	mover = g.Board().PieceAt(from)
	if err := g.Play(move.Move{Piece: mover, From: from, To: to}); err != nil {
		t.Fatalf("play e7e5: %v", err)
	}

	observer.mu.Lock()
	defer observer.mu.Unlock()
	if len(observer.moves) != 2 {
		t.Fatalf("got %d moves, want 2", len(observer.moves))
	}
	if g.Board().SideToMove() != piece.White {
		t.Errorf("side to move = %v, want white", g.Board().SideToMove())
	}
}

func TestHumanGameRejectsIllegalMove(t *testing.T) {
	observer := newRecordingObserver()
	g := game.NewHumanGame(board.NewGame(), observer)

	from, to, _, _ := move.ParseLongAlgebraic("e2e5")
	mover := g.Board().PieceAt(from)
	if err := g.Play(move.Move{Piece: mover, From: from, To: to}); err == nil {
		t.Fatal("expected an illegal move error")
	}

	observer.mu.Lock()
	defer observer.mu.Unlock()
	if len(observer.errs) != 1 {
		t.Fatalf("got %d errors, want 1", len(observer.errs))
	}
}

// pipeConn adapts one side of a net.Pipe to session.Connectable, which
// net.Conn already satisfies directly.
type pipeConn struct{ net.Conn }

// fakeEngine answers every "go"-prefixed line read from conn with a
// fixed bestmove reply, ignoring every other line, until the pipe is
// closed out from under it.
func fakeEngine(t *testing.T, conn net.Conn, bestmove string) {
	t.Helper()
	scanner := bufio.NewScanner(conn)
	writer := bufio.NewWriter(conn)
	for scanner.Scan() {
		line := scanner.Text()
		if len(line) >= 2 && line[:2] == "go" {
			_, _ = writer.WriteString("bestmove " + bestmove + "\n")
			_ = writer.Flush()
		}
	}
}

func TestEngineGameRepliesToHumanMove(t *testing.T) {
	engineSide, testSide := net.Pipe()
	defer testSide.Close()

	go fakeEngine(t, testSide, "e7e5")

	observer := newRecordingObserver()
	g, err := game.NewEngineGame(board.NewGame(), piece.White, pipeConn{engineSide}, observer, message.Go{MoveTime: intPtr(10)})
	if err != nil {
		t.Fatalf("new engine game: %v", err)
	}

	from, to, _, err := move.ParseLongAlgebraic("e2e4")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	mover := g.Board().PieceAt(from)
	if err := g.Play(move.Move{Piece: mover, From: from, To: to}); err != nil {
		t.Fatalf("play e2e4: %v", err)
	}

	observer.waitForMoves(t, 2) // the human's e2e4, then the engine's e7e5

	observer.mu.Lock()
	defer observer.mu.Unlock()
	if len(observer.moves) != 2 {
		t.Fatalf("got %d moves, want 2", len(observer.moves))
	}
	if observer.moves[1].String() != "e7e5" {
		t.Errorf("engine move = %s, want e7e5", observer.moves[1])
	}
}

func intPtr(n int) *int { return &n }
