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

package session_test

import (
	"bufio"
	"net"
	"sync"
	"testing"
	"time"

	"laptudirm.com/x/messfront/internal/session"
)

// recordingListener collects every callback it receives, guarded by a
// mutex since the Session invokes it from worker goroutines.
type recordingListener struct {
	mu       sync.Mutex
	messages []string
	errs     []error
	closed   bool
	closedCh chan struct{}
}

func newRecordingListener() *recordingListener {
	return &recordingListener{closedCh: make(chan struct{})}
}

func (l *recordingListener) OnMessage(line string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.messages = append(l.messages, line)
}

func (l *recordingListener) OnError(err error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.errs = append(l.errs, err)
}

func (l *recordingListener) OnClosed() {
	l.mu.Lock()
	l.closed = true
	l.mu.Unlock()
	close(l.closedCh)
}

// pipeConn adapts one side of a net.Pipe to session.Connectable; it
// already satisfies it since net.Conn embeds Read/Write/Close.
type pipeConn struct{ net.Conn }

func TestSessionDeliversMessagesInOrder(t *testing.T) {
	clientSide, testSide := net.Pipe()
	listener := newRecordingListener()

	s := session.New(pipeConn{clientSide}, listener)
	if err := s.Start(); err != nil {
		t.Fatalf("start: %v", err)
	}

	writer := bufio.NewWriter(testSide)
	for _, line := range []string{"uciok", "readyok", "bestmove e2e4"} {
		if _, err := writer.WriteString(line + "\n"); err != nil {
			t.Fatalf("write: %v", err)
		}
	}
	if err := writer.Flush(); err != nil {
		t.Fatalf("flush: %v", err)
	}

	deadline := time.After(2 * time.Second)
	for {
		listener.mu.Lock()
		got := len(listener.messages)
		listener.mu.Unlock()
		if got >= 3 {
			break
		}
		select {
		case <-deadline:
			t.Fatalf("timed out waiting for messages, got %d", got)
		case <-time.After(5 * time.Millisecond):
		}
	}

	listener.mu.Lock()
	defer listener.mu.Unlock()
	want := []string{"uciok", "readyok", "bestmove e2e4"}
	for i, w := range want {
		if listener.messages[i] != w {
			t.Errorf("message %d: got %q, want %q", i, listener.messages[i], w)
		}
	}

	s.Stop()
	testSide.Close()
}

func TestStopNotifiesClosed(t *testing.T) {
	clientSide, testSide := net.Pipe()
	defer testSide.Close()
	listener := newRecordingListener()

	s := session.New(pipeConn{clientSide}, listener)
	if err := s.Start(); err != nil {
		t.Fatalf("start: %v", err)
	}

	s.Stop()

	select {
	case <-listener.closedCh:
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for OnClosed")
	}

	if s.State() != session.Closed {
		t.Errorf("state = %v, want %v", s.State(), session.Closed)
	}
}

func TestDoubleStartFails(t *testing.T) {
	clientSide, testSide := net.Pipe()
	defer testSide.Close()
	defer clientSide.Close()

	s := session.New(pipeConn{clientSide}, newRecordingListener())
	if err := s.Start(); err != nil {
		t.Fatalf("first start: %v", err)
	}
	if err := s.Start(); err == nil {
		t.Fatal("second start: expected an error")
	}

	s.Stop()
}

func TestPeerCloseAutoStops(t *testing.T) {
	clientSide, testSide := net.Pipe()
	listener := newRecordingListener()

	s := session.New(pipeConn{clientSide}, listener)
	if err := s.Start(); err != nil {
		t.Fatalf("start: %v", err)
	}

	// the peer hangs up without the session ever being asked to stop.
	testSide.Close()

	select {
	case <-listener.closedCh:
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for auto-stop OnClosed")
	}

	if s.State() != session.Closed {
		t.Errorf("state = %v, want %v", s.State(), session.Closed)
	}
}
