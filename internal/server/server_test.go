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

package server_test

import (
	"bufio"
	"net"
	"sync"
	"testing"
	"time"

	"laptudirm.com/x/messfront/internal/server"
	"laptudirm.com/x/messfront/internal/session"
)

// recordingListener collects every relayed line and lifecycle event,
// guarded by a mutex since the relay's two Sessions invoke it from
// separate worker goroutines.
type recordingListener struct {
	mu       sync.Mutex
	client   []string
	engine   []string
	errs     []error
	closed   bool
	closedCh chan struct{}
}

func newRecordingListener() *recordingListener {
	return &recordingListener{closedCh: make(chan struct{})}
}

func (l *recordingListener) OnClientMessage(line string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.client = append(l.client, line)
}

func (l *recordingListener) OnEngineMessage(line string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.engine = append(l.engine, line)
}

func (l *recordingListener) OnError(err error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.errs = append(l.errs, err)
}

func (l *recordingListener) OnClosed() {
	l.mu.Lock()
	if l.closed {
		l.mu.Unlock()
		return
	}
	l.closed = true
	l.mu.Unlock()
	close(l.closedCh)
}

type pipeConn struct{ net.Conn }

func TestServerRelaysBothDirections(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	defer ln.Close()

	engineSide, testEngine := net.Pipe()
	dialEngine := func() (session.Connectable, error) {
		return pipeConn{engineSide}, nil
	}

	l := newRecordingListener()
	srv := server.New(ln, dialEngine)
	go func() { _ = srv.Serve(l) }()

	clientConn, err := net.Dial("tcp", ln.Addr().String())
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer clientConn.Close()

	clientWriter := bufio.NewWriter(clientConn)
	if _, err := clientWriter.WriteString("uci\n"); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := clientWriter.Flush(); err != nil {
		t.Fatalf("flush: %v", err)
	}

	engineScanner := bufio.NewScanner(testEngine)
	if !engineScanner.Scan() {
		t.Fatalf("engine side never received a line: %v", engineScanner.Err())
	}
	if got := engineScanner.Text(); got != "uci" {
		t.Errorf("engine received %q, want %q", got, "uci")
	}

	engineWriter := bufio.NewWriter(testEngine)
	if _, err := engineWriter.WriteString("uciok\n"); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := engineWriter.Flush(); err != nil {
		t.Fatalf("flush: %v", err)
	}

	clientScanner := bufio.NewScanner(clientConn)
	if !clientScanner.Scan() {
		t.Fatalf("client side never received a line: %v", clientScanner.Err())
	}
	if got := clientScanner.Text(); got != "uciok" {
		t.Errorf("client received %q, want %q", got, "uciok")
	}

	deadline := time.After(2 * time.Second)
	for {
		l.mu.Lock()
		gotClient, gotEngine := len(l.client), len(l.engine)
		l.mu.Unlock()
		if gotClient >= 1 && gotEngine >= 1 {
			break
		}
		select {
		case <-deadline:
			t.Fatalf("timed out waiting for relayed callbacks, client=%d engine=%d", gotClient, gotEngine)
		case <-time.After(5 * time.Millisecond):
		}
	}
}

func TestServerRejectsSecondClient(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	defer ln.Close()

	engineSide, testEngine := net.Pipe()
	defer testEngine.Close()
	first := true
	dialEngine := func() (session.Connectable, error) {
		if !first {
			t.Fatal("dialEngine called for a second, rejected client")
		}
		first = false
		return pipeConn{engineSide}, nil
	}

	l := newRecordingListener()
	srv := server.New(ln, dialEngine)
	go func() { _ = srv.Serve(l) }()

	firstClient, err := net.Dial("tcp", ln.Addr().String())
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer firstClient.Close()

	// give the accept loop a moment to mark the server active before
	// the second connection races in.
	time.Sleep(20 * time.Millisecond)

	secondClient, err := net.Dial("tcp", ln.Addr().String())
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer secondClient.Close()

	scanner := bufio.NewScanner(secondClient)
	if !scanner.Scan() {
		t.Fatalf("second client never received a rejection line: %v", scanner.Err())
	}
	if got := scanner.Text(); got == "" {
		t.Error("expected a non-empty rejection line")
	}
}
