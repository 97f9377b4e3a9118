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

// Package server implements the Server Session: a transparent relay
// that accepts a single external client connection and wires it to a
// local engine child process, forwarding each side's lines to the
// other unmodified.
package server

import (
	"fmt"
	"net"
	"sync"

	"laptudirm.com/x/messfront/internal/session"
)

// Listener is notified of relayed traffic and of the two directions a
// Server can fail or end in. Every callback may arrive from a worker
// goroutine.
type Listener interface {
	OnClientMessage(line string)
	OnEngineMessage(line string)
	OnError(err error)
	OnClosed()
}

// Server accepts one external client connection at a time on a
// listening socket, spawns a local engine child process for that
// client, and relays lines between the two until either side closes.
// A second client is rejected while one is already being served.
type Server struct {
	listener net.Listener
	engine   func() (session.Connectable, error)

	mu     sync.Mutex
	active bool
}

// New creates a Server that accepts connections on ln and, per
// accepted client, dials a fresh engine connectable with dialEngine
// (typically session.DialProcess bound to the engine's path and args).
func New(ln net.Listener, dialEngine func() (session.Connectable, error)) *Server {
	return &Server{listener: ln, engine: dialEngine}
}

// Serve accepts connections from the listener for as long as it stays
// open, handling each accepted connection on its own goroutine; only
// one client/engine relay runs at a time. It returns the listener's
// terminal error (nil on a deliberate Close).
func (s *Server) Serve(l Listener) error {
	for {
		conn, err := s.listener.Accept()
		if err != nil {
			return err
		}
		go s.serveOne(conn, l)
	}
}

// serveOne runs a single client's relay session to completion before
// returning. A client that connects while another relay is active is
// sent an error line and disconnected.
func (s *Server) serveOne(client net.Conn, l Listener) {
	s.mu.Lock()
	if s.active {
		s.mu.Unlock()
		_, _ = fmt.Fprintln(client, "error another client session is already active")
		client.Close()
		return
	}
	s.active = true
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.active = false
		s.mu.Unlock()
	}()

	engineConn, err := s.engine()
	if err != nil {
		l.OnError(fmt.Errorf("server: dial engine: %w", err))
		client.Close()
		return
	}

	relay(client, engineConn, l)
}

// relay installs the four workers described by the Session Runtime's
// Server Session contract: a Session on each side, each delivering its
// inbound lines as the other's outbound, until either closes. It
// returns once the relay has ended.
func relay(client, engine session.Connectable, l Listener) {
	var clientSession, engineSession *session.Session
	done := make(chan struct{})

	clientSession = session.New(client, relayListener{
		onMessage: func(line string) {
			l.OnClientMessage(line)
			engineSession.Send(line)
		},
		onError:  l.OnError,
		onClosed: func() { engineSession.Stop() },
	})

	engineSession = session.New(engine, relayListener{
		onMessage: func(line string) {
			l.OnEngineMessage(line)
			clientSession.Send(line)
		},
		onError: l.OnError,
		onClosed: func() {
			clientSession.Stop()
			l.OnClosed()
			close(done)
		},
	})

	if err := engineSession.Start(); err != nil {
		l.OnError(fmt.Errorf("server: %w", err))
		return
	}
	if err := clientSession.Start(); err != nil {
		l.OnError(fmt.Errorf("server: %w", err))
		engineSession.Stop()
		return
	}
	<-done
}

// relayListener adapts a trio of callbacks to session.Listener, used
// to wire each side's inbound traffic into the other's outbound queue
// without a bespoke type for each direction.
type relayListener struct {
	onMessage func(string)
	onError   func(error)
	onClosed  func()
}

func (r relayListener) OnMessage(line string) { r.onMessage(line) }
func (r relayListener) OnError(err error)      { r.onError(err) }
func (r relayListener) OnClosed()              { r.onClosed() }
