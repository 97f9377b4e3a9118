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

package session

import (
	"io"
	"net"
	"os/exec"
)

// Connectable is the stream a Session reads lines from and writes
// lines to: a local child process, a socket dialled out to a remote
// engine, or a socket accepted from an external client.
type Connectable interface {
	io.Reader
	io.Writer
	io.Closer
}

// processConnectable adapts an exec.Cmd's stdin/stdout pipes, plus the
// process itself, to the Connectable interface.
type processConnectable struct {
	cmd    *exec.Cmd
	stdin  io.WriteCloser
	stdout io.ReadCloser
}

func (p *processConnectable) Read(b []byte) (int, error)  { return p.stdout.Read(b) }
func (p *processConnectable) Write(b []byte) (int, error) { return p.stdin.Write(b) }

// Close closes both pipes and kills the child process if it is still
// running, then reaps it. Pipe-close errors are ignored in favour of
// the more informative Wait error, if any.
func (p *processConnectable) Close() error {
	_ = p.stdin.Close()
	_ = p.stdout.Close()
	if p.cmd.Process != nil {
		_ = p.cmd.Process.Kill()
	}
	return p.cmd.Wait()
}

// DialProcess starts name as a child process with the given arguments
// and returns a Connectable wrapping its standard input and output.
func DialProcess(name string, args ...string) (Connectable, error) {
	cmd := exec.Command(name, args...)

	stdin, err := cmd.StdinPipe()
	if err != nil {
		return nil, err
	}
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, err
	}

	if err := cmd.Start(); err != nil {
		return nil, err
	}

	return &processConnectable{cmd: cmd, stdin: stdin, stdout: stdout}, nil
}

// DialSocket connects to a remote engine listening at addr. net.Conn
// already satisfies Connectable directly.
func DialSocket(network, addr string) (Connectable, error) {
	return net.Dial(network, addr)
}
