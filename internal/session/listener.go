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

// Executor runs a callback, possibly by reposting it onto some other
// thread of control (a UI's event loop, for instance) rather than
// running it inline.
type Executor func(func())

// Direct runs the callback immediately, on the calling goroutine. It
// is the Executor to use when the Listener has no thread affinity.
func Direct(f func()) { f() }

// Marshal wraps listener so that each of its callbacks is run through
// exec instead of being invoked directly by the Session's worker
// goroutines. The returned Listener is transparent to the Session: it
// implements the same interface and can be passed to New exactly like
// an unwrapped listener.
func Marshal(listener Listener, exec Executor) Listener {
	return &marshalledListener{inner: listener, exec: exec}
}

type marshalledListener struct {
	inner Listener
	exec  Executor
}

func (m *marshalledListener) OnMessage(line string) {
	m.exec(func() { m.inner.OnMessage(line) })
}

func (m *marshalledListener) OnError(err error) {
	m.exec(func() { m.inner.OnError(err) })
}

func (m *marshalledListener) OnClosed() {
	m.exec(func() { m.inner.OnClosed() })
}
