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

// Package message implements the line-oriented text protocol spoken
// between a GUI-style client and a chess engine: the typed messages
// each side sends, and a forgiving parser/serialiser pair for them.
package message

import (
	"fmt"
	"strconv"
	"strings"
)

// ClientMessage is implemented by every message a client can send to
// an engine.
type ClientMessage interface {
	String() string
	isClientMessage()
}

// EngineMessage is implemented by every message an engine can send to
// a client.
type EngineMessage interface {
	String() string
	isEngineMessage()
}

// UCI asks the engine to identify itself and switch to UCI mode.
type UCI struct{}

// IsReady asks the engine to confirm it is ready, or still alive.
type IsReady struct{}

// UCINewGame informs the engine the next position is unrelated to any
// previous one.
type UCINewGame struct{}

// Stop asks the engine to stop calculating as soon as possible.
type Stop struct{}

// PonderHit informs the engine the move it was pondering was played.
type PonderHit struct{}

// Quit asks the engine to exit.
type Quit struct{}

// Debug toggles the engine's debug output.
type Debug struct {
	On bool
}

// Register provides registration information, or defers it.
type Register struct {
	Later bool
	Name  string
	Code  string
}

// Opponent is the decoded shape of a UCI_Opponent option value:
// "<title> <elo|none> {computer|human} <name>".
type Opponent struct {
	Title      string
	Elo        string // numeric string, or "none"
	IsComputer bool
	Name       string
}

// String renders the opponent in the wire value format.
func (o Opponent) String() string {
	kind := "human"
	if o.IsComputer {
		kind = "computer"
	}
	return fmt.Sprintf("%s %s %s %s", o.Title, o.Elo, kind, o.Name)
}

// SetOption sets an engine option by name. Opponent is populated in
// addition to Value whenever Name is UCI_Opponent and Value parses as
// one.
type SetOption struct {
	Name     string
	Value    string
	HasValue bool
	Opponent *Opponent
}

// Go starts calculating on the current position. Every bound is a
// pointer so that an absent parameter round-trips as absent rather
// than as zero.
type Go struct {
	SearchMoves []string
	Ponder      bool
	WTime       *int
	BTime       *int
	WInc        *int
	BInc        *int
	MovesToGo   *int
	Depth       *int
	Nodes       *int
	Mate        *int
	MoveTime    *int
	Infinite    bool
}

// Position sets up a position, either the standard starting position
// or one given by FEN, and then plays Moves on top of it.
type Position struct {
	StartPos bool
	FEN      string
	Moves    []string
}

// UnknownClient is a client-originated line the parser could not
// recognise. Lines that fail to parse never produce an error; they
// round-trip through this variant instead.
type UnknownClient struct {
	Raw string
}

func (UCI) isClientMessage()           {}
func (IsReady) isClientMessage()       {}
func (UCINewGame) isClientMessage()    {}
func (Stop) isClientMessage()          {}
func (PonderHit) isClientMessage()     {}
func (Quit) isClientMessage()          {}
func (Debug) isClientMessage()         {}
func (Register) isClientMessage()      {}
func (SetOption) isClientMessage()     {}
func (Go) isClientMessage()            {}
func (Position) isClientMessage()      {}
func (UnknownClient) isClientMessage() {}

func (m UCI) String() string        { return "uci" }
func (m IsReady) String() string    { return "isready" }
func (m UCINewGame) String() string { return "ucinewgame" }
func (m Stop) String() string       { return "stop" }
func (m PonderHit) String() string  { return "ponderhit" }
func (m Quit) String() string       { return "quit" }

func (m Debug) String() string {
	if m.On {
		return "debug on"
	}
	return "debug off"
}

func (m Register) String() string {
	if m.Later {
		return "register later"
	}
	return fmt.Sprintf("register name %s code %s", m.Name, m.Code)
}

func (m SetOption) String() string {
	s := "setoption name " + m.Name
	if m.HasValue {
		s += " value " + m.Value
	}
	return s
}

func (m Go) String() string {
	parts := []string{"go"}
	if len(m.SearchMoves) > 0 {
		parts = append(parts, "searchmoves")
		parts = append(parts, m.SearchMoves...)
	}
	if m.Ponder {
		parts = append(parts, "ponder")
	}
	parts = appendIntFlag(parts, "wtime", m.WTime)
	parts = appendIntFlag(parts, "btime", m.BTime)
	parts = appendIntFlag(parts, "winc", m.WInc)
	parts = appendIntFlag(parts, "binc", m.BInc)
	parts = appendIntFlag(parts, "movestogo", m.MovesToGo)
	parts = appendIntFlag(parts, "depth", m.Depth)
	parts = appendIntFlag(parts, "nodes", m.Nodes)
	parts = appendIntFlag(parts, "mate", m.Mate)
	parts = appendIntFlag(parts, "movetime", m.MoveTime)
	if m.Infinite {
		parts = append(parts, "infinite")
	}
	return strings.Join(parts, " ")
}

func appendIntFlag(parts []string, name string, v *int) []string {
	if v == nil {
		return parts
	}
	return append(parts, name, strconv.Itoa(*v))
}

func (m Position) String() string {
	parts := []string{"position"}
	if m.StartPos {
		parts = append(parts, "startpos")
	} else {
		parts = append(parts, "fen")
		parts = append(parts, strings.Fields(m.FEN)...)
	}
	if len(m.Moves) > 0 {
		parts = append(parts, "moves")
		parts = append(parts, m.Moves...)
	}
	return strings.Join(parts, " ")
}

func (m UnknownClient) String() string { return m.Raw }

// ProtectionStatus is the status reported by the copyprotection and
// registration engine messages.
type ProtectionStatus string

// the three statuses copyprotection/registration can report.
const (
	Checking ProtectionStatus = "checking"
	OK       ProtectionStatus = "ok"
	Error    ProtectionStatus = "error"
)

// IDName reports the engine's name.
type IDName struct {
	Name string
}

// IDAuthor reports the engine's author.
type IDAuthor struct {
	Author string
}

// UCIOk confirms UCI mode and ends the id/option preamble.
type UCIOk struct{}

// ReadyOk answers IsReady.
type ReadyOk struct{}

// BestMove reports the result of a search.
type BestMove struct {
	Move      string
	Ponder    string
	HasPonder bool
}

// CopyProtection reports copy-protection status.
type CopyProtection struct {
	Status ProtectionStatus
}

// Registration reports registration status.
type Registration struct {
	Status ProtectionStatus
}

// InfoPair is one key and its following values in an Info message,
// e.g. Key "score" Values ["cp", "34"], or Key "pv" with the rest of
// the principal variation as Values.
type InfoPair struct {
	Key    string
	Values []string
}

// Info reports search progress as an ordered list of key/value runs.
type Info struct {
	Pairs []InfoPair
}

// OptionKind is the type tag of an Option message (4.G: check, spin,
// combo, button or string).
type OptionKind string

// the five option kinds UCI defines.
const (
	OptionCheck  OptionKind = "check"
	OptionSpin   OptionKind = "spin"
	OptionCombo  OptionKind = "combo"
	OptionButton OptionKind = "button"
	OptionString OptionKind = "string"
)

// Option describes one engine-declared option.
type Option struct {
	Name       string
	Kind       OptionKind
	Default    string
	HasDefault bool
	Min        string
	HasMin     bool
	Max        string
	HasMax     bool
	Vars       []string
}

// UnknownEngine is an engine-originated line the parser could not
// recognise; see UnknownClient.
type UnknownEngine struct {
	Raw string
}

func (IDName) isEngineMessage()         {}
func (IDAuthor) isEngineMessage()       {}
func (UCIOk) isEngineMessage()          {}
func (ReadyOk) isEngineMessage()        {}
func (BestMove) isEngineMessage()       {}
func (CopyProtection) isEngineMessage() {}
func (Registration) isEngineMessage()   {}
func (Info) isEngineMessage()           {}
func (Option) isEngineMessage()         {}
func (UnknownEngine) isEngineMessage()  {}

func (m IDName) String() string   { return "id name " + m.Name }
func (m IDAuthor) String() string { return "id author " + m.Author }
func (m UCIOk) String() string    { return "uciok" }
func (m ReadyOk) String() string  { return "readyok" }

func (m BestMove) String() string {
	s := "bestmove " + m.Move
	if m.HasPonder {
		s += " ponder " + m.Ponder
	}
	return s
}

func (m CopyProtection) String() string { return "copyprotection " + string(m.Status) }
func (m Registration) String() string   { return "registration " + string(m.Status) }

func (m Info) String() string {
	parts := []string{"info"}
	for _, p := range m.Pairs {
		parts = append(parts, p.Key)
		parts = append(parts, p.Values...)
	}
	return strings.Join(parts, " ")
}

func (m Option) String() string {
	s := fmt.Sprintf("option name %s type %s", m.Name, m.Kind)
	if m.HasDefault {
		s += " default " + m.Default
	}
	if m.HasMin {
		s += " min " + m.Min
	}
	if m.HasMax {
		s += " max " + m.Max
	}
	for _, v := range m.Vars {
		s += " var " + v
	}
	return s
}

func (m UnknownEngine) String() string { return m.Raw }
