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

package message_test

import (
	"reflect"
	"testing"

	"laptudirm.com/x/messfront/pkg/uci/message"
)

func ints(n int) *int { return &n }

func TestClientMessageRoundTrip(t *testing.T) {
	tests := []message.ClientMessage{
		message.UCI{},
		message.IsReady{},
		message.UCINewGame{},
		message.Stop{},
		message.PonderHit{},
		message.Quit{},
		message.Debug{On: true},
		message.Debug{On: false},
		message.Register{Later: true},
		message.Register{Name: "John Doe", Code: "1234-ABCD"},
		message.SetOption{Name: "Hash", HasValue: true, Value: "128"},
		message.SetOption{Name: "Ponder"},
		message.SetOption{
			Name: "UCI_Opponent", HasValue: true, Value: "GM 2800 human Magnus Carlsen",
			Opponent: &message.Opponent{Title: "GM", Elo: "2800", IsComputer: false, Name: "Magnus Carlsen"},
		},
		message.Go{Infinite: true},
		message.Go{WTime: ints(60000), BTime: ints(60000), WInc: ints(1000), BInc: ints(1000)},
		message.Go{SearchMoves: []string{"e2e4", "d2d4"}, Ponder: true, Depth: ints(10)},
		message.Go{MovesToGo: ints(20), Nodes: ints(100000), Mate: ints(3), MoveTime: ints(5000)},
		message.Position{StartPos: true},
		message.Position{StartPos: true, Moves: []string{"e2e4", "e7e5"}},
		message.Position{FEN: "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"},
		message.UnknownClient{Raw: "totally bogus line"},
	}

	for _, want := range tests {
		line := want.String()
		got := message.ParseClientMessage(line)
		if !reflect.DeepEqual(got, want) {
			t.Errorf("round trip %q: got %#v, want %#v", line, got, want)
		}
	}
}

func TestEngineMessageRoundTrip(t *testing.T) {
	tests := []message.EngineMessage{
		message.IDName{Name: "mess 1.0"},
		message.IDAuthor{Author: "Rak Laptudirm"},
		message.UCIOk{},
		message.ReadyOk{},
		message.BestMove{Move: "e2e4"},
		message.BestMove{Move: "e2e4", HasPonder: true, Ponder: "e7e5"},
		message.CopyProtection{Status: message.OK},
		message.Registration{Status: message.Checking},
		message.Info{Pairs: []message.InfoPair{
			{Key: "depth", Values: []string{"10"}},
			{Key: "score", Values: []string{"cp", "34"}},
			{Key: "nodes", Values: []string{"12345"}},
			{Key: "pv", Values: []string{"e2e4", "e7e5", "g1f3"}},
		}},
		message.Option{Name: "Ponder", Kind: message.OptionCheck, Default: "false", HasDefault: true},
		message.Option{
			Name: "Hash", Kind: message.OptionSpin,
			Default: "16", HasDefault: true,
			Min: "1", HasMin: true,
			Max: "1024", HasMax: true,
		},
		message.Option{
			Name: "Style", Kind: message.OptionCombo,
			Default: "Normal", HasDefault: true,
			Vars: []string{"Solid", "Normal", "Risky"},
		},
		message.UnknownEngine{Raw: "garbage from a future protocol version"},
	}

	for _, want := range tests {
		line := want.String()
		got := message.ParseEngineMessage(line)
		if !reflect.DeepEqual(got, want) {
			t.Errorf("round trip %q: got %#v, want %#v", line, got, want)
		}
	}
}

func TestUnrecognisedLinesYieldUnknown(t *testing.T) {
	if got := message.ParseClientMessage("frobnicate the whatsit"); got == nil {
		t.Fatal("expected a non-nil UnknownClient")
	} else if _, ok := got.(message.UnknownClient); !ok {
		t.Fatalf("expected UnknownClient, got %T", got)
	}

	if got := message.ParseEngineMessage(""); got == nil {
		t.Fatal("expected a non-nil UnknownEngine")
	} else if _, ok := got.(message.UnknownEngine); !ok {
		t.Fatalf("expected UnknownEngine, got %T", got)
	}
}
