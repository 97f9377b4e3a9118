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

package message

import (
	"strconv"
	"strings"

	"laptudirm.com/x/messfront/pkg/uci/flag"
)

// ParseClientMessage parses a single line sent by a client. Parsing
// never fails: a line it cannot make sense of comes back as
// UnknownClient, preserving the raw text and the caller's stream
// progress.
func ParseClientMessage(line string) ClientMessage {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return UnknownClient{Raw: line}
	}

	switch fields[0] {
	case "uci":
		if len(fields) == 1 {
			return UCI{}
		}
	case "isready":
		if len(fields) == 1 {
			return IsReady{}
		}
	case "ucinewgame":
		if len(fields) == 1 {
			return UCINewGame{}
		}
	case "stop":
		if len(fields) == 1 {
			return Stop{}
		}
	case "ponderhit":
		if len(fields) == 1 {
			return PonderHit{}
		}
	case "quit":
		if len(fields) == 1 {
			return Quit{}
		}
	case "debug":
		if len(fields) == 2 {
			switch fields[1] {
			case "on":
				return Debug{On: true}
			case "off":
				return Debug{On: false}
			}
		}
	case "register":
		return parseRegister(fields[1:], line)
	case "setoption":
		return parseSetOption(fields[1:], line)
	case "go":
		return parseGo(fields[1:], line)
	case "position":
		return parsePosition(fields[1:], line)
	}

	return UnknownClient{Raw: line}
}

// ParseEngineMessage parses a single line sent by an engine, with the
// same tolerant fallback to UnknownEngine as ParseClientMessage.
func ParseEngineMessage(line string) EngineMessage {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return UnknownEngine{Raw: line}
	}

	switch fields[0] {
	case "id":
		if len(fields) >= 3 {
			switch fields[1] {
			case "name":
				return IDName{Name: strings.Join(fields[2:], " ")}
			case "author":
				return IDAuthor{Author: strings.Join(fields[2:], " ")}
			}
		}
	case "uciok":
		if len(fields) == 1 {
			return UCIOk{}
		}
	case "readyok":
		if len(fields) == 1 {
			return ReadyOk{}
		}
	case "bestmove":
		return parseBestMove(fields[1:], line)
	case "copyprotection":
		if len(fields) == 2 {
			if s, ok := parseProtectionStatus(fields[1]); ok {
				return CopyProtection{Status: s}
			}
		}
	case "registration":
		if len(fields) == 2 {
			if s, ok := parseProtectionStatus(fields[1]); ok {
				return Registration{Status: s}
			}
		}
	case "info":
		return Info{Pairs: parseInfoPairs(fields[1:])}
	case "option":
		return parseOption(fields[1:], line)
	}

	return UnknownEngine{Raw: line}
}

// collectUntil splits tokens at the first occurrence of any of stops,
// returning the tokens before it and the remainder starting at the
// stop token (or all of tokens and nil if no stop occurs).
func collectUntil(tokens []string, stops ...string) (collected, rest []string) {
	stopSet := make(map[string]bool, len(stops))
	for _, s := range stops {
		stopSet[s] = true
	}

	i := 0
	for i < len(tokens) && !stopSet[tokens[i]] {
		i++
	}
	return tokens[:i], tokens[i:]
}

func parseRegister(args []string, raw string) ClientMessage {
	if len(args) == 1 && args[0] == "later" {
		return Register{Later: true}
	}

	if len(args) >= 1 && args[0] == "name" {
		nameToks, rest := collectUntil(args[1:], "code")
		if len(nameToks) > 0 && len(rest) >= 2 && rest[0] == "code" {
			return Register{
				Name: strings.Join(nameToks, " "),
				Code: strings.Join(rest[1:], " "),
			}
		}
	}

	return UnknownClient{Raw: raw}
}

func parseSetOption(args []string, raw string) ClientMessage {
	if len(args) == 0 || args[0] != "name" {
		return UnknownClient{Raw: raw}
	}

	nameToks, rest := collectUntil(args[1:], "value")
	if len(nameToks) == 0 {
		return UnknownClient{Raw: raw}
	}

	m := SetOption{Name: strings.Join(nameToks, " ")}
	if len(rest) > 0 && rest[0] == "value" {
		m.HasValue = true
		m.Value = strings.Join(rest[1:], " ")
	}

	if m.Name == "UCI_Opponent" && m.HasValue {
		if opp, ok := parseOpponent(m.Value); ok {
			m.Opponent = &opp
		}
	}

	return m
}

func parseOpponent(value string) (Opponent, bool) {
	toks := strings.Fields(value)
	if len(toks) < 4 {
		return Opponent{}, false
	}
	kind := toks[2]
	if kind != "computer" && kind != "human" {
		return Opponent{}, false
	}
	return Opponent{
		Title:      toks[0],
		Elo:        toks[1],
		IsComputer: kind == "computer",
		Name:       strings.Join(toks[3:], " "),
	}, true
}

// goKeywords are the recognised parameters of the go command, used to
// know where a searchmoves run ends.
var goKeywords = []string{
	"searchmoves", "ponder", "wtime", "btime", "winc", "binc",
	"movestogo", "depth", "nodes", "mate", "movetime", "infinite",
}

func parseGo(args []string, raw string) ClientMessage {
	schema := flag.NewSchema()
	schema.VariadicUntil("searchmoves", goKeywords)
	schema.Button("ponder")
	schema.Single("wtime")
	schema.Single("btime")
	schema.Single("winc")
	schema.Single("binc")
	schema.Single("movestogo")
	schema.Single("depth")
	schema.Single("nodes")
	schema.Single("mate")
	schema.Single("movetime")
	schema.Button("infinite")

	values, err := schema.Parse(args)
	if err != nil {
		return UnknownClient{Raw: raw}
	}

	m := Go{}
	if v, ok := values["searchmoves"]; ok && v.Set {
		if moves, ok := v.Value.([]string); ok {
			m.SearchMoves = moves
		}
	}
	if v, ok := values["ponder"]; ok && v.Set {
		m.Ponder = true
	}
	if v, ok := values["infinite"]; ok && v.Set {
		m.Infinite = true
	}

	intFields := map[string]**int{
		"wtime":     &m.WTime,
		"btime":     &m.BTime,
		"winc":      &m.WInc,
		"binc":      &m.BInc,
		"movestogo": &m.MovesToGo,
		"depth":     &m.Depth,
		"nodes":     &m.Nodes,
		"mate":      &m.Mate,
		"movetime":  &m.MoveTime,
	}
	for name, field := range intFields {
		v, ok := values[name]
		if !ok || !v.Set {
			continue
		}
		s, _ := v.Value.(string)
		n, err := strconv.Atoi(s)
		if err != nil {
			return UnknownClient{Raw: raw}
		}
		*field = &n
	}

	return m
}

func parsePosition(args []string, raw string) ClientMessage {
	if len(args) == 0 {
		return UnknownClient{Raw: raw}
	}

	m := Position{}
	var rest []string

	switch args[0] {
	case "startpos":
		m.StartPos = true
		rest = args[1:]
	case "fen":
		fenToks, r := collectUntil(args[1:], "moves")
		if len(fenToks) == 0 {
			return UnknownClient{Raw: raw}
		}
		m.FEN = strings.Join(fenToks, " ")
		rest = r
	default:
		return UnknownClient{Raw: raw}
	}

	if len(rest) > 0 {
		if rest[0] != "moves" {
			return UnknownClient{Raw: raw}
		}
		m.Moves = append([]string(nil), rest[1:]...)
	}

	return m
}

func parseBestMove(args []string, raw string) EngineMessage {
	if len(args) == 0 {
		return UnknownEngine{Raw: raw}
	}

	m := BestMove{Move: args[0]}
	switch {
	case len(args) == 1:
	case len(args) == 3 && args[1] == "ponder":
		m.HasPonder = true
		m.Ponder = args[2]
	default:
		return UnknownEngine{Raw: raw}
	}
	return m
}

func parseProtectionStatus(s string) (ProtectionStatus, bool) {
	switch ProtectionStatus(s) {
	case Checking, OK, Error:
		return ProtectionStatus(s), true
	default:
		return "", false
	}
}

// infoKeys are the recognised keys of an info message, used to chunk
// the remaining fields into key/value runs.
var infoKeys = map[string]bool{
	"depth": true, "seldepth": true, "time": true, "nodes": true,
	"pv": true, "multipv": true, "score": true, "currmove": true,
	"currmovenumber": true, "hashfull": true, "nps": true,
	"tbhits": true, "cpuload": true, "string": true,
	"refutation": true, "currline": true,
}

func parseInfoPairs(fields []string) []InfoPair {
	var pairs []InfoPair
	i := 0
	for i < len(fields) {
		key := fields[i]
		i++
		var values []string
		for i < len(fields) && !infoKeys[fields[i]] {
			values = append(values, fields[i])
			i++
		}
		pairs = append(pairs, InfoPair{Key: key, Values: values})
	}
	return pairs
}

func parseOption(args []string, raw string) EngineMessage {
	if len(args) == 0 || args[0] != "name" {
		return UnknownEngine{Raw: raw}
	}

	nameToks, rest := collectUntil(args[1:], "type")
	if len(nameToks) == 0 || len(rest) == 0 || rest[0] != "type" {
		return UnknownEngine{Raw: raw}
	}
	rest = rest[1:]
	if len(rest) == 0 {
		return UnknownEngine{Raw: raw}
	}

	kind := OptionKind(rest[0])
	switch kind {
	case OptionCheck, OptionSpin, OptionCombo, OptionButton, OptionString:
	default:
		return UnknownEngine{Raw: raw}
	}
	rest = rest[1:]

	m := Option{Name: strings.Join(nameToks, " "), Kind: kind}

	for len(rest) > 0 {
		switch rest[0] {
		case "default":
			defToks, r := collectUntil(rest[1:], "min", "max", "var")
			m.Default = strings.Join(defToks, " ")
			m.HasDefault = true
			rest = r
		case "min":
			if len(rest) < 2 {
				return UnknownEngine{Raw: raw}
			}
			m.Min = rest[1]
			m.HasMin = true
			rest = rest[2:]
		case "max":
			if len(rest) < 2 {
				return UnknownEngine{Raw: raw}
			}
			m.Max = rest[1]
			m.HasMax = true
			rest = rest[2:]
		case "var":
			varToks, r := collectUntil(rest[1:], "var", "min", "max", "default")
			m.Vars = append(m.Vars, strings.Join(varToks, " "))
			rest = r
		default:
			return UnknownEngine{Raw: raw}
		}
	}

	return m
}
