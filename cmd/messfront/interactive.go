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

package main

import (
	"fmt"
	"os"

	"laptudirm.com/x/messfront/internal/game"
	"laptudirm.com/x/messfront/internal/session"
	"laptudirm.com/x/messfront/pkg/board"
	"laptudirm.com/x/messfront/pkg/move"
	"laptudirm.com/x/messfront/pkg/piece"
	"laptudirm.com/x/messfront/pkg/uci"
	"laptudirm.com/x/messfront/pkg/uci/cmd"
	"laptudirm.com/x/messfront/pkg/uci/flag"
	"laptudirm.com/x/messfront/pkg/uci/message"
)

// defaultEnginePath is the child process spawned for interactive play
// when the caller does not override it with --engine.
const defaultEnginePath = "./engine"

// runInteractive starts a human-vs-engine game against a locally
// spawned engine process and hands control to a REPL of local
// meta-commands (play, board, resign, options, setoption, isready,
// quit) built on the
// same command/flag schema the wire protocol itself uses, rather than
// a bespoke parser for this one loop.
func runInteractive(args []string) error {
	enginePath := defaultEnginePath
	human := piece.White

	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "--engine":
			if i+1 >= len(args) {
				return fmt.Errorf("interactive: --engine requires a path")
			}
			i++
			enginePath = args[i]
		case "--black":
			human = piece.Black
		default:
			return fmt.Errorf("interactive: unrecognised argument %q", args[i])
		}
	}

	conn, err := session.DialProcess(enginePath)
	if err != nil {
		return fmt.Errorf("interactive: spawn engine %q: %w", enginePath, err)
	}

	client := uci.NewClient()
	observer := &cliObserver{client: &client}

	g, err := game.NewEngineGame(board.NewGame(), human, conn, observer, message.Go{MoveTime: intPtr(1000)})
	if err != nil {
		return fmt.Errorf("interactive: %w", err)
	}

	schema := newFrontendOptions(g)

	client.AddCommand(playCommand(g))
	client.AddCommand(boardCommand(g))
	client.AddCommand(resignCommand(g))
	client.AddCommand(optionsCommand(schema))
	client.AddCommand(setOptionCommand(schema))

	client.Println("playing as", human, "against", enginePath)
	return client.Start()
}

// cliObserver prints a game's progress to the client's own reply
// writer, so it interleaves correctly with the REPL's other output.
type cliObserver struct {
	client *uci.Client
}

func (o *cliObserver) OnMove(b *board.Board, m move.Move) {
	o.client.Println("move played:", m.String(), "| side to move:", b.SideToMove())
}

func (o *cliObserver) OnTerminal(b *board.Board, state board.TerminalState) {
	o.client.Println("game over:", state)
}

func (o *cliObserver) OnError(err error) {
	fmt.Fprintln(os.Stderr, "game error:", err)
}

// playCommand applies a long-algebraic move to the human's side of g.
// Usage: "play move e2e4".
func playCommand(g *game.EngineGame) cmd.Command {
	schema := flag.NewSchema()
	schema.Single("move")

	return cmd.Command{
		Name:  "play",
		Flags: schema,
		Run: func(i cmd.Interaction) error {
			value, ok := i.Values["move"]
			if !ok {
				return fmt.Errorf("play: missing required flag \"move\"")
			}
			uciMove, _ := value.Value.(string)

			from, to, promotion, err := move.ParseLongAlgebraic(uciMove)
			if err != nil {
				return err
			}

			mover := g.Board().PieceAt(from)
			return g.Play(move.Move{Piece: mover, From: from, To: to, Promotion: promotion})
		},
	}
}

// boardCommand prints the current board.
func boardCommand(g *game.EngineGame) cmd.Command {
	return cmd.Command{
		Name: "board",
		Run: func(i cmd.Interaction) error {
			i.Reply(g.Board())
			return nil
		},
	}
}

// resignCommand stops the engine session without ending the REPL.
func resignCommand(g *game.EngineGame) cmd.Command {
	return cmd.Command{
		Name: "resign",
		Run: func(i cmd.Interaction) error {
			g.Resign()
			i.Reply("resigned")
			return nil
		},
	}
}

func intPtr(n int) *int { return &n }
