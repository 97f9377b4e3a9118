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
	"strconv"
	"time"

	"github.com/schollz/progressbar/v3"
	"laptudirm.com/x/messfront/pkg/board"
)

// runPerft implements the "perft <fen> <depth>" subcommand: it counts
// leaf positions at depth plies from fen and reports nodes/sec,
// dividing the work across the root's legal moves so a progress bar
// has something to tick on.
func runPerft(args []string) error {
	if len(args) != 2 {
		return fmt.Errorf("usage: messfront perft <fen> <depth>")
	}

	fen, depthArg := args[0], args[1]
	depth, err := strconv.Atoi(depthArg)
	if err != nil {
		return fmt.Errorf("perft: invalid depth %q: %w", depthArg, err)
	}

	b, err := board.New(fen)
	if err != nil {
		return fmt.Errorf("perft: %w", err)
	}

	start := time.Now()

	if depth <= 0 {
		nodes := b.Perft(depth)
		reportPerft(nodes, time.Since(start))
		return nil
	}

	root := b.AllLegalMoves(b.SideToMove())
	bar := progressbar.NewOptions(
		len(root),
		progressbar.OptionSetElapsedTime(true),
		progressbar.OptionSetItsString("move"),
		progressbar.OptionSetPredictTime(true),
		progressbar.OptionSetRenderBlankState(true),
		progressbar.OptionShowCount(),
		progressbar.OptionShowIts(),
	)

	var nodes uint64
	for _, m := range root {
		if err := b.MakeMove(m); err != nil {
			panic("perft: generated move rejected by MakeMove: " + err.Error())
		}
		nodes += b.Perft(depth - 1)
		b.UndoMove()
		_ = bar.Add(1)
	}

	fmt.Println()
	reportPerft(nodes, time.Since(start))
	return nil
}

func reportPerft(nodes uint64, elapsed time.Duration) {
	fmt.Printf("nodes: %d\n", nodes)
	if elapsed > 0 {
		fmt.Printf("nps: %.0f\n", float64(nodes)/elapsed.Seconds())
	}
}
