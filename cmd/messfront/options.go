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

	"laptudirm.com/x/messfront/internal/game"
	"laptudirm.com/x/messfront/pkg/uci/cmd"
	"laptudirm.com/x/messfront/pkg/uci/flag"
	"laptudirm.com/x/messfront/pkg/uci/message"
	"laptudirm.com/x/messfront/pkg/uci/option"
)

// frontendOptions are messfront's own local settings, as distinct from
// an external engine's options (pkg/uci/message.Option, which this
// front end only ever parses off the wire and never declares). They
// are exposed through the same option.Schema the wire protocol's
// engine-side "option" preamble would use, reusing its Type/Store
// machinery for this front end's own settings rather than the moves
// it sends on.
func newFrontendOptions(g *game.EngineGame) option.Schema {
	schema := option.NewSchema()

	moveTimeMs := 1000
	schema.AddOption("MoveTime", &option.Spin{
		Default: moveTimeMs,
		Min:     50,
		Max:     600000,
		Storage: func(v int) error {
			moveTimeMs = v
			ms := v
			g.SetSearch(message.Go{MoveTime: &ms})
			return nil
		},
	})

	if err := schema.SetDefaults(); err != nil {
		panic("interactive: front-end option defaults: " + err.Error())
	}

	return schema
}

// optionsCommand lists the front end's local settings in the same
// "option name ... type ..." shape an engine would use to declare its
// own, so a user already used to reading a UCI preamble recognises it.
func optionsCommand(schema option.Schema) cmd.Command {
	return cmd.Command{
		Name: "options",
		Run: func(i cmd.Interaction) error {
			i.Reply(schema.String())
			return nil
		},
	}
}

// setOptionCommand lets the REPL change a front-end setting, mirroring
// the wire protocol's "setoption name <n> value <v>" in shape, not in
// actual dependency: this never leaves the process.
func setOptionCommand(schema option.Schema) cmd.Command {
	schemaFlags := flag.NewSchema()
	schemaFlags.Single("name")
	schemaFlags.Single("value")

	return cmd.Command{
		Name:  "setoption",
		Flags: schemaFlags,
		Run: func(i cmd.Interaction) error {
			nameValue, ok := i.Values["name"]
			if !ok {
				return fmt.Errorf("setoption: missing required flag \"name\"")
			}
			valueValue, ok := i.Values["value"]
			if !ok {
				return fmt.Errorf("setoption: missing required flag \"value\"")
			}

			name, _ := nameValue.Value.(string)
			value, _ := valueValue.Value.(string)
			return schema.SetOption(name, []string{value})
		},
	}
}
