// This file is part of armdbg.
//
// armdbg is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// armdbg is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with armdbg.  If not, see <https://www.gnu.org/licenses/>.

// Command armdbg is the CLI entry point: it parses `<rom_path>
// [<savestate_path>]` plus the dashboard/preferences flags, wires the
// memory bus, breakpoint registry, CPU and shell together, and launches
// the REPL.
package main

import (
	"fmt"
	"os"

	cli "gopkg.in/urfave/cli.v2"

	"github.com/dyrati/armdbg/internal/breakpoints"
	"github.com/dyrati/armdbg/internal/config"
	"github.com/dyrati/armdbg/internal/cpu"
	"github.com/dyrati/armdbg/internal/membus"
	"github.com/dyrati/armdbg/internal/romfile"
	"github.com/dyrati/armdbg/internal/savestate"
	"github.com/dyrati/armdbg/internal/shell"
)

func main() {
	app := &cli.App{
		Name:      "armdbg",
		Usage:     "interactive ARM7TDMI instruction-level debugger",
		ArgsUsage: "<rom_path> [<savestate_path>]",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "stats", Usage: "start the live runtime statistics dashboard"},
			&cli.StringFlag{Name: "prefs", Value: "armdbg.toml", Usage: "preferences file location"},
		},
		Action: run,
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(c *cli.Context) error {
	prefsPath := c.String("prefs")
	prefs, err := config.Load(prefsPath)
	if err != nil {
		return err
	}

	bp := breakpoints.New()
	bus := membus.New(bp)
	core := cpu.New(bus, bp)

	dbg := shell.New(core, bus, bp, prefs, os.Stdout)

	if romPath := c.Args().Get(0); romPath != "" {
		data, err := romfile.Load(romPath)
		if err != nil {
			return err
		}
		bus.LoadROM(data)
		core.Regs.SetThumb(false)
		dbg.NoteROMLoaded(romPath)
	}

	if statePath := c.Args().Get(1); statePath != "" {
		data, err := romfile.Load(statePath)
		if err != nil {
			return err
		}
		if err := savestate.Load(data, core, bus); err != nil {
			return err
		}
	}

	if c.Bool("stats") || prefs.StatsDashboard {
		dbg.StartStats(":18066")
	}

	dbg.Run(os.Stdin, "> ")

	return config.Save(prefsPath, prefs)
}
