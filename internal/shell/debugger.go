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

// Package shell is the command-driven debug REPL fronting the core
// interpreter. It owns no CPU semantics of its own: every command either
// edits the breakpoint registry, steps the driver, or reads
// memory/registers for display.
package shell

import (
	"fmt"
	"io"

	"github.com/dyrati/armdbg/internal/breakpoints"
	"github.com/dyrati/armdbg/internal/config"
	"github.com/dyrati/armdbg/internal/cpu"
	"github.com/dyrati/armdbg/internal/logger"
	"github.com/dyrati/armdbg/internal/membus"
)

// Debugger wires the core (CPU, Bus, Breakpoints) to the command surface
// and holds the in-memory named snapshots the `save`/`load`/`ds` commands
// operate on.
type Debugger struct {
	CPU         *cpu.CPU
	Bus         *membus.Bus
	Breakpoints *breakpoints.Registry
	Prefs       config.Prefs

	Out io.Writer

	snapshots map[string]snapshot

	romPath   string
	prefsPath string

	// interruptRequested is polled by cmdContinue between instruction
	// batches so a Ctrl-C during `continue` pauses after the current
	// instruction retires rather than buffering into the next line read
	//.
	interruptRequested func() bool
}

type snapshot struct {
	regs  cpu.Registers
	wram  []byte
	iram  []byte
	io    []byte
	pal   []byte
	vram  []byte
	oam   []byte
}

const defaultSnapshotName = "PRIORSTATE"

// New builds a Debugger over an already-constructed core.
func New(c *cpu.CPU, bus *membus.Bus, bp *breakpoints.Registry, prefs config.Prefs, out io.Writer) *Debugger {
	return &Debugger{
		CPU:         c,
		Bus:         bus,
		Breakpoints: bp,
		Prefs:       prefs,
		Out:         out,
		snapshots:   make(map[string]snapshot),
	}
}

func (d *Debugger) printf(format string, args ...interface{}) {
	fmt.Fprintf(d.Out, format, args...)
}

// snapshotName resolves the optional argument to `save`/`load`/`ds` to the
// documented default when empty.
func snapshotName(name string) string {
	if name == "" {
		return defaultSnapshotName
	}
	return name
}

// takeSnapshot records the current RAM regions and registers under name.
func (d *Debugger) takeSnapshot(name string) {
	s := snapshot{
		regs: d.CPU.Regs,
		wram: append([]byte(nil), d.Bus.WRAM()...),
		iram: append([]byte(nil), d.Bus.IRAM()...),
		io:   append([]byte(nil), d.Bus.IO()...),
		pal:  append([]byte(nil), d.Bus.Palette()...),
		vram: append([]byte(nil), d.Bus.VRAM()...),
		oam:  append([]byte(nil), d.Bus.OAM()...),
	}
	d.snapshots[snapshotName(name)] = s
	logger.Logf("shell", "snapshot %q taken", snapshotName(name))
}

// restoreSnapshot restores name, reporting false if it was never taken.
func (d *Debugger) restoreSnapshot(name string) bool {
	s, ok := d.snapshots[snapshotName(name)]
	if !ok {
		return false
	}
	d.CPU.Regs = s.regs
	copy(d.Bus.WRAM(), s.wram)
	copy(d.Bus.IRAM(), s.iram)
	copy(d.Bus.IO(), s.io)
	copy(d.Bus.Palette(), s.pal)
	copy(d.Bus.VRAM(), s.vram)
	copy(d.Bus.OAM(), s.oam)
	return true
}

// dropSnapshot implements `ds`: discard a named snapshot.
func (d *Debugger) dropSnapshot(name string) {
	delete(d.snapshots, snapshotName(name))
}

// NoteROMLoaded records that a ROM was loaded outside the shell (by the
// CLI entry point at startup), so `continue` doesn't report "No ROM
// loaded" for a cartridge it never saw an `importrom` command for.
func (d *Debugger) NoteROMLoaded(path string) {
	d.romPath = path
}
