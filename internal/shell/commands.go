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

package shell

import (
	"os"
	"strconv"
	"strings"

	"github.com/dyrati/armdbg/internal/asm"
	"github.com/dyrati/armdbg/internal/curated"
	"github.com/dyrati/armdbg/internal/disasm"
	"github.com/dyrati/armdbg/internal/romfile"
	"github.com/dyrati/armdbg/internal/savestate"
)

// Dispatch parses and runs one command line. It never panics on
// malformed input; errors are printed and the prompt continues.
func (d *Debugger) Dispatch(line string) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return
	}
	cmd, args := fields[0], fields[1:]

	switch cmd {
	case "n":
		d.cmdNext(args)
	case "c":
		d.cmdContinue(args)
	case "b":
		d.cmdBreak(args, d.Breakpoints.SetExecute)
	case "bw":
		d.cmdBreak(args, func(addr uint32) {
			d.Breakpoints.SetWrite(addr)
			if d.Prefs.MirrorWatchToExecute {
				d.Breakpoints.SetExecute(addr)
			}
		})
	case "br":
		d.cmdBreak(args, func(addr uint32) {
			d.Breakpoints.SetRead(addr)
			if d.Prefs.MirrorWatchToExecute {
				d.Breakpoints.SetExecute(addr)
			}
		})
	case "bc":
		d.cmdBreakCondition(args)
	case "d":
		d.cmdClear(args, d.Breakpoints.ClearExecute, d.Breakpoints.ClearAllExecute)
	case "dw":
		d.cmdClear(args, d.Breakpoints.ClearWrite, d.Breakpoints.ClearAllWrite)
	case "dr":
		d.cmdClear(args, d.Breakpoints.ClearRead, d.Breakpoints.ClearAllRead)
	case "dc":
		d.cmdClearCondition(args)
	case "i":
		d.printf("%s\n", d.CPU.Regs.String())
	case "m":
		d.cmdMemory(args)
	case "dist":
		d.cmdDisassemble(args, true)
	case "disa":
		d.cmdDisassemble(args, false)
	case "importrom":
		d.cmdImportROM(args)
	case "importstate":
		d.cmdImportState(args)
	case "exportstate":
		d.cmdExportState(args)
	case "exportrom":
		d.cmdExportROM(args)
	case "save":
		d.takeSnapshot(argOrEmpty(args))
	case "load":
		if !d.restoreSnapshot(argOrEmpty(args)) {
			d.printf("no such snapshot\n")
		}
	case "ds":
		d.dropSnapshot(argOrEmpty(args))
	case "reset":
		d.CPU.Reset()
	case "asm":
		d.cmdAssemble(args)
	case "dot":
		if len(args) == 0 {
			d.printf("usage: dot <path>\n")
			return
		}
		if err := d.cmdDot(args[0]); err != nil {
			d.printf("%s\n", err)
		}
	default:
		d.printf("unknown command %q\n", cmd)
	}
}

func argOrEmpty(args []string) string {
	if len(args) == 0 {
		return ""
	}
	return args[0]
}

func parseAddr(tok string) (uint32, error) {
	tok = strings.TrimPrefix(strings.ToLower(tok), "0x")
	v, err := strconv.ParseUint(tok, 16, 32)
	if err != nil {
		return 0, curated.Errorf("shell: bad address %q: %w", tok, err)
	}
	return uint32(v), nil
}

func (d *Debugger) cmdNext(args []string) {
	count := int64(1)
	if len(args) > 0 {
		if n, err := strconv.ParseInt(args[0], 10, 64); err == nil {
			count = n
		}
	}
	d.CPU.Run(count)
	if d.CPU.BreakState != "" {
		d.printf("%s\n", d.CPU.BreakState)
	}
	d.printf("%s\n", d.CPU.Regs.String())
}

// continueBatch bounds how many instructions run between interrupt polls,
// so a `c 0` (forever) still notices Ctrl-C promptly.
const continueBatch = 1024

func (d *Debugger) cmdContinue(args []string) {
	limit := int64(0)
	if len(args) > 0 {
		if n, err := strconv.ParseInt(args[0], 10, 64); err == nil {
			limit = n
		}
	}
	if d.romPath == "" {
		d.printf("No ROM loaded\n")
		return
	}

	var executed int64
	for {
		batch := int64(continueBatch)
		if limit > 0 {
			remaining := limit - executed
			if remaining <= 0 {
				break
			}
			if remaining < batch {
				batch = remaining
			}
		}
		executed += d.CPU.Run(batch)
		if d.CPU.BreakState != "" {
			break
		}
		if d.interruptRequested != nil && d.interruptRequested() {
			break
		}
	}

	if d.CPU.BreakState != "" {
		d.printf("%s\n", d.CPU.BreakState)
	}
	d.printf("%s\n", d.CPU.Regs.String())
}

func (d *Debugger) cmdBreak(args []string, set func(uint32)) {
	if len(args) == 0 {
		d.printf("usage: b[w|r] <addr>\n")
		return
	}
	addr, err := parseAddr(args[0])
	if err != nil {
		d.printf("%s\n", err)
		return
	}
	set(addr)
}

func (d *Debugger) cmdBreakCondition(args []string) {
	if len(args) == 0 {
		d.printf("usage: bc <expr>\n")
		return
	}
	expr := strings.Join(args, " ")
	eval, err := compileCondition(expr, d.CPU, d.Bus)
	if err != nil {
		d.printf("%s\n", err)
		return
	}
	d.Breakpoints.AddCondition(expr, eval)
}

func (d *Debugger) cmdClear(args []string, clearOne func(uint32), clearAll func()) {
	if len(args) == 0 {
		return
	}
	if args[0] == "all" {
		clearAll()
		return
	}
	addr, err := parseAddr(args[0])
	if err != nil {
		d.printf("%s\n", err)
		return
	}
	clearOne(addr)
}

func (d *Debugger) cmdClearCondition(args []string) {
	if len(args) == 0 {
		return
	}
	if args[0] == "all" {
		d.Breakpoints.ClearAllConditions()
		return
	}
	i, err := strconv.Atoi(args[0])
	if err != nil {
		d.printf("bad condition index %q\n", args[0])
		return
	}
	d.Breakpoints.ClearCondition(i)
}

func (d *Debugger) cmdMemory(args []string) {
	if len(args) == 0 {
		d.printf("usage: m <addr> [count] [size]\n")
		return
	}
	addr, err := parseAddr(args[0])
	if err != nil {
		d.printf("%s\n", err)
		return
	}
	count := 16
	if len(args) > 1 {
		if n, err := strconv.Atoi(args[1]); err == nil {
			count = n
		}
	}
	size := 1
	if len(args) > 2 {
		if n, err := strconv.Atoi(args[2]); err == nil {
			size = n
		}
	}
	d.dumpMemory(addr, count, size)
}

func (d *Debugger) dumpMemory(addr uint32, count, size int) {
	var hexPart, asciiPart strings.Builder
	for i := 0; i < count; i++ {
		a := addr + uint32(i*size)
		var v uint32
		switch size {
		case 2:
			v = uint32(d.Bus.ReadHalf(a))
		case 4:
			v = d.Bus.ReadWord(a)
		default:
			v = uint32(d.Bus.ReadByte(a))
		}
		hexPart.WriteString(hexPad(v, size))
		hexPart.WriteByte(' ')
		for s := 0; s < size; s++ {
			b := byte(v >> (8 * s))
			if b >= 0x20 && b < 0x7F {
				asciiPart.WriteByte(b)
			} else {
				asciiPart.WriteByte('.')
			}
		}
	}
	d.printf("%08X: %s %s\n", addr, hexPart.String(), asciiPart.String())
}

func hexPad(v uint32, size int) string {
	digits := size * 2
	s := strconv.FormatUint(uint64(v), 16)
	for len(s) < digits {
		s = "0" + s
	}
	return s
}

func (d *Debugger) cmdDisassemble(args []string, thumb bool) {
	if len(args) == 0 {
		d.printf("usage: dist|disa <addr> [n]\n")
		return
	}
	addr, err := parseAddr(args[0])
	if err != nil {
		d.printf("%s\n", err)
		return
	}
	n := 1
	if len(args) > 1 {
		if v, err := strconv.Atoi(args[1]); err == nil {
			n = v
		}
	}
	size := uint32(4)
	if thumb {
		size = 2
	}
	for i := 0; i < n; i++ {
		a := addr + uint32(i)*size
		var opcode uint32
		if thumb {
			opcode = uint32(d.Bus.ReadHalf(a))
		} else {
			opcode = d.Bus.ReadWord(a)
		}
		d.printf("%08X: %s\n", a, disasm.Decode(opcode, thumb, a, d.Bus))
	}
}

func (d *Debugger) cmdAssemble(args []string) {
	if len(args) == 0 {
		d.printf("usage: asm <addr> <instruction...>\n")
		return
	}
	addr, err := parseAddr(args[0])
	if err != nil {
		d.printf("%s\n", err)
		return
	}
	line := strings.Join(args[1:], " ")
	value, size, err := asm.Assemble(line, addr)
	if err != nil {
		d.printf("%s\n", err)
		return
	}
	if size == 2 {
		d.Bus.WriteHalf(addr, uint16(value))
	} else {
		d.Bus.WriteHalf(addr, uint16(value>>16))
		d.Bus.WriteHalf(addr+2, uint16(value))
	}
}

func (d *Debugger) cmdImportROM(args []string) {
	if len(args) == 0 {
		d.printf("usage: importrom <path>\n")
		return
	}
	data, err := romfile.Load(args[0])
	if err != nil {
		d.printf("%s\n", err)
		return
	}
	d.Bus.LoadROM(data)
	d.CPU.Regs.SetThumb(false)
	d.romPath = args[0]
}

func (d *Debugger) cmdExportROM(args []string) {
	if len(args) == 0 {
		d.printf("usage: exportrom <path>\n")
		return
	}
	if err := os.WriteFile(args[0], d.Bus.ROM(), 0644); err != nil {
		d.printf("%s\n", curated.Errorf("shell: write %q: %w", args[0], err))
	}
}

func (d *Debugger) cmdImportState(args []string) {
	if len(args) == 0 {
		d.printf("usage: importstate <path>\n")
		return
	}
	data, err := romfile.Load(args[0])
	if err != nil {
		d.printf("%s\n", err)
		return
	}
	if err := savestate.Load(data, d.CPU, d.Bus); err != nil {
		d.printf("%s\n", err)
	}
}

func (d *Debugger) cmdExportState(args []string) {
	if len(args) == 0 {
		d.printf("usage: exportstate <path>\n")
		return
	}
	data, err := savestate.Save(d.CPU, d.Bus)
	if err != nil {
		d.printf("%s\n", err)
		return
	}
	if err := os.WriteFile(args[0], data, 0644); err != nil {
		d.printf("%s\n", curated.Errorf("shell: write %q: %w", args[0], err))
	}
}
