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

package cpu

import (
	"fmt"
	"strings"

	"github.com/dyrati/armdbg/internal/breakpoints"
	"github.com/dyrati/armdbg/internal/logger"
)

// CPU ties the register file to a Bus and a breakpoint Registry and drives
// the fetch/execute loop.
type CPU struct {
	Regs        Registers
	Bus         Bus
	Breakpoints *breakpoints.Registry

	// BreakState carries the reason the most recently stepped instruction
	// tripped a breakpoint, or "" if it didn't. Step overwrites it on every
	// instruction; the shell reads it after a run.
	BreakState string

	InstructionCount uint64
}

// New wires a CPU to its bus and breakpoint registry and resets it.
func New(bus Bus, bp *breakpoints.Registry) *CPU {
	c := &CPU{Bus: bus, Breakpoints: bp}
	c.Reset()
	return c
}

// Reset restores power-on register values and clears all RAM regions
//. The loaded ROM, if any, is left untouched.
func (c *CPU) Reset() {
	c.Regs.reset()
	c.Bus.ClearRAM()
	c.BreakState = ""
	c.InstructionCount = 0
}

// Step fetches, decodes and executes exactly one instruction.
func (c *CPU) Step() {
	size := c.Regs.InstructionSize()
	addr := (c.Regs[R15] - size) &^ (size - 1)

	var breakReason string
	if c.Breakpoints.HasExecute(addr) {
		breakReason = fmt.Sprintf("BreakPoint: $%08X", addr)
		logger.Logf("cpu", "execute break at %08X", addr)
	}

	var instr uint32
	if c.Regs.Thumb() {
		instr = uint32(c.Bus.ReadHalf(addr))
		// A BL/BLX prefix halfword (11110xxxxxxxxxxx) fuses with the
		// following halfword into one 32-bit branch-and-link; the decoder
		// recognises the fused value directly since it is numerically
		// larger than every entry in the boundary table.
		if instr&0xF800 == 0xF000 {
			suffix := uint32(c.Bus.ReadHalf(addr + 2))
			instr = (instr << 16) | suffix
		}
	} else {
		instr = c.Bus.ReadWord(addr)
	}

	// r15 always advances by the architectural instruction size, even for
	// a fused BL/BLX pair: the executor itself accounts for the extra
	// halfword.
	c.Regs[R15] += size

	c.Bus.SetExecuting(true)
	if c.Regs.Thumb() {
		class := classifyThumb(instr)
		thumbFuncs[class](c, instr)
	} else {
		cond := instr >> 28
		if EvalCondition(&c.Regs, cond) {
			exec := navigateArmTree(instr)
			exec(c, instr)
		}
	}
	c.Bus.SetExecuting(false)

	if watch := c.Bus.TakeBreakState(); watch != "" {
		breakReason = watch
	}

	if c.dmaPending() {
		c.runDMA()
	}

	for _, cond := range c.Breakpoints.Conditions() {
		if cond.Eval() {
			breakReason = fmt.Sprintf("Condition: %s", cond.Source)
			break
		}
	}

	c.BreakState = breakReason
	c.InstructionCount++
}

// Run steps the CPU until a breakpoint trips or limit instructions have
// retired (limit <= 0 runs unbounded). It returns the number of
// instructions actually executed.
func (c *CPU) Run(limit int64) int64 {
	var n int64
	for limit <= 0 || n < limit {
		c.Step()
		n++
		if c.BreakState != "" {
			break
		}
	}
	return n
}

var registerNames = [NumRegisters]string{
	"r0", "r1", "r2", "r3", "r4", "r5", "r6", "r7",
	"r8", "r9", "r10", "r11", "r12", "sp", "lr", "pc", "cpsr",
}

// formatRegisters renders all 17 registers as hex, eight per two lines,
// matching the `i` shell command's register dump.
func formatRegisters(r *Registers) string {
	var s strings.Builder
	for i := 0; i < NumRegisters; i++ {
		fmt.Fprintf(&s, "%-5s %08X", registerNames[i], r[i])
		if i != NumRegisters-1 {
			if (i+1)%4 == 0 {
				s.WriteByte('\n')
			} else {
				s.WriteString("  ")
			}
		}
	}
	s.WriteString(fmt.Sprintf("\nflags  N=%d Z=%d C=%d V=%d T=%d",
		boolToInt(r.Negative()), boolToInt(r.Zero()), boolToInt(r.Carry()),
		boolToInt(r.Overflow()), boolToInt(r.Thumb())))
	return s.String()
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
