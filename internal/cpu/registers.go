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

// Package cpu implements the ARMv4T instruction interpreter: the register
// file, condition codes, barrel shifter, the ARM and THUMB decoders and
// their executors, and the fetch/execute driver that ties them to a memory
// bus and a breakpoint registry.
package cpu

// register indices. 0-12 are general purpose, the rest have architectural
// names.
const (
	R13 = 13 // stack pointer
	R14 = 14 // link register
	R15 = 15 // program counter
	R16 = 16 // CPSR
	NumRegisters = 17
)

// CPSR bit positions. Only these five bits of the status register are
// modelled; banked registers for other processor modes do not exist here.
const (
	bitN = 31
	bitZ = 30
	bitC = 29
	bitV = 28
	bitT = 5
)

// Registers is the 17-word ARM register file: r0-r15 plus CPSR.
type Registers [NumRegisters]uint32

// reset assigns the documented ARMv4T/GBA power-on values.
func (r *Registers) reset() {
	for i := range r {
		r[i] = 0
	}
	r[0] = 0x08000000
	r[1] = 0x000000EA
	r[R13] = 0x03007F00
	r[R15] = 0x08000004
	r[R16] = 0x6000001F
}

func bit(v uint32, pos uint) bool { return v&(1<<pos) != 0 }

func setBit(v uint32, pos uint, on bool) uint32 {
	if on {
		return v | (1 << pos)
	}
	return v &^ (1 << pos)
}

// Negative reports CPSR.N.
func (r *Registers) Negative() bool { return bit(r[R16], bitN) }

// Zero reports CPSR.Z.
func (r *Registers) Zero() bool { return bit(r[R16], bitZ) }

// Carry reports CPSR.C.
func (r *Registers) Carry() bool { return bit(r[R16], bitC) }

// Overflow reports CPSR.V.
func (r *Registers) Overflow() bool { return bit(r[R16], bitV) }

// Thumb reports CPSR.T: true when the processor is fetching 16-bit THUMB
// instructions, false for 32-bit ARM instructions.
func (r *Registers) Thumb() bool { return bit(r[R16], bitT) }

// SetNZ writes N and Z from the top bit and zero-ness of result.
func (r *Registers) SetNZ(result uint32) {
	r[R16] = setBit(r[R16], bitN, result&0x80000000 != 0)
	r[R16] = setBit(r[R16], bitZ, result == 0)
}

// SetNZ64 writes N and Z from a 64-bit result: N reflects bit 63, Z
// reflects the full 64 bits being zero. Used by the wide multiply
// variants, which flag on the full result rather than the low word.
func (r *Registers) SetNZ64(result uint64) {
	r[R16] = setBit(r[R16], bitN, result&0x8000000000000000 != 0)
	r[R16] = setBit(r[R16], bitZ, result == 0)
}

// SetNZCV writes all four arithmetic flags at once.
func (r *Registers) SetNZCV(n, z, c, v bool) {
	r[R16] = setBit(r[R16], bitN, n)
	r[R16] = setBit(r[R16], bitZ, z)
	r[R16] = setBit(r[R16], bitC, c)
	r[R16] = setBit(r[R16], bitV, v)
}

// SetCarry writes C alone, leaving N, Z and V untouched.
func (r *Registers) SetCarry(c bool) {
	r[R16] = setBit(r[R16], bitC, c)
}

// SetThumb writes the T mode flag alone.
func (r *Registers) SetThumb(t bool) {
	r[R16] = setBit(r[R16], bitT, t)
}

// InstructionSize is 4 in ARM mode, 2 in THUMB mode.
func (r *Registers) InstructionSize() uint32 {
	if r.Thumb() {
		return 2
	}
	return 4
}

// String renders all 17 registers the way a "i" shell command would.
func (r *Registers) String() string {
	return formatRegisters(r)
}
