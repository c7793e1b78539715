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

import "testing"

func TestRotateImmediateZeroIsIdentity(t *testing.T) {
	if rotateImmediate(0xAB, 0) != 0xAB {
		t.Fatalf("rotate of 0 must be a no-op, not RRX")
	}
}

func TestRotateImmediateNonzero(t *testing.T) {
	// 0xFF rotated right by 4 should move the low nibble into bits 31-28.
	got := rotateImmediate(0xFF, 4)
	want := uint32(0xF000000F)
	if got != want {
		t.Fatalf("rotateImmediate(0xFF,4) = %#x, want %#x", got, want)
	}
}

func TestNavigateArmTreeDataprocess(t *testing.T) {
	// AND r0, r1, r2 (cond always, imm=0, opcode=0000, S=0)
	instr := uint32(0xE0010002)
	exec := navigateArmTree(instr)
	c, _ := newTestCPU()
	c.Regs[1] = 0xFF00FF00
	c.Regs[2] = 0x0F0F0F0F
	exec(c, instr)
	if c.Regs[0] != 0x0F000F00 {
		t.Fatalf("r0 = %#x, want 0x0F000F00", c.Regs[0])
	}
}

func TestMultiplyFlagRule32Bit(t *testing.T) {
	c, _ := newTestCPU()
	// MUL r0, r1, r2, S=1: opcode bits select MUL, s set.
	c.Regs[1] = 0x80000000
	c.Regs[2] = 1
	instr := uint32(0xE0100291) // MULS r0, r1, r2
	multiply(c, instr)
	if c.Regs[0] != 0x80000000 {
		t.Fatalf("r0 = %#x, want 0x80000000", c.Regs[0])
	}
	if !c.Regs.Negative() {
		t.Fatalf("32-bit multiply flag rule: N should reflect bit 31 of the 32-bit result")
	}
}

func TestMultiplyFlagRuleWide(t *testing.T) {
	c, _ := newTestCPU()
	// UMULLS r2,r3,r0,r1: Rm=r0, Rs=r1, RdLo=r2, RdHi=r3, S=1.
	c.Regs[0] = 0xFFFFFFFF
	c.Regs[1] = 0xFFFFFFFF
	instr := uint32(0xE0932190)
	multiply(c, instr)
	if c.Regs[3] != 0xFFFFFFFE || c.Regs[2] != 0x00000001 {
		t.Fatalf("r3:r2 = %#x:%#x, want 0xFFFFFFFE:0x00000001", c.Regs[3], c.Regs[2])
	}
	if !c.Regs.Negative() {
		t.Fatalf("64-bit multiply flag rule: N should reflect bit 63 of the 64-bit result, not bit 31 of RdLo")
	}
}

func TestSWPLeavesBaseRegisterUnmodified(t *testing.T) {
	c, bus := newTestCPU()
	// SWP r2, r3, [r1]: Rn=r1 (base, unaddressed), Rd=r2, Rm=r3.
	instr := uint32(0xE1012093)
	c.Regs[1] = 0x03000010
	c.Regs[2] = 0
	c.Regs[3] = 0xAABBCCDD
	bus.WriteWord(0x03000010, 0x11223344)

	dataTransfer(c, instr)

	if c.Regs[1] != 0x03000010 {
		t.Fatalf("SWP has no addressing mode of its own; Rn changed to %#x", c.Regs[1])
	}
	if c.Regs[2] != 0x11223344 {
		t.Fatalf("Rd should receive the prior memory value, got %#x", c.Regs[2])
	}
	if bus.ReadWord(0x03000010) != 0xAABBCCDD {
		t.Fatalf("memory should receive Rm's prior value, got %#x", bus.ReadWord(0x03000010))
	}
}

func TestCLZ(t *testing.T) {
	c, _ := newTestCPU()
	c.Regs[0] = 0x00000001
	instr := uint32(0xE16F1F10) // CLZ r1, r0
	armClz(c, instr)
	if c.Regs[1] != 31 {
		t.Fatalf("clz(1) = %d, want 31", c.Regs[1])
	}
	c.Regs[0] = 0
	armClz(c, instr)
	if c.Regs[1] != 32 {
		t.Fatalf("clz(0) = %d, want 32", c.Regs[1])
	}
}
