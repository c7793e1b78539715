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
	"testing"

	"github.com/dyrati/armdbg/internal/breakpoints"
)

// testBus is a minimal flat-memory Bus used only to exercise the
// interpreter in isolation from the real region-mirrored membus
// implementation; it has no mirroring, no breakpoints.
type testBus struct {
	mem map[uint32]byte
}

func newTestBus() *testBus { return &testBus{mem: make(map[uint32]byte)} }

func (b *testBus) ReadByte(addr uint32) uint8 { return b.mem[addr] }
func (b *testBus) ReadHalf(addr uint32) uint16 {
	return uint16(b.mem[addr]) | uint16(b.mem[addr+1])<<8
}
func (b *testBus) ReadWord(addr uint32) uint32 {
	return uint32(b.mem[addr]) | uint32(b.mem[addr+1])<<8 | uint32(b.mem[addr+2])<<16 | uint32(b.mem[addr+3])<<24
}
func (b *testBus) ReadByteSigned(addr uint32) uint32 {
	v := b.mem[addr]
	return uint32(int32(int8(v)))
}
func (b *testBus) ReadHalfSigned(addr uint32) uint32 {
	v := b.ReadHalf(addr)
	return uint32(int32(int16(v)))
}
func (b *testBus) WriteByte(addr uint32, v uint8) { b.mem[addr] = v }
func (b *testBus) WriteHalf(addr uint32, v uint16) {
	b.mem[addr] = byte(v)
	b.mem[addr+1] = byte(v >> 8)
}
func (b *testBus) WriteWord(addr uint32, v uint32) {
	b.mem[addr] = byte(v)
	b.mem[addr+1] = byte(v >> 8)
	b.mem[addr+2] = byte(v >> 16)
	b.mem[addr+3] = byte(v >> 24)
}
func (b *testBus) Copy(src, dst, size uint32) {
	for i := uint32(0); i < size; i++ {
		b.mem[dst+i] = b.mem[src+i]
	}
}
func (b *testBus) SetExecuting(bool)      {}
func (b *testBus) TakeBreakState() string { return "" }
func (b *testBus) ClearRAM()              { b.mem = make(map[uint32]byte) }

func newTestCPU() (*CPU, *testBus) {
	bus := newTestBus()
	c := &CPU{Bus: bus, Breakpoints: breakpoints.New()}
	return c, bus
}

func TestS1AddImmediate(t *testing.T) {
	c, bus := newTestCPU()
	_ = bus
	c.Regs.SetThumb(true)
	c.Regs[0] = 0xFFFFFFFE
	c.Regs[R15] = 0x08000002
	thumbImmediate(c, 0x3001)
	if c.Regs[0] != 0xFFFFFFFF {
		t.Fatalf("r0 = %#x, want 0xFFFFFFFF", c.Regs[0])
	}
	if !c.Regs.Negative() || c.Regs.Zero() || c.Regs.Carry() || c.Regs.Overflow() {
		t.Fatalf("flags wrong: N=%v Z=%v C=%v V=%v", c.Regs.Negative(), c.Regs.Zero(), c.Regs.Carry(), c.Regs.Overflow())
	}
}

func TestS2AddOverflow(t *testing.T) {
	c, _ := newTestCPU()
	c.Regs.SetThumb(true)
	c.Regs[0] = 0x7FFFFFFF
	thumbImmediate(c, 0x3001)
	if c.Regs[0] != 0x80000000 {
		t.Fatalf("r0 = %#x, want 0x80000000", c.Regs[0])
	}
	if !c.Regs.Negative() || c.Regs.Zero() || c.Regs.Carry() || !c.Regs.Overflow() {
		t.Fatalf("flags wrong: N=%v Z=%v C=%v V=%v", c.Regs.Negative(), c.Regs.Zero(), c.Regs.Carry(), c.Regs.Overflow())
	}
}

func TestS3LdrPcRelative(t *testing.T) {
	c, bus := newTestCPU()
	// (PC & ~2) + Word8*4 with r15=0x08000004 and Word8=2 lands on
	// 0x0800000C.
	bus.WriteWord(0x0800000C, 0xDEADBEEF)
	c.Regs.SetThumb(true)
	c.Regs[R15] = 0x08000004
	thumbLdrPc(c, 0x4802)
	if c.Regs[0] != 0xDEADBEEF {
		t.Fatalf("r0 = %#x, want 0xDEADBEEF", c.Regs[0])
	}
}

func TestS4PushPop(t *testing.T) {
	c, bus := newTestCPU()
	c.Regs.SetThumb(true)
	c.Regs[R13] = 0x03007F00
	c.Regs[0] = 1
	c.Regs[1] = 2
	c.Regs[R14] = 3

	thumbPushPop(c, 0xB503)
	if c.Regs[R13] != 0x03007EF4 {
		t.Fatalf("sp = %#x, want 0x03007EF4", c.Regs[R13])
	}
	if bus.ReadWord(0x03007EF4) != 1 || bus.ReadWord(0x03007EF8) != 2 || bus.ReadWord(0x03007EFC) != 3 {
		t.Fatalf("pushed memory wrong: %#x %#x %#x",
			bus.ReadWord(0x03007EF4), bus.ReadWord(0x03007EF8), bus.ReadWord(0x03007EFC))
	}

	c.Regs[0] = 0
	c.Regs[1] = 0
	thumbPushPop(c, 0xBD03)
	if c.Regs[0] != 1 || c.Regs[1] != 2 {
		t.Fatalf("popped registers wrong: r0=%d r1=%d", c.Regs[0], c.Regs[1])
	}
	if c.Regs[R15] != 4 {
		t.Fatalf("popped pc = %#x, want 4 (THUMB-aligned)", c.Regs[R15])
	}
}

func TestS5BLLongBranch(t *testing.T) {
	c, _ := newTestCPU()
	c.Regs.SetThumb(true)
	c.Regs[R15] = 0x08000004
	thumbBranchLink(c, 0xF000F800)
	if c.Regs[R14] != 0x08000005 {
		t.Fatalf("lr = %#x, want 0x08000005", c.Regs[R14])
	}
	if c.Regs[R15] != 0x08000008 {
		t.Fatalf("pc = %#x, want 0x08000008", c.Regs[R15])
	}
}

func TestBLLongBranchNonzeroOffset(t *testing.T) {
	c, _ := newTestCPU()
	c.Regs.SetThumb(true)
	c.Regs[R15] = 0x08000100
	// prefix 0xF001 (high bits), completing 0xF800 (low bits all zero):
	// an offset of +0x800 halfwords.
	thumbBranchLink(c, 0xF001F800)
	if c.Regs[R14] != 0x08000101 {
		t.Fatalf("lr = %#x, want 0x08000101", c.Regs[R14])
	}
	if c.Regs[R15] != 0x08001104 {
		t.Fatalf("pc = %#x, want 0x08001104", c.Regs[R15])
	}
}

func TestS6DMATrigger(t *testing.T) {
	c, bus := newTestCPU()
	bus.WriteWord(ioBase+dmaSrcOffset, 0x02000000)
	bus.WriteWord(ioBase+dmaDstOffset, 0x03000000)
	bus.WriteHalf(ioBase+dmaCntOffset, 4)
	bus.WriteHalf(ioBase+dmaCtrlOffset, 0x8400)

	for i := uint32(0); i < 16; i++ {
		bus.WriteByte(0x02000000+i, byte(i+1))
	}

	if !c.dmaPending() {
		t.Fatalf("dmaPending should be true with control high bit set")
	}
	c.runDMA()

	for i := uint32(0); i < 16; i++ {
		if bus.ReadByte(0x03000000+i) != byte(i+1) {
			t.Fatalf("byte %d not copied", i)
		}
	}
	if bus.ReadHalf(ioBase+dmaCtrlOffset) != 0x0400 {
		t.Fatalf("control high bit should be cleared, got %#x", bus.ReadHalf(ioBase+dmaCtrlOffset))
	}
}
