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

package membus

import (
	"testing"

	"github.com/dyrati/armdbg/internal/breakpoints"
)

func TestMirroring(t *testing.T) {
	bus := New(breakpoints.New())
	bus.WriteWord(0x02000100, 0xCAFEBABE)
	mirrored := 0x02000100 + regionSizes[regionWRAM]
	if bus.ReadWord(mirrored) != 0xCAFEBABE {
		t.Fatalf("write at base address should be visible at the mirrored address one region-size up")
	}
}

func TestRoundTrip(t *testing.T) {
	bus := New(breakpoints.New())
	bus.WriteByte(0x03000010, 0x42)
	if bus.ReadByte(0x03000010) != 0x42 {
		t.Fatalf("round-trip byte write/read failed")
	}
	bus.WriteHalf(0x03000020, 0xBEEF)
	if bus.ReadHalf(0x03000020) != 0xBEEF {
		t.Fatalf("round-trip half write/read failed")
	}
}

func TestUnmappedNibbleReadsZero(t *testing.T) {
	bus := New(breakpoints.New())
	if bus.ReadWord(0x01000000) != 0 {
		t.Fatalf("unmapped nibble 1 should read as zero")
	}
	bus.WriteWord(0x01000000, 0xFFFFFFFF)
	if bus.ReadWord(0x01000000) != 0 {
		t.Fatalf("writes to an unmapped nibble must be discarded")
	}
}

func TestSignExtension(t *testing.T) {
	bus := New(breakpoints.New())
	bus.WriteByte(0x03000000, 0x80)
	if bus.ReadByteSigned(0x03000000) != 0xFFFFFF80 {
		t.Fatalf("signed byte read should sign-extend, got %#x", bus.ReadByteSigned(0x03000000))
	}
	bus.WriteHalf(0x03000010, 0x8000)
	if bus.ReadHalfSigned(0x03000010) != 0xFFFF8000 {
		t.Fatalf("signed half read should sign-extend, got %#x", bus.ReadHalfSigned(0x03000010))
	}
}

func TestCopyWrapsIndependently(t *testing.T) {
	bus := New(breakpoints.New())
	ioSize := regionSizes[regionIO]
	bus.WriteByte(0x04000000, 0x11)
	bus.Copy(0x04000000, 0x04000000+ioSize-1, 2)
	if bus.ReadByte(0x04000000 + ioSize - 1) != 0x11 {
		t.Fatalf("copy destination at the last byte of the region should take the source byte")
	}
	if bus.ReadByte(0x04000000) != 0x00 {
		t.Fatalf("copy destination wrapping to byte 0 should overwrite it with the second source byte")
	}
}

func TestIOUnmappedAboveFirstPage(t *testing.T) {
	bus := New(breakpoints.New())
	bus.WriteWord(0x04000000, 0xCAFEBABE)
	if bus.ReadWord(0x04000000) != 0xCAFEBABE {
		t.Fatalf("I/O nibble on page 0 should be backed")
	}
	if bus.ReadWord(0x14000000) != 0 {
		t.Fatalf("I/O nibble on any page above the first should read as zero")
	}
	bus.WriteWord(0x14000000, 0xFFFFFFFF)
	if bus.ReadWord(0x04000000) != 0xCAFEBABE {
		t.Fatalf("a write to I/O on a higher page must not alias page 0's backing")
	}
}

func TestObservationGatedByExecuting(t *testing.T) {
	bp := breakpoints.New()
	bp.SetWrite(0x02000000)
	bus := New(bp)

	bus.WriteWord(0x02000000, 1)
	if bus.BreakState != "" {
		t.Fatalf("writes outside an executor call must not trip a watchpoint")
	}

	bus.SetExecuting(true)
	bus.WriteWord(0x02000000, 2)
	bus.SetExecuting(false)
	if bus.BreakState == "" {
		t.Fatalf("a write during Executing=true to a watched address should set BreakState")
	}
	if bus.TakeBreakState() == "" {
		t.Fatalf("TakeBreakState should return the recorded reason")
	}
	if bus.BreakState != "" {
		t.Fatalf("TakeBreakState should clear BreakState")
	}
}
