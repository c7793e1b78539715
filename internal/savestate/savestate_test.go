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

package savestate

import (
	"testing"

	"github.com/dyrati/armdbg/internal/breakpoints"
	"github.com/dyrati/armdbg/internal/cpu"
	"github.com/dyrati/armdbg/internal/membus"
)

func TestMinLengthCoversIORegion(t *testing.T) {
	if minLength < sourceBase+rangeIO.end {
		t.Fatalf("minLength (%#x) must cover the I/O region's absolute end (%#x)", minLength, sourceBase+rangeIO.end)
	}
	if minLength != 0x8EFE7 {
		t.Fatalf("minLength = %#x, want 0x8EFE7", minLength)
	}
}

func TestSaveDoesNotPanicOnIORegion(t *testing.T) {
	bus := membus.New(breakpoints.New())
	c := cpu.New(bus, breakpoints.New())
	bus.WriteWord(0x04000000, 0xCAFEBABE) // touch I/O so Save's copy has something to read

	data, err := Save(c, bus)
	if err != nil {
		t.Fatalf("Save returned an error: %v", err)
	}
	if len(data) == 0 {
		t.Fatalf("Save returned no data")
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	bus := membus.New(breakpoints.New())
	c := cpu.New(bus, breakpoints.New())
	c.Regs[0] = 0x11223344
	bus.WriteWord(0x03000000, 0xDEADBEEF)

	data, err := Save(c, bus)
	if err != nil {
		t.Fatalf("Save returned an error: %v", err)
	}

	bus2 := membus.New(breakpoints.New())
	c2 := cpu.New(bus2, breakpoints.New())
	if err := Load(data, c2, bus2); err != nil {
		t.Fatalf("Load returned an error: %v", err)
	}
	if c2.Regs[0] != 0x11223344 {
		t.Fatalf("r0 = %#x, want 0x11223344", c2.Regs[0])
	}
	if bus2.ReadWord(0x03000000) != 0xDEADBEEF {
		t.Fatalf("IRAM round-trip failed, got %#x", bus2.ReadWord(0x03000000))
	}
}
