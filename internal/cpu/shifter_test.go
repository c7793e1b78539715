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

func TestShiftLSLZeroIsIdentity(t *testing.T) {
	result, carry := Shift(0x12345678, 0, LSL, true, true)
	if result != 0x12345678 || carry != true {
		t.Fatalf("LSL#0 must be identity with carry unaffected, got %#x carry=%v", result, carry)
	}
}

func TestShiftLSL32(t *testing.T) {
	result, carry := Shift(0xFFFFFFFF, 32, LSL, false, false)
	if result != 0 {
		t.Fatalf("LSL by 32 (register form) should produce 0, got %#x", result)
	}
	if !carry {
		t.Fatalf("carry out of LSL by 32 should be bit 0 of v")
	}
}

func TestShiftASRAllOnesOrZero(t *testing.T) {
	result, _ := Shift(0x80000000, 0, ASR, true, false)
	if result != 0xFFFFFFFF {
		t.Fatalf("ASR#0 (ASR#32) on negative value should give all ones, got %#x", result)
	}
	result, _ = Shift(0x7FFFFFFF, 0, ASR, true, false)
	if result != 0 {
		t.Fatalf("ASR#0 (ASR#32) on positive value should give all zeros, got %#x", result)
	}
}

func TestShiftRRX(t *testing.T) {
	result, carryOut := Shift(0x00000002, 0, ROR, true, true)
	if result != 0x80000001 {
		t.Fatalf("RRX should reinject old carry into bit 31, got %#x", result)
	}
	if carryOut {
		t.Fatalf("RRX carry out should be bit 0 of v (0), got true")
	}
}

func TestShiftLSR32CarryIsTopBit(t *testing.T) {
	result, carry := Shift(0x80000000, 0, LSR, true, false)
	if result != 0 || !carry {
		t.Fatalf("LSR#0 (LSR#32) should give 0 with carry = top bit, got %#x carry=%v", result, carry)
	}
}
