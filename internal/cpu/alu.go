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

// Compare adds a and b at wider-than-32-bit precision and derives all four
// NZCV flags from the addition. Subtraction and the carry-in variants
// needed by ADC/SBC/RSC/SUB/RSB are obtained by having the caller pass
// the appropriately negated/offset operand — a single primitive covers
// the whole ADD/SUB/CMP/CMN/RSB/ADC/SBC/RSC family.
func Compare(r *Registers, a, b uint32, s bool) uint32 {
	sum := uint64(a) + uint64(b)
	result := uint32(sum)

	n := result&0x80000000 != 0
	z := result == 0
	c := sum&0x100000000 != 0
	signA := a&0x80000000 != 0
	signB := b&0x80000000 != 0
	v := signA == signB && signA != n

	if s {
		r.SetNZCV(n, z, c, v)
	}
	return result
}

// Logic writes N and Z from result and leaves C and V untouched, per the
// ALU operations that don't produce a carry (AND/ORR/EOR/BIC/MOV/MVN/TST/
// TEQ, and MUL).
func Logic(r *Registers, result uint32, s bool) uint32 {
	if s {
		r.SetNZ(result)
	}
	return result
}

// negate returns the two's complement of v. Used to turn the single Compare
// primitive into subtraction: Compare(a, negate(b), s) computes a-b.
func negate(v uint32) uint32 {
	return -v
}
