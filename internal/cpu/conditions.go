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

// condition predicates, indexed by the 4-bit ARM condition field. Each
// predicate is evaluated against the current N/Z/C/V flags.
var conditionTable = [16]func(r *Registers) bool{
	func(r *Registers) bool { return r.Zero() },                                  // EQ
	func(r *Registers) bool { return !r.Zero() },                                 // NE
	func(r *Registers) bool { return r.Carry() },                                 // CS/HS
	func(r *Registers) bool { return !r.Carry() },                                // CC/LO
	func(r *Registers) bool { return r.Negative() },                              // MI
	func(r *Registers) bool { return !r.Negative() },                             // PL
	func(r *Registers) bool { return r.Overflow() },                              // VS
	func(r *Registers) bool { return !r.Overflow() },                             // VC
	func(r *Registers) bool { return r.Carry() && !r.Zero() },                    // HI
	func(r *Registers) bool { return !r.Carry() || r.Zero() },                    // LS
	func(r *Registers) bool { return r.Negative() == r.Overflow() },              // GE
	func(r *Registers) bool { return r.Negative() != r.Overflow() },              // LT
	func(r *Registers) bool { return !r.Zero() && r.Negative() == r.Overflow() }, // GT
	func(r *Registers) bool { return r.Zero() || r.Negative() != r.Overflow() },  // LE
	func(r *Registers) bool { return true },                                     // AL
	func(r *Registers) bool { return false },                                    // NV
}

// EvalCondition returns whether the 4-bit condition field cond currently
// holds.
func EvalCondition(r *Registers, cond uint32) bool {
	return conditionTable[cond&0xF](r)
}
