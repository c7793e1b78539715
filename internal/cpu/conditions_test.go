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

func TestConditionCompleteness(t *testing.T) {
	for nzcv := 0; nzcv < 16; nzcv++ {
		var r Registers
		r.SetNZCV(nzcv&8 != 0, nzcv&4 != 0, nzcv&2 != 0, nzcv&1 != 0)

		wantEQ := r.Zero()
		if EvalCondition(&r, 0) != wantEQ {
			t.Fatalf("EQ mismatch at nzcv=%04b", nzcv)
		}
		wantGE := r.Negative() == r.Overflow()
		if EvalCondition(&r, 10) != wantGE {
			t.Fatalf("GE mismatch at nzcv=%04b", nzcv)
		}
		if !EvalCondition(&r, 14) {
			t.Fatalf("AL must always be true")
		}
		if EvalCondition(&r, 15) {
			t.Fatalf("NV must always be false")
		}
	}
}
