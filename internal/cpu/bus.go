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

// Bus is the memory-side contract the interpreter needs: addressed,
// breakpoint-aware byte/halfword/word access. internal/membus implements
// this; the interpreter never assumes anything about region layout or
// mirroring, it only calls through this interface.
type Bus interface {
	ReadWord(addr uint32) uint32
	ReadHalf(addr uint32) uint16
	ReadByte(addr uint32) uint8
	ReadHalfSigned(addr uint32) uint32
	ReadByteSigned(addr uint32) uint32
	WriteWord(addr uint32, v uint32)
	WriteHalf(addr uint32, v uint16)
	WriteByte(addr uint32, v uint8)
	Copy(src, dst uint32, size uint32)

	// SetExecuting and TakeBreakState let the driver scope watchpoint
	// observation to a single executor call.
	SetExecuting(executing bool)
	TakeBreakState() string

	ClearRAM()
}
