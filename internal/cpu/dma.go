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

// I/O register offsets for the single modelled DMA channel, relative to
// the I/O region base 0x04000000.
const (
	ioBase        = 0x04000000
	dmaSrcOffset  = 0xD4
	dmaDstOffset  = 0xD8
	dmaCntOffset  = 0xDC
	dmaCtrlOffset = 0xDE
)

// dmaPending reports whether the control register's high bit (busy/done)
// is set, the condition the driver checks after every retired instruction.
func (c *CPU) dmaPending() bool {
	ctrl := c.Bus.ReadHalf(ioBase + dmaCtrlOffset)
	return ctrl&0x8000 != 0
}

// runDMA performs the one fixed-channel burst copy and clears the control
// register's busy bit, leaving the rest of it unchanged.
func (c *CPU) runDMA() {
	src := c.Bus.ReadWord(ioBase + dmaSrcOffset)
	dst := c.Bus.ReadWord(ioBase + dmaDstOffset)
	count := uint32(c.Bus.ReadHalf(ioBase + dmaCntOffset))
	ctrl := c.Bus.ReadHalf(ioBase + dmaCtrlOffset)

	unit := 2 + 2*((uint32(ctrl)>>10)&1)
	c.Bus.Copy(src, dst, count*unit)

	c.Bus.WriteHalf(ioBase+dmaCtrlOffset, ctrl&0x7FFF)
}
