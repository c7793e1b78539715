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

// region identifies one of the seven backed memory regions addressed by
// the high nibble addr[27:24]. Nibble 1 is always unmapped; nibble 4 (I/O)
// is additionally unmapped on any page above the first, a rule the caller
// enforces since this nibble-only representation can't see the page.
type region int

const (
	regionBIOS region = iota
	regionWRAM
	regionIRAM
	regionIO
	regionPalette
	regionVRAM
	regionOAM
	regionCount
)

// regionIONibble is the high nibble backing the I/O region, the one region
// that does not repeat above the first page. Callers resolving a full
// address must reject this nibble themselves when addr[31:28] != 0; this
// package only ever sees the nibble, not the page.
const regionIONibble = 4

// regionSizes holds the fixed backing size of each region in bytes.
// Every access mirrors within this size.
var regionSizes = [regionCount]uint32{
	regionBIOS:    16 * 1024,
	regionWRAM:    256 * 1024,
	regionIRAM:    32 * 1024,
	regionIO:      1024,
	regionPalette: 1024,
	regionVRAM:    96 * 1024,
	regionOAM:     1024,
}

// nibbleToRegion maps addr[27:24] to a backed region, or (0,false) for
// unmapped nibbles and for ROM (nibbles 8-F, handled separately since it
// has variable, possibly absent, backing).
func nibbleToRegion(nibble uint32) (region, bool) {
	switch nibble {
	case 0:
		return regionBIOS, true
	case 2:
		return regionWRAM, true
	case 3:
		return regionIRAM, true
	case 4:
		return regionIO, true
	case 5:
		return regionPalette, true
	case 6:
		return regionVRAM, true
	case 7:
		return regionOAM, true
	default:
		return 0, false
	}
}
