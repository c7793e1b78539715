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

// Package flowcheck is a static function-flow analyser: it walks raw
// THUMB ROM bytes from an entry point, classifying BL/BX/POP{...,PC} to
// build a call tree without executing anything.
package flowcheck

// CallNode is one function in the discovered call tree.
type CallNode struct {
	Entry uint32
	Calls []*CallNode
}

const maxScan = 4096 // instructions scanned per function before giving up

// BuildCallTree walks rom (assumed THUMB code, byte-addressed, ROM base
// 0x08000000) from entry, following BL targets into child nodes and
// stopping a branch of the walk at BX or a POP that restores PC.
func BuildCallTree(rom []byte, entry uint32) *CallNode {
	seen := make(map[uint32]*CallNode)
	return buildNode(rom, entry, seen)
}

func buildNode(rom []byte, entry uint32, seen map[uint32]*CallNode) *CallNode {
	if node, ok := seen[entry]; ok {
		return node
	}
	node := &CallNode{Entry: entry}
	seen[entry] = node

	addr := entry
	for i := 0; i < maxScan; i++ {
		instr, ok := readHalf(rom, addr)
		if !ok {
			return node
		}

		if instr&0xF800 == 0xF000 {
			suffix, ok := readHalf(rom, addr+2)
			if !ok || suffix&0xF800 != 0xF800 {
				addr += 2
				continue
			}
			high := (instr & 0x7FF) ^ 0x400
			low := suffix & 0x7FF
			offset := int32(high<<11|low) - 0x200000
			target := uint32(int64(addr) + 4 + int64(offset)*2)
			node.Calls = append(node.Calls, buildNode(rom, target, seen))
			addr += 4
			continue
		}

		// BX Rs: unconditional return/tail-transfer out of this function.
		if instr&0xFF87 == 0x4700 {
			return node
		}

		// POP with bit 8 (PC) set: this function returns here.
		if instr&0xFF00 == 0xBD00 {
			return node
		}

		addr += 2
	}
	return node
}

func readHalf(rom []byte, addr uint32) (uint32, bool) {
	const romBase = 0x08000000
	if addr < romBase {
		return 0, false
	}
	off := addr - romBase
	if int(off)+1 >= len(rom) {
		return 0, false
	}
	return uint32(rom[off]) | uint32(rom[off+1])<<8, true
}
