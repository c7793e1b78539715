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

// Package disasm turns a raw opcode, the processor mode and the address
// it sits at into a mnemonic string. It is intentionally not exhaustive
// over every ARMv4T encoding; it covers enough of the instruction set to
// label the `disa`/`dist` shell commands.
package disasm

import "fmt"

// MemReader is the narrow slice of the memory bus the disassembler needs,
// to annotate a PC-relative load with the value it would read.
type MemReader interface {
	ReadWord(addr uint32) uint32
}

var condNames = [16]string{
	"eq", "ne", "cs", "cc", "mi", "pl", "vs", "vc",
	"hi", "ls", "ge", "lt", "gt", "le", "", "nv",
}

// Decode renders opcode as a mnemonic line. thumb selects the 16-bit
// encoding; pc is the address the instruction was fetched from (not the
// pipeline-ahead value). mem, if non-nil, is consulted to annotate PC
// relative loads with the value they would fetch.
func Decode(opcode uint32, thumb bool, pc uint32, mem MemReader) string {
	if thumb {
		return decodeThumb(opcode, pc, mem)
	}
	return decodeARM(opcode, pc, mem)
}

func decodeARM(instr uint32, pc uint32, mem MemReader) string {
	cond := condNames[(instr>>28)&0xF]

	switch {
	case instr&0x0FFFFFF0 == 0x012FFF10:
		return fmt.Sprintf("bx%s r%d", cond, instr&0xF)
	case instr&0x0E000000 == 0x0A000000:
		link := ""
		if instr&(1<<24) != 0 {
			link = "l"
		}
		offset := int32(instr&0xFFFFFF) << 8 >> 8
		target := uint32(int64(pc) + 8 + int64(offset)*4)
		return fmt.Sprintf("b%s%s 0x%08X", link, cond, target)
	case instr&0x0FC000F0 == 0x00000090:
		return fmt.Sprintf("mul%s r%d, r%d, r%d", cond, (instr>>16)&0xF, instr&0xF, (instr>>8)&0xF)
	case instr&0x0C000000 == 0x04000000:
		op := "str"
		if instr&(1<<20) != 0 {
			op = "ldr"
		}
		if instr&(1<<22) != 0 {
			op += "b"
		}
		rd := (instr >> 12) & 0xF
		rn := (instr >> 16) & 0xF
		return fmt.Sprintf("%s%s r%d, [r%d]", op, cond, rd, rn)
	case instr&0x0C000000 == 0x00000000:
		return dataprocessMnemonic(instr, cond)
	}
	return fmt.Sprintf(".word 0x%08X", instr)
}

var dpNames = [16]string{
	"and", "eor", "sub", "rsb", "add", "adc", "sbc", "rsc",
	"tst", "teq", "cmp", "cmn", "orr", "mov", "bic", "mvn",
}

func dataprocessMnemonic(instr uint32, cond string) string {
	op := dpNames[(instr>>21)&0xF]
	s := ""
	if instr&(1<<20) != 0 {
		s = "s"
	}
	rd := (instr >> 12) & 0xF
	rn := (instr >> 16) & 0xF
	if instr&(1<<25) != 0 {
		imm := instr & 0xFF
		rot := (instr >> 8) & 0xF
		return fmt.Sprintf("%s%s%s r%d, r%d, #0x%X", op, cond, s, rd, rn, imm<<(32-2*rot)|imm>>(2*rot))
	}
	rm := instr & 0xF
	return fmt.Sprintf("%s%s%s r%d, r%d, r%d", op, cond, s, rd, rn, rm)
}

func decodeThumb(instr uint32, pc uint32, mem MemReader) string {
	switch {
	case instr > 0xFFFF && (instr>>16)&0xF800 == 0xF000:
		// fused BL/BLX pair, as the driver's fetch upgrade produces it.
		return "bl <fused>"
	case instr&0xF800 == 0x1800:
		op := "add"
		if instr&(1<<9) != 0 {
			op = "sub"
		}
		rd := instr & 7
		rs := (instr >> 3) & 7
		return fmt.Sprintf("%s r%d, r%d, r%d", op, rd, rs, (instr>>6)&7)
	case instr&0xE000 == 0x2000:
		ops := [4]string{"mov", "cmp", "add", "sub"}
		op := ops[(instr>>11)&3]
		rd := (instr >> 8) & 7
		return fmt.Sprintf("%s r%d, #0x%02X", op, rd, instr&0xFF)
	case instr&0xF800 == 0x4800:
		rd := (instr >> 8) & 7
		imm := instr & 0xFF
		addr := (pc &^ 2) + imm*4
		if mem != nil {
			return fmt.Sprintf("ldr r%d, [pc, #0x%X] ; =0x%08X", rd, imm*4, mem.ReadWord(addr))
		}
		return fmt.Sprintf("ldr r%d, [pc, #0x%X]", rd, imm*4)
	case instr&0xFF00 == 0xB000:
		sign := ""
		if instr&(1<<7) != 0 {
			sign = "-"
		}
		return fmt.Sprintf("add sp, #%s0x%X", sign, (instr&0x7F)*4)
	case instr&0xF600 == 0xB400:
		op := "push"
		if instr&(1<<11) != 0 {
			op = "pop"
		}
		return fmt.Sprintf("%s {0x%02X}", op, instr&0xFF)
	case instr&0xF000 == 0xD000:
		c := condNames[(instr>>8)&0xF]
		offset := int32(int8(instr & 0xFF))
		target := uint32(int64(pc) + 4 + int64(offset)*2)
		return fmt.Sprintf("b%s 0x%08X", c, target)
	case instr&0xF800 == 0xE000:
		offset := int32(instr&0x7FF) << 21 >> 21
		target := uint32(int64(pc) + 4 + int64(offset)*2)
		return fmt.Sprintf("b 0x%08X", target)
	}
	return fmt.Sprintf(".hword 0x%04X", instr)
}
