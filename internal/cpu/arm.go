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

// armExec is one ARM executor, invoked once its instruction's condition
// field has already been found to hold.
type armExec func(c *CPU, instr uint32)

// armNode is one node of the 49-node ARM classification tree. A node is
// either a branch (on a single bit, or on a masked literal) with a "yes"
// child, falling through to the next array slot on "no"; or a leaf naming
// an executor directly. The shape, including which
// slots are reachable only by fallthrough versus only by jump, is
// reproduced bit-for-bit from the source classifier.
type armNode struct {
	leaf armExec

	useMask  bool
	bitIndex uint32
	mask     uint32
	value    uint32
	yes      int
}

func bitNode(bitIndex uint32, yes int) armNode {
	return armNode{bitIndex: bitIndex, yes: yes}
}

func maskNode(mask, value uint32, yes int) armNode {
	return armNode{useMask: true, mask: mask, value: value, yes: yes}
}

func leafNode(exec armExec) armNode {
	return armNode{leaf: exec}
}

// dpOrPsrMask/dpOrPsrValue distinguish data-processing from PSR transfer
// and from multiply within the same opcode band: bits 24-23 = 0b10 and
// S = 0 (bit 20) selects PSR transfer / multiply instead of a compare-class
// data-processing op.
const (
	dpOrPsrMask  = 25<<20 | 16<<20
	dpOrPsrValue = 16 << 20
)

var armTree = [49]armNode{
	0:  bitNode(27, 36),
	1:  bitNode(26, 31),
	2:  bitNode(25, 28),
	3:  bitNode(4, 9),
	4:  maskNode(dpOrPsrMask, dpOrPsrValue, 6),
	5:  leafNode(dataprocess),
	6:  bitNode(7, 8),
	7:  leafNode(psr),
	8:  leafNode(multiply),
	9:  bitNode(7, 19),
	10: maskNode(dpOrPsrMask, dpOrPsrValue, 12),
	11: leafNode(dataprocess),
	12: bitNode(6, 16),
	13: bitNode(22, 15),
	14: leafNode(armBx),
	15: leafNode(armClz),
	16: bitNode(5, 18),
	17: leafNode(armUndef),
	18: leafNode(armUndef),
	19: maskNode(3<<5, 0, 23),
	20: bitNode(22, 22),
	21: leafNode(dataTransfer),
	22: leafNode(dataTransfer),
	23: bitNode(24, 27),
	24: bitNode(23, 26),
	25: leafNode(multiply),
	26: leafNode(multiply),
	27: leafNode(dataTransfer),
	28: maskNode(dpOrPsrMask, dpOrPsrValue, 30),
	29: leafNode(dataprocess),
	30: leafNode(psr),
	31: bitNode(25, 33),
	32: leafNode(dataTransfer),
	33: bitNode(4, 35),
	34: leafNode(dataTransfer),
	35: leafNode(armUndef),
	36: bitNode(26, 40),
	37: bitNode(25, 39),
	38: leafNode(blockTransfer),
	39: leafNode(armBranch),
	40: bitNode(25, 44),
	41: maskNode(15<<21, 2<<21, 43),
	42: leafNode(armUndef),
	43: leafNode(armUndef),
	44: bitNode(24, 48),
	45: bitNode(4, 47),
	46: leafNode(armUndef),
	47: leafNode(armUndef),
	48: leafNode(armUndef),
}

// navigateArmTree classifies instr and returns its executor.
func navigateArmTree(instr uint32) armExec {
	pos := 0
	for {
		node := armTree[pos]
		if node.leaf != nil {
			return node.leaf
		}
		var taken bool
		if node.useMask {
			taken = instr&node.mask == node.value
		} else {
			taken = bit32(instr, node.bitIndex)
		}
		if taken {
			pos = node.yes
		} else {
			pos++
		}
	}
}

func armUndef(c *CPU, instr uint32) {}

// rotateImmediate performs the ARM dataprocessing-immediate-operand
// rotate: an 8-bit value rotated right by twice the 4-bit rotate field.
// A rotate of 0 performs no rotation at all and never triggers RRX; that
// variant belongs only to the shifter's ROR#0 case on a true shift
// instruction.
func rotateImmediate(v, rotate uint32) uint32 {
	rotate &= 31
	if rotate == 0 {
		return v
	}
	return (v >> rotate) | (v << (32 - rotate))
}

// dataprocessOps are the 16 ARM data-processing ALU operations, addressed
// by the 4-bit opcode field. TST/TEQ/CMP/CMN (8-11) are compare-only: the
// caller suppresses the Rd write-back for them.
var dataprocessOps = [16]func(r *Registers, rn, op2 uint32, s bool) uint32{
	func(r *Registers, rn, op2 uint32, s bool) uint32 { return Logic(r, rn&op2, s) },                      // AND
	func(r *Registers, rn, op2 uint32, s bool) uint32 { return Logic(r, rn^op2, s) },                      // EOR
	func(r *Registers, rn, op2 uint32, s bool) uint32 { return Compare(r, rn, negate(op2), s) },           // SUB
	func(r *Registers, rn, op2 uint32, s bool) uint32 { return Compare(r, op2, negate(rn), s) },           // RSB
	func(r *Registers, rn, op2 uint32, s bool) uint32 { return Compare(r, rn, op2, s) },                   // ADD
	func(r *Registers, rn, op2 uint32, s bool) uint32 { return Compare(r, rn, op2+carryIn(r), s) },        // ADC
	func(r *Registers, rn, op2 uint32, s bool) uint32 { return Compare(r, rn, negate(op2)+carryIn(r)-1, s) }, // SBC
	func(r *Registers, rn, op2 uint32, s bool) uint32 { return Compare(r, op2, negate(rn)+carryIn(r)-1, s) }, // RSC
	func(r *Registers, rn, op2 uint32, s bool) uint32 { return Logic(r, rn&op2, s) },                      // TST
	func(r *Registers, rn, op2 uint32, s bool) uint32 { return Logic(r, rn^op2, s) },                      // TEQ
	func(r *Registers, rn, op2 uint32, s bool) uint32 { return Compare(r, rn, negate(op2), s) },           // CMP
	func(r *Registers, rn, op2 uint32, s bool) uint32 { return Compare(r, rn, op2, s) },                   // CMN
	func(r *Registers, rn, op2 uint32, s bool) uint32 { return Logic(r, rn|op2, s) },                      // ORR
	func(r *Registers, rn, op2 uint32, s bool) uint32 { return Logic(r, op2, s) },                         // MOV
	func(r *Registers, rn, op2 uint32, s bool) uint32 { return Logic(r, rn&^op2, s) },                     // BIC
	func(r *Registers, rn, op2 uint32, s bool) uint32 { return Logic(r, ^op2, s) },                        // MVN
}

func carryIn(r *Registers) uint32 {
	if r.Carry() {
		return 1
	}
	return 0
}

func dataprocess(c *CPU, instr uint32) {
	imm := (instr >> 25) & 1
	opcode := (instr >> 21) & 0xF
	s := (instr>>20)&1 != 0
	rn := (instr >> 16) & 0xF
	rd := (instr >> 12) & 0xF
	shiftField := (instr >> 7) & 0x1F
	typ := ShiftType((instr >> 5) & 3)
	regShift := (instr>>4)&1 != 0
	rm := instr & 0xF

	var op2 uint32
	if imm != 0 {
		imm8 := instr & 0xFF
		rotate := ((instr >> 8) & 0xF) * 2
		op2 = rotateImmediate(imm8, rotate)
	} else {
		amount := shiftField
		immediateShift := true
		if regShift {
			rs := (shiftField >> 1) & 0xF
			amount = c.Regs[rs] & 0xFF
			immediateShift = false
		}
		op2 = ShiftAndSet(&c.Regs, c.Regs[rm], amount, typ, immediateShift, s)
	}

	result := dataprocessOps[opcode](&c.Regs, c.Regs[rn], op2, s)
	if opcode < 8 || opcode > 11 {
		c.Regs[rd] = result
	}
}

// psr implements MSR/MRS against the single modelled CPSR; SPSR transfer
// (P=1) is not modelled since no processor-mode banking exists here.
func psr(c *CPU, instr uint32) {
	i := (instr >> 25) & 1
	p := (instr>>22)&1 != 0
	l := (instr>>21)&1 != 0
	field := (instr >> 16) & 0xF
	rd := (instr >> 12) & 0xF
	rotate := (instr >> 8) & 0xF
	imm8 := instr & 0xFF
	rm := instr & 0xF

	if p {
		return
	}
	if !l {
		c.Regs[rd] = c.Regs[R16]
		return
	}

	flagsField := (field >> 3) & 1
	ctrlField := field & 1
	var bitmask uint32
	if flagsField != 0 {
		bitmask |= 0xF0000000
	}
	if ctrlField != 0 {
		bitmask |= 0xEF
	}

	var op uint32
	if i != 0 {
		op = rotateImmediate(imm8, rotate*2)
	} else {
		op = c.Regs[rm]
	}
	c.Regs[R16] = c.Regs[R16]&^bitmask | (op & bitmask)
}

func armBx(c *CPU, instr uint32) {
	l := (instr>>5)&1 != 0
	rn := instr & 0xF
	if l {
		c.Regs[R14] = c.Regs[R15] - 4
	}
	mode := c.Regs[rn] & 1
	if mode != 0 {
		c.Regs[R15] = (c.Regs[rn] &^ 1) + 2
	} else {
		c.Regs[R15] = c.Regs[rn] + 4
	}
	c.Regs.SetThumb(mode != 0)
}

func armBranch(c *CPU, instr uint32) {
	l := (instr>>24)&1 != 0
	offset := instr & 0xFFFFFF
	if l {
		c.Regs[R14] = c.Regs[R15] - 4
	}
	signed := (offset ^ 0x800000) - 0x800000
	c.Regs[R15] = c.Regs[R15] + 4 + signed*4
}

func armClz(c *CPU, instr uint32) {
	rd := (instr >> 12) & 0xF
	rm := instr & 0xF
	v := c.Regs[rm]
	n := uint32(0)
	for v != 0 {
		v >>= 1
		n++
	}
	c.Regs[rd] = 32 - n
}

func signExtend16(v uint16) int32 {
	return int32(int16(v))
}

// multiply covers MUL/MLA/UMULL/UMLAL/SMULL/SMLAL and the ARMv5 half-word
// multiply-accumulate family (opcode bit 3 set): SMLA<xy>, SMLAW<y>/
// SMULW<y>, SMLAL<xy>, SMUL<xy>. Flags, when requested, follow the 32- vs
// 64-bit result width: 32-bit variants set N/Z from the low word only,
// wide variants set them from the full 64-bit result.
func multiply(c *CPU, instr uint32) {
	opcode := (instr >> 21) & 0xF
	s := (instr>>20)&1 != 0
	rd := (instr >> 16) & 0xF
	rn := (instr >> 12) & 0xF
	rs := (instr >> 8) & 0xF
	yBit := (instr >> 6) & 1
	xBit := (instr >> 5) & 1
	rm := instr & 0xF

	rmVal := c.Regs[rm]
	rsVal := c.Regs[rs]

	if opcode&8 != 0 {
		op := opcode & 3
		rsHalf := int64(signExtend16(uint16(rsVal >> (16 * yBit))))

		switch op {
		case 0: // SMLA<xy>
			rmHalf := int64(signExtend16(uint16(rmVal >> (16 * xBit))))
			c.Regs[rd] = uint32(rmHalf*rsHalf) + c.Regs[rn]
		case 1: // SMLAW<y> / SMULW<y>
			rmFull := int64(int32(rmVal))
			acc := uint32((rmFull * rsHalf) >> 16)
			if xBit == 0 {
				acc += c.Regs[rn]
			}
			c.Regs[rd] = acc
		case 2: // SMLAL<xy>
			rmHalf := int64(signExtend16(uint16(rmVal >> (16 * xBit))))
			wide := uint64(c.Regs[rd])<<32 | uint64(c.Regs[rn])
			result := wide + uint64(rmHalf*rsHalf)
			c.Regs[rd] = uint32(result >> 32)
			c.Regs[rn] = uint32(result)
		case 3: // SMUL<xy>
			rmHalf := int64(signExtend16(uint16(rmVal >> (16 * xBit))))
			c.Regs[rd] = uint32(rmHalf * rsHalf)
		}
		return
	}

	wideVariant := opcode&4 != 0
	accumulate := opcode&1 != 0
	signed := opcode&2 != 0

	var product uint64
	if signed {
		product = uint64(int64(int32(rmVal)) * int64(int32(rsVal)))
	} else {
		product = uint64(rmVal) * uint64(rsVal)
	}

	var result64 uint64
	if accumulate {
		if wideVariant {
			result64 = product + (uint64(c.Regs[rd])<<32 | uint64(c.Regs[rn]))
		} else {
			result64 = product + uint64(c.Regs[rn])
		}
	} else {
		result64 = product
	}

	if wideVariant {
		c.Regs[rd] = uint32(result64 >> 32)
		c.Regs[rn] = uint32(result64)
	} else {
		c.Regs[rd] = uint32(result64)
	}

	if s {
		if wideVariant {
			c.Regs.SetNZ64(result64)
		} else {
			c.Regs.SetNZ(uint32(result64))
		}
	}
}

// dataTransfer implements both the classic LDR/STR form (D=1: 12-bit
// immediate-or-shifted-register offset, byte/word) and the halfword /
// signed / SWP form (D=0: split-nibble immediate or register offset, a
// 2-bit type selecting H/SB/SH, and the type-0 atomic SWP).
func dataTransfer(c *CPU, instr uint32) {
	flags := (instr >> 20) & 0x7F
	rn := (instr >> 16) & 0xF
	rd := (instr >> 12) & 0xF
	offsetField := instr & 0xFFF

	d := flags&(1<<6) != 0
	i := flags&(1<<5) != 0
	p := flags&(1<<4) != 0
	u := flags&(1<<3) != 0
	b := flags&(1<<2) != 0
	w := flags&(1<<1) != 0
	l := flags&1 != 0

	sign := int32(-1)
	if u {
		sign = 1
	}

	addr := c.Regs[rn]

	if d {
		offset := offsetField
		if i {
			shift := (offsetField >> 7) & 0x1F
			typ := ShiftType((offsetField >> 5) & 3)
			rm := offsetField & 0xF
			offset, _ = Shift(c.Regs[rm], shift, typ, true, c.Regs.Carry())
		}
		if p {
			addr = uint32(int32(addr) + int32(offset)*sign)
		}
		if !p || w {
			c.Regs[rn] = uint32(int32(c.Regs[rn]) + int32(offset)*sign)
		}
		if l {
			if b {
				c.Regs[rd] = uint32(c.Bus.ReadByte(addr))
			} else {
				c.Regs[rd] = c.Bus.ReadWord(addr)
			}
		} else {
			if b {
				c.Bus.WriteByte(addr, uint8(c.Regs[rd]))
			} else {
				c.Bus.WriteWord(addr, c.Regs[rd])
			}
		}
		return
	}

	typ := (offsetField >> 5) & 3
	var offset uint32
	if b { // B doubles as the immediate-offset flag when D is clear
		offset = (offsetField>>8)&0xF<<4 | offsetField&0xF
	} else {
		rm := offsetField & 0xF
		offset = c.Regs[rm]
	}
	// SWP has no addressing mode of its own: it always operates on Rn
	// unmodified, so the pre/post-index adjustment and writeback below
	// must not run for it.
	if typ != 0 {
		if p {
			addr = uint32(int32(addr) + int32(offset)*sign)
		}
		if !p || w {
			c.Regs[rn] = uint32(int32(c.Regs[rn]) + int32(offset)*sign)
		}
	}

	switch {
	case typ == 0: // SWP, atomic load-then-store via a temporary for Rm==Rd
		rm := offsetField & 0xF
		temp := c.Regs[rm]
		c.Regs[rd] = c.Bus.ReadWord(c.Regs[rn])
		c.Bus.WriteWord(c.Regs[rn], temp)
	case l && typ == 1: // LDRH
		c.Regs[rd] = uint32(c.Bus.ReadHalf(addr))
	case l && typ == 2: // LDRSB
		c.Regs[rd] = c.Bus.ReadByteSigned(addr)
	case l && typ == 3: // LDRSH
		c.Regs[rd] = c.Bus.ReadHalfSigned(addr)
	case !l && typ == 1: // STRH
		c.Bus.WriteHalf(addr, uint16(c.Regs[rd]))
	case !l && typ == 2: // LDRD
		c.Regs[rd] = c.Bus.ReadWord(addr)
		c.Regs[rd+1] = c.Bus.ReadWord(addr + 4)
	case !l && typ == 3: // STRD
		c.Bus.WriteWord(addr, c.Regs[rd])
		c.Bus.WriteWord(addr+4, c.Regs[rd+1])
	}
}

// blockTransfer implements LDM/STM. With U set registers are transferred
// in ascending index order at increasing addresses; with U clear they are
// transferred in descending index order at decreasing addresses, so the
// lowest register always sits at the lowest address. P chooses pre/post
// timing, and writeback writes the final address (adjusted back one word
// when P indicates pre-increment).
func blockTransfer(c *CPU, instr uint32) {
	flags := (instr >> 20) & 0x1F
	rn := (instr >> 16) & 0xF
	rlist := instr & 0xFFFF

	p := flags&(1<<4) != 0
	u := flags&(1<<3) != 0
	w := flags&(1<<1) != 0
	l := flags&1 != 0

	direction := int32(-1)
	if u {
		direction = 1
	}

	addr := c.Regs[rn]
	if p {
		addr = uint32(int32(addr) + 4*direction)
	}

	index := 15
	if u {
		index = 0
	}
	for i := 0; i < 16; i++ {
		if rlist&(1<<uint(index)) != 0 {
			if l {
				c.Regs[index] = c.Bus.ReadWord(addr)
			} else {
				c.Bus.WriteWord(addr, c.Regs[index])
			}
			addr = uint32(int32(addr) + 4*direction)
		}
		if u {
			index++
		} else {
			index--
		}
	}
	if p {
		addr = uint32(int32(addr) - 4*direction)
	}
	if w {
		c.Regs[rn] = addr
	}
}
