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

// Package asm is a single-line THUMB assembler, enough to patch a
// breakpointed instruction from the shell. It does not attempt full ARM
// encoding or a symbol table; branch targets are given as absolute
// addresses.
package asm

import (
	"strconv"
	"strings"

	"github.com/dyrati/armdbg/internal/curated"
)

// Assemble encodes one line of THUMB assembly. pc is the address the
// resulting instruction will sit at, used to compute branch offsets. It
// returns the encoded value and its size in bytes (2, or 4 for a BL pair).
func Assemble(line string, pc uint32) (value uint32, size int, err error) {
	line = strings.TrimSpace(strings.ToLower(line))
	if line == "" {
		return 0, 0, curated.Errorf("asm: empty line")
	}
	fields := tokenize(line)
	if len(fields) == 0 {
		return 0, 0, curated.Errorf("asm: empty line")
	}
	mnemonic := fields[0]
	operands := fields[1:]

	switch mnemonic {
	case "mov", "cmp", "add", "sub":
		if len(operands) == 2 {
			rd, ok := regNum(operands[0])
			imm, immOK := immediate(operands[1])
			if ok && immOK && rd < 8 && imm <= 0xFF {
				opBits := map[string]uint32{"mov": 0, "cmp": 1, "add": 2, "sub": 3}[mnemonic]
				return (0x20 << 8) | (opBits << 11) | (rd << 8) | imm, 2, nil
			}
		}
	case "push", "pop":
		list, err := regList(strings.Join(operands, " "))
		if err != nil {
			return 0, 0, err
		}
		base := uint32(0xB400)
		if mnemonic == "pop" {
			base = 0xB400 | (1 << 11)
		}
		return base | list, 2, nil
	case "b", "bl":
		if len(operands) != 1 {
			break
		}
		target, tErr := parseHex(operands[0])
		if tErr != nil {
			return 0, 0, tErr
		}
		if mnemonic == "b" {
			offset := (int64(target) - int64(pc) - 4) / 2
			return 0xE000 | uint32(offset)&0x7FF, 2, nil
		}
		offset := (int64(target) - int64(pc) - 4) / 2
		high := uint32(0xF000) | (uint32(offset)>>11)&0x7FF
		low := uint32(0xF800) | uint32(offset)&0x7FF
		return (high << 16) | low, 4, nil
	}
	return 0, 0, curated.Errorf("asm: unsupported or malformed instruction %q", line)
}

func tokenize(line string) []string {
	line = strings.ReplaceAll(line, ",", " ")
	return strings.Fields(line)
}

func regNum(tok string) (uint32, bool) {
	if len(tok) < 2 || tok[0] != 'r' {
		return 0, false
	}
	n, err := strconv.Atoi(tok[1:])
	if err != nil || n < 0 || n > 15 {
		return 0, false
	}
	return uint32(n), true
}

func immediate(tok string) (uint32, bool) {
	if !strings.HasPrefix(tok, "#") {
		return 0, false
	}
	v, err := parseHex(tok[1:])
	if err != nil {
		return 0, false
	}
	return v, true
}

func parseHex(tok string) (uint32, error) {
	tok = strings.TrimPrefix(tok, "0x")
	v, err := strconv.ParseUint(tok, 16, 32)
	if err != nil {
		return 0, curated.Errorf("asm: bad numeric literal %q: %w", tok, err)
	}
	return uint32(v), nil
}

// regList parses a brace-delimited register list like "{r0,r1,lr}" into a
// bitmask, with lr/pc folded onto bit 8 the way PUSH/POP encode it.
func regList(s string) (uint32, error) {
	s = strings.Trim(s, "{}")
	if s == "" {
		return 0, curated.Errorf("asm: empty register list")
	}
	var mask uint32
	for _, tok := range strings.Split(s, " ") {
		tok = strings.TrimSpace(tok)
		if tok == "" {
			continue
		}
		switch tok {
		case "lr", "pc":
			mask |= 1 << 8
		default:
			n, ok := regNum(tok)
			if !ok || n > 7 {
				return 0, curated.Errorf("asm: bad register in list %q", tok)
			}
			mask |= 1 << n
		}
	}
	return mask, nil
}
