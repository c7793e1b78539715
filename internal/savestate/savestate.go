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

// Package savestate implements a gzip-compressed, fixed-offset save file
// format: a RAM region snapshot plus all 17 registers.
package savestate

import (
	"bytes"
	"compress/gzip"
	"encoding/binary"
	"io"

	"github.com/dyrati/armdbg/internal/cpu"
	"github.com/dyrati/armdbg/internal/curated"
	"github.com/dyrati/armdbg/internal/membus"
)

// sourceBase is the offset added to every region range in the table below
// to get its absolute position in the decompressed image.
const sourceBase = 0x1DF

type regionRange struct {
	start, end uint32
}

var (
	rangeIRAM    = regionRange{0x00000, 0x08000}
	rangePalette = regionRange{0x08000, 0x08400}
	rangeWRAM    = regionRange{0x08400, 0x48400}
	rangeVRAM    = regionRange{0x48400, 0x60400}
	rangeOAM     = regionRange{0x68400, 0x68800}
	rangeIO      = regionRange{0x8EA08, 0x8EE08}
)

// minLength is the smallest decompressed image the format allows. The I/O
// region sits past every RAM region (including OAM), so it sets the floor.
var minLength = sourceBase + rangeIO.end

const (
	registersOffset = 24
	cpsrModeByte    = 88
	cpsrFlagsByte   = 91
)

// Save snapshots the bus's RAM regions and the CPU's 17 registers into a
// gzip-compressed image.
func Save(c *cpu.CPU, bus *membus.Bus) ([]byte, error) {
	image := make([]byte, minLength)

	copy(image[sourceBase+rangeIRAM.start:], bus.IRAM())
	copy(image[sourceBase+rangePalette.start:], bus.Palette())
	copy(image[sourceBase+rangeWRAM.start:], bus.WRAM())
	copy(image[sourceBase+rangeVRAM.start:], bus.VRAM())
	copy(image[sourceBase+rangeOAM.start:], bus.OAM())
	copy(image[sourceBase+rangeIO.start:], bus.IO())

	for i := 0; i < cpu.NumRegisters-1; i++ {
		binary.LittleEndian.PutUint32(image[registersOffset+4*i:], c.Regs[i])
	}

	var t byte
	if c.Regs.Thumb() {
		t = 1 << 5
	}
	image[cpsrModeByte] = t

	var nzcv byte
	if c.Regs.Negative() {
		nzcv |= 1 << 7
	}
	if c.Regs.Zero() {
		nzcv |= 1 << 6
	}
	if c.Regs.Carry() {
		nzcv |= 1 << 5
	}
	if c.Regs.Overflow() {
		nzcv |= 1 << 4
	}
	image[cpsrFlagsByte] = nzcv

	var buf bytes.Buffer
	w := gzip.NewWriter(&buf)
	if _, err := w.Write(image); err != nil {
		return nil, curated.Errorf("savestate: compress: %w", err)
	}
	if err := w.Close(); err != nil {
		return nil, curated.Errorf("savestate: compress: %w", err)
	}
	return buf.Bytes(), nil
}

// Load decompresses data and restores the bus's RAM regions and the CPU's
// registers from it.
func Load(data []byte, c *cpu.CPU, bus *membus.Bus) error {
	r, err := gzip.NewReader(bytes.NewReader(data))
	if err != nil {
		return curated.Errorf("savestate: decompress: %w", err)
	}
	image, err := io.ReadAll(r)
	if err != nil {
		return curated.Errorf("savestate: decompress: %w", err)
	}
	if len(image) < int(minLength) {
		return curated.Errorf("savestate: image too short (%d bytes, want >= %d)", len(image), minLength)
	}

	copy(bus.IRAM(), image[sourceBase+rangeIRAM.start:sourceBase+rangeIRAM.end])
	copy(bus.Palette(), image[sourceBase+rangePalette.start:sourceBase+rangePalette.end])
	copy(bus.WRAM(), image[sourceBase+rangeWRAM.start:sourceBase+rangeWRAM.end])
	copy(bus.VRAM(), image[sourceBase+rangeVRAM.start:sourceBase+rangeVRAM.end])
	copy(bus.OAM(), image[sourceBase+rangeOAM.start:sourceBase+rangeOAM.end])
	copy(bus.IO(), image[sourceBase+rangeIO.start:sourceBase+rangeIO.end])

	for i := 0; i < cpu.NumRegisters-1; i++ {
		c.Regs[i] = binary.LittleEndian.Uint32(image[registersOffset+4*i:])
	}

	c.Regs.SetThumb(image[cpsrModeByte]&(1<<5) != 0)
	nzcv := image[cpsrFlagsByte]
	c.Regs.SetNZCV(nzcv&(1<<7) != 0, nzcv&(1<<6) != 0, nzcv&(1<<5) != 0, nzcv&(1<<4) != 0)

	return nil
}
