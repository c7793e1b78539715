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

// Package romfile loads the opaque cartridge byte stream the ROM region is
// backed by. No header is parsed; the bytes are handed to the memory bus
// verbatim.
package romfile

import (
	"os"

	"github.com/dyrati/armdbg/internal/curated"
)

// Load reads path in full and returns its bytes unmodified.
func Load(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, curated.Errorf("romfile: read %q: %w", path, err)
	}
	return data, nil
}
