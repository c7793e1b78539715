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

package shell

import (
	"os"

	"github.com/bradleyjkemp/memviz"

	"github.com/dyrati/armdbg/internal/curated"
)

// debugSnapshot is the value memviz walks for the `dot` command: the live
// register file and the three breakpoint sets.
type debugSnapshot struct {
	Registers cpu14
	Execute   []uint32
	Write     []uint32
	Read      []uint32
}

type cpu14 [17]uint32

// cmdDot writes a graphviz `.dot` rendering of the current debugger state
// to path, for visual inspection outside the shell.
func (d *Debugger) cmdDot(path string) error {
	snap := debugSnapshot{
		Registers: cpu14(d.CPU.Regs),
		Execute:   d.Breakpoints.ExecutePoints(),
		Write:     d.Breakpoints.WritePoints(),
		Read:      d.Breakpoints.ReadPoints(),
	}

	f, err := os.Create(path)
	if err != nil {
		return curated.Errorf("shell: create %q: %w", path, err)
	}
	defer f.Close()

	memviz.Map(f, &snap)
	return nil
}
