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
	"bufio"
	"fmt"
	"io"

	"github.com/dyrati/armdbg/internal/logger"
)

// Run reads commands from in, one per line, dispatching each until in is
// exhausted or a "quit"/"exit" line is seen. A raw-mode terminal is opened
// opportunistically to support Ctrl-C cancellation of `continue`; if none
// is available (e.g. input is piped from a file), the REPL still works,
// just without mid-`continue` cancellation.
func (d *Debugger) Run(in io.Reader, prompt string) {
	if rt, err := openRawterm(); err == nil {
		defer rt.close()
		d.interruptRequested = rt.pollInterrupt
	} else {
		logger.Logf("shell", "raw terminal unavailable: %s", err)
	}

	scanner := bufio.NewScanner(in)
	fmt.Fprint(d.Out, prompt)
	for scanner.Scan() {
		line := scanner.Text()
		if line == "quit" || line == "exit" {
			return
		}
		func() {
			defer func() {
				if r := recover(); r != nil {
					fmt.Fprintf(d.Out, "error: %v\n", r)
				}
			}()
			d.Dispatch(line)
		}()
		fmt.Fprint(d.Out, prompt)
	}
}
