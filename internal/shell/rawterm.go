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
	"github.com/pkg/term"

	"github.com/dyrati/armdbg/internal/curated"
)

// rawterm wraps the controlling terminal so `continue` can poll for a bare
// Ctrl-C without the line-buffering a canonical read would impose.
type rawterm struct {
	t *term.Term
}

func openRawterm() (*rawterm, error) {
	t, err := term.Open("/dev/tty")
	if err != nil {
		return nil, curated.Errorf("shell: open terminal: %w", err)
	}
	if err := term.RawMode(t); err != nil {
		t.Close()
		return nil, curated.Errorf("shell: set raw mode: %w", err)
	}
	return &rawterm{t: t}, nil
}

// pollInterrupt reads a single pending byte, non-blocking in spirit (the
// caller is expected to check this between instruction batches, not hold
// the read open across a `continue` run).
func (r *rawterm) pollInterrupt() bool {
	buf := make([]byte, 1)
	r.t.SetReadTimeout(0)
	n, err := r.t.Read(buf)
	return err == nil && n == 1 && buf[0] == 0x03
}

func (r *rawterm) close() error {
	r.t.Restore()
	return r.t.Close()
}
