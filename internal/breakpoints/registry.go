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

// Package breakpoints holds the three execute/read/write trigger sets and
// the ordered list of conditional breakpoints queried by the memory bus
// and the fetch/execute driver. The registry carries no behaviour beyond
// set membership; it is edited by the shell between instructions and
// read by the driver and bus during one.
package breakpoints

// Condition is an opaque predicate over the register file and memory,
// installed by the shell (`bc <expr>`) and evaluated once per retired
// instruction. Source is kept only for display: the driver quotes it in
// the break reason when the condition fires.
type Condition struct {
	Source string
	Eval   func() bool
}

// Registry is the single breakpoint/watchpoint table shared by the memory
// bus and the fetch/execute driver.
type Registry struct {
	execute map[uint32]struct{}
	write   map[uint32]struct{}
	read    map[uint32]struct{}

	conditions []Condition
}

// New returns an empty registry.
func New() *Registry {
	return &Registry{
		execute: make(map[uint32]struct{}),
		write:   make(map[uint32]struct{}),
		read:    make(map[uint32]struct{}),
	}
}

func (r *Registry) SetExecute(addr uint32)   { r.execute[addr] = struct{}{} }
func (r *Registry) ClearExecute(addr uint32) { delete(r.execute, addr) }
func (r *Registry) HasExecute(addr uint32) bool {
	_, ok := r.execute[addr]
	return ok
}

func (r *Registry) SetWrite(addr uint32)   { r.write[addr] = struct{}{} }
func (r *Registry) ClearWrite(addr uint32) { delete(r.write, addr) }
func (r *Registry) HasWrite(addr uint32) bool {
	_, ok := r.write[addr]
	return ok
}

func (r *Registry) SetRead(addr uint32)   { r.read[addr] = struct{}{} }
func (r *Registry) ClearRead(addr uint32) { delete(r.read, addr) }
func (r *Registry) HasRead(addr uint32) bool {
	_, ok := r.read[addr]
	return ok
}

// AddCondition installs a new conditional breakpoint.
func (r *Registry) AddCondition(source string, eval func() bool) {
	r.conditions = append(r.conditions, Condition{Source: source, Eval: eval})
}

// Conditions returns the ordered list of installed conditions.
func (r *Registry) Conditions() []Condition { return r.conditions }

// ClearCondition removes the condition at index i.
func (r *Registry) ClearCondition(i int) {
	if i < 0 || i >= len(r.conditions) {
		return
	}
	r.conditions = append(r.conditions[:i], r.conditions[i+1:]...)
}

// ClearAllExecute, ClearAllWrite, ClearAllRead and ClearAllConditions back
// the `d all` / `dw all` / `dr all` / `dc all` forms of the remove command.
func (r *Registry) ClearAllExecute()    { r.execute = make(map[uint32]struct{}) }
func (r *Registry) ClearAllWrite()      { r.write = make(map[uint32]struct{}) }
func (r *Registry) ClearAllRead()       { r.read = make(map[uint32]struct{}) }
func (r *Registry) ClearAllConditions() { r.conditions = nil }

// ExecutePoints, WritePoints and ReadPoints return the sorted addresses
// currently installed, for the shell's `dot` state dump.
func (r *Registry) ExecutePoints() []uint32 { return sortedKeys(r.execute) }
func (r *Registry) WritePoints() []uint32   { return sortedKeys(r.write) }
func (r *Registry) ReadPoints() []uint32    { return sortedKeys(r.read) }

func sortedKeys(m map[uint32]struct{}) []uint32 {
	out := make([]uint32, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	for i := 1; i < len(out); i++ {
		for j := i; j > 0 && out[j-1] > out[j]; j-- {
			out[j-1], out[j] = out[j], out[j-1]
		}
	}
	return out
}
