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

// Package config persists shell preferences to a TOML file.
package config

import (
	"os"

	"github.com/BurntSushi/toml"

	"github.com/dyrati/armdbg/internal/curated"
)

// Prefs holds the shell's persisted preferences.
type Prefs struct {
	// DefaultBreakpointBank names a breakpoint set (execute/write/read). It
	// is saved and reloaded with the other preferences; the shell does not
	// consult it, and `b` always installs an execute breakpoint.
	DefaultBreakpointBank string `toml:"default_breakpoint_bank"`

	// MirrorWatchToExecute installs a matching execute breakpoint whenever
	// a watchpoint is set, for users who always want to stop on both.
	MirrorWatchToExecute bool `toml:"mirror_watch_to_execute"`

	// StatsDashboard enables the live runtime statistics dashboard by
	// default, without requiring the --stats flag.
	StatsDashboard bool `toml:"stats_dashboard"`
}

// Default returns the built-in preference values used when no file exists.
func Default() Prefs {
	return Prefs{
		DefaultBreakpointBank: "execute",
		MirrorWatchToExecute:  false,
		StatsDashboard:        false,
	}
}

// Load reads prefs from path, falling back to Default if the file does not
// exist.
func Load(path string) (Prefs, error) {
	p := Default()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return p, nil
	}
	if _, err := toml.DecodeFile(path, &p); err != nil {
		return Prefs{}, curated.Errorf("config: decode %q: %w", path, err)
	}
	return p, nil
}

// Save writes prefs to path as TOML, creating or truncating it.
func Save(path string, p Prefs) error {
	f, err := os.Create(path)
	if err != nil {
		return curated.Errorf("config: create %q: %w", path, err)
	}
	defer f.Close()
	if err := toml.NewEncoder(f).Encode(p); err != nil {
		return curated.Errorf("config: encode %q: %w", path, err)
	}
	return nil
}
