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

// Package curated implements a small error type that remembers the pattern
// it was built from, so callers can test for a particular kind of failure
// without comparing formatted strings or maintaining sentinel values.
package curated

import (
	"fmt"
	"strings"
)

// curated is the concrete error type. pattern is an fmt verb string; values
// are the arguments it was built with. Formatting is deferred to Error() so
// that two errors built from the same pattern remain comparable by pattern
// alone.
type curated struct {
	pattern string
	values  []interface{}
}

// Errorf builds a curated error. Unlike fmt.Errorf the first argument is
// named "pattern" because it doubles as the key used by Is and Has.
func Errorf(pattern string, values ...interface{}) error {
	return curated{pattern: pattern, values: values}
}

// Error implements the error interface. When the first two ": "-separated
// segments of the message are identical (produced when a lower layer's
// message already states what the layer above is about to say), the
// duplicate is dropped; segments after the second are not compared.
func (e curated) Error() string {
	s := fmt.Errorf(e.pattern, e.values...).Error()

	parts := strings.SplitN(s, ": ", 3)
	if len(parts) > 1 && parts[0] == parts[1] {
		return strings.Join(parts[1:], ": ")
	}
	return strings.Join(parts, ": ")
}

// IsAny reports whether err is a curated error of any pattern.
func IsAny(err error) bool {
	if err == nil {
		return false
	}
	_, ok := err.(curated)
	return ok
}

// Is reports whether err is a curated error built from pattern exactly.
func Is(err error, pattern string) bool {
	if err == nil {
		return false
	}
	e, ok := err.(curated)
	return ok && e.pattern == pattern
}

// Has reports whether err, or any curated error nested in its values, was
// built from pattern.
func Has(err error, pattern string) bool {
	if err == nil || !IsAny(err) {
		return false
	}
	if Is(err, pattern) {
		return true
	}
	for _, v := range err.(curated).values {
		if nested, ok := v.(curated); ok {
			if Has(nested, pattern) {
				return true
			}
		}
	}
	return false
}
