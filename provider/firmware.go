// This file is part of armlink.
//
// armlink is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// armlink is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with armlink.  If not, see <https://www.gnu.org/licenses/>.

package provider

import (
	"debug/elf"

	armelf "github.com/picoelf/armlink/elf"
)

// FromELF creates a table from the exported symbols of an interpreted
// firmware image. Only functions, data objects and untyped symbols are
// included. The file must have been interpreted with its symbols.
func FromELF(f *armelf.File) *Table {
	t := &Table{}
	for i := range f.Symbols {
		s := &f.Symbols[i]
		if !s.Exported() {
			continue // for loop
		}
		switch s.Type {
		case elf.STT_FUNC, elf.STT_OBJECT, elf.STT_NOTYPE:
		default:
			continue // for loop
		}
		if _, ok := t.Resolve(s.Name); ok {
			continue // for loop
		}
		_ = t.Add(s.Name, s.Value)
	}
	return t
}
