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

// Package loader is the minimal alternative to the linker. It copies the
// PT_LOAD segments of a single ET_EXEC image into a pre-reserved range of
// target memory. No relocations are applied.
//
// Executables built for this path carry an import table at the start of
// their memory: a zero terminated array of pointers to the names of the host
// functions they need. FixImports() replaces each pointer with the address of
// the named function, as found in an ABI table.
//
//	img, err := loader.Load(r, f, arena, 0x20030000, 0x10000)
//	if err != nil {
//		return err
//	}
//	err = loader.FixImports(img, 0, abi)
package loader
