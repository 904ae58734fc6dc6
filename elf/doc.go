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

// Package elf interprets 32 bit ELF files. It is a small interpreter written
// for the needs of the linker and the simple loader: the file header, the
// program header table, the section header table with section names and
// (optionally) the symbol table.
//
// The interpreter reads through a seekable stream and honours the data
// encoding (byte order) declared in the identification bytes of the header.
// The interpreted File is never partially valid: if Interpret() returns an
// error then no File is returned.
//
// Constants and enumerations (section types, symbol bindings, etc.) are the
// types from the "debug/elf" package of the standard library. The standard
// library's interpreter is not used because it does not expose the raw
// symbol section index, entry sizes or non-contiguous header tables in the
// way the linker requires.
package elf
