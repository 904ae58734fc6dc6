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

// Package relocation is the ARM ELF relocation engine. It evaluates the
// relocation formulas of the ARM ELF specification and reads and writes the
// instruction and data fields that relocations patch.
//
// Relocation types form a closed enumeration. Each supported type belongs to
// an encoding family:
//
//	Data     words, halfwords and bytes of data
//	ARM      32 bit ARM instructions
//	Thumb16  16 bit Thumb instructions
//	Thumb32  32 bit Thumb instructions, stored as two halfwords
//
// The bit packing for each family is kept together in one file so that the
// addend decoder for a type and the encoder for the same type use the same
// layout. For any supported type, encoding a value with Apply() and then
// decoding it with Addend() returns the value (subject to the range of the
// field).
//
// Types without an implementation (TLS, static base relative, the ALU/LDR
// group relocations beyond group zero and the branch future relocations) are
// reported with the Unsupported error. No formula is guessed for them.
package relocation
