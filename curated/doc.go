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

// Package curated is a helper package for the plain Go language error type.
// Curated errors implement the error interface.
//
// Curated errors are created with the Errorf() function. This is similar to
// the Errorf() function in the fmt package. It takes a formatting pattern,
// placeholder values and returns an error.
//
// The Is() function checks whether an error was created with a specific
// pattern. Patterns that are tested for are stored as const strings in the
// package that raises them. For example, the elf package declares:
//
//	const MalformedInput = "ELF: malformed input: %s"
//
// and a caller can test for it with:
//
//	if curated.Is(err, elf.MalformedInput) {
//		...
//	}
//
// The Has() function is similar but checks if a pattern occurs somewhere in
// the error chain. A chain is formed by passing one curated error as a value
// to the Errorf() of another:
//
//	e := curated.Errorf(elf.MalformedInput, "bad magic")
//	f := curated.Errorf(linker.LinkFailed, e)
//
//	curated.Has(f, elf.MalformedInput) // true
//	curated.Is(f, elf.MalformedInput)  // false
//
// The Error() function implementation ensures that the error chain is
// normalised. Specifically, that the chain does not contain duplicate adjacent
// parts. Parts are separated by the sub-string ": ", as suggested on p239 of
// "The Go Programming Language" (Donovan, Kernighan). So
//
//	curated.Errorf("ELF: %v", curated.Errorf("ELF: truncated"))
//
// prints as "ELF: truncated" and not "ELF: ELF: truncated".
//
// Uncurated errors (from the io package for example) can be passed as values
// and will be found by errors.Is() through the Unwrap() function.
package curated
