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

package memory

// error patterns for the memory package.
const (
	OutOfMemory    = "memory: out of memory: %d bytes with alignment %d"
	BadReservation = "memory: cannot reserve %08x to %08x: %v"
	NotOwned       = "memory: block at %08x was not allocated by this arena"
	AddressFault   = "memory: address fault: %08x (%d bytes) outside of block %08x to %08x"
	BadAlignment   = "memory: alignment must be a power of two (%d)"
)
