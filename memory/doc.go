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

// Package memory models the target address space the linker places code in.
//
// A Map describes the memory of a target device and names the region that
// loaded code may occupy. An Arena hands out Blocks from that region. Each
// Block has a 32 bit target origin and a Go slice holding its contents. The
// addresses computed by the linker are target addresses, never host
// pointers.
//
// The contents of a block come from a Backing. HeapBacking uses ordinary Go
// slices. MmapBacking uses anonymous memory mappings where the platform
// supports them.
package memory
