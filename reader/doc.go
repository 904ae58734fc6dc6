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

// Package reader is an endian-aware binary reader over an io.ReadSeeker. All
// reads are complete or they fail: a short read is a TruncatedRead error and
// never a partial value.
//
// The byte order defaults to little-endian and can be changed at any time
// with SetByteOrder(). The ELF interpreter switches the byte order once the
// data encoding field of the header has been read.
package reader
