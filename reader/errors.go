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

package reader

// error patterns for the reader package. test with curated.Is().
const (
	TruncatedRead = "reader: truncated read: wanted %d bytes at offset %#x"
	StreamError   = "reader: stream error: %v"
	SeekError     = "reader: seek error: %v"
	BadMagic      = "reader: magic mismatch at offset %#x"
	BadSize       = "reader: unsupported integer size (%d)"
)
