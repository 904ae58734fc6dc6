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

package elf

// error patterns for the elf package. test with curated.Is() or curated.Has().
const (
	MalformedInput  = "ELF: malformed input: %v"
	BoundsViolation = "ELF: bounds violation: %v"
	IOFailure       = "ELF: i/o failure: %v"
)
