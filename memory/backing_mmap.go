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

//go:build linux || darwin || freebsd || netbsd || openbsd

package memory

import (
	"golang.org/x/sys/unix"
)

// MmapBacking allocates block memory with anonymous memory mappings. The
// memory is outside of the Go heap and is returned to the operating system
// when the block is freed.
type MmapBacking struct{}

// Acquire implements the Backing interface.
func (MmapBacking) Acquire(size uint32) ([]byte, error) {
	if size == 0 {
		return []byte{}, nil
	}
	return unix.Mmap(-1, 0, int(size), unix.PROT_READ|unix.PROT_WRITE, unix.MAP_ANON|unix.MAP_PRIVATE)
}

// Release implements the Backing interface.
func (MmapBacking) Release(data []byte) error {
	if cap(data) == 0 {
		return nil
	}
	return unix.Munmap(data)
}
