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

import (
	"fmt"

	"github.com/picoelf/armlink/curated"
)

// Block is a contiguous area of target memory. The block is never moved or
// resized once allocated.
type Block struct {
	// target address of the first byte of Data
	Origin uint32

	// contents of the block
	Data []byte

	arena *Arena
}

func (b *Block) String() string {
	return fmt.Sprintf("%08x to %08x (%d bytes)", b.Origin, b.End(), len(b.Data))
}

// Size returns the number of bytes in the block.
func (b *Block) Size() uint32 {
	return uint32(len(b.Data))
}

// End returns the address of the first byte after the block.
func (b *Block) End() uint32 {
	return b.Origin + uint32(len(b.Data))
}

// Contains returns true if the n bytes at addr are entirely inside the block.
func (b *Block) Contains(addr uint32, n uint32) bool {
	if addr < b.Origin {
		return false
	}
	return uint64(addr-b.Origin)+uint64(n) <= uint64(len(b.Data))
}

// Slice returns the n bytes of the block at the target address.
func (b *Block) Slice(addr uint32, n uint32) ([]byte, error) {
	if !b.Contains(addr, n) {
		return nil, curated.Errorf(AddressFault, addr, n, b.Origin, b.End())
	}
	o := addr - b.Origin
	return b.Data[o : o+n], nil
}

// Zero sets all bytes in the block to zero.
func (b *Block) Zero() {
	clear(b.Data)
}
