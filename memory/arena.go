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
	"math/bits"
	"slices"
	"sync"

	"github.com/picoelf/armlink/curated"
)

// Allocator is the interface used by the linker to acquire the block that a
// linkage occupies.
type Allocator interface {
	Allocate(size uint32, align uint32) (*Block, error)
	Free(b *Block) error
}

// Arena allocates blocks from a region of target memory. Blocks never
// overlap. It is safe to use an Arena from more than one goroutine.
type Arena struct {
	crit sync.Mutex

	origin uint64
	end    uint64

	backing Backing

	// allocated blocks sorted by origin
	blocks []*Block
}

// NewArena is the preferred method of initialisation for the Arena type. A
// nil backing defaults to HeapBacking.
func NewArena(origin uint32, size uint32, backing Backing) *Arena {
	if backing == nil {
		backing = HeapBacking{}
	}
	return &Arena{
		origin:  uint64(origin),
		end:     uint64(origin) + uint64(size),
		backing: backing,
	}
}

// NewArenaFromMap creates an arena covering the load region of the memory
// map.
func NewArenaFromMap(mmap Map, backing Backing) *Arena {
	origin, size := mmap.LoadRegion()
	return NewArena(origin, size, backing)
}

func (a *Arena) String() string {
	a.crit.Lock()
	defer a.crit.Unlock()
	return fmt.Sprintf("arena %08x to %08x (%d blocks, %d bytes used)", a.origin, a.end, len(a.blocks), a.used())
}

// Origin returns the first address of the arena.
func (a *Arena) Origin() uint32 {
	return uint32(a.origin)
}

// Size returns the number of bytes covered by the arena.
func (a *Arena) Size() uint32 {
	return uint32(a.end - a.origin)
}

// Used returns the number of bytes currently allocated.
func (a *Arena) Used() uint32 {
	a.crit.Lock()
	defer a.crit.Unlock()
	return a.used()
}

func (a *Arena) used() uint32 {
	var n uint32
	for _, b := range a.blocks {
		n += b.Size()
	}
	return n
}

// Blocks returns a copy of the list of allocated blocks in address order.
func (a *Arena) Blocks() []*Block {
	a.crit.Lock()
	defer a.crit.Unlock()
	return slices.Clone(a.blocks)
}

// alignUp rounds the offset up to the alignment. the alignment must be a
// power of two.
func alignUp(offset uint64, align uint64) uint64 {
	if align > 1 {
		offset += align - 1
		offset -= offset % align
	}
	return offset
}

// Allocate a zeroed block of the size at the first gap that satisfies the
// alignment. An alignment of zero is treated as one.
func (a *Arena) Allocate(size uint32, align uint32) (*Block, error) {
	if align == 0 {
		align = 1
	}
	if bits.OnesCount32(align) != 1 {
		return nil, curated.Errorf(BadAlignment, align)
	}

	a.crit.Lock()
	defer a.crit.Unlock()

	// first fit. gaps are the spaces between allocated blocks
	start := a.origin
	for i := 0; i <= len(a.blocks); i++ {
		end := a.end
		if i < len(a.blocks) {
			end = uint64(a.blocks[i].Origin)
		}

		offset := alignUp(start, uint64(align))
		if offset+uint64(size) <= end {
			return a.insert(i, uint32(offset), size)
		}

		if i < len(a.blocks) {
			start = uint64(a.blocks[i].Origin) + uint64(a.blocks[i].Size())
		}
	}

	return nil, curated.Errorf(OutOfMemory, size, align)
}

// Reserve a zeroed block at a fixed origin. The reserved range must be inside
// the arena and must not overlap an existing block.
func (a *Arena) Reserve(origin uint32, size uint32) (*Block, error) {
	a.crit.Lock()
	defer a.crit.Unlock()

	start := uint64(origin)
	end := start + uint64(size)

	if start < a.origin || end > a.end {
		return nil, curated.Errorf(BadReservation, start, end, fmt.Errorf("outside of arena %08x to %08x", a.origin, a.end))
	}

	i, _ := slices.BinarySearchFunc(a.blocks, origin, func(b *Block, o uint32) int {
		switch {
		case b.Origin < o:
			return -1
		case b.Origin > o:
			return 1
		}
		return 0
	})

	if i > 0 {
		p := a.blocks[i-1]
		if uint64(p.Origin)+uint64(p.Size()) > start {
			return nil, curated.Errorf(BadReservation, start, end, fmt.Errorf("overlaps block %s", p))
		}
	}
	if i < len(a.blocks) {
		n := a.blocks[i]
		if uint64(n.Origin) < end || n.Origin == origin {
			return nil, curated.Errorf(BadReservation, start, end, fmt.Errorf("overlaps block %s", n))
		}
	}

	return a.insert(i, origin, size)
}

// insert a new block into the list at index i. the critical section must be
// held.
func (a *Arena) insert(i int, origin uint32, size uint32) (*Block, error) {
	data, err := a.backing.Acquire(size)
	if err != nil {
		return nil, curated.Errorf(OutOfMemory, size, 1)
	}

	b := &Block{
		Origin: origin,
		Data:   data,
		arena:  a,
	}
	a.blocks = slices.Insert(a.blocks, i, b)

	return b, nil
}

// Free returns the block to the arena. The block must not be used after it
// has been freed.
func (a *Arena) Free(b *Block) error {
	if b == nil {
		return nil
	}

	a.crit.Lock()
	defer a.crit.Unlock()

	i := slices.Index(a.blocks, b)
	if i < 0 || b.arena != a {
		return curated.Errorf(NotOwned, b.Origin)
	}

	a.blocks = slices.Delete(a.blocks, i, i+1)
	err := a.backing.Release(b.Data)
	b.Data = nil
	b.arena = nil

	return err
}
