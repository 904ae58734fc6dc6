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

package memory_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/picoelf/armlink/curated"
	"github.com/picoelf/armlink/memory"
)

func TestAllocateAlignment(t *testing.T) {
	a := memory.NewArena(0x20030000, 0x10000, nil)

	b1, err := a.Allocate(3, 1)
	require.NoError(t, err)
	assert.Equal(t, uint32(0x20030000), b1.Origin)
	assert.Equal(t, uint32(3), b1.Size())

	b2, err := a.Allocate(16, 8)
	require.NoError(t, err)
	assert.Equal(t, uint32(0x20030008), b2.Origin)
	assert.Zero(t, b2.Origin%8)

	// fits into the gap between b1 and b2
	b3, err := a.Allocate(4, 4)
	require.NoError(t, err)
	assert.Equal(t, uint32(0x20030004), b3.Origin)

	assert.Equal(t, uint32(23), a.Used())
	assert.Len(t, a.Blocks(), 3)
}

func TestNoOverlap(t *testing.T) {
	a := memory.NewArena(0x1000, 0x1000, nil)

	sizes := []uint32{7, 100, 3, 64, 1, 250, 32}
	aligns := []uint32{1, 4, 2, 16, 1, 8, 32}

	var blocks []*memory.Block
	for i := range sizes {
		b, err := a.Allocate(sizes[i], aligns[i])
		require.NoError(t, err)
		assert.Zero(t, b.Origin%aligns[i])
		blocks = append(blocks, b)
	}

	for i := range blocks {
		for j := range blocks {
			if i == j {
				continue
			}
			overlap := blocks[i].Origin < blocks[j].End() && blocks[j].Origin < blocks[i].End()
			assert.False(t, overlap, "%s overlaps %s", blocks[i], blocks[j])
		}
	}
}

func TestOutOfMemory(t *testing.T) {
	a := memory.NewArena(0x1000, 0x100, nil)

	_, err := a.Allocate(0x101, 4)
	assert.True(t, curated.Is(err, memory.OutOfMemory))

	b, err := a.Allocate(0x100, 4)
	require.NoError(t, err)

	_, err = a.Allocate(1, 1)
	assert.True(t, curated.Is(err, memory.OutOfMemory))

	// freeing makes the space reusable
	require.NoError(t, a.Free(b))
	assert.Nil(t, b.Data)
	_, err = a.Allocate(0x100, 4)
	assert.NoError(t, err)
}

func TestBadAlignment(t *testing.T) {
	a := memory.NewArena(0x1000, 0x100, nil)
	_, err := a.Allocate(4, 3)
	assert.True(t, curated.Is(err, memory.BadAlignment))
}

func TestReserve(t *testing.T) {
	a := memory.NewArena(0x20030000, 0x10000, nil)

	b, err := a.Reserve(0x20030100, 0x100)
	require.NoError(t, err)
	assert.Equal(t, uint32(0x20030100), b.Origin)

	// overlapping reservations
	_, err = a.Reserve(0x200301ff, 4)
	assert.True(t, curated.Is(err, memory.BadReservation))
	_, err = a.Reserve(0x200300ff, 2)
	assert.True(t, curated.Is(err, memory.BadReservation))

	// outside the arena
	_, err = a.Reserve(0x20040000, 4)
	assert.True(t, curated.Is(err, memory.BadReservation))

	// adjacent is fine
	_, err = a.Reserve(0x20030200, 4)
	assert.NoError(t, err)

	// allocation skips the reserved range
	c, err := a.Allocate(0x200, 4)
	require.NoError(t, err)
	assert.Equal(t, uint32(0x20030204), c.Origin)
}

func TestFreeNotOwned(t *testing.T) {
	a1 := memory.NewArena(0x1000, 0x100, nil)
	a2 := memory.NewArena(0x1000, 0x100, nil)

	b, err := a1.Allocate(4, 4)
	require.NoError(t, err)
	assert.True(t, curated.Is(a2.Free(b), memory.NotOwned))
	assert.NoError(t, a1.Free(b))
	assert.True(t, curated.Is(a1.Free(b), memory.NotOwned))
}

func TestBlockSlice(t *testing.T) {
	a := memory.NewArena(0x1000, 0x100, nil)
	b, err := a.Allocate(16, 4)
	require.NoError(t, err)

	// blocks start zeroed
	for _, v := range b.Data {
		assert.Zero(t, v)
	}

	s, err := b.Slice(0x100c, 4)
	require.NoError(t, err)
	s[0] = 0xaa
	assert.Equal(t, uint8(0xaa), b.Data[12])

	_, err = b.Slice(0x100d, 4)
	assert.True(t, curated.Is(err, memory.AddressFault))
	_, err = b.Slice(0x0fff, 1)
	assert.True(t, curated.Is(err, memory.AddressFault))
	assert.True(t, b.Contains(0x1000, 16))
	assert.False(t, b.Contains(0x1000, 17))
}

func TestMmapBacking(t *testing.T) {
	a := memory.NewArena(0x20030000, 0x10000, memory.MmapBacking{})
	b, err := a.Allocate(0x1000, 4)
	require.NoError(t, err)
	require.Len(t, b.Data, 0x1000)
	b.Data[0xfff] = 1
	assert.NoError(t, a.Free(b))
}
