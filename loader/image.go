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

package loader

import (
	"debug/elf"
	"fmt"
	"io"

	"github.com/picoelf/armlink/curated"
	armelf "github.com/picoelf/armlink/elf"
	"github.com/picoelf/armlink/logger"
	"github.com/picoelf/armlink/memory"
)

const logTag = "loader"

// Image is an executable loaded at a fixed address.
type Image struct {
	File *armelf.File

	// the reserved range. the block covers the entire capacity given to
	// Load() and not just the segments
	Block *memory.Block

	// entry point from the ELF header
	Entry uint32

	arena *memory.Arena
}

// Load the PT_LOAD segments of the executable into the range starting at
// origin. Every segment must lie inside the range. The range is reserved from
// the arena and is owned by the Image until Release() is called.
func Load(r io.ReadSeeker, f *armelf.File, arena *memory.Arena, origin uint32, capacity uint32) (*Image, error) {
	if f == nil || r == nil {
		return nil, curated.Errorf(Unacceptable, "no file or stream")
	}
	if arena == nil {
		return nil, curated.Errorf(Unacceptable, "no arena")
	}
	if f.Type != elf.ET_EXEC {
		return nil, curated.Errorf(Unacceptable, fmt.Sprintf("not an executable (%s)", f.Type))
	}
	if f.Machine != elf.EM_ARM {
		return nil, curated.Errorf(Unacceptable, fmt.Sprintf("not an ARM executable (%s)", f.Machine))
	}

	end := uint64(origin) + uint64(capacity)

	var segments []*armelf.ProgramHeader
	for i := range f.Progs {
		p := &f.Progs[i]
		if p.Type != elf.PT_LOAD {
			continue // for loop
		}
		if p.Filesz > p.Memsz {
			return nil, curated.Errorf(Unacceptable, fmt.Sprintf("segment at %08x has more file bytes than memory bytes", p.Vaddr))
		}
		if p.Vaddr < origin || uint64(p.Vaddr)+uint64(p.Memsz) > end {
			return nil, curated.Errorf(OutOfRange, p.Vaddr, uint64(p.Vaddr)+uint64(p.Memsz), origin, end)
		}
		segments = append(segments, p)
	}
	if len(segments) == 0 {
		return nil, curated.Errorf(Unacceptable, "no loadable segments")
	}

	block, err := arena.Reserve(origin, capacity)
	if err != nil {
		return nil, curated.Errorf(Unacceptable, err)
	}

	img := &Image{
		File:  f,
		Block: block,
		Entry: f.Entry,
		arena: arena,
	}

	for _, p := range segments {
		data, err := f.SegmentData(r, p)
		if err != nil {
			_ = img.Release()
			return nil, curated.Errorf(Unacceptable, err)
		}

		dest, err := block.Slice(p.Vaddr, p.Memsz)
		if err != nil {
			_ = img.Release()
			return nil, curated.Errorf(Unacceptable, err)
		}

		// the reserved block is zeroed but a previous segment may overlap
		n := copy(dest, data)
		clear(dest[n:])
	}

	return img, nil
}

func (img *Image) String() string {
	if img.Block == nil {
		return "released image"
	}
	return fmt.Sprintf("image %s entry %08x", img.Block, img.Entry)
}

// Release the reserved range back to the arena.
func (img *Image) Release() error {
	if img.Block == nil {
		return nil
	}
	err := img.arena.Free(img.Block)
	img.Block = nil
	return err
}

// Origin returns the address of the start of the reserved range.
func (img *Image) Origin() uint32 {
	if img.Block == nil {
		return 0
	}
	return img.Block.Origin
}

// Memory returns the contents of the reserved range.
func (img *Image) Memory() []byte {
	if img.Block == nil {
		return nil
	}
	return img.Block.Data
}

// Lookup returns the value of the first defined symbol with the name. The
// file must have been interpreted with its symbols.
func (img *Image) Lookup(name string) (uint32, bool) {
	s := img.File.FindSymbol(name)
	if s == nil || s.Undefined() {
		return 0, false
	}
	return s.Value, true
}

// Resolve implements the provider.Provider interface.
func (img *Image) Resolve(name string) (uint32, bool) {
	s := img.File.FindSymbol(name)
	if s == nil || !s.Exported() {
		return 0, false
	}
	return s.Value, true
}

// Section returns the header of the first section with the name.
func (img *Image) Section(name string) (*armelf.SectionHeader, bool) {
	h := img.File.FindSection(name)
	return h, h != nil
}

// Log writes a summary of the image to the central logger.
func (img *Image) Log(perm logger.Permission) {
	logger.Log(perm, logTag, img)
	for _, p := range img.File.Progs {
		if p.Type == elf.PT_LOAD {
			logger.Logf(perm, logTag, "segment %s", p)
		}
	}
}
