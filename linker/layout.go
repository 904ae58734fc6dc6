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

package linker

import (
	"debug/elf"
	"fmt"

	"github.com/picoelf/armlink/curated"
	"github.com/picoelf/armlink/logger"
	"github.com/picoelf/armlink/relocation"
)

// the GOT is an array of 32 bit addresses at the start of the block.
const (
	gotEntrySize = 4
	minAlignment = 4
)

// reserveGOT decides which symbols have an entry in the GOT and returns the
// number of entries. Entries are allocated in record order and then symbol
// order. The address of each entry is relative to the start of the block
// until the block has been allocated.
func (lnk *Linkage) reserveGOT() uint32 {
	all := lnk.prefs.ReserveAllGOT.Value()

	if !all {
		for _, rec := range lnk.Records {
			for _, r := range rec.relocations {
				if relocation.UsesGOT(r.typ) {
					rec.Symbols[r.symbol].InGOT = true
				}
			}
		}
	}

	var n uint32
	for _, rec := range lnk.Records {
		for i := range rec.Symbols {
			ls := &rec.Symbols[i]
			if all {
				ls.InGOT = true
			}
			if ls.InGOT {
				ls.GOT = n * gotEntrySize
				n++
			}
		}
	}

	return n
}

// layout assigns each loadable section an address relative to the start of
// the block. Returns the size of the block and the alignment it requires.
func (lnk *Linkage) layout() (uint32, uint32, error) {
	lnk.GOTSize = lnk.reserveGOT() * gotEntrySize

	offset := uint64(lnk.GOTSize)
	align := uint64(minAlignment)

	for _, rec := range lnk.Records {
		for i := range rec.Sections {
			ls := &rec.Sections[i]
			if !ls.Load {
				continue // for loop
			}
			h := rec.Header(ls)

			a := uint64(h.Alignment())
			if a > align {
				align = a
			}
			if r := offset % a; r != 0 {
				offset += a - r
			}

			ls.Address = uint32(offset)
			offset += uint64(h.Size)

			if offset > 0xffffffff {
				return 0, 0, curated.Errorf(LinkFailed, fmt.Sprintf("layout exceeds address space at %s in %s", h.Name, rec.Name))
			}
		}
	}

	// an empty block is still given an address
	if offset == 0 {
		offset = minAlignment
	}

	return uint32(offset), uint32(align), nil
}

// place makes section and GOT addresses absolute and copies the contents of
// each loaded section into the block.
func (lnk *Linkage) place() error {
	origin := lnk.Block.Origin
	lnk.GOT = origin

	for _, rec := range lnk.Records {
		for i := range rec.Symbols {
			ls := &rec.Symbols[i]
			if ls.InGOT {
				ls.GOT += origin
			}
		}

		for i := range rec.Sections {
			ls := &rec.Sections[i]
			if !ls.Load {
				continue // for loop
			}
			ls.Address += origin

			h := rec.Header(ls)
			logger.Logf(lnk.prefs, logTag, "%s: %s at %08x (%d bytes, align %d)", rec.Name, h.Name, ls.Address, h.Size, h.Alignment())

			// the block is zeroed so there is nothing to copy for SHT_NOBITS
			if h.Type == elf.SHT_NOBITS {
				continue // for loop
			}

			data, err := rec.File.SectionData(rec.stream, h)
			if err != nil {
				return curated.Errorf(Unacceptable, rec.Name, err)
			}

			dest, err := lnk.Block.Slice(ls.Address, h.Size)
			if err != nil {
				return curated.Errorf(LinkFailed, err)
			}
			copy(dest, data)
		}
	}

	return nil
}
