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

// Package linker links a cohort of ARM ELF relocatable objects into a single
// block of target memory.
//
// A link proceeds in stages. Each object is wrapped in a Record that mirrors
// the sections and symbols of the interpreted file and collects the
// relocation entries of its SHT_REL and SHT_RELA sections. The layout stage
// reserves a global offset table (GOT) at the front of the block and places
// every loadable section after it, honouring the alignment of each section.
// Undefined symbols are then resolved against the other objects in the
// cohort and against the providers supplied by the caller. Finally the GOT is
// filled and every relocation entry is applied to the contents of the block.
//
// The result is a Linkage, which owns the block until Release() is called.
// A failed link releases the block before returning.
//
//	arena := memory.NewArena(0x20030000, 0x10000, nil)
//	lnk, err := linker.Link([]linker.Input{{Name: "main.o", File: f, Stream: r}}, firmware, arena, nil)
//	if err != nil {
//		return err
//	}
//	defer lnk.Release()
//	entry, ok := lnk.Entry()
//
// Relocation types that are not supported are skipped. The location is left
// unchanged and a warning is added to the Linkage. The Strict preference turns
// these warnings into a link failure.
package linker
